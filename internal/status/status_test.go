package status

import (
	"testing"

	"aquafarm-hrm-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionRequest(t *testing.T) {
	assert.True(t, CanTransitionRequest(RequestPending, RequestApproved))
	assert.True(t, CanTransitionRequest(RequestPending, RequestRejected))
	assert.True(t, CanTransitionRequest(RequestPartiallyIssued, RequestClosed))

	// Trạng thái cuối không đi đâu được nữa.
	assert.False(t, CanTransitionRequest(RequestRejected, RequestPending))
	assert.False(t, CanTransitionRequest(RequestClosed, RequestPartiallyIssued))
	assert.False(t, CanTransitionRequest(RequestApproved, RequestPending))
	assert.False(t, CanTransitionRequest("BOGUS", RequestPending))
}

func TestCanTransitionProcurement(t *testing.T) {
	assert.True(t, CanTransitionProcurement(ProcurementNotRequired, ProcurementRequired))
	assert.True(t, CanTransitionProcurement(ProcurementRequired, ProcurementOrdered))
	assert.True(t, CanTransitionProcurement(ProcurementOrdered, ProcurementCompleted))
	// Giao thiếu hàng: quay lại REQUIRED để đặt tiếp.
	assert.True(t, CanTransitionProcurement(ProcurementOrdered, ProcurementRequired))

	assert.False(t, CanTransitionProcurement(ProcurementRequired, ProcurementCompleted))
	assert.False(t, CanTransitionProcurement(ProcurementCompleted, ProcurementRequired))
	assert.False(t, CanTransitionProcurement(ProcurementNotRequired, ProcurementOrdered))
}

func TestParseStatuses(t *testing.T) {
	s, err := ParseRequestStatus("PARTIALLY_ISSUED")
	assert.NoError(t, err)
	assert.Equal(t, RequestPartiallyIssued, s)

	_, err = ParseRequestStatus("partially_issued")
	assert.Error(t, err)

	p, err := ParseProcurementStatus("ORDERED")
	assert.NoError(t, err)
	assert.Equal(t, ProcurementOrdered, p)

	_, err = ParseProcurementStatus("SHIPPED")
	assert.Error(t, err)
}

func TestAggregateRequestStatus(t *testing.T) {
	item := func(quantity, issued int, procurement string) models.AssetRequestItem {
		return models.AssetRequestItem{
			Quantity:          quantity,
			QuantityIssued:    issued,
			ProcurementStatus: procurement,
		}
	}

	t.Run("all settled from stock means ISSUED", func(t *testing.T) {
		items := []models.AssetRequestItem{
			item(3, 3, ProcurementNotRequired),
			item(1, 1, ProcurementNotRequired),
		}
		assert.Equal(t, RequestIssued, AggregateRequestStatus(items))
	})

	t.Run("all settled after a procurement round means CLOSED", func(t *testing.T) {
		items := []models.AssetRequestItem{
			item(3, 3, ProcurementNotRequired),
			item(5, 5, ProcurementCompleted),
		}
		assert.Equal(t, RequestClosed, AggregateRequestStatus(items))
	})

	t.Run("anything issued with an outstanding item means PARTIALLY_ISSUED", func(t *testing.T) {
		items := []models.AssetRequestItem{
			item(3, 3, ProcurementNotRequired),
			item(5, 0, ProcurementRequired),
		}
		assert.Equal(t, RequestPartiallyIssued, AggregateRequestStatus(items))

		items = []models.AssetRequestItem{
			item(10, 4, ProcurementOrdered),
		}
		assert.Equal(t, RequestPartiallyIssued, AggregateRequestStatus(items))
	})

	t.Run("nothing issued at all means APPROVED", func(t *testing.T) {
		items := []models.AssetRequestItem{
			item(3, 0, ProcurementRequired),
			item(5, 0, ProcurementOrdered),
		}
		assert.Equal(t, RequestApproved, AggregateRequestStatus(items))
	})

	t.Run("empty item list stays PENDING", func(t *testing.T) {
		assert.Equal(t, RequestPending, AggregateRequestStatus(nil))
	})
}

func TestDisplayMetadata(t *testing.T) {
	meta := RequestDisplay(RequestPartiallyIssued)
	assert.Equal(t, RequestPartiallyIssued, meta.Status)
	assert.NotEmpty(t, meta.Label)
	assert.NotEmpty(t, meta.Color)

	// Trạng thái lạ vẫn render được, không panic và không rỗng.
	unknown := RequestDisplay("BOGUS")
	assert.Equal(t, "BOGUS", unknown.Status)
	assert.NotEmpty(t, unknown.Label)

	all := AllDisplayMetadata()
	assert.Len(t, all["request"], 6)
	assert.Len(t, all["procurement"], 4)
}
