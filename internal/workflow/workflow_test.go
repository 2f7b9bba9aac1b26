package workflow

import (
	"testing"

	"aquafarm-hrm-api-server/internal/models"
	"aquafarm-hrm-api-server/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyApproval(t *testing.T) {
	t.Run("full issuance marks item ISSUED with no procurement", func(t *testing.T) {
		items := []models.AssetRequestItem{
			{ItemID: "ITEM-1", AssetID: "AST-A", Quantity: 3, Status: status.ItemPending},
		}
		result, err := ApplyApproval(items, Stock{"AST-A": 10}, []Issuance{
			{ItemID: "ITEM-1", IssuedQuantity: 3},
		})
		require.NoError(t, err)

		assert.Equal(t, status.ItemIssued, result.Items[0].Status)
		assert.Equal(t, status.ProcurementNotRequired, result.Items[0].ProcurementStatus)
		assert.Equal(t, 3, result.Items[0].QuantityIssued)
		assert.Equal(t, 0, result.Items[0].Needed())
		assert.Equal(t, map[string]int{"AST-A": 3}, result.Deductions)
	})

	t.Run("partial issuance leaves remainder for procurement", func(t *testing.T) {
		items := []models.AssetRequestItem{
			{ItemID: "ITEM-1", AssetID: "AST-A", Quantity: 10, Status: status.ItemPending},
		}
		result, err := ApplyApproval(items, Stock{"AST-A": 4}, []Issuance{
			{ItemID: "ITEM-1", IssuedQuantity: 4},
		})
		require.NoError(t, err)

		it := result.Items[0]
		assert.Equal(t, status.ItemPartiallyIssued, it.Status)
		assert.Equal(t, status.ProcurementRequired, it.ProcurementStatus)
		assert.Equal(t, 4, it.QuantityIssued)
		assert.Equal(t, 6, it.Needed())
	})

	t.Run("omitted item is treated as zero issuance", func(t *testing.T) {
		items := []models.AssetRequestItem{
			{ItemID: "ITEM-1", AssetID: "AST-A", Quantity: 5, Status: status.ItemPending},
		}
		result, err := ApplyApproval(items, Stock{"AST-A": 5}, nil)
		require.NoError(t, err)

		it := result.Items[0]
		assert.Equal(t, status.ItemPendingProcurement, it.Status)
		assert.Equal(t, status.ProcurementRequired, it.ProcurementStatus)
		assert.Empty(t, result.Deductions)
	})

	t.Run("rejects issuance above requested quantity", func(t *testing.T) {
		items := []models.AssetRequestItem{
			{ItemID: "ITEM-1", AssetID: "AST-A", Quantity: 2, Status: status.ItemPending},
		}
		_, err := ApplyApproval(items, Stock{"AST-A": 10}, []Issuance{
			{ItemID: "ITEM-1", IssuedQuantity: 3},
		})
		assert.ErrorContains(t, err, "exceeds requested quantity")
	})

	t.Run("rejects negative issuance", func(t *testing.T) {
		items := []models.AssetRequestItem{
			{ItemID: "ITEM-1", AssetID: "AST-A", Quantity: 2, Status: status.ItemPending},
		}
		_, err := ApplyApproval(items, Stock{"AST-A": 10}, []Issuance{
			{ItemID: "ITEM-1", IssuedQuantity: -1},
		})
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		items := []models.AssetRequestItem{
			{ItemID: "ITEM-1", AssetID: "AST-A", Quantity: 2, Status: status.ItemPending},
		}
		_, err := ApplyApproval(items, Stock{"AST-A": 10}, []Issuance{
			{ItemID: "ITEM-9", IssuedQuantity: 1},
		})
		assert.ErrorContains(t, err, "unknown item")
	})

	t.Run("two items sharing one asset cannot exceed combined stock", func(t *testing.T) {
		items := []models.AssetRequestItem{
			{ItemID: "ITEM-1", AssetID: "AST-A", Quantity: 3, Status: status.ItemPending},
			{ItemID: "ITEM-2", AssetID: "AST-A", Quantity: 3, Status: status.ItemPending},
		}
		_, err := ApplyApproval(items, Stock{"AST-A": 4}, []Issuance{
			{ItemID: "ITEM-1", IssuedQuantity: 3},
			{ItemID: "ITEM-2", IssuedQuantity: 3},
		})
		assert.ErrorContains(t, err, "exceeds available stock")

		result, err := ApplyApproval(items, Stock{"AST-A": 4}, []Issuance{
			{ItemID: "ITEM-1", IssuedQuantity: 3},
			{ItemID: "ITEM-2", IssuedQuantity: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"AST-A": 4}, result.Deductions)
	})
}

func TestCompleteProcurement(t *testing.T) {
	base := models.AssetRequestItem{
		ItemID:            "ITEM-1",
		AssetID:           "AST-A",
		Quantity:          10,
		QuantityIssued:    4,
		Status:            status.ItemPartiallyIssued,
		ProcurementStatus: status.ProcurementOrdered,
	}

	t.Run("exact delivery settles item and completes procurement", func(t *testing.T) {
		result, err := CompleteProcurement(base, 0, 6)
		require.NoError(t, err)

		assert.Equal(t, status.ItemIssued, result.Item.Status)
		assert.Equal(t, status.ProcurementCompleted, result.Item.ProcurementStatus)
		assert.Equal(t, 10, result.Item.QuantityIssued)
		assert.Equal(t, 6, result.IssuedNow)
		assert.Equal(t, 0, result.StockDelta)
	})

	t.Run("over-delivery leaves surplus in stock", func(t *testing.T) {
		result, err := CompleteProcurement(base, 0, 9)
		require.NoError(t, err)

		assert.Equal(t, status.ItemIssued, result.Item.Status)
		assert.Equal(t, 6, result.IssuedNow)
		assert.Equal(t, 3, result.StockDelta)
	})

	t.Run("short delivery goes back to REQUIRED", func(t *testing.T) {
		result, err := CompleteProcurement(base, 0, 2)
		require.NoError(t, err)

		assert.Equal(t, status.ItemPartiallyIssued, result.Item.Status)
		assert.Equal(t, status.ProcurementRequired, result.Item.ProcurementStatus)
		assert.Equal(t, 6, result.Item.QuantityIssued)
		assert.Equal(t, 4, result.Item.Needed())
		assert.Equal(t, 0, result.StockDelta)
	})

	t.Run("existing stock covers what the delivery missed", func(t *testing.T) {
		result, err := CompleteProcurement(base, 5, 1)
		require.NoError(t, err)

		assert.Equal(t, status.ItemIssued, result.Item.Status)
		assert.Equal(t, 6, result.IssuedNow)
		// 1 về kho, 6 cấp ra: tồn kho giảm ròng 5.
		assert.Equal(t, -5, result.StockDelta)
	})

	t.Run("rejects non-positive delivery", func(t *testing.T) {
		_, err := CompleteProcurement(base, 0, 0)
		assert.ErrorContains(t, err, "at least 1")
	})

	t.Run("rejects item that is not ORDERED", func(t *testing.T) {
		item := base
		item.ProcurementStatus = status.ProcurementRequired
		_, err := CompleteProcurement(item, 0, 6)
		assert.ErrorContains(t, err, "not awaiting procurement delivery")
	})
}
