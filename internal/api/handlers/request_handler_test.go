package handlers

import (
	"testing"

	"aquafarm-hrm-api-server/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestItemInStateFilterGuardsProcurementState(t *testing.T) {
	filter := itemInStateFilter("AREQ-0A1B2C3D", "ITEM-11223344", status.ProcurementOrdered)

	assert.Equal(t, "AREQ-0A1B2C3D", filter["requestID"])

	items, ok := filter["items"].(bson.M)
	require.True(t, ok, "items filter must be a bson.M")

	elem, ok := items["$elemMatch"].(bson.M)
	require.True(t, ok, "items filter must use $elemMatch so itemID and procurementStatus match the same element")

	assert.Equal(t, "ITEM-11223344", elem["itemID"])
	assert.Equal(t, status.ProcurementOrdered, elem["procurementStatus"])
}
