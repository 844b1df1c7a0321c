package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBySellerKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	sellerA, sellerB := uuid.New(), uuid.New()
	items := []ResolvedLineItem{
		{Index: 0, SellerID: sellerB, LineTotalCents: 100},
		{Index: 1, SellerID: sellerA, LineTotalCents: 200},
		{Index: 2, SellerID: sellerB, LineTotalCents: 300},
	}

	groups := GroupBySeller(items)
	require.Len(t, groups, 2)
	assert.Equal(t, sellerB, groups[0].SellerID)
	assert.Equal(t, sellerA, groups[1].SellerID)

	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, 0, groups[0].Items[0].Index)
	assert.Equal(t, 2, groups[0].Items[1].Index)
	require.Len(t, groups[1].Items, 1)
	assert.Equal(t, 1, groups[1].Items[0].Index)
}

func TestGroupBySellerEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GroupBySeller(nil))
}
