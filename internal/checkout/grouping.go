package checkout

import "github.com/google/uuid"

// SellerOrderGroup collects the resolved items owed to one seller and, once
// priced, the totals of the order it becomes.
type SellerOrderGroup struct {
	SellerID      uuid.UUID
	Items         []ResolvedLineItem
	SubtotalCents int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64
}

// GroupBySeller partitions items by seller. Groups appear in the order their
// seller was first seen and items keep their cart order.
func GroupBySeller(items []ResolvedLineItem) []SellerOrderGroup {
	index := make(map[uuid.UUID]int)
	groups := make([]SellerOrderGroup, 0)
	for _, item := range items {
		pos, ok := index[item.SellerID]
		if !ok {
			pos = len(groups)
			index[item.SellerID] = pos
			groups = append(groups, SellerOrderGroup{SellerID: item.SellerID})
		}
		groups[pos].Items = append(groups[pos].Items, item)
	}
	return groups
}
