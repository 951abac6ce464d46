package domain

import (
	"fmt"
	"sort"
)

// ShoeIDs returns the distinct shoes referenced by the items, sorted so rows are always locked in the same order.
func ShoeIDs(items []OrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ShoeID]; ok {
			continue
		}
		seen[item.ShoeID] = struct{}{}
		ids = append(ids, item.ShoeID)
	}
	sort.Strings(ids)
	return ids
}

// ReserveStock prices every item from its shoe and takes the ordered quantity out of the variant stock.
// Nothing is modified when any item cannot be served.
func ReserveStock(items []OrderItem, shoes map[string]*Shoe) error {
	type take struct {
		stock *SizeStock
		qty   int
	}
	takes := make([]take, 0, len(items))
	want := make(map[*SizeStock]int)

	for i := range items {
		item := &items[i]
		shoe, ok := shoes[item.ShoeID]
		if !ok {
			return fmt.Errorf("shoe %s: %w", item.ShoeID, ErrRecordNotFound)
		}
		st, ok := shoe.Stock(item.Color, item.Size)
		if !ok {
			return fmt.Errorf("shoe %s has no %s variant in size %v: %w", item.ShoeID, item.Color, item.Size, ErrRecordNotFound)
		}
		want[st] += item.Quantity
		if want[st] > st.Stock {
			return fmt.Errorf("shoe %s %s size %v: %d requested, %d left: %w",
				item.ShoeID, item.Color, item.Size, want[st], st.Stock, ErrInsufficientStock)
		}
		takes = append(takes, take{stock: st, qty: item.Quantity})
	}

	for i, t := range takes {
		t.stock.Stock -= t.qty
		items[i].UnitPrice = shoes[items[i].ShoeID].Price
	}
	return nil
}

// ReleaseStock puts the quantities of a cancelled order back. Variants that no longer exist are skipped.
func ReleaseStock(items []OrderItem, shoes map[string]*Shoe) {
	for _, item := range items {
		shoe, ok := shoes[item.ShoeID]
		if !ok {
			continue
		}
		if st, ok := shoe.Stock(item.Color, item.Size); ok {
			st.Stock += item.Quantity
		}
	}
}
