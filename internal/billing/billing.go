// Package billing folds a table's orders into one consolidated bill.
package billing

import (
	"fmt"
	"math"
	"sort"

	"github.com/iliyamo/menuq/internal/model"
)

// Aggregate builds the bill for tableID from orders.  Orders for other
// tables are ignored, so callers may pass a full snapshot.  Every line item
// with the same menu item id folds into one BillLine: the first occurrence
// seeds name and unit price, and each occurrence adds its own quantity and
// its own price times quantity to the running total.  Lines are sorted by
// item id so the same orders always produce the same bill.
//
// The returned bill has no ID; the caller assigns one when storing it.
// With no matching orders Aggregate returns model.ErrNoOrdersForTable; a
// negative quantity or price, or a total beyond int64, is model.ErrInvalid.
func Aggregate(tableID model.TableID, orders []model.Order) (model.Bill, error) {
	lines := map[string]*model.BillLine{}
	matched := 0
	for _, o := range orders {
		if o.TableID != tableID {
			continue
		}
		matched++
		for _, it := range o.Items {
			line, ok := lines[it.ID]
			if !ok {
				line = &model.BillLine{ItemID: it.ID, Name: it.Name, PriceCents: it.PriceCents}
				lines[it.ID] = line
			}
			lt, ok := lineTotal(it)
			if !ok {
				return model.Bill{}, fmt.Errorf("%w: order %s item %s: price %d x %d", model.ErrInvalid, o.ID, it.ID, it.PriceCents, it.Quantity)
			}
			if line.TotalCents, ok = addCents(line.TotalCents, lt); !ok || line.Quantity > math.MaxInt-it.Quantity {
				return model.Bill{}, fmt.Errorf("%w: bill for table %s overflows", model.ErrInvalid, tableID)
			}
			line.Quantity += it.Quantity
		}
	}
	if matched == 0 {
		return model.Bill{}, fmt.Errorf("table %s: %w", tableID, model.ErrNoOrdersForTable)
	}

	bill := model.Bill{TableID: tableID, Items: make([]model.BillLine, 0, len(lines))}
	for _, line := range lines {
		bill.Items = append(bill.Items, *line)
		var ok bool
		if bill.TotalCents, ok = addCents(bill.TotalCents, line.TotalCents); !ok {
			return model.Bill{}, fmt.Errorf("%w: bill for table %s overflows", model.ErrInvalid, tableID)
		}
	}
	sort.Slice(bill.Items, func(i, j int) bool { return bill.Items[i].ItemID < bill.Items[j].ItemID })
	return bill, nil
}

func lineTotal(it model.OrderLineItem) (int64, bool) {
	if it.Quantity < 0 || it.PriceCents < 0 {
		return 0, false
	}
	if it.PriceCents > 0 && int64(it.Quantity) > math.MaxInt64/it.PriceCents {
		return 0, false
	}
	return it.LineTotal(), true
}

// addCents adds two non-negative amounts, reporting false on overflow.
func addCents(a, b int64) (int64, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
