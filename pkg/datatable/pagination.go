package datatable

import "strconv"

// PageItemKind identifies an element of the pagination control.
type PageItemKind int

const (
	PageItemPrev PageItemKind = iota
	PageItemPage
	PageItemEllipsis
	PageItemNext
)

// PageItem is one button or separator of the pagination control.
// Page is the page a click navigates to; it is zero for ellipses.
type PageItem struct {
	Kind     PageItemKind
	Label    string
	Page     int
	Active   bool
	Disabled bool
}

// Pagination builds the control for current out of total pages:
//
//	« [1] [...] (current-1) current (current+1) [...] [total] »
//
// The first page button and leading ellipsis appear from page 3 on, the
// trailing ones while more than two and one page respectively remain.
func Pagination(current, total int) []PageItem {
	total = max(total, 1)
	current = clampPage(current, total)

	items := make([]PageItem, 0, 9)
	items = append(items, PageItem{Kind: PageItemPrev, Label: "«", Page: current - 1, Disabled: current == 1})

	if current > 2 {
		items = append(items, pageButton(1, false))
	}
	if current >= 3 {
		items = append(items, PageItem{Kind: PageItemEllipsis, Label: "..."})
	}

	for i := current - 1; i <= current+1; i++ {
		if i > 0 && i <= total {
			items = append(items, pageButton(i, i == current))
		}
	}

	if current < total-2 {
		items = append(items, PageItem{Kind: PageItemEllipsis, Label: "..."})
	}
	if current < total-1 {
		items = append(items, pageButton(total, false))
	}

	items = append(items, PageItem{Kind: PageItemNext, Label: "»", Page: current + 1, Disabled: current == total})
	return items
}

func pageButton(page int, active bool) PageItem {
	return PageItem{Kind: PageItemPage, Label: strconv.Itoa(page), Page: page, Active: active}
}
