package pagination

import (
	"encoding/json"
	"strconv"
	"strings"
)

const DefaultPageSize = 9

// Gap marks an elided run of pages in a compact page range.
const Gap RangeItem = 0

// RangeItem is a page number, or Gap which serialises as "...".
type RangeItem int

func (r RangeItem) MarshalJSON() ([]byte, error) {
	if r == Gap {
		return json.Marshal("...")
	}
	return json.Marshal(int(r))
}

type Meta struct {
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
	TotalItems  int64       `json:"total_items"`
	TotalPages  int         `json:"total_pages"`
	HasNext     bool        `json:"has_next"`
	HasPrevious bool        `json:"has_previous"`
	PageRange   []RangeItem `json:"page_range"`
}

// ParsePage parses a raw ?page= value; anything unparsable or below 1 is page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TotalPages returns the page count for total items. An empty set still has one page.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Clamp resolves a requested page against the total, returning a page in [1, TotalPages].
func Clamp(page int, total int64, size int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(total, size); page > last {
		return last
	}
	return page
}

// Offset is the row offset of a (1-based) page.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// NewMeta builds page metadata for an already-clamped page.
func NewMeta(page, size int, total int64) Meta {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := TotalPages(total, size)
	page = Clamp(page, total, size)
	return Meta{
		Page:        page,
		PageSize:    size,
		TotalItems:  total,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrevious: page > 1,
		PageRange:   CompactRange(page, pages, 2),
	}
}

// CompactRange lists page numbers around current with Gap markers, e.g.
// [1 ... 4 5 6 ... 10] for current=5, total=10, window=1.
func CompactRange(current, total, window int) []RangeItem {
	if total <= 0 {
		return []RangeItem{}
	}
	if total <= window*2+5 {
		return span(1, total)
	}
	left := max(1, current-window)
	right := min(total, current+window)

	var out []RangeItem
	if left > 2 {
		out = append(out, 1, Gap)
	} else {
		out = append(out, span(1, left-1)...)
	}
	out = append(out, span(left, right)...)
	if right < total-1 {
		out = append(out, Gap, RangeItem(total))
	} else {
		out = append(out, span(right+1, total)...)
	}
	return out
}

func span(from, to int) []RangeItem {
	if to < from {
		return nil
	}
	out := make([]RangeItem, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, RangeItem(i))
	}
	return out
}
