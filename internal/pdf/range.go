package pdf

import "fmt"

// PageRange resolves a requested start/end page window against a document's
// page count. Zero values mean "from the first page" and "to the last page".
// The returned slice holds 1-based page numbers in order.
func PageRange(pageCount, start, end int) ([]int, error) {
	if pageCount < 1 {
		return nil, fmt.Errorf("document has no pages")
	}

	if start == 0 {
		start = 1
	}
	if end == 0 {
		end = pageCount
	}

	if start < 1 || start > pageCount {
		return nil, fmt.Errorf("start page %d out of range 1..%d", start, pageCount)
	}
	if end < start || end > pageCount {
		return nil, fmt.Errorf("end page %d out of range %d..%d", end, start, pageCount)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages, nil
}
