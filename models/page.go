package models

import "fmt"

// Page is the pagination envelope returned by list endpoints
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// PageCount returns ceil(total/size). A non-positive size yields zero pages.
func PageCount(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// NewPage slices items for the zero-based page number and fills in the counts
func NewPage[T any](items []T, number, size int) Page[T] {
	page := Page[T]{
		Content:       []T{},
		TotalElements: int64(len(items)),
		TotalPages:    PageCount(int64(len(items)), size),
		Number:        number,
		Size:          size,
	}
	if size <= 0 || number < 0 {
		return page
	}
	start := number * size
	if start >= len(items) {
		return page
	}
	end := min(start+size, len(items))
	page.Content = append(page.Content, items[start:end]...)
	return page
}

// Validate checks the envelope invariants
func (p Page[T]) Validate() error {
	if p.Size > 0 && len(p.Content) > p.Size {
		return fmt.Errorf("page holds %d items but size is %d", len(p.Content), p.Size)
	}
	if want := PageCount(p.TotalElements, p.Size); p.TotalPages != want {
		return fmt.Errorf("page reports %d total pages, expected %d", p.TotalPages, want)
	}
	return nil
}
