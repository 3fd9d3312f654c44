package dto

// PageResponse is the envelope for paginated collections.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPageResponse computes the page count from the total and size.
func NewPageResponse[T any](content []T, page, size int, total int64) PageResponse[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	if content == nil {
		content = []T{}
	}
	return PageResponse[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
