package core

// PageRequest carries caller-specified pagination: zero-based page number,
// page size, and an optional sort column with direction. It is an opaque
// contract; no paging library types leak through it.
type PageRequest struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

// Offset returns the row offset for the request.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is the envelope returned by paginated queries: a bounded slice of
// results plus total-count metadata for client-side pagination.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"page"`
	Size          int   `json:"size"`
}

// NewPage wraps content with pagination metadata. Content is never nil so the
// envelope always serializes with a JSON array.
func NewPage[T any](content []T, total int64, req PageRequest) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        req.Page,
		Size:          req.Size,
	}
}
