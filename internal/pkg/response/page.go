package response

// ListResponse is the standard wrapper for list endpoints.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse wraps items for a list endpoint.
// An empty slice is substituted for nil so the JSON never contains null.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = make([]T, 0)
	}

	return ListResponse[T]{
		Items: items,
		Total: len(items),
	}
}
