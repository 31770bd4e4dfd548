package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PageRequest carries the pageNumber/pageSize query parameters of list endpoints.
type PageRequest struct {
	PageNumber int `form:"pageNumber" json:"pageNumber"`
	PageSize   int `form:"pageSize" json:"pageSize"`
}

// Normalize clamps the page number to >= 1 and resets out-of-range sizes to the default.
func (p PageRequest) Normalize() PageRequest {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset returns the number of rows to skip for the normalised page.
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.PageNumber - 1) * n.PageSize
}

// PagedResult is the envelope returned by every paginated list endpoint.
type PagedResult[T any] struct {
	Items       []T  `json:"items"`
	TotalCount  int  `json:"totalCount"`
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// NewPagedResult derives page metadata from the total count. Items is never nil.
func NewPagedResult[T any](items []T, total int, page PageRequest) PagedResult[T] {
	page = page.Normalize()
	if items == nil {
		items = []T{}
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + page.PageSize - 1) / page.PageSize
	return PagedResult[T]{
		Items:       items,
		TotalCount:  total,
		PageNumber:  page.PageNumber,
		PageSize:    page.PageSize,
		TotalPages:  totalPages,
		HasPrevious: page.PageNumber > 1,
		HasNext:     page.PageNumber < totalPages,
	}
}

// MapPaged converts the items of a paged result while keeping its metadata.
func MapPaged[T, U any](in PagedResult[T], fn func(T) U) PagedResult[U] {
	out := make([]U, 0, len(in.Items))
	for _, item := range in.Items {
		out = append(out, fn(item))
	}
	return PagedResult[U]{
		Items:       out,
		TotalCount:  in.TotalCount,
		PageNumber:  in.PageNumber,
		PageSize:    in.PageSize,
		TotalPages:  in.TotalPages,
		HasPrevious: in.HasPrevious,
		HasNext:     in.HasNext,
	}
}
