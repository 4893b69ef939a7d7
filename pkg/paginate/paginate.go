package paginate

// Page is the pagination envelope returned by every listing endpoint.
type Page[T any] struct {
	Results      []T   `json:"results"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params carries the normalized page/limit pair. Offset is derived, never
// supplied by clients.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps raw query values into a usable Params.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewPage assembles the envelope from a result slice and a total count.
func NewPage[T any](results []T, p Params, total int64) Page[T] {
	if results == nil {
		results = make([]T, 0)
	}

	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}

	return Page[T]{
		Results:      results,
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}
