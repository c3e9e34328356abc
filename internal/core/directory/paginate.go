package directory

import "github.com/peerlink/matchmaker/internal/model"

const (
	// DefaultPageSize applies when a caller asks for a non-positive page size.
	DefaultPageSize = 12
	// MaxPageSize caps the page size.
	MaxPageSize = 100
)

// Page is one window over a filtered listing.
type Page struct {
	Items []model.MentorRecord
	model.Pagination
}

// Paginate slices records into the requested window. Out-of-range input is
// clamped: page below 1 becomes 1, page past the end becomes the last page,
// and the page size is bounded to [1, MaxPageSize] with DefaultPageSize for
// non-positive values. An empty listing yields no items and zero pages.
func Paginate(records []model.MentorRecord, page, pageSize int) Page {
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := min((page-1)*pageSize, total)
	end := min(page*pageSize, total)
	items := make([]model.MentorRecord, end-start)
	copy(items, records[start:end])

	return Page{
		Items: items,
		Pagination: model.Pagination{
			Page:       page,
			Limit:      pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page*pageSize < total,
			HasPrev:    page > 1,
		},
	}
}
