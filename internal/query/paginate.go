package query

import (
	"net/url"
	"strconv"

	"github.com/osu-parks/parks-api/internal/domain"
)

// Query parameter names for pagination.
const (
	ParamPageSize   = "page[size]"
	ParamPageNumber = "page[number]"
)

// Page is a requested page. The zero Page means no pagination.
type Page struct {
	Size   int
	Number int
}

// IsZero reports whether no pagination was requested.
func (p Page) IsZero() bool {
	return p.Size == 0 && p.Number == 0
}

// PageMeta describes a page within a result set.
type PageMeta struct {
	TotalResults      int
	TotalPages        int
	CurrentPageNumber int
	CurrentPageSize   int
}

// HasPrev reports whether a page precedes the current one.
func (m PageMeta) HasPrev() bool {
	return m.CurrentPageNumber > 1
}

// HasNext reports whether a page follows the current one.
func (m PageMeta) HasNext() bool {
	return m.CurrentPageNumber < m.TotalPages
}

// LastPage is the number of the last page, at least 1.
func (m PageMeta) LastPage() int {
	if m.TotalPages < 1 {
		return 1
	}
	return m.TotalPages
}

// ParsePage reads page[size] and page[number]. When neither is present the zero
// Page is returned. When only one is present the other defaults to defaultSize or 1.
// Sizes above maxSize are capped. Values below 1 or not integers are a
// *domain.MalformedRequestError.
func ParsePage(values url.Values, defaultSize, maxSize int) (Page, error) {
	rawSize, hasSize := values[ParamPageSize]
	rawNumber, hasNumber := values[ParamPageNumber]
	if !hasSize && !hasNumber {
		return Page{}, nil
	}

	p := Page{Size: defaultSize, Number: 1}
	var err error
	if hasSize {
		if p.Size, err = positiveInt(ParamPageSize, first(rawSize)); err != nil {
			return Page{}, err
		}
	}
	if hasNumber {
		if p.Number, err = positiveInt(ParamPageNumber, first(rawNumber)); err != nil {
			return Page{}, err
		}
	}
	if maxSize > 0 && p.Size > maxSize {
		p.Size = maxSize
	}
	return p, nil
}

// Paginate computes the [lo, hi) bounds of page p over n rows.
// The zero Page spans every row. Pages past the end yield lo == hi.
func Paginate(n int, p Page) (lo, hi int, meta PageMeta) {
	if p.IsZero() {
		pages := 0
		if n > 0 {
			pages = 1
		}
		return 0, n, PageMeta{TotalResults: n, TotalPages: pages, CurrentPageNumber: 1, CurrentPageSize: n}
	}

	meta = PageMeta{
		TotalResults:      n,
		TotalPages:        (n + p.Size - 1) / p.Size,
		CurrentPageNumber: p.Number,
		CurrentPageSize:   p.Size,
	}

	if p.Number > meta.TotalPages {
		return n, n, meta
	}
	lo = (p.Number - 1) * p.Size
	hi = min(lo+p.Size, n)
	return lo, hi, meta
}

// PageSlice returns the rows on page p and the page metadata.
func PageSlice[T any](rows []T, p Page) ([]T, PageMeta) {
	lo, hi, meta := Paginate(len(rows), p)
	return rows[lo:hi], meta
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func positiveInt(name, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.MalformedRequestError{Reason: name + " must be an integer", Err: err}
	}
	if v < 1 {
		return 0, domain.NewMalformedRequest("%s must be at least 1", name)
	}
	return v, nil
}
