// Package pagination implements the page window shared by every feed.
package pagination

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PageSize is the number of items in every feed page
const PageSize = 10

// Page is one window of an ordered result set
type Page[T any] struct {
	Items    []T
	Number   int
	PerPage  int
	Count    int64
	NumPages int
}

// HasNext reports whether a later page exists
func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

// HasPrevious reports whether an earlier page exists
func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

// NumPagesFor returns how many pages count items fill. An empty result still
// has one (empty) page.
func NumPagesFor(count int64, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 1
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}

// ParseNumber turns the raw "page" query value into a page number.
// Missing, non-integer and non-positive values mean the first page; values
// past the end are clamped to the last page.
func ParseNumber(raw string, numPages int) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return numPages
	}
	if err != nil || n < 1 {
		return 1
	}
	if n > numPages {
		return numPages
	}
	return n
}

// Paginate counts query, resolves the requested page and loads its items.
// scopes are applied to the item query only (preloads, ordering).
func Paginate[T any](query *gorm.DB, rawPage string, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	if perPage <= 0 {
		perPage = PageSize
	}
	query = query.Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	page := &Page[T]{
		PerPage:  perPage,
		Count:    count,
		NumPages: NumPagesFor(count, perPage),
		Items:    []T{},
	}
	page.Number = ParseNumber(rawPage, page.NumPages)

	if count == 0 {
		return page, nil
	}

	offset := (page.Number - 1) * perPage
	if err := query.Scopes(scopes...).Offset(offset).Limit(perPage).Find(&page.Items).Error; err != nil {
		return nil, err
	}

	return page, nil
}
