// Package pagination serves collections page by page. A page is rendered as
// {count, next, previous, results} with absolute next/previous links.
package pagination

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const lastPage = "last"

var ErrInvalidPage = errors.New("invalid page")

// Collection is a lazily evaluated result set. Count and Slice let a page be
// read without loading the rest.
type Collection[T any] interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
	All(ctx context.Context) ([]T, error)
}

type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Paginator holds the page size policy. A zero PageSize disables paging.
type Paginator struct {
	PageSize           int
	MaxPageSize        int
	PageQueryParam     string
	PageSizeQueryParam string
}

func Default() Paginator {
	return Paginator{
		PageSize:           10,
		MaxPageSize:        100,
		PageQueryParam:     "page",
		PageSizeQueryParam: "page_size",
	}
}

// Source produces the collection to serve for a request.
type Source[T any] func(c *gin.Context) (Collection[T], error)

// Paginate wraps source into a handler that renders one page of it, each
// item passed through project. With paging disabled the whole collection is
// rendered as a plain list.
func Paginate[T any](p Paginator, source Source[T], project func(T) map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		coll, err := source(c)
		if err != nil {
			_ = c.Error(err)
			return
		}

		if p.PageSize <= 0 {
			items, err := coll.All(c.Request.Context())
			if err != nil {
				_ = c.Error(err)
				return
			}
			c.JSON(http.StatusOK, projectAll(items, project))
			return
		}

		page, err := Resolve(c.Request.Context(), p, c.Request, coll)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, Page[map[string]any]{
			Count:    page.Count,
			Next:     page.Next,
			Previous: page.Previous,
			Results:  projectAll(page.Results, project),
		})
	}
}

// Resolve reads the page requested by r out of coll.
func Resolve[T any](ctx context.Context, p Paginator, r *http.Request, coll Collection[T]) (*Page[T], error) {
	count, err := coll.Count(ctx)
	if err != nil {
		return nil, err
	}

	size := p.pageSize(r.URL.Query())
	pages := numPages(count, size)
	number, err := p.pageNumber(r.URL.Query(), pages)
	if err != nil {
		return nil, err
	}

	items, err := coll.Slice(ctx, (number-1)*size, size)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	page := &Page[T]{Count: count, Results: items}
	if number < pages {
		page.Next = p.link(r, number+1)
	}
	if number > 1 {
		page.Previous = p.link(r, number-1)
	}

	return page, nil
}

// pageSize honours the size parameter when it is a positive integer, capped
// at MaxPageSize, and falls back to the default otherwise.
func (p Paginator) pageSize(q url.Values) int {
	if p.PageSizeQueryParam == "" {
		return p.PageSize
	}
	n, err := strconv.Atoi(q.Get(p.PageSizeQueryParam))
	if err != nil || n <= 0 {
		return p.PageSize
	}
	if p.MaxPageSize > 0 && n > p.MaxPageSize {
		return p.MaxPageSize
	}
	return n
}

func (p Paginator) pageNumber(q url.Values, pages int) (int, error) {
	raw := q.Get(p.PageQueryParam)
	switch raw {
	case "":
		return 1, nil
	case lastPage:
		return pages, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > pages {
		return 0, ErrInvalidPage
	}
	return n, nil
}

// link builds the absolute URL of page n. The first page drops the page
// parameter altogether.
func (p Paginator) link(r *http.Request, n int) *string {
	u := *r.URL
	u.Host = r.Host
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}

	q := u.Query()
	if n == 1 {
		q.Del(p.PageQueryParam)
	} else {
		q.Set(p.PageQueryParam, strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()

	s := u.String()
	return &s
}

func numPages(count, size int) int {
	if count == 0 {
		return 1
	}
	return (count + size - 1) / size
}

func projectAll[T any](items []T, project func(T) map[string]any) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, it := range items {
		out[i] = project(it)
	}
	return out
}

// SliceCollection serves an in-memory slice as a Collection.
type SliceCollection[T any] []T

func (s SliceCollection[T]) Count(context.Context) (int, error) { return len(s), nil }

func (s SliceCollection[T]) Slice(_ context.Context, offset, limit int) ([]T, error) {
	if offset >= len(s) {
		return []T{}, nil
	}
	end := min(offset+limit, len(s))
	return s[offset:end], nil
}

func (s SliceCollection[T]) All(context.Context) ([]T, error) { return s, nil }
