package productboard

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultLimit applies when the caller omits the maximum or supplies
	// something non-numeric or non-positive.
	DefaultLimit = 100
	// MaxLimit caps how many items one listing invocation may accumulate.
	MaxLimit = 1000
	// pageSize is the largest page requested from the API.
	pageSize = 100
)

// Page is the accumulated result of a pagination walk. Data never holds more
// than the requested maximum; HasMore reports whether a further continuation
// token existed when the walk stopped.
type Page struct {
	Data    []any `json:"data"`
	Count   int   `json:"count"`
	HasMore bool  `json:"has_more"`
}

// Limit normalizes a caller-supplied maximum: floor to an integer, fall back
// to DefaultLimit when absent/non-numeric/non-positive, clamp to [1, MaxLimit].
func Limit(v any) int {
	n, ok := normNumber(v)
	if !ok {
		return DefaultLimit
	}
	limit := int(math.Floor(n))
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func normNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// listAll walks a link-paginated listing: each response carries a data array
// and a links.next URL. The first request injects min(pageSize, max) as
// pageSizeParam unless the caller set it; every follow-up uses the next link
// verbatim. The walk stops as soon as max items are held, never fetching a
// page whose items would all be discarded.
func (c *apiClient) listAll(ctx context.Context, path string, query map[string]string, pageSizeParam string, max int) (*Page, error) {
	firstQuery := make(map[string]string, len(query)+1)
	for k, v := range query {
		firstQuery[k] = v
	}
	if pageSizeParam != "" && firstQuery[pageSizeParam] == "" {
		firstQuery[pageSizeParam] = strconv.Itoa(minInt(pageSize, max))
	}

	page := &Page{Data: []any{}}
	next := ""
	for {
		var (
			payload map[string]any
			err     error
		)
		if next == "" {
			payload, err = c.do(ctx, request{method: http.MethodGet, path: path, query: firstQuery})
		} else {
			payload, err = c.do(ctx, request{method: http.MethodGet, url: next})
		}
		if err != nil {
			return nil, err
		}

		items := dataItems(payload)
		remaining := max - len(page.Data)
		if len(items) > remaining {
			items = items[:remaining]
		}
		page.Data = append(page.Data, items...)
		next = nextLink(payload)

		if len(page.Data) >= max {
			page.HasMore = next != ""
			break
		}
		if next == "" {
			break
		}
	}

	page.Count = len(page.Data)
	log.Debug().Str("path", path).Int("count", page.Count).Bool("hasMore", page.HasMore).Msg("listing walk finished")
	return page, nil
}

// listCursor walks a cursor-paginated listing (the notes convention): each
// response carries a data array and a sibling pageCursor token. Page sizes
// are min(pageSize, remaining); the cursor is omitted entirely when none is
// held.
func (c *apiClient) listCursor(ctx context.Context, path string, query map[string]string, max int) (*Page, error) {
	page := &Page{Data: []any{}}
	cursor := ""
	for {
		remaining := max - len(page.Data)
		q := make(map[string]string, len(query)+2)
		for k, v := range query {
			q[k] = v
		}
		q["pageLimit"] = strconv.Itoa(minInt(pageSize, remaining))
		if cursor != "" {
			q["pageCursor"] = cursor
		}

		payload, err := c.do(ctx, request{method: http.MethodGet, path: path, query: q})
		if err != nil {
			return nil, err
		}

		items := dataItems(payload)
		if len(items) > remaining {
			items = items[:remaining]
		}
		page.Data = append(page.Data, items...)

		cursor, _ = payload["pageCursor"].(string)
		if len(page.Data) >= max {
			page.HasMore = cursor != ""
			break
		}
		if cursor == "" {
			break
		}
	}

	page.Count = len(page.Data)
	log.Debug().Str("path", path).Int("count", page.Count).Bool("hasMore", page.HasMore).Msg("cursor walk finished")
	return page, nil
}

func dataItems(payload map[string]any) []any {
	items, _ := payload["data"].([]any)
	return items
}

func nextLink(payload map[string]any) string {
	links, ok := payload["links"].(map[string]any)
	if !ok {
		return ""
	}
	next, _ := links["next"].(string)
	return next
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
