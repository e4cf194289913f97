// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/arxivist/internal/httputil"
	"github.com/pdiddy/arxivist/pkg/query"
	"github.com/pdiddy/arxivist/pkg/types"
)

func init() {
	// Use a tiny base delay so retry paths finish quickly.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

// feedWith renders a minimal valid feed with n entries starting at start.
func feedWith(total, start, n int) string {
	s := `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">` +
		fmt.Sprintf("<totalResults>%d</totalResults><startIndex>%d</startIndex><itemsPerPage>%d</itemsPerPage>", total, start, n)
	for i := 0; i < n; i++ {
		s += fmt.Sprintf(`<entry><id>http://arxiv.org/abs/2101.%05dv1</id><title>Paper %d</title></entry>`, start+i+1, start+i+1)
	}
	return s + `</feed>`
}

// newTestClient wires a client to a handler with rate limiting disabled.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	base := []Option{
		WithBaseURL(ts.URL),
		WithHTTPClient(ts.Client()),
		WithRateInterval(0),
		WithUserAgent("arxivist-test/0.1"),
	}
	return NewClient(append(base, opts...)...)
}

func TestSearchSendsQueryParams(t *testing.T) {
	var gotQuery, gotStart, gotMax, gotSortBy, gotSortOrder, gotUA string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = q.Get("search_query")
		gotStart = q.Get("start")
		gotMax = q.Get("max_results")
		gotSortBy = q.Get("sortBy")
		gotSortOrder = q.Get("sortOrder")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, feedWith(1, 0, 1))
	})

	b := query.New().Title("deep learning").And().Author("Goodfellow").
		SortBy("relevance", "descending")
	rs, err := c.Search(context.Background(), b, Page{Start: 5, MaxResults: 7})
	require.NoError(t, err)

	assert.Equal(t, `ti:"deep learning" AND au:"Goodfellow"`, gotQuery)
	assert.Equal(t, "5", gotStart)
	assert.Equal(t, "7", gotMax)
	assert.Equal(t, "relevance", gotSortBy)
	assert.Equal(t, "descending", gotSortOrder)
	assert.Equal(t, "arxivist-test/0.1", gotUA)
	assert.Equal(t, "relevance", rs.SortBy)
	require.Len(t, rs.Entries, 1)
}

func TestSearchEmptyQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty query")
	})
	_, err := c.Search(context.Background(), query.New(), Page{})
	var iqe *query.InvalidQueryError
	require.ErrorAs(t, err, &iqe)
}

func TestSearchBuilderErrorSurfaces(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a malformed builder")
	})
	_, err := c.Search(context.Background(), query.New().And(), Page{})
	var iqe *query.InvalidQueryError
	require.ErrorAs(t, err, &iqe)
}

func TestSearchPageValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid page")
	})
	b := query.New().Title("a")

	_, err := c.Search(context.Background(), b, Page{Start: -1})
	var iqe *query.InvalidQueryError
	require.ErrorAs(t, err, &iqe)

	_, err = c.Search(context.Background(), b, Page{MaxResults: 2001})
	require.ErrorAs(t, err, &iqe)
}

func TestSearchAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service melted", http.StatusInternalServerError)
	})
	_, err := c.SearchRaw(context.Background(), `ti:"a"`, Page{})
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusInternalServerError, ae.StatusCode)
	assert.Contains(t, ae.Body, "service melted")
}

func TestSearchParseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "definitely not atom")
	})
	_, err := c.SearchRaw(context.Background(), `ti:"a"`, Page{})
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestSearchRetriesOn429(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, feedWith(1, 0, 1))
	})
	rs, err := c.SearchRaw(context.Background(), `ti:"a"`, Page{})
	require.NoError(t, err)
	assert.Len(t, rs.Entries, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2101.00001v2", r.URL.Query().Get("id_list"))
		fmt.Fprint(w, `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">
			<entry><id>http://arxiv.org/abs/2101.00001v2</id><title>Example</title></entry></feed>`)
	})
	p, err := c.GetByID(context.Background(), "2101.00001v2")
	require.NoError(t, err)
	assert.Equal(t, "Example", p.Title)
	assert.Equal(t, "2101.00001", p.ShortID())
}

func TestGetByIDNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedWith(0, 0, 0))
	})
	_, err := c.GetByID(context.Background(), "2101.99999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a malformed identifier")
	})

	tests := []string{"", "not-an-id", "21.00001", "abs/2101.00001"}
	for _, id := range tests {
		_, err := c.GetByID(context.Background(), id)
		var iqe *query.InvalidQueryError
		assert.ErrorAs(t, err, &iqe, "id %q", id)
	}
}

func TestGetByIDLegacyAccepted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">
			<entry><id>http://arxiv.org/abs/hep-th/9901001v1</id><title>Legacy</title></entry></feed>`)
	})
	p, err := c.GetByID(context.Background(), "hep-th/9901001")
	require.NoError(t, err)
	assert.Equal(t, "hep-th/9901001", p.ShortID())
}

func TestSearchAllPaginates(t *testing.T) {
	const total = 5
	var requests int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		max, _ := strconv.Atoi(r.URL.Query().Get("max_results"))
		n := total - start
		if n > max {
			n = max
		}
		if n < 0 {
			n = 0
		}
		fmt.Fprint(w, feedWith(total, start, n))
	})

	rs, err := c.SearchAll(context.Background(), query.New().Title("a"), 2, 10)
	require.NoError(t, err)
	assert.Len(t, rs.Entries, total)
	assert.Equal(t, total, rs.TotalResults)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestSearchAllHonorsLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		max, _ := strconv.Atoi(r.URL.Query().Get("max_results"))
		fmt.Fprint(w, feedWith(100, start, max))
	})

	rs, err := c.SearchAll(context.Background(), query.New().Title("a"), 2, 3)
	require.NoError(t, err)
	assert.Len(t, rs.Entries, 3)
}

func TestSearchAllMidPageFailureAbortsWholeCall(t *testing.T) {
	var requests int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) > 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		fmt.Fprint(w, feedWith(10, start, 2))
	})

	_, err := c.SearchAll(context.Background(), query.New().Title("a"), 2, 10)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
}

func TestRateLimiterSpacesConcurrentRequests(t *testing.T) {
	const (
		n        = 3
		interval = 50 * time.Millisecond
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedWith(1, 0, 1))
	}, WithRateInterval(interval))

	started := time.Now()
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := c.SearchRaw(context.Background(), `ti:"a"`, Page{})
			return err
		})
	}
	require.NoError(t, g.Wait())

	elapsed := time.Since(started)
	assert.GreaterOrEqual(t, elapsed, (n-1)*interval,
		"dispatches not spaced by the rate limiter")
}

func TestRateLimiterWaitHonorsCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedWith(1, 0, 1))
	}, WithRateInterval(time.Hour))

	// First request consumes the initial token.
	_, err := c.SearchRaw(context.Background(), `ti:"a"`, Page{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err = c.SearchRaw(ctx, `ti:"a"`, Page{})
	require.Error(t, err)
	assert.Less(t, time.Since(started), time.Second, "cancelled wait should return promptly")
}

func TestFromConfig(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "arxivist-test/0.1", r.Header.Get("User-Agent"))
		fmt.Fprint(w, feedWith(1, 0, 1))
	}))
	t.Cleanup(ts.Close)

	cfg := types.ClientConfig{BaseURL: ts.URL, MaxRetries: 1}
	cfg.UserAgent = "arxivist-test/0.1"
	cfg.Timeout = 5 * time.Second

	c := FromConfig(cfg)
	rs, err := c.SearchRaw(context.Background(), `ti:"a"`, Page{})
	require.NoError(t, err)
	assert.Len(t, rs.Entries, 1)
}

// TestLiveSearch hits the real arXiv API and is skipped unless
// ARXIVIST_LIVE_TESTS=1 is exported.
func TestLiveSearch(t *testing.T) {
	if os.Getenv("ARXIVIST_LIVE_TESTS") != "1" {
		t.Skip("set ARXIVIST_LIVE_TESTS=1 to run live API tests")
	}

	c := NewClient()
	rs, err := c.Search(context.Background(), query.New().Title("electron"), Page{MaxResults: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rs.Entries), 1)
}
