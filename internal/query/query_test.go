package query

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"shopctl/internal/api"
	"shopctl/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeLoader records every request it receives and serves a fixed-size
// collection paged by the params.
type fakeLoader struct {
	mu       sync.Mutex
	requests []api.ListParams
	total    int
	err      error
}

func (f *fakeLoader) load(_ context.Context, p api.ListParams) (api.ListResponse[types.Category], error) {
	f.mu.Lock()
	f.requests = append(f.requests, p.Clone())
	f.mu.Unlock()
	if f.err != nil {
		return api.ListResponse[types.Category]{}, f.err
	}

	totalPages := (f.total + p.Limit - 1) / p.Limit
	items := make([]types.Category, 0, p.Limit)
	start := (p.Page - 1) * p.Limit
	for i := start; i < start+p.Limit && i < f.total; i++ {
		items = append(items, types.Category{Node: types.Node{ID: int64(i + 1)}})
	}
	return api.ListResponse[types.Category]{
		Items: items,
		Pagination: types.Pagination{
			Page: p.Page, Limit: p.Limit, Total: f.total, TotalPages: totalPages,
		},
	}, nil
}

func (f *fakeLoader) lastRequest() api.ListParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeLoader) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func TestLoadReplacesState(t *testing.T) {
	f := &fakeLoader{total: 45}
	c := New(f.load, 20)
	defer c.Close()

	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Items(), 20)
	assert.Equal(t, 3, c.Pagination().TotalPages)

	// Shrink the collection: the next load must fully replace, not merge.
	f.total = 5
	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Items(), 5)
	assert.Equal(t, 1, c.Pagination().TotalPages)
}

func TestGoToPageGuards(t *testing.T) {
	f := &fakeLoader{total: 45}
	c := New(f.load, 20)
	defer c.Close()
	require.NoError(t, c.Load(context.Background()))
	loads := f.requestCount()

	require.NoError(t, c.GoToPage(context.Background(), 0))
	require.NoError(t, c.GoToPage(context.Background(), -3))
	require.NoError(t, c.GoToPage(context.Background(), 4)) // only 3 pages
	assert.Equal(t, loads, f.requestCount(), "out-of-range pages must not issue requests")
	assert.Equal(t, 1, c.Pagination().Page, "state unchanged after guarded no-ops")

	require.NoError(t, c.GoToPage(context.Background(), 3))
	assert.Equal(t, 3, c.Pagination().Page)
	assert.Len(t, c.Items(), 5) // 45 items, pages of 20
}

func TestFilterResetsPage(t *testing.T) {
	f := &fakeLoader{total: 100}
	c := New(f.load, 10)
	defer c.Close()
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.GoToPage(context.Background(), 5))

	require.NoError(t, c.SetFilter(context.Background(), "status", "published"))
	last := f.lastRequest()
	assert.Equal(t, 1, last.Page, "filter change must request page 1")
	assert.Equal(t, "published", last.Filters["status"])

	require.NoError(t, c.GoToPage(context.Background(), 4))
	require.NoError(t, c.SetSort(context.Background(), "name", api.SortDesc))
	assert.Equal(t, 1, f.lastRequest().Page, "sort change must request page 1")
}

func TestSearchDebouncedAndResetsPage(t *testing.T) {
	f := &fakeLoader{total: 100}
	c := New(f.load, 10, WithSearchDelay[types.Category](NewDebouncer(30*time.Millisecond)))
	defer c.Close()
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.GoToPage(context.Background(), 7))
	before := f.requestCount()

	c.SetSearch(context.Background(), "s")
	c.SetSearch(context.Background(), "sh")
	c.SetSearch(context.Background(), "sho")
	c.SetSearch(context.Background(), "shoe")

	assert.Equal(t, before, f.requestCount(), "no request before the debounce fires")

	require.Eventually(t, func() bool {
		return f.requestCount() == before+1
	}, 2*time.Second, 10*time.Millisecond, "exactly one request after the debounce window")

	last := f.lastRequest()
	assert.Equal(t, "shoe", last.Search)
	assert.Equal(t, 1, last.Page)
}

func TestSetSearchSameValueIsNoOp(t *testing.T) {
	f := &fakeLoader{total: 10}
	c := New(f.load, 10, WithSearchDelay[types.Category](NewDebouncer(10*time.Millisecond)))
	defer c.Close()

	c.SetSearch(context.Background(), "")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, f.requestCount())
}

func TestMutateAlwaysReloads(t *testing.T) {
	f := &fakeLoader{total: 3}
	c := New(f.load, 10)
	defer c.Close()
	require.NoError(t, c.Load(context.Background()))
	before := f.requestCount()

	mutErr := errors.New("server said no")
	err := c.Mutate(context.Background(), func(context.Context) error { return mutErr })

	assert.ErrorIs(t, err, mutErr, "mutation error surfaces to the caller")
	assert.Equal(t, before+1, f.requestCount(), "reload happens even after a failed mutation")
}

func TestOnChangeFires(t *testing.T) {
	f := &fakeLoader{total: 3}
	var changes int
	c := New(f.load, 10, WithOnChange[types.Category](func() { changes++ }))
	defer c.Close()

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 1, changes)
}

func TestLoadErrorKeepsOldState(t *testing.T) {
	f := &fakeLoader{total: 8}
	c := New(f.load, 10)
	defer c.Close()
	require.NoError(t, c.Load(context.Background()))

	f.err = errors.New("boom")
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, c.Items(), 8, "failed load must not clear existing items")
}
