package catalogclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mrops-br/saree-catalog-api/pkg/catalogclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu   sync.Mutex
	hits map[string]int
	mux  *http.ServeMux
}

func newFakeAPI(t *testing.T) (*fakeAPI, *catalogclient.Client) {
	t.Helper()

	api := &fakeAPI{hits: map[string]int{}, mux: http.NewServeMux()}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := catalogclient.New(srv.URL + "/api")
	require.NoError(t, err)
	return api, c
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.RequestURI()]++
	f.mu.Unlock()
	f.mux.ServeHTTP(w, r)
}

func (f *fakeAPI) count(uri string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[uri]
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientCachesUntilInvalidated(t *testing.T) {
	api, c := newFakeAPI(t)
	api.mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		writeJSON(w, []catalogclient.Category{{ID: "1", Name: "Banarasi", Slug: "banarasi"}})
	})

	for range 3 {
		cs, err := c.Categories(t.Context())
		require.NoError(t, err)
		require.Len(t, cs, 1)
		assert.Equal(t, "banarasi", cs[0].Slug)
	}
	assert.Equal(t, 1, api.count("/api/categories"))

	c.Cache().Invalidate("/categories")
	_, err := c.Categories(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("/api/categories"))

	c.Cache().Purge()
	assert.Zero(t, c.Cache().Len())
}

func TestClientStatusErrors(t *testing.T) {
	api, c := newFakeAPI(t)
	api.mux.HandleFunc("GET /api/categories/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Category not found"}`))
	})
	api.mux.HandleFunc("GET /api/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Category(t.Context(), "does-not-exist")
	var serr *catalogclient.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Equal(t, `404: {"error":"Category not found"}`, err.Error())

	_, err = c.Search(t.Context(), "silk")
	assert.EqualError(t, err, "503: Service Unavailable")

	// errors are not cached
	_, err = c.Search(t.Context(), "silk")
	require.Error(t, err)
	assert.Equal(t, 2, api.count("/api/search?q=silk"))
	assert.Zero(t, c.Cache().Len())
}

func TestClientCollapsesConcurrentRequests(t *testing.T) {
	api, c := newFakeAPI(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	api.mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		writeJSON(w, catalogclient.Product{ID: r.PathValue("id"), Name: "Ruby Silk"})
	})

	const callers = 8
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.Product(t.Context(), "p1")
			if err != nil || p.Name != "Ruby Silk" {
				failed.Add(1)
			}
		}()
	}

	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Zero(t, failed.Load())
	assert.Equal(t, 1, api.count("/api/products/p1"))
}

func TestListingProducts(t *testing.T) {
	api, c := newFakeAPI(t)
	api.mux.HandleFunc("GET /api/collections/{type}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		writeJSON(w, []catalogclient.Product{{ID: "c1", CollectionType: r.PathValue("type")}})
	})
	api.mux.HandleFunc("GET /api/products/category/{category}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []catalogclient.Product{{ID: "k1", Category: r.PathValue("category")}})
	})

	ps, err := c.ListingProducts(t.Context(), "trending")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "trending", ps[0].CollectionType)
	assert.Equal(t, 1, api.count("/api/collections/trending?limit=100"))

	ps, err = c.ListingProducts(t.Context(), "kanjivaram")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "kanjivaram", ps[0].Category)
}

func TestSimilarProducts(t *testing.T) {
	api, c := newFakeAPI(t)
	api.mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "banarasi", r.URL.Query().Get("category"))
		ps := make([]catalogclient.Product, 0, 6)
		for _, id := range []string{"a", "self", "b", "c", "d", "e"} {
			ps = append(ps, catalogclient.Product{ID: id, Category: "banarasi"})
		}
		writeJSON(w, ps)
	})

	similar, err := c.SimilarProducts(t.Context(), &catalogclient.Product{ID: "self", Category: "banarasi"})
	require.NoError(t, err)

	ids := make([]string, len(similar))
	for i, p := range similar {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)

	none, err := c.SimilarProducts(t.Context(), &catalogclient.Product{ID: "x"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductsQuery(t *testing.T) {
	api, c := newFakeAPI(t)
	api.mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []catalogclient.Product{})
	})

	lo, hi := 1000.0, 2000.5
	ps, err := c.Products(t.Context(), catalogclient.ProductSearch{Material: "silk", PriceMin: &lo, PriceMax: &hi})
	require.NoError(t, err)
	assert.NotNil(t, ps)
	assert.Empty(t, ps)
	assert.Equal(t, 1, api.count("/api/products?material=silk&priceMax=2000.5&priceMin=1000"))
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := catalogclient.New("/api")
	assert.Error(t, err)
}
