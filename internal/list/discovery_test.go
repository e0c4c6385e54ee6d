package list

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"sync"
	"testing"

	"github.com/blckbxtv/rumbledir/pkg/cache"
	"github.com/blckbxtv/rumbledir/pkg/fetcher"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func listingMarkup(hrefs ...string) string {
	markup := "<ol>"
	for _, href := range hrefs {
		markup += fmt.Sprintf("<li><a class=video-item--a href=%s></a></li>", href)
	}
	return markup + "</ol>"
}

// listingServer serves numbered listing pages and counts requests per page.
type listingServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests map[int]int
}

func newListingServer(t *testing.T, pages map[int][]string) *listingServer {
	t.Helper()
	ls := &listingServer{requests: map[int]int{}}
	ls.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			http.Error(w, "bad page", http.StatusBadRequest)
			return
		}
		ls.mu.Lock()
		ls.requests[page]++
		ls.mu.Unlock()
		fmt.Fprint(w, listingMarkup(pages[page]...))
	}))
	t.Cleanup(ls.Close)
	return ls
}

func (ls *listingServer) requestCount(page int) int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.requests[page]
}

func TestDiscover_PaginationTermination(t *testing.T) {
	server := newListingServer(t, map[int][]string{
		1: {"/v1.html", "/v2.html"},
		2: {"/v3.html"},
		// page 3 and beyond yield nothing
	})
	baseURL := server.URL + "/user/TEST"

	d := &Discoverer{
		Store:   cache.NewStore(),
		Fetcher: fetcher.New(),
		Logger:  discardLogger(),
	}
	urls, err := d.Discover(baseURL)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{
		server.URL + "/v1.html",
		server.URL + "/v2.html",
		server.URL + "/v3.html",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("Discover() = %v, want %v", urls, want)
	}
	if got := server.requestCount(4); got != 0 {
		t.Errorf("page 4 requested %d times, the walk must stop at the first empty page", got)
	}
}

func TestDiscover_FullyCachedWalkSkipsNetwork(t *testing.T) {
	server := newListingServer(t, map[int][]string{
		1: {"/v1.html", "/v2.html"},
	})
	baseURL := server.URL + "/user/TEST"
	v1 := server.URL + "/v1.html"
	v2 := server.URL + "/v2.html"

	store := cache.NewStore()
	seed(t, store, cache.NSUserPage, pageURL(baseURL, 1), []string{v1, v2})
	seed(t, store, cache.NSUserPage, pageURL(baseURL, 2), []string{})
	seed(t, store, cache.NSVideoPage, v1, "detail")
	seed(t, store, cache.NSVideoPage, v2, "detail")

	d := &Discoverer{Store: store, Fetcher: fetcher.New(), Logger: discardLogger()}
	urls, err := d.Discover(baseURL)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if !reflect.DeepEqual(urls, []string{v1, v2}) {
		t.Errorf("Discover() = %v, want cached pages", urls)
	}
	// Only the uncached staleness probe of page 1 may hit the network.
	if got := server.requestCount(1); got != 1 {
		t.Errorf("page 1 requested %d times, want 1 (probe only)", got)
	}
	if got := server.requestCount(2); got != 0 {
		t.Errorf("page 2 requested %d times, want 0 (cached)", got)
	}
}

func TestDiscover_StaleListingCacheIsWiped(t *testing.T) {
	// v2 is new on the site but the cached walk predates it.
	server := newListingServer(t, map[int][]string{
		1: {"/v1.html", "/v2.html"},
	})
	baseURL := server.URL + "/user/TEST"
	v1 := server.URL + "/v1.html"
	v2 := server.URL + "/v2.html"

	store := cache.NewStore()
	seed(t, store, cache.NSUserPage, pageURL(baseURL, 1), []string{v1})
	seed(t, store, cache.NSUserPage, pageURL(baseURL, 2), []string{})
	seed(t, store, cache.NSVideoPage, v1, "detail")
	// v2 intentionally absent from the video_page namespace.

	d := &Discoverer{Store: store, Fetcher: fetcher.New(), Logger: discardLogger()}
	urls, err := d.Discover(baseURL)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if !reflect.DeepEqual(urls, []string{v1, v2}) {
		t.Errorf("Discover() = %v, want re-fetched listing including %s", urls, v2)
	}
	// Probe plus the re-walk: the stale cached page 1 must not be trusted.
	if got := server.requestCount(1); got != 2 {
		t.Errorf("page 1 requested %d times, want 2 (probe + fresh walk)", got)
	}
}

func seed(t *testing.T, store *cache.Store, ns, key string, value any) {
	t.Helper()
	if _, _, err := store.GetOrCompute(ns, key, func(string) (any, error) { return value, nil }); err != nil {
		t.Fatalf("seed %s/%s: %v", ns, key, err)
	}
}
