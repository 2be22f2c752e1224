package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/newslens/internal/common"
)

func listPage(entries ...string) string {
	html := "<html><body><ul>"
	for _, entry := range entries {
		html += entry
	}
	return html + "</ul></body></html>"
}

func entry(href, title, date string) string {
	return fmt.Sprintf(`<li><a href=%q>%s</a><span>%s</span></li>`, href, title, date)
}

func newTestCollector(serverURL string) *LinkCollector {
	fetcher := NewFetcher("test-agent", 5*time.Second, 0, common.GetLogger())
	return NewLinkCollector(fetcher, serverURL, 10, common.GetLogger())
}

func TestCollectWalksPagesUntilOlderDate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cat/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listPage(
			entry("./newer.html", "明日新闻", "2025/12/07"),
			entry("./a1.html", "目标新闻一", "2025/12/06"),
			entry("/abs/a2.html", "目标新闻二", "2025-12-06"),
		)))
	})
	mux.HandleFunc("/cat/index_1.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listPage(
			entry("a3.html", "目标新闻三", "2025/12/06"),
			entry("./old.html", "旧新闻", "2025/12/05"),
		)))
	})
	// index_2.html would fail the test: the older entry on page 1 must
	// stop the walk
	mux.HandleFunc("/cat/index_2.html", func(w http.ResponseWriter, r *http.Request) {
		t.Error("pagination did not stop at older entry")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	collector := newTestCollector(server.URL)
	links := collector.Collect(context.Background(), "2025-12-06", []string{server.URL + "/cat/"})

	require.Len(t, links, 3)

	urls := make(map[string]string)
	for _, link := range links {
		urls[link.Title] = link.URL
	}
	assert.Equal(t, server.URL+"/cat/a1.html", urls["目标新闻一"])
	assert.Equal(t, server.URL+"/abs/a2.html", urls["目标新闻二"])
	assert.Equal(t, server.URL+"/cat/a3.html", urls["目标新闻三"])
}

func TestCollectStopsOn404(t *testing.T) {
	var fetched []string
	var mu sync.Mutex

	mux := http.NewServeMux()
	mux.HandleFunc("/cat/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fetched = append(fetched, r.URL.Path)
		mu.Unlock()

		// Only the category root exists; index_N.html pages 404
		if r.URL.Path != "/cat/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(listPage(entry("./a1.html", "目标新闻", "2025/12/06"))))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	collector := newTestCollector(server.URL)
	links := collector.Collect(context.Background(), "2025-12-06", []string{server.URL + "/cat/"})

	require.Len(t, links, 1)
	assert.Equal(t, "目标新闻", links[0].Title)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/cat/", "/cat/index_1.html"}, fetched)
}

func TestCollectDeduplicatesAcrossCategories(t *testing.T) {
	mux := http.NewServeMux()
	shared := entry("/shared.html", "共享新闻", "2025/12/06")
	mux.HandleFunc("/a/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listPage(shared, entry("./only-a.html", "甲新闻", "2025/12/06"), entry("./old.html", "旧", "2025/12/05"))))
	})
	mux.HandleFunc("/b/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listPage(shared, entry("./old.html", "旧", "2025/12/05"))))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	collector := newTestCollector(server.URL)
	links := collector.Collect(context.Background(), "2025-12-06", []string{
		server.URL + "/a/",
		server.URL + "/b/",
	})

	assert.Len(t, links, 2)
}

func TestCollectSkipsEntriesWithoutDate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cat/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listPage(
			`<li><a href="./nodate.html">无日期</a></li>`,
			entry("./a1.html", "目标新闻", "2025/12/06"),
			entry("./old.html", "旧", "2025/12/05"),
		)))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	collector := newTestCollector(server.URL)
	links := collector.Collect(context.Background(), "2025-12-06", []string{server.URL + "/cat/"})

	require.Len(t, links, 1)
	assert.Equal(t, "目标新闻", links[0].Title)
}

func TestCollectIgnoresFailedCategory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listPage(entry("./a1.html", "目标新闻", "2025/12/06"), entry("./old.html", "旧", "2025/12/05"))))
	})
	mux.HandleFunc("/broken/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	collector := newTestCollector(server.URL)
	links := collector.Collect(context.Background(), "2025-12-06", []string{
		server.URL + "/ok/",
		server.URL + "/broken/",
	})

	require.Len(t, links, 1)
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "https://example.com/cat/", pageURL("https://example.com/cat/", 0))
	assert.Equal(t, "https://example.com/cat/index_1.html", pageURL("https://example.com/cat/", 1))
	assert.Equal(t, "https://example.com/cat/index_9.html", pageURL("https://example.com/cat/", 9))
}

func TestResolveHref(t *testing.T) {
	base := "https://example.com/cat/"
	origin := "https://example.com"

	tests := []struct {
		href string
		want string
	}{
		{"./art.html", "https://example.com/cat/art.html"},
		{"/root/art.html", "https://example.com/root/art.html"},
		{"art.html", "https://example.com/cat/art.html"},
		{"https://other.com/art.html", "https://other.com/art.html"},
		{"http://other.com/art.html", "http://other.com/art.html"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveHref(base, origin, tt.href), "href %q", tt.href)
	}
}
