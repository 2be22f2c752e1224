package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/models"
)

func newTestExtractor(minLen int) *ContentExtractor {
	fetcher := NewFetcher("test-agent", 5*time.Second, 0, common.GetLogger())
	return NewContentExtractor(fetcher, minLen, 5, 0, common.GetLogger())
}

func servePage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>" + body + "</body></html>"))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtractTRSEditor(t *testing.T) {
	server := servePage(t, `<div class="TRS_Editor"><p>正文第一段。</p><p>正文第二段。</p></div>`)

	content, err := newTestExtractor(100).Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, content, "正文第一段。")
	assert.Contains(t, content, "正文第二段。")
}

func TestExtractArticleContentFallback(t *testing.T) {
	server := servePage(t, `<div class="article_content">政策正文内容。</div>`)

	content, err := newTestExtractor(100).Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "政策正文内容。", content)
}

func TestExtractZoomParagraphs(t *testing.T) {
	server := servePage(t, `<div id="zoom"><p>第一段。</p><p>  </p><p>第二段。</p></div>`)

	content, err := newTestExtractor(100).Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "第一段。\n第二段。", content)
}

func TestExtractLongestBlock(t *testing.T) {
	long := strings.Repeat("正文", 60)
	server := servePage(t, `<div class="nav">导航</div><div class="main">`+long+`</div>`)

	content, err := newTestExtractor(100).Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, long, content)
}

func TestExtractTooShortReturnsEmpty(t *testing.T) {
	server := servePage(t, `<div>短文本</div>`)

	content, err := newTestExtractor(100).Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestExtractPrefersEditorOverLongerBlocks(t *testing.T) {
	long := strings.Repeat("噪声", 200)
	server := servePage(t, `<div class="TRS_Editor">编辑器正文。</div><div class="sidebar">`+long+`</div>`)

	content, err := newTestExtractor(100).Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "编辑器正文。", content)
}

func TestExtractAllPreservesOrderAndSkipsFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/a.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div class="TRS_Editor">甲正文。</div>`))
	})
	mux.HandleFunc("/b.html", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/c.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div class="TRS_Editor">丙正文。</div>`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	links := []models.NewsLink{
		{Title: "甲", URL: server.URL + "/a.html"},
		{Title: "乙", URL: server.URL + "/b.html"},
		{Title: "丙", URL: server.URL + "/c.html"},
	}

	articles := newTestExtractor(100).ExtractAll(context.Background(), links)

	require.Len(t, articles, 3)
	assert.Equal(t, "甲正文。", articles[0].Content)
	assert.Equal(t, "甲", articles[0].Link.Title)
	assert.Empty(t, articles[1].Content)
	assert.Equal(t, "丙正文。", articles[2].Content)
}

func TestExtractAllEmptyInput(t *testing.T) {
	articles := newTestExtractor(100).ExtractAll(context.Background(), nil)
	assert.Empty(t, articles)
}
