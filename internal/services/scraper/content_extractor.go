package scraper

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/models"
)

// extractStrategy is one attempt at locating the article body. The
// chain is ordered from the site's canonical editor container to a
// generic longest-block fallback.
type extractStrategy struct {
	name string
	fn   func(doc *goquery.Document, minLen int) string
}

var extractStrategies = []extractStrategy{
	{
		name: "trs_editor",
		fn: func(doc *goquery.Document, _ int) string {
			return strings.TrimSpace(doc.Find(".TRS_Editor").First().Text())
		},
	},
	{
		name: "article_content",
		fn: func(doc *goquery.Document, _ int) string {
			return strings.TrimSpace(doc.Find(".article_content").First().Text())
		},
	},
	{
		name: "zoom_paragraphs",
		fn: func(doc *goquery.Document, _ int) string {
			var parts []string
			doc.Find("#zoom p").Each(func(_ int, sel *goquery.Selection) {
				if text := strings.TrimSpace(sel.Text()); text != "" {
					parts = append(parts, text)
				}
			})
			return strings.Join(parts, "\n")
		},
	},
	{
		name: "longest_block",
		fn: func(doc *goquery.Document, minLen int) string {
			var longest string
			doc.Find("div, p").Each(func(_ int, sel *goquery.Selection) {
				text := strings.TrimSpace(sel.Text())
				if len([]rune(text)) > minLen && len(text) > len(longest) {
					longest = text
				}
			})
			return longest
		},
	},
}

// scrapedArticle pairs a collected link with its extracted body.
type scrapedArticle struct {
	Link    models.NewsLink
	Content string
}

// ContentExtractor fetches article pages and pulls out their bodies.
type ContentExtractor struct {
	fetcher    *Fetcher
	minLen     int
	batchSize  int
	batchDelay time.Duration
	logger     arbor.ILogger
}

// NewContentExtractor creates an extractor. minLen is the minimum rune
// count the fallback strategy accepts as an article body.
func NewContentExtractor(fetcher *Fetcher, minLen, batchSize int, batchDelay time.Duration, logger arbor.ILogger) *ContentExtractor {
	if batchSize < 1 {
		batchSize = 1
	}
	return &ContentExtractor{
		fetcher:    fetcher,
		minLen:     minLen,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		logger:     logger,
	}
}

// Extract fetches one article page and returns its body text. An empty
// string means no strategy produced content.
func (e *ContentExtractor) Extract(ctx context.Context, url string) (string, error) {
	html, err := e.fetcher.Get(ctx, url)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, strategy := range extractStrategies {
		if content := strategy.fn(doc, e.minLen); content != "" {
			e.logger.Debug().
				Str("url", url).
				Str("strategy", strategy.name).
				Int("length", len(content)).
				Msg("Article content extracted")
			return content, nil
		}
	}

	return "", nil
}

// ExtractAll fetches article bodies in bounded batches, pausing
// between batches to stay polite. Results preserve link order; items
// whose fetch or extraction failed have empty content.
func (e *ContentExtractor) ExtractAll(ctx context.Context, links []models.NewsLink) []scrapedArticle {
	articles := make([]scrapedArticle, len(links))
	for i, link := range links {
		articles[i].Link = link
	}

	for start := 0; start < len(links); start += e.batchSize {
		if ctx.Err() != nil {
			break
		}

		end := start + e.batchSize
		if end > len(links) {
			end = len(links)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				content, err := e.Extract(ctx, links[idx].URL)
				if err != nil {
					e.logger.Warn().Err(err).Str("url", links[idx].URL).Msg("Article extraction failed, skipping")
					return
				}
				articles[idx].Content = content
			}(i)
		}
		wg.Wait()

		if end < len(links) && e.batchDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(e.batchDelay):
			}
		}
	}

	return articles
}
