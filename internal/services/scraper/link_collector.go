package scraper

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/newslens/internal/common"
	"github.com/ternarybob/newslens/internal/models"
)

// dateTokenRe matches the publish date printed next to each list
// entry, in either 2025/12/06 or 2025-12-06 form.
var dateTokenRe = regexp.MustCompile(`(\d{4})[/-](\d{2})[/-](\d{2})`)

// LinkCollector walks category list pages and collects article links
// published on a target date.
type LinkCollector struct {
	fetcher  *Fetcher
	origin   string
	maxPages int
	logger   arbor.ILogger
}

// NewLinkCollector creates a collector. origin is the scheme+host used
// to resolve root-relative hrefs.
func NewLinkCollector(fetcher *Fetcher, origin string, maxPages int, logger arbor.ILogger) *LinkCollector {
	return &LinkCollector{
		fetcher:  fetcher,
		origin:   strings.TrimSuffix(origin, "/"),
		maxPages: maxPages,
		logger:   logger,
	}
}

// Collect gathers links for targetDate (YYYY-MM-DD) across all
// category feeds. Categories are walked concurrently; the result is
// deduplicated by absolute URL. Per-category failures are logged and
// do not fail the run.
func (c *LinkCollector) Collect(ctx context.Context, targetDate string, categories []string) []models.NewsLink {
	target := common.SlashDate(targetDate)

	var (
		mu    sync.Mutex
		seen  = make(map[string]bool)
		links []models.NewsLink
		wg    sync.WaitGroup
	)

	for _, category := range categories {
		wg.Add(1)
		go func(base string) {
			defer wg.Done()

			found := c.collectCategory(ctx, base, target)

			mu.Lock()
			defer mu.Unlock()
			for _, link := range found {
				if seen[link.URL] {
					continue
				}
				seen[link.URL] = true
				links = append(links, link)
			}
		}(category)
	}

	wg.Wait()

	c.logger.Info().
		Str("date", targetDate).
		Int("categories", len(categories)).
		Int("links", len(links)).
		Msg("Link collection completed")

	return links
}

// collectCategory walks one category's list pages until it sees a date
// older than the target. Feeds are reverse chronological, so an older
// entry means no further pages can contain the target date.
func (c *LinkCollector) collectCategory(ctx context.Context, base, target string) []models.NewsLink {
	var links []models.NewsLink

	for page := 0; page < c.maxPages; page++ {
		if ctx.Err() != nil {
			return links
		}

		url := pageURL(base, page)
		html, err := c.fetcher.Get(ctx, url)
		if err != nil {
			if errors.Is(err, ErrPageNotFound) {
				c.logger.Debug().Str("url", url).Msg("List page not found, stopping category")
			} else {
				c.logger.Warn().Err(err).Str("url", url).Msg("List page fetch failed, stopping category")
			}
			return links
		}

		pageLinks, foundOlder, foundDate := c.parseListPage(html, base, target)
		links = append(links, pageLinks...)

		if foundOlder {
			return links
		}
		// A non-first page without any date token means the feed
		// structure changed or we ran past the archive.
		if !foundDate && page > 0 {
			return links
		}
	}

	return links
}

// parseListPage extracts target-date links from one list page. Returns
// the links, whether an entry older than target was seen, and whether
// any date token was seen at all.
func (c *LinkCollector) parseListPage(html, base, target string) ([]models.NewsLink, bool, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		c.logger.Warn().Err(err).Str("base", base).Msg("Failed to parse list page")
		return nil, false, false
	}

	var (
		links      []models.NewsLink
		foundOlder bool
		foundDate  bool
	)

	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		anchor := sel.Find("a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}

		match := dateTokenRe.FindStringSubmatch(sel.Text())
		if match == nil {
			return
		}
		foundDate = true

		entryDate := fmt.Sprintf("%s/%s/%s", match[1], match[2], match[3])
		if entryDate == target {
			links = append(links, models.NewsLink{
				Title: strings.TrimSpace(anchor.Text()),
				URL:   resolveHref(base, c.origin, href),
			})
		} else if entryDate < target {
			foundOlder = true
		}
	})

	return links, foundOlder, foundDate
}

// pageURL returns the list page URL for a 0-based page index. Page 0
// is the category root; later pages follow the index_N.html convention.
func pageURL(base string, page int) string {
	if page == 0 {
		return base
	}
	return fmt.Sprintf("%sindex_%d.html", base, page)
}

// resolveHref converts a list-entry href to an absolute URL.
func resolveHref(base, origin, href string) string {
	switch {
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "./"):
		return base + strings.TrimPrefix(href, "./")
	case strings.HasPrefix(href, "/"):
		return origin + href
	default:
		return base + href
	}
}
