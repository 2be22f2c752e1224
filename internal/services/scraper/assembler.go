package scraper

import (
	"fmt"
	"time"

	"github.com/ternarybob/newslens/internal/models"
)

// assemble turns extracted articles into news items. Articles with
// empty content are dropped; survivors keep collection order and get
// positional ids "{date}-{seq:03d}" with 1-based seq.
func assemble(date string, articles []scrapedArticle) []*models.NewsItem {
	items := make([]*models.NewsItem, 0, len(articles))
	now := time.Now()

	seq := 0
	for _, article := range articles {
		if article.Content == "" {
			continue
		}
		seq++

		items = append(items, &models.NewsItem{
			ID:        fmt.Sprintf("%s-%03d", date, seq),
			Date:      date,
			Title:     article.Link.Title,
			Content:   article.Content,
			SourceURL: article.Link.URL,
			ScrapedAt: now,
		})
	}

	return items
}
