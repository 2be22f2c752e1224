package models

import "time"

// NewsItem is a single article scraped from a category feed for one
// calendar day. IDs are positional within the day's scrape run
// ("{date}-{seq:03d}", 1-based), so re-scraping a date can renumber
// items if the source reorders its feed.
type NewsItem struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	SourceURL string    `json:"sourceUrl,omitempty"`
	ScrapedAt time.Time `json:"scrapedAt"`
}

// NewsLink is a collected list-page entry before detail extraction.
type NewsLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
