package kafka

import (
	"time"

	"zonaprop-hunter/internal/scraper"
)

const (
	EventScrapeCompleted = "scrape_completed"
	EventNewListings     = "new_listings"
)

type ScrapeCompletedEvent struct {
	EventType     string    `json:"event_type"`
	StartURL      string    `json:"start_url"`
	Pages         int       `json:"pages"`
	Listings      int       `json:"listings"`
	NewListings   int       `json:"new_listings"`
	FailedFetches int       `json:"failed_fetches"`
	Timestamp     time.Time `json:"timestamp"`
}

type NewListingsEvent struct {
	EventType string             `json:"event_type"`
	StartURL  string             `json:"start_url"`
	Listings  []*scraper.Listing `json:"listings"`
	FoundAt   time.Time          `json:"found_at"`
}
