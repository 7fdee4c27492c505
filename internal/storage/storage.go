package storage

import "zonaprop-hunter/internal/scraper"

// Writer persists the listings of a completed run.
type Writer interface {
	Write(listings []*scraper.Listing) error
}
