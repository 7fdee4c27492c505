package scraper

import (
	"log"
)

// Fetcher retrieves a page. A non-nil error is the uniform "no content"
// signal; callers skip and continue instead of aborting the run.
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// Extractor interprets fetched HTML for one target site. NextPageURL
// returns "" when pagination is exhausted; ExtractCards yields partial
// listings with their detail URLs set; ExtractDetails returns a flat field
// map for MergeDetails.
type Extractor interface {
	NextPageURL(page []byte, currentURL string) string
	ExtractCards(page []byte) []*Listing
	ExtractDetails(page []byte) map[string]string
}

// Stats summarizes a run so callers can tell a clean run from a partial
// one.
type Stats struct {
	Pages         int
	Listings      int
	FailedFetches int
}

// Scraper drives pagination discovery and listing extraction for one site.
// Everything runs sequentially; the fetcher's built-in delay is the rate
// limit.
type Scraper struct {
	fetcher   Fetcher
	extractor Extractor
}

func New(fetcher Fetcher, extractor Extractor) *Scraper {
	return &Scraper{fetcher: fetcher, extractor: extractor}
}

// DiscoverPages walks the next-page links starting from startURL and
// returns the ordered page URLs. maxPages 0 means unbounded. A fetch
// failure ends discovery with the pages found so far. A visited set stops
// the walk if the site ever links back to an earlier page.
func (s *Scraper) DiscoverPages(startURL string, maxPages int) []string {
	log.Printf("Getting all page URLs starting from: %s", startURL)

	pages := []string{startURL}
	visited := map[string]bool{startURL: true}
	current := startURL

	for {
		if maxPages > 0 && len(pages) >= maxPages {
			log.Printf("Reached maximum number of pages (%d)", maxPages)
			break
		}

		body, err := s.fetcher.Fetch(current)
		if err != nil {
			log.Printf("Stopping page discovery: %v", err)
			break
		}

		next := s.extractor.NextPageURL(body, current)
		if next == "" {
			break
		}
		if visited[next] {
			log.Printf("Pagination links back to %s, stopping", next)
			break
		}

		visited[next] = true
		pages = append(pages, next)
		current = next
		log.Printf("Found page %d: %s", len(pages), next)
	}

	log.Printf("Found a total of %d pages", len(pages))
	return pages
}

// Scrape collects every listing reachable from startURL, in page order
// then card order. Failed page fetches skip the page; a failed detail
// fetch keeps the card-only listing.
func (s *Scraper) Scrape(startURL string, maxPages int) ([]*Listing, Stats) {
	pages := s.DiscoverPages(startURL, maxPages)

	var all []*Listing
	stats := Stats{Pages: len(pages)}

	for i, pageURL := range pages {
		log.Printf("Scraping page %d of %d", i+1, len(pages))

		body, err := s.fetcher.Fetch(pageURL)
		if err != nil {
			log.Printf("Skipping page %s: %v", pageURL, err)
			stats.FailedFetches++
			continue
		}

		cards := s.extractor.ExtractCards(body)
		log.Printf("Found %d listings on this page", len(cards))

		for j, item := range cards {
			log.Printf("[%d/%d] Scraping details for %s", j+1, len(cards), item.URL)

			detailBody, err := s.fetcher.Fetch(item.URL)
			if err != nil {
				log.Printf("Keeping card-only listing %s: %v", item.ID, err)
				stats.FailedFetches++
			} else {
				item.MergeDetails(s.extractor.ExtractDetails(detailBody))
			}
			all = append(all, item)
		}
	}

	stats.Listings = len(all)
	return all, stats
}
