package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"zonaprop-hunter/internal/cache"
	"zonaprop-hunter/internal/config"
	"zonaprop-hunter/internal/fetch"
	"zonaprop-hunter/internal/kafka"
	"zonaprop-hunter/internal/notify"
	"zonaprop-hunter/internal/scraper"
	"zonaprop-hunter/internal/storage"
)

const defaultStartURL = "https://www.zonaprop.com.ar/casas-departamentos-ph-alquiler-caballito.html"

func main() {
	maxPages := flag.Int("max-pages", 2, "Maximum number of result pages to scrape (0 = unlimited)")
	output := flag.String("output", "zonaprop_caballito_rentals.json", "Output JSON file name")
	startURL := flag.String("url", defaultStartURL, "Starting URL for scraping")
	flag.Parse()

	cfg := config.Load()

	log.Printf("Starting scraping process with max_pages=%d, output=%s, url=%s",
		*maxPages, *output, *startURL)

	fetcher := fetch.NewFetcher(fetch.DefaultConfig())
	extractor := scraper.NewZonapropExtractor(cfg.DefaultCurrency)
	s := scraper.New(fetcher, extractor)

	listings, stats := s.Scrape(*startURL, *maxPages)
	if len(listings) == 0 {
		log.Println("No listings were found or scraped")
		return
	}

	if err := storage.NewJSONWriter(*output).Write(listings); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}

	seenCache := cache.NewRedisCache(cfg.RedisAddr)
	if err := seenCache.Ping(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Println("Continuing without new-listing detection")
		seenCache = nil
	}
	newListings := seenCache.FilterNew(listings)
	seenCache.MarkSeen(listings)

	if cfg.DatabaseDSN != "" {
		if err := storeInPostgres(cfg.DatabaseDSN, listings); err != nil {
			log.Printf("Failed to store listings in Postgres: %v", err)
		} else {
			log.Printf("Stored %d listings in Postgres", len(listings))
		}
	}

	if cfg.KafkaBroker != "" {
		publishEvents(cfg, *startURL, listings, newListings, stats)
	}

	summary := fmt.Sprintf("Scraped %d listings (%d new) from %d pages, saved to %s",
		len(listings), len(newListings), stats.Pages, *output)
	if stats.FailedFetches > 0 {
		summary += fmt.Sprintf(" — partial run, %d fetches failed", stats.FailedFetches)
	}
	log.Println(summary)

	if cfg.BotToken != "" && cfg.ChatID != 0 {
		notifier, err := notify.NewNotifier(cfg.BotToken, cfg.ChatID)
		if err != nil {
			log.Printf("Failed to create notifier: %v", err)
		} else if err := notifier.Send(summary); err != nil {
			log.Printf("Failed to send completion message: %v", err)
		}
	}

	log.Println("Scraping process completed")
}

func storeInPostgres(dsn string, listings []*scraper.Listing) error {
	writer, err := storage.NewPostgresWriter(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return writer.Write(listings)
}

func publishEvents(cfg *config.Config, startURL string, listings, newListings []*scraper.Listing, stats scraper.Stats) {
	producer := kafka.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
	defer producer.Close()

	err := producer.PublishScrapeCompleted(kafka.ScrapeCompletedEvent{
		StartURL:      startURL,
		Pages:         stats.Pages,
		Listings:      len(listings),
		NewListings:   len(newListings),
		FailedFetches: stats.FailedFetches,
		Timestamp:     time.Now(),
	})
	if err != nil {
		log.Printf("Failed to publish scrape_completed event: %v", err)
	}

	if len(newListings) == 0 {
		return
	}
	err = producer.PublishNewListings(kafka.NewListingsEvent{
		StartURL: startURL,
		Listings: newListings,
		FoundAt:  time.Now(),
	})
	if err != nil {
		log.Printf("Failed to publish new_listings event: %v", err)
	}
}
