package fetch

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var retryableStatuses = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Config controls politeness and resilience. Every request waits
// Delay plus a uniform random duration up to RandomDelay before going out.
type Config struct {
	UserAgent    string
	Delay        time.Duration
	RandomDelay  time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// DefaultConfig matches the target site's tolerance: a 3-7s pre-request
// delay and up to 5 attempts on server errors.
func DefaultConfig() Config {
	return Config{
		UserAgent:    defaultUserAgent,
		Delay:        3 * time.Second,
		RandomDelay:  4 * time.Second,
		MaxRetries:   5,
		RetryBackoff: 100 * time.Millisecond,
	}
}

// Fetcher issues polite, retried GET requests and returns raw page bytes.
// It is the single place where network failures are absorbed; callers
// treat any returned error as "no content" and move on.
type Fetcher struct {
	cfg       Config
	collector *colly.Collector
}

func NewFetcher(cfg Config) *Fetcher {
	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       cfg.Delay,
		RandomDelay: cfg.RandomDelay,
	})

	return &Fetcher{cfg: cfg, collector: c}
}

// Fetch downloads url, retrying with exponential backoff on retryable
// server statuses. The clone shares the base collector's limit rule, so
// the pre-request delay also applies to retries.
func (f *Fetcher) Fetch(url string) ([]byte, error) {
	var body []byte
	var fetchErr error
	attempts := 1

	c := f.collector.Clone()
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		if retryableStatuses[r.StatusCode] && attempts < f.cfg.MaxRetries {
			backoff := f.cfg.RetryBackoff << (attempts - 1)
			attempts++
			log.Printf("Retrying %s in %v (attempt %d/%d): %v",
				url, backoff, attempts, f.cfg.MaxRetries, err)
			time.Sleep(backoff)
			r.Request.Retry()
			return
		}
		fetchErr = err
	})

	visitErr := c.Visit(url)

	if body != nil {
		return body, nil
	}
	if fetchErr == nil {
		fetchErr = visitErr
	}
	if fetchErr == nil {
		fetchErr = errors.New("empty response")
	}
	log.Printf("Failed to fetch %s: %v", url, fetchErr)
	return nil, fmt.Errorf("fetch %s: %w", url, fetchErr)
}
