package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"zonaprop-hunter/internal/scraper"
)

const seenTTL = 7 * 24 * time.Hour

// RedisCache remembers which listing ids previous runs already reported,
// so notifications and events only carry new listings. A nil *RedisCache
// is valid and treats every listing as new.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})

	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

func (r *RedisCache) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

// FilterNew returns the listings whose ids have not been seen within the
// TTL window. Lookup errors count the listing as new.
func (r *RedisCache) FilterNew(listings []*scraper.Listing) []*scraper.Listing {
	if r == nil {
		return listings
	}

	var fresh []*scraper.Listing
	for _, listing := range listings {
		if listing.ID == "" {
			fresh = append(fresh, listing)
			continue
		}

		exists, err := r.client.Exists(r.ctx, seenKey(listing.ID)).Result()
		if err != nil {
			log.Printf("Error checking seen state for %s: %v", listing.ID, err)
			fresh = append(fresh, listing)
			continue
		}
		if exists == 0 {
			fresh = append(fresh, listing)
		}
	}
	return fresh
}

// MarkSeen records every listing id from this run.
func (r *RedisCache) MarkSeen(listings []*scraper.Listing) {
	if r == nil {
		return
	}

	for _, listing := range listings {
		if listing.ID == "" {
			continue
		}
		if err := r.client.Set(r.ctx, seenKey(listing.ID), 1, seenTTL).Err(); err != nil {
			log.Printf("Error marking listing %s as seen: %v", listing.ID, err)
		}
	}
}

func seenKey(id string) string {
	return fmt.Sprintf("seen:%s", id)
}
