// Package cache keeps rendered listing responses in Redis. Entries are
// written on listing reads and dropped wholesale whenever a catalog write
// lands, so a miss is always safe and a hit never outlives a write.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyPrefixListing is the prefix for cached listing payloads.
	KeyPrefixListing = "storefront:cache:listing:"

	// DefaultListingTTL bounds staleness even if an invalidation is missed.
	DefaultListingTTL = 5 * time.Minute
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// ListingKey builds a cache key from the normalized query parts.
func ListingKey(parts ...string) string {
	return KeyPrefixListing + strings.Join(parts, ":")
}

// GetListing returns the cached payload, or nil on a miss.
func (c *Cache) GetListing(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached listing: %w", err)
	}
	return data, nil
}

func (c *Cache) SetListing(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache listing: %w", err)
	}
	return nil
}

// InvalidateListings drops every cached listing page.
func (c *Cache) InvalidateListings(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, KeyPrefixListing+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cached listing: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached listings: %w", err)
	}
	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
