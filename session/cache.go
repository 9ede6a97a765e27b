package session

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

var nameFolder = cases.Fold()

// foldName is the lookup key for the name→id maps, so "Catan" and
// "catan " resolve to the same record.
func foldName(name string) string {
	return nameFolder.String(strings.Join(strings.Fields(name), " "))
}

// Cache holds the data of exactly one campaign at a time. Whole-snapshot
// swaps only: readers always see a self-consistent view, never a mix of
// two campaigns.
type Cache struct {
	mu             sync.Mutex
	snapshot       Snapshot
	gameIDByName   map[string]string
	playerIDByName map[string]string
	lastRequested  string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		gameIDByName:   map[string]string{},
		playerIDByName: map[string]string{},
	}
}

// Refresh replaces the cache with the campaign's batched snapshot. An
// empty campaignID clears the cache.
//
// The swap is guarded by a staleness check: when refreshes for two
// campaigns interleave, only the response matching the most recently
// requested campaign is applied, so a slow response for an abandoned
// campaign can never overwrite a newer one. On gateway error the prior
// snapshot is retained and the error surfaced for an explicit user
// retry.
func (c *Cache) Refresh(ctx context.Context, gw Gateway, campaignID string) error {
	c.mu.Lock()
	c.lastRequested = campaignID
	c.mu.Unlock()

	if campaignID == "" {
		c.swap(Snapshot{}, "")
		return nil
	}

	snap, err := gw.FetchSnapshot(ctx, campaignID)
	if err != nil {
		return err
	}

	c.swap(*snap, campaignID)
	return nil
}

func (c *Cache) swap(snap Snapshot, requestedID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastRequested != requestedID {
		// Stale response for a since-abandoned campaign.
		return
	}
	c.snapshot = snap
	c.gameIDByName = make(map[string]string, len(snap.Games))
	for _, g := range snap.Games {
		c.gameIDByName[foldName(g.Name)] = g.ID
	}
	c.playerIDByName = make(map[string]string, len(snap.Players))
	for _, p := range snap.Players {
		c.playerIDByName[foldName(p.Name)] = p.ID
	}
}

// Snapshot returns the current snapshot.
func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// GameID resolves a game by name, tolerant of case and spacing.
func (c *Cache) GameID(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.gameIDByName[foldName(name)]
	return id, ok
}

// PlayerID resolves a player by name, tolerant of case and spacing.
func (c *Cache) PlayerID(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.playerIDByName[foldName(name)]
	return id, ok
}
