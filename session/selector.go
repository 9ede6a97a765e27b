package session

import (
	"context"
	"fmt"
	"sync"
)

// Selector owns the active campaign choice: loading the visible set,
// restoring a persisted selection across reloads, and the exactly-one
// auto-select rule.
type Selector struct {
	store SelectionStore

	mu        sync.Mutex
	campaigns []Campaign
	active    *Campaign
	onChange  func(*Campaign)
}

// NewSelector builds a selector around a persisted selection store.
func NewSelector(store SelectionStore) *Selector {
	return &Selector{store: store}
}

// OnChange registers the single change listener. Notifications are
// synchronous; callers use them to trigger a fresh cache load.
func (s *Selector) OnChange(cb func(*Campaign)) {
	s.mu.Lock()
	s.onChange = cb
	s.mu.Unlock()
}

// LoadCampaigns fetches the campaigns visible through the gateway and
// re-applies the selection rules. On gateway failure it fails closed:
// the prior campaign list and selection stay untouched.
//
// Selection precedence after a successful load:
//  1. a persisted id that is still among the visible campaigns;
//  2. the only campaign, when exactly one is visible;
//  3. nothing — the UI shows a picker.
//
// A persisted id that is no longer visible is discarded from the store
// before falling through, so a dead selection cannot shadow rule 2.
func (s *Selector) LoadCampaigns(ctx context.Context, gw Gateway) error {
	campaigns, err := gw.ListCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("loading campaigns: %w", ErrRemoteUnavailable)
	}

	s.mu.Lock()
	s.campaigns = campaigns

	persisted, _ := s.store.Get()
	if persisted != "" {
		if c := findCampaign(campaigns, persisted); c != nil {
			s.setActiveLocked(c)
			return nil
		}
		s.store.Remove()
	}
	if len(campaigns) == 1 {
		s.setActiveLocked(&campaigns[0])
		return nil
	}
	s.setActiveLocked(nil)
	return nil
}

// SetActive updates the selection, persists it (or clears persistence
// for nil) and notifies the listener. Re-setting the same campaign still
// notifies: callers rely on that to reload after external mutations.
func (s *Selector) SetActive(c *Campaign) {
	s.mu.Lock()
	s.setActiveLocked(c)
}

// setActiveLocked releases s.mu before invoking the listener so the
// callback may call back into the selector.
func (s *Selector) setActiveLocked(c *Campaign) {
	s.active = c
	if c != nil {
		s.store.Set(c.ID)
	} else {
		s.store.Remove()
	}
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(c)
	}
}

// Active returns the current selection, nil when none.
func (s *Selector) Active() *Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Campaigns returns the last successfully loaded campaign list.
func (s *Selector) Campaigns() []Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

func findCampaign(campaigns []Campaign, id string) *Campaign {
	for i := range campaigns {
		if campaigns[i].ID == id {
			return &campaigns[i]
		}
	}
	return nil
}
