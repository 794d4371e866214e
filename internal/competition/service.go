// Package competition owns the single live Competition the server serves:
// it loads it from the compstate directory at startup, keeps it resident in
// memory behind a lock, and knows how to reload it, append an admin delay
// and override awards, writing each mutation back to the compstate
// directory before reloading from it -- the directory on disk, not the
// in-memory copy, always remains the source of truth.
package competition

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"srcomp/internal/cache"
	"srcomp/internal/comp/compstate"
	"srcomp/internal/store"
	"srcomp/internal/websocket"
)

// Service serves the current Competition snapshot and mediates every
// mutation that requires a reload.
type Service struct {
	root   string
	cache  *cache.Service
	store  *store.Store
	hub    *websocket.Hub
	logger *log.Logger

	mu      sync.RWMutex
	current *compstate.Competition
}

// NewService builds a Service for the compstate directory at root. Reload
// must be called once before Current returns anything.
func NewService(root string, cacheSvc *cache.Service, historyStore *store.Store, logger *log.Logger) *Service {
	return &Service{root: root, cache: cacheSvc, store: historyStore, logger: logger}
}

// SetHub attaches the websocket hub that Reload/AddDelay/OverrideAwards
// broadcast to. The hub is optional and may not exist yet when the service
// is constructed, since it is only started when websockets are enabled.
func (s *Service) SetHub(hub *websocket.Hub) {
	s.hub = hub
}

// Current returns the last successfully loaded Competition.
func (s *Service) Current() (*compstate.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, fmt.Errorf("competition: not yet loaded")
	}
	return s.current, nil
}

// Reload reads the compstate directory from disk and replaces the in-memory
// Competition. On success it records the new snapshot to the history store
// and caches it in Redis; on failure the previously loaded Competition (if
// any) is left in place so a bad edit never takes the server offline.
func (s *Service) Reload(ctx context.Context) error {
	comp, err := compstate.Load(s.root, compstate.Options{})
	if err != nil {
		return fmt.Errorf("competition: reloading: %w", err)
	}

	s.mu.Lock()
	s.current = comp
	s.mu.Unlock()

	if s.store != nil {
		snap := store.Snapshot{
			StateCommit: comp.StateCommit,
			BuiltAt:     time.Now(),
			TeamCount:   len(comp.Teams),
			MatchCount:  comp.Schedule.NMatches(),
			Awards:      awardsForStore(comp),
		}
		if err := s.store.Record(ctx, snap); err != nil {
			s.logger.Printf("recording snapshot history: %v", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetCompetition(comp.StateCommit, comp, 0); err != nil {
			s.logger.Printf("caching competition snapshot: %v", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.EventScheduleReloaded, summaryForHub(comp))
	}

	return nil
}

func summaryForHub(comp *compstate.Competition) map[string]interface{} {
	return map[string]interface{}{
		"state_commit": comp.StateCommit,
		"match_count":  comp.Schedule.NMatches(),
	}
}

func awardsForStore(comp *compstate.Competition) map[string][]string {
	out := make(map[string][]string, len(comp.Awards))
	for award, tlas := range comp.Awards {
		out[string(award)] = tlas
	}
	return out
}

// AddDelay appends a new delay to schedule.yaml and reloads the
// competition, so that the new delay takes effect through the same
// building logic as every other delay instead of being patched into the
// in-memory schedule directly.
func (s *Service) AddDelay(ctx context.Context, at time.Time, amount time.Duration) error {
	path := filepath.Join(s.root, "schedule.yaml")

	var doc compstate.ScheduleDoc
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("competition: reading schedule.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("competition: parsing schedule.yaml: %w", err)
	}

	doc.Delays = append(doc.Delays, compstate.DelayConfig{
		Time:         at,
		DelaySeconds: int(amount.Seconds()),
	})

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("competition: marshalling schedule.yaml: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("competition: writing schedule.yaml: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAll(); err != nil {
			s.logger.Printf("invalidating competition cache: %v", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.EventDelayAdded, map[string]interface{}{"at": at, "delay_seconds": int(amount.Seconds())})
	}

	return s.Reload(ctx)
}

// Root returns the compstate directory this service serves, for
// collaborators (such as the scoresheet submission handler) that need to
// write into it directly.
func (s *Service) Root() string {
	return s.root
}

// SubmitScoresheet writes a raw scoresheet submission to
// root/{kind}/{arena}/{num}.yaml and reloads the competition. kind must be
// "league", "knockout" or "tiebreaker".
func (s *Service) SubmitScoresheet(ctx context.Context, kind, arena string, num int, sheet map[string]interface{}) error {
	dir := filepath.Join(s.root, kind, arena)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("competition: creating %s: %w", dir, err)
	}

	out, err := yaml.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("competition: marshalling scoresheet: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%03d.yaml", num))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("competition: writing %s: %w", path, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAll(); err != nil {
			s.logger.Printf("invalidating competition cache: %v", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.EventScheduleReloaded, map[string]interface{}{"kind": kind, "arena": arena, "match_number": num})
	}

	return s.Reload(ctx)
}

// OverrideAwards writes awards.yaml with the given overrides and reloads
// the competition so they take effect through awards.ApplyOverrides exactly
// as they would on a fresh load.
func (s *Service) OverrideAwards(ctx context.Context, overrides map[string][]string) error {
	path := filepath.Join(s.root, "awards.yaml")

	out, err := yaml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("competition: marshalling awards.yaml: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("competition: writing awards.yaml: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAll(); err != nil {
			s.logger.Printf("invalidating competition cache: %v", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.EventAwardsUpdated, overrides)
	}

	return s.Reload(ctx)
}
