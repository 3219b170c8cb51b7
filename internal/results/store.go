package results

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/bugaev/quizdeck/internal/store"
)

// DefaultAdminKey gates the administrative views when QUIZDECK_ADMIN_KEY is
// not set. A shared static passphrase, not a security boundary.
const DefaultAdminKey = "quizdeck2024"

// Config selects store behavior.
type Config struct {
	// KeepHistory keeps every recorded result. When false, a new result
	// replaces the user's previous one (single-attempt-per-user variant).
	KeepHistory bool

	// AdminKey is the administrative passphrase. Empty means DefaultAdminKey.
	AdminKey string
}

// envelope is the persisted shape: the result collection with the admin
// passphrase colocated, overwritten whole on every write.
type envelope struct {
	AdminKey string   `json:"adminKey"`
	Results  []Result `json:"results"`
}

// Store is the durable result collection. Append-only from the learner's
// side; only an administrator may clear it, and then only in bulk.
type Store struct {
	kv       store.KV
	cfg      Config
	adminKey string
	results  []Result
}

// TestStats is the per-test aggregate served to the admin view.
type TestStats struct {
	Count             int
	AveragePercentage int
}

// New creates a result store over kv with the given config.
func New(kv store.KV, cfg Config) *Store {
	key := cfg.AdminKey
	if key == "" {
		key = DefaultAdminKey
	}
	return &Store{kv: kv, cfg: cfg, adminKey: key}
}

// Load reads the persisted collection. A corrupt or absent value degrades
// to an empty collection with a diagnostic; it is never fatal.
func (s *Store) Load(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, store.KeyResults)
	if err != nil || !ok {
		if err != nil {
			fmt.Fprintln(os.Stderr, "read results:", err)
		}
		return
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		fmt.Fprintln(os.Stderr, "result storage unreadable, starting empty:", err)
		return
	}
	s.results = env.Results
	if env.AdminKey != "" && s.cfg.AdminKey == "" {
		s.adminKey = env.AdminKey
	}
}

// Record stores a finalized result and persists the whole collection.
// With KeepHistory it appends; otherwise it replaces any previous result
// recorded for the same user.
func (s *Store) Record(ctx context.Context, r Result) error {
	if s.cfg.KeepHistory {
		s.results = append(s.results, r)
	} else {
		replaced := false
		for i := range s.results {
			if s.results[i].UserID == r.UserID {
				s.results[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			s.results = append(s.results, r)
		}
	}
	return s.save(ctx)
}

// List returns all results in insertion order.
func (s *Store) List() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Count returns the number of recorded results.
func (s *Store) Count() int {
	return len(s.results)
}

// AverageOverall returns the rounded mean percentage across all results,
// zero when empty.
func (s *Store) AverageOverall() int {
	if len(s.results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range s.results {
		sum += r.Percentage
	}
	return int(math.Round(float64(sum) / float64(len(s.results))))
}

// AggregateByTest returns per-test attempt counts and average percentages.
func (s *Store) AggregateByTest() map[string]TestStats {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range s.results {
		sums[r.TestID] += r.Percentage
		counts[r.TestID]++
	}

	out := make(map[string]TestStats, len(counts))
	for id, n := range counts {
		out[id] = TestStats{
			Count:             n,
			AveragePercentage: int(math.Round(float64(sums[id]) / float64(n))),
		}
	}
	return out
}

// TopN returns the n results with the highest percentage. Ties keep their
// original insertion order.
func (s *Store) TopN(n int) []Result {
	sorted := s.List()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percentage > sorted[j].Percentage
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// ClearAll irreversibly empties the collection. Admin-gated by callers.
func (s *Store) ClearAll(ctx context.Context) error {
	s.results = nil
	return s.save(ctx)
}

// ExportAll serializes the full collection for external backup.
func (s *Store) ExportAll() ([]byte, error) {
	return json.MarshalIndent(s.results, "", "  ")
}

// Import replaces the collection with a previously exported snapshot.
func (s *Store) Import(ctx context.Context, raw []byte) error {
	var imported []Result
	if err := json.Unmarshal(raw, &imported); err != nil {
		return fmt.Errorf("decode results snapshot: %w", err)
	}
	s.results = imported
	return s.save(ctx)
}

// Unlock compares the supplied passphrase against the admin key.
func (s *Store) Unlock(passphrase string) bool {
	return passphrase == s.adminKey
}

func (s *Store) save(ctx context.Context) error {
	raw, err := json.Marshal(envelope{AdminKey: s.adminKey, Results: s.results})
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyResults, raw); err != nil {
		return fmt.Errorf("persist results: %w", err)
	}
	return nil
}
