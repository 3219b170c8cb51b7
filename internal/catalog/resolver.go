package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bugaev/quizdeck/internal/quiz"
)

// ErrNoTests is returned when discovery finds nothing at all, including the
// built-in fallback set.
var ErrNoTests = errors.New("no tests discovered")

// manifest is the shape of the optional tests_index.json resource.
type manifest struct {
	Tests []quiz.Entry `json:"tests"`
}

// Discover resolves the available catalog in priority order: locally cached
// custom tests, then the remote manifest, then individual filename probes if
// the manifest is unavailable, then the built-in set if nothing else exists.
// Every step only adds entries whose id is not already present (first entry
// wins), so repeated calls are safe. Remote failures are non-fatal.
func (l *Library) Discover(ctx context.Context) ([]quiz.Entry, error) {
	l.entries = nil
	l.custom = nil

	l.loadCustomFromStorage(ctx)
	for _, d := range l.custom {
		l.addEntry(quiz.EntryFor(d))
	}

	l.mergeRemote(ctx)

	if len(l.entries) == 0 {
		for _, d := range builtinDefinitions() {
			l.addEntry(quiz.EntryFor(d))
		}
	}

	if len(l.entries) == 0 {
		return nil, ErrNoTests
	}
	return l.Entries(), nil
}

// Refresh drops memoized remote content, keeps the custom and built-in
// catalog entries, and re-runs remote discovery.
func (l *Library) Refresh(ctx context.Context) ([]quiz.Entry, error) {
	for id := range l.loaded {
		if d := l.loaded[id]; d.Provenance == quiz.ProvenanceRemote {
			delete(l.loaded, id)
		}
	}

	kept := l.entries[:0:0]
	for _, e := range l.entries {
		if e.Provenance == quiz.ProvenanceCustom || e.Provenance == quiz.ProvenanceBuiltIn {
			kept = append(kept, e)
		}
	}
	l.entries = kept

	l.mergeRemote(ctx)

	if len(l.entries) == 0 {
		return nil, ErrNoTests
	}
	return l.Entries(), nil
}

// mergeRemote tries the manifest first and falls back to brute-force
// filename probes. Probes run sequentially so merge order stays
// deterministic.
func (l *Library) mergeRemote(ctx context.Context) {
	raw, err := l.fetcher.Fetch(ctx, ManifestFilename)
	if err == nil {
		var m manifest
		if jsonErr := json.Unmarshal(raw, &m); jsonErr == nil {
			for _, e := range m.Tests {
				e.Provenance = quiz.ProvenanceRemote
				l.addEntry(e)
			}
			return
		}
		err = fmt.Errorf("manifest unreadable")
	}
	fmt.Fprintln(os.Stderr, "test manifest unavailable, probing known filenames:", err)

	for _, filename := range probeFilenames {
		if _, probeErr := l.fetcher.Fetch(ctx, filename); probeErr != nil {
			continue
		}
		id := strings.TrimSuffix(filename, ".json")
		l.addEntry(quiz.Entry{
			ID:          id,
			Filename:    filename,
			Title:       "Test " + filename,
			Description: "Discovered from " + filename,
			Provenance:  quiz.ProvenanceRemote,
		})
	}
}

// addEntry appends e unless an entry with the same id already exists.
func (l *Library) addEntry(e quiz.Entry) {
	if l.findEntry(e.ID) == nil {
		l.entries = append(l.entries, e)
	}
}
