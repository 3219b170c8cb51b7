package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/store"
)

// Library holds the discoverable catalog and the loaded test content behind
// it. All shared state is touched from a single control flow between await
// points (one pending fetch at a time), so no locking is needed.
type Library struct {
	fetcher Fetcher
	kv      store.KV

	entries []quiz.Entry                // discovery order, deduplicated by id
	loaded  map[string]*quiz.Definition // memoized full content by id
	custom  []*quiz.Definition          // insertion order, persisted whole
	builtin map[string]*quiz.Definition // always resident fallback content
}

// New creates a Library backed by the given fetcher and storage.
func New(fetcher Fetcher, kv store.KV) *Library {
	builtin := make(map[string]*quiz.Definition)
	for _, d := range builtinDefinitions() {
		builtin[d.ID] = d
	}
	return &Library{
		fetcher: fetcher,
		kv:      kv,
		loaded:  make(map[string]*quiz.Definition),
		builtin: builtin,
	}
}

// Entries returns the current catalog in discovery order.
func (l *Library) Entries() []quiz.Entry {
	out := make([]quiz.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// CustomTests returns the locally stored custom definitions in insertion order.
func (l *Library) CustomTests() []*quiz.Definition {
	out := make([]*quiz.Definition, len(l.custom))
	copy(out, l.custom)
	return out
}

// Load returns the full definition for id. Content already resident
// (memoized, custom, built-in) is returned without I/O; remote entries are
// fetched exactly once and memoized. A failed remote fetch falls back to a
// built-in definition sharing the id when one exists.
func (l *Library) Load(ctx context.Context, id string) (*quiz.Definition, error) {
	if d, ok := l.loaded[id]; ok {
		return d, nil
	}
	if d := l.findCustom(id); d != nil {
		l.loaded[id] = d
		return d, nil
	}

	entry := l.findEntry(id)
	if entry == nil {
		return nil, &quiz.NotFoundError{ID: id}
	}

	if entry.Provenance == quiz.ProvenanceBuiltIn {
		d := l.builtin[id]
		if d == nil {
			return nil, &quiz.NotFoundError{ID: id}
		}
		l.loaded[id] = d
		return d, nil
	}

	raw, err := l.fetcher.Fetch(ctx, entry.Filename)
	if err != nil {
		if d, ok := l.builtin[id]; ok {
			l.loaded[id] = d
			return d, nil
		}
		return nil, &quiz.SourceUnavailableError{ID: id, URL: entry.Filename, Err: err}
	}

	d, err := quiz.Decode(raw)
	if err != nil {
		return nil, err
	}
	d.ID = id
	d.LoadedAt = time.Now()
	d.Provenance = quiz.ProvenanceRemote
	if d.Mode == "" {
		d.Mode = quiz.ModeExam
	}

	l.loaded[id] = d
	return d, nil
}

// AddCustom validates and stores a custom test: assigns an id if none given,
// defaults the mode to exam, appends a catalog entry, and persists the whole
// custom set. Returns the stored definition.
func (l *Library) AddCustom(ctx context.Context, def *quiz.Definition) (*quiz.Definition, error) {
	if err := quiz.Validate(def); err != nil {
		return nil, err
	}

	d := *def
	if d.ID == "" {
		d.ID = "custom_" + uuid.NewString()[:8]
	}
	if d.Mode == "" {
		d.Mode = quiz.ModeExam
	}
	d.LoadedAt = time.Now()
	d.Provenance = quiz.ProvenanceCustom

	l.custom = append(l.custom, &d)
	if l.findEntry(d.ID) == nil {
		l.entries = append(l.entries, quiz.EntryFor(&d))
	}

	if err := l.saveCustom(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

// RemoveCustom deletes a custom test by id, evicting it from the catalog and
// the load cache and re-persisting. Returns false when id is not a custom
// test (built-in and remote entries cannot be removed this way).
func (l *Library) RemoveCustom(ctx context.Context, id string) (bool, error) {
	idx := -1
	for i, d := range l.custom {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	l.custom = append(l.custom[:idx], l.custom[idx+1:]...)
	delete(l.loaded, id)
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}

	if err := l.saveCustom(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// EditMeta carries the editable metadata of a custom test.
type EditMeta struct {
	Title       string
	Description string
	Mode        quiz.Mode
}

// EditCustom applies a metadata edit copy-on-write: the stored definition is
// replaced by a new validated value in one step, so no half-edited
// definition is ever observable.
func (l *Library) EditCustom(ctx context.Context, id string, meta EditMeta) (*quiz.Definition, error) {
	idx := -1
	for i, d := range l.custom {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &quiz.NotFoundError{ID: id}
	}

	d := *l.custom[idx]
	if meta.Title != "" {
		d.Title = meta.Title
	}
	d.Description = meta.Description
	if meta.Mode != "" {
		d.Mode = meta.Mode
	}
	if err := quiz.Validate(&d); err != nil {
		return nil, err
	}

	l.custom[idx] = &d
	delete(l.loaded, id)
	for i, e := range l.entries {
		if e.ID == id {
			l.entries[i] = quiz.EntryFor(&d)
			break
		}
	}

	if err := l.saveCustom(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

func (l *Library) findEntry(id string) *quiz.Entry {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return &l.entries[i]
		}
	}
	return nil
}

func (l *Library) findCustom(id string) *quiz.Definition {
	for _, d := range l.custom {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// loadCustomFromStorage reads the persisted custom-test set. A corrupt value
// degrades to an empty set with a diagnostic; it is never fatal.
func (l *Library) loadCustomFromStorage(ctx context.Context) {
	raw, ok, err := l.kv.Get(ctx, store.KeyCustomTests)
	if err != nil || !ok {
		if err != nil {
			fmt.Fprintln(os.Stderr, "read custom tests:", err)
		}
		return
	}

	var customs []*quiz.Definition
	if err := json.Unmarshal(raw, &customs); err != nil {
		fmt.Fprintln(os.Stderr, "custom test cache unreadable, starting empty:", err)
		return
	}

	for _, d := range customs {
		d.Provenance = quiz.ProvenanceCustom
		if d.Mode == "" {
			d.Mode = quiz.ModeExam
		}
		l.custom = append(l.custom, d)
	}
}

// saveCustom persists the whole custom-test set as one value.
func (l *Library) saveCustom(ctx context.Context) error {
	raw, err := json.Marshal(l.custom)
	if err != nil {
		return fmt.Errorf("marshal custom tests: %w", err)
	}
	if err := l.kv.Set(ctx, store.KeyCustomTests, raw); err != nil {
		return fmt.Errorf("persist custom tests: %w", err)
	}
	return nil
}
