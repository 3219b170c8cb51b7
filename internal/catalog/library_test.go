package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugaev/quizdeck/internal/quiz"
)

// fakeKV is an in-memory store.KV for tests.
type fakeKV struct {
	m map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{m: make(map[string][]byte)}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := f.m[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte) error {
	f.m[key] = value
	return nil
}

const remoteTest = `{
	"title": "Remote test",
	"questions": [
		{"question": "q1", "answers": ["a", "b"], "correct": 0},
		{"question": "q2", "answers": ["a", "b", "c"], "correct": 1}
	]
}`

func serveFiles(files map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func newTestLibrary(t *testing.T, files map[string]string) (*Library, *fakeKV) {
	t.Helper()
	srv := serveFiles(files)
	t.Cleanup(srv.Close)
	kv := newFakeKV()
	return New(NewHTTPFetcher(srv.URL), kv), kv
}

func customDef(id, title string) *quiz.Definition {
	return &quiz.Definition{
		ID:    id,
		Title: title,
		Questions: []quiz.Question{
			{Prompt: "q", Answers: []string{"a", "b"}, Correct: quiz.SingleCorrect(0)},
		},
	}
}

func TestDiscoverFromManifest(t *testing.T) {
	lib, _ := newTestLibrary(t, map[string]string{
		"/tests_index.json": `{"tests":[
			{"id":"signs","filename":"signs.json","title":"Signs","totalQuestions":5},
			{"id":"rules","filename":"rules.json","title":"Rules","totalQuestions":3}
		]}`,
	})

	entries, err := lib.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "signs", entries[0].ID)
	require.Equal(t, quiz.ProvenanceRemote, entries[0].Provenance)
}

func TestDiscoverProbesWhenManifestMissing(t *testing.T) {
	lib, _ := newTestLibrary(t, map[string]string{
		"/test1.json":     remoteTest,
		"/questions.json": remoteTest,
	})

	entries, err := lib.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "test1", entries[0].ID)
	require.Equal(t, "questions", entries[1].ID)
}

func TestDiscoverFallsBackToBuiltins(t *testing.T) {
	lib, _ := newTestLibrary(t, nil)

	entries, err := lib.Discover(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		require.Equal(t, quiz.ProvenanceBuiltIn, e.Provenance)
	}
}

func TestDiscoverDedupFirstWins(t *testing.T) {
	lib, _ := newTestLibrary(t, map[string]string{
		"/tests_index.json": `{"tests":[{"id":"mine","filename":"mine.json","title":"Remote copy"}]}`,
	})

	// Seed a custom test sharing the remote id; custom discovery runs first.
	_, err := lib.Discover(context.Background())
	require.NoError(t, err)
	_, err = lib.AddCustom(context.Background(), customDef("mine", "Local copy"))
	require.NoError(t, err)

	entries, err := lib.Discover(context.Background())
	require.NoError(t, err)

	var found int
	for _, e := range entries {
		if e.ID == "mine" {
			found++
			require.Equal(t, "Local copy", e.Title)
			require.Equal(t, quiz.ProvenanceCustom, e.Provenance)
		}
	}
	require.Equal(t, 1, found, "duplicate id must appear exactly once")
}

func TestLoadMemoizes(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tests_index.json" {
			_, _ = w.Write([]byte(`{"tests":[{"id":"signs","filename":"signs.json","title":"Signs"}]}`))
			return
		}
		hits.Add(1)
		_, _ = w.Write([]byte(remoteTest))
	}))
	t.Cleanup(srv.Close)

	lib := New(NewHTTPFetcher(srv.URL), newFakeKV())
	_, err := lib.Discover(context.Background())
	require.NoError(t, err)

	d1, err := lib.Load(context.Background(), "signs")
	require.NoError(t, err)
	require.Equal(t, "signs", d1.ID)
	require.Equal(t, quiz.ModeExam, d1.Mode, "mode defaults to exam")

	d2, err := lib.Load(context.Background(), "signs")
	require.NoError(t, err)
	require.Same(t, d1, d2)
	require.Equal(t, int32(1), hits.Load(), "second load must not refetch")
}

func TestLoadUnknownID(t *testing.T) {
	lib, _ := newTestLibrary(t, nil)
	_, err := lib.Discover(context.Background())
	require.NoError(t, err)

	_, err = lib.Load(context.Background(), "nope")
	var nf *quiz.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "nope", nf.ID)
}

func TestLoadFallsBackToBuiltinOnFetchFailure(t *testing.T) {
	// Manifest advertises a test whose content is unreachable but whose id
	// matches a built-in definition.
	lib, _ := newTestLibrary(t, map[string]string{
		"/tests_index.json": `{"tests":[{"id":"general_knowledge","filename":"gone.json","title":"GK"}]}`,
	})

	_, err := lib.Discover(context.Background())
	require.NoError(t, err)

	d, err := lib.Load(context.Background(), "general_knowledge")
	require.NoError(t, err)
	require.Equal(t, quiz.ProvenanceBuiltIn, d.Provenance)
	require.NotEmpty(t, d.Questions)
}

func TestLoadSourceUnavailable(t *testing.T) {
	lib, _ := newTestLibrary(t, map[string]string{
		"/tests_index.json": `{"tests":[{"id":"ghost","filename":"ghost.json","title":"Ghost"}]}`,
	})

	_, err := lib.Discover(context.Background())
	require.NoError(t, err)

	_, err = lib.Load(context.Background(), "ghost")
	var su *quiz.SourceUnavailableError
	require.ErrorAs(t, err, &su)
	require.Equal(t, "ghost", su.ID)
}

func TestRefreshKeepsCustomTests(t *testing.T) {
	lib, _ := newTestLibrary(t, map[string]string{
		"/tests_index.json": `{"tests":[{"id":"signs","filename":"signs.json","title":"Signs"}]}`,
	})

	_, err := lib.Discover(context.Background())
	require.NoError(t, err)
	stored, err := lib.AddCustom(context.Background(), customDef("", "My quiz"))
	require.NoError(t, err)

	entries, err := lib.Refresh(context.Background())
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, e := range entries {
		ids[e.ID] = true
	}
	require.True(t, ids[stored.ID], "custom test must survive refresh")
	require.True(t, ids["signs"], "remote entry must be re-merged")
}

func TestCustomTestsPersistAcrossLibraries(t *testing.T) {
	srv := serveFiles(nil)
	t.Cleanup(srv.Close)
	kv := newFakeKV()

	lib := New(NewHTTPFetcher(srv.URL), kv)
	_, err := lib.Discover(context.Background())
	require.NoError(t, err)
	stored, err := lib.AddCustom(context.Background(), customDef("", "Persisted"))
	require.NoError(t, err)

	lib2 := New(NewHTTPFetcher(srv.URL), kv)
	_, err = lib2.Discover(context.Background())
	require.NoError(t, err)

	d, err := lib2.Load(context.Background(), stored.ID)
	require.NoError(t, err)
	require.Equal(t, "Persisted", d.Title)
	require.Equal(t, quiz.ProvenanceCustom, d.Provenance)
}

func TestEditCustomCopyOnWrite(t *testing.T) {
	lib, _ := newTestLibrary(t, nil)
	_, err := lib.Discover(context.Background())
	require.NoError(t, err)

	stored, err := lib.AddCustom(context.Background(), customDef("", "Before"))
	require.NoError(t, err)

	updated, err := lib.EditCustom(context.Background(), stored.ID, EditMeta{
		Title: "After",
		Mode:  quiz.ModeTutorial,
	})
	require.NoError(t, err)
	require.Equal(t, "After", updated.Title)
	require.Equal(t, quiz.ModeTutorial, updated.Mode)
	require.Equal(t, "Before", stored.Title, "edit must not mutate the old value")

	_, err = lib.EditCustom(context.Background(), "missing", EditMeta{Title: "x"})
	var nf *quiz.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestRemoveCustomOnlyRemovesCustoms(t *testing.T) {
	lib, _ := newTestLibrary(t, nil)
	_, err := lib.Discover(context.Background())
	require.NoError(t, err)

	removed, err := lib.RemoveCustom(context.Background(), "general_knowledge")
	require.NoError(t, err)
	require.False(t, removed, "built-in tests are not removable")

	stored, err := lib.AddCustom(context.Background(), customDef("", "Mine"))
	require.NoError(t, err)

	removed, err = lib.RemoveCustom(context.Background(), stored.ID)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = lib.Load(context.Background(), stored.ID)
	var nf *quiz.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDiscoverToleratesCorruptCustomStorage(t *testing.T) {
	srv := serveFiles(nil)
	t.Cleanup(srv.Close)

	kv := newFakeKV()
	kv.m["custom_tests"] = []byte("{not json")

	lib := New(NewHTTPFetcher(srv.URL), kv)
	entries, err := lib.Discover(context.Background())
	require.NoError(t, err, "corrupt custom storage must degrade, not fail")
	require.NotEmpty(t, entries, "built-ins still expected")
}
