package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultBaseURL is the remote test source probed when QUIZDECK_BASE_URL
// is not set.
const DefaultBaseURL = "https://raw.githubusercontent.com/bugaev/quizdeck-tests/main/"

// ManifestFilename is the optional index resource listing remote tests.
const ManifestFilename = "tests_index.json"

// probeFilenames is the fixed candidate set scanned one by one when the
// manifest is missing.
var probeFilenames = []string{
	"test1.json",
	"test2.json",
	"test3.json",
	"questions.json",
	"test_main.json",
	"test_beginner.json",
	"test_safety.json",
}

// Fetcher retrieves one remote test resource by filename. A single attempt
// per call; retry policy is the caller's concern (and there is none).
type Fetcher interface {
	Fetch(ctx context.Context, filename string) ([]byte, error)
}

// HTTPFetcher fetches resources relative to a base URL.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher for baseURL, which falls back to
// QUIZDECK_BASE_URL and then DefaultBaseURL when empty.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	if baseURL == "" {
		baseURL = os.Getenv("QUIZDECK_BASE_URL")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/") + "/",
		Client:  http.DefaultClient,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, filename string) ([]byte, error) {
	return FetchURL(ctx, f.Client, f.BaseURL+filename)
}

// FetchURL performs one GET and returns the body on a 200 response. Also
// used directly by the import-from-URL surface.
func FetchURL(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
