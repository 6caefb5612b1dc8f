// Package github talks to the GitHub REST and archive endpoints. It is a
// thin fetch layer: one metadata request to resolve the default branch and
// one streaming GET for the branch ZIP archive, neither retried.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/repopick/repopick/internal/domain"
	"github.com/repopick/repopick/internal/utils"
)

const (
	apiBaseURL     = "https://api.github.com"
	archiveBaseURL = "https://github.com"

	// DefaultTimeout bounds the whole archive transfer
	DefaultTimeout = 10 * time.Minute
)

// Client issues requests against GitHub
type Client struct {
	httpClient *http.Client
	apiBase    string
	archBase   string
	logger     *utils.Logger
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *utils.Logger

	// APIBaseURL and ArchiveBaseURL override the GitHub endpoints, used by tests
	APIBaseURL     string
	ArchiveBaseURL string
}

// NewClient creates a new GitHub client
func NewClient(opts ClientOptions) *Client {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		}
	}

	apiBase := opts.APIBaseURL
	if apiBase == "" {
		apiBase = apiBaseURL
	}
	archBase := opts.ArchiveBaseURL
	if archBase == "" {
		archBase = archiveBaseURL
	}

	return &Client{
		httpClient: client,
		apiBase:    apiBase,
		archBase:   archBase,
		logger:     opts.Logger,
	}
}

type repoMetadata struct {
	DefaultBranch string `json:"default_branch"`
}

// DefaultBranch resolves the repository's default branch from the metadata
// endpoint. A single attempt is made; transport or non-2xx failures surface
// as a FetchError carrying the status.
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	metaURL := fmt.Sprintf("%s/repos/%s/%s", c.apiBase, owner, repo)

	if c.logger != nil {
		c.logger.Debug().Str("url", metaURL).Msg("Resolving default branch")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metaURL, nil)
	if err != nil {
		return "", domain.NewFetchError(metaURL, 0, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewFetchError(metaURL, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domain.NewFetchError(metaURL, resp.StatusCode,
			fmt.Errorf("metadata request failed: %s", resp.Status))
	}

	var meta repoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", domain.NewFetchError(metaURL, resp.StatusCode, err)
	}
	if meta.DefaultBranch == "" {
		return "", domain.NewFetchError(metaURL, resp.StatusCode,
			fmt.Errorf("metadata response carries no default branch"))
	}

	return meta.DefaultBranch, nil
}

// ArchiveURL builds the canonical branch ZIP archive URL
func (c *Client) ArchiveURL(ref domain.RepoRef) string {
	return fmt.Sprintf("%s/%s/%s/archive/refs/heads/%s.zip",
		c.archBase, ref.Owner, ref.Repo, ref.Branch)
}

// FetchArchive issues a streaming GET for the branch ZIP archive and returns
// the lazy response body plus the content length (-1 when unknown). The
// caller owns the returned reader and must close it.
func (c *Client) FetchArchive(ctx context.Context, ref domain.RepoRef) (io.ReadCloser, int64, error) {
	archiveURL := c.ArchiveURL(ref)

	if c.logger != nil {
		c.logger.Debug().Str("url", archiveURL).Msg("Downloading archive")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, 0, domain.NewFetchError(archiveURL, 0, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, domain.NewFetchError(archiveURL, 0, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, domain.NewFetchError(archiveURL, resp.StatusCode,
			fmt.Errorf("archive download failed: %s", resp.Status))
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, 0, domain.NewFetchError(archiveURL, resp.StatusCode, domain.ErrNoArchiveBody)
	}

	return resp.Body, resp.ContentLength, nil
}
