// Package selfupdate checks the release feed for a newer quizdesk build.
// It only checks; installing the update is left to the user's package
// manager.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var ErrDevBuild = errors.New("cannot check a development build")

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultOwner      = "quizdesk"
	defaultRepo       = "quizdesk"
)

// Checker queries the release feed.
type Checker struct {
	apiBaseURL string
	owner      string
	repo       string
	httpc      *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the HTTP timeout for release queries.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.httpc.Timeout = d }
}

// WithAPIBaseURL overrides the release API origin. Mostly for tests.
func WithAPIBaseURL(u string) Option {
	return func(c *Checker) { c.apiBaseURL = strings.TrimRight(u, "/") }
}

// NewChecker creates a Checker against the quizdesk release feed.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		apiBaseURL: defaultAPIBaseURL,
		owner:      defaultOwner,
		repo:       defaultRepo,
		httpc:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput names the running version.
type CheckInput struct {
	Version string
}

// CheckResult reports the latest published version and whether it is
// newer than the running one.
type CheckResult struct {
	LatestVersion   string
	UpdateAvailable bool
}

type release struct {
	TagName string `json:"tag_name"`
}

// Check fetches the latest release tag and compares it semantically with
// the running version.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	if input.Version == "(devel)" {
		return nil, ErrDevBuild
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiBaseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read release response: %w", err)
	}

	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("decode release response: %w", err)
	}
	if rel.TagName == "" {
		return nil, errors.New("release feed returned no tag")
	}

	latest := canonical(rel.TagName)
	current := canonical(input.Version)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("release tag %q is not a valid version", rel.TagName)
	}

	return &CheckResult{
		LatestVersion:   rel.TagName,
		UpdateAvailable: !semver.IsValid(current) || semver.Compare(latest, current) > 0,
	}, nil
}

// canonical prefixes a bare version with "v" so semver accepts it.
func canonical(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
