package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/mod/semver"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultOwner   = "abhisek"
	defaultRepo    = "funcdrill"
	defaultBinary  = "funcdrill"
	defaultTimeout = 10 * time.Second

	checksumsAsset = "checksums.txt"
)

var (
	// ErrNoRelease is returned when the release payload carries no tag.
	ErrNoRelease = errors.New("no published release found")
	// ErrUnsupportedPlatform is returned for platforms no archive is built for.
	ErrUnsupportedPlatform = errors.New("no release archive for this platform")
)

// Checker looks up the latest published release and applies updates.
type Checker struct {
	baseURL  string
	owner    string
	repo     string
	binary   string
	goos     string
	goarch   string
	client   *http.Client
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the releases API host.
func WithBaseURL(url string) Option {
	return func(c *Checker) { c.baseURL = url }
}

// WithBinaryName sets the executable name used for archive names and the
// archive entry to install.
func WithBinaryName(name string) Option {
	return func(c *Checker) { c.binary = name }
}

// WithPlatform selects the release archive for goos/goarch instead of the
// running platform.
func WithPlatform(goos, goarch string) Option {
	return func(c *Checker) {
		c.goos = goos
		c.goarch = goarch
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) { c.client = hc }
}

// WithRepo points the checker at another owner/repo.
func WithRepo(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the funcdrill releases.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		baseURL:  defaultBaseURL,
		owner:    defaultOwner,
		repo:     defaultRepo,
		binary:   defaultBinary,
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
		client:   &http.Client{Timeout: defaultTimeout},
		execPath: os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput describes the running build.
type CheckInput struct {
	Version string
}

// CheckResult reports how the running build compares to the latest release.
// Archive and ChecksumsURL are empty when the release has no matching asset.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool

	Archive      string
	ArchiveURL   string
	ChecksumsURL string
}

// Check fetches the latest release and compares it with input.Version.
// Builds without a semantic version always see the release as newer.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoRelease
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read release: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid release payload from %s", url)
	}

	release := gjson.ParseBytes(body)
	tag := release.Get("tag_name").String()
	if tag == "" {
		return nil, ErrNoRelease
	}

	latest := canonicalVersion(tag)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("release tag %q is not a semantic version", tag)
	}

	current := canonicalVersion(input.Version)
	available := !semver.IsValid(current) || semver.Compare(latest, current) > 0

	result := &CheckResult{
		CurrentVersion:  input.Version,
		LatestVersion:   tag,
		ReleaseURL:      release.Get("html_url").String(),
		UpdateAvailable: available,
	}

	archive, archiveErr := c.archiveName(tag)
	for _, asset := range release.Get("assets").Array() {
		name := asset.Get("name").String()
		url := asset.Get("browser_download_url").String()
		switch {
		case archiveErr == nil && name == archive:
			result.Archive, result.ArchiveURL = name, url
		case name == checksumsAsset:
			result.ChecksumsURL = url
		}
	}
	return result, nil
}

// archiveName returns the release archive for the checker's platform,
// e.g. funcdrill_1.4.0_linux_amd64.tar.gz.
func (c *Checker) archiveName(tag string) (string, error) {
	switch c.goos {
	case "linux", "darwin":
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, c.goos, c.goarch)
	}
	switch c.goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, c.goos, c.goarch)
	}
	version := strings.TrimPrefix(canonicalVersion(tag), "v")
	return fmt.Sprintf("%s_%s_%s_%s.tar.gz", c.binary, version, c.goos, c.goarch), nil
}

// canonicalVersion adds the "v" prefix semver expects.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	return v
}
