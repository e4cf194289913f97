// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hub saves paper PDFs under a caller-supplied hub directory.
// Each paper lands in a category-derived subdirectory with a slugged
// filename and a YAML metadata sidecar; completed downloads are recorded
// in an optional SQLite ledger.
package hub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxivist/internal/httputil"
	"github.com/pdiddy/arxivist/pkg/types"
)

const (
	slugMaxLen      = 80
	unknownCategory = "UNKNOWN"
)

// DownloadError reports a failed document save: a missing hub directory,
// a network failure that survived retries, or a write failure.
type DownloadError struct {
	Reason string
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download: %s: %v", e.Reason, e.Err)
	}
	return "download: " + e.Reason
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Hub is a document fetcher bound to one root directory.
type Hub struct {
	root       string
	httpClient *http.Client
	userAgent  string
	overwrite  bool
	maxRetries int
	ledger     *Ledger
}

// Option configures a Hub.
type Option func(*Hub)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(h *Hub) { h.httpClient = hc }
}

// WithUserAgent sets the User-Agent header for PDF requests.
func WithUserAgent(ua string) Option {
	return func(h *Hub) { h.userAgent = ua }
}

// WithOverwrite re-downloads papers whose PDF already exists.
func WithOverwrite(overwrite bool) Option {
	return func(h *Hub) { h.overwrite = overwrite }
}

// WithLedger records completed downloads in the given ledger.
func WithLedger(l *Ledger) Option {
	return func(h *Hub) { h.ledger = l }
}

// FromConfig builds a Hub from a configuration struct.
func FromConfig(cfg types.HubConfig, opts ...Option) *Hub {
	base := []Option{WithOverwrite(cfg.Overwrite)}
	if cfg.Timeout > 0 {
		base = append(base, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cfg.UserAgent != "" {
		base = append(base, WithUserAgent(cfg.UserAgent))
	}
	return New(cfg.Root, append(base, opts...)...)
}

// New returns a Hub rooted at dir. The directory is validated at
// download time, not here, so a Hub can be constructed before the
// destination is prepared.
func New(root string, opts ...Option) *Hub {
	h := &Hub{
		root:       root,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		userAgent:  "arxivist/0.1",
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Download fetches the paper's PDF into the hub and returns the saved
// path. The hub root must already exist; the category subdirectory is
// created on demand. An existing file is returned as-is with skipped set,
// unless the hub was configured to overwrite.
func (h *Hub) Download(ctx context.Context, paper *types.Paper) (path string, skipped bool, err error) {
	pdfURL := paper.PDFURL()
	if pdfURL == "" {
		return "", false, &DownloadError{Reason: "no PDF URL available for this paper"}
	}

	info, err := os.Stat(h.root)
	if err != nil || !info.IsDir() {
		return "", false, &DownloadError{Reason: "destination hub does not exist: " + h.root}
	}

	catDir := filepath.Join(h.root, CategoryDir(paper.PrimaryCategory))
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		return "", false, &DownloadError{Reason: "creating category directory", Err: err}
	}

	stem := Slug(paper.Title)
	if id := paper.ShortID(); id != "" {
		if stem != "" {
			stem += "-"
		}
		stem += id
	}
	if stem == "" {
		return "", false, &DownloadError{Reason: "paper has neither title nor identifier"}
	}
	destPath := filepath.Join(catDir, stem+".pdf")

	if !h.overwrite {
		if _, err := os.Stat(destPath); err == nil {
			return destPath, true, nil
		}
	}

	if err := h.fetchFile(ctx, pdfURL, destPath); err != nil {
		return "", false, err
	}

	// Best-effort YAML sidecar; a failed sidecar does not fail the
	// download.
	if err := writeMetadata(paper, filepath.Join(catDir, stem+".yaml")); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write metadata for %s: %v\n", stem, err)
	}

	if h.ledger != nil {
		rec := Record{
			ID:           paper.ShortID(),
			Title:        paper.Title,
			Category:     paper.PrimaryCategory,
			Path:         destPath,
			DownloadedAt: time.Now().UTC(),
		}
		if err := h.ledger.Add(ctx, rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record download of %s: %v\n", stem, err)
		}
	}

	return destPath, false, nil
}

// BatchResult holds the outcome of a batch download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Paths      []string
}

// Total returns the total number of papers processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DownloadBatch downloads multiple papers sequentially, printing
// per-item status lines to w and a summary at the end. It continues
// after individual failures.
func (h *Hub) DownloadBatch(ctx context.Context, papers []*types.Paper, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range papers {
		path, wasSkipped, err := h.Download(ctx, p)
		if err != nil {
			fmt.Fprintf(w, "failed:     %s (%v)\n", p.ShortID(), err)
			result.Failed++
			continue
		}
		if wasSkipped {
			fmt.Fprintf(w, "skipped:    %s (already exists)\n", p.ShortID())
			result.Skipped++
		} else {
			fmt.Fprintf(w, "downloaded: %s -> %s\n", p.ShortID(), path)
			result.Downloaded++
		}
		result.Paths = append(result.Paths, path)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// fetchFile downloads url to destPath via a temporary file, renaming on
// success so readers never observe a partial PDF.
func (h *Hub) fetchFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &DownloadError{Reason: "creating request", Err: err}
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, h.httpClient, req, h.maxRetries)
	if err != nil {
		return &DownloadError{Reason: "fetching " + url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &DownloadError{Reason: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url)}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".hub-*.tmp")
	if err != nil {
		return &DownloadError{Reason: "creating temp file", Err: err}
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return &DownloadError{Reason: "writing download", Err: copyErr}
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return &DownloadError{Reason: "closing temp file", Err: closeErr}
	}
	if n == 0 {
		os.Remove(tmpPath)
		return &DownloadError{Reason: "downloaded file is empty"}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &DownloadError{Reason: "renaming temp file", Err: err}
	}
	return nil
}

// CategoryDir derives the subdirectory name for a taxonomy code: "." and
// "-" become "_" and the result is upper-cased ("cs.LG" -> "CS_LG").
func CategoryDir(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return unknownCategory
	}
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(code))
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a filesystem-safe filename stem from a title: lower-cased,
// non-alphanumeric runs collapsed to a single underscore, trimmed, and
// truncated to 80 bytes.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = nonAlnum.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > slugMaxLen {
		s = strings.TrimRight(s[:slugMaxLen], "_")
	}
	return s
}

// writeMetadata writes the paper record next to its PDF.
func writeMetadata(paper *types.Paper, path string) error {
	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
