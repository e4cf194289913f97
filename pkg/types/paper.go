// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of the arxivist SDK:
// paper records parsed from the arXiv Atom feed, result sets with
// pagination metadata, and configuration structs.
package types

import (
	"regexp"
	"strings"
	"time"
)

// Author is one paper author in feed order.
type Author struct {
	Name        string `json:"name" yaml:"name"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// Link is one <link> element of a feed entry.
type Link struct {
	Href  string `json:"href" yaml:"href"`
	Rel   string `json:"rel,omitempty" yaml:"rel,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Paper holds the metadata of a single arXiv paper. Records are built by
// the feed parser and not mutated afterwards.
type Paper struct {
	// ID is the canonical abs URL (e.g. "http://arxiv.org/abs/2101.00001v2").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title, whitespace-trimmed.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract, whitespace-trimmed.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists the paper authors in feed order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Published and Updated are the submission timestamps from the feed.
	Published time.Time `json:"published" yaml:"published"`
	Updated   time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`

	// Links holds every <link> of the entry (abs page, PDF, DOI resolver).
	Links []Link `json:"links,omitempty" yaml:"links,omitempty"`

	// PrimaryCategory is the paper's primary taxonomy code (e.g. "cs.LG").
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`

	// Categories lists every taxonomy code the paper is filed under.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Optional metadata present on some entries.
	Comment    string `json:"comment,omitempty" yaml:"comment,omitempty"`
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`
	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`
}

// ResultSet is one page of search results plus the OpenSearch pagination
// metadata reported by the API. len(Entries) never exceeds the requested
// page size.
type ResultSet struct {
	Entries      []Paper `json:"entries" yaml:"entries"`
	TotalResults int     `json:"total_results" yaml:"total_results"`
	StartIndex   int     `json:"start_index" yaml:"start_index"`
	ItemsPerPage int     `json:"items_per_page" yaml:"items_per_page"`

	// Query, SortBy and SortOrder echo the request that produced this page.
	Query     string `json:"query,omitempty" yaml:"query,omitempty"`
	SortBy    string `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
}

var (
	absPattern     = regexp.MustCompile(`/abs/(.+)$`)
	versionPattern = regexp.MustCompile(`v(\d+)$`)
	newIDPattern   = regexp.MustCompile(`\d{4}\.\d{4,5}`)
)

// ShortID returns the bare arXiv identifier with any version suffix
// stripped (e.g. "2101.00001"). It returns "" when ID is not an abs URL.
func (p *Paper) ShortID() string {
	m := absPattern.FindStringSubmatch(p.ID)
	if m == nil {
		return ""
	}
	return versionPattern.ReplaceAllString(m[1], "")
}

// Version returns the version number from the ID URL, or 0 when the ID
// carries no version suffix.
func (p *Paper) Version() int {
	m := versionPattern.FindStringSubmatch(p.ID)
	if m == nil {
		return 0
	}
	v := 0
	for _, c := range m[1] {
		v = v*10 + int(c-'0')
	}
	return v
}

// PDFURL returns the download URL for the paper's PDF. It prefers an
// explicit application/pdf link, normalizing hrefs that lack the ".pdf"
// suffix, and falls back to constructing the URL from the abs ID. It
// returns "" when no PDF location can be derived.
func (p *Paper) PDFURL() string {
	for _, l := range p.Links {
		if l.Type != "application/pdf" {
			continue
		}
		href := l.Href
		if href == "" {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			// Some feeds link to /pdf/<id> without the suffix.
			if strings.Contains(href, "/pdf/") || newIDPattern.MatchString(href) {
				return href + ".pdf"
			}
		}
		return href
	}
	if m := absPattern.FindStringSubmatch(p.ID); m != nil {
		return "https://arxiv.org/pdf/" + m[1] + ".pdf"
	}
	return ""
}
