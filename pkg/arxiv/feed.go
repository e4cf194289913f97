// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/arxivist/pkg/types"
)

// arXiv Atom feed XML structures. The opensearch:* elements carry
// pagination metadata; the arxiv:* elements carry paper extras. Matching
// is by local name, so the namespace prefixes need no declaration here.
type atomFeed struct {
	TotalResults string      `xml:"totalResults"`
	StartIndex   string      `xml:"startIndex"`
	ItemsPerPage string      `xml:"itemsPerPage"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Published       string         `xml:"published"`
	Updated         string         `xml:"updated"`
	Authors         []atomAuthor   `xml:"author"`
	Links           []atomLink     `xml:"link"`
	Categories      []atomCategory `xml:"category"`
	PrimaryCategory atomCategory   `xml:"primary_category"`
	Comment         string         `xml:"comment"`
	JournalRef      string         `xml:"journal_ref"`
	DOI             string         `xml:"doi"`
}

type atomAuthor struct {
	Name        string `xml:"name"`
	Affiliation string `xml:"affiliation"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// parseFeed decodes an Atom feed document into a ResultSet. Any entry
// that fails to parse fails the whole call; no truncated result sets.
func parseFeed(r io.Reader, queryString, sortBy, sortOrder string) (*types.ResultSet, error) {
	var feed atomFeed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, &ParseError{Index: -1, Reason: err.Error(), Err: err}
	}

	rs := &types.ResultSet{
		Query:     queryString,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
	rs.TotalResults = atoiLoose(feed.TotalResults)
	rs.StartIndex = atoiLoose(feed.StartIndex)
	rs.ItemsPerPage = atoiLoose(feed.ItemsPerPage)

	for i, e := range feed.Entries {
		p, err := parseEntry(e)
		if err != nil {
			return nil, &ParseError{Index: i, Reason: err.Error(), Err: err}
		}
		rs.Entries = append(rs.Entries, p)
	}
	return rs, nil
}

// parseEntry converts one feed entry into a Paper record or a typed
// error; it never builds a half-valid record.
func parseEntry(e atomEntry) (types.Paper, error) {
	if strings.TrimSpace(e.ID) == "" {
		return types.Paper{}, fmt.Errorf("entry has no id")
	}

	p := types.Paper{
		ID:              strings.TrimSpace(e.ID),
		Title:           strings.TrimSpace(e.Title),
		Summary:         strings.TrimSpace(e.Summary),
		PrimaryCategory: e.PrimaryCategory.Term,
		Comment:         strings.TrimSpace(e.Comment),
		JournalRef:      strings.TrimSpace(e.JournalRef),
		DOI:             strings.TrimSpace(e.DOI),
	}

	var err error
	if p.Published, err = parseStamp(e.Published); err != nil {
		return types.Paper{}, fmt.Errorf("published timestamp: %w", err)
	}
	if p.Updated, err = parseStamp(e.Updated); err != nil {
		return types.Paper{}, fmt.Errorf("updated timestamp: %w", err)
	}

	for _, a := range e.Authors {
		p.Authors = append(p.Authors, types.Author{
			Name:        strings.TrimSpace(a.Name),
			Affiliation: strings.TrimSpace(a.Affiliation),
		})
	}
	for _, l := range e.Links {
		p.Links = append(p.Links, types.Link{Href: l.Href, Rel: l.Rel, Type: l.Type, Title: l.Title})
	}
	for _, c := range e.Categories {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	return p, nil
}

// parseStamp parses an RFC 3339 timestamp; an absent element is not an
// error.
func parseStamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// atoiLoose parses OpenSearch counters, treating absent or malformed
// values as zero. Pagination metadata is advisory, not load-bearing.
func atoiLoose(s string) int {
	n := 0
	for _, c := range strings.TrimSpace(s) {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
