// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds arXiv search_query strings from fielded clauses,
// boolean connectives, and normalized date ranges.
//
// A Builder accumulates clauses fluently and serializes them with Build:
//
//	q := query.New().Title("deep learning").And().Author("Goodfellow")
//	s, err := q.Build() // ti:"deep learning" AND au:"Goodfellow"
//
// Builder methods record the first usage error and make every later call
// a no-op, so call chains stay unconditional and Build reports the error.
package query

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field prefixes of the arXiv query grammar.
const (
	fieldTitle        = "ti"
	fieldAuthor       = "au"
	fieldAbstract     = "abs"
	fieldComment      = "co"
	fieldJournalRef   = "jr"
	fieldCategory     = "cat"
	fieldReportNumber = "rn"
	fieldDOI          = "doi"
)

// Sort specification values accepted by the API.
var (
	sortFields = []interface{}{"relevance", "lastUpdatedDate", "submittedDate"}
	sortOrders = []interface{}{"ascending", "descending"}
)

// Builder accumulates fielded search clauses and connectives in call
// order. The zero value is not usable; use New.
type Builder struct {
	parts     []string // alternating clause and connective tokens
	nclauses  int
	dangling  bool // last appended part is a connective
	dateToken string
	todayUsed bool
	rangeUsed bool
	strict    bool
	sortBy    string
	sortOrder string
	err       error
}

// New returns an empty Builder. By default terms containing double quotes
// are escaped; Strict switches to rejecting them.
func New() *Builder {
	return &Builder{}
}

// Strict makes the builder reject terms containing double quotes with an
// InvalidQueryError instead of escaping them.
func (b *Builder) Strict() *Builder {
	b.strict = true
	return b
}

// Title adds a ti: clause.
func (b *Builder) Title(text string) *Builder { return b.clause(fieldTitle, text) }

// Author adds an au: clause.
func (b *Builder) Author(name string) *Builder { return b.clause(fieldAuthor, name) }

// Abstract adds an abs: clause.
func (b *Builder) Abstract(text string) *Builder { return b.clause(fieldAbstract, text) }

// Comment adds a co: clause.
func (b *Builder) Comment(text string) *Builder { return b.clause(fieldComment, text) }

// JournalRef adds a jr: clause.
func (b *Builder) JournalRef(ref string) *Builder { return b.clause(fieldJournalRef, ref) }

// Category adds a cat: clause. See the taxonomy package for known codes.
func (b *Builder) Category(code string) *Builder { return b.clause(fieldCategory, code) }

// ReportNumber adds an rn: clause.
func (b *Builder) ReportNumber(rn string) *Builder { return b.clause(fieldReportNumber, rn) }

// DOI adds a doi: clause.
func (b *Builder) DOI(doi string) *Builder { return b.clause(fieldDOI, doi) }

// And joins the previous and next clause with AND.
func (b *Builder) And() *Builder { return b.join("AND") }

// Or joins the previous and next clause with OR.
func (b *Builder) Or() *Builder { return b.join("OR") }

// AndNot joins the previous and next clause with ANDNOT.
func (b *Builder) AndNot() *Builder { return b.join("ANDNOT") }

// Group wraps the sub-builder's serialization in parentheses and appends
// it as a single clause, controlling connective precedence.
func (b *Builder) Group(sub *Builder) *Builder {
	if b.err != nil {
		return b
	}
	inner, err := sub.Build()
	if err != nil {
		b.err = err
		return b
	}
	if inner == "" {
		b.err = &InvalidQueryError{Reason: "empty group"}
		return b
	}
	b.parts = append(b.parts, "("+inner+")")
	b.nclauses++
	b.dangling = false
	return b
}

// SortBy records the sort specification sent alongside the query. Field
// must be one of relevance, lastUpdatedDate, or submittedDate; order must
// be ascending or descending.
func (b *Builder) SortBy(field, order string) *Builder {
	if b.err != nil {
		return b
	}
	if err := validation.Validate(field, validation.Required, validation.In(sortFields...)); err != nil {
		b.err = &InvalidQueryError{Reason: "sort field " + strings.TrimSpace(field) + ": " + err.Error()}
		return b
	}
	if err := validation.Validate(order, validation.Required, validation.In(sortOrders...)); err != nil {
		b.err = &InvalidQueryError{Reason: "sort order " + strings.TrimSpace(order) + ": " + err.Error()}
		return b
	}
	b.sortBy = field
	b.sortOrder = order
	return b
}

// Sort returns the recorded sort specification; both strings are empty
// when SortBy was never called.
func (b *Builder) Sort() (field, order string) {
	return b.sortBy, b.sortOrder
}

// Len returns the number of clauses accumulated so far. Date-range
// clauses are not counted; they serialize as a trailing token.
func (b *Builder) Len() int {
	return b.nclauses
}

// Build serializes the accumulated clauses into a single query string,
// appending the date-range clause (if any) joined by AND. An empty
// builder serializes to "". Build reports the first usage error recorded
// by any earlier call.
func (b *Builder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.dangling {
		return "", &InvalidQueryError{Reason: "query ends with a connective"}
	}
	s := strings.Join(b.parts, " ")
	if b.dateToken != "" {
		if s == "" {
			s = b.dateToken
		} else {
			s += " AND " + b.dateToken
		}
	}
	return s, nil
}

func (b *Builder) clause(prefix, term string) *Builder {
	if b.err != nil {
		return b
	}
	quoted, err := b.quote(term)
	if err != nil {
		b.err = err
		return b
	}
	b.parts = append(b.parts, prefix+":"+quoted)
	b.nclauses++
	b.dangling = false
	return b
}

func (b *Builder) join(op string) *Builder {
	if b.err != nil {
		return b
	}
	if b.nclauses == 0 {
		b.err = &InvalidQueryError{Reason: op + " with no preceding clause"}
		return b
	}
	if b.dangling {
		b.err = &InvalidQueryError{Reason: "two consecutive connectives"}
		return b
	}
	b.parts = append(b.parts, op)
	b.dangling = true
	return b
}

// quote wraps term in double quotes. Internal quotes are escaped, or
// rejected in strict mode.
func (b *Builder) quote(term string) (string, error) {
	if strings.TrimSpace(term) == "" {
		return "", &InvalidQueryError{Reason: "empty search term"}
	}
	if strings.Contains(term, `"`) {
		if b.strict {
			return "", &InvalidQueryError{Reason: "term contains a double quote: " + term}
		}
		term = strings.ReplaceAll(term, `"`, `\"`)
	}
	return `"` + term + `"`, nil
}
