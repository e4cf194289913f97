// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy is a static catalog of arXiv category codes and their
// human-readable descriptions. The table is compiled in, curated rather
// than exhaustive, and immutable; a sorted index for keyword search is
// built once at package init.
package taxonomy

import (
	"sort"
	"strings"
)

// Entry pairs a category code with its description.
type Entry struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// descriptions maps category codes (archive.subject, or a legacy bare
// archive) to descriptions.
var descriptions = map[string]string{
	// Computer Science
	"cs.AI": "Computer Science - Artificial Intelligence",
	"cs.CL": "Computer Science - Computation and Language (NLP)",
	"cs.CR": "Computer Science - Cryptography and Security",
	"cs.CV": "Computer Science - Computer Vision and Pattern Recognition",
	"cs.DB": "Computer Science - Databases",
	"cs.DC": "Computer Science - Distributed, Parallel, and Cluster Computing",
	"cs.DS": "Computer Science - Data Structures and Algorithms",
	"cs.IR": "Computer Science - Information Retrieval",
	"cs.LG": "Computer Science - Machine Learning",
	"cs.NE": "Computer Science - Neural and Evolutionary Computing",
	"cs.PL": "Computer Science - Programming Languages",
	"cs.RO": "Computer Science - Robotics",
	"cs.SE": "Computer Science - Software Engineering",

	// Mathematics
	"math.CO": "Mathematics - Combinatorics",
	"math.NA": "Mathematics - Numerical Analysis",
	"math.OC": "Mathematics - Optimization and Control",
	"math.PR": "Mathematics - Probability",
	"math.ST": "Mathematics - Statistics Theory",

	// Statistics
	"stat.ME": "Statistics - Methodology",
	"stat.ML": "Statistics - Machine Learning",

	// Physics
	"astro-ph": "Astrophysics",
	"cond-mat": "Condensed Matter",
	"gr-qc":    "General Relativity and Quantum Cosmology",
	"hep-ex":   "High Energy Physics - Experiment",
	"hep-ph":   "High Energy Physics - Phenomenology",
	"hep-th":   "High Energy Physics - Theory",
	"nucl-th":  "Nuclear Theory",
	"quant-ph": "Quantum Physics",

	// Electrical Engineering and Systems Science
	"eess.AS": "Electrical Engineering - Audio and Speech Processing",
	"eess.IV": "Electrical Engineering - Image and Video Processing",
	"eess.SP": "Electrical Engineering - Signal Processing",
	"eess.SY": "Electrical Engineering - Systems and Control",

	// Quantitative Biology / Finance / Economics
	"econ.EM": "Economics - Econometrics",
	"q-bio":   "Quantitative Biology",
	"q-fin":   "Quantitative Finance",
}

// index holds all entries stable-sorted by code.
var index []Entry

func init() {
	index = make([]Entry, 0, len(descriptions))
	for code, desc := range descriptions {
		index = append(index, Entry{Code: code, Description: desc})
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Code < index[j].Code })
}

// Describe returns the description for a category code. ok is false for
// codes the catalog does not carry.
func Describe(code string) (desc string, ok bool) {
	desc, ok = descriptions[code]
	return desc, ok
}

// Search returns every entry whose code or description contains keyword
// case-insensitively, ordered by code. An empty keyword matches nothing.
func Search(keyword string) []Entry {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil
	}
	var out []Entry
	for _, e := range index {
		if strings.Contains(strings.ToLower(e.Code), kw) ||
			strings.Contains(strings.ToLower(e.Description), kw) {
			out = append(out, e)
		}
	}
	return out
}

// All returns the full catalog ordered by code. The returned slice is a
// copy; callers may not mutate the catalog.
func All() []Entry {
	out := make([]Entry, len(index))
	copy(out, index)
	return out
}
