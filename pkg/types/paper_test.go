// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"new style versioned", "http://arxiv.org/abs/2101.00001v2", "2101.00001"},
		{"new style bare", "http://arxiv.org/abs/2101.00001", "2101.00001"},
		{"legacy", "http://arxiv.org/abs/hep-th/9901001v1", "hep-th/9901001"},
		{"not an abs url", "2101.00001", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paper{ID: tt.id}
			assert.Equal(t, tt.want, p.ShortID())
		})
	}
}

func TestVersion(t *testing.T) {
	assert.Equal(t, 2, (&Paper{ID: "http://arxiv.org/abs/2101.00001v2"}).Version())
	assert.Equal(t, 0, (&Paper{ID: "http://arxiv.org/abs/2101.00001"}).Version())
	assert.Equal(t, 12, (&Paper{ID: "http://arxiv.org/abs/2101.00001v12"}).Version())
}

func TestPDFURL(t *testing.T) {
	tests := []struct {
		name  string
		paper Paper
		want  string
	}{
		{
			"explicit pdf link with suffix",
			Paper{Links: []Link{{Href: "http://arxiv.org/pdf/2101.00001v2.pdf", Type: "application/pdf"}}},
			"http://arxiv.org/pdf/2101.00001v2.pdf",
		},
		{
			"pdf link without suffix normalized",
			Paper{Links: []Link{{Href: "http://arxiv.org/pdf/2101.00001v2", Type: "application/pdf"}}},
			"http://arxiv.org/pdf/2101.00001v2.pdf",
		},
		{
			"fallback from abs id",
			Paper{ID: "http://arxiv.org/abs/2101.00001v2"},
			"https://arxiv.org/pdf/2101.00001v2.pdf",
		},
		{
			"non-pdf links ignored",
			Paper{
				ID: "http://arxiv.org/abs/2101.00001v2",
				Links: []Link{
					{Href: "http://arxiv.org/abs/2101.00001v2", Type: "text/html", Rel: "alternate"},
				},
			},
			"https://arxiv.org/pdf/2101.00001v2.pdf",
		},
		{
			"nothing to derive from",
			Paper{ID: "urn:something-else"},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.paper.PDFURL())
		})
	}
}
