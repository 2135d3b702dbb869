package fmxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeToASCII(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "John Doe", "John Doe"},
		{"markup", `<a href="x">`, "&lt;a href=&quot;x&quot;&gt;"},
		{"ampersand", "Smith & Sons", "Smith &amp; Sons"},
		{"apostrophe normalized", "O'Brien", "O&#39;Brien"},
		{"non-ascii", "Dürer", "D&#252;rer"},
		{"mixed", "x < 'ü' & y", "x &lt; &#39;&#252;&#39; &amp; y"},
		{"surrounding whitespace trimmed", "  padded  ", "padded"},
		{"multibyte rune", "日本", "&#26085;&#26412;"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeToASCII(tt.input))
		})
	}
}
