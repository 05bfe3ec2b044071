package webserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSanitizer_Clean(t *testing.T) {
	s := newTextSanitizer()
	tests := []struct {
		in, want string
	}{
		{"  Tom & Jerry ", "Tom & Jerry"},
		{`said "hi" and it's fine`, `said "hi" and it's fine`},
		{"risk > reward", "risk > reward"},
		{"<b>bold</b> move", "bold move"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;", ""},
		{"&lt;img src=x onerror=alert(1)&gt;", ""},
		{"seen &lt;i&gt;twice&lt;/i&gt;", "seen twice"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Clean(tt.in), tt.in)
	}
}

func TestTextSanitizer_NeverEmitsMarkup(t *testing.T) {
	s := newTextSanitizer()
	for _, in := range []string{
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"&#60;svg onload=alert(1)&#62;",
		"&lt;&lt;b&gt;",
		"<<script>script>",
	} {
		assert.NotContains(t, s.Clean(in), "<", in)
	}
}
