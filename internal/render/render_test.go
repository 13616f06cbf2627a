package render

import (
	"strings"
	"testing"
)

func TestFormatLinks(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "bare url",
			content:  "reading notes at https://example.com/notes",
			expected: `reading notes at <a href="https://example.com/notes">https://example.com/notes</a>`,
		},
		{
			name:     "url at start of text",
			content:  "https://example.com is down",
			expected: `<a href="https://example.com">https://example.com</a> is down`,
		},
		{
			name:     "url inside parentheses",
			content:  "the review (https://example.com/r/1) says otherwise",
			expected: `the review (<a href="https://example.com/r/1">https://example.com/r/1</a>) says otherwise`,
		},
		{
			name:     "already an anchor target",
			content:  `see <a href="https://example.com/notes">my notes</a>`,
			expected: `see <a href="https://example.com/notes">my notes</a>`,
		},
		{
			name:     "no url",
			content:  "nothing to see here",
			expected: "nothing to see here",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := FormatLinks(test.content); got != test.expected {
				t.Errorf("expected %q, got %q", test.expected, got)
			}
		})
	}
}

func TestFormatLinksIdempotent(t *testing.T) {
	content := "found it at https://example.com/books/42"
	once := FormatLinks(content)
	if twice := FormatLinks(once); twice != once {
		t.Errorf("second pass changed the content: %q", twice)
	}
}

func TestRenderIdempotent(t *testing.T) {
	r := New()
	raw := "I *loved* it, full review at https://example.com/r/7 (spoilers)"

	once := r.Render(raw)
	if twice := r.Render(once); twice != once {
		t.Errorf("second pass changed the output:\nfirst:  %q\nsecond: %q", once, twice)
	}
}

func TestRender(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		raw      string
		contains []string
		excludes []string
	}{
		{
			name:     "markdown emphasis",
			raw:      "I *loved* this book, **every** chapter",
			contains: []string{"<em>loved</em>", "<strong>every</strong>"},
		},
		{
			name:     "bare url becomes an anchor",
			raw:      "full review: https://example.com/r/7",
			contains: []string{`<a href="https://example.com/r/7"`},
		},
		{
			name:     "mention anchor survives",
			raw:      `talking to <a href="https://remote.example/u/ada">@ada@remote.example</a> about it`,
			contains: []string{`<a href="https://remote.example/u/ada"`, "@ada@remote.example"},
		},
		{
			name:     "script is stripped",
			raw:      `hello <script>alert("hi")</script> world`,
			contains: []string{"hello", "world"},
			excludes: []string{"<script", "alert"},
		},
		{
			name:     "event handlers are stripped",
			raw:      `<a href="https://example.com" onclick="steal()">link</a>`,
			contains: []string{`href="https://example.com"`},
			excludes: []string{"onclick", "steal"},
		},
		{
			name:     "javascript urls are dropped",
			raw:      `<a href="javascript:alert(1)">click</a>`,
			excludes: []string{"javascript:"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := r.Render(test.raw)
			for _, want := range test.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got %q", want, got)
				}
			}
			for _, bad := range test.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("expected output not to contain %q, got %q", bad, got)
				}
			}
		})
	}
}
