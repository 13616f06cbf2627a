// Package render turns the text a user typed into markup that is safe to
// store and to federate. Rendering is a one way trip: link detection, then
// markdown conversion, then an allow-list sanitizer pass.
package render

import (
	"bytes"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// linkPattern finds bare http(s) URLs. The leading group keeps a URL that is
// already the target or the text of an anchor from matching again: those are
// preceded by a quote or a closing bracket, never by start-of-text,
// whitespace or an opening parenthesis.
var linkPattern = regexp.MustCompile(`(^|[\s(])(https?://[\w\-]+(?:\.[\w\-]+)+(?::\d+)?[\w.\-_~/+&?=:;,#%]*)`)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	// The markdown renderer passes raw HTML through untouched; the anchors
	// produced by link detection and mention rewriting must survive
	// conversion. The sanitizer below is the safety boundary.
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements("p", "br", "b", "i", "em", "strong", "span", "ul", "ol", "li", "blockquote", "code", "pre")
	p.AllowAttrs("href").OnElements("a")

	return &Renderer{
		md:     md,
		policy: p,
	}
}

// Render converts raw text into sanitized HTML. Each call is self contained;
// the primary content and a quoted excerpt go through separate calls.
func (r *Renderer) Render(raw string) string {
	content := FormatLinks(raw)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		// Should not happen; degrade to the unconverted text rather than
		// dropping the user's post.
		log.Error().Err(err).Msg("markdown conversion failed")
		return r.policy.Sanitize(content)
	}

	return r.policy.Sanitize(buf.String())
}

// FormatLinks wraps every bare URL in an anchor, exactly once. URLs already
// serving as an anchor's target are left alone.
func FormatLinks(content string) string {
	return linkPattern.ReplaceAllString(content, `${1}<a href="${2}">${2}</a>`)
}
