package email

import (
	"bytes"
	"fmt"
	stdhtml "html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownRenderer turns a visitor-written message into HTML that is safe to
// embed in an email. The source is entity-escaped before conversion so any
// markup the visitor typed shows as text, and the output is sanitized with the
// UGC policy.
type markdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newMarkdownRenderer() *markdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &markdownRenderer{
		md:     md,
		policy: policy,
	}
}

func (r *markdownRenderer) toHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(stdhtml.EscapeString(source)), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
