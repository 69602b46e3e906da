package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts job-description markdown into sanitized HTML. Descriptions
// are author-supplied, so everything goldmark emits goes through bluemonday
// before it reaches a client.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)
	return &Renderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}
