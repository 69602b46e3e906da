package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := New()

	html, err := r.Render("**Senior** Go engineer\n\n- remote\n- full time")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Senior</strong>")
	assert.Contains(t, html, "<li>remote</li>")
}

func TestRenderStripsScripts(t *testing.T) {
	r := New()

	html, err := r.Render(`hello <script>alert("xss")</script> world`)
	require.NoError(t, err)
	// the policy removes the element but keeps its text content
	assert.NotContains(t, html, "<script")
	assert.Contains(t, html, "hello")
	assert.Contains(t, html, "world")
}

func TestRenderStripsEventHandlers(t *testing.T) {
	r := New()

	html, err := r.Render(`<img src="x" onerror="alert(1)">`)
	require.NoError(t, err)
	assert.NotContains(t, html, "onerror")
}
