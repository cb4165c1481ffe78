package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	templates "github.com/civicmap/civicmap-api/templates/html"
)

func TestRenderGenericEmail(t *testing.T) {
	out := templates.RenderGenericEmail("Your report has been resolved", "Line one\nLine two")

	assert.Contains(t, out, "<h1>Your report has been resolved</h1>")
	assert.Contains(t, out, "Line one<br>Line two")
}

func TestRenderGenericEmailEscapesHTML(t *testing.T) {
	out := templates.RenderGenericEmail("<script>x</script>", "<b>bold</b>")

	assert.NotContains(t, out, "<script>x</script>")
	assert.NotContains(t, out, "<b>bold</b>")
	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
}
