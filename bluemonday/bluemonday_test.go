package bluemonday_test

import (
	"testing"

	"github.com/fwojciec/blockwright/bluemonday"
	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	t.Parallel()

	t.Run("removes inline markup", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Old Title", bluemonday.Text("<em>Old</em> Title"))
	})

	t.Run("decodes entities", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Fish & Chips", bluemonday.Text("Fish &amp; Chips"))
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a b c", bluemonday.Text("\n  a\t b \n\n c  "))
	})

	t.Run("drops comments and empty elements", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, bluemonday.Text(`<!-- wp:html --><div hidden data-claim-id="tpl-0001"></div><!-- /wp:html -->`))
	})

	t.Run("returns empty for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, bluemonday.Text(""))
	})
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("removes scripts", func(t *testing.T) {
		t.Parallel()

		out := bluemonday.Sanitize(`<p>Hello</p><script>alert(1)</script>`)

		assert.Contains(t, out, "<p>Hello</p>")
		assert.NotContains(t, out, "script")
	})

	t.Run("removes event handlers", func(t *testing.T) {
		t.Parallel()

		out := bluemonday.Sanitize(`<a href="https://example.com" onclick="steal()">x</a>`)

		assert.Contains(t, out, `href="https://example.com"`)
		assert.NotContains(t, out, "onclick")
	})
}
