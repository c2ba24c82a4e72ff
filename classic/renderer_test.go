package classic_test

import (
	"testing"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
	"github.com/fwojciec/blockwright/classic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders elements", func(t *testing.T) {
		t.Parallel()

		out, err := classic.NewRenderer().Render([]*blockwright.ContentNode{
			blockwright.NewHeading(3, "Tom & Jerry"),
			blockwright.NewList(false, "One", "Two"),
			blockwright.NewFAQItem("Is it <safe>?", "Yes."),
			blockwright.NewQuote("Great work.", "Ann"),
			blockwright.NewButton("Go", "https://example.com/?a=1&b=2"),
		})
		require.NoError(t, err)
		assert.Equal(t, "<h3>Tom &amp; Jerry</h3>\n"+
			"<ul><li>One</li><li>Two</li></ul>\n"+
			"<details><summary>Is it &lt;safe&gt;?</summary><p>Yes.</p></details>\n"+
			"<blockquote><p>Great work.</p><cite>Ann</cite></blockquote>\n"+
			"<p><a class=\"button\" href=\"https://example.com/?a=1&amp;b=2\">Go</a></p>", out)
	})

	t.Run("renders gallery images", func(t *testing.T) {
		t.Parallel()

		out, err := classic.NewRenderer().Render([]*blockwright.ContentNode{
			blockwright.NewGallery(blockwright.Image{URL: "a.jpg", Alt: "A"}),
		})
		require.NoError(t, err)
		assert.Equal(t, `<div class="gallery"><figure><img src="a.jpg" alt="A"/></figure></div>`, out)
	})

	t.Run("rejects raw nodes", func(t *testing.T) {
		t.Parallel()

		_, err := classic.NewRenderer().Render([]*blockwright.ContentNode{{Type: blockwright.NodeRaw}})
		assert.Equal(t, blockwright.EINVALID, blockwright.ErrorCode(err))
	})
}

func TestRenderer_WrapAndReceipt(t *testing.T) {
	t.Parallel()

	r := classic.NewRenderer()
	tag := blockwright.ClaimTag{
		ClaimID:           "tpl-0001",
		GovernanceVersion: "1.0",
		Template:          blockwright.TemplateArticle,
		Theme:             "unknown",
	}

	wrapped := r.Wrap("<p>x</p>", tag)
	assert.Equal(t, "<section class=\"blockwright-claim\" data-claim-id=\"tpl-0001\" data-governance-version=\"1.0\" data-template=\"article\" data-theme=\"unknown\">\n<p>x</p>\n</section>", wrapped)

	receipt := r.Receipt(tag)
	assert.Contains(t, receipt, `data-claim-state="frozen"`)
	assert.Empty(t, bluemonday.Text(receipt))

	upd := r.Compose([]string{wrapped, receipt})
	require.NotNil(t, upd.Body)
	assert.Equal(t, wrapped+"\n"+receipt, *upd.Body)
}
