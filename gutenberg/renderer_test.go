package gutenberg_test

import (
	"testing"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
	"github.com/fwojciec/blockwright/gutenberg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders primitives as parseable blocks", func(t *testing.T) {
		t.Parallel()

		r := gutenberg.NewRenderer()
		out, err := r.Render([]*blockwright.ContentNode{
			blockwright.NewHeading(3, "Plumbing in Austin"),
			blockwright.NewParagraph("Fast & friendly."),
			blockwright.NewList(true, "Call", "Visit"),
			blockwright.NewFAQItem("Do you offer weekend service?", "Yes, every weekend."),
			blockwright.NewButton("Book now", "https://example.com/book"),
			blockwright.NewGallery(blockwright.Image{URL: "https://example.com/a.jpg", Alt: "Before"}),
			blockwright.NewQuote("Great job.", "Sam"),
		})
		require.NoError(t, err)

		root, err := gutenberg.Parse(out)
		require.NoError(t, err)
		require.Len(t, root.Children, 7)
		assert.Equal(t, "Plumbing in Austin", root.Children[0].Text)
		assert.Equal(t, 3, root.Children[0].Level)
		assert.Equal(t, "Fast & friendly.", root.Children[1].Text)
		assert.True(t, root.Children[2].Ordered)
		assert.Len(t, root.Children[2].Children, 2)
		assert.Equal(t, blockwright.NodeFAQItem, root.Children[3].Type)
		assert.Equal(t, "Do you offer weekend service?", root.Children[3].Text)
		assert.Contains(t, out, `href="https://example.com/book"`)
		assert.Contains(t, out, `alt="Before"`)
		assert.Contains(t, out, "<cite>Sam</cite>")
	})

	t.Run("escapes text", func(t *testing.T) {
		t.Parallel()

		r := gutenberg.NewRenderer()
		out, err := r.Render([]*blockwright.ContentNode{blockwright.NewParagraph(`<script>alert("x")</script>`)})
		require.NoError(t, err)

		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("renders faq items as core details blocks", func(t *testing.T) {
		t.Parallel()

		item := blockwright.NewFAQItem("Do you offer weekend service?", "Yes.")
		item.Name = "kadence/accordion"

		out, err := gutenberg.NewRenderer().Render([]*blockwright.ContentNode{item})
		require.NoError(t, err)

		assert.Contains(t, out, "<!-- wp:details -->")
		assert.Contains(t, out, "<summary>Do you offer weekend service?</summary>")
		assert.NotContains(t, out, "kadence")
	})

	t.Run("rejects raw nodes", func(t *testing.T) {
		t.Parallel()

		_, err := gutenberg.NewRenderer().Render([]*blockwright.ContentNode{{Type: blockwright.NodeRaw}})

		assert.Equal(t, blockwright.EINVALID, blockwright.ErrorCode(err))
	})
}

func TestRenderer_Wrap(t *testing.T) {
	t.Parallel()

	r := gutenberg.NewRenderer()
	inner, err := r.Render([]*blockwright.ContentNode{blockwright.NewParagraph("Hello")})
	require.NoError(t, err)

	out := r.Wrap(inner, blockwright.ClaimTag{ClaimID: "tpl-0001", GovernanceVersion: "1.0", Template: blockwright.TemplateArticle, Theme: "astra@4.1"})

	assert.Contains(t, out, `data-claim-id="tpl-0001"`)
	assert.Contains(t, out, `data-governance-version="1.0"`)
	assert.Contains(t, out, `data-template="article"`)
	assert.Contains(t, out, `data-theme="astra@4.1"`)
	assert.Equal(t, "Hello", bluemonday.Text(out))

	root, err := gutenberg.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, blockwright.NodeGroup, root.Children[0].Type)
}

func TestRenderer_Receipt(t *testing.T) {
	t.Parallel()

	out := gutenberg.NewRenderer().Receipt(blockwright.ClaimTag{ClaimID: "tpl-0001", Template: blockwright.TemplateArticle})

	assert.Contains(t, out, `data-claim-id="tpl-0001"`)
	assert.Contains(t, out, `data-claim-state="frozen"`)
	assert.Empty(t, bluemonday.Text(out))
}

func TestRenderer_Compose(t *testing.T) {
	t.Parallel()

	upd := gutenberg.NewRenderer().Compose([]string{"a", "b"})

	require.NotNil(t, upd.Body)
	assert.Equal(t, "a\n\nb", *upd.Body)
	assert.Nil(t, upd.SideChannel)
}
