package etree_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/blockwright"
	bwetree "github.com/fwojciec/blockwright/etree"
	"github.com/fwojciec/blockwright/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:wp="http://wordpress.org/export/1.2/">
<channel>
	<title>Example Site</title>
	<item>
		<title>Home</title>
		<content:encoded><![CDATA[<!-- wp:heading -->
<h2 class="wp-block-heading">Welcome</h2>
<!-- /wp:heading -->]]></content:encoded>
		<wp:post_id>10</wp:post_id>
		<wp:status>publish</wp:status>
		<wp:post_type>page</wp:post_type>
	</item>
	<item>
		<title>Landing</title>
		<content:encoded><![CDATA[]]></content:encoded>
		<wp:post_id>11</wp:post_id>
		<wp:status>draft</wp:status>
		<wp:post_type>page</wp:post_type>
		<wp:postmeta>
			<wp:meta_key><![CDATA[_elementor_data]]></wp:meta_key>
			<wp:meta_value><![CDATA[[{"id":"a1","elType":"container","elements":[]}]]]></wp:meta_value>
		</wp:postmeta>
	</item>
	<item>
		<title>Services</title>
		<content:encoded><![CDATA[<p>Intro</p>]]></content:encoded>
		<wp:post_id>12</wp:post_id>
		<wp:status>private</wp:status>
		<wp:post_type>post</wp:post_type>
		<wp:postmeta>
			<wp:meta_key>_et_pb_use_builder</wp:meta_key>
			<wp:meta_value>on</wp:meta_value>
		</wp:postmeta>
	</item>
	<item>
		<title>About</title>
		<content:encoded><![CDATA[<p>Plain</p>]]></content:encoded>
		<wp:post_id>13</wp:post_id>
		<wp:status>publish</wp:status>
		<wp:post_type>page</wp:post_type>
	</item>
	<item>
		<title>logo.png</title>
		<wp:post_id>14</wp:post_id>
		<wp:post_type>attachment</wp:post_type>
	</item>
</channel>
</rss>`

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("reads pages and posts and infers targets", func(t *testing.T) {
		t.Parallel()

		docs, err := bwetree.Read(strings.NewReader(export))
		require.NoError(t, err)
		require.Len(t, docs, 4)

		assert.Equal(t, "10", docs[0].ID)
		assert.Equal(t, "Home", docs[0].Title)
		assert.Equal(t, blockwright.RenderTargetBlocks, docs[0].Target)
		assert.Equal(t, blockwright.StatusPublish, docs[0].Status)
		assert.Contains(t, docs[0].Body, `<h2 class="wp-block-heading">Welcome</h2>`)

		assert.Equal(t, blockwright.RenderTargetWidgets, docs[1].Target)
		assert.JSONEq(t, `[{"id":"a1","elType":"container","elements":[]}]`, string(docs[1].SideChannel))
		assert.Equal(t, blockwright.StatusDraft, docs[1].Status)

		assert.Equal(t, blockwright.RenderTargetShortcode, docs[2].Target)
		assert.Equal(t, blockwright.StatusDraft, docs[2].Status, "non-public statuses import as draft")

		assert.Equal(t, blockwright.RenderTargetHTML, docs[3].Target)
		assert.Nil(t, docs[3].SideChannel)
	})

	t.Run("rejects malformed XML", func(t *testing.T) {
		t.Parallel()

		_, err := bwetree.Read(strings.NewReader("<rss><<channel></rss>"))
		require.Error(t, err)
		assert.Equal(t, blockwright.EINVALID, blockwright.ErrorCode(err))
	})

	t.Run("rejects documents without a channel", func(t *testing.T) {
		t.Parallel()

		_, err := bwetree.Read(strings.NewReader("<feed></feed>"))
		require.Error(t, err)
		assert.Equal(t, blockwright.EINVALID, blockwright.ErrorCode(err))
	})

	t.Run("rejects items without a post id", func(t *testing.T) {
		t.Parallel()

		xml := `<rss xmlns:wp="http://wordpress.org/export/1.2/"><channel><item><title>Orphan</title></item></channel></rss>`
		_, err := bwetree.Read(strings.NewReader(xml))
		require.Error(t, err)
		assert.Contains(t, blockwright.ErrorMessage(err), "Orphan")
	})
}

func TestInferTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		meta map[string]string
		want blockwright.RenderTarget
	}{
		{"elementor data wins", "<!-- wp:paragraph -->", map[string]string{"_elementor_data": "[]"}, blockwright.RenderTargetWidgets},
		{"blank elementor data ignored", "<p>x</p>", map[string]string{"_elementor_data": "  "}, blockwright.RenderTargetHTML},
		{"divi shortcodes", `[et_pb_section][/et_pb_section]`, nil, blockwright.RenderTargetShortcode},
		{"divi flag", "", map[string]string{"_et_pb_use_builder": "on"}, blockwright.RenderTargetShortcode},
		{"divi flag off", "<p>x</p>", map[string]string{"_et_pb_use_builder": "off"}, blockwright.RenderTargetHTML},
		{"block comments", "<!-- wp:paragraph --><p>x</p><!-- /wp:paragraph -->", nil, blockwright.RenderTargetBlocks},
		{"plain html", "<p>x</p>", nil, blockwright.RenderTargetHTML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bwetree.InferTarget(tt.body, tt.meta))
		})
	}
}

func TestImporter_Import(t *testing.T) {
	t.Parallel()

	t.Run("creates documents and reports existing ones", func(t *testing.T) {
		t.Parallel()

		var created []*blockwright.Document
		docs := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *blockwright.Document) error {
				if doc.ID == "13" {
					return blockwright.Errorf(blockwright.ECONFLICT, "document %q already exists", doc.ID)
				}
				created = append(created, doc)
				return nil
			},
		}

		res, err := bwetree.NewImporter(docs).Import(context.Background(), strings.NewReader(export))
		require.NoError(t, err)

		assert.Equal(t, []string{"10", "11", "12"}, res.Imported)
		assert.Equal(t, []string{"13"}, res.Existing)
		require.Len(t, created, 3)
	})

	t.Run("overrides the inferred target", func(t *testing.T) {
		t.Parallel()

		var targets []blockwright.RenderTarget
		docs := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *blockwright.Document) error {
				targets = append(targets, doc.Target)
				return nil
			},
		}

		im := bwetree.NewImporter(docs)
		im.Target = blockwright.RenderTargetHTML
		_, err := im.Import(context.Background(), strings.NewReader(export))
		require.NoError(t, err)

		for _, target := range targets {
			assert.Equal(t, blockwright.RenderTargetHTML, target)
		}
	})

	t.Run("stops on store errors", func(t *testing.T) {
		t.Parallel()

		docs := &mock.DocumentService{
			CreateDocumentFn: func(context.Context, *blockwright.Document) error {
				return errors.New("disk full")
			},
		}

		res, err := bwetree.NewImporter(docs).Import(context.Background(), strings.NewReader(export))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "import document 10")
		assert.Empty(t, res.Imported)
	})
}
