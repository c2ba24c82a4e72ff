package inject_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/bluemonday"
	"github.com/fwojciec/blockwright/classic"
	"github.com/fwojciec/blockwright/divi"
	"github.com/fwojciec/blockwright/elementor"
	"github.com/fwojciec/blockwright/gutenberg"
	"github.com/fwojciec/blockwright/inject"
	"github.com/fwojciec/blockwright/mock"
	"github.com/fwojciec/blockwright/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var serviceData = blockwright.ContentData{
	Title:        "Emergency Plumbing in Austin",
	Intro:        "Licensed plumbers available around the clock.",
	Location:     "Austin",
	ServiceAreas: []string{"Round Rock", "Cedar Park"},
	Services:     []string{"Drain cleaning", "Water heater repair"},
	Steps:        []string{"Call our dispatcher", "Meet your technician"},
	FAQs:         []blockwright.FAQ{{Question: "Do you offer weekend service?", Answer: "Yes, every weekend."}},
	CTA:          &blockwright.CallToAction{Text: "Book a visit", URL: "https://example.com/book"},
}

// phrases lists every natural-language string in serviceData.
var phrases = []string{
	"Emergency Plumbing", "Licensed plumbers", "Round Rock", "Cedar Park", "Drain cleaning",
	"Water heater", "dispatcher", "technician", "weekend", "Book a visit", "Austin",
}

// recorder captures writes made through mock services.
type recorder struct {
	updates  []blockwright.DocumentUpdate
	warnings []*blockwright.Warning
}

func (r *recorder) documents() *mock.DocumentService {
	return &mock.DocumentService{
		SetDocumentFn: func(_ context.Context, _ string, upd blockwright.DocumentUpdate) error {
			r.updates = append(r.updates, upd)
			return nil
		},
	}
}

func (r *recorder) warningService() *mock.WarningService {
	return &mock.WarningService{
		CreateWarningFn: func(_ context.Context, w *blockwright.Warning) error {
			r.warnings = append(r.warnings, w)
			return nil
		},
	}
}

func detector(target blockwright.RenderTarget) *mock.RenderTargetDetector {
	return &mock.RenderTargetDetector{
		DetectFn: func(_ context.Context, _ string) (blockwright.RenderTarget, error) {
			return target, nil
		},
	}
}

func newInjector(r *recorder, target blockwright.RenderTarget) *inject.Injector {
	return inject.NewInjector(r.documents(), detector(target), r.warningService(),
		gutenberg.NewRenderer(), elementor.NewRenderer(), divi.NewRenderer(), classic.NewRenderer())
}

// caps returns a capability map in which every content type recommends a
// block at the given confidence.
func caps(confidence float64) *blockwright.CapabilityMap {
	m := theme.NewComponentMapper(nil).Discover()
	for p, c := range m.Capabilities {
		c.Confidence = confidence
		m.Capabilities[p] = c
	}
	return m
}

var (
	commentRe   = regexp.MustCompile(`(?s)<!--.*?-->`)
	shortcodeRe = regexp.MustCompile(`\[/?[a-z_]+[^\]]*\]`)
)

// visibleText returns the text a reader would see in composed output.
func visibleText(target blockwright.RenderTarget, upd blockwright.DocumentUpdate) string {
	if target == blockwright.RenderTargetWidgets {
		var parts []string
		var collect func(v gjson.Result)
		collect = func(v gjson.Result) {
			v.Get("settings").ForEach(func(k, s gjson.Result) bool {
				switch k.String() {
				case "_attributes", "css_classes":
					return true
				}
				parts = append(parts, s.String())
				return true
			})
			v.Get("elements").ForEach(func(_, child gjson.Result) bool {
				collect(child)
				return true
			})
		}
		gjson.ParseBytes(upd.SideChannel).ForEach(func(_, el gjson.Result) bool {
			collect(el)
			return true
		})
		return strings.TrimSpace(strings.Join(parts, " "))
	}
	body := commentRe.ReplaceAllString(*upd.Body, "")
	body = shortcodeRe.ReplaceAllString(body, "")
	return bluemonday.Text(body)
}

func TestInjector_Inject(t *testing.T) {
	t.Parallel()

	t.Run("builds local service sections with increasing claim ids", func(t *testing.T) {
		t.Parallel()

		r := &recorder{}
		res, err := newInjector(r, blockwright.RenderTargetBlocks).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID:   "1",
			Template:     blockwright.TemplateLocalService,
			Data:         serviceData,
			Capabilities: caps(0.99),
			Profile:      &blockwright.DesignProfile{Theme: blockwright.ThemeIdentity{Name: "astra", Version: "4.6.0"}},
		})
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.NotEmpty(t, res.JobID)
		assert.Equal(t, 6, res.BlockCount)
		assert.Equal(t, blockwright.RenderTargetBlocks, res.RenderTarget)
		assert.Equal(t, blockwright.JobPublished, res.State)
		assert.Equal(t, 0.99, res.Confidence)
		assert.Empty(t, res.Warnings)

		require.Len(t, r.updates, 1)
		body := *r.updates[0].Body
		for _, id := range []string{"tpl-0001", "tpl-0002", "tpl-0003", "faq-0004", "cta-0005", "tpl-0006"} {
			assert.Contains(t, body, `data-claim-id="`+id+`"`)
		}
		assert.Less(t, strings.Index(body, "tpl-0001"), strings.Index(body, "faq-0004"))
		assert.Contains(t, body, `data-theme="astra@4.6.0"`)
		assert.Contains(t, body, `data-governance-version="1.0"`)
		assert.Contains(t, body, "Emergency Plumbing in Austin")
		assert.Empty(t, r.warnings)
	})

	t.Run("skips sections with missing fields", func(t *testing.T) {
		t.Parallel()

		r := &recorder{}
		res, err := newInjector(r, blockwright.RenderTargetBlocks).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID: "1",
			Template:   blockwright.TemplateLocalService,
			Data: blockwright.ContentData{
				Title: "Plumbing",
				FAQs:  []blockwright.FAQ{{Question: "Open on Sunday?", Answer: "Yes."}, {Question: "No answer?"}},
			},
			Capabilities: caps(0.99),
		})
		require.NoError(t, err)

		assert.Equal(t, 2, res.BlockCount)
		assert.Len(t, res.Warnings, 4)
		assert.Contains(t, res.Warnings[0], "services")
		body := *r.updates[0].Body
		assert.Contains(t, body, `data-claim-id="tpl-0001"`)
		assert.Contains(t, body, `data-claim-id="faq-0002"`)
		assert.NotContains(t, body, "No answer?")
	})

	t.Run("publishes at exactly the threshold", func(t *testing.T) {
		t.Parallel()

		r := &recorder{}
		res, err := newInjector(r, blockwright.RenderTargetBlocks).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID:   "1",
			Template:     blockwright.TemplateGeneric,
			Data:         blockwright.ContentData{Title: "Hello"},
			Capabilities: caps(0.90),
		})
		require.NoError(t, err)

		assert.Equal(t, 0.90, res.Confidence)
		assert.Equal(t, blockwright.JobPublished, res.State)
		assert.Len(t, r.updates, 1)
		assert.Empty(t, r.warnings)
	})

	t.Run("drafts below the threshold with a warning", func(t *testing.T) {
		t.Parallel()

		r := &recorder{}
		res, err := newInjector(r, blockwright.RenderTargetBlocks).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID:   "1",
			Template:     blockwright.TemplateGeneric,
			Data:         blockwright.ContentData{Title: "Hello"},
			Capabilities: caps(0.89),
		})
		require.NoError(t, err)

		assert.Equal(t, blockwright.JobDrafted, res.State)
		require.Len(t, r.updates, 1)
		require.NotNil(t, r.updates[0].Status)
		assert.Equal(t, blockwright.StatusDraft, *r.updates[0].Status)
		require.NotNil(t, r.updates[0].Body)
		assert.Contains(t, *r.updates[0].Body, "Hello")

		require.Len(t, r.warnings, 1)
		w := r.warnings[0]
		assert.Equal(t, "1", w.DocumentID)
		assert.Equal(t, res.JobID, w.JobID)
		assert.Equal(t, 0.89, w.Confidence)
		assert.Contains(t, w.Message, "0.89")
		assert.Contains(t, res.Warnings, w.Message)
	})

	t.Run("uses the lowest primitive confidence per section", func(t *testing.T) {
		t.Parallel()

		r := &recorder{}
		res, err := newInjector(r, blockwright.RenderTargetBlocks).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID: "1",
			Template:   blockwright.TemplateLocalService,
			Data: blockwright.ContentData{
				Title: "Plumbing",
				FAQs:  []blockwright.FAQ{{Question: "Open on Sunday?", Answer: "Yes."}},
				CTA:   &blockwright.CallToAction{Text: "Call", URL: "tel:5550100"},
			},
			Capabilities: theme.NewComponentMapper(nil).Discover(),
		})
		require.NoError(t, err)

		// hero 0.99, faq with the disclosure fallback at 0.30, cta with core
		// buttons at 0.60.
		assert.Equal(t, 0.63, res.Confidence)
		assert.Equal(t, blockwright.JobDrafted, res.State)
		assert.Contains(t, *r.updates[0].Body, "<!-- wp:details -->")
	})

	t.Run("drafts without writing content when no section can be built", func(t *testing.T) {
		t.Parallel()

		r := &recorder{}
		res, err := newInjector(r, blockwright.RenderTargetBlocks).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID:   "1",
			Template:     blockwright.TemplateArticle,
			Capabilities: caps(0.99),
		})
		require.NoError(t, err)

		assert.Zero(t, res.BlockCount)
		assert.Zero(t, res.Confidence)
		assert.Equal(t, blockwright.JobDrafted, res.State)
		require.Len(t, r.updates, 1)
		assert.Nil(t, r.updates[0].Body)
		assert.Len(t, r.warnings, 1)
	})

	t.Run("falls back to plain markup for unknown targets", func(t *testing.T) {
		t.Parallel()

		r := &recorder{}
		res, err := newInjector(r, blockwright.RenderTargetUnknown).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID:   "1",
			Template:     "landing-page",
			Data:         blockwright.ContentData{Title: "Hello"},
			Capabilities: caps(0.99),
		})
		require.NoError(t, err)

		assert.Equal(t, blockwright.RenderTargetHTML, res.RenderTarget)
		assert.Contains(t, *r.updates[0].Body, `<section class="blockwright-claim" data-claim-id="tpl-0001"`)
		assert.Contains(t, *r.updates[0].Body, `data-template="landing-page"`)
	})

	t.Run("composes widget trees into the side channel", func(t *testing.T) {
		t.Parallel()

		r := &recorder{}
		_, err := newInjector(r, blockwright.RenderTargetWidgets).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID:   "1",
			Template:     blockwright.TemplateLocalService,
			Data:         serviceData,
			Capabilities: caps(0.99),
		})
		require.NoError(t, err)

		upd := r.updates[0]
		assert.Nil(t, upd.Body)
		require.True(t, gjson.ValidBytes(upd.SideChannel))
		assert.Equal(t, int64(6), gjson.GetBytes(upd.SideChannel, "#").Int())
	})

	t.Run("emits only receipts for frozen access on every target", func(t *testing.T) {
		t.Parallel()

		for _, target := range []blockwright.RenderTarget{
			blockwright.RenderTargetBlocks,
			blockwright.RenderTargetWidgets,
			blockwright.RenderTargetShortcode,
			blockwright.RenderTargetHTML,
		} {
			r := &recorder{}
			res, err := newInjector(r, target).Inject(context.Background(), blockwright.InjectRequest{
				DocumentID:   "1",
				Template:     blockwright.TemplateLocalService,
				Data:         serviceData,
				Capabilities: caps(0.99),
				Access:       blockwright.AccessFrozen,
			})
			require.NoError(t, err, target)
			require.Equal(t, 6, res.BlockCount, target)

			upd := r.updates[0]
			assert.Empty(t, visibleText(target, upd), target)
			raw := string(upd.SideChannel)
			if upd.Body != nil {
				raw = *upd.Body
			}
			for _, p := range phrases {
				assert.NotContains(t, raw, p, target)
			}
			assert.Contains(t, raw, "tpl-0001", target)
		}
	})

	t.Run("rejects invalid access states", func(t *testing.T) {
		t.Parallel()

		_, err := newInjector(&recorder{}, blockwright.RenderTargetBlocks).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID: "1",
			Access:     "HIDDEN",
		})

		assert.Equal(t, blockwright.EINVALID, blockwright.ErrorCode(err))
	})

	t.Run("leaves nothing live when the drafting write fails", func(t *testing.T) {
		t.Parallel()

		var written []blockwright.DocumentUpdate
		r := &recorder{}
		i := inject.NewInjector(&mock.DocumentService{
			SetDocumentFn: func(_ context.Context, _ string, upd blockwright.DocumentUpdate) error {
				if upd.Status != nil {
					return errors.New("disk full")
				}
				written = append(written, upd)
				return nil
			},
		}, detector(blockwright.RenderTargetBlocks), r.warningService(), gutenberg.NewRenderer())

		_, err := i.Inject(context.Background(), blockwright.InjectRequest{
			DocumentID:   "1",
			Template:     blockwright.TemplateGeneric,
			Data:         blockwright.ContentData{Title: "Hello"},
			Capabilities: caps(0.50),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Empty(t, written)
		assert.Empty(t, r.warnings)
	})

	t.Run("scores enhanced blocks by the core block that is rendered", func(t *testing.T) {
		t.Parallel()

		registered := map[string]bool{"yoast/faq-block": true, "kadence/advancedbtn": true}
		m := theme.NewComponentMapper(&mock.PrimitiveRegistry{
			IsPrimitiveRegisteredFn: func(name string) bool { return registered[name] },
		}).Discover()

		r := &recorder{}
		res, err := newInjector(r, blockwright.RenderTargetBlocks).Inject(context.Background(), blockwright.InjectRequest{
			DocumentID: "1",
			Template:   blockwright.TemplateLocalService,
			Data: blockwright.ContentData{
				Title: "Plumbing",
				FAQs:  []blockwright.FAQ{{Question: "Do you offer weekend service?", Answer: "Yes."}},
				CTA:   &blockwright.CallToAction{Text: "Call", URL: "tel:5550100"},
			},
			Capabilities: m,
		})
		require.NoError(t, err)

		body := *r.updates[0].Body
		assert.Contains(t, body, "<!-- wp:details -->")
		assert.Contains(t, body, "<!-- wp:buttons -->")
		assert.NotContains(t, body, "yoast")
		assert.NotContains(t, body, "kadence")
		// hero 0.99, faq details at 0.30, cta buttons at 0.60.
		assert.Equal(t, 0.63, res.Confidence)
		assert.Equal(t, blockwright.JobDrafted, res.State)
	})

	t.Run("returns write failures", func(t *testing.T) {
		t.Parallel()

		i := inject.NewInjector(&mock.DocumentService{
			SetDocumentFn: func(_ context.Context, _ string, _ blockwright.DocumentUpdate) error {
				return errors.New("disk I/O error")
			},
		}, detector(blockwright.RenderTargetBlocks), &mock.WarningService{}, gutenberg.NewRenderer())

		_, err := i.Inject(context.Background(), blockwright.InjectRequest{
			DocumentID:   "1",
			Template:     blockwright.TemplateGeneric,
			Data:         blockwright.ContentData{Title: "Hello"},
			Capabilities: caps(0.99),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk I/O error")
	})
}
