package inject

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blockwright"
)

// part describes one section a template can emit.
type part struct {
	name     string
	category string

	// uses lists the content types the section renders; the section's
	// confidence is the lowest constructible confidence among them.
	uses []string

	// build returns the section nodes, or an EINVALID error when the data
	// lacks the section's required fields.
	build func(d *blockwright.ContentData, caps *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error)
}

var templates = map[blockwright.TemplateID][]part{
	blockwright.TemplateLocalService: {
		{name: "hero", category: blockwright.ClaimTemplate, uses: []string{"heading", "paragraph"}, build: hero},
		{name: "services", category: blockwright.ClaimTemplate, uses: []string{"heading", "list"}, build: services},
		{name: "process", category: blockwright.ClaimTemplate, uses: []string{"heading", "steps"}, build: process},
		{name: "faq", category: blockwright.ClaimFAQ, uses: []string{"heading", "faq"}, build: faq},
		{name: "cta", category: blockwright.ClaimCTA, uses: []string{"button"}, build: cta},
		{name: "area", category: blockwright.ClaimTemplate, uses: []string{"heading", "list"}, build: area},
	},
	blockwright.TemplateArticle: {
		{name: "title", category: blockwright.ClaimTemplate, uses: []string{"heading"}, build: title},
		{name: "intro", category: blockwright.ClaimTemplate, uses: []string{"paragraph"}, build: intro},
		{name: "sections", category: blockwright.ClaimTemplate, uses: []string{"heading", "paragraph"}},
		{name: "faq", category: blockwright.ClaimFAQ, uses: []string{"heading", "faq"}, build: faq},
		{name: "summary", category: blockwright.ClaimTemplate, uses: []string{"heading", "paragraph"}, build: summary},
	},
	blockwright.TemplateProjectShowcase: {
		{name: "title", category: blockwright.ClaimTemplate, uses: []string{"heading"}, build: title},
		{name: "intro", category: blockwright.ClaimTemplate, uses: []string{"paragraph"}, build: intro},
		{name: "gallery", category: blockwright.ClaimMedia, uses: []string{"gallery"}, build: gallery},
		{name: "highlights", category: blockwright.ClaimTemplate, uses: []string{"heading", "list"}, build: highlights},
		{name: "testimonial", category: blockwright.ClaimTemplate, uses: []string{"testimonial"}, build: testimonial},
		{name: "cta", category: blockwright.ClaimCTA, uses: []string{"button"}, build: cta},
	},
	blockwright.TemplateGeneric: {
		{name: "title", category: blockwright.ClaimTemplate, uses: []string{"heading"}, build: title},
		{name: "sections", category: blockwright.ClaimTemplate, uses: []string{"heading", "paragraph"}},
		{name: "cta", category: blockwright.ClaimCTA, uses: []string{"button"}, build: cta},
	},
}

// build assembles the sections of a template in order, issuing claim ids from
// seq. Sections with missing data are skipped and reported as warnings.
func build(id blockwright.TemplateID, d *blockwright.ContentData, caps *blockwright.CapabilityMap, seq *blockwright.ClaimSequence) ([]blockwright.Section, []string) {
	parts, ok := templates[id]
	if !ok {
		parts = templates[blockwright.TemplateGeneric]
	}

	var sections []blockwright.Section
	var warnings []string
	for _, p := range parts {
		// Body sections expand to one claimed section per entry.
		if p.build == nil {
			s, w := bodySections(p, d, caps, seq)
			sections = append(sections, s...)
			warnings = append(warnings, w...)
			continue
		}
		nodes, err := p.build(d, caps)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("section %s skipped: %s", p.name, blockwright.ErrorMessage(err)))
			continue
		}
		sections = append(sections, blockwright.Section{
			ClaimID:    seq.Next(p.category),
			Name:       p.name,
			Nodes:      nodes,
			Confidence: confidence(caps, p.uses),
		})
	}
	return sections, warnings
}

func bodySections(p part, d *blockwright.ContentData, caps *blockwright.CapabilityMap, seq *blockwright.ClaimSequence) ([]blockwright.Section, []string) {
	var sections []blockwright.Section
	var warnings []string
	for i, s := range d.Sections {
		heading, body := strings.TrimSpace(s.Heading), strings.TrimSpace(s.Body)
		if heading == "" || body == "" {
			warnings = append(warnings, fmt.Sprintf("section %s[%d] skipped: heading and body required", p.name, i))
			continue
		}
		sections = append(sections, blockwright.Section{
			ClaimID:    seq.Next(p.category),
			Name:       fmt.Sprintf("%s[%d]", p.name, i),
			Nodes:      []*blockwright.ContentNode{blockwright.NewHeading(2, heading), blockwright.NewParagraph(body)},
			Confidence: confidence(caps, p.uses),
		})
	}
	if len(d.Sections) == 0 {
		warnings = append(warnings, fmt.Sprintf("section %s skipped: no body sections", p.name))
	}
	return sections, warnings
}

// confidence returns the lowest confidence among the blocks actually emitted
// for uses. Enhanced alternates are never rendered and do not count.
func confidence(caps *blockwright.CapabilityMap, uses []string) float64 {
	c := 1.0
	for _, u := range uses {
		c = min(c, caps.Constructible(u).Confidence)
	}
	return c
}

func missing(what string) error {
	return blockwright.Errorf(blockwright.EINVALID, "%s required", what)
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func hero(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, missing("title")
	}
	nodes := []*blockwright.ContentNode{blockwright.NewHeading(1, d.Title)}
	if strings.TrimSpace(d.Intro) != "" {
		nodes = append(nodes, blockwright.NewParagraph(d.Intro))
	}
	return nodes, nil
}

func title(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, missing("title")
	}
	return []*blockwright.ContentNode{blockwright.NewHeading(1, d.Title)}, nil
}

func intro(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	if strings.TrimSpace(d.Intro) == "" {
		return nil, missing("intro")
	}
	return []*blockwright.ContentNode{blockwright.NewParagraph(d.Intro)}, nil
}

func services(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	items := nonEmpty(d.Services)
	if len(items) == 0 {
		return nil, missing("services")
	}
	heading := "Our services"
	if loc := strings.TrimSpace(d.Location); loc != "" {
		heading = "Our services in " + loc
	}
	return []*blockwright.ContentNode{blockwright.NewHeading(2, heading), blockwright.NewList(false, items...)}, nil
}

func process(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	items := nonEmpty(d.Steps)
	if len(items) == 0 {
		return nil, missing("steps")
	}
	return []*blockwright.ContentNode{blockwright.NewHeading(2, "How it works"), blockwright.NewList(true, items...)}, nil
}

func faq(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	nodes := []*blockwright.ContentNode{blockwright.NewHeading(2, "Frequently asked questions")}
	for _, f := range d.FAQs {
		q, a := strings.TrimSpace(f.Question), strings.TrimSpace(f.Answer)
		if q == "" || a == "" {
			continue
		}
		nodes = append(nodes, blockwright.NewFAQItem(q, a))
	}
	if len(nodes) == 1 {
		return nil, missing("question with answer")
	}
	return nodes, nil
}

func cta(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	if d.CTA == nil || strings.TrimSpace(d.CTA.Text) == "" || strings.TrimSpace(d.CTA.URL) == "" {
		return nil, missing("call to action text and URL")
	}
	return []*blockwright.ContentNode{blockwright.NewButton(d.CTA.Text, d.CTA.URL)}, nil
}

func area(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	loc := strings.TrimSpace(d.Location)
	areas := nonEmpty(d.ServiceAreas)
	if loc == "" && len(areas) == 0 {
		return nil, missing("location or service areas")
	}
	nodes := []*blockwright.ContentNode{blockwright.NewHeading(2, "Areas we serve")}
	if loc != "" {
		nodes = append(nodes, blockwright.NewParagraph("Based in "+loc+"."))
	}
	if len(areas) > 0 {
		nodes = append(nodes, blockwright.NewList(false, areas...))
	}
	return nodes, nil
}

func summary(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	if strings.TrimSpace(d.Summary) == "" {
		return nil, missing("summary")
	}
	return []*blockwright.ContentNode{blockwright.NewHeading(2, "Summary"), blockwright.NewParagraph(d.Summary)}, nil
}

func gallery(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	var images []blockwright.Image
	for _, img := range d.Images {
		if strings.TrimSpace(img.URL) != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		return nil, missing("images")
	}
	return []*blockwright.ContentNode{blockwright.NewGallery(images...)}, nil
}

func highlights(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	items := nonEmpty(d.Highlights)
	if len(items) == 0 {
		return nil, missing("highlights")
	}
	return []*blockwright.ContentNode{blockwright.NewHeading(2, "Highlights"), blockwright.NewList(false, items...)}, nil
}

func testimonial(d *blockwright.ContentData, _ *blockwright.CapabilityMap) ([]*blockwright.ContentNode, error) {
	if d.Testimonial == nil || strings.TrimSpace(d.Testimonial.Quote) == "" {
		return nil, missing("testimonial quote")
	}
	return []*blockwright.ContentNode{blockwright.NewQuote(d.Testimonial.Quote, d.Testimonial.Author)}, nil
}
