// Package goquery extracts FAQ and how-to patterns from rendered markup.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/blockwright"
)

var _ blockwright.PatternExtractor = (*Extractor)(nil)

// Acceptance thresholds, in runes of normalized text.
const (
	MinQuestionLength = 10
	MinAnswerLength   = 21
	MinStepLength     = 15
	MaxSteps          = 10
)

// Extractor finds question/answer pairs and ordered steps in HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFAQ collects candidates from headings phrased as questions and from
// FAQ containers, drops candidates that are too short, and keeps the first
// occurrence of each question.
func (e *Extractor) ExtractFAQ(html string) (*blockwright.FAQResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, blockwright.Errorf(blockwright.EINVALID, "failed to parse HTML: %v", err)
	}

	candidates := append(questionHeadings(doc), faqContainers(doc)...)

	seen := make(map[uint64]struct{})
	items := []blockwright.FAQItem{}
	for _, c := range candidates {
		if utf8.RuneCountInString(c.Question) < MinQuestionLength || utf8.RuneCountInString(c.Answer) < MinAnswerLength {
			continue
		}
		key := xxhash.Sum64String(strings.ToLower(c.Question))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, c)
	}

	return &blockwright.FAQResult{
		Items:      items,
		Confidence: blockwright.FAQConfidence(len(items)),
	}, nil
}

// ExtractSteps returns list items in document order as numbered steps,
// skipping short items.
func (e *Extractor) ExtractSteps(html string) ([]blockwright.Step, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, blockwright.Errorf(blockwright.EINVALID, "failed to parse HTML: %v", err)
	}

	steps := []blockwright.Step{}
	doc.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := normalize(li.Text())
		if utf8.RuneCountInString(text) < MinStepLength {
			return true
		}
		steps = append(steps, blockwright.Step{Position: len(steps) + 1, Text: text})
		return len(steps) < MaxSteps
	})
	return steps, nil
}

// questionHeadings finds headings ending in "?" that are directly followed
// by one or more paragraphs.
func questionHeadings(doc *goquery.Document) []blockwright.FAQItem {
	var items []blockwright.FAQItem
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		q := normalize(h.Text())
		if !strings.HasSuffix(q, "?") {
			return
		}
		var answer []string
		for p := h.Next(); p.Length() > 0 && goquery.NodeName(p) == "p"; p = p.Next() {
			if t := normalize(p.Text()); t != "" {
				answer = append(answer, t)
			}
		}
		if len(answer) == 0 {
			return
		}
		items = append(items, blockwright.FAQItem{Question: q, Answer: strings.Join(answer, " ")})
	})
	return items
}

// faqContainers scans elements whose class or id mentions "faq" for
// definition list pairs and disclosure widgets.
func faqContainers(doc *goquery.Document) []blockwright.FAQItem {
	var items []blockwright.FAQItem
	doc.Find("[class], [id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		return strings.Contains(strings.ToLower(class+" "+id), "faq")
	}).Each(func(_ int, container *goquery.Selection) {
		container.Find("dt").Each(func(_ int, dt *goquery.Selection) {
			dd := dt.Next()
			if goquery.NodeName(dd) != "dd" {
				return
			}
			items = append(items, blockwright.FAQItem{Question: normalize(dt.Text()), Answer: normalize(dd.Text())})
		})
		container.Find("details").Each(func(_ int, details *goquery.Selection) {
			summary := details.ChildrenFiltered("summary").First()
			if summary.Length() == 0 {
				return
			}
			body := details.Clone()
			body.ChildrenFiltered("summary").Remove()
			items = append(items, blockwright.FAQItem{Question: normalize(summary.Text()), Answer: normalize(body.Text())})
		})
	})
	return items
}

// normalize collapses whitespace runs and trims.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
