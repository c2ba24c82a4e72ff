package blockwright

import "context"

// FAQItem is a question/answer pair extracted from rendered markup.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQResult is the outcome of FAQ extraction. Confidence is a percentage.
type FAQResult struct {
	Items      []FAQItem `json:"items"`
	Confidence int       `json:"confidence"`
}

// Step is a numbered how-to step extracted from rendered markup.
type Step struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// FAQConfidence returns the extraction confidence for n accepted FAQ items:
// 70 plus 5 per item, capped at 95. No items yields zero.
func FAQConfidence(n int) int {
	if n <= 0 {
		return 0
	}
	return min(95, 70+5*n)
}

// PatternExtractor extracts structured candidates from rendered markup.
type PatternExtractor interface {
	ExtractFAQ(html string) (*FAQResult, error)
	ExtractSteps(html string) ([]Step, error)
}

// PageFetcher retrieves the rendered markup of a published page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
