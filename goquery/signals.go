package goquery

import "regexp"

var (
	serviceSignalRe = regexp.MustCompile(`(?i)\b(our services|services we offer|free (quote|estimate)|call (us|now|today)|licensed|insured|service areas?|serving [A-Z]|book (now|online|an? (visit|appointment)))`)
	howToSignalRe   = regexp.MustCompile(`(?i)(<ol[\s>]|\bstep\s*\d|\bhow to\b|\binstructions\b|\bfollow these\b)`)
)

// HasServiceSignals reports whether html looks like a local service page.
// It is cheap enough to run before full extraction.
func HasServiceSignals(html string) bool {
	return serviceSignalRe.MatchString(html)
}

// HasHowToSignals reports whether html looks like it contains ordered
// instructions.
func HasHowToSignals(html string) bool {
	return howToSignalRe.MatchString(html)
}
