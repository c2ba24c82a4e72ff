package blockwright

import "fmt"

// Claim categories prefix claim identifiers to record where a section came
// from.
const (
	ClaimTemplate = "tpl"
	ClaimFAQ      = "faq"
	ClaimCTA      = "cta"
	ClaimMedia    = "media"
)

// ClaimSequence issues claim identifiers for one injection job. Identifiers
// share a single job-wide counter, so they are unique and increasing within
// the job regardless of category. The zero value is ready to use.
type ClaimSequence struct {
	next int
}

// Next returns the next claim identifier for category.
func (s *ClaimSequence) Next(category string) string {
	s.next++
	return fmt.Sprintf("%s-%04d", category, s.next)
}

// Issued returns the number of identifiers issued so far.
func (s *ClaimSequence) Issued() int {
	return s.next
}
