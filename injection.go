package blockwright

import (
	"context"
	"math"
)

// DefaultPublishThreshold is the minimum job confidence for injected content
// to stay published.
const DefaultPublishThreshold = 0.90

// AccessState controls whether injected sections are visible.
type AccessState string

// Access states.
const (
	AccessEnabled AccessState = "ENABLED"
	AccessFrozen  AccessState = "FROZEN"
)

// TemplateID names a section template.
type TemplateID string

// Templates.
const (
	TemplateLocalService    TemplateID = "local-service"
	TemplateArticle         TemplateID = "article"
	TemplateProjectShowcase TemplateID = "project-showcase"
	TemplateGeneric         TemplateID = "generic"
)

// JobState is the state of an injection job.
type JobState string

// Job states. A job moves BUILDING → WRITTEN → PUBLISHED or DRAFTED.
const (
	JobBuilding  JobState = "BUILDING"
	JobWritten   JobState = "WRITTEN"
	JobPublished JobState = "PUBLISHED"
	JobDrafted   JobState = "DRAFTED"
)

// Transition returns the terminal state for a written job: PUBLISHED when
// confidence reaches threshold, DRAFTED otherwise.
func Transition(confidence, threshold float64) JobState {
	if confidence >= threshold {
		return JobPublished
	}
	return JobDrafted
}

// FAQ is a question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TextSection is a heading followed by body text.
type TextSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// CallToAction is a button label and target.
type CallToAction struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ContentData is the structured content a template is filled with.
type ContentData struct {
	Title        string        `json:"title"`
	Intro        string        `json:"intro"`
	Location     string        `json:"location"`
	ServiceAreas []string      `json:"serviceAreas"`
	Services     []string      `json:"services"`
	Steps        []string      `json:"steps"`
	FAQs         []FAQ         `json:"faqs"`
	Sections     []TextSection `json:"sections"`
	Images       []Image       `json:"images"`
	Highlights   []string      `json:"highlights"`
	Testimonial  *Testimonial  `json:"testimonial"`
	CTA          *CallToAction `json:"cta"`
	Summary      string        `json:"summary"`
}

// Section is one claimed unit of injected content.
type Section struct {
	ClaimID    string         `json:"claimId"`
	Name       string         `json:"name"`
	Nodes      []*ContentNode `json:"nodes"`
	Confidence float64        `json:"confidence"`
}

// Job is an injection job. State only moves forward.
type Job struct {
	ID         string      `json:"id"`
	DocumentID string      `json:"documentId"`
	Template   TemplateID  `json:"template"`
	Access     AccessState `json:"access"`
	Sections   []Section   `json:"sections"`
	State      JobState    `json:"state"`
	Confidence float64     `json:"confidence"`
}

// NewJob returns a job in the BUILDING state.
func NewJob(id, documentID string, template TemplateID, access AccessState) *Job {
	return &Job{
		ID:         id,
		DocumentID: documentID,
		Template:   template,
		Access:     access,
		State:      JobBuilding,
	}
}

// MarkWritten records that the job's output was persisted and computes the
// job confidence.
func (j *Job) MarkWritten() error {
	if j.State != JobBuilding {
		return Errorf(EINVALID, "cannot mark job written from state %s", j.State)
	}
	j.Confidence = MeanConfidence(j.Sections)
	j.State = JobWritten
	return nil
}

// Settle moves a written job to PUBLISHED or DRAFTED.
func (j *Job) Settle(threshold float64) (JobState, error) {
	if j.State != JobWritten {
		return j.State, Errorf(EINVALID, "cannot settle job from state %s", j.State)
	}
	j.State = Transition(j.Confidence, threshold)
	return j.State, nil
}

// MeanConfidence returns the arithmetic mean of section confidences rounded
// to two decimals. No sections yields zero.
func MeanConfidence(sections []Section) float64 {
	if len(sections) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sections {
		sum += s.Confidence
	}
	return RoundConfidence(sum / float64(len(sections)))
}

// RoundConfidence clamps c to [0,1] and rounds it to two decimals.
func RoundConfidence(c float64) float64 {
	c = math.Max(0, math.Min(1, c))
	return math.Round(c*100) / 100
}

// ClaimTag carries the invisible traceability attributes of a section.
type ClaimTag struct {
	ClaimID           string      `json:"claimId"`
	GovernanceVersion string      `json:"governanceVersion"`
	Template          TemplateID  `json:"template"`
	Theme             string      `json:"theme"`
	Access            AccessState `json:"access"`
}

// Renderer serializes content nodes for one render target.
type Renderer interface {
	// Target returns the render target this renderer produces.
	Target() RenderTarget

	// Render serializes nodes, escaping all text for the target syntax.
	Render(nodes []*ContentNode) (string, error)

	// Wrap embeds rendered content in a container carrying the claim tag.
	Wrap(rendered string, tag ClaimTag) string

	// Receipt returns an inert placeholder carrying only the claim id and
	// the frozen flag. It never contains rendered content.
	Receipt(tag ClaimTag) string

	// Compose joins wrapped blocks into the document update that replaces
	// the document's content.
	Compose(blocks []string) DocumentUpdate
}

// InjectRequest asks for a template to be rendered into a document.
type InjectRequest struct {
	DocumentID   string         `json:"documentId"`
	Template     TemplateID     `json:"template"`
	Data         ContentData    `json:"data"`
	Profile      *DesignProfile `json:"profile"`
	Capabilities *CapabilityMap `json:"capabilities"`
	Access       AccessState    `json:"access"`
}

// InjectResult reports the outcome of an injection.
type InjectResult struct {
	JobID        string       `json:"jobId"`
	Success      bool         `json:"success"`
	Blocks       []string     `json:"blocks"`
	Confidence   float64      `json:"confidence"`
	Warnings     []string     `json:"warnings"`
	BlockCount   int          `json:"blockCount"`
	RenderTarget RenderTarget `json:"renderTarget"`
	State        JobState     `json:"state"`
}

// Injector renders templates into documents behind a confidence gate.
type Injector interface {
	Inject(ctx context.Context, req InjectRequest) (*InjectResult, error)
}
