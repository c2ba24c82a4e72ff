// Package inject renders section templates into documents and gates their
// publication on the aggregated confidence of the sections.
package inject

import (
	"context"
	"fmt"

	"github.com/fwojciec/blockwright"
	"github.com/google/uuid"
)

var _ blockwright.Injector = (*Injector)(nil)

// DefaultGovernanceVersion tags sections when no version is configured.
const DefaultGovernanceVersion = "1.0"

// Injector implements blockwright.Injector.
type Injector struct {
	Documents blockwright.DocumentService
	Detector  blockwright.RenderTargetDetector
	Warnings  blockwright.WarningService

	// GovernanceVersion is embedded in every claimed section.
	GovernanceVersion string

	// Threshold is the minimum job confidence that keeps a document
	// published.
	Threshold float64

	renderers map[blockwright.RenderTarget]blockwright.Renderer
}

// NewInjector creates a new Injector. Documents whose render target has no
// renderer are written with the renderer for plain HTML, which must be among
// renderers.
func NewInjector(docs blockwright.DocumentService, detector blockwright.RenderTargetDetector, warnings blockwright.WarningService, renderers ...blockwright.Renderer) *Injector {
	i := &Injector{
		Documents:         docs,
		Detector:          detector,
		Warnings:          warnings,
		GovernanceVersion: DefaultGovernanceVersion,
		Threshold:         blockwright.DefaultPublishThreshold,
		renderers:         make(map[blockwright.RenderTarget]blockwright.Renderer),
	}
	for _, r := range renderers {
		i.renderers[r.Target()] = r
	}
	return i
}

// Inject builds the requested template and writes it to the document. When
// the job confidence is below the threshold the same write sets the document
// to draft, and a warning is recorded that stays open until resolved.
func (i *Injector) Inject(ctx context.Context, req blockwright.InjectRequest) (*blockwright.InjectResult, error) {
	if req.DocumentID == "" {
		return nil, blockwright.Errorf(blockwright.EINVALID, "document ID required")
	}
	access := req.Access
	switch access {
	case "":
		access = blockwright.AccessEnabled
	case blockwright.AccessEnabled, blockwright.AccessFrozen:
	default:
		return nil, blockwright.Errorf(blockwright.EINVALID, "invalid access state %q", req.Access)
	}

	target, err := i.Detector.Detect(ctx, req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("detect render target: %w", err)
	}
	renderer, err := i.renderer(target)
	if err != nil {
		return nil, err
	}

	job := blockwright.NewJob(uuid.NewString(), req.DocumentID, req.Template, access)
	var seq blockwright.ClaimSequence
	sections, warnings := build(req.Template, &req.Data, req.Capabilities, &seq)

	theme := "unknown"
	if req.Profile != nil {
		theme = req.Profile.Theme.String()
	}

	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		tag := blockwright.ClaimTag{
			ClaimID:           s.ClaimID,
			GovernanceVersion: i.GovernanceVersion,
			Template:          req.Template,
			Theme:             theme,
			Access:            access,
		}
		// Frozen sections are never rendered, only receipted.
		if access == blockwright.AccessFrozen {
			blocks = append(blocks, renderer.Receipt(tag))
			job.Sections = append(job.Sections, s)
			continue
		}
		rendered, err := renderer.Render(s.Nodes)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("section %s skipped: %s", s.Name, blockwright.ErrorMessage(err)))
			continue
		}
		blocks = append(blocks, renderer.Wrap(rendered, tag))
		job.Sections = append(job.Sections, s)
	}

	// The publish decision is made before anything is persisted so that
	// low-confidence content is never written to a published document.
	state := blockwright.Transition(blockwright.MeanConfidence(job.Sections), i.Threshold)

	var upd blockwright.DocumentUpdate
	if len(blocks) > 0 {
		upd = renderer.Compose(blocks)
	} else {
		warnings = append(warnings, "no sections could be built; document content left unchanged")
	}
	if state == blockwright.JobDrafted {
		status := blockwright.StatusDraft
		upd.Status = &status
	}
	if !upd.IsEmpty() {
		if err := i.Documents.SetDocument(ctx, req.DocumentID, upd); err != nil {
			return nil, fmt.Errorf("write document: %w", err)
		}
	}
	if err := job.MarkWritten(); err != nil {
		return nil, err
	}
	if _, err := job.Settle(i.Threshold); err != nil {
		return nil, err
	}
	if job.State == blockwright.JobDrafted {
		msg, err := i.warn(ctx, job)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, msg)
	}

	return &blockwright.InjectResult{
		JobID:        job.ID,
		Success:      true,
		Blocks:       blocks,
		Confidence:   job.Confidence,
		Warnings:     warnings,
		BlockCount:   len(blocks),
		RenderTarget: renderer.Target(),
		State:        job.State,
	}, nil
}

// warn records a warning for a human to review the drafted document.
func (i *Injector) warn(ctx context.Context, job *blockwright.Job) (string, error) {
	msg := fmt.Sprintf("confidence %.2f is below the publish threshold %.2f; document %s was set to draft for review",
		job.Confidence, i.Threshold, job.DocumentID)
	if err := i.Warnings.CreateWarning(ctx, &blockwright.Warning{
		DocumentID: job.DocumentID,
		JobID:      job.ID,
		Confidence: job.Confidence,
		Message:    msg,
	}); err != nil {
		return "", fmt.Errorf("record warning: %w", err)
	}
	return msg, nil
}

func (i *Injector) renderer(target blockwright.RenderTarget) (blockwright.Renderer, error) {
	if r, ok := i.renderers[target]; ok {
		return r, nil
	}
	if r, ok := i.renderers[blockwright.RenderTargetHTML]; ok {
		return r, nil
	}
	return nil, blockwright.Errorf(blockwright.EINTERNAL, "no renderer for %q and no plain HTML fallback", target)
}
