package usecase

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/preview"

	"github.com/google/uuid"
)

var (
	ErrNoResume   = errors.New("no resume submitted")
	ErrInvalidPDF = errors.New("invalid PDF output")
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
	Name() string
}

type ExportsRepo interface {
	Save(ctx context.Context, e *domain.ExportEvent) error
}

// RenderPolicy controls PDF render retries.
type RenderPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// Controller owns the current résumé snapshot and template choice of one page
// view. Data flows in through Accept and out through Preview and GeneratePDF.
type Controller struct {
	mu       sync.RWMutex
	data     *model.ResumeData
	template model.Template

	sessionID uuid.UUID
	renderer  Renderer
	repo      ExportsRepo
	policy    RenderPolicy
	log       *slog.Logger
}

func NewController(sessionID uuid.UUID, tpl model.Template, r Renderer, repo ExportsRepo, policy RenderPolicy, log *slog.Logger) *Controller {
	if tpl == "" {
		tpl = model.TemplateClassic
	}
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		template:  tpl,
		sessionID: sessionID,
		renderer:  r,
		repo:      repo,
		policy:    policy,
		log:       log,
	}
}

// Accept replaces the current snapshot. It is wired as the form's submit
// callback.
func (c *Controller) Accept(snapshot model.ResumeData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := snapshot.Clone()
	c.data = &d
}

// Data returns a copy of the current snapshot, or nil before any submission.
func (c *Controller) Data() *model.ResumeData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return nil
	}
	d := c.data.Clone()
	return &d
}

func (c *Controller) Template() model.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.template
}

func (c *Controller) SetTemplate(t model.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.template = t
}

// Preview renders the current state.
func (c *Controller) Preview(labels preview.Labels) (template.HTML, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return preview.Render(c.data, c.template, labels)
}

// Export is a produced PDF.
type Export struct {
	Filename string
	PDF      []byte
	Attempts int
}

// DocumentTitle is the print title: the person's name, or the localized
// fallback.
func DocumentTitle(data *model.ResumeData, labels preview.Labels) string {
	if data != nil && strings.TrimSpace(data.Name) != "" {
		return strings.TrimSpace(data.Name)
	}
	return labels.DocumentTitle
}

// GeneratePDF prints the current preview through the renderer.
func (c *Controller) GeneratePDF(ctx context.Context, labels preview.Labels) (*Export, error) {
	data := c.Data()
	if data == nil {
		return nil, ErrNoResume
	}
	tpl := c.Template()

	exp, err := Print(ctx, c.renderer, c.policy, c.log, data, tpl, labels)
	if err != nil {
		return nil, err
	}

	ev := &domain.ExportEvent{
		ID:        uuid.New(),
		SessionID: c.sessionID,
		Template:  tpl.String(),
		Language:  labels.Lang,
		Renderer:  c.renderer.Name(),
		SizeBytes: len(exp.PDF),
		Attempts:  exp.Attempts,
		CreatedAt: time.Now().UTC(),
	}
	if c.repo != nil {
		if err := c.repo.Save(ctx, ev); err != nil {
			c.log.Warn("failed to record export", "export_id", ev.ID, "error", err)
		}
	}
	return exp, nil
}

// Print renders data under tpl into a PDF. It retries with exponential backoff
// and checks the PDF signature of the output.
func Print(ctx context.Context, r Renderer, policy RenderPolicy, log *slog.Logger, data *model.ResumeData, tpl model.Template, labels preview.Labels) (*Export, error) {
	body, err := preview.Render(data, tpl, labels)
	if err != nil {
		return nil, err
	}
	title := DocumentTitle(data, labels)
	html, err := preview.Document(body, title, labels.Lang)
	if err != nil {
		return nil, err
	}

	attempts := max(policy.Attempts, 1)
	var pdf []byte
	var renderErr error
	for i := 0; i < attempts; i++ {
		pdf, renderErr = r.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if len(pdf) > 0 && strings.HasPrefix(string(pdf[:min(len(pdf), 4)]), "%PDF") {
				return &Export{Filename: exportFilename(title), PDF: pdf, Attempts: i + 1}, nil
			}
			renderErr = fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))
		}
		log.Warn("render attempt failed", "attempt", i+1, "renderer", r.Name(), "error", renderErr)
		if i < attempts-1 {
			backoff := policy.Backoff * time.Duration(1<<i)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", attempts, renderErr)
}

var filenameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\"", "", "\r", "", "\n", "")

func exportFilename(title string) string {
	return filenameReplacer.Replace(title) + ".pdf"
}
