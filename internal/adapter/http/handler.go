package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/ads"
	"resume-builder/internal/form"
	"resume-builder/internal/model"
	"resume-builder/internal/preview"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionCookie = "resume_session"

//go:embed views/page.html
var views embed.FS

var pageTemplate = template.Must(template.ParseFS(views, "views/page.html"))

type StatsSource interface {
	Stats(ctx context.Context) ([]repository.TemplateStats, error)
}

type Options struct {
	Sessions        *usecase.Sessions
	Renderer        usecase.Renderer
	Policy          usecase.RenderPolicy
	Stats           StatsSource
	Ads             ads.Markup
	DefaultLanguage string
	MaxPhotoBytes   int64
	Log             *slog.Logger
}

type Handler struct {
	opts Options
	log  *slog.Logger
}

func NewHandler(opts Options) *Handler {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Handler{opts: opts, log: log}
}

// Register mounts every route on app.
func (h *Handler) Register(app *fiber.App) {
	app.Use(h.requestLogger)
	app.Get("/", h.NewPage)
	app.Post("/form", h.PostForm)
	app.Post("/template", h.PostTemplate)
	app.Get("/preview", h.GetPreview)
	app.Get("/pdf", h.GetPDF)
	app.Post("/api/preview", h.APIPreview)
	app.Post("/api/pdf", h.APIPDF)
	app.Get("/exports/stats", h.ExportStats)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func (h *Handler) requestLogger(c *fiber.Ctx) error {
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		// fiber's error handler writes the response after the middleware returns
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	h.log.Info("request", "method", c.Method(), "path", c.Path(), "status", status)
	return err
}

func (h *Handler) labels(c *fiber.Ctx) preview.Labels {
	return preview.MatchLabels(c.Get(fiber.HeaderAcceptLanguage), h.opts.DefaultLanguage)
}

func (h *Handler) session(c *fiber.Ctx) (*usecase.Session, error) {
	id, err := uuid.Parse(c.Cookies(sessionCookie))
	if err != nil {
		return nil, usecase.ErrSessionNotFound
	}
	return h.opts.Sessions.Get(id)
}

// NewPage starts a fresh page view. Any previous session of this visitor is
// discarded, like reloading the browser tab.
func (h *Handler) NewPage(c *fiber.Ctx) error {
	if id, err := uuid.Parse(c.Cookies(sessionCookie)); err == nil {
		h.opts.Sessions.Drop(id)
	}
	sess := h.opts.Sessions.New()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID.String(),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	sess.Lock()
	defer sess.Unlock()
	return h.renderPage(c, sess, fiber.StatusOK)
}

// PostForm applies one form action: submit, add-experience,
// remove-experience:N or template.
func (h *Handler) PostForm(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	values, photo, err := h.decode(c)
	tooLarge := errors.Is(err, form.ErrPhotoTooLarge)
	if err != nil && !tooLarge {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	sess.Lock()
	defer sess.Unlock()

	if t, ok := model.ParseTemplate(values.Get("template")); ok {
		sess.Controller.SetTemplate(t)
	}
	sess.Form.Set(values)
	if tooLarge {
		// keep the draft and any earlier photo, skip the requested action
		sess.Form.RejectPhoto()
		return h.renderPage(c, sess, fiber.StatusUnprocessableEntity)
	}
	if values.Get("photo_clear") != "" {
		sess.Form.ClearPhoto()
	}
	if photo != nil {
		sess.Form.SetPhoto(photo)
	}

	status := fiber.StatusOK
	action := values.Get("action")
	switch {
	case action == "add-experience":
		sess.Form.AppendExperience()
	case strings.HasPrefix(action, "remove-experience:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(action, "remove-experience:"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid experience index"})
		}
		if err := sess.Form.RemoveExperience(idx); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	case action == "template":
	case action == "submit", action == "":
		if err := sess.Form.Submit(); err != nil {
			status = fiber.StatusUnprocessableEntity
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown action"})
	}

	return h.renderPage(c, sess, status)
}

// PostTemplate switches the layout of the current page view.
func (h *Handler) PostTemplate(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	t, ok := model.ParseTemplate(c.FormValue("template"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid template"})
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Controller.SetTemplate(t)
	return h.renderPage(c, sess, fiber.StatusOK)
}

// GetPreview returns the preview fragment. ?template= previews another layout
// without changing the session's choice.
func (h *Handler) GetPreview(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	sess.Lock()
	defer sess.Unlock()

	tpl := sess.Controller.Template()
	if q := c.Query("template"); q != "" {
		t, ok := model.ParseTemplate(q)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid template"})
		}
		tpl = t
	}
	out, err := preview.Render(sess.Controller.Data(), tpl, h.labels(c))
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(string(out))
}

// GetPDF prints the session's preview.
func (h *Handler) GetPDF(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	sess.Lock()
	defer sess.Unlock()

	exp, err := sess.Controller.GeneratePDF(c.UserContext(), h.labels(c))
	if err != nil {
		if errors.Is(err, usecase.ErrNoResume) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "submit the form first"})
		}
		h.log.Error("pdf export failed", "session_id", sess.ID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "pdf rendering failed"})
	}
	return sendPDF(c, exp)
}

type renderReq struct {
	Template string           `json:"template"`
	Resume   model.ResumeData `json:"resume"`
}

func (h *Handler) parseRenderReq(c *fiber.Ctx) (*renderReq, model.Template, error) {
	var req renderReq
	if err := c.BodyParser(&req); err != nil {
		return nil, "", c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	tpl := model.TemplateClassic
	if req.Template != "" {
		t, ok := model.ParseTemplate(req.Template)
		if !ok {
			return nil, "", c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid template"})
		}
		tpl = t
	}
	if errs := model.Validate(req.Resume); len(errs) > 0 {
		return nil, "", c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}
	return &req, tpl, nil
}

// APIPreview renders a JSON résumé without touching any session.
func (h *Handler) APIPreview(c *fiber.Ctx) error {
	req, tpl, err := h.parseRenderReq(c)
	if req == nil {
		return err
	}
	out, err := preview.Render(&req.Resume, tpl, h.labels(c))
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(string(out))
}

// APIPDF prints a JSON résumé without touching any session.
func (h *Handler) APIPDF(c *fiber.Ctx) error {
	req, tpl, err := h.parseRenderReq(c)
	if req == nil {
		return err
	}
	exp, err := usecase.Print(c.UserContext(), h.opts.Renderer, h.opts.Policy, h.log, &req.Resume, tpl, h.labels(c))
	if err != nil {
		h.log.Error("api pdf export failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "pdf rendering failed"})
	}
	return sendPDF(c, exp)
}

func (h *Handler) ExportStats(c *fiber.Ctx) error {
	if h.opts.Stats == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "export audit disabled"})
	}
	stats, err := h.opts.Stats.Stats(c.UserContext())
	if err != nil {
		if errors.Is(err, repository.ErrNoDatabase) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "export audit disabled"})
		}
		h.log.Error("export stats failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "stats unavailable"})
	}
	return c.JSON(fiber.Map{"templates": stats})
}

func sendPDF(c *fiber.Ctx, exp *usecase.Export) error {
	c.Attachment(exp.Filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(exp.PDF)
}

// decode reads the posted form as multipart or urlencoded values.
func (h *Handler) decode(c *fiber.Ctx) (form.Values, *model.Photo, error) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, nil, err
		}
		return form.DecodeMultipart(mf, h.opts.MaxPhotoBytes)
	}
	values, err := url.ParseQuery(string(c.Body()))
	if err != nil {
		return nil, nil, err
	}
	return values, nil, nil
}

type pageView struct {
	Labels    preview.Labels
	Style     template.CSS
	Ads       ads.Markup
	Form      template.HTML
	Preview   template.HTML
	HasResume bool
}

func (h *Handler) renderPage(c *fiber.Ctx, sess *usecase.Session, status int) error {
	labels := h.labels(c)

	var formBuf bytes.Buffer
	if err := form.Render(&formBuf, sess.Form.View(sess.Controller.Template(), labels)); err != nil {
		return err
	}
	prev, err := sess.Controller.Preview(labels)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = pageTemplate.ExecuteTemplate(&buf, "page.html", pageView{
		Labels:    labels,
		Style:     preview.Stylesheet(),
		Ads:       h.opts.Ads,
		Form:      template.HTML(formBuf.String()),
		Preview:   prev,
		HasResume: sess.Controller.Data() != nil,
	})
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).SendString(buf.String())
}
