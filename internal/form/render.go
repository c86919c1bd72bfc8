package form

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"resume-builder/internal/model"
	"resume-builder/internal/preview"
)

//go:embed templates/form.html
var files embed.FS

var formTemplate = template.Must(template.ParseFS(files, "templates/form.html"))

// View is everything the form markup needs.
type View struct {
	Draft    model.ResumeData
	Errors   model.FieldErrors
	Template model.Template
	Labels   preview.Labels
	Action   string
}

// ErrorFor returns the localized message for field, or "" when it is valid.
func (v View) ErrorFor(field string) string {
	code, ok := v.Errors.For(field)
	if !ok {
		return ""
	}
	return v.Labels.Message(code)
}

// TemplateOptions lists the selectable layouts with their captions.
func (v View) TemplateOptions() []TemplateOption {
	return []TemplateOption{
		{Value: model.TemplateClassic, Caption: v.Labels.TemplateClassic, Selected: v.Template != model.TemplateModern},
		{Value: model.TemplateModern, Caption: v.Labels.TemplateModern, Selected: v.Template == model.TemplateModern},
	}
}

type TemplateOption struct {
	Value    model.Template
	Caption  string
	Selected bool
}

// View builds the render view of the form's current state.
func (f *Form) View(tpl model.Template, labels preview.Labels) View {
	return View{Draft: f.Draft(), Errors: f.errors, Template: tpl, Labels: labels, Action: "/form"}
}

// Render writes the form markup.
func Render(w io.Writer, v View) error {
	if err := formTemplate.ExecuteTemplate(w, "form.html", v); err != nil {
		return fmt.Errorf("form: render: %w", err)
	}
	return nil
}
