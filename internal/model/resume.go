package model

import "strings"

// Go models for the résumé form. JSON tags match resume.schema.json, which is
// used both for validation and for the stateless JSON API.

type Experience struct {
	Company          string `json:"company"`
	Role             string `json:"role"`
	Period           string `json:"period"`
	Responsibilities string `json:"responsibilities,omitempty"`
}

// Photo is an uploaded image kept in memory for the lifetime of a session.
type Photo struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

type ResumeData struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	LinkedIn    string       `json:"linkedin,omitempty"`
	GitHub      string       `json:"github,omitempty"`
	Photo       *Photo       `json:"photo,omitempty"`
	Summary     string       `json:"summary"`
	Education   string       `json:"education"`
	Experiences []Experience `json:"experiences"`
	Courses     string       `json:"courses,omitempty"`
	Skills      string       `json:"skills"`
}

// Clone returns a deep copy so snapshots handed to other components cannot be
// mutated through shared slices.
func (r ResumeData) Clone() ResumeData {
	out := r
	if r.Experiences != nil {
		out.Experiences = make([]Experience, len(r.Experiences))
		copy(out.Experiences, r.Experiences)
	}
	if r.Photo != nil {
		p := *r.Photo
		p.Data = append([]byte(nil), r.Photo.Data...)
		out.Photo = &p
	}
	return out
}

// Template selects one of the two fixed preview layouts.
type Template string

const (
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
)

// Templates lists the selectable layouts in display order.
var Templates = []Template{TemplateClassic, TemplateModern}

// ParseTemplate accepts the canonical names and the legacy modelo1/modelo2 ids.
func ParseTemplate(s string) (Template, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "modelo1", "a":
		return TemplateClassic, true
	case "modern", "modelo2", "b":
		return TemplateModern, true
	}
	return "", false
}

func (t Template) String() string { return string(t) }
