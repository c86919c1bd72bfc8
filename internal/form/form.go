// Package form holds the editable résumé draft behind the HTML form: field
// values, the growable experience list and the validation errors of the
// last submission.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"resume-builder/internal/model"
)

var ErrExperienceIndex = errors.New("experience index out of range")

// Values are posted form fields. Experience fields use dotted keys such as
// "experiences.0.company".
type Values = url.Values

// Form is not safe for concurrent use; the owning session serializes access.
type Form struct {
	draft    model.ResumeData
	errors   model.FieldErrors
	onSubmit func(model.ResumeData)
}

// New returns a form whose draft starts with one blank experience. onSubmit
// receives a snapshot for every successful submission.
func New(onSubmit func(model.ResumeData)) *Form {
	return &Form{
		draft:    model.ResumeData{Experiences: []model.Experience{{}}},
		onSubmit: onSubmit,
	}
}

// Draft returns a copy of the values currently entered.
func (f *Form) Draft() model.ResumeData { return f.draft.Clone() }

// Errors returns the per-field errors of the last submission.
func (f *Form) Errors() model.FieldErrors { return f.errors }

// Set replaces the draft's text fields and experience list with values. The
// photo is left untouched; see SetPhoto and ClearPhoto.
func (f *Form) Set(values Values) {
	f.draft.Name = values.Get("name")
	f.draft.Email = values.Get("email")
	f.draft.Phone = values.Get("phone")
	f.draft.LinkedIn = values.Get("linkedin")
	f.draft.GitHub = values.Get("github")
	f.draft.Summary = values.Get("summary")
	f.draft.Education = values.Get("education")
	f.draft.Courses = values.Get("courses")
	f.draft.Skills = values.Get("skills")
	f.draft.Experiences = decodeExperiences(values)
}

func (f *Form) SetPhoto(p *model.Photo) { f.draft.Photo = p }

func (f *Form) ClearPhoto() { f.draft.Photo = nil }

// RejectPhoto records an oversized upload as the only form error. The draft,
// including any previously accepted photo, is left as is.
func (f *Form) RejectPhoto() {
	f.errors = model.FieldErrors{{Field: "photo", Code: model.CodeTooLarge}}
}

// AppendExperience adds a blank entry at the end of the list.
func (f *Form) AppendExperience() {
	f.draft.Experiences = append(f.draft.Experiences, model.Experience{})
}

// RemoveExperience deletes the entry at i, keeping the others in order.
func (f *Form) RemoveExperience(i int) error {
	if i < 0 || i >= len(f.draft.Experiences) {
		return fmt.Errorf("remove experience %d of %d: %w", i, len(f.draft.Experiences), ErrExperienceIndex)
	}
	f.draft.Experiences = append(f.draft.Experiences[:i:i], f.draft.Experiences[i+1:]...)
	return nil
}

// Submit validates the draft. On success the snapshot is passed to onSubmit
// exactly once and nil is returned; otherwise the field errors are kept for
// rendering and returned.
func (f *Form) Submit() error {
	snapshot := f.draft.Clone()
	if errs := model.Validate(snapshot); len(errs) > 0 {
		f.errors = errs
		return errs
	}
	f.errors = nil
	if f.onSubmit != nil {
		f.onSubmit(snapshot)
	}
	return nil
}

var experienceFields = map[string]func(*model.Experience, string){
	"company":          func(e *model.Experience, v string) { e.Company = v },
	"role":             func(e *model.Experience, v string) { e.Role = v },
	"period":           func(e *model.Experience, v string) { e.Period = v },
	"responsibilities": func(e *model.Experience, v string) { e.Responsibilities = v },
}

// decodeExperiences collects "experiences.N.field" keys ordered by N. Gaps in
// the numbering are closed.
func decodeExperiences(values Values) []model.Experience {
	byIndex := map[int]*model.Experience{}
	for key, vs := range values {
		rest, ok := strings.CutPrefix(key, "experiences.")
		if !ok || len(vs) == 0 {
			continue
		}
		idxStr, field, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 {
			continue
		}
		set, ok := experienceFields[field]
		if !ok {
			continue
		}
		e, ok := byIndex[idx]
		if !ok {
			e = &model.Experience{}
			byIndex[idx] = e
		}
		set(e, vs[0])
	}

	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	out := make([]model.Experience, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, *byIndex[i])
	}
	return out
}
