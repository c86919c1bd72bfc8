package form

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"resume-builder/internal/model"
	"resume-builder/internal/preview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() Values {
	return Values{
		"name":                           {"Ana Souza"},
		"email":                          {"ana@example.com"},
		"phone":                          {"21 99999-0000"},
		"linkedin":                       {"https://linkedin.com/in/ana"},
		"github":                         {""},
		"summary":                        {"Backend engineer"},
		"education":                      {"BSc"},
		"courses":                        {"SQL\nPython"},
		"skills":                         {"Go"},
		"experiences.0.company":          {"Acme"},
		"experiences.0.role":             {"Engineer"},
		"experiences.0.period":           {"2020 - 2023"},
		"experiences.0.responsibilities": {"APIs"},
		"experiences.1.company":          {"Globex"},
		"experiences.1.role":             {"Intern"},
	}
}

type recorder struct{ got []model.ResumeData }

func (r *recorder) submit(d model.ResumeData) { r.got = append(r.got, d) }

func TestNew_StartsWithOneBlankExperience(t *testing.T) {
	f := New(nil)
	assert.Equal(t, []model.Experience{{}}, f.Draft().Experiences)
}

func TestSubmit_ValidEmitsExactlyOnceVerbatim(t *testing.T) {
	var rec recorder
	f := New(rec.submit)
	f.Set(validValues())

	require.NoError(t, f.Submit())
	require.Len(t, rec.got, 1)

	got := rec.got[0]
	assert.Equal(t, "Ana Souza", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "21 99999-0000", got.Phone)
	assert.Equal(t, "https://linkedin.com/in/ana", got.LinkedIn)
	assert.Equal(t, "SQL\nPython", got.Courses)
	assert.Equal(t, []model.Experience{
		{Company: "Acme", Role: "Engineer", Period: "2020 - 2023", Responsibilities: "APIs"},
		{Company: "Globex", Role: "Intern"},
	}, got.Experiences)
	assert.Empty(t, f.Errors())
}

func TestSubmit_MissingRequiredFieldEmitsNothing(t *testing.T) {
	for _, field := range []string{"name", "email", "phone"} {
		t.Run(field, func(t *testing.T) {
			var rec recorder
			f := New(rec.submit)
			v := validValues()
			v.Del(field)
			f.Set(v)

			err := f.Submit()
			require.Error(t, err)

			var fe model.FieldErrors
			require.True(t, errors.As(err, &fe))
			assert.True(t, fe.Has(field))
			assert.Empty(t, rec.got)
			assert.NotEmpty(t, f.Errors())
		})
	}
}

func TestSubmit_SnapshotIsDetachedFromDraft(t *testing.T) {
	var rec recorder
	f := New(rec.submit)
	f.Set(validValues())
	require.NoError(t, f.Submit())

	f.AppendExperience()
	require.NoError(t, f.RemoveExperience(0))
	assert.Equal(t, "Acme", rec.got[0].Experiences[0].Company)
	assert.Len(t, rec.got[0].Experiences, 2)
}

func TestSubmit_ErrorsClearedAfterFix(t *testing.T) {
	f := New(nil)
	require.Error(t, f.Submit())
	assert.NotEmpty(t, f.Errors())

	f.Set(validValues())
	require.NoError(t, f.Submit())
	assert.Empty(t, f.Errors())
}

func TestAppendThenRemove_PreservesOrder(t *testing.T) {
	const n = 5
	for i := 0; i < n; i++ {
		t.Run(fmt.Sprintf("remove_%d", i), func(t *testing.T) {
			f := New(nil)
			f.Set(Values{})
			for j := 0; j < n; j++ {
				f.AppendExperience()
			}
			require.Len(t, f.Draft().Experiences, n)
			// label entries through a round trip of the posted values
			v := Values{}
			for j := 0; j < n; j++ {
				v.Set(fmt.Sprintf("experiences.%d.company", j), string(rune('A'+j)))
			}
			f.Set(v)

			require.NoError(t, f.RemoveExperience(i))

			got := f.Draft().Experiences
			require.Len(t, got, n-1)
			var want []string
			for j := 0; j < n; j++ {
				if j != i {
					want = append(want, string(rune('A'+j)))
				}
			}
			var companies []string
			for _, e := range got {
				companies = append(companies, e.Company)
			}
			assert.Equal(t, want, companies)
		})
	}
}

func TestAppendExperience_AddsBlankAtEnd(t *testing.T) {
	f := New(nil)
	f.Set(Values{"experiences.0.company": {"Acme"}})
	f.AppendExperience()

	got := f.Draft().Experiences
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0].Company)
	assert.Equal(t, model.Experience{}, got[1])
}

func TestRemoveExperience_OutOfRange(t *testing.T) {
	f := New(nil)
	assert.ErrorIs(t, f.RemoveExperience(1), ErrExperienceIndex)
	assert.ErrorIs(t, f.RemoveExperience(-1), ErrExperienceIndex)
	require.NoError(t, f.RemoveExperience(0))
	assert.Empty(t, f.Draft().Experiences)
}

func TestSet_ClosesIndexGapsAndIgnoresJunk(t *testing.T) {
	f := New(nil)
	f.Set(Values{
		"experiences.7.company": {"Later"},
		"experiences.2.company": {"Earlier"},
		"experiences.x.company": {"junk"},
		"experiences.3.salary":  {"junk"},
	})
	got := f.Draft().Experiences
	require.Len(t, got, 2)
	assert.Equal(t, "Earlier", got[0].Company)
	assert.Equal(t, "Later", got[1].Company)
}

func TestPhoto_KeptAcrossSet(t *testing.T) {
	f := New(nil)
	f.SetPhoto(&model.Photo{ContentType: "image/png", Data: []byte{1}})
	f.Set(validValues())
	require.NotNil(t, f.Draft().Photo)
	f.ClearPhoto()
	assert.Nil(t, f.Draft().Photo)
}

func TestRejectPhoto_RendersInlineErrorAndKeepsDraft(t *testing.T) {
	f := New(nil)
	f.Set(Values{"name": {"Ana"}, "experiences.0.company": {"Acme"}})
	f.RejectPhoto()

	code, ok := f.Errors().For("photo")
	require.True(t, ok)
	assert.Equal(t, model.CodeTooLarge, code)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, f.View(model.TemplateClassic, preview.LabelsFor("en"))))
	out := buf.String()
	assert.Contains(t, out, `<p class="field-error" data-field="photo">The photo is too large</p>`)
	assert.Contains(t, out, `value="Ana"`)
	assert.Contains(t, out, `value="Acme"`)
}

func TestRender_ShowsInlineErrors(t *testing.T) {
	f := New(nil)
	v := validValues()
	v.Set("email", "nope")
	f.Set(v)
	require.Error(t, f.Submit())

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, f.View(model.TemplateModern, preview.LabelsFor("pt-BR"))))
	out := buf.String()

	assert.Contains(t, out, `<p class="field-error" data-field="email">E-mail inválido</p>`)
	assert.NotContains(t, out, `data-field="name"`)
	assert.Contains(t, out, `<option value="modern" selected>`)
	assert.Contains(t, out, `name="experiences.1.company" value="Globex"`)
	assert.Contains(t, out, `value="remove-experience:1"`)
	assert.Equal(t, 2, strings.Count(out, `class="experience"`))
}
