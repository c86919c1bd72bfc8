package preview

import (
	"html/template"
	"strings"
	"testing"

	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() *model.ResumeData {
	return &model.ResumeData{
		Name:      "Ana Souza",
		Email:     "ana@example.com",
		Phone:     "21 99999-0000",
		LinkedIn:  "https://www.linkedin.com/in/ana/",
		GitHub:    "https://github.com/ana",
		Summary:   "Backend engineer\nTen years of Go",
		Education: "BSc Computer Science",
		Experiences: []model.Experience{
			{Company: "Acme", Role: "Engineer", Period: "2020 - 2023", Responsibilities: "Built APIs\n\nOn-call"},
			{Company: "Globex", Role: "Intern", Period: "2019"},
		},
		Courses: "SQL\nPython",
		Skills:  "Go, SQL",
	}
}

func section(html template.HTML, name string) string {
	s := string(html)
	start := strings.Index(s, `data-section="`+name+`"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(s[start:], "</section>")
	return s[start : start+end]
}

func TestRender_PlaceholderWithoutData(t *testing.T) {
	for _, tpl := range model.Templates {
		out, err := Render(nil, tpl, LabelsFor("pt-BR"))
		require.NoError(t, err)
		assert.Contains(t, string(out), "Preencha o formulário")
		assert.NotContains(t, string(out), "resume-section")
	}
}

func TestRender_IsPure(t *testing.T) {
	labels := LabelsFor("en")
	for _, tpl := range model.Templates {
		a, err := Render(sampleResume(), tpl, labels)
		require.NoError(t, err)
		b, err := Render(sampleResume(), tpl, labels)
		require.NoError(t, err)
		assert.Equal(t, a, b, tpl)
	}
}

func TestRender_CoursesBulletsInOrder(t *testing.T) {
	for _, tpl := range model.Templates {
		out, err := Render(sampleResume(), tpl, LabelsFor("en"))
		require.NoError(t, err)

		courses := section(out, "courses")
		require.NotEmpty(t, courses, tpl)
		assert.Equal(t, 2, strings.Count(courses, "<li>"), tpl)
		assert.Less(t, strings.Index(courses, "<li>SQL</li>"), strings.Index(courses, "<li>Python</li>"))
	}
}

func TestRender_AbsentCoursesOmitsSection(t *testing.T) {
	r := sampleResume()
	r.Courses = ""
	for _, tpl := range model.Templates {
		out, err := Render(r, tpl, LabelsFor("en"))
		require.NoError(t, err)
		assert.Empty(t, section(out, "courses"), tpl)
		assert.NotContains(t, string(out), ">Courses<")
	}
}

func TestRender_OptionalLinksOmitted(t *testing.T) {
	r := sampleResume()
	r.LinkedIn, r.GitHub = "", ""
	classic, err := Render(r, model.TemplateClassic, LabelsFor("en"))
	require.NoError(t, err)
	assert.NotContains(t, string(classic), "<a ")

	modern, err := Render(r, model.TemplateModern, LabelsFor("en"))
	require.NoError(t, err)
	assert.NotContains(t, string(modern), `data-contact="linkedin"`)
	assert.NotContains(t, string(modern), `data-contact="github"`)
}

func TestRender_ClassicLayout(t *testing.T) {
	out, err := Render(sampleResume(), model.TemplateClassic, LabelsFor("pt-BR"))
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "ana@example.com | 21 99999-0000")
	assert.Contains(t, s, `<p class="resume-role">Engineer – Acme</p>`)
	assert.Contains(t, s, `<p class="resume-period">2020 - 2023</p>`)

	exp := section(out, "experiences")
	assert.Equal(t, 2, strings.Count(exp, "<li>"), "blank responsibility lines are dropped")
	assert.Less(t, strings.Index(exp, "Acme"), strings.Index(exp, "Globex"))

	order := []string{"summary", "education", "experiences", "courses", "skills"}
	last := -1
	for _, name := range order {
		idx := strings.Index(s, `data-section="`+name+`"`)
		require.GreaterOrEqual(t, idx, 0, name)
		assert.Greater(t, idx, last, name)
		last = idx
	}
}

func TestRender_ModernLayout(t *testing.T) {
	out, err := Render(sampleResume(), model.TemplateModern, LabelsFor("en"))
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, `<p class="resume-subtitle">Backend engineer</p>`)
	assert.Contains(t, s, `Engineer – Acme (2020 - 2023)`)
	assert.Contains(t, s, `<a href="https://www.linkedin.com/in/ana/">linkedin.com/in/ana</a>`)
	assert.Contains(t, s, `accent-purple`)
}

func TestRender_SwitchingTemplateKeepsData(t *testing.T) {
	r := sampleResume()
	values := []string{r.Name, r.Email, r.Phone, r.Education, r.Skills, "Ten years of Go",
		"Acme", "Globex", "Engineer", "Intern", "2019", "Built APIs", "On-call", "SQL", "Python",
		"https://github.com/ana"}

	for _, tpl := range model.Templates {
		out, err := Render(r, tpl, LabelsFor("en"))
		require.NoError(t, err)
		for _, v := range values {
			assert.Contains(t, string(out), template.HTMLEscapeString(v), "%s missing under %s", v, tpl)
		}
	}
}

func TestRender_EscapesInput(t *testing.T) {
	r := sampleResume()
	r.Name = "<script>alert(1)</script>"
	r.GitHub = "javascript:alert(1)"
	out, err := Render(r, model.TemplateClassic, LabelsFor("en"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.NotContains(t, string(out), `href="javascript:`)
}

func TestRender_Photo(t *testing.T) {
	r := sampleResume()
	r.Photo = &model.Photo{ContentType: "image/png", Data: []byte("png")}
	out, err := Render(r, model.TemplateModern, LabelsFor("en"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `src="data:image/png;base64,cG5n"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(sampleResume(), model.Template("fancy"), LabelsFor("en"))
	assert.Error(t, err)
}

func TestBullets(t *testing.T) {
	assert.Equal(t, []string{"SQL", "Python"}, Bullets("SQL\r\nPython\n"))
	assert.Empty(t, Bullets(""))
	assert.Empty(t, Bullets(" \n\n"))
}

func TestLinkLabel(t *testing.T) {
	assert.Equal(t, "github.com/ana", LinkLabel("https://github.com/ana"))
	assert.Equal(t, "linkedin.com/in/ana", LinkLabel("https://br.linkedin.com/in/ana/"))
	assert.Equal(t, "not a url", LinkLabel("not a url"))
}

func TestDocument(t *testing.T) {
	body, err := Render(sampleResume(), model.TemplateClassic, LabelsFor("en"))
	require.NoError(t, err)
	doc, err := Document(body, "Ana Souza", "en")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>Ana Souza</title>")
	assert.Contains(t, doc, "print-color-adjust: exact")
	assert.Contains(t, doc, `<p class="resume-role">Engineer – Acme</p>`)
}

func TestMatchLabels(t *testing.T) {
	assert.Equal(t, "en", MatchLabels("en-US,en;q=0.9", "pt-BR").Lang)
	assert.Equal(t, "pt-BR", MatchLabels("pt-PT,pt;q=0.8", "en").Lang)
	assert.Equal(t, "en", MatchLabels("", "en").Lang)
	assert.Equal(t, "Campo obrigatório", LabelsFor("pt-BR").Message("required"))
	assert.Equal(t, "Invalid value", LabelsFor("en").Message("nope"))
}
