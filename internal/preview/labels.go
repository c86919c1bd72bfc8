package preview

import (
	"golang.org/x/text/language"
)

// Labels holds every user-facing caption for one UI language: section
// headings, the placeholder prompt, form captions and validation messages.
type Labels struct {
	Lang string

	Placeholder   string
	DocumentTitle string
	Heading       string
	Tagline       string

	Summary     string
	Education   string
	Experiences string
	Courses     string
	Skills      string

	// form captions
	ChooseTemplate     string
	TemplateClassic    string
	TemplateModern     string
	PersonalData       string
	Name               string
	Photo              string
	Email              string
	Phone              string
	LinkedIn           string
	GitHub             string
	Company            string
	Role               string
	Period             string
	PeriodHint         string
	Responsibilities   string
	ResponsibilityHint string
	CoursesHint        string
	SkillsHint         string
	CoursesAndSkills   string
	Remove             string
	AddExperience      string
	Generate           string
	ExportPDF          string
	PreviewTitle       string

	// validation messages keyed by model error code
	Messages map[string]string
}

// Message returns the localized text for a validation code.
func (l Labels) Message(code string) string {
	if m, ok := l.Messages[code]; ok {
		return m
	}
	return l.Messages["invalid"]
}

var portuguese = Labels{
	Lang:               "pt-BR",
	Placeholder:        "Preencha o formulário para visualizar seu currículo...",
	DocumentTitle:      "Curriculo",
	Heading:            "Crie Seu Currículo Online",
	Tagline:            "Preencha os dados e visualize seu currículo em PDF",
	Summary:            "Resumo",
	Education:          "Formação",
	Experiences:        "Experiências",
	Courses:            "Cursos",
	Skills:             "Skills",
	ChooseTemplate:     "Escolha um modelo:",
	TemplateClassic:    "Modelo 1 - Clássico",
	TemplateModern:     "Modelo 2 - Moderno",
	PersonalData:       "Dados Pessoais",
	Name:               "Nome",
	Photo:              "Foto (opcional)",
	Email:              "E-mail",
	Phone:              "Telefone",
	LinkedIn:           "LinkedIn",
	GitHub:             "GitHub",
	Company:            "Empresa",
	Role:               "Cargo",
	Period:             "Período",
	PeriodHint:         "Ex: Jan/2020 - Dez/2022",
	Responsibilities:   "Funções",
	ResponsibilityHint: "Cada linha será uma responsabilidade",
	CoursesHint:        "Cada curso em uma linha",
	SkillsHint:         "Ex: React, Next.js, SQL",
	CoursesAndSkills:   "Cursos e Skills",
	Remove:             "Remover",
	AddExperience:      "+ Adicionar Experiência",
	Generate:           "Gerar Currículo",
	ExportPDF:          "Exportar PDF",
	PreviewTitle:       "Pré-visualização do Currículo",
	Messages: map[string]string{
		"required":  "Campo obrigatório",
		"email":     "E-mail inválido",
		"url":       "URL inválida",
		"image":     "A foto deve ser uma imagem",
		"too_large": "A foto excede o tamanho máximo",
		"invalid":   "Valor inválido",
	},
}

var english = Labels{
	Lang:               "en",
	Placeholder:        "Fill in the form to preview your résumé...",
	DocumentTitle:      "Resume",
	Heading:            "Build Your Résumé Online",
	Tagline:            "Fill in your details and preview your résumé as a PDF",
	Summary:            "Summary",
	Education:          "Education",
	Experiences:        "Experience",
	Courses:            "Courses",
	Skills:             "Skills",
	ChooseTemplate:     "Choose a template:",
	TemplateClassic:    "Template 1 - Classic",
	TemplateModern:     "Template 2 - Modern",
	PersonalData:       "Personal Data",
	Name:               "Name",
	Photo:              "Photo (optional)",
	Email:              "E-mail",
	Phone:              "Phone",
	LinkedIn:           "LinkedIn",
	GitHub:             "GitHub",
	Company:            "Company",
	Role:               "Role",
	Period:             "Period",
	PeriodHint:         "e.g. Jan/2020 - Dec/2022",
	Responsibilities:   "Responsibilities",
	ResponsibilityHint: "One responsibility per line",
	CoursesHint:        "One course per line",
	SkillsHint:         "e.g. React, Next.js, SQL",
	CoursesAndSkills:   "Courses and Skills",
	Remove:             "Remove",
	AddExperience:      "+ Add Experience",
	Generate:           "Build Résumé",
	ExportPDF:          "Export PDF",
	PreviewTitle:       "Résumé Preview",
	Messages: map[string]string{
		"required":  "This field is required",
		"email":     "Enter a valid e-mail address",
		"url":       "Enter a valid URL",
		"image":     "The photo must be an image",
		"too_large": "The photo is too large",
		"invalid":   "Invalid value",
	},
}

var (
	supported = []language.Tag{language.BrazilianPortuguese, language.English}
	catalog   = map[language.Tag]Labels{
		language.BrazilianPortuguese: portuguese,
		language.English:             english,
	}
	matcher = language.NewMatcher(supported)
)

// LabelsFor returns the labels of the closest supported language to lang.
func LabelsFor(lang string) Labels {
	tag, err := language.Parse(lang)
	if err != nil {
		return portuguese
	}
	return pick(tag)
}

// MatchLabels picks labels from an Accept-Language header, falling back to
// fallback when the header is empty or unparsable.
func MatchLabels(acceptLanguage, fallback string) Labels {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LabelsFor(fallback)
	}
	return pick(tags...)
}

func pick(tags ...language.Tag) Labels {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return portuguese
	}
	return catalog[supported[idx]]
}
