package model

import (
	_ "embed"
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

// Error codes attached to a FieldError. The form maps them to localized messages.
const (
	CodeRequired = "required"
	CodeEmail    = "email"
	CodeURL      = "url"
	CodeImage    = "image"
	CodeTooLarge = "too_large"
	CodeInvalid  = "invalid"
)

// FieldError reports one invalid field by dotted path, e.g. "experiences.1.company".
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// FieldErrors is the ordered set of per-field validation failures.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Code)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe.For(field)
	return ok
}

// For returns the error code recorded for field.
func (fe FieldErrors) For(field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Code, true
		}
	}
	return "", false
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// emailFormat accepts a bare address whose domain has a dot: no display name,
// no surrounding or quoted whitespace.
type emailFormat struct{}

func (emailFormat) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	_, domain, _ := strings.Cut(s, "@")
	return strings.Contains(strings.Trim(domain, "."), ".")
}

// webURLFormat accepts absolute http(s) URLs with a host.
type webURLFormat struct{}

func (webURLFormat) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		gojsonschema.FormatCheckers.Add("contact-email", emailFormat{})
		gojsonschema.FormatCheckers.Add("web-url", webURLFormat{})
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchema))
	})
	return schema, schemaErr
}

// Validate checks r against the embedded résumé schema. It returns nil when r is
// a valid snapshot.
func Validate(r ResumeData) FieldErrors {
	s, err := compiledSchema()
	if err != nil {
		// the schema is embedded; a compile failure is a build defect
		panic(fmt.Sprintf("model: invalid resume schema: %v", err))
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(r))
	if err != nil {
		return FieldErrors{{Field: "(root)", Code: CodeInvalid}}
	}
	if res.Valid() {
		return nil
	}

	seen := map[string]bool{}
	var out FieldErrors
	for _, e := range res.Errors() {
		field := fieldPath(e)
		if seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, FieldError{Field: field, Code: codeFor(field, r)})
	}
	sort.SliceStable(out, func(i, j int) bool { return lessField(out[i].Field, out[j].Field) })
	return out
}

// fieldPath normalizes gojsonschema's context into a dotted field path.
// Required errors are reported on the parent object with the missing
// property in the details.
func fieldPath(e gojsonschema.ResultError) string {
	field := e.Field()
	if e.Type() == "required" {
		if p, ok := e.Details()["property"].(string); ok {
			if field == "(root)" || field == "" {
				return p
			}
			return field + "." + p
		}
	}
	if field == "" {
		return "(root)"
	}
	return field
}

func codeFor(field string, r ResumeData) string {
	switch {
	case field == "name", field == "phone":
		return CodeRequired
	case field == "email":
		if strings.TrimSpace(r.Email) == "" {
			return CodeRequired
		}
		return CodeEmail
	case field == "linkedin", field == "github":
		return CodeURL
	case field == "photo", strings.HasPrefix(field, "photo."):
		return CodeImage
	}
	return CodeInvalid
}

var fieldRank = map[string]int{
	"name": 0, "email": 1, "phone": 2, "linkedin": 3, "github": 4, "photo": 5,
	"summary": 6, "education": 7, "experiences": 8, "courses": 9, "skills": 10,
}

// lessField orders errors the way the form lays fields out.
func lessField(a, b string) bool {
	ra, rb := rankOf(a), rankOf(b)
	if ra != rb {
		return ra < rb
	}
	ia, ib := indexOf(a), indexOf(b)
	if ia != ib {
		return ia < ib
	}
	return a < b
}

func rankOf(field string) int {
	head, _, _ := strings.Cut(field, ".")
	if r, ok := fieldRank[head]; ok {
		return r
	}
	return len(fieldRank)
}

func indexOf(field string) int {
	parts := strings.Split(field, ".")
	if len(parts) < 2 {
		return -1
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	return n
}
