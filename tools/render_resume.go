//go:build ignore

// render_resume writes the printable HTML document of a résumé JSON file, for
// working on the templates without a browser round trip.
//
//	go run tools/render_resume.go resume.json modern > out.html
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"resume-builder/internal/model"
	"resume-builder/internal/preview"
)

func main() {
	in := "resume.json"
	if len(os.Args) > 1 {
		in = os.Args[1]
	}
	tplName := "classic"
	if len(os.Args) > 2 {
		tplName = os.Args[2]
	}

	b, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read resume: %v\n", err)
		os.Exit(2)
	}
	var data model.ResumeData
	if err := json.Unmarshal(b, &data); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}
	tpl, ok := model.ParseTemplate(tplName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown template %q\n", tplName)
		os.Exit(2)
	}

	labels := preview.LabelsFor(os.Getenv("RESUME_LANGUAGE"))
	body, err := preview.Render(&data, tpl, labels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}
	title := data.Name
	if title == "" {
		title = labels.DocumentTitle
	}
	doc, err := preview.Document(body, title, labels.Lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "document: %v\n", err)
		os.Exit(2)
	}
	fmt.Print(doc)
}
