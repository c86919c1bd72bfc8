// Command export prints a résumé JSON file to PDF without the web UI.
//
//	export -in resume.json -out resume.pdf -template modern -lang en
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"resume-builder/internal/config"
	"resume-builder/internal/logging"
	"resume-builder/internal/model"
	"resume-builder/internal/preview"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	in := flag.String("in", "resume.json", "résumé JSON file")
	out := flag.String("out", "", "output PDF (default: <name>.pdf)")
	tplName := flag.String("template", "", "classic or modern (default from config)")
	lang := flag.String("lang", "", "label language (default from config)")
	flag.Parse()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read resume: %v\n", err)
		os.Exit(2)
	}
	var data model.ResumeData
	if err := json.Unmarshal(b, &data); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}
	if errs := model.Validate(data); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "invalid resume: %v\n", errs)
		os.Exit(1)
	}

	name := cfg.DefaultTemplate
	if *tplName != "" {
		name = *tplName
	}
	tpl, ok := model.ParseTemplate(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown template %q\n", name)
		os.Exit(2)
	}
	if *lang == "" {
		*lang = cfg.DefaultLanguage
	}

	renderer, err := infra.NewRenderer(cfg.Renderer, cfg.ChromePath, cfg.RenderTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renderer: %v\n", err)
		os.Exit(2)
	}

	policy := usecase.RenderPolicy{Attempts: cfg.RenderAttempts, Backoff: cfg.RenderBackoff}
	exp, err := usecase.Print(context.Background(), renderer, policy, log, &data, tpl, preview.LabelsFor(*lang))
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	dst := *out
	if dst == "" {
		dst = filepath.Join(filepath.Dir(*in), exp.Filename)
	}
	if err := os.WriteFile(dst, exp.PDF, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write pdf: %v\n", err)
		os.Exit(1)
	}
	log.Info("wrote pdf", "path", dst, "bytes", len(exp.PDF), "attempts", exp.Attempts)
}
