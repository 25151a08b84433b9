package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-templatize/internal/htmlsrc"
	"github.com/goliatone/go-templatize/internal/yamlsrc"
	"github.com/goliatone/go-templatize/pkg/templatize"
)

func main() {
	templatePath := flag.String("template", "", "template file (.html or .yaml)")
	format := flag.String("format", "", "template format: html or yaml (inferred from extension when empty)")
	model := flag.String("model", "{}", "instance model as JSON, or @file")
	output := flag.String("output", "", "output file (stdout if empty)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *templatePath == "" {
		log.Error("missing -template")
		os.Exit(2)
	}

	tmpl, err := loadTemplate(*templatePath, *format)
	if err != nil {
		log.Error("load template", "error", err)
		os.Exit(1)
	}

	values, err := loadModel(*model)
	if err != nil {
		log.Error("load model", "error", err)
		os.Exit(1)
	}

	host := templatize.New()
	if err := host.Templatize(tmpl); err != nil {
		log.Error("templatize", "error", err)
		os.Exit(1)
	}
	log.Debug("templatized", "template", *templatePath, "host", host.ID())

	inst, err := host.Stamp(values)
	if err != nil {
		log.Error("stamp", "error", err)
		os.Exit(1)
	}

	rendered := inst.Root().String()
	if *output == "" {
		fmt.Print(rendered)
		return
	}
	if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
		log.Error("write output", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Instance written to %s\n", *output)
}

func loadTemplate(path, format string) (*templatize.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "html"
		}
	}

	switch format {
	case "yaml":
		return yamlsrc.Load(data)
	case "html":
		return htmlsrc.Load(string(data))
	default:
		return nil, fmt.Errorf("unsupported template format %q", format)
	}
}

func loadModel(raw string) (map[string]any, error) {
	payload := raw
	if strings.HasPrefix(raw, "@") {
		data, err := os.ReadFile(raw[1:])
		if err != nil {
			return nil, err
		}
		payload = string(data)
	}

	values := map[string]any{}
	if err := json.Unmarshal([]byte(payload), &values); err != nil {
		return nil, fmt.Errorf("model is not a JSON object: %w", err)
	}
	return values, nil
}
