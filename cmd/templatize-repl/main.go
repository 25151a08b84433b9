// Command templatize-repl is an interactive playground: load a template,
// stamp one instance, then mutate host or instance properties and watch the
// propagation (updated tree plus forwarding-hook calls) after each command.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-templatize/internal/htmlsrc"
	"github.com/goliatone/go-templatize/internal/yamlsrc"
	"github.com/goliatone/go-templatize/pkg/templatize"
)

func main() {
	templatePath := flag.String("template", "", "template file (.html or .yaml)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *templatePath == "" {
		log.Error("missing -template")
		os.Exit(2)
	}

	tmpl, err := loadTemplate(*templatePath)
	if err != nil {
		log.Error("load template", "error", err)
		os.Exit(1)
	}

	var calls []string
	host := templatize.New(templatize.WithHooks(templatize.Hooks{
		ForwardInstanceProp: func(_ *templatize.Instance, prop string, value any) {
			calls = append(calls, fmt.Sprintf("forwardInstanceProp(%s=%v)", prop, value))
		},
		ForwardInstancePath: func(_ *templatize.Instance, path string, value any) {
			calls = append(calls, fmt.Sprintf("forwardInstancePath(%s=%v)", path, value))
		},
	}))
	host.ObservePath(func(path string, value any) {
		calls = append(calls, fmt.Sprintf("hostPath(%s=%v)", path, value))
	})

	if err := host.Templatize(tmpl); err != nil {
		log.Error("templatize", "error", err)
		os.Exit(1)
	}
	inst, err := host.Stamp(nil)
	if err != nil {
		log.Error("stamp", "error", err)
		os.Exit(1)
	}

	fmt.Println("commands: set <prop>=<value> | iset <prop>=<value> | path <a.b>=<value> | show | quit")
	fmt.Print(inst.Root().String())

	for {
		var line string
		prompt := &survey.Input{Message: ">"}
		if err := survey.AskOne(prompt, &line); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return
			}
			log.Error("prompt", "error", err)
			return
		}

		calls = calls[:0]
		done, err := eval(host, inst, strings.TrimSpace(line))
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		if done {
			return
		}

		fmt.Print(inst.Root().String())
		for _, call := range calls {
			fmt.Println("  ->", call)
		}
	}
}

func eval(host *templatize.Templatizer, inst *templatize.Instance, line string) (bool, error) {
	switch {
	case line == "" || line == "show":
		return false, nil
	case line == "quit" || line == "exit":
		return true, nil
	case strings.HasPrefix(line, "set "):
		name, value, err := splitAssign(line[4:])
		if err != nil {
			return false, err
		}
		host.Set(name, value)
		return false, nil
	case strings.HasPrefix(line, "iset "):
		name, value, err := splitAssign(line[5:])
		if err != nil {
			return false, err
		}
		inst.Set(name, value)
		return false, nil
	case strings.HasPrefix(line, "path "):
		name, value, err := splitAssign(line[5:])
		if err != nil {
			return false, err
		}
		return false, inst.SetPath(name, value)
	default:
		return false, fmt.Errorf("unknown command %q", line)
	}
}

// splitAssign parses `name=value`; the value is decoded as JSON when
// possible so numbers, booleans, and objects round-trip, and falls back to
// the raw string otherwise.
func splitAssign(s string) (string, any, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("expected <name>=<value> in %q", s)
	}
	name = strings.TrimSpace(name)
	raw = strings.TrimSpace(raw)
	if name == "" {
		return "", nil, fmt.Errorf("empty property name in %q", s)
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	return name, value, nil
}

func loadTemplate(path string) (*templatize.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlsrc.Load(data)
	default:
		return htmlsrc.Load(string(data))
	}
}
