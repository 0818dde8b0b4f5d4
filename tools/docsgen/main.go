package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/resfilter/internal/command"
)

// Extras holds the hand-written parts of the docs: examples and notes per
// subcommand. Usage and flags come from the command tree itself.
type Extras struct {
	Subcommands map[string]Extra `yaml:"subcommands"`
}

type Extra struct {
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type TemplateData struct {
	ID    string
	Short string
	Usage string
	Flags []Flag
	Extra
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const mdTemplate = `# resfilter {{.ID}}

{{.Short}}

## Usage

    {{.Usage}}
{{if .Description}}
{{.Description}}
{{end}}
## Flags
{{range .Flags}}
- ` + "`{{.Syntax}}`" + ` {{.Description}}{{if .Default}} (default: {{.Default}}){{end}}{{end}}
{{if .Examples}}
## Examples
{{range .Examples}}
{{.Description}}

    {{.Command}}
{{end}}{{end}}{{if .Notes}}
## Notes
{{range .Notes}}
- {{.}}{{end}}
{{end}}
_Generated {{.Date}} for version {{.Version}}._
`

const manTemplate = `.TH RESFILTER-{{.IDUpper}} 1 "{{.Date}}" "resfilter {{.Version}}"
.SH NAME
resfilter-{{.ID}} \- {{.Short}}
.SH SYNOPSIS
{{.Usage}}
{{if .Description}}.SH DESCRIPTION
{{.Description}}
{{end}}.SH OPTIONS
{{range .Flags}}.TP
\fB{{.Syntax}}\fR
{{.Description}}
{{end}}{{range .Examples}}.SH EXAMPLE
{{.Description}}
.PP
{{.Command}}
{{end}}`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	var extras Extras
	if data, err := os.ReadFile(filepath.Join(docs, "templates", "resfilter.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &extras); err != nil {
			panic(err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"resfilter"})
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: mdTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "resfilter-", Suffix: ".1"},
	}

	for _, sub := range app.Commands {
		metadata := TemplateData{
			ID:      sub.Name,
			Short:   sub.Usage,
			Usage:   sub.UsageText,
			Flags:   flagsOf(sub),
			Extra:   extras.Subcommands[sub.Name],
			Date:    time.Now().Format("January 2, 2006"),
			Version: getVersion(),
			IDUpper: strings.ToUpper(sub.Name),
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0755); err != nil {
				panic(err)
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.Name+t.Suffix)
			file, err := os.Create(path)
			if err != nil {
				panic(err)
			}
			fmt.Println("Generating", path)

			tmpl := template.Must(template.New(sub.Name).Parse(t.Template))
			if err := tmpl.Execute(file, metadata); err != nil {
				panic(err)
			}

			file.Close()
		}
	}
}

// flagsOf describes the command's flags, sorted by name.
func flagsOf(cmd *cli.Command) []Flag {
	flags := make([]Flag, 0, len(cmd.Flags))
	for _, f := range cmd.Flags {
		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		var usage, def string
		if df, ok := f.(cli.DocGenerationFlag); ok {
			usage = df.GetUsage()
			def = df.GetDefaultText()
		}
		flags = append(flags, Flag{
			ID:          names[0],
			Syntax:      strings.Join(syntax, ", "),
			Description: usage,
			Default:     def,
		})
	}

	sort.Slice(flags, func(i, j int) bool {
		return flags[i].ID < flags[j].ID
	})
	return flags
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
