// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/resfilter/internal/meta"
	"github.com/tfctl/resfilter/internal/output"
)

// fileFlags complete with file names rather than free text.
var fileFlags = map[string]bool{
	"against": true,
	"filters": true,
	"from":    true,
	"save":    true,
}

// completionFlag is a flag as the completion scripts see it.
type completionFlag struct {
	Name       string
	Names      []string // with leading dashes
	Usage      string
	TakesValue bool
	Repeatable bool
	Files      bool
	Choices    []string
}

type completionCommand struct {
	Name  string
	Usage string
	Flags []completionFlag
}

// Opts is the space separated list of every spelling of the command's flags.
func (c completionCommand) Opts() string {
	var all []string
	for _, f := range c.Flags {
		all = append(all, f.Names...)
	}
	return strings.Join(all, " ")
}

// Zsh renders the flag as an _arguments spec.
func (f completionFlag) Zsh() string {
	desc := zshEscape(f.Usage)
	var names string
	if len(f.Names) == 1 {
		names = f.Names[0]
	} else {
		names = "{" + strings.Join(f.Names, ",") + "}"
	}

	var excl string
	switch {
	case f.Repeatable:
		excl = "'*'"
	case len(f.Names) > 1:
		excl = "'(" + strings.Join(f.Names, " ") + ")'"
	}

	action := ""
	if f.TakesValue {
		switch {
		case len(f.Choices) > 0:
			action = ":" + f.Name + ":(" + strings.Join(f.Choices, " ") + ")"
		case f.Files:
			action = ":" + f.Name + ":_files"
		default:
			action = ":" + f.Name
		}
	}

	return excl + names + "'[" + desc + "]" + action + "'"
}

func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

const bashCompletionTemplate = `# bash completion for resfilter
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_resfilter()
{
    local cur prev cmd opts
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "{{range .Commands}}{{.Name}} {{end}}completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    case "$cmd" in
{{- range .Commands}}
        {{.Name}})
            opts="{{.Opts}}"
            ;;
{{- end}}
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            return 0
            ;;
    esac

    case "$prev" in
{{- range .Choices}}
        {{.Key}})
            COMPREPLY=( $(compgen -W "{{.Values}}" -- "$cur") )
            return 0
            ;;
{{- end}}
        {{.FileFlags}})
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    # The RootDir is the first word after the command that is not a flag.
    local have_rootdir=0
    local idx=2
    while [[ $idx -lt $COMP_CWORD ]]; do
        if [[ ${COMP_WORDS[$idx]} != -* ]]; then
            have_rootdir=1
            break
        fi
        ((idx++))
    done

    if [[ "$cur" == -* || $have_rootdir -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    return 0
}

complete -F _resfilter resfilter
`

const zshCompletionTemplate = `#compdef resfilter

_resfilter() {
  local -a cmds
  cmds=(
{{- range .Commands}}
    '{{.Name}}:{{zsh .Usage}}'
{{- end}}
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'resfilter commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
{{- range .Commands}}
    {{.Name}})
      _arguments -C \
{{- range .Flags}}
        {{.Zsh}} \
{{- end}}
        '::RootDir:_directories'
      ;;
{{- end}}
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _resfilter resfilter
`

type choice struct {
	Key    string
	Values string
}

type completionData struct {
	Commands  []completionCommand
	Choices   []choice
	FileFlags string
}

// completionDataOf collects the subcommands of root and their flags. The
// completion command itself is left out since it takes no flags.
func completionDataOf(root *cli.Command) completionData {
	var data completionData
	seenChoice := map[string]bool{}
	seenFile := map[string]bool{}
	var files []string

	for _, sub := range root.Commands {
		if sub.Name == "completion" {
			continue
		}
		cc := completionCommand{Name: sub.Name, Usage: sub.Usage}
		for _, f := range sub.Flags {
			cf := completionFlagOf(f)
			cc.Flags = append(cc.Flags, cf)

			if len(cf.Choices) > 0 && !seenChoice[cf.Name] {
				seenChoice[cf.Name] = true
				data.Choices = append(data.Choices, choice{
					Key:    strings.Join(cf.Names, "|"),
					Values: strings.Join(cf.Choices, " "),
				})
			}
			if cf.Files {
				for _, n := range cf.Names {
					if !seenFile[n] {
						seenFile[n] = true
						files = append(files, n)
					}
				}
			}
		}
		data.Commands = append(data.Commands, cc)
	}
	data.FileFlags = strings.Join(files, "|")
	return data
}

func completionFlagOf(f cli.Flag) completionFlag {
	names := f.Names()
	cf := completionFlag{Name: names[0]}
	for _, n := range names {
		if len(n) == 1 {
			cf.Names = append(cf.Names, "-"+n)
		} else {
			cf.Names = append(cf.Names, "--"+n)
		}
	}
	if df, ok := f.(cli.DocGenerationFlag); ok {
		cf.Usage = df.GetUsage()
		cf.TakesValue = df.TakesValue()
	}
	if _, ok := f.(*cli.StringSliceFlag); ok {
		cf.Repeatable = true
	}
	cf.Files = cf.TakesValue && fileFlags[cf.Name]
	if cf.Name == "output" {
		cf.Choices = output.Formats
	}
	return cf
}

// writeCompletion renders the script for shell from the command tree.
func writeCompletion(w io.Writer, root *cli.Command, shell string) error {
	text := bashCompletionTemplate
	if shell == "zsh" {
		text = zshCompletionTemplate
	}
	tmpl := template.Must(template.New(shell).
		Funcs(template.FuncMap{"zsh": zshEscape}).
		Parse(text))
	return tmpl.Execute(w, completionDataOf(root))
}

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash", "zsh":
		return writeCompletion(writer(cmd), cmd.Root(), shell)
	default:
		fmt.Fprintln(os.Stderr, "usage: resfilter completion [bash|zsh]")
		return nil
	}
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "resfilter completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
