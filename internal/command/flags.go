// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/resfilter/internal/differ"
	"github.com/tfctl/resfilter/internal/output"
)

// EncodingEnvVar supplies --encoding when the flag is not given.
const EncodingEnvVar = "RESFILTER_ENCODING"

// Flags are built fresh for every command since urfave/cli keeps parse state
// on the flag value.
func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the request attributes available to --attrs",
		HideDefault: true,
	}
}

func newNoCacheFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "no-cache",
		Usage: "do not read or write the request cache",
	}
}

// NewGlobalFlags returns the output flags every reporting command shares.
// Values missing on the command line are read from the config file at path,
// namespaced by ns first.
func NewGlobalFlags(ns string, path string) (flags []cli.Flag) {
	flags = []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (" + strings.Join(output.Formats, "|") + ")",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.IntFlag{
			Name:        "padding",
			Usage:       "spaces between text columns",
			Value:       2, //nolint:mnd
			HideDefault: true,
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "sort text rows by attr or value, prefix - to reverse",
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		}),
	}

	return
}

// NewRequestFlags returns the flags that shape the filtering request.
func NewRequestFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "filters",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filter files",
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"e"},
			Usage:   "character encoding of the resources",
			Sources: cli.EnvVars(EncodingEnvVar),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:  "escape-string",
			Usage: "string that escapes an expression",
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:    "delimiters",
			Aliases: []string{"d"},
			Usage:   "comma-separated delimiter tokens, empty resets to ${*}",
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:  "start-expressions",
			Usage: "comma-separated project start expressions",
		}),
		&cli.StringSliceFlag{
			Name:    "property",
			Aliases: []string{"p"},
			Usage:   "additional property key=value, repeatable",
			Validator: func(values []string) error {
				for _, v := range values {
					if err := FlagValidators(v, PropertyValidator); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cli.StringSliceFlag{
			Name:    "define",
			Aliases: []string{"D"},
			Usage:   "session user property key=value, repeatable",
			Validator: func(values []string) error {
				for _, v := range values {
					if err := FlagValidators(v, PropertyValidator); err != nil {
						return err
					}
				}
				return nil
			},
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.BoolFlag{
			Name:  "escape-windows-paths",
			Usage: "escape backslashes in Windows paths",
			Value: true,
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.BoolFlag{
			Name:  "inject-build-filters",
			Usage: "append the project's build filters to --filters",
		}),
	}
}

// NewDiffFlags returns the flags specific to diff.
func NewDiffFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "against",
			Usage: "compare with a project dir[::profiles], a snapshot file or an s3:// object",
		},
		NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
			Name:  "ignore",
			Usage: "comma-separated request paths to leave out of the comparison",
			Value: strings.Join(differ.DefaultIgnore, ","),
		}),
		&cli.BoolFlag{
			Name:  "pick",
			Usage: "pick two cached requests to compare",
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. Sources already on the flag, such
// as environment variables, keep precedence over the file.
func NameSpacedValueChainFlagFromConfigFile[T any, C any, VC cli.ValueCreator[T, C]](ns string, path string, flag *cli.FlagBase[T, C, VC]) *cli.FlagBase[T, C, VC] {
	if path == "" {
		return flag
	}

	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
