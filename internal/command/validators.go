// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/resfilter/internal/attrs"
	"github.com/tfctl/resfilter/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator rejects an --attrs spec that cannot be parsed before
// any request work is done.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	spec := c.String("attrs")
	if spec == "" {
		return nil
	}
	var al attrs.AttrList
	if err := al.Set(spec); err != nil {
		return fmt.Errorf("invalid --attrs: %w", err)
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// PropertyValidator requires a non-blank key in key[=value]. A bare key is
// set to "true".
func PropertyValidator(value any) error {
	s, _ := value.(string)
	key, _, _ := strings.Cut(s, "=")
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("property %q has an empty key", s)
	}
	return nil
}
