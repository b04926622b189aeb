package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExactArgs requires exactly n positional arguments, e.g. the COURSE_ID of
// sessions and enrollments.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == n {
			return nil
		}

		return argsError(cmd, fmt.Sprintf("requires exactly %d %s", n, pluralize("argument", n)))
	}
}

// NoArgs rejects any positional argument.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	return argsError(cmd, "accepts no arguments")
}

func argsError(cmd *cobra.Command, problem string) error {
	return fmt.Errorf("%q %s.\nSee \"%s --help\".\n\nUsage:  %s\n",
		cmd.CommandPath(), problem, cmd.CommandPath(), cmd.UseLine())
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
