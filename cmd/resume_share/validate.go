package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-share/internal/schemas"
	schemafiles "github.com/jonathan/resume-share/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a resume JSON document against the full resume schema",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	content, err := readInput(cmd, argOrStdin(args))
	if err != nil {
		return err
	}

	err = schemas.Validate(schemafiles.Resume, content)
	var ve *schemas.ValidationError
	switch {
	case err == nil:
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
		return err
	case errors.As(err, &ve):
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation failed:")
		for _, fe := range ve.Errors {
			fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%d validation error(s)", len(ve.Errors))
	default:
		return err
	}
}
