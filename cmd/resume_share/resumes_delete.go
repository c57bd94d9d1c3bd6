package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resumesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesDelete,
}

var resumesDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy a saved resume under a new id",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesDuplicate,
}

func init() {
	resumesCmd.AddCommand(resumesDeleteCmd, resumesDuplicateCmd)
}

func runResumesDelete(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete resume %s: %w", args[0], err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return err
}

func runResumesDuplicate(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := svc.Duplicate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to duplicate resume %s: %w", args[0], err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
	return err
}
