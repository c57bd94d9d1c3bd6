package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var resumesJSON bool

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "Manage locally saved resumes",
}

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved resumes",
	Args:  cobra.NoArgs,
	RunE:  runResumesList,
}

var resumesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved resume record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesShow,
}

func init() {
	resumesListCmd.Flags().BoolVar(&resumesJSON, "json", false, "Print records as JSON")
	resumesCmd.AddCommand(resumesListCmd, resumesShowCmd)
	rootCmd.AddCommand(resumesCmd)
}

func runResumesList(cmd *cobra.Command, _ []string) error {
	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := svc.List(cmd.Context())
	if err != nil {
		return err
	}

	if resumesJSON {
		return printJSON(cmd, records)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTEMPLATE\tUPDATED")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.ID, rec.Name, rec.TemplateID, rec.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runResumesShow(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load resume %s: %w", args[0], err)
	}
	return printJSON(cmd, rec)
}

func printJSON(cmd *cobra.Command, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(content))
	return err
}
