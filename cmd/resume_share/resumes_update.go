package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-share/internal/store"
	"github.com/spf13/cobra"
)

var (
	updateName     string
	updateTemplate string
	updateFrom     string
)

var resumesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a saved resume, change its template or replace its document",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesUpdate,
}

func init() {
	resumesUpdateCmd.Flags().StringVarP(&updateName, "name", "n", "", "New record name")
	resumesUpdateCmd.Flags().StringVarP(&updateTemplate, "template", "t", "", "New template id")
	resumesUpdateCmd.Flags().StringVar(&updateFrom, "from", "", "Replace the document with this resume JSON file (\"-\" for stdin)")
	resumesCmd.AddCommand(resumesUpdateCmd)
}

func runResumesUpdate(cmd *cobra.Command, args []string) error {
	var u store.Update
	if cmd.Flags().Changed("name") {
		u.Name = &updateName
	}
	if cmd.Flags().Changed("template") {
		u.TemplateID = &updateTemplate
	}
	if updateFrom != "" {
		doc, err := loadDocument(cmd, updateFrom)
		if err != nil {
			return err
		}
		u.Data = doc
	}
	if u.Name == nil && u.TemplateID == nil && u.Data == nil {
		return errors.New("nothing to update: pass --name, --template or --from")
	}

	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := svc.Update(cmd.Context(), args[0], u)
	if err != nil {
		return fmt.Errorf("failed to update resume %s: %w", args[0], err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", rec.ID, rec.Name)
	return err
}
