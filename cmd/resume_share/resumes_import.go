package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-share/internal/store"
	"github.com/spf13/cobra"
)

var resumesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a resume JSON file as a new saved resume",
	Long:  "Imports a resume JSON file. The file must contain personalInfo, skills and workExperience; the record is named after the file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesImport,
}

func init() {
	resumesCmd.AddCommand(resumesImportCmd)
}

func runResumesImport(cmd *cobra.Command, args []string) error {
	content, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := svc.Import(cmd.Context(), args[0], content)
	if err != nil {
		var ie *store.ImportError
		if errors.As(err, &ie) {
			logger.Debug().Err(ie.Cause).Str("file", ie.File).Msg("import rejected")
			return errors.New(ie.Message)
		}
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as %s\n", rec.Name, rec.ID)
	return err
}
