package main

import (
	"fmt"

	"github.com/jonathan/resume-share/internal/types"
	"github.com/spf13/cobra"
)

var (
	createName string
	createFrom string
)

var resumesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a saved resume",
	Long:  "Creates a record from a resume JSON document (--from) or from the starter document. The new id is printed.",
	Args:  cobra.NoArgs,
	RunE:  runResumesCreate,
}

func init() {
	resumesCreateCmd.Flags().StringVarP(&createName, "name", "n", "", "Record name (default \"Untitled Resume\")")
	resumesCreateCmd.Flags().StringVar(&createFrom, "from", "", "Resume JSON document to start from (\"-\" for stdin)")
	resumesCmd.AddCommand(resumesCreateCmd)
}

func runResumesCreate(cmd *cobra.Command, _ []string) error {
	var data *types.Resume
	if createFrom != "" {
		doc, err := loadDocument(cmd, createFrom)
		if err != nil {
			return err
		}
		data = doc
	}

	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := svc.Create(cmd.Context(), createName, data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
	return err
}
