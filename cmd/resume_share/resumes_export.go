package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportDir    string
)

var resumesExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved resume document as JSON",
	Long:  "Writes the document to --out, to <name>.json inside --dir, or to stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesExport,
}

func init() {
	resumesExportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file")
	resumesExportCmd.Flags().StringVar(&exportDir, "dir", "", "Output directory; the file is named after the record")
	resumesExportCmd.MarkFlagsMutuallyExclusive("out", "dir")
	resumesCmd.AddCommand(resumesExportCmd)
}

func runResumesExport(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	fileName, content, err := svc.Export(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to export resume %s: %w", args[0], err)
	}

	path := exportOutput
	if exportDir != "" {
		path = filepath.Join(exportDir, fileName)
	}
	if err := writeOutput(cmd, path, append(content, '\n')); err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", path)
	}
	return nil
}
