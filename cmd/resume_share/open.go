package main

import (
	"errors"

	"github.com/jonathan/resume-share/internal/observability"
	"github.com/jonathan/resume-share/internal/rendering"
	"github.com/jonathan/resume-share/internal/share"
	"github.com/spf13/cobra"
)

var (
	openFormat  string
	openOutput  string
	openVerbose bool
)

var openCmd = &cobra.Command{
	Use:   "open <link>",
	Short: "Resolve a share link and render the resume",
	Long:  "Resolves a share link (full URL, \"?query\" or bare query string) from its payload or from the local store, then renders it as text, HTML or LaTeX.",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	openCmd.Flags().StringVarP(&openFormat, "format", "f", "text", "Output format: text, html or latex")
	openCmd.Flags().StringVarP(&openOutput, "out", "o", "", "Write the rendered resume to this file instead of stdout")
	openCmd.Flags().BoolVarP(&openVerbose, "verbose", "v", false, "Print how the link was resolved to stderr")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	format, err := rendering.ParseFormat(openFormat)
	if err != nil {
		return err
	}

	svc, closeStore, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	res := share.NewConsumer(svc, logger).Resolve(cmd.Context(), args[0])
	if openVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResolution(res)
	}
	if res.State != share.StateResolved {
		return errors.New(res.Message())
	}

	out, err := rendering.RenderString(res.Resume, res.TemplateID, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd, openOutput, []byte(out))
}
