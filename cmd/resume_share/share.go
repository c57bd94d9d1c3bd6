package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-share/internal/clipboard"
	"github.com/jonathan/resume-share/internal/observability"
	"github.com/jonathan/resume-share/internal/share"
	"github.com/jonathan/resume-share/internal/types"
	"github.com/spf13/cobra"
)

var (
	shareRecordID string
	shareTemplate string
	shareOrigin   string
	shareCopy     bool
	shareVerbose  bool

	clipboardWriter clipboard.Writer = clipboard.System{}
)

var shareCmd = &cobra.Command{
	Use:   "share [file]",
	Short: "Build a share link for a resume",
	Long: `Builds <origin>/share?d=<payload>&t=<template> for a resume JSON document (a file, or stdin
when omitted or "-") or for a saved record (--id). Long links print a warning but are still produced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().StringVar(&shareRecordID, "id", "", "Share a saved resume instead of a file")
	shareCmd.Flags().StringVarP(&shareTemplate, "template", "t", "", "Template id (defaults to the record's or the configured template)")
	shareCmd.Flags().StringVar(&shareOrigin, "origin", "", "Viewer origin (defaults to the configured origin)")
	shareCmd.Flags().BoolVar(&shareCopy, "copy", false, "Copy the link to the clipboard")
	shareCmd.Flags().BoolVarP(&shareVerbose, "verbose", "v", false, "Print a resume and link summary to stderr")
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	if shareRecordID != "" && len(args) > 0 {
		return errors.New("cannot use --id together with a file argument")
	}

	var (
		doc        *types.Resume
		templateID = shareTemplate
	)
	if shareRecordID != "" {
		svc, closeStore, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		rec, err := svc.Get(cmd.Context(), shareRecordID)
		if err != nil {
			return fmt.Errorf("failed to load resume %s: %w", shareRecordID, err)
		}
		doc = &rec.Data
		if templateID == "" {
			templateID = rec.TemplateID
		}
	} else {
		loaded, err := loadDocument(cmd, argOrStdin(args))
		if err != nil {
			return err
		}
		doc = loaded
	}
	if templateID == "" {
		templateID = appConfig.Template
	}

	origin := shareOrigin
	if origin == "" {
		origin = appConfig.Origin
	}

	parts := share.NewLink(doc, templateID, origin)
	link := parts.String()
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), link); err != nil {
		return err
	}

	if shareVerbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintResume(doc)
		p.PrintLink(parts)
	}
	if risk := share.ClassifyURLLength(link); risk != share.RiskNone {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s (%d characters)\n", risk.Message(), len(link))
	}
	if shareCopy && clipboard.Copy(clipboardWriter, link, logger) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Link copied to clipboard")
	}
	return nil
}
