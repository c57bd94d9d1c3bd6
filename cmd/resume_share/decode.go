package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/resume-share/internal/codec"
	"github.com/jonathan/resume-share/internal/share"
	"github.com/spf13/cobra"
)

var decodeOutput string

var decodeCmd = &cobra.Command{
	Use:   "decode <payload>",
	Short: "Decode a share payload into resume JSON",
	Long:  "Decodes the d parameter of a share link and prints the resume document as indented JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeOutput, "out", "o", "", "Write the document to this file instead of stdout")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	doc, err := codec.Parse(args[0])
	if err != nil {
		logger.Debug().Err(err).Msg("payload rejected")
		return errors.New(share.ReasonPayloadCorrupted.Message())
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	return writeOutput(cmd, decodeOutput, append(content, '\n'))
}
