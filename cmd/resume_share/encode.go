package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-share/internal/codec"
	"github.com/jonathan/resume-share/internal/schemas"
	"github.com/jonathan/resume-share/internal/types"
	schemafiles "github.com/jonathan/resume-share/schemas"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode a resume JSON document into a share payload",
	Long:  "Reads a resume JSON document (a file, or stdin when omitted or \"-\") and prints the compact URL-safe payload used as the d parameter of share links.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, argOrStdin(args))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(doc))
	return err
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// loadDocument reads a resume document and checks it has the fields a share link needs.
func loadDocument(cmd *cobra.Command, path string) (*types.Resume, error) {
	content, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate(schemafiles.ShareGate, content); err != nil {
		return nil, fmt.Errorf("%s is not a shareable resume: %w", path, err)
	}

	var doc types.Resume
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return &doc, nil
}
