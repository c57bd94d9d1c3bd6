// Package schemas embeds the JSON Schema documents used to gate and lint resume JSON.
package schemas

import "embed"

// Schema file names.
const (
	ShareGate  = "share_gate.schema.json"
	ImportGate = "import_gate.schema.json"
	Resume     = "resume.schema.json"
)

//go:embed *.schema.json
var FS embed.FS
