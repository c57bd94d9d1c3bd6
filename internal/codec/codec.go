package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-share/internal/schemas"
	"github.com/jonathan/resume-share/internal/types"
	schemafiles "github.com/jonathan/resume-share/schemas"
	"github.com/klauspost/compress/flate"
)

const (
	// MaxPayloadLength bounds the encoded string accepted by Decode.
	MaxPayloadLength = 512 << 10
	// MaxTextSize bounds the inflated JSON text accepted by Decode.
	MaxTextSize = 2 << 20
)

// payloadEncoding emits only A-Z a-z 0-9 - _, so payloads go into a query string verbatim.
var payloadEncoding = base64.RawURLEncoding

// Encode serializes the resume to canonical JSON, deflates it and returns it as an unpadded
// base64url string. Equal documents always produce equal strings. A nil resume encodes as an
// empty document. The caller's value is not modified.
func Encode(r *types.Resume) string {
	doc := r.Clone()
	if doc == nil {
		doc = &types.Resume{}
	}
	doc.Normalize()

	// A Resume holds only strings, slices and structs, so Marshal cannot fail.
	text, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("codec: marshal resume: %v", err))
	}
	return encodeText(text)
}

// Decode reverses Encode. It returns nil for any payload that cannot be inverted, does not
// parse, or is missing personalInfo or skills. It never panics.
func Decode(encoded string) *types.Resume {
	r, err := Parse(encoded)
	if err != nil {
		return nil
	}
	return r
}

// Parse is Decode with the failure cause reported as a *TransformError or *StructuralError.
func Parse(encoded string) (r *types.Resume, err error) {
	defer func() {
		if p := recover(); p != nil {
			r = nil
			err = &TransformError{Message: fmt.Sprintf("panic while decoding: %v", p)}
		}
	}()

	text, err := decodeText(encoded)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemafiles.ShareGate, text); err != nil {
		return nil, &StructuralError{Message: "payload is not a shareable resume", Cause: err}
	}

	var doc types.Resume
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, &StructuralError{Message: "payload does not match the resume model", Cause: err}
	}
	doc.Normalize()

	return &doc, nil
}

func encodeText(text []byte) string {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		panic(fmt.Sprintf("codec: flate writer: %v", err))
	}
	// Writes into a bytes.Buffer only fail on allocation failure.
	_, _ = w.Write(text)
	_ = w.Close()

	return payloadEncoding.EncodeToString(buf.Bytes())
}

func decodeText(encoded string) ([]byte, error) {
	encoded = strings.TrimRight(strings.TrimSpace(encoded), "=")
	if encoded == "" {
		return nil, &TransformError{Message: "payload is empty"}
	}
	if len(encoded) > MaxPayloadLength {
		return nil, &TransformError{Message: fmt.Sprintf("payload exceeds %d characters", MaxPayloadLength)}
	}

	compressed, err := payloadEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &TransformError{Message: "payload is not base64url", Cause: err}
	}

	rd := flate.NewReader(bytes.NewReader(compressed))
	defer func() { _ = rd.Close() }()

	text, err := io.ReadAll(io.LimitReader(rd, MaxTextSize+1))
	if err != nil {
		return nil, &TransformError{Message: "compressed stream is corrupted", Cause: err}
	}
	if len(text) > MaxTextSize {
		return nil, &TransformError{Message: fmt.Sprintf("decompressed payload exceeds %d bytes", MaxTextSize)}
	}
	if len(text) == 0 {
		return nil, &TransformError{Message: "payload decompressed to nothing"}
	}

	return text, nil
}
