// Package codec converts resume documents to and from compact URL-safe payload strings.
package codec

import "fmt"

// TransformError reports that a payload could not be inverted back into text: bad alphabet,
// truncated or corrupted compressed stream, or a size limit was hit.
type TransformError struct {
	Message string
	Cause   error
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transform error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transform error: %s", e.Message)
}

func (e *TransformError) Unwrap() error {
	return e.Cause
}

// StructuralError reports that the payload inverted to text, but the text is not a shareable
// resume document.
type StructuralError struct {
	Message string
	Cause   error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("structural error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("structural error: %s", e.Message)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}
