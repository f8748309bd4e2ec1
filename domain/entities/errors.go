package entities

import (
	"errors"
	"fmt"
)

// ValidationError reports a request rejected before any extraction or synthesis
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given caller-facing message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ExtractionKind distinguishes the ways text extraction can fail
type ExtractionKind string

const (
	ExtractionDecode    ExtractionKind = "decode"
	ExtractionParse     ExtractionKind = "parse"
	ExtractionNoContent ExtractionKind = "no_content"
)

// NoContentMessage is reported when a document parses but holds no text
const NoContentMessage = "No text could be extracted"

// ExtractionError reports that a document could not be turned into text
type ExtractionError struct {
	Kind    ExtractionKind
	Format  DocumentFormat
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Kind == ExtractionNoContent {
		return NoContentMessage
	}
	return "Error extracting text: " + e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewDecodeError reports text bytes that match none of the accepted encodings
func NewDecodeError(format DocumentFormat, err error) *ExtractionError {
	return &ExtractionError{Kind: ExtractionDecode, Format: format, Message: errMessage(err), Err: err}
}

// NewParseError reports a failure raised by a format parser
func NewParseError(format DocumentFormat, err error) *ExtractionError {
	return &ExtractionError{Kind: ExtractionParse, Format: format, Message: errMessage(err), Err: err}
}

// NewNoContentError reports a structurally valid document without text
func NewNoContentError(format DocumentFormat) *ExtractionError {
	return &ExtractionError{Kind: ExtractionNoContent, Format: format, Message: NoContentMessage}
}

// SynthesisError reports that the speech backend produced no audio
type SynthesisError struct {
	Provider string
	Err      error
}

func (e *SynthesisError) Error() string {
	if e.Err == nil {
		return "Failed to convert text to speech"
	}
	return fmt.Sprintf("Failed to convert text to speech: %s", e.Err.Error())
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsExtraction reports whether err is an ExtractionError of any kind
func IsExtraction(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target)
}

// IsNoContent reports whether err is an ExtractionError of kind ExtractionNoContent
func IsNoContent(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target) && target.Kind == ExtractionNoContent
}

// IsSynthesis reports whether err is a SynthesisError
func IsSynthesis(err error) bool {
	var target *SynthesisError
	return errors.As(err, &target)
}

func errMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "unknown error"
	}
	return err.Error()
}
