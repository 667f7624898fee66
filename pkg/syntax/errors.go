package syntax

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError via errors.Is.
var ErrParse = errors.New("parse error")

// ErrUnsupportedMediaType is returned when no grammar exists for a media type.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ParseError describes source text that could not be parsed.
type ParseError struct {
	Filename string
	Message  string
	Range    Range
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Range.Start.Line, e.Range.Start.Column, e.Message)
}

// Is makes errors.Is(err, ErrParse) succeed for parse errors.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
