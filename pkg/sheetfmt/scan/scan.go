// Package scan splits sheetfmt templates into literal and placeholder segments.
//
// The scanner tracks brace depth so a placeholder may carry nested
// placeholders verbatim; only the outermost pair of braces delimits a
// segment. There is no escape sequence for literal braces.
package scan

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for malformed templates.
var (
	// ErrUnclosedBraces indicates the template ended inside a placeholder.
	ErrUnclosedBraces = errors.New("unclosed braces")

	// ErrUnbalancedBraces indicates a '}' with no matching '{'.
	ErrUnbalancedBraces = errors.New("unbalanced braces")
)

// Segment is one unit of scanner output.
type Segment struct {
	// Placeholder is true when Text was enclosed in top-level braces.
	Placeholder bool

	// Text is the literal text, or the placeholder interior with any
	// nested braces preserved.
	Text string

	// Offset is the byte offset of the segment in the scanned template.
	// For placeholders it points at the opening brace.
	Offset int
}

// String returns the segment as it appeared in the template.
func (s Segment) String() string {
	if s.Placeholder {
		return "{" + s.Text + "}"
	}
	return s.Text
}

// SyntaxError reports where a template stopped being well formed.
type SyntaxError struct {
	// Offset is the byte offset of the offending brace.
	Offset int
	// Err is ErrUnclosedBraces or ErrUnbalancedBraces.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Scanner produces segments one at a time.
//
// Usage mirrors bufio.Scanner:
//
//	sc := scan.New("Hello {0}")
//	for sc.Next() {
//	    seg := sc.Segment()
//	    // ...
//	}
//	if err := sc.Err(); err != nil {
//	    // template is malformed
//	}
//
// An unclosed brace is only detected once the end of input is reached, so
// callers must check Err before trusting anything built from the segments.
type Scanner struct {
	src   string
	pos   int
	depth int
	open  int // offset of the brace that opened the current placeholder
	buf   strings.Builder
	start int
	seg   Segment
	err   error
	done  bool
}

// New returns a Scanner over template.
func New(template string) *Scanner {
	return &Scanner{src: template}
}

// Next advances to the next segment. It returns false at the end of input
// or on the first syntax error.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		at := s.pos
		s.pos++

		switch c {
		case '{':
			if s.depth > 0 {
				s.buf.WriteByte(c)
				s.depth++
				continue
			}
			s.depth = 1
			s.open = at
			if s.buf.Len() > 0 {
				s.emit(false, s.start)
				s.start = at
				return true
			}
			s.start = at

		case '}':
			if s.depth == 0 {
				return s.fail(ErrUnbalancedBraces, at)
			}
			s.depth--
			if s.depth > 0 {
				s.buf.WriteByte(c)
				continue
			}
			s.emit(true, s.open)
			s.start = s.pos
			return true

		default:
			s.buf.WriteByte(c)
		}
	}

	if s.depth != 0 {
		return s.fail(ErrUnclosedBraces, s.open)
	}

	s.done = true
	if s.buf.Len() > 0 {
		s.emit(false, s.start)
		return true
	}
	return false
}

// Segment returns the segment produced by the last successful call to Next.
func (s *Scanner) Segment() Segment {
	return s.seg
}

// Err returns the syntax error that stopped the scanner, if any.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) emit(placeholder bool, offset int) {
	s.seg = Segment{Placeholder: placeholder, Text: s.buf.String(), Offset: offset}
	s.buf.Reset()
}

func (s *Scanner) fail(err error, offset int) bool {
	s.err = &SyntaxError{Offset: offset, Err: err}
	s.done = true
	return false
}

// Segments scans the whole template eagerly.
// On a syntax error it returns nil and the error.
func Segments(template string) ([]Segment, error) {
	var segs []Segment
	sc := New(template)
	for sc.Next() {
		segs = append(segs, sc.Segment())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return segs, nil
}

// Validate reports whether template has balanced braces at every depth.
func Validate(template string) error {
	sc := New(template)
	for sc.Next() {
	}
	return sc.Err()
}
