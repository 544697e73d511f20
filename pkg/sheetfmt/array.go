package sheetfmt

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/scan"
)

// arrayLengths collects the lengths of the array arguments named by the
// placeholders in body, in body order, descending into nested bodies.
// Unless all is set it stops at the first array.
func (x *expansion) arrayLengths(body string, depth int, all bool) ([]int, error) {
	if depth > x.e.maxDepth {
		return nil, ErrNestingTooDeep
	}

	var lengths []int
	sc := scan.New(body)
	for sc.Next() {
		seg := sc.Segment()
		if !seg.Placeholder {
			continue
		}

		if strings.Contains(seg.Text, "{") {
			sub, err := x.arrayLengths(seg.Text, depth+1, all)
			if err != nil {
				return nil, err
			}
			lengths = append(lengths, sub...)
		} else {
			fields, err := splitFields(seg.Text)
			if err != nil {
				return nil, err
			}
			arg, err := x.resolve(fields[0])
			if err != nil {
				return nil, err
			}
			if arg.IsArray() {
				lengths = append(lengths, arg.Len())
			}
		}

		if !all && len(lengths) > 0 {
			return lengths[:1], nil
		}
	}
	return lengths, sc.Err()
}

// iterationCount returns the number of times body is expanded.
func (x *expansion) iterationCount(body string, depth int) (int, error) {
	lengths, err := x.arrayLengths(body, depth, x.e.strictArrayLengths)
	if err != nil {
		return 0, err
	}
	if len(lengths) == 0 {
		return 0, ErrNoArray
	}
	for _, n := range lengths[1:] {
		if n != lengths[0] {
			return 0, fmt.Errorf("%w: %v", ErrArrayLengthMismatch, lengths)
		}
	}
	return lengths[0], nil
}

// iterate expands body once per element of its first array argument and
// joins the non-empty results with the delimiter.
func (x *expansion) iterate(body string, base, depth int) (string, error) {
	count, err := x.iterationCount(body, depth+1)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 0; i < count; i++ {
		out, err := x.expand(body, base, &i, depth+1)
		if err != nil {
			return "", err
		}
		if out == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(x.e.delimiter)
		}
		b.WriteString(out)
	}
	return b.String(), nil
}
