package sheetfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// parsePosition parses a non-negative base-10 index. Indexes too large for
// an int are reported as math.MaxInt so they fall out of range.
func parsePosition(text string) (int, error) {
	if text == "" {
		return 0, ErrPositionUndefined
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrPositionNotNumber, text)
		}
	}
	n, err := strconv.Atoi(text)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrPositionNotNumber, text)
	}
	return n, nil
}

// resolve maps a position to an argument. The argument is returned as
// stored; arrays share their backing slice.
func (x *expansion) resolve(position string) (Arg, error) {
	i, err := parsePosition(position)
	if err != nil {
		return Arg{}, err
	}
	if i >= len(x.args) {
		if x.e.strictPositions {
			return Arg{}, fmt.Errorf("%w: %s of %d", ErrPositionOutOfRange, position, len(x.args))
		}
		return Scalar(""), nil
	}
	return x.args[i], nil
}

// element resolves an array index against an array argument.
func (x *expansion) element(arg Arg, position string) (string, error) {
	i, err := parsePosition(position)
	if err != nil {
		return "", err
	}
	if i >= arg.Len() {
		if x.e.strictPositions {
			return "", fmt.Errorf("%w: %s of %d", ErrPositionOutOfRange, position, arg.Len())
		}
		return "", nil
	}
	return arg.elems[i], nil
}
