package sheetfmt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Arg is one positional argument: a scalar string or an array of strings.
// The zero value is the empty scalar.
type Arg struct {
	scalar string
	elems  []string
	array  bool
}

// Args is the ordered argument list of one expansion.
type Args []Arg

// Scalar returns a scalar argument.
func Scalar(s string) Arg {
	return Arg{scalar: s}
}

// Array returns an array argument. The slice is not copied.
func Array(elems ...string) Arg {
	if elems == nil {
		elems = []string{}
	}
	return Arg{elems: elems, array: true}
}

// Scalars returns an argument list of scalars.
func Scalars(ss ...string) Args {
	args := make(Args, len(ss))
	for i, s := range ss {
		args[i] = Scalar(s)
	}
	return args
}

// IsArray reports whether a is an array argument.
func (a Arg) IsArray() bool {
	return a.array
}

// Value returns the scalar text. It is "" for arrays.
func (a Arg) Value() string {
	return a.scalar
}

// Elements returns the array elements. It is nil for scalars.
func (a Arg) Elements() []string {
	return a.elems
}

// Len returns the number of array elements, or 0 for a scalar.
func (a Arg) Len() int {
	return len(a.elems)
}

// String renders the argument for diagnostics.
func (a Arg) String() string {
	if a.array {
		return "[" + strings.Join(a.elems, ", ") + "]"
	}
	return a.scalar
}

// ArgsOf converts decoded values into arguments.
//
// Strings, numbers, booleans, nil, time.Time, json.Number and fmt.Stringer
// become scalars. []string and []any become arrays whose elements must
// themselves be scalar values. An Arg is used as is.
func ArgsOf(values ...any) (Args, error) {
	args := make(Args, len(values))
	for i, v := range values {
		arg, err := argOf(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = arg
	}
	return args, nil
}

func argOf(v any) (Arg, error) {
	switch val := v.(type) {
	case Arg:
		return val, nil
	case []string:
		return Array(val...), nil
	case []any:
		elems := make([]string, len(val))
		for i, e := range val {
			s, err := scalarText(e)
			if err != nil {
				return Arg{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = s
		}
		return Array(elems...), nil
	default:
		s, err := scalarText(v)
		if err != nil {
			return Arg{}, err
		}
		return Scalar(s), nil
	}
}

// scalarText renders a decoded scalar the way a spreadsheet export would.
func scalarText(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case json.Number:
		return val.String(), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedArg, v)
	}
}
