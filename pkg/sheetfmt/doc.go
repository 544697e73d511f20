/*
Package sheetfmt expands spreadsheet-style format templates.

# Overview

A template is literal text with brace-delimited placeholders. Each
placeholder picks a positional argument and may name a value kind and a
kind-option. Arguments are scalars (one string) or arrays (a list of
strings), typically the cells of one exported spreadsheet row.

	result, _ := sheetfmt.Expand("Hello {0}", sheetfmt.Scalar("World"))
	// result: "Hello World"

# Placeholders

A placeholder has up to four ':'-separated fields, each trimmed:

	{position[:kind[:option]]}               scalar argument
	{position:index[:kind[:option]]}         array argument, one element

Kinds are string (alias enum), date, exceldate, decimal, number, percent,
currency and bool (alias boolean). Kind names are case-insensitive. The
string transforms lower, upper, capitalize, trim and reverse may be used as
kinds on their own:

	sheetfmt.Expand("{0:upper} {1:currency:EUR} {2:percent}",
	    sheetfmt.Scalar("total"), sheetfmt.Scalar("9.5"), sheetfmt.Scalar("0.15"))
	// "TOTAL €9.50 15%"

# Array Iteration

A placeholder whose interior holds further placeholders is a body that is
expanded once per element of the first array argument it names. Inside the
body, array placeholders drop their index field and take the current
element:

	args := sheetfmt.Args{sheetfmt.Array("a", "b", "c"), sheetfmt.Scalar("x")}
	sheetfmt.NewExpander().Expand("{[{0}-{1}]}", args)
	// "[a-x] [b-x] [c-x]"

Results are joined with the delimiter (a single space by default, see
WithDelimiter). Iterations that produce no text are skipped.

Inside an iteration body, a single group followed by a kind is a pipe:
the group is expanded at the current index and the kind applied to the
result. Outside an iteration the same text is an ordinary body, so
"{{0}:upper}" repeats ":upper" after each element.

	sheetfmt.Expand("{{{0}:upper}}", sheetfmt.Array("a", "b", "c"))
	// "A B C"

# Errors

Malformed templates and bad fields fail the whole call with no partial
output. Errors wrap the sentinels in this package and are usually a
*PlaceholderError naming the placeholder and its offset:

	_, err := sheetfmt.Expand("{0:bogus}", sheetfmt.Scalar("x"))
	errors.Is(err, sheetfmt.ErrInvalidKind) // true

Values that cannot be read as their kind (an unparseable date, a number
with no digits) are not errors; the placeholder renders as "". Positions
past the end of the arguments also render as "" unless WithStrictPositions
is set.

# Thread Safety

Expander is safe for concurrent use after construction. Package-level
functions use a shared default expander.
*/
package sheetfmt
