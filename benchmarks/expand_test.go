package benchmarks

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/scan"
)

// BenchmarkExpand_Literal measures a template without placeholders.
func BenchmarkExpand_Literal(b *testing.B) {
	exp := sheetfmt.NewExpander()
	for i := 0; i < b.N; i++ {
		_, _ = exp.Expand("no placeholders here at all", nil)
	}
}

// BenchmarkExpand_Scalars measures plain positional placeholders.
func BenchmarkExpand_Scalars(b *testing.B) {
	exp := sheetfmt.NewExpander()
	args := sheetfmt.Scalars("ana", "ben", "cy", "dee")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = exp.Expand("{0} {1} {2} {3}", args)
	}
}

// BenchmarkExpand_Kinds measures one placeholder of each numeric kind.
func BenchmarkExpand_Kinds(b *testing.B) {
	exp := sheetfmt.NewExpander()
	args := sheetfmt.Scalars("1234.5", "0.25", "44927", "12")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = exp.Expand("{0:currency} {1:percent} {2:exceldate:iso} {3:number:ordinal} {0:decimal:rounded}", args)
	}
}

// BenchmarkExpand_Array_10 iterates a 10-element array.
func BenchmarkExpand_Array_10(b *testing.B) {
	benchmarkArray(b, 10)
}

// BenchmarkExpand_Array_100 iterates a 100-element array.
func BenchmarkExpand_Array_100(b *testing.B) {
	benchmarkArray(b, 100)
}

// BenchmarkExpand_Array_1000 iterates a 1000-element array.
func BenchmarkExpand_Array_1000(b *testing.B) {
	benchmarkArray(b, 1000)
}

// BenchmarkExpand_Nested measures a piped iteration next to a two-array iteration.
func BenchmarkExpand_Nested(b *testing.B) {
	exp := sheetfmt.NewExpander()
	args := sheetfmt.Args{
		sheetfmt.Array(elements(20)...),
		sheetfmt.Array(elements(20)...),
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = exp.Expand("{{{0}:reverse}} {[{0}:{1:upper}]}", args)
	}
}

// BenchmarkExpandContext measures the context-aware entry point.
func BenchmarkExpandContext(b *testing.B) {
	exp := sheetfmt.NewExpander()
	ctx := context.Background()
	args := sheetfmt.Scalars("ana", "9.5")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = exp.ExpandContext(ctx, "{0:capitalize} owes {1:currency:EUR}", args)
	}
}

// BenchmarkExpand_Parallel measures a shared Expander under contention.
func BenchmarkExpand_Parallel(b *testing.B) {
	exp := sheetfmt.NewExpander()
	args := sheetfmt.Args{sheetfmt.Array(elements(10)...), sheetfmt.Scalar("x")}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = exp.Expand("{[{0}-{1}]}", args)
		}
	})
}

// BenchmarkValidate measures syntax validation of a long template.
func BenchmarkValidate(b *testing.B) {
	tmpl := strings.Repeat("text {0:upper} {{1}} ", 50)
	for i := 0; i < b.N; i++ {
		_ = scan.Validate(tmpl)
	}
}

// Helper functions

func benchmarkArray(b *testing.B, n int) {
	exp := sheetfmt.NewExpander()
	args := sheetfmt.Args{sheetfmt.Array(elements(n)...)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = exp.Expand("{{0:number:comma}}", args)
	}
}

func elements(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i * 1000)
	}
	return out
}
