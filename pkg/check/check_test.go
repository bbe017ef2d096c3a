package check

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/parse"
)

var checkTests = []struct {
	name string
	code string
	want []*diag.Error
}{
	{
		name: "valid code",
		code: "x = 1\nif (x > 0) {\n  display(\"pos\")\n} else {\n  x += 1\n}\ninput(\"n: \", n)",
		want: nil,
	},
	{
		name: "unknown command",
		code: "foo",
		want: []*diag.Error{
			{Kind: diag.Syntax, Message: "Unknown command: foo", Line: 1,
				Ranging: diag.Ranging{From: 0, To: 3}},
		},
	},
	{
		name: "errors on several lines",
		code: "foo\nx = 1\n  y = \n",
		want: []*diag.Error{
			{Kind: diag.Syntax, Message: "Unknown command: foo", Line: 1,
				Ranging: diag.Ranging{From: 0, To: 3}},
			{Kind: diag.Syntax, Message: "Missing value in assignment to 'y'", Line: 3,
				Ranging: diag.Ranging{From: 12, To: 15}},
		},
	},
	{
		name: "error in if body",
		code: "if (x) {\n  display(\"a)\n}",
		want: []*diag.Error{
			{Kind: diag.Syntax, Message: "Missing closing parenthesis", Line: 2,
				Ranging: diag.Ranging{From: 11, To: 22}},
		},
	},
	{
		name: "unclosed block",
		code: "if (x) {\n  y = 1",
		want: []*diag.Error{
			{Kind: diag.Syntax, Message: "Unclosed if block at end of file", Line: 1,
				Ranging: diag.Ranging{From: 0, To: 8}},
		},
	},
	{
		name: "stray closing brace stops the check",
		code: "}\nfoo",
		want: []*diag.Error{
			{Kind: diag.Syntax, Message: "Unexpected '}' without an open block", Line: 1,
				Ranging: diag.Ranging{From: 0, To: 1}},
		},
	},
	{
		name: "const without value",
		code: "const x",
		want: []*diag.Error{
			{Kind: diag.Syntax, Message: "Constant declaration requires initialization", Line: 1,
				Ranging: diag.Ranging{From: 0, To: 7}},
		},
	},
	{
		name: "invalid input variable",
		code: `input("n: ", 1x)`,
		want: []*diag.Error{
			{Kind: diag.Syntax, Message: "Invalid variable name '1x'", Line: 1,
				Ranging: diag.Ranging{From: 0, To: 16}},
		},
	},
	{
		name: "unterminated string",
		code: `x = "abc`,
		want: []*diag.Error{
			{Kind: diag.Syntax, Message: "Missing closing quote in string", Line: 1,
				Ranging: diag.Ranging{From: 0, To: 8}},
		},
	},
	{
		name: "comments are skipped",
		code: "## block\nfoo\n##\nx = 1 # foo",
		want: nil,
	},
}

func TestCheck(t *testing.T) {
	for _, test := range checkTests {
		t.Run(test.name, func(t *testing.T) {
			got := Check(parse.SourceForTest(test.code), 0)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Check (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheck_TagsFile(t *testing.T) {
	src := parse.Source{Name: "a.nvq", Code: "foo", IsFile: true}
	errs := Check(src, 0)
	if len(errs) != 1 || errs[0].File != "a.nvq" {
		t.Errorf("got %v, want one error in a.nvq", errs)
	}
}

func TestCheck_MaxNesting(t *testing.T) {
	errs := Check(parse.SourceForTest("if (1) {\nif (1) {\n}\n}"), 1)
	want := []*diag.Error{
		{Kind: diag.Runtime, Message: "Maximum if-statement nesting depth (1) exceeded",
			Line: 2, Ranging: diag.Ranging{From: 9, To: 17}},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("Check (-want +got):\n%s", diff)
	}
}
