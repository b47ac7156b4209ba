package ono_test

import (
	"strings"
	"testing"

	"ono"
	"ono/internal/diag"
)

func runOutput(t *testing.T, source string) string {
	t.Helper()
	var out strings.Builder
	if errs := ono.RunWithOutput(source, &out); len(errs) != 0 {
		t.Fatalf("program failed: %v", errs[0])
	}
	return out.String()
}

func runErrs(t *testing.T, source string) []*diag.Error {
	t.Helper()
	var out strings.Builder
	errs := ono.RunWithOutput(source, &out)
	if len(errs) == 0 {
		t.Fatal("expected errors, got none")
	}
	if out.Len() != 0 && errs[0].Phase != diag.Runtime {
		t.Fatalf("static error but program produced output %q", out.String())
	}
	return errs
}

func TestRunCleanProgram(t *testing.T) {
	source := `
let greeting: string = "hello";
let count = 0;
while count < 3 {
	print(greeting);
	count = count + 1;
}
`
	want := "hello\nhello\nhello\n"
	if got := runOutput(t, source); got != want {
		t.Errorf("output wrong. expected=%q, got=%q", want, got)
	}
}

func TestRunFunctions(t *testing.T) {
	source := `
fun f(a) {
	return a + 1;
}
print(f(f(2)));
`
	if got := runOutput(t, source); got != "4\n" {
		t.Errorf("output wrong. expected=%q, got=%q", "4\n", got)
	}
}

// A type error stops the pipeline before evaluation: nothing prints
// even though the bad expression follows a print.
func TestTypeErrorPreventsEvaluation(t *testing.T) {
	source := "print(1);\n\"a\" + 1;\n"
	errs := runErrs(t, source)

	if len(errs) != 1 {
		t.Fatalf("wrong error count. expected=1, got=%d", len(errs))
	}
	err := errs[0]
	if err.Code != diag.BinaryMismatch {
		t.Errorf("code wrong. expected=%s, got=%s", diag.BinaryMismatch, err.Code)
	}
	if err.Tok.Lexeme != "+" || err.Tok.Pos.Line != 1 || err.Tok.Pos.Column != 4 {
		t.Errorf("anchor wrong: %q at %s", err.Tok.Lexeme, err.Tok.Pos)
	}
}

func TestAssignMismatch(t *testing.T) {
	errs := runErrs(t, "let x = 1;\nx = \"s\";\n")

	err := errs[0]
	if err.Code != diag.DeclAssignMismatch {
		t.Fatalf("code wrong. expected=%s, got=%s", diag.DeclAssignMismatch, err.Code)
	}
	if err.Left != "number" || err.Right != "text" {
		t.Errorf("operands wrong: %q / %q", err.Left, err.Right)
	}
}

// Division by zero passes the checker and fails at evaluation.
func TestRuntimeErrorAfterCleanCheck(t *testing.T) {
	errs := runErrs(t, "1 / 0;\n")

	err := errs[0]
	if err.Phase != diag.Runtime || err.Code != diag.DivisionByZero {
		t.Fatalf("wrong error: %v", err)
	}
	if err.Tok.Lexeme != "/" {
		t.Errorf("anchor wrong: %q", err.Tok.Lexeme)
	}
}

func TestLexErrorStopsPipeline(t *testing.T) {
	errs := runErrs(t, "let s = \"abc")

	err := errs[0]
	if err.Phase != diag.Syntax || err.Code != diag.UntermString {
		t.Fatalf("wrong error: %v", err)
	}
	if err.Tok.Pos.Column != 8 {
		t.Errorf("anchor column wrong. expected=8, got=%d", err.Tok.Pos.Column)
	}
}

func TestParserRecoversAcrossStatements(t *testing.T) {
	errs := runErrs(t, "let = 1;\nlet a: = 2;\nlet b = 3;\n")

	wantCodes := []diag.Code{diag.ExpectedIdent, diag.ExpectedType}
	if len(errs) != len(wantCodes) {
		t.Fatalf("wrong error count. expected=%d, got=%d", len(wantCodes), len(errs))
	}
	for i, want := range wantCodes {
		if errs[i].Code != want {
			t.Errorf("errs[%d] code wrong. expected=%s, got=%s", i, want, errs[i].Code)
		}
	}
}

func TestAnnotate(t *testing.T) {
	source := "let x = 1;\nx = \"s\";\n"
	errs := runErrs(t, source)

	ono.Annotate(errs, "demo.ono", source)
	want := "type error: cannot assign text to number\n" +
		"-> demo.ono 2:1\n" +
		"2 | x = \"s\";\n" +
		"    ^"
	if got := errs[0].Error(); got != want {
		t.Errorf("rendering wrong.\nexpected:\n%s\ngot:\n%s", want, got)
	}
}

func TestAnnotateWithoutFilename(t *testing.T) {
	source := "1 / 0;\n"
	errs := runErrs(t, source)

	ono.Annotate(errs, "", source)
	want := "runtime error: division by zero here\n" +
		"1 | 1 / 0;\n" +
		"      ^"
	if got := errs[0].Error(); got != want {
		t.Errorf("rendering wrong.\nexpected:\n%s\ngot:\n%s", want, got)
	}
}
