package symdiff

import "testing"

func simplifyPrint(t *testing.T, src string) (string, *Round) {
	t.Helper()
	r := NewRound()
	tree := mustParse(t, r, src)
	out := r.Simplify(tree)
	return r.Print(out), r
}

func TestSimplifyZeroIdentities(t *testing.T) {
	cases := map[string]string{
		"x+0": "x",
		"0+x": "x",
		"x-0": "x",
		"x*1": "x",
		"1*x": "x",
		"x*0": "0",
		"x/1": "x",
	}
	for src, want := range cases {
		got, _ := simplifyPrint(t, src)
		if got != want {
			t.Errorf("%s: want %s, got %s", src, want, got)
		}
	}
}

func TestSimplifyPowIdentities(t *testing.T) {
	cases := map[string]string{
		"x^0": "1",
		"x^1": "x",
		"0^x": "0",
		"1^x": "1",
	}
	for src, want := range cases {
		got, _ := simplifyPrint(t, src)
		if got != want {
			t.Errorf("%s: want %s, got %s", src, want, got)
		}
	}
}

func TestSimplifyNegativeSubtractionPrintsAsMinus(t *testing.T) {
	got, _ := simplifyPrint(t, "y-x")
	if got != "y - x" {
		t.Errorf("y-x: want \"y - x\", got %s", got)
	}
}

func TestSimplifyDivisionReconstructsFraction(t *testing.T) {
	got, _ := simplifyPrint(t, "x/y")
	if got != "x/y" {
		t.Errorf("x/y: want x/y, got %s", got)
	}
}

func TestSimplifyPythagoreanIdentity(t *testing.T) {
	got, _ := simplifyPrint(t, "sin(x)^2+cos(x)^2")
	if got != "1" {
		t.Errorf("sin(x)^2+cos(x)^2: want 1, got %s", got)
	}
}

func TestSimplifyHyperbolicIdentity(t *testing.T) {
	got, _ := simplifyPrint(t, "cosh(x)^2-sinh(x)^2")
	if got != "1" {
		t.Errorf("cosh(x)^2-sinh(x)^2: want 1, got %s", got)
	}
}

func TestSimplifyExpLnCancel(t *testing.T) {
	got, _ := simplifyPrint(t, "exp(ln(x))")
	if got != "x" {
		t.Errorf("exp(ln(x)): want x, got %s", got)
	}
}

func TestSimplifyLnOfExpCancel(t *testing.T) {
	got, _ := simplifyPrint(t, "ln(exp(x))")
	if got != "x" {
		t.Errorf("ln(exp(x)): want x, got %s", got)
	}
}

func TestSimplifyLikeTermCombining(t *testing.T) {
	got, _ := simplifyPrint(t, "x+x")
	if got != "2x" {
		t.Errorf("x+x: want 2x, got %s", got)
	}
}

func TestSimplifyCommonFactorExtraction(t *testing.T) {
	got, _ := simplifyPrint(t, "x*y+x*z")
	if got != "x*(z + y)" {
		t.Errorf("x*y+x*z: want x*(z + y), got %s", got)
	}
}

func TestSimplifyConstantFolding(t *testing.T) {
	got, _ := simplifyPrint(t, "2+3*4")
	if got != "14" {
		t.Errorf("2+3*4: want 14, got %s", got)
	}
}

func TestSimplifyDivisionByZeroSetsFlag(t *testing.T) {
	r := NewRound()
	tree := mustParse(t, r, "5/0")
	r.Simplify(tree)
	if !r.DividedByZero {
		t.Errorf("want DividedByZero set for 5/0")
	}
}

func TestSimplifyNegativeExponentDivisionByZero(t *testing.T) {
	r := NewRound()
	tree := mustParse(t, r, "0^(-1)")
	r.Simplify(tree)
	if !r.DividedByZero {
		t.Errorf("want DividedByZero set for 0^(-1)")
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	srcs := []string{"x*x+2*x*y+y*y", "sin(x)^2+cos(x)^2+x", "x/y+y/x"}
	for _, src := range srcs {
		r := NewRound()
		tree := mustParse(t, r, src)
		once := r.Print(r.Simplify(tree))

		r2 := NewRound()
		tree2 := mustParse(t, r2, once)
		twice := r2.Print(r2.Simplify(tree2))

		if once != twice {
			t.Errorf("%s: not idempotent: simplify once -> %q, simplify again -> %q", src, once, twice)
		}
	}
}
