package symdiff

import "testing"

func TestPrintIntegerAndVariable(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	if got := r.Print(r.Int(7)); got != "7" {
		t.Errorf("want 7, got %s", got)
	}
	if got := r.Print(r.Var(x)); got != "x" {
		t.Errorf("want x, got %s", got)
	}
}

func TestPrintFunctionCalls(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	unary := r.UnaryFunc(FnSin, r.Var(x))
	if got := r.Print(unary); got != "sin(x)" {
		t.Errorf("want sin(x), got %s", got)
	}
	binary := r.BinFunc(FnPow, r.Var(x), r.Int(2))
	if got := r.Print(binary); got != "pow(x,2)" {
		t.Errorf("want pow(x,2), got %s", got)
	}
}

func TestPrintCosmeticIntegerTimesVariableOmitsStar(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	got := r.Print(r.BinOp('*', r.Int(2), r.Var(x)))
	if got != "2x" {
		t.Errorf("want 2x, got %s", got)
	}
}

func TestPrintLeadingNegativeOneFactor(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	got := r.Print(r.BinOp('*', r.Int(-1), r.Var(x)))
	if got != "-x" {
		t.Errorf("want -x, got %s", got)
	}
}

func TestPrintAdditiveChainReconstructsSubtraction(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	y := r.Vars.Intern("y")
	negY := r.BinOp('*', r.Int(-1), r.Var(y))
	got := r.Print(r.BinOp('+', r.Var(x), negY))
	if got != "x - y" {
		t.Errorf("want \"x - y\", got %s", got)
	}
}

func TestPrintNegativeExponentReconstructsDivision(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	y := r.Vars.Intern("y")
	pow := r.BinOp('^', r.Var(y), r.Int(-1))
	got := r.Print(r.BinOp('*', r.Var(x), pow))
	if got != "x/y" {
		t.Errorf("want x/y, got %s", got)
	}
}

func TestPrintNegativeExponentOtherThanOneKeepsExponent(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	y := r.Vars.Intern("y")
	pow := r.BinOp('^', r.Var(y), r.Int(-2))
	got := r.Print(r.BinOp('*', r.Var(x), pow))
	if got != "x/y^2" {
		t.Errorf("want x/y^2, got %s", got)
	}
}

func TestPrintPowLeftChildAlwaysParenthesizedUnlessAtom(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	sum := r.BinOp('+', r.Var(x), r.Int(1))
	got := r.Print(r.BinOp('^', sum, r.Int(2)))
	if got != "(x + 1)^2" {
		t.Errorf("want (x + 1)^2, got %s", got)
	}
}

func TestPrintPowAtomBaseNotParenthesized(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	got := r.Print(r.BinOp('^', r.Var(x), r.Int(2)))
	if got != "x^2" {
		t.Errorf("want x^2, got %s", got)
	}
}

func TestPrintBareDivNode(t *testing.T) {
	r := NewRound()
	got := r.Print(r.BinOp('/', r.Int(1), r.Int(2)))
	if got != "1/2" {
		t.Errorf("want 1/2, got %s", got)
	}
}

func TestPrintBareDivNodeWithSumDenominatorParenthesizes(t *testing.T) {
	r := NewRound()
	x := r.Vars.Intern("x")
	den := r.BinOp('+', r.Var(x), r.Int(1))
	got := r.Print(r.BinOp('/', r.Int(1), den))
	if got != "1/(x + 1)" {
		t.Errorf("want 1/(x + 1), got %s", got)
	}
}
