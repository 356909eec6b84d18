package symdiff

import "testing"

func TestTokenEqual(t *testing.T) {
	if !VarTok(3).Equal(VarTok(3)) {
		t.Errorf("want Var(3) == Var(3)")
	}
	if VarTok(3).Equal(VarTok(4)) {
		t.Errorf("want Var(3) != Var(4)")
	}
	if IntTok(5).Equal(VarTok(5)) {
		t.Errorf("want Int(5) != Var(5): kind must match too")
	}
}

func TestLookupFunc(t *testing.T) {
	if id := LookupFunc("sin"); id != FnSin {
		t.Errorf("want FnSin, got %d", id)
	}
	if id := LookupFunc("notafunction"); id != -1 {
		t.Errorf("want -1 for unknown name, got %d", id)
	}
}

func TestFuncTableOrder(t *testing.T) {
	want := []string{"ln", "log", "cos", "sin", "tan", "pow", "exp", "sinh", "cosh"}
	for i, name := range want {
		if FuncTable[i].Name != name {
			t.Errorf("index %d: want %s, got %s", i, name, FuncTable[i].Name)
		}
	}
}

func TestHashCommutativeAdd(t *testing.T) {
	r := NewRound()
	a := r.Var(r.Vars.Intern("a"))
	b := r.Var(r.Vars.Intern("b"))
	ab := r.BinOp('+', a, b)
	ba := r.BinOp('+', r.Duplicate(b), r.Duplicate(a))
	if ab.Hash() != ba.Hash() {
		t.Errorf("want hash(a+b) == hash(b+a)")
	}
}

func TestHashCommutativeMul(t *testing.T) {
	r := NewRound()
	a := r.Var(r.Vars.Intern("a"))
	b := r.Var(r.Vars.Intern("b"))
	ab := r.BinOp('*', a, b)
	ba := r.BinOp('*', r.Duplicate(b), r.Duplicate(a))
	if ab.Hash() != ba.Hash() {
		t.Errorf("want hash(a*b) == hash(b*a)")
	}
}

func TestHashPositionSensitiveForMinusAndPow(t *testing.T) {
	r := NewRound()
	x := r.Var(r.Vars.Intern("x"))
	y := r.Var(r.Vars.Intern("y"))
	xy := r.BinOp('^', x, y)
	yx := r.BinOp('^', r.Duplicate(y), r.Duplicate(x))
	if xy.Hash() == yx.Hash() {
		t.Errorf("want hash(x^y) != hash(y^x)")
	}
	xMinusY := r.BinOp('-', r.Duplicate(x), r.Duplicate(y))
	yMinusX := r.BinOp('-', r.Duplicate(y), r.Duplicate(x))
	if xMinusY.Hash() == yMinusX.Hash() {
		t.Errorf("want hash(x-y) != hash(y-x)")
	}
}
