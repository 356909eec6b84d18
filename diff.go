package symdiff

// Diff computes the partial derivative of n with respect to variable id x.
// It produces a new, unsimplified tree; every subtree of n that the
// derivative reuses unchanged is duplicated first so that no node ends up
// owned by both n and its derivative.
func (r *Round) Diff(n *Node, x int) *Node {
	if n == nil {
		return r.Int(0)
	}
	switch n.Tok.Kind {
	case KindInt:
		return r.Int(0)
	case KindVar:
		if n.Tok.VarID() == x {
			return r.Int(1)
		}
		return r.Int(0)
	case KindOp:
		return r.diffOp(n, x)
	case KindFunc:
		return r.diffFunc(n, x)
	}
	return r.Int(0)
}

func (r *Round) diffOp(n *Node, x int) *Node {
	switch n.Tok.Op() {
	case '+':
		return r.BinOp('+', r.Diff(n.L, x), r.Diff(n.R, x))
	case '-':
		return r.BinOp('-', r.Diff(n.L, x), r.Diff(n.R, x))
	case '*':
		dl := r.Diff(n.L, x)
		dr := r.Diff(n.R, x)
		return r.BinOp('+',
			r.BinOp('*', dl, r.Duplicate(n.R)),
			r.BinOp('*', r.Duplicate(n.L), dr))
	case '/':
		dl := r.Diff(n.L, x)
		dr := r.Diff(n.R, x)
		num := r.BinOp('-',
			r.BinOp('*', dl, r.Duplicate(n.R)),
			r.BinOp('*', r.Duplicate(n.L), dr))
		den := r.BinOp('^', r.Duplicate(n.R), r.Int(2))
		return r.BinOp('/', num, den)
	case '^':
		return r.diffPow(n.L, n.R, x)
	}
	return r.Int(0)
}

func (r *Round) diffFunc(n *Node, x int) *Node {
	switch n.Tok.FuncID() {
	case FnLn:
		f := n.L
		fp := r.Diff(f, x)
		return r.BinOp('/', fp, r.Duplicate(f))
	case FnLog:
		// log(b,f) := ln(f)/ln(b); differentiate the rewritten quotient.
		b, f := n.L, n.R
		quot := r.BinOp('/',
			r.UnaryFunc(FnLn, r.Duplicate(f)),
			r.UnaryFunc(FnLn, r.Duplicate(b)))
		return r.Diff(quot, x)
	case FnCos:
		f := n.L
		fp := r.Diff(f, x)
		neg := r.BinOp('-', r.Int(0), fp)
		return r.BinOp('*', neg, r.UnaryFunc(FnSin, r.Duplicate(f)))
	case FnSin:
		f := n.L
		fp := r.Diff(f, x)
		return r.BinOp('*', fp, r.UnaryFunc(FnCos, r.Duplicate(f)))
	case FnTan:
		f := n.L
		fp := r.Diff(f, x)
		den := r.BinOp('^', r.UnaryFunc(FnCos, r.Duplicate(f)), r.Int(2))
		return r.BinOp('/', fp, den)
	case FnPow:
		return r.diffPow(n.L, n.R, x)
	case FnExp:
		f := n.L
		fp := r.Diff(f, x)
		return r.BinOp('*', fp, r.UnaryFunc(FnExp, r.Duplicate(f)))
	case FnSinh:
		f := n.L
		fp := r.Diff(f, x)
		return r.BinOp('*', fp, r.UnaryFunc(FnCosh, r.Duplicate(f)))
	case FnCosh:
		f := n.L
		fp := r.Diff(f, x)
		return r.BinOp('*', fp, r.UnaryFunc(FnSinh, r.Duplicate(f)))
	}
	return r.Int(0)
}

// diffPow implements pow(f,g) and f^g alike by rewriting to exp(g*ln f) and
// recursing, which yields the general power rule for non-constant exponents
// without a separate dispatch table entry.
func (r *Round) diffPow(f, g *Node, x int) *Node {
	rewritten := r.UnaryFunc(FnExp, r.BinOp('*', r.Duplicate(g), r.UnaryFunc(FnLn, r.Duplicate(f))))
	return r.Diff(rewritten, x)
}
