package symdiff

import (
	"strconv"
	"strings"
)

// Precedence classes used for parenthesization decisions. P2 rewrites '-'
// and '/' away, so the simplified tree holds '+', '*', '^', Int, Var and
// Func nodes, plus '/' nodes only where a rational coefficient was built
// (see printDiv); the printer reconstructs the subtraction and division
// surface forms cosmetically from the canonical '+'/'*' shape rather than
// the tree carrying them structurally.
const (
	precSum  = 1
	precProd = 2
	precPow  = 3
	precAtom = 4
)

// Print renders a simplified tree in infix form.
func (r *Round) Print(n *Node) string {
	text, _ := r.printExpr(n)
	return text
}

func (r *Round) printExpr(n *Node) (string, int) {
	switch n.Tok.Kind {
	case KindInt:
		return strconv.FormatInt(n.Tok.IntVal(), 10), precAtom
	case KindVar:
		return r.Vars.Name(n.Tok.VarID()), precAtom
	case KindFunc:
		return r.printFunc(n), precAtom
	case KindOp:
		switch n.Tok.Op() {
		case '+':
			return r.printAdd(n)
		case '*':
			return r.printMul(n)
		case '^':
			return r.printPow(n)
		case '/':
			return r.printDiv(n)
		}
	}
	return "?", precAtom
}

// printAdd renders an additive chain, printing each non-leading negative
// term as " - rest" instead of " + (-1)*rest" — a surface-form choice made
// here rather than as a tree rewrite, see simplify.go's finalize.
func (r *Round) printAdd(n *Node) (string, int) {
	terms := flattenAdd(n)
	var sb strings.Builder
	for i, t := range terms {
		text, neg := r.signOfTerm(t)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
			sb.WriteString(text)
		case i == 0:
			sb.WriteString(text)
		case neg:
			sb.WriteString(" - ")
			sb.WriteString(text)
		default:
			sb.WriteString(" + ")
			sb.WriteString(text)
		}
	}
	return sb.String(), precSum
}

// signOfTerm reports whether t is a negative term (a negative int literal,
// or a product with a leading -1 factor) and returns the text of its
// positive counterpart.
func (r *Round) signOfTerm(t *Node) (string, bool) {
	if t.IsInt() {
		v := t.Tok.IntVal()
		if v < 0 {
			return strconv.FormatInt(-v, 10), true
		}
		return strconv.FormatInt(v, 10), false
	}
	if t.IsOp('*') && t.L.IsIntVal(-1) {
		text, _ := r.printExpr(t.R)
		return text, true
	}
	text, _ := r.printExpr(t)
	return text, false
}

// printMul renders a multiplicative chain, splitting off any factor of the
// form base^(negative exponent) or exp(negative argument) into a
// denominator and printing "num/den" (the division surface form P2 folds
// into '*'/'^'), and printing a leading -1 factor as a bare "-" prefix.
func (r *Round) printMul(n *Node) (string, int) {
	factors := flattenMul(n)
	neg := false
	if len(factors) > 0 && factors[0].IsIntVal(-1) {
		neg = true
		factors = factors[1:]
	}

	var numFactors []*Node
	var denTexts []string
	for _, f := range factors {
		if f.IsOp('^') {
			if expText, ok := r.positiveExponentText(f.R); ok {
				if expText == "1" {
					denTexts = append(denTexts, r.formatPowAtom(f.L))
				} else {
					denTexts = append(denTexts, r.formatPowAtom(f.L)+"^"+expText)
				}
				continue
			}
		}
		if isUnaryFunc(f, FnExp) {
			if argText, ok := r.positiveExponentText(f.L); ok {
				denTexts = append(denTexts, "exp("+argText+")")
				continue
			}
		}
		numFactors = append(numFactors, f)
	}

	numText := r.joinMulFactors(numFactors)
	var result string
	switch {
	case len(denTexts) == 0:
		result = numText
	case len(denTexts) == 1:
		result = numText + "/" + denTexts[0]
	default:
		result = numText + "/(" + strings.Join(denTexts, "*") + ")"
	}
	if neg {
		return "-" + result, precSum
	}
	return result, precProd
}

// printDiv renders a bare '/' node (a rational coefficient built by
// ratToNode/attachCoeff, rather than a subtraction-style division P2 would
// have folded into '*'/'^' — those never reach the printer as '/').
func (r *Round) printDiv(n *Node) (string, int) {
	numText, numPrec := r.printExpr(n.L)
	if numPrec < precProd {
		numText = "(" + numText + ")"
	}
	denText, denPrec := r.printExpr(n.R)
	if denPrec <= precProd {
		denText = "(" + denText + ")"
	}
	return numText + "/" + denText, precProd
}

// joinMulFactors renders factor nodes with the "integer * non-integer"
// cosmetic omitting the '*' (so "2*x" prints as "2x").
func (r *Round) joinMulFactors(factors []*Node) string {
	if len(factors) == 0 {
		return "1"
	}
	var sb strings.Builder
	for i, f := range factors {
		text, prec := r.printExpr(f)
		if prec < precProd {
			text = "(" + text + ")"
		}
		if i > 0 {
			if factors[i-1].IsInt() && !f.IsInt() {
				// omit '*'
			} else {
				sb.WriteString("*")
			}
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// positiveExponentText recognizes a negated exponent/argument (a negative
// int literal, or a product with a leading -1 factor) and returns the text
// of its positive counterpart.
func (r *Round) positiveExponentText(exp *Node) (string, bool) {
	if exp.IsInt() {
		v := exp.Tok.IntVal()
		if v < 0 {
			return strconv.FormatInt(-v, 10), true
		}
		return "", false
	}
	if exp.IsOp('*') && exp.L.IsIntVal(-1) {
		text, prec := r.printExpr(exp.R)
		if prec <= precPow {
			text = "(" + text + ")"
		}
		return text, true
	}
	return "", false
}

// printPow renders a^b. The left child is always parenthesized unless it
// is already a bare atom, even when the parser's strict '>' precedence
// would otherwise let it print bare. A negated exponent renders as a
// division through printMul (x^(-1) prints as 1/x).
func (r *Round) printPow(n *Node) (string, int) {
	if _, ok := r.positiveExponentText(n.R); ok {
		return r.printMul(n)
	}
	base := r.formatPowAtom(n.L)
	expText, expPrec := r.printExpr(n.R)
	if expPrec <= precPow {
		expText = "(" + expText + ")"
	}
	return base + "^" + expText, precPow
}

func (r *Round) formatPowAtom(base *Node) string {
	text, prec := r.printExpr(base)
	if prec < precAtom {
		text = "(" + text + ")"
	}
	return text
}

func (r *Round) printFunc(n *Node) string {
	name := FuncTable[n.Tok.FuncID()].Name
	arg1, _ := r.printExpr(n.L)
	if n.R == nil {
		return name + "(" + arg1 + ")"
	}
	arg2, _ := r.printExpr(n.R)
	return name + "(" + arg1 + "," + arg2 + ")"
}
