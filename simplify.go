package symdiff

// Simplify is the fixed-point driver: it repeatedly runs the ordered pass
// sequence P1..P6 over the whole tree and stops the first time the root's
// structural hash repeats, using a seen-hash set rather than a per-pass
// monotonicity proof (the set tolerates passes that locally grow the tree,
// like P2 turning '-' into '+(-1)*'). A hard iteration cap guards against a
// pass sequence that never revisits a hash due to a bug.
func (r *Round) Simplify(root *Node) *Node {
	seen := map[uint64]bool{}
	for i := 0; i < 500; i++ {
		root = r.simplifyP1(root)
		root = r.negCanon(root)
		root = r.leadingNegPass(root)
		root = r.specialFuncPass(root)
		root = r.polyPassRecursive(root)
		root = r.foldConstants(root)

		h := root.Hash()
		if seen[h] {
			break
		}
		seen[h] = true
	}
	return r.finalize(root)
}

// --- P1: 0/1 identities, pow/log normalization, nested-power collapse ---

func (r *Round) simplifyP1(n *Node) *Node {
	if n == nil {
		return nil
	}
	n.L = r.simplifyP1(n.L)
	n.R = r.simplifyP1(n.R)
	return r.p1Node(n)
}

func (r *Round) p1Node(n *Node) *Node {
	switch n.Tok.Kind {
	case KindFunc:
		switch n.Tok.FuncID() {
		case FnPow:
			f, g := n.L, n.R
			r.releaseNode(n)
			return r.BinOp('^', f, g)
		case FnLog:
			b, f := n.L, n.R
			r.releaseNode(n)
			return r.BinOp('/', r.UnaryFunc(FnLn, f), r.UnaryFunc(FnLn, b))
		case FnLn:
			if n.L.IsIntVal(1) {
				r.ReleaseTree(n)
				return r.Int(0)
			}
		case FnExp, FnCos, FnCosh:
			if n.L.IsIntVal(0) {
				r.ReleaseTree(n)
				return r.Int(1)
			}
		case FnSin, FnTan, FnSinh:
			if n.L.IsIntVal(0) {
				r.ReleaseTree(n)
				return r.Int(0)
			}
		}
		return n
	case KindOp:
		switch n.Tok.Op() {
		case '+':
			if n.R.IsIntVal(0) {
				return r.keepChild(n, n.L, n.R)
			}
			if n.L.IsIntVal(0) {
				return r.keepChild(n, n.R, n.L)
			}
		case '-':
			if n.R.IsIntVal(0) {
				return r.keepChild(n, n.L, n.R)
			}
			if n.L.IsIntVal(0) {
				rhs := n.R
				r.ReleaseTree(n.L)
				r.releaseNode(n)
				return r.BinOp('*', r.Int(-1), rhs)
			}
		case '*':
			if n.L.IsIntVal(0) {
				r.ReleaseTree(n.R)
				return r.keepChild(n, n.L, nil)
			}
			if n.R.IsIntVal(0) {
				r.ReleaseTree(n.L)
				return r.keepChild(n, n.R, nil)
			}
			if n.L.IsIntVal(1) {
				return r.keepChild(n, n.R, n.L)
			}
			if n.R.IsIntVal(1) {
				return r.keepChild(n, n.L, n.R)
			}
		case '/':
			if n.R.IsIntVal(1) {
				return r.keepChild(n, n.L, n.R)
			}
			if n.L.IsIntVal(0) && !n.R.IsIntVal(0) {
				r.ReleaseTree(n.R)
				return r.keepChild(n, n.L, nil)
			}
		case '^':
			if n.L.IsOp('^') {
				x, a, b := n.L.L, n.L.R, n.R
				inner := n.L
				r.releaseNode(inner)
				r.releaseNode(n)
				return r.BinOp('^', x, r.BinOp('*', a, b))
			}
			if n.R.IsIntVal(0) {
				r.ReleaseTree(n)
				return r.Int(1)
			}
			// 0^x -> 0, except for a negative constant exponent, which P6
			// reports as a division by zero.
			if n.L.IsIntVal(0) && !(n.R.IsArithConst() && r.foldToRational(n.R).IsNegative()) {
				r.ReleaseTree(n)
				return r.Int(0)
			}
			if n.L.IsIntVal(1) {
				r.ReleaseTree(n)
				return r.Int(1)
			}
			if n.R.IsIntVal(1) {
				return r.keepChild(n, n.L, n.R)
			}
		}
	}
	return n
}

// keepChild discards other (if non-nil) and n itself, returning keep.
func (r *Round) keepChild(n *Node, keep, other *Node) *Node {
	if other != nil {
		r.ReleaseTree(other)
	}
	r.releaseNode(n)
	return keep
}

// --- P2: negative canonicalization ---

func (r *Round) negCanon(n *Node) *Node {
	if n == nil {
		return nil
	}
	n.L = r.negCanon(n.L)
	n.R = r.negCanon(n.R)

	if n.IsOp('-') {
		a, b := n.L, n.R
		r.releaseNode(n)
		return r.BinOp('+', a, r.negateFactor(b))
	}
	if n.IsOp('/') {
		a, b := n.L, n.R
		r.releaseNode(n)
		return r.BinOp('*', a, r.invertFactor(b))
	}
	if n.IsOp('*') {
		if n.L.IsInt() && n.R.IsOp('+') {
			c, sum := n.L, n.R
			l, rr := sum.L, sum.R
			r.releaseNode(sum)
			r.releaseNode(n)
			return r.BinOp('+', r.BinOp('*', c, l), r.BinOp('*', r.Duplicate(c), rr))
		}
		if n.R.IsInt() && n.L.IsOp('+') {
			c, sum := n.R, n.L
			l, rr := sum.L, sum.R
			r.releaseNode(sum)
			r.releaseNode(n)
			return r.BinOp('+', r.BinOp('*', c, l), r.BinOp('*', r.Duplicate(c), rr))
		}
	}
	if n.Tok.Kind == KindFunc {
		return r.signPullFunc(n)
	}
	return n
}

// negateFactor builds -b, absorbing the sign into b's left operand when that
// operand is an integer literal instead of stacking a new -1. An integer
// deeper in a left-nested chain is not found; P3 then consolidates the -1.
func (r *Round) negateFactor(b *Node) *Node {
	if b.IsOp('*') && b.L.IsInt() {
		v := -b.L.Tok.IntVal()
		rest := b.R
		r.releaseNode(b.L)
		r.releaseNode(b)
		if v == 1 {
			return rest
		}
		return r.BinOp('*', r.Int(v), rest)
	}
	return r.BinOp('*', r.Int(-1), b)
}

// invertFactor builds 1/b, absorbing the inversion into a power exponent or
// exp's argument rather than wrapping with a bare ^(-1).
func (r *Round) invertFactor(b *Node) *Node {
	if b.IsOp('^') {
		base, exp := b.L, b.R
		r.releaseNode(b)
		return r.BinOp('^', base, r.negateFactor(exp))
	}
	if b.Tok.Kind == KindFunc && b.Tok.FuncID() == FnExp {
		arg := b.L
		r.releaseNode(b)
		return r.UnaryFunc(FnExp, r.negateFactor(arg))
	}
	return r.BinOp('^', b, r.Int(-1))
}

// signPullFunc pulls a leading -1 factor out of sin/tan/sinh's argument
// (odd functions) or silently absorbs it for cos/cosh (even functions).
func (r *Round) signPullFunc(n *Node) *Node {
	arg := n.L
	if arg == nil || !(arg.IsOp('*') && arg.L.IsIntVal(-1)) {
		return n
	}
	switch n.Tok.FuncID() {
	case FnSin, FnTan, FnSinh:
		rest := arg.R
		r.releaseNode(arg.L)
		r.releaseNode(arg)
		inner := r.UnaryFunc(n.Tok.FuncID(), rest)
		r.releaseNode(n)
		return r.BinOp('*', r.Int(-1), inner)
	case FnCos, FnCosh:
		rest := arg.R
		r.releaseNode(arg.L)
		r.releaseNode(arg)
		n.L = rest
		return n
	}
	return n
}

// --- P3: leading-negative consolidation ---

func (r *Round) leadingNegPass(n *Node) *Node {
	if n == nil {
		return nil
	}
	n.L = r.leadingNegPass(n.L)
	n.R = r.leadingNegPass(n.R)
	if !n.IsOp('*') {
		return n
	}
	factors := flattenMul(n)
	count := 0
	var rest []*Node
	for _, f := range factors {
		if f.IsIntVal(-1) {
			count++
		} else {
			rest = append(rest, f)
		}
	}
	if count == 0 {
		return n
	}
	if count%2 == 1 {
		rest = append([]*Node{r.Int(-1)}, rest...)
	}
	if len(rest) == 0 {
		return r.Int(1)
	}
	return buildMulList(r, rest)
}

// --- P4: special-function identities ---

func (r *Round) specialFuncPass(n *Node) *Node {
	if n == nil {
		return nil
	}
	n.L = r.specialFuncPass(n.L)
	n.R = r.specialFuncPass(n.R)
	switch n.Tok.Kind {
	case KindFunc:
		return r.specialFuncNode(n)
	case KindOp:
		switch n.Tok.Op() {
		case '+':
			return r.pythagoreanPass(n)
		case '*':
			return r.tanIdentityPass(n)
		}
	}
	return n
}

func (r *Round) specialFuncNode(n *Node) *Node {
	switch n.Tok.FuncID() {
	case FnExp:
		factors := flattenMul(n.L)
		for i, f := range factors {
			if f.Tok.Kind == KindFunc && f.Tok.FuncID() == FnLn {
				base := f.L
				rest := removeIndices(factors, i)
				if len(rest) == 0 {
					return base
				}
				return r.BinOp('^', base, buildMulList(r, rest))
			}
		}
		return n
	case FnLn:
		if n.L.Tok.Kind == KindFunc && n.L.Tok.FuncID() == FnExp {
			return n.L.L
		}
		if n.L.IsOp('^') {
			a, b := n.L.L, n.L.R
			return r.BinOp('*', b, r.UnaryFunc(FnLn, a))
		}
		factors := flattenMul(n.L)
		for i, f := range factors {
			if f.Tok.Kind == KindFunc && f.Tok.FuncID() == FnExp {
				inner := f.L
				rest := removeIndices(factors, i)
				if len(rest) == 0 {
					return inner
				}
				return r.BinOp('+', inner, r.UnaryFunc(FnLn, buildMulList(r, rest)))
			}
		}
		return n
	}
	return n
}

func (r *Round) tanIdentityPass(n *Node) *Node {
	factors := flattenMul(n)
	for i := range factors {
		for j := range factors {
			if i == j {
				continue
			}
			a, b := factors[i], factors[j]
			if isUnaryFunc(a, FnSin) && b.IsOp('^') && b.R.IsIntVal(-1) && isUnaryFunc(b.L, FnCos) && SameTree(a.L, b.L.L) {
				tan := r.UnaryFunc(FnTan, a.L)
				rest := append(removeIndices(factors, i, j), tan)
				return buildMulList(r, rest)
			}
			if isUnaryFunc(a, FnCos) && b.IsOp('^') && b.R.IsIntVal(-1) && isUnaryFunc(b.L, FnSin) && SameTree(a.L, b.L.L) {
				inv := r.BinOp('^', r.UnaryFunc(FnTan, a.L), r.Int(-1))
				rest := append(removeIndices(factors, i, j), inv)
				return buildMulList(r, rest)
			}
		}
	}
	return n
}

func isUnaryFunc(n *Node, id int) bool {
	return n != nil && n.Tok.Kind == KindFunc && n.Tok.FuncID() == id
}

// classifyTrigSquare recognizes func(arg)^2, optionally with a leading -1
// factor (sign -1), used by the Pythagorean/hyperbolic identity matcher.
func classifyTrigSquare(t *Node) (fn int, arg *Node, sign int, ok bool) {
	sign = 1
	tt := t
	if tt.IsOp('*') && tt.L.IsIntVal(-1) {
		sign = -1
		tt = tt.R
	}
	if tt.IsOp('^') && tt.R.IsIntVal(2) && tt.L.Tok.Kind == KindFunc {
		fid := tt.L.Tok.FuncID()
		switch fid {
		case FnSin, FnCos, FnTan, FnSinh, FnCosh:
			return fid, tt.L.L, sign, true
		}
	}
	return 0, nil, 0, false
}

func classifyOne(t *Node) (sign int, ok bool) {
	if t.IsIntVal(1) {
		return 1, true
	}
	if t.IsOp('*') && t.L.IsIntVal(-1) && t.R.IsIntVal(1) {
		return -1, true
	}
	return 0, false
}

// pairIdentity recognizes the Pythagorean/hyperbolic identity rewrites for
// one unordered pair of additive terms.
func (r *Round) pairIdentity(a, b *Node) (*Node, bool) {
	fa, argA, signA, okA := classifyTrigSquare(a)
	fb, argB, signB, okB := classifyTrigSquare(b)
	if okA && okB && SameTree(argA, argB) {
		if (fa == FnSin && fb == FnCos && signA == 1 && signB == 1) ||
			(fa == FnCos && fb == FnSin && signA == 1 && signB == 1) {
			return r.Int(1), true
		}
		if (fa == FnCosh && fb == FnSinh && signA == 1 && signB == -1) ||
			(fa == FnSinh && fb == FnCosh && signA == -1 && signB == 1) {
			return r.Int(1), true
		}
	}
	if signOneA, okOneA := classifyOne(a); okOneA && okB {
		switch {
		case fb == FnSin && signOneA == 1 && signB == -1:
			return r.BinOp('^', r.UnaryFunc(FnCos, argB), r.Int(2)), true
		case fb == FnCos && signOneA == 1 && signB == -1:
			return r.BinOp('^', r.UnaryFunc(FnSin, argB), r.Int(2)), true
		case fb == FnSinh && signOneA == 1 && signB == 1:
			return r.BinOp('^', r.UnaryFunc(FnCosh, argB), r.Int(2)), true
		case fb == FnCosh && signOneA == -1 && signB == 1:
			return r.BinOp('^', r.UnaryFunc(FnSinh, argB), r.Int(2)), true
		}
	}
	if signOneB, okOneB := classifyOne(b); okOneB && okA {
		switch {
		case fa == FnSin && signOneB == 1 && signA == -1:
			return r.BinOp('^', r.UnaryFunc(FnCos, argA), r.Int(2)), true
		case fa == FnCos && signOneB == 1 && signA == -1:
			return r.BinOp('^', r.UnaryFunc(FnSin, argA), r.Int(2)), true
		case fa == FnSinh && signOneB == 1 && signA == 1:
			return r.BinOp('^', r.UnaryFunc(FnCosh, argA), r.Int(2)), true
		case fa == FnCosh && signOneB == -1 && signA == 1:
			return r.BinOp('^', r.UnaryFunc(FnSinh, argA), r.Int(2)), true
		}
	}
	return nil, false
}

func (r *Round) pythagoreanPass(n *Node) *Node {
	terms := flattenAdd(n)
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			if repl, ok := r.pairIdentity(terms[i], terms[j]); ok {
				rest := append(removeIndices(terms, i, j), repl)
				return buildAddList(r, rest)
			}
		}
	}
	return n
}

// --- P5: polynomial pass ---

// monomialSimplify is Stage I: opens (y*z)^x -> y^x*z^x and merges equal
// bases in a multiplicative chain (f^a*f^b -> f^(a+b), f*f -> f^2).
func (r *Round) monomialSimplify(t *Node) *Node {
	factors := flattenMul(t)
	var expanded []*Node
	for _, f := range factors {
		if f.IsOp('^') && f.L.IsOp('*') {
			y, z, x := f.L.L, f.L.R, f.R
			expanded = append(expanded, r.BinOp('^', y, r.Duplicate(x)))
			expanded = append(expanded, r.BinOp('^', z, x))
		} else {
			expanded = append(expanded, f)
		}
	}

	type group struct {
		base *Node
		exp  *Node
	}
	var groups []group
	index := map[uint64]int{}
	for _, f := range expanded {
		var base, exp *Node
		if f.IsOp('^') {
			base, exp = f.L, f.R
		} else {
			base = f
		}
		h := base.Hash()
		if gi, ok := index[h]; ok {
			g := &groups[gi]
			e1, e2 := g.exp, exp
			if e1 == nil {
				e1 = r.Int(1)
			}
			if e2 == nil {
				e2 = r.Int(1)
			}
			g.exp = r.BinOp('+', e1, e2)
		} else {
			index[h] = len(groups)
			groups = append(groups, group{base: base, exp: exp})
		}
	}

	var rebuilt []*Node
	for _, g := range groups {
		if g.exp == nil {
			rebuilt = append(rebuilt, g.base)
			continue
		}
		exp := r.foldConstants(g.exp)
		node := r.p1Node(r.BinOp('^', g.base, exp))
		rebuilt = append(rebuilt, node)
	}
	if len(rebuilt) == 0 {
		return r.Int(1)
	}
	return buildMulList(r, rebuilt)
}

// extractCoefficient is Stage II: walks the multiplicative chain pulling
// every integer/constant factor into a running rational coefficient.
func (r *Round) extractCoefficient(t *Node) (*Node, Rational) {
	factors := flattenMul(t)
	coeff := RatOne
	var bodyFactors []*Node
	for _, f := range factors {
		if f.IsInt() {
			coeff = r.RatMul(coeff, NewRationalInt(f.Tok.IntVal()))
			continue
		}
		if f.IsArithConst() {
			coeff = r.RatMul(coeff, r.foldToRational(f))
			continue
		}
		bodyFactors = append(bodyFactors, f)
	}
	if len(bodyFactors) == 0 {
		return r.Int(1), coeff
	}
	return buildMulList(r, bodyFactors), coeff
}

func (r *Round) foldToRational(n *Node) Rational {
	if n.Tok.Kind == KindInt {
		return NewRationalInt(n.Tok.IntVal())
	}
	l := r.foldToRational(n.L)
	switch n.Tok.Op() {
	case '+':
		return r.RatAdd(l, r.foldToRational(n.R))
	case '-':
		return r.RatSub(l, r.foldToRational(n.R))
	case '*':
		return r.RatMul(l, r.foldToRational(n.R))
	case '/':
		return r.RatDiv(l, r.foldToRational(n.R))
	case '^':
		return r.ratPow(l, r.foldToRational(n.R))
	}
	return RatZero
}

func (r *Round) ratPow(base, exp Rational) Rational {
	if !exp.IsInteger() {
		return base
	}
	n := exp.Num
	neg := n < 0
	if neg {
		n = -n
	}
	result := RatOne
	for i := int64(0); i < n; i++ {
		result = r.RatMul(result, base)
	}
	if neg {
		if result.IsZero() {
			r.DividedByZero = true
			return RatZero
		}
		result = r.RatDiv(RatOne, result)
	}
	return result
}

func (r *Round) ratToNode(c Rational) *Node {
	if c.Den == 1 {
		return r.Int(c.Num)
	}
	return r.BinOp('/', r.Int(c.Num), r.Int(c.Den))
}

func (r *Round) attachCoeff(c Rational, body *Node) *Node {
	if c.IsZero() {
		return r.Int(0)
	}
	if c.IsOne() {
		return body
	}
	return r.BinOp('*', r.ratToNode(c), body)
}

// commonFactor is Stage IV's factor-set intersection: the hash-matched
// factors shared between two monomial bodies, plus each side's residual.
func (r *Round) commonFactor(a, b *Node) (shared, residA, residB *Node, ok bool) {
	factorsA := flattenMul(a)
	factorsB := flattenMul(b)
	usedB := make([]bool, len(factorsB))
	var sharedFactors, residAList []*Node
	for _, fa := range factorsA {
		h := fa.Hash()
		matched := false
		for bi, fb := range factorsB {
			if usedB[bi] || fb.Hash() != h {
				continue
			}
			usedB[bi] = true
			matched = true
			sharedFactors = append(sharedFactors, fa)
			break
		}
		if !matched {
			residAList = append(residAList, fa)
		}
	}
	if len(sharedFactors) == 0 {
		return nil, nil, nil, false
	}
	var residBList []*Node
	for bi, fb := range factorsB {
		if !usedB[bi] {
			residBList = append(residBList, fb)
		}
	}
	return buildMulList(r, sharedFactors), buildMulList(r, residAList), buildMulList(r, residBList), true
}

// polynomialPass implements the five polynomial-simplification stages over
// one additive chain. Stage IV is intentionally order-dependent (i paired
// with every j<i, mutating slot i before the next i is processed) — this is
// preserved rather than canonicalized.
func (r *Round) polynomialPass(n *Node) *Node {
	terms := flattenAdd(n)
	for i := range terms {
		terms[i] = r.monomialSimplify(terms[i])
	}

	type entry struct {
		body  *Node
		coeff Rational
	}
	entries := make([]entry, len(terms))
	for i, t := range terms {
		body, coeff := r.extractCoefficient(t)
		entries[i] = entry{body, coeff}
	}

	alive := make([]bool, len(entries))
	for i := range alive {
		alive[i] = true
	}
	seenHash := map[uint64]int{}
	for i, e := range entries {
		h := e.body.Hash()
		if j, ok := seenHash[h]; ok {
			entries[j].coeff = r.RatAdd(entries[j].coeff, e.coeff)
			alive[i] = false
		} else {
			seenHash[h] = i
		}
	}

	var idxs []int
	for i := range entries {
		if alive[i] {
			idxs = append(idxs, i)
		}
	}
	for ii := 0; ii < len(idxs); ii++ {
		i := idxs[ii]
		if !alive[i] {
			continue
		}
		for jj := 0; jj < ii; jj++ {
			j := idxs[jj]
			if !alive[j] {
				continue
			}
			shared, residI, residJ, ok := r.commonFactor(entries[i].body, entries[j].body)
			if !ok {
				continue
			}
			sumInner := r.BinOp('+',
				r.BinOp('*', r.ratToNode(entries[i].coeff), residI),
				r.BinOp('*', r.ratToNode(entries[j].coeff), residJ))
			entries[i].body = r.monomialSimplify(r.BinOp('*', shared, sumInner))
			entries[i].coeff = RatOne
			alive[j] = false
		}
	}

	var rebuilt []*Node
	for i, e := range entries {
		if !alive[i] || e.coeff.IsZero() {
			continue
		}
		rebuilt = append(rebuilt, r.monomialSimplify(r.attachCoeff(e.coeff, e.body)))
	}
	if len(rebuilt) == 0 {
		return r.Int(0)
	}
	return buildAddList(r, rebuilt)
}

func (r *Round) polyPassRecursive(n *Node) *Node {
	if n == nil {
		return nil
	}
	n.L = r.polyPassRecursive(n.L)
	n.R = r.polyPassRecursive(n.R)
	if n.IsOp('+') {
		return r.polynomialPass(n)
	}
	// A product outside any sum is a one-term polynomial: Stage I still
	// applies. Pure-constant products are left to P6 so a 0^(-1) factor
	// reaches the divide-by-zero check instead of merging with a 0 factor.
	if n.IsOp('*') && !n.IsArithConst() {
		return r.monomialSimplify(n)
	}
	return n
}

// --- P6: constant folding ---

func (r *Round) foldConstants(n *Node) *Node {
	if n == nil {
		return nil
	}
	n.L = r.foldConstants(n.L)
	n.R = r.foldConstants(n.R)
	if n.Tok.Kind != KindOp || !n.L.IsInt() || !n.R.IsInt() {
		return n
	}
	a, b := n.L.Tok.IntVal(), n.R.Tok.IntVal()
	switch n.Tok.Op() {
	case '+':
		return r.replaceInt(n, a+b)
	case '-':
		return r.replaceInt(n, a-b)
	case '*':
		return r.replaceInt(n, a*b)
	case '/':
		if b == 0 {
			r.DividedByZero = true
			return n
		}
		g := gcd64(a, b)
		na, nb := a/g, b/g
		if nb < 0 {
			na, nb = -na, -nb
		}
		if nb == 1 {
			return r.replaceInt(n, na)
		}
		return r.replaceFrac(n, na, nb)
	case '^':
		if b >= 0 {
			v := int64(1)
			for i := int64(0); i < b; i++ {
				v *= a
			}
			return r.replaceInt(n, v)
		}
		v := int64(1)
		for i := int64(0); i < -b; i++ {
			v *= a
		}
		if v == 0 {
			r.DividedByZero = true
			return n
		}
		g := gcd64(1, v)
		na, nb := int64(1)/g, v/g
		if nb < 0 {
			na, nb = -na, -nb
		}
		if nb == 1 {
			return r.replaceInt(n, na)
		}
		return r.replaceFrac(n, na, nb)
	}
	return n
}

func (r *Round) replaceInt(n *Node, v int64) *Node {
	r.releaseNode(n.L)
	r.releaseNode(n.R)
	n.L, n.R = nil, nil
	n.Tok = IntTok(v)
	return n
}

func (r *Round) replaceFrac(n *Node, num, den int64) *Node {
	r.releaseNode(n.L)
	r.releaseNode(n.R)
	n.Tok = OpTok('/')
	n.L = r.Int(num)
	n.R = r.Int(den)
	return n
}

// --- finalization ---

// finalize runs the GCD extraction over top-level terms and then stabilizes
// with constant folding + 0/1 identities. Picking the nicest surface form
// for negatives (a+(-1)*b -> a-b, x^(-1*y) -> 1/x^y, ...) is done by the
// printer instead of here, since the printer already needs equivalent
// cosmetic logic for its own rendering rules.
func (r *Round) finalize(root *Node) *Node {
	if root.IsOp('+') {
		terms := flattenAdd(root)
		if len(terms) > 1 {
			bodies := make([]*Node, len(terms))
			coeffs := make([]Rational, len(terms))
			for i, t := range terms {
				bodies[i], coeffs[i] = r.extractCoefficient(t)
			}
			g, l := int64(0), int64(1)
			for _, c := range coeffs {
				g = gcd64(g, c.Num)
				l = lcm64(l, c.Den)
			}
			if g == 0 {
				g = 1
			}
			factor := r.NewRational(g, l)
			var newTerms []*Node
			if !factor.IsOne() && !factor.IsZero() {
				for i := range terms {
					newTerms = append(newTerms, r.attachCoeff(r.RatDiv(coeffs[i], factor), bodies[i]))
				}
				root = r.BinOp('*', r.ratToNode(factor), buildAddList(r, newTerms))
			} else {
				for i := range terms {
					newTerms = append(newTerms, r.attachCoeff(coeffs[i], bodies[i]))
				}
				root = buildAddList(r, newTerms)
			}
		}
	}

	prev := root.Hash()
	for i := 0; i < 8; i++ {
		root = r.foldConstants(root)
		root = r.simplifyP1(root)
		h := root.Hash()
		if h == prev {
			break
		}
		prev = h
	}
	return root
}

// --- tree list helpers ---

func flattenAdd(n *Node) []*Node {
	if n.IsOp('+') {
		return append(flattenAdd(n.L), flattenAdd(n.R)...)
	}
	return []*Node{n}
}

func flattenMul(n *Node) []*Node {
	if n.IsOp('*') {
		return append(flattenMul(n.L), flattenMul(n.R)...)
	}
	return []*Node{n}
}

func buildAddList(r *Round, list []*Node) *Node {
	if len(list) == 0 {
		return r.Int(0)
	}
	result := list[0]
	for _, t := range list[1:] {
		result = r.BinOp('+', result, t)
	}
	return result
}

func buildMulList(r *Round, list []*Node) *Node {
	if len(list) == 0 {
		return r.Int(1)
	}
	result := list[0]
	for _, f := range list[1:] {
		result = r.BinOp('*', result, f)
	}
	return result
}

func removeIndices(list []*Node, skip ...int) []*Node {
	skipSet := map[int]bool{}
	for _, s := range skip {
		skipSet[s] = true
	}
	out := make([]*Node, 0, len(list))
	for i, v := range list {
		if !skipSet[i] {
			out = append(out, v)
		}
	}
	return out
}
