package symdiff

// Node is the single homogeneous expression-tree node: a token plus two
// child slots. Leaf nodes (Int, Var) have both children nil. Unary functions
// use L only; binary operators and binary functions (pow, log) use both.
type Node struct {
	Tok  Token
	L, R *Node
}

// CreateNode allocates a node, preferring freelist reuse over a fresh
// allocation.
func (r *Round) CreateNode(tok Token, l, r2 *Node) *Node {
	var n *Node
	if k := len(r.freelist); k > 0 {
		n = r.freelist[k-1]
		r.freelist = r.freelist[:k-1]
	} else {
		n = &Node{}
	}
	n.Tok = tok
	n.L = l
	n.R = r2
	return n
}

func (r *Round) Leaf(tok Token) *Node { return r.CreateNode(tok, nil, nil) }
func (r *Round) Int(v int64) *Node    { return r.Leaf(IntTok(v)) }
func (r *Round) Var(id int) *Node     { return r.Leaf(VarTok(id)) }

func (r *Round) BinOp(c rune, l, rhs *Node) *Node { return r.CreateNode(OpTok(c), l, rhs) }
func (r *Round) UnaryFunc(id int, arg *Node) *Node { return r.CreateNode(FuncTok(id), arg, nil) }
func (r *Round) BinFunc(id int, a, b *Node) *Node  { return r.CreateNode(FuncTok(id), a, b) }

// Duplicate deep-copies a (sub)tree, allocating fresh nodes from the round's
// arena. Used whenever a subtree must appear in more than one place (e.g.
// the product rule, or grafting a factored term into two new positions).
func (r *Round) Duplicate(n *Node) *Node {
	if n == nil {
		return nil
	}
	return r.CreateNode(n.Tok, r.Duplicate(n.L), r.Duplicate(n.R))
}

// ReleaseTree returns every node of a (sub)tree to the freelist. No node may
// be reachable from two trees afterward, so callers that keep one branch of
// a node they are releasing must clear that edge first via Duplicate or by
// detaching it before the call.
func (r *Round) ReleaseTree(n *Node) {
	if n == nil {
		return
	}
	r.ReleaseTree(n.L)
	r.ReleaseTree(n.R)
	n.L, n.R = nil, nil
	r.freelist = append(r.freelist, n)
}

// Hash computes the structural hash of a subtree: order-invariant under '+'
// and '*', position-sensitive otherwise.
func (n *Node) Hash() uint64 {
	if n == nil {
		return 0
	}
	h := tokenHash(n.Tok)
	lh := n.L.Hash()
	rh := n.R.Hash()
	if n.Tok.Kind == KindOp && (n.Tok.Op() == '+' || n.Tok.Op() == '*') {
		return tokenMix(h ^ (lh + rh))
	}
	h = tokenMix(h ^ lh)
	h = tokenMix(h ^ rh)
	return h
}

// IsInt reports whether n is an integer literal; IsIntVal additionally
// requires its value to be v.
func (n *Node) IsInt() bool { return n != nil && n.Tok.Kind == KindInt }

func (n *Node) IsIntVal(v int64) bool {
	return n != nil && n.Tok.Kind == KindInt && n.Tok.IntVal() == v
}

func (n *Node) IsOp(c rune) bool {
	return n != nil && n.Tok.Kind == KindOp && n.Tok.Op() == c
}

func (n *Node) IsFunc(id int) bool {
	return n != nil && n.Tok.Kind == KindFunc && n.Tok.FuncID() == id
}

// IsConst reports whether a subtree contains no Var token. A constant that
// contains a Func (such as sin(1)) is not foldable to a rational; see
// IsArithConst for that test.
func (n *Node) IsConst() bool {
	if n == nil {
		return true
	}
	if n.Tok.Kind == KindVar {
		return false
	}
	return n.L.IsConst() && n.R.IsConst()
}

// IsArithConst reports whether a subtree is built entirely from integer
// literals and arithmetic operators (+ - * /  ^) — no Var, no Func — and so
// can be folded to a single Rational by foldToRational (Stage II).
func (n *Node) IsArithConst() bool {
	if n == nil {
		return true
	}
	switch n.Tok.Kind {
	case KindVar, KindFunc:
		return false
	case KindInt:
		return true
	}
	return n.L.IsArithConst() && n.R.IsArithConst()
}

// releaseNode returns a single node to the freelist without touching its
// children's subtrees — used when a rewrite keeps a node's children but
// discards the wrapper node itself.
func (r *Round) releaseNode(n *Node) {
	if n == nil {
		return
	}
	n.L, n.R = nil, nil
	r.freelist = append(r.freelist, n)
}

// SameTree reports structural equality by hash, the engine's own notion of
// equality for rewrite matching.
func SameTree(a, b *Node) bool {
	return a.Hash() == b.Hash()
}
