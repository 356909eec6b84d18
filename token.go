package symdiff

// TokenKind tags the four shapes a Token can take.
type TokenKind uint8

const (
	KindInt TokenKind = iota
	KindVar
	KindFunc
	KindOp
)

// Token is a compact tagged value: an integer literal, a variable id, a
// function id (indexing FuncTable below), or a single operator character.
type Token struct {
	Kind TokenKind
	ID   int64 // literal value, variable id, function id, or operator rune
}

func IntTok(v int64) Token   { return Token{Kind: KindInt, ID: v} }
func VarTok(id int) Token    { return Token{Kind: KindVar, ID: int64(id)} }
func FuncTok(id int) Token   { return Token{Kind: KindFunc, ID: int64(id)} }
func OpTok(c rune) Token     { return Token{Kind: KindOp, ID: int64(c)} }
func (t Token) Op() rune     { return rune(t.ID) }
func (t Token) VarID() int   { return int(t.ID) }
func (t Token) FuncID() int  { return int(t.ID) }
func (t Token) IntVal() int64 { return t.ID }

func (a Token) Equal(b Token) bool { return a.Kind == b.Kind && a.ID == b.ID }

// FuncDef describes one entry of the fixed built-in function table. Order is
// part of the external interface: identities in the simplifier and the
// differentiator reference entries by id.
type FuncDef struct {
	Name  string
	Arity int
}

// FuncTable is the fixed built-in function table. Index is the function id
// carried by KindFunc tokens.
var FuncTable = []FuncDef{
	{"ln", 1},
	{"log", 2},
	{"cos", 1},
	{"sin", 1},
	{"tan", 1},
	{"pow", 2},
	{"exp", 1},
	{"sinh", 1},
	{"cosh", 1},
}

const (
	FnLn = iota
	FnLog
	FnCos
	FnSin
	FnTan
	FnPow
	FnExp
	FnSinh
	FnCosh
)

// LookupFunc returns the function id for name, or -1 if name is not a
// built-in function (in which case the lexer treats the run as a variable).
func LookupFunc(name string) int {
	for i, f := range FuncTable {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// tokenMix is the linear-congruential mixer shared by token and structural
// hashing: h -> h*mult + inc. The exact constants are not an interface, only
// the avalanche property matters.
const (
	hashMult uint64 = 6364136223846793005
	hashInc  uint64 = 7
)

func tokenMix(h uint64) uint64 {
	return h*hashMult + hashInc
}

// tokenHash folds (Kind, ID) into a single mixed value. AutoGrad.cpp packs
// the analogous 8-byte (Type,ID) struct into one 64-bit word before mixing;
// here Kind and ID are folded through two mix steps instead, since ID is a
// full int64 and would not survive packing losslessly.
func tokenHash(t Token) uint64 {
	h := tokenMix(uint64(t.Kind))
	h = tokenMix(h ^ uint64(t.ID))
	return h
}
