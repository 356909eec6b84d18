package symdiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// runLine mirrors cmd/differentiator's per-line round: lex, parse, then
// differentiate + simplify with respect to every free variable in
// first-seen order.
func runLine(t *testing.T, src string) (derivatives map[string]string, dividedByZero bool, syntaxErr error) {
	t.Helper()
	round := NewRound()
	toks := round.Lex(src)
	tree, err := round.Parse(toks)
	if err != nil {
		return nil, false, err
	}
	derivatives = map[string]string{}
	for _, id := range round.Vars.Order() {
		round.ResetDividedByZero()
		d := round.Simplify(round.Diff(tree, id))
		if round.DividedByZero {
			dividedByZero = true
			continue
		}
		derivatives[round.Vars.Name(id)] = round.Print(d)
	}
	return derivatives, dividedByZero, nil
}

func TestRoundProductOfX(t *testing.T) {
	derivs, divByZero, err := runLine(t, "x*x")
	require.NoError(t, err)
	require.False(t, divByZero)
	require.Equal(t, "2x", derivs["x"])
}

func TestRoundPythagoreanIdentityDerivativeIsZero(t *testing.T) {
	derivs, divByZero, err := runLine(t, "sin(x)^2+cos(x)^2")
	require.NoError(t, err)
	require.False(t, divByZero)
	require.Equal(t, "0", derivs["x"])
}

func TestRoundExpLnCancelsToOne(t *testing.T) {
	derivs, divByZero, err := runLine(t, "exp(ln(x))")
	require.NoError(t, err)
	require.False(t, divByZero)
	require.Equal(t, "1", derivs["x"])
}

func TestRoundLnOfProductSplitsPerVariable(t *testing.T) {
	derivs, divByZero, err := runLine(t, "ln(x*y)")
	require.NoError(t, err)
	require.False(t, divByZero)
	require.Equal(t, "1/x", derivs["x"])
	require.Equal(t, "1/y", derivs["y"])
}

func TestRoundPowerRule(t *testing.T) {
	derivs, divByZero, err := runLine(t, "pow(x,3)")
	require.NoError(t, err)
	require.False(t, divByZero)
	require.Equal(t, "3x^2", derivs["x"])
}

func TestRoundDivisionByZeroReportsRuntimeError(t *testing.T) {
	_, divByZero, err := runLine(t, "x/0")
	require.NoError(t, err)
	require.True(t, divByZero)
}

func TestRoundSyntaxErrorOnUnmatchedParen(t *testing.T) {
	_, _, err := runLine(t, "(x+1")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestRoundConstantTermVanishesForEveryVariable(t *testing.T) {
	derivs, divByZero, err := runLine(t, "x+y+7")
	require.NoError(t, err)
	require.False(t, divByZero)
	require.Equal(t, "1", derivs["x"])
	require.Equal(t, "1", derivs["y"])
}

func TestRoundFreshStatePerRound(t *testing.T) {
	first := NewRound()
	first.Lex("x+y")

	second := NewRound()
	toks := second.Lex("z")
	if len(toks) != 1 {
		t.Fatalf("want a fresh Round to start its variable table from scratch")
	}
	if second.Vars.Name(toks[0].VarID()) != "z" {
		t.Errorf("want the only interned variable in a fresh round to be z")
	}
}

func TestRoundVariableOrderIsFirstSeen(t *testing.T) {
	round := NewRound()
	toks := round.Lex("y+x+y+z")
	tree, err := round.Parse(toks)
	require.NoError(t, err)
	_ = tree

	names := make([]string, 0, 3)
	for _, id := range round.Vars.Order() {
		names = append(names, round.Vars.Name(id))
	}
	require.Equal(t, []string{"y", "x", "z"}, names)
}
