package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeAliasContexts(t *testing.T) {
	// For every registered alias, tokenizing a minimal context that makes
	// the alias legal should yield a token with the canonical (kind, op)
	// and text equal to the uppercased alias actually used.
	for _, cell := range operatorTable {
		for _, alias := range cell.aliases {
			cell, alias := cell, alias
			t.Run(cell.op.String()+"_"+alias, func(t *testing.T) {
				criterion := contextForAlias(cell, alias)
				tokens, err := Tokenize(criterion)
				require.NoError(t, err, criterion)

				found := false
				for _, tok := range tokens {
					if tok.Kind == cell.kind && tok.Op == cell.op {
						found = true
						assert.Equal(t, normalizeAlias(alias), tok.Text)
					}
				}
				assert.True(t, found, "criterion %q did not produce a %s/%s token", criterion, cell.kind, cell.op)
			})
		}
	}
}

// contextForAlias builds a minimal, syntactically valid criterion that
// exercises the given operator cell using a specific alias spelling.
func contextForAlias(cell operatorCell, alias string) string {
	switch cell.kind {
	case KindComparisonOp:
		return "foo " + alias + " bar"
	case KindUnaryOp:
		return "foo " + alias
	case KindLogicalOp:
		return "foo = bar " + alias + " baz = qux"
	case KindCollectionOp:
		return "foo " + alias + " bar"
	case KindCollectionUnary:
		return "foo " + alias
	case KindGrouping:
		return "(foo = bar)"
	case KindNotOp:
		return "NOT foo = bar"
	case KindIsOp:
		return "foo IS NULL"
	default:
		return "foo = bar"
	}
}

func TestTokenizeCompoundExpansion(t *testing.T) {
	cases := []struct {
		alias string
		tail  []compoundExpansion
	}{
		{"!=", compoundTable["!="]},
		{"NE", compoundTable["NE"]},
		{"NOTMATCH", compoundTable["NOTMATCH"]},
		{"ISNOTNULL", compoundTable["ISNOTNULL"]},
		{"NOTNULL", compoundTable["NOTNULL"]},
		{"NOTIN", compoundTable["NOTIN"]},
		{"NOMATCH", compoundTable["NOMATCH"]},
	}
	for _, c := range cases {
		c := c
		t.Run(c.alias, func(t *testing.T) {
			var criterion string
			switch c.alias {
			case "!=", "NE":
				criterion = "foo " + c.alias + " bar"
			case "NOTMATCH":
				criterion = "foo " + c.alias + " bar"
			case "ISNOTNULL", "NOTNULL":
				criterion = "foo " + c.alias
			case "NOTIN":
				criterion = "foo " + c.alias + " bar"
			case "NOMATCH":
				criterion = "foo " + c.alias + " bar"
			}

			tokens, err := Tokenize(criterion)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(tokens), 3)

			require.Equal(t, KindNotOp, tokens[1].Kind)
			require.Equal(t, OpNot, tokens[1].Op)
			for i, step := range c.tail[1:] {
				got := tokens[2+i]
				assert.Equal(t, step.kind, got.Kind)
				assert.Equal(t, step.op, got.Op)
			}
		})
	}
}

func TestTokenizeTransitionEnforcement(t *testing.T) {
	badCases := []string{
		"foo bar",           // Variable followed by Variable
		"foo = = bar",       // ComparisonOp followed by ComparisonOp
		"AND foo = bar",     // starts with a LogicalOp
		"foo = bar bar = x", // Constant directly followed by Variable
		"(foo = bar",        // mismatched parenthesis (caught at shunting-yard, but tokenizes fine)
	}
	// The first four must fail at the tokenizer stage; the grouping
	// mismatch tokenizes cleanly and fails later in ToRPN (tested there).
	for _, c := range badCases[:4] {
		_, err := Tokenize(c)
		assert.Error(t, err, c)
		var synErr *SyntaxError
		assert.ErrorAs(t, err, &synErr, c)
	}
}

func TestTokenizeClauseShape(t *testing.T) {
	// A clause that ends on a LogicalOp-invalid kind inside a clause must fail.
	_, err := Tokenize("foo AND bar = baz")
	assert.Error(t, err)
}

func TestTokenizeQuotedConstant(t *testing.T) {
	tokens, err := Tokenize(`foo = "hello \"world\""`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, `hello "world"`, tokens[2].Text)
	assert.Equal(t, KindConstant, tokens[2].Kind)
}

func TestTokenizeCaseSensitivity(t *testing.T) {
	tokens, err := Tokenize(`MyVar = "MixedCase"`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "MyVar", tokens[0].Text)
	assert.Equal(t, "MixedCase", tokens[2].Text)
}

func TestTokenizeEndOfInputOpenClause(t *testing.T) {
	_, err := Tokenize("foo")
	assert.Error(t, err)
}
