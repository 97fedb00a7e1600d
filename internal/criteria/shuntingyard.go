package criteria

// operatorTokenKinds are the TokenKinds whose relative precedence the
// shunting-yard algorithm compares when deciding whether to pop the
// operator stack.
var operatorTokenKinds = map[TokenKind]bool{
	KindComparisonOp:    true,
	KindLogicalOp:       true,
	KindUnaryOp:         true,
	KindNotOp:           true,
	KindCollectionOp:    true,
	KindCollectionUnary: true,
}

// ToRPN converts an infix token stream (already known to satisfy the
// tokenizer's transition constraints) into postfix (RPN) order, using
// standard shunting-yard with all operators treated as left-associative.
func ToRPN(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	var stack []Token

	for _, tok := range tokens {
		switch tok.Kind {
		case KindIsOp:
			// The IS marker carries no semantics of its own: "foo IS NULL"
			// and "foo ISNULL" must produce the same RPN, so IsOp is
			// dropped here rather than pushed to either stack.
			continue

		case KindVariable, KindConstant:
			output = append(output, tok)

		case KindComparisonOp, KindLogicalOp, KindUnaryOp, KindNotOp, KindCollectionOp, KindCollectionUnary:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if !operatorTokenKinds[top.Kind] {
					break
				}
				if precedence(top.Op) < precedence(tok.Op) {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)

		case KindGrouping:
			if tok.Op == OpGroupingStart {
				stack = append(stack, tok)
				continue
			}
			// GroupingEnd: pop to output until the matching GroupingStart.
			found := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == KindGrouping && top.Op == OpGroupingStart {
					found = true
					break
				}
				output = append(output, top)
			}
			if !found {
				return nil, &SyntaxError{Position: -1, Reason: "mismatched parentheses"}
			}

		default:
			return nil, &SyntaxError{Position: -1, Reason: "unexpected token kind in shunting-yard: " + tok.Kind.String()}
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == KindGrouping {
			return nil, &SyntaxError{Position: -1, Reason: "mismatched parentheses"}
		}
		output = append(output, top)
	}

	return output, nil
}
