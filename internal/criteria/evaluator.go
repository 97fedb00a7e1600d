package criteria

import "regexp"

// AttrLookup resolves a single attribute name against one host. Unknown
// names resolve to nil rather than an error.
type AttrLookup func(name string) any

// MapLookup adapts a plain map to AttrLookup.
func MapLookup(attrs map[string]any) AttrLookup {
	return func(name string) any {
		return attrs[name]
	}
}

// Eval consumes an RPN token stream and a host attribute lookup, and
// produces the predicate's boolean result. It is a deterministic stack
// automaton: all state is local to this call and Eval is safe to run
// concurrently for different (rpn, lookup) pairs.
func Eval(rpn []Token, attrs AttrLookup) (bool, error) {
	var stack []any

	pop := func() any {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	for _, tok := range rpn {
		switch tok.Kind {
		case KindVariable:
			stack = append(stack, attrs(tok.Text))

		case KindConstant:
			stack = append(stack, tok.Text)

		case KindComparisonOp:
			if len(stack) < 2 {
				return false, &EvalError{UnderflowCompare, "comparison requires two operands"}
			}
			right := pop()
			left := pop()
			result, err := compare(left, tok.Op, right)
			if err != nil {
				return false, err
			}
			stack = append(stack, result)

		case KindLogicalOp:
			if len(stack) < 2 {
				return false, &EvalError{UnderflowLogical, "logical operator requires two operands"}
			}
			right := pop()
			left := pop()
			stack = append(stack, applyLogical(truthy(left), tok.Op, truthy(right)))

		case KindUnaryOp:
			if len(stack) < 1 {
				return false, &EvalError{UnderflowUnary, "unary operator requires one operand"}
			}
			v := pop()
			result, err := unary(tok.Op, v)
			if err != nil {
				return false, err
			}
			stack = append(stack, result)

		case KindNotOp:
			if len(stack) < 1 {
				return false, &EvalError{UnderflowNot, "NOT requires one operand"}
			}
			stack = append(stack, !truthy(pop()))

		case KindCollectionOp:
			if len(stack) < 2 {
				return false, &EvalError{UnderflowCollection, "collection operator requires two operands"}
			}
			needle := pop()
			haystack := pop()
			result, err := collectionOp(tok.Op, haystack, needle)
			if err != nil {
				return false, err
			}
			stack = append(stack, result)

		case KindCollectionUnary:
			// CAny reaches here because it belongs to CollectionUnary; an
			// underflow is reported with the UnaryOp branch's UnderflowUnary kind.
			if len(stack) < 1 {
				return false, &EvalError{UnderflowUnary, "collection unary operator requires one operand"}
			}
			v := pop()
			result, err := collectionUnary(tok.Op, v)
			if err != nil {
				return false, err
			}
			stack = append(stack, result)

		default:
			return false, &EvalError{UnsupportedToken, "evaluator cannot handle token kind " + tok.Kind.String()}
		}
	}

	if len(stack) != 1 {
		return false, &EvalError{InvalidExpression, "final stack size is not 1"}
	}
	return truthy(stack[0]), nil
}

func applyLogical(left bool, op OperatorKind, right bool) bool {
	switch op {
	case OpAnd:
		return left && right
	case OpOr:
		return left || right
	default:
		return false
	}
}

// compare implements the comparison operator family: numeric-preferred with
// string fallback, plus the string-only MATCH and LIKE operators.
func compare(left any, op OperatorKind, right any) (bool, error) {
	if left == nil {
		return false, nil
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if lok && rok {
		switch op {
		case OpEqual:
			return lf == rf, nil
		case OpGreater:
			return lf > rf, nil
		case OpGreaterEqual:
			return lf >= rf, nil
		case OpLess:
			return lf < rf, nil
		case OpLessEqual:
			return lf <= rf, nil
		default:
			// MATCH/LIKE are string-only; fall through to the string path
			// using the same operands.
		}
	}

	ls := toDisplayString(left)
	rs := toDisplayString(right)
	switch op {
	case OpEqual:
		return ls == rs, nil
	case OpGreater:
		return ls > rs, nil
	case OpGreaterEqual:
		return ls >= rs, nil
	case OpLess:
		return ls < rs, nil
	case OpLessEqual:
		return ls <= rs, nil
	case OpMatch:
		return leftAnchoredMatch(rs, ls)
	case OpLike:
		return likeMatch(ls, rs)
	default:
		return false, nil
	}
}

// unary implements NULL/GTZ/EQZ/LTZ.
func unary(op OperatorKind, v any) (bool, error) {
	if op == OpNull {
		return v == nil, nil
	}

	f, ok := toFloat(v)
	if !ok {
		return false, &EvalError{InvalidType, "operand is not numeric"}
	}
	switch op {
	case OpGreaterZero:
		return f > 0, nil
	case OpEqualZero:
		return f == 0, nil
	case OpLessZero:
		return f < 0, nil
	default:
		return false, &EvalError{UnsupportedToken, "unary operator not handled"}
	}
}

// collectionOp implements IN and CMATCH.
func collectionOp(op OperatorKind, haystack, needle any) (bool, error) {
	coll, ok := asCollection(haystack)
	if !ok {
		return false, nil
	}
	switch op {
	case OpIn:
		target := toDisplayString(needle)
		for _, item := range coll {
			if item == nil {
				continue
			}
			if toDisplayString(item) == target {
				return true, nil
			}
		}
		return false, nil
	case OpCMatch:
		pattern := toDisplayString(needle)
		for _, item := range coll {
			ok, err := leftAnchoredMatch(pattern, toDisplayString(item))
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, &EvalError{UnsupportedToken, "collection operator not handled"}
	}
}

// collectionUnary implements ANY: true iff the collection is non-empty. A
// scalar operand is a type error.
func collectionUnary(op OperatorKind, v any) (bool, error) {
	if op != OpCAny {
		return false, &EvalError{UnsupportedToken, "collection unary operator not handled"}
	}
	coll, ok := asCollection(v)
	if !ok {
		return false, &EvalError{InvalidType, "ANY requires a collection operand"}
	}
	return len(coll) > 0, nil
}

// leftAnchoredMatch reports whether pattern matches at the very start of s,
// without requiring the match to consume all of s (Python re.match
// semantics: left-anchored, unanchored on the right).
func leftAnchoredMatch(pattern, s string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, &EvalError{InvalidType, "invalid regular expression: " + err.Error()}
	}
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0, nil
}

// likeMatch translates a LIKE pattern into a fully anchored regex, escaping
// every regex metacharacter except the wildcard symbols % and *, each of
// which becomes ".*".
func likeMatch(s, pattern string) (bool, error) {
	var sb []byte
	sb = append(sb, '^')
	for _, r := range pattern {
		if isWildcardSymbol(r) {
			sb = append(sb, ".*"...)
			continue
		}
		sb = append(sb, regexp.QuoteMeta(string(r))...)
	}
	sb = append(sb, '$')

	re, err := regexp.Compile(string(sb))
	if err != nil {
		return false, &EvalError{InvalidType, "invalid LIKE pattern: " + err.Error()}
	}
	return re.MatchString(s), nil
}
