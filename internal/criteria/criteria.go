package criteria

// Evaluate is the public composition tokenizer -> shunting-yard -> postfix
// evaluator. It is the single call an inventory builder needs: give it a
// criterion and one host's attribute map, get back whether the host
// satisfies the predicate.
//
// A failed Evaluate (either a *SyntaxError or an *EvalError) should
// typically be treated by the caller as "host does not belong to this
// group", logged, and otherwise ignored.
func Evaluate(criterionText string, attrs map[string]any) (bool, error) {
	tokens, err := Tokenize(criterionText)
	if err != nil {
		return false, err
	}
	rpn, err := ToRPN(tokens)
	if err != nil {
		return false, err
	}
	return Eval(rpn, MapLookup(attrs))
}
