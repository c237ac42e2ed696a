package template

import (
	"errors"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

func parseErrorMessage(err error) string {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}

// checkExpression reports exp if it is not exactly one JS expression.
func checkExpression(exp, attrName string, errs *errorList) {
	ast, err := js.Parse(parse.NewInputString("("+exp+"\n)"), js.Options{})
	if err != nil {
		errs.add("invalid expression: %s in\n\n    %s\n\n  Raw expression: %s=%q", parseErrorMessage(err), exp, attrName, exp)
		return
	}
	if len(ast.List) != 1 {
		errs.add("invalid expression: %q is not a single expression (%s)", exp, attrName)
	}
}

// checkHandler accepts anything that is valid as a function body.
func checkHandler(exp, attrName string, errs *errorList) {
	if strings.TrimSpace(exp) == "" {
		return
	}
	if _, err := js.Parse(parse.NewInputString(exp), js.Options{Inline: true}); err != nil {
		errs.add("invalid handler expression: %s in\n\n    %s\n\n  Raw expression: %s=%q", parseErrorMessage(err), exp, attrName, exp)
	}
}

// checkBinding validates a v-for alias or slot scope as a binding pattern.
func checkBinding(pattern, attrName string, errs *errorList) {
	if _, err := js.Parse(parse.NewInputString("var "+pattern+" = 0"), js.Options{}); err != nil {
		errs.add("invalid binding %q in %s: %s", pattern, attrName, parseErrorMessage(err))
	}
}

func checkFunctionParams(params, attrName string, errs *errorList) {
	if _, err := js.Parse(parse.NewInputString("(function("+params+"){})"), js.Options{}); err != nil {
		errs.add("invalid function parameter expression %q in %s: %s", params, attrName, parseErrorMessage(err))
	}
}

// validateTree walks every element and checks the expressions that are not
// checked while attributes are processed.
func validateTree(el *element, errs *errorList) {
	if el == nil {
		return
	}
	if el.For != "" {
		checkExpression(el.For, "v-for", errs)
		checkBinding(el.Alias, "v-for", errs)
		if el.Iterator1 != "" {
			checkBinding(el.Iterator1, "v-for", errs)
		}
		if el.Iterator2 != "" {
			checkBinding(el.Iterator2, "v-for", errs)
		}
	}
	for _, cond := range el.IfConditions {
		if cond.Exp != "" {
			checkExpression(cond.Exp, "v-if", errs)
		}
		if cond.Block != el {
			validateTree(cond.Block, errs)
		}
	}
	if el.Key != "" {
		checkExpression(el.Key, "key", errs)
	}
	if el.hasSlotScope && el.SlotScope != emptySlotScope {
		checkFunctionParams(el.SlotScope, "slot scope", errs)
	}
	for _, slot := range el.ScopedSlots {
		validateTree(slot, errs)
	}
	for _, c := range el.Children {
		if child, ok := c.(*element); ok {
			validateTree(child, errs)
			continue
		}
		if t, ok := c.(*textNodeData); ok && t.Expression != "" {
			checkExpression(t.Expression, "{{ }}", errs)
		}
	}
}
