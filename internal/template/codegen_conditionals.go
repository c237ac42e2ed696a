package template

// genIf renders an if / else-if / else chain as nested ternaries. altGen
// replaces genElement for each branch and altEmpty is the value when no
// branch matches.
func genIf(el *element, state *codegenState, altGen func(*element, *codegenState) string, altEmpty string) string {
	el.ifProcessed = true
	conditions := append([]ifCondition(nil), el.IfConditions...)
	return genIfConditions(conditions, state, altGen, altEmpty)
}

func genIfConditions(conditions []ifCondition, state *codegenState, altGen func(*element, *codegenState) string, altEmpty string) string {
	if len(conditions) == 0 {
		if altEmpty != "" {
			return altEmpty
		}
		return "_e()"
	}

	condition := conditions[0]
	branch := genTernaryBranch(condition.Block, state, altGen)
	if condition.Exp == "" {
		return branch
	}
	return "(" + condition.Exp + ")?" + branch + ":" + genIfConditions(conditions[1:], state, altGen, altEmpty)
}

func genTernaryBranch(el *element, state *codegenState, altGen func(*element, *codegenState) string) string {
	if altGen != nil {
		return altGen(el, state)
	}
	if el.Once {
		return genOnce(el, state)
	}
	return genElement(el, state)
}
