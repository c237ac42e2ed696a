package template

// optimize marks subtrees that never change so codegen can hoist them into
// static render functions.
func optimize(root *element) {
	if root == nil {
		return
	}
	markStatic(root)
	markStaticRoots(root, false)
}

func isStaticNode(n node) bool {
	switch v := n.(type) {
	case *textNodeData:
		return v.Expression == ""
	case *element:
		return isStaticElement(v)
	}
	return false
}

func isStaticElement(el *element) bool {
	if el.Pre {
		return true
	}
	return !el.HasBindings &&
		el.If == "" && el.For == "" &&
		!isBuiltInTag(el.Tag) &&
		isReservedTag(el.Tag) &&
		!isDirectChildOfTemplateFor(el) &&
		onlyStaticData(el)
}

func onlyStaticData(el *element) bool {
	return el.Key == "" && el.Ref == "" &&
		el.SlotTarget == "" && !el.hasSlotScope && el.SlotName == "" &&
		len(el.ScopedSlots) == 0 &&
		el.Component == "" &&
		el.ClassBinding == "" && el.StyleBinding == "" &&
		len(el.Props) == 0 && len(el.DynamicAttrs) == 0 &&
		el.Events == nil && el.NativeEvents == nil &&
		len(el.Directives) == 0 && el.Model == nil &&
		!el.Once && el.ElseIf == "" && !el.Else
}

func isDirectChildOfTemplateFor(el *element) bool {
	for p := el.Parent; p != nil; p = p.Parent {
		if p.Tag != "template" {
			return false
		}
		if p.For != "" {
			return true
		}
	}
	return false
}

func markStatic(el *element) {
	el.static = isStaticElement(el)

	// components may rely on mutable slot content
	if !isReservedTag(el.Tag) && el.Tag != "slot" {
		return
	}
	for _, c := range el.Children {
		child, ok := c.(*element)
		if !ok {
			if !isStaticNode(c) {
				el.static = false
			}
			continue
		}
		markStatic(child)
		if !child.static {
			el.static = false
		}
	}
	for _, cond := range el.IfConditions {
		if cond.Block == el {
			continue
		}
		markStatic(cond.Block)
		if !cond.Block.static {
			el.static = false
		}
	}
}

func markStaticRoots(el *element, isInFor bool) {
	if el.static || el.Once {
		el.staticInFor = isInFor
	}
	// a lone text child is cheaper to re-render than to hoist
	if el.static && len(el.Children) > 0 && !(len(el.Children) == 1 && isPlainText(el.Children[0])) {
		el.staticRoot = true
		return
	}
	el.staticRoot = false

	for _, c := range el.Children {
		if child, ok := c.(*element); ok {
			markStaticRoots(child, isInFor || el.For != "")
		}
	}
	for _, cond := range el.IfConditions {
		if cond.Block != el {
			markStaticRoots(cond.Block, isInFor)
		}
	}
}

func isPlainText(n node) bool {
	_, ok := n.(*textNodeData)
	return ok
}
