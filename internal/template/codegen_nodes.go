package template

import (
	"strconv"
	"strings"
)

type codegenState struct {
	staticRenderFns []string
	pre             bool
	onceID          int
	errs            *errorList
}

func maybeComponent(el *element) bool {
	return el.Component != "" || !isReservedTag(el.Tag)
}

// generate returns the render body and static render bodies for root.
func generate(root *element, errs *errorList) (string, []string) {
	state := &codegenState{errs: errs}
	code := `_c("div")`
	if root != nil {
		code = genElement(root, state)
	}
	return "with(this){return " + code + "}", state.staticRenderFns
}

func genElement(el *element, state *codegenState) string {
	if el.Parent != nil {
		el.Pre = el.Pre || el.Parent.Pre
	}

	switch {
	case el.staticRoot && !el.staticProcessed:
		return genStatic(el, state)
	case el.Once && !el.onceProcessed:
		return genOnce(el, state)
	case el.For != "" && !el.forProcessed:
		return genFor(el, state, nil)
	case el.If != "" && !el.ifProcessed:
		return genIf(el, state, nil, "")
	case el.Tag == "template" && el.SlotTarget == "" && !state.pre:
		if children := genChildren(el, state, false); children != "" {
			return children
		}
		return "void 0"
	case el.Tag == "slot":
		return genSlot(el, state)
	}

	if el.Component != "" {
		return genComponent(el.Component, el, state)
	}

	var data string
	if !el.Plain || (el.Pre && maybeComponent(el)) {
		data = genData(el, state)
	}
	children := genChildren(el, state, true)

	var b strings.Builder
	b.WriteString("_c('")
	b.WriteString(el.Tag)
	b.WriteString("'")
	if data != "" {
		b.WriteString(",")
		b.WriteString(data)
	}
	if children != "" {
		b.WriteString(",")
		b.WriteString(children)
	}
	b.WriteString(")")
	return b.String()
}

// genStatic hoists el into its own render function and references it by index.
func genStatic(el *element, state *codegenState) string {
	el.staticProcessed = true
	originalPre := state.pre
	if el.Pre {
		state.pre = el.Pre
	}
	state.staticRenderFns = append(state.staticRenderFns, "with(this){return "+genElement(el, state)+"}")
	state.pre = originalPre

	code := "_m(" + strconv.Itoa(len(state.staticRenderFns)-1)
	if el.staticInFor {
		code += ",true"
	}
	return code + ")"
}

func genOnce(el *element, state *codegenState) string {
	el.onceProcessed = true
	switch {
	case el.If != "" && !el.ifProcessed:
		return genIf(el, state, nil, "")
	case el.staticInFor:
		key := ""
		for p := el.Parent; p != nil; p = p.Parent {
			if p.For != "" {
				key = p.Key
				break
			}
		}
		if key == "" {
			state.errs.add("v-once can only be used inside v-for that is keyed.")
			return genElement(el, state)
		}
		code := "_o(" + genElement(el, state) + "," + strconv.Itoa(state.onceID) + "," + key + ")"
		state.onceID++
		return code
	default:
		return genStatic(el, state)
	}
}

func needsNormalization(el *element) bool {
	return el.For != "" || el.Tag == "template" || el.Tag == "slot"
}

// normalizationType tells the runtime how much flattening the children need:
// 0 none, 1 simple (may contain components), 2 full.
func normalizationType(children []node) int {
	res := 0
	for _, c := range children {
		el, ok := c.(*element)
		if !ok {
			continue
		}
		if needsNormalization(el) || anyCondition(el, needsNormalization) {
			return 2
		}
		if maybeComponent(el) || anyCondition(el, maybeComponent) {
			res = 1
		}
	}
	return res
}

func anyCondition(el *element, pred func(*element) bool) bool {
	for _, cond := range el.IfConditions {
		if pred(cond.Block) {
			return true
		}
	}
	return false
}

func genChildren(el *element, state *codegenState, checkSkip bool) string {
	children := el.Children
	if len(children) == 0 {
		return ""
	}

	if first, ok := children[0].(*element); ok && len(children) == 1 &&
		first.For != "" && first.Tag != "template" && first.Tag != "slot" {
		code := genElement(first, state)
		if checkSkip {
			if maybeComponent(first) {
				return code + ",1"
			}
			return code + ",0"
		}
		return code
	}

	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = genNode(c, state)
	}
	code := "[" + strings.Join(parts, ",") + "]"
	if checkSkip {
		if n := normalizationType(children); n != 0 {
			code += "," + strconv.Itoa(n)
		}
	}
	return code
}

func genNode(n node, state *codegenState) string {
	switch v := n.(type) {
	case *element:
		return genElement(v, state)
	case *textNodeData:
		return genText(v)
	}
	return ""
}

func genSlot(el *element, state *codegenState) string {
	name := el.SlotName
	if name == "" {
		name = `"default"`
	}
	children := genChildren(el, state, false)

	code := "_t(" + name
	if children != "" {
		code += ",function(){return " + children + "}"
	}

	var attrs string
	if len(el.Attrs) > 0 || len(el.DynamicAttrs) > 0 {
		var all []attr
		for _, a := range append(append([]attr{}, el.Attrs...), el.DynamicAttrs...) {
			all = append(all, attr{Name: camelize(a.Name), Value: a.Value, Dynamic: a.Dynamic})
		}
		attrs = genProps(all)
	}
	bind, hasBind := el.AttrsMap["v-bind"]

	if (attrs != "" || hasBind) && children == "" {
		code += ",null"
	}
	if attrs != "" {
		code += "," + attrs
	}
	if hasBind {
		if attrs == "" {
			code += ",null"
		}
		code += "," + bind
	}
	return code + ")"
}

func genComponent(name string, el *element, state *codegenState) string {
	children := genChildren(el, state, true)
	code := "_c(" + name + "," + genData(el, state)
	if children != "" {
		code += "," + children
	}
	return code + ")"
}
