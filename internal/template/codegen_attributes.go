package template

import (
	"strconv"
	"strings"
)

// genData renders the vnode data object of el.
func genData(el *element, state *codegenState) string {
	var b strings.Builder
	b.WriteString("{")

	// directives first: v-model and friends add props and listeners
	if dirs := genDirectives(el, state); dirs != "" {
		b.WriteString(dirs + ",")
	}
	if el.Key != "" {
		b.WriteString("key:" + el.Key + ",")
	}
	if el.Ref != "" {
		b.WriteString("ref:" + el.Ref + ",")
	}
	if el.RefInFor {
		b.WriteString("refInFor:true,")
	}
	if el.Pre {
		b.WriteString("pre:true,")
	}
	if el.Component != "" {
		b.WriteString(`tag:"` + el.Tag + `",`)
	}
	if el.StaticClass != "" {
		b.WriteString("staticClass:" + el.StaticClass + ",")
	}
	if el.ClassBinding != "" {
		b.WriteString("class:" + el.ClassBinding + ",")
	}
	if el.StaticStyle != "" {
		b.WriteString("staticStyle:" + el.StaticStyle + ",")
	}
	if el.StyleBinding != "" {
		b.WriteString("style:(" + el.StyleBinding + "),")
	}
	if len(el.Attrs) > 0 {
		b.WriteString("attrs:" + genProps(el.Attrs) + ",")
	}
	if len(el.Props) > 0 {
		b.WriteString("domProps:" + genProps(el.Props) + ",")
	}
	if el.Events != nil {
		b.WriteString(genHandlers(el.Events, false) + ",")
	}
	if el.NativeEvents != nil {
		b.WriteString(genHandlers(el.NativeEvents, true) + ",")
	}
	if el.SlotTarget != "" && !el.hasSlotScope {
		b.WriteString("slot:" + el.SlotTarget + ",")
	}
	if len(el.ScopedSlots) > 0 {
		b.WriteString(genScopedSlots(el, state) + ",")
	}
	if el.Model != nil {
		b.WriteString("model:{value:" + el.Model.Value + ",callback:" + el.Model.Callback + ",expression:" + el.Model.Expression + "},")
	}

	data := strings.TrimSuffix(b.String(), ",") + "}"
	if len(el.DynamicAttrs) > 0 {
		data = "_b(" + data + `,"` + el.Tag + `",` + genProps(el.DynamicAttrs) + ")"
	}
	if el.wrapData != nil {
		data = el.wrapData(data)
	}
	if el.wrapListeners != nil {
		data = el.wrapListeners(data)
	}
	return data
}

// genProps renders name/value pairs; dynamic names go through _d().
func genProps(props []attr) string {
	var static, dynamic []string
	for _, p := range props {
		value := transformSpecialNewlines(p.Value)
		if p.Dynamic {
			dynamic = append(dynamic, p.Name+","+value)
		} else {
			static = append(static, `"`+p.Name+`":`+value)
		}
	}
	obj := "{" + strings.Join(static, ",") + "}"
	if len(dynamic) > 0 {
		return "_d(" + obj + ",[" + strings.Join(dynamic, ",") + "])"
	}
	return obj
}

func transformSpecialNewlines(s string) string {
	s = strings.ReplaceAll(s, "\u2028", `\u2028`)
	return strings.ReplaceAll(s, "\u2029", `\u2029`)
}

// directiveGen handles a built-in directive at compile time. It reports
// whether the directive still needs its runtime counterpart.
type directiveGen func(el *element, dir directive, state *codegenState) bool

var builtinDirectives = map[string]directiveGen{
	"model": genModel,
	"text":  genTextDirective,
	"html":  genHTMLDirective,
	"bind":  genBindObject,
	"on":    genOnObject,
	"cloak": func(*element, directive, *codegenState) bool { return false },
}

func genDirectives(el *element, state *codegenState) string {
	if len(el.Directives) == 0 {
		return ""
	}

	var parts []string
	for _, dir := range el.Directives {
		needRuntime := true
		if gen, ok := builtinDirectives[dir.Name]; ok {
			needRuntime = gen(el, dir, state)
		}
		if !needRuntime {
			continue
		}

		code := `{name:"` + dir.Name + `",rawName:"` + dir.RawName + `"`
		if dir.Value != "" {
			code += ",value:(" + dir.Value + "),expression:" + jsonString(dir.Value)
		}
		if dir.Arg != "" {
			if dir.DynamicArg {
				code += ",arg:" + dir.Arg
			} else {
				code += `,arg:"` + dir.Arg + `"`
			}
		}
		if len(dir.Modifiers) > 0 {
			code += ",modifiers:" + jsonBoolMap(dir.Modifiers)
		}
		parts = append(parts, code+"}")
	}
	if len(parts) == 0 {
		return ""
	}
	return "directives:[" + strings.Join(parts, ",") + "]"
}

func genTextDirective(el *element, dir directive, _ *codegenState) bool {
	if dir.Value != "" {
		el.addProp("textContent", "_s("+dir.Value+")", false)
	}
	return false
}

func genHTMLDirective(el *element, dir directive, _ *codegenState) bool {
	if dir.Value != "" {
		el.addProp("innerHTML", "_s("+dir.Value+")", false)
	}
	return false
}

// genBindObject handles v-bind="object".
func genBindObject(el *element, dir directive, _ *codegenState) bool {
	isProp := "false"
	if hasModifier(dir.Modifiers, "prop") {
		isProp = "true"
	}
	sync := ""
	if hasModifier(dir.Modifiers, "sync") {
		sync = ",true"
	}
	tag := el.Tag
	value := dir.Value
	el.wrapData = func(code string) string {
		return "_b(" + code + ",'" + tag + "'," + value + "," + isProp + sync + ")"
	}
	return false
}

// genOnObject handles v-on="object".
func genOnObject(el *element, dir directive, state *codegenState) bool {
	if len(dir.Modifiers) > 0 {
		state.errs.add("v-on without argument does not support modifiers.")
	}
	value := dir.Value
	el.wrapListeners = func(code string) string {
		return "_g(" + code + "," + value + ")"
	}
	return false
}

func containsSlotChild(el *element) bool {
	if el.Tag == "slot" {
		return true
	}
	for _, c := range el.Children {
		if child, ok := c.(*element); ok && containsSlotChild(child) {
			return true
		}
	}
	return false
}

func genScopedSlots(el *element, state *codegenState) string {
	needsForceUpdate := el.For != ""
	for _, slot := range el.ScopedSlots {
		if slot.SlotTargetDynamic || slot.If != "" || slot.For != "" || containsSlotChild(slot) {
			needsForceUpdate = true
		}
	}

	needsKey := el.If != ""
	if !needsForceUpdate {
		for p := el.Parent; p != nil; p = p.Parent {
			if (p.hasSlotScope && p.SlotScope != emptySlotScope) || p.For != "" {
				needsForceUpdate = true
				break
			}
			if p.If != "" {
				needsKey = true
			}
		}
	}

	generated := make([]string, len(el.ScopedSlots))
	for i, slot := range el.ScopedSlots {
		generated[i] = genScopedSlot(slot, state)
	}
	joined := strings.Join(generated, ",")

	code := "scopedSlots:_u([" + joined + "]"
	switch {
	case needsForceUpdate:
		code += ",null,true"
	case needsKey:
		code += ",null,false," + strconv.FormatUint(uint64(slotHash(joined)), 10)
	}
	return code + ")"
}

func genScopedSlot(el *element, state *codegenState) string {
	_, legacy := el.AttrsMap["slot-scope"]
	if el.If != "" && !el.ifProcessed && !legacy {
		return genIf(el, state, genScopedSlot, "null")
	}
	if el.For != "" && !el.forProcessed {
		return genFor(el, state, genScopedSlot)
	}

	scope := el.SlotScope
	if scope == emptySlotScope {
		scope = ""
	}

	var body string
	if el.Tag == "template" {
		children := genChildren(el, state, false)
		if children == "" {
			children = "undefined"
		}
		if el.If != "" && legacy {
			body = "(" + el.If + ")?" + children + ":undefined"
		} else {
			body = children
		}
	} else {
		body = genElement(el, state)
	}

	key := el.SlotTarget
	if key == "" {
		key = `"default"`
	}
	code := "{key:" + key + ",fn:function(" + scope + "){return " + body + "}"
	if scope == "" {
		code += ",proxy:true"
	}
	return code + "}"
}
