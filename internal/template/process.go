package template

import (
	"regexp"
	"strings"
)

var (
	forAliasRE    = regexp.MustCompile(`^([\s\S]*?)\s+(?:in|of)\s+([\s\S]*)$`)
	forIteratorRE = regexp.MustCompile(`,([^,\}\]]*)(?:,([^,\}\]]*))?$`)
	dirRE         = regexp.MustCompile(`^v-|^@|^:|^#`)
	bindRE        = regexp.MustCompile(`^:|^v-bind:`)
	onRE          = regexp.MustCompile(`^@|^v-on:`)
	argRE         = regexp.MustCompile(`:(.*)$`)
	slotRE        = regexp.MustCompile(`^v-slot(:|$)|^#`)
	whitespaceRE  = regexp.MustCompile(`\s+`)
)

const emptySlotScope = "_empty_"

func isDynamicArg(name string) bool {
	return len(name) >= 2 && name[0] == '[' && name[len(name)-1] == ']'
}

func processRawAttrs(el *element) {
	if len(el.AttrsList) == 0 {
		if !el.Pre {
			el.Plain = true
		}
		return
	}
	for _, a := range el.AttrsList {
		el.Attrs = append(el.Attrs, attr{Name: a.Name, Value: jsonString(a.Value)})
	}
}

func processFor(el *element, errs *errorList) {
	exp, ok := el.getAndRemoveAttr("v-for")
	if !ok {
		return
	}
	m := forAliasRE.FindStringSubmatch(exp)
	if m == nil {
		errs.add("Invalid v-for expression: %s", exp)
		return
	}
	el.For = strings.TrimSpace(m[2])
	alias := strings.TrimSpace(m[1])
	alias = strings.TrimSuffix(strings.TrimPrefix(alias, "("), ")")

	if it := forIteratorRE.FindStringSubmatchIndex(alias); it != nil {
		el.Iterator1 = strings.TrimSpace(alias[it[2]:it[3]])
		if it[4] >= 0 {
			el.Iterator2 = strings.TrimSpace(alias[it[4]:it[5]])
		}
		alias = strings.TrimSpace(alias[:it[0]])
	}
	el.Alias = alias
}

func processIf(el *element) {
	if exp, ok := el.getAndRemoveAttr("v-if"); ok && exp != "" {
		el.If = exp
		el.addIfCondition(ifCondition{Exp: exp, Block: el})
		return
	}
	if _, ok := el.getAndRemoveAttr("v-else"); ok {
		el.Else = true
	}
	if exp, ok := el.getAndRemoveAttr("v-else-if"); ok && exp != "" {
		el.ElseIf = exp
	}
}

func processOnce(el *element) {
	if _, ok := el.getAndRemoveAttr("v-once"); ok {
		el.Once = true
	}
}

func processElement(el *element, errs *errorList) {
	processKey(el, errs)
	el.Plain = el.Key == "" && len(el.ScopedSlots) == 0 && len(el.AttrsList) == 0

	processRef(el)
	processSlotContent(el, errs)
	processSlotOutlet(el)
	processComponent(el)
	transformClass(el)
	transformStyle(el)
	processAttrs(el, errs)
}

func processKey(el *element, errs *errorList) {
	exp, ok := el.getBindingAttr("key", true)
	if !ok {
		return
	}
	if el.Tag == "template" {
		errs.add("<template> cannot be keyed. Place the key on real elements instead.")
	}
	el.Key = exp
}

func processRef(el *element) {
	if ref, ok := el.getBindingAttr("ref", true); ok {
		el.Ref = ref
		el.RefInFor = el.inFor()
	}
}

func processSlotContent(el *element, errs *errorList) {
	if el.Tag == "template" {
		if scope, ok := el.getAndRemoveAttr("scope"); ok {
			el.SlotScope, el.hasSlotScope = scope, true
		} else if scope, ok := el.getAndRemoveAttr("slot-scope"); ok {
			el.SlotScope, el.hasSlotScope = scope, true
		}
	} else if scope, ok := el.getAndRemoveAttr("slot-scope"); ok {
		el.SlotScope, el.hasSlotScope = scope, true
	}

	if target, ok := el.getBindingAttr("slot", true); ok {
		if target == `""` {
			target = `"default"`
		}
		el.SlotTarget = target
		el.SlotTargetDynamic = el.hasAttr(":slot") || el.hasAttr("v-bind:slot")
		if el.Tag != "template" && !el.hasSlotScope {
			el.addAttr("slot", target, false)
		}
	}

	binding, ok := takeSlotBinding(el)
	if !ok {
		return
	}
	if el.SlotTarget != "" || el.hasSlotScope {
		errs.add("Unexpected mixed usage of different slot syntaxes.")
		return
	}

	name, dynamic := slotName(binding.Name)
	scope := binding.Value
	if scope == "" {
		scope = emptySlotScope
	}

	if el.Tag == "template" {
		el.SlotTarget = name
		el.SlotTargetDynamic = dynamic
		el.SlotScope, el.hasSlotScope = scope, true
		return
	}

	// v-slot on a component: wrap its children in an implicit default slot.
	container := newElement("template", nil, el)
	container.SlotTarget = name
	container.SlotTargetDynamic = dynamic
	container.SlotScope, container.hasSlotScope = scope, true
	for _, c := range el.Children {
		if child, isEl := c.(*element); isEl {
			if child.hasSlotScope {
				continue
			}
			child.Parent = container
		}
		container.Children = append(container.Children, c)
	}
	setScopedSlot(el, name, container)
	el.Children = nil
	el.Plain = false
}

func takeSlotBinding(el *element) (rawAttr, bool) {
	for _, a := range el.AttrsList {
		if slotRE.MatchString(a.Name) {
			el.getAndRemoveAttr(a.Name)
			return a, true
		}
	}
	return rawAttr{}, false
}

func slotName(binding string) (string, bool) {
	name := slotRE.ReplaceAllString(binding, "")
	if name == "" {
		name = "default"
	}
	if isDynamicArg(name) {
		return name[1 : len(name)-1], true
	}
	return `"` + name + `"`, false
}

func processSlotOutlet(el *element) {
	if el.Tag != "slot" {
		return
	}
	if name, ok := el.getBindingAttr("name", true); ok {
		el.SlotName = name
	}
}

func processComponent(el *element) {
	if binding, ok := el.getBindingAttr("is", true); ok {
		el.Component = binding
	}
}

func transformClass(el *element) {
	if static, ok := el.getAndRemoveAttr("class"); ok && static != "" {
		el.StaticClass = jsonString(strings.TrimSpace(whitespaceRE.ReplaceAllString(static, " ")))
	}
	if binding, ok := el.getBindingAttr("class", false); ok && binding != "" {
		el.ClassBinding = binding
	}
}

func transformStyle(el *element) {
	if static, ok := el.getAndRemoveAttr("style"); ok && static != "" {
		el.StaticStyle = parseStyleText(static)
	}
	if binding, ok := el.getBindingAttr("style", false); ok && binding != "" {
		el.StyleBinding = binding
	}
}

// parseStyleText converts an inline style attribute into an object literal.
// Semicolons inside parentheses (data URIs) do not split declarations.
func parseStyleText(css string) string {
	var parts []string
	depth := 0
	start := 0
	var items []string
	for i := 0; i < len(css); i++ {
		switch css[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				items = append(items, css[start:i])
				start = i + 1
			}
		}
	}
	items = append(items, css[start:])

	seen := make(map[string]int)
	for _, item := range items {
		idx := strings.IndexByte(item, ':')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(item[:idx])
		value := strings.TrimSpace(item[idx+1:])
		if value == "" && idx == len(item)-1 {
			continue
		}
		if i, dup := seen[key]; dup {
			parts[i] = jsonString(key) + ":" + jsonString(value)
			continue
		}
		seen[key] = len(parts)
		parts = append(parts, jsonString(key)+":"+jsonString(value))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// splitModifiers separates `.mod` suffixes from an attribute name. Dots inside
// a dynamic [argument] are not modifiers.
func splitModifiers(name string) (string, []string) {
	searchFrom := strings.LastIndexByte(name, ']') + 1
	dot := strings.IndexByte(name[searchFrom:], '.')
	if dot < 0 {
		return name, nil
	}
	dot += searchFrom
	var mods []string
	for _, m := range strings.Split(name[dot+1:], ".") {
		if m != "" {
			mods = append(mods, m)
		}
	}
	return name[:dot], mods
}

func hasModifier(mods []string, name string) bool {
	for _, m := range mods {
		if m == name {
			return true
		}
	}
	return false
}

func processAttrs(el *element, errs *errorList) {
	for _, a := range el.AttrsList {
		rawName := a.Name
		value := a.Value

		if !dirRE.MatchString(rawName) {
			el.addAttr(rawName, jsonString(value), false)
			if el.Component == "" && rawName == "muted" && mustUseProp(el.Tag, el.AttrsMap["type"], rawName) {
				el.addProp(rawName, "true", false)
			}
			continue
		}

		el.HasBindings = true
		name, modifiers := splitModifiers(rawName)

		switch {
		case bindRE.MatchString(name):
			processBind(el, bindRE.ReplaceAllString(name, ""), value, modifiers, errs)
		case onRE.MatchString(name):
			name = onRE.ReplaceAllString(name, "")
			dynamic := isDynamicArg(name)
			if dynamic {
				name = name[1 : len(name)-1]
			}
			checkHandler(value, rawName, errs)
			addHandler(el, name, value, modifiers, false, dynamic)
		default:
			name = dirRE.ReplaceAllString(name, "")
			d := directive{Name: name, RawName: rawName, Value: value, Modifiers: modifiers}
			if m := argRE.FindStringSubmatchIndex(name); m != nil {
				d.Arg = name[m[2]:m[3]]
				d.Name = name[:m[0]]
				if isDynamicArg(d.Arg) {
					d.Arg = d.Arg[1 : len(d.Arg)-1]
					d.DynamicArg = true
				}
			}
			if value != "" && d.Name != "slot" {
				checkExpression(value, rawName, errs)
			}
			el.addDirective(d)
		}
	}
}

func processBind(el *element, name, value string, modifiers []string, errs *errorList) {
	value = parseFilters(value)
	checkExpression(value, "v-bind:"+name, errs)

	dynamic := isDynamicArg(name)
	if dynamic {
		name = name[1 : len(name)-1]
	}

	isProp := false
	if len(modifiers) > 0 && !dynamic {
		if hasModifier(modifiers, "prop") {
			isProp = true
			name = camelize(name)
			if name == "innerHtml" {
				name = "innerHTML"
			}
		}
		if hasModifier(modifiers, "camel") {
			name = camelize(name)
		}
	}
	if hasModifier(modifiers, "sync") {
		syncGen := genAssignmentCode(value, "$event")
		if dynamic {
			addHandler(el, `"update:"+(`+name+`)`, syncGen, nil, false, true)
		} else {
			addHandler(el, "update:"+camelize(name), syncGen, nil, false, false)
			if hyphenate(name) != camelize(name) {
				addHandler(el, "update:"+hyphenate(name), syncGen, nil, false, false)
			}
		}
	}

	if isProp || (el.Component == "" && !dynamic && mustUseProp(el.Tag, el.AttrsMap["type"], name)) {
		el.addProp(name, value, dynamic)
		return
	}
	el.addAttr(name, value, dynamic)
}

func prependMarker(symbol, name string, dynamic bool) string {
	if dynamic {
		return "_p(" + name + `,"` + symbol + `")`
	}
	return symbol + name
}

// addHandler registers an event listener. capture, once and passive are
// folded into the event name; native moves the listener to nativeOn.
func addHandler(el *element, name, value string, modifiers []string, important, dynamic bool) {
	h := handler{Value: strings.TrimSpace(value), HasModifiers: modifiers != nil}
	native := false

	for _, m := range modifiers {
		switch m {
		case "right":
			if !dynamic && name == "click" {
				name = "contextmenu"
				continue
			}
		case "middle":
			if !dynamic && name == "click" {
				name = "mouseup"
			}
		case "capture", "once", "passive":
			continue
		case "native":
			native = true
			continue
		}
		h.Modifiers = append(h.Modifiers, m)
	}
	if hasModifier(modifiers, "capture") {
		name = prependMarker("!", name, dynamic)
	}
	if hasModifier(modifiers, "once") {
		name = prependMarker("~", name, dynamic)
	}
	if hasModifier(modifiers, "passive") {
		name = prependMarker("&", name, dynamic)
	}
	events := &el.Events
	if native {
		events = &el.NativeEvents
	}
	if *events == nil {
		*events = &eventMap{}
	}
	(*events).add(name, dynamic, h, important)
	el.Plain = false
}

// parseModel splits a v-model path into the object and key to assign
// through $set. key is empty for a plain identifier or dotted path tail.
func parseModel(val string) (exp, key string) {
	val = strings.TrimSpace(val)
	if !strings.Contains(val, "[") || strings.LastIndexByte(val, ']') < len(val)-1 {
		if i := strings.LastIndexByte(val, '.'); i > -1 {
			return val[:i], `"` + val[i+1:] + `"`
		}
		return val, ""
	}

	depth := 0
	for i := len(val) - 1; i >= 0; i-- {
		switch val[i] {
		case ']':
			depth++
		case '[':
			depth--
			if depth == 0 {
				return val[:i], val[i+1 : len(val)-1]
			}
		}
	}
	return val, ""
}

func genAssignmentCode(value, assignment string) string {
	exp, key := parseModel(value)
	if key == "" {
		return value + "=" + assignment
	}
	return "$set(" + exp + ", " + key + ", " + assignment + ")"
}
