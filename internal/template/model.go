package template

// genModel lowers v-model. Native form elements get a value binding plus a
// listener; components get a model descriptor instead.
func genModel(el *element, dir directive, state *codegenState) bool {
	value := dir.Value
	typ := el.AttrsMap["type"]

	if el.Tag == "input" && typ == "file" {
		state.errs.add(`<%s v-model="%s" type="file">: File inputs are read only. Use a v-on:change listener instead.`, el.Tag, value)
		return false
	}

	switch {
	case el.Component != "":
		genComponentModel(el, value, dir.Modifiers)
		return false
	case el.Tag == "select":
		genSelectModel(el, value, dir.Modifiers)
	case el.Tag == "input" && typ == "checkbox":
		genCheckboxModel(el, value, dir.Modifiers)
	case el.Tag == "input" && typ == "radio":
		genRadioModel(el, value, dir.Modifiers)
	case el.Tag == "input" || el.Tag == "textarea":
		genDefaultModel(el, value, dir.Modifiers)
	case !isReservedTag(el.Tag):
		genComponentModel(el, value, dir.Modifiers)
		return false
	default:
		state.errs.add(`<%s v-model="%s">: v-model is not supported on this element type.`, el.Tag, value)
	}
	return true
}

func genComponentModel(el *element, value string, modifiers []string) {
	valueExpression := "$$v"
	if hasModifier(modifiers, "trim") {
		valueExpression = "(typeof $$v === 'string'? $$v.trim(): $$v)"
	}
	if hasModifier(modifiers, "number") {
		valueExpression = "_n(" + valueExpression + ")"
	}
	el.Model = &componentModel{
		Value:      "(" + value + ")",
		Expression: jsonString(value),
		Callback:   "function ($$v) {" + genAssignmentCode(value, valueExpression) + "}",
	}
	el.Plain = false
}

func bindingOr(el *element, name, fallback string) string {
	if v, ok := el.getBindingAttr(name, true); ok {
		return v
	}
	return fallback
}

func genCheckboxModel(el *element, value string, modifiers []string) {
	valueBinding := bindingOr(el, "value", "null")
	trueValue := bindingOr(el, "true-value", "true")
	falseValue := bindingOr(el, "false-value", "false")

	checked := "Array.isArray(" + value + ")?_i(" + value + "," + valueBinding + ")>-1"
	if trueValue == "true" {
		checked += ":(" + value + ")"
	} else {
		checked += ":_q(" + value + "," + trueValue + ")"
	}
	el.addProp("checked", checked, false)

	v := valueBinding
	if hasModifier(modifiers, "number") {
		v = "_n(" + valueBinding + ")"
	}
	addHandler(el, "change",
		"var $$a="+value+",$$el=$event.target,$$c=$$el.checked?("+trueValue+"):("+falseValue+");"+
			"if(Array.isArray($$a)){var $$v="+v+",$$i=_i($$a,$$v);"+
			"if($$el.checked){$$i<0&&("+genAssignmentCode(value, "$$a.concat([$$v])")+")}"+
			"else{$$i>-1&&("+genAssignmentCode(value, "$$a.slice(0,$$i).concat($$a.slice($$i+1))")+")}"+
			"}else{"+genAssignmentCode(value, "$$c")+"}",
		nil, true, false)
}

func genRadioModel(el *element, value string, modifiers []string) {
	valueBinding := bindingOr(el, "value", "null")
	if hasModifier(modifiers, "number") {
		valueBinding = "_n(" + valueBinding + ")"
	}
	el.addProp("checked", "_q("+value+","+valueBinding+")", false)
	addHandler(el, "change", genAssignmentCode(value, valueBinding), nil, true, false)
}

func genSelectModel(el *element, value string, modifiers []string) {
	selected := "val"
	if hasModifier(modifiers, "number") {
		selected = "_n(val)"
	}
	code := "var $$selectedVal = Array.prototype.filter.call($event.target.options,function(o){return o.selected})" +
		`.map(function(o){var val = "_value" in o ? o._value : o.value;return ` + selected + "});"
	code += " " + genAssignmentCode(value, "$event.target.multiple ? $$selectedVal : $$selectedVal[0]")
	addHandler(el, "change", code, nil, true, false)
}

func genDefaultModel(el *element, value string, modifiers []string) {
	typ := el.AttrsMap["type"]
	lazy := hasModifier(modifiers, "lazy")
	number := hasModifier(modifiers, "number")
	trim := hasModifier(modifiers, "trim")

	event := "input"
	switch {
	case lazy:
		event = "change"
	case typ == "range":
		event = "__r"
	}

	valueExpression := "$event.target.value"
	if trim {
		valueExpression = "$event.target.value.trim()"
	}
	if number {
		valueExpression = "_n(" + valueExpression + ")"
	}

	code := genAssignmentCode(value, valueExpression)
	if !lazy && typ != "range" {
		code = "if($event.target.composing)return;" + code
	}

	el.addProp("value", "("+value+")", false)
	addHandler(el, event, code, nil, true, false)
	if trim || number {
		addHandler(el, "blur", "$forceUpdate()", nil, false, false)
	}
}
