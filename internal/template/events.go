package template

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fnExpRE      = regexp.MustCompile(`^([\w$_]+|\([^)]*?\))\s*=>|^function(?:\s+[\w$]+)?\s*\(`)
	fnInvokeRE   = regexp.MustCompile(`\([^)]*?\);*$`)
	simplePathRE = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*|\['[^']*?']|\["[^"]*?"]|\[\d+]|\[[A-Za-z_$][\w$]*])*$`)
)

var keyCodes = map[string]string{
	"esc":    "27",
	"tab":    "9",
	"enter":  "13",
	"space":  "32",
	"up":     "38",
	"left":   "37",
	"right":  "39",
	"down":   "40",
	"delete": "[8,46]",
}

var keyNames = map[string]string{
	"esc":    `["Esc","Escape"]`,
	"tab":    `"Tab"`,
	"enter":  `"Enter"`,
	"space":  `[" ","Spacebar"]`,
	"up":     `["Up","ArrowUp"]`,
	"left":   `["Left","ArrowLeft"]`,
	"right":  `["Right","ArrowRight"]`,
	"down":   `["Down","ArrowDown"]`,
	"delete": `["Backspace","Delete","Del"]`,
}

func genGuard(condition string) string {
	return "if(" + condition + ")return null;"
}

var modifierCode = map[string]string{
	"stop":    "$event.stopPropagation();",
	"prevent": "$event.preventDefault();",
	"self":    genGuard("$event.target !== $event.currentTarget"),
	"ctrl":    genGuard("!$event.ctrlKey"),
	"shift":   genGuard("!$event.shiftKey"),
	"alt":     genGuard("!$event.altKey"),
	"meta":    genGuard("!$event.metaKey"),
	"left":    genGuard("'button' in $event && $event.button !== 0"),
	"middle":  genGuard("'button' in $event && $event.button !== 1"),
	"right":   genGuard("'button' in $event && $event.button !== 2"),
}

func genHandlers(events *eventMap, native bool) string {
	prefix := "on:"
	if native {
		prefix = "nativeOn:"
	}

	var static, dynamic []string
	for _, name := range events.names {
		code := genHandlerList(events.handlers[name])
		if events.dynamic[name] {
			dynamic = append(dynamic, name+","+code)
		} else {
			static = append(static, `"`+name+`":`+code)
		}
	}

	obj := "{" + strings.Join(static, ",") + "}"
	if len(dynamic) > 0 {
		return prefix + "_d(" + obj + ",[" + strings.Join(dynamic, ",") + "])"
	}
	return prefix + obj
}

func genHandlerList(handlers []handler) string {
	if len(handlers) == 1 {
		return genHandler(handlers[0])
	}
	parts := make([]string, len(handlers))
	for i, h := range handlers {
		parts[i] = genHandler(h)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func genHandler(h handler) string {
	isMethodPath := simplePathRE.MatchString(h.Value)
	isFunctionExpression := fnExpRE.MatchString(h.Value)
	isFunctionInvocation := simplePathRE.MatchString(fnInvokeRE.ReplaceAllString(h.Value, ""))

	if !h.HasModifiers {
		if isMethodPath || isFunctionExpression {
			return h.Value
		}
		if isFunctionInvocation {
			return "function($event){return " + h.Value + "}"
		}
		return "function($event){" + h.Value + "}"
	}

	var code, guards strings.Builder
	var keys []string
	for _, m := range h.Modifiers {
		if mc, ok := modifierCode[m]; ok {
			guards.WriteString(mc)
			if _, isKey := keyCodes[m]; isKey {
				keys = append(keys, m)
			}
			continue
		}
		if m == "exact" {
			var conds []string
			for _, k := range []string{"ctrl", "shift", "alt", "meta"} {
				if !h.has(k) {
					conds = append(conds, "$event."+k+"Key")
				}
			}
			guards.WriteString(genGuard(strings.Join(conds, "||")))
			continue
		}
		keys = append(keys, m)
	}
	if len(keys) > 0 {
		code.WriteString(genKeyFilter(keys))
	}
	code.WriteString(guards.String())

	var body string
	switch {
	case isMethodPath:
		body = "return " + h.Value + ".apply(null, arguments)"
	case isFunctionExpression:
		body = "return (" + h.Value + ").apply(null, arguments)"
	case isFunctionInvocation:
		body = "return " + h.Value
	default:
		body = h.Value
	}
	return "function($event){" + code.String() + body + "}"
}

func genKeyFilter(keys []string) string {
	filters := make([]string, len(keys))
	for i, k := range keys {
		filters[i] = genFilterCode(k)
	}
	return "if(!$event.type.indexOf('key')&&" + strings.Join(filters, "&&") + ")return null;"
}

func genFilterCode(key string) string {
	if n, err := strconv.Atoi(key); err == nil && n != 0 {
		return "$event.keyCode!==" + strconv.Itoa(n)
	}
	code, ok := keyCodes[key]
	if !ok {
		code = "undefined"
	}
	name, ok := keyNames[key]
	if !ok {
		name = "undefined"
	}
	return "_k($event.keyCode," + jsonString(key) + "," + code + ",$event.key," + name + ")"
}
