package template

type nodeType int

const (
	elementNode    nodeType = 1
	expressionNode nodeType = 2
	textNode       nodeType = 3
)

type node interface {
	kind() nodeType
}

type rawAttr struct {
	Name  string
	Value string
}

// attr is a generated attribute or dom prop; Value is already JS source.
type attr struct {
	Name    string
	Value   string
	Dynamic bool
}

type ifCondition struct {
	Exp   string
	Block *element
}

type handler struct {
	Value     string
	Modifiers []string
	// HasModifiers stays true once any modifier was written, even if all of
	// them were consumed by the event name.
	HasModifiers bool
}

func (h handler) has(modifier string) bool {
	for _, m := range h.Modifiers {
		if m == modifier {
			return true
		}
	}
	return false
}

type eventMap struct {
	names    []string
	dynamic  map[string]bool
	handlers map[string][]handler
}

func (m *eventMap) add(name string, dynamic bool, h handler, important bool) {
	if m.handlers == nil {
		m.handlers = make(map[string][]handler)
		m.dynamic = make(map[string]bool)
	}
	existing, ok := m.handlers[name]
	if !ok {
		m.names = append(m.names, name)
		m.dynamic[name] = dynamic
	}
	if important {
		m.handlers[name] = append([]handler{h}, existing...)
		return
	}
	m.handlers[name] = append(existing, h)
}

type directive struct {
	Name       string
	RawName    string
	Value      string
	Arg        string
	DynamicArg bool
	Modifiers  []string
}

type componentModel struct {
	Value      string
	Callback   string
	Expression string
}

type element struct {
	Tag       string
	AttrsList []rawAttr
	AttrsMap  map[string]string
	Parent    *element
	Children  []node

	Plain       bool
	Pre         bool
	HasBindings bool
	Forbidden   bool

	For       string
	Alias     string
	Iterator1 string
	Iterator2 string

	If           string
	ElseIf       string
	Else         bool
	IfConditions []ifCondition

	Once     bool
	Key      string
	Ref      string
	RefInFor bool

	SlotName          string
	SlotTarget        string
	SlotTargetDynamic bool
	SlotScope         string
	hasSlotScope      bool
	ScopedSlots       []*element

	Component string

	StaticClass  string
	ClassBinding string
	StaticStyle  string
	StyleBinding string

	Attrs        []attr
	DynamicAttrs []attr
	Props        []attr
	Events       *eventMap
	NativeEvents *eventMap
	Directives   []directive
	Model        *componentModel

	wrapData      func(string) string
	wrapListeners func(string) string

	static          bool
	staticRoot      bool
	staticInFor     bool
	staticProcessed bool
	onceProcessed   bool
	forProcessed    bool
	ifProcessed     bool
}

func (e *element) kind() nodeType { return elementNode }

type textNodeData struct {
	Text       string
	Expression string
}

func (t *textNodeData) kind() nodeType {
	if t.Expression != "" {
		return expressionNode
	}
	return textNode
}

func newElement(tag string, attrs []rawAttr, parent *element) *element {
	el := &element{
		Tag:       tag,
		AttrsList: attrs,
		AttrsMap:  make(map[string]string, len(attrs)),
		Parent:    parent,
	}
	for _, a := range attrs {
		el.AttrsMap[a.Name] = a.Value
	}
	return el
}

func (e *element) hasAttr(name string) bool {
	_, ok := e.AttrsMap[name]
	return ok
}

// getAndRemoveAttr drops name from the pending attribute list. The attribute
// map keeps it so later checks can still see what was written.
func (e *element) getAndRemoveAttr(name string) (string, bool) {
	value, ok := e.AttrsMap[name]
	if !ok {
		return "", false
	}
	for i, a := range e.AttrsList {
		if a.Name == name {
			e.AttrsList = append(e.AttrsList[:i], e.AttrsList[i+1:]...)
			break
		}
	}
	return value, true
}

// getBindingAttr reads :name / v-bind:name, falling back to the static
// attribute encoded as a string literal.
func (e *element) getBindingAttr(name string, getStatic bool) (string, bool) {
	if v, ok := e.getAndRemoveAttr(":" + name); ok {
		return parseFilters(v), true
	}
	if v, ok := e.getAndRemoveAttr("v-bind:" + name); ok {
		return parseFilters(v), true
	}
	if getStatic {
		if v, ok := e.getAndRemoveAttr(name); ok {
			return jsonString(v), true
		}
	}
	return "", false
}

func (e *element) addAttr(name, value string, dynamic bool) {
	if dynamic {
		e.DynamicAttrs = append(e.DynamicAttrs, attr{Name: name, Value: value, Dynamic: true})
	} else {
		e.Attrs = append(e.Attrs, attr{Name: name, Value: value})
	}
	e.Plain = false
}

func (e *element) addProp(name, value string, dynamic bool) {
	e.Props = append(e.Props, attr{Name: name, Value: value, Dynamic: dynamic})
	e.Plain = false
}

func (e *element) addDirective(d directive) {
	e.Directives = append(e.Directives, d)
	e.Plain = false
}

func (e *element) addIfCondition(cond ifCondition) {
	e.IfConditions = append(e.IfConditions, cond)
}

func (e *element) elementChildren() []*element {
	var out []*element
	for _, c := range e.Children {
		if el, ok := c.(*element); ok {
			out = append(out, el)
		}
	}
	return out
}

func (e *element) inFor() bool {
	for p := e; p != nil; p = p.Parent {
		if p.For != "" {
			return true
		}
	}
	return false
}
