package template

// genFor renders v-for as a _l() call whose callback returns the element.
func genFor(el *element, state *codegenState, altGen func(*element, *codegenState) string) string {
	el.forProcessed = true

	params := el.Alias
	if el.Iterator1 != "" {
		params += "," + el.Iterator1
	}
	if el.Iterator2 != "" {
		params += "," + el.Iterator2
	}

	gen := genElement
	if altGen != nil {
		gen = altGen
	}
	return "_l((" + el.For + "),function(" + params + "){return " + gen(el, state) + "})"
}
