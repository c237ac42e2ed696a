package template

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf16"
)

func makeSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		set[item] = true
	}
	return set
}

var (
	htmlTags = makeSet("html,body,base,head,link,meta,style,title,address,article,aside,footer,header," +
		"h1,h2,h3,h4,h5,h6,hgroup,nav,section,div,dd,dl,dt,figcaption,figure,picture,hr,img,li,main,ol,p,pre," +
		"ul,a,b,abbr,bdi,bdo,br,cite,code,data,dfn,em,i,kbd,mark,q,rp,rt,rtc,ruby,s,samp,small,span,strong,sub," +
		"sup,time,u,var,wbr,area,audio,map,track,video,embed,object,param,source,canvas,script,noscript,del,ins," +
		"caption,col,colgroup,table,thead,tbody,td,th,tr,button,datalist,fieldset,form,input,label,legend,meter," +
		"optgroup,option,output,progress,select,textarea,details,dialog,menu,menuitem,summary,content,element," +
		"shadow,template,blockquote,iframe,tfoot")

	svgTags = makeSet("svg,animate,circle,clippath,cursor,defs,desc,ellipse,filter,font-face,foreignobject," +
		"g,glyph,image,line,marker,mask,missing-glyph,path,pattern,polygon,polyline,rect,switch,symbol,text," +
		"textpath,tspan,use,view")

	unaryTags = makeSet("area,base,br,col,embed,frame,hr,img,input,isindex,keygen,link,meta,param,source,track,wbr")

	acceptValue = makeSet("input,textarea,option,select,progress")
)

func isReservedTag(tag string) bool {
	return htmlTags[tag] || svgTags[tag]
}

func isBuiltInTag(tag string) bool {
	return tag == "slot" || tag == "component"
}

// mustUseProp reports attributes that only work as DOM properties.
func mustUseProp(tag, typ, name string) bool {
	return (name == "value" && acceptValue[tag] && typ != "button") ||
		(name == "selected" && tag == "option") ||
		(name == "checked" && tag == "input") ||
		(name == "muted" && tag == "video")
}

// jsonString quotes s as a JS string literal the way JSON.stringify does.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func jsonBoolMap(keys []string) string {
	if len(keys) == 0 {
		return "{}"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = jsonString(k) + ":true"
	}
	return "{" + strings.Join(parts, ",") + "}"
}

var camelizeRE = regexp.MustCompile(`-(\w)`)

func camelize(s string) string {
	return camelizeRE.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

func hyphenate(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && isWordByte(s[i-1]) {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// slotHash mirrors the string hash used to key conditional scoped slots.
func slotHash(s string) uint32 {
	var h int32 = 5381
	units := utf16.Encode([]rune(s))
	for i := len(units) - 1; i >= 0; i-- {
		h = (h * 33) ^ int32(units[i])
	}
	return uint32(h)
}
