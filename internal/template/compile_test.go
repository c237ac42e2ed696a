package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		opts    Options
		render  string
		statics []string
	}{
		{
			name:   "empty template",
			markup: "",
			render: `with(this){return _c("div")}`,
		},
		{
			name:   "interpolation",
			markup: `<div id="app">{{ msg }}</div>`,
			render: `with(this){return _c('div',{attrs:{"id":"app"}},[_v(_s(msg))])}`,
		},
		{
			name:   "text mixed with interpolation",
			markup: `<p>Hello {{ name | upper }}!</p>`,
			render: `with(this){return _c('p',[_v("Hello "+_s(_f("upper")(name))+"!")])}`,
		},
		{
			name:    "static subtree is hoisted",
			markup:  `<div><ul><li>a</li></ul><p>{{ x }}</p></div>`,
			render:  `with(this){return _c('div',[_m(0),_c('p',[_v(_s(x))])])}`,
			statics: []string{`with(this){return _c('ul',[_c('li',[_v("a")])])}`},
		},
		{
			name:   "single text child is not hoisted",
			markup: `<div><p class="a">hello</p><span>{{ x }}</span></div>`,
			render: `with(this){return _c('div',[_c('p',{staticClass:"a"},[_v("hello")]),_c('span',[_v(_s(x))])])}`,
		},
		{
			name:   "conditional chain",
			markup: `<div><p v-if="a">A</p><p v-else-if="b">B</p><p v-else>C</p></div>`,
			render: `with(this){return _c('div',[(a)?_c('p',[_v("A")]):(b)?_c('p',[_v("B")]):_c('p',[_v("C")])])}`,
		},
		{
			name:   "conditional without else",
			markup: `<div><p v-if="a">A</p></div>`,
			render: `with(this){return _c('div',[(a)?_c('p',[_v("A")]):_e()])}`,
		},
		{
			name:   "list",
			markup: `<ul><li v-for="(item, i) in items" :key="i">{{ item }}</li></ul>`,
			render: `with(this){return _c('ul',_l((items),function(item,i){return _c('li',{key:i},[_v(_s(item))])}),0)}`,
		},
		{
			name:   "inline handler",
			markup: `<button @click="count++">+</button>`,
			render: `with(this){return _c('button',{on:{"click":function($event){count++}}},[_v("+")])}`,
		},
		{
			name:   "method handler",
			markup: `<button v-on:click="save">save</button>`,
			render: `with(this){return _c('button',{on:{"click":save}},[_v("save")])}`,
		},
		{
			name:   "handler with modifier",
			markup: `<form @submit.prevent="send"></form>`,
			render: `with(this){return _c('form',{on:{"submit":function($event){$event.preventDefault();return send.apply(null, arguments)}}})}`,
		},
		{
			name:   "model on input",
			markup: `<input v-model="msg">`,
			render: `with(this){return _c('input',{directives:[{name:"model",rawName:"v-model",value:(msg),expression:"msg"}],domProps:{"value":(msg)},on:{"input":function($event){if($event.target.composing)return;msg=$event.target.value}}})}`,
		},
		{
			name:   "model on component",
			markup: `<my-input v-model="msg"></my-input>`,
			render: `with(this){return _c('my-input',{model:{value:(msg),callback:function ($$v) {msg=$$v},expression:"msg"}})}`,
		},
		{
			name:   "bound class and style",
			markup: `<div class="box" :class="{on: active}" :style="{color: c}"></div>`,
			render: `with(this){return _c('div',{staticClass:"box",class:{on: active},style:({color: c})})}`,
		},
		{
			name:   "slot outlet with fallback",
			markup: `<div><slot name="head">none</slot></div>`,
			render: `with(this){return _c('div',[_t("head",function(){return [_v("none")]})],2)}`,
		},
		{
			name:   "whitespace dropped",
			markup: "<div>\n  <span>a</span>\n  <span>{{ b }}</span>\n</div>",
			render: `with(this){return _c('div',[_c('span',[_v("a")]),_c('span',[_v(_s(b))])])}`,
		},
		{
			name:   "whitespace preserved",
			markup: "<div>\n  <span>a</span>\n  <span>{{ b }}</span>\n</div>",
			opts:   Options{PreserveWhitespace: true},
			render: `with(this){return _c('div',[_c('span',[_v("a")]),_v(" "),_c('span',[_v(_s(b))])])}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.markup, tt.opts)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got.Render != tt.render {
				t.Errorf("Compile() render =\n%s\nwant\n%s", got.Render, tt.render)
			}
			if len(got.StaticRenderFns) != len(tt.statics) {
				t.Fatalf("Compile() statics = %v, want %v", got.StaticRenderFns, tt.statics)
			}
			for i := range tt.statics {
				if got.StaticRenderFns[i] != tt.statics[i] {
					t.Errorf("Compile() static %d = %s, want %s", i, got.StaticRenderFns[i], tt.statics[i])
				}
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "multiple roots",
			markup: `<div></div><p></p>`,
			want:   "exactly one root element",
		},
		{
			name:   "text root",
			markup: `hello`,
			want:   "requires a root element",
		},
		{
			name:   "slot as root",
			markup: `<slot></slot>`,
			want:   "Cannot use <slot> as component root element",
		},
		{
			name:   "invalid expression",
			markup: `<div :title="a +"></div>`,
			want:   "invalid expression",
		},
		{
			name:   "invalid for",
			markup: `<ul><li v-for="items">x</li></ul>`,
			want:   "Invalid v-for expression: items",
		},
		{
			name:   "else without if",
			markup: `<div><p v-else>x</p></div>`,
			want:   "v-else used on element <p> without corresponding v-if",
		},
		{
			name:   "unclosed tag",
			markup: `<div><span></div>`,
			want:   "tag <span> has no matching end tag",
		},
		{
			name:   "script in template",
			markup: `<div><script>alert(1)</script></div>`,
			want:   "Templates should only be responsible for mapping the state to the UI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.markup, Options{})
			if err == nil {
				t.Fatal("Compile() error = nil, want error")
			}
			if !errors.Is(err, core.ErrTemplate) {
				t.Errorf("Compile() error = %v, want it to wrap core.ErrTemplate", err)
			}
			if !strings.HasPrefix(err.Error(), "Error compiling template:") {
				t.Errorf("Compile() error = %q, want compile error header", err.Error())
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Compile() error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestCompileTodoTemplate(t *testing.T) {
	markup := `<div class="todo">
  <header><h1>Todos</h1><small>static</small></header>
  <input v-model.trim="draft" @keyup.enter="add">
  <ul v-if="items.length">
    <li v-for="item in items" :key="item.id" :class="{done: item.done}">
      <input type="checkbox" v-model="item.done">
      <span @click.stop="toggle(item)">{{ item.title }}</span>
    </li>
  </ul>
  <p v-else>Nothing to do</p>
  <todo-footer :count="items.length">
    <template #actions="{ clear }"><button @click="clear">clear</button></template>
  </todo-footer>
</div>`

	got, err := Compile(markup, Options{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	for _, want := range []string{
		"_m(0)",
		"$event.target.value.trim()",
		`_k($event.keyCode,"enter"`,
		"$event.stopPropagation();",
		"_l((items),function(item){",
		"(items.length)?",
		`_v("Nothing to do")`,
		"_c('todo-footer'",
		"scopedSlots:_u([",
	} {
		if !strings.Contains(got.Render, want) {
			t.Errorf("render missing %q:\n%s", want, got.Render)
		}
	}

	header := `with(this){return _c('header',[_c('h1',[_v("Todos")]),_c('small',[_v("static")])])}`
	if len(got.StaticRenderFns) != 1 || got.StaticRenderFns[0] != header {
		t.Errorf("statics = %v, want [%s]", got.StaticRenderFns, header)
	}
}
