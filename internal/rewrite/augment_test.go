package rewrite

import (
	"errors"
	"strings"
	"testing"

	"github.com/3-lines-studio/vuebuild/internal/core"
)

const testRender = "function render() {\n    return 1;\n}"

func fullAugmentation() core.Augmentation {
	return core.Augmentation{
		Render:    &core.RenderInfo{Render: testRender, StaticRenderFns: "[]"},
		HasStyles: true,
		ScopeID:   "data-v-1",
	}
}

const injectedAssignments = "%[1]s.render = function render() {\n    return 1;\n};\n" +
	"%[1]s.staticRenderFns = [];\n" +
	"%[1]s.functional = false;\n" +
	"%[1]s._compiled = true;\n" +
	"%[1]s._scopeId = \"data-v-1\";\n"

func assigned(target string) string {
	return strings.ReplaceAll(injectedAssignments, "%[1]s", target)
}

func TestAugmentExports(t *testing.T) {
	tests := []struct {
		name   string
		script string
		aug    core.Augmentation
		want   string
	}{
		{
			name:   "object literal",
			script: "export default {\n  name: 'hello'\n}",
			aug:    fullAugmentation(),
			want: "export default {name: 'hello', render: function render() {\n    return 1;\n}, " +
				"staticRenderFns: [], functional: false, _compiled: true, _scopeId: \"data-v-1\"};",
		},
		{
			name:   "identifier",
			script: "const Hello = {name: 'hello'};\nexport default Hello;",
			aug:    fullAugmentation(),
			want:   "const Hello = {name: 'hello'};\n" + assigned("Hello") + "export default Hello;",
		},
		{
			name:   "computed expression",
			script: "export default Vue.extend({name: 'hello'})",
			aug:    fullAugmentation(),
			want: "var _exportDefault = Vue.extend({name: 'hello'});\n" +
				assigned("_exportDefault") + "export default _exportDefault;",
		},
		{
			name:   "binding name already taken",
			script: "var _exportDefault = 1;\nexport default make(_exportDefault)",
			aug:    fullAugmentation(),
			want: "var _exportDefault = 1;\nvar _exportDefault2 = make(_exportDefault);\n" +
				assigned("_exportDefault2") + "export default _exportDefault2;",
		},
		{
			name:   "named function declaration",
			script: "export default function Hello() {}",
			aug:    fullAugmentation(),
			want:   "function Hello() {}\n" + assigned("Hello") + "export default Hello;",
		},
		{
			name:   "named class declaration",
			script: "export default class Hello extends Base {}",
			aug:    fullAugmentation(),
			want:   "class Hello extends Base {}\n" + assigned("Hello") + "export default Hello;",
		},
		{
			name:   "styles only",
			script: "export default {}",
			aug:    core.Augmentation{HasStyles: true, ScopeID: "data-v-1"},
			want:   `export default {_scopeId: "data-v-1"};`,
		},
		{
			name:   "template only",
			script: "export default {}",
			aug: core.Augmentation{
				Render: &core.RenderInfo{Render: "function render(_h, _vm) {}", StaticRenderFns: "[]", IsFunctional: true},
			},
			want: "export default {render: function render(_h, _vm) {}, staticRenderFns: [], functional: true, _compiled: true};",
		},
		{
			name:   "nothing to inject",
			script: "export default {\n  // kept verbatim\n}",
			aug:    core.Augmentation{ScopeID: "data-v-1"},
			want:   "export default {\n  // kept verbatim\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AugmentExports(tt.script, tt.aug)
			if err != nil {
				t.Fatalf("AugmentExports() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AugmentExports() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestAugmentExportsStaticRenderFns(t *testing.T) {
	aug := core.Augmentation{Render: &core.RenderInfo{
		Render:          testRender,
		StaticRenderFns: "[function render() {\n    return 2;\n},function render() {\n    return 3;\n}]",
	}}

	got, err := AugmentExports("export default {}", aug)
	if err != nil {
		t.Fatalf("AugmentExports() error = %v", err)
	}
	want := "staticRenderFns: [function render() {\n    return 2;\n}, function render() {\n    return 3;\n}]"
	if !strings.Contains(got, want) {
		t.Errorf("AugmentExports() = %s, want it to contain %s", got, want)
	}
}

func TestAugmentExportsErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{
			name:    "no default export",
			script:  "export const a = 1;",
			wantErr: core.ErrNoDefaultExport,
		},
		{
			name:    "two default exports",
			script:  "export default {};\nexport { a as default };",
			wantErr: core.ErrMultipleDefaultExports,
		},
		{
			name:    "re-exported default",
			script:  "const a = {};\nexport { a as default };",
			wantErr: core.ErrUnknownExportShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AugmentExports(tt.script, fullAugmentation())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AugmentExports() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAugmentExportsSyntaxError(t *testing.T) {
	_, err := AugmentExports("export default {", fullAugmentation())
	if err == nil {
		t.Fatal("AugmentExports() error = nil, want syntax error")
	}
}
