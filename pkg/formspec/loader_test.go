package formspec_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpreview/pkg/formspec"
	"github.com/goliatone/go-formpreview/pkg/model"
)

func TestLoadFS_Embedded(t *testing.T) {
	store, err := formspec.LoadFS(formspec.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}

	want := []string{"login", "problem", "profile", "register", "testcase"}
	if diff := cmp.Diff(want, store.IDs()); diff != "" {
		t.Fatalf("form ids mismatch (-want +got):\n%s", diff)
	}

	login, ok := store.Form("login")
	if !ok {
		t.Fatalf("login form missing")
	}
	if login.Method != "POST" || login.Endpoint != "/login" {
		t.Fatalf("unexpected login target: %s %s", login.Method, login.Endpoint)
	}
	if diff := cmp.Diff([]string{"username", "password"}, login.FieldNames()); diff != "" {
		t.Fatalf("login fields mismatch (-want +got):\n%s", diff)
	}
	if store.Source("login") != "login.yaml" {
		t.Fatalf("unexpected source %q", store.Source("login"))
	}

	problem, _ := store.Form("problem")
	memory, ok := problem.Field("memory_limit_kb")
	if !ok {
		t.Fatalf("memory_limit_kb missing")
	}
	min, max, ok := memory.Bounds()
	if !ok || min != 1024 || max != 262144 {
		t.Fatalf("unexpected bounds %v..%v (ok=%v)", min, max, ok)
	}
	if memory.Kind != model.FieldKindRange || memory.Default != "65536" {
		t.Fatalf("unexpected memory field: %+v", memory)
	}
}

func TestLoad_OverlaysDirectory(t *testing.T) {
	store, err := formspec.Load("testdata/custom")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	login, _ := store.Form("login")
	if login.Endpoint != "/auth" || login.Method != "POST" {
		t.Fatalf("expected overlaid login, got %s %s", login.Method, login.Endpoint)
	}
	otp, ok := login.Field("otp")
	if !ok {
		t.Fatalf("otp field missing")
	}
	wantRules := []model.ValidationRule{model.Rule(model.ValidationRulePattern, "^[0-9]{6}$")}
	if diff := cmp.Diff(wantRules, otp.Validations); diff != "" {
		t.Fatalf("otp rules mismatch (-want +got):\n%s", diff)
	}
	if otp.Kind != model.FieldKindText || !otp.Required {
		t.Fatalf("unexpected otp field: %+v", otp)
	}

	if _, ok := store.Form("problem"); !ok {
		t.Fatalf("embedded forms should survive the overlay")
	}
	contest, ok := store.Form("contest")
	if !ok {
		t.Fatalf("contest form missing")
	}
	wantRules = []model.ValidationRule{
		model.Rule(model.ValidationRuleMinLength, 4),
		model.Rule(model.ValidationRuleMaxLength, 12),
	}
	if diff := cmp.Diff(wantRules, contest.Fields[0].Validations); diff != "" {
		t.Fatalf("contest rules mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := formspec.Load("testdata/missing"); err == nil {
		t.Fatalf("expected missing directory error")
	}

	tests := map[string]string{
		"empty file":     "",
		"bad syntax":     "forms: [",
		"no fields":      "forms:\n  a:\n    summary: x\n",
		"bad kind":       "forms:\n  a:\n    fields:\n      - name: x\n        kind: color\n",
		"range no bound": "forms:\n  a:\n    fields:\n      - name: x\n        kind: range\n        min: 1\n",
		"swapped bounds": "forms:\n  a:\n    fields:\n      - name: x\n        kind: range\n        min: 5\n        max: 1\n",
		"bad name":       "forms:\n  a:\n    fields:\n      - name: \"1x\"\n",
		"duplicate":      "forms:\n  a:\n    fields:\n      - name: x\n      - name: x\n",
		"bad pattern":    "forms:\n  a:\n    fields:\n      - name: x\n        pattern: \"(\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"forms.yaml": {Data: []byte(content)}}
			_, err := formspec.LoadFS(fsys)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.HasPrefix(err.Error(), "formspec:") {
				t.Fatalf("error should carry the package prefix: %v", err)
			}
		})
	}
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	doc := []byte("forms:\n  a:\n    fields:\n      - name: x\n")
	fsys := fstest.MapFS{
		"one.yaml":  {Data: doc},
		"two.yml":   {Data: doc},
		"notes.txt": {Data: []byte("ignored")},
	}
	if _, err := formspec.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "duplicate form") {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}

func TestLoadFS_Nil(t *testing.T) {
	store, err := formspec.LoadFS(nil)
	if err != nil {
		t.Fatalf("nil fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}
