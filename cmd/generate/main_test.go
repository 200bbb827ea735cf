package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rakushite-inc/demo-obentou/config"
	"github.com/rakushite-inc/demo-obentou/generator"
	"github.com/rakushite-inc/demo-obentou/models"
)

const conditionsJSON = `{
  "budget": {"min": 400, "max": 700},
  "calories": {"min": 600, "max": 900},
  "allergens": [],
  "volume": "大",
  "genre": "中華",
  "region": "大阪府",
  "targetCustomer": "工場作業員",
  "healthFocus": "通常",
  "cookingMethod": "指定なし",
  "seasonalFocus": "通常"
}`

const oneMenu = `{"menus": [{"name": "麻婆丼", "description": "辛さ控えめ", "mainDish": "麻婆豆腐",
  "sideDishes": ["中華スープ"], "rice": "白米", "estimatedCalories": 780, "estimatedPrice": 550,
  "allergens": ["小麦"], "nutritionInfo": {"protein": 25, "fat": 22, "carbohydrates": 100}}]}`

func execute(t *testing.T, factory completerFactory, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeMenus(t *testing.T, out string) []models.BentoMenu {
	t.Helper()

	var resp struct {
		Menus []models.BentoMenu `json:"menus"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	return resp.Menus
}

func TestGenerate_Sample(t *testing.T) {
	factory := func(*config.Config) (generator.Completer, error) {
		t.Fatalf("sample mode should not create a provider")
		return nil, nil
	}

	out, err := execute(t, factory, "", "--sample")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if menus := decodeMenus(t, out); len(menus) != 3 {
		t.Fatalf("got %d menus, want 3", len(menus))
	}
}

func TestGenerate_FromStdinWithModel(t *testing.T) {
	var got generator.CompletionRequest
	factory := func(*config.Config) (generator.Completer, error) {
		return generator.CompleterFunc(func(_ context.Context, req generator.CompletionRequest) (string, error) {
			got = req
			return oneMenu, nil
		}), nil
	}

	out, err := execute(t, factory, conditionsJSON, "--model", "o3")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	menus := decodeMenus(t, out)
	if len(menus) != 1 || menus[0].Genre != models.GenreChinese || menus[0].Volume != models.VolumeLarge {
		t.Fatalf("menus = %+v", menus)
	}
	if got.Model != models.ModelO3 {
		t.Fatalf("model = %q, want o3", got.Model)
	}
	if _, ok := got.Options.(generator.ReasoningOptions); !ok {
		t.Fatalf("o3 should use reasoning options, got %T", got.Options)
	}
}

func TestGenerate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conditions.json")
	if err := os.WriteFile(path, []byte(conditionsJSON), 0o644); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	factory := func(*config.Config) (generator.Completer, error) {
		return generator.CompleterFunc(func(context.Context, generator.CompletionRequest) (string, error) {
			return oneMenu, nil
		}), nil
	}

	out, err := execute(t, factory, "", "--conditions", path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if menus := decodeMenus(t, out); menus[0].GenerationConditions.Model != models.DefaultModel {
		t.Fatalf("default model not recorded: %+v", menus[0].GenerationConditions)
	}
}

func TestGenerate_Errors(t *testing.T) {
	missingKey := func(*config.Config) (generator.Completer, error) {
		return nil, &generator.ConfigurationError{Setting: "OpenAI API key"}
	}
	bad := strings.Replace(conditionsJSON, `"genre": "中華"`, `"genre": "フレンチ"`, 1)

	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantKind string
	}{
		{name: "missing key", stdin: conditionsJSON, wantKind: generator.KindConfiguration},
		{name: "invalid conditions", stdin: bad},
		{name: "invalid model", stdin: conditionsJSON, args: []string{"--model", "gpt-3"}},
		{name: "not json", stdin: "budget=300"},
		{name: "missing file", args: []string{"--conditions", "does-not-exist.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, missingKey, tt.stdin, tt.args...)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := generator.ErrorKind(err); got != tt.wantKind {
				t.Fatalf("kind = %q, want %q (err: %v)", got, tt.wantKind, err)
			}
		})
	}
}
