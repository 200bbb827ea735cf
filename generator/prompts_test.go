package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/rakushite-inc/demo-obentou/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

func testConditions() models.GenerationConditions {
	return models.GenerationConditions{
		Budget:             models.Range{Min: 300, Max: 600},
		Calories:           models.Range{Min: 500, Max: 800},
		Allergens:          []string{"卵", "乳"},
		Volume:             models.VolumeMedium,
		Genre:              models.GenreUnspecified,
		Region:             "三重県",
		TargetCustomer:     models.CustomerStudent,
		HealthFocus:        models.HealthHighProtein,
		CookingMethod:      models.CookingNoFrying,
		SeasonalFocus:      models.SeasonalInSeason,
		AdditionalRequests: "彩りを重視",
	}
}

func TestBuildPrompt_ContainsEveryCondition(t *testing.T) {
	now := time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC)
	prompt, err := BuildPrompt(testConditions(), now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := []string{
		"予算: 300円 〜 600円",
		"カロリー: 500kcal 〜 800kcal",
		"アレルギー対応: 卵、乳を使用しない",
		"ボリューム: 中",
		"ジャンル: 指定なし",
		"地域: 三重県 （伊勢うどん、海産物、松阪牛など）",
		"季節: 春（3-5月）",
		"ターゲット顧客: 学生",
		"健康・栄養志向: 高たんぱく",
		"調理制約: 揚げ物なし",
		"食材傾向: 旬の食材",
		"その他のリクエスト: 彩りを重視",
		`"estimatedPrice": 価格数値`,
		`"nutritionInfo": {`,
	}
	for _, w := range want {
		if !strings.Contains(prompt, w) {
			t.Errorf("prompt missing %q\n%s", w, prompt)
		}
	}
}

func TestBuildPrompt_OptionalParts(t *testing.T) {
	c := testConditions()
	c.Allergens = nil
	c.AdditionalRequests = "   "
	c.Region = "火星"

	prompt, err := BuildPrompt(c, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if !strings.Contains(prompt, "- アレルギー制約なし\n") {
		t.Errorf("expected no-allergen line, got:\n%s", prompt)
	}
	if strings.Contains(prompt, "その他のリクエスト") {
		t.Errorf("additional requests line should be omitted:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- 地域: 火星\n") {
		t.Errorf("unknown region should render without a note:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- 食材傾向: 旬の食材\n\n## 重要な指針") {
		t.Errorf("unexpected layout after last condition:\n%s", prompt)
	}
	if !strings.Contains(prompt, "季節: 冬（12-2月）") {
		t.Errorf("expected winter season:\n%s", prompt)
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	a, err := BuildPrompt(testConditions(), now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := BuildPrompt(testConditions(), now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a != b {
		t.Fatalf("prompt is not deterministic")
	}
}

func TestBuildMessages_Roles(t *testing.T) {
	msgs, err := BuildMessages(testConditions(), time.Now())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != schema.ChatMessageTypeSystem || msgs[1].Role != schema.ChatMessageTypeHuman {
		t.Fatalf("unexpected roles: %s, %s", msgs[0].Role, msgs[1].Role)
	}
	sys, ok := msgs[0].Parts[0].(llms.TextContent)
	if !ok || sys.Text != SystemPrompt {
		t.Fatalf("system turn does not carry the system prompt")
	}
	if !strings.Contains(SystemPrompt, "3つのメニューを提案する") {
		t.Fatalf("system prompt must ask for three menus")
	}
}
