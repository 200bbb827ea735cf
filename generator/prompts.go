package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/rakushite-inc/demo-obentou/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/schema"
)

// ExpectedMenuCount is the number of proposals the system prompt asks for.
const ExpectedMenuCount = 3

var SystemPrompt = `あなたはお弁当業界の専門家です。お弁当製造・販売事業者向けに、実用的で現実的なお弁当メニューを提案してください。

指示事項:
- 調理が現実的で、小規模事業所でも作れる内容
- 栄養バランスを考慮
- 指定された条件を厳密に守る
- 地域で一般的な食材を使用
- 季節感を取り入れる
- 3つのメニューを提案する`

var userPromptTemplate = prompts.NewPromptTemplate(`あなたはお弁当業界の専門家です。以下の条件に基づいて、実用的で魅力的なお弁当メニューを3つ生成してください。

## 生成条件
- 予算: {{.budgetMin}}円 〜 {{.budgetMax}}円
- カロリー: {{.caloriesMin}}kcal 〜 {{.caloriesMax}}kcal
- {{.allergens}}
- ボリューム: {{.volume}}
- ジャンル: {{.genre}}
- 地域: {{.region}}
- 季節: {{.season}}
- ターゲット顧客: {{.targetCustomer}}
- 健康・栄養志向: {{.healthFocus}}
- 調理制約: {{.cookingMethod}}
- 食材傾向: {{.seasonalFocus}}
{{- if .additionalRequests}}
- その他のリクエスト: {{.additionalRequests}}
{{- end}}

## 重要な指針
1. 小規模なお弁当製造事業所でも作れる現実的な内容
2. 栄養バランスを考慮（野菜、たんぱく質、炭水化物）
3. 季節感と地域特色を活かした食材選択
4. 指定予算内での原価計算を考慮
5. 調理工程の効率化を意識した組み合わせ

## JSON出力形式
{
  "menus": [
    {
      "name": "商品名（魅力的で分かりやすい名前）",
      "description": "特徴や魅力を40-50文字で説明",
      "mainDish": "メインのおかず",
      "sideDishes": ["副菜1", "副菜2", "副菜3"],
      "rice": "ご飯の種類",
      "estimatedCalories": カロリー数値,
      "estimatedPrice": 価格数値,
      "allergens": ["含まれるアレルゲン"],
      "nutritionInfo": {
        "protein": たんぱく質グラム数,
        "fat": 脂質グラム数,
        "carbohydrates": 炭水化物グラム数
      }
    }
  ]
}

条件を満たす3つの異なるメニューを提案してください。`, []string{
	"budgetMin", "budgetMax", "caloriesMin", "caloriesMax", "allergens",
	"volume", "genre", "region", "season", "targetCustomer", "healthFocus",
	"cookingMethod", "seasonalFocus", "additionalRequests",
})

func allergenLine(allergens []string) string {
	if len(allergens) == 0 {
		return "アレルギー制約なし"
	}
	return fmt.Sprintf("アレルギー対応: %sを使用しない", strings.Join(allergens, "、"))
}

func regionLine(region string) string {
	return strings.TrimSpace(region + " " + RegionFeatures(region))
}

// BuildPrompt renders the user-turn prompt for conditions. The season is
// derived from now's month in whatever location now carries.
func BuildPrompt(conditions models.GenerationConditions, now time.Time) (string, error) {
	prompt, err := userPromptTemplate.Format(map[string]any{
		"budgetMin":          conditions.Budget.Min,
		"budgetMax":          conditions.Budget.Max,
		"caloriesMin":        conditions.Calories.Min,
		"caloriesMax":        conditions.Calories.Max,
		"allergens":          allergenLine(conditions.Allergens),
		"volume":             string(conditions.Volume),
		"genre":              string(conditions.Genre),
		"region":             regionLine(conditions.Region),
		"season":             string(SeasonFor(now.Month())),
		"targetCustomer":     string(conditions.TargetCustomer),
		"healthFocus":        string(conditions.HealthFocus),
		"cookingMethod":      string(conditions.CookingMethod),
		"seasonalFocus":      string(conditions.SeasonalFocus),
		"additionalRequests": strings.TrimSpace(conditions.AdditionalRequests),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	return prompt, nil
}

// BuildMessages returns the system and user turns for one generation request.
func BuildMessages(conditions models.GenerationConditions, now time.Time) ([]llms.MessageContent, error) {
	prompt, err := BuildPrompt(conditions, now)
	if err != nil {
		return nil, err
	}

	return []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(SystemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}, nil
}
