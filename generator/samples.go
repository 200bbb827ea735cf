package generator

import (
	"time"

	"github.com/rakushite-inc/demo-obentou/models"
)

// SampleMenus returns the static demo payload shown when no generated result
// is available.
func SampleMenus(now time.Time) []models.BentoMenu {
	return []models.BentoMenu{
		{
			ID:                "sample-1",
			Name:              "三重県産食材の和風弁当",
			Description:       "地元の新鮮な食材を使用した栄養バランス抜群のお弁当",
			MainDish:          "鶏の照り焼き",
			SideDishes:        []string{"ひじきの煮物", "小松菜のおひたし", "卵焼き"},
			Rice:              "三重県産コシヒカリ",
			EstimatedCalories: 650,
			EstimatedPrice:    480,
			Allergens:         []string{"卵"},
			NutritionInfo:     models.NutritionInfo{Protein: 28, Fat: 18, Carbohydrates: 85},
			Genre:             models.GenreJapanese,
			Volume:            models.VolumeMedium,
			CreatedAt:         now,
		},
		{
			ID:                "sample-2",
			Name:              "ヘルシーサラダチキン弁当",
			Description:       "低カロリーでタンパク質豊富な健康志向のお弁当",
			MainDish:          "蒸し鶏のハーブソルト",
			SideDishes:        []string{"彩り野菜のマリネ", "ブロッコリーのガーリック炒め", "プチトマト"},
			Rice:              "玄米",
			EstimatedCalories: 520,
			EstimatedPrice:    450,
			Allergens:         []string{},
			NutritionInfo:     models.NutritionInfo{Protein: 32, Fat: 12, Carbohydrates: 68},
			Genre:             models.GenreWestern,
			Volume:            models.VolumeMedium,
			CreatedAt:         now,
		},
		{
			ID:                "sample-3",
			Name:              "ボリューム満点唐揚げ弁当",
			Description:       "ジューシーな唐揚げがメインの食べ応え抜群のお弁当",
			MainDish:          "鶏の唐揚げ（5個）",
			SideDishes:        []string{"コールスローサラダ", "きんぴらごぼう", "漬物"},
			Rice:              "白米",
			EstimatedCalories: 780,
			EstimatedPrice:    520,
			Allergens:         []string{"小麦"},
			NutritionInfo:     models.NutritionInfo{Protein: 35, Fat: 25, Carbohydrates: 95},
			Genre:             models.GenreJapanese,
			Volume:            models.VolumeMedium,
			CreatedAt:         now,
		},
	}
}
