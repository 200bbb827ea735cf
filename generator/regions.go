package generator

var regionFeatures = map[string]string{
	"北海道": "（海産物、じゃがいも、とうもろこしが豊富）",
	"東京都": "（多様な食材、洗練された味付け）",
	"大阪府": "（だしの文化、粉もの文化）",
	"愛知県": "（味噌文化、きしめんなど）",
	"福岡県": "（醤油ベースの味付け、明太子など）",
	"三重県": "（伊勢うどん、海産物、松阪牛など）",

	"🌏 韓国":      "（キムチ、コチュジャン、ナムル、焼肉文化）",
	"🌏 中国":      "（八角、五香粉、炒め物、点心文化）",
	"🌏 台湾":      "（魯肉飯、八角茶卵、夜市グルメ）",
	"🌏 タイ":      "（ナンプラー、レモングラス、ココナッツミルク）",
	"🌏 ベトナム":    "（フォー、春巻き、ハーブ類豊富）",
	"🌏 インド":     "（スパイス、カレー、ナン、豆料理）",
	"🌍 イタリア":    "（オリーブオイル、トマト、バジル、チーズ）",
	"🌍 フランス":    "（バター、ハーブ、ワイン煮込み）",
	"🌍 ドイツ":     "（ソーセージ、じゃがいも、ザワークラウト）",
	"🌍 スペイン":    "（オリーブオイル、パプリカ、ガーリック）",
	"🌍 イギリス":    "（ローストビーフ、フィッシュアンドチップス）",
	"🌎 アメリカ":    "（ハンバーガー、BBQ、ボリューム重視）",
	"🌎 メキシコ":    "（トウガラシ、アボカド、コーン、豆）",
	"🌎 ブラジル":    "（豆料理、焼肉、フルーツ豊富）",
	"🌎 ペルー":     "（キヌア、じゃがいも、セビーチェ）",
	"🦘 オーストラリア": "（BBQ、ミートパイ、シーフード）",
}

var regions = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",

	"🌏 韓国", "🌏 中国", "🌏 台湾", "🌏 タイ", "🌏 ベトナム", "🌏 インド",
	"🌍 イタリア", "🌍 フランス", "🌍 ドイツ", "🌍 スペイン", "🌍 イギリス",
	"🌎 アメリカ", "🌎 メキシコ", "🌎 ブラジル", "🌎 ペルー",
	"🦘 オーストラリア",
}

var allergens = []string{"卵", "乳", "小麦", "そば", "落花生", "えび", "かに"}

// RegionFeatures returns the ingredient and flavor note for a region, or ""
// for regions without one.
func RegionFeatures(region string) string {
	return regionFeatures[region]
}

// Regions lists every selectable region in display order.
func Regions() []string {
	return append([]string(nil), regions...)
}

// Allergens lists the allergens a request can exclude.
func Allergens() []string {
	return append([]string(nil), allergens...)
}
