package models

import (
	"fmt"
	"strings"
	"time"
)

type ModelID string

const (
	ModelGPT4o ModelID = "gpt-4o"
	ModelO3    ModelID = "o3"

	DefaultModel = ModelGPT4o
)

func (m ModelID) Valid() bool {
	return m == ModelGPT4o || m == ModelO3
}

func AllModels() []ModelID {
	return []ModelID{ModelGPT4o, ModelO3}
}

type Volume string

const (
	VolumeSmall  Volume = "小"
	VolumeMedium Volume = "中"
	VolumeLarge  Volume = "大"
)

func AllVolumes() []Volume {
	return []Volume{VolumeSmall, VolumeMedium, VolumeLarge}
}

func (v Volume) Valid() bool {
	return oneOf(v, AllVolumes())
}

type Genre string

const (
	GenreJapanese    Genre = "和食"
	GenreWestern     Genre = "洋食"
	GenreChinese     Genre = "中華"
	GenreUnspecified Genre = "指定なし"

	// FallbackGenre is assigned to generated menus when the request left the genre unspecified.
	FallbackGenre = GenreJapanese
)

func AllGenres() []Genre {
	return []Genre{GenreJapanese, GenreWestern, GenreChinese, GenreUnspecified}
}

func (g Genre) Valid() bool {
	return oneOf(g, AllGenres())
}

// Resolve returns the genre a generated menu carries for a request genre.
func (g Genre) Resolve() Genre {
	if g == GenreUnspecified || g == "" {
		return FallbackGenre
	}
	return g
}

type TargetCustomer string

const (
	CustomerOfficeWorker  TargetCustomer = "オフィスワーカー"
	CustomerFactoryWorker TargetCustomer = "工場作業員"
	CustomerSenior        TargetCustomer = "高齢者"
	CustomerStudent       TargetCustomer = "学生"
	CustomerFamily        TargetCustomer = "ファミリー"
	CustomerUnspecified   TargetCustomer = "指定なし"
)

func AllTargetCustomers() []TargetCustomer {
	return []TargetCustomer{
		CustomerOfficeWorker,
		CustomerFactoryWorker,
		CustomerSenior,
		CustomerStudent,
		CustomerFamily,
		CustomerUnspecified,
	}
}

func (t TargetCustomer) Valid() bool {
	return oneOf(t, AllTargetCustomers())
}

type HealthFocus string

const (
	HealthNormal      HealthFocus = "通常"
	HealthHealthy     HealthFocus = "ヘルシー"
	HealthHighProtein HealthFocus = "高たんぱく"
	HealthLowCarb     HealthFocus = "低糖質"
	HealthLowSodium   HealthFocus = "減塩"
)

func AllHealthFocuses() []HealthFocus {
	return []HealthFocus{HealthNormal, HealthHealthy, HealthHighProtein, HealthLowCarb, HealthLowSodium}
}

func (h HealthFocus) Valid() bool {
	return oneOf(h, AllHealthFocuses())
}

type CookingMethod string

const (
	CookingUnspecified CookingMethod = "指定なし"
	CookingNoFrying    CookingMethod = "揚げ物なし"
	CookingNoOven      CookingMethod = "オーブンなし"
	CookingSimple      CookingMethod = "簡単調理"
)

func AllCookingMethods() []CookingMethod {
	return []CookingMethod{CookingUnspecified, CookingNoFrying, CookingNoOven, CookingSimple}
}

func (c CookingMethod) Valid() bool {
	return oneOf(c, AllCookingMethods())
}

type SeasonalFocus string

const (
	SeasonalInSeason SeasonalFocus = "旬の食材"
	SeasonalNormal   SeasonalFocus = "通常"
	SeasonalFrozen   SeasonalFocus = "冷凍食材中心"
)

func AllSeasonalFocuses() []SeasonalFocus {
	return []SeasonalFocus{SeasonalInSeason, SeasonalNormal, SeasonalFrozen}
}

func (s SeasonalFocus) Valid() bool {
	return oneOf(s, AllSeasonalFocuses())
}

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) validate(name string) error {
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("%s must not be negative", name)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%s min must not exceed max", name)
	}
	return nil
}

// GenerationConditions is the caller-supplied input for one generation call.
type GenerationConditions struct {
	Budget             Range          `json:"budget"`
	Calories           Range          `json:"calories"`
	Allergens          []string       `json:"allergens"`
	Volume             Volume         `json:"volume"`
	Genre              Genre          `json:"genre"`
	Region             string         `json:"region"`
	TargetCustomer     TargetCustomer `json:"targetCustomer"`
	HealthFocus        HealthFocus    `json:"healthFocus"`
	CookingMethod      CookingMethod  `json:"cookingMethod"`
	SeasonalFocus      SeasonalFocus  `json:"seasonalFocus"`
	AdditionalRequests string         `json:"additionalRequests,omitempty"`
	Model              ModelID        `json:"model,omitempty"`
}

// Validate checks enumerations and ranges. The generator does not call it;
// boundaries do before handing conditions over.
func (c *GenerationConditions) Validate() error {
	if err := c.Budget.validate("budget"); err != nil {
		return err
	}
	if err := c.Calories.validate("calories"); err != nil {
		return err
	}

	var invalid []string
	if !c.Volume.Valid() {
		invalid = append(invalid, "volume")
	}
	if !c.Genre.Valid() {
		invalid = append(invalid, "genre")
	}
	if !c.TargetCustomer.Valid() {
		invalid = append(invalid, "targetCustomer")
	}
	if !c.HealthFocus.Valid() {
		invalid = append(invalid, "healthFocus")
	}
	if !c.CookingMethod.Valid() {
		invalid = append(invalid, "cookingMethod")
	}
	if !c.SeasonalFocus.Valid() {
		invalid = append(invalid, "seasonalFocus")
	}
	if c.Model != "" && !c.Model.Valid() {
		invalid = append(invalid, "model")
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid value for %s", strings.Join(invalid, ", "))
	}

	return nil
}

// WithModel returns a copy of the conditions tagged with the model that served them.
func (c GenerationConditions) WithModel(model ModelID) GenerationConditions {
	c.Allergens = append([]string(nil), c.Allergens...)
	c.Model = model
	return c
}

type NutritionInfo struct {
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
}

type BentoMenu struct {
	ID                   string                `gorm:"primaryKey;size:36" json:"id"`
	Name                 string                `json:"name"`
	Description          string                `json:"description"`
	MainDish             string                `json:"mainDish"`
	SideDishes           []string              `gorm:"serializer:json" json:"sideDishes"`
	Rice                 string                `json:"rice"`
	EstimatedCalories    int                   `json:"estimatedCalories"`
	EstimatedPrice       int                   `json:"estimatedPrice"`
	Allergens            []string              `gorm:"serializer:json" json:"allergens"`
	NutritionInfo        NutritionInfo         `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutritionInfo"`
	Genre                Genre                 `gorm:"index" json:"genre"`
	Volume               Volume                `json:"volume"`
	CreatedAt            time.Time             `json:"createdAt"`
	IsSelected           bool                  `gorm:"index" json:"isSelected"`
	GenerationConditions *GenerationConditions `gorm:"serializer:json" json:"generationConditions,omitempty"`
}

func (m *BentoMenu) TableName() string {
	return "bento_menus"
}

func (m *BentoMenu) Stringify() string {
	return fmt.Sprintf("BentoMenu: %s, Genre: %s, Main: %s, Sides: %s, Calories: %dkcal, Price: %d円",
		m.Name, m.Genre, m.MainDish, strings.Join(m.SideDishes, ", "), m.EstimatedCalories, m.EstimatedPrice)
}

// GenerationRecord is one successful generation call as recorded from the event stream.
type GenerationRecord struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	Model       ModelID              `gorm:"index" json:"model"`
	Conditions  GenerationConditions `gorm:"serializer:json" json:"conditions"`
	MenuIDs     []string             `gorm:"serializer:json" json:"menuIds"`
	MenuCount   int                  `json:"menuCount"`
	GeneratedAt time.Time            `gorm:"index" json:"generatedAt"`
	RecordedAt  time.Time            `json:"recordedAt"`
}

func (r *GenerationRecord) TableName() string {
	return "generation_records"
}
