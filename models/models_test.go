package models

import "testing"

func validConditions() GenerationConditions {
	return GenerationConditions{
		Budget:         Range{Min: 300, Max: 600},
		Calories:       Range{Min: 500, Max: 800},
		Volume:         VolumeMedium,
		Genre:          GenreUnspecified,
		Region:         "三重県",
		TargetCustomer: CustomerOfficeWorker,
		HealthFocus:    HealthNormal,
		CookingMethod:  CookingUnspecified,
		SeasonalFocus:  SeasonalInSeason,
	}
}

func TestGenerationConditions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GenerationConditions)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *GenerationConditions) {}},
		{name: "valid with model", mutate: func(c *GenerationConditions) { c.Model = ModelO3 }},
		{name: "equal bounds", mutate: func(c *GenerationConditions) { c.Budget = Range{Min: 500, Max: 500} }},
		{name: "inverted budget", mutate: func(c *GenerationConditions) { c.Budget = Range{Min: 700, Max: 300} }, wantErr: true},
		{name: "negative calories", mutate: func(c *GenerationConditions) { c.Calories.Min = -1 }, wantErr: true},
		{name: "unknown volume", mutate: func(c *GenerationConditions) { c.Volume = "特大" }, wantErr: true},
		{name: "unknown genre", mutate: func(c *GenerationConditions) { c.Genre = "フレンチ" }, wantErr: true},
		{name: "unknown model", mutate: func(c *GenerationConditions) { c.Model = "gpt-3.5" }, wantErr: true},
		{name: "empty seasonal focus", mutate: func(c *GenerationConditions) { c.SeasonalFocus = "" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConditions()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenre_Resolve(t *testing.T) {
	tests := map[Genre]Genre{
		GenreUnspecified: GenreJapanese,
		"":               GenreJapanese,
		GenreWestern:     GenreWestern,
		GenreChinese:     GenreChinese,
	}
	for in, want := range tests {
		if got := in.Resolve(); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWithModel_CopiesAllergens(t *testing.T) {
	c := validConditions()
	c.Allergens = []string{"卵"}

	tagged := c.WithModel(ModelGPT4o)
	tagged.Allergens[0] = "乳"

	if c.Allergens[0] != "卵" || c.Model != "" {
		t.Fatalf("original conditions changed: %+v", c)
	}
	if tagged.Model != ModelGPT4o {
		t.Fatalf("model = %q", tagged.Model)
	}
}
