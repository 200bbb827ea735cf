package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rakushite-inc/demo-obentou/models"
)

type draftNutrition struct {
	Protein       *float64 `json:"protein" validate:"required"`
	Fat           *float64 `json:"fat" validate:"required"`
	Carbohydrates *float64 `json:"carbohydrates" validate:"required"`
}

// DraftMenu is one menu entry exactly as the provider returned it.
type DraftMenu struct {
	Name              *string         `json:"name" validate:"required"`
	Description       *string         `json:"description" validate:"required"`
	MainDish          *string         `json:"mainDish" validate:"required"`
	SideDishes        []string        `json:"sideDishes" validate:"required"`
	Rice              *string         `json:"rice" validate:"required"`
	EstimatedCalories *float64        `json:"estimatedCalories" validate:"required"`
	EstimatedPrice    *float64        `json:"estimatedPrice" validate:"required"`
	Allergens         []string        `json:"allergens" validate:"required"`
	NutritionInfo     *draftNutrition `json:"nutritionInfo" validate:"required"`
}

type draftResponse struct {
	Menus []*DraftMenu `json:"menus" validate:"required,dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var (
	rootKeys      = jsonKeys(reflect.TypeOf(draftResponse{}))
	menuKeys      = jsonKeys(reflect.TypeOf(DraftMenu{}))
	nutritionKeys = jsonKeys(reflect.TypeOf(draftNutrition{}))
)

func jsonKeys(t reflect.Type) []string {
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		keys = append(keys, strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0])
	}
	return keys
}

// dropFoldedKeys removes keys that only match a field name case-insensitively,
// so encoding/json cannot bind "MENUS" to menus.
func dropFoldedKeys(obj map[string]any, keys []string) {
	for k := range obj {
		if slices.Contains(keys, k) {
			continue
		}
		for _, want := range keys {
			if strings.EqualFold(k, want) {
				delete(obj, k)
				break
			}
		}
	}
}

func exactKeys(content string) ([]byte, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}

	if obj, ok := root.(map[string]any); ok {
		dropFoldedKeys(obj, rootKeys)
		menus, _ := obj["menus"].([]any)
		for _, m := range menus {
			menu, ok := m.(map[string]any)
			if !ok {
				continue
			}
			dropFoldedKeys(menu, menuKeys)
			if n, ok := menu["nutritionInfo"].(map[string]any); ok {
				dropFoldedKeys(n, nutritionKeys)
			}
		}
	}

	return json.Marshal(root)
}

// checkInt rejects amounts that do not fit a non-negative int32 once rounded.
func checkInt(field string, v float64) error {
	r := math.Round(v)
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 || r > math.MaxInt32 {
		return &ValidationError{
			Field: field,
			Err:   fmt.Errorf("value %v out of range", v),
		}
	}
	return nil
}

// ParseMenus decodes and validates the provider's JSON content. Content that
// is not JSON at all is a ProviderError; JSON of the wrong shape is a
// ValidationError. No entry is accepted unless every entry is well formed.
func ParseMenus(content string) ([]DraftMenu, error) {
	if !json.Valid([]byte(content)) {
		return nil, &ProviderError{Reason: "completion content is not valid JSON"}
	}

	normalized, err := exactKeys(content)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	var resp draftResponse
	if err := json.Unmarshal(normalized, &resp); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ValidationError{
				Field: typeErr.Field,
				Err:   fmt.Errorf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return nil, &ValidationError{Err: err}
	}

	if err := validate.Struct(&resp); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, &ValidationError{
				Field: stripRoot(fe.Namespace()),
				Err:   fmt.Errorf("failed on %q", fe.Tag()),
			}
		}
		return nil, &ValidationError{Err: err}
	}

	drafts := make([]DraftMenu, len(resp.Menus))
	for i, m := range resp.Menus {
		if err := checkInt(fmt.Sprintf("menus[%d].estimatedCalories", i), *m.EstimatedCalories); err != nil {
			return nil, err
		}
		if err := checkInt(fmt.Sprintf("menus[%d].estimatedPrice", i), *m.EstimatedPrice); err != nil {
			return nil, err
		}
		drafts[i] = *m
	}

	return drafts, nil
}

// stripRoot drops the Go type name validator puts in front of a namespace.
func stripRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ToMenu builds the enriched record for a draft. Genre and volume come from
// the request, never from the provider.
func (d DraftMenu) ToMenu(id string, conditions models.GenerationConditions, model models.ModelID, createdAt time.Time) models.BentoMenu {
	used := conditions.WithModel(model)

	return models.BentoMenu{
		ID:                id,
		Name:              *d.Name,
		Description:       *d.Description,
		MainDish:          *d.MainDish,
		SideDishes:        append([]string{}, d.SideDishes...),
		Rice:              *d.Rice,
		EstimatedCalories: int(math.Round(*d.EstimatedCalories)),
		EstimatedPrice:    int(math.Round(*d.EstimatedPrice)),
		Allergens:         append([]string{}, d.Allergens...),
		NutritionInfo: models.NutritionInfo{
			Protein:       *d.NutritionInfo.Protein,
			Fat:           *d.NutritionInfo.Fat,
			Carbohydrates: *d.NutritionInfo.Carbohydrates,
		},
		Genre:                conditions.Genre.Resolve(),
		Volume:               conditions.Volume,
		CreatedAt:            createdAt,
		IsSelected:           false,
		GenerationConditions: &used,
	}
}
