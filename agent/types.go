package main

import (
	"fmt"

	"github.com/rakushite-inc/demo-obentou/generator"
	"github.com/rakushite-inc/demo-obentou/models"
)

type ProcessingResult struct {
	Err error
	Msg WebSocketsMessage
}

type WebSocketsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	MessageStatus = "status"
	MessageMenus  = "menus"
	MessageError  = "error"
)

type MenusResponse struct {
	Menus []models.BentoMenu `json:"menus"`
}

type SaveMenusRequest struct {
	Menus []models.BentoMenu `json:"menus"`
}

func (r *SaveMenusRequest) Validate() error {
	if len(r.Menus) == 0 {
		return fmt.Errorf("no menus provided")
	}

	for i, m := range r.Menus {
		if m.ID == "" || m.Name == "" {
			return fmt.Errorf("menus[%d]: id and name are required", i)
		}
	}

	return nil
}

type SetSelectedRequest struct {
	Selected *bool `json:"selected"`
}

type OptionsResponse struct {
	Models          []models.ModelID        `json:"models"`
	Volumes         []models.Volume         `json:"volumes"`
	Genres          []models.Genre          `json:"genres"`
	TargetCustomers []models.TargetCustomer `json:"targetCustomers"`
	HealthFocuses   []models.HealthFocus    `json:"healthFocuses"`
	CookingMethods  []models.CookingMethod  `json:"cookingMethods"`
	SeasonalFocuses []models.SeasonalFocus  `json:"seasonalFocuses"`
	Allergens       []string                `json:"allergens"`
	Regions         []string                `json:"regions"`
}

func NewOptionsResponse() OptionsResponse {
	return OptionsResponse{
		Models:          models.AllModels(),
		Volumes:         models.AllVolumes(),
		Genres:          models.AllGenres(),
		TargetCustomers: models.AllTargetCustomers(),
		HealthFocuses:   models.AllHealthFocuses(),
		CookingMethods:  models.AllCookingMethods(),
		SeasonalFocuses: models.AllSeasonalFocuses(),
		Allergens:       generator.Allergens(),
		Regions:         generator.Regions(),
	}
}
