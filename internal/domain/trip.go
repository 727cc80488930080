package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type Attraction struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Location    Location `json:"location"`
	OpenTime    string   `json:"opentime"`
	Description string   `json:"description"`
	Category    *string  `json:"category,omitempty"`
	Rating      float64  `json:"rating"`
	ImageURL    *string  `json:"image_url,omitempty"`
	TicketPrice float64  `json:"ticket_price"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

type Meal struct {
	Type          MealType  `json:"type"`
	Name          string    `json:"name"`
	Address       *string   `json:"address,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Description   *string   `json:"description,omitempty"`
	EstimatedCost float64   `json:"estimated_cost"`
}

type Hotel struct {
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Location      *Location `json:"location,omitempty"`
	PriceRange    string    `json:"price_range"`
	Rating        string    `json:"rating"`
	Distance      string    `json:"distance"`
	Type          string    `json:"type"`
	EstimatedCost float64   `json:"estimated_cost"`
}

// Budget is the plan's cost rollup. Total is expected to equal the sum of the
// four subtotals; see CheckPlan.
type Budget struct {
	TotalAttractions    float64 `json:"total_attractions"`
	TotalHotels         float64 `json:"total_hotels"`
	TotalMeals          float64 `json:"total_meals"`
	TotalTransportation float64 `json:"total_transportation"`
	Total               float64 `json:"total"`
}

func (b Budget) Sum() float64 {
	return b.TotalAttractions + b.TotalHotels + b.TotalMeals + b.TotalTransportation
}

type DayPlan struct {
	Date           string       `json:"date"`
	DayIndex       int          `json:"day_index"`
	Description    string       `json:"description"`
	Transportation string       `json:"transportation"`
	Accommodation  string       `json:"accommodation"`
	Hotel          *Hotel       `json:"hotel,omitempty"`
	Attractions    []Attraction `json:"attractions"`
	Meals          []Meal       `json:"meals"`
}

type WeatherInfo struct {
	Date          string      `json:"date"`
	DayWeather    string      `json:"day_weather"`
	NightWeather  string      `json:"night_weather"`
	DayTemp       Temperature `json:"day_temp"`
	NightTemp     Temperature `json:"night_temp"`
	WindDirection string      `json:"wind_direction"`
	WindPower     string      `json:"wind_power"`
}

// Temperature decodes from a JSON number or a numeric string ("12", "12.0");
// the upstream weather feed is not consistent about which it sends.
type Temperature float64

func (t *Temperature) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*t = 0
			return nil
		}
		s = raw
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("temperature %s: %w", string(b), err)
	}
	*t = Temperature(f)
	return nil
}

type TripRequest struct {
	City           string   `json:"city"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	TravelDays     int      `json:"travel_days"`
	Transportation string   `json:"transportation"`
	Accommodation  string   `json:"accommodation"`
	Preferences    []string `json:"preferences"`
	FreeTextInput  *string  `json:"free_text_input,omitempty"`
}

type TripPlan struct {
	City               string        `json:"city"`
	StartDate          string        `json:"start_date"`
	EndDate            string        `json:"end_date"`
	Days               []DayPlan     `json:"days"`
	WeatherInfo        []WeatherInfo `json:"weather_info"`
	OverallSuggestions string        `json:"overall_suggestions"`
	Budget             *Budget       `json:"budget,omitempty"`
}
