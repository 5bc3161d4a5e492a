package model

// PlaceCategory classifies a point of interest.
type PlaceCategory string

const (
	PlaceHistorical PlaceCategory = "historical"
	PlaceNature     PlaceCategory = "nature"
	PlaceCultural   PlaceCategory = "cultural"
	PlaceAdventure  PlaceCategory = "adventure"
)

func (c PlaceCategory) Valid() bool {
	switch c {
	case PlaceHistorical, PlaceNature, PlaceCultural, PlaceAdventure:
		return true
	}
	return false
}

// Place is a point of interest shown to tourists.  It has no relation to
// restaurants or reservations.
type Place struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Country     string        `json:"country"`
	City        string        `json:"city"`
	Rating      float64       `json:"rating"`
	Category    PlaceCategory `json:"category"`
	ImageURL    string        `json:"image_url,omitempty"`
}
