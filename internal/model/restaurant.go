package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PriceTier is the ordinal price band of a restaurant, 1 ($) to 4 ($$$$).
type PriceTier uint8

const (
	PriceBudget PriceTier = iota + 1
	PriceModerate
	PriceUpscale
	PriceFineDining
)

func (p PriceTier) Valid() bool { return p >= PriceBudget && p <= PriceFineDining }

func (p PriceTier) String() string { return strings.Repeat("$", int(p)) }

// MarshalText renders the tier as dollar signs.
func (p PriceTier) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid price tier %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText accepts either dollar signs ("$$") or the ordinal ("2").
func (p *PriceTier) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	var tier PriceTier
	if n, err := strconv.Atoi(s); err == nil {
		tier = PriceTier(n)
	} else if strings.Trim(s, "$") == "" {
		tier = PriceTier(len(s))
	}
	if !tier.Valid() {
		return fmt.Errorf("invalid price tier %q", s)
	}
	*p = tier
	return nil
}

// Restaurant is a bookable venue.  It owns its menu items.
//
// Fields:
//
//	ID              – stable identifier (UUID or a supplied slug like rest-1).
//	Name            – display name.
//	Description     – free text used by keyword search.
//	Cuisine         – cuisine tag used by the cuisine filter.
//	Address, Phone  – contact details.
//	PriceTier       – $..$$$$.
//	Rating          – 0..5.
//	SeatingCapacity – maximum guests for a single reservation.
//	ImageURL        – optional cover image.
//	ExternalRef     – optional reference in an upstream listing system.
type Restaurant struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Cuisine         string    `json:"cuisine"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	PriceTier       PriceTier `json:"price_tier"`
	Rating          float64   `json:"rating"`
	SeatingCapacity int       `json:"seating_capacity"`
	ImageURL        string    `json:"image_url,omitempty"`
	ExternalRef     string    `json:"external_ref,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UnmarshalJSON accepts the tier as a JSON string ("$$", "2") or number (2).
func (p *PriceTier) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return p.UnmarshalText([]byte(s))
}
