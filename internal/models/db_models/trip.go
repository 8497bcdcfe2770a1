package db_models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Destination is stored either as a bare name or as {name, country}.
type Destination struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

func (d *Destination) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		d.Name = strings.TrimSpace(name)
		d.Country = ""
		return nil
	}

	type plain Destination
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = Destination(p)
	d.Name = strings.TrimSpace(d.Name)
	return nil
}

func (d Destination) MarshalJSON() ([]byte, error) {
	if d.Country == "" {
		return json.Marshal(d.Name)
	}
	type plain Destination
	return json.Marshal(plain(d))
}

type Budget struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

type TripPreferences struct {
	Interests         []string          `json:"interests"`
	AccommodationType AccommodationType `json:"accommodationType"`
	TravelStyle       TravelStyle       `json:"travelStyle"`
	Budget            *Budget           `json:"budget,omitempty"`
}

type Trip struct {
	BaseModel
	UserID              uuid.UUID `gorm:"type:uuid;index;not null"`
	Title               string
	Description         string
	OriginalRequest     string     `gorm:"not null"`
	Status              TripStatus `gorm:"type:varchar(20);default:planning"`
	StartDate           *time.Time `gorm:"type:date"`
	EndDate             *time.Time `gorm:"type:date"`
	DurationDays        int
	Destinations        datatypes.JSONSlice[Destination]
	TravelersCount      int `gorm:"default:1"`
	Preferences         datatypes.JSONType[TripPreferences]
	SpecialRequirements *string
	Itineraries         []Itinerary `gorm:"constraint:OnDelete:CASCADE"`
}

func (Trip) TableName() string { return "trips" }

// PrimaryDestination returns the first destination name, or "" when none was parsed.
func (t *Trip) PrimaryDestination() string {
	for _, d := range t.Destinations {
		if d.Name != "" {
			return d.Name
		}
	}
	return ""
}
