package domain

import "fmt"

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// HoursRange is one open interval for one day.
type HoursRange struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// OpeningHours maps 0-based day indexes (0 = Monday) to that day's open
// interval. A nil entry means explicitly closed; a missing key means the
// source said nothing about that day. The always-open flag lives on Station
// and is never derived from this map.
type OpeningHours struct {
	Days map[int]*HoursRange
}

// PriceHistory maps fuel type to ISO date ("2006-01-02") to price.
type PriceHistory map[string]map[string]float64

// Station is a validated station entity. It is immutable once assembled.
type Station struct {
	ID           int
	Name         *string // nil when name resolution failed or returned nothing usable
	Address      string
	Latitude     float64
	Longitude    float64
	PostalCode   string
	City         string
	IsAlwaysOpen bool
	OpeningHours *OpeningHours // nil when the record had no hours block
	Prices       PriceHistory
}
