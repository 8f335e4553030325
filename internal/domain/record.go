package domain

// RawStationRecord is an unvalidated station entry as read from the source
// document. String fields are carried verbatim; all validation happens
// during assembly.
type RawStationRecord struct {
	ID           int
	Address      string
	RawLatitude  string
	RawLongitude string
	PostalCode   string
	City         string
	Hours        *RawHoursBlock // nil when the station has no <horaires> block
	Prices       []RawPriceUpdate
}

// RawHoursBlock mirrors the <horaires> block of a station node.
type RawHoursBlock struct {
	AlwaysOpen bool // automate-24-24 marker present on the block
	Days       []RawDay
}

// RawDay mirrors one <jour> node. Day holds the raw 1-based day id;
// Opening and Closing hold "HH.MM" times and stay empty for closed days.
type RawDay struct {
	Day     string
	Closed  bool
	Opening string
	Closing string
}

// RawPriceUpdate mirrors one <prix> node.
type RawPriceUpdate struct {
	FuelType  string
	Value     string
	UpdatedAt string // "2006-01-02T15:04:05"
}
