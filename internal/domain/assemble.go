package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// updateTimestampLayout is the fixed timestamp form of <prix> maj attributes.
const updateTimestampLayout = "2006-01-02T15:04:05"

// DateLayout is the ISO calendar-date form used for price-history keys and
// window dates.
const DateLayout = "2006-01-02"

// DropReason enumerates why a raw record failed assembly.
type DropReason string

const (
	DropMissingAddress     DropReason = "missing_address"
	DropMissingCity        DropReason = "missing_city"
	DropMissingCoordinates DropReason = "missing_coordinates"
	DropBadSchedule        DropReason = "bad_schedule"
	DropBadTimestamp       DropReason = "bad_timestamp"
	DropBadPrice           DropReason = "bad_price"
)

// DropError tags an assembly failure with its reason. A DropError scopes to
// the whole record: the station is not produced.
type DropError struct {
	Reason DropReason
	Err    error
}

func (e *DropError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *DropError) Unwrap() error { return e.Err }

// DropReport aggregates assembly outcomes for one run.
type DropReport struct {
	Input    int
	Retained int
	Dropped  map[DropReason]int
}

// AssembleAll validates every raw record against the resolved-name table and
// returns the surviving stations in input order plus the drop report.
// Failures are isolated per record.
func AssembleAll(records []RawStationRecord, names map[int]string) ([]Station, DropReport) {
	report := DropReport{Input: len(records), Dropped: make(map[DropReason]int)}
	stations := make([]Station, 0, len(records))
	for _, rec := range records {
		st, err := AssembleStation(rec, names)
		if err != nil {
			var de *DropError
			if errors.As(err, &de) {
				report.Dropped[de.Reason]++
			}
			continue
		}
		stations = append(stations, st)
	}
	report.Retained = len(stations)
	return stations, report
}

// AssembleStation merges one raw record with its decoded coordinates,
// normalized opening hours and resolved name into a Station. It returns a
// *DropError when any mandatory field is missing or any sub-field is
// malformed; a malformed schedule or price entry invalidates the whole
// record, consistent with the mandatory-field handling.
func AssembleStation(rec RawStationRecord, names map[int]string) (Station, error) {
	if strings.TrimSpace(rec.Address) == "" {
		return Station{}, &DropError{Reason: DropMissingAddress}
	}
	if strings.TrimSpace(rec.City) == "" {
		return Station{}, &DropError{Reason: DropMissingCity}
	}
	lat, err := DecodeCoordinate(rec.RawLatitude, LatitudeDigits)
	if err != nil {
		return Station{}, &DropError{Reason: DropMissingCoordinates, Err: err}
	}
	lon, err := DecodeCoordinate(rec.RawLongitude, LongitudeDigits)
	if err != nil {
		return Station{}, &DropError{Reason: DropMissingCoordinates, Err: err}
	}

	st := Station{
		ID:         rec.ID,
		Address:    rec.Address,
		Latitude:   lat,
		Longitude:  lon,
		PostalCode: rec.PostalCode,
		City:       rec.City,
	}

	if name, ok := names[rec.ID]; ok && name != "" {
		st.Name = &name
	}

	if rec.Hours != nil {
		hours, err := NormalizeOpeningHours(*rec.Hours)
		if err != nil {
			return Station{}, &DropError{Reason: DropBadSchedule, Err: err}
		}
		st.OpeningHours = hours
		st.IsAlwaysOpen = rec.Hours.AlwaysOpen
	}

	hist, err := buildPriceHistory(rec.Prices)
	if err != nil {
		return Station{}, err
	}
	st.Prices = hist

	return st, nil
}

// buildPriceHistory folds the record's update log into a per-fuel, per-day
// price table. The update timestamp is truncated to its calendar day; on
// duplicate (fuel, day) keys the last entry in document order wins.
func buildPriceHistory(updates []RawPriceUpdate) (PriceHistory, error) {
	hist := make(PriceHistory)
	for _, u := range updates {
		ts, err := time.Parse(updateTimestampLayout, u.UpdatedAt)
		if err != nil {
			return nil, &DropError{Reason: DropBadTimestamp, Err: fmt.Errorf("update timestamp %q: %w", u.UpdatedAt, err)}
		}
		price, err := strconv.ParseFloat(u.Value, 64)
		if err != nil {
			return nil, &DropError{Reason: DropBadPrice, Err: fmt.Errorf("price %q: %w", u.Value, err)}
		}
		if price < 0 {
			return nil, &DropError{Reason: DropBadPrice, Err: fmt.Errorf("price %q is negative", u.Value)}
		}
		day := ts.Format(DateLayout)
		if hist[u.FuelType] == nil {
			hist[u.FuelType] = make(map[string]float64)
		}
		hist[u.FuelType][day] = price
	}
	return hist, nil
}
