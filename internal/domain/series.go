package domain

import "time"

// DefaultWindowDays is the length of the standard heatmap window.
const DefaultWindowDays = 365

// Window returns days consecutive ISO dates in ascending order, ending the
// day before anchor. Window(anchor, 365) covers the year up to yesterday.
func Window(anchor time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := days; i >= 1; i-- {
		dates = append(dates, anchor.AddDate(0, 0, -i).Format(DateLayout))
	}
	return dates
}

// DefaultWindow anchors the window at the package clock's current day.
func DefaultWindow(days int) []string {
	return Window(clock.Now(), days)
}

// StationSeries is one station entry of the heatmap artifact. Fuels maps a
// fuel type to a price series of exactly the window length, oldest date
// first.
type StationSeries struct {
	ID           int                  `json:"id"`
	Name         *string              `json:"name"`
	Address      string               `json:"address"`
	Latitude     float64              `json:"latitude"`
	Longitude    float64              `json:"longitude"`
	PostalCode   string               `json:"postal_code"`
	City         string               `json:"city"`
	IsAlwaysOpen bool                 `json:"is_always_open"`
	Fuels        map[string][]float64 `json:"carburants"`
}

// Heatmap is the consolidated artifact handed to the emitters. Station
// order matches retained input order.
type Heatmap struct {
	Stations []StationSeries `json:"stations"`
}

// BuildHeatmap produces the per-station, per-fuel daily price series over
// the window. For each window date the stored price is emitted when the
// fuel was updated that day; otherwise the most recent known value repeats
// (forward fill), and dates before the first update in the window emit 0.
// Matching is exact string equality: history dates outside the window never
// seed a value, even when they chronologically precede it. Pure and
// deterministic.
func BuildHeatmap(stations []Station, window []string) Heatmap {
	hm := Heatmap{Stations: make([]StationSeries, 0, len(stations))}
	for i := range stations {
		hm.Stations = append(hm.Stations, buildStationSeries(&stations[i], window))
	}
	return hm
}

func buildStationSeries(st *Station, window []string) StationSeries {
	s := StationSeries{
		ID:           st.ID,
		Name:         st.Name,
		Address:      st.Address,
		Latitude:     st.Latitude,
		Longitude:    st.Longitude,
		PostalCode:   st.PostalCode,
		City:         st.City,
		IsAlwaysOpen: st.IsAlwaysOpen,
		Fuels:        make(map[string][]float64, len(st.Prices)),
	}
	for fuel, history := range st.Prices {
		series := make([]float64, 0, len(window))
		last := 0.0
		for _, day := range window {
			if price, ok := history[day]; ok {
				last = price
			}
			series = append(series, last)
		}
		s.Fuels[fuel] = series
	}
	return s
}
