package domain

import (
	"fmt"
	"strconv"
	"time"
)

// hourMinuteLayout is the period-separated time-of-day form used by the
// dataset ("08.30"), not the usual colon form.
const hourMinuteLayout = "15.04"

// NormalizeOpeningHours converts a raw hours block into a weekly schedule.
// Source day ids are 1-based (1 = Monday) and come out as 0-based indexes.
// A day marked closed or lacking an opening time maps to a nil range. The
// always-open marker is not part of the schedule; callers read it straight
// off the raw block.
func NormalizeOpeningHours(raw RawHoursBlock) (*OpeningHours, error) {
	days := make(map[int]*HoursRange, len(raw.Days))
	for _, d := range raw.Days {
		id, err := strconv.Atoi(d.Day)
		if err != nil {
			return nil, fmt.Errorf("day id %q is not numeric", d.Day)
		}
		idx := id - 1
		if idx < 0 || idx > 6 {
			return nil, fmt.Errorf("day id %d outside 1-7", id)
		}
		if d.Closed || d.Opening == "" {
			days[idx] = nil
			continue
		}
		open, err := parseTimeOfDay(d.Opening)
		if err != nil {
			return nil, err
		}
		close, err := parseTimeOfDay(d.Closing)
		if err != nil {
			return nil, err
		}
		days[idx] = &HoursRange{Open: open, Close: close}
	}
	return &OpeningHours{Days: days}, nil
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(hourMinuteLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}
