// Package domain models the French national fuel-price dataset
// ("Prix des carburants", annual XML export).
//
// # Data Source
//
// The yearly dataset is a single XML document listing every point de vente
// (pdv) in the country. Each station node carries an id attribute, encoded
// latitude/longitude attributes, a postal code, address and city child
// nodes, an optional weekly opening-hours block, and the full log of price
// updates recorded that year.
//
// # Dataset Conventions
//
// Coordinate encoding:
//
//	Coordinates are fixed-point strings with an implicit decimal point, not
//	plain decimals: "4620100" with 2 integer digits means 46.201 degrees.
//	Latitude uses 2 integer digits, longitude 1, matching the magnitude of
//	metropolitan-France coordinates. Some entries additionally carry a real
//	decimal point followed by noise digits ("4584829.0858556"); everything
//	from the first '.' onward is discarded before decoding.
//
// Opening hours:
//
//	The <horaires> block holds up to seven <jour> nodes with 1-based day
//	ids (1 = Monday). A day is closed when its ferme attribute is "1" or
//	when no opening time is given. Times use a period-separated "HH.MM"
//	form ("08.30"), not "HH:MM". The automate-24-24 marker on the block
//	flags a self-service pump open around the clock; it regularly
//	contradicts the per-day schedule and is preserved exactly as given,
//	never reconciled with the day map.
//
// Price updates:
//
//	Each <prix> node names a fuel type (Gazole, SP95, E10, ...), a price
//	and an update timestamp in "2006-01-02T15:04:05" form. Timestamps are
//	truncated to the calendar day; when one fuel is updated twice on the
//	same day, the later entry in document order wins.
//
// # Validation
//
// A station survives assembly only when its address, city and both
// coordinates are usable. Every other field may be missing. Records that
// fail validation are dropped with an enumerated reason and counted in an
// aggregate report; failures never affect neighbouring records.
package domain
