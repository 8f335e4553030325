package xmlsource

import "encoding/xml"

// alwaysOpenMarker flags a self-service pump open around the clock. Only
// the attribute's presence matters; its value is ignored.
const alwaysOpenMarker = "automate-24-24"

// pdvNode mirrors one <pdv> station node of the annual export.
type pdvNode struct {
	ID         string      `xml:"id,attr"`
	Latitude   string      `xml:"latitude,attr"`
	Longitude  string      `xml:"longitude,attr"`
	PostalCode string      `xml:"cp,attr"`
	Address    string      `xml:"adresse"`
	City       string      `xml:"ville"`
	Hours      *hoursNode  `xml:"horaires"`
	Prices     []priceNode `xml:"prix"`
}

// hoursNode mirrors the <horaires> block. Attributes are captured
// generically so marker presence can be checked without a value.
type hoursNode struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Days  []dayNode  `xml:"jour"`
}

func (h *hoursNode) hasMarker(name string) bool {
	for _, a := range h.Attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// dayNode mirrors one <jour> node with its optional <horaire> child.
type dayNode struct {
	ID     string    `xml:"id,attr"`
	Closed string    `xml:"ferme,attr"`
	Hours  *hourNode `xml:"horaire"`
}

// hourNode mirrors the <horaire> opening/closing pair in "HH.MM" form.
type hourNode struct {
	Opening string `xml:"ouverture,attr"`
	Closing string `xml:"fermeture,attr"`
}

// priceNode mirrors one <prix> update node.
type priceNode struct {
	FuelType  string `xml:"nom,attr"`
	Value     string `xml:"valeur,attr"`
	UpdatedAt string `xml:"maj,attr"`
}
