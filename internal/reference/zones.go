package reference

// Zone is one of the TPL FVG operating areas. Zone codes are single letters;
// upstream zone-group values carry a longer prefix whose final letter is the
// zone code.
type Zone struct {
	Code string
	Name string
}

// AllZones lists the known operating areas in display order.
var AllZones = []Zone{
	{Code: "G", Name: "Gorizia"},
	{Code: "M", Name: "Monfalcone"},
	{Code: "P", Name: "Pordenone"},
	{Code: "T", Name: "Trieste"},
	{Code: "U", Name: "Udine"},
}

// ZoneName returns the display name for a zone code, or the code itself when
// the code is unknown.
func ZoneName(code string) string {
	for _, z := range AllZones {
		if z.Code == code {
			return z.Name
		}
	}
	return code
}

// IsKnownZone reports whether code names one of the operating areas.
func IsKnownZone(code string) bool {
	for _, z := range AllZones {
		if z.Code == code {
			return true
		}
	}
	return false
}
