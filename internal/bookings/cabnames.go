package bookings

import "strings"

// Display names for the fixed cab reference IDs the web client sends
var cabNamesByRefID = map[string]string{
	"1": "Innova",
	"2": "SEDAN",
	"3": "SUV",
	"4": "INNOVA CRYSTAL",
}

// Display names keyed by cab type keyword. Checked in order so that
// "innova crysta" resolves before the plain "innova" match.
var cabNamesByType = []struct {
	keyword string
	name    string
}{
	{"crysta", "INNOVA CRYSTAL"},
	{"innova", "Innova"},
	{"sedan", "SEDAN"},
	{"suv", "SUV"},
}

// DisplayCabName resolves the cab display name shown in listings and emails.
// The reference ID wins over the type keyword; unknown cabs fall through to
// the raw type.
func DisplayCabName(cab Cab) string {
	if name, ok := cabNamesByRefID[cab.RefID]; ok {
		return name
	}
	lower := strings.ToLower(cab.Type)
	for _, entry := range cabNamesByType {
		if strings.Contains(lower, entry.keyword) {
			return entry.name
		}
	}
	return cab.Type
}
