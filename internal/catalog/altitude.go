package catalog

import (
	"math"
	"strings"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

// fallbackCruiseAltitude is used when a category has no typical altitude.
const fallbackCruiseAltitude = 3000

type knownAltitude struct {
	name     string
	altitude float64
}

// knownCruiseAltitudes is matched in order by case-insensitive substring, so
// more specific names come before the families that contain them.
var knownCruiseAltitudes = []knownAltitude{
	{"Airbus A380", 13100}, {"Airbus A350", 13100}, {"Airbus A340", 12500},
	{"Airbus A330", 11900}, {"Airbus A320", 11900}, {"Airbus A319", 11900},
	{"Airbus A318", 11900}, {"Airbus A310", 11900}, {"Airbus A300", 10600},
	{"Boeing 747", 13100}, {"Boeing 777", 13100}, {"Boeing 787", 13100},
	{"Boeing 767", 12800}, {"Boeing 757", 12800}, {"Boeing 737", 11900},
	{"Boeing 727", 10600}, {"Boeing 707", 10600},
	{"Embraer E-Jet", 12500}, {"Embraer ERJ", 11900},
	{"Bombardier CRJ", 12500}, {"Bombardier Dash", 7600},
	{"ATR 72", 7600}, {"ATR 42", 7600},
	{"Concorde", 18300}, {"Tu-144", 18000},

	{"F-22 Raptor", 19800}, {"F-35 Lightning II", 15000}, {"F-16 Fighting Falcon", 15000},
	{"F-15 Eagle", 18000}, {"F/A-18 Hornet", 15000}, {"Eurofighter Typhoon", 16800},
	{"Dassault Rafale", 15000}, {"Sukhoi Su-35", 17000}, {"Sukhoi Su-57", 20000},
	{"MiG-29", 17000}, {"B-2 Spirit", 15000}, {"B-1 Lancer", 18000},
	{"B-52 Stratofortress", 15000}, {"C-17 Globemaster", 13700}, {"C-130 Hercules", 10000},

	{"Gulfstream G650", 15500}, {"Gulfstream G550", 15500},
	{"Bombardier Global 7500", 15500}, {"Bombardier Global 6000", 15500},
	{"Dassault Falcon 8X", 15500}, {"Dassault Falcon 7X", 15500},
	{"Cessna Citation X", 15500}, {"Cessna Citation Latitude", 13700},
	{"Embraer Praetor", 13700}, {"Embraer Legacy", 13100},

	{"Cessna 172", 4000}, {"Cessna 182", 5500}, {"Cessna 206", 4800},
	{"Piper PA-28", 3000}, {"Piper PA-32", 4500}, {"Beechcraft Bonanza", 5500},
	{"Cirrus SR22", 3000}, {"Diamond DA40", 5000}, {"Diamond DA62", 6000},

	{"Wright Flyer", 30}, {"Spirit of St. Louis", 5000}, {"Supermarine Spitfire", 9100},
	{"Messerschmitt Bf 109", 10500}, {"North American P-51 Mustang", 12000},
	{"Boeing B-17", 10600}, {"Douglas DC-3", 3000}, {"Lockheed Constellation", 7300},
	{"de Havilland Comet", 12800},
}

type categoryKeywords struct {
	category string
	keywords []string
}

// nameCategories infers a category from the name when none is stored. The
// first category with a matching keyword wins.
var nameCategories = []categoryKeywords{
	{TypeCommercial, []string{
		"Airbus", "Boeing", "Embraer", "Bombardier", "ATR",
		"Concorde", "Tu-144", "McDonnell Douglas", "Douglas",
		"Fokker", "BAe", "Tupolev", "Ilyushin", "Antonov",
		"Sukhoi Superjet", "COMAC", "Mitsubishi",
	}},
	{TypeMilitary, []string{
		"F-", "MiG", "Sukhoi Su-", "B-", "C-", "A-", "P-", "E-", "KC-",
		"Eurofighter", "Rafale", "Gripen", "Tornado", "Harrier",
		"Mirage", "Phantom", "Warthog", "Hercules", "Globemaster",
	}},
	{TypeBusiness, []string{
		"Gulfstream", "Falcon", "Citation", "Learjet", "Hawker",
		"Challenger", "Global Express", "Praetor", "Legacy", "Phenom",
	}},
	{TypeGeneral, []string{
		"Cessna", "Piper", "Beechcraft", "Cirrus", "Diamond", "Mooney",
		"Robin", "Grumman", "Socata", "Tecnam",
	}},
	{TypeHistorical, []string{
		"Wright", "Spirit of St. Louis", "Spitfire", "Messerschmitt",
		"P-51", "B-17", "DC-3", "Constellation", "Comet",
	}},
}

var supersonicNames = []string{
	"Concorde", "Tu-144", "SR-71", "X-15", "X-43", "X-51",
	"F-22", "F-35", "F-15", "F-14", "F-16", "F/A-18", "MiG-25", "MiG-31",
	"Sukhoi Su-27", "Sukhoi Su-30", "Sukhoi Su-35", "Sukhoi Su-57",
	"Eurofighter Typhoon", "Dassault Rafale", "Saab JAS 39 Gripen",
}

// typicalCruiseAltitudes maps category and subcategory to meters.
var typicalCruiseAltitudes = map[string]map[string]float64{
	TypeCommercial: {"default": 10000, "regional": 7600, "widebody": 11000, "narrowbody": 10000, "supersonic": 15000},
	TypeMilitary:   {"default": 9000, "fighter": 12000, "bomber": 11000, "transport": 8500, "reconnaissance": 15000},
	TypeGeneral:    {"default": 3000, "light": 3000, "ultralight": 1500, "business": 12000},
	TypeBusiness:   {"default": 12000, "light": 9000, "midsize": 12000, "heavy": 13000},
	TypeCargo:      {"default": 9000, "heavy": 10000},
	TypeHistorical: {"default": 3000, "ww1": 2000, "ww2": 6000, "early_jet": 9000},
	"experimental": {"default": 3000, "high_altitude": 15000},
	TypeBird:       {"default": 100, "migratory": 3000},
}

// EstimateCruiseAltitude returns a typical cruise altitude in meters. A
// positive stored altitude is returned unchanged; otherwise known types are
// looked up by name, then a category based estimate is adjusted by cruise
// speed and capped at 85% of the service ceiling.
func EstimateCruiseAltitude(p Profile) float64 {
	if p.CruiseAltitude > 0 {
		return p.CruiseAltitude
	}

	name := strings.ToLower(p.Name)
	for _, k := range knownCruiseAltitudes {
		if strings.Contains(name, strings.ToLower(k.name)) {
			return k.altitude
		}
	}

	category := p.CategoryType
	if category == "" {
		category = categoryFromName(name)
	}

	supersonic := p.CruiseSpeed > 1200 || containsFold(name, supersonicNames)
	sub := "default"
	if containsAny(name, "concorde", "tu-144") {
		category = TypeCommercial
	}

	switch category {
	case TypeCommercial:
		switch {
		case supersonic:
			sub = "supersonic"
		case p.MTOW > 350000:
			sub = "widebody"
		case p.MTOW != 0 && p.MTOW < 50000:
			sub = "regional"
		default:
			sub = "narrowbody"
		}
	case TypeMilitary:
		switch {
		case containsAny(name, "fighter", "f-", "mig", "sukhoi"):
			sub = "fighter"
		case containsAny(name, "bomber", "b-"):
			sub = "bomber"
		case containsAny(name, "transport", "c-"):
			sub = "transport"
		}
	case TypeGeneral:
		// Anything under 600 kg is also under 1500 kg, so ultralight is
		// never selected here.
		if p.MTOW != 0 && p.MTOW < 1500 {
			sub = "light"
		}
	case TypeBusiness:
		switch {
		case p.MTOW > 30000:
			sub = "heavy"
		case p.MTOW > 15000:
			sub = "midsize"
		default:
			sub = "light"
		}
	case TypeHistorical:
		switch {
		case p.FirstFlightYear == 0:
		case p.FirstFlightYear < 1920:
			sub = "ww1"
		case p.FirstFlightYear < 1945:
			sub = "ww2"
		case p.FirstFlightYear < 1960:
			sub = "early_jet"
		}
	}

	altitude := typicalAltitude(category, sub)

	if p.CruiseSpeed != 0 {
		switch {
		case supersonic:
			altitude = math.Max(altitude, 15000)
		case p.CruiseSpeed > 900:
			altitude = math.Max(altitude, 11000)
		case p.CruiseSpeed > 750:
			altitude = math.Max(altitude, 10000)
		case p.CruiseSpeed > 500:
			altitude = math.Max(altitude, 7500)
		case p.CruiseSpeed < 250:
			altitude = math.Min(altitude, 5000)
		}
	}
	if p.ServiceCeiling != 0 {
		altitude = math.Min(altitude, p.ServiceCeiling*0.85)
	}
	return math.Trunc(altitude)
}

// ApplyCruiseAltitude sets an estimated cruise altitude on in when none is
// stored.
func ApplyCruiseAltitude(in *model.AircraftInput) {
	if in.CruiseAltitude != nil && *in.CruiseAltitude > 0 {
		return
	}
	alt := EstimateCruiseAltitude(ProfileOfInput(in))
	in.CruiseAltitude = &alt
}

func categoryFromName(lowerName string) string {
	for _, c := range nameCategories {
		if containsFold(lowerName, c.keywords) {
			return c.category
		}
	}
	return TypeGeneral
}

func typicalAltitude(category, sub string) float64 {
	table, ok := typicalCruiseAltitudes[category]
	if !ok {
		return fallbackCruiseAltitude
	}
	if alt, found := table[sub]; found {
		return alt
	}
	return table["default"]
}

// containsFold reports whether lowerName contains any of terms, ignoring case.
func containsFold(lowerName string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lowerName, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
