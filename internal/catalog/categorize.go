package catalog

import (
	"regexp"
	"strings"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

// Category values stored in category_type.
const (
	TypeHistorical = "historica"
	TypeMilitary   = "militar"
	TypeBusiness   = "executiva"
	TypeCargo      = "carga"
	TypeGeneral    = "geral"
	TypeCommercial = "comercial"
	TypeBird       = "ave"
)

// generalAviationMaxMTOW is the light aircraft limit in kg.
const generalAviationMaxMTOW = 5700

// Categories is the four-axis classification of a record. Empty means the
// rules had no opinion.
type Categories struct {
	Type   string
	Era    string
	Engine string
	Size   string
}

// freighterToken matches a freighter variant suffix such as 747-8F, 777F or
// 767-300BCF.
var freighterToken = regexp.MustCompile(`\d(?:-?\d+)*(?:f|bcf|sf)\b`)

// Categorize classifies a profile by first flight era, MTOW size band, engine
// family and, from the name, aircraft type.
func Categorize(p Profile) Categories {
	return Categories{
		Type:   typeOf(p),
		Era:    eraOf(p.FirstFlightYear),
		Engine: engineOf(p.EngineType),
		Size:   sizeOf(p.MTOW),
	}
}

func eraOf(year int) string {
	switch {
	case year == 0:
		return ""
	case year <= 1930:
		return "pioneiros"
	case year <= 1950:
		return "classica"
	case year <= 1970:
		return "jato_inicial"
	case year <= 2000:
		return "moderna"
	default:
		return "contemporanea"
	}
}

func sizeOf(mtow float64) string {
	switch {
	case mtow == 0:
		return ""
	case mtow <= 5700:
		return "muito_leve"
	case mtow <= 50000:
		return "regional"
	case mtow <= 150000:
		return "medio"
	case mtow <= 300000:
		return "grande"
	default:
		return "muito_grande"
	}
}

func engineOf(engineType string) string {
	e := strings.ToLower(engineType)
	switch {
	case e == "":
		return ""
	case containsAny(e, "pistão", "piston"):
		return "pistao"
	case containsAny(e, "turboélice", "turboprop"):
		return "turboelice"
	case containsAny(e, "turbojato", "turbojet"):
		return "turbojato"
	case strings.Contains(e, "turbofan"):
		return "turbofan"
	case containsAny(e, "elétrico", "electric", "solar", "híbrido", "hybrid"):
		return "especial"
	default:
		return ""
	}
}

func typeOf(p Profile) string {
	name := strings.ToLower(p.Name)
	switch {
	case containsAny(name, "wright flyer", "santos-dumont", "14-bis", "fokker"):
		return TypeHistorical
	case containsAny(name, "f-", "mirage", "mig", "sukhoi", "c-130", "hercules"):
		return TypeMilitary
	case containsAny(name, "citation", "learjet", "gulfstream", "challenger", "phenom", "king air"):
		return TypeBusiness
	case containsAny(name, "freighter", "cargo", "cargueiro"):
		return TypeCargo
	case containsAny(name, "cessna", "piper", "beechcraft", "cirrus") && p.MTOW < generalAviationMaxMTOW:
		return TypeGeneral
	case containsAny(name, "airbus", "boeing", "embraer", "bombardier", "atr", "mcdonnell", "mcdonnel", "douglas"):
		if freighterToken.MatchString(name) {
			return TypeCargo
		}
		return TypeCommercial
	default:
		return ""
	}
}

// ApplyCategories fills the empty category fields of in.
func ApplyCategories(in *model.AircraftInput) {
	c := Categorize(ProfileOfInput(in))
	fill := func(dst **string, v string) {
		if v != "" && str(*dst) == "" {
			*dst = &v
		}
	}
	fill(&in.CategoryType, c.Type)
	fill(&in.CategoryEra, c.Era)
	fill(&in.CategoryEngine, c.Engine)
	fill(&in.CategorySize, c.Size)
}
