package ejscreen

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Missing is the sentinel for an indicator the API response did not carry.
// A record always has a value for every field; absence is data, not an
// error.
const Missing = ""

// envelope is the broker's response shape. Sub-objects the server omits
// decode as nil maps, which section treats as empty.
type envelope struct {
	Data struct {
		Demographics section `json:"demographics"`
		Main         section `json:"main"`
	} `json:"data"`
	Extras section `json:"extras"`
}

// section is one sub-object of the broker response. The broker serializes
// most indicators as strings but some as bare numbers, so values decode as
// any and are rendered on lookup.
type section map[string]any

// field returns the named indicator rendered as a string, or Missing when
// the key is absent or null.
func (s section) field(key string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return Missing
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Record is the flat per-area indicator set extracted from one broker
// response, tagged with the area identifier it was fetched for.
type Record struct {
	AreaID                  string
	TotalPopulation         string
	PercentMinority         string
	PerCapitaIncome         string
	UnemploymentRate        string
	PM25AirQuality          string
	TrafficExposure         string
	DieselParticulateMatter string
	LifeExpectancy          string
}

// newRecord extracts the fixed field set from a decoded response. Any key
// the response lacks maps to Missing so a row is always produced.
func newRecord(areaID string, env *envelope) *Record {
	demo := env.Data.Demographics
	main := env.Data.Main
	return &Record{
		AreaID:                  areaID,
		TotalPopulation:         demo.field("TOTALPOP"),
		PercentMinority:         demo.field("PCT_MINORITY"),
		PerCapitaIncome:         demo.field("PER_CAP_INC"),
		UnemploymentRate:        demo.field("P_EMP_STAT_UNEMPLOYED"),
		PM25AirQuality:          main.field("RAW_E_PM25"),
		TrafficExposure:         main.field("RAW_E_TRAFFIC"),
		DieselParticulateMatter: main.field("RAW_E_DIESEL"),
		LifeExpectancy:          env.Extras.field("RAW_HI_LIFEEXP"),
	}
}

// orNA substitutes "N/A" for missing values in the human-readable summary.
func orNA(v string) string {
	if v == Missing {
		return "N/A"
	}
	return v
}

// Summary renders the key indicators as the text block printed by the show
// command.
func (r *Record) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Demographics:\n")
	fmt.Fprintf(&b, "  Total Population: %s\n", orNA(r.TotalPopulation))
	fmt.Fprintf(&b, "  Percent Minority: %s%%\n", orNA(r.PercentMinority))
	fmt.Fprintf(&b, "  Per Capita Income: $%s\n", orNA(r.PerCapitaIncome))
	fmt.Fprintf(&b, "  Unemployment Rate: %s%%\n", orNA(r.UnemploymentRate))
	fmt.Fprintf(&b, "\nEnvironmental Factors:\n")
	fmt.Fprintf(&b, "  Air Quality (PM2.5): %s ug/m3\n", orNA(r.PM25AirQuality))
	fmt.Fprintf(&b, "  Traffic Exposure: %s vehicles/day\n", orNA(r.TrafficExposure))
	fmt.Fprintf(&b, "  Diesel Particulate Matter: %s ug/m3\n", orNA(r.DieselParticulateMatter))
	fmt.Fprintf(&b, "\nHealth Indicator - Life Expectancy: %s years\n", orNA(r.LifeExpectancy))
	return b.String()
}
