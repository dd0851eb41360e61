// Package risk derives protective-equipment recommendations from AQI,
// health profile, and weather. Everything here is pure: identical inputs
// produce identical output, no I/O, no errors.
package risk

// MaskStatus is the severity of a mask recommendation.
type MaskStatus int

const (
	MaskRecommended MaskStatus = iota
	MaskStronglyRecommended
	MaskMandatory
)

// String returns the human-readable status used in messages.
func (s MaskStatus) String() string {
	switch s {
	case MaskStronglyRecommended:
		return "strongly recommended"
	case MaskMandatory:
		return "mandatory"
	default:
		return "recommended"
	}
}

// Escalate raises the status by one level, capped at mandatory.
func (s MaskStatus) Escalate() MaskStatus {
	if s >= MaskMandatory {
		return MaskMandatory
	}
	return s + 1
}

// Recommendation is a derived mask recommendation. Transient — computed
// fresh per forecast hour, never persisted.
type Recommendation struct {
	Status   MaskStatus
	MaskType string
	Note     string
}

// Default mask type and guidance fragments.
const (
	maskTypeStandard = "N95 or KN95 mask"
	maskTypeValved   = "N95 or KN95 mask with valve for easier breathing"

	noteBronchodilator = "Consider using a bronchodilator before going outside if prescribed by your doctor. "
	noteLimitOutdoor   = "Limit outdoor exposure when possible. "
	noteHotWeather     = "Use a lightweight mask due to high temperature. Take frequent breaks in air-conditioned spaces."
	noteColdWeather    = "Consider a mask with a heat exchanger for comfort in cold weather."
	noteModerate       = "Standard protection recommended."
)

// Vulnerable age bounds: young children and the elderly escalate like a
// non-respiratory risk condition.
const (
	childAgeMax  = 12
	seniorAgeMin = 65
)

// RecommendMask derives a mask recommendation for one forecast hour.
//
// This engine is only invoked once an alert threshold has already been
// crossed upstream, so the floor is "recommended" — there is no
// "no mask needed" outcome. Temperature is optional (nil when the weather
// series was unavailable); absence selects the moderate-weather guidance.
func RecommendMask(aqi float64, symptoms, conditions []string, age int, temperature *float64) Recommendation {
	status := MaskRecommended
	switch {
	case aqi >= 300:
		status = MaskMandatory
	case aqi >= 200:
		status = MaskStronglyRecommended
	case aqi >= 150:
		status = MaskRecommended
	}

	maskType := maskTypeStandard
	note := ""

	respiratory := HasRespiratorySymptom(symptoms) || HasConditionCategory(conditions, CategoryRespiratory)
	vulnerable := HasConditionCategory(conditions, CategoryCardiovascular) ||
		HasConditionCategory(conditions, CategoryImmune) ||
		HasConditionCategory(conditions, CategoryPregnancy) ||
		age <= childAgeMax || age >= seniorAgeMin

	switch {
	case respiratory:
		// Respiratory risk takes priority and may promote to mandatory.
		status = status.Escalate()
		maskType = maskTypeValved
		note = noteBronchodilator
	case vulnerable:
		// Other vulnerabilities never auto-promote past strongly recommended.
		if status == MaskRecommended {
			status = MaskStronglyRecommended
		}
		note = noteLimitOutdoor
	}

	// Temperature guidance always closes the note, so it is never empty.
	switch {
	case temperature != nil && *temperature > 35:
		note += noteHotWeather
	case temperature != nil && *temperature < 10:
		note += noteColdWeather
	default:
		note += noteModerate
	}

	return Recommendation{
		Status:   status,
		MaskType: maskType,
		Note:     note,
	}
}
