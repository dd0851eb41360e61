package risk

import "strings"

// ConditionCategory classifies a free-text chronic condition name into the
// risk axis it affects. Exactly zero or one category applies per condition.
type ConditionCategory int

const (
	CategoryOther ConditionCategory = iota
	CategoryRespiratory
	CategoryCardiovascular
	CategoryImmune
	CategoryPregnancy
)

// String returns the category name.
func (c ConditionCategory) String() string {
	switch c {
	case CategoryRespiratory:
		return "respiratory"
	case CategoryCardiovascular:
		return "cardiovascular"
	case CategoryImmune:
		return "immune"
	case CategoryPregnancy:
		return "pregnancy"
	default:
		return "other"
	}
}

// conditionKeywords maps each category to the case-insensitive substrings
// that identify it. Input vocabularies vary ("Asthma", "severe asthma",
// "COPD stage 2"), so matching is by keyword, not equality. Order matters:
// the first category with a matching keyword wins.
var conditionKeywords = []struct {
	category ConditionCategory
	keywords []string
}{
	{CategoryRespiratory, []string{"asthma", "copd", "bronchitis", "emphysema"}},
	{CategoryCardiovascular, []string{"heart disease", "hypertension", "high blood pressure", "cardiovascular"}},
	{CategoryImmune, []string{"immunodeficiency", "immunocompromised", "diabetes", "cancer"}},
	{CategoryPregnancy, []string{"pregnan"}},
}

// respiratorySymptomKeywords identify symptoms that indicate airway distress.
var respiratorySymptomKeywords = []string{
	"cough", "shortness of breath", "wheezing", "chest pain",
}

// CategorizeCondition maps a free-text condition name to its category.
func CategorizeCondition(name string) ConditionCategory {
	lower := strings.ToLower(name)
	for _, entry := range conditionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}

// HasConditionCategory reports whether any condition falls into the category.
func HasConditionCategory(conditions []string, category ConditionCategory) bool {
	for _, c := range conditions {
		if CategorizeCondition(c) == category {
			return true
		}
	}
	return false
}

// IsRespiratorySymptom reports whether a symptom indicates airway distress.
func IsRespiratorySymptom(symptom string) bool {
	lower := strings.ToLower(symptom)
	for _, kw := range respiratorySymptomKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// HasRespiratorySymptom reports whether any symptom indicates airway distress.
func HasRespiratorySymptom(symptoms []string) bool {
	for _, s := range symptoms {
		if IsRespiratorySymptom(s) {
			return true
		}
	}
	return false
}
