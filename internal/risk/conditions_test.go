package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/breathesafe/breathesafe/internal/risk"
)

func TestCategorizeCondition(t *testing.T) {
	tests := []struct {
		name string
		want risk.ConditionCategory
	}{
		{"Asthma", risk.CategoryRespiratory},
		{"severe asthma", risk.CategoryRespiratory},
		{"COPD stage 2", risk.CategoryRespiratory},
		{"Chronic Bronchitis", risk.CategoryRespiratory},
		{"Emphysema", risk.CategoryRespiratory},
		{"Heart Disease", risk.CategoryCardiovascular},
		{"Hypertension", risk.CategoryCardiovascular},
		{"high blood pressure", risk.CategoryCardiovascular},
		{"Diabetes Type 2", risk.CategoryImmune},
		{"Lung Cancer", risk.CategoryImmune},
		{"Immunodeficiency", risk.CategoryImmune},
		{"Pregnant", risk.CategoryPregnancy},
		{"pregnancy (2nd trimester)", risk.CategoryPregnancy},
		{"Arthritis", risk.CategoryOther},
		{"", risk.CategoryOther},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, risk.CategorizeCondition(tc.name), "condition %q", tc.name)
	}
}

func TestHasConditionCategory(t *testing.T) {
	conditions := []string{"Arthritis", "Hypertension"}
	assert.True(t, risk.HasConditionCategory(conditions, risk.CategoryCardiovascular))
	assert.False(t, risk.HasConditionCategory(conditions, risk.CategoryRespiratory))
	assert.False(t, risk.HasConditionCategory(nil, risk.CategoryRespiratory))
}

func TestIsRespiratorySymptom(t *testing.T) {
	assert.True(t, risk.IsRespiratorySymptom("Cough"))
	assert.True(t, risk.IsRespiratorySymptom("dry cough at night"))
	assert.True(t, risk.IsRespiratorySymptom("Shortness of Breath"))
	assert.True(t, risk.IsRespiratorySymptom("wheezing"))
	assert.True(t, risk.IsRespiratorySymptom("chest pain"))
	assert.False(t, risk.IsRespiratorySymptom("headache"))
	assert.False(t, risk.IsRespiratorySymptom(""))
}

func TestHasRespiratorySymptom(t *testing.T) {
	assert.True(t, risk.HasRespiratorySymptom([]string{"Headache", "Wheezing"}))
	assert.False(t, risk.HasRespiratorySymptom([]string{"Headache", "Fatigue"}))
	assert.False(t, risk.HasRespiratorySymptom(nil))
}
