package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/breathesafe/breathesafe/internal/health"
)

// ageGroup buckets an age the way the report schema expects.
func ageGroup(age int) string {
	switch {
	case age < 18:
		return "Child"
	case age < 60:
		return "Adult"
	default:
		return "Senior"
	}
}

// riskLevel buckets an AQI reading for the report header.
func riskLevel(aqi float64) string {
	switch {
	case aqi > 150:
		return "High"
	case aqi > 100:
		return "Medium"
	default:
		return "Low"
	}
}

// buildPrompt renders the generation prompt. The model is instructed to
// return bare JSON in a fixed schema; coerceJSON handles the fence and
// trailing-comma slop models still produce.
func buildPrompt(assessment *health.Assessment, location string, aqi float64, aqiLabel string, now time.Time) string {
	var b strings.Builder

	b.WriteString("You are a friendly health advisor helping people understand how air quality affects their health. ")
	b.WriteString("Use simple, clear language that anyone can understand. ")
	b.WriteString("Focus on how current air quality might affect their specific health issues.\n\n")

	fmt.Fprintf(&b, "Current Air Quality:\n- Location: %s\n- AQI Value: %.0f\n- Air Quality Level: %s\n- Date: %s\n\n",
		location, aqi, aqiLabel, now.Format("Jan 2, 2006"))

	fmt.Fprintf(&b, "User's Health Info:\n- Age: %d years\n", assessment.Age)
	if len(assessment.Symptoms) > 0 {
		fmt.Fprintf(&b, "- Symptoms: %s\n", strings.Join(assessment.Symptoms, ", "))
	}
	if len(assessment.Conditions) > 0 {
		conditions := make([]string, len(assessment.Conditions))
		for i, c := range assessment.Conditions {
			conditions[i] = fmt.Sprintf("%s (%s)", c.Name, c.Severity)
		}
		fmt.Fprintf(&b, "- Chronic Conditions: %s\n", strings.Join(conditions, ", "))
	}
	if assessment.Other != "" {
		fmt.Fprintf(&b, "- Other Health Info: %s\n", assessment.Other)
	}

	b.WriteString(`
Provide comprehensive health recommendations covering age-specific
advice, per-condition guidance, general precautions, and medication
guidance.

Return a JSON object with this EXACT structure. Do not include any text before or after the JSON object:
{
  "userProfile": {
`)
	fmt.Fprintf(&b, "    \"age\": %d,\n    \"ageGroup\": %q,\n    \"riskLevel\": %q\n",
		assessment.Age, ageGroup(assessment.Age), riskLevel(aqi))
	b.WriteString(`  },
  "ageSpecificRecommendations": {
    "dailyActivities": "Age-appropriate activity recommendations",
    "precautions": "Age-specific precautions",
    "specialConsiderations": "Special considerations for this age group"
  },
  "healthSpecificRecommendations": [
    {
      "issue": "Health issue name",
      "effect": "How air quality affects this issue",
      "safetyMeasures": "What they should do",
      "extraCare": "When to be extra careful",
      "medicationAdvice": "Specific medication guidance for this issue"
    }
  ],
  "generalRecommendations": {
    "indoorAirQuality": "Tips for maintaining good indoor air quality",
    "activityModifications": "How to modify daily activities",
    "preventiveMeasures": "General preventive measures",
    "emergencyProtocols": "What to do in case of severe symptoms"
  },
  "medicationGuidance": {
    "currentMedications": "Advice for current medications",
    "overTheCounter": "Recommended OTC medications",
    "whenToSeekHelp": "When to consult a doctor",
    "emergencyMedications": "Emergency medication protocols"
  },
`)
	fmt.Fprintf(&b, "  \"outdoorActivitySafety\": {\n    \"isSafe\": %t,\n", aqi < 100)
	b.WriteString(`    "recommendation": "Clear advice about outdoor activities"
  },
`)
	fmt.Fprintf(&b, "  \"maskRecommendations\": {\n    \"isRecommended\": %t,\n", aqi > 100)
	b.WriteString(`    "type": "Recommended mask type",
    "usage": "How to use the mask"
  }
}

Important:
1. Return ONLY the JSON object, no additional text or explanation
2. Base all recommendations on the current AQI value
3. Keep all text values concise and clear
4. Ensure all JSON properties are properly formatted with no trailing commas`)

	return b.String()
}
