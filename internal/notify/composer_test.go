package notify_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/breathesafe/breathesafe/internal/notify"
	"github.com/breathesafe/breathesafe/internal/risk"
)

func tempPtr(v float64) *float64 { return &v }

func TestCityName(t *testing.T) {
	assert.Equal(t, "Mangalagiri", notify.CityName("Mangalagiri, Guntur, Andhra Pradesh"))
	assert.Equal(t, "Delhi", notify.CityName("Delhi"))
	assert.Equal(t, "Pune", notify.CityName("  Pune , Maharashtra"))
	assert.Equal(t, "", notify.CityName(""))
}

func TestCompose_FullMessage(t *testing.T) {
	forecastAt := time.Date(2026, time.June, 3, 14, 0, 0, 0, time.Local)

	body := notify.Compose(notify.AlertContent{
		Location:    "Mangalagiri, Guntur, Andhra Pradesh",
		ForecastAt:  forecastAt,
		AQI:         350,
		PM25:        240,
		Temperature: tempPtr(38.4),
		Recommendation: risk.Recommendation{
			Status:   risk.MaskMandatory,
			MaskType: "N95 or KN95 mask",
		},
	})

	lines := strings.Split(body, "\n")
	assert.Equal(t, []string{
		"BreathSafe Alert for Mangalagiri",
		"Forecast for: Jun 3, 2:00 PM",
		"AQI: 350 (Hazardous)",
		"PM2.5: 240 μg/m³",
		"Temp: 38°C",
		"Mask: mandatory",
	}, lines)
	assert.LessOrEqual(t, len([]rune(body)), notify.MaxMessageLength)
}

func TestCompose_MissingTemperature(t *testing.T) {
	body := notify.Compose(notify.AlertContent{
		Location:       "Delhi",
		ForecastAt:     time.Date(2026, time.January, 9, 0, 30, 0, 0, time.Local),
		AQI:            95,
		PM25:           40,
		Temperature:    nil,
		Recommendation: risk.Recommendation{Status: risk.MaskRecommended},
	})

	assert.Contains(t, body, "Temp: N/A")
	assert.Contains(t, body, "Forecast for: Jan 9, 12:30 AM")
	assert.Contains(t, body, "AQI: 95 (Moderate)")
}

func TestCompose_TruncatesOverlongBody(t *testing.T) {
	// A location whose first segment cannot be shortened forces the
	// body over the cap.
	longCity := strings.Repeat("Krungthepmahanakhon ", 5)

	body := notify.Compose(notify.AlertContent{
		Location:       longCity,
		ForecastAt:     time.Date(2026, time.June, 3, 14, 0, 0, 0, time.Local),
		AQI:            350,
		PM25:           240,
		Temperature:    tempPtr(38),
		Recommendation: risk.Recommendation{Status: risk.MaskMandatory},
	})

	runes := []rune(body)
	assert.Len(t, runes, notify.MaxMessageLength)
	assert.True(t, strings.HasSuffix(body, "..."))
}

func TestCompose_StatusRendering(t *testing.T) {
	for _, status := range []risk.MaskStatus{
		risk.MaskRecommended,
		risk.MaskStronglyRecommended,
		risk.MaskMandatory,
	} {
		body := notify.Compose(notify.AlertContent{
			Location:       "Delhi",
			ForecastAt:     time.Date(2026, time.June, 3, 14, 0, 0, 0, time.Local),
			AQI:            180,
			PM25:           90,
			Recommendation: risk.Recommendation{Status: status},
		})
		assert.Contains(t, body, "Mask: "+status.String())
	}
}
