package notify

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/breathesafe/breathesafe/internal/risk"
)

const (
	// MaxMessageLength is the hard SMS body cap. Longer bodies are
	// truncated rather than split into multipart messages.
	MaxMessageLength = 150

	// truncatedLength leaves room for the ellipsis.
	truncatedLength = 147
)

// timeLayout renders forecast hours like "Jun 3, 2:00 PM".
const timeLayout = "Jan 2, 3:04 PM"

// AlertContent carries everything the composer needs for one alert SMS.
type AlertContent struct {
	// Location is the user's stored location text. Only the first
	// comma-separated segment (the city) appears in the message.
	Location string

	// ForecastAt is the forecast hour the alert is about, not send time.
	ForecastAt time.Time

	// AQI is the forecast US AQI, already rounded.
	AQI int

	// PM25 is the forecast PM2.5 in μg/m³, already rounded.
	PM25 int

	// Temperature is optional. Nil renders as "N/A".
	Temperature *float64

	// Recommendation is the mask guidance for this hour.
	Recommendation risk.Recommendation
}

// CityName extracts the city segment from a stored location.
// "Mangalagiri, Guntur, Andhra Pradesh" becomes "Mangalagiri".
func CityName(location string) string {
	city, _, _ := strings.Cut(location, ",")
	return strings.TrimSpace(city)
}

// Compose renders the alert SMS body. The result never exceeds
// MaxMessageLength runes: overlong bodies are cut at 147 with a
// trailing ellipsis, which sacrifices the tail (usually the mask line)
// to keep delivery single-segment.
func Compose(content AlertContent) string {
	temp := "N/A"
	if content.Temperature != nil {
		temp = fmt.Sprintf("%d°C", int(math.Round(*content.Temperature)))
	}

	message := fmt.Sprintf(
		"BreathSafe Alert for %s\n"+
			"Forecast for: %s\n"+
			"AQI: %d (%s)\n"+
			"PM2.5: %d μg/m³\n"+
			"Temp: %s\n"+
			"Mask: %s",
		CityName(content.Location),
		content.ForecastAt.Format(timeLayout),
		content.AQI,
		risk.CategoryLabel(float64(content.AQI)),
		content.PM25,
		temp,
		content.Recommendation.Status,
	)

	runes := []rune(message)
	if len(runes) > MaxMessageLength {
		return string(runes[:truncatedLength]) + "..."
	}
	return message
}
