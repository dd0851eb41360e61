package risk

// AQI category breakpoints follow the US EPA index.

// CategoryLabel returns the short AQI category label used in alert messages.
func CategoryLabel(aqi float64) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// Describe returns the long AQI range description used in logs and reports.
func Describe(aqi float64) string {
	switch {
	case aqi <= 50:
		return "Good - Air quality is satisfactory"
	case aqi <= 100:
		return "Moderate - Air quality is acceptable"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
