package models

import "github.com/breathesafe/breathesafe/internal/alert"

// Pollutants is the pollutant breakdown of one alert, in μg/m³ except
// CO (mg/m³), rounded to whole numbers.
type Pollutants struct {
	PM25 int `json:"pm25"`
	PM10 int `json:"pm10"`
	CO   int `json:"co"`
	NO2  int `json:"no2"`
	SO2  int `json:"so2"`
	O3   int `json:"o3"`
}

// Alert is one SMS alert record.
type Alert struct {
	AlertID    string     `json:"alertId"`
	Location   string     `json:"location"`
	AQI        int        `json:"aqi"`
	Pollutants Pollutants `json:"pollutants"`
	ForecastAt Timestamp  `json:"forecastAt"`
	SMSSent    bool       `json:"smsSent"`
	SMSSentAt  *Timestamp `json:"smsSentAt,omitempty"`
	CreatedAt  Timestamp  `json:"createdAt"`
}

// AlertList is the response body for GET /v1/me/alerts.
type AlertList struct {
	Items []Alert `json:"items"`
}

// NewAlert converts a domain alert into the API representation.
func NewAlert(a *alert.Alert) Alert {
	return Alert{
		AlertID:  a.ID,
		Location: a.Location,
		AQI:      a.AQI,
		Pollutants: Pollutants{
			PM25: a.Pollutants.PM25,
			PM10: a.Pollutants.PM10,
			CO:   a.Pollutants.CO,
			NO2:  a.Pollutants.NO2,
			SO2:  a.Pollutants.SO2,
			O3:   a.Pollutants.O3,
		},
		ForecastAt: Timestamp(a.ForecastAt),
		SMSSent:    a.SMSSent,
		SMSSentAt:  TimestampPtr(a.SMSSentAt),
		CreatedAt:  Timestamp(a.CreatedAt),
	}
}
