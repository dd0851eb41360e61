package models

import "github.com/breathesafe/breathesafe/internal/report"

// ReportGenerateRequest is the request body for POST /v1/reports. The
// caller supplies the AQI snapshot the report should be written against.
type ReportGenerateRequest struct {
	Location string  `json:"location"`
	AQI      float64 `json:"aqi"`
}

// Report is one generated health report.
type Report struct {
	ReportID  string         `json:"reportId"`
	Location  string         `json:"location"`
	AQI       float64        `json:"aqi"`
	AQILabel  string         `json:"aqiLabel"`
	Content   report.Content `json:"content"`
	CreatedAt Timestamp      `json:"createdAt"`
}

// ReportList is the response body for GET /v1/reports.
type ReportList struct {
	Items []Report `json:"items"`
}

// NewReport converts a domain report into the API representation.
func NewReport(r *report.Report) Report {
	return Report{
		ReportID:  r.ID,
		Location:  r.Location,
		AQI:       r.AQI,
		AQILabel:  r.AQILabel,
		Content:   r.Content,
		CreatedAt: Timestamp(r.CreatedAt),
	}
}
