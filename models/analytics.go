package models

type MonthlyAppointmentCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type ProviderAnalytics struct {
	TotalPatients       int64                     `json:"total_patients"`
	TotalAppointments   int64                     `json:"total_appointments"`
	AvgRating           float64                   `json:"avg_rating"`
	ReviewCount         int                       `json:"review_count"`
	MonthlyAppointments []MonthlyAppointmentCount `json:"monthly_appointments"`
}

type PlatformStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalPatients     int64 `json:"total_patients"`
	TotalProviders    int64 `json:"total_providers"`
	TotalAppointments int64 `json:"total_appointments"`
}
