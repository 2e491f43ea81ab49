package dto

import (
	"time"

	"github.com/google/uuid"
)

type DoctorVisitCount struct {
	DoctorID   uuid.UUID `json:"doctor_id"`
	DoctorName string    `json:"doctor_name"`
	Count      int       `json:"count"`
}

type DailyVisitsReport struct {
	Date     string             `json:"date"`
	Total    int                `json:"total"`
	ByStatus map[string]int     `json:"by_status"`
	ByDoctor []DoctorVisitCount `json:"by_doctor"`
}

type BillingSummaryReport struct {
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	TotalAmount float64            `json:"total_amount"`
	ByMethod    map[string]float64 `json:"by_method"`
}

type DoctorQueueStats struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name"`
	Waiting        int       `json:"waiting"`
	InConsultation int       `json:"in_consultation"`
	Completed      int       `json:"completed"`
	AvgWaitMinutes float64   `json:"avg_wait_minutes"`
}

type QueueStatsReport struct {
	Date     string             `json:"date"`
	ByDoctor []DoctorQueueStats `json:"by_doctor"`
}

type PatientStatsReport struct {
	TotalPatients int64 `json:"total_patients"`
	NewToday      int64 `json:"new_today"`
}
