package model

import (
	"time"

	"github.com/google/uuid"
)

type ADTStatus string

const (
	ADTPending  ADTStatus = "pending"
	ADTApproved ADTStatus = "approved"
	ADTDenied   ADTStatus = "denied"
)

// ADTRequest is an Active Duty Training request form. Once reviewed the
// status is terminal; only the denial reason is set at transition time.
type ADTRequest struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	Status       ADTStatus `json:"status"`
	DenialReason string    `json:"denial_reason,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`

	FullName         string `json:"full_name"`
	SSNLast4         string `json:"ssn_last4"`
	FacilityName     string `json:"facility_name"`
	RemainingADTDays string `json:"remaining_adt_days"`
	AdvancePayment   string `json:"advance_payment"`
	Email            string `json:"email"`
	Married          string `json:"married"`
	Dependents       string `json:"dependents"`
	DependentNames   string `json:"dependent_names"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TravelMode       string `json:"travel_mode"`
	RentalCar        string `json:"rental_car"`
	Phone            string `json:"phone"`
	AltPhone         string `json:"alt_phone"`
	HomeOfRecord     string `json:"home_of_record"`
	CurrentAddress   string `json:"current_address"`
	Signature        string `json:"signature"`
	Date             string `json:"date"`
}
