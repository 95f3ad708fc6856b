package dto

type SubmitADTInput struct {
	FullName         string `json:"full_name" binding:"required,max=150"`
	SSNLast4         string `json:"ssn_last4" binding:"required,len=4,numeric"`
	FacilityName     string `json:"facility_name" binding:"required,max=150"`
	RemainingADTDays string `json:"remaining_adt_days" binding:"required,max=10"`
	AdvancePayment   string `json:"advance_payment" binding:"required,oneof=Yes No"`
	Email            string `json:"email" binding:"required,email"`
	Married          string `json:"married" binding:"required,oneof=Yes No"`
	Dependents       string `json:"dependents" binding:"required,oneof=Yes No"`
	DependentNames   string `json:"dependent_names" binding:"max=500"`
	StartDate        string `json:"start_date" binding:"required"`
	EndDate          string `json:"end_date" binding:"required"`
	TravelMode       string `json:"travel_mode" binding:"required,oneof=Drive Fly Local"`
	RentalCar        string `json:"rental_car" binding:"required,oneof=Yes No"`
	Phone            string `json:"phone" binding:"required,max=30"`
	AltPhone         string `json:"alt_phone" binding:"max=30"`
	HomeOfRecord     string `json:"home_of_record" binding:"required,max=300"`
	CurrentAddress   string `json:"current_address" binding:"required,max=300"`
	Signature        string `json:"signature" binding:"required,max=150"`
	Date             string `json:"date" binding:"required"`
}

type ReviewADTInput struct {
	Decision string `json:"decision" binding:"required,oneof=approved denied"`
	Reason   string `json:"reason" binding:"max=500"`
}
