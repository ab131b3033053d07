package check_in

// CheckInRequest HTTP request model
type CheckInRequest struct {
	ReservationID *int64 `json:"reservationId,omitempty"` // Привязка к брони (опционально)
}
