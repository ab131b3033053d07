package reject_reservation

// RejectReservationRequest HTTP request model
type RejectReservationRequest struct {
	DenialReason string `json:"denialReason"`
}
