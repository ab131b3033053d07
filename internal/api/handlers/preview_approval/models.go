package preview_approval

import (
	approveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/approve_reservation"
)

// PreviewResponse HTTP response model: pending-брони, которые будут
// автоматически отклонены при подтверждении
type PreviewResponse struct {
	ReservationID int64   `json:"reservationId"`
	ConflictIDs   []int64 `json:"conflictIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveReservation.PreviewResponse) *PreviewResponse {
	conflictIDs := resp.ConflictIDs
	if conflictIDs == nil {
		conflictIDs = []int64{}
	}
	return &PreviewResponse{
		ReservationID: resp.ReservationID,
		ConflictIDs:   conflictIDs,
	}
}
