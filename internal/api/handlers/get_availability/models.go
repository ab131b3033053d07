package get_availability

import (
	"time"

	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// SlotResponse занятый интервал [start, end)
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// OccurrenceResponse вхождение брони актора
type OccurrenceResponse struct {
	ReservationID int64  `json:"reservationId"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Status        string `json:"status"`
	Reason        string `json:"reason"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PoolID           int64                `json:"poolId"`
	From             string               `json:"from"`
	To               string               `json:"to"`
	UnavailableSlots []SlotResponse       `json:"unavailableSlots"`
	ActorOccurrences []OccurrenceResponse `json:"actorOccurrences"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		PoolID:           resp.PoolID,
		From:             resp.From.Format(time.RFC3339),
		To:               resp.To.Format(time.RFC3339),
		UnavailableSlots: make([]SlotResponse, 0, len(resp.UnavailableSlots)),
		ActorOccurrences: make([]OccurrenceResponse, 0, len(resp.ActorOccurrences)),
	}

	for _, slot := range resp.UnavailableSlots {
		out.UnavailableSlots = append(out.UnavailableSlots, SlotResponse{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		})
	}

	for _, occ := range resp.ActorOccurrences {
		out.ActorOccurrences = append(out.ActorOccurrences, OccurrenceResponse{
			ReservationID: occ.ReservationID,
			Start:         occ.Start.Format(time.RFC3339),
			End:           occ.End.Format(time.RFC3339),
			Status:        occ.Status,
			Reason:        occ.Reason,
		})
	}

	return out
}
