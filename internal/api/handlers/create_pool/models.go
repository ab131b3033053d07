package create_pool

// CreatePoolRequest HTTP request model
type CreatePoolRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`     // coworking, laboratory, auditorium, meeting_room
	Capacity int    `json:"capacity"` // число взаимозаменяемых единиц
}
