package dto

// CreateSportRequest is the payload for creating a sport catalog entry.
type CreateSportRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateSportRequest is the partial-update payload for a sport.
type UpdateSportRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
