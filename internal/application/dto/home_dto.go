package dto

// CreateHomeRequest body para POST /api/homes.
type CreateHomeRequest struct {
	Names   string `json:"names"`
	Address string `json:"address"`
	Status  string `json:"status,omitempty"`
}

// UpdateHomeRequest body para PUT /api/homes/:id.
type UpdateHomeRequest struct {
	Names   *string `json:"names"`
	Address *string `json:"address"`
}
