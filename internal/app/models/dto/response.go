package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// StatusResponse answers liveness probes
type StatusResponse struct {
	Message string `json:"message" example:"pong"`
	Status  string `json:"status" example:"success"`
}
