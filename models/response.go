package models

// HealthCheckResponse returns the health check response, gasp
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// CountResponse is the envelope for every dashboard count endpoint
type CountResponse struct {
	Count int64 `json:"count"`
}

// CreatedResponse is returned by create endpoints with the new document id
type CreatedResponse struct {
	Message string `json:"message"`
	Data    string `json:"data"`
}

// MessageResponse is a bare message body
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse is the envelope used by case mutation endpoints
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FieldErrorResponse names the request field that failed validation
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
