package dto

// RegisterResponse is returned when a new account is created.
type RegisterResponse struct {
	Message string `json:"message"`
}

// RegisterExistsResponse is returned when the email is already taken.
type RegisterExistsResponse struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Message string `json:"message"`
}
