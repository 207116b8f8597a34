package dto

// Error codes returned in the error envelope.
const (
	CodeValidationError        = "VALIDATION_ERROR"
	CodeAuthenticationError    = "AUTHENTICATION_ERROR"
	CodeRegistrationError      = "REGISTRATION_ERROR"
	CodeLoginError             = "LOGIN_ERROR"
	CodeTokenVerificationError = "TOKEN_VERIFICATION_ERROR"
	CodeUsageCreationError     = "USAGE_CREATION_ERROR"
	CodeUsageRetrievalError    = "USAGE_RETRIEVAL_ERROR"
	CodeScoreSaveError         = "SCORE_SAVE_ERROR"
	CodeScoreRetrievalError    = "SCORE_RETRIEVAL_ERROR"
	CodeStatsError             = "STATS_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeInternalServerError    = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail is the error half of the response envelope.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is the uniform envelope every endpoint returns. Success responses
// carry data, error responses carry an error detail, never both.
type Response struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// SuccessResponse wraps data in a success envelope.
func SuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// ErrorResponse builds an error envelope with the given code and message.
func ErrorResponse(code, message string) Response {
	return Response{Success: false, Error: &ErrorDetail{Code: code, Message: message}}
}
