package models

// Response code definitions
const (
	// Success
	CodeSuccess = 0

	// Client errors (1000-1999)
	CodeInvalidParams = 1000 // invalid parameter
	CodeMissingParams = 1001 // missing required parameter
	CodeNoResultData  = 1004 // no matching recommendations

	// Server errors (2000-2999)
	CodeServerError   = 2000 // internal server error
	CodeDatabaseError = 2001 // database error
)

// CodeMessages maps response codes to their default messages.
var CodeMessages = map[int]string{
	CodeSuccess:       "success",
	CodeInvalidParams: "invalid parameters",
	CodeMissingParams: "missing required parameters",
	CodeNoResultData:  "no recommendation data",
	CodeServerError:   "internal server error",
	CodeDatabaseError: "database error",
}

// APIResponse is the common response envelope.
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// AnalyzeResponse is the payload returned by the analyze endpoint.
type AnalyzeResponse struct {
	RiskScores  RiskScoreMap `json:"risk_scores"`
	SearchQuery string       `json:"search_query"`
	Supplements []Supplement `json:"supplements"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope with the code's default message.
func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "unknown error"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewCustomErrorResponse builds an error envelope with a custom message.
func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
