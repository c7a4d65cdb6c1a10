package api

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "invalid api key",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: "invalid zip code",
		1101: "zip code could not be resolved",
		1102: "unknown signal type",
		1103: "signal data unavailable",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAPIKey              = errorJSON(1000)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorInvalidZip        = errorJSON(1100)
	errorZipNotFound       = errorJSON(1101)
	errorUnknownSignal     = errorJSON(1102)
	errorSignalUnavailable = errorJSON(1103)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
