package api

const (
	CodeInvalidRequest   = "E_INVALID_REQUEST"    // bad or invalid request
	CodeNotFound         = "E_NOT_FOUND"          // the requested resource could not be found
	CodeMethodNotAllowed = "E_METHOD_NOT_ALLOWED" // the method is not supported by this route
	CodeInternalError    = "E_INTERNAL_ERROR"     // internal server error
	CodeWebsocketFailed  = "E_WEBSOCKET_FAILED"   // the websocket upgrade could not complete
)
