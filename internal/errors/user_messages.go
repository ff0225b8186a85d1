package errors

// User-friendly error messages
const (
	MsgInvalidDataFormat  = "invalid data format"
	MsgServiceUnavailable = "We're unable to retrieve property listings right now. Please try again in a few minutes."
	MsgRequestTimedOut    = "Request timed out"
	MsgStaleSearch        = "A newer search was started; these results were discarded."
	MsgSessionNotFound    = "Dashboard session not found or expired. Please start a new session."
	MsgListingNotFound    = "Listing not found."
	MsgRateLimited        = "You're searching too quickly! Please wait a moment and try again."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
