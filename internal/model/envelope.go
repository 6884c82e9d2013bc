package model

// FieldError is a single wire-level error. Validation failures carry the
// offending field in Param; domain precondition failures use a stable
// named Param (e.g. "NoInvite") that clients key on.
type FieldError struct {
	Value    string `json:"value"`
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

// NamedError builds a domain error with a stable param name.
func NamedError(param, msg string) FieldError {
	return FieldError{Param: param, Msg: msg, Location: "body"}
}

// ValidationError builds a field-level validation error.
func ValidationError(param, msg, value string) FieldError {
	return FieldError{Param: param, Msg: msg, Value: value, Location: "body"}
}

// InternalError is the fixed-shape error returned for any infrastructure
// failure. Detail is deliberately withheld from the client.
func InternalError() FieldError {
	return FieldError{
		Param: "internal-error",
		Msg:   "Sorry, there was an internal error! Please try again.",
	}
}
