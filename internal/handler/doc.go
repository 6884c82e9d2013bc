// Package handler implements the HTTP endpoints of the HomeGame API.
//
// Every response is the envelope {"status":"ok", ...payload} or
// {"status":"error","errors":[...]}. Handlers decode and validate the
// request body, call a service, and map service errors to the envelope
// through MapServiceError; messages that depend on request data (the
// lockout countdown, the duplicate-invite username) are composed in the
// handler before falling through to the mapper.
package handler
