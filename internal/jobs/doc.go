// Package jobs implements background tasks that run independently of
// HTTP request handling.
//
// The only job today is CleanupJob, which periodically drops expired
// password-reset tokens and login sessions. Jobs log errors but never
// crash the application.
package jobs
