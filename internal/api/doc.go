// Package api handles incoming HTTP requests for the task service: request
// decoding and validation, calls into the task service, and response
// formatting. It translates HTTP concerns to task operations and maps their
// outcomes back to status codes.
package api
