// Package domain contains the core business entities of the task service:
// the Task record, the partial TaskUpdate applied to it, and the validation
// errors raised when either is malformed. It is independent of storage and
// transport.
package domain
