// Package events provides task lifecycle events and an in-process emitter.
//
// Services emit an event after each successful mutation without knowing who
// listens; handlers registered on the emitter (such as the audit logger)
// react to them. Delivery is synchronous and best effort.
package events
