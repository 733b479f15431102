// Package service provides application-level operations on tasks.
//
// Services hold the rules that sit above storage: mapping store errors to
// service sentinels and publishing lifecycle events after successful
// mutations. They are constructed with their dependencies injected so tests
// can substitute stores and emitters.
package service
