// Package domain defines the core business entities and errors.
//
// The central entity is Recipe, the structured output of a generation
// request. CaptureData is the transient input bundle assembled by the
// capture client and consumed exactly once by the generation gateway.
package domain
