// Package events provides a minimal in-process event system used to
// decouple the application controller from background task creation.
package events
