// Package task provides the background task runner used for
// best-effort enrichment work, currently dish image synthesis after a
// successful recipe generation. Tasks are fire-and-forget: failures
// are logged and never affect the persisted history beyond a missing
// image.
package task
