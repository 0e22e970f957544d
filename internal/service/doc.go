// Package service contains the application state controller: a single
// finite-state machine governing which screen is visible, holding the
// current recipe, the cookbook history, and the last classified error.
// The controller invokes the generation gateway and is the sole place
// user-facing error messaging is derived.
package service
