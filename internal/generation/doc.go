// Package generation defines the interfaces and error taxonomy for the
// generation gateway. The interfaces form the boundary between the
// application core and the external model provider, following the
// hexagonal architecture pattern; internal/platform/gemini carries the
// concrete implementation.
package generation
