// Package gemini implements the generation gateway interfaces using
// Google's Gemini API. It covers three request shapes: schema-constrained
// multi-modal recipe generation, unstructured dish image synthesis, and
// audio-modality narration synthesis.
package gemini
