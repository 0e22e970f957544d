package domain

// AudioClip is a single encoded audio payload with its MIME type,
// as recorded by the capture client.
type AudioClip struct {
	// Data is the base64-encoded audio payload.
	Data string `json:"data"`

	// MIMEType identifies the audio encoding (e.g. "audio/webm").
	MIMEType string `json:"mimeType"`
}

// CaptureData is the transient input bundle for a generation request:
// ordered still frames, an optional audio note, an optional text
// prompt, and the user's declared constraints. It is created per
// session by the capture client and consumed once by the gateway.
type CaptureData struct {
	// Images holds base64-encoded JPEG frames, in capture order.
	Images []string `json:"images"`

	// Audio is an optional single clip.
	Audio *AudioClip `json:"audio,omitempty"`

	// TextPrompt is an optional free-text request.
	TextPrompt string `json:"textPrompt,omitempty"`

	// Constraints are dietary/equipment restrictions the generated
	// recipe must respect, in the order the user declared them.
	Constraints []string `json:"constraints"`
}

// Validate checks that the capture carries at least one usable input.
// Images may be empty only when a text prompt or audio clip is supplied.
func (c *CaptureData) Validate() error {
	if len(c.Images) == 0 && c.Audio == nil && c.TextPrompt == "" {
		return ErrEmptyCapture
	}
	return nil
}

// HasAudio reports whether the capture includes an audio clip with data.
func (c *CaptureData) HasAudio() bool {
	return c.Audio != nil && c.Audio.Data != ""
}
