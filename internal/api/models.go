package api

import (
	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/service"
)

// NavigateRequest represents the request body for a screen navigation.
type NavigateRequest struct {
	Action string `json:"action" validate:"required,oneof=start about cookbook back record reset"`
}

// AudioClipRequest represents an optional audio note in a capture.
type AudioClipRequest struct {
	Data     string `json:"data"     validate:"required"`
	MIMEType string `json:"mimeType" validate:"required"`
}

// GenerateRequest represents the request body for a capture submission.
// At least one of images, audio or text must be present; the controller
// rejects an empty capture.
type GenerateRequest struct {
	Images      []string          `json:"images"`
	Audio       *AudioClipRequest `json:"audio,omitempty"`
	Text        string            `json:"text,omitempty"`
	Constraints []string          `json:"constraints"`
}

// toCapture converts the request into the domain capture bundle.
func (req *GenerateRequest) toCapture() domain.CaptureData {
	capture := domain.CaptureData{
		Images:      req.Images,
		TextPrompt:  req.Text,
		Constraints: req.Constraints,
	}
	if req.Audio != nil {
		capture.Audio = &domain.AudioClip{
			Data:     req.Audio.Data,
			MIMEType: req.Audio.MIMEType,
		}
	}
	return capture
}

// TextGenerateRequest represents the request body for a text-only
// generation from the cookbook screen.
type TextGenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=2000"`
}

// DishImageRequest represents the request body for dish image synthesis.
type DishImageRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// DishImageResponse carries the synthesized image payload.
type DishImageResponse struct {
	ImageData string `json:"imageData"`
}

// SpeechRequest represents the request body for speech synthesis.
type SpeechRequest struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

// SpeechResponse carries the synthesized audio payload.
type SpeechResponse struct {
	AudioData string `json:"audioData"`
}

// HistoryResponse represents the cookbook history, newest first.
type HistoryResponse struct {
	Recipes []*domain.Recipe `json:"recipes"`
	Count   int              `json:"count"`
}

// GenerationErrorResponse is the error body for failed generations. It
// carries the user-facing category so the client can render the error
// screen without interpreting status codes.
type GenerationErrorResponse struct {
	Error    string                `json:"error"`
	Category service.ErrorCategory `json:"category"`
	TraceID  string                `json:"trace_id,omitempty"`
}
