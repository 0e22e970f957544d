package gemini

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musekitchen/muse-api/internal/domain"
	"github.com/musekitchen/muse-api/internal/generation"
)

func b64(data string) string {
	return base64.StdEncoding.EncodeToString([]byte(data))
}

// TestBuildRecipePartsOrdering verifies the fixed part order: one part
// per image, audio if present, exactly one text part, then the final
// analysis instruction.
func TestBuildRecipePartsOrdering(t *testing.T) {
	capture := domain.CaptureData{
		Images: []string{b64("frame-one"), b64("frame-two"), b64("frame-three")},
	}

	parts, err := buildRecipeParts(capture)
	require.NoError(t, err)
	require.Len(t, parts, 5, "3 image parts + 1 text part + 1 analysis part")

	for i := 0; i < 3; i++ {
		require.NotNil(t, parts[i].InlineData, "part %d should be an image part", i)
		assert.Equal(t, "image/jpeg", parts[i].InlineData.MIMEType)
	}
	assert.Equal(t, []byte("frame-two"), parts[1].InlineData.Data, "image order must be preserved")

	assert.Equal(t, defaultInstruction, parts[3].Text,
		"no prompt and no audio should use the default instruction")
	assert.Equal(t, analysisInstruction, parts[4].Text,
		"the analysis instruction must be the final part")
}

func TestBuildRecipePartsAudio(t *testing.T) {
	capture := domain.CaptureData{
		Images: []string{b64("frame")},
		Audio:  &domain.AudioClip{Data: b64("voice-note"), MIMEType: "audio/webm"},
	}

	parts, err := buildRecipeParts(capture)
	require.NoError(t, err)
	require.Len(t, parts, 4)

	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "audio/webm", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte("voice-note"), parts[1].InlineData.Data)

	// Audio present, no prompt, no constraints: the text part is empty,
	// never one of the default instructions.
	assert.Equal(t, "", parts[2].Text)
	assert.Equal(t, analysisInstruction, parts[3].Text)
}

func TestBuildRecipePartsRejectsBadBase64(t *testing.T) {
	_, err := buildRecipeParts(domain.CaptureData{Images: []string{"not-base64!!"}})
	assert.ErrorIs(t, err, generation.ErrInvalidCapture)
}

// TestCaptureTextPriority verifies the text part priority: explicit
// prompt over default instruction over constraint-only text.
func TestCaptureTextPriority(t *testing.T) {
	testCases := []struct {
		name    string
		capture domain.CaptureData
		want    string
	}{
		{
			name:    "explicit prompt wins",
			capture: domain.CaptureData{TextPrompt: "turn these into tacos"},
			want:    "turn these into tacos",
		},
		{
			name:    "no prompt and no audio uses default",
			capture: domain.CaptureData{Images: []string{b64("x")}},
			want:    defaultInstruction,
		},
		{
			name: "audio without prompt sends no instruction",
			capture: domain.CaptureData{
				Audio: &domain.AudioClip{Data: b64("x"), MIMEType: "audio/webm"},
			},
			want: "",
		},
		{
			name: "explicit prompt wins over audio",
			capture: domain.CaptureData{
				TextPrompt: "make soup",
				Audio:      &domain.AudioClip{Data: b64("x"), MIMEType: "audio/webm"},
			},
			want: "make soup",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, captureText(tc.capture))
		})
	}
}

func TestCaptureTextConstraintPrefix(t *testing.T) {
	capture := domain.CaptureData{
		TextPrompt:  "make soup",
		Constraints: []string{"Vegetarian", "No Stove"},
	}

	text := captureText(capture)

	assert.Contains(t, text, "Vegetarian, No Stove", "directive must enumerate the constraints")
	assert.Contains(t, text, "MUST respect", "directive must mandate strict adherence")
	assert.Contains(t, text, "forbidden from using that equipment", "restricted equipment must be forbidden")
	assert.Contains(t, text, "microwave, an oven, or raw preparation", "alternatives must be mandated")
	assert.True(t, len(text) > len("make soup"))
	assert.Equal(t, "make soup", text[len(text)-len("make soup"):],
		"the user prompt must follow the directive")
}

// Audio present with constraints but no prompt: only the constraint
// text is sent, never the default instructions.
func TestCaptureTextConstraintOnlyWithAudio(t *testing.T) {
	capture := domain.CaptureData{
		Audio:       &domain.AudioClip{Data: b64("x"), MIMEType: "audio/webm"},
		Constraints: []string{"No Stove"},
	}

	text := captureText(capture)

	assert.Contains(t, text, "No Stove")
	assert.NotContains(t, text, defaultInstruction)
}
