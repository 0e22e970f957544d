package gemini

import "google.golang.org/genai"

// recipeResponseSchema is the structured-output contract sent with every
// recipe generation request. Title, description, difficulty, detected
// ingredients and steps are required; pantry items and per-step
// tip/duration remain optional.
var recipeResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title": {
			Type:        genai.TypeString,
			Description: "A creative, appetizing name for the dish.",
		},
		"description": {
			Type:        genai.TypeString,
			Description: "A short, enticing description of the dish.",
		},
		"cuisineStyle": {
			Type:        genai.TypeString,
			Description: "The cuisine the dish belongs to.",
		},
		"difficulty": {
			Type: genai.TypeString,
			Enum: []string{"Easy", "Medium", "Hard", "Expert"},
		},
		"totalTime": {
			Type:        genai.TypeString,
			Description: "Total preparation and cooking time, e.g. '45 minutes'.",
		},
		"ingredientsFound": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Ingredients detected in the provided media.",
		},
		"pantryItemsNeeded": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Additional staples the user is assumed to have.",
		},
		"steps": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"instruction": {Type: genai.TypeString},
					"tip":         {Type: genai.TypeString},
					"duration":    {Type: genai.TypeString},
				},
				Required: []string{"instruction"},
			},
		},
	},
	Required: []string{"title", "description", "difficulty", "ingredientsFound", "steps"},
}
