package gemini

// recipeContent is the expected structure of the model's JSON response,
// mirroring the declared response schema.
type recipeContent struct {
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	CuisineStyle      string        `json:"cuisineStyle"`
	Difficulty        string        `json:"difficulty"`
	TotalTime         string        `json:"totalTime"`
	IngredientsFound  []string      `json:"ingredientsFound"`
	PantryItemsNeeded []string      `json:"pantryItemsNeeded"`
	Steps             []stepContent `json:"steps"`
}

// stepContent is a single step in the model's JSON response.
type stepContent struct {
	Instruction string `json:"instruction"`
	Tip         string `json:"tip,omitempty"`
	Duration    string `json:"duration,omitempty"`
}
