package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty rates how demanding a recipe is to cook.
type Difficulty string

// Possible difficulty values, as produced by the generation schema.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyExpert Difficulty = "Expert"
)

// Step is a single instruction in a recipe. Tip and Duration are
// optional embellishments the model may or may not produce.
type Step struct {
	Instruction string `json:"instruction"`
	Tip         string `json:"tip,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// Recipe is the central persisted entity: the structured result of a
// generation request, enriched with an ID and creation timestamp.
//
// After a successful generation Title, Description, Difficulty,
// IngredientsFound and Steps are always present. ImageData is attached
// later by the enrichment pipeline and is never required.
type Recipe struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	CuisineStyle      string     `json:"cuisineStyle,omitempty"`
	Difficulty        Difficulty `json:"difficulty"`
	TotalTime         string     `json:"totalTime,omitempty"`
	IngredientsFound  []string   `json:"ingredientsFound"`
	PantryItemsNeeded []string   `json:"pantryItemsNeeded"`
	Steps             []Step     `json:"steps"`
	Constraints       []string   `json:"constraints"`
	ImageData         string     `json:"imageData,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// NewRecipe stamps a freshly generated recipe with a unique ID, the
// current time, and the user's original constraints, then validates it.
// The remaining fields must already be populated from the model output.
func NewRecipe(recipe Recipe, constraints []string) (*Recipe, error) {
	recipe.ID = uuid.New()
	recipe.CreatedAt = time.Now().UTC()
	recipe.Constraints = constraints
	recipe.normalize()

	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	return &recipe, nil
}

// normalize replaces nil slices with empty ones so that serialized
// recipes round-trip without null/[] drift.
func (r *Recipe) normalize() {
	if r.IngredientsFound == nil {
		r.IngredientsFound = []string{}
	}
	if r.PantryItemsNeeded == nil {
		r.PantryItemsNeeded = []string{}
	}
	if r.Constraints == nil {
		r.Constraints = []string{}
	}
}

// Validate checks the invariants a generated recipe must satisfy.
// A recipe without steps is rejected: it cannot be cooked.
func (r *Recipe) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRecipeID
	}

	if r.Title == "" {
		return ErrEmptyRecipeTitle
	}

	if r.Description == "" {
		return ErrEmptyRecipeDescription
	}

	if !r.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	if len(r.Steps) == 0 {
		return ErrNoSteps
	}

	for _, step := range r.Steps {
		if step.Instruction == "" {
			return ErrEmptyStepInstruction
		}
	}

	return nil
}

// IsValid reports whether the difficulty is one of the known values.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	default:
		return false
	}
}
