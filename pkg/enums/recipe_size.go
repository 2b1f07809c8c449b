package enums

import "fmt"

// RecipeSize is the portion size a dish is ordered in.
type RecipeSize string

const (
	RecipeSizeMedium RecipeSize = "medium"
	RecipeSizeLarge  RecipeSize = "large"
)

var validRecipeSizes = []RecipeSize{
	RecipeSizeMedium,
	RecipeSizeLarge,
}

// String implements fmt.Stringer.
func (s RecipeSize) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RecipeSize.
func (s RecipeSize) IsValid() bool {
	for _, candidate := range validRecipeSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRecipeSize converts raw input into a RecipeSize.
func ParseRecipeSize(value string) (RecipeSize, error) {
	for _, candidate := range validRecipeSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recipe size %q", value)
}
