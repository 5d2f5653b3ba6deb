package parser

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"protexai/pkg/annotations"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Parse reads and validates an exported annotations JSON file, returning the
// parsed Annotations struct or an error.
func Parse(filePath string) (*annotations.Annotations, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("annotations file not found: %s", filePath)
	}

	// Configure Viper
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("json")

	// Read the file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("annotations file not found: %s", filePath)
		}
		return nil, fmt.Errorf("failed to read annotations file: %w", err)
	}

	// Unmarshal into Annotations struct
	var ann annotations.Annotations
	if err := v.Unmarshal(&ann); err != nil {
		return nil, fmt.Errorf("failed to parse annotations file - malformed JSON: %w", err)
	}

	// Validate the structure
	if err := validate.Struct(&ann); err != nil {
		return nil, formatValidationError(err)
	}

	return &ann, nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, formatFieldError(e))
		}

		if len(errorMessages) == 1 {
			return fmt.Errorf("validation error: %s", errorMessages[0])
		}

		result := "validation errors:\n"
		for _, msg := range errorMessages {
			result += fmt.Sprintf("  - %s\n", msg)
		}
		return fmt.Errorf("%s", result)
	}
	return fmt.Errorf("validation failed: %w", err)
}

// formatFieldError formats a single validation error into a user-friendly message.
func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	switch tag {
	case "required":
		return fmt.Sprintf("field '%s' is required but missing", field)
	case "gte":
		return fmt.Sprintf("field '%s' must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("field '%s' must be greater than %s", field, e.Param())
	default:
		return fmt.Sprintf("field '%s' failed validation (%s)", field, tag)
	}
}
