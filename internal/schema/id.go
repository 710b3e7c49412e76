package schema

import "regexp"

// taskIDPattern matches the store's 24-hex-character identifier format.
var taskIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ParseTaskID validates an :id route parameter.
func ParseTaskID(id string) (string, []FieldError) {
	if !taskIDPattern.MatchString(id) {
		return "", []FieldError{{Field: "id", Message: "Invalid task ID format"}}
	}
	return id, nil
}
