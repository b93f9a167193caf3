package service

import "strings"

// validateUser checks user input against the write rules. Rules are checked
// in order name, email, age; the first violation wins.
func validateUser(name, email string, age int) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Reason: "Name cannot be empty."}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Reason: "Invalid email format."}
	}
	if age <= 0 {
		return &ValidationError{Reason: "Age must be positive."}
	}
	return nil
}
