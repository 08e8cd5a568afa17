package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// A sprint code is a program prefix, a dash and a module.sprint number,
// e.g. WD-1.1.
var sprintCodeRe = regexp.MustCompile(`^[A-Z]+-\d+\.\d+$`)

// Placeholders every congratulation template must contain.
var requiredPlaceholders = []string{"{username}", "{sprintName}"}

func validateSprintCode(code string) error {
	if !sprintCodeRe.MatchString(code) {
		return errors.New("sprintCode must match the PROGRAM-N.N format")
	}
	return nil
}

func validateSprintName(name string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return errors.New("name must be between 1 and 100 characters")
	}
	return nil
}

func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 1 || n > 6 {
		return errors.New("username must be between 1 and 6 characters")
	}
	return nil
}

func validateTemplateMessage(message string) error {
	if n := utf8.RuneCountInString(message); n < 1 || n > 500 {
		return errors.New("message must be between 1 and 500 characters")
	}
	for _, placeholder := range requiredPlaceholders {
		if !strings.Contains(message, placeholder) {
			return fmt.Errorf("message must contain the %s placeholder", placeholder)
		}
	}
	return nil
}

func validateId(id int) error {
	if id <= 0 {
		return errors.New("id must be a positive integer")
	}
	return nil
}
