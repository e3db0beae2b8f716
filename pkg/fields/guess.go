package fields

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
)

var (
	textAreaNames = map[string]struct{}{
		"description": {}, "comments": {}, "comment": {}, "notes": {},
		"body": {}, "bio": {}, "summary": {}, "message": {},
	}
	textNames = map[string]struct{}{
		"name": {}, "title": {}, "username": {}, "login": {}, "street": {},
		"city": {}, "state": {}, "country": {}, "zip": {}, "postcode": {},
		"phone": {}, "company": {}, "subject": {}, "url": {}, "website": {},
	}
	integerNames = map[string]struct{}{
		"age": {}, "quantity": {}, "count": {}, "year": {}, "position": {},
	}
)

// DefaultGuesser infers a type tag from common naming conventions of the leaf
// name. Names that follow none of them have no guess.
func DefaultGuesser(name string) (string, bool) {
	leaf := strings.ToLower(strings.TrimSpace(name))
	if idx := strings.LastIndexByte(leaf, '.'); idx >= 0 {
		leaf = leaf[idx+1:]
	}
	if leaf == "" {
		return "", false
	}

	switch {
	case leaf == "submit" || strings.HasPrefix(leaf, "submit_"):
		return field.TypeSubmit, true
	case leaf == "password" || leaf == "passwd" || strings.HasSuffix(leaf, "_password"):
		return field.TypePassword, true
	case leaf == "email" || strings.HasSuffix(leaf, "_email"):
		return field.TypeEmail, true
	case leaf == "id" || strings.HasSuffix(leaf, "_id"):
		return field.TypeHidden, true
	case hasAnyPrefix(leaf, "is_", "has_", "can_", "allow_") || strings.HasSuffix(leaf, "_flag"):
		return field.TypeCheckbox, true
	case strings.HasSuffix(leaf, "_count") || strings.HasSuffix(leaf, "_number"):
		return field.TypeInteger, true
	}

	if _, ok := integerNames[leaf]; ok {
		return field.TypeInteger, true
	}
	if _, ok := textAreaNames[leaf]; ok {
		return field.TypeTextArea, true
	}
	if _, ok := textNames[leaf]; ok || strings.HasSuffix(leaf, "_name") {
		return field.TypeText, true
	}
	return "", false
}

func hasAnyPrefix(value string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
