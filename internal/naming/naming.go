package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser performs proper English title casing.
// strings.Title is deprecated; x/text handles multi-rune cases correctly.
var titleCaser = cases.Title(language.English)

// Sanitize strips every character that is not a letter or digit.
// Example: "Pet Store API" -> "PetStoreAPI"
// Example: "users-api v2.1" -> "usersapiv21"
func Sanitize(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// SourceSuffix builds the rename suffix derived from a source document title.
// Used when a schema collides by name but differs by type: the incoming
// schema becomes "<name>_<SourceSuffix(title)>".
// Returns "unknown" when the title sanitizes to nothing.
func SourceSuffix(title string) string {
	s := Sanitize(title)
	if s == "" {
		return "unknown"
	}
	return s
}

// WrapperField builds a camelCase wrapper field name from a source title and
// a suffix, e.g. WrapperField("Pet Store", "Data") -> "petStoreData".
func WrapperField(title, suffix string) string {
	s := ToCamelCase(Sanitize(titleCaser.String(title)))
	if s == "" {
		s = "source"
	}
	return s + suffix
}

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, space) trigger capitalization
// of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "pet store" -> "PetStore"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == '/' || r == ' ' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
// Example: "PetStore" -> "petStore"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
