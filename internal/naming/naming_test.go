package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "already clean", input: "PetStore", want: "PetStore"},
		{name: "spaces stripped", input: "Pet Store API", want: "PetStoreAPI"},
		{name: "punctuation stripped", input: "users-api v2.1", want: "usersapiv21"},
		{name: "only punctuation", input: "---", want: ""},
		{name: "unicode letters kept", input: "café API", want: "caféAPI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSourceSuffix(t *testing.T) {
	assert.Equal(t, "BillingAPI", SourceSuffix("Billing API"))
	assert.Equal(t, "unknown", SourceSuffix(""))
	assert.Equal(t, "unknown", SourceSuffix(" - "))
}

func TestWrapperField(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		suffix string
		want   string
	}{
		{name: "two words", title: "Pet Store", suffix: "Data", want: "petStoreData"},
		{name: "hyphenated", title: "users-api", suffix: "Response", want: "usersApiResponse"},
		{name: "single word", title: "Billing", suffix: "Data", want: "billingData"},
		{name: "empty title falls back", title: "", suffix: "Data", want: "sourceData"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapperField(tt.title, tt.suffix))
		})
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "snake case", input: "user_profile", want: "UserProfile"},
		{name: "kebab case", input: "api-client", want: "ApiClient"},
		{name: "spaces", input: "pet store", want: "PetStore"},
		{name: "already pascal", input: "UserProfile", want: "UserProfile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "snake case", input: "user_profile", want: "userProfile"},
		{name: "pascal input", input: "PetStore", want: "petStore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCamelCase(tt.input))
		})
	}
}
