package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersAPIYAML = `
openapi: 3.0.3
info:
  title: Users API
  version: 1.2.0
servers:
  - url: https://users.example.com/v1
paths:
  /users/{id}:
    get:
      operationId: getUser
      summary: Fetch a user
      tags: [users]
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
        - name: X-Request-ID
          in: header
          schema:
            type: string
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                type: object
                properties:
                  id:
                    type: string
                  email:
                    type: string
                required: [id]
    post:
      operationId: createUser
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              properties:
                email:
                  type: string
              required: [email]
      responses:
        '201':
          description: Created
components:
  schemas:
    User:
      type: object
      properties:
        id:
          type: string
      required: [id]
    Role:
      type: string
      enum: [admin, member]
`

func TestParseNormalizesDocument(t *testing.T) {
	doc, err := Parse([]byte(usersAPIYAML), "users.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Users API", doc.Title)
	assert.Equal(t, "1.2.0", doc.Version)
	assert.Equal(t, "https://users.example.com/v1", doc.BaseURL)
	require.Len(t, doc.Operations, 2)

	get := doc.FindOperation("GET", "/users/{id}")
	require.NotNil(t, get)
	assert.Equal(t, "getUser", get.OperationID)
	assert.Equal(t, "Fetch a user", get.Summary)
	assert.Equal(t, []string{"users"}, get.Tags)
	assert.Equal(t, "Users API", get.SourceAPI)
	require.Len(t, get.Parameters, 2)
	assert.Equal(t, "path:id", get.Parameters[0].Key())
	assert.True(t, get.Parameters[0].Required)
	assert.Equal(t, "header:x-request-id", get.Parameters[1].Key())

	resp := get.Responses["200"]
	require.NotNil(t, resp)
	require.NotNil(t, resp.Schema)
	assert.Equal(t, "object", resp.Schema.Type)
	assert.Contains(t, resp.Schema.Properties, "email")
	assert.Equal(t, []string{"id"}, resp.Schema.Required)

	post := doc.FindOperation("post", "/users/{id}")
	require.NotNil(t, post)
	require.NotNil(t, post.RequestBody)
	assert.True(t, post.RequestBody.Required)
	assert.Contains(t, post.RequestBody.Schema.Properties, "email")

	require.Len(t, doc.Schemas, 2)
	assert.Equal(t, "Role", doc.Schemas[0].Name)
	assert.Equal(t, "string", doc.Schemas[0].Schema.Type)
	assert.Len(t, doc.Schemas[0].Schema.Enum, 2)
	assert.Equal(t, "User", doc.Schemas[1].Name)
}

func TestParseAcceptsJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"info":{"title":"Billing"},"paths":{"/invoices":{"get":{"responses":{"200":{"description":"OK"}}}}}}`), "billing.json")
	require.NoError(t, err)
	assert.Equal(t, "Billing", doc.Title)
	require.Len(t, doc.Operations, 1)
	assert.Equal(t, "GET /invoices", doc.Operations[0].Key())
}

func TestParseErrors(t *testing.T) {
	t.Run("malformed input", func(t *testing.T) {
		_, err := Parse([]byte(":\n  - ]["), "broken.yaml")
		assert.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := Parse([]byte(""), "empty.yaml")
		assert.Error(t, err)
	})
}

func TestNormalizeFallsBackToLabel(t *testing.T) {
	doc := Normalize(map[string]any{"paths": map[string]any{}}, "inline-0")
	assert.Equal(t, "inline-0", doc.Title)
	assert.Empty(t, doc.Operations)
}

func TestNormalizeSchemaKeepsUnknownKeys(t *testing.T) {
	s := normalizeSchema(map[string]any{
		"type":       "string",
		"maxLength":  64,
		"x-internal": true,
	})
	assert.Equal(t, "string", s.Type)
	assert.Equal(t, 64, s.Extra["maxLength"])
	assert.Equal(t, true, s.Extra["x-internal"])
}

func TestContentSchemaPrefersJSON(t *testing.T) {
	raw := map[string]any{
		"content": map[string]any{
			"application/xml":  map[string]any{"schema": map[string]any{"type": "string"}},
			"application/json": map[string]any{"schema": map[string]any{"type": "object"}},
		},
	}
	assert.Equal(t, "object", asString(contentSchema(raw)["type"]))
}
