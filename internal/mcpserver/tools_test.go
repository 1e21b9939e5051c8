package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersDocYAML = `openapi: "3.0.0"
info:
  title: User Service
  version: "1.0.0"
servers:
  - url: https://users.example.com
paths:
  /users/{id}:
    get:
      operationId: getUser
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
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: object
                properties:
                  email:
                    type: string
`

const profilesDocYAML = `openapi: "3.0.0"
info:
  title: Profile Service
  version: "2.0.0"
servers:
  - url: https://profiles.example.com
paths:
  /profile/{id}:
    get:
      operationId: getProfile
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
        - name: Authorization
          in: header
          required: true
          schema:
            type: string
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: object
                properties:
                  bio:
                    type: string
`

func TestBundleTool(t *testing.T) {
	input := bundleInput{
		Content: `
components:
  schemas:
    User:
      $ref: "./common.yaml#/components/schemas/Person"
`,
		Siblings: []siblingInput{{
			ID: "common.yaml",
			Content: `
components:
  schemas:
    Person:
      type: object
      properties:
        name:
          type: string
`,
		}},
	}
	result, output, err := handleBundle(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Zero(t, output.WarningCount)
	assert.NotContains(t, output.Document, "$ref")
	assert.Contains(t, output.Document, "name")
	assert.Contains(t, output.Summary, "1 sibling")
}

func TestBundleTool_MissingSiblingWarns(t *testing.T) {
	input := bundleInput{
		Content: `
components:
  schemas:
    User:
      $ref: "./gone.yaml#/components/schemas/Person"
`,
	}
	result, output, err := handleBundle(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 1, output.WarningCount)
	assert.Contains(t, output.Document, "$ref")
}

func TestBundleTool_EmptyContent(t *testing.T) {
	result, _, err := handleBundle(context.Background(), &mcp.CallToolRequest{}, bundleInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestAggregateTool(t *testing.T) {
	input := aggregateInput{
		Documents: []docInput{
			{Content: usersDocYAML},
			{Content: profilesDocYAML},
		},
		Name: "Platform API",
	}
	result, output, err := handleAggregate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 2, output.DocumentCount)
	assert.Equal(t, 2, output.OperationCount)
	assert.Zero(t, output.CollisionCount)
	assert.Contains(t, output.Document, "Platform API")
	assert.Contains(t, output.Document, "/users/{id}")
	assert.Contains(t, output.Document, "/profile/{id}")
	assert.Contains(t, output.Summary, "Aggregated 2 documents")
}

func TestAggregateTool_WithRule(t *testing.T) {
	input := aggregateInput{
		Documents: []docInput{
			{Content: usersDocYAML},
			{Content: profilesDocYAML},
		},
		Rules: []ruleInput{{
			Endpoint1: "0:GET:/users/{id}",
			Endpoint2: "1:GET:/profile/{id}",
			Path:      "/api/user-profile/{id}",
			Method:    "get",
		}},
	}
	result, output, err := handleAggregate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 3, output.OperationCount)
	assert.Contains(t, output.Document, "/api/user-profile/{id}")
	assert.Contains(t, output.Document, "x-consolidation")
}

func TestAggregateTool_NoDocuments(t *testing.T) {
	result, _, err := handleAggregate(context.Background(), &mcp.CallToolRequest{}, aggregateInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestAggregateTool_InvalidPolicy(t *testing.T) {
	input := aggregateInput{
		Documents:      []docInput{{Content: usersDocYAML}},
		ResponsePolicy: "typo",
	}
	result, _, err := handleAggregate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestConsolidateTool_AutoMerge(t *testing.T) {
	input := consolidateInput{
		Documents: []docInput{
			{Content: usersDocYAML},
			{Content: profilesDocYAML},
		},
		Endpoint1: "0:GET:/users/{id}",
		Endpoint2: "1:GET:/profile/{id}",
		Path:      "/api/user-profile/{id}",
		Method:    "get",
		CO2:       true,
	}
	result, output, err := handleConsolidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 3, output.ParameterCount)
	assert.False(t, output.HasRequestBody)
	require.NotNil(t, output.CO2)
	assert.Equal(t, 0.17, output.CO2.Endpoint1)
	assert.Equal(t, "g", output.CO2.Unit)
	assert.Contains(t, output.Operation, "x-consolidation")
	assert.Contains(t, output.Summary, "auto-merged")
}

func TestConsolidateTool_UserEdited(t *testing.T) {
	input := consolidateInput{
		Documents: []docInput{
			{Content: usersDocYAML},
			{Content: profilesDocYAML},
		},
		Endpoint1: "0:GET:/users/{id}",
		Endpoint2: "1:GET:/profile/{id}",
		Path:      "/api/user-profile/{id}",
		Method:    "get",
		MergedHeaders: []mergedFieldInput{
			{Name: "Authorization", Required: true},
		},
	}
	result, output, err := handleConsolidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 1, output.ParameterCount)
	assert.Contains(t, output.Summary, "user-edited")
}

func TestConsolidateTool_BadEndpoint(t *testing.T) {
	input := consolidateInput{
		Documents: []docInput{{Content: usersDocYAML}},
		Endpoint1: "0:GET:/users/{id}",
		Endpoint2: "7:GET:/gone",
		Path:      "/x",
		Method:    "get",
	}
	result, _, err := handleConsolidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestPreviewTool(t *testing.T) {
	input := previewInput{
		Documents: []docInput{
			{Content: usersDocYAML},
			{Content: profilesDocYAML},
		},
		Endpoints: []string{
			"0:GET:/users/{id}",
			"1:GET:/profile/{id}",
			"4:GET:/gone",
		},
		Name:   "User profile",
		Method: "get",
		Path:   "/api/user-profile/{id}",
	}
	result, output, err := handlePreview(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	// The dangling third ref is skipped silently.
	assert.Equal(t, 2, output.SourceCount)
	assert.Equal(t, 2, output.HeaderCount)
	assert.Equal(t, 1, output.PathParamCount)
	assert.Equal(t, 2, output.ResponseFieldCount)
	assert.Contains(t, output.View, "sources")
	require.NotEmpty(t, output.PathItem)
	assert.Contains(t, output.PathItem, "x-consolidation")
	assert.Contains(t, output.Summary, "2 sources")
}

func TestPreviewTool_MalformedRef(t *testing.T) {
	input := previewInput{
		Documents: []docInput{{Content: usersDocYAML}},
		Endpoints: []string{"not-a-ref"},
	}
	result, _, err := handlePreview(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
