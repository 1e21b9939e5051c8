package aggregator

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specfuse/specfuse/consolidator"
	"github.com/specfuse/specfuse/document"
	"github.com/specfuse/specfuse/mergeerrors"
)

func TestMain(m *testing.M) {
	aggregatorLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	m.Run()
}

func usersDoc() *document.Document {
	return &document.Document{
		Title:   "Users API",
		Version: "1.0.0",
		BaseURL: "https://api.example.com",
		Operations: []*document.Operation{
			{
				OperationID: "getUser",
				Method:      "get",
				Path:        "/users/{id}",
				Summary:     "Fetch a user",
				SourceAPI:   "Users API",
				Parameters: []*document.Parameter{
					{Name: "id", In: document.InPath, Required: true, Schema: &document.Schema{Type: "string"}},
					{Name: "X-Tenant", In: document.InHeader, Required: true, Schema: &document.Schema{Type: "string"}},
				},
				Responses: map[string]*document.Response{
					"200": {Description: "the user"},
				},
				Tags: []string{"users"},
			},
		},
		Schemas: []*document.SchemaDef{
			{Name: "User", Schema: &document.Schema{
				Type:       "object",
				Properties: map[string]*document.Schema{"id": {Type: "string"}},
				Required:   []string{"id"},
			}},
		},
	}
}

func ordersDoc() *document.Document {
	return &document.Document{
		Title:   "Orders API",
		Version: "2.0.0",
		BaseURL: "https://orders.example.com",
		Operations: []*document.Operation{
			{
				OperationID: "listOrders",
				Method:      "get",
				Path:        "/orders",
				SourceAPI:   "Orders API",
				Parameters: []*document.Parameter{
					{Name: "X-Tenant", In: document.InHeader, Required: true, Schema: &document.Schema{Type: "string"}},
				},
				Responses: map[string]*document.Response{
					"200": {Description: "orders"},
				},
			},
		},
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	_, err := Aggregate(nil, Options{})
	assert.ErrorIs(t, err, mergeerrors.ErrEmptyInput)
}

func TestAggregateBasic(t *testing.T) {
	res, err := Aggregate(document.Set{usersDoc(), ordersDoc()}, Options{Name: "Platform API"})
	require.NoError(t, err)

	u := res.Document
	assert.Equal(t, "3.0.3", u.OpenAPI)
	assert.Equal(t, "Platform API", u.Info.Title)
	assert.Equal(t, "1.0.0", u.Info.Version)

	provenance, ok := u.Info.Extra["x-merged-from"].([]any)
	require.True(t, ok)
	require.Len(t, provenance, 2)
	assert.Equal(t, map[string]any{"title": "Users API", "version": "1.0.0"}, provenance[0])

	require.Len(t, u.Servers, 2)
	assert.Equal(t, "https://api.example.com", u.Servers[0].URL)

	assert.NotNil(t, u.Paths["/users/{id}"]["get"])
	assert.NotNil(t, u.Paths["/orders"]["get"])

	assert.Equal(t, 2, res.Stats.Documents)
	assert.Equal(t, 2, res.Stats.Operations)
	assert.Equal(t, 1, res.Stats.Schemas)
	assert.Zero(t, res.Stats.Collisions)
	assert.Empty(t, res.Warnings)
}

func TestAggregateServerDedup(t *testing.T) {
	second := ordersDoc()
	second.BaseURL = "https://api.example.com"
	res, err := Aggregate(document.Set{usersDoc(), second}, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Document.Servers, 1)
}

func TestAggregateDoesNotMutateInputs(t *testing.T) {
	doc := usersDoc()
	collider := usersDoc()
	collider.Title = "Users Mirror"
	collider.Operations[0].SourceAPI = "Users Mirror"
	collider.Operations[0].Parameters[0].Required = false

	_, err := Aggregate(document.Set{doc, collider}, Options{EnableTracking: true})
	require.NoError(t, err)

	assert.Equal(t, "Fetch a user", doc.Operations[0].Summary)
	assert.Nil(t, doc.Operations[0].Extra)
	assert.False(t, collider.Operations[0].Parameters[0].Required)
}

func TestAggregateOperationCollision(t *testing.T) {
	first := usersDoc()
	second := &document.Document{
		Title: "Directory API",
		Operations: []*document.Operation{
			{
				Method:      "GET",
				Path:        "/users/{id}",
				Description: "Directory lookup",
				SourceAPI:   "Directory API",
				Parameters: []*document.Parameter{
					{Name: "ID", In: document.InPath, Required: false, Description: "user identifier"},
					{Name: "expand", In: document.InQuery, Schema: &document.Schema{Type: "string"}},
				},
				Responses: map[string]*document.Response{
					"200": {Description: "directory entry"},
					"404": {Description: "not found"},
				},
				Tags: []string{"users", "directory"},
			},
		},
	}

	res, err := Aggregate(document.Set{first, second}, Options{EnableTracking: true})
	require.NoError(t, err)

	op := res.Document.Paths["/users/{id}"]["get"]
	require.NotNil(t, op)

	// Scalars from the first document win; the second fills gaps.
	assert.Equal(t, "getUser", op.OperationID)
	assert.Equal(t, "Fetch a user", op.Summary)
	assert.Equal(t, "Directory lookup", op.Description)
	assert.Equal(t, []string{"users", "directory"}, op.Tags)

	// id dedups case-insensitively; required stays OR'd true; the second
	// side's description fills the blank.
	require.Len(t, op.Parameters, 3)
	assert.Equal(t, "id", op.Parameters[0].Name)
	assert.True(t, op.Parameters[0].Required)
	assert.Equal(t, "user identifier", op.Parameters[0].Description)
	assert.Equal(t, "expand", op.Parameters[2].Name)

	// Last-wins response policy replaces 200 and warns.
	assert.Equal(t, "directory entry", op.Responses["200"].Description)
	assert.Contains(t, op.Responses, "404")

	assert.Equal(t, []string{"Users API", "Directory API"}, op.Extra["x-sources"])
	assert.Equal(t, 1, res.Stats.Collisions)

	categories := make(map[WarningCategory]int)
	for _, w := range res.Warnings {
		categories[w.Category]++
	}
	assert.Equal(t, 1, categories[WarnOperationCollision])
	assert.Equal(t, 1, categories[WarnResponseOverwritten])
}

func TestAggregateResponseFirstWins(t *testing.T) {
	first := usersDoc()
	second := usersDoc()
	second.Title = "Users Mirror"
	second.Operations[0].SourceAPI = "Users Mirror"
	second.Operations[0].Responses["200"] = &document.Response{Description: "mirror copy"}

	res, err := Aggregate(document.Set{first, second}, Options{ResponsePolicy: ResponseFirstWins})
	require.NoError(t, err)

	op := res.Document.Paths["/users/{id}"]["get"]
	assert.Equal(t, "the user", op.Responses["200"].Description)

	var kept int
	for _, w := range res.Warnings {
		if w.Category == WarnResponseKept {
			kept++
		}
	}
	assert.Equal(t, 1, kept)
}

func TestAggregateSchemaMerge(t *testing.T) {
	t.Run("object required union", func(t *testing.T) {
		first := &document.Document{
			Title: "A",
			Schemas: []*document.SchemaDef{{Name: "Thing", Schema: &document.Schema{
				Type:       "object",
				Properties: map[string]*document.Schema{"a": {Type: "string"}},
				Required:   []string{"a"},
			}}},
		}
		second := &document.Document{
			Title: "B",
			Schemas: []*document.SchemaDef{{Name: "Thing", Schema: &document.Schema{
				Type:       "object",
				Properties: map[string]*document.Schema{"b": {Type: "integer"}},
				Required:   []string{"b", "a"},
			}}},
		}
		res, err := Aggregate(document.Set{first, second}, Options{})
		require.NoError(t, err)

		thing := res.Document.Components.Schemas["Thing"]
		require.NotNil(t, thing)
		assert.Equal(t, []string{"a", "b"}, thing.Required)
		assert.Contains(t, thing.Properties, "a")
		assert.Contains(t, thing.Properties, "b")
	})

	t.Run("type conflict renames incoming", func(t *testing.T) {
		first := &document.Document{
			Title: "A",
			Schemas: []*document.SchemaDef{{Name: "X", Schema: &document.Schema{
				Type: "string",
			}}},
		}
		second := &document.Document{
			Title: "Service B",
			Schemas: []*document.SchemaDef{{Name: "X", Schema: &document.Schema{
				Type:       "object",
				Properties: map[string]*document.Schema{"f": {Type: "string"}},
			}}},
		}
		res, err := Aggregate(document.Set{first, second}, Options{})
		require.NoError(t, err)

		schemas := res.Document.Components.Schemas
		assert.Equal(t, "string", schemas["X"].Type)
		require.Contains(t, schemas, "X_ServiceB")
		assert.Equal(t, "object", schemas["X_ServiceB"].Type)

		require.Len(t, res.Warnings, 1)
		assert.Equal(t, WarnSchemaRenamed, res.Warnings[0].Category)
	})

	t.Run("same non-object type first wins", func(t *testing.T) {
		first := &document.Document{
			Title: "A",
			Schemas: []*document.SchemaDef{{Name: "Code", Schema: &document.Schema{
				Type: "string", Description: "from A",
			}}},
		}
		second := &document.Document{
			Title: "B",
			Schemas: []*document.SchemaDef{{Name: "Code", Schema: &document.Schema{
				Type: "string", Description: "from B",
			}}},
		}
		res, err := Aggregate(document.Set{first, second}, Options{})
		require.NoError(t, err)

		assert.Equal(t, "from A", res.Document.Components.Schemas["Code"].Description)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, WarnSchemaKept, res.Warnings[0].Category)
	})

	t.Run("property overwrite warns", func(t *testing.T) {
		first := &document.Document{
			Title: "A",
			Schemas: []*document.SchemaDef{{Name: "Thing", Schema: &document.Schema{
				Type:       "object",
				Properties: map[string]*document.Schema{"f": {Type: "string"}},
			}}},
		}
		second := &document.Document{
			Title: "B",
			Schemas: []*document.SchemaDef{{Name: "Thing", Schema: &document.Schema{
				Type:       "object",
				Properties: map[string]*document.Schema{"f": {Type: "integer"}},
			}}},
		}
		res, err := Aggregate(document.Set{first, second}, Options{})
		require.NoError(t, err)

		assert.Equal(t, "integer", res.Document.Components.Schemas["Thing"].Properties["f"].Type)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, WarnPropertyOverwritten, res.Warnings[0].Category)
	})
}

func TestAggregateHeaderUnion(t *testing.T) {
	// X-Tenant appears identically in both documents: one component. A
	// same-name header with a different shape gets a numbered suffix.
	second := ordersDoc()
	second.Operations[0].Parameters = append(second.Operations[0].Parameters,
		&document.Parameter{Name: "X-Tenant", In: document.InHeader, Schema: &document.Schema{Type: "integer"}})

	res, err := Aggregate(document.Set{usersDoc(), second}, Options{})
	require.NoError(t, err)

	params := res.Document.Components.Parameters
	require.Len(t, params, 2)
	assert.Equal(t, "string", params["X-Tenant"].Schema.Type)
	require.Contains(t, params, "X-Tenant_2")
	assert.Equal(t, "integer", params["X-Tenant_2"].Schema.Type)
}

func TestAggregateConsolidationRules(t *testing.T) {
	docs := document.Set{usersDoc(), ordersDoc()}
	good := consolidator.NewRule(
		document.EndpointRef{Doc: 0, Method: "GET", Path: "/users/{id}"},
		document.EndpointRef{Doc: 1, Method: "GET", Path: "/orders"},
		"get", "/api/user-orders/{id}",
	)
	bad := consolidator.NewRule(
		document.EndpointRef{Doc: 9, Method: "GET", Path: "/nope"},
		document.EndpointRef{Doc: 1, Method: "GET", Path: "/orders"},
		"get", "/api/broken",
	)

	res, err := Aggregate(docs, Options{ConsolidationRules: []*consolidator.Rule{bad, good}})
	require.NoError(t, err)

	// The bad rule is skipped with a warning; the good one still lands.
	synthetic := res.Document.Paths["/api/user-orders/{id}"]["get"]
	require.NotNil(t, synthetic)
	assert.Contains(t, synthetic.Extra, "x-consolidation")
	assert.NotContains(t, res.Document.Paths, "/api/broken")

	var skipped int
	for _, w := range res.Warnings {
		if w.Category == WarnRuleSkipped {
			skipped++
		}
	}
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 3, res.Stats.Operations)
}
