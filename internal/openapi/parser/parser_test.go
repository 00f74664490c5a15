package parser

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formdialog/pkg/openapi"
	"github.com/goliatone/go-formdialog/pkg/testsupport"
)

func TestOperationsExtractsRequestBodies(t *testing.T) {
	t.Parallel()

	doc := testsupport.LoadDocument(t, filepath.Join("..", "testdata", "deploy.yaml"))
	ops, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("Operations: %v", err)
	}

	ids := make(map[string]string, len(ops))
	for id, op := range ops {
		ids[id] = op.Method + " " + op.Path
	}
	want := map[string]string{
		"createDeployment":         "POST /deployments",
		"listDeployments":          "GET /deployments",
		"delete:/deployments/{id}": "DELETE /deployments/{id}",
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}

	body := ops["createDeployment"].RequestBody
	if body.Type != "object" || body.Ref != "#/components/schemas/Deployment" {
		t.Fatalf("unexpected body %s", body.DebugString())
	}
	if diff := cmp.Diff([]string{"name", "target", "token"}, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	name := body.Properties["name"]
	if *name.MinLength != 3 || *name.MaxLength != 32 || name.Pattern == "" {
		t.Fatalf("expected length and pattern constraints, got %+v", name)
	}
	if !body.Properties["id"].ReadOnly {
		t.Fatalf("expected id to be readOnly")
	}

	target := body.Properties["target"].Extension
	wantExt := pkgopenapi.Extension{
		Label: "Target",
		Order: intPtr(2),
		Modes: map[string][]string{"metal": {"metal"}},
	}
	if diff := cmp.Diff(wantExt, target); diff != "" {
		t.Fatalf("extension mismatch (-want +got):\n%s", diff)
	}

	zones := body.Properties["zones"]
	if zones.Items == nil || len(zones.Items.Enum) != 3 || *zones.MinItems != 1 {
		t.Fatalf("expected enum items, got %+v", zones)
	}

	wantOrder := []string{"name", "target", "namespace", "token", "zones", "id", "labels"}
	if diff := cmp.Diff(wantOrder, body.PropertyNames()); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}
}

func TestOperationsRejectsDocumentsWithoutPaths(t *testing.T) {
	t.Parallel()

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("empty.yaml"), []byte(`{
  "openapi": "3.0.0",
  "info": {"title": "Empty", "version": "1.0.0"},
  "paths": {}
}`))
	if _, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}

func TestConvertSchemaStopsAtRecursiveReferences(t *testing.T) {
	t.Parallel()

	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Cycle", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Node": {
        "type": "object",
        "properties": {
          "label": { "type": "string" },
          "parent": { "$ref": "#/components/schemas/Node" }
        }
      }
    }
  }
}`
	api, err := openapi3.NewLoader().LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}

	node := convertSchema(api.Components.Schemas["Node"])
	parent, ok := node.Properties["parent"]
	if !ok {
		t.Fatalf("expected parent property")
	}
	if parent.Ref != "#/components/schemas/Node" || len(parent.Properties) != 0 {
		t.Fatalf("expected recursion to stop at the ref, got %s", parent.DebugString())
	}
}

func TestConvertSchemaMergesAllOf(t *testing.T) {
	t.Parallel()

	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "AllOf", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Base": {
        "type": "object",
        "required": ["name"],
        "properties": { "name": { "type": "string" } }
      },
      "Extended": {
        "allOf": [
          { "$ref": "#/components/schemas/Base" },
          { "type": "object", "properties": { "tier": { "type": "string", "enum": ["free", "pro"] } } }
        ]
      }
    }
  }
}`
	api, err := openapi3.NewLoader().LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}

	extended := convertSchema(api.Components.Schemas["Extended"])
	if extended.Type != "object" {
		t.Fatalf("expected merged object type, got %q", extended.Type)
	}
	if diff := cmp.Diff([]string{"name", "tier"}, extended.PropertyNames()); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if !extended.IsRequired("name") {
		t.Fatalf("expected name required through allOf")
	}
}

func TestParseExtensionIgnoresForeignKeys(t *testing.T) {
	t.Parallel()

	ext := parseExtension(map[string]any{
		"x-other": map[string]any{"label": "nope"},
		"x-formdialog": map[string]any{
			"label":       "Token",
			"hide":        "metal",
			"disable":     []any{"locked", ""},
			"visibleWhen": "Target == 'metal'",
			"remember":    true,
			"order":       float64(4),
			"unknown":     1,
		},
	})
	want := pkgopenapi.Extension{
		Label:       "Token",
		Hide:        []string{"metal"},
		Disable:     []string{"locked"},
		VisibleWhen: "Target == 'metal'",
		Remember:    true,
		Order:       intPtr(4),
	}
	if diff := cmp.Diff(want, ext); diff != "" {
		t.Fatalf("extension mismatch (-want +got):\n%s", diff)
	}
}
