package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

// The registered template must render to valid swagger JSON with the
// API surface in it.
func Test_SwaggerDoc_Renders(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var spec struct {
		Swagger  string                     `json:"swagger"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		t.Fatalf("rendered doc is not valid JSON: %v", err)
	}

	if spec.Swagger != "2.0" || spec.BasePath != "/api" {
		t.Fatalf("unexpected header: swagger=%q basePath=%q", spec.Swagger, spec.BasePath)
	}
	for _, p := range []string{
		"/cases/file",
		"/case-requests",
		"/lawyer/cases/{caseId}/accept",
		"/lawyers",
	} {
		if _, ok := spec.Paths[p]; !ok {
			t.Fatalf("path %q missing from swagger doc", p)
		}
	}
}
