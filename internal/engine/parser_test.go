package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseManifest_WorkspaceDependencies(t *testing.T) {
	data := []byte(`{
		"name": "@acme/web",
		"dependencies": {
			"@acme/ui": "workspace:*",
			"react": "^18.0.0",
			"@acme/web": "workspace:*"
		},
		"devDependencies": {
			"@acme/config": "workspace:*",
			"@acme/ui": "workspace:*",
			"typescript": "5.4.0"
		}
	}`)

	m, err := ParseMemberManifest(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"@acme/config", "@acme/ui"}
	if got := m.WorkspaceDependencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseManifest_Workspaces(t *testing.T) {
	m, err := ParseManifest([]byte(`{"private": true, "workspaces": ["packages/*", "apps/*"]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(m.Workspaces, []string{"packages/*", "apps/*"}) {
		t.Errorf("unexpected workspaces: %v", m.Workspaces)
	}
}

func TestParseManifest_Errors(t *testing.T) {
	if _, err := ParseManifest([]byte(`{not json`)); !errors.Is(err, ErrManifestParse) {
		t.Errorf("expected ErrManifestParse, got %v", err)
	}
	if _, err := ParseMemberManifest([]byte(`{"version": "1.0.0"}`)); !errors.Is(err, ErrManifestNoName) {
		t.Errorf("expected ErrManifestNoName, got %v", err)
	}
}
