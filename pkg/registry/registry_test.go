package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default registry should validate, got %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	registry, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(registry.BusStops) == 0 || len(registry.RailPlatforms) == 0 || len(registry.ExpressGroups) == 0 {
		t.Errorf("defaults should carry bus stops, platforms and groups: %+v", registry)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	document := `
bus_stops:
  - id: "1151"
    route: "77"
rail_platforms:
  - "30231"
express_groups:
  - name: dtwnEXP
    topic: CTApredictions/BUS/dtwnEXP
    members:
      - id: "5756"
        route: "8"
`
	path := filepath.Join(t.TempDir(), "stops.yaml")
	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		t.Fatal(err)
	}

	registry, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(registry.BusStops) != 1 || registry.BusStops[0].ID != "1151" || registry.BusStops[0].Route != "77" {
		t.Errorf("unexpected bus stops %+v", registry.BusStops)
	}
	if len(registry.RailPlatforms) != 1 || registry.RailPlatforms[0] != "30231" {
		t.Errorf("unexpected rail platforms %+v", registry.RailPlatforms)
	}
	if len(registry.ExpressGroups) != 1 || len(registry.ExpressGroups[0].Members) != 1 {
		t.Errorf("unexpected express groups %+v", registry.ExpressGroups)
	}
}

func TestLoadRejectsMalformedRegistries(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{
			name:     "not yaml",
			document: `{{{`,
		},
		{
			name:     "empty registry",
			document: `bus_stops: []`,
		},
		{
			name: "bus stop without route",
			document: `
bus_stops:
  - id: "1151"
`,
		},
		{
			name: "bus stop without id",
			document: `
bus_stops:
  - route: "77"
`,
		},
		{
			name: "group without topic",
			document: `
express_groups:
  - name: dtwnEXP
    members:
      - id: "5756"
        route: "8"
`,
		},
		{
			name: "group without members",
			document: `
express_groups:
  - name: dtwnEXP
    topic: CTApredictions/BUS/dtwnEXP
    members: []
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "stops.yaml")
			if err := os.WriteFile(path, []byte(tc.document), 0644); err != nil {
				t.Fatal(err)
			}

			if _, err := Load(path); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for missing file, got nil")
	}
}
