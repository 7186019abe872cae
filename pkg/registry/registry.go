// Package registry holds the static set of monitored stops. The registry is
// rebuilt from configuration on every process start; nothing about it is
// derived from API data.
package registry

import (
	"fmt"
	"os"

	"github.com/ctabridge/ctabridge/pkg/transit"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Registry struct {
	BusStops      []transit.Stop         `yaml:"bus_stops" validate:"dive"`
	RailPlatforms []string               `yaml:"rail_platforms" validate:"dive,required"`
	ExpressGroups []transit.ExpressGroup `yaml:"express_groups" validate:"dive"`
}

// Default is the built-in stop set. It reproduces the deployment this bridge
// was written for: a handful of north side bus stops, two Brown Line
// platforms, and one downtown-express group merging the interlined routes
// toward the Loop.
func Default() *Registry {
	return &Registry{
		BusStops: []transit.Stop{
			{ID: "5670", Route: "80"},
			{ID: "5676", Route: "X9"},
			{ID: "5676", Route: "80"},
			{ID: "1056", Route: "X9"},
			{ID: "1056", Route: "151"},
			{ID: "1169", Route: "151"},
		},
		RailPlatforms: []string{"30016", "30017"},
		ExpressGroups: []transit.ExpressGroup{
			{
				Name:  "dtwnEXP",
				Topic: fmt.Sprintf("%s/BUS/dtwnEXP", transit.TopicPrefix),
				Members: []transit.Stop{
					{ID: "14880", Route: "36"},
					{ID: "5673", Route: "36"},
					{ID: "5756", Route: "8"},
					{ID: "17390", Route: "8"},
				},
			},
		},
	}
}

// Load returns the registry described by the YAML file at path, or the
// built-in defaults when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stops file: %w", err)
	}

	registry := Registry{}
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("parse stops file: %w", err)
	}

	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stops file: %w", err)
	}

	return &registry, nil
}

func (registry *Registry) Validate() error {
	if len(registry.BusStops) == 0 && len(registry.RailPlatforms) == 0 && len(registry.ExpressGroups) == 0 {
		return fmt.Errorf("registry contains no stops")
	}

	v := validator.New()
	if err := v.Struct(registry); err != nil {
		return err
	}

	for _, stop := range registry.BusStops {
		if stop.Route == "" {
			return fmt.Errorf("bus stop %s has no route", stop.ID)
		}
	}

	for _, group := range registry.ExpressGroups {
		for _, member := range group.Members {
			if member.Route == "" {
				return fmt.Errorf("express group %s member %s has no route", group.Name, member.ID)
			}
		}
	}

	return nil
}
