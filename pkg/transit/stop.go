package transit

import "fmt"

const TopicPrefix = "CTApredictions"

// Stop is a single monitored boarding point. Bus stops carry the route they
// are monitored for (the same physical stop may appear once per route);
// rail platforms leave Route empty as a CTA platform id is already
// direction and route specific.
type Stop struct {
	ID    string `yaml:"id" validate:"required"`
	Route string `yaml:"route"`
}

func (stop Stop) IsRail() bool {
	return stop.Route == ""
}

// Topic returns the MQTT topic this stop publishes to. Topics derive from
// stop identity only, never from API response content.
func (stop Stop) Topic() string {
	if stop.IsRail() {
		return fmt.Sprintf("%s/RAIL/%s", TopicPrefix, stop.ID)
	}

	return fmt.Sprintf("%s/BUS/%s/%s", TopicPrefix, stop.ID, stop.Route)
}

// ExpressGroup is a set of interlined bus (stop, route) pairs a rider treats
// as interchangeable for "next bus downtown". The group publishes one merged
// ETA to its own topic instead of per-member topics.
type ExpressGroup struct {
	Name    string `yaml:"name" validate:"required"`
	Topic   string `yaml:"topic" validate:"required"`
	Members []Stop `yaml:"members" validate:"required,min=1,dive"`
}
