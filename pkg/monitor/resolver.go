package monitor

import (
	"github.com/ctabridge/ctabridge/pkg/transit"
	"github.com/rs/zerolog/log"
)

// expressRecord merges a downtown-express group into one record: several
// interlined routes serve the same "next bus downtown" intent, the rider
// boards whichever arrives first, so the group publishes the minimum ETA
// across its members. All members empty-handed resolves to the -1 sentinel.
func (monitor *Monitor) expressRecord(group transit.ExpressGroup) transit.PublishRecord {
	value := transit.NoData

	for _, member := range group.Members {
		prediction, err := monitor.bus.SoonestPrediction(member)
		if err != nil {
			log.Error().
				Err(err).
				Str("group", group.Name).
				Str("stop", member.ID).
				Str("route", member.Route).
				Msg("Failed to fetch express group member predictions")
			continue
		}

		if prediction == nil {
			continue
		}

		if value == transit.NoData || prediction.ETASeconds < value {
			value = prediction.ETASeconds
		}
	}

	return transit.PublishRecord{Topic: group.Topic, Value: value}
}
