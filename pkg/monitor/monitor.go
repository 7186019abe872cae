// Package monitor drives the fetch → resolve → publish cycle against the
// configured stop registry.
package monitor

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/ctabridge/ctabridge/pkg/registry"
	"github.com/ctabridge/ctabridge/pkg/transit"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// BusFetcher returns the soonest upcoming arrival for a (stop, route) pair,
// nil when the API has no prediction for it.
type BusFetcher interface {
	SoonestPrediction(stop transit.Stop) (*transit.Prediction, error)
}

// RailFetcher is the platform equivalent of BusFetcher.
type RailFetcher interface {
	SoonestPrediction(platformID string) (*transit.Prediction, error)
}

type Publisher interface {
	Publish(record transit.PublishRecord) error
}

type Monitor struct {
	Registry     *registry.Registry
	PollInterval time.Duration

	bus       BusFetcher
	rail      RailFetcher
	publisher Publisher

	statsMutex sync.Mutex
	stats      CycleStats
}

// CycleStats is a snapshot of the last completed cycle, served by the stats
// endpoint.
type CycleStats struct {
	Cycles            uint64                  `json:"cycles"`
	LastCycleStart    time.Time               `json:"last_cycle_start"`
	LastCycleDuration string                  `json:"last_cycle_duration"`
	LastRecords       []transit.PublishRecord `json:"last_records"`
}

func NewMonitor(stopRegistry *registry.Registry, pollInterval time.Duration, bus BusFetcher, rail RailFetcher, publisher Publisher) *Monitor {
	return &Monitor{
		Registry:     stopRegistry,
		PollInterval: pollInterval,

		bus:       bus,
		rail:      rail,
		publisher: publisher,
	}
}

// Run polls forever. The next cycle is scheduled relative to the previous
// cycle's completion, so a slow upstream delays the next poll instead of
// stacking overlapping ones.
func (monitor *Monitor) Run() {
	log.Info().
		Int("busstops", len(monitor.Registry.BusStops)).
		Int("railplatforms", len(monitor.Registry.RailPlatforms)).
		Int("expressgroups", len(monitor.Registry.ExpressGroups)).
		Str("interval", monitor.PollInterval.String()).
		Msg("Starting CTA prediction monitor")

	for {
		startTime := time.Now()

		monitor.RunCycle()

		executionDuration := time.Since(startTime)
		waitTime := monitor.PollInterval - executionDuration

		if waitTime > 0 {
			time.Sleep(waitTime)
		}
	}
}

// RunCycle performs one fetch/resolve/publish pass. Anything unexpected a
// cycle throws is recovered here so the loop survives to the next tick.
func (monitor *Monitor) RunCycle() {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("Poll cycle panicked")
		}
	}()

	startTime := time.Now()

	records := monitor.CollectRecords()

	published := 0
	for _, record := range records {
		if err := monitor.publisher.Publish(record); err != nil {
			log.Error().Err(err).Str("topic", record.Topic).Msg("Failed to publish record")
			continue
		}
		published++
	}

	monitor.statsMutex.Lock()
	monitor.stats.Cycles++
	monitor.stats.LastCycleStart = startTime
	monitor.stats.LastCycleDuration = time.Since(startTime).String()
	monitor.stats.LastRecords = records
	monitor.statsMutex.Unlock()

	log.Info().
		Int("records", len(records)).
		Int("published", published).
		Str("duration", time.Since(startTime).String()).
		Msg("Poll cycle complete")
}

// CollectRecords resolves every configured stop, platform and express group
// to exactly one record. Per-stop fetches are independent so they fan out in
// parallel; a failed fetch becomes the -1 sentinel for that topic only.
func (monitor *Monitor) CollectRecords() []transit.PublishRecord {
	p := pool.NewWithResults[transit.PublishRecord]()

	for _, stop := range monitor.Registry.BusStops {
		stop := stop
		p.Go(func() transit.PublishRecord {
			return monitor.busRecord(stop)
		})
	}

	for _, platformID := range monitor.Registry.RailPlatforms {
		platformID := platformID
		p.Go(func() transit.PublishRecord {
			return monitor.railRecord(platformID)
		})
	}

	for _, group := range monitor.Registry.ExpressGroups {
		group := group
		p.Go(func() transit.PublishRecord {
			return monitor.expressRecord(group)
		})
	}

	return p.Wait()
}

func (monitor *Monitor) busRecord(stop transit.Stop) transit.PublishRecord {
	value := transit.NoData

	prediction, err := monitor.bus.SoonestPrediction(stop)
	if err != nil {
		log.Error().
			Err(err).
			Str("stop", stop.ID).
			Str("route", stop.Route).
			Msg("Failed to fetch bus predictions")
	} else if prediction != nil {
		value = prediction.ETASeconds
	}

	return transit.PublishRecord{Topic: stop.Topic(), Value: value}
}

func (monitor *Monitor) railRecord(platformID string) transit.PublishRecord {
	value := transit.NoData

	prediction, err := monitor.rail.SoonestPrediction(platformID)
	if err != nil {
		log.Error().
			Err(err).
			Str("platform", platformID).
			Msg("Failed to fetch rail predictions")
	} else if prediction != nil {
		value = prediction.ETASeconds
	}

	return transit.PublishRecord{Topic: transit.Stop{ID: platformID}.Topic(), Value: value}
}

// Stats returns a copy of the last cycle snapshot.
func (monitor *Monitor) Stats() CycleStats {
	monitor.statsMutex.Lock()
	defer monitor.statsMutex.Unlock()

	return monitor.stats
}
