// Package pipeline drives the discover, enrich, publish sequence end to end.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lachuoi/mstd-random-restaurant/internal/discovery"
	"github.com/lachuoi/mstd-random-restaurant/internal/enrich"
	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
	"github.com/lachuoi/mstd-random-restaurant/internal/publish"
	"github.com/lachuoi/mstd-random-restaurant/internal/types"
)

// retryInterval is the pause between unsuccessful discovery attempts. The
// loop itself is unbounded: a sampled coordinate with no qualifying
// restaurant nearby is expected and transient, and the overall deadline
// belongs to the scheduling host.
const retryInterval = 2500 * time.Millisecond

// Orchestrator hands the Place aggregate linearly through the stages.
// Everything runs strictly sequentially on the calling goroutine; suspension
// happens only at network I/O and the two fixed pauses.
type Orchestrator struct {
	discovery discovery.Service
	enricher  enrich.Service
	publisher publish.Service
	sleep     func(time.Duration)
	logger    *slog.Logger
}

func New(
	logger *slog.Logger,
	discoveryService discovery.Service,
	enrichService enrich.Service,
	publishService publish.Service,
) *Orchestrator {
	return &Orchestrator{
		discovery: discoveryService,
		enricher:  enrichService,
		publisher: publishService,
		sleep:     time.Sleep,
		logger:    logger.With("component", "pipeline"),
	}
}

// Run executes one full pipeline pass and returns the published place.
// ErrNoCandidate never escapes the discovery loop; every other error aborts
// the run immediately, with no rollback of media already uploaded. The
// context is honored only between discovery attempts; stages themselves run
// to completion once started.
func (o *Orchestrator) Run(ctx context.Context, runID string) (*types.Place, error) {
	logger := o.logger.With("run_id", runID)
	logger.Info("pipeline run starting")

	place := &types.Place{}

	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery aborted: %w", err)
		}
		attempt++

		point, err := o.discovery.SampleLocation()
		if err != nil {
			return nil, err
		}

		survivors, err := o.discovery.SearchNearby(point, place)
		if err != nil {
			if errors.Is(err, errs.ErrNoCandidate) {
				logger.Debug("resampling",
					"attempt", attempt,
					"country", point.Country,
				)
				o.sleep(retryInterval)
				continue
			}
			return nil, err
		}

		logger.Info("restaurant found",
			"attempt", attempt,
			"survivors", survivors,
			"name", place.Name,
		)
		break
	}

	if err := o.enricher.Enrich(place); err != nil {
		return nil, err
	}
	if err := o.publisher.Publish(place); err != nil {
		return nil, err
	}

	logger.Info("pipeline run complete",
		"name", place.Name,
		"photos", len(place.Photos),
	)
	return place, nil
}
