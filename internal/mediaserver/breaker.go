// Jellyfin Store - Media Server Marketplace
// Copyright 2026 rawdawg23
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawdawg23/jellyfin-store

package mediaserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/rawdawg23/jellyfin-store/internal/logging"
	"github.com/rawdawg23/jellyfin-store/internal/metrics"
	"github.com/rawdawg23/jellyfin-store/internal/models"
)

// BreakerName is the circuit breaker's name and metrics label.
const BreakerName = "jellyfin-api"

// Ensure CircuitBreakerClient implements HealthReporter
var _ HealthReporter = (*CircuitBreakerClient)(nil)

// CircuitBreakerClient wraps a Client with the circuit breaker pattern so a
// slow or unavailable Jellyfin server fails fast instead of tying up handlers.
//
// DETERMINISM NOTE: gobreaker uses real time for its interval and timeout.
// Tests drive the breaker through request outcomes, not the clock.
type CircuitBreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
	log    zerolog.Logger
}

// NewCircuitBreakerClient wraps client with a circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(client Client) *CircuitBreakerClient {
	name := BreakerName
	log := logging.WithComponent("mediaserver").With().Str("breaker", name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				log.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening Jellyfin circuit")
			}
			return shouldTrip
		},

		// A caller giving up says nothing about the server's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			log.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] Jellyfin state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   name,
		log:    log,
	}
}

// execute wraps a Jellyfin API call with circuit breaker protection
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			cbc.log.Warn().Err(err).Msg("[CIRCUIT BREAKER] Jellyfin request rejected")
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		counts := cbc.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// castResult type-checks the circuit breaker result
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// Ping tests connectivity with circuit breaker protection
func (cbc *CircuitBreakerClient) Ping(ctx context.Context) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Ping(ctx)
	})
	return err
}

// GetServerInfo retrieves server information with circuit breaker protection
func (cbc *CircuitBreakerClient) GetServerInfo(ctx context.Context) (*models.JellyfinServerInfo, error) {
	return castResult[*models.JellyfinServerInfo](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetServerInfo(ctx)
	}))
}

// GetUsers retrieves all users with circuit breaker protection
func (cbc *CircuitBreakerClient) GetUsers(ctx context.Context) ([]models.JellyfinUser, error) {
	return castResult[[]models.JellyfinUser](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetUsers(ctx)
	}))
}

// GetLibraries retrieves libraries with circuit breaker protection
func (cbc *CircuitBreakerClient) GetLibraries(ctx context.Context) ([]models.JellyfinLibrary, error) {
	return castResult[[]models.JellyfinLibrary](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetLibraries(ctx)
	}))
}

// Health pings the server and reports reachability with the breaker state.
func (cbc *CircuitBreakerClient) Health(ctx context.Context) models.MediaServerHealth {
	h := models.MediaServerHealth{Enabled: true}
	if err := cbc.Ping(ctx); err != nil {
		h.Error = err.Error()
	} else {
		h.Reachable = true
	}
	h.State = stateToString(cbc.cb.State())
	return h
}

// State returns the current circuit breaker state
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

// Counts returns the current circuit breaker counts
func (cbc *CircuitBreakerClient) Counts() gobreaker.Counts {
	return cbc.cb.Counts()
}

// Name returns the circuit breaker name
func (cbc *CircuitBreakerClient) Name() string {
	return cbc.name
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
