package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/ports/output"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// InferenceEngine runs the loaded models. It holds no mutable state, so one
// engine serves every request concurrently.
type InferenceEngine struct {
	artifacts ports.ArtifactStore
	timeout   time.Duration
	observer  ports.InferenceObserver
}

func NewInferenceEngine(artifacts ports.ArtifactStore, timeout time.Duration, observer ports.InferenceObserver) *InferenceEngine {
	return &InferenceEngine{artifacts: artifacts, timeout: timeout, observer: observer}
}

// PredictFuel scales the feature vector, runs the fuel model and floors the
// result at zero.
func (e *InferenceEngine) PredictFuel(ctx context.Context, features []float64) (float64, error) {
	scaler := e.artifacts.FuelScaler()
	if len(features) != scaler.Width() {
		return 0, &domain.InferenceError{
			Stage:  domain.StageAssemble,
			Detail: fmt.Sprintf("expected %d features, got %d", scaler.Width(), len(features)),
		}
	}

	scaled, err := scaler.Transform(features)
	if err != nil {
		return 0, &domain.InferenceError{Stage: domain.StageTransform, Err: err}
	}

	value, err := e.invoke(ctx, domain.VariantFuelEfficiency, func(ctx context.Context) (float64, error) {
		return e.artifacts.FuelModel().Predict(ctx, scaled)
	})
	if err != nil {
		return 0, err
	}

	// Fuel efficiency has a physical floor of zero.
	if value < 0 {
		value = 0
	}
	return round2(value), nil
}

// PredictPrice hands the labeled record to the price pipeline, which does its
// own encoding. No floor is applied.
func (e *InferenceEngine) PredictPrice(ctx context.Context, record domain.CarRecord) (float64, error) {
	value, err := e.invoke(ctx, domain.VariantCarPrice, func(ctx context.Context) (float64, error) {
		return e.artifacts.PriceModel().Predict(ctx, record)
	})
	if err != nil {
		return 0, err
	}
	return round2(value), nil
}

type inferenceOutcome struct {
	value float64
	err   error
}

func (e *InferenceEngine) invoke(ctx context.Context, variant domain.Variant, predict func(context.Context) (float64, error)) (float64, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	done := make(chan inferenceOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- inferenceOutcome{err: fmt.Errorf("model panicked: %v", r)}
			}
		}()
		value, err := predict(ctx)
		done <- inferenceOutcome{value: value, err: err}
	}()

	var value float64
	var err error
	select {
	case out := <-done:
		value, err = out.value, classifyPredictError(out.err)
		if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
			err = &domain.InferenceError{Stage: domain.StagePredict, Detail: "model returned a non-finite value"}
		}
	case <-ctx.Done():
		err = contextError(ctx.Err())
	}

	e.observe(variant, err, time.Since(start))
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (e *InferenceEngine) observe(variant domain.Variant, err error, elapsed time.Duration) {
	if e.observer == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
		var ierr *domain.InferenceError
		if errors.As(err, &ierr) {
			outcome = string(ierr.Stage)
		}
	}
	e.observer.ObserveInference(variant, outcome, elapsed)
}

func classifyPredictError(err error) error {
	if err == nil {
		return nil
	}
	var ierr *domain.InferenceError
	switch {
	case errors.As(err, &ierr):
		return err
	case errors.Is(err, domain.ErrUnknownCategory):
		return &domain.InferenceError{Stage: domain.StageEncode, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return contextError(err)
	default:
		return &domain.InferenceError{Stage: domain.StagePredict, Err: err}
	}
}

// contextError separates a missed deadline, which is worth retrying, from a
// caller that went away.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.InferenceError{Stage: domain.StageTimeout, Err: err}
	}
	return &domain.InferenceError{Stage: domain.StageCanceled, Err: err}
}

// round2 rounds the exact binary value to 2 decimals, so 2.675 (stored as
// 2.67499...) becomes 2.67.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		return 0 // no negative zero on the wire
	}
	return r
}
