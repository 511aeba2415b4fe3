package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Account Errors
// ============================================================================

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrEmailAlreadyRegistered = errors.New("Email already registered!")
	ErrInvalidCredentials     = errors.New("Invalid Email or Password")
	ErrMissingCredentials     = errors.New("username, email and password are required")
	ErrPasswordTooLong        = errors.New("password must be at most 72 bytes")
	ErrUnauthenticated        = errors.New("authentication required")
)

// ============================================================================
// Prediction Errors
// ============================================================================

// ValidationError reports a single request field that failed parsing or its
// domain constraint. Message is what callers see.
type ValidationError struct {
	Field      string
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Constraint)
}

// InferenceStage names the step of the inference path that failed.
type InferenceStage string

const (
	StageAssemble  InferenceStage = "assemble"
	StageTransform InferenceStage = "transform"
	StageEncode    InferenceStage = "encode"
	StagePredict   InferenceStage = "predict"
	StageTimeout   InferenceStage = "timeout"
	StageCanceled  InferenceStage = "canceled"
)

// InferenceError is a request-level failure inside the model path.
type InferenceError struct {
	Stage  InferenceStage
	Detail string
	Err    error
}

func (e *InferenceError) Error() string {
	if e.Detail == "" && e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Stage, e.Detail)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Retryable is true only when the model did not answer in time.
func (e *InferenceError) Retryable() bool {
	return e.Stage == StageTimeout
}

// ErrUnknownCategory is wrapped by encoders that meet a level they were not fitted on.
var ErrUnknownCategory = errors.New("unknown category")

// ============================================================================
// Artifact Errors
// ============================================================================

// ArtifactLoadError is fatal: the process must not serve without every artifact.
type ArtifactLoadError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load %s artifact from %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}
