// Package errors provides error handling and the warning system for the
// whole project. Errors are structured so that the evaluation pipeline can
// report which stage failed (density fit, classification, histogram build)
// together with a stack trace.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// The default handler logs to standard error.
		log.Printf("ganeval-warning: %v\n", w)
	}
	// zerolog logger, initialized lazily to avoid an import cycle.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the warning handler for the whole library.
// It controls how warnings such as UndefinedMetricWarning are processed.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc sets the zerolog warning function (kept separate to
// avoid an import cycle with pkg/log).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn raises a warning. When zerolog is configured it is emitted as a
// structured log record, otherwise the plain handler is used.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// UndefinedMetricWarning is raised when an evaluation metric cannot be
// computed from the data and a defined fallback value is returned instead.
// For example, when no classification is confident the mode metrics
// degenerate to their documented sentinel values.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // the value returned under this condition
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject adds structured warning information to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when ScoreSamples is called on a density model
// before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("ganeval: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when input batch dimensions do not match
// expectations, e.g. a weight vector shorter than the real batch or scored
// points with a different flattened dimension than the fitted ones.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows/points, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "points"
	}
	return fmt.Sprintf("ganeval: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "points"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError is returned when a configuration parameter fails
// validation, e.g. an unsupported dataset kind or a confidence threshold
// outside (0, 1). Validation happens at configuration time, before any
// evaluation call.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ganeval: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError is returned when an argument value is invalid for an
// operation, e.g. an empty fake batch passed to the density estimator.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("ganeval: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// CollaboratorError is returned when an external collaborator of the
// evaluation core misbehaves: the classifier is unreachable, its model
// artifact is malformed, or it returns an empty prediction batch. These are
// unrecoverable configuration errors, never retried.
type CollaboratorError struct {
	Collaborator string
	Op           string
	Err          error
}

func (e *CollaboratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ganeval: %s: %s: %v", e.Collaborator, e.Op, e.Err)
	}
	return fmt.Sprintf("ganeval: %s: %s", e.Collaborator, e.Op)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *CollaboratorError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("collaborator", e.Collaborator).
		Str("operation", e.Op).
		Str("type", "CollaboratorError")
}

// NewCollaboratorError creates a new CollaboratorError with a stack trace
// attached.
func NewCollaboratorError(collaborator, op string, err error) error {
	collabErr := &CollaboratorError{Collaborator: collaborator, Op: op, Err: err}
	return errors.WithStack(collabErr)
}

// InputShapeError is returned when a batch of points has an unexpected
// tensor shape, e.g. a composite image whose width is not divisible into
// three sub-images.
type InputShapeError struct {
	Op       string
	Expected []int
	Got      []int
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("ganeval: %s: input shape mismatch. Expected shape %v, got %v", e.Op, e.Expected, e.Got)
}

// NewInputShapeError creates a new InputShapeError with a stack trace attached.
func NewInputShapeError(op string, expected, got []int) error {
	err := &InputShapeError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches the target error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be cast to the target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty batch is supplied.
	ErrEmptyData = New("empty data")

	// ErrUnsupportedKind is returned when an unsupported dataset kind
	// reaches configuration validation.
	ErrUnsupportedKind = New("unsupported dataset kind")
)
