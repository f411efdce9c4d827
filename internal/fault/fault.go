// Package fault defines the single typed failure shape that every network
// invoker re-raises through. The orchestrator and the classifier only ever
// see a *Failure, never a raw transport error.
package fault

import "fmt"

// Kind is the closed set of failure signals the invokers can raise.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuth          Kind = "auth"
	KindTimeout       Kind = "timeout"
	KindForbidden     Kind = "forbidden"
	KindBadRequest    Kind = "bad_request"
	KindNotFound      Kind = "not_found"
	KindConnectivity  Kind = "connectivity"
	KindServiceReject Kind = "service_rejected"
	KindEmptyResult   Kind = "empty_result"
	KindClientSystem  Kind = "client_system"
	KindUnknown       Kind = "unknown"
)

// Stage identifies which part of the submission raised the failure.
type Stage string

const (
	StageValidate  Stage = "validate"
	StageResolve   Stage = "resolve"
	StageSummarize Stage = "summarize"
	StageClient    Stage = "client"
)

// Failure is the uniform failure object. Message is safe to surface to the
// user; Err retains the underlying cause for wrapping.
type Failure struct {
	Stage   Stage
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s/%s: %s: %v", f.Stage, f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s/%s: %s", f.Stage, f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// New builds a Failure without an underlying cause.
func New(stage Stage, kind Kind, message string) *Failure {
	return &Failure{Stage: stage, Kind: kind, Message: message}
}

// Wrap builds a Failure retaining the underlying cause.
func Wrap(stage Stage, kind Kind, message string, err error) *Failure {
	return &Failure{Stage: stage, Kind: kind, Message: message, Err: err}
}

// As narrows an error to a *Failure; unknown errors are folded into the
// given stage with KindUnknown so callers always get a classified shape.
func As(stage Stage, err error) *Failure {
	if err == nil {
		return nil
	}
	if f, ok := err.(*Failure); ok {
		return f
	}
	return Wrap(stage, KindUnknown, "unexpected error", err)
}
