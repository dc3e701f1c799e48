// Package results defines the generic success/failure envelope service
// operations return. Business failures travel in the Failure payload with a
// nil error; infrastructure problems travel as errors.
package results

// OperationResult carries either a success or a failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// Succeeded reports whether the operation produced a success payload.
func (r OperationResult[S, F]) Succeeded() bool {
	return r.Success != nil
}

// Success wraps a success payload.
func Success[S any, F any](payload *S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: payload}
}

// Failure wraps a failure payload.
func Failure[S any, F any](payload *F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: payload}
}
