// Package result implements the explicit success-or-failure outcome returned
// by the service layer for expected conditions. Validation problems, missing
// references and duplicates are outcomes, not errors; only unexpected store
// failures travel as ordinary Go errors next to the outcome.
package result

type Kind int

const (
	KindSuccess Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
)

// Result is an outcome without a payload.
type Result struct {
	Kind    Kind
	Message string
}

func (r Result) Success() bool { return r.Kind == KindSuccess }
func (r Result) Failed() bool  { return r.Kind != KindSuccess }

func OK(message string) Result       { return Result{Kind: KindSuccess, Message: message} }
func Invalid(message string) Result  { return Result{Kind: KindInvalid, Message: message} }
func NotFound(message string) Result { return Result{Kind: KindNotFound, Message: message} }
func Conflict(message string) Result { return Result{Kind: KindConflict, Message: message} }

// Of carries an entity alongside the outcome. Data is nil on failure.
type Of[T any] struct {
	Result
	Data *T
}

func OKWith[T any](data *T, message string) Of[T] {
	return Of[T]{Result: OK(message), Data: data}
}

func InvalidOf[T any](message string) Of[T] {
	return Of[T]{Result: Invalid(message)}
}

func NotFoundOf[T any](message string) Of[T] {
	return Of[T]{Result: NotFound(message)}
}

func ConflictOf[T any](message string) Of[T] {
	return Of[T]{Result: Conflict(message)}
}

// FailureOf lifts a failed payload-free outcome into a typed one.
func FailureOf[T any](r Result) Of[T] {
	return Of[T]{Result: r}
}
