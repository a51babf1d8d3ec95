package taskpool

import (
	"time"

	"github.com/gul-cpp/taskpool/core"
)

// Generic functions cannot be re-exported as variables, so the submission
// family is wrapped here verbatim.

// Submit enqueues fn for immediate execution and returns its handle.
func Submit[T any](p *ThreadPool, fn TaskFunc[T]) (*TaskHandle[T], error) {
	return core.Submit(p, fn)
}

// SubmitNamed is Submit with a name for queue introspection.
func SubmitNamed[T any](p *ThreadPool, fn TaskFunc[T], name string) (*TaskHandle[T], error) {
	return core.SubmitNamed(p, fn, name)
}

// SubmitDelayed enqueues fn to become eligible after delay.
func SubmitDelayed[T any](p *ThreadPool, fn TaskFunc[T], delay time.Duration) (*TaskHandle[T], error) {
	return core.SubmitDelayed(p, fn, delay)
}

// SubmitDelayedNamed is SubmitDelayed with a name.
func SubmitDelayedNamed[T any](p *ThreadPool, fn TaskFunc[T], delay time.Duration, name string) (*TaskHandle[T], error) {
	return core.SubmitDelayedNamed(p, fn, delay, name)
}

// SubmitAt enqueues fn to become eligible at startAt.
func SubmitAt[T any](p *ThreadPool, fn TaskFunc[T], startAt time.Time) (*TaskHandle[T], error) {
	return core.SubmitAt(p, fn, startAt)
}

// SubmitAtNamed is the full form: earliest start time plus a name.
func SubmitAtNamed[T any](p *ThreadPool, fn TaskFunc[T], startAt time.Time, name string) (*TaskHandle[T], error) {
	return core.SubmitAtNamed(p, fn, startAt, name)
}
