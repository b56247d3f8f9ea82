// Package request wraps backend calls with the loading/error state page
// controllers render from. Each call is independent and at-most-once: no
// retries, no caching, no deduplication.
package request

import (
	"context"
	"sync"

	"github.com/veridoc/portal/internal/logging"
	"github.com/veridoc/portal/internal/portal/api"
)

// JSONDoer is the transport primitive the requester drives. Satisfied by
// *api.HTTPClient.
type JSONDoer interface {
	DoJSON(ctx context.Context, method, path string, payload, out any) error
}

// Requester tracks loading and error state around backend calls.
//
// Contract (per call): set loading, clear the prior error, run the call;
// on failure store a human-readable message extracted from the error
// envelope and re-raise so the caller can react locally; on settle
// (success or failure) clear loading.
//
// A generation counter makes state updates last-write-wins: when a call is
// superseded by a newer one before it settles, the late result's state is
// dropped instead of clobbering the newer call's.
type Requester struct {
	doer JSONDoer
	log  logging.Logger

	mu      sync.Mutex
	gen     uint64
	loading bool
	errMsg  string
}

func New(doer JSONDoer, log logging.Logger) *Requester {
	if log == nil {
		log = logging.Noop()
	}
	return &Requester{doer: doer, log: log}
}

// Loading reports whether the most recent call is still in flight.
func (r *Requester) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Err returns the user-facing message of the most recent failure, or "".
func (r *Requester) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// ClearErr dismisses the current error message.
func (r *Requester) ClearErr() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = ""
}

// Get issues a GET for path and decodes the envelope data into out.
func (r *Requester) Get(ctx context.Context, path string, out any) error {
	return r.Call(ctx, func(ctx context.Context) error {
		return r.doer.DoJSON(ctx, "GET", path, nil, out)
	})
}

// Post issues a POST with a JSON payload.
func (r *Requester) Post(ctx context.Context, path string, payload, out any) error {
	return r.Call(ctx, func(ctx context.Context) error {
		return r.doer.DoJSON(ctx, "POST", path, payload, out)
	})
}

// Delete issues a DELETE for path.
func (r *Requester) Delete(ctx context.Context, path string) error {
	return r.Call(ctx, func(ctx context.Context) error {
		return r.doer.DoJSON(ctx, "DELETE", path, nil, nil)
	})
}

// Call runs an arbitrary backend operation under the loading/error contract.
// Typed api.Client operations are passed in as closures.
func (r *Requester) Call(ctx context.Context, fn func(ctx context.Context) error) error {
	gen := r.begin()
	err := fn(ctx)
	r.finish(ctx, gen, err)
	return err
}

func (r *Requester) begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.loading = true
	r.errMsg = ""
	return r.gen
}

func (r *Requester) finish(ctx context.Context, gen uint64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		// A newer call owns the state now; this result is stale.
		r.log.Debug(ctx, "dropping stale response", "gen", gen, "current", r.gen)
		return
	}
	r.loading = false
	if err != nil {
		r.errMsg = api.UserMessage(err)
	}
}
