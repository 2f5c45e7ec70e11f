package upscale

import (
	"context"
	"image"
	"sync"
)

// Result carries the outcome of an asynchronous upscale request.
type Result struct {
	Image image.Image
	Err   error
}

// Runner serializes upscale requests and keeps only the most recent one
// alive. Submitting a new request cancels the one in flight; a result
// whose request has been superseded is dropped instead of delivered.
type Runner struct {
	cmd Command

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewRunner returns a runner for the given command.
func NewRunner(cmd Command) *Runner {
	return &Runner{cmd: cmd}
}

// Submit starts an upscale of img in the background and delivers the
// result on the returned channel. A later Submit supersedes this one:
// its work is cancelled and its channel is closed without a result.
func (r *Runner) Submit(ctx context.Context, img image.Image) <-chan Result {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		out, err := r.cmd.Run(ctx, img)
		r.mu.Lock()
		current := r.seq == seq
		r.mu.Unlock()
		if !current {
			return
		}
		ch <- Result{Image: out, Err: err}
	}()
	return ch
}

// Stop cancels any request still in flight.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq++
}
