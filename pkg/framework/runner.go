package framework

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"
)

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun wraps a Runnable with a name used in logs.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// ErrForcedExit is returned by Wait when a second stop signal arrives.
var ErrForcedExit = errors.New("forced exit")

// Runner starts Runnables and waits for all of them. When one of them
// fails, the others are canceled.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	count  int
	errCh  chan error
	exitCh chan struct{}
}

// NewRunner creates a Runner with a background context.
func NewRunner() *Runner {
	return NewRunnerWith(context.Background())
}

// NewRunnerWith creates a Runner derived from ctx.
func NewRunnerWith(ctx context.Context) *Runner {
	r := &Runner{
		errCh:  make(chan error),
		exitCh: make(chan struct{}),
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	return r
}

// Context is canceled when the Runner stops.
func (r *Runner) Context() context.Context {
	return r.ctx
}

// Stop cancels all Runnables.
func (r *Runner) Stop() {
	r.cancel()
}

// HandleSignals stops on Ctrl-C or SIGTERM. A second signal forces Wait
// to return immediately.
func (r *Runner) HandleSignals() *Runner {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		glog.Info("stop requested")
		r.cancel()
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Go starts Runnables.
func (r *Runner) Go(runners ...Runnable) *Runner {
	for _, runner := range runners {
		name := strconv.Itoa(r.count)
		if named, ok := runner.(Named); ok {
			name = named.Name()
		}
		r.count++
		go func(runner Runnable, name string) {
			glog.V(4).Infof("runner[%s] started", name)
			err := runner.Run(r.ctx)
			glog.V(4).Infof("runner[%s] stopped: %v", name, err)
			if err != nil && !isCanceled(err) {
				glog.Errorf("runner[%s] failed: %v", name, err)
				r.cancel()
			}
			r.errCh <- err
		}(runner, name)
	}
	return r
}

// Wait waits until all Runnables stop and aggregates their errors.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for n := 0; n < r.count; n++ {
		select {
		case <-r.exitCh:
			return ErrForcedExit
		case err := <-r.errCh:
			errs.Add(err)
		}
	}
	r.cancel()
	return errs.Aggregate()
}

// RunWithContextCloser runs fn which blocks on closer and doesn't accept
// a context. closer is closed when ctx is canceled or fn returns.
func RunWithContextCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case <-ctx.Done():
		closer.Close()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		closer.Close()
		return err
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
