package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunnerStopsOthersOnFailure(t *testing.T) {
	errFail := errors.New("fail")
	r := NewRunner()
	r.Go(
		NamedRun("blocking", RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
		RunFunc(func(ctx context.Context) error {
			return errFail
		}),
	)
	err := r.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, errFail))
	require.Equal(t, "fail", err.Error())
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner()
	r.Go(RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	r.Stop()
	require.NoError(t, r.Wait())
	require.Error(t, r.Context().Err())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	errs.Add(nil, context.Canceled)
	require.NoError(t, errs.Aggregate())
	errs.Add(errors.New("a"), errors.New("b"))
	require.Equal(t, "multiple errors:\n  a\n  b", errs.Aggregate().Error())
}

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	closed := make(chan struct{})
	closer := closerFunc(func() error {
		close(closed)
		return nil
	})
	go func() {
		time.Sleep(time.Millisecond)
		cancel()
	}()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-closed
		return errors.New("closed")
	})
	require.Equal(t, context.Canceled, err)
}
