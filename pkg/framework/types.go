// Package framework runs the long-lived parts of a CMPP host program.
package framework

import (
	"context"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable is a background task stopped by canceling its context.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}
