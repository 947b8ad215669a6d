package main

import (
	"context"
	"fmt"

	"github.com/jwebster45206/story-collection/pkg/narrative"
)

// Driver owns the session the console is showing.
type Driver interface {
	Current(ctx context.Context) (narrative.Session, error)
	Apply(ctx context.Context, a narrative.Action) (narrative.Session, error)
}

// localDriver plays in-process.
type localDriver struct {
	engine *narrative.Engine
}

func newLocalDriver(engine *narrative.Engine) *localDriver {
	return &localDriver{engine: engine}
}

func (d *localDriver) Current(context.Context) (narrative.Session, error) {
	return d.engine.Session(), nil
}

func (d *localDriver) Apply(_ context.Context, a narrative.Action) (narrative.Session, error) {
	if !d.engine.Dispatch(a) {
		return d.engine.Session(), fmt.Errorf("%w: %s on %s", narrative.ErrInvalidTransition, a, d.engine.Screen())
	}
	return d.engine.Session(), nil
}
