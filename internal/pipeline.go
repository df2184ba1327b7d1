package internal

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/tinyweb/pkg/result"
)

// Stage is a step of the per-request pipeline.
type Stage uint8

const (
	StagePending Stage = iota
	StageBeforeFilters
	StageHandler
	StageAfterFilters
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageBeforeFilters:
		return "before_filters"
	case StageHandler:
		return "handler"
	case StageAfterFilters:
		return "after_filters"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// pipeline runs the filters and handler of one route.
type pipeline struct {
	dispatcher *Dispatcher
	factory    Factory
	pattern    string
	handler    Descriptor
	filters    []Descriptor // global filters first, then the route's own
}

// run executes the pipeline for a request and returns the Result to render.
//
// Every filter is created once and used for both hooks. A Before hook
// returning a Result ends the pipeline and skips the handler. After hooks
// run in the same order as Before hooks; the first one returning a Result
// replaces the handler's Result. Any error ends the pipeline.
func (p *pipeline) run(c Context) (result.Result, error) {
	stage := StagePending
	enter := func(s Stage) {
		c.LogDebug("pipeline stage",
			slog.String("route", p.pattern),
			slog.String("from", stage.String()),
			slog.String("to", s.String()),
		)
		stage = s
	}

	filters := make([]any, len(p.filters))
	for i, d := range p.filters {
		f, err := p.factory.Create(c, d)
		if err != nil {
			return nil, fmt.Errorf("create filter %s: %w", d, err)
		}
		filters[i] = f
	}

	enter(StageBeforeFilters)
	for i, f := range filters {
		res, err := p.dispatcher.RunBefore(f, c)
		if err != nil {
			return nil, err
		}
		if res != nil {
			c.LogDebug("request short-circuited by filter",
				slog.String("filter", p.filters[i].String()),
				slog.String("result", res.Kind().String()),
			)
			enter(StageDone)
			return res, nil
		}
	}

	enter(StageHandler)
	h, err := p.factory.Create(c, p.handler)
	if err != nil {
		return nil, fmt.Errorf("create handler %s: %w", p.handler, err)
	}
	res, err := p.dispatcher.Dispatch(h, c)
	if err != nil {
		return nil, err
	}

	enter(StageAfterFilters)
	for _, f := range filters {
		after, err := p.dispatcher.RunAfter(f, c)
		if err != nil {
			return nil, err
		}
		if after != nil {
			res = after
			break
		}
	}

	enter(StageDone)
	return res, nil
}
