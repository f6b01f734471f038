// Package pipeline executes named scorecard-construction steps in a fixed,
// declared order.
//
// A Runner replaces free-form orchestration scripts with an explicit step
// list: each step declares which earlier steps' results it reads, the
// declarations are validated before anything executes, and every run is
// logged under a unique run ID. Results travel between steps through an
// explicit name-to-value map instead of shared state, so a step's data
// dependencies are visible at the call site.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/scorego/pkg/errors"
	"github.com/YuminosukeSato/scorego/pkg/log"
)

// Results maps completed step names to the values they returned. The same
// map is passed by reference into every step, so results written by earlier
// steps are visible to later ones.
type Results map[string]any

// StepFunc is a single pipeline step. It receives the results of all
// previously executed steps and returns its own result, which Run stores
// under the step's name.
type StepFunc func(ctx context.Context, results Results) (any, error)

type step struct {
	name   string
	fn     StepFunc
	inputs []string
}

// Runner executes steps in the order they were added.
//
// Example:
//
//	r := pipeline.New()
//	r.Add("bin", binStep)
//	r.Add("build", buildStep, "bin")
//	r.Add("score", scoreStep, "build")
//	results, err := r.Run(ctx)
type Runner struct {
	steps []step
}

// New returns an empty Runner.
func New() *Runner {
	return &Runner{}
}

// Add appends a named step. The inputs name earlier steps whose results the
// step reads; Run checks every declaration before executing anything.
func (r *Runner) Add(name string, fn StepFunc, inputs ...string) {
	r.steps = append(r.steps, step{name: name, fn: fn, inputs: inputs})
}

// Names returns the step names in execution order.
func (r *Runner) Names() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.name
	}
	return names
}

// validate はステップ定義の整合性を実行前に検査する。
// 違反が一つでもあればステップは一切実行されない。
func (r *Runner) validate() error {
	const op = "Runner.Run"
	if len(r.steps) == 0 {
		return errors.NewEmptyInputError(op, "steps")
	}
	seen := make(map[string]struct{}, len(r.steps))
	for i, s := range r.steps {
		if s.name == "" {
			return errors.NewValueError(op, fmt.Sprintf("step %d has an empty name", i))
		}
		if s.fn == nil {
			return errors.NewValueError(op, fmt.Sprintf("step %q has a nil function", s.name))
		}
		if _, dup := seen[s.name]; dup {
			return errors.NewValueError(op, fmt.Sprintf("duplicate step name %q", s.name))
		}
		for _, in := range s.inputs {
			if _, ok := seen[in]; !ok {
				return errors.NewValueError(op, fmt.Sprintf("step %q declares input %q, which is not an earlier step", s.name, in))
			}
		}
		seen[s.name] = struct{}{}
	}
	return nil
}

// Run executes the steps in order and returns the name-to-result map for
// the whole run.
//
// Before execution, the step list is validated: names must be unique and
// every declared input must name an earlier step. On a validation error
// nothing executes. During execution a step panic is converted to a
// PanicError, a step error aborts the run wrapped with the step name, and
// context cancellation stops the run between steps. In every failure case
// Run returns a nil map.
func (r *Runner) Run(ctx context.Context) (Results, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := log.GetLoggerWithName("pipeline").With(log.RunIDKey, runID)
	logger.Info("Pipeline run started", "steps", len(r.steps))

	results := make(Results, len(r.steps))
	start := time.Now()
	for i, s := range r.steps {
		if err := ctx.Err(); err != nil {
			logger.Warn("Pipeline run cancelled",
				log.StepKey, s.name,
				log.StepIndexKey, i,
			)
			return nil, errors.Wrapf(err, "pipeline: run cancelled before step %q", s.name)
		}

		stepStart := time.Now()
		var out any
		err := errors.SafeExecute("pipeline step "+s.name, func() error {
			var stepErr error
			out, stepErr = s.fn(ctx, results)
			return stepErr
		})
		if err != nil {
			logger.Error("Pipeline step failed",
				log.ErrAttr(err),
				log.StepKey, s.name,
				log.StepIndexKey, i,
			)
			return nil, errors.Wrapf(err, "pipeline: step %q failed", s.name)
		}

		results[s.name] = out
		logger.Info("Pipeline step completed",
			log.StepKey, s.name,
			log.StepIndexKey, i,
			log.DurationMsKey, time.Since(stepStart).Milliseconds(),
		)
	}

	logger.Info("Pipeline run completed",
		"steps", len(r.steps),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return results, nil
}
