// SPDX-License-Identifier: MPL-2.0

package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/PhilLello/doxyreport/internal/aggregate"
	"github.com/PhilLello/doxyreport/internal/doxyfile"
	"github.com/PhilLello/doxyreport/internal/logging"
	"github.com/PhilLello/doxyreport/internal/runtime"

	"github.com/spf13/afero"
)

const (
	// StepResolve fills default options and INPUT.
	StepResolve Step = "resolve"
	// StepWrite writes the Doxyfile.
	StepWrite Step = "write"
	// StepGenerate runs the generator.
	StepGenerate Step = "generate"
	// StepMerge merges sibling output trees.
	StepMerge Step = "merge"
)

// ErrNonZeroExit is the sentinel error wrapped by ExitCodeError.
var ErrNonZeroExit = errors.New("generator exited with non-zero status")

type (
	// Step names a pipeline stage.
	Step string

	// StepResult is the outcome of one pipeline stage.
	StepResult struct {
		Step Step
		// Err is the step failure, nil on success or skip.
		Err error
		// Fatal marks a failure the policy does not tolerate.
		Fatal bool
		// Skipped marks a step that did not run.
		Skipped bool
		// Reason explains a skip.
		Reason string
	}

	// Outcome collects everything a run produced.
	Outcome struct {
		// Options are the resolved Doxyfile options.
		Options doxyfile.Options
		// DoxyfilePath is where the Doxyfile was written.
		DoxyfilePath string
		// Steps holds one result per pipeline stage, in order.
		Steps []StepResult
		// Generator is nil when the generator step was skipped.
		Generator *runtime.Result
		// Siblings holds per-sibling merge results.
		Siblings []aggregate.SiblingResult
	}

	// ExitCodeError reports a non-zero generator exit under FailOnExitCode.
	ExitCodeError struct {
		Code runtime.ExitCode
	}

	// Runner runs the generator against a Doxyfile.
	Runner interface {
		Run(ctx context.Context, doxyfile string) *runtime.Result
	}

	// Merger merges sibling output trees.
	Merger interface {
		Merge(baseDir, outputDir string, siblings []string) []aggregate.SiblingResult
	}

	// Driver runs the report pipeline.
	Driver struct {
		Fs     afero.Fs
		Runner Runner
		Merger Merger
		Sink   logging.Sink
		Policy Policy
	}
)

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("generator exited with status %s", e.Code)
}

// Unwrap returns ErrNonZeroExit.
func (e *ExitCodeError) Unwrap() error { return ErrNonZeroExit }

// Err returns the first fatal step error, or nil.
func (o *Outcome) Err() error {
	for _, s := range o.Steps {
		if s.Fatal {
			return s.Err
		}
	}
	return nil
}

// Errors returns every step error, fatal or not.
func (o *Outcome) Errors() []error {
	var errs []error
	for _, s := range o.Steps {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errs
}

// Step returns the result of the named step.
func (o *Outcome) Step(name Step) (StepResult, bool) {
	for _, s := range o.Steps {
		if s.Step == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Run executes the pipeline for req. It returns once every step has either
// run or been skipped; the caller inspects Outcome.Err for fatal failures.
func (d *Driver) Run(ctx context.Context, req Request) *Outcome {
	sink := d.Sink
	if sink == nil {
		sink = logging.Discard()
	}
	fs := d.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	p := req.Project
	sink.Info("generating doxygen report", "project", p.Name, "aggregate", req.Aggregate, "execution_root", req.ExecutionRoot)

	out := &Outcome{DoxyfilePath: doxyfile.Path(p.BuildDir)}

	// resolve
	out.Options = doxyfile.Resolve(doxyfile.Options(p.Options), doxyfile.Defaults{
		Name:      p.Name,
		Version:   p.Version,
		OutputDir: p.OutputDir,
	}, doxyfile.InputResolver{
		Folders:           p.Inputs,
		Roots:             req.roots(),
		Aggregate:         req.Aggregate,
		EmptyPlaceholders: d.Policy.EmptyAggregateInputs,
	})
	sink.Debug("resolved Doxyfile options", "count", len(out.Options), "input", out.Options[doxyfile.KeyInput])
	out.Steps = append(out.Steps, StepResult{Step: StepResolve})

	// write
	if err := doxyfile.Write(fs, out.DoxyfilePath, out.Options); err != nil {
		sink.Error("failed to write Doxyfile", "path", out.DoxyfilePath, "err", err)
		out.Steps = append(out.Steps, StepResult{Step: StepWrite, Err: err})
	} else {
		sink.Debug("wrote Doxyfile", "path", out.DoxyfilePath)
		out.Steps = append(out.Steps, StepResult{Step: StepWrite})
	}

	if req.DryRun {
		out.skip("dry run", StepGenerate, StepMerge)
		return out
	}

	// generate
	if d.Runner == nil {
		out.skip("no generator configured", StepGenerate)
	} else {
		out.Generator = d.Runner.Run(ctx, out.DoxyfilePath)
		step := d.judgeGenerator(sink, out.Generator)
		out.Steps = append(out.Steps, step)
		if step.Fatal {
			out.skip("generator failed", StepMerge)
			return out
		}
	}

	// merge
	switch {
	case !req.shouldMerge():
		out.skip("not an aggregate run at the execution root", StepMerge)
	case d.Merger == nil:
		out.skip("no merger configured", StepMerge)
	default:
		out.Siblings = d.Merger.Merge(p.BaseDir, out.Options[doxyfile.KeyOutputDirectory], req.siblings())
		var errs []error
		for _, failed := range aggregate.Failed(out.Siblings) {
			errs = append(errs, failed.Err)
		}
		out.Steps = append(out.Steps, StepResult{Step: StepMerge, Err: errors.Join(errs...)})
	}

	return out
}

// judgeGenerator applies the policy to a generator result.
func (d *Driver) judgeGenerator(sink logging.Sink, res *runtime.Result) StepResult {
	step := StepResult{Step: StepGenerate}

	switch {
	case res.Error != nil:
		step.Err = res.Error
		step.Fatal = d.Policy.Strict || errors.Is(res.Error, runtime.ErrInterrupted)
		sink.Error("generator did not complete", "err", res.Error)
	case !res.ExitCode.IsSuccess():
		step.Err = &ExitCodeError{Code: res.ExitCode}
		step.Fatal = d.Policy.FailOnExitCode
		if step.Fatal {
			sink.Error("generator exited with non-zero status", "exit_code", res.ExitCode)
		} else {
			sink.Warn("generator exited with non-zero status", "exit_code", res.ExitCode)
		}
	}

	if len(res.StreamErrors) > 0 && step.Err == nil {
		step.Err = errors.Join(res.StreamErrors...)
	}
	return step
}

func (o *Outcome) skip(reason string, steps ...Step) {
	for _, s := range steps {
		o.Steps = append(o.Steps, StepResult{Step: s, Skipped: true, Reason: reason})
	}
}
