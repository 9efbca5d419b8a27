// SPDX-License-Identifier: MPL-2.0

package report

import (
	"github.com/PhilLello/doxyreport/internal/doxyfile"
	"github.com/PhilLello/doxyreport/internal/project"
)

type (
	// Request is the immutable input of one run.
	Request struct {
		// Project is the project being reported on.
		Project *project.Project
		// Reactor holds every project built together, Project included.
		// Only consulted for aggregate runs.
		Reactor []*project.Project
		// Aggregate selects the aggregate report.
		Aggregate bool
		// ExecutionRoot marks the project driving the aggregation.
		ExecutionRoot bool
		// DryRun writes the Doxyfile but does not run the generator or merge.
		DryRun bool
	}

	// Policy decides which failures end a run.
	Policy struct {
		// Strict makes generator launch failures fatal.
		Strict bool
		// FailOnExitCode makes a non-zero generator exit fatal.
		FailOnExitCode bool
		// EmptyAggregateInputs reproduces the legacy "" INPUT placeholders for
		// aggregate runs without explicit input folders.
		EmptyAggregateInputs bool
	}
)

// NewRequest builds a Request. reactor may be nil for single-project runs.
func NewRequest(p *project.Project, reactor []*project.Project, aggregate, executionRoot bool) Request {
	if len(reactor) == 0 {
		reactor = []*project.Project{p}
	}
	return Request{
		Project:       p,
		Reactor:       reactor,
		Aggregate:     aggregate,
		ExecutionRoot: executionRoot,
	}
}

// roots returns the projects whose sources feed INPUT.
func (r Request) roots() []doxyfile.Root {
	projects := []*project.Project{r.Project}
	if r.Aggregate {
		projects = r.Reactor
	}

	roots := make([]doxyfile.Root, 0, len(projects))
	for _, p := range projects {
		roots = append(roots, doxyfile.Root{BaseDir: p.BaseDir, SourceDir: p.SourceDir})
	}
	return roots
}

// siblings returns the base directories of the other reactor projects.
func (r Request) siblings() []string {
	var dirs []string
	for _, p := range r.Reactor {
		if p.BaseDir != r.Project.BaseDir {
			dirs = append(dirs, p.BaseDir)
		}
	}
	return dirs
}

// shouldMerge reports whether the merge step applies.
func (r Request) shouldMerge() bool {
	return r.Aggregate && r.ExecutionRoot
}
