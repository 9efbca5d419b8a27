// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	GeneratorNotFoundId Id = iota + 1
	GeneratorFailedId
	DoxyfileWriteFailedId
	AggregationCopyFailedId
	ProjectLoadFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	// Id identifies a catalog entry.
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is a catalog entry: Markdown guidance plus documentation links.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the Markdown message with the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	generatorNotFoundIssue = &Issue{
		id: GeneratorNotFoundId,
		mdMsg: `
# doxygen could not be started!

The documentation generator binary was not found or is not executable.

## Things you can try:
- Install doxygen and make sure it is on your PATH:
~~~
$ doxygen --version
~~~

- Point the report at a specific binary in your config file:
~~~cue
generator: {
  command: "/opt/doxygen/bin/doxygen"
}
~~~`,
		docLinks: []HttpLink{"https://www.doxygen.nl/manual/install.html"},
	}

	generatorFailedIssue = &Issue{
		id: GeneratorFailedId,
		mdMsg: `
# doxygen exited with an error!

The generator ran but reported a non-zero exit status.

## Things you can try:
- Read the error lines forwarded above; they come straight from doxygen
- Inspect the generated configuration:
~~~
$ doxyreport report --dry-run
~~~

- Remove invalid keys from the ` + "`options`" + ` block of your doxyreport.cue`,
		docLinks: []HttpLink{"https://www.doxygen.nl/manual/config.html"},
	}

	doxyfileWriteFailedIssue = &Issue{
		id: DoxyfileWriteFailedId,
		mdMsg: `
# Failed to write the Doxyfile!

The generator configuration could not be written to the build directory.

## Common causes:
- The build directory is read-only
- A file exists where the ` + "`doxygen`" + ` work directory should be
- The disk is full

## Things you can try:
- Check the ` + "`build_dir`" + ` setting in doxyreport.cue
- Remove the build directory and retry`,
	}

	aggregationCopyFailedIssue = &Issue{
		id: AggregationCopyFailedId,
		mdMsg: `
# Could not merge a module report!

The aggregated report is missing output from one or more modules.

## Things you can try:
- Generate the module reports first:
~~~
$ doxyreport aggregate --modules
~~~

- Make sure every module uses the same ` + "`output_dir`" + ` layout relative to its base directory`,
	}

	projectLoadFailedIssue = &Issue{
		id: ProjectLoadFailedId,
		mdMsg: `
# Failed to load the project descriptor!

## Things you can try:
- Create a doxyreport.cue in the project directory:
~~~cue
name: "my-library"
version: "1.0.0"
inputs: ["include", "src"]
~~~

- Check the CUE or TOML syntax at the location reported above
- Pass the project directory explicitly:
~~~
$ doxyreport report -C path/to/project
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show the effective configuration:
~~~
$ doxyreport config show
~~~

- Recreate the default configuration file:
~~~
$ doxyreport config init
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

## Things you can try:
- Check the permissions of the build and reporting output directories
- Make sure the doxygen binary is executable:
~~~
$ chmod +x "$(command -v doxygen)"
~~~`,
	}

	issues = map[Id]*Issue{
		generatorNotFoundIssue.Id():     generatorNotFoundIssue,
		generatorFailedIssue.Id():       generatorFailedIssue,
		doxyfileWriteFailedIssue.Id():   doxyfileWriteFailedIssue,
		aggregationCopyFailedIssue.Id(): aggregationCopyFailedIssue,
		projectLoadFailedIssue.Id():     projectLoadFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
