// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Issue identifiers. The zero Id is never assigned.
const (
	FileNotFoundId Id = iota + 1
	MalformedContainerId
	NoShaderFilesId
	CompilerBridgeNotConfiguredId
	CompileFailedId
	DecodeFailedId
	CorpusVersionUnsupportedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	// Id identifies a catalogued issue.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a reference URL shown under "See also".
	HttpLink string

	// Issue is a catalogued failure with remediation guidance.
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

// Render renders the issue as terminal Markdown with the glamour style at
// stylePath ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, links := range [][]HttpLink{i.docLinks, i.extLinks} {
			for _, link := range links {
				md.WriteString("- <" + string(link) + ">\n")
			}
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

The shader file passed on the command line does not exist or is not a regular file.

## Things you can try:
- Check the path for typos
- Pass a directory to 'fxodeps batch' to process every shader file in it`,
	}

	malformedContainerIssue = &Issue{
		id: MalformedContainerId,
		mdMsg: `
# Malformed shader container!

The file does not look like a complete GSFX, GSVS or GSPS container: its magic,
header or blob offsets point outside the file.

## Things you can try:
- Run 'fxodeps inspect <file>' to see which stage failed to parse
- Make sure the file was copied in binary mode and is not truncated
- Only ` + "`.fxo`" + `, ` + "`.vso`" + ` and ` + "`.pso`" + ` files are supported`,
	}

	noShaderFilesIssue = &Issue{
		id: NoShaderFilesId,
		mdMsg: `
# No shader files found!

The directory was scanned but no file matched the configured patterns.

## Things you can try:
- Use '--pattern' to match other names, for example:
~~~
$ fxodeps batch --pattern '**/*.fxo' ./shaders report.toml
~~~
- Check ` + "`batch.patterns`" + ` in your config file`,
	}

	compilerBridgeNotConfiguredIssue = &Issue{
		id: CompilerBridgeNotConfiguredId,
		mdMsg: `
# Compiler bridge not configured!

Analyzing a shader needs the external bridge executable and the vendor compiler
library it loads.

## Things you can try:
- Pass them on the command line:
~~~
$ fxodeps analyze --bridge ./amdilbridge --library ./atidxx64.dll shader.fxo
~~~
- Or set ` + "`compiler.bridge`" + ` and ` + "`compiler.library`" + ` in your config file:
~~~
$ fxodeps config init
~~~
- 'fxodeps inspect' works without a compiler`,
	}

	compileFailedIssue = &Issue{
		id: CompileFailedId,
		mdMsg: `
# Compilation failed!

The compiler bridge could not turn the stage bytecode into AMDIL text.

## Things you can try:
- Run with '--verbose' to see the bridge's stderr
- Check that ` + "`compiler.target`" + ` names a device family the library supports
- Raise ` + "`compiler.timeout`" + ` for very large shaders`,
	}

	decodeFailedIssue = &Issue{
		id: DecodeFailedId,
		mdMsg: `
# Failed to decode AMDIL!

The compiler produced text the decoder does not understand. The error names the
offending line.

## Things you can try:
- Store the text with 'fxodeps extract' and look at the reported line
- Report the instruction so it can be added to the decoder`,
	}

	corpusVersionUnsupportedIssue = &Issue{
		id: CorpusVersionUnsupportedId,
		mdMsg: `
# Corpus database is too new!

The database was written by a newer fxodeps and uses a schema this version does
not know.

## Things you can try:
- Upgrade fxodeps
- Extract into a new database file`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file is not valid CUE or does not match the expected schema.

## Things you can try:
- Print the active configuration and its location:
~~~
$ fxodeps config path
$ fxodeps config show
~~~
- Print a complete default file to compare against:
~~~
$ fxodeps config dump
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A file or directory could not be read or written.

## Things you can try:
- Check the permissions of the input files and the report or database path
- Make sure the compiler bridge is executable:
~~~
$ chmod +x ./amdilbridge
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():                fileNotFoundIssue,
		malformedContainerIssue.Id():          malformedContainerIssue,
		noShaderFilesIssue.Id():               noShaderFilesIssue,
		compilerBridgeNotConfiguredIssue.Id(): compilerBridgeNotConfiguredIssue,
		compileFailedIssue.Id():               compileFailedIssue,
		decodeFailedIssue.Id():                decodeFailedIssue,
		corpusVersionUnsupportedIssue.Id():    corpusVersionUnsupportedIssue,
		configLoadFailedIssue.Id():            configLoadFailedIssue,
		permissionDeniedIssue.Id():            permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the issue with the given id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
