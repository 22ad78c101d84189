// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

// catalogue lists every Id with a phrase its message must contain.
var catalogue = []struct {
	id       Id
	contains string
}{
	{FileNotFoundId, "File not found"},
	{MalformedContainerId, "Malformed shader container"},
	{NoShaderFilesId, "No shader files found"},
	{CompilerBridgeNotConfiguredId, "Compiler bridge not configured"},
	{CompileFailedId, "Compilation failed"},
	{DecodeFailedId, "Failed to decode AMDIL"},
	{CorpusVersionUnsupportedId, "Corpus database is too new"},
	{ConfigLoadFailedId, "Failed to load configuration"},
	{PermissionDeniedId, "Permission denied"},
}

func TestId_Constants(t *testing.T) {
	t.Parallel()

	seen := make(map[Id]bool)
	for _, c := range catalogue {
		if seen[c.id] {
			t.Errorf("duplicate ID: %d", c.id)
		}
		seen[c.id] = true
	}

	if FileNotFoundId != 1 {
		t.Errorf("FileNotFoundId = %d, want 1", FileNotFoundId)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	for _, tt := range catalogue {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			issue := Get(tt.id)
			if issue == nil {
				t.Fatalf("Get(%d) = nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Get(%d).Id() = %d", tt.id, issue.Id())
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() does not contain %q", tt.id, tt.contains)
			}
		})
	}

	if Get(Id(9999)) != nil {
		t.Error("Get(9999) != nil, want nil")
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	issues := Values()
	if len(issues) != len(catalogue) {
		t.Fatalf("len(Values()) = %d, want %d", len(issues), len(catalogue))
	}
	for i, issue := range issues {
		if issue.Id() != catalogue[i].id {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), catalogue[i].id)
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	issue := &Issue{
		id:       Id(9999),
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	links := issue.DocLinks()
	links[0] = "changed"
	if issue.DocLinks()[0] != "https://docs.example.com" {
		t.Error("DocLinks() returned the internal slice")
	}
	ext := issue.ExtLinks()
	ext[0] = "changed"
	if issue.ExtLinks()[0] != "https://external.example.com" {
		t.Error("ExtLinks() returned the internal slice")
	}
}

// TestIssue_Render swaps the package-level renderer, so it does not run in
// parallel with other tests.
func TestIssue_Render(t *testing.T) {
	originalRender := render
	t.Cleanup(func() { render = originalRender })
	render = func(in, _ string) (string, error) { return in, nil }

	t.Run("with links", func(t *testing.T) {
		issue := &Issue{
			id:       Id(9999),
			mdMsg:    "# Test Issue",
			docLinks: []HttpLink{"https://docs.example.com"},
		}
		got, err := issue.Render("")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, "## See also\n- <https://docs.example.com>") {
			t.Errorf("Render() = %q, want See also section", got)
		}
	})

	t.Run("without links", func(t *testing.T) {
		issue := &Issue{id: Id(9998), mdMsg: "# Test Issue"}
		got, err := issue.Render("")
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(got, "See also") {
			t.Errorf("Render() = %q, want no See also section", got)
		}
	})

	t.Run("catalogue", func(t *testing.T) {
		for _, issue := range Values() {
			got, err := issue.Render("")
			if err != nil || got == "" {
				t.Errorf("Issue %d Render() = %q, %v", issue.Id(), got, err)
			}
		}
	})
}

func TestIssue_RenderNoTTY(t *testing.T) {
	t.Parallel()

	got, err := Get(CompileFailedId).Render("notty")
	if err != nil {
		t.Fatalf("Render(notty) error = %v", err)
	}
	if !strings.Contains(got, "Compilation failed") {
		t.Errorf("Render(notty) = %q, want heading text", got)
	}
}
