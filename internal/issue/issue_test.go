// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	t.Parallel()

	for _, id := range []Id{CreationFailedId, ActivationFailedId, ConfigLoadFailedId, ToolsMissingId} {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("Get(%d) = nil", id)
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
	}

	if Get(Id(9999)) != nil {
		t.Error("Get(unknown) should return nil")
	}
}

func TestValues_OrderedById(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered: %d before %d", values[i-1].Id(), values[i].Id())
		}
	}
}

func TestAllIssuesHaveContent(t *testing.T) {
	t.Parallel()

	for _, iss := range Values() {
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty Markdown", iss.Id())
		}
	}
}

func TestIssue_DocLinksIsCopy(t *testing.T) {
	t.Parallel()

	links := Get(CreationFailedId).DocLinks()
	if len(links) == 0 {
		t.Fatal("CreationFailed issue should carry doc links")
	}
	links[0] = "mutated"
	if Get(CreationFailedId).DocLinks()[0] == "mutated" {
		t.Error("DocLinks() must return a copy")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	t.Parallel()

	for _, iss := range Values() {
		out, err := iss.Render("notty")
		if err != nil {
			t.Errorf("issue %d Render() error: %v", iss.Id(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("issue %d rendered to empty output", iss.Id())
		}
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	t.Parallel()

	out, err := Get(CreationFailedId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "See also") {
		t.Errorf("rendered issue should list links:\n%s", out)
	}
}
