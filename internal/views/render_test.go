package views

import (
	"strings"
	"testing"
)

func TestRenderAppMarksErrorStatus(t *testing.T) {
	out := RenderApp(AppData{
		Header:      "loctodo",
		LeftPane:    "tasks",
		StatusText:  "could not reach the server",
		StatusError: true,
	})
	if !strings.Contains(out, "! could not reach the server") {
		t.Fatalf("expected error marker in frame:\n%s", out)
	}
}

func TestRenderAppPlainStatusHasNoMarker(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "loctodo",
		LeftPane:   "tasks",
		StatusText: "signed in as a@b.co",
	})
	if strings.Contains(out, "! signed in") {
		t.Fatalf("plain status must not carry the error marker:\n%s", out)
	}
	if !strings.Contains(out, "signed in as a@b.co") {
		t.Fatalf("expected status text in frame:\n%s", out)
	}
}

func TestRenderAppOmitsEmptySections(t *testing.T) {
	out := RenderApp(AppData{Header: "loctodo", LeftPane: "tasks"})
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("frame must not end with blank lines:\n%q", out)
	}
}
