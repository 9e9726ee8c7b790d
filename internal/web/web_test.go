package web

import (
	"bytes"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, PageData{
		Title:          "Faces <Dashboard>",
		Prompt:         "Please upload the README.md file to proceed.",
		MaxUploadBytes: 1024,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "Faces &lt;Dashboard&gt;") {
		t.Error("Render() should escape the title")
	}
	if !strings.Contains(html, "Please upload the README.md file to proceed.") {
		t.Error("Render() should include the upload prompt")
	}
	if !strings.Contains(html, `data-max-bytes="1024"`) {
		t.Error("Render() should include the upload limit")
	}
}
