package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", "info", &buf)

	logger.Debug("hidden")
	logger.Info("shown", "file", "README.md")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "file=README.md") {
		t.Errorf("info message missing: %q", out)
	}
}

func TestNewDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", "", &buf)

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info logged at default level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn missing at default level: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	t.Setenv("PKGTMPL_JSON_LOG", "1")
	var buf bytes.Buffer
	New("test", "info", &buf).Info("hello")

	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}
