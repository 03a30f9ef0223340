package msg

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBarKnownTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(1<<20, &buf)
	if n, err := bar.Write(make([]byte, 1<<19)); n != 1<<19 || err != nil {
		t.Fatalf("Write = %d, %v", n, err)
	}
	bar.Finish()

	out := buf.String()
	if !strings.Contains(out, "100%") {
		t.Errorf("Finish must fill the bar up: %q", out)
	}
	if !strings.Contains(out, "0.5 MB of 1.0 MB") {
		t.Errorf("expected the byte counts: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("Finish must terminate the line: %q", out)
	}
}

func TestProgressBarUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(0, &buf)
	bar.Write(make([]byte, 3<<19))
	bar.Finish()

	out := buf.String()
	if !strings.Contains(out, "1.5 MB") {
		t.Errorf("expected the byte count alone: %q", out)
	}
	if strings.Contains(out, "%") {
		t.Errorf("no percentage without a total: %q", out)
	}
}
