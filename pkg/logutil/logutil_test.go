package logutil

import (
	"io"
	"strings"
	"testing"

	"src.noviq.dev/pkg/must"
	"src.noviq.dev/pkg/testutil"
)

func TestSetOutput(t *testing.T) {
	logger := GetLogger("[test] ")
	var sb strings.Builder
	SetOutput(&sb)
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Println("hello")
	if !strings.Contains(sb.String(), "[test] ") || !strings.HasSuffix(sb.String(), "hello\n") {
		t.Errorf("got log %q", sb.String())
	}

	// Loggers created after SetOutput also use the new output.
	GetLogger("[later] ").Println("world")
	if !strings.HasSuffix(sb.String(), "world\n") {
		t.Errorf("got log %q", sb.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	testutil.InTempDir(t)
	logger := GetLogger("[test] ")

	must.OK(SetOutputFile("log"))
	logger.Println("to file")
	must.OK(SetOutputFile(""))
	logger.Println("discarded")

	content := must.ReadFileString("log")
	if !strings.HasSuffix(content, "to file\n") {
		t.Errorf("got log file content %q", content)
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	if err := SetOutputFile("/a/bad/path/log"); err == nil {
		t.Errorf("got nil error for bad path")
	}
}
