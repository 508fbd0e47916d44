package transcript

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestPrintlnEchoesToStdout(t *testing.T) {
	var buf bytes.Buffer
	tr := &Transcript{stdout: &buf}
	tr.Println("hello")
	if buf.String() != "hello\n" {
		t.Errorf("stdout = %q, want %q", buf.String(), "hello\n")
	}
}

func TestCloseWithNoPathIsNoop(t *testing.T) {
	tr := New("")
	tr.Println("line")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestCloseWritesBufferedTranscript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")
	tr := &Transcript{stdout: &bytes.Buffer{}, path: path}
	tr.Println("one")
	tr.Println("two")

	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "one\ntwo\n" {
		t.Errorf("transcript file = %q, want %q", got, "one\ntwo\n")
	}
}
