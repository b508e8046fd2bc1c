package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Input values with special meaning for NewSource.
const (
	InputSample = ""
	InputStdin  = "-"
)

// Source yields one raw payload per Read call.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	Read(ctx context.Context) (string, error)
}

// NewSource returns the Source for input: the built-in sample for "",
// stdin for "-", and the named file otherwise.
func NewSource(input string, stdin io.Reader) Source {
	switch input {
	case InputSample:
		return sampleSource{}
	case InputStdin:
		return &readerSource{name: "stdin", r: stdin}
	default:
		return fileSource{path: input}
	}
}

type sampleSource struct{}

func (sampleSource) Name() string { return "sample" }

func (sampleSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return SampleCSV, nil
}

type fileSource struct {
	path string
}

func (s fileSource) Name() string { return s.path }

// Read loads the whole file. The file is re-read on every call so watch
// mode always sees the latest contents.
func (s fileSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("ingest: read %q: %w", s.path, err)
	}
	return string(data), nil
}

type readerSource struct {
	name string
	r    io.Reader
}

func (s *readerSource) Name() string { return s.name }

func (s *readerSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.r == nil {
		return "", fmt.Errorf("ingest: %s: no reader attached", s.name)
	}
	data, err := io.ReadAll(s.r)
	if err != nil {
		return "", fmt.Errorf("ingest: read %s: %w", s.name, err)
	}
	return string(data), nil
}
