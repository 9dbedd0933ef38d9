package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

func loadFile(ctx context.Context, path string, maxBytes int64) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("record loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record loader: open %s: %w", path, err)
	}
	defer f.Close()
	return readLimited(f, path, maxBytes)
}

func readLimited(r io.Reader, location string, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("record loader: read %s: %w", location, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("record loader: %s exceeds %d bytes", location, maxBytes)
	}
	return data, nil
}
