package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

func loadFromFS(ctx context.Context, filesystem fs.FS, name string, maxBytes int64) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("record loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("record loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := filesystem.Open(name)
	if err != nil {
		return nil, fmt.Errorf("record loader: open %s: %w", name, err)
	}
	defer f.Close()
	return readLimited(f, name, maxBytes)
}
