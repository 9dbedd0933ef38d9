package loader

import (
	"context"
	"fmt"
	"net/http"
)

func loadHTTP(ctx context.Context, client *http.Client, location string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("record loader: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record loader: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("record loader: fetch %s: unexpected status %d", location, resp.StatusCode)
	}
	return readLimited(resp.Body, location, maxBytes)
}
