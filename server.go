package provenance

import (
	"context"

	"github.com/PageDAO/PageProvenanceService/pkg/server"
)

// NewServer builds the HTTP surface with the runtime assets mounted under
// /assets/. Options given later override earlier ones.
func NewServer(ctx context.Context, options ...server.Option) (*server.Server, error) {
	base := []server.Option{server.WithAssetFS(RuntimeAssetsFS())}
	return server.New(ctx, append(base, options...)...)
}
