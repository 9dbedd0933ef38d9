package provenance

import (
	"context"
	"fmt"

	internalLoader "github.com/PageDAO/PageProvenanceService/internal/record/loader"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/record"
)

// NewRecordLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewRecordLoader(options ...record.LoaderOption) record.Loader {
	cfg := record.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// LoadRecord fetches and decodes the record at location, a file path or an
// http(s) URL. URLs are only followed when options enable HTTP.
func LoadRecord(ctx context.Context, location string, options ...record.LoaderOption) (model.ProvenanceRecord, error) {
	src, err := record.ParseSource(location)
	if err != nil {
		return model.ProvenanceRecord{}, err
	}
	doc, err := NewRecordLoader(options...).Load(ctx, src)
	if err != nil {
		return model.ProvenanceRecord{}, err
	}
	rec, err := doc.Record()
	if err != nil {
		return model.ProvenanceRecord{}, fmt.Errorf("provenance: %w", err)
	}
	return rec, nil
}
