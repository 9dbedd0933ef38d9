package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/PageDAO/PageProvenanceService/pkg/record"
)

// Loader implements record.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the root provenance package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxBytes  int64
}

var _ record.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options record.LoaderOptions) record.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = record.DefaultMaxBytes
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		maxBytes:  maxBytes,
	}
}

// Load fetches a payload from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src record.Source) (record.Document, error) {
	if src == nil {
		return record.Document{}, errors.New("record loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case record.SourceKindFile:
		data, err = loadFile(ctx, src.Location(), l.maxBytes)
	case record.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location(), l.maxBytes)
	case record.SourceKindURL:
		if !l.allowHTTP {
			return record.Document{}, errors.New("record loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.maxBytes)
	default:
		err = fmt.Errorf("record loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return record.Document{}, err
	}

	return record.NewDocument(src, data)
}
