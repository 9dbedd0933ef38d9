package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAttestation marks a selected attestation id the catalog cannot
// resolve.
var ErrUnknownAttestation = errors.New("document: unknown attestation")

// CatalogDriftError lists the attestation ids that failed to resolve during a
// strict build.
type CatalogDriftError struct {
	IDs []string
}

func (e *CatalogDriftError) Error() string {
	return fmt.Sprintf("document: catalog drift: unresolved attestation ids [%s]", strings.Join(e.IDs, ", "))
}

// Unwrap lets errors.Is match ErrUnknownAttestation.
func (e *CatalogDriftError) Unwrap() error {
	return ErrUnknownAttestation
}
