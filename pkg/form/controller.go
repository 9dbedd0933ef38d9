package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// Phase describes where a controller is in the form lifecycle.
type Phase int

const (
	// PhaseEditing is the initial state.
	PhaseEditing Phase = iota
	// PhaseEditingWithErrors follows a failed validation. Editing continues and
	// the stored errors remain until the next Validate or Submit.
	PhaseEditingWithErrors
	// PhaseSubmitted is terminal: the record has been handed off.
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseEditingWithErrors:
		return "editing-with-errors"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Option customises a Controller.
type Option func(*Controller)

// WithRecord seeds the controller with an existing record instead of the
// blank default. The record is copied.
func WithRecord(record model.ProvenanceRecord) Option {
	return func(c *Controller) {
		c.record = normaliseRecord(record)
	}
}

// WithIssuer configures the address issuance step run before hand-off.
func WithIssuer(issuer AddressIssuer) Option {
	return func(c *Controller) {
		c.issuer = issuer
	}
}

// WithHandoff configures the receiver of successfully submitted records.
func WithHandoff(handoff Handoff) Option {
	return func(c *Controller) {
		c.handoff = handoff
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller applies commands to a single provenance record and decides when
// the record may leave the form.
type Controller struct {
	catalog model.Catalog
	record  model.ProvenanceRecord
	errors  Errors
	phase   Phase
	issuer  AddressIssuer
	handoff Handoff
	logger  *zap.Logger
}

// New constructs a Controller that resolves content types and attestation ids
// against catalog.
func New(catalog model.Catalog, options ...Option) *Controller {
	c := &Controller{
		catalog: catalog,
		record:  model.NewRecord(),
		errors:  Errors{},
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Result reports the outcome of Submit. Record holds the handed-off copy when
// Valid is true.
type Result struct {
	Valid  bool
	Errors Errors
	Record model.ProvenanceRecord
}

// Record returns a copy of the current record.
func (c *Controller) Record() model.ProvenanceRecord {
	return c.record.Clone()
}

// Errors returns a copy of the errors stored by the last validation.
func (c *Controller) Errors() Errors {
	return c.errors.Clone()
}

// Phase reports the lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Catalog returns the catalog the controller resolves against.
func (c *Controller) Catalog() model.Catalog {
	return c.catalog
}

// Value returns the display value of a scalar field.
func (c *Controller) Value(field FieldName) (string, error) {
	value, ok := fieldValue(&c.record, field)
	if !ok {
		return "", fmt.Errorf("form: read %q: %w", field, ErrUnknownField)
	}
	return value, nil
}

// Dispatch applies cmd.
func (c *Controller) Dispatch(cmd Command) error {
	switch cmd := cmd.(type) {
	case SetField:
		return c.SetField(cmd.Field, cmd.Value)
	case SetSource:
		return c.SetSource(cmd.Index, cmd.Value)
	case AddSource:
		return c.AddSource()
	case RemoveSource:
		return c.RemoveSource(cmd.Index)
	case ToggleAttestation:
		return c.ToggleAttestation(cmd.ID, cmd.Checked)
	default:
		return fmt.Errorf("form: dispatch %T: %w", cmd, ErrUnknownCommand)
	}
}

// SetField replaces a scalar field. No validation runs.
func (c *Controller) SetField(field FieldName, value string) error {
	if err := c.editable(); err != nil {
		return err
	}

	switch field {
	case FieldContentType:
		ct := model.ContentType(strings.TrimSpace(value))
		if !c.catalog.HasContentType(ct) {
			return fmt.Errorf("form: set %q to %q: %w", field, value, ErrUnknownContentType)
		}
		c.record.ContentType = ct
	case FieldCC0:
		flag, err := parseFlag(value)
		if err != nil {
			return fmt.Errorf("form: set %q to %q: %w", field, value, ErrInvalidValue)
		}
		c.record.CC0 = flag
	default:
		if !assignField(&c.record, field, value) {
			return fmt.Errorf("form: set %q: %w", field, ErrUnknownField)
		}
	}
	return nil
}

// SetSource replaces the approved source at index.
func (c *Controller) SetSource(index int, value string) error {
	if err := c.editable(); err != nil {
		return err
	}
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.record.ApprovedSources[index] = value
	return nil
}

// AddSource appends a blank approved source.
func (c *Controller) AddSource() error {
	if err := c.editable(); err != nil {
		return err
	}
	c.record.ApprovedSources = append(c.record.ApprovedSources, "")
	return nil
}

// RemoveSource deletes the approved source at index, keeping the order of
// the remaining entries.
func (c *Controller) RemoveSource(index int) error {
	if err := c.editable(); err != nil {
		return err
	}
	if err := c.checkIndex(index); err != nil {
		return err
	}
	sources := make([]string, 0, len(c.record.ApprovedSources)-1)
	sources = append(sources, c.record.ApprovedSources[:index]...)
	sources = append(sources, c.record.ApprovedSources[index+1:]...)
	c.record.ApprovedSources = sources
	return nil
}

// ToggleAttestation adds id when checked and absent, removes it when
// unchecked and present. Repeating a call is a no-op.
func (c *Controller) ToggleAttestation(id string, checked bool) error {
	if err := c.editable(); err != nil {
		return err
	}
	if _, ok := c.catalog.Attestation(id); !ok {
		return fmt.Errorf("form: toggle %q: %w", id, ErrUnknownAttestation)
	}

	present := c.record.HasAttestation(id)
	switch {
	case checked && !present:
		c.record.Attestations = append(c.record.Attestations, id)
	case !checked && present:
		kept := make([]string, 0, len(c.record.Attestations))
		for _, existing := range c.record.Attestations {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		c.record.Attestations = kept
	}
	return nil
}

// Validate checks the current record and stores the resulting errors for
// display. It reports valid when no field fails.
func (c *Controller) Validate() (bool, Errors) {
	errs := ValidateRecord(c.catalog, c.record)
	c.errors = errs
	if c.phase != PhaseSubmitted {
		if len(errs) == 0 {
			c.phase = PhaseEditing
		} else {
			c.phase = PhaseEditingWithErrors
		}
	}
	return len(errs) == 0, errs.Clone()
}

// Submit validates the record and, when valid, runs the optional address
// issuer and hands a copy to the configured Handoff. Validation failures are
// reported through Result with a nil error. Issuer and hand-off failures are
// returned as errors and leave the controller editable.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	if c.phase == PhaseSubmitted {
		return Result{}, ErrSubmitted
	}

	valid, errs := c.Validate()
	if !valid {
		c.logger.Debug("form submission rejected",
			zap.Strings("fields", fieldStrings(errs.Fields())),
		)
		return Result{Valid: false, Errors: errs}, nil
	}

	record := c.record.Clone()
	if c.issuer != nil {
		address, err := c.issuer.IssueAddress(ctx, record.Clone())
		if err != nil {
			return Result{}, fmt.Errorf("form: issue address: %w", err)
		}
		if address = strings.TrimSpace(address); address != "" {
			record.ContractAddress = address
		}
	}

	if c.handoff != nil {
		if err := c.handoff.Receive(ctx, record.Clone()); err != nil {
			return Result{}, fmt.Errorf("form: hand off record: %w", err)
		}
	}

	c.record = record
	c.phase = PhaseSubmitted
	c.logger.Info("form submitted",
		zap.String("title", record.Title),
		zap.Int("sources", len(record.ApprovedSources)),
		zap.Int("attestations", len(record.Attestations)),
	)
	return Result{Valid: true, Errors: Errors{}, Record: record}, nil
}

func (c *Controller) editable() error {
	if c.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	return nil
}

func (c *Controller) checkIndex(index int) error {
	if index < 0 || index >= len(c.record.ApprovedSources) {
		return fmt.Errorf("form: index %d of %d sources: %w", index, len(c.record.ApprovedSources), ErrIndexOutOfRange)
	}
	return nil
}

func normaliseRecord(record model.ProvenanceRecord) model.ProvenanceRecord {
	out := record.Clone()
	if strings.TrimSpace(string(out.ContentType)) == "" {
		out.ContentType = model.DefaultContentType
	}
	if out.ApprovedSources == nil {
		out.ApprovedSources = []string{}
	}
	seen := make(map[string]struct{}, len(out.Attestations))
	attestations := make([]string, 0, len(out.Attestations))
	for _, id := range out.Attestations {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		attestations = append(attestations, id)
	}
	out.Attestations = attestations
	return out
}

func parseFlag(value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	if strings.EqualFold(value, "on") {
		return true, nil
	}
	return strconv.ParseBool(value)
}

func fieldStrings(fields []FieldName) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = string(field)
	}
	return out
}
