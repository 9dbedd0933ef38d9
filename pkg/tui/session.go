package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/pkg/form"
)

const defaultMaxRounds = 5

// Theme captures optional message prefixes. Callers may pass pre-styled
// strings; the session does not emit escape codes itself.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithMaxRounds bounds how many failed submissions are re-prompted before
// the session gives up. Zero means no limit.
func WithMaxRounds(rounds int) Option {
	return func(s *Session) {
		if rounds >= 0 {
			s.maxRounds = rounds
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session walks a form controller through every field in the terminal,
// submits, and re-prompts only the fields that failed validation.
type Session struct {
	driver    PromptDriver
	theme     Theme
	maxRounds int
	logger    *zap.Logger
}

// New constructs a Session. Without WithPromptDriver it prompts on the
// process terminal through survey.
func New(options ...Option) *Session {
	s := &Session{
		theme:     Theme{ErrorPrefix: "! "},
		maxRounds: defaultMaxRounds,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run prompts for every field of controller's record, then submits until
// the record is accepted. The returned Result is the successful one unless
// the round limit was reached.
func (s *Session) Run(ctx context.Context, controller *form.Controller) (form.Result, error) {
	if ctx == nil {
		return form.Result{}, errors.New("tui: context is required")
	}
	if controller == nil {
		return form.Result{}, errors.New("tui: controller is required")
	}

	for _, field := range promptOrder {
		if err := s.promptField(ctx, controller, field); err != nil {
			return form.Result{}, err
		}
	}

	for round := 1; ; round++ {
		result, err := controller.Submit(ctx)
		if err != nil {
			return form.Result{}, err
		}
		if result.Valid {
			return result, nil
		}

		failed := result.Errors.Fields()
		s.logger.Debug("tui submission rejected", zap.Int("round", round), zap.Int("fields", len(failed)))
		for _, field := range failed {
			s.info(ctx, s.theme.ErrorPrefix+field.Label()+": "+result.Errors[field])
		}
		if s.maxRounds > 0 && round >= s.maxRounds {
			return result, fmt.Errorf("tui: record still invalid after %d attempts: %w", round, ErrTooManyAttempts)
		}
		for _, field := range orderFields(failed) {
			if err := s.promptField(ctx, controller, field); err != nil {
				return form.Result{}, err
			}
		}
	}
}

// Prompt order follows the form page: identity, description, sources,
// attestations, then free text.
var promptOrder = []form.FieldName{
	form.FieldContractAddress,
	form.FieldChainID,
	form.FieldTitle,
	form.FieldAuthor,
	form.FieldISBN,
	form.FieldPublicationDate,
	form.FieldContentType,
	form.FieldEdition,
	form.FieldPublisher,
	form.FieldLanguage,
	form.FieldCC0,
	form.FieldApprovedSources,
	form.FieldAttestations,
	form.FieldAdditionalNotes,
	form.FieldCustomAttestation,
}

func orderFields(fields []form.FieldName) []form.FieldName {
	wanted := make(map[form.FieldName]struct{}, len(fields))
	for _, field := range fields {
		wanted[field] = struct{}{}
	}
	out := make([]form.FieldName, 0, len(fields))
	for _, field := range promptOrder {
		if _, ok := wanted[field]; ok {
			out = append(out, field)
		}
	}
	return out
}

func (s *Session) promptField(ctx context.Context, controller *form.Controller, field form.FieldName) error {
	switch field {
	case form.FieldApprovedSources:
		return s.promptSources(ctx, controller)
	case form.FieldAttestations:
		return s.promptAttestations(ctx, controller)
	case form.FieldContentType:
		return s.promptContentType(ctx, controller)
	case form.FieldCC0:
		current, _ := controller.Value(field)
		answer, err := s.driver.Confirm(ctx, ConfirmPrompt{
			Label: field.Label() + "?",
			Value: current == "true",
			Hint:  "Marks the work as dedicated to the public domain.",
		})
		if err != nil {
			return err
		}
		return controller.SetField(field, fmt.Sprint(answer))
	case form.FieldAdditionalNotes, form.FieldCustomAttestation:
		current, _ := controller.Value(field)
		answer, err := s.driver.Text(ctx, TextPrompt{Label: field.Label(), Value: current, Multiline: true})
		if err != nil {
			return err
		}
		return controller.SetField(field, strings.TrimRight(answer, "\n"))
	default:
		current, err := controller.Value(field)
		if err != nil {
			return err
		}
		answer, err := s.driver.Text(ctx, TextPrompt{Label: field.Label(), Value: current, Hint: fieldHelp[field]})
		if err != nil {
			return err
		}
		return controller.SetField(field, strings.TrimSpace(answer))
	}
}

var fieldHelp = map[form.FieldName]string{
	form.FieldContractAddress: "Token contract holding the work, e.g. 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed.",
	form.FieldChainID:         "Optional CAIP-2 chain, e.g. eip155:1.",
	form.FieldPublicationDate: "Year and month, e.g. 1965-08.",
}

func (s *Session) promptContentType(ctx context.Context, controller *form.Controller) error {
	catalog := controller.Catalog()
	options := make([]string, 0, len(catalog.ContentTypes))
	for _, ct := range catalog.ContentTypes {
		options = append(options, string(ct))
	}
	current, _ := controller.Value(form.FieldContentType)

	for {
		idx, err := s.driver.Choose(ctx, ChoicePrompt{
			Label:    form.FieldContentType.Label(),
			Choices:  options,
			Selected: positions(options, []string{current}),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			s.info(ctx, s.theme.ErrorPrefix+form.MessageContentTypeUnknown)
			continue
		}
		return controller.SetField(form.FieldContentType, options[idx])
	}
}

// promptSources confirms each filled source, then offers to add more. Blank
// answers are never stored.
func (s *Session) promptSources(ctx context.Context, controller *form.Controller) error {
	var kept []string
	for _, source := range controller.Record().ApprovedSources {
		if strings.TrimSpace(source) == "" {
			continue
		}
		keep, err := s.driver.Confirm(ctx, ConfirmPrompt{Label: "Keep approved source " + source + "?", Value: true})
		if err != nil {
			return err
		}
		if keep {
			kept = append(kept, source)
		}
	}

	for {
		more, err := s.driver.Confirm(ctx, ConfirmPrompt{
			Label: "Add an approved source?",
			Value: len(kept) == 0,
		})
		if err != nil {
			return err
		}
		if !more {
			break
		}
		answer, err := s.driver.Text(ctx, TextPrompt{
			Label: fmt.Sprintf("Approved source #%d", len(kept)+1),
			Hint:  "Where the work may be distributed, e.g. https://example.com/work.",
		})
		if err != nil {
			return err
		}
		if answer = strings.TrimSpace(answer); answer == "" {
			s.info(ctx, s.theme.InfoPrefix+"Blank source skipped")
			continue
		}
		kept = append(kept, answer)
	}
	return replaceSources(controller, kept)
}

func replaceSources(controller *form.Controller, sources []string) error {
	for range controller.Record().ApprovedSources {
		if err := controller.RemoveSource(0); err != nil {
			return err
		}
	}
	for idx, source := range sources {
		if err := controller.AddSource(); err != nil {
			return err
		}
		if err := controller.SetSource(idx, source); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptAttestations(ctx context.Context, controller *form.Controller) error {
	catalog := controller.Catalog()
	record := controller.Record()
	// Ids outside the catalog cannot be shown or cleared through the prompt.
	for _, id := range record.Attestations {
		if _, ok := catalog.Attestation(id); !ok {
			return fmt.Errorf("tui: attestation %q: %w", id, form.ErrUnknownAttestation)
		}
	}
	options := make([]string, 0, len(catalog.Attestations))
	var defaults []int
	for idx, option := range catalog.Attestations {
		options = append(options, option.Text)
		if record.HasAttestation(option.ID) {
			defaults = append(defaults, idx)
		}
	}

	indices, err := s.driver.ChooseMany(ctx, ChoicePrompt{
		Label:    form.FieldAttestations.Label(),
		Choices:  options,
		Selected: defaults,
		Hint:     "Select every claim you make about this work.",
	})
	if err != nil {
		return err
	}

	chosen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		chosen[idx] = struct{}{}
	}
	for idx, option := range catalog.Attestations {
		_, checked := chosen[idx]
		if err := controller.ToggleAttestation(option.ID, checked); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) info(ctx context.Context, msg string) {
	if err := s.driver.Notify(ctx, msg); err != nil {
		s.logger.Debug("tui info failed", zap.Error(err))
	}
}
