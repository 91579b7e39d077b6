package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/aptline/internal/core/debline"
	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driven"
	"github.com/custodia-labs/aptline/internal/core/ports/driving"
	"github.com/custodia-labs/aptline/internal/logger"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// nameField is the deb822 field holding the record name.
const nameField = "X-Repolib-Name"

// SourceService converts and manages APT source records.
type SourceService struct {
	sourceStore driven.SourceStore
	codec       driven.RecordCodec
	validator   driven.OptionValidator
	namePrefix  string
	now         func() time.Time
}

// NewSourceService creates a new source service.
func NewSourceService(sourceStore driven.SourceStore) *SourceService {
	return &SourceService{
		sourceStore: sourceStore,
		namePrefix:  domain.DefaultNamePrefix,
		now:         time.Now,
	}
}

// SetRecordCodec sets the codec used by Describe.
func (s *SourceService) SetRecordCodec(codec driven.RecordCodec) {
	s.codec = codec
}

// SetOptionValidator sets the validator used by Validate.
func (s *SourceService) SetOptionValidator(validator driven.OptionValidator) {
	s.validator = validator
}

// SetNamePrefix sets the prefix used when deriving record names.
func (s *SourceService) SetNamePrefix(prefix string) {
	s.namePrefix = prefix
}

// ParseLine converts a one-line descriptor into a source record.
func (s *SourceService) ParseLine(line string) (*domain.Source, error) {
	src, err := debline.Parse(line)
	if err != nil {
		logger.Debug("parse failed: %v", err)
		return nil, err
	}
	if s.namePrefix != domain.DefaultNamePrefix {
		src.Name = src.MakeName(s.namePrefix)
	}
	logger.Debug("parsed %q as %s (enabled=%t, options=%d)", line, src.Name, src.Enabled, src.Options.Len())
	return src, nil
}

// RenderLine converts a source record into a one-line descriptor.
func (s *SourceService) RenderLine(source domain.Source) (string, error) {
	return debline.Render(source)
}

// RenderLines converts a source record into one line per type, URI and suite.
func (s *SourceService) RenderLines(source domain.Source) ([]string, error) {
	expanded := debline.Expand(source)
	if len(expanded) == 0 {
		return nil, &debline.RecordError{Name: source.Name, Err: debline.ErrTooManyURIs}
	}
	lines := make([]string, 0, len(expanded))
	for _, src := range expanded {
		line, err := debline.Render(src)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Describe renders a source in deb822 form.
func (s *SourceService) Describe(source domain.Source) (string, error) {
	if s.codec == nil {
		return "", domain.ErrNotImplemented
	}
	data, err := s.codec.Marshal(source)
	if err != nil {
		return "", fmt.Errorf("describe %s: %w", source.DisplayName(), err)
	}
	out := string(data)
	if strings.HasPrefix(out, nameField+":") {
		out = "Name:" + strings.TrimPrefix(out, nameField+":")
	}
	return strings.Replace(out, "\n"+nameField+":", "\nName:", 1), nil
}

// ParseRecord decodes a deb822 paragraph into a source record.
func (s *SourceService) ParseRecord(data []byte) (*domain.Source, error) {
	if s.codec == nil {
		return nil, domain.ErrNotImplemented
	}
	src, err := s.codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if src.Name == "" {
		src.Name = src.MakeName(s.namePrefix)
	}
	return src, nil
}

// AddLine parses a one-line descriptor and stores the result.
func (s *SourceService) AddLine(ctx context.Context, line string) (*domain.Source, error) {
	src, err := s.ParseLine(line)
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, *src)
}

// Add stores a new source, assigning an ID if it has none.
func (s *SourceService) Add(ctx context.Context, source domain.Source) (*domain.Source, error) {
	if s.sourceStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if len(source.URIs) == 0 || len(source.Suites) == 0 {
		return nil, fmt.Errorf("%w: source needs at least one URI and one suite", domain.ErrInvalidInput)
	}
	if source.Name == "" {
		source.Name = source.MakeName(s.namePrefix)
	}

	if source.ID == "" {
		source.ID = uuid.NewString()
	} else if existing, err := s.sourceStore.Get(ctx, source.ID); err == nil && existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	sources, err := s.sourceStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	for i := range sources {
		if sources[i].Name == source.Name {
			return nil, fmt.Errorf("%w: source named %q", domain.ErrAlreadyExists, source.Name)
		}
	}

	now := s.now()
	source.CreatedAt = now
	source.UpdatedAt = now
	if err := s.sourceStore.Save(ctx, source); err != nil {
		return nil, fmt.Errorf("save source: %w", err)
	}
	logger.Info("added source %s (%s)", source.Name, source.ID)
	return &source, nil
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	if s.sourceStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sourceStore.Get(ctx, id)
}

// List returns all stored sources sorted by name.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	if s.sourceStore == nil {
		return nil, domain.ErrNotImplemented
	}
	sources, err := s.sourceStore.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(sources, func(a, b domain.Source) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return sources, nil
}

// Update modifies an existing source.
func (s *SourceService) Update(ctx context.Context, source domain.Source) error {
	if s.sourceStore == nil {
		return domain.ErrNotImplemented
	}
	if source.ID == "" {
		return domain.ErrInvalidInput
	}
	existing, err := s.sourceStore.Get(ctx, source.ID)
	if err != nil {
		return domain.ErrNotFound
	}
	source.CreatedAt = existing.CreatedAt
	source.UpdatedAt = s.now()
	return s.sourceStore.Save(ctx, source)
}

// Remove deletes a source.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	if s.sourceStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.sourceStore.Get(ctx, id); err != nil {
		return err
	}
	logger.Info("removing source %s", id)
	return s.sourceStore.Delete(ctx, id)
}

// SetEnabled enables or disables a stored source.
func (s *SourceService) SetEnabled(ctx context.Context, id string, enabled bool) (*domain.Source, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	src.Enabled = enabled
	if err := s.Update(ctx, *src); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetSourceCode adds or drops source-package (deb-src) entries on a stored source.
func (s *SourceService) SetSourceCode(ctx context.Context, id string, enabled bool) (*domain.Source, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	src.SetSourceCode(enabled)
	if err := s.Update(ctx, *src); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Validate returns human-readable warnings about a source.
func (s *SourceService) Validate(source domain.Source) []string {
	var warnings []string

	if len(source.URIs) == 0 {
		warnings = append(warnings, "no URIs")
	}
	if len(source.Suites) == 0 {
		warnings = append(warnings, "no suites")
	}
	for _, t := range source.Types {
		if !t.IsValid() {
			warnings = append(warnings, fmt.Sprintf("unknown type %q", t))
		}
	}

	for _, name := range source.Options.Names() {
		if !domain.IsKnownOption(name) {
			warnings = append(warnings, fmt.Sprintf("unknown option %q", name))
		}
	}
	if s.validator != nil {
		for _, arch := range source.Options.Values(domain.OptionArchitectures) {
			if err := s.validator.ValidateArchitecture(arch); err != nil {
				warnings = append(warnings, err.Error())
			}
		}
	}

	if err := debline.CheckRenderable(&source); err != nil {
		warnings = append(warnings, fmt.Sprintf("no one-line form: %v", err))
	}

	return warnings
}

// Watch reports external changes to stored sources until ctx is cancelled.
func (s *SourceService) Watch(ctx context.Context) (<-chan domain.SourceEvent, error) {
	watcher, ok := s.sourceStore.(driven.SourceWatcher)
	if !ok {
		return nil, domain.ErrWatchUnsupported
	}
	return watcher.Watch(ctx)
}
