package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-share/internal/rendering"
	"github.com/jonathan/resume-share/internal/schemas"
	"github.com/jonathan/resume-share/internal/types"
	schemafiles "github.com/jonathan/resume-share/schemas"
	"github.com/rs/zerolog"
)

const (
	// DefaultName is used for records created without a name.
	DefaultName = "Untitled Resume"
	// ImportedName is used when an import file name has nothing left after stripping .json.
	ImportedName = "Imported Resume"
	copySuffix   = " (Copy)"
)

// Service implements resume record operations on top of a Store.
type Service struct {
	store  Store
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService returns a service over the given store.
func NewService(s Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  s,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns all records in insertion order.
func (s *Service) List(ctx context.Context) ([]types.SavedResume, error) {
	return s.store.List(ctx)
}

// Get returns the record with the identifier or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*types.SavedResume, error) {
	return s.store.Get(ctx, id)
}

// Lookup reports a missing record as found == false.
func (s *Service) Lookup(ctx context.Context, id string) (*types.SavedResume, bool, error) {
	rec, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// Create stores a new record. An empty name becomes DefaultName and a nil document becomes
// types.DefaultResume().
func (s *Service) Create(ctx context.Context, name string, data *types.Resume) (*types.SavedResume, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	if data == nil {
		data = types.DefaultResume()
	}

	rec := &types.SavedResume{
		ID:         s.newID(),
		Name:       name,
		UpdatedAt:  s.now().UTC(),
		TemplateID: types.DefaultTemplateID,
		Data:       *data.Clone(),
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resume record: %w", err)
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", rec.ID).Str("name", rec.Name).Msg("resume created")
	return rec, nil
}

// Update holds the fields to change; nil fields are left as they are.
type Update struct {
	Name       *string
	TemplateID *string
	Data       *types.Resume
}

// Update applies u to the record and refreshes its timestamp.
func (s *Service) Update(ctx context.Context, id string, u Update) (*types.SavedResume, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Name != nil {
		rec.Name = *u.Name
	}
	if u.TemplateID != nil {
		rec.TemplateID = rendering.Resolve(*u.TemplateID)
	}
	if u.Data != nil {
		rec.Data = *u.Data.Clone()
	}
	rec.UpdatedAt = s.now().UTC()

	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resume record: %w", err)
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Duplicate stores a deep copy of the record under a new identifier.
func (s *Service) Duplicate(ctx context.Context, id string) (*types.SavedResume, error) {
	orig, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, orig.Name+copySuffix, &orig.Data)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFileName derives the download file name from a record name.
func ExportFileName(name string) string {
	return whitespaceRun.ReplaceAllString(name, "_") + ".json"
}

// Export returns the record's document as indented JSON together with its file name.
func (s *Service) Export(ctx context.Context, id string) (string, []byte, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}

	content, err := json.MarshalIndent(rec.Data, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	return ExportFileName(rec.Name), content, nil
}

// Import validates the file content with the import gate (personalInfo, skills and
// workExperience present) and stores it as a new record. Rejections are *ImportError.
func (s *Service) Import(ctx context.Context, fileName string, content []byte) (*types.SavedResume, error) {
	if err := schemas.Validate(schemafiles.ImportGate, content); err != nil {
		var de *schemas.DocumentError
		if errors.As(err, &de) {
			return nil, &ImportError{File: fileName, Message: "Invalid resume JSON: file is not valid JSON", Cause: err}
		}
		return nil, &ImportError{File: fileName, Message: "Invalid resume JSON: missing required fields", Cause: err}
	}

	var data types.Resume
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, &ImportError{File: fileName, Message: "Invalid resume JSON: fields have the wrong type", Cause: err}
	}
	data.Normalize()

	return s.Create(ctx, importName(fileName), &data)
}

func importName(fileName string) string {
	base := filepath.Base(fileName)
	if len(base) >= len(".json") && strings.EqualFold(base[len(base)-len(".json"):], ".json") {
		base = base[:len(base)-len(".json")]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return ImportedName
	}
	if runes := []rune(base); len(runes) > types.MaxNameLength {
		base = string(runes[:types.MaxNameLength])
	}
	return base
}
