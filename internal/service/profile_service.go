package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/folem-api/internal/domain"
	"github.com/phrazzld/folem-api/internal/domain/mastery"
	"github.com/phrazzld/folem-api/internal/store"
)

// ProfileUpdate carries a partial profile mutation. Nil fields are left
// untouched; settings merge shallowly and collections are replaced
// wholesale.
type ProfileUpdate struct {
	Name              *string                    `json:"name,omitempty"`
	CustomSymbols     *[]domain.CustomSymbol     `json:"custom_symbols,omitempty"`
	FavoriteSentences *[]domain.FavoriteSentence `json:"favorite_sentences,omitempty"`
	HiddenSymbols     *[]string                  `json:"hidden_symbols,omitempty"`
	VisualSettings    *domain.VisualSettings     `json:"visual_settings,omitempty"`
	Speech            *domain.SpeechSettings     `json:"speech,omitempty"`
}

// ProfileService implements profile lifecycle, per-profile content
// management and learning-progress updates on top of a ProfileStore.
// Every mutation rewrites the full collection synchronously.
type ProfileService struct {
	store   store.ProfileStore
	tracker *mastery.Tracker
	logger  *slog.Logger
	now     func() time.Time
}

// NewProfileService creates a ProfileService.
// It returns an error if any of the required dependencies are nil.
func NewProfileService(
	profileStore store.ProfileStore,
	tracker *mastery.Tracker,
	logger *slog.Logger,
) (*ProfileService, error) {
	if profileStore == nil {
		return nil, fmt.Errorf("%w: profile store cannot be nil", domain.ErrValidation)
	}
	if tracker == nil {
		return nil, fmt.Errorf("%w: mastery tracker cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileService{
		store:   profileStore,
		tracker: tracker,
		logger:  logger.With(slog.String("component", "profile_service")),
		now:     time.Now,
	}, nil
}

// Profiles returns the full profile collection.
func (s *ProfileService) Profiles(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.store.GetProfiles(ctx)
	if err != nil {
		return nil, NewProfileServiceError("list", "loading profiles", err)
	}
	return profiles, nil
}

// Get returns the profile with the given ID.
func (s *ProfileService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	profiles, err := s.store.GetProfiles(ctx)
	if err != nil {
		return nil, NewProfileServiceError("get", "loading profiles", err)
	}
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], nil
		}
	}
	return nil, store.ErrProfileNotFound
}

// ActiveProfile returns the currently selected profile, or
// ErrNoActiveProfile when none is selected.
func (s *ProfileService) ActiveProfile(ctx context.Context) (*domain.Profile, error) {
	activeID, err := s.store.GetActiveProfileID(ctx)
	if err != nil {
		return nil, NewProfileServiceError("active", "loading active profile pointer", err)
	}
	if activeID == "" {
		return nil, ErrNoActiveProfile
	}
	return s.Get(ctx, activeID)
}

// Create adds a new profile with default settings and makes it active.
func (s *ProfileService) Create(ctx context.Context, name string) (*domain.Profile, error) {
	profile, err := domain.NewProfile(name)
	if err != nil {
		return nil, err
	}

	profiles, err := s.store.GetProfiles(ctx)
	if err != nil {
		return nil, NewProfileServiceError("create", "loading profiles", err)
	}
	profiles = append(profiles, *profile)

	if err := s.store.SaveProfiles(ctx, profiles); err != nil {
		return nil, NewProfileServiceError("create", "saving profiles", err)
	}
	if err := s.store.SaveActiveProfileID(ctx, profile.ID); err != nil {
		return nil, NewProfileServiceError("create", "saving active profile pointer", err)
	}

	s.logger.Info("profile created", "profile_id", profile.ID, "name", profile.Name)
	return profile, nil
}

// Select makes the profile with the given ID the active one. The ID
// must refer to an existing profile.
func (s *ProfileService) Select(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.SaveActiveProfileID(ctx, id); err != nil {
		return NewProfileServiceError("select", "saving active profile pointer", err)
	}
	s.logger.Info("profile selected", "profile_id", id)
	return nil
}

// Delete removes the profile with the given ID. If it was the active
// profile, the active pointer is cleared. Deletion is irreversible.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	profiles, err := s.store.GetProfiles(ctx)
	if err != nil {
		return NewProfileServiceError("delete", "loading profiles", err)
	}

	index := -1
	for i := range profiles {
		if profiles[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return store.ErrProfileNotFound
	}

	profiles = append(profiles[:index], profiles[index+1:]...)
	if err := s.store.SaveProfiles(ctx, profiles); err != nil {
		return NewProfileServiceError("delete", "saving profiles", err)
	}

	activeID, err := s.store.GetActiveProfileID(ctx)
	if err != nil {
		return NewProfileServiceError("delete", "loading active profile pointer", err)
	}
	if activeID == id {
		if err := s.store.SaveActiveProfileID(ctx, ""); err != nil {
			return NewProfileServiceError("delete", "clearing active profile pointer", err)
		}
	}

	s.logger.Info("profile deleted", "profile_id", id)
	return nil
}

// Update applies a partial mutation to the profile with the given ID.
// The merged profile must still validate; otherwise nothing is written.
func (s *ProfileService) Update(ctx context.Context, id string, update ProfileUpdate) (*domain.Profile, error) {
	return s.mutate(ctx, "update", id, func(p *domain.Profile) error {
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.CustomSymbols != nil {
			p.CustomSymbols = *update.CustomSymbols
		}
		if update.FavoriteSentences != nil {
			p.FavoriteSentences = *update.FavoriteSentences
		}
		if update.HiddenSymbols != nil {
			p.HiddenSymbols = *update.HiddenSymbols
		}
		if update.VisualSettings != nil {
			p.VisualSettings = *update.VisualSettings
		}
		if update.Speech != nil {
			p.Speech = *update.Speech
		}
		return p.Validate()
	})
}

// importDocument mirrors the exchange format for shape validation. The
// required fields are checked for presence before the full decode.
type importDocument struct {
	ID            json.RawMessage `json:"id"`
	Name          json.RawMessage `json:"name"`
	CustomSymbols json.RawMessage `json:"custom_symbols"`
}

// Import parses an exported profile document, assigns it a fresh ID and
// creation time and adds it to the collection as the active profile.
// All other fields pass through unchanged.
func (s *ProfileService) Import(ctx context.Context, raw []byte) (*domain.Profile, error) {
	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	if doc.ID == nil || doc.Name == nil || doc.CustomSymbols == nil {
		return nil, fmt.Errorf("%w: id, name and custom_symbols are required", ErrImportFormat)
	}

	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	profile.ID = uuid.New().String()
	profile.CreatedAt = s.now().UTC()
	if profile.LearningProgress == nil {
		profile.LearningProgress = map[string]domain.LearningScore{}
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	profiles, err := s.store.GetProfiles(ctx)
	if err != nil {
		return nil, NewProfileServiceError("import", "loading profiles", err)
	}
	profiles = append(profiles, profile)
	if err := s.store.SaveProfiles(ctx, profiles); err != nil {
		return nil, NewProfileServiceError("import", "saving profiles", err)
	}
	if err := s.store.SaveActiveProfileID(ctx, profile.ID); err != nil {
		return nil, NewProfileServiceError("import", "saving active profile pointer", err)
	}

	s.logger.Info("profile imported", "profile_id", profile.ID, "name", profile.Name)
	return &profile, nil
}

// Export serializes the profile with the given ID as the canonical
// exchange document. No fields are filtered: custom content and
// learning progress travel with the profile.
func (s *ProfileService) Export(ctx context.Context, id string) ([]byte, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, NewProfileServiceError("export", "encoding profile", err)
	}
	return data, nil
}

// AddCustomSymbol adds a caregiver-created symbol to the active
// profile. The symbol gets a fresh ID when none is set.
func (s *ProfileService) AddCustomSymbol(ctx context.Context, symbol domain.CustomSymbol) (*domain.CustomSymbol, error) {
	if symbol.ID == "" {
		symbol.ID = uuid.New().String()
	}
	if err := symbol.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.mutateActive(ctx, "add custom symbol", func(p *domain.Profile) error {
		p.CustomSymbols = append(p.CustomSymbols, symbol)
		return nil
	}); err != nil {
		return nil, err
	}
	return &symbol, nil
}

// RemoveCustomSymbol deletes a custom symbol from the active profile.
func (s *ProfileService) RemoveCustomSymbol(ctx context.Context, symbolID string) error {
	_, err := s.mutateActive(ctx, "remove custom symbol", func(p *domain.Profile) error {
		for i := range p.CustomSymbols {
			if p.CustomSymbols[i].ID == symbolID {
				p.CustomSymbols = append(p.CustomSymbols[:i], p.CustomSymbols[i+1:]...)
				return nil
			}
		}
		return ErrCustomSymbolNotFound
	})
	return err
}

// AddFavorite saves the given symbol sequence as a favorite sentence on
// the active profile. The label is derived from the symbol labels.
func (s *ProfileService) AddFavorite(ctx context.Context, symbols []domain.Symbol) (*domain.FavoriteSentence, error) {
	favorite, err := domain.NewFavoriteSentence(symbols, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if _, err := s.mutateActive(ctx, "add favorite", func(p *domain.Profile) error {
		p.FavoriteSentences = append(p.FavoriteSentences, *favorite)
		return nil
	}); err != nil {
		return nil, err
	}
	return favorite, nil
}

// DeleteFavorite removes a favorite sentence from the active profile.
func (s *ProfileService) DeleteFavorite(ctx context.Context, favoriteID string) error {
	_, err := s.mutateActive(ctx, "delete favorite", func(p *domain.Profile) error {
		for i := range p.FavoriteSentences {
			if p.FavoriteSentences[i].ID == favoriteID {
				p.FavoriteSentences = append(p.FavoriteSentences[:i], p.FavoriteSentences[i+1:]...)
				return nil
			}
		}
		return ErrFavoriteNotFound
	})
	return err
}

// SetHiddenSymbols replaces the active profile's hidden-symbol set.
func (s *ProfileService) SetHiddenSymbols(ctx context.Context, symbolIDs []string) error {
	_, err := s.mutateActive(ctx, "set hidden symbols", func(p *domain.Profile) error {
		if symbolIDs == nil {
			symbolIDs = []string{}
		}
		p.HiddenSymbols = symbolIDs
		return nil
	})
	return err
}

// SetVisualSettings replaces the active profile's display preferences.
func (s *ProfileService) SetVisualSettings(ctx context.Context, settings domain.VisualSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	_, err := s.mutateActive(ctx, "set visual settings", func(p *domain.Profile) error {
		p.VisualSettings = settings
		return nil
	})
	return err
}

// SetSpeechSettings replaces the active profile's synthesis preferences.
func (s *ProfileService) SetSpeechSettings(ctx context.Context, settings domain.SpeechSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	_, err := s.mutateActive(ctx, "set speech settings", func(p *domain.Profile) error {
		p.Speech = settings
		return nil
	})
	return err
}

// RecordAttempt records one game-round outcome for a symbol on the
// active profile and returns the updated score.
func (s *ProfileService) RecordAttempt(ctx context.Context, symbolID string, correct bool) (domain.LearningScore, error) {
	var updated domain.LearningScore
	_, err := s.mutateActive(ctx, "record attempt", func(p *domain.Profile) error {
		var prior *domain.LearningScore
		if score, ok := p.LearningProgress[symbolID]; ok {
			prior = &score
		}
		updated = s.tracker.RecordAttempt(prior, symbolID, correct, s.now().UTC())
		if p.LearningProgress == nil {
			p.LearningProgress = map[string]domain.LearningScore{}
		}
		p.LearningProgress[symbolID] = updated
		return nil
	})
	if err != nil {
		return domain.LearningScore{}, err
	}
	return updated, nil
}

// ProgressSummary aggregates the active profile's learning progress for
// the caregiver report.
func (s *ProfileService) ProgressSummary(ctx context.Context) (mastery.Summary, error) {
	profile, err := s.ActiveProfile(ctx)
	if err != nil {
		return mastery.Summary{}, err
	}
	return mastery.Summarize(profile.LearningProgress), nil
}

// VisibleSymbols returns the symbols the active profile's board shows:
// the catalog plus the profile's custom symbols, minus hidden ones.
// A non-empty category restricts the result to that category.
func (s *ProfileService) VisibleSymbols(
	ctx context.Context,
	catalog []domain.CatalogSymbol,
	category string,
) ([]domain.Symbol, error) {
	profile, err := s.ActiveProfile(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.Symbol, 0, len(catalog)+len(profile.CustomSymbols))
	for _, symbol := range catalog {
		if profile.IsSymbolHidden(symbol.ID) {
			continue
		}
		if category != "" && symbol.Category != category {
			continue
		}
		visible = append(visible, symbol)
	}
	for _, symbol := range profile.CustomSymbols {
		if profile.IsSymbolHidden(symbol.ID) {
			continue
		}
		if category != "" && symbol.Category != category {
			continue
		}
		visible = append(visible, symbol)
	}
	return visible, nil
}

// mutate loads the collection, applies fn to the profile with the given
// ID and writes the whole collection back. A failing fn leaves the
// store untouched.
func (s *ProfileService) mutate(
	ctx context.Context,
	operation string,
	id string,
	fn func(*domain.Profile) error,
) (*domain.Profile, error) {
	profiles, err := s.store.GetProfiles(ctx)
	if err != nil {
		return nil, NewProfileServiceError(operation, "loading profiles", err)
	}

	for i := range profiles {
		if profiles[i].ID != id {
			continue
		}
		if err := fn(&profiles[i]); err != nil {
			return nil, err
		}
		if err := s.store.SaveProfiles(ctx, profiles); err != nil {
			return nil, NewProfileServiceError(operation, "saving profiles", err)
		}
		return &profiles[i], nil
	}
	return nil, store.ErrProfileNotFound
}

// mutateActive is mutate scoped to the active profile.
func (s *ProfileService) mutateActive(
	ctx context.Context,
	operation string,
	fn func(*domain.Profile) error,
) (*domain.Profile, error) {
	activeID, err := s.store.GetActiveProfileID(ctx)
	if err != nil {
		return nil, NewProfileServiceError(operation, "loading active profile pointer", err)
	}
	if activeID == "" {
		return nil, ErrNoActiveProfile
	}
	return s.mutate(ctx, operation, activeID, fn)
}
