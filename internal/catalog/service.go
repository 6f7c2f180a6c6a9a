package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Service validates catalog input before it reaches the store. The engine's
// knowledge base keys on these values, so typos here poison rule matching.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) ListLanguages(ctx context.Context) ([]Language, error) {
	return s.Repo.ListLanguages(ctx)
}

func (s *Service) GetLanguage(ctx context.Context, id int64) (Language, error) {
	return s.Repo.GetLanguage(ctx, id)
}

func (s *Service) CreateLanguage(ctx context.Context, lang Language) (Language, error) {
	lang.Name = strings.TrimSpace(lang.Name)
	lang.EntryThreshold = normalize(lang.EntryThreshold)
	lang.ExecutionModel = normalize(lang.ExecutionModel)
	lang.Popularity = normalize(lang.Popularity)
	lang.Purpose = normalize(lang.Purpose)
	if lang.Name == "" {
		return Language{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validateEnum("entryThreshold", lang.EntryThreshold, entryThresholds); err != nil {
		return Language{}, err
	}
	if err := validateEnum("executionModel", lang.ExecutionModel, executionModels); err != nil {
		return Language{}, err
	}
	if err := validateEnum("popularity", lang.Popularity, popularities); err != nil {
		return Language{}, err
	}
	if err := validateEnum("purpose", lang.Purpose, purposes); err != nil {
		return Language{}, err
	}
	return s.Repo.CreateLanguage(ctx, lang)
}

func (s *Service) DeleteLanguage(ctx context.Context, id int64) error {
	return s.Repo.DeleteLanguage(ctx, id)
}

func (s *Service) ListFrameworks(ctx context.Context) ([]Framework, error) {
	return s.Repo.ListFrameworks(ctx)
}

func (s *Service) GetFramework(ctx context.Context, id int64) (Framework, error) {
	return s.Repo.GetFramework(ctx, id)
}

func (s *Service) CreateFramework(ctx context.Context, fw Framework) (Framework, error) {
	fw.Name = strings.TrimSpace(fw.Name)
	fw.TasksType = normalize(fw.TasksType)
	if fw.Name == "" {
		return Framework{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validateEnum("tasksType", fw.TasksType, tasksTypes); err != nil {
		return Framework{}, err
	}
	// Referenced languages must exist; dangling IDs confuse the engine.
	for _, id := range fw.LanguageIDs {
		if _, err := s.Repo.GetLanguage(ctx, id); err != nil {
			if err == ErrNotFound {
				return Framework{}, fmt.Errorf("%w: language %d does not exist", ErrInvalidInput, id)
			}
			return Framework{}, err
		}
	}
	return s.Repo.CreateFramework(ctx, fw)
}

func (s *Service) DeleteFramework(ctx context.Context, id int64) error {
	return s.Repo.DeleteFramework(ctx, id)
}

func (s *Service) ListDataStorages(ctx context.Context) ([]DataStorage, error) {
	return s.Repo.ListDataStorages(ctx)
}

func (s *Service) GetDataStorage(ctx context.Context, id int64) (DataStorage, error) {
	return s.Repo.GetDataStorage(ctx, id)
}

func (s *Service) CreateDataStorage(ctx context.Context, ds DataStorage) (DataStorage, error) {
	ds.Name = strings.TrimSpace(ds.Name)
	ds.StorageType = normalize(ds.StorageType)
	ds.StorageLocation = normalize(ds.StorageLocation)
	ds.DatabaseType = normalize(ds.DatabaseType)
	if ds.Name == "" {
		return DataStorage{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validateEnum("storageType", ds.StorageType, storageTypes); err != nil {
		return DataStorage{}, err
	}
	if err := validateEnum("storageLocation", ds.StorageLocation, storageLocations); err != nil {
		return DataStorage{}, err
	}
	if err := validateEnum("databaseType", ds.DatabaseType, databaseTypes); err != nil {
		return DataStorage{}, err
	}
	return s.Repo.CreateDataStorage(ctx, ds)
}

func (s *Service) DeleteDataStorage(ctx context.Context, id int64) error {
	return s.Repo.DeleteDataStorage(ctx, id)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func validateEnum(field, value string, allowed map[string]bool) error {
	if !allowed[value] {
		return fmt.Errorf("%w: %s %q is not a known value", ErrInvalidInput, field, value)
	}
	return nil
}
