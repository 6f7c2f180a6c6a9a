package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("catalog entry not found")
	ErrInvalidInput = errors.New("invalid catalog input")
)

// Repo stores the reference-data catalog behind the form dropdowns.
type Repo interface {
	ListLanguages(ctx context.Context) ([]Language, error)
	GetLanguage(ctx context.Context, id int64) (Language, error)
	CreateLanguage(ctx context.Context, lang Language) (Language, error)
	DeleteLanguage(ctx context.Context, id int64) error

	ListFrameworks(ctx context.Context) ([]Framework, error)
	GetFramework(ctx context.Context, id int64) (Framework, error)
	CreateFramework(ctx context.Context, fw Framework) (Framework, error)
	DeleteFramework(ctx context.Context, id int64) error

	ListDataStorages(ctx context.Context) ([]DataStorage, error)
	GetDataStorage(ctx context.Context, id int64) (DataStorage, error)
	CreateDataStorage(ctx context.Context, ds DataStorage) (DataStorage, error)
	DeleteDataStorage(ctx context.Context, id int64) error
}
