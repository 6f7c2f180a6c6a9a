package catalog

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu           sync.RWMutex
	nextID       int64
	languages    map[int64]Language
	frameworks   map[int64]Framework
	dataStorages map[int64]DataStorage
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID:       1,
		languages:    make(map[int64]Language),
		frameworks:   make(map[int64]Framework),
		dataStorages: make(map[int64]DataStorage),
	}
}

func (r *MemoryRepo) ListLanguages(ctx context.Context) ([]Language, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Language, 0, len(r.languages))
	for _, lang := range r.languages {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) GetLanguage(ctx context.Context, id int64) (Language, error) {
	if err := ctx.Err(); err != nil {
		return Language{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lang, ok := r.languages[id]
	if !ok {
		return Language{}, ErrNotFound
	}
	return lang, nil
}

func (r *MemoryRepo) CreateLanguage(ctx context.Context, lang Language) (Language, error) {
	if err := ctx.Err(); err != nil {
		return Language{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	lang.ID = r.nextID
	r.nextID++
	lang.CreatedAt = time.Now().UTC()
	r.languages[lang.ID] = lang
	return lang, nil
}

func (r *MemoryRepo) DeleteLanguage(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.languages[id]; !ok {
		return ErrNotFound
	}
	delete(r.languages, id)
	return nil
}

func (r *MemoryRepo) ListFrameworks(ctx context.Context) ([]Framework, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Framework, 0, len(r.frameworks))
	for _, fw := range r.frameworks {
		out = append(out, fw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) GetFramework(ctx context.Context, id int64) (Framework, error) {
	if err := ctx.Err(); err != nil {
		return Framework{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fw, ok := r.frameworks[id]
	if !ok {
		return Framework{}, ErrNotFound
	}
	return fw, nil
}

func (r *MemoryRepo) CreateFramework(ctx context.Context, fw Framework) (Framework, error) {
	if err := ctx.Err(); err != nil {
		return Framework{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fw.ID = r.nextID
	r.nextID++
	fw.CreatedAt = time.Now().UTC()
	if fw.LanguageIDs == nil {
		fw.LanguageIDs = []int64{}
	}
	r.frameworks[fw.ID] = fw
	return fw, nil
}

func (r *MemoryRepo) DeleteFramework(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.frameworks[id]; !ok {
		return ErrNotFound
	}
	delete(r.frameworks, id)
	return nil
}

func (r *MemoryRepo) ListDataStorages(ctx context.Context) ([]DataStorage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DataStorage, 0, len(r.dataStorages))
	for _, ds := range r.dataStorages {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) GetDataStorage(ctx context.Context, id int64) (DataStorage, error) {
	if err := ctx.Err(); err != nil {
		return DataStorage{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.dataStorages[id]
	if !ok {
		return DataStorage{}, ErrNotFound
	}
	return ds, nil
}

func (r *MemoryRepo) CreateDataStorage(ctx context.Context, ds DataStorage) (DataStorage, error) {
	if err := ctx.Err(); err != nil {
		return DataStorage{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ds.ID = r.nextID
	r.nextID++
	ds.CreatedAt = time.Now().UTC()
	r.dataStorages[ds.ID] = ds
	return ds, nil
}

func (r *MemoryRepo) DeleteDataStorage(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dataStorages[id]; !ok {
		return ErrNotFound
	}
	delete(r.dataStorages, id)
	return nil
}
