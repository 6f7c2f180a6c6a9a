package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) ListLanguages(ctx context.Context) ([]Language, error) {
	const query = `
SELECT id, name, entry_threshold, execution_model, popularity, purpose, created_at
FROM languages
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Language{}
	for rows.Next() {
		var lang Language
		if err := rows.Scan(&lang.ID, &lang.Name, &lang.EntryThreshold, &lang.ExecutionModel, &lang.Popularity, &lang.Purpose, &lang.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, lang)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetLanguage(ctx context.Context, id int64) (Language, error) {
	const query = `
SELECT id, name, entry_threshold, execution_model, popularity, purpose, created_at
FROM languages
WHERE id = $1
LIMIT 1`
	var lang Language
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&lang.ID, &lang.Name, &lang.EntryThreshold, &lang.ExecutionModel, &lang.Popularity, &lang.Purpose, &lang.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Language{}, ErrNotFound
		}
		return Language{}, err
	}
	return lang, nil
}

func (r *PGRepo) CreateLanguage(ctx context.Context, lang Language) (Language, error) {
	const query = `
INSERT INTO languages (name, entry_threshold, execution_model, popularity, purpose, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, lang.Name, lang.EntryThreshold, lang.ExecutionModel, lang.Popularity, lang.Purpose).
		Scan(&lang.ID, &lang.CreatedAt)
	if err != nil {
		return Language{}, err
	}
	return lang, nil
}

func (r *PGRepo) DeleteLanguage(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "DELETE FROM languages WHERE id = $1", id)
}

func (r *PGRepo) ListFrameworks(ctx context.Context) ([]Framework, error) {
	const query = `
SELECT id, name, language_ids, is_reactive, is_actual, tasks_type, last_updated_at, created_at
FROM frameworks
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Framework{}
	for rows.Next() {
		fw, err := scanFramework(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fw)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetFramework(ctx context.Context, id int64) (Framework, error) {
	const query = `
SELECT id, name, language_ids, is_reactive, is_actual, tasks_type, last_updated_at, created_at
FROM frameworks
WHERE id = $1
LIMIT 1`
	fw, err := scanFramework(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Framework{}, ErrNotFound
		}
		return Framework{}, err
	}
	return fw, nil
}

func (r *PGRepo) CreateFramework(ctx context.Context, fw Framework) (Framework, error) {
	ids, err := json.Marshal(fw.LanguageIDs)
	if err != nil {
		return Framework{}, err
	}
	const query = `
INSERT INTO frameworks (name, language_ids, is_reactive, is_actual, tasks_type, last_updated_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING id, created_at`
	err = r.DB.QueryRowContext(ctx, query, fw.Name, ids, fw.IsReactive, fw.IsActual, fw.TasksType, fw.LastUpdatedAt).
		Scan(&fw.ID, &fw.CreatedAt)
	if err != nil {
		return Framework{}, err
	}
	return fw, nil
}

func (r *PGRepo) DeleteFramework(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "DELETE FROM frameworks WHERE id = $1", id)
}

func (r *PGRepo) ListDataStorages(ctx context.Context) ([]DataStorage, error) {
	const query = `
SELECT id, name, storage_type, storage_location, database_type, created_at
FROM data_storages
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DataStorage{}
	for rows.Next() {
		var ds DataStorage
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.StorageType, &ds.StorageLocation, &ds.DatabaseType, &ds.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetDataStorage(ctx context.Context, id int64) (DataStorage, error) {
	const query = `
SELECT id, name, storage_type, storage_location, database_type, created_at
FROM data_storages
WHERE id = $1
LIMIT 1`
	var ds DataStorage
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&ds.ID, &ds.Name, &ds.StorageType, &ds.StorageLocation, &ds.DatabaseType, &ds.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DataStorage{}, ErrNotFound
		}
		return DataStorage{}, err
	}
	return ds, nil
}

func (r *PGRepo) CreateDataStorage(ctx context.Context, ds DataStorage) (DataStorage, error) {
	const query = `
INSERT INTO data_storages (name, storage_type, storage_location, database_type, created_at)
VALUES ($1, $2, $3, $4, now())
RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, ds.Name, ds.StorageType, ds.StorageLocation, ds.DatabaseType).
		Scan(&ds.ID, &ds.CreatedAt)
	if err != nil {
		return DataStorage{}, err
	}
	return ds, nil
}

func (r *PGRepo) DeleteDataStorage(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "DELETE FROM data_storages WHERE id = $1", id)
}

func (r *PGRepo) deleteByID(ctx context.Context, query string, id int64) error {
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFramework(row rowScanner) (Framework, error) {
	var fw Framework
	var rawIDs []byte
	var lastUpdated sql.NullTime
	if err := row.Scan(&fw.ID, &fw.Name, &rawIDs, &fw.IsReactive, &fw.IsActual, &fw.TasksType, &lastUpdated, &fw.CreatedAt); err != nil {
		return Framework{}, err
	}
	fw.LanguageIDs = []int64{}
	if len(rawIDs) > 0 {
		if err := json.Unmarshal(rawIDs, &fw.LanguageIDs); err != nil {
			return Framework{}, err
		}
	}
	if lastUpdated.Valid {
		t := lastUpdated.Time
		fw.LastUpdatedAt = &t
	}
	return fw, nil
}
