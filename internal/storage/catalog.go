package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jewelry/internal/domain"
)

var ErrCatalogItemNotFound = errors.New("catalog item not found")

// CatalogStore implements domain.CatalogStore using SQLite. Items keep the
// order they were loaded in.
type CatalogStore struct {
	db *DB
}

var _ domain.CatalogStore = (*CatalogStore)(nil)

func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) List() ([]domain.CatalogItem, error) {
	return s.query(`SELECT id, image, name FROM catalog_items ORDER BY sort_order ASC`)
}

// Search returns items whose name contains q, case-insensitively.
func (s *CatalogStore) Search(q string) ([]domain.CatalogItem, error) {
	like := "%" + strings.ToLower(q) + "%"
	return s.query(`SELECT id, image, name FROM catalog_items WHERE lower(name) LIKE ? ORDER BY sort_order ASC`, like)
}

func (s *CatalogStore) Get(id string) (*domain.CatalogItem, error) {
	it := &domain.CatalogItem{}
	err := s.db.Conn().QueryRow(
		`SELECT id, image, name FROM catalog_items WHERE id = ?`, id,
	).Scan(&it.ID, &it.Image, &it.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get catalog item %s: %w", id, ErrCatalogItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return it, nil
}

// Lookup is Get without the error, for hot paths that only branch on presence.
func (s *CatalogStore) Lookup(id string) (domain.CatalogItem, bool) {
	it, err := s.Get(id)
	if err != nil {
		return domain.CatalogItem{}, false
	}
	return *it, true
}

func (s *CatalogStore) Has(id string) bool {
	_, ok := s.Lookup(id)
	return ok
}

// ReplaceAll swaps the whole catalog in one transaction.
func (s *CatalogStore) ReplaceAll(items []domain.CatalogItem) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM catalog_items`); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	now := time.Now()
	for i, it := range items {
		_, err := tx.Exec(
			`INSERT INTO catalog_items (id, image, name, sort_order, updated_at) VALUES (?, ?, ?, ?, ?)`,
			it.ID, it.Image, it.Name, i, now,
		)
		if err != nil {
			return fmt.Errorf("insert catalog item %s: %w", it.ID, err)
		}
	}
	return tx.Commit()
}

func (s *CatalogStore) query(q string, args ...any) ([]domain.CatalogItem, error) {
	rows, err := s.db.Conn().Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.CatalogItem{}
	for rows.Next() {
		var it domain.CatalogItem
		if err := rows.Scan(&it.ID, &it.Image, &it.Name); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
