package store

import (
	"database/sql"
	"errors"

	"github.com/dansdevelopments/catalog-admin/internal/models"
)

func (s *Store) GetAllCategories() ([]models.Category, error) {
	rows, err := s.DB.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategoryByName looks a category up by its exact name, as submitted in forms.
func (s *Store) GetCategoryByName(name string) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRow(`SELECT id, name FROM categories WHERE name = ?`, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CreateCategory is mainly for seeding via the cli
func (s *Store) CreateCategory(name string) error {
	_, err := s.DB.Exec(`INSERT INTO categories (name) VALUES (?)`, name)
	return err
}
