package store

import (
	"github.com/dansdevelopments/catalog-admin/internal/models"
)

func (s *Store) GetProductImages(productID int) ([]models.ProductImage, error) {
	rows, err := s.DB.Query(`SELECT id, product_id, url FROM product_images WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.ProductImage
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *Store) CreateProductImage(productID int, url string) error {
	_, err := s.DB.Exec(`INSERT INTO product_images (product_id, url) VALUES (?, ?)`, productID, url)
	return err
}

// ReconcileProductImages makes the stored image set for a product equal urls.
// Images no longer submitted are deleted, new ones inserted, and urls present
// on both sides are left untouched. Deletion is keyed by (product, url) so a
// url shared with another product is never affected.
func (s *Store) ReconcileProductImages(productID int, urls []string) error {
	current, err := s.GetProductImages(productID)
	if err != nil {
		return err
	}

	submitted := make(map[string]bool, len(urls))
	for _, u := range urls {
		submitted[u] = true
	}
	existing := make(map[string]bool, len(current))
	for _, img := range current {
		existing[img.URL] = true
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	for _, img := range current {
		if !submitted[img.URL] {
			if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = ? AND url = ?`, productID, img.URL); err != nil {
				tx.Rollback()
				return err
			}
		}
	}
	for _, u := range urls {
		if !existing[u] {
			if _, err := tx.Exec(`INSERT INTO product_images (product_id, url) VALUES (?, ?)`, productID, u); err != nil {
				tx.Rollback()
				return err
			}
			// A url submitted in two fields must still end up as one row.
			existing[u] = true
		}
	}
	return tx.Commit()
}
