package store

import (
	"database/sql"
	"errors"

	"github.com/dansdevelopments/catalog-admin/internal/models"
)

func (s *Store) CreateProduct(p *models.Product) error {
	query := `
		INSERT INTO products (name, sku, price, description, featured, category_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, p.Name, p.SKU, p.Price, p.Description, p.Featured, p.CategoryID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

func (s *Store) GetAllProducts() ([]models.Product, error) {
	query := `SELECT p.id, p.name, p.sku, p.price, COALESCE(p.description, '') as description,
	                 p.featured, p.category_id, c.name, p.created_at
	          FROM products p
	          JOIN categories c ON c.id = p.category_id
	          ORDER BY p.created_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Description, &p.Featured, &p.CategoryID, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetFeaturedProducts returns up to limit featured products in random order.
func (s *Store) GetFeaturedProducts(limit int) ([]models.Product, error) {
	query := `SELECT p.id, p.name, p.sku, p.price, COALESCE(p.description, '') as description,
	                 p.featured, p.category_id, c.name, p.created_at
	          FROM products p
	          JOIN categories c ON c.id = p.category_id
	          WHERE p.featured = 1
	          ORDER BY RANDOM()
	          LIMIT ?`
	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Description, &p.Featured, &p.CategoryID, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT p.id, p.name, p.sku, p.price, COALESCE(p.description, '') as description,
	                 p.featured, p.category_id, c.name, p.created_at
	          FROM products p
	          JOIN categories c ON c.id = p.category_id
	          WHERE p.id = ?`
	var p models.Product
	err := s.DB.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Description, &p.Featured, &p.CategoryID, &p.Category, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProduct(p *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, sku = ?, price = ?, description = ?, category_id = ?
		WHERE id = ?
	`
	_, err := s.DB.Exec(query, p.Name, p.SKU, p.Price, p.Description, p.CategoryID, p.ID)
	return err
}

func (s *Store) SetProductFeatured(id int, featured bool) error {
	query := `UPDATE products SET featured = ? WHERE id = ?`
	_, err := s.DB.Exec(query, featured, id)
	return err
}

// DeleteProduct removes the product and its images in one transaction.
func (s *Store) DeleteProduct(id int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
