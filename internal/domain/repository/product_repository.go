package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"wings_cafe/internal/common"
	"wings_cafe/internal/domain/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	// DecrementQuantity atomically reduces quantity by amount, refusing to
	// go below zero. Returns common.ErrNotFound when no row matched, which
	// covers both an unknown id and insufficient stock; callers that need
	// to tell the two apart should follow up with FindByID.
	DecrementQuantity(ctx context.Context, id int64, amount int) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

type pgProductRepository struct {
	db *sql.DB
}

func NewPgProductRepository(db *sql.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

func (r *pgProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (name, description, category, price, quantity)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Category, p.Price, p.Quantity).
		Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products
	          SET name = $1, description = $2, category = $3, price = $4, quantity = $5
	          WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Category, p.Price, p.Quantity, p.ID)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgProductRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT id, name, description, category, price, quantity
	          FROM products WHERE id = $1`
	product := &model.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.Category, &product.Price, &product.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.FindByID: %w", err)
	}
	return product, nil
}

func (r *pgProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT id, name, description, category, price, quantity
	          FROM products`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgProductRepository.List: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Quantity); err != nil {
			return nil, fmt.Errorf("pgProductRepository.List scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProductRepository.List rows: %w", err)
	}
	return products, nil
}

func (r *pgProductRepository) DecrementQuantity(ctx context.Context, id int64, amount int) (*model.Product, error) {
	// Single conditional update so concurrent sells cannot drive the
	// quantity negative: the check and the write commit together.
	query := `UPDATE products
	          SET quantity = quantity - $2
	          WHERE id = $1 AND quantity >= $2
	          RETURNING id, name, description, category, price, quantity`
	product := &model.Product{}
	err := r.db.QueryRowContext(ctx, query, id, amount).Scan(
		&product.ID, &product.Name, &product.Description, &product.Category, &product.Price, &product.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.DecrementQuantity: %w", err)
	}
	return product, nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
