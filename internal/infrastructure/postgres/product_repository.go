package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
	"github.com/jhoicas/rewards-store/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, category, image_url, points_cost, stock, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	db Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.ImageURL, p.PointsCost, p.Stock, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "lock product", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza los campos editables del producto. El stock no se toca: solo cambia por UpdateStock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, image_url = $5,
		    points_cost = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.ImageURL, p.PointsCost, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStock escribe el stock (CHECK stock >= 0).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET stock = $2, updated_at = NOW() WHERE id = $1`, id, stock)
	if err != nil {
		return wrapErr("update product stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista productos por nombre con filtro opcional de activo.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1::boolean IS NULL OR is_active = $1)
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, filter.Active, limitOrAll(filter.Limit), filter.Offset)
	if err != nil {
		return nil, wrapErr("list products", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el producto; con líneas de pedido el FK ON DELETE RESTRICT lo impide.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrProductNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductInUse
		}
		return wrapErr("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.ImageURL,
		&p.PointsCost, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
