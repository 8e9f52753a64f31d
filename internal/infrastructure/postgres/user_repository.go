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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, department, image_url, role, status, points, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador; db puede ser el pool o una tx.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Department, user.ImageURL,
		user.Role, user.Status, user.Points, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return wrapErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetForUpdate obtiene el usuario bloqueando la fila hasta el fin de la tx.
func (r *UserRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "lock user", `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

// GetByEmail obtiene un usuario por email (se guarda en minúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// Update actualiza perfil, rol, estado y hash. No escribe points.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, department = $5, image_url = $6,
		    role = $7, status = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Department, user.ImageURL,
		user.Role, user.Status, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return wrapErr("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePoints escribe el saldo cacheado (CHECK points >= 0).
func (r *UserRepo) UpdatePoints(ctx context.Context, id string, points int) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET points = $2, updated_at = NOW() WHERE id = $1`, id, points)
	if err != nil {
		return wrapErr("update user points", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista usuarios por nombre con filtro opcional de rol.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = '' OR role = $1)
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, filter.Role, limitOrAll(filter.Limit), filter.Offset)
	if err != nil {
		return nil, wrapErr("list users", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UserRepo) ExistsByRole(ctx context.Context, role string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, role).Scan(&exists)
	if err != nil {
		return false, wrapErr("exists user by role", err)
	}
	return exists, nil
}

// Delete elimina el usuario. Los FK ON DELETE RESTRICT de pedidos y ledger lo impiden si hay historial.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrUserNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserInUse
		}
		return wrapErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Department, &u.ImageURL,
		&u.Role, &u.Status, &u.Points, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// limitOrAll traduce 0 a sin límite (LIMIT NULL).
func limitOrAll(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
