package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/rewards-store/internal/domain"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx: los repos funcionan igual dentro o fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeInvalidText          = "22P02"
	codeNumericOutOfRange    = "22003"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }

// isInvalidID: un id que no es UUID válido no puede existir.
func isInvalidID(err error) bool { return pgCode(err) == codeInvalidText }

// validID evita enviar a la DB ids que no son UUID: el error 22P02 abortaría la tx en curso.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// wrapErr envuelve err con la operación y, si el SQLSTATE es conocido, con el error de dominio
// correspondiente (errors.Is funciona sobre ambos).
func wrapErr(op string, err error) error {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected, codeCheckViolation, codeForeignKeyViolation:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConflict, err)
	case codeUniqueViolation:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
	case codeNumericOutOfRange:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
