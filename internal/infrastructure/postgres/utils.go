package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/atelier-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isInvalidTextRepresentation verifica si un error es un valor mal formado para el tipo de columna (22P02),
// por ejemplo un id que no es UUID.
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02" // invalid_text_representation
	}
	return false
}

// isNoRows agrupa los casos que el repositorio reporta como "no encontrado" con (nil, nil).
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err)
}

// validUUID indica si todos los ids son UUID. pgx rechaza el argumento antes de llegar a
// PostgreSQL, así que el chequeo se hace antes de consultar.
func validUUID(ids ...string) bool {
	for _, id := range ids {
		if uuid.Validate(id) != nil {
			return false
		}
	}
	return true
}

// queryErr envuelve errores de consultas de listado; un id mal formado es un not found.
func queryErr(op string, err error) error {
	if isInvalidTextRepresentation(err) {
		return fmt.Errorf("%w: identificador inválido", domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
