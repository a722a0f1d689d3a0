package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isSerializationFailure detecta fallas de serialización o deadlock
// (40001, 40P01): dos escritores compitiendo por la misma fila de inventario.
// El caso de uso las reintenta un número acotado de veces.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
