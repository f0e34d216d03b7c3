package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicateEnProceso matches violations of the partial unique index that
// forbids two non-terminal requests for one DNI. The service pre-checks
// before inserting, but the index closes the read-then-write race window.
func IsDuplicateEnProceso(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName == "uidx_homologaciones_dni_en_proceso"
	}
	return false
}
