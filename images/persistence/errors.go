package persistence

import (
	"database/sql"
	"fmt"

	"github.com/dfryer1193/photogram/images/domain"
	"github.com/dfryer1193/photogram/shared/db"
)

// wrapWriteError tags constraint failures with domain.ErrConflict so the
// application layer can tell them apart from I/O errors.
func wrapWriteError(op string, err error) error {
	if db.IsConstraintViolation(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
