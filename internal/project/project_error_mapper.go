package project

import (
	"errors"

	projecterrors "out-of-office/internal/project/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrProjectNotFound
	}
	return err
}

// mapDeleteError reports employees still pointing at the project as a
// conflict; the FK has no cascade.
func mapDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return projecterrors.ErrProjectInUse
	}
	return mapRepositoryError(err)
}
