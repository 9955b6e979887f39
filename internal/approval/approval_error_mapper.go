package approval

import (
	"errors"

	approvalerrors "out-of-office/internal/approval/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const activeApprovalConstraint = "uq_approval_requests_active"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return approvalerrors.ErrApprovalNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == activeApprovalConstraint {
		return approvalerrors.ErrActiveApprovalExists
	}

	return err
}
