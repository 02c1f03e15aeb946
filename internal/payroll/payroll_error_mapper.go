package payroll

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	payrollerrors "github.com/azirkitai/utamaHR-sub001/internal/payroll/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_period" {
			return payrollerrors.ErrDuplicatePeriod
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payroll_period") {
		return payrollerrors.ErrDuplicatePeriod
	}

	return err
}
