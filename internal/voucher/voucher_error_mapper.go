package voucher

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	vouchererrors "github.com/azirkitai/utamaHR-sub001/internal/voucher/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_voucher_number" {
			return vouchererrors.ErrDuplicateVoucherNumber
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_voucher_number") {
		return vouchererrors.ErrDuplicateVoucherNumber
	}

	return err
}
