package policy

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	policyerrors "github.com/azirkitai/utamaHR-sub001/internal/policy/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_claim_policy_category" {
			return policyerrors.ErrClaimPolicyCategoryExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_claim_policy_category") {
		return policyerrors.ErrClaimPolicyCategoryExists
	}

	return err
}
