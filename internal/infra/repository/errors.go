package repository

import (
	"errors"
	"fmt"

	repo "github.com/kargofit/crm/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres SQLSTATE codes mapped to repo.ErrConstraint
var constraintCodes = map[string]bool{
	"23502": true, // not_null_violation
	"23503": true, // foreign_key_violation
	"23505": true, // unique_violation
}

// translateError maps not-found and constraint failures onto the repository
// sentinels and passes every other error through.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", repo.ErrConstraint, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && constraintCodes[pgErr.Code] {
		return fmt.Errorf("%w: %s", repo.ErrConstraint, pgErr.Message)
	}
	return err
}

// likeContains builds a LIKE pattern matching s as a literal substring.
func likeContains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
