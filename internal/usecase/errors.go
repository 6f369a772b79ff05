package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "github.com/kargofit/crm/internal/repository"

	"go.uber.org/zap"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// repoError maps a repository error onto the HTTP taxonomy. Unknown errors
// are logged and reported as "db error".
func repoError(log *zap.Logger, op string, err error, notFound string, constraint string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) && notFound != "" {
		return NewHTTPError(http.StatusNotFound, notFound)
	}
	if errors.Is(err, repo.ErrConstraint) && constraint != "" {
		log.Warn(op+": constraint violation", zap.Error(err))
		return NewHTTPError(http.StatusBadRequest, constraint)
	}
	log.Error(op+" failed", zap.Error(err))
	return NewHTTPError(http.StatusInternalServerError, "db error")
}
