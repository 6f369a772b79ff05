package usecase

import (
	"net/http"

	repo "github.com/kargofit/crm/internal/repository"

	"go.uber.org/zap"
)

type CatalogUsecase struct {
	source repo.CatalogSource
	log    *zap.Logger
}

func NewCatalogUsecase(source repo.CatalogSource, log *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{source: source, log: log}
}

func (u *CatalogUsecase) Options() (repo.CatalogOptions, error) {
	opts, err := u.source.Load()
	if err != nil {
		u.log.Error("load catalog options failed", zap.Error(err))
		return repo.CatalogOptions{}, NewHTTPError(http.StatusInternalServerError, "Error loading catalog options")
	}
	return opts, nil
}
