package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"go.uber.org/zap"
)

type BikeUsecase struct {
	bikes repo.BikeRepository
	tx    repo.TransactionManager
	log   *zap.Logger
}

func NewBikeUsecase(bikes repo.BikeRepository, tx repo.TransactionManager, log *zap.Logger) *BikeUsecase {
	return &BikeUsecase{bikes: bikes, tx: tx, log: log}
}

// GroupedByBrand returns bike names per brand. Bikes without a brand are
// listed under model.BikeBrandOther.
func (u *BikeUsecase) GroupedByBrand(ctx context.Context) (map[string][]string, error) {
	bikes, err := u.bikes.ListOrdered(ctx)
	if err != nil {
		return nil, repoError(u.log, "list bikes", err, "", "")
	}
	grouped := make(map[string][]string)
	for _, b := range bikes {
		brand := b.Brand
		if strings.TrimSpace(brand) == "" {
			brand = model.BikeBrandOther
		}
		grouped[brand] = append(grouped[brand], b.Name)
	}
	return grouped, nil
}

// BikeModelEntry is one model line of the market catalog.
type BikeModelEntry struct {
	Model    string   `json:"model"`
	Variants []string `json:"variants"`
}

// MarketCatalog maps a brand to its models.
type MarketCatalog map[string][]BikeModelEntry

type BikeImportResult struct {
	Added   int
	Skipped int
}

// ImportMarketCatalog seeds bikes from catalog in one transaction: every
// model and every "<model> <variant>" becomes a bike keyed by name. Existing
// names are skipped but get their brand corrected.
func (u *BikeUsecase) ImportMarketCatalog(ctx context.Context, catalog MarketCatalog) (BikeImportResult, error) {
	brands := make([]string, 0, len(catalog))
	for brand := range catalog {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	var res BikeImportResult
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		res = BikeImportResult{}
		for _, brand := range brands {
			for _, entry := range catalog[brand] {
				if entry.Model == "" {
					continue
				}
				names := make([]string, 0, len(entry.Variants)+1)
				names = append(names, entry.Model)
				for _, v := range entry.Variants {
					names = append(names, entry.Model+" "+v)
				}

				for _, name := range names {
					existing, err := r.Bikes().FindByName(ctx, name)
					if errors.Is(err, repo.ErrNotFound) {
						if _, err := r.Bikes().Create(ctx, model.Bike{Name: name, Brand: brand, Model: entry.Model}); err != nil {
							return err
						}
						res.Added++
						continue
					}
					if err != nil {
						return err
					}
					res.Skipped++
					if existing.Brand != brand {
						if err := r.Bikes().UpdateBrand(ctx, existing.ID, brand); err != nil {
							return err
						}
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		u.log.Error("bike catalog import failed", zap.Error(err))
		return BikeImportResult{}, err
	}
	return res, nil
}
