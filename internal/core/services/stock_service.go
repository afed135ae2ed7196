package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/stock_exchange_app/internal/core/retry"
	"github.com/SscSPs/stock_exchange_app/internal/dto"
)

const (
	msgStockNotFound      = "stock.not.found"
	msgStockAlreadyExists = "stock.already.exists"
)

// stockService implements the StockSvcFacade interface
type stockService struct {
	BaseService
	stockRepo     portsrepo.StockRepositoryFacade
	versionPolicy retry.Policy
	uniquePolicy  retry.Policy
}

// StockServiceOption is a functional option for configuring the stock service
type StockServiceOption func(*stockService)

// WithStockRetryPolicies replaces the default retry budgets
func WithStockRetryPolicies(p RetryPolicies) StockServiceOption {
	return func(s *stockService) {
		s.versionPolicy = p.Version
		s.uniquePolicy = p.Unique
	}
}

// NewStockService creates a new stock service with the provided options
func NewStockService(repo portsrepo.StockRepositoryFacade, txManager portsrepo.TransactionManager, options ...StockServiceOption) portssvc.StockSvcFacade {
	defaults := DefaultRetryPolicies()
	svc := &stockService{
		BaseService:   BaseService{TxManager: txManager},
		stockRepo:     repo,
		versionPolicy: defaults.Version,
		uniquePolicy:  defaults.Unique,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure stockService implements the StockSvcFacade interface
var _ portssvc.StockSvcFacade = (*stockService)(nil)

func (s *stockService) CreateStock(ctx context.Context, req dto.CreateStockRequest) (*domain.Stock, error) {
	var created *domain.Stock
	err := s.RunInTx(ctx, s.uniquePolicy, func(ctx context.Context) error {
		if err := s.ensureNameAvailable(ctx, req.Name); err != nil {
			return err
		}
		saved, err := s.stockRepo.SaveStock(ctx, domain.Stock{
			Name:         req.Name,
			Description:  req.Description,
			CurrentPrice: *req.CurrentPrice,
		})
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			// every attempt collided; report the name as taken only if it really is
			if dupErr := s.ensureNameAvailable(ctx, req.Name); apperrors.KindOf(dupErr) == apperrors.KindAlreadyExists {
				return nil, dupErr
			}
		}
		return nil, s.SurfaceError(ctx, err, "Failed to create stock", slog.String("name", req.Name))
	}

	s.LogInfo(ctx, "Stock created", slog.Int64("stock_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

func (s *stockService) ensureNameAvailable(ctx context.Context, name string) error {
	_, err := s.stockRepo.FindStockByName(ctx, name)
	switch {
	case err == nil:
		return apperrors.NewDuplicateError(msgStockAlreadyExists, name)
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *stockService) UpdateStockPrice(ctx context.Context, req dto.UpdateStockPriceRequest) (*domain.Stock, error) {
	var updated *domain.Stock
	err := s.RunInTx(ctx, s.versionPolicy, func(ctx context.Context) error {
		stock, err := s.findStock(ctx, req.ID)
		if err != nil {
			return err
		}
		stock.CurrentPrice = *req.CurrentPrice
		saved, err := s.stockRepo.SaveStock(ctx, *stock)
		if err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, s.SurfaceError(ctx, err, "Failed to update stock price", slog.Int64("stock_id", req.ID))
	}

	s.LogInfo(ctx, "Stock price updated",
		slog.Int64("stock_id", updated.ID),
		slog.String("price", updated.CurrentPrice.StringFixed(2)),
		slog.Int("version", updated.Version))
	return updated, nil
}

func (s *stockService) DeleteStock(ctx context.Context, stockID int64) error {
	err := s.RunInTx(ctx, s.versionPolicy, func(ctx context.Context) error {
		stock, err := s.findStock(ctx, stockID)
		if err != nil {
			return err
		}
		return s.stockRepo.DeleteStock(ctx, *stock)
	})
	if err != nil {
		return s.SurfaceError(ctx, err, "Failed to delete stock", slog.Int64("stock_id", stockID))
	}

	s.LogInfo(ctx, "Stock deleted", slog.Int64("stock_id", stockID))
	return nil
}

func (s *stockService) GetStockByID(ctx context.Context, stockID int64) (*domain.Stock, error) {
	stock, err := s.findStock(ctx, stockID)
	if err != nil {
		return nil, s.SurfaceError(ctx, err, "Failed to get stock", slog.Int64("stock_id", stockID))
	}
	return stock, nil
}

// findStock loads a stock, reporting a missing one as NOT_FOUND.
func (s *stockService) findStock(ctx context.Context, stockID int64) (*domain.Stock, error) {
	stock, err := s.stockRepo.FindStockByID(ctx, stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgStockNotFound, stockID)
		}
		return nil, err
	}
	return stock, nil
}
