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
)

const (
	msgExchangeNotFound       = "stock.exchange.not.found"
	msgStockAlreadyInExchange = "stock.already.exists.in.exchange"
	msgStockNotInExchange     = "stock.not.found.in.exchange"
)

// exchangeService implements the ExchangeSvcFacade interface
type exchangeService struct {
	BaseService
	exchangeRepo  portsrepo.ExchangeRepositoryFacade
	stockRepo     portsrepo.StockReader
	versionPolicy retry.Policy
}

// ExchangeServiceOption is a functional option for configuring the exchange service
type ExchangeServiceOption func(*exchangeService)

// WithExchangeVersionPolicy replaces the default optimistic locking retry budget
func WithExchangeVersionPolicy(p retry.Policy) ExchangeServiceOption {
	return func(s *exchangeService) {
		s.versionPolicy = p
	}
}

// NewExchangeService creates a new exchange service with the provided options
func NewExchangeService(
	exchangeRepo portsrepo.ExchangeRepositoryFacade,
	stockRepo portsrepo.StockReader,
	txManager portsrepo.TransactionManager,
	options ...ExchangeServiceOption,
) portssvc.ExchangeSvcFacade {
	svc := &exchangeService{
		BaseService:   BaseService{TxManager: txManager},
		exchangeRepo:  exchangeRepo,
		stockRepo:     stockRepo,
		versionPolicy: retry.VersionPolicy(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure exchangeService implements the ExchangeSvcFacade interface
var _ portssvc.ExchangeSvcFacade = (*exchangeService)(nil)

func (s *exchangeService) GetExchange(ctx context.Context, name string) (*domain.Exchange, error) {
	var found *domain.Exchange
	err := s.TxManager.WithTransaction(ctx, func(ctx context.Context) error {
		ex, err := s.findExchange(ctx, name)
		if err != nil {
			return err
		}
		found = ex
		return nil
	})
	if err != nil {
		return nil, s.SurfaceError(ctx, err, "Failed to get exchange", slog.String("exchange", name))
	}
	return found, nil
}

// membershipChange mutates the loaded exchange after the guards passed.
type membershipChange func(ex *domain.Exchange, stock *domain.Stock) error

func (s *exchangeService) AddStockToExchange(ctx context.Context, name string, stockID int64) (*domain.Exchange, error) {
	return s.mutateMembership(ctx, "add", name, stockID, func(ex *domain.Exchange, stock *domain.Stock) error {
		// re-evaluated on every attempt, so a competing add that won the race surfaces here
		if ex.HasMember(stock.ID) {
			return apperrors.NewAlreadyMemberError(msgStockAlreadyInExchange, stock.ID)
		}
		ex.AddMember(*stock)
		return nil
	})
}

func (s *exchangeService) RemoveStockFromExchange(ctx context.Context, name string, stockID int64) (*domain.Exchange, error) {
	return s.mutateMembership(ctx, "remove", name, stockID, func(ex *domain.Exchange, stock *domain.Stock) error {
		if !ex.HasMember(stock.ID) {
			return apperrors.NewNotFoundError(msgStockNotInExchange)
		}
		ex.RemoveMember(stock.ID)
		return nil
	})
}

// mutateMembership loads the exchange and the stock, applies change and persists the exchange,
// all inside one transaction retried on stale versions.
func (s *exchangeService) mutateMembership(ctx context.Context, op, name string, stockID int64, change membershipChange) (*domain.Exchange, error) {
	var updated *domain.Exchange
	err := s.RunInTx(ctx, s.versionPolicy, func(ctx context.Context) error {
		ex, err := s.findExchange(ctx, name)
		if err != nil {
			return err
		}

		stock, err := s.stockRepo.FindStockByID(ctx, stockID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError(msgStockNotFound, stockID)
			}
			return err
		}

		working := ex.Clone()
		if err := change(&working, stock); err != nil {
			return err
		}

		saved, err := s.exchangeRepo.SaveExchange(ctx, working)
		if err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, s.SurfaceError(ctx, err, "Failed to "+op+" exchange membership",
			slog.String("exchange", name),
			slog.Int64("stock_id", stockID))
	}

	s.LogInfo(ctx, "Exchange membership updated",
		slog.String("op", op),
		slog.String("exchange", updated.Name),
		slog.Int64("stock_id", stockID),
		slog.Int("members", len(updated.Members)),
		slog.Bool("live_in_market", updated.LiveInMarket),
		slog.Int("version", updated.Version))
	return updated, nil
}

func (s *exchangeService) findExchange(ctx context.Context, name string) (*domain.Exchange, error) {
	ex, err := s.exchangeRepo.FindExchangeByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgExchangeNotFound, name)
		}
		return nil, err
	}
	return ex, nil
}
