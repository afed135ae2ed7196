package memory

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store     *Store
	stocks    *StockRepository
	exchanges *ExchangeRepository
	clock     time.Time
}

func (s *StoreTestSuite) SetupTest() {
	s.clock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewStore(
		WithClock(func() time.Time { return s.clock }),
		WithSeedExchanges(DefaultExchanges...),
	)
	provider := NewRepositoryProvider(s.store)
	s.stocks = provider.StockRepo.(*StockRepository)
	s.exchanges = provider.ExchangeRepo.(*ExchangeRepository)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) newStock(name string) *domain.Stock {
	saved, err := s.stocks.SaveStock(context.Background(), domain.Stock{
		Name:         name,
		Description:  name + " inc",
		CurrentPrice: decimal.RequireFromString("10.00"),
	})
	s.Require().NoError(err)
	return saved
}

func (s *StoreTestSuite) list(exchangeName string, stocks ...*domain.Stock) *domain.Exchange {
	ctx := context.Background()
	ex, err := s.exchanges.FindExchangeByName(ctx, exchangeName)
	s.Require().NoError(err)
	for _, st := range stocks {
		ex.AddMember(*st)
	}
	saved, err := s.exchanges.SaveExchange(ctx, *ex)
	s.Require().NoError(err)
	return saved
}

func (s *StoreTestSuite) TestSeededExchanges() {
	for _, seed := range DefaultExchanges {
		ex, err := s.exchanges.FindExchangeByName(context.Background(), seed.Name)
		s.Require().NoError(err)
		s.Equal(seed.Description, ex.Description)
		s.Empty(ex.Members)
		s.False(ex.LiveInMarket)
		s.Equal(0, ex.Version)
	}
}

func (s *StoreTestSuite) TestSaveStock_InsertAssignsIDAndStamp() {
	saved := s.newStock("AAPL")

	s.Equal(int64(1), saved.ID)
	s.Equal(0, saved.Version)
	s.Equal(s.clock, saved.LastUpdate)

	found, err := s.stocks.FindStockByName(context.Background(), "AAPL")
	s.Require().NoError(err)
	s.Equal(*saved, *found)
}

func (s *StoreTestSuite) TestSaveStock_UpdateAdvancesVersionAndTimestamp() {
	saved := s.newStock("AAPL")
	s.clock = s.clock.Add(1500 * time.Microsecond)

	saved.CurrentPrice = decimal.RequireFromString("99.99")
	updated, err := s.stocks.SaveStock(context.Background(), *saved)
	s.Require().NoError(err)

	s.Equal(1, updated.Version)
	s.True(updated.LastUpdate.After(saved.LastUpdate))
	s.Equal(updated.LastUpdate, updated.LastUpdate.Truncate(time.Millisecond))
}

func (s *StoreTestSuite) TestSaveStock_LastUpdateNeverMovesBackwards() {
	saved := s.newStock("AAPL")
	s.clock = s.clock.Add(-time.Hour)

	updated, err := s.stocks.SaveStock(context.Background(), *saved)
	s.Require().NoError(err)
	s.Equal(saved.LastUpdate, updated.LastUpdate)
}

func (s *StoreTestSuite) TestSaveStock_StaleVersion() {
	saved := s.newStock("AAPL")
	_, err := s.stocks.SaveStock(context.Background(), *saved)
	s.Require().NoError(err)

	_, err = s.stocks.SaveStock(context.Background(), *saved)
	s.ErrorIs(err, apperrors.ErrStaleVersion)
}

func (s *StoreTestSuite) TestSaveStock_DuplicateName() {
	s.newStock("AAPL")
	_, err := s.stocks.SaveStock(context.Background(), domain.Stock{Name: "AAPL", CurrentPrice: decimal.NewFromInt(1)})
	s.ErrorIs(err, apperrors.ErrUniqueViolation)
}

func (s *StoreTestSuite) TestFind_NotFound() {
	_, err := s.stocks.FindStockByID(context.Background(), 42)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.stocks.FindStockByName(context.Background(), "nope")
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.exchanges.FindExchangeByName(context.Background(), "nope")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveExchange_PersistsMembersAndLiveness() {
	var stocks []*domain.Stock
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		stocks = append(stocks, s.newStock(name))
	}

	saved := s.list("NASDAQ", stocks[:4]...)
	s.False(saved.LiveInMarket)
	s.Equal(1, saved.Version)

	saved = s.list("NASDAQ", stocks[4])
	s.True(saved.LiveInMarket)
	s.Equal(2, saved.Version)
	s.Equal([]int64{1, 2, 3, 4, 5}, saved.MemberIDs())

	reloaded, err := s.exchanges.FindExchangeByName(context.Background(), "NASDAQ")
	s.Require().NoError(err)
	s.Equal(saved.MemberIDs(), reloaded.MemberIDs())
	s.True(reloaded.LiveInMarket)
}

func (s *StoreTestSuite) TestSaveExchange_StaleVersion() {
	st := s.newStock("AAPL")
	ex, err := s.exchanges.FindExchangeByName(context.Background(), "NYSE")
	s.Require().NoError(err)

	s.list("NYSE", st)

	ex.AddMember(*st)
	_, err = s.exchanges.SaveExchange(context.Background(), *ex)
	s.ErrorIs(err, apperrors.ErrStaleVersion)
}

func (s *StoreTestSuite) TestDeleteStock_CascadesToEveryExchange() {
	var stocks []*domain.Stock
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		stocks = append(stocks, s.newStock(name))
	}
	s.list("NASDAQ", stocks...)
	s.list("LSE", stocks[0], stocks[1])

	err := s.stocks.DeleteStock(context.Background(), *stocks[0])
	s.Require().NoError(err)

	_, err = s.stocks.FindStockByID(context.Background(), stocks[0].ID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	nasdaq, err := s.exchanges.FindExchangeByName(context.Background(), "NASDAQ")
	s.Require().NoError(err)
	s.False(nasdaq.HasMember(stocks[0].ID))
	s.False(nasdaq.LiveInMarket)
	s.Equal(2, nasdaq.Version)

	lse, err := s.exchanges.FindExchangeByName(context.Background(), "LSE")
	s.Require().NoError(err)
	s.Equal([]int64{stocks[1].ID}, lse.MemberIDs())
}

func (s *StoreTestSuite) TestTransaction_RollbackDiscardsWrites() {
	ctx := context.Background()
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := s.stocks.SaveStock(ctx, domain.Stock{Name: "AAPL", CurrentPrice: decimal.NewFromInt(1)})
		s.Require().NoError(err)

		_, err = s.stocks.FindStockByName(ctx, "AAPL")
		s.Require().NoError(err)
		return apperrors.ErrValidation
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.stocks.FindStockByName(ctx, "AAPL")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestTransaction_SnapshotIsolation() {
	ctx := context.Background()
	st := s.newStock("AAPL")

	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		before, err := s.stocks.FindStockByID(ctx, st.ID)
		s.Require().NoError(err)

		// concurrent writer commits outside this transaction
		_, err = s.stocks.SaveStock(context.Background(), *st)
		s.Require().NoError(err)

		after, err := s.stocks.FindStockByID(ctx, st.ID)
		s.Require().NoError(err)
		s.Equal(before.Version, after.Version)
		return nil
	})
	s.NoError(err)
}

func (s *StoreTestSuite) TestCommit_FirstCommitterWins() {
	ctx := context.Background()
	st := s.newStock("AAPL")

	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		loaded, err := s.stocks.FindStockByID(ctx, st.ID)
		s.Require().NoError(err)
		loaded.CurrentPrice = decimal.RequireFromString("1.00")
		_, err = s.stocks.SaveStock(ctx, *loaded)
		s.Require().NoError(err)

		_, err = s.stocks.SaveStock(context.Background(), *st)
		s.Require().NoError(err)
		return nil
	})
	s.ErrorIs(err, apperrors.ErrStaleVersion)

	current, err := s.stocks.FindStockByID(ctx, st.ID)
	s.Require().NoError(err)
	s.True(current.CurrentPrice.Equal(decimal.RequireFromString("10.00")))
}

func (s *StoreTestSuite) TestCommit_UniqueNameAcrossTransactions() {
	ctx := context.Background()
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := s.stocks.FindStockByName(ctx, "AAPL")
		s.Require().ErrorIs(err, apperrors.ErrNotFound)

		s.newStock("AAPL")

		_, err = s.stocks.SaveStock(ctx, domain.Stock{Name: "AAPL", CurrentPrice: decimal.NewFromInt(1)})
		s.Require().NoError(err)
		return nil
	})
	s.ErrorIs(err, apperrors.ErrUniqueViolation)
}

func (s *StoreTestSuite) TestCommit_ListingDeletedStockIsStale() {
	ctx := context.Background()
	st := s.newStock("AAPL")

	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		ex, err := s.exchanges.FindExchangeByName(ctx, "BIST")
		s.Require().NoError(err)
		ex.AddMember(*st)
		_, err = s.exchanges.SaveExchange(ctx, *ex)
		s.Require().NoError(err)

		s.Require().NoError(s.stocks.DeleteStock(context.Background(), *st))
		return nil
	})
	s.ErrorIs(err, apperrors.ErrStaleVersion)

	bist, err := s.exchanges.FindExchangeByName(ctx, "BIST")
	s.Require().NoError(err)
	s.Empty(bist.Members)
}

func (s *StoreTestSuite) TestCommit_DeleteRacingConcurrentListingIsStale() {
	ctx := context.Background()
	st := s.newStock("AAPL")

	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		loaded, err := s.stocks.FindStockByID(ctx, st.ID)
		s.Require().NoError(err)

		s.list("NYSE", st)

		return s.stocks.DeleteStock(ctx, *loaded)
	})
	s.ErrorIs(err, apperrors.ErrStaleVersion)

	nyse, err := s.exchanges.FindExchangeByName(ctx, "NYSE")
	s.Require().NoError(err)
	s.True(nyse.HasMember(st.ID))
}

func TestWithTransaction_CancelledContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.WithTransaction(ctx, func(context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
