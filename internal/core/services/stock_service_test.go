package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/stock_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/stock_exchange_app/internal/core/services"
	"github.com/SscSPs/stock_exchange_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type StockServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockStockRepository
	txManager *passthroughTxManager
	service   portssvc.StockSvcFacade
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockStockRepository)
	suite.txManager = &passthroughTxManager{}
	suite.service = services.NewStockService(suite.mockRepo, suite.txManager,
		services.WithStockRetryPolicies(fastPolicies()))
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}

func (suite *StockServiceTestSuite) TestCreateStock_Success() {
	ctx := context.Background()
	req := dto.CreateStockRequest{Name: "AAPL", Description: "Apple Inc.", CurrentPrice: price("189.50")}
	saved := testStock(1, "AAPL")

	suite.mockRepo.On("FindStockByName", mock.Anything, "AAPL").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveStock", mock.Anything, mock.MatchedBy(func(s domain.Stock) bool {
		return s.IsNew() && s.Name == req.Name && s.Description == req.Description && s.CurrentPrice.Equal(*req.CurrentPrice)
	})).Return(saved, nil).Once()

	stock, err := suite.service.CreateStock(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(saved, stock)
	suite.Equal(1, suite.txManager.opened)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestCreateStock_NameTaken() {
	ctx := context.Background()
	req := dto.CreateStockRequest{Name: "AAPL", Description: "Apple Inc.", CurrentPrice: price("1.00")}

	suite.mockRepo.On("FindStockByName", mock.Anything, "AAPL").Return(testStock(1, "AAPL"), nil).Once()

	stock, err := suite.service.CreateStock(ctx, req)

	suite.Require().Error(err)
	suite.Nil(stock)
	suite.Equal(apperrors.KindAlreadyExists, apperrors.KindOf(err))
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveStock", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestCreateStock_CollisionResolvesToAlreadyExists() {
	ctx := context.Background()
	req := dto.CreateStockRequest{Name: "AAPL", Description: "Apple Inc.", CurrentPrice: price("1.00")}
	collision := apperrors.NewUniqueViolationError("uk_stock_name", nil)

	suite.mockRepo.On("FindStockByName", mock.Anything, "AAPL").Return(nil, apperrors.ErrNotFound).Twice()
	suite.mockRepo.On("SaveStock", mock.Anything, mock.Anything).Return(nil, collision).Twice()
	suite.mockRepo.On("FindStockByName", mock.Anything, "AAPL").Return(testStock(7, "AAPL"), nil).Once()

	stock, err := suite.service.CreateStock(ctx, req)

	suite.Require().Error(err)
	suite.Nil(stock)
	suite.Equal(apperrors.KindAlreadyExists, apperrors.KindOf(err))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestCreateStock_CollisionWithoutWinnerIsConflict() {
	ctx := context.Background()
	req := dto.CreateStockRequest{Name: "AAPL", Description: "Apple Inc.", CurrentPrice: price("1.00")}
	collision := apperrors.NewUniqueViolationError("uk_stock_name", nil)

	suite.mockRepo.On("FindStockByName", mock.Anything, "AAPL").Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockRepo.On("SaveStock", mock.Anything, mock.Anything).Return(nil, collision).Twice()

	_, err := suite.service.CreateStock(ctx, req)

	suite.Require().Error(err)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
	suite.ErrorIs(err, apperrors.ErrUniqueViolation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestUpdateStockPrice_Success() {
	ctx := context.Background()
	current := testStock(3, "MSFT")
	updated := *current
	updated.CurrentPrice = *price("42.10")
	updated.Version = 1

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(3)).Return(current, nil).Once()
	suite.mockRepo.On("SaveStock", mock.Anything, mock.MatchedBy(func(s domain.Stock) bool {
		return s.ID == 3 && s.Version == 0 && s.CurrentPrice.Equal(*price("42.10"))
	})).Return(&updated, nil).Once()

	stock, err := suite.service.UpdateStockPrice(ctx, dto.UpdateStockPriceRequest{ID: 3, CurrentPrice: price("42.10")})

	suite.Require().NoError(err)
	suite.Equal(1, stock.Version)
	suite.True(stock.CurrentPrice.Equal(*price("42.10")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestUpdateStockPrice_RetriesStaleVersion() {
	ctx := context.Background()
	stale := testStock(3, "MSFT")
	fresh := testStock(3, "MSFT")
	fresh.Version = 4
	saved := *fresh
	saved.Version = 5

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(3)).Return(stale, nil).Once()
	suite.mockRepo.On("SaveStock", mock.Anything, mock.Anything).Return(nil, apperrors.NewStaleVersionError("stock", 3)).Once()
	suite.mockRepo.On("FindStockByID", mock.Anything, int64(3)).Return(fresh, nil).Once()
	suite.mockRepo.On("SaveStock", mock.Anything, mock.MatchedBy(func(s domain.Stock) bool {
		return s.Version == 4
	})).Return(&saved, nil).Once()

	stock, err := suite.service.UpdateStockPrice(ctx, dto.UpdateStockPriceRequest{ID: 3, CurrentPrice: price("5.00")})

	suite.Require().NoError(err)
	suite.Equal(5, stock.Version)
	suite.Equal(2, suite.txManager.opened)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestUpdateStockPrice_ExhaustedIsConflict() {
	ctx := context.Background()

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(3)).Return(testStock(3, "MSFT"), nil).Times(3)
	suite.mockRepo.On("SaveStock", mock.Anything, mock.Anything).Return(nil, apperrors.NewStaleVersionError("stock", 3)).Times(3)

	stock, err := suite.service.UpdateStockPrice(ctx, dto.UpdateStockPriceRequest{ID: 3, CurrentPrice: price("5.00")})

	suite.Require().Error(err)
	suite.Nil(stock)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
	suite.Equal(3, suite.txManager.opened)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestUpdateStockPrice_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateStockPrice(ctx, dto.UpdateStockPriceRequest{ID: 99, CurrentPrice: price("5.00")})

	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
	suite.Equal(1, suite.txManager.opened)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveStock", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestDeleteStock_Success() {
	ctx := context.Background()
	stock := testStock(5, "TSLA")

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(5)).Return(stock, nil).Once()
	suite.mockRepo.On("DeleteStock", mock.Anything, *stock).Return(nil).Once()

	err := suite.service.DeleteStock(ctx, 5)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestDeleteStock_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(5)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteStock(ctx, 5)

	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteStock", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestGetStockByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(8)).Return(nil, apperrors.ErrNotFound).Once()

	stock, err := suite.service.GetStockByID(ctx, 8)

	suite.Require().Error(err)
	suite.Nil(stock)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("stock.not.found", appErr.MessageCode)
	suite.Equal([]any{int64(8)}, appErr.Args)
}

func (suite *StockServiceTestSuite) TestGetStockByID_RepositoryFailureIsInternal() {
	ctx := context.Background()

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(8)).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetStockByID(ctx, 8)

	suite.Require().Error(err)
	suite.Equal(apperrors.KindInternal, apperrors.KindOf(err))
	suite.ErrorIs(err, assert.AnError)
}

func (suite *StockServiceTestSuite) TestGetStockByID_CancelledContextPassesThrough() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite.mockRepo.On("FindStockByID", mock.Anything, int64(8)).Return(nil, context.Canceled).Once()

	_, err := suite.service.GetStockByID(ctx, 8)

	suite.Require().Error(err)
	suite.ErrorIs(err, context.Canceled)
}
