package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portsrepo "github.com/asxfolio/asx_portfolio_app/internal/core/ports/repositories"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/core/services"
	"github.com/asxfolio/asx_portfolio_app/internal/utils/cgtcalc"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, stock string) ([]domain.Transaction, error) {
	args := m.Called(ctx, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListExecutedTransactions(ctx context.Context, stock string) ([]domain.Transaction, error) {
	args := m.Called(ctx, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

// --- Mock ParcelRepository ---
type MockParcelRepository struct {
	mock.Mock
}

var _ portsrepo.ParcelRepositoryWithTx = (*MockParcelRepository)(nil)

func (m *MockParcelRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockParcelRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockParcelRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockParcelRepository) ListOpenParcels(ctx context.Context, stock string) ([]domain.TaxParcel, error) {
	args := m.Called(ctx, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxParcel), args.Error(1)
}

func (m *MockParcelRepository) FindEligibleParcelsForUpdate(ctx context.Context, tx pgx.Tx, stock string) ([]domain.TaxParcel, error) {
	args := m.Called(ctx, tx, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxParcel), args.Error(1)
}

func (m *MockParcelRepository) SaveParcelsInTx(ctx context.Context, tx pgx.Tx, parcels []domain.TaxParcel) error {
	args := m.Called(ctx, tx, parcels)
	return args.Error(0)
}

func (m *MockParcelRepository) ApplyParcelDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.ParcelDelta, updatedAt time.Time) error {
	args := m.Called(ctx, tx, deltas, updatedAt)
	return args.Error(0)
}

func (m *MockParcelRepository) DeleteAllParcelsInTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CGTRepository ---
type MockCGTRepository struct {
	mock.Mock
}

var _ portsrepo.CGTRepositoryWithTx = (*MockCGTRepository)(nil)

func (m *MockCGTRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCGTRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCGTRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCGTRepository) ListEventsByTaxYear(ctx context.Context, taxYear string) ([]domain.CGTEvent, error) {
	args := m.Called(ctx, taxYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CGTEvent), args.Error(1)
}

func (m *MockCGTRepository) FindEventsByTaxYearInTx(ctx context.Context, tx pgx.Tx, taxYear string) ([]domain.CGTEvent, error) {
	args := m.Called(ctx, tx, taxYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CGTEvent), args.Error(1)
}

func (m *MockCGTRepository) SaveEventsInTx(ctx context.Context, tx pgx.Tx, events []domain.CGTEvent) error {
	args := m.Called(ctx, tx, events)
	return args.Error(0)
}

func (m *MockCGTRepository) DeleteAllEventsInTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCGTRepository) ListOutstandingLossesInTx(ctx context.Context, tx pgx.Tx) ([]domain.CapitalLoss, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CapitalLoss), args.Error(1)
}

func (m *MockCGTRepository) UpsertLossInTx(ctx context.Context, tx pgx.Tx, loss domain.CapitalLoss) error {
	args := m.Called(ctx, tx, loss)
	return args.Error(0)
}

func (m *MockCGTRepository) UpdateRemainingLossInTx(ctx context.Context, tx pgx.Tx, lossID string, remaining decimal.Decimal, updatedAt time.Time) error {
	args := m.Called(ctx, tx, lossID, remaining, updatedAt)
	return args.Error(0)
}

func (m *MockCGTRepository) DeleteAllLossesInTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PriceRepository ---
type MockPriceRepository struct {
	mock.Mock
}

var _ portsrepo.PriceRepositoryFacade = (*MockPriceRepository)(nil)

func (m *MockPriceRepository) FindPrice(ctx context.Context, stock string) (*domain.InstrumentPrice, error) {
	args := m.Called(ctx, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstrumentPrice), args.Error(1)
}

func (m *MockPriceRepository) ListPrices(ctx context.Context) ([]domain.InstrumentPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstrumentPrice), args.Error(1)
}

func (m *MockPriceRepository) UpsertPrice(ctx context.Context, price domain.InstrumentPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

// --- Test Suite Setup ---
type CGTServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockParcelRepo *MockParcelRepository
	mockCGTRepo    *MockCGTRepository
	mockPriceRepo  *MockPriceRepository
	service        portssvc.CGTSvcFacade
}

func (suite *CGTServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockParcelRepo = new(MockParcelRepository)
	suite.mockCGTRepo = new(MockCGTRepository)
	suite.mockPriceRepo = new(MockPriceRepository)
	suite.service = services.NewCGTService(suite.mockLedgerRepo, suite.mockParcelRepo, suite.mockCGTRepo, suite.mockPriceRepo)
}

func buyTxn(stock string, date time.Time, qty int64, price, fee string) domain.Transaction {
	t := domain.Transaction{
		TransactionID: uuid.NewString(),
		Stock:         stock,
		Date:          date,
		Side:          domain.Buy,
		Quantity:      qty,
		Price:         decimal.RequireFromString(price),
		Fee:           decimal.RequireFromString(fee),
		Status:        domain.StatusExecuted,
	}
	t.Total = t.Price.Mul(decimal.NewFromInt(qty))
	return t
}

func sellTxn(stock string, date time.Time, qty int64, price string) domain.Transaction {
	t := domain.Transaction{
		TransactionID: uuid.NewString(),
		Stock:         stock,
		Date:          date,
		Side:          domain.Sell,
		Quantity:      qty,
		Price:         decimal.RequireFromString(price),
		Fee:           decimal.Zero,
		Status:        domain.StatusExecuted,
	}
	t.Total = t.Price.Mul(decimal.NewFromInt(qty))
	return t
}

func openParcel(stock string, acquired time.Time, qty, remaining int64, costBase string) domain.TaxParcel {
	return domain.TaxParcel{
		ParcelID:          uuid.NewString(),
		Stock:             stock,
		AcquisitionDate:   acquired,
		Quantity:          qty,
		RemainingQuantity: remaining,
		CostBase:          decimal.RequireFromString(costBase),
	}
}

// --- RecordSale ---

func (suite *CGTServiceTestSuite) TestRecordSale_Success() {
	ctx := context.Background()
	acquired := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	saleDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	parcel := openParcel("CBA", acquired, 100, 100, "1020")

	suite.mockParcelRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockParcelRepo.On("FindEligibleParcelsForUpdate", ctx, nil, "CBA").Return([]domain.TaxParcel{parcel}, nil).Once()
	suite.mockLedgerRepo.On("SaveTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Stock == "CBA" && txn.Side == domain.Sell && txn.Quantity == 100 && txn.Status == domain.StatusExecuted
	})).Return(nil).Once()
	suite.mockParcelRepo.On("ApplyParcelDeltasInTx", ctx, nil, mock.MatchedBy(func(deltas []domain.ParcelDelta) bool {
		return len(deltas) == 1 && deltas[0].ParcelID == parcel.ParcelID && deltas[0].RemainingQuantity == 0 && deltas[0].Sold
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCGTRepo.On("SaveEventsInTx", ctx, nil, mock.MatchedBy(func(events []domain.CGTEvent) bool {
		return len(events) == 1 && events[0].EventID != "" && events[0].CapitalGain.Equal(decimal.NewFromInt(480))
	})).Return(nil).Once()
	suite.mockParcelRepo.On("Commit", ctx, nil).Return(nil).Once()

	sale := sellTxn("CBA", saleDate, 100, "15")
	sale.TransactionID = ""
	events, err := suite.service.RecordSale(ctx, sale, domain.MethodFIFO)

	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal("2023-2024", events[0].TaxYear)
	suite.True(events[0].DiscountEligible)
	suite.True(events[0].DiscountedGain.Equal(decimal.NewFromInt(240)))
	suite.NotEmpty(events[0].EventID)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockParcelRepo.AssertExpectations(suite.T())
	suite.mockCGTRepo.AssertExpectations(suite.T())
}

func (suite *CGTServiceTestSuite) TestRecordSale_InsufficientSharesRollsBack() {
	ctx := context.Background()
	acquired := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	saleDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	parcel := openParcel("CBA", acquired, 10, 10, "100")

	suite.mockParcelRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockParcelRepo.On("FindEligibleParcelsForUpdate", ctx, nil, "CBA").Return([]domain.TaxParcel{parcel}, nil).Once()
	suite.mockParcelRepo.On("Rollback", ctx, nil).Return(nil).Once()

	events, err := suite.service.RecordSale(ctx, sellTxn("CBA", saleDate, 50, "15"), domain.MethodFIFO)

	suite.Require().Error(err)
	suite.Nil(events)
	suite.True(errors.Is(err, cgtcalc.ErrInsufficientParcels))

	var dispErr *cgtcalc.DisposalError
	suite.Require().True(errors.As(err, &dispErr))
	suite.Equal(int64(50), dispErr.Requested)
	suite.Equal(int64(10), dispErr.Available)

	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCGTRepo.AssertNotCalled(suite.T(), "SaveEventsInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockParcelRepo.AssertNotCalled(suite.T(), "ApplyParcelDeltasInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockParcelRepo.AssertExpectations(suite.T())
}

func (suite *CGTServiceTestSuite) TestRecordSale_IgnoresParcelsAcquiredAfterSaleDate() {
	ctx := context.Background()
	saleDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	before := openParcel("BHP", saleDate.AddDate(-1, 0, 0), 50, 50, "500")
	after := openParcel("BHP", saleDate.AddDate(0, 1, 0), 100, 100, "1500")

	suite.mockParcelRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockParcelRepo.On("FindEligibleParcelsForUpdate", ctx, nil, "BHP").Return([]domain.TaxParcel{before, after}, nil).Once()
	suite.mockParcelRepo.On("Rollback", ctx, nil).Return(nil).Once()

	// 60 shares requested but only the 50 acquired before the sale date count.
	_, err := suite.service.RecordSale(ctx, sellTxn("BHP", saleDate, 60, "40"), domain.MethodFIFO)

	suite.Require().Error(err)
	var dispErr *cgtcalc.DisposalError
	suite.Require().True(errors.As(err, &dispErr))
	suite.Equal(int64(50), dispErr.Available)
	suite.mockParcelRepo.AssertExpectations(suite.T())
}

func (suite *CGTServiceTestSuite) TestRecordSale_ValidationErrors() {
	ctx := context.Background()

	_, err := suite.service.RecordSale(ctx, sellTxn("", time.Now(), 10, "5"), domain.MethodFIFO)
	suite.Error(err)

	_, err = suite.service.RecordSale(ctx, sellTxn("CBA", time.Now(), 0, "5"), domain.MethodFIFO)
	suite.Error(err)

	suite.mockParcelRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- RebuildFromLedger ---

func (suite *CGTServiceTestSuite) TestRebuildFromLedger_ReplaysBuysAndSells() {
	ctx := context.Background()
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	ledger := []domain.Transaction{
		buyTxn("CBA", d(2022, time.January, 10), 100, "10", "20"),
		buyTxn("CBA", d(2023, time.February, 1), 50, "20", "10"),
		sellTxn("CBA", d(2024, time.March, 1), 120, "25"),
		// Sell with no holdings; must be skipped, not fail the rebuild.
		sellTxn("NAB", d(2024, time.March, 2), 10, "30"),
	}

	suite.mockLedgerRepo.On("ListExecutedTransactions", ctx, "").Return(ledger, nil).Once()
	suite.mockParcelRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockCGTRepo.On("DeleteAllEventsInTx", ctx, nil).Return(nil).Once()
	suite.mockCGTRepo.On("DeleteAllLossesInTx", ctx, nil).Return(nil).Once()
	suite.mockParcelRepo.On("DeleteAllParcelsInTx", ctx, nil).Return(nil).Once()

	var savedParcels []domain.TaxParcel
	suite.mockParcelRepo.On("SaveParcelsInTx", ctx, nil, mock.MatchedBy(func(parcels []domain.TaxParcel) bool {
		savedParcels = parcels
		return len(parcels) == 2
	})).Return(nil).Once()

	var savedEvents []domain.CGTEvent
	suite.mockCGTRepo.On("SaveEventsInTx", ctx, nil, mock.MatchedBy(func(events []domain.CGTEvent) bool {
		savedEvents = events
		return len(events) == 2
	})).Return(nil).Once()
	suite.mockParcelRepo.On("Commit", ctx, nil).Return(nil).Once()

	report, err := suite.service.RebuildFromLedger(ctx)

	suite.Require().NoError(err)
	suite.Equal(4, report.TransactionsProcessed)
	suite.Equal(2, report.ParcelsCreated)
	suite.Equal(2, report.EventsCreated)
	suite.Require().Len(report.Skipped, 1)
	suite.Equal("NAB", report.Skipped[0].Stock)

	// FIFO: the 2022 parcel is drained, the 2023 parcel keeps 30 of 50.
	suite.Require().Len(savedParcels, 2)
	suite.Equal(int64(0), savedParcels[0].RemainingQuantity)
	suite.True(savedParcels[0].Sold)
	suite.Equal(int64(30), savedParcels[1].RemainingQuantity)
	suite.False(savedParcels[1].Sold)

	// First event covers the whole first parcel with its full cost base.
	suite.Require().Len(savedEvents, 2)
	suite.Equal(int64(100), savedEvents[0].Quantity)
	suite.True(savedEvents[0].CostBase.Equal(decimal.NewFromInt(1020)))
	suite.Equal(int64(20), savedEvents[1].Quantity)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockParcelRepo.AssertExpectations(suite.T())
	suite.mockCGTRepo.AssertExpectations(suite.T())
}

// --- AnnualSummary ---

func (suite *CGTServiceTestSuite) TestAnnualSummary_ConsumesCarriedLossesOldestFirst() {
	ctx := context.Background()
	taxYear := "2024-2025"

	events := []domain.CGTEvent{
		{CapitalGain: decimal.NewFromInt(1000), DiscountEligible: true, DiscountedGain: decimal.NewFromInt(500)},
		{CapitalGain: decimal.NewFromInt(-200), DiscountEligible: false, DiscountedGain: decimal.NewFromInt(-200)},
	}
	oldLoss := domain.CapitalLoss{LossID: uuid.NewString(), TaxYear: "2021-2022", LossAmount: decimal.NewFromInt(100), RemainingLoss: decimal.NewFromInt(100)}
	newerLoss := domain.CapitalLoss{LossID: uuid.NewString(), TaxYear: "2022-2023", LossAmount: decimal.NewFromInt(400), RemainingLoss: decimal.NewFromInt(250)}

	suite.mockCGTRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockCGTRepo.On("FindEventsByTaxYearInTx", ctx, nil, taxYear).Return(events, nil).Once()
	suite.mockCGTRepo.On("ListOutstandingLossesInTx", ctx, nil).Return([]domain.CapitalLoss{oldLoss, newerLoss}, nil).Once()
	// 500 discounted - 200 losses = 300 net; consumes 100 then 200 of 250.
	suite.mockCGTRepo.On("UpdateRemainingLossInTx", ctx, nil, oldLoss.LossID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.IsZero()
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCGTRepo.On("UpdateRemainingLossInTx", ctx, nil, newerLoss.LossID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(50))
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockCGTRepo.On("Commit", ctx, nil).Return(nil).Once()

	summary, err := suite.service.AnnualSummary(ctx, taxYear)

	suite.Require().NoError(err)
	suite.True(summary.TotalCapitalGains.Equal(decimal.NewFromInt(1000)))
	suite.True(summary.TotalCapitalLosses.Equal(decimal.NewFromInt(200)))
	suite.True(summary.DiscountEligibleGains.Equal(decimal.NewFromInt(1000)))
	suite.True(summary.DiscountedGains.Equal(decimal.NewFromInt(500)))
	suite.True(summary.NetCapitalGain.IsZero())
	suite.True(summary.CarriedForwardLosses.Equal(decimal.NewFromInt(50)))

	suite.mockCGTRepo.AssertExpectations(suite.T())
	suite.mockCGTRepo.AssertNotCalled(suite.T(), "UpsertLossInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CGTServiceTestSuite) TestAnnualSummary_NetLossCarriedForward() {
	ctx := context.Background()
	taxYear := "2024-2025"

	events := []domain.CGTEvent{
		{CapitalGain: decimal.NewFromInt(100), DiscountEligible: false, DiscountedGain: decimal.NewFromInt(100)},
		{CapitalGain: decimal.NewFromInt(-600), DiscountEligible: false, DiscountedGain: decimal.NewFromInt(-600)},
	}

	suite.mockCGTRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockCGTRepo.On("FindEventsByTaxYearInTx", ctx, nil, taxYear).Return(events, nil).Once()
	suite.mockCGTRepo.On("ListOutstandingLossesInTx", ctx, nil).Return([]domain.CapitalLoss{}, nil).Once()
	suite.mockCGTRepo.On("UpsertLossInTx", ctx, nil, mock.MatchedBy(func(loss domain.CapitalLoss) bool {
		return loss.TaxYear == taxYear && loss.LossAmount.Equal(decimal.NewFromInt(500)) && loss.RemainingLoss.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()
	suite.mockCGTRepo.On("Commit", ctx, nil).Return(nil).Once()

	summary, err := suite.service.AnnualSummary(ctx, taxYear)

	suite.Require().NoError(err)
	suite.True(summary.NetCapitalGain.IsZero())
	suite.True(summary.CarriedForwardLosses.Equal(decimal.NewFromInt(500)))
	suite.mockCGTRepo.AssertExpectations(suite.T())
}

func (suite *CGTServiceTestSuite) TestAnnualSummary_EmptyYear() {
	ctx := context.Background()
	taxYear := "2019-2020"

	suite.mockCGTRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockCGTRepo.On("FindEventsByTaxYearInTx", ctx, nil, taxYear).Return([]domain.CGTEvent{}, nil).Once()
	suite.mockCGTRepo.On("ListOutstandingLossesInTx", ctx, nil).Return([]domain.CapitalLoss{}, nil).Once()
	suite.mockCGTRepo.On("Commit", ctx, nil).Return(nil).Once()

	summary, err := suite.service.AnnualSummary(ctx, taxYear)

	suite.Require().NoError(err)
	suite.True(summary.TotalCapitalGains.IsZero())
	suite.True(summary.NetCapitalGain.IsZero())
	suite.True(summary.CarriedForwardLosses.IsZero())
	suite.mockCGTRepo.AssertExpectations(suite.T())
}

// --- UnrealizedGains ---

func (suite *CGTServiceTestSuite) TestUnrealizedGains_SkipsParcelsWithoutPrice() {
	ctx := context.Background()
	asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	priced := openParcel("CBA", asOf.AddDate(-2, 0, 0), 100, 40, "1000")
	unpriced := openParcel("XYZ", asOf.AddDate(-1, 0, 0), 10, 10, "50")

	suite.mockParcelRepo.On("ListOpenParcels", ctx, "").Return([]domain.TaxParcel{priced, unpriced}, nil).Once()
	suite.mockPriceRepo.On("ListPrices", ctx).Return([]domain.InstrumentPrice{
		{Stock: "CBA", Price: decimal.NewFromInt(30)},
	}, nil).Once()

	gains, err := suite.service.UnrealizedGains(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(gains, 1)
	suite.Equal("CBA", gains[0].Stock)
	suite.Equal(int64(40), gains[0].Quantity)
	suite.True(gains[0].CostBase.Equal(decimal.NewFromInt(400)))
	suite.True(gains[0].Gain.Equal(decimal.NewFromInt(800)))
	suite.True(gains[0].DiscountEligible)
	suite.True(gains[0].AfterDiscount.Equal(decimal.NewFromInt(400)))
	suite.mockParcelRepo.AssertExpectations(suite.T())
	suite.mockPriceRepo.AssertExpectations(suite.T())
}

// --- SuggestDisposal ---

func (suite *CGTServiceTestSuite) TestSuggestDisposal_RanksByEffectiveGain() {
	ctx := context.Background()
	asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	// Old, cheap parcel: big gain but discounted. Recent parcel: smaller gain, no discount.
	oldParcel := openParcel("WES", asOf.AddDate(-3, 0, 0), 100, 100, "1000")
	recentParcel := openParcel("WES", asOf.AddDate(0, -6, 0), 100, 100, "3000")

	suite.mockParcelRepo.On("ListOpenParcels", ctx, "WES").Return([]domain.TaxParcel{oldParcel, recentParcel}, nil).Once()

	salePrice := decimal.NewFromInt(40)
	targetGain := decimal.NewFromInt(150)
	suggestions, err := suite.service.SuggestDisposal(ctx, "WES", salePrice, targetGain, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(suggestions, 2)

	// Recent parcel: (40-30)=10/share undiscounted. Old parcel: (40-10)/2=15/share after discount.
	suite.Equal(recentParcel.ParcelID, suggestions[0].ParcelID)
	suite.False(suggestions[0].DiscountEligible)
	suite.True(suggestions[0].EffectiveGainPerShare.Equal(decimal.NewFromInt(10)))
	suite.Equal(int64(15), suggestions[0].SharesForTarget)

	suite.Equal(oldParcel.ParcelID, suggestions[1].ParcelID)
	suite.True(suggestions[1].DiscountEligible)
	suite.True(suggestions[1].EffectiveGainPerShare.Equal(decimal.NewFromInt(15)))
	suite.Equal(int64(10), suggestions[1].SharesForTarget)

	suite.mockParcelRepo.AssertExpectations(suite.T())
}

func TestCGTServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CGTServiceTestSuite))
}
