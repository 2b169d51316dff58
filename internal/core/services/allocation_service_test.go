package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rentledger/rentledger/internal/apperrors"
	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/rentledger/rentledger/internal/core/services"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
	"github.com/rentledger/rentledger/internal/dto"
)

// MockAccrualRepository is a mock type for the AccrualRepositoryFacade interface
type MockAccrualRepository struct {
	mock.Mock
}

func (m *MockAccrualRepository) FindAccrualByID(ctx context.Context, accrualID string) (*domain.Accrual, error) {
	args := m.Called(ctx, accrualID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accrual), args.Error(1)
}

func (m *MockAccrualRepository) FindAccrualsByIDs(ctx context.Context, accrualIDs []string) (map[string]domain.Accrual, error) {
	args := m.Called(ctx, accrualIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Accrual), args.Error(1)
}

func (m *MockAccrualRepository) ListAccrualsByContract(ctx context.Context, contractID string) ([]domain.Accrual, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accrual), args.Error(1)
}

func (m *MockAccrualRepository) ListOutstandingByContract(ctx context.Context, contractID string, excludeIDs []string) ([]domain.Accrual, error) {
	args := m.Called(ctx, contractID, excludeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accrual), args.Error(1)
}

func (m *MockAccrualRepository) SaveAccruals(ctx context.Context, accruals []domain.Accrual) error {
	args := m.Called(ctx, accruals)
	return args.Error(0)
}

func (m *MockAccrualRepository) UpdateAccruals(ctx context.Context, accruals []domain.Accrual) error {
	args := m.Called(ctx, accruals)
	return args.Error(0)
}

func (m *MockAccrualRepository) DeleteAccrualsCascade(ctx context.Context, accrualIDs []string) (int64, error) {
	args := m.Called(ctx, accrualIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindLatestPaymentForAccrual(ctx context.Context, accrualID string) (*domain.Payment, error) {
	args := m.Called(ctx, accrualID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentsWithAllocations(ctx context.Context, payments []domain.Payment, allocations []domain.Allocation, accrualUpdates []domain.Accrual) error {
	args := m.Called(ctx, payments, allocations, accrualUpdates)
	return args.Error(0)
}

func (m *MockPaymentRepository) CancelPaymentWithReversals(ctx context.Context, paymentID string, cancelledAt time.Time, accrualUpdates []domain.Accrual, userID string) error {
	args := m.Called(ctx, paymentID, cancelledAt, accrualUpdates, userID)
	return args.Error(0)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AllocationServiceTestSuite struct {
	suite.Suite
	mockAccrualRepo *MockAccrualRepository
	mockPaymentRepo *MockPaymentRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.AllocationSvcFacade

	account  domain.Account
	contract string
	userID   string
}

func (suite *AllocationServiceTestSuite) SetupTest() {
	suite.mockAccrualRepo = new(MockAccrualRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAllocationService(suite.mockPaymentRepo, suite.mockAccrualRepo, suite.mockAccountRepo, 0)

	suite.contract = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Main RUB",
		CurrencyCode: "RUB",
		IsActive:     true,
	}
}

// newAccrual builds an unpaid accrual with the given base amount and due date.
func (suite *AllocationServiceTestSuite) newAccrual(base string, due time.Time) domain.Accrual {
	amount := decimal.RequireFromString(base)
	return domain.Accrual{
		AccrualID:    uuid.NewString(),
		ContractID:   suite.contract,
		PeriodStart:  due.AddDate(0, -1, 0),
		PeriodEnd:    due,
		DueDate:      due,
		BaseAmount:   amount,
		FinalAmount:  amount,
		PaidAmount:   decimal.Zero,
		CurrencyCode: "RUB",
		Status:       domain.StatusOverdue,
		Version:      1,
	}
}

func (suite *AllocationServiceTestSuite) acceptRequest(amount string) dto.AcceptPaymentRequest {
	return dto.AcceptPaymentRequest{
		PaymentDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString(amount),
		AccountID:   suite.account.AccountID,
	}
}

// --- AcceptPayment ---

func (suite *AllocationServiceTestSuite) TestAcceptPayment_ExactAmount() {
	ctx := context.Background()
	target := suite.newAccrual("100", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))

	suite.mockAccrualRepo.On("FindAccrualByID", ctx, target.AccrualID).Return(&target, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()

	var savedAllocations []domain.Allocation
	var savedUpdates []domain.Accrual
	suite.mockPaymentRepo.On("SavePaymentsWithAllocations", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedAllocations = args.Get(2).([]domain.Allocation)
			savedUpdates = args.Get(3).([]domain.Accrual)
		}).Return(nil).Once()

	resp, err := suite.service.AcceptPayment(ctx, target.AccrualID, suite.acceptRequest("100"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.AllocationsCount)
	suite.True(resp.Remainder.IsZero())

	suite.Require().Len(savedAllocations, 1)
	suite.True(savedAllocations[0].Amount.Equal(decimal.RequireFromString("100")))
	suite.Require().Len(savedUpdates, 1)
	suite.Equal(domain.StatusPaid, savedUpdates[0].Status)
	suite.True(savedUpdates[0].Balance().IsZero())

	// No overflow query when the amount does not exceed the target's balance.
	suite.mockAccrualRepo.AssertNotCalled(suite.T(), "ListOutstandingByContract", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestAcceptPayment_OverflowIsFIFO() {
	ctx := context.Background()
	now := time.Now().UTC()
	// Second and third are not yet due, so a partial payment on the second
	// must leave it PARTIAL rather than OVERDUE.
	first := suite.newAccrual("100", now.AddDate(0, -2, 0))
	second := suite.newAccrual("50", now.AddDate(0, 1, 0))
	third := suite.newAccrual("75", now.AddDate(0, 2, 0))

	suite.mockAccrualRepo.On("FindAccrualByID", ctx, first.AccrualID).Return(&first, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccrualRepo.On("ListOutstandingByContract", ctx, suite.contract, []string{first.AccrualID}).
		Return([]domain.Accrual{second, third}, nil).Once()

	var savedAllocations []domain.Allocation
	var savedUpdates []domain.Accrual
	suite.mockPaymentRepo.On("SavePaymentsWithAllocations", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedAllocations = args.Get(2).([]domain.Allocation)
			savedUpdates = args.Get(3).([]domain.Accrual)
		}).Return(nil).Once()

	resp, err := suite.service.AcceptPayment(ctx, first.AccrualID, suite.acceptRequest("120"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, resp.AllocationsCount)
	suite.True(resp.Remainder.IsZero())

	// 100 settles the target, the remaining 20 lands on the next due accrual.
	suite.Require().Len(savedAllocations, 2)
	suite.Equal(first.AccrualID, savedAllocations[0].AccrualID)
	suite.True(savedAllocations[0].Amount.Equal(decimal.RequireFromString("100")))
	suite.Equal(second.AccrualID, savedAllocations[1].AccrualID)
	suite.True(savedAllocations[1].Amount.Equal(decimal.RequireFromString("20")))

	suite.Require().Len(savedUpdates, 2)
	suite.Equal(domain.StatusPaid, savedUpdates[0].Status)
	suite.Equal(domain.StatusPartial, savedUpdates[1].Status)
	suite.True(savedUpdates[1].PaidAmount.Equal(decimal.RequireFromString("20")))
}

func (suite *AllocationServiceTestSuite) TestAcceptPayment_RemainderStaysOnPayment() {
	ctx := context.Background()
	first := suite.newAccrual("100", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	second := suite.newAccrual("50", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC))
	third := suite.newAccrual("75", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))

	suite.mockAccrualRepo.On("FindAccrualByID", ctx, first.AccrualID).Return(&first, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccrualRepo.On("ListOutstandingByContract", ctx, suite.contract, []string{first.AccrualID}).
		Return([]domain.Accrual{second, third}, nil).Once()

	var savedPayments []domain.Payment
	suite.mockPaymentRepo.On("SavePaymentsWithAllocations", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedPayments = args.Get(1).([]domain.Payment)
		}).Return(nil).Once()

	resp, err := suite.service.AcceptPayment(ctx, first.AccrualID, suite.acceptRequest("300"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(3, resp.AllocationsCount)
	// 300 - (100 + 50 + 75) stays unallocated on the payment.
	suite.True(resp.Remainder.Equal(decimal.RequireFromString("75")))

	// The payment is stored at its full amount, not trimmed to the allocations.
	suite.Require().Len(savedPayments, 1)
	suite.True(savedPayments[0].Amount.Equal(decimal.RequireFromString("300")))
}

func (suite *AllocationServiceTestSuite) TestAcceptPayment_AlreadySettled() {
	ctx := context.Background()
	target := suite.newAccrual("100", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	target.PaidAmount = target.FinalAmount
	target.Status = domain.StatusPaid

	suite.mockAccrualRepo.On("FindAccrualByID", ctx, target.AccrualID).Return(&target, nil).Once()

	_, err := suite.service.AcceptPayment(ctx, target.AccrualID, suite.acceptRequest("50"), suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrAlreadySettled)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentsWithAllocations", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestAcceptPayment_CurrencyMismatch() {
	ctx := context.Background()
	target := suite.newAccrual("100", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	usdAccount := domain.Account{
		AccountID:    suite.account.AccountID,
		Name:         "USD",
		CurrencyCode: "USD",
		IsActive:     true,
	}

	suite.mockAccrualRepo.On("FindAccrualByID", ctx, target.AccrualID).Return(&target, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&usdAccount, nil).Once()

	_, err := suite.service.AcceptPayment(ctx, target.AccrualID, suite.acceptRequest("50"), suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrCurrencyMismatch)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentsWithAllocations", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestAcceptPayment_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.AcceptPayment(ctx, uuid.NewString(), suite.acceptRequest("0"), suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

// --- BulkAcceptPayment ---

func (suite *AllocationServiceTestSuite) TestBulkAcceptPayment_OnePaymentPerTarget() {
	ctx := context.Background()
	later := suite.newAccrual("80", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	earlier := suite.newAccrual("120", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC))
	earlier.PaidAmount = decimal.RequireFromString("20") // partially paid before

	ids := []string{later.AccrualID, earlier.AccrualID}
	suite.mockAccrualRepo.On("FindAccrualsByIDs", ctx, ids).Return(map[string]domain.Accrual{
		later.AccrualID:   later,
		earlier.AccrualID: earlier,
	}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()

	var savedPayments []domain.Payment
	var savedAllocations []domain.Allocation
	var savedUpdates []domain.Accrual
	suite.mockPaymentRepo.On("SavePaymentsWithAllocations", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedPayments = args.Get(1).([]domain.Payment)
			savedAllocations = args.Get(2).([]domain.Allocation)
			savedUpdates = args.Get(3).([]domain.Accrual)
		}).Return(nil).Once()

	req := dto.BulkAcceptPaymentRequest{
		AccrualIDs:  ids,
		PaymentDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		AccountID:   suite.account.AccountID,
	}
	resp, err := suite.service.BulkAcceptPayment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, resp.PaymentsCreated)
	suite.Equal(2, resp.TotalAllocations)

	// Targets are settled in due date order, each with a payment sized to its
	// remaining balance.
	suite.Require().Len(savedPayments, 2)
	suite.True(savedPayments[0].Amount.Equal(decimal.RequireFromString("100"))) // earlier: 120 - 20
	suite.True(savedPayments[1].Amount.Equal(decimal.RequireFromString("80")))

	suite.Require().Len(savedAllocations, 2)
	suite.Equal(earlier.AccrualID, savedAllocations[0].AccrualID)
	suite.Equal(later.AccrualID, savedAllocations[1].AccrualID)

	suite.Require().Len(savedUpdates, 2)
	for _, update := range savedUpdates {
		suite.Equal(domain.StatusPaid, update.Status)
		suite.True(update.Balance().IsZero())
	}
}

func (suite *AllocationServiceTestSuite) TestBulkAcceptPayment_SettledTargetRejectsBatch() {
	ctx := context.Background()
	open := suite.newAccrual("80", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	settled := suite.newAccrual("100", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC))
	settled.PaidAmount = settled.FinalAmount

	ids := []string{open.AccrualID, settled.AccrualID}
	suite.mockAccrualRepo.On("FindAccrualsByIDs", ctx, ids).Return(map[string]domain.Accrual{
		open.AccrualID:    open,
		settled.AccrualID: settled,
	}, nil).Once()

	req := dto.BulkAcceptPaymentRequest{
		AccrualIDs:  ids,
		PaymentDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		AccountID:   suite.account.AccountID,
	}
	_, err := suite.service.BulkAcceptPayment(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrAlreadySettled)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentsWithAllocations", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- CancelPayment ---

func (suite *AllocationServiceTestSuite) TestCancelPayment_ReversesAllAllocations() {
	ctx := context.Background()
	first := suite.newAccrual("100", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	second := suite.newAccrual("50", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC))
	first.PaidAmount = decimal.RequireFromString("100")
	first.Status = domain.StatusPaid
	second.PaidAmount = decimal.RequireFromString("20")
	second.Status = domain.StatusPartial

	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		AccountID:    suite.account.AccountID,
		Amount:       decimal.RequireFromString("120"),
		CurrencyCode: "RUB",
	}
	allocations := []domain.Allocation{
		{AllocationID: uuid.NewString(), PaymentID: payment.PaymentID, AccrualID: first.AccrualID, Amount: decimal.RequireFromString("100")},
		{AllocationID: uuid.NewString(), PaymentID: payment.PaymentID, AccrualID: second.AccrualID, Amount: decimal.RequireFromString("20")},
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockPaymentRepo.On("FindAllocationsByPaymentID", ctx, payment.PaymentID).Return(allocations, nil).Once()
	suite.mockAccrualRepo.On("FindAccrualsByIDs", ctx, []string{first.AccrualID, second.AccrualID}).
		Return(map[string]domain.Accrual{
			first.AccrualID:  first,
			second.AccrualID: second,
		}, nil).Once()

	var reversedUpdates []domain.Accrual
	suite.mockPaymentRepo.On("CancelPaymentWithReversals", ctx, payment.PaymentID, mock.Anything, mock.Anything, suite.userID).
		Run(func(args mock.Arguments) {
			reversedUpdates = args.Get(3).([]domain.Accrual)
		}).Return(nil).Once()

	affected, err := suite.service.CancelPayment(ctx, payment.PaymentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, affected)

	// Both accruals return to fully unpaid with their statuses recomputed.
	suite.Require().Len(reversedUpdates, 2)
	for _, update := range reversedUpdates {
		suite.True(update.PaidAmount.IsZero())
		suite.Equal(domain.StatusOverdue, update.Status)
	}
}

func (suite *AllocationServiceTestSuite) TestCancelPayment_AlreadyCancelled() {
	ctx := context.Background()
	cancelledAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		AccountID:   suite.account.AccountID,
		Amount:      decimal.RequireFromString("120"),
		CancelledAt: &cancelledAt,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(&payment, nil).Once()

	_, err := suite.service.CancelPayment(ctx, payment.PaymentID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyCancelled)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CancelPaymentWithReversals", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestCancelLatestPaymentForAccrual() {
	ctx := context.Background()
	accrual := suite.newAccrual("100", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	accrual.PaidAmount = decimal.RequireFromString("100")
	accrual.Status = domain.StatusPaid

	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		AccountID:    suite.account.AccountID,
		Amount:       decimal.RequireFromString("100"),
		CurrencyCode: "RUB",
	}
	allocations := []domain.Allocation{
		{AllocationID: uuid.NewString(), PaymentID: payment.PaymentID, AccrualID: accrual.AccrualID, Amount: decimal.RequireFromString("100")},
	}

	suite.mockPaymentRepo.On("FindLatestPaymentForAccrual", ctx, accrual.AccrualID).Return(&payment, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(&payment, nil).Once()
	suite.mockPaymentRepo.On("FindAllocationsByPaymentID", ctx, payment.PaymentID).Return(allocations, nil).Once()
	suite.mockAccrualRepo.On("FindAccrualsByIDs", ctx, []string{accrual.AccrualID}).
		Return(map[string]domain.Accrual{accrual.AccrualID: accrual}, nil).Once()
	suite.mockPaymentRepo.On("CancelPaymentWithReversals", ctx, payment.PaymentID, mock.Anything, mock.Anything, suite.userID).
		Return(nil).Once()

	resp, err := suite.service.CancelLatestPaymentForAccrual(ctx, accrual.AccrualID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.AccrualsAffected)
	suite.Contains(resp.StatusMessage, payment.PaymentID)
}

func TestAllocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
