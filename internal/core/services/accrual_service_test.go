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

// MockContractRepository is a mock type for the ContractRepositoryFacade interface
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context, limit int, offset int) ([]domain.Contract, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) DeleteContractCascade(ctx context.Context, contractID string) error {
	args := m.Called(ctx, contractID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccrualServiceTestSuite struct {
	suite.Suite
	mockAccrualRepo  *MockAccrualRepository
	mockContractRepo *MockContractRepository
	service          portssvc.AccrualSvcFacade

	userID string
}

func (suite *AccrualServiceTestSuite) SetupTest() {
	suite.mockAccrualRepo = new(MockAccrualRepository)
	suite.mockContractRepo = new(MockContractRepository)
	suite.service = services.NewAccrualService(suite.mockAccrualRepo, suite.mockContractRepo, 0)
	suite.userID = uuid.NewString()
}

func (suite *AccrualServiceTestSuite) contractFixture(start, end time.Time) domain.Contract {
	return domain.Contract{
		ContractID:   uuid.NewString(),
		Address:      "12 High Street",
		TenantName:   "A. Tenant",
		RentAmount:   decimal.RequireFromString("1200"),
		CurrencyCode: "EUR",
		DueDay:       10,
		StartDate:    start,
		EndDate:      end,
		Status:       domain.ContractActive,
	}
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// --- UpdateAccrual ---

func (suite *AccrualServiceTestSuite) TestUpdateAccrual_RecomputesDerivedFields() {
	ctx := context.Background()
	accrual := domain.Accrual{
		AccrualID:    uuid.NewString(),
		ContractID:   uuid.NewString(),
		DueDate:      time.Now().UTC().AddDate(0, 1, 0),
		BaseAmount:   decimal.RequireFromString("1200"),
		FinalAmount:  decimal.RequireFromString("1200"),
		PaidAmount:   decimal.Zero,
		CurrencyCode: "EUR",
		Status:       domain.StatusPlanned,
		Version:      3,
	}

	suite.mockAccrualRepo.On("FindAccrualByID", ctx, accrual.AccrualID).Return(&accrual, nil).Once()
	var update domain.Accrual
	suite.mockAccrualRepo.On("UpdateAccruals", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			update = args.Get(1).([]domain.Accrual)[0]
		}).Return(nil).Once()

	req := dto.UpdateAccrualRequest{
		Adjustments:     decPtr("-200"),
		UtilitiesAmount: decPtr("55.40"),
	}
	updated, err := suite.service.UpdateAccrual(ctx, accrual.AccrualID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.FinalAmount.Equal(decimal.RequireFromString("1055.40")))

	// The repo sees the pre-update version as its guard; the returned accrual
	// reflects the bump applied by the database.
	suite.Equal(int64(3), update.Version)
	suite.Equal(int64(4), updated.Version)
}

func (suite *AccrualServiceTestSuite) TestUpdateAccrual_RejectsFinalBelowPaid() {
	ctx := context.Background()
	accrual := domain.Accrual{
		AccrualID:    uuid.NewString(),
		ContractID:   uuid.NewString(),
		DueDate:      time.Now().UTC().AddDate(0, 1, 0),
		BaseAmount:   decimal.RequireFromString("1200"),
		FinalAmount:  decimal.RequireFromString("1200"),
		PaidAmount:   decimal.RequireFromString("800"),
		CurrencyCode: "EUR",
		Status:       domain.StatusPartial,
		Version:      1,
	}

	suite.mockAccrualRepo.On("FindAccrualByID", ctx, accrual.AccrualID).Return(&accrual, nil).Once()

	req := dto.UpdateAccrualRequest{BaseAmount: decPtr("500")}
	_, err := suite.service.UpdateAccrual(ctx, accrual.AccrualID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccrualRepo.AssertNotCalled(suite.T(), "UpdateAccruals", mock.Anything, mock.Anything)
}

func (suite *AccrualServiceTestSuite) TestUpdateAccrual_NoFieldsIsNoop() {
	ctx := context.Background()
	accrual := domain.Accrual{
		AccrualID:   uuid.NewString(),
		BaseAmount:  decimal.RequireFromString("1200"),
		FinalAmount: decimal.RequireFromString("1200"),
		Version:     1,
	}

	suite.mockAccrualRepo.On("FindAccrualByID", ctx, accrual.AccrualID).Return(&accrual, nil).Once()

	updated, err := suite.service.UpdateAccrual(ctx, accrual.AccrualID, dto.UpdateAccrualRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(1), updated.Version)
	suite.mockAccrualRepo.AssertNotCalled(suite.T(), "UpdateAccruals", mock.Anything, mock.Anything)
}

// --- Bulk operations ---

func (suite *AccrualServiceTestSuite) TestBulkUpdateAccruals_MissingTargetRejectsBatch() {
	ctx := context.Background()
	known := domain.Accrual{
		AccrualID:   uuid.NewString(),
		BaseAmount:  decimal.RequireFromString("1200"),
		FinalAmount: decimal.RequireFromString("1200"),
		Version:     1,
	}
	missingID := uuid.NewString()

	ids := []string{known.AccrualID, missingID}
	suite.mockAccrualRepo.On("FindAccrualsByIDs", ctx, ids).
		Return(map[string]domain.Accrual{known.AccrualID: known}, nil).Once()

	req := dto.BulkUpdateAccrualsRequest{
		AccrualIDs: ids,
		Fields:     dto.UpdateAccrualRequest{Comment: strPtr("indexed")},
	}
	_, err := suite.service.BulkUpdateAccruals(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccrualRepo.AssertNotCalled(suite.T(), "UpdateAccruals", mock.Anything, mock.Anything)
}

func (suite *AccrualServiceTestSuite) TestBulkDeleteAccruals() {
	ctx := context.Background()
	first := domain.Accrual{AccrualID: uuid.NewString()}
	second := domain.Accrual{AccrualID: uuid.NewString()}

	ids := []string{first.AccrualID, second.AccrualID}
	suite.mockAccrualRepo.On("FindAccrualsByIDs", ctx, ids).
		Return(map[string]domain.Accrual{first.AccrualID: first, second.AccrualID: second}, nil).Once()
	suite.mockAccrualRepo.On("DeleteAccrualsCascade", ctx, ids).Return(int64(2), nil).Once()

	deleted, err := suite.service.BulkDeleteAccruals(ctx, dto.BulkDeleteAccrualsRequest{AccrualIDs: ids}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, deleted)
}

// --- GenerateAccruals ---

func (suite *AccrualServiceTestSuite) TestGenerateAccruals_ExpandsTerm() {
	ctx := context.Background()
	contract := suite.contractFixture(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(&contract, nil).Once()
	suite.mockAccrualRepo.On("ListAccrualsByContract", ctx, contract.ContractID).Return([]domain.Accrual{}, nil).Once()
	suite.mockAccrualRepo.On("SaveAccruals", ctx, mock.Anything).Return(nil).Once()

	created, err := suite.service.GenerateAccruals(ctx, contract.ContractID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(created, 3)
	for i, accrual := range created {
		suite.Equal(contract.ContractID, accrual.ContractID)
		suite.True(accrual.BaseAmount.Equal(contract.RentAmount))
		suite.True(accrual.FinalAmount.Equal(contract.RentAmount))
		suite.Equal("EUR", accrual.CurrencyCode)
		suite.Equal(10, accrual.DueDate.Day())
		suite.Equal(time.Month(i+1), accrual.DueDate.Month())
	}
}

func (suite *AccrualServiceTestSuite) TestGenerateAccruals_SkipsExistingPeriods() {
	ctx := context.Background()
	contract := suite.contractFixture(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	existing := domain.Accrual{
		AccrualID:   uuid.NewString(),
		ContractID:  contract.ContractID,
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(&contract, nil).Once()
	suite.mockAccrualRepo.On("ListAccrualsByContract", ctx, contract.ContractID).Return([]domain.Accrual{existing}, nil).Once()
	suite.mockAccrualRepo.On("SaveAccruals", ctx, mock.Anything).Return(nil).Once()

	created, err := suite.service.GenerateAccruals(ctx, contract.ContractID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(created, 2)
	suite.Equal(time.Month(2), created[0].PeriodStart.Month())
	suite.Equal(time.Month(3), created[1].PeriodStart.Month())
}

func (suite *AccrualServiceTestSuite) TestGenerateAccruals_AllPeriodsExistIsNoop() {
	ctx := context.Background()
	contract := suite.contractFixture(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	existing := domain.Accrual{
		AccrualID:   uuid.NewString(),
		ContractID:  contract.ContractID,
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(&contract, nil).Once()
	suite.mockAccrualRepo.On("ListAccrualsByContract", ctx, contract.ContractID).Return([]domain.Accrual{existing}, nil).Once()

	created, err := suite.service.GenerateAccruals(ctx, contract.ContractID, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(created)
	suite.mockAccrualRepo.AssertNotCalled(suite.T(), "SaveAccruals", mock.Anything, mock.Anything)
}

func (suite *AccrualServiceTestSuite) TestGenerateAccruals_CancelledContract() {
	ctx := context.Background()
	contract := suite.contractFixture(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	contract.Status = domain.ContractCancelled

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(&contract, nil).Once()

	_, err := suite.service.GenerateAccruals(ctx, contract.ContractID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

// --- CreateAccrual ---

func (suite *AccrualServiceTestSuite) TestCreateAccrual_RejectsNegativeFinal() {
	ctx := context.Background()
	contract := suite.contractFixture(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(&contract, nil).Once()

	req := dto.CreateAccrualRequest{
		ContractID:  contract.ContractID,
		PeriodStart: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		BaseAmount:  decimal.RequireFromString("100"),
		Adjustments: decPtr("-150"),
	}
	_, err := suite.service.CreateAccrual(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccrualRepo.AssertNotCalled(suite.T(), "SaveAccruals", mock.Anything, mock.Anything)
}

func strPtr(s string) *string {
	return &s
}

func TestAccrualServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccrualServiceTestSuite))
}
