package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rentledger/rentledger/internal/core/domain"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
	"github.com/rentledger/rentledger/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SnapshotAccrualRows(ctx context.Context) ([]domain.AccrualReportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccrualReportRow), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade

	reference time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo, 0)
	suite.reference = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func row(propertyID *string, address string, due time.Time, final, paid string) domain.AccrualReportRow {
	return domain.AccrualReportRow{
		AccrualID:    uuid.NewString(),
		ContractID:   uuid.NewString(),
		PropertyID:   propertyID,
		Address:      address,
		DueDate:      due,
		FinalAmount:  decimal.RequireFromString(final),
		PaidAmount:   decimal.RequireFromString(paid),
		CurrencyCode: "EUR",
	}
}

func (suite *ReportingServiceTestSuite) TestPropertyReport_GroupsAndRollsUp() {
	ctx := context.Background()
	propertyID := uuid.NewString()

	rows := []domain.AccrualReportRow{
		// Property group: one overdue (due 2025-05-10, 36 days behind), one paid.
		row(&propertyID, "12 High Street", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), "1000", "0"),
		row(&propertyID, "12 High Street", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), "1000", "1000"),
		// Address-fallback group: not yet due, partially paid.
		row(nil, "7 Mill Lane", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), "800", "300"),
	}
	suite.mockRepo.On("SnapshotAccrualRows", ctx).Return(rows, nil).Once()

	groups, err := suite.service.PropertyReport(ctx, suite.reference)

	suite.Require().NoError(err)
	suite.Require().Len(groups, 2)

	// Sorted by group key: the property UUID vs the "addr:" prefix; find each
	// by key rather than relying on UUID ordering.
	byKey := make(map[string]domain.PropertyGroup, len(groups))
	for _, g := range groups {
		byKey[g.GroupKey] = g
	}

	property, ok := byKey[propertyID]
	suite.Require().True(ok)
	suite.Equal(2, property.AccrualCount)
	suite.Equal(1, property.PaidCount)
	suite.Equal(1, property.UnpaidCount)
	suite.Equal(1, property.OverdueCount)
	suite.Equal(36, property.MaxOverdueDays)
	suite.True(property.TotalFinal.Equal(decimal.RequireFromString("2000")))
	suite.True(property.TotalPaid.Equal(decimal.RequireFromString("1000")))
	suite.True(property.TotalBalance.Equal(decimal.RequireFromString("1000")))
	suite.Equal(domain.StatusOverdue, property.Status)

	fallback, ok := byKey["addr:7 Mill Lane"]
	suite.Require().True(ok)
	suite.Nil(fallback.PropertyID)
	suite.Equal("7 Mill Lane", fallback.Address)
	suite.Equal(1, fallback.AccrualCount)
	suite.Equal(0, fallback.OverdueCount)
	suite.Equal(domain.StatusPartial, fallback.Status)
}

func (suite *ReportingServiceTestSuite) TestPropertyReport_StatusIsRecomputedAtReferenceDate() {
	ctx := context.Background()
	due := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	rows := []domain.AccrualReportRow{
		row(nil, "7 Mill Lane", due, "800", "0"),
	}
	suite.mockRepo.On("SnapshotAccrualRows", ctx).Return(rows, nil).Twice()

	// Before the due date the accrual is merely planned.
	before, err := suite.service.PropertyReport(ctx, due.AddDate(0, 0, -5))
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPlanned, before[0].Status)

	// The same stored row reports overdue once the reference date passes it.
	after, err := suite.service.PropertyReport(ctx, due.AddDate(0, 0, 5))
	suite.Require().NoError(err)
	suite.Equal(domain.StatusOverdue, after[0].Status)
	suite.Equal(5, after[0].MaxOverdueDays)
}

func (suite *ReportingServiceTestSuite) TestDashboardKPI() {
	ctx := context.Background()
	rows := []domain.AccrualReportRow{
		row(nil, "7 Mill Lane", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), "1000", "250"),
		row(nil, "7 Mill Lane", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), "1000", "750"),
	}
	suite.mockRepo.On("SnapshotAccrualRows", ctx).Return(rows, nil).Once()

	kpi, err := suite.service.DashboardKPI(ctx, suite.reference)

	suite.Require().NoError(err)
	suite.Equal(2, kpi.AccrualCount)
	suite.True(kpi.TotalAccrued.Equal(decimal.RequireFromString("2000")))
	suite.True(kpi.TotalPaid.Equal(decimal.RequireFromString("1000")))
	suite.True(kpi.TotalOutstanding.Equal(decimal.RequireFromString("1000")))
	suite.Equal(1, kpi.OverdueCount)
	suite.True(kpi.OverdueAmount.Equal(decimal.RequireFromString("750")))
	suite.True(kpi.CollectionRate.Equal(decimal.RequireFromString("0.5")))
}

func (suite *ReportingServiceTestSuite) TestDashboardKPI_EmptyLedger() {
	ctx := context.Background()
	suite.mockRepo.On("SnapshotAccrualRows", ctx).Return([]domain.AccrualReportRow{}, nil).Once()

	kpi, err := suite.service.DashboardKPI(ctx, suite.reference)

	suite.Require().NoError(err)
	suite.Equal(0, kpi.AccrualCount)
	suite.True(kpi.CollectionRate.IsZero())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
