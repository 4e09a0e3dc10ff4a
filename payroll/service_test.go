package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-engine/engine"
	"github.com/warp/workforce-engine/payroll"
	"github.com/warp/workforce-engine/provider"
	"github.com/warp/workforce-engine/provider/memory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var testWindow = engine.MonthWindow{"2023-01", "2023-02", "2023-03", "2023-04", "2023-05", "2023-06"}

// midJune is the pinned "now" for the window's latest month.
func midJune() time.Time {
	return time.Date(2023, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func seededService(t *testing.T) (*payroll.Service, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.SaveUser(ctx, engine.User{
		ID: "u1", Name: "Alice Zhang",
		BaseSalary: engine.NewMoneyFromInt(5000),
		HourlyRate: engine.NewMoneyFromInt(20),
	}))
	require.NoError(t, store.SaveUser(ctx, engine.User{
		ID: "u2", Name: "Bob Lin",
		BaseSalary: engine.NewMoneyFromInt(4000),
		HourlyRate: engine.NewMoneyFromInt(18),
	}))

	require.NoError(t, store.SaveTask(ctx, engine.Task{
		ID: "t-reg", UserID: "u1", Title: "API integration",
		StartDate: time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC),
		Completed: true, ActualHours: decimal.NewFromInt(8), Type: engine.TaskRegular,
	}))
	require.NoError(t, store.SaveTask(ctx, engine.Task{
		ID: "t-ot", UserID: "u1", Title: "Release support",
		StartDate: time.Date(2023, time.March, 11, 0, 0, 0, 0, time.UTC),
		Completed: true, ActualHours: decimal.NewFromInt(4), Type: engine.TaskOvertime,
	}))
	require.NoError(t, store.SaveTask(ctx, engine.Task{
		ID: "t-june", UserID: "u1", Title: "Quarterly planning",
		StartDate: time.Date(2023, time.June, 5, 0, 0, 0, 0, time.UTC),
		Completed: true, ActualHours: decimal.NewFromInt(6), Type: engine.TaskRegular,
	}))

	svc := payroll.NewService(store, store, testWindow)
	svc.Now = midJune
	return svc, store
}

// failingStore errors on every provider read.
type failingStore struct{}

func (failingStore) ListUsers(context.Context) ([]engine.User, error) {
	return nil, errors.New("directory offline")
}

func (failingStore) GetUser(context.Context, engine.UserID) (*engine.User, error) {
	return nil, errors.New("directory offline")
}

func (failingStore) ListTasks(context.Context, engine.UserID) ([]engine.Task, error) {
	return nil, errors.New("task log offline")
}

// =============================================================================
// GENERATE SALARY RECORDS
// =============================================================================

func TestGenerateSalaryRecords_AllUsers_FullWindow(t *testing.T) {
	// GIVEN: 2 users and a 6-month window
	// WHEN: Generating without a user filter
	// THEN: 12 records, each user ascending over the window,
	//       only the latest month unpaid

	svc, _ := seededService(t)

	records, err := svc.GenerateSalaryRecords(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, records, 12)

	for i, r := range records {
		expectMonth := testWindow[i%len(testWindow)]
		assert.Equal(t, expectMonth, r.Month)
		if r.Month == "2023-06" {
			assert.False(t, r.Paid, "latest month must be unpaid")
			assert.Nil(t, r.PayDate)
		} else {
			assert.True(t, r.Paid)
			require.NotNil(t, r.PayDate)
			assert.Equal(t, expectMonth+"-25T10:00:00Z", r.PayDate.Format(time.RFC3339))
		}
	}
}

func TestGenerateSalaryRecords_SingleUser(t *testing.T) {
	svc, _ := seededService(t)

	records, err := svc.GenerateSalaryRecords(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 6)

	// March carries the worked hours; the empty months are base-only.
	march := records[2]
	assert.Equal(t, "u1-2023-03", march.ID)
	assert.Equal(t, "8", march.RegularHours.String())
	assert.Equal(t, "4", march.OvertimeHours.String())
	assert.Equal(t, "120", march.OvertimePay.String())
	assert.Equal(t, "5120", march.TotalSalary.String())

	assert.Equal(t, "5000", records[0].TotalSalary.String())
}

func TestGenerateSalaryRecords_UnknownUser_EmptyNotError(t *testing.T) {
	svc, _ := seededService(t)

	records, err := svc.GenerateSalaryRecords(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGenerateSalaryRecords_Idempotent(t *testing.T) {
	// Same sources, same window, same records.
	svc, _ := seededService(t)

	first, err := svc.GenerateSalaryRecords(context.Background(), "u1")
	require.NoError(t, err)
	second, err := svc.GenerateSalaryRecords(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSalaryRecords_UpstreamFailure(t *testing.T) {
	svc := payroll.NewService(failingStore{}, failingStore{}, testWindow)
	svc.Now = midJune

	_, err := svc.GenerateSalaryRecords(context.Background(), "")
	assert.ErrorIs(t, err, provider.ErrUpstream)
}

// =============================================================================
// SALARY HISTORY
// =============================================================================

func TestSalaryHistory_NewestLast(t *testing.T) {
	svc, _ := seededService(t)

	history, err := svc.SalaryHistory(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, history, 6)
	assert.Equal(t, "2023-01", history[0].Month)
	assert.Equal(t, "2023-06", history[5].Month)
}

// =============================================================================
// CURRENT MONTH SALARY
// =============================================================================

func TestCurrentMonthSalary_UserWithTasksThisMonth(t *testing.T) {
	svc, _ := seededService(t)

	record, err := svc.CurrentMonthSalary(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "2023-06", record.Month)
	assert.Equal(t, "6", record.RegularHours.String())
	assert.False(t, record.Paid)
}

func TestCurrentMonthSalary_NoTasksThisMonth_Nil(t *testing.T) {
	// u2 never logged a task; "nothing this month" is nil, not an error.
	svc, _ := seededService(t)

	record, err := svc.CurrentMonthSalary(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCurrentMonthSalary_OnlyIncompleteTasksThisMonth_Nil(t *testing.T) {
	// Incomplete hours are estimates; a month of nothing but incomplete
	// tasks yields no record, same as a month with no tasks at all.
	svc, store := seededService(t)
	require.NoError(t, store.SaveTask(context.Background(), engine.Task{
		ID: "t-draft", UserID: "u2", Title: "Migration draft",
		StartDate: time.Date(2023, time.June, 8, 0, 0, 0, 0, time.UTC),
		Completed: false, ActualHours: decimal.NewFromInt(12), Type: engine.TaskRegular,
	}))

	record, err := svc.CurrentMonthSalary(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCurrentMonthSalary_UnknownUser_Nil(t *testing.T) {
	svc, _ := seededService(t)

	record, err := svc.CurrentMonthSalary(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCurrentMonthSalary_MonthOutsideWindow_Nil(t *testing.T) {
	svc, _ := seededService(t)
	svc.Now = func() time.Time {
		return time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)
	}

	record, err := svc.CurrentMonthSalary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, record)
}

// =============================================================================
// YEARLY SALARY
// =============================================================================

func TestYearlySalary_FoldsWindowRecords(t *testing.T) {
	svc, _ := seededService(t)

	summary, err := svc.YearlySalary(context.Background(), "u1", "2023")
	require.NoError(t, err)

	assert.Equal(t, "2023", summary.Year)
	require.Len(t, summary.MonthlySalaries, 6)
	// 6 x 5000 base + 120 overtime pay
	assert.Equal(t, "30000", summary.TotalBaseSalary.String())
	assert.Equal(t, "120", summary.TotalOvertimePay.String())
	assert.Equal(t, "30120", summary.TotalSalary.String())
}

func TestYearlySalary_MalformedYear(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.YearlySalary(context.Background(), "u1", "20-23")
	assert.ErrorIs(t, err, engine.ErrInvalidPeriod)
	assert.True(t, engine.IsInputValidation(err))
}
