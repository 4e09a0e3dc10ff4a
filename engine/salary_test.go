package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-engine/engine"
)

func alice() engine.User {
	return engine.User{
		ID:         "u1",
		Name:       "Alice Zhang",
		BaseSalary: engine.NewMoneyFromInt(5000),
		HourlyRate: engine.NewMoneyFromInt(20),
	}
}

// =============================================================================
// SALARY COMPUTATION
// =============================================================================

func TestComputeSalary_RegularPlusOvertime(t *testing.T) {
	// GIVEN: base 5000, rate 20; one completed regular 8h task and one
	//        completed overtime 4h task in 2023-03
	// THEN:  regular=8, overtime=4, overtimePay=4*20*1.5=120, total=5120

	tasks := []engine.Task{
		task("t1", "u1", march(6), true, 8, engine.TaskRegular),
		task("t2", "u1", march(10), true, 4, engine.TaskOvertime),
	}

	record, err := engine.ComputeSalary(alice(), tasks, "2023-03", false)
	require.NoError(t, err)

	assert.Equal(t, "u1-2023-03", record.ID)
	assert.Equal(t, "Alice Zhang", record.UserName)
	assert.Equal(t, "8", record.RegularHours.String())
	assert.Equal(t, "4", record.OvertimeHours.String())
	assert.Equal(t, "5000", record.BaseSalary.String())
	assert.Equal(t, "120", record.OvertimePay.String())
	assert.Equal(t, "5120", record.TotalSalary.String())
}

func TestComputeSalary_MoneyInvariants(t *testing.T) {
	// totalSalary == baseSalary + overtimePay, and
	// overtimePay == overtimeHours * hourlyRate * 1.5, for a fractional log.
	tasks := []engine.Task{
		task("t1", "u1", march(2), true, 7.5, engine.TaskOvertime),
		task("t2", "u1", march(9), true, 6, engine.TaskUrgent),
	}

	record, err := engine.ComputeSalary(alice(), tasks, "2023-03", false)
	require.NoError(t, err)

	assert.True(t, record.TotalSalary.Equal(record.BaseSalary.Add(record.OvertimePay)))
	// 7.5 * 20 * 1.5 = 225
	assert.Equal(t, "225", record.OvertimePay.String())
}

func TestComputeSalary_IncompleteOvertimeTask_ContributesNothing(t *testing.T) {
	tasks := []engine.Task{
		task("t1", "u1", march(6), false, 10, engine.TaskOvertime),
	}

	record, err := engine.ComputeSalary(alice(), tasks, "2023-03", false)
	require.NoError(t, err)

	assert.True(t, record.OvertimeHours.IsZero())
	assert.True(t, record.OvertimePay.IsZero())
	assert.True(t, record.TotalSalary.Equal(record.BaseSalary))
}

func TestComputeSalary_NoTasks_BaseSalaryOnly(t *testing.T) {
	record, err := engine.ComputeSalary(alice(), nil, "2023-03", false)
	require.NoError(t, err)
	assert.Equal(t, "5000", record.TotalSalary.String())
}

func TestComputeSalary_MalformedMonth_RejectedBeforeComputation(t *testing.T) {
	_, err := engine.ComputeSalary(alice(), nil, "2023-3", false)
	assert.ErrorIs(t, err, engine.ErrInvalidPeriod)
}

// =============================================================================
// PAY STATUS - Latest month is always unpaid
// =============================================================================

func TestComputeSalary_PaidMonth_HasConventionalPayDate(t *testing.T) {
	record, err := engine.ComputeSalary(alice(), nil, "2023-03", false)
	require.NoError(t, err)

	assert.True(t, record.Paid)
	require.NotNil(t, record.PayDate)
	assert.Equal(t, "2023-03-25T10:00:00Z", record.PayDate.UTC().Format(time.RFC3339))
}

func TestComputeSalary_LatestMonth_Unpaid(t *testing.T) {
	record, err := engine.ComputeSalary(alice(), nil, "2023-06", true)
	require.NoError(t, err)

	assert.False(t, record.Paid)
	assert.Nil(t, record.PayDate)
}

// =============================================================================
// YEARLY ROLLUP - Order-independent fold, ordered result
// =============================================================================

func yearRecords(t *testing.T) []engine.SalaryRecord {
	t.Helper()
	user := alice()
	tasks := []engine.Task{
		task("t1", "u1", time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC), true, 4, engine.TaskOvertime),
		task("t2", "u1", march(10), true, 8, engine.TaskRegular),
		task("t3", "u1", time.Date(2023, time.May, 20, 0, 0, 0, 0, time.UTC), true, 2, engine.TaskOvertime),
	}

	var records []engine.SalaryRecord
	for _, month := range []string{"2023-01", "2023-02", "2023-03", "2023-04", "2023-05", "2023-06"} {
		record, err := engine.ComputeSalary(user, tasks, month, month == "2023-06")
		require.NoError(t, err)
		records = append(records, record)
	}
	return records
}

func TestComputeYearly_TotalsMatchMonthlyList(t *testing.T) {
	summary, err := engine.ComputeYearly("2023", yearRecords(t))
	require.NoError(t, err)

	base := engine.NewMoneyFromInt(0)
	overtime := engine.NewMoneyFromInt(0)
	total := engine.NewMoneyFromInt(0)
	for _, r := range summary.MonthlySalaries {
		base = base.Add(r.BaseSalary)
		overtime = overtime.Add(r.OvertimePay)
		total = total.Add(r.TotalSalary)
	}

	assert.True(t, summary.TotalBaseSalary.Equal(base))
	assert.True(t, summary.TotalOvertimePay.Equal(overtime))
	assert.True(t, summary.TotalSalary.Equal(total))
	assert.Len(t, summary.MonthlySalaries, 6)
}

func TestComputeYearly_InputOrderDoesNotMatter(t *testing.T) {
	records := yearRecords(t)

	forward, err := engine.ComputeYearly("2023", records)
	require.NoError(t, err)

	reversed := make([]engine.SalaryRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	backward, err := engine.ComputeYearly("2023", reversed)
	require.NoError(t, err)

	assert.True(t, forward.TotalSalary.Equal(backward.TotalSalary))
	assert.Equal(t, forward.MonthlySalaries, backward.MonthlySalaries,
		"monthly list must come back ascending regardless of input order")
	for i := 1; i < len(backward.MonthlySalaries); i++ {
		assert.Less(t, backward.MonthlySalaries[i-1].Month, backward.MonthlySalaries[i].Month)
	}
}

func TestComputeYearly_FiltersOtherYears(t *testing.T) {
	records := yearRecords(t)
	other, err := engine.ComputeSalary(alice(), nil, "2022-12", false)
	require.NoError(t, err)
	records = append(records, other)

	summary, err := engine.ComputeYearly("2023", records)
	require.NoError(t, err)
	assert.Len(t, summary.MonthlySalaries, 6)
}

func TestComputeYearly_MalformedYear(t *testing.T) {
	_, err := engine.ComputeYearly("23", nil)
	assert.ErrorIs(t, err, engine.ErrInvalidPeriod)

	_, err = engine.ComputeYearly("twenty", nil)
	assert.ErrorIs(t, err, engine.ErrInvalidPeriod)
}
