/*
salary.go - Salary records and yearly rollups

PURPOSE:
  Combines a user's pay parameters with the work-hour aggregator's output
  to produce the canonical per-month salary record, and folds months into
  yearly summaries.

THE MONEY INVARIANTS:
  OvertimePay = OvertimeHours x HourlyRate x 1.5
  TotalSalary = BaseSalary + OvertimePay

PAY STATUS:
  Every month strictly before the latest month of the evaluated window is
  paid, with a pay date of the 25th at 10:00 UTC. The latest month is always
  unpaid with no pay date. This is a window convention standing in for a real
  payroll event feed; the IsLatest input isolates the rule so a payment-event
  source can replace it without touching the arithmetic.

YEARLY ROLLUP:
  ComputeYearly is a pure fold: totals are order-independent, but the
  per-month list in the result is always ascending chronological regardless
  of input order.

SEE ALSO:
  - hours.go: The HourSplit feeding each record
  - payroll/service.go: The query facade driving these computations
*/
package engine

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// overtimeMultiplier is the statutory overtime premium: 1.5x the hourly rate.
var overtimeMultiplier = decimal.NewFromFloat(1.5)

// =============================================================================
// SALARY RECORD - Canonical derived pay statement for one user-month
// =============================================================================

// SalaryRecord is a value object recomputed on demand; it is never stored
// independently and holds no back-references.
type SalaryRecord struct {
	ID            string // "{userID}-{month}"
	UserID        UserID
	UserName      string
	Month         string // YYYY-MM
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	BaseSalary    Money
	OvertimePay   Money
	TotalSalary   Money
	Paid          bool
	PayDate       *time.Time
}

// ComputeSalary derives the salary record for one user and month from the
// user's task log. isLatest marks the most recent month of the evaluated
// window, which is always unpaid.
func ComputeSalary(user User, tasks []Task, month string, isLatest bool) (SalaryRecord, error) {
	if _, err := parseMonth(month); err != nil {
		return SalaryRecord{}, err
	}

	split, err := MonthHours(tasks, user.ID, month)
	if err != nil {
		return SalaryRecord{}, err
	}

	overtimePay := user.HourlyRate.Mul(split.Overtime).Mul(overtimeMultiplier)

	record := SalaryRecord{
		ID:            string(user.ID) + "-" + month,
		UserID:        user.ID,
		UserName:      user.Name,
		Month:         month,
		RegularHours:  split.Regular,
		OvertimeHours: split.Overtime,
		BaseSalary:    user.BaseSalary,
		OvertimePay:   overtimePay,
		TotalSalary:   user.BaseSalary.Add(overtimePay),
		Paid:          !isLatest,
	}

	if record.Paid {
		payDate := PayDateFor(month)
		record.PayDate = &payDate
	}

	return record, nil
}

// PayDateFor returns the conventional pay date for a month:
// the 25th at 10:00 UTC.
func PayDateFor(month string) time.Time {
	start, err := parseMonth(month)
	if err != nil {
		return time.Time{}
	}
	return time.Date(start.Year(), start.Month(), 25, 10, 0, 0, 0, time.UTC)
}

// =============================================================================
// YEARLY SUMMARY - Pure fold over one year's salary records
// =============================================================================

type YearlySummary struct {
	Year             string
	TotalBaseSalary  Money
	TotalOvertimePay Money
	TotalSalary      Money
	MonthlySalaries  []SalaryRecord
}

// ValidYear reports whether the key is a four-digit year.
func ValidYear(year string) bool {
	if len(year) != 4 {
		return false
	}
	_, err := strconv.Atoi(year)
	return err == nil
}

// ComputeYearly folds salary records into a yearly summary, keeping only
// records whose month falls in the given year. Input order does not affect
// the totals; the kept list is sorted ascending by month.
func ComputeYearly(year string, records []SalaryRecord) (YearlySummary, error) {
	if !ValidYear(year) {
		return YearlySummary{}, &InvalidPeriodError{Key: year}
	}

	summary := YearlySummary{
		Year:             year,
		TotalBaseSalary:  Money{Value: decimal.Zero},
		TotalOvertimePay: Money{Value: decimal.Zero},
		TotalSalary:      Money{Value: decimal.Zero},
		MonthlySalaries:  []SalaryRecord{},
	}

	for _, r := range records {
		if len(r.Month) < 4 || r.Month[:4] != year {
			continue
		}
		summary.TotalBaseSalary = summary.TotalBaseSalary.Add(r.BaseSalary)
		summary.TotalOvertimePay = summary.TotalOvertimePay.Add(r.OvertimePay)
		summary.TotalSalary = summary.TotalSalary.Add(r.TotalSalary)
		summary.MonthlySalaries = append(summary.MonthlySalaries, r)
	}

	sort.Slice(summary.MonthlySalaries, func(i, j int) bool {
		return summary.MonthlySalaries[i].Month < summary.MonthlySalaries[j].Month
	})

	return summary, nil
}
