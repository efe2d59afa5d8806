package payroll

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/arkalabs/payroll-engine-go/internal/domain/adjustment"
	"github.com/arkalabs/payroll-engine-go/internal/domain/attendance"
	"github.com/arkalabs/payroll-engine-go/internal/domain/employee"
	"github.com/arkalabs/payroll-engine-go/internal/domain/leave"
	"github.com/arkalabs/payroll-engine-go/internal/domain/payroll"
	"github.com/arkalabs/payroll-engine-go/internal/domain/user"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

func periodKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", employeeID, month, year)
}

type fakePayrollRepo struct {
	mu          sync.Mutex
	byPeriod    map[string]payroll.Record
	byID        map[string]payroll.Record
	nextID      int
	createCalls int

	// When set, GetByEmployeePeriod pretends no record exists even if one
	// does, simulating a concurrent request winning the insert between the
	// pre-check and Create.
	blindPrecheck bool
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		byPeriod: make(map[string]payroll.Record),
		byID:     make(map[string]payroll.Record),
	}
}

func (f *fakePayrollRepo) seed(record payroll.Record) payroll.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	record.ID = fmt.Sprintf("pay-%d", f.nextID)
	record.CreatedAt = time.Now()
	f.byPeriod[periodKey(record.EmployeeID, record.PeriodMonth, record.PeriodYear)] = record
	f.byID[record.ID] = record
	return record
}

func (f *fakePayrollRepo) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++

	key := periodKey(record.EmployeeID, record.PeriodMonth, record.PeriodYear)
	if _, exists := f.byPeriod[key]; exists {
		return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
	}

	f.nextID++
	record.ID = fmt.Sprintf("pay-%d", f.nextID)
	record.CreatedAt = time.Now()
	f.byPeriod[key] = record
	f.byID[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.byID[id]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return record, nil
}

func (f *fakePayrollRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blindPrecheck {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	record, ok := f.byPeriod[periodKey(employeeID, month, year)]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return record, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, filter payroll.Filter) ([]payroll.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]payroll.Record, 0, len(f.byID))
	for _, r := range f.byID {
		records = append(records, r)
	}
	return records, int64(len(records)), nil
}

func (f *fakePayrollRepo) Approve(ctx context.Context, ids []string, approvedBy string) ([]payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	var updated []payroll.Record
	for _, id := range ids {
		record, ok := f.byID[id]
		if !ok || record.Status != payroll.StatusDraft {
			continue
		}
		record.Status = payroll.StatusApproved
		record.ApprovedBy = &approvedBy
		record.ApprovedAt = &now
		f.byID[id] = record
		f.byPeriod[periodKey(record.EmployeeID, record.PeriodMonth, record.PeriodYear)] = record
		updated = append(updated, record)
	}
	return updated, nil
}

func (f *fakePayrollRepo) GetSummary(ctx context.Context, month, year int) (payroll.SummaryResponse, error) {
	return payroll.SummaryResponse{PeriodMonth: month, PeriodYear: year}, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		for _, id := range ids {
			if emp.ID == id {
				result = append(result, emp)
			}
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.EmploymentStatus == employee.EmploymentStatusActive {
			result = append(result, emp)
		}
	}
	return result, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) ListForPeriod(ctx context.Context, employeeIDs []string, month, year int) ([]attendance.Record, error) {
	return f.records, nil
}

type fakeLeaveRepo struct {
	records  []leave.Record
	balances map[string]leave.Balance
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leave.Record, error) {
	return f.records, nil
}

func (f *fakeLeaveRepo) GetBalances(ctx context.Context, employeeIDs []string, year int) (map[string]leave.Balance, error) {
	if f.balances == nil {
		return map[string]leave.Balance{}, nil
	}
	return f.balances, nil
}

type fakeAdjustmentRepo struct {
	bonuses    []adjustment.BonusRecord
	deductions []adjustment.DeductionRecord
}

func (f *fakeAdjustmentRepo) ListBonuses(ctx context.Context, employeeIDs []string, month, year int) ([]adjustment.BonusRecord, error) {
	return f.bonuses, nil
}

func (f *fakeAdjustmentRepo) ListDeductions(ctx context.Context, employeeIDs []string, month, year int) ([]adjustment.DeductionRecord, error) {
	return f.deductions, nil
}

// ===== HELPERS =====

type serviceFixture struct {
	payrollRepo *fakePayrollRepo
	service     payroll.PayrollService
}

func newServiceFixture(employees []employee.Employee) *serviceFixture {
	return newServiceFixtureWith(employees, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeAdjustmentRepo{})
}

func newServiceFixtureWith(
	employees []employee.Employee,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	adjustmentRepo adjustment.AdjustmentRepository,
) *serviceFixture {
	payrollRepo := newFakePayrollRepo()
	return &serviceFixture{
		payrollRepo: payrollRepo,
		service: NewPayrollService(
			payrollRepo,
			&fakeEmployeeRepo{employees: employees},
			attendanceRepo,
			leaveRepo,
			adjustmentRepo,
		),
	}
}

func authedContext(t *testing.T, userID, role string) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("user_id", userID))
	require.NoError(t, token.Set("role", role))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func generateRequest(employeeIDs ...string) payroll.GeneratePayrollRequest {
	return payroll.GeneratePayrollRequest{
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		EmployeeIDs: employeeIDs,
	}
}

// ===== GENERATION =====

func TestGenerate_AllActiveEmployees(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{
		testEmployee("emp-1", 3000),
		testEmployee("emp-2", 4500),
		{ID: "emp-3", EmploymentStatus: employee.EmploymentStatusResigned},
	})
	ctx := authedContext(t, "admin-1", "admin")

	result, err := fx.service.Generate(ctx, generateRequest())
	require.NoError(t, err)

	// The resigned employee is not part of the active set.
	assert.Len(t, result.Created, 2)
	assert.Empty(t, result.Conflicts)

	for _, created := range result.Created {
		assert.Equal(t, string(payroll.StatusDraft), created.Record.Status)
		assert.NotEmpty(t, created.Record.ID)
		assert.True(t, created.Record.NetSalary.Equal(created.Record.BaseSalary),
			"clean month net should equal base for %s", created.EmployeeID)
		require.NotNil(t, created.Record.Notes)
		assert.Contains(t, *created.Record.Notes, "22 working days")
	}
}

func TestGenerate_ExplicitSubset(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{
		testEmployee("emp-1", 3000),
		testEmployee("emp-2", 4500),
	})
	ctx := authedContext(t, "hr-1", "hr")

	result, err := fx.service.Generate(ctx, generateRequest("emp-2"))
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "emp-2", result.Created[0].EmployeeID)
}

func TestGenerate_ExplicitSubsetInactiveBecomesConflict(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{
		testEmployee("emp-1", 3000),
		{ID: "emp-2", EmploymentStatus: employee.EmploymentStatusResigned},
	})
	ctx := authedContext(t, "admin-1", "admin")

	// Naming an inactive employee explicitly must not produce a record.
	result, err := fx.service.Generate(ctx, generateRequest("emp-1", "emp-2"))
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "emp-1", result.Created[0].EmployeeID)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0], "emp-2")
	assert.Contains(t, result.Conflicts[0], "not active")
	assert.Equal(t, 1, fx.payrollRepo.createCalls)
}

func TestGenerate_DuplicateEmployeeIDsAreCollapsed(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	ctx := authedContext(t, "admin-1", "admin")

	result, err := fx.service.Generate(ctx, generateRequest("emp-1", "emp-1"))
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 1, fx.payrollRepo.createCalls)
}

func TestGenerate_UnknownEmployeeID(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	ctx := authedContext(t, "admin-1", "admin")

	_, err := fx.service.Generate(ctx, generateRequest("emp-1", "emp-missing"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGenerate_NoActiveEmployees(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{
		{ID: "emp-1", EmploymentStatus: employee.EmploymentStatusTerminated},
	})
	ctx := authedContext(t, "admin-1", "admin")

	_, err := fx.service.Generate(ctx, generateRequest())
	assert.ErrorIs(t, err, employee.ErrNoActiveEmployees)
}

func TestGenerate_InvalidPeriod(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	ctx := authedContext(t, "admin-1", "admin")

	cases := []struct {
		name  string
		month int
		year  int
	}{
		{"month zero", 0, testYear},
		{"month thirteen", 13, testYear},
		{"year before floor", testMonth, 2019},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.service.Generate(ctx, payroll.GeneratePayrollRequest{
				PeriodMonth: tc.month,
				PeriodYear:  tc.year,
			})
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestGenerate_RequiresElevatedRole(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	ctx := authedContext(t, "user-1", "employee")

	_, err := fx.service.Generate(ctx, generateRequest())
	assert.ErrorIs(t, err, user.ErrElevatedRoleRequired)
	assert.Equal(t, 0, fx.payrollRepo.createCalls)
}

func TestGenerate_NoIdentityInContext(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})

	_, err := fx.service.Generate(context.Background(), generateRequest())
	assert.Error(t, err)
	assert.Equal(t, 0, fx.payrollRepo.createCalls)
}

func TestGenerate_ExistingRecordBecomesConflict(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{
		testEmployee("emp-1", 3000),
		testEmployee("emp-2", 4500),
	})
	fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-1",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusDraft,
	})
	ctx := authedContext(t, "admin-1", "admin")

	result, err := fx.service.Generate(ctx, generateRequest())
	require.NoError(t, err)

	// The conflict never aborts the rest of the batch.
	require.Len(t, result.Created, 1)
	assert.Equal(t, "emp-2", result.Created[0].EmployeeID)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0], "emp-1")
	assert.Contains(t, result.Conflicts[0], "already exists")
}

func TestGenerate_ConstraintRaceBecomesConflict(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-1",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusDraft,
	})
	// The pre-check misses the existing row; only the insert constraint fires.
	fx.payrollRepo.blindPrecheck = true
	ctx := authedContext(t, "admin-1", "admin")

	result, err := fx.service.Generate(ctx, generateRequest())
	require.NoError(t, err)

	assert.Empty(t, result.Created)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0], "already exists")
}

func TestGenerate_IsIdempotentAcrossRepeatedCalls(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{
		testEmployee("emp-1", 3000),
		testEmployee("emp-2", 4500),
	})
	ctx := authedContext(t, "admin-1", "admin")

	first, err := fx.service.Generate(ctx, generateRequest())
	require.NoError(t, err)
	require.Len(t, first.Created, 2)

	second, err := fx.service.Generate(ctx, generateRequest())
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Len(t, second.Conflicts, 2)
	assert.Equal(t, 2, fx.payrollRepo.createCalls)
}

func TestGenerate_MissingBaseSalaryBecomesConflict(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{
		testEmployee("emp-1", 3000),
		{ID: "emp-2", EmploymentStatus: employee.EmploymentStatusActive},
	})
	ctx := authedContext(t, "admin-1", "admin")

	result, err := fx.service.Generate(ctx, generateRequest())
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "emp-1", result.Created[0].EmployeeID)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0], "emp-2")
}

func TestGenerate_AppliesDeductionsFromRecords(t *testing.T) {
	t.Parallel()
	attendanceRepo := &fakeAttendanceRepo{records: []attendance.Record{
		attendanceDay("emp-1", 2, attendance.StatusAbsent),
		attendanceDay("emp-1", 3, attendance.StatusLate),
	}}
	leaveRepo := &fakeLeaveRepo{
		records: []leave.Record{{
			EmployeeID: "emp-1",
			Type:       leave.TypeAnnual,
			StartDate:  day(8),
			EndDate:    day(12),
			DaysCount:  5,
			Status:     leave.StatusApproved,
		}},
		balances: map[string]leave.Balance{
			"emp-1": {EmployeeID: "emp-1", Year: testYear, AnnualTotal: 10, AnnualUsed: 8},
		},
	}
	adjustmentRepo := &fakeAdjustmentRepo{
		bonuses: []adjustment.BonusRecord{
			{EmployeeID: "emp-1", Amount: decimal.NewFromInt(500)},
		},
		deductions: []adjustment.DeductionRecord{
			{EmployeeID: "emp-1", Amount: decimal.NewFromInt(50)},
		},
	}
	fx := newServiceFixtureWith(
		[]employee.Employee{testEmployee("emp-1", 3000)},
		attendanceRepo, leaveRepo, adjustmentRepo,
	)
	ctx := authedContext(t, "admin-1", "admin")

	result, err := fx.service.Generate(ctx, generateRequest())
	require.NoError(t, err)
	require.Len(t, result.Created, 1)

	breakdown := result.Created[0].Breakdown
	dailyRate := decimal.NewFromInt(3000).Div(decimal.NewFromInt(22))
	expectedAttendance := dailyRate.Add(dailyRate.Mul(payroll.LateDeductionFactor))
	expectedLeave := dailyRate.Mul(decimal.NewFromInt(3))

	assert.Equal(t, 1, breakdown.AbsentDays)
	assert.Equal(t, 1, breakdown.LateDays)
	assert.Equal(t, 3, breakdown.UnpaidLeaveDays)
	assert.True(t, breakdown.AttendanceDeduction.Equal(expectedAttendance))
	assert.True(t, breakdown.LeaveDeduction.Equal(expectedLeave))
	assert.True(t, breakdown.TotalBonuses.Equal(decimal.NewFromInt(500)))
	assert.True(t, breakdown.ManualDeductions.Equal(decimal.NewFromInt(50)))
	assert.True(t, breakdown.GrossSalary.Equal(decimal.NewFromInt(3500)))

	expectedNet := decimal.NewFromInt(3500).
		Sub(expectedAttendance).Sub(expectedLeave).Sub(decimal.NewFromInt(50))
	assert.True(t, breakdown.NetSalary.Equal(expectedNet),
		"got %s, want %s", breakdown.NetSalary, expectedNet)
}

// ===== PREVIEW =====

func TestCalculateOnly_DoesNotPersist(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	ctx := authedContext(t, "admin-1", "admin")

	comp, err := fx.service.CalculateOnly(ctx, "emp-1", testMonth, testYear)
	require.NoError(t, err)

	assert.True(t, comp.NetSalary.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 0, fx.payrollRepo.createCalls)
}

func TestCalculateOnly_IgnoresExistingRecord(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-1",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusDraft,
	})
	ctx := authedContext(t, "admin-1", "admin")

	// Previewing is read-only, so an existing record is not a conflict.
	comp, err := fx.service.CalculateOnly(ctx, "emp-1", testMonth, testYear)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", comp.EmployeeID)
}

func TestCalculateOnly_UnknownEmployee(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(nil)
	ctx := authedContext(t, "admin-1", "admin")

	_, err := fx.service.CalculateOnly(ctx, "emp-missing", testMonth, testYear)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCalculateOnly_RequiresElevatedRole(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	ctx := authedContext(t, "user-1", "employee")

	_, err := fx.service.CalculateOnly(ctx, "emp-1", testMonth, testYear)
	assert.ErrorIs(t, err, user.ErrElevatedRoleRequired)
}

// ===== APPROVAL =====

func TestApprove_StampsApproverAndTimestamp(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	draft := fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-1",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusDraft,
	})
	ctx := authedContext(t, "hr-1", "hr")

	result, err := fx.service.Approve(ctx, payroll.ApprovePayrollRequest{PayrollIDs: []string{draft.ID}})
	require.NoError(t, err)

	require.Len(t, result.Approved, 1)
	approved := result.Approved[0]
	assert.Equal(t, string(payroll.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "hr-1", *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestApprove_AlreadyApprovedIsSilentlyExcluded(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{
		testEmployee("emp-1", 3000),
		testEmployee("emp-2", 4500),
	})
	draft := fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-1",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusDraft,
	})
	already := fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-2",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusApproved,
	})
	ctx := authedContext(t, "admin-1", "admin")

	result, err := fx.service.Approve(ctx, payroll.ApprovePayrollRequest{
		PayrollIDs: []string{draft.ID, already.ID, "pay-missing"},
	})
	require.NoError(t, err)

	require.Len(t, result.Approved, 1)
	assert.Equal(t, draft.ID, result.Approved[0].ID)
}

func TestApprove_IsOneWay(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	draft := fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-1",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusDraft,
	})
	ctx := authedContext(t, "admin-1", "admin")

	first, err := fx.service.Approve(ctx, payroll.ApprovePayrollRequest{PayrollIDs: []string{draft.ID}})
	require.NoError(t, err)
	require.Len(t, first.Approved, 1)

	// A second approval finds no draft rows left to transition.
	second, err := fx.service.Approve(ctx, payroll.ApprovePayrollRequest{PayrollIDs: []string{draft.ID}})
	require.NoError(t, err)
	assert.Empty(t, second.Approved)

	stored, err := fx.payrollRepo.GetByID(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "admin-1", *stored.ApprovedBy)
}

func TestApprove_EmptyIDs(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(nil)
	ctx := authedContext(t, "admin-1", "admin")

	_, err := fx.service.Approve(ctx, payroll.ApprovePayrollRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestApprove_RequiresElevatedRole(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	draft := fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-1",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusDraft,
	})
	ctx := authedContext(t, "user-1", "employee")

	_, err := fx.service.Approve(ctx, payroll.ApprovePayrollRequest{PayrollIDs: []string{draft.ID}})
	assert.ErrorIs(t, err, user.ErrElevatedRoleRequired)

	stored, err := fx.payrollRepo.GetByID(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, stored.Status)
}

// ===== READS =====

func TestGetRecord_NotFound(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture(nil)

	_, err := fx.service.GetRecord(context.Background(), "pay-missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestListRecords_ReturnsPageMeta(t *testing.T) {
	t.Parallel()
	fx := newServiceFixture([]employee.Employee{testEmployee("emp-1", 3000)})
	fx.payrollRepo.seed(payroll.Record{
		EmployeeID:  "emp-1",
		PeriodMonth: testMonth,
		PeriodYear:  testYear,
		Status:      payroll.StatusDraft,
	})

	result, err := fx.service.ListRecords(context.Background(), payroll.Filter{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	require.Len(t, result.Data, 1)
}
