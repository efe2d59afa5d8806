package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arkalabs/payroll-engine-go/internal/domain/adjustment"
	"github.com/arkalabs/payroll-engine-go/internal/domain/attendance"
	"github.com/arkalabs/payroll-engine-go/internal/domain/employee"
	"github.com/arkalabs/payroll-engine-go/internal/domain/leave"
	"github.com/arkalabs/payroll-engine-go/internal/domain/payroll"
	"github.com/arkalabs/payroll-engine-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

// generateWorkers caps per-employee fan-out during generation.
const generateWorkers = 8

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	adjustmentRepo adjustment.AdjustmentRepository
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	adjustmentRepo adjustment.AdjustmentRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// Helper to get user_id and role from JWT context
func claimsFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", user.ErrIdentityNotResolvable
	}

	roleStr, _ := claims["role"].(string)

	return userID, user.Role(roleStr), nil
}

// requireElevated resolves the caller and enforces the admin/hr precondition
// before any computation or mutation happens.
func requireElevated(ctx context.Context) (userID string, err error) {
	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	if !user.CanManagePayroll(role) {
		return "", user.ErrElevatedRoleRequired
	}
	return userID, nil
}

// periodInputs holds the raw records for one generation request, grouped per
// employee so each worker reads only its own slices.
type periodInputs struct {
	attendance map[string][]attendance.Record
	leaves     map[string][]leave.Record
	balances   map[string]leave.Balance
	bonuses    map[string][]adjustment.BonusRecord
	deductions map[string][]adjustment.DeductionRecord
}

func (s *PayrollServiceImpl) loadPeriodInputs(ctx context.Context, employeeIDs []string, month, year int) (periodInputs, error) {
	from, to := PeriodRange(month, year)

	attendanceRecords, err := s.attendanceRepo.ListForPeriod(ctx, employeeIDs, month, year)
	if err != nil {
		return periodInputs{}, fmt.Errorf("failed to load attendance records: %w", err)
	}

	leaveRecords, err := s.leaveRepo.ListApprovedOverlapping(ctx, employeeIDs, from, to)
	if err != nil {
		return periodInputs{}, fmt.Errorf("failed to load leave records: %w", err)
	}

	// Balance is looked up for the target calculation year, not the leave's
	// own year.
	balances, err := s.leaveRepo.GetBalances(ctx, employeeIDs, year)
	if err != nil {
		return periodInputs{}, fmt.Errorf("failed to load leave balances: %w", err)
	}

	bonusRecords, err := s.adjustmentRepo.ListBonuses(ctx, employeeIDs, month, year)
	if err != nil {
		return periodInputs{}, fmt.Errorf("failed to load bonus records: %w", err)
	}

	deductionRecords, err := s.adjustmentRepo.ListDeductions(ctx, employeeIDs, month, year)
	if err != nil {
		return periodInputs{}, fmt.Errorf("failed to load deduction records: %w", err)
	}

	in := periodInputs{
		attendance: make(map[string][]attendance.Record),
		leaves:     make(map[string][]leave.Record),
		balances:   balances,
		bonuses:    make(map[string][]adjustment.BonusRecord),
		deductions: make(map[string][]adjustment.DeductionRecord),
	}
	for _, rec := range attendanceRecords {
		in.attendance[rec.EmployeeID] = append(in.attendance[rec.EmployeeID], rec)
	}
	for _, rec := range leaveRecords {
		in.leaves[rec.EmployeeID] = append(in.leaves[rec.EmployeeID], rec)
	}
	for _, rec := range bonusRecords {
		in.bonuses[rec.EmployeeID] = append(in.bonuses[rec.EmployeeID], rec)
	}
	for _, rec := range deductionRecords {
		in.deductions[rec.EmployeeID] = append(in.deductions[rec.EmployeeID], rec)
	}

	return in, nil
}

func (in periodInputs) balanceFor(employeeID string, year int) leave.Balance {
	if b, ok := in.balances[employeeID]; ok {
		return b
	}
	// No balance row means no entitlement; backed leave is then fully unpaid.
	return leave.Balance{EmployeeID: employeeID, Year: year}
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	if _, err := requireElevated(ctx); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	employees, conflicts, err := s.resolveEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	// Zero working days would poison every daily rate downstream; refuse the
	// whole request before any side effect.
	if WorkingDays(req.PeriodMonth, req.PeriodYear) == 0 {
		return payroll.GeneratePayrollResponse{}, payroll.ErrNoWorkingDaysInPeriod
	}

	employeeIDs := make([]string, 0, len(employees))
	for _, emp := range employees {
		employeeIDs = append(employeeIDs, emp.ID)
	}

	inputs, err := s.loadPeriodInputs(ctx, employeeIDs, req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	// Per-employee work is independent; a failure for one employee is
	// recorded as a conflict and must never abort its siblings, so workers
	// always return nil.
	var (
		mu      sync.Mutex
		created []payroll.CreatedPayroll
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generateWorkers)

	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			result, conflict := s.generateForEmployee(gctx, emp, req.PeriodMonth, req.PeriodYear, inputs)
			mu.Lock()
			defer mu.Unlock()
			if conflict != "" {
				conflicts = append(conflicts, conflict)
				return nil
			}
			created = append(created, result)
			return nil
		})
	}
	_ = g.Wait()

	return payroll.GeneratePayrollResponse{
		Created:   created,
		Conflicts: conflicts,
	}, nil
}

// resolveEmployees returns the employees eligible for generation. Only active
// employees are eligible; explicitly named inactive ones come back as
// per-employee conflicts rather than silently receiving a payroll record.
func (s *PayrollServiceImpl) resolveEmployees(ctx context.Context, employeeIDs []string) ([]employee.Employee, []string, error) {
	if len(employeeIDs) > 0 {
		unique := make([]string, 0, len(employeeIDs))
		seen := make(map[string]struct{}, len(employeeIDs))
		for _, id := range employeeIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			unique = append(unique, id)
		}

		employees, err := s.employeeRepo.GetByIDs(ctx, unique)
		if err != nil {
			return nil, nil, err
		}
		if len(employees) != len(unique) {
			return nil, nil, employee.ErrEmployeeNotFound
		}

		active := make([]employee.Employee, 0, len(employees))
		var conflicts []string
		for _, emp := range employees {
			if emp.EmploymentStatus != employee.EmploymentStatusActive {
				conflicts = append(conflicts, fmt.Sprintf("employee %s is not active", emp.ID))
				continue
			}
			active = append(active, emp)
		}
		return active, conflicts, nil
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(employees) == 0 {
		return nil, nil, employee.ErrNoActiveEmployees
	}
	return employees, nil, nil
}

// generateForEmployee runs the read-compute-write sequence for one employee.
// The pre-check is only a fast path; the store's unique constraint on
// (employee, month, year) is the authoritative idempotency signal, so a
// constrained-insert rejection from a concurrent request is downgraded to the
// same conflict as the pre-check hit.
func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, emp employee.Employee, month, year int, inputs periodInputs) (payroll.CreatedPayroll, string) {
	_, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, month, year)
	if err == nil {
		return payroll.CreatedPayroll{}, fmt.Sprintf("payroll already exists for employee %s", emp.ID)
	}
	if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.CreatedPayroll{}, fmt.Sprintf("employee %s: failed to check existing payroll: %v", emp.ID, err)
	}

	comp, err := Calculate(
		emp, month, year,
		inputs.bonuses[emp.ID],
		inputs.deductions[emp.ID],
		inputs.attendance[emp.ID],
		inputs.leaves[emp.ID],
		inputs.balanceFor(emp.ID, year),
	)
	if err != nil {
		return payroll.CreatedPayroll{}, fmt.Sprintf("employee %s: %v", emp.ID, err)
	}

	notes := buildAuditNotes(comp)
	record := payroll.Record{
		EmployeeID:          emp.ID,
		PeriodMonth:         month,
		PeriodYear:          year,
		BaseSalary:          comp.BaseSalary,
		TotalBonuses:        comp.TotalBonuses,
		AttendanceDeduction: comp.AttendanceDeduction,
		LeaveDeduction:      comp.LeaveDeduction,
		ManualDeductions:    comp.ManualDeductions,
		TotalDeductions:     comp.TotalDeductions,
		GrossSalary:         comp.GrossSalary,
		NetSalary:           comp.NetSalary,
		Notes:               &notes,
		Status:              payroll.StatusDraft,
	}

	createdRec, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
			return payroll.CreatedPayroll{}, fmt.Sprintf("payroll already exists for employee %s", emp.ID)
		}
		return payroll.CreatedPayroll{}, fmt.Sprintf("employee %s: failed to create payroll record: %v", emp.ID, err)
	}

	return payroll.CreatedPayroll{
		EmployeeID: emp.ID,
		Record:     mapToRecordResponse(createdRec),
		Breakdown:  comp,
	}, ""
}

// buildAuditNotes renders the deduction breakdown persisted alongside the
// record for audit purposes.
func buildAuditNotes(c payroll.Computation) string {
	return fmt.Sprintf(
		"%d working days, daily rate %s; %d absent, %d late (attendance deduction %s); %d unpaid leave days (leave deduction %s); manual deductions %s",
		c.WorkingDays, c.DailyRate.StringFixed(2),
		c.AbsentDays, c.LateDays, c.AttendanceDeduction.StringFixed(2),
		c.UnpaidLeaveDays, c.LeaveDeduction.StringFixed(2),
		c.ManualDeductions.StringFixed(2),
	)
}

// CalculateOnly is the preview variant: it runs the calculator for a single
// employee without persisting and without checking for an existing record.
func (s *PayrollServiceImpl) CalculateOnly(ctx context.Context, employeeID string, month, year int) (payroll.Computation, error) {
	req := payroll.GeneratePayrollRequest{PeriodMonth: month, PeriodYear: year}
	if err := req.Validate(); err != nil {
		return payroll.Computation{}, err
	}

	if _, err := requireElevated(ctx); err != nil {
		return payroll.Computation{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Computation{}, err
	}

	inputs, err := s.loadPeriodInputs(ctx, []string{emp.ID}, month, year)
	if err != nil {
		return payroll.Computation{}, err
	}

	return Calculate(
		emp, month, year,
		inputs.bonuses[emp.ID],
		inputs.deductions[emp.ID],
		inputs.attendance[emp.ID],
		inputs.leaves[emp.ID],
		inputs.balanceFor(emp.ID, year),
	)
}

// ========== APPROVAL ==========

func (s *PayrollServiceImpl) Approve(ctx context.Context, req payroll.ApprovePayrollRequest) (payroll.ApprovePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ApprovePayrollResponse{}, err
	}

	userID, err := requireElevated(ctx)
	if err != nil {
		return payroll.ApprovePayrollResponse{}, err
	}

	// Only draft records among the given ids transition; ids already
	// approved or nonexistent are silently excluded from the result.
	approved, err := s.payrollRepo.Approve(ctx, req.PayrollIDs, userID)
	if err != nil {
		return payroll.ApprovePayrollResponse{}, err
	}

	return payroll.ApprovePayrollResponse{Approved: mapToRecordResponses(approved)}, nil
}

// ========== READS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.Filter) (payroll.ListRecordResponse, error) {
	records, totalCount, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListRecordResponse{}, err
	}

	return payroll.ListRecordResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, month, year int) (payroll.SummaryResponse, error) {
	return s.payrollRepo.GetSummary(ctx, month, year)
}

// ========== HELPERS ==========

func mapToRecordResponse(r payroll.Record) payroll.RecordResponse {
	var approvedAtStr *string
	if r.ApprovedAt != nil {
		str := r.ApprovedAt.Format(time.RFC3339)
		approvedAtStr = &str
	}

	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return payroll.RecordResponse{
		ID:                  r.ID,
		EmployeeID:          r.EmployeeID,
		EmployeeName:        employeeName,
		EmployeeCode:        employeeCode,
		PeriodMonth:         r.PeriodMonth,
		PeriodYear:          r.PeriodYear,
		BaseSalary:          r.BaseSalary,
		TotalBonuses:        r.TotalBonuses,
		AttendanceDeduction: r.AttendanceDeduction,
		LeaveDeduction:      r.LeaveDeduction,
		ManualDeductions:    r.ManualDeductions,
		TotalDeductions:     r.TotalDeductions,
		GrossSalary:         r.GrossSalary,
		NetSalary:           r.NetSalary,
		Status:              string(r.Status),
		ApprovedBy:          r.ApprovedBy,
		ApprovedAt:          approvedAtStr,
		Notes:               r.Notes,
	}
}

func mapToRecordResponses(records []payroll.Record) []payroll.RecordResponse {
	result := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
