package main

import (
	"fmt"
	"net/http"

	"github.com/arkalabs/payroll-engine-go/internal/config"
	appHTTP "github.com/arkalabs/payroll-engine-go/internal/handler/http"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/database"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/jwt"
	"github.com/arkalabs/payroll-engine-go/internal/repository/postgresql"
	payrollService "github.com/arkalabs/payroll-engine-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, attendanceRepo, leaveRepo, adjustmentRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
