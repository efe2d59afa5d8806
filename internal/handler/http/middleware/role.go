package middleware

import (
	"net/http"

	"github.com/arkalabs/payroll-engine-go/internal/domain/user"
	"github.com/arkalabs/payroll-engine-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireElevated requires the admin or hr role. The payroll service enforces
// the same precondition again before mutating anything; this middleware just
// rejects early.
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrElevatedRoleRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrElevatedRoleRequired)
			return
		}

		if !user.CanManagePayroll(user.Role(roleStr)) {
			response.HandleError(w, user.ErrElevatedRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
