package middleware

import (
	"net/http"

	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles.
// Role is read from context (set by AuthMiddleware from JWT claims).
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireDesk allows the roles that operate the front desk
func RequireDesk(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleReception)(next)
}

// RequireClinical allows the roles involved in patient care
func RequireClinical(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleDoctor, entity.RoleNurse)(next)
}

// RequireStaff allows any authenticated staff role except display screens
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleReception, entity.RoleDoctor, entity.RoleNurse)(next)
}
