package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/PetSpa-BookingService/internal/api/handlers"
)

// Заголовки аутентификации, проставляемые API-шлюзом
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Роли персонала салона
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgStaffOnly     = "операция доступна только персоналу салона"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Auth проверяет наличие идентификатора пользователя
// Идентификацию выполняет API-шлюз, сервис доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		if role := r.Header.Get(HeaderUserRole); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Staff пропускает только персонал салона
// Вешается поверх Auth на админские маршруты
func Staff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, msgStaffOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает идентификатор пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsStaff сообщает, принадлежит ли запрос персоналу салона
func IsStaff(ctx context.Context) bool {
	role, ok := ctx.Value(userRoleKey).(string)
	return ok && (role == RoleAdmin || role == RoleEmployee)
}

// IsAdmin сообщает, принадлежит ли запрос администратору
func IsAdmin(ctx context.Context) bool {
	role, ok := ctx.Value(userRoleKey).(string)
	return ok && role == RoleAdmin
}
