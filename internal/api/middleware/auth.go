package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Заголовки, которые выставляет внешний шлюз авторизации
const (
	HeaderUserID     = "X-User-ID"
	HeaderUserRole   = "X-User-Role"
	HeaderBusinessID = "X-Business-ID"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth читает заголовки авторизации и кладет актора в контекст.
// Запрос без X-User-ID пропускается анонимно (гостевое бронирование),
// некорректные заголовки отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor, ok := parseActor(raw, r.Header.Get(HeaderUserRole), r.Header.Get(HeaderBusinessID))
		if !ok {
			handlers.RespondUnauthorized(w, "некорректные заголовки авторизации")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func parseActor(userID, role, businessID string) (domain.Actor, bool) {
	id, err := uuid.Parse(userID)
	if err != nil || id == uuid.Nil {
		return domain.Actor{}, false
	}

	actor := domain.Actor{AccountID: id, Role: domain.RoleClient}
	switch domain.ActorRole(role) {
	case "", domain.RoleClient:
	case domain.RoleBusiness:
		bid, err := uuid.Parse(businessID)
		if err != nil || bid == uuid.Nil {
			return domain.Actor{}, false
		}
		actor.Role = domain.RoleBusiness
		actor.BusinessID = bid
	default:
		return domain.Actor{}, false
	}
	return actor, true
}

// WithActor кладет актора в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает актора из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
