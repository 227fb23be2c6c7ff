// Package fetch реализует HTTP-обработчик выборки списка пользователей
// с сортировкой и группировкой.
//
// Неизвестные значения sortBy/groupBy не считаются ошибкой и молча
// игнорируются — это осознанная разрешительная политика выборки.
package fetch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-manager/internal/http/response"
	"github.com/magabrotheeeer/user-manager/internal/lib/sl"
	"github.com/magabrotheeeer/user-manager/internal/models"
)

// Handler управляет HTTP-запросами на чтение списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
	dev     bool
}

// Service описывает интерфейс бизнес-логики выборки пользователей.
type Service interface {
	List(ctx context.Context, params models.FetchParams) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, dev bool) *Handler {
	return &Handler{
		log:     log,
		service: service,
		dev:     dev,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает всех пользователей, упорядоченных по параметрам сортировки и группировки.
// @Tags Users
// @Produce json
// @Param sortBy query string false "Колонка сортировки: id, name, age, email, created_at, updated_at"
// @Param sortDirection query string false "Направление: asc или desc"
// @Param groupBy query string false "Колонка группировки: country, role, is_active"
// @Success 200 {array} models.User "Список пользователей"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.fetch"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	params := models.FetchParams{
		SortBy:        r.URL.Query().Get("sortBy"),
		SortDirection: r.URL.Query().Get("sortDirection"),
		GroupBy:       r.URL.Query().Get("groupBy"),
	}

	users, err := h.service.List(r.Context(), params)
	if err != nil {
		log.Error("failed to fetch users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal(err, h.dev))
		return
	}

	log.Info("fetched users", slog.Int("count", len(users)))
	if users == nil {
		users = []*models.User{}
	}
	render.JSON(w, r, users)
}
