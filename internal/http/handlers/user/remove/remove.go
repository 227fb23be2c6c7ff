package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-manager/internal/http/response"
	"github.com/magabrotheeeer/user-manager/internal/lib/sl"
	"github.com/magabrotheeeer/user-manager/internal/storage/repository"
)

type Handler struct {
	log     *slog.Logger
	service Service
	dev     bool
}

type Service interface {
	Remove(ctx context.Context, id int) (int, string, error)
}

func New(log *slog.Logger, service Service, dev bool) *Handler {
	return &Handler{
		log:     log,
		service: service,
		dev:     dev,
	}
}

// ServeHTTP godoc
// @Summary Удалить пользователя
// @Description Удаляет пользователя по ID. Возвращает идентичность удалённой записи.
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.Response "Пользователь удалён"
// @Failure 400 {object} response.Response "Некорректный ID"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 409 {object} response.Response "Запись блокируется внешним ключом"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid user ID provided"))
		return
	}

	deletedID, name, err := h.service.Remove(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			log.Error("user not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.NotFound())
		case errors.Is(err, repository.ErrUserReferenced):
			log.Error("user is referenced", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Cannot delete user as it is referenced by other records"))
		default:
			log.Error("failed to delete user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Internal(err, h.dev))
		}
		return
	}

	log.Info("success to delete user", slog.Int("id", deletedID), slog.String("name", name))
	render.JSON(w, r, response.Deleted(deletedID, name))
}
