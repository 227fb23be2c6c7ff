package update

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
	"github.com/magabrotheeeer/user-manager/internal/models"
	"github.com/magabrotheeeer/user-manager/internal/storage/repository"
	"github.com/magabrotheeeer/user-manager/internal/validation"
)

type Handler struct {
	log     *slog.Logger
	service Service
	dev     bool
}

type Service interface {
	Update(ctx context.Context, id int, req models.DummyUpdate) (*models.User, error)
}

func New(log *slog.Logger, service Service, dev bool) *Handler {
	return &Handler{
		log:     log,
		service: service,
		dev:     dev,
	}
}

// ServeHTTP godoc
// @Summary Обновить пользователя
// @Description Частично обновляет пользователя: меняются только переданные поля.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param request body models.DummyUpdate true "Изменяемые поля"
// @Success 200 {object} response.Response "Пользователь обновлён"
// @Failure 400 {object} response.Response "Ошибки валидации или пустое обновление"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 409 {object} response.Response "Почта уже зарегистрирована"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /users/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

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

	var req models.DummyUpdate
	if err = render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if req.IsEmpty() {
		log.Error("empty update set")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("No fields to update"))
		return
	}

	if errs := validation.Update(req); len(errs) > 0 {
		log.Error("validation failed", slog.Any("errors", errs))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationFailed(errs))
		return
	}
	log.Info("all fields are validated")

	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			log.Error("user not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.NotFound())
		case errors.Is(err, repository.ErrEmailTaken):
			log.Error("email already exists", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.EmailTaken())
		default:
			log.Error("failed to update user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Internal(err, h.dev))
		}
		return
	}

	log.Info("success to update user", slog.Int("id", user.ID))
	render.JSON(w, r, response.Updated(user))
}
