// Package insert реализует HTTP-обработчик создания пользователя.
//
// Handler принимает JSON-запрос с полями пользователя, прогоняет весь набор
// правил валидации (собирая ошибки по всем полям сразу), вызывает бизнес-логику
// и возвращает созданную запись. Сервер проверяет поля независимо от того,
// что проверил клиент.
package insert

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-manager/internal/http/response"
	"github.com/magabrotheeeer/user-manager/internal/lib/sl"
	"github.com/magabrotheeeer/user-manager/internal/models"
	"github.com/magabrotheeeer/user-manager/internal/storage/repository"
	"github.com/magabrotheeeer/user-manager/internal/validation"
)

// Handler управляет HTTP-запросами на создание пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
	dev     bool
}

// Service описывает интерфейс бизнес-логики создания пользователя.
type Service interface {
	Create(ctx context.Context, req models.DummyUser) (*models.User, error)
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
// @Summary Создать пользователя
// @Description Создает нового пользователя. Возвращает созданную запись целиком.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.DummyUser true "Данные нового пользователя"
// @Success 201 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.Response "Ошибки валидации по полям"
// @Failure 409 {object} response.Response "Почта уже зарегистрирована"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.insert"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if errs := validation.User(req); len(errs) > 0 {
		log.Error("validation failed", slog.Any("errors", errs))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationFailed(errs))
		return
	}
	log.Info("all fields are validated")

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Error("email already exists", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.EmailTaken())
			return
		}
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal(err, h.dev))
		return
	}

	log.Info("success to create user", slog.Int("id", user.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.Created(user))
}
