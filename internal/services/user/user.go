// Package services содержит бизнес-логику для управления пользователями
// и кеширования списков.
package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/user-manager/internal/metrics"
	"github.com/magabrotheeeer/user-manager/internal/models"
)

// listCacheTTL ограничивает время жизни закешированного списка.
const listCacheTTL = time.Minute

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// ListUsers возвращает список пользователей с сортировкой и группировкой.
	ListUsers(ctx context.Context, params models.FetchParams) ([]*models.User, error)
	// InsertUser добавляет пользователя и возвращает созданную запись.
	InsertUser(ctx context.Context, req models.DummyUser) (*models.User, error)
	// UpdateUser частично обновляет пользователя по id.
	UpdateUser(ctx context.Context, id int, req models.DummyUpdate) (*models.User, error)
	// DeleteUser удаляет пользователя по id и возвращает его идентичность.
	DeleteUser(ctx context.Context, id int) (int, string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// UserService реализует бизнес-логику работы с пользователями, включая
// кеширование списков. Ошибки хранилища проходят насквозь: их сопоставление
// с HTTP-статусами — дело обработчиков.
type UserService struct {
	repo  UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает список пользователей, используя кеш или репозиторий.
// Кешируется только выборка без параметров: отсортированные и сгруппированные
// представления всегда читаются из базы, чтобы мутация не могла отдать
// устаревший порядок.
func (s *UserService) List(ctx context.Context, params models.FetchParams) ([]*models.User, error) {
	plain := params == models.FetchParams{}
	cacheKey := params.CacheKey()

	if plain {
		var cached []*models.User
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read list from cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
		if found {
			return cached, nil
		}
	}

	users, err := s.repo.ListUsers(ctx, params)
	if err != nil {
		return nil, err
	}

	if plain {
		if err := s.cache.Set(cacheKey, users, listCacheTTL); err != nil {
			s.log.Warn("failed to cache user list", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return users, nil
}

// normalizeRole приводит роль к каноническому виду для записи в базу.
// Валидация принимает роль в любом регистре, а ограничение CHECK в базе
// сравнивает точные значения, поэтому храним только нижний регистр.
func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// Create создаёт нового пользователя и сбрасывает кеш списков.
func (s *UserService) Create(ctx context.Context, req models.DummyUser) (*models.User, error) {
	req.Role = normalizeRole(req.Role)
	user, err := s.repo.InsertUser(ctx, req)
	metrics.ObserveMutation("insert", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new user", slog.Int("id", user.ID))
	s.invalidateLists()
	return user, nil
}

// Update частично обновляет пользователя и сбрасывает кеш списков.
func (s *UserService) Update(ctx context.Context, id int, req models.DummyUpdate) (*models.User, error) {
	if req.Role != nil {
		role := normalizeRole(*req.Role)
		req.Role = &role
	}
	user, err := s.repo.UpdateUser(ctx, id, req)
	metrics.ObserveMutation("update", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("updated user", slog.Int("id", user.ID))
	s.invalidateLists()
	return user, nil
}

// Remove удаляет пользователя и сбрасывает кеш списков.
func (s *UserService) Remove(ctx context.Context, id int) (int, string, error) {
	deletedID, name, err := s.repo.DeleteUser(ctx, id)
	metrics.ObserveMutation("delete", err)
	if err != nil {
		return 0, "", err
	}

	s.log.Info("deleted user", slog.Int("id", deletedID), slog.String("name", name))
	s.invalidateLists()
	return deletedID, name, nil
}

// invalidateLists сбрасывает закешированный список без параметров.
func (s *UserService) invalidateLists() {
	key := models.FetchParams{}.CacheKey()
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate list cache", slog.String("key", key), slog.Any("err", err))
	}
}
