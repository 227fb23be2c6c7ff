// Package store хранит клиентское состояние списка пользователей:
// загруженные строки, статусы операций и параметры выборки.
// Все методы потокобезопасны.
package store

import (
	"sync"

	"github.com/magabrotheeeer/user-manager/internal/models"
	"github.com/magabrotheeeer/user-manager/internal/validation"
)

// Status — состояние асинхронной операции.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Operation — вид операции, по которому ведётся отдельный статус.
type Operation string

const (
	OpFetch  Operation = "fetch"
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Store хранит строки и статусы операций.
type Store struct {
	mu       sync.Mutex
	users    []*models.User
	statuses map[Operation]Status
	errors   map[Operation]string
	params   models.FetchParams
}

// New создаёт пустое хранилище, все операции в состоянии idle.
func New() *Store {
	return &Store{
		statuses: map[Operation]Status{
			OpFetch:  StatusIdle,
			OpInsert: StatusIdle,
			OpUpdate: StatusIdle,
			OpDelete: StatusIdle,
		},
		errors: make(map[Operation]string),
	}
}

// Users возвращает копию загруженного списка.
func (s *Store) Users() []*models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]*models.User, len(s.users))
	copy(users, s.users)
	return users
}

// Status возвращает состояние операции.
func (s *Store) Status(op Operation) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[op]
}

// Err возвращает текст последней ошибки операции.
func (s *Store) Err(op Operation) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[op]
}

// Params возвращает текущие параметры выборки.
func (s *Store) Params() models.FetchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Begin переводит операцию в loading и сбрасывает её ошибку.
func (s *Store) Begin(op Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[op] = StatusLoading
	delete(s.errors, op)
}

// Fail переводит операцию в failed и сохраняет ошибку.
func (s *Store) Fail(op Operation, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[op] = StatusFailed
	s.errors[op] = message
}

// ClearError сбрасывает ошибку операции, не меняя статус.
func (s *Store) ClearError(op Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errors, op)
}

// SetUsers замещает список после успешной загрузки.
func (s *Store) SetUsers(users []*models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.statuses[OpFetch] = StatusSucceeded
	delete(s.errors, OpFetch)
}

// SetSortBy меняет колонку сортировки и переводит выборку в idle,
// чтобы список был перечитан с новыми параметрами.
func (s *Store) SetSortBy(column string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SortBy = column
	s.statuses[OpFetch] = StatusIdle
}

// SetSortDirection меняет направление сортировки и переводит выборку в idle.
func (s *Store) SetSortDirection(direction string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.SortDirection = direction
	s.statuses[OpFetch] = StatusIdle
}

// SetGroupBy меняет колонку группировки и переводит выборку в idle.
func (s *Store) SetGroupBy(column string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.GroupBy = column
	s.statuses[OpFetch] = StatusIdle
}

// ValidateInsert проверяет данные перед отправкой на сервер.
// Пустое отображение означает отсутствие ошибок.
func (s *Store) ValidateInsert(req models.DummyUser) map[string]string {
	return validation.User(req)
}

// ValidateUpdate проверяет частичное обновление перед отправкой.
func (s *Store) ValidateUpdate(req models.DummyUpdate) map[string]string {
	return validation.Update(req)
}

// ApplyInsert добавляет созданную запись в конец списка.
func (s *Store) ApplyInsert(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, user)
	s.statuses[OpInsert] = StatusSucceeded
	delete(s.errors, OpInsert)
}

// ApplyUpdate замещает запись с совпадающим id.
func (s *Store) ApplyUpdate(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.users {
		if existing.ID == user.ID {
			s.users[i] = user
			break
		}
	}
	s.statuses[OpUpdate] = StatusSucceeded
	delete(s.errors, OpUpdate)
}

// ApplyDelete удаляет запись по id.
func (s *Store) ApplyDelete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.users {
		if existing.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	s.statuses[OpDelete] = StatusSucceeded
	delete(s.errors, OpDelete)
}

// FindByID возвращает запись по id или nil.
func (s *Store) FindByID(id int) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.ID == id {
			return existing
		}
	}
	return nil
}
