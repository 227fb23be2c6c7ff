package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Сигнальные ошибки хранилища. Обработчики сопоставляют их
// с HTTP-статусами через errors.Is.
var (
	// ErrUserNotFound возвращается, когда запрос не нашёл пользователя по id.
	ErrUserNotFound = errors.New("storage: user not found")

	// ErrEmailTaken возвращается при нарушении уникальности почты.
	ErrEmailTaken = errors.New("storage: email already exists")

	// ErrUserReferenced возвращается, когда удаление блокируется внешним ключом.
	ErrUserReferenced = errors.New("storage: user is referenced by other records")

	// ErrEmptyUpdate возвращается на запрос обновления без единого поля.
	ErrEmptyUpdate = errors.New("storage: no fields to update")
)

// Коды SQLSTATE PostgreSQL для нарушений ограничений.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError переводит ошибку драйвера в сигнальную ошибку хранилища.
// Неизвестные ошибки возвращаются как есть.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrEmailTaken
		case pgForeignKeyViolation:
			return ErrUserReferenced
		}
	}
	return err
}
