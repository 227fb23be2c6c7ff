package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/user-manager/internal/models"
)

const userColumns = "id, name, email, age, country, role, is_active, created_at, updated_at"

// Разрешённые ключи сортировки и группировки. Только значения из этих
// множеств могут попасть в текст запроса: значения полей всегда идут через
// placeholder-ы, а имя колонки — единственный интерполируемый идентификатор.
var (
	allowedSortColumns = map[string]struct{}{
		"id":         {},
		"name":       {},
		"age":        {},
		"email":      {},
		"created_at": {},
		"updated_at": {},
	}
	allowedGroupColumns = map[string]struct{}{
		"country":   {},
		"role":      {},
		"is_active": {},
	}
)

// orderClause строит часть ORDER BY по параметрам выборки.
// Группировка первична, сортировка вторична. Неизвестные ключи молча
// отбрасываются, при их отсутствии возвращается пустая строка.
func orderClause(params models.FetchParams) string {
	direction := "ASC"
	if params.SortDirection == "desc" {
		direction = "DESC"
	}

	_, sortOK := allowedSortColumns[params.SortBy]
	_, groupOK := allowedGroupColumns[params.GroupBy]

	switch {
	case groupOK && sortOK:
		return fmt.Sprintf(" ORDER BY %s, %s %s", params.GroupBy, params.SortBy, direction)
	case groupOK:
		return fmt.Sprintf(" ORDER BY %s", params.GroupBy)
	case sortOK:
		return fmt.Sprintf(" ORDER BY %s %s", params.SortBy, direction)
	default:
		return ""
	}
}

// ListUsers возвращает список пользователей, упорядоченный по параметрам
// сортировки и группировки.
func (s *Storage) ListUsers(ctx context.Context, params models.FetchParams) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := "SELECT " + userColumns + " FROM users" + orderClause(params)
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		item, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// InsertUser вставляет нового пользователя и возвращает созданную запись
// целиком, включая сгенерированный id и created_at.
func (s *Storage) InsertUser(ctx context.Context, req models.DummyUser) (*models.User, error) {
	const op = "storage.InsertUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `INSERT INTO users (name, email, age, country, role, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		req.Name, req.Email, req.Age, req.Country, req.Role, isActive)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return user, nil
}

// UpdateUser обновляет только переданные поля пользователя одним запросом,
// выставляя updated_at в той же записи, и возвращает обновлённую строку.
// Одна атомарная команда: отдельной проверки существования нет, отсутствие
// строки видно по пустому результату RETURNING.
func (s *Storage) UpdateUser(ctx context.Context, id int, req models.DummyUpdate) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args := buildUpdateQuery(id, req)
	if query == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyUpdate)
	}

	row := s.DB.QueryRowContext(ctx, query, args...)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return user, nil
}

// buildUpdateQuery собирает динамический UPDATE по присутствующим полям.
// Возвращает пустой запрос, если менять нечего.
func buildUpdateQuery(id int, req models.DummyUpdate) (string, []any) {
	cols, vals := req.Fields()
	if len(cols) == 0 {
		return "", nil
	}

	set := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		set = append(set, fmt.Sprintf("%s = $%d", col, i+2))
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	query := "UPDATE users SET " + strings.Join(set, ", ") +
		" WHERE id = $1 RETURNING " + userColumns
	args := append([]any{id}, vals...)
	return query, args
}

// DeleteUser удаляет пользователя по id и возвращает идентичность
// удалённой записи.
func (s *Storage) DeleteUser(ctx context.Context, id int) (int, string, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE id = $1 RETURNING id, name`
	var deletedID int
	var name string
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&deletedID, &name); err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return deletedID, name, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var updatedAt sql.NullTime
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Country,
		&u.Role, &u.IsActive, &u.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return &u, nil
}
