// Package models содержит доменные структуры для работы с пользователями,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет собой основную модель пользователя,
// используемую в бизнес-логике, хранилище и HTTP-ответах.
// Поле UpdatedAt может быть nil — это означает, что запись ни разу не обновлялась.
type User struct {
	ID        int        `json:"id"`         // Уникальный идентификатор, генерируется базой
	Name      string     `json:"name"`       // Имя пользователя, 2-100 символов
	Email     string     `json:"email"`      // Электронная почта (уникальная)
	Age       int        `json:"age"`        // Возраст, от 1 до 120
	Country   string     `json:"country"`    // Страна проживания
	Role      string     `json:"role"`       // Роль: user, moderator или admin
	IsActive  bool       `json:"is_active"`  // Активен ли пользователь
	CreatedAt time.Time  `json:"created_at"` // Дата создания записи
	UpdatedAt *time.Time `json:"updated_at"` // Дата последнего обновления
}

// DummyUser используется для приёма данных из JSON-запроса на создание,
// прежде чем конвертировать их в User. Поле IsActive опционально —
// при отсутствии считается true.
type DummyUser struct {
	Name     string `json:"name"`      // Имя пользователя
	Email    string `json:"email"`     // Электронная почта
	Age      int    `json:"age"`       // Возраст
	Country  string `json:"country"`   // Страна
	Role     string `json:"role"`      // Роль
	IsActive *bool  `json:"is_active"` // Активность (по умолчанию true)
}

// DummyUpdate используется для приёма частичного обновления пользователя.
// Каждое поле — указатель: nil означает, что поле не меняется.
type DummyUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Age      *int    `json:"age"`
	Country  *string `json:"country"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Fields возвращает имена колонок и значения, реально присутствующие
// в запросе на обновление, в фиксированном порядке колонок.
func (u DummyUpdate) Fields() ([]string, []any) {
	var cols []string
	var vals []any
	if u.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *u.Name)
	}
	if u.Email != nil {
		cols = append(cols, "email")
		vals = append(vals, *u.Email)
	}
	if u.Age != nil {
		cols = append(cols, "age")
		vals = append(vals, *u.Age)
	}
	if u.Country != nil {
		cols = append(cols, "country")
		vals = append(vals, *u.Country)
	}
	if u.Role != nil {
		cols = append(cols, "role")
		vals = append(vals, *u.Role)
	}
	if u.IsActive != nil {
		cols = append(cols, "is_active")
		vals = append(vals, *u.IsActive)
	}
	return cols, vals
}

// IsEmpty сообщает, что запрос на обновление не содержит ни одного поля.
func (u DummyUpdate) IsEmpty() bool {
	cols, _ := u.Fields()
	return len(cols) == 0
}

// FetchParams описывает параметры сортировки и группировки списка пользователей.
// Неизвестные значения ключей молча игнорируются хранилищем.
type FetchParams struct {
	SortBy        string
	SortDirection string
	GroupBy       string
}

// CacheKey возвращает ключ кеша для списка пользователей с данными параметрами.
func (p FetchParams) CacheKey() string {
	return "users:" + p.SortBy + ":" + p.SortDirection + ":" + p.GroupBy
}
