// Package validation содержит единый набор правил проверки полей пользователя.
// Правила используются и сервером (авторитетная проверка перед записью в базу),
// и клиентом (ранняя проверка до постановки мутации в очередь).
//
// Каждое правило принимает значение одного поля и возвращает текст ошибки
// или пустую строку. Правила не имеют побочных эффектов и не паникуют.
package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-manager/internal/models"
)

var validate = validator.New()

// Роли, допустимые для пользователя. Сравнение регистронезависимое.
var validRoles = map[string]struct{}{
	"user":      {},
	"moderator": {},
	"admin":     {},
}

// Name проверяет имя: непустое, от 2 до 100 символов после обрезки пробелов.
func Name(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Name is required"
	}
	// Границы считаются в символах, не в байтах: колонка VARCHAR(100)
	// тоже считает символы.
	if n := utf8.RuneCountInString(trimmed); n < 2 || n > 100 {
		return "Name must be between 2 and 100 characters"
	}
	return ""
}

// Email проверяет адрес почты: непустой и похожий на local@domain.tld.
func Email(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "Email is required"
	}
	if err := validate.Var(trimmed, "email"); err != nil {
		return "Invalid email format"
	}
	return ""
}

// Age проверяет возраст: число в диапазоне [1, 120].
func Age(age int) string {
	if age < 1 || age > 120 {
		return "Age must be a number between 1 and 120"
	}
	return ""
}

// AgeString проверяет возраст, пришедший строкой (клиентская форма).
func AgeString(age string) string {
	trimmed := strings.TrimSpace(age)
	if trimmed == "" {
		return "Age is required"
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return "Age must be a number between 1 and 120"
	}
	return Age(n)
}

// Country проверяет страну: непустая, от 2 до 100 символов.
func Country(country string) string {
	trimmed := strings.TrimSpace(country)
	if trimmed == "" {
		return "Country is required"
	}
	if n := utf8.RuneCountInString(trimmed); n < 2 || n > 100 {
		return "Country must be between 2 and 100 characters"
	}
	return ""
}

// Role проверяет роль: одна из user, moderator, admin без учёта регистра.
func Role(role string) string {
	trimmed := strings.TrimSpace(role)
	if trimmed == "" {
		return "Role is required"
	}
	if _, ok := validRoles[strings.ToLower(trimmed)]; !ok {
		return "Invalid role. Must be user, moderator, or admin"
	}
	return ""
}

// User прогоняет все правила по запросу на создание и собирает ошибки
// в отображение поле -> сообщение. Пустое отображение означает успех.
// Проверка не останавливается на первой ошибке.
func User(req models.DummyUser) map[string]string {
	errs := make(map[string]string)
	if msg := Name(req.Name); msg != "" {
		errs["name"] = msg
	}
	if msg := Email(req.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := Age(req.Age); msg != "" {
		errs["age"] = msg
	}
	if msg := Country(req.Country); msg != "" {
		errs["country"] = msg
	}
	if msg := Role(req.Role); msg != "" {
		errs["role"] = msg
	}
	return errs
}

// Update проверяет только присутствующие в частичном обновлении поля.
func Update(req models.DummyUpdate) map[string]string {
	errs := make(map[string]string)
	if req.Name != nil {
		if msg := Name(*req.Name); msg != "" {
			errs["name"] = msg
		}
	}
	if req.Email != nil {
		if msg := Email(*req.Email); msg != "" {
			errs["email"] = msg
		}
	}
	if req.Age != nil {
		if msg := Age(*req.Age); msg != "" {
			errs["age"] = msg
		}
	}
	if req.Country != nil {
		if msg := Country(*req.Country); msg != "" {
			errs["country"] = msg
		}
	}
	if req.Role != nil {
		if msg := Role(*req.Role); msg != "" {
			errs["role"] = msg
		}
	}
	return errs
}
