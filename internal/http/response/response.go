// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Формат ответа повторяет
// контракт клиента: success, message, опциональные user, errors и deletedUser.
package response

import (
	"fmt"

	"github.com/magabrotheeeer/user-manager/internal/models"
)

// Response описывает стандартную структуру JSON-ответа сервера на мутацию.
// Поле Success — итог запроса. Поле Message — человекочитаемое описание.
// Поле User заполняется при успешном создании или обновлении.
// Поле Errors — отображение поле -> сообщение при ошибках валидации.
// Поле DeletedUser заполняется при успешном удалении.
// Поле Error — детали внутренней ошибки, только в режиме разработки.
type Response struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	User        *models.User      `json:"user,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
	DeletedUser *DeletedUser      `json:"deletedUser,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// DeletedUser — идентичность удалённой записи, возвращаемая клиенту.
type DeletedUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Created возвращает успешный ответ с созданным пользователем.
func Created(user *models.User) Response {
	return Response{
		Success: true,
		Message: "User created successfully",
		User:    user,
	}
}

// Updated возвращает успешный ответ с обновлённым пользователем.
func Updated(user *models.User) Response {
	return Response{
		Success: true,
		Message: "User updated successfully",
		User:    user,
	}
}

// Deleted возвращает успешный ответ об удалении с идентичностью записи.
func Deleted(id int, name string) Response {
	return Response{
		Success: true,
		Message: fmt.Sprintf("User %q deleted successfully", name),
		DeletedUser: &DeletedUser{
			ID:   id,
			Name: name,
		},
	}
}

// ValidationFailed возвращает ответ с полным набором ошибок валидации.
func ValidationFailed(errs map[string]string) Response {
	return Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	}
}

// EmailTaken возвращает ответ о конфликте уникальности почты.
func EmailTaken() Response {
	return Response{
		Success: false,
		Message: "Email already exists",
		Errors: map[string]string{
			"email": "This email is already registered",
		},
	}
}

// NotFound возвращает ответ об отсутствии пользователя.
func NotFound() Response {
	return Response{
		Success: false,
		Message: "User not found",
	}
}

// Error возвращает ответ с произвольным сообщением об ошибке.
func Error(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}

// Internal возвращает ответ о внутренней ошибке. Детали исходной ошибки
// попадают в ответ только в режиме разработки, иначе клиент видит
// обезличенное сообщение.
func Internal(err error, dev bool) Response {
	resp := Response{
		Success: false,
		Message: "Internal server error",
		Error:   "Something went wrong",
	}
	if dev && err != nil {
		resp.Error = err.Error()
	}
	return resp
}
