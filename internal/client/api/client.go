// Package api реализует HTTP-клиент к серверу user-manager.
// Клиент разбирает единый JSON-конверт ответов и классифицирует отказы:
// ошибки валидации несут отображение поле -> сообщение, конфликты и
// отсутствие записи — только сообщение, сетевые сбои — текст ошибки.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/magabrotheeeer/user-manager/internal/http/response"
	"github.com/magabrotheeeer/user-manager/internal/models"
)

// Kind — класс отказа, определяющий реакцию хранилища состояния.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindNetwork    Kind = "network"
)

// APIError описывает отказ запроса к серверу.
type APIError struct {
	Kind        Kind
	Message     string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

// Client выполняет запросы к REST API пользователей.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создаёт новый клиент для API по указанному адресу.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch возвращает список пользователей с параметрами сортировки и группировки.
func (c *Client) Fetch(ctx context.Context, params models.FetchParams) ([]*models.User, error) {
	query := url.Values{}
	if params.SortBy != "" {
		query.Set("sortBy", params.SortBy)
	}
	if params.SortDirection != "" {
		query.Set("sortDirection", params.SortDirection)
	}
	if params.GroupBy != "" {
		query.Set("groupBy", params.GroupBy)
	}

	endpoint := c.baseURL + "/users"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classify(resp.StatusCode, decodeEnvelope(resp))
	}

	var users []*models.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	return users, nil
}

// Insert создаёт пользователя и возвращает запись, присланную сервером.
func (c *Client) Insert(ctx context.Context, req models.DummyUser) (*models.User, error) {
	envelope, err := c.mutate(ctx, http.MethodPost, "/users", req, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return envelope.User, nil
}

// Update частично обновляет пользователя по id.
func (c *Client) Update(ctx context.Context, id int, req models.DummyUpdate) (*models.User, error) {
	envelope, err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return envelope.User, nil
}

// Delete удаляет пользователя и возвращает идентичность удалённой записи
// вместе с текстом подтверждения.
func (c *Client) Delete(ctx context.Context, id int) (*response.DeletedUser, string, error) {
	envelope, err := c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, http.StatusOK)
	if err != nil {
		return nil, "", err
	}
	// Успешный статус без deletedUser — повреждённый ответ, не отдаём nil.
	if envelope.DeletedUser == nil {
		return nil, "", &APIError{Kind: KindNetwork, Message: "malformed delete response: missing deletedUser"}
	}
	return envelope.DeletedUser, envelope.Message, nil
}

// mutate выполняет мутацию и разбирает конверт ответа.
func (c *Client) mutate(ctx context.Context, method, path string, body any, wantStatus int) (*response.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	envelope := decodeEnvelope(resp)
	if resp.StatusCode != wantStatus {
		return nil, classify(resp.StatusCode, envelope)
	}
	return envelope, nil
}

// decodeEnvelope разбирает тело ответа. Ошибки разбора не фатальны:
// итоговую классификацию определяет HTTP-статус.
func decodeEnvelope(resp *http.Response) *response.Response {
	var envelope response.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &response.Response{}
	}
	return &envelope
}

// classify переводит HTTP-статус и конверт в APIError.
func classify(status int, envelope *response.Response) *APIError {
	message := envelope.Message
	if message == "" {
		message = "Network error occurred"
	}

	switch {
	case status == http.StatusBadRequest && len(envelope.Errors) > 0:
		return &APIError{Kind: KindValidation, Message: message, FieldErrors: envelope.Errors}
	case status == http.StatusConflict:
		return &APIError{Kind: KindConflict, Message: message, FieldErrors: envelope.Errors}
	case status == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Message: message}
	default:
		return &APIError{Kind: KindNetwork, Message: message}
	}
}
