package response

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-manager/internal/models"
)

func TestCreated(t *testing.T) {
	user := &models.User{ID: 7, Name: "Alice", Email: "alice@example.com"}

	resp := Created(user)

	assert.True(t, resp.Success)
	assert.Equal(t, "User created successfully", resp.Message)
	assert.Equal(t, user, resp.User)
}

func TestDeleted(t *testing.T) {
	resp := Deleted(3, "Bob")

	assert.True(t, resp.Success)
	assert.Equal(t, `User "Bob" deleted successfully`, resp.Message)
	require.NotNil(t, resp.DeletedUser)
	assert.Equal(t, 3, resp.DeletedUser.ID)
	assert.Equal(t, "Bob", resp.DeletedUser.Name)
}

func TestValidationFailed_SerializesErrorsMap(t *testing.T) {
	resp := ValidationFailed(map[string]string{"name": "Name is required"})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Validation failed","errors":{"name":"Name is required"}}`, string(raw))
}

func TestEmailTaken(t *testing.T) {
	resp := EmailTaken()

	assert.False(t, resp.Success)
	assert.Equal(t, "Email already exists", resp.Message)
	assert.Equal(t, "This email is already registered", resp.Errors["email"])
}

func TestInternal_HidesDetailOutsideDev(t *testing.T) {
	cause := errors.New("connection refused")

	prod := Internal(cause, false)
	assert.Equal(t, "Something went wrong", prod.Error)

	dev := Internal(cause, true)
	assert.Equal(t, "connection refused", dev.Error)
}

func TestOmitEmptyFields(t *testing.T) {
	raw, err := json.Marshal(Error("User not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"User not found"}`, string(raw))
}
