package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-manager/internal/models"
)

func makeUser(id int, name string) *models.User {
	return &models.User{
		ID: id, Name: name, Email: name + "@example.com",
		Age: 30, Country: "USA", Role: "user", IsActive: true,
	}
}

func TestStatuses(t *testing.T) {
	s := New()

	for _, op := range []Operation{OpFetch, OpInsert, OpUpdate, OpDelete} {
		assert.Equal(t, StatusIdle, s.Status(op))
	}

	s.Begin(OpFetch)
	assert.Equal(t, StatusLoading, s.Status(OpFetch))
	assert.Equal(t, StatusIdle, s.Status(OpInsert))

	s.SetUsers([]*models.User{makeUser(1, "Alice")})
	assert.Equal(t, StatusSucceeded, s.Status(OpFetch))
	require.Len(t, s.Users(), 1)

	s.Begin(OpInsert)
	s.Fail(OpInsert, "Network error occurred")
	assert.Equal(t, StatusFailed, s.Status(OpInsert))
	assert.Equal(t, "Network error occurred", s.Err(OpInsert))

	s.ClearError(OpInsert)
	assert.Empty(t, s.Err(OpInsert))
	assert.Equal(t, StatusFailed, s.Status(OpInsert))
}

func TestSortParamsResetFetch(t *testing.T) {
	s := New()
	s.SetUsers(nil)
	assert.Equal(t, StatusSucceeded, s.Status(OpFetch))

	s.SetSortBy("age")
	assert.Equal(t, StatusIdle, s.Status(OpFetch))
	assert.Equal(t, "age", s.Params().SortBy)

	s.SetUsers(nil)
	s.SetSortDirection("desc")
	assert.Equal(t, StatusIdle, s.Status(OpFetch))
	assert.Equal(t, "desc", s.Params().SortDirection)

	s.SetUsers(nil)
	s.SetGroupBy("country")
	assert.Equal(t, StatusIdle, s.Status(OpFetch))
	assert.Equal(t, "country", s.Params().GroupBy)
}

func TestApplyMutations(t *testing.T) {
	s := New()
	s.SetUsers([]*models.User{makeUser(1, "Alice"), makeUser(2, "Bob")})

	s.ApplyInsert(makeUser(3, "Carol"))
	users := s.Users()
	require.Len(t, users, 3)
	assert.Equal(t, "Carol", users[2].Name)
	assert.Equal(t, StatusSucceeded, s.Status(OpInsert))

	renamed := makeUser(2, "Robert")
	s.ApplyUpdate(renamed)
	assert.Equal(t, "Robert", s.FindByID(2).Name)
	assert.Equal(t, StatusSucceeded, s.Status(OpUpdate))

	s.ApplyDelete(1)
	users = s.Users()
	require.Len(t, users, 2)
	assert.Nil(t, s.FindByID(1))
	assert.Equal(t, StatusSucceeded, s.Status(OpDelete))

	// Удаление несуществующего id не меняет список.
	s.ApplyDelete(99)
	assert.Len(t, s.Users(), 2)
}

func TestValidateBeforeStaging(t *testing.T) {
	s := New()

	errs := s.ValidateInsert(models.DummyUser{
		Name: "A", Email: "bad", Age: 200, Country: "", Role: "superadmin",
	})
	assert.Equal(t, "Name must be between 2 and 100 characters", errs["name"])
	assert.Equal(t, "Invalid email format", errs["email"])
	assert.Equal(t, "Age must be a number between 1 and 120", errs["age"])
	assert.Equal(t, "Country is required", errs["country"])
	assert.Equal(t, "Role must be one of: admin, user, moderator", errs["role"])

	errs = s.ValidateInsert(models.DummyUser{
		Name: "Alice", Email: "alice@example.com", Age: 30, Country: "USA", Role: "admin",
	})
	assert.Empty(t, errs)

	badAge := 0
	errs = s.ValidateUpdate(models.DummyUpdate{Age: &badAge})
	assert.Equal(t, "Age must be a number between 1 and 120", errs["age"])
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	s.SetUsers([]*models.User{makeUser(1, "Alice")})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.ApplyInsert(makeUser(100+n, "User"))
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Users()
			_ = s.Status(OpInsert)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Users(), 51)
}
