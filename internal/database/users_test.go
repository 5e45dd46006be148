package database

import (
	"context"
	"testing"

	"garage/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "$2a$10$hashhashhashhashhashha",
		PhoneNumber:  "79991234567",
		FirstName:    "Иван",
		LastName:     "Петров",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	user := createTestUser(t, db, "ivan@example.com")
	assert.NotZero(t, user.ID)

	found, err := db.GetUserByEmail(ctx, "ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "Иван", found.FirstName)

	byID, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	updated, err := db.UpdateUser(ctx, user.ID, models.UserPatch{
		Email:       "ivan@example.com",
		PhoneNumber: "79990000000",
		FirstName:   "Иван",
		LastName:    "Сидоров",
		Role:        models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Сидоров", updated.LastName)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	require.NoError(t, db.DeleteUser(ctx, user.ID))

	_, err = db.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUser_EmailTaken(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	createTestUser(t, db, "dup@example.com")

	dup := &models.User{
		Email:        "dup@example.com",
		PasswordHash: "hash",
		PhoneNumber:  "7999",
		FirstName:    "A",
		LastName:     "B",
		Role:         models.RoleUser,
	}
	err := db.CreateUser(context.Background(), dup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	createTestUser(t, db, "first@example.com")
	createTestUser(t, db, "second@example.com")

	users, err := db.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
