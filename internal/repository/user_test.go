package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		username     string
		mockBehavior func()
		expectUser   bool
		expectError  bool
	}{
		{
			name:     "Success",
			username: "alice",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "alice", "alice@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs("alice", 1).
					WillReturnRows(rows)
			},
			expectUser: true,
		},
		{
			name:     "NotFoundIsNilNil",
			username: "ghost",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs("ghost", 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
		},
		{
			name:     "DatabaseError",
			username: "alice",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
					WithArgs("alice", 1).
					WillReturnError(errors.New("connection timeout"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByUsername(ctx, tt.username)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectUser {
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			} else {
				assert.Nil(t, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("DuplicateMapsToValidationError", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnError(errors.New(`duplicate key value violates unique constraint "uni_users_username" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &models.User{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "hashed",
		})
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SqliteDuplicateAlsoMaps", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		ctx := context.Background()

		mustCreateUser(t, db, "taken")

		err := repo.Create(ctx, &models.User{
			Username: "taken",
			Email:    "someone-else@example.com",
			Password: "hashed",
		})
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestUserRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")

	t.Run("GetByID", func(t *testing.T) {
		user, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 424242)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("GetByEmail", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, alice.ID, user.ID)
	})

	t.Run("GetByEmailMissingIsNilNil", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("duplicate key value violates unique constraint"), true},
		{errors.New("UNIQUE constraint failed: users.username"), true},
		{errors.New("ERROR: something (SQLSTATE 23505)"), true},
		{errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isUniqueConstraintError(tt.err))
	}
}
