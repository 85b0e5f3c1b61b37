package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

var recipeCols = []string{"id", "title", "instructions", "image_url", "user_id", "created_at", "username"}

func TestRecipeRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT r.id, .*FROM recipes r JOIN users u ON u.id = r.user_id\s+ORDER BY r.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(recipeCols).
			AddRow(int64(2), "Cake", "Bake", "http://img/cake.png", int64(1), now, "alice").
			AddRow(int64(1), "Soup", "Boil", nil, int64(1), now, "alice"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "http://img/cake.png", got[0].ImageURL)
	assert.Equal(t, "", got[1].ImageURL)
	assert.Equal(t, domain.UserID(1), got[1].UserID)
	assert.Equal(t, "alice", got[1].Username)
}

func TestRecipeRepository_List_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectQuery(`FROM recipes r JOIN users u`).WillReturnRows(sqlmock.NewRows(recipeCols))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecipeRepository_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM recipes r JOIN users u ON u.id = r.user_id\s+WHERE r.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(recipeCols).AddRow(int64(1), "Soup", "Boil", nil, int64(10), now, "alice"))

	got, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Title)
	assert.Equal(t, domain.UserID(10), got.UserID)
}

func TestRecipeRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectQuery(`WHERE r.id = \$1`).WithArgs(int64(404)).WillReturnRows(sqlmock.NewRows(recipeCols))

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRecipeRepository_Create_StoresNullImage(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO recipes \(title, instructions, image_url, user_id, created_at\)`).
		WithArgs("Soup", "Boil", sql.NullString{}, int64(10), now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	id, err := repo.Create(context.Background(), &domain.Recipe{Title: "Soup", Instructions: "Boil", UserID: 10, CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestRecipeRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectExec(`UPDATE recipes SET title = \$1, instructions = \$2, image_url = \$3 WHERE id = \$4`).
		WithArgs("Stew", "Simmer", sql.NullString{String: "http://img", Valid: true}, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &domain.Recipe{ID: 1, Title: "Stew", Instructions: "Simmer", ImageURL: "http://img"})
	assert.NoError(t, err)
}

func TestRecipeRepository_ZeroRowsIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectExec(`UPDATE recipes`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM recipes WHERE id = \$1`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Update(context.Background(), &domain.Recipe{ID: 1, Title: "a", Instructions: "b"}), domain.ErrRecipeNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), 1), domain.ErrRecipeNotFound)
}

func TestRecipeRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectExec(`DELETE FROM recipes WHERE id = \$1`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 3))
}

func TestRecipeRepository_DriverErrorsAreWrapped(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectQuery(`FROM recipes`).WillReturnError(errors.New("conn reset"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list recipes: conn reset")
}
