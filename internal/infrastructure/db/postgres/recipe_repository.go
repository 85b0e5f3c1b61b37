package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

const recipeColumns = `r.id, r.title, r.instructions, r.image_url, r.user_id, r.created_at, u.username`

type RecipeRepository struct {
	db DBTX
}

func NewRecipeRepository(db DBTX) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List returns every recipe with its owner's username, newest first.
func (r *RecipeRepository) List(ctx context.Context) ([]domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
		FROM recipes r JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
		FROM recipes r JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return &rec, nil
}

func (r *RecipeRepository) Create(ctx context.Context, rec *domain.Recipe) (int64, error) {
	query := `INSERT INTO recipes (title, instructions, image_url, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rec.Title, rec.Instructions, nullString(rec.ImageURL), int64(rec.UserID), rec.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	return id, nil
}

// Update writes the mutable fields. user_id is never part of the statement.
func (r *RecipeRepository) Update(ctx context.Context, rec *domain.Recipe) error {
	query := `UPDATE recipes SET title = $1, instructions = $2, image_url = $3 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, rec.Title, rec.Instructions, nullString(rec.ImageURL), rec.ID)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return expectAffected(res, "update recipe")
}

func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return expectAffected(res, "delete recipe")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (domain.Recipe, error) {
	var (
		rec   domain.Recipe
		image sql.NullString
		owner int64
	)
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Instructions, &image, &owner, &rec.CreatedAt, &rec.Username); err != nil {
		return domain.Recipe{}, err
	}
	rec.ImageURL = image.String
	rec.UserID = domain.UserID(owner)
	return rec, nil
}

func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
