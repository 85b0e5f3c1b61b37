package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharecook/recipes-api/internal/core/domain"
	"github.com/sharecook/recipes-api/internal/core/ports"
)

type RecipeService struct {
	repo   ports.RecipeRepository
	logger zerolog.Logger
}

func NewRecipeService(repo ports.RecipeRepository, logger zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, logger: logger}
}

func (s *RecipeService) List(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, nil
}

func (s *RecipeService) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RecipeService) Create(ctx context.Context, in ports.CreateRecipeInput) (int64, error) {
	if err := requireRecipeFields(in.Title, in.Instructions); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, &domain.Recipe{
		Title:        in.Title,
		Instructions: in.Instructions,
		ImageURL:     in.ImageURL,
		UserID:       in.OwnerID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("recipe_id", id).Str("user_id", in.OwnerID.String()).Msg("recipe created")
	return id, nil
}

// Update replaces title, instructions and image URL. The owner never changes.
func (s *RecipeService) Update(ctx context.Context, in ports.UpdateRecipeInput) error {
	if err := requireRecipeFields(in.Title, in.Instructions); err != nil {
		return err
	}

	existing, err := s.owned(ctx, in.ID, in.ActorID)
	if err != nil {
		return err
	}

	existing.Title = in.Title
	existing.Instructions = in.Instructions
	existing.ImageURL = in.ImageURL
	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.logger.Info().Int64("recipe_id", in.ID).Msg("recipe updated")
	return nil
}

func (s *RecipeService) Delete(ctx context.Context, id int64, actor domain.UserID) error {
	if _, err := s.owned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("recipe_id", id).Msg("recipe deleted")
	return nil
}

// owned loads the recipe and checks that actor owns it.
func (s *RecipeService) owned(ctx context.Context, id int64, actor domain.UserID) (*domain.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwner(recipe.UserID, actor); err != nil {
		s.logger.Warn().Int64("recipe_id", id).Str("owner_id", recipe.UserID.String()).Str("actor_id", actor.String()).Msg("recipe mutation denied")
		return nil, err
	}
	return recipe, nil
}

func requireRecipeFields(title, instructions string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(instructions) == "" {
		return domain.NewValidationError("title and instructions are required")
	}
	return nil
}
