package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharecook/recipes-api/internal/core/domain"
	"github.com/sharecook/recipes-api/internal/core/ports"
)

// CommentService spans both stores: authors are read from the relational
// user store and comments are written to the document store. There is no
// transaction between the two; an insert failure after a successful lookup is
// returned as is and nothing is undone.
type CommentService struct {
	comments ports.CommentRepository
	users    ports.UserRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCommentService(comments ports.CommentRepository, users ports.UserRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		users:    users,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *CommentService) ListForRecipe(ctx context.Context, recipeID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

// Post snapshots the author's current username into the new comment.
func (s *CommentService) Post(ctx context.Context, in ports.PostCommentInput) (*domain.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.NewValidationError("comment text is required")
	}

	author, err := s.users.FindByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		RecipeID:  in.RecipeID,
		UserID:    author.ID,
		Username:  author.Username,
		Text:      in.Text,
		CreatedAt: s.now(),
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		s.logger.Error().Err(err).Str("recipe_id", in.RecipeID).Str("user_id", in.AuthorID.String()).Msg("comment insert failed after author lookup")
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Edit(ctx context.Context, in ports.EditCommentInput) error {
	if strings.TrimSpace(in.Text) == "" {
		return domain.NewValidationError("comment text is required")
	}
	if _, err := s.owned(ctx, in.CommentID, in.ActorID); err != nil {
		return err
	}
	return s.comments.UpdateText(ctx, in.CommentID, in.Text, s.now())
}

func (s *CommentService) Delete(ctx context.Context, commentID string, actor domain.UserID) error {
	if _, err := s.owned(ctx, commentID, actor); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) owned(ctx context.Context, id string, actor domain.UserID) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwner(comment.UserID, actor); err != nil {
		s.logger.Warn().Str("comment_id", id).Str("actor_id", actor.String()).Msg("comment mutation denied")
		return nil, err
	}
	return comment, nil
}
