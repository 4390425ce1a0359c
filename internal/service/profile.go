package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/types"
)

const deletedUsername = "deleted-user"

// ProfileService resolves user references to public profiles.
type ProfileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// PublicProfiles resolves every id. Users that no longer exist get a
// placeholder profile so callers never see a hole.
func (s *ProfileService) PublicProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.PublicProfile, error) {
	profiles, err := s.users.PublicProfiles(ctx, dedupeIDs(ids))
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := profiles[id]; !ok {
			profiles[id] = model.PublicProfile{ID: id, Username: deletedUsername}
		}
	}
	return profiles, nil
}

// RecipeViews resolves the author and rating authors of every recipe in
// one user lookup.
func (s *ProfileService) RecipeViews(ctx context.Context, recipes []model.Recipe) ([]types.RecipeView, error) {
	var ids []uuid.UUID
	for i := range recipes {
		ids = append(ids, recipes[i].AuthorID)
		for _, r := range recipes[i].Ratings {
			ids = append(ids, r.UserID)
		}
	}
	profiles, err := s.PublicProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]types.RecipeView, len(recipes))
	for i := range recipes {
		views[i] = buildView(&recipes[i], profiles)
	}
	return views, nil
}

func (s *ProfileService) RecipeView(ctx context.Context, recipe *model.Recipe) (*types.RecipeView, error) {
	views, err := s.RecipeViews(ctx, []model.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func buildView(recipe *model.Recipe, profiles map[uuid.UUID]model.PublicProfile) types.RecipeView {
	ratings := make([]types.RatingView, len(recipe.Ratings))
	for i, r := range recipe.Ratings {
		ratings[i] = types.RatingView{
			User:      profiles[r.UserID],
			Rating:    r.Value,
			Review:    r.Review,
			CreatedAt: r.CreatedAt,
		}
	}
	return types.RecipeView{
		Recipe:     recipe,
		Author:     profiles[recipe.AuthorID],
		Ratings:    ratings,
		LikesCount: recipe.LikesCount(),
	}
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
