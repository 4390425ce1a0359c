package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/metrics"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/ratings"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/scaling"
	"github.com/pageza/recipehub/backend/internal/types"
	"github.com/pageza/recipehub/backend/internal/validation"
)

// maxMutationAttempts bounds the read-modify-write loop of a recipe update
// that keeps losing to concurrent writers.
const maxMutationAttempts = 5

const maxServings = 100

// RecipeService owns the lifecycle of recipe records: creation, content
// and publication updates, ratings, likes and views.
type RecipeService struct {
	recipes     repository.RecipeRepository
	profiles    *ProfileService
	media       IMediaResolver
	builder     *catalog.Builder
	autoApprove bool
	now         func() time.Time
	log         zerolog.Logger
}

// NewRecipeService creates a new RecipeService. A nil media resolver
// stores references unchanged.
func NewRecipeService(recipes repository.RecipeRepository, profiles *ProfileService, media IMediaResolver, builder *catalog.Builder, autoApprove bool) *RecipeService {
	if media == nil {
		media = PassthroughResolver{}
	}
	if builder == nil {
		builder = catalog.NewBuilder(catalog.DefaultLimit, catalog.MaxLimit)
	}
	return &RecipeService{
		recipes:     recipes,
		profiles:    profiles,
		media:       media,
		builder:     builder,
		autoApprove: autoApprove,
		now:         func() time.Time { return time.Now().UTC() },
		log:         logging.WithComponent("recipes"),
	}
}

func (s *RecipeService) Create(ctx context.Context, principal types.Principal, in *types.RecipeInput) (*types.RecipeView, error) {
	if err := s.prepareInput(ctx, in); err != nil {
		return nil, err
	}

	now := s.now()
	recipe := &model.Recipe{
		ID:           uuid.New(),
		AuthorID:     principal.UserID,
		CreatedAt:    now,
		IsApproved:   s.autoApprove,
		IsPublished:  true,
		Ratings:      []model.Rating{},
		Likes:        []uuid.UUID{},
		LastModified: now,
		Version:      1,
	}
	applyInput(recipe, in)
	recipe.MarkPublished(now)

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("recipe_id", recipe.ID.String()).
		Str("author_id", recipe.AuthorID.String()).
		Bool("approved", recipe.IsApproved).
		Msg("recipe created")
	return s.profiles.RecipeView(ctx, recipe)
}

// Get returns a recipe detail. Recipes that are not approved and published
// are only shown to their author and admins; everyone else gets NotFound.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID, viewer *types.Principal, servings int) (*types.RecipeView, error) {
	if servings < 0 || servings > maxServings {
		return nil, apperror.Validation("servings", "range", fmt.Sprintf("servings must be between 1 and %d", maxServings))
	}

	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.Visible() && (viewer == nil || !viewer.CanModify(recipe.AuthorID)) {
		return nil, apperror.NotFound("recipe", id.String())
	}

	if s.IncrementViews(ctx, id) {
		recipe.Views++
	}

	view, err := s.profiles.RecipeView(ctx, recipe)
	if err != nil {
		return nil, err
	}
	if servings > 0 && servings != recipe.Servings {
		scaled := *recipe
		ings, err := scaling.Ingredients(recipe.Ingredients, recipe.Servings, servings)
		if err != nil {
			return nil, apperror.Validation("servings", "range", err.Error())
		}
		scaled.Ingredients = ings
		view.Recipe = &scaled
		view.ScaledTo = &servings
	}
	return view, nil
}

// IncrementViews bumps the view counter. Failures are logged and counted,
// never returned; the result reports whether the increment landed.
func (s *RecipeService) IncrementViews(ctx context.Context, id uuid.UUID) bool {
	if err := s.recipes.IncrementViews(ctx, id); err != nil {
		metrics.ViewIncrementFailures.Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("recipe_id", id.String()).Msg("view increment dropped")
		return false
	}
	return true
}

func (s *RecipeService) List(ctx context.Context, params catalog.Params) (*catalog.Page[types.RecipeView], error) {
	q, err := s.builder.Build(params)
	if err != nil {
		return nil, err
	}
	recipes, total, err := s.recipes.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	views, err := s.profiles.RecipeViews(ctx, recipes)
	if err != nil {
		return nil, err
	}
	return &catalog.Page[types.RecipeView]{
		Recipes:    views,
		Pagination: catalog.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (s *RecipeService) Popular(ctx context.Context, limit int) ([]types.RecipeView, error) {
	recipes, _, err := s.recipes.Find(ctx, s.builder.Popular(limit))
	if err != nil {
		return nil, err
	}
	return s.profiles.RecipeViews(ctx, recipes)
}

// ByAuthor lists every recipe of an author, published or not.
func (s *RecipeService) ByAuthor(ctx context.Context, authorID uuid.UUID) ([]types.RecipeView, error) {
	recipes, err := s.recipes.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.profiles.RecipeViews(ctx, recipes)
}

// Update replaces the descriptive and structural fields of a recipe.
// Ratings, likes and views are left alone.
func (s *RecipeService) Update(ctx context.Context, principal types.Principal, id uuid.UUID, in *types.RecipeInput) (*types.RecipeView, error) {
	if err := s.prepareInput(ctx, in); err != nil {
		return nil, err
	}
	recipe, err := s.mutate(ctx, id, "update", repository.ContentColumns, func(r *model.Recipe, now time.Time) error {
		if !principal.CanModify(r.AuthorID) {
			return apperror.Forbidden("only the author may edit this recipe")
		}
		applyInput(r, in)
		r.MarkPublished(now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.profiles.RecipeView(ctx, recipe)
}

// Rate records userID's rating. A user who already rated the recipe has
// their entry replaced.
func (s *RecipeService) Rate(ctx context.Context, id, userID uuid.UUID, rating int, review string) (*types.RecipeView, error) {
	review = strings.TrimSpace(review)
	if _, err := ratings.Upsert(nil, userID, rating, review, s.now()); err != nil {
		return nil, err
	}

	kind := "new"
	recipe, err := s.mutate(ctx, id, "rate", repository.RatingColumns, func(r *model.Recipe, now time.Time) error {
		if !r.Visible() {
			return apperror.NotFound("recipe", id.String())
		}
		kind = "new"
		for _, existing := range r.Ratings {
			if existing.UserID == userID {
				kind = "replaced"
			}
		}
		return ratings.Apply(r, userID, rating, review, now)
	})
	if err != nil {
		return nil, err
	}
	metrics.RatingsSubmitted.WithLabelValues(kind).Inc()
	return s.profiles.RecipeView(ctx, recipe)
}

// ToggleLike adds userID to the like set, or removes it if present.
func (s *RecipeService) ToggleLike(ctx context.Context, id, userID uuid.UUID) (*types.RecipeView, error) {
	recipe, err := s.mutate(ctx, id, "like", repository.LikeColumns, func(r *model.Recipe, _ time.Time) error {
		if !r.Visible() {
			return apperror.NotFound("recipe", id.String())
		}
		likes := make([]uuid.UUID, 0, len(r.Likes)+1)
		liked := false
		for _, u := range r.Likes {
			if u == userID {
				liked = true
				continue
			}
			likes = append(likes, u)
		}
		if !liked {
			likes = append(likes, userID)
		}
		r.Likes = likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.profiles.RecipeView(ctx, recipe)
}

func (s *RecipeService) SetPublished(ctx context.Context, principal types.Principal, id uuid.UUID, published bool) (*types.RecipeView, error) {
	recipe, err := s.mutate(ctx, id, "publish", repository.PublicationColumns, func(r *model.Recipe, now time.Time) error {
		if !principal.CanModify(r.AuthorID) {
			return apperror.Forbidden("only the author may publish this recipe")
		}
		r.IsPublished = published
		r.MarkPublished(now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.profiles.RecipeView(ctx, recipe)
}

// SetApproval is the moderation switch. Callers must check for admin.
func (s *RecipeService) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*types.RecipeView, error) {
	recipe, err := s.mutate(ctx, id, "approve", repository.ApprovalColumns, func(r *model.Recipe, _ time.Time) error {
		r.IsApproved = approved
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("recipe_id", id.String()).Bool("approved", approved).Msg("recipe moderation changed")
	return s.profiles.RecipeView(ctx, recipe)
}

func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("recipe_id", id.String()).Msg("recipe deleted")
	return nil
}

// mutate loads the recipe, applies fn and saves the given columns guarded
// by the recipe version. On a version conflict the whole cycle reruns
// against freshly loaded state.
func (s *RecipeService) mutate(ctx context.Context, id uuid.UUID, op string, columns []string, fn func(r *model.Recipe, now time.Time) error) (*model.Recipe, error) {
	for attempt := 1; attempt <= maxMutationAttempts; attempt++ {
		recipe, err := s.recipes.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		now := s.now()
		if err := fn(recipe, now); err != nil {
			return nil, err
		}
		recipe.LastModified = now

		err = s.recipes.SaveVersioned(ctx, recipe, columns...)
		if err == nil {
			return recipe, nil
		}
		if !errors.Is(err, repository.ErrStaleVersion) {
			return nil, err
		}
		metrics.OptimisticRetries.WithLabelValues(op).Inc()
		logging.Ctx(ctx).Debug().
			Str("recipe_id", id.String()).
			Str("operation", op).
			Int("attempt", attempt).
			Msg("recipe changed underneath update, retrying")
	}
	return nil, apperror.Store("recipes."+op, repository.ErrStaleVersion)
}

// prepareInput normalizes tags, resolves media references and validates
// the payload. Every problem is reported in one ValidationError.
func (s *RecipeService) prepareInput(ctx context.Context, in *types.RecipeInput) error {
	if in == nil {
		return apperror.Validation("body", "required", "body is required")
	}
	for i, tag := range in.Tags {
		in.Tags[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	in.Title = strings.TrimSpace(in.Title)

	verr := &apperror.ValidationError{}
	if err := s.resolveMedia(ctx, in, verr); err != nil {
		return err
	}

	if err := validation.ValidateStruct(in); err != nil {
		var fields *apperror.ValidationError
		if !errors.As(err, &fields) {
			return err
		}
		seen := make(map[string]bool, len(verr.Fields))
		for _, f := range verr.Fields {
			seen[f.Field] = true
		}
		for _, f := range fields.Fields {
			if !seen[f.Field] {
				verr.Fields = append(verr.Fields, f)
			}
		}
	}
	return verr.OrNil()
}

func (s *RecipeService) resolveMedia(ctx context.Context, in *types.RecipeInput, verr *apperror.ValidationError) error {
	resolve := func(field string, ref *string) error {
		if *ref == "" {
			return nil
		}
		url, err := s.media.Resolve(ctx, *ref)
		switch {
		case errors.Is(err, ErrAssetNotFound):
			verr.Add(field, "asset", field+" references a missing asset")
			return nil
		case err != nil:
			return err
		}
		*ref = url
		return nil
	}

	for i := range in.Images {
		if err := resolve(fmt.Sprintf("images[%d]", i), &in.Images[i]); err != nil {
			return err
		}
	}
	if err := resolve("videoUrl", &in.VideoURL); err != nil {
		return err
	}
	for i := range in.Instructions {
		step := &in.Instructions[i]
		if err := resolve(fmt.Sprintf("instructions[%d].image", i), &step.Image); err != nil {
			return err
		}
		if err := resolve(fmt.Sprintf("instructions[%d].videoUrl", i), &step.VideoURL); err != nil {
			return err
		}
	}
	return nil
}

// applyInput copies a validated payload onto the recipe and derives totalTime.
func applyInput(r *model.Recipe, in *types.RecipeInput) {
	r.Title = in.Title
	r.Description = in.Description
	r.Category = in.Category
	r.Cuisine = in.Cuisine
	r.DietaryTags = nonNil(in.DietaryTags)
	r.Tags = nonNil(in.Tags)
	r.PrepTime = in.PrepTime
	r.CookingTime = in.CookingTime
	r.TotalTime = in.PrepTime + in.CookingTime
	r.Difficulty = in.Difficulty
	r.Servings = in.Servings
	r.Images = nonNil(in.Images)
	r.VideoURL = in.VideoURL
	r.IsPremium = in.IsPremium
	if in.IsPublished != nil {
		r.IsPublished = *in.IsPublished
	}

	r.Ingredients = make([]model.Ingredient, len(in.Ingredients))
	for i, ing := range in.Ingredients {
		r.Ingredients[i] = model.Ingredient{Name: strings.TrimSpace(ing.Name), Quantity: ing.Quantity, Unit: ing.Unit}
	}
	r.Instructions = make([]model.InstructionStep, len(in.Instructions))
	for i, step := range in.Instructions {
		r.Instructions[i] = model.InstructionStep{
			StepNumber:  step.StepNumber,
			Description: step.Description,
			Image:       step.Image,
			VideoURL:    step.VideoURL,
			Timer:       step.Timer,
		}
	}

	r.Nutrition = model.NutritionInfo{}
	if n := in.NutritionInfo; n != nil {
		r.Nutrition = model.NutritionInfo{
			Calories: n.Calories,
			Protein:  n.Protein,
			Carbs:    n.Carbs,
			Fat:      n.Fat,
			Fiber:    n.Fiber,
			Sugar:    n.Sugar,
			Sodium:   n.Sodium,
		}
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
