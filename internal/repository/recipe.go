package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/model"
)

// Columns written by each kind of recipe update.
var (
	ContentColumns = []string{
		"title", "description", "category", "cuisine", "dietary_tags", "tags",
		"ingredients", "instructions", "prep_time", "cooking_time", "total_time",
		"difficulty", "servings", "images", "video_url", "is_premium", "is_published", "published_at",
		"nutrition_calories", "nutrition_protein", "nutrition_carbs", "nutrition_fat",
		"nutrition_fiber", "nutrition_sugar", "nutrition_sodium",
	}
	RatingColumns      = []string{"ratings", "average_rating", "total_ratings"}
	LikeColumns        = []string{"likes"}
	PublicationColumns = []string{"is_published", "published_at"}
	ApprovalColumns    = []string{"is_approved"}
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Recipe, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Recipe, error)
	// Find runs a catalog query and returns one page plus the total match count.
	Find(ctx context.Context, q catalog.Query) ([]model.Recipe, int64, error)
	// SaveVersioned writes columns if the stored version still equals
	// recipe.Version, then bumps it. Returns ErrStaleVersion otherwise.
	SaveVersioned(ctx context.Context, recipe *model.Recipe, columns ...string) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type recipeRepository struct {
	store
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{store{db: db}}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	err := r.run(ctx, "recipes.create", func(db *gorm.DB) error {
		return db.Create(recipe).Error
	})
	return translate("recipes.create", "recipe", recipe.ID.String(), err)
}

func (r *recipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.run(ctx, "recipes.find_by_id", func(db *gorm.DB) error {
		return db.First(&recipe, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate("recipes.find_by_id", "recipe", id.String(), err)
	}
	return &recipe, nil
}

func (r *recipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	if len(ids) == 0 {
		return recipes, nil
	}
	err := r.run(ctx, "recipes.find_by_ids", func(db *gorm.DB) error {
		return db.Where("id IN ?", ids).Find(&recipes).Error
	})
	return recipes, translate("recipes.find_by_ids", "recipe", "", err)
}

func (r *recipeRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	err := r.run(ctx, "recipes.find_by_author", func(db *gorm.DB) error {
		return db.Where("author_id = ?", authorID).
			Order("created_at DESC").
			Order("id ASC").
			Find(&recipes).Error
	})
	return recipes, translate("recipes.find_by_author", "recipe", "", err)
}

func (r *recipeRepository) Find(ctx context.Context, q catalog.Query) ([]model.Recipe, int64, error) {
	recipes := []model.Recipe{}
	var total int64
	err := r.run(ctx, "recipes.find", func(db *gorm.DB) error {
		scopes := q.Scopes()
		if err := db.Model(&model.Recipe{}).Scopes(scopes...).Count(&total).Error; err != nil {
			return err
		}
		if int64(q.Skip) >= total {
			return nil
		}
		return db.Model(&model.Recipe{}).
			Scopes(scopes...).
			Scopes(q.Order, q.Paginate).
			Find(&recipes).Error
	})
	if err != nil {
		return nil, 0, translate("recipes.find", "recipe", "", err)
	}
	return recipes, total, nil
}

func (r *recipeRepository) SaveVersioned(ctx context.Context, recipe *model.Recipe, columns ...string) error {
	expected := recipe.Version
	recipe.Version = expected + 1

	selected := append([]string{"version", "last_modified", "updated_at"}, columns...)
	err := r.run(ctx, "recipes.save", func(db *gorm.DB) error {
		res := db.Model(recipe).
			Where("version = ?", expected).
			Select(selected).
			Updates(recipe)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleVersion
		}
		return nil
	})
	if err != nil {
		recipe.Version = expected
	}
	return translate("recipes.save", "recipe", recipe.ID.String(), err)
}

// IncrementViews bumps the counter in place without touching the version,
// so it never conflicts with document updates.
func (r *recipeRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	err := r.run(ctx, "recipes.increment_views", func(db *gorm.DB) error {
		res := db.Model(&model.Recipe{}).
			Where("id = ?", id).
			UpdateColumns(map[string]interface{}{
				"views":         gorm.Expr("views + ?", 1),
				"last_modified": db.NowFunc(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("recipes.increment_views", "recipe", id.String(), err)
}

func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.run(ctx, "recipes.delete", func(db *gorm.DB) error {
		res := db.Delete(&model.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("recipes.delete", "recipe", id.String(), err)
}
