package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/service"
	"github.com/pageza/recipehub/backend/internal/types"
)

//go:embed recipes.json
var demoRecipes []byte

// demoCooks author the demo catalog. The seeder is idempotent on their emails.
var demoCooks = []struct {
	username string
	email    string
}{
	{"marco", "marco@recipehub.example"},
	{"priya", "priya@recipehub.example"},
	{"sam", "sam@recipehub.example"},
}

type Seeder struct {
	Users   repository.UserRepository
	Recipes service.IRecipeService
}

type Result struct {
	Users   int
	Recipes int
	Ratings int
}

// Seed creates the demo cooks and, when none of them existed yet, the demo
// recipes spread across them with a few cross ratings.
func (s *Seeder) Seed(ctx context.Context) (Result, error) {
	var res Result

	inputs, err := LoadDemoRecipes()
	if err != nil {
		return res, err
	}

	cooks := make([]*model.User, 0, len(demoCooks))
	for _, c := range demoCooks {
		existing, err := s.Users.FindByEmail(ctx, c.email)
		if err == nil {
			cooks = append(cooks, existing)
			continue
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return res, err
		}

		u := &model.User{
			ID:                 uuid.New(),
			Username:           c.username,
			Email:              c.email,
			PasswordHash:       "!",
			Role:               model.RoleUser,
			IsActive:           true,
			DietaryPreferences: []string{},
		}
		if err := s.Users.Create(ctx, u); err != nil {
			return res, fmt.Errorf("create cook %s: %w", c.username, err)
		}
		cooks = append(cooks, u)
		res.Users++
	}
	if res.Users == 0 {
		logging.Info().Msg("demo cooks already present, skipping recipes")
		return res, nil
	}

	for i := range inputs {
		author := cooks[i%len(cooks)]
		view, err := s.Recipes.Create(ctx, types.Principal{UserID: author.ID, Role: author.Role}, &inputs[i])
		if err != nil {
			return res, fmt.Errorf("create %q: %w", inputs[i].Title, err)
		}
		res.Recipes++

		for j, rater := range cooks {
			if rater.ID == author.ID {
				continue
			}
			rating := 3 + (i+j)%3
			if _, err := s.Recipes.Rate(ctx, view.ID, rater.ID, rating, ""); err != nil {
				return res, fmt.Errorf("rate %q: %w", inputs[i].Title, err)
			}
			res.Ratings++
		}
	}
	return res, nil
}

func LoadDemoRecipes() ([]types.RecipeInput, error) {
	var inputs []types.RecipeInput
	if err := json.Unmarshal(demoRecipes, &inputs); err != nil {
		return nil, fmt.Errorf("decode demo recipes: %w", err)
	}
	return inputs, nil
}
