package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/types"
)

const usage = `usage: admin <command> [flags]

commands:
  create-admin  create an administrator account
  reset-admin   set a new password for an administrator
  list-users    print every account
  set-role      change an account's role to user or admin
  delete-user   remove an account by id
  issue-token   print an access token for an account`

const minPasswordLength = 12

// CLI holds the collaborators shared by every command.
type CLI struct {
	Users  repository.UserRepository
	Tokens *middleware.TokenVerifier
	Out    io.Writer
	// Cost defaults to bcrypt.DefaultCost.
	Cost   int
}

func (c *CLI) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "create-admin":
		return c.createAdmin(ctx, args)
	case "reset-admin":
		return c.resetAdmin(ctx, args)
	case "list-users":
		return c.listUsers(ctx)
	case "set-role":
		return c.setRole(ctx, args)
	case "delete-user":
		return c.deleteUser(ctx, args)
	case "issue-token":
		return c.issueToken(ctx, args)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func (c *CLI) createAdmin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	username := fs.String("username", "", "public username")
	password := fs.String("password", "", "initial password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *username == "" {
		return errors.New("-email and -username are required")
	}
	hash, err := c.hash(*password)
	if err != nil {
		return err
	}

	user := &model.User{
		ID:                 uuid.New(),
		Username:           *username,
		Email:              strings.ToLower(*email),
		PasswordHash:       hash,
		Role:               model.RoleAdmin,
		IsActive:           true,
		DietaryPreferences: []string{},
	}
	if err := c.Users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return fmt.Errorf("an account with email %s or username %s already exists", *email, *username)
		}
		return err
	}
	fmt.Fprintf(c.Out, "created admin %s (%s)\n", user.Username, user.ID)
	return nil
}

func (c *CLI) resetAdmin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset-admin", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := c.Users.FindByEmail(ctx, strings.ToLower(*email))
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return fmt.Errorf("%s is not an administrator", user.Email)
	}
	hash, err := c.hash(*password)
	if err != nil {
		return err
	}
	if err := c.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "password reset for %s\n", user.Email)
	return nil
}

func (c *CLI) listUsers(ctx context.Context) error {
	users, err := c.Users.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
			u.ID, u.Username, u.Email, u.Role, u.IsActive, u.CreatedAt.Format(time.DateOnly))
	}
	return w.Flush()
}

func (c *CLI) setRole(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set-role", flag.ContinueOnError)
	rawID := fs.String("id", "", "account id")
	role := fs.String("role", "", "user or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return fmt.Errorf("invalid id %q", *rawID)
	}
	if *role != model.RoleUser && *role != model.RoleAdmin {
		return fmt.Errorf("role must be %s or %s, got %q", model.RoleUser, model.RoleAdmin, *role)
	}
	if err := c.Users.UpdateRole(ctx, id, *role); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "user %s is now %s\n", id, *role)
	return nil
}

func (c *CLI) deleteUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-user", flag.ContinueOnError)
	rawID := fs.String("id", "", "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return fmt.Errorf("invalid id %q", *rawID)
	}
	if err := c.Users.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "deleted user %s\n", id)
	return nil
}

func (c *CLI) issueToken(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	rawID := fs.String("id", "", "account id")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return fmt.Errorf("invalid id %q", *rawID)
	}
	user, err := c.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return fmt.Errorf("%s is deactivated", user.Username)
	}
	token, err := c.Tokens.Sign(types.Principal{UserID: user.ID, Role: user.Role}, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, token)
	return nil
}

func (c *CLI) hash(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
