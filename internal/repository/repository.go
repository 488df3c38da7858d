// Package repository declares the persistence contracts shared by the
// mongo, mysql and memory backends.
package repository

import (
	"context"
	"errors"

	"github.com/todolist/todolist-go/internal/model"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateCredential = errors.New("username or email already exists")
	ErrTaskNotFound        = errors.New("task not found")
)

// UserRepository persists user accounts. Implementations must reject a second
// account with the same username or email with ErrDuplicateCredential.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// FindByUsernameOrEmail returns the first user whose username equals
	// username or whose email equals email. Matching is exact.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// TaskRepository persists to-do items.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}
