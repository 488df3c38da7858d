package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/todolist/todolist-go/internal/model"
	"github.com/todolist/todolist-go/internal/repository"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusComplete   StatusFilter = "complete"
	StatusIncomplete StatusFilter = "incomplete"
)

// ParseStatusFilter accepts "", all, complete(d) and incomplete.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "complete", "completed":
		return StatusComplete, nil
	case "incomplete":
		return StatusIncomplete, nil
	}
	return "", newValidationError("status", "status must be one of all, complete, incomplete")
}

// ListOptions narrows a task listing.
type ListOptions struct {
	Status StatusFilter
	Query  string
}

// TaskService handles owner-scoped task operations. Every method takes the
// authenticated user's id and refuses to touch tasks created by someone else.
type TaskService struct {
	repo     repository.TaskRepository
	validate *validator.Validate
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo, validate: newValidator()}
}

// Create adds an incomplete task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID string, req model.CreateTaskRequest) (model.Task, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(s.validate, req); err != nil {
		return model.Task{}, err
	}
	if req.CreatedBy != "" && req.CreatedBy != userID {
		return model.Task{}, ErrForbidden
	}

	task := model.Task{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: false,
		CreatedBy:   userID,
	}
	if err := s.repo.Create(ctx, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// List returns the user's tasks narrowed by opts.
func (s *TaskService) List(ctx context.Context, userID string, opts ListOptions) ([]model.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Search(Filter(tasks, opts.Status), opts.Query), nil
}

// Get returns one of the user's tasks.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (model.Task, error) {
	task, err := s.owned(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	return *task, nil
}

// SetStatus marks a task complete or incomplete without touching other fields.
func (s *TaskService) SetStatus(ctx context.Context, userID, taskID string, isCompleted bool) (model.Task, error) {
	return s.apply(ctx, userID, taskID, model.TaskPatch{IsCompleted: &isCompleted})
}

// Update changes any of title, description and completion.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, req model.UpdateTaskRequest) (model.Task, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return model.Task{}, newValidationError("title", "title must not be empty")
		}
		req.Title = &title
	}
	if err := validateStruct(s.validate, req); err != nil {
		return model.Task{}, err
	}
	return s.apply(ctx, userID, taskID, req.Patch())
}

// Remove deletes one of the user's tasks.
func (s *TaskService) Remove(ctx context.Context, userID, taskID string) error {
	if _, err := s.owned(ctx, userID, taskID); err != nil {
		return err
	}
	return translateTaskErr(s.repo.Delete(ctx, taskID))
}

func (s *TaskService) apply(ctx context.Context, userID, taskID string, patch model.TaskPatch) (model.Task, error) {
	task, err := s.owned(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	if patch.Empty() {
		return *task, nil
	}

	updated, err := s.repo.Update(ctx, taskID, patch)
	if err != nil {
		return model.Task{}, translateTaskErr(err)
	}
	return *updated, nil
}

// owned loads the task and checks it belongs to userID.
func (s *TaskService) owned(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, translateTaskErr(err)
	}
	if task.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return task, nil
}

func translateTaskErr(err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

// Filter keeps the tasks matching status. StatusAll and unknown values keep everything.
func Filter(tasks []model.Task, status StatusFilter) []model.Task {
	if status != StatusComplete && status != StatusIncomplete {
		return tasks
	}

	want := status == StatusComplete
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsCompleted == want {
			out = append(out, t)
		}
	}
	return out
}

// Search keeps tasks whose title contains query, ignoring case. An empty
// query returns tasks unchanged.
func Search(tasks []model.Task, query string) []model.Task {
	query = strings.TrimSpace(query)
	if query == "" {
		return tasks
	}

	needle := strings.ToLower(query)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}
