package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/todolist/todolist-go/internal/model"
	"github.com/todolist/todolist-go/internal/repository"
)

func userDoc(id primitive.ObjectID, username, email string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "firstName", Value: "Ada"},
		{Key: "lastName", Value: "Lovelace"},
		{Key: "username", Value: username},
		{Key: "email", Value: email},
		{Key: "password", Value: "$argon2id$hash"},
		{Key: "createdAt", Value: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func taskDoc(id, owner primitive.ObjectID, title string, done bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "description", Value: "desc"},
		{Key: "isCompleted", Value: done},
		{Key: "createdBy", Value: owner},
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := &UserRepository{coll: mt.Coll}

		user := &model.User{Username: "ada", Email: "ada@example.com", PasswordHash: "h"}
		if err := repo.Create(context.Background(), user); err != nil {
			mt.Fatalf("Create() unexpected error: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(user.ID); err != nil {
			mt.Errorf("Create() id = %q, want an ObjectID hex", user.ID)
		}
		if user.CreatedAt.IsZero() {
			mt.Error("Create() should set CreatedAt")
		}
	})

	mt.Run("create duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: todolist.users index: uq_email",
		}))
		repo := &UserRepository{coll: mt.Coll}

		err := repo.Create(context.Background(), &model.User{Username: "ada", Email: "ada@example.com"})
		if !errors.Is(err, repository.ErrDuplicateCredential) {
			mt.Errorf("Create() error = %v, want ErrDuplicateCredential", err)
		}
	})

	mt.Run("find by username or email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "todolist.users", mtest.FirstBatch, userDoc(id, "ada", "ada@example.com")))
		repo := &UserRepository{coll: mt.Coll}

		user, err := repo.FindByUsernameOrEmail(context.Background(), "ada@example.com", "ada@example.com")
		if err != nil {
			mt.Fatalf("FindByUsernameOrEmail() unexpected error: %v", err)
		}
		if user.ID != id.Hex() || user.Username != "ada" || user.PasswordHash != "$argon2id$hash" {
			mt.Errorf("FindByUsernameOrEmail() = %+v", user)
		}
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "todolist.users", mtest.FirstBatch))
		repo := &UserRepository{coll: mt.Coll}

		_, err := repo.FindByUsernameOrEmail(context.Background(), "nobody", "nobody")
		if !errors.Is(err, repository.ErrUserNotFound) {
			mt.Errorf("FindByUsernameOrEmail() error = %v, want ErrUserNotFound", err)
		}
	})

	mt.Run("get by malformed id", func(mt *mtest.T) {
		repo := &UserRepository{coll: mt.Coll}

		if _, err := repo.GetByID(context.Background(), "not-an-object-id"); !errors.Is(err, repository.ErrUserNotFound) {
			mt.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestTaskRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	owner := primitive.NewObjectID()

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := &TaskRepository{coll: mt.Coll}

		task := &model.Task{Title: "write tests", CreatedBy: owner.Hex()}
		if err := repo.Create(context.Background(), task); err != nil {
			mt.Fatalf("Create() unexpected error: %v", err)
		}
		if task.ID == "" || task.CreatedAt.IsZero() {
			mt.Errorf("Create() did not populate id/createdAt: %+v", task)
		}
	})

	mt.Run("create rejects malformed owner", func(mt *mtest.T) {
		repo := &TaskRepository{coll: mt.Coll}

		if err := repo.Create(context.Background(), &model.Task{Title: "x", CreatedBy: "owner"}); err == nil {
			mt.Error("Create() expected error for malformed owner id")
		}
	})

	mt.Run("list by owner", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "todolist.todos", mtest.FirstBatch,
			taskDoc(first, owner, "first", false),
			taskDoc(second, owner, "second", true),
		))
		repo := &TaskRepository{coll: mt.Coll}

		tasks, err := repo.ListByOwner(context.Background(), owner.Hex())
		if err != nil {
			mt.Fatalf("ListByOwner() unexpected error: %v", err)
		}
		if len(tasks) != 2 {
			mt.Fatalf("ListByOwner() returned %d tasks, want 2", len(tasks))
		}
		if tasks[0].ID != first.Hex() || tasks[1].ID != second.Hex() {
			mt.Errorf("ListByOwner() order = [%s %s]", tasks[0].ID, tasks[1].ID)
		}
		if tasks[1].CreatedBy != owner.Hex() || !tasks[1].IsCompleted {
			mt.Errorf("ListByOwner() second = %+v", tasks[1])
		}
	})

	mt.Run("list by malformed owner is empty", func(mt *mtest.T) {
		repo := &TaskRepository{coll: mt.Coll}

		tasks, err := repo.ListByOwner(context.Background(), "owner")
		if err != nil {
			mt.Fatalf("ListByOwner() unexpected error: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			mt.Errorf("ListByOwner() = %v, want empty non-nil slice", tasks)
		}
	})

	mt.Run("update returns new document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: taskDoc(id, owner, "renamed", true)},
		))
		repo := &TaskRepository{coll: mt.Coll}

		title, done := "renamed", true
		task, err := repo.Update(context.Background(), id.Hex(), model.TaskPatch{Title: &title, IsCompleted: &done})
		if err != nil {
			mt.Fatalf("Update() unexpected error: %v", err)
		}
		if task.Title != "renamed" || !task.IsCompleted {
			mt.Errorf("Update() = %+v", task)
		}
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := &TaskRepository{coll: mt.Coll}

		done := true
		_, err := repo.Update(context.Background(), primitive.NewObjectID().Hex(), model.TaskPatch{IsCompleted: &done})
		if !errors.Is(err, repository.ErrTaskNotFound) {
			mt.Errorf("Update() error = %v, want ErrTaskNotFound", err)
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		repo := &TaskRepository{coll: mt.Coll}
		id := primitive.NewObjectID().Hex()

		if err := repo.Delete(context.Background(), id); err != nil {
			mt.Fatalf("Delete() unexpected error: %v", err)
		}
		if err := repo.Delete(context.Background(), id); !errors.Is(err, repository.ErrTaskNotFound) {
			mt.Errorf("second Delete() error = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		if err := EnsureIndexes(context.Background(), mt.DB); err != nil {
			mt.Fatalf("EnsureIndexes() unexpected error: %v", err)
		}
	})
}
