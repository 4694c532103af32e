package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"calendar_backend/internal/feature/tasks/domain/entity"
)

// mockTaskRepository is a mock implementation of the TaskRepository interface.
type mockTaskRepository struct {
	CreateFunc   func(ctx context.Context, task *entity.Task) error
	FindByIDFunc func(ctx context.Context, userID, taskID uint) (*entity.Task, error)
	ListFunc     func(ctx context.Context, userID uint, q TaskQuery) ([]entity.Task, error)
	UpdateFunc   func(ctx context.Context, userID, taskID uint, upd TaskUpdate) (*entity.Task, error)
	DeleteFunc   func(ctx context.Context, userID, taskID uint) error
}

func (m *mockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, taskID)
	}
	return nil, ErrTaskNotFound
}

func (m *mockTaskRepository) List(ctx context.Context, userID uint, q TaskQuery) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, q)
	}
	return nil, nil
}

func (m *mockTaskRepository) Update(ctx context.Context, userID, taskID uint, upd TaskUpdate) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, taskID, upd)
	}
	return nil, ErrTaskNotFound
}

func (m *mockTaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, taskID)
	}
	return ErrTaskNotFound
}

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTaskUsecase_Create(t *testing.T) {
	t.Run("task is owned by the given user", func(t *testing.T) {
		var created *entity.Task
		mockRepo := &mockTaskRepository{
			CreateFunc: func(ctx context.Context, task *entity.Task) error {
				created = task
				task.ID = 1
				return nil
			},
		}

		uc := NewTaskUsecase(mockRepo)
		atTime := "09:00:00"
		task, err := uc.Create(context.Background(), 42, TaskInput{
			Title:  "dentist",
			Day:    day("2025-06-01"),
			AtTime: &atTime,
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.UserID != 42 {
			t.Errorf("expected owner 42, got %d", created.UserID)
		}
		if task.ID != 1 || task.Title != "dentist" {
			t.Errorf("unexpected task: %+v", task)
		}
		if task.Completed {
			t.Error("completed must default to false")
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockTaskRepository{
			CreateFunc: func(ctx context.Context, task *entity.Task) error { return expectedErr },
		}

		uc := NewTaskUsecase(mockRepo)
		_, err := uc.Create(context.Background(), 1, TaskInput{Title: "x", Day: day("2025-06-01")})

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestTaskUsecase_List(t *testing.T) {
	t.Run("month expands to the full calendar range", func(t *testing.T) {
		var captured TaskQuery
		mockRepo := &mockTaskRepository{
			ListFunc: func(ctx context.Context, userID uint, q TaskQuery) ([]entity.Task, error) {
				captured = q
				return nil, nil
			},
		}

		uc := NewTaskUsecase(mockRepo)
		month := "2024-02"
		_, err := uc.List(context.Background(), 1, ListFilter{Month: &month})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if captured.From == nil || captured.To == nil {
			t.Fatal("expected month window in query")
		}
		// 2024年2月はうるう年で29日まで
		if !captured.From.Equal(day("2024-02-01")) {
			t.Errorf("expected window start 2024-02-01, got %v", captured.From)
		}
		if !captured.To.Equal(day("2024-02-29")) {
			t.Errorf("expected window end 2024-02-29, got %v", captured.To)
		}
	})

	t.Run("non-leap february ends on the 28th", func(t *testing.T) {
		var captured TaskQuery
		mockRepo := &mockTaskRepository{
			ListFunc: func(ctx context.Context, userID uint, q TaskQuery) ([]entity.Task, error) {
				captured = q
				return nil, nil
			},
		}

		uc := NewTaskUsecase(mockRepo)
		month := "2023-02"
		if _, err := uc.List(context.Background(), 1, ListFilter{Month: &month}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !captured.To.Equal(day("2023-02-28")) {
			t.Errorf("expected window end 2023-02-28, got %v", captured.To)
		}
	})

	t.Run("day takes priority over month", func(t *testing.T) {
		var captured TaskQuery
		mockRepo := &mockTaskRepository{
			ListFunc: func(ctx context.Context, userID uint, q TaskQuery) ([]entity.Task, error) {
				captured = q
				return nil, nil
			},
		}

		uc := NewTaskUsecase(mockRepo)
		d := day("2025-06-01")
		month := "2024-02"
		if _, err := uc.List(context.Background(), 1, ListFilter{Day: &d, Month: &month}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if captured.Day == nil || !captured.Day.Equal(d) {
			t.Errorf("expected day filter, got %+v", captured)
		}
		if captured.From != nil || captured.To != nil {
			t.Error("month must be ignored when day is present")
		}
	})

	t.Run("completed composes with the date filter", func(t *testing.T) {
		var captured TaskQuery
		mockRepo := &mockTaskRepository{
			ListFunc: func(ctx context.Context, userID uint, q TaskQuery) ([]entity.Task, error) {
				captured = q
				return nil, nil
			},
		}

		uc := NewTaskUsecase(mockRepo)
		completed := true
		month := "2025-06"
		if _, err := uc.List(context.Background(), 1, ListFilter{Completed: &completed, Month: &month}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if captured.Completed == nil || !*captured.Completed {
			t.Error("expected completed filter to be forwarded")
		}
		if captured.From == nil {
			t.Error("expected month window alongside completed filter")
		}
	})

	t.Run("invalid month formats fail with ErrInvalidMonth", func(t *testing.T) {
		uc := NewTaskUsecase(&mockTaskRepository{})

		for _, m := range []string{"2024", "2024-13", "2024-00", "abcd-02", "2024-xy", ""} {
			month := m
			_, err := uc.List(context.Background(), 1, ListFilter{Month: &month})
			if !errors.Is(err, ErrInvalidMonth) {
				t.Errorf("month %q: expected ErrInvalidMonth, got %v", m, err)
			}
		}
	})
}

func TestTaskUsecase_Update(t *testing.T) {
	t.Run("partial update is passed through unchanged", func(t *testing.T) {
		var captured TaskUpdate
		mockRepo := &mockTaskRepository{
			UpdateFunc: func(ctx context.Context, userID, taskID uint, upd TaskUpdate) (*entity.Task, error) {
				captured = upd
				return &entity.Task{ID: taskID, UserID: userID, Completed: true, Color: "red"}, nil
			},
		}

		uc := NewTaskUsecase(mockRepo)
		completed := true
		task, err := uc.Update(context.Background(), 1, 5, TaskUpdate{Completed: &completed})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if captured.Completed == nil || !*captured.Completed {
			t.Error("expected completed=true in update")
		}
		if captured.Title != nil || captured.Color != nil || captured.Day != nil {
			t.Error("absent fields must stay nil")
		}
		if !task.Completed {
			t.Error("expected updated task")
		}
	})

	t.Run("not found propagates", func(t *testing.T) {
		uc := NewTaskUsecase(&mockTaskRepository{})
		_, err := uc.Update(context.Background(), 1, 999, TaskUpdate{})

		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got: %v", err)
		}
	})
}

func TestTaskUsecase_GetAndDelete(t *testing.T) {
	t.Run("get forwards owner scope", func(t *testing.T) {
		mockRepo := &mockTaskRepository{
			FindByIDFunc: func(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
				if userID != 3 || taskID != 8 {
					t.Errorf("unexpected scope: user=%d task=%d", userID, taskID)
				}
				return &entity.Task{ID: taskID, UserID: userID}, nil
			},
		}

		uc := NewTaskUsecase(mockRepo)
		task, err := uc.Get(context.Background(), 3, 8)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.ID != 8 {
			t.Errorf("unexpected task: %+v", task)
		}
	})

	t.Run("delete not found propagates", func(t *testing.T) {
		uc := NewTaskUsecase(&mockTaskRepository{})
		err := uc.Delete(context.Background(), 1, 999)

		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got: %v", err)
		}
	})
}
