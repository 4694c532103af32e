package dto

import (
	"time"

	"calendar_backend/internal/feature/tasks/domain/entity"
)

// TaskRes はAPIレスポンス用のタスク表現です。
type TaskRes struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Day         string    `json:"day"`
	AtTime      *string   `json:"at_time"`
	Color       string    `json:"color,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskRes はエンティティからTaskResを構築します。
func NewTaskRes(t *entity.Task) TaskRes {
	return TaskRes{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Day:         t.Day.Format(DayLayout),
		AtTime:      t.AtTime,
		Color:       t.Color,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskListRes はエンティティのスライスをTaskResのスライスへ変換します。
func NewTaskListRes(tasks []entity.Task) []TaskRes {
	out := make([]TaskRes, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskRes(&tasks[i]))
	}
	return out
}
