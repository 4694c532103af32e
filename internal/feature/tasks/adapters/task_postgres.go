// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"calendar_backend/internal/feature/tasks/domain/entity"
	"calendar_backend/internal/feature/tasks/usecase"
)

// taskPostgres はTaskRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type taskPostgres struct {
	db *gorm.DB
}

// taskPostgresがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskPostgres)(nil)

// NewTaskPostgres は指定されたgorm.DB接続でtaskPostgresの新しいインスタンスを生成します。
func NewTaskPostgres(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// Create はタスクをデータベースに追加します。
func (r *taskPostgres) Create(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindByID は所有者スコープでタスクを取得します。
// 他ユーザーのタスクは存在しない場合と区別できません（どちらもErrTaskNotFound）。
func (r *taskPostgres) FindByID(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	var t entity.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, taskID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List は所有者のタスクを条件で絞り込んで返します。
// 並び順は日付昇順、同日内は時刻昇順で、時刻のないタスクは末尾に置かれます。
func (r *taskPostgres) List(ctx context.Context, userID uint, q usecase.TaskQuery) ([]entity.Task, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day ASC, at_time ASC NULLS LAST")

	if q.Completed != nil {
		query = query.Where("completed = ?", *q.Completed)
	}
	if q.Day != nil {
		query = query.Where("day = ?", *q.Day)
	} else if q.From != nil && q.To != nil {
		query = query.Where("day BETWEEN ? AND ?", *q.From, *q.To)
	}

	var tasks []entity.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update はペイロードに存在するフィールドのみを上書きします。
// updated_atはGORMにより自動的に更新されます。
func (r *taskPostgres) Update(ctx context.Context, userID, taskID uint, upd usecase.TaskUpdate) (*entity.Task, error) {
	task, err := r.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	cols := map[string]interface{}{}
	if upd.Title != nil {
		cols["title"] = *upd.Title
	}
	if upd.Description != nil {
		cols["description"] = *upd.Description
	}
	if upd.Day != nil {
		cols["day"] = *upd.Day
	}
	if upd.AtTime != nil {
		if *upd.AtTime == "" {
			// 空文字列は時刻のクリアを意味する
			cols["at_time"] = nil
		} else {
			cols["at_time"] = *upd.AtTime
		}
	}
	if upd.Color != nil {
		cols["color"] = *upd.Color
	}
	if upd.Completed != nil {
		cols["completed"] = *upd.Completed
	}

	if len(cols) > 0 {
		if err := r.db.WithContext(ctx).Model(task).Updates(cols).Error; err != nil {
			return nil, err
		}
	}

	// 更新後の行を読み直して返す
	return r.FindByID(ctx, userID, taskID)
}

// Delete は所有者スコープでタスクを削除します。
// 対象行がない場合はErrTaskNotFoundを返します。
func (r *taskPostgres) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&entity.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
