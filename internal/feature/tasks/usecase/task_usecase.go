// Package usecase はtasksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"calendar_backend/internal/feature/tasks/domain/entity"
)

// TaskInput はタスク作成の入力です。
type TaskInput struct {
	Title       string
	Description string
	Day         time.Time
	AtTime      *string
	Color       string
	Completed   bool
}

// TaskUpdate は部分更新の入力です。nilのフィールドは変更されません。
// AtTimeに空文字列を渡すと時刻がクリアされます。
type TaskUpdate struct {
	Title       *string
	Description *string
	Day         *time.Time
	AtTime      *string
	Color       *string
	Completed   *bool
}

// ListFilter はタスク一覧の絞り込み条件です。
// Dayが指定されている場合、Monthは無視されます。
type ListFilter struct {
	Day       *time.Time
	Completed *bool
	Month     *string
}

// TaskQuery はリポジトリへ渡す正規化済みの検索条件です。
// Monthは包括的な日付範囲（From..To）に展開された後の形です。
type TaskQuery struct {
	Day       *time.Time
	Completed *bool
	From      *time.Time
	To        *time.Time
}

// TaskRepository はタスクエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type TaskRepository interface {
	// Create は新しいタスクをストレージに永続化します。
	Create(ctx context.Context, task *entity.Task) error

	// FindByID は指定ユーザーが所有するタスクを取得します。
	// 所有していない・存在しない場合はErrTaskNotFoundを返します。
	FindByID(ctx context.Context, userID, taskID uint) (*entity.Task, error)

	// List は指定ユーザーのタスクを条件で絞り込み、
	// 日付昇順・時刻昇順（時刻なしは末尾）で返します。
	List(ctx context.Context, userID uint, q TaskQuery) ([]entity.Task, error)

	// Update はペイロードに存在するフィールドのみを上書きし、更新後のタスクを返します。
	Update(ctx context.Context, userID, taskID uint, upd TaskUpdate) (*entity.Task, error)

	// Delete は指定ユーザーが所有するタスクを削除します。
	Delete(ctx context.Context, userID, taskID uint) error
}

// taskUsecase はタスク操作のビジネスロジックを実装します。
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// Create は現在のユーザーが所有するタスクを作成します。
func (u *taskUsecase) Create(ctx context.Context, userID uint, in TaskInput) (*entity.Task, error) {
	task := &entity.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Day:         in.Day,
		AtTime:      in.AtTime,
		Color:       in.Color,
		Completed:   in.Completed,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List は現在のユーザーのタスクを絞り込んで返します。
// dayフィルタはmonthフィルタより優先されます。
func (u *taskUsecase) List(ctx context.Context, userID uint, f ListFilter) ([]entity.Task, error) {
	q := TaskQuery{Completed: f.Completed}

	if f.Day != nil {
		q.Day = f.Day
	} else if f.Month != nil {
		from, to, err := monthRange(*f.Month)
		if err != nil {
			return nil, err
		}
		q.From = &from
		q.To = &to
	}

	return u.tasks.List(ctx, userID, q)
}

// Get はIDでタスクを取得します。
func (u *taskUsecase) Get(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return u.tasks.FindByID(ctx, userID, taskID)
}

// Update はタスクを部分更新します。
func (u *taskUsecase) Update(ctx context.Context, userID, taskID uint, upd TaskUpdate) (*entity.Task, error) {
	return u.tasks.Update(ctx, userID, taskID, upd)
}

// Delete はタスクを削除します。
func (u *taskUsecase) Delete(ctx context.Context, userID, taskID uint) error {
	return u.tasks.Delete(ctx, userID, taskID)
}

// monthRange は"YYYY-MM"文字列をその月の初日〜末日（両端含む）の範囲に展開します。
// 月の長さは実際のカレンダーに従います（うるう年対応）。
func monthRange(s string) (time.Time, time.Time, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// 翌月の0日目 = 当月の末日
	to := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return from, to, nil
}
