// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"calendar_backend/internal/feature/tasks/domain/entity"
	"calendar_backend/internal/feature/tasks/transport/http/dto"
	"calendar_backend/internal/feature/tasks/usecase"
	jwtmw "calendar_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type TaskUsecase interface {
	// Create は現在のユーザーが所有するタスクを作成します。
	Create(ctx context.Context, userID uint, in usecase.TaskInput) (*entity.Task, error)
	// List は現在のユーザーのタスクを絞り込んで返します。
	List(ctx context.Context, userID uint, f usecase.ListFilter) ([]entity.Task, error)
	// Get はIDでタスクを取得します。
	Get(ctx context.Context, userID, taskID uint) (*entity.Task, error)
	// Update はタスクを部分更新します。
	Update(ctx context.Context, userID, taskID uint, upd usecase.TaskUpdate) (*entity.Task, error)
	// Delete はタスクを削除します。
	Delete(ctx context.Context, userID, taskID uint) error
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create はタスク作成APIエンドポイントを処理します。
// 成功時は201と作成されたタスクを返します。
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.TaskCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("task create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	day, err := dto.ParseDay(req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day format, use YYYY-MM-DD"})
		return
	}

	atTime, ok := normalizeAtTime(c, req.AtTime)
	if !ok {
		return
	}
	if atTime != nil && *atTime == "" {
		// 作成時の空文字列は「時刻なし」と同義
		atTime = nil
	}

	user := jwtmw.CurrentUserFrom(c)
	task, err := h.tasks.Create(c.Request.Context(), user.ID, usecase.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Day:         day,
		AtTime:      atTime,
		Color:       req.Color,
		Completed:   req.Completed,
	})
	if err != nil {
		slog.Error("task create failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewTaskRes(task))
}

// List はタスク一覧APIエンドポイントを処理します。
//
// クエリパラメータ:
//   - day: 特定日のみ（YYYY-MM-DD）。monthより優先される
//   - completed: 完了状態での絞り込み（true/false）
//   - month: 月ウィンドウ（YYYY-MM）
func (h *TaskHandler) List(c *gin.Context) {
	var filter usecase.ListFilter

	if dayStr := c.Query("day"); dayStr != "" {
		day, err := dto.ParseDay(dayStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day format, use YYYY-MM-DD"})
			return
		}
		filter.Day = &day
	}
	if completedStr := c.Query("completed"); completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed value"})
			return
		}
		filter.Completed = &completed
	}
	if month := c.Query("month"); month != "" {
		filter.Month = &month
	}

	user := jwtmw.CurrentUserFrom(c)
	tasks, err := h.tasks.List(c.Request.Context(), user.ID, filter)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidMonth) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month format, use YYYY-MM"})
			return
		}
		slog.Error("task list failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskListRes(tasks))
}

// Get はタスク取得APIエンドポイントを処理します。
// 他ユーザーのタスクは存在しないIDと同じく404になります。
func (h *TaskHandler) Get(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	user := jwtmw.CurrentUserFrom(c)
	task, err := h.tasks.Get(c.Request.Context(), user.ID, taskID)
	if err != nil {
		h.respondTaskError(c, err, user.ID)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Update はタスク部分更新APIエンドポイントを処理します。
// ペイロードに存在するフィールドのみが上書きされます。
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.TaskUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("task update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	upd := usecase.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Completed:   req.Completed,
	}
	if req.Day != nil {
		day, err := dto.ParseDay(*req.Day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day format, use YYYY-MM-DD"})
			return
		}
		upd.Day = &day
	}
	if req.AtTime != nil {
		atTime, ok := normalizeAtTime(c, req.AtTime)
		if !ok {
			return
		}
		upd.AtTime = atTime
	}

	user := jwtmw.CurrentUserFrom(c)
	task, err := h.tasks.Update(c.Request.Context(), user.ID, taskID, upd)
	if err != nil {
		h.respondTaskError(c, err, user.ID)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Delete はタスク削除APIエンドポイントを処理します。成功時は204を返します。
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	user := jwtmw.CurrentUserFrom(c)
	if err := h.tasks.Delete(c.Request.Context(), user.ID, taskID); err != nil {
		h.respondTaskError(c, err, user.ID)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondTaskError はユースケースエラーをHTTPステータスへマップします。
func (h *TaskHandler) respondTaskError(c *gin.Context, err error, userID uint) {
	if errors.Is(err, usecase.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	slog.Error("task operation failed", "error", err, "user_id", userID)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// taskIDParam はパスパラメータ:idを数値IDとして読み取ります。
// 数値でない場合は404を返します（存在しないリソースと同じ扱い）。
func taskIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return 0, false
	}
	return uint(id), true
}

// normalizeAtTime はat_time入力を検証・正規化します。不正な場合は400を出力します。
func normalizeAtTime(c *gin.Context, raw *string) (*string, bool) {
	if raw == nil {
		return nil, true
	}
	normalized, err := dto.NormalizeAtTime(*raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid at_time format, use HH:MM or HH:MM:SS"})
		return nil, false
	}
	return &normalized, true
}
