// Package dto はtasksフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"errors"
	"time"
)

// DayLayout は日付フィールドのワイヤフォーマットです。
const DayLayout = "2006-01-02"

// ErrInvalidTime is returned when an at_time value is not "HH:MM" or "HH:MM:SS".
var ErrInvalidTime = errors.New("invalid time format, use HH:MM or HH:MM:SS")

// TaskCreateReq はPOST /api/tasksのリクエストボディを表します。
type TaskCreateReq struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Day         string  `json:"day" binding:"required,datetime=2006-01-02"`
	AtTime      *string `json:"at_time"`
	Color       string  `json:"color" binding:"omitempty,max=20"`
	Completed   bool    `json:"completed"`
}

// TaskUpdateReq はPUT /api/tasks/:idのリクエストボディを表します。
// nilのフィールドはペイロードに存在せず、保存値を変更しません。
type TaskUpdateReq struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Day         *string `json:"day" binding:"omitempty,datetime=2006-01-02"`
	AtTime      *string `json:"at_time"`
	Color       *string `json:"color" binding:"omitempty,max=20"`
	Completed   *bool   `json:"completed"`
}

// ParseDay は"YYYY-MM-DD"文字列をUTC深夜0時のtime.Timeに変換します。
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.UTC)
}

// NormalizeAtTime は"HH:MM"または"HH:MM:SS"形式の時刻を"HH:MM:SS"に正規化します。
// 空文字列はそのまま返します（時刻のクリアを意味する）。
func NormalizeAtTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", ErrInvalidTime
}
