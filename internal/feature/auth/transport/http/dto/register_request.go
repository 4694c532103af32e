// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/api/auth/registerエンドポイントのリクエストボディを表します。
// 必須フィールド・メール形式・パスワード長のバリデーションを含みます。
type RegisterReq struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
}
