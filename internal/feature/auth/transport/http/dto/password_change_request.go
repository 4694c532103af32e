package dto

// PasswordChangeReq represents the request body for /api/auth/change-password.
// The new password carries the same length constraints as registration.
type PasswordChangeReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}
