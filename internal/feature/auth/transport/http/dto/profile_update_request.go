package dto

// ProfileUpdateReq represents the request body for PUT /api/auth/me.
// Nil fields were absent from the payload and leave the stored value untouched.
type ProfileUpdateReq struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
}
