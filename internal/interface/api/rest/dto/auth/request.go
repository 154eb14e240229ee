package auth

type LoginRequest struct {
	Username *string `json:"username" validate:"required,notblank"`
	Password *string `json:"password" validate:"required,notblank"`
}
