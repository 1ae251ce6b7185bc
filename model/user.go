package model

type User struct {
	ID    string `json:"user_id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	ID string `json:"id" validate:"required"`
}
