package dto

type RegisterUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
