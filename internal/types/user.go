package types

type UserResponse struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	TeamID *uint  `json:"team_id"`
	Role   string `json:"role"`
}
