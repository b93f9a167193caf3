package models

// ToUser converts a create request into a new User entity. ID and CreatedAt
// are left zero; the store assigns them on insert.
func ToUser(req CreateUserRequest) User {
	return User{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	}
}

// ToUserResponse projects a stored User into its response shape, field for
// field.
func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}
