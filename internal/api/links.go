package api

import "github.com/developer-d723/user-service/pkg/models"

// UserResource is a UserResponse decorated with hypermedia links. Link
// generation is pure post-processing over the response; the service never
// sees it.
type UserResource struct {
	models.UserResponse
	Links map[string]string `json:"_links"`
}

// UserCollection wraps a list of user resources with a collection-level
// self link.
type UserCollection struct {
	Users []UserResource    `json:"users"`
	Links map[string]string `json:"_links"`
}

// NewUserResource decorates a user response with its links.
func NewUserResource(user models.UserResponse) UserResource {
	return UserResource{
		UserResponse: user,
		Links: map[string]string{
			"self":      "/users/" + user.ID,
			"all-users": "/users",
		},
	}
}

// NewUserCollection decorates a list of user responses.
func NewUserCollection(users []models.UserResponse) UserCollection {
	resources := make([]UserResource, 0, len(users))
	for _, u := range users {
		resources = append(resources, NewUserResource(u))
	}
	return UserCollection{
		Users: resources,
		Links: map[string]string{"self": "/users"},
	}
}
