package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/developer-d723/user-service/internal/service"
	"github.com/developer-d723/user-service/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService implements UserService for testing.
type stubService struct {
	createFn  func(ctx context.Context, req models.CreateUserRequest) (models.UserResponse, error)
	findFn    func(ctx context.Context, id string) (models.UserResponse, error)
	findAllFn func(ctx context.Context) ([]models.UserResponse, error)
	updateFn  func(ctx context.Context, id string, req models.UpdateUserRequest) (models.UserResponse, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (s *stubService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubService) FindUserByID(ctx context.Context, id string) (models.UserResponse, error) {
	return s.findFn(ctx, id)
}

func (s *stubService) FindAllUsers(ctx context.Context) ([]models.UserResponse, error) {
	return s.findAllFn(ctx)
}

func (s *stubService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.UserResponse, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func newTestRouter(svc UserService) *gin.Engine {
	return NewRouter(NewUserHandler(svc))
}

func TestCreateUser_Created(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &stubService{
		createFn: func(ctx context.Context, req models.CreateUserRequest) (models.UserResponse, error) {
			return models.UserResponse{
				ID: "user-123", Name: req.Name, Email: req.Email, Age: req.Age, CreatedAt: createdAt,
			}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"name":"Alice","email":"alice@x.com","age":30}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/users/user-123" {
		t.Errorf("expected Location /users/user-123, got %q", loc)
	}

	var resource UserResource
	if err := json.Unmarshal(w.Body.Bytes(), &resource); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resource.Name != "Alice" || resource.Email != "alice@x.com" || resource.Age != 30 {
		t.Errorf("unexpected resource fields: %+v", resource.UserResponse)
	}
	if resource.Links["self"] != "/users/user-123" {
		t.Errorf("expected self link /users/user-123, got %q", resource.Links["self"])
	}
	if resource.Links["all-users"] != "/users" {
		t.Errorf("expected all-users link /users, got %q", resource.Links["all-users"])
	}
}

func TestCreateUser_ValidationErrorIs400(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, req models.CreateUserRequest) (models.UserResponse, error) {
			return models.UserResponse{}, &service.ValidationError{Reason: "Name cannot be empty."}
		},
	}
	router := newTestRouter(svc)

	body := `{"name":"","email":"a@b.com","age":30}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["error"] != "Name cannot be empty." {
		t.Errorf("unexpected error message: %q", resp["error"])
	}
}

func TestCreateUser_InvalidJSON(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, req models.CreateUserRequest) (models.UserResponse, error) {
			t.Fatal("service should not be called for malformed JSON")
			return models.UserResponse{}, nil
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBufferString("{invalid"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetUser_Success(t *testing.T) {
	svc := &stubService{
		findFn: func(ctx context.Context, id string) (models.UserResponse, error) {
			return models.UserResponse{ID: id, Name: "Test", Email: "test@example.com", Age: 25}, nil
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users/user-123", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resource UserResource
	if err := json.Unmarshal(w.Body.Bytes(), &resource); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resource.ID != "user-123" {
		t.Errorf("expected ID user-123, got %s", resource.ID)
	}
}

func TestGetUser_NotFoundIs404(t *testing.T) {
	svc := &stubService{
		findFn: func(ctx context.Context, id string) (models.UserResponse, error) {
			return models.UserResponse{}, &service.NotFoundError{ID: id}
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users/nonexistent", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListUsers_DecoratesEachUser(t *testing.T) {
	svc := &stubService{
		findAllFn: func(ctx context.Context) ([]models.UserResponse, error) {
			return []models.UserResponse{
				{ID: "user-1", Name: "One", Email: "one@example.com", Age: 21},
				{ID: "user-2", Name: "Two", Email: "two@example.com", Age: 22},
			}, nil
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var collection UserCollection
	if err := json.Unmarshal(w.Body.Bytes(), &collection); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(collection.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(collection.Users))
	}
	if collection.Users[0].Links["self"] != "/users/user-1" {
		t.Errorf("expected self link /users/user-1, got %q", collection.Users[0].Links["self"])
	}
	if collection.Links["self"] != "/users" {
		t.Errorf("expected collection self link /users, got %q", collection.Links["self"])
	}
}

func TestListUsers_Empty(t *testing.T) {
	svc := &stubService{
		findAllFn: func(ctx context.Context) ([]models.UserResponse, error) {
			return []models.UserResponse{}, nil
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var collection UserCollection
	if err := json.Unmarshal(w.Body.Bytes(), &collection); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(collection.Users) != 0 {
		t.Errorf("expected 0 users, got %d", len(collection.Users))
	}
}

func TestUpdateUser_Success(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id string, req models.UpdateUserRequest) (models.UserResponse, error) {
			return models.UserResponse{ID: id, Name: req.Name, Email: req.Email, Age: req.Age}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"name":"Bob","email":"bob@x.com","age":40}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/users/user-123", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resource UserResource
	if err := json.Unmarshal(w.Body.Bytes(), &resource); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resource.Email != "bob@x.com" {
		t.Errorf("expected email bob@x.com, got %s", resource.Email)
	}
}

func TestUpdateUser_NotFoundIs404(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id string, req models.UpdateUserRequest) (models.UserResponse, error) {
			return models.UserResponse{}, &service.NotFoundError{ID: id}
		},
	}
	router := newTestRouter(svc)

	body := `{"name":"Bob","email":"bob@x.com","age":40}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/users/nonexistent", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteUser_NoContent(t *testing.T) {
	var deletedID string
	svc := &stubService{
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/users/user-123", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}
	if deletedID != "user-123" {
		t.Errorf("expected delete of user-123, got %q", deletedID)
	}
}

func TestDeleteUser_NotFoundIs404(t *testing.T) {
	svc := &stubService{
		deleteFn: func(ctx context.Context, id string) error {
			return &service.NotFoundError{ID: id}
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/users/nonexistent", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %s", resp["status"])
	}
}
