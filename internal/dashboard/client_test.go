package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestServer fakes just enough of the API for client round-trips.
func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"token": "test-token", "user_id": 1})
	})
	mux.HandleFunc("GET /todos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Todo{
			{ID: 1, Task: "Buy milk", DueDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Priority: "Low", UserID: 1},
		})
	})
	mux.HandleFunc("POST /todos", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}
		var req NewTodo
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Task == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "All fields are required"})
			return
		}
		due, _ := time.Parse(time.DateOnly, req.DueDate)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Todo{
			ID: 2, Task: req.Task, DueDate: due, Priority: req.Priority, UserID: req.UserID,
		})
	})
	mux.HandleFunc("PUT /todos/2", func(w http.ResponseWriter, r *http.Request) {
		var req TodoUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		due, _ := time.Parse(time.DateOnly, req.DueDate)
		json.NewEncoder(w).Encode(Todo{
			ID: 2, Task: req.Task, DueDate: due, Priority: req.Priority, UserID: 1,
		})
	})
	mux.HandleFunc("DELETE /todos/2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Todo{ID: 2, Task: "Buy bread", Priority: "High", UserID: 1})
	})
	mux.HandleFunc("DELETE /todos/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Todo not found"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL, time.Second)
}

func TestClientLoginAndCreate(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	userID, err := client.Login(ctx, "alice", "secret", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if userID != 1 {
		t.Errorf("expected user id 1, got %d", userID)
	}

	// The remembered token rides along on later calls.
	created, err := client.CreateTodo(ctx, NewTodo{
		Task: "Buy milk", DueDate: "2024-01-15", Priority: "Low", UserID: userID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 2 || created.Task != "Buy milk" {
		t.Errorf("unexpected created todo: %+v", created)
	}
}

func TestClientListTodos(t *testing.T) {
	_, client := newTestServer(t)

	todos, err := client.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 1 || todos[0].Task != "Buy milk" {
		t.Errorf("unexpected todos: %+v", todos)
	}
}

func TestClientUpdateTodo(t *testing.T) {
	_, client := newTestServer(t)

	updated, err := client.UpdateTodo(context.Background(), 2, TodoUpdate{
		Task: "Buy bread", DueDate: "2024-01-16", Priority: "High",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Task != "Buy bread" || updated.Priority != "High" {
		t.Errorf("unexpected updated todo: %+v", updated)
	}
}

func TestClientDeleteTodo(t *testing.T) {
	_, client := newTestServer(t)

	deleted, err := client.DeleteTodo(context.Background(), 2)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != 2 {
		t.Errorf("unexpected deleted todo: %+v", deleted)
	}
}

func TestClientDecodesErrorEnvelope(t *testing.T) {
	_, client := newTestServer(t)

	_, err := client.DeleteTodo(context.Background(), 404)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Todo not found" {
		t.Errorf("expected the server's message, got %q", apiErr.Message)
	}
}

func TestClientUnauthorizedCreateWithoutLogin(t *testing.T) {
	_, client := newTestServer(t)

	_, err := client.CreateTodo(context.Background(), NewTodo{
		Task: "Buy milk", DueDate: "2024-01-15", Priority: "Low", UserID: 1,
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
}
