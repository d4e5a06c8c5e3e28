package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitask/internal/backend/rest"
	"minitask/internal/config"
	"minitask/internal/server"
	"minitask/internal/service"
	"minitask/internal/tasklist"
	"minitask/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// startServer runs the real HTTP server over fake and returns a client for it.
func startServer(t *testing.T, fake *testutil.FakeClient, token string) *rest.Client {
	t.Helper()
	srv := server.New(fake, zerolog.Nop(), server.Options{Prefix: "/api/v1", Token: token})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		BaseURL:        ts.URL + "/api/v1/",
		Token:          token,
		TimeoutSeconds: 2,
	}
	client, err := rest.New(context.Background(), cfg)
	require.NoError(t, err)
	return client
}

func TestClient_Verbs(t *testing.T) {
	fake := testutil.NewFakeClient()
	client := startServer(t, fake, "")
	ctx := context.Background()

	require.NoError(t, client.Post(ctx, "tasks", service.NewTask{TaskName: "A"}))
	require.NoError(t, client.Post(ctx, "tasks", service.NewTask{TaskName: "B"}))
	require.NoError(t, client.Put(ctx, "tasks", service.TaskUpdate{ID: "1", Completed: true}))

	tasks, err := client.Fetch(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []service.Task{
		{ID: "1", Text: "A", Completed: true},
		{ID: "2", Text: "B"},
	}, tasks)

	require.NoError(t, client.Delete(ctx, "tasks", service.TaskRef{ID: "2"}))
	require.NoError(t, client.Delete(ctx, "tasks", service.TaskRef{ID: service.AllID}))

	tasks, err = client.Fetch(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []service.Task{}, tasks)

	assert.Equal(t, []testutil.Call{
		{Method: "post", Resource: "tasks", Body: service.NewTask{TaskName: "A"}},
		{Method: "post", Resource: "tasks", Body: service.NewTask{TaskName: "B"}},
		{Method: "put", Resource: "tasks", Body: service.TaskUpdate{ID: "1", Completed: true}},
		{Method: "fetch", Resource: "tasks"},
		{Method: "delete", Resource: "tasks", Body: service.TaskRef{ID: "2"}},
		{Method: "delete", Resource: "tasks", Body: service.TaskRef{ID: "all"}},
		{Method: "fetch", Resource: "tasks"},
	}, fake.Calls())
}

func TestClient_DrivesController(t *testing.T) {
	fake := testutil.NewFakeClient()
	fake.SetTasks(
		service.Task{ID: "1", Text: "a", Completed: true},
		service.Task{ID: "2", Text: "b"},
		service.Task{ID: "3", Text: "c", Completed: true},
	)
	client := startServer(t, fake, "tok")
	ctrl := tasklist.New(client, tasklist.WithConfirmer(tasklist.ConfirmFunc(func(string) bool { return true })))
	ctx := context.Background()

	require.NoError(t, ctrl.Refetch(ctx))
	require.NoError(t, ctrl.ClearCompleted(ctx))

	assert.Equal(t, []service.Task{{ID: "2", Text: "b"}}, ctrl.Tasks())
	assert.Len(t, fake.CallsTo("delete"), 2)
}

func TestClient_NotFound(t *testing.T) {
	client := startServer(t, testutil.NewFakeClient(), "")

	err := client.Delete(context.Background(), "tasks", service.TaskRef{ID: "404"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestClient_Unauthorized(t *testing.T) {
	fake := testutil.NewFakeClient()
	srv := server.New(fake, zerolog.Nop(), server.Options{Token: "right"})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client, err := rest.New(context.Background(), &config.Config{BaseURL: ts.URL, Token: "wrong", TimeoutSeconds: 2})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "tasks")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	assert.Empty(t, fake.Calls())
}

func TestClient_ServerErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"duplicate task"}`))
	}))
	defer ts.Close()

	client, err := rest.NewWithHTTPClient(ts.URL, ts.Client(), time.Second)
	require.NoError(t, err)

	err = client.Post(context.Background(), "tasks", service.NewTask{TaskName: "x"})
	assert.EqualError(t, err, "server returned 409: duplicate task")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	client, err := rest.NewWithHTTPClient(ts.URL, ts.Client(), 50*time.Millisecond)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "tasks")
	assert.ErrorIs(t, err, service.ErrTimeout)
}

func TestClient_UnknownResourceNeverSent(t *testing.T) {
	fake := testutil.NewFakeClient()
	client := startServer(t, fake, "")

	_, err := client.Fetch(context.Background(), "users")
	assert.ErrorIs(t, err, service.ErrUnknownResource)
	assert.Empty(t, fake.Calls())
}

func TestNewWithHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := rest.NewWithHTTPClient("ftp://example.com", http.DefaultClient, time.Second)
	assert.Error(t, err)
}
