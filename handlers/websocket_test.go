package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/youssefibrahim146/Volt/auth"
	"github.com/youssefibrahim146/Volt/db"
	"github.com/youssefibrahim146/Volt/entities"
	"github.com/youssefibrahim146/Volt/middleware"
	"github.com/youssefibrahim146/Volt/repositories"
	"github.com/youssefibrahim146/Volt/usecases"
	"github.com/youssefibrahim146/Volt/ws"
)

type streamFixture struct {
	server  *httptest.Server
	handler *WSHandler
	users   *usecases.UserUseCase
	user    *entities.User
	token   string
}

// newStreamFixture serves GET /ws behind the user guard, the way the
// server mounts it, against an in-memory database.
func newStreamFixture(t *testing.T) *streamFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database := &db.GormStore{DB: gormDB}

	tokens, err := auth.NewTokens("stream-test-secret")
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}
	users := usecases.NewUserUseCase(repositories.NewUserPgRepository(database), tokens)
	admins := usecases.NewAdminUseCase(repositories.NewAdminPgRepository(database), tokens)

	user, token, err := users.Register("stream@example.com", "stream", "password")
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	user, err = users.UpdateBudget(user.ID, 500)
	if err != nil {
		t.Fatalf("seed budget: %v", err)
	}

	guard := middleware.NewAuthMiddleware(tokens, users, admins)
	handler := NewWSHandler(ws.NewManager())

	engine := gin.New()
	engine.GET("/ws", guard.RequireUser(), handler.HandleBudgetStream)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &streamFixture{
		server:  server,
		handler: handler,
		users:   users,
		user:    user,
		token:   token,
	}
}

func (f *streamFixture) dial(t *testing.T, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	target := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	if token != "" {
		target += "?token=" + token
	}
	return websocket.DefaultDialer.Dial(target, nil)
}

type streamMessage struct {
	Type string                 `json:"type"`
	Data usecases.BudgetSummary `json:"data"`
}

func readStream(t *testing.T, conn *websocket.Conn) streamMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read stream message: %v", err)
	}
	var msg streamMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unmarshal stream message: %v", err)
	}
	return msg
}

func TestBudgetStreamGreeting(t *testing.T) {
	f := newStreamFixture(t)

	conn, _, err := f.dial(t, f.token)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	msg := readStream(t, conn)
	if msg.Type != "budget_summary" {
		t.Errorf("greeting type = %q, want budget_summary", msg.Type)
	}
	if msg.Data.Budget != 500 {
		t.Errorf("greeting budget = %v, want 500", msg.Data.Budget)
	}
	if msg.Data.RemainingBudget != 500 {
		t.Errorf("greeting remainingBudget = %v, want 500", msg.Data.RemainingBudget)
	}
}

func TestBudgetStreamPushAfterMutation(t *testing.T) {
	f := newStreamFixture(t)

	conn, _, err := f.dial(t, f.token)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// the greeting confirms the connection is registered
	readStream(t, conn)

	updated, err := f.users.UpdateBudget(f.user.ID, 750)
	if err != nil {
		t.Fatalf("update budget: %v", err)
	}
	f.handler.PushSummary(updated)

	msg := readStream(t, conn)
	if msg.Data.Budget != 750 {
		t.Errorf("pushed budget = %v, want 750", msg.Data.Budget)
	}
}

func TestBudgetStreamRejectsAnonymous(t *testing.T) {
	f := newStreamFixture(t)

	conn, resp, err := f.dial(t, "")
	if err == nil {
		conn.Close()
		t.Fatal("dial without token succeeded, want handshake rejection")
	}
	if resp == nil {
		t.Fatal("handshake returned no response")
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("handshake status = %d, want 401", resp.StatusCode)
	}
}

func TestPushSummaryWithoutConnection(t *testing.T) {
	f := newStreamFixture(t)

	// nothing is connected; the push must be a silent no-op
	f.handler.PushSummary(f.user)
	f.handler.PushSummary(nil)
}
