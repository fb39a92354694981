package usecases

import (
	"bytes"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/youssefibrahim146/Volt/auth"
	"github.com/youssefibrahim146/Volt/db"
	"github.com/youssefibrahim146/Volt/entities"
	"github.com/youssefibrahim146/Volt/repositories"
	"github.com/youssefibrahim146/Volt/storage"
)

const testRate = 0.68

// testEnv bundles the use cases against an in-memory database so tests can
// drive whole flows the way the handlers do.
type testEnv struct {
	DB            db.Database
	Images        *storage.ImageStore
	Users         *UserUseCase
	Admins        *AdminUseCase
	SystemDevices *SystemDeviceUseCase
	HomeDevices   *HomeDeviceUseCase
	Recs          *RecommendationUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

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
		t.Fatalf("migrate test database: %v", err)
	}

	database := &db.GormStore{DB: gormDB}
	tokens, err := auth.NewTokens("test-secret")
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}
	images, err := storage.NewImageStore(t.TempDir(), 5<<20)
	if err != nil {
		t.Fatalf("new image store: %v", err)
	}

	userRepo := repositories.NewUserPgRepository(database)
	adminRepo := repositories.NewAdminPgRepository(database)
	systemRepo := repositories.NewSystemDevicePgRepository(database)
	homeRepo := repositories.NewHomeDevicePgRepository(database)

	return &testEnv{
		DB:            database,
		Images:        images,
		Users:         NewUserUseCase(userRepo, tokens),
		Admins:        NewAdminUseCase(adminRepo, tokens),
		SystemDevices: NewSystemDeviceUseCase(systemRepo, homeRepo, images),
		HomeDevices:   NewHomeDeviceUseCase(homeRepo, systemRepo, userRepo, testRate),
		Recs:          NewRecommendationUseCase(systemRepo, userRepo, testRate),
	}
}

var testPNG = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	_, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	return header
}

// seedUser registers a user and optionally sets their monthly budget.
func seedUser(t *testing.T, env *testEnv, email string, budget float64) *entities.User {
	t.Helper()
	user, _, err := env.Users.Register(email, "tester", "secret123")
	if err != nil {
		t.Fatalf("register user %s: %v", email, err)
	}
	if budget != 0 {
		user, err = env.Users.UpdateBudget(user.ID, budget)
		if err != nil {
			t.Fatalf("set budget for %s: %v", email, err)
		}
	}
	return user
}

// seedCatalogEntry creates a catalog entry the way an admin would.
func seedCatalogEntry(t *testing.T, env *testEnv, name string, watts []int, allDay bool) *entities.SystemDevice {
	t.Helper()
	device, err := env.SystemDevices.Create(name, watts, allDay, uploadHeader(t, name+".png", testPNG))
	if err != nil {
		t.Fatalf("create system device %s: %v", name, err)
	}
	return device
}

func reloadUser(t *testing.T, env *testEnv, id string) *entities.User {
	t.Helper()
	user, err := env.Users.GetProfile(id)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return user
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
