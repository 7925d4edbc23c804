// Tests live in an external package: the fakes drive the real route table
// through internal/router, which itself imports internal/handler.
package handler_test

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/moviemagic/movie-booking/internal/catalog"
	"github.com/moviemagic/movie-booking/internal/config"
	"github.com/moviemagic/movie-booking/internal/handler"
	"github.com/moviemagic/movie-booking/internal/model"
	"github.com/moviemagic/movie-booking/internal/repository"
	"github.com/moviemagic/movie-booking/internal/router"
	"github.com/moviemagic/movie-booking/internal/session"
	"github.com/moviemagic/movie-booking/internal/utils"
	"github.com/moviemagic/movie-booking/internal/view"
)

// fakeUserStore implements handler.UserStore in memory with the same contract as
// repository.UserRepo: duplicate emails fail, lookups miss with
// sql.ErrNoRows.
type fakeUserStore struct {
	mu     sync.Mutex
	byMail map[string]model.User
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byMail: make(map[string]model.User), nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, name, email, password string, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := f.byMail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id := f.nextID
	f.nextID++
	f.byMail[email] = model.User{ID: id, Name: name, Email: email, PasswordHash: hash}
	return id, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byMail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byMail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

// fakeBookingStore implements handler.BookingStore in memory, append-only.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []model.Booking
	nextID   uint64
}

func newFakeBookingStore() *fakeBookingStore { return &fakeBookingStore{nextID: 1} }

func (f *fakeBookingStore) Create(_ context.Context, b model.Booking) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = f.nextID
	f.nextID++
	b.BookingID = repository.NewBookingID()
	b.CreatedAt = time.Now().UTC()
	f.bookings = append(f.bookings, b)
	return b.BookingID, nil
}

func (f *fakeBookingStore) GetByBookingID(_ context.Context, bookingID string) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return model.Booking{}, repository.ErrBookingNotFound
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Booking
	for i := len(f.bookings) - 1; i >= 0; i-- { // newest first
		if f.bookings[i].UserID == userID {
			out = append(out, f.bookings[i])
		}
	}
	return out, nil
}

func (f *fakeBookingStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

// testApp wires the full route table against in-memory stores.
type testApp struct {
	server   *httptest.Server
	users    *fakeUserStore
	bookings *fakeBookingStore
	checkout *session.MemoryStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
		SessionTTLMin: 60,
		BcryptCost:    4, // keep hashing cheap in tests
	}
	users := newFakeUserStore()
	bookings := newFakeBookingStore()
	checkout := session.NewMemoryStore()
	cat := catalog.Default()

	renderer, err := view.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	router.RegisterRoutes(e, cfg, nil,
		handler.NewAuthHandler(cfg, users, checkout),
		handler.NewPageHandler(cat),
		handler.NewBookingHandler(cfg, cat, bookings, checkout))

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &testApp{server: srv, users: users, bookings: bookings, checkout: checkout}
}
