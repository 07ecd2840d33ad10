package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports/portstest"
	"lightbnb/src/infra/config"
	"lightbnb/src/infra/logger"
	"lightbnb/src/infra/security"
)

type testServer struct {
	*Server
	store *portstest.Store
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Log:    config.LogConfig{Level: "info"},
	}
	store := portstest.NewStore()
	store.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	srv := New(cfg, logger.Discard(), Deps{
		Users:        store,
		Reservations: store,
		Properties:   store,
		Hasher:       security.NewBcryptHasher(bcrypt.MinCost),
	})
	return testServer{Server: srv, store: store}
}

func (s testServer) do(t *testing.T, method, path string, body any, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-Id", strconv.FormatInt(userID, 10))
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type userBody struct {
	Data struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"data"`
}

type propertyData struct {
	ID            int64    `json:"id"`
	OwnerID       int64    `json:"owner_id"`
	City          string   `json:"city"`
	CostPerNight  int64    `json:"cost_per_night"`
	AverageRating *float64 `json:"average_rating"`
}

type propertyList struct {
	Data  []propertyData `json:"data"`
	Count int            `json:"count"`
	Limit int            `json:"limit"`
}

type errorBody struct {
	Error struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, 0)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/health/detailed", nil, 0)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":{"status":"healthy"}`)

	s.store.Err = assert.AnError
	w = s.do(t, http.MethodGet, "/health/detailed", nil, 0)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
}

func TestUsers_RegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/users", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "analytical",
	}, 0)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[userBody](t, w)
	assert.Equal(t, "ada@example.com", created.Data.Email)
	assert.Empty(t, created.Data.Password)
	assert.NotContains(t, w.Body.String(), "analytical")

	w = s.do(t, http.MethodPost, "/v1/users", map[string]string{
		"name": "Ada again", "email": "ada@example.com", "password": "analytical",
	}, 0)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/v1/users/login", map[string]string{
		"email": "ada@example.com", "password": "analytical",
	}, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.Data.ID, decode[userBody](t, w).Data.ID)

	w = s.do(t, http.MethodPost, "/v1/users/login", map[string]string{
		"email": "ada@example.com", "password": "wrong-password",
	}, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/v1/users/me", nil, created.Data.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decode[userBody](t, w).Data.Name)

	w = s.do(t, http.MethodGet, "/v1/users/me", nil, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/v1/users/"+strconv.FormatInt(created.Data.ID, 10), nil, 0)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/users/404", nil, 0)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/v1/users/abc", nil, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_id", decode[errorBody](t, w).Error.Field)
}

func TestUsers_RegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/users", map[string]string{
		"name": "Ada", "email": "not-an-email", "password": "analytical",
	}, 0)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "email", body.Error.Field)

	w = s.do(t, http.MethodPost, "/v1/users", map[string]string{"name": "Ada"}, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func seedProperties(s testServer) (owner domain.User) {
	u, _ := s.store.CreateUser(context.Background(), domain.NewUser{Name: "Owner", Email: "owner@example.com", Password: "x"})
	a := s.store.AddProperty(domain.Property{OwnerID: u.ID, City: "Austin", CostPerNight: 100})
	b := s.store.AddProperty(domain.Property{OwnerID: u.ID, City: "Boston", CostPerNight: 50})
	s.store.AddProperty(domain.Property{OwnerID: u.ID, City: "South Austin", CostPerNight: 75})
	s.store.AddReview(a.ID, 5)
	s.store.AddReview(b.ID, 2)
	return *u
}

func TestProperties_Search(t *testing.T) {
	s := newTestServer(t)
	owner := seedProperties(s)

	w := s.do(t, http.MethodGet, "/v1/properties", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[propertyList](t, w)
	require.Len(t, all.Data, 3)
	assert.Equal(t, 10, all.Limit)
	assert.Equal(t, []int64{50, 75, 100}, []int64{all.Data[0].CostPerNight, all.Data[1].CostPerNight, all.Data[2].CostPerNight})

	w = s.do(t, http.MethodGet, "/v1/properties?city=austin&limit=1", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	austin := decode[propertyList](t, w)
	require.Len(t, austin.Data, 1)
	assert.Equal(t, "South Austin", austin.Data[0].City)
	assert.Nil(t, austin.Data[0].AverageRating)

	w = s.do(t, http.MethodGet, "/v1/properties?minimum_rating=4&owner_id="+strconv.FormatInt(owner.ID, 10), nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	rated := decode[propertyList](t, w)
	require.Len(t, rated.Data, 1)
	assert.Equal(t, "Austin", rated.Data[0].City)
	require.NotNil(t, rated.Data[0].AverageRating)
	assert.InDelta(t, 5.0, *rated.Data[0].AverageRating, 0.001)

	w = s.do(t, http.MethodGet, "/v1/properties?minimum_price_per_night=60&maximum_price_per_night=100", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[propertyList](t, w).Data, 2)

	w = s.do(t, http.MethodGet, "/v1/properties?city=nowhere", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"count":0,"limit":10}`, w.Body.String())
}

func TestProperties_SearchIgnoresBlankFormFields(t *testing.T) {
	s := newTestServer(t)
	seedProperties(s)

	w := s.do(t, http.MethodGet, "/v1/properties?city=austin&owner_id=&minimum_price_per_night=&maximum_price_per_night=&minimum_rating=&limit=", nil, 0)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[propertyList](t, w)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "South Austin", got.Data[0].City)
	assert.Equal(t, "Austin", got.Data[1].City)
	assert.Equal(t, 10, got.Limit)

	w = s.do(t, http.MethodGet, "/v1/properties?owner_id=", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[propertyList](t, w).Data, 3)
}

func TestProperties_SearchRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	for _, q := range []string{
		"minimum_price_per_night=cheap",
		"owner_id=abc",
		"minimum_rating=NaN",
		"limit=ten",
		"minimum_rating=9",
		"limit=1000",
		"minimum_price_per_night=200&maximum_price_per_night=100",
	} {
		w := s.do(t, http.MethodGet, "/v1/properties?"+q, nil, 0)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestProperties_SearchStoreUnavailable(t *testing.T) {
	s := newTestServer(t)
	s.store.Err = assert.AnError

	w := s.do(t, http.MethodGet, "/v1/properties", nil, 0)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "STORE_UNAVAILABLE", decode[errorBody](t, w).Error.Code)
}

func TestProperties_CreateAndGet(t *testing.T) {
	s := newTestServer(t)
	owner := seedProperties(s)

	req := map[string]any{
		"title":               "Lakeside cabin",
		"description":         "Quiet",
		"thumbnail_photo_url": "https://images.example.com/t.jpg",
		"cover_photo_url":     "https://images.example.com/c.jpg",
		"cost_per_night":      12000,
		"number_of_bedrooms":  3,
		"country":             "Canada",
		"street":              "1 Lake Rd",
		"city":                "Muskoka",
		"province":            "ON",
		"post_code":           "P1H 1A1",
	}

	w := s.do(t, http.MethodPost, "/v1/properties", req, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/v1/properties", req, owner.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Data propertyData `json:"data"`
	}](t, w)
	assert.Equal(t, owner.ID, created.Data.OwnerID)
	assert.Nil(t, created.Data.AverageRating)

	w = s.do(t, http.MethodGet, "/v1/properties/"+strconv.FormatInt(created.Data.ID, 10), nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"city":"Muskoka"`)

	w = s.do(t, http.MethodGet, "/v1/properties?city=musk", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[propertyList](t, w).Data, 1)

	req["cover_photo_url"] = "not a url"
	w = s.do(t, http.MethodPost, "/v1/properties", req, owner.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cover_photo_url", decode[errorBody](t, w).Error.Field)

	w = s.do(t, http.MethodGet, "/v1/properties/999", nil, 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservations_ListCompletedStays(t *testing.T) {
	s := newTestServer(t)
	owner := seedProperties(s)
	guest, err := s.store.CreateUser(context.Background(), domain.NewUser{Name: "Guest", Email: "guest@example.com", Password: "x"})
	require.NoError(t, err)

	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }
	s.store.AddReservation(domain.Reservation{GuestID: guest.ID, PropertyID: 1, StartDate: day(3, 1), EndDate: day(3, 5)})
	s.store.AddReservation(domain.Reservation{GuestID: guest.ID, PropertyID: 2, StartDate: day(1, 10), EndDate: day(1, 12)})
	s.store.AddReservation(domain.Reservation{GuestID: guest.ID, PropertyID: 3, StartDate: day(5, 28), EndDate: day(6, 1)})
	s.store.AddReservation(domain.Reservation{GuestID: owner.ID, PropertyID: 3, StartDate: day(2, 1), EndDate: day(2, 3)})

	w := s.do(t, http.MethodGet, "/v1/reservations", nil, guest.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list struct {
		Data []struct {
			StartDate string       `json:"start_date"`
			Property  propertyData `json:"property"`
		} `json:"data"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "2024-01-10", list.Data[0].StartDate)
	assert.Equal(t, "Boston", list.Data[0].Property.City)
	assert.Equal(t, "2024-03-01", list.Data[1].StartDate)

	w = s.do(t, http.MethodGet, "/v1/reservations?limit=1", nil, guest.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = s.do(t, http.MethodGet, "/v1/reservations?limit=x", nil, guest.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/v1/reservations", nil, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/v1/bookings", nil, 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, w).Error.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
