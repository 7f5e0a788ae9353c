package airport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richxcame/cab-booking/internal/notifications"
	"github.com/richxcame/cab-booking/pkg/redis"
)

type fakeRepo struct {
	entries    []Entry
	total      int64
	findResult *Entry
	findErr    error
	available  []Entry
	createErr  error
}

func (f *fakeRepo) Create(ctx context.Context, e *Entry) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = uuid.New()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, search string, limit, offset int) ([]Entry, int64, error) {
	return f.entries, f.total, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return nil, ErrNotFound
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, e *Entry) (*Entry, error) {
	return nil, ErrNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return ErrNotFound
}

func (f *fakeRepo) FindService(ctx context.Context, serviceType, airportCity, otherLocation string) (*Entry, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findResult, nil
}

func (f *fakeRepo) AvailableRoutes(ctx context.Context) ([]Entry, error) {
	return f.available, nil
}

type fakeMailer struct {
	confirmations []*notifications.ServiceConfirmation
	announcements []*notifications.RouteAnnouncement
}

func (f *fakeMailer) SendServiceConfirmation(ctx context.Context, sc *notifications.ServiceConfirmation) error {
	f.confirmations = append(f.confirmations, sc)
	return nil
}

func (f *fakeMailer) SendRouteAnnouncement(ctx context.Context, ra *notifications.RouteAnnouncement) error {
	f.announcements = append(f.announcements, ra)
	return nil
}

func newTestRouter(repo *fakeRepo, cache CacheInterface, mailer *fakeMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(repo, cache, mailer).RegisterRoutes(r)
	return r
}

func TestAvailableAirports_CacheMissThenFill(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := &redis.Client{Client: db}

	repo := &fakeRepo{available: []Entry{
		{AirportCity: "Ahmedabad", ServiceType: "drop", OtherLocation: "Bopal"},
		{AirportCity: "Ahmedabad", ServiceType: "drop", OtherLocation: "Bopal"}, // duplicate collapses
		{AirportCity: "Ahmedabad", ServiceType: "pick", OtherLocation: "Gandhinagar"},
		{AirportCity: "Surat", ServiceType: "drop", OtherLocation: "Vesu"},
	}}

	want := []Availability{
		{AirportCity: "Ahmedabad", DropLocations: []string{"Bopal"}, PickLocations: []string{"Gandhinagar"}},
		{AirportCity: "Surat", DropLocations: []string{"Vesu"}, PickLocations: []string{}},
	}
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectGet("cache:available-airports").RedisNil()
	mock.ExpectSet("cache:available-airports", wantJSON, 5*time.Minute).SetVal("OK")

	router := newTestRouter(repo, cache, &fakeMailer{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/available-airports", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Airports []Availability `json:"airports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, want, body.Airports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableAirports_CacheHitSkipsRepository(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := &redis.Client{Client: db}

	cached := []Availability{
		{AirportCity: "Ahmedabad", DropLocations: []string{"Bopal"}, PickLocations: []string{}},
	}
	cachedJSON, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet("cache:available-airports").SetVal(string(cachedJSON))

	// nil available: a repository call would return no airports
	router := newTestRouter(&fakeRepo{}, cache, &fakeMailer{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/available-airports", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Airports []Availability `json:"airports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, cached, body.Airports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidatesAvailabilityCache(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := &redis.Client{Client: db}
	mock.ExpectDel("cache:available-airports").SetVal(1)

	router := newTestRouter(&fakeRepo{}, cache, &fakeMailer{})
	w := httptest.NewRecorder()
	payload := `{"airportCity":"Ahmedabad","serviceType":"drop","otherLocation":"Bopal","cars":[{"type":"sedan","available":true,"price":850}]}`
	req := httptest.NewRequest(http.MethodPost, "/add-service", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Service entry saved")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchCabs_FiltersUnavailableCars(t *testing.T) {
	db, _ := redismock.NewClientMock()
	cache := &redis.Client{Client: db}

	repo := &fakeRepo{findResult: &Entry{
		AirportCity:   "Ahmedabad",
		ServiceType:   "drop",
		OtherLocation: "Bopal",
		Cars: []Car{
			{Type: "sedan", Available: true, Price: 850},
			{Type: "suv", Available: false, Price: 1200},
			{Type: "innova", Available: true, Price: 1500},
		},
	}}

	router := newTestRouter(repo, cache, &fakeMailer{})
	w := httptest.NewRecorder()
	payload := `{"serviceType":"drop","airportCity":"Ahmedabad","otherLocation":"Bopal"}`
	req := httptest.NewRequest(http.MethodPost, "/api/search-cabs-forairport", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Cabs []Car `json:"cabs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Cabs, 2)
	assert.Equal(t, "sedan", body.Cabs[0].Type)
	assert.Equal(t, "innova", body.Cabs[1].Type)
}

func TestSearchCabs_NoMatch(t *testing.T) {
	db, _ := redismock.NewClientMock()
	cache := &redis.Client{Client: db}

	router := newTestRouter(&fakeRepo{findErr: ErrNotFound}, cache, &fakeMailer{})
	w := httptest.NewRecorder()
	payload := `{"serviceType":"pick","airportCity":"Nowhere","otherLocation":"Anywhere"}`
	req := httptest.NewRequest(http.MethodPost, "/api/search-cabs-forairport", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No matching cabs found.")
}

func TestSendConfirmationEmail(t *testing.T) {
	db, _ := redismock.NewClientMock()
	cache := &redis.Client{Client: db}
	mailer := &fakeMailer{}

	router := newTestRouter(&fakeRepo{}, cache, mailer)
	w := httptest.NewRecorder()
	payload := `{
		"email": "asha@example.com",
		"route": "Ahmedabad Airport to Bopal",
		"cab": {"type": "sedan", "available": true, "price": 850},
		"traveller": {"name": "Asha", "mobile": "9876543210"},
		"date": "2026-09-01",
		"time": "10:30"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/send-airport-email", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Airport booking email sent successfully")

	require.Len(t, mailer.confirmations, 1)
	sc := mailer.confirmations[0]
	assert.Equal(t, "asha@example.com", sc.Email)
	assert.Equal(t, "AIRPORT", sc.ServiceType)
	assert.Equal(t, 850.0, sc.CarPrice)
}

func TestSendConfirmationEmail_MissingCab(t *testing.T) {
	db, _ := redismock.NewClientMock()
	cache := &redis.Client{Client: db}

	router := newTestRouter(&fakeRepo{}, cache, &fakeMailer{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-airport-email", strings.NewReader(`{"email":"a@b.c"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
