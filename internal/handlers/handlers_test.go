package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourbook/catalog/internal/repository"
	"github.com/tourbook/catalog/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func resource(r *gin.Engine, path string, list, create, get, update, remove gin.HandlerFunc) {
	group := r.Group(path)
	group.GET("/", list)
	group.POST("/", create)
	group.GET("/:id/", get)
	group.PUT("/:id/", update)
	group.PATCH("/:id/", update)
	group.DELETE("/:id/", remove)
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	h := NewHandler(services.NewCatalog(repository.NewMemoryStore(), nil))
	r := gin.New()

	resource(r, "/users", h.ListUsers, h.CreateUser, h.GetUser, h.UpdateUser, h.DeleteUser)
	resource(r, "/zones", h.ListZones, h.CreateZone, h.GetZone, h.UpdateZone, h.DeleteZone)
	resource(r, "/tours", h.ListTours, h.CreateTour, h.GetTour, h.UpdateTour, h.DeleteTour)
	resource(r, "/salidas", h.ListDepartures, h.CreateDeparture, h.GetDeparture, h.UpdateDeparture, h.DeleteDeparture)
	r.GET("/health", h.HealthCheck)
	r.GET("/admin/catalog", h.AdminCatalog)

	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())

	return out
}

func createZone(t *testing.T, r *gin.Engine, name string) ZoneResponse {
	t.Helper()

	w := do(t, r, http.MethodPost, "/zones/", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decodeBody[ZoneResponse](t, w)
}

func createTour(t *testing.T, r *gin.Engine, from, to uint) TourResponse {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"name":        "Beach Hop",
		"description": "...",
		"zonaSalida":  from,
		"zonaLlegada": to,
	})
	require.NoError(t, err)

	w := do(t, r, http.MethodPost, "/tours/", string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decodeBody[TourResponse](t, w)
}

func TestUsers_CreateAndRetrieve(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users/", `{"name":"Ana","email":"ana@example.com","genre":"M","birthday":"1990-04-12"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeBody[UserResponse](t, w)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.Birthday)
	assert.Equal(t, "1990-04-12", *created.Birthday)
	assert.Nil(t, created.LastName)

	w = do(t, r, http.MethodGet, "/users/1/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 1, "name": "Ana", "last_name": null, "email": "ana@example.com",
		"birthday": "1990-04-12", "genre": "M", "key": null, "type": null
	}`, w.Body.String())
}

func TestUsers_Validation(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users/", `{"name":"Ana","email":"not-an-email","genre":"X"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody[struct {
		Fields map[string]string `json:"fields"`
	}](t, w)
	assert.Equal(t, "email", body.Fields["email"])
	assert.Equal(t, "oneof=H M", body.Fields["genre"])

	w = do(t, r, http.MethodPost, "/users/", `{"name":"Ana","email":"ana@example.com","genre":"M","birthday":"12/04/1990"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "birthday")

	w = do(t, r, http.MethodGet, "/users/", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUsers_PutRequiresFieldsPatchDoesNot(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/users/", `{"name":"Ana","email":"ana@example.com","genre":"M"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPut, "/users/1/", `{"name":"Ana María"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"required"`)

	w = do(t, r, http.MethodPatch, "/users/1/", `{"name":"Ana María"}`)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeBody[UserResponse](t, w)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "ana@example.com", updated.Email)
}

func TestUsers_NotFoundAndBadID(t *testing.T) {
	r := setupRouter(t)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/users/42/", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPatch, "/users/42/", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/users/42/", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/users/abc/", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/users/", `{"name":`).Code)
}

func TestZones_EmbedTours(t *testing.T) {
	r := setupRouter(t)
	a := createZone(t, r, "Cancún")
	b := createZone(t, r, "Tulum")
	tour := createTour(t, r, a.ID, b.ID)

	w := do(t, r, http.MethodGet, "/zones/", "")
	require.Equal(t, http.StatusOK, w.Code)

	zones := decodeBody[[]ZoneResponse](t, w)
	require.Len(t, zones, 2)
	require.Len(t, zones[0].ToursSalida, 1)
	assert.Equal(t, tour.ID, zones[0].ToursSalida[0].ID)
	assert.Empty(t, zones[0].ToursLlegada)
	assert.Empty(t, zones[1].ToursSalida)
	require.Len(t, zones[1].ToursLlegada, 1)

	w = do(t, r, http.MethodGet, "/zones/2/", "")
	require.Equal(t, http.StatusOK, w.Code)

	zone := decodeBody[map[string]any](t, w)
	assert.Equal(t, []any{}, zone["tours_salida"])
	assert.Len(t, zone["tours_llegada"], 1)
}

func TestZones_PatchKeepsUnsetFields(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/zones/", `{"name":"Cancún","description":"Caribe","latitud":21.16,"longitud":-86.85}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPatch, "/zones/1/", `{"name":"Cancun City"}`)
	require.Equal(t, http.StatusOK, w.Code)

	zone := decodeBody[ZoneResponse](t, w)
	assert.Equal(t, "Cancun City", zone.Name)
	require.NotNil(t, zone.Description)
	assert.Equal(t, "Caribe", *zone.Description)
	assert.Equal(t, 21.16, *zone.Latitud)
	assert.Equal(t, -86.85, *zone.Longitud)

	w = do(t, r, http.MethodPatch, "/zones/1/", `{"latitud":120}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"latitud":"lte=90"`)
}

func TestZones_DeleteGuarded(t *testing.T) {
	r := setupRouter(t)
	a := createZone(t, r, "Cancún")
	b := createZone(t, r, "Tulum")
	tour := createTour(t, r, a.ID, b.ID)

	w := do(t, r, http.MethodDelete, "/zones/1/", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodDelete, "/tours/"+jsonID(tour.ID)+"/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/zones/1/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/zones/1/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTours_MissingZoneIsRejected(t *testing.T) {
	r := setupRouter(t)
	a := createZone(t, r, "Cancún")

	w := do(t, r, http.MethodPost, "/tours/", `{"name":"Ghost","description":"...","zonaSalida":9999,"zonaLlegada":`+jsonID(a.ID)+`}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Zone not found")

	w = do(t, r, http.MethodGet, "/tours/", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTours_Representation(t *testing.T) {
	r := setupRouter(t)
	a := createZone(t, r, "Cancún")
	b := createZone(t, r, "Tulum")
	createTour(t, r, a.ID, b.ID)

	w := do(t, r, http.MethodGet, "/tours/1/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 1, "name": "Beach Hop", "operator": null, "type": null,
		"description": "...", "img": null, "pais": null,
		"zonaSalida": 1, "zonaLlegada": 2
	}`, w.Body.String())
}

func TestDepartures_CRUD(t *testing.T) {
	r := setupRouter(t)
	a := createZone(t, r, "Cancún")
	b := createZone(t, r, "Tulum")
	tour := createTour(t, r, a.ID, b.ID)

	w := do(t, r, http.MethodPost, "/salidas/", `{"fechaInicio":"2024-05-03","fechaFin":"2024-05-01","asientos":10,"precio":99.5,"tour":`+jsonID(tour.ID)+`}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"fechaFin":"gtefield=FechaInicio"`)

	w = do(t, r, http.MethodPost, "/salidas/", `{"fechaInicio":"2024-05-01","fechaFin":"2024-05-03","asientos":10,"precio":99.5,"tour":`+jsonID(tour.ID)+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1,"fechaInicio":"2024-05-01","fechaFin":"2024-05-03","asientos":10,"precio":99.5,"tour":1}`, w.Body.String())

	w = do(t, r, http.MethodPatch, "/salidas/1/", `{"asientos":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, "/salidas/1/", `{"asientos":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decodeBody[DepartureResponse](t, w).Asientos)

	w = do(t, r, http.MethodDelete, "/tours/1/", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodDelete, "/salidas/1/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodPost, "/salidas/", `{"fechaInicio":"2024-05-01","fechaFin":"2024-05-03","asientos":1,"precio":1,"tour":77}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminCatalog(t *testing.T) {
	r := setupRouter(t)
	a := createZone(t, r, "Cancún")
	b := createZone(t, r, "Tulum")
	createTour(t, r, a.ID, b.ID)

	w := do(t, r, http.MethodGet, "/admin/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[AdminCatalogResponse](t, w)
	assert.Len(t, body.Tours, 1)
	assert.Len(t, body.Zonas, 2)
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotContains(t, w.Body.String(), `"scheduler"`)
}

type fakeJobs struct{}

func (fakeJobs) Status() map[string]interface{} {
	return map[string]interface{}{"active_jobs": 1, "running": true}
}

func TestHealthCheckReportsJobs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(services.NewCatalog(repository.NewMemoryStore(), nil)).WithJobs(fakeJobs{})
	r := gin.New()
	r.GET("/health", h.HealthCheck)

	w := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[map[string]interface{}](t, w)
	assert.Equal(t, map[string]interface{}{"active_jobs": float64(1), "running": true}, body["scheduler"])
}

func jsonID(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
