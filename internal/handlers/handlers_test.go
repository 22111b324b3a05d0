package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

var hcm = time.FixedZone("ICT", 7*3600)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for AuthMiddleware.
func asUser(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func serve(r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, httperr.HTTPError) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var e httperr.HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &e)
	return w, e
}

func bookingRouter(h *BookingHandler) *gin.Engine {
	r := gin.New()
	r.Use(asUser(20, models.RoleCustomer))
	r.POST("/bookings", h.Create)
	r.GET("/bookings/:id", h.Get)
	r.PUT("/bookings/:id", h.Update)
	r.PATCH("/bookings/:id/status", h.ChangeStatus)
	r.POST("/bookings/:id/review", h.Review)
	return r
}

func TestBookingHandler_RejectsBadInput(t *testing.T) {
	r := bookingRouter(NewBookingHandler(BookingUseCases{}, hcm))

	cases := []struct {
		name   string
		method string
		target string
		body   string
		code   string
	}{
		{"malformed json", http.MethodPost, "/bookings", `{`, "invalid_request"},
		{"no services", http.MethodPost, "/bookings",
			`{"service_ids":[],"appointment_date":"2030-01-01 10:00","branch_id":1}`, "invalid_request"},
		{"missing branch", http.MethodPost, "/bookings",
			`{"service_ids":[1],"appointment_date":"2030-01-01 10:00"}`, "invalid_request"},
		{"unparseable date", http.MethodPost, "/bookings",
			`{"service_ids":[1],"appointment_date":"tomorrow","branch_id":1}`, "invalid_appointment_date"},
		{"non numeric id", http.MethodGet, "/bookings/abc", "", "invalid_id"},
		{"zero id", http.MethodGet, "/bookings/0", "", "invalid_id"},
		{"update bad date", http.MethodPut, "/bookings/1", `{"appointment_date":"01/02/2030"}`, "invalid_appointment_date"},
		{"status missing", http.MethodPatch, "/bookings/1/status", `{}`, "invalid_request"},
		{"rating out of range", http.MethodPost, "/bookings/1/review", `{"rating":6}`, "invalid_request"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, e := serve(r, tc.method, tc.target, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, e.Code)
		})
	}
}

func TestBookingHandler_ListFilter(t *testing.T) {
	h := NewBookingHandler(BookingUseCases{}, hcm)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/bookings?keyword=an&page=2&size=5&sort_by=created_at&sort_direction=asc"+
			"&employee_id=10&branch_id=1&status=confirmed&date_from=2026-10-01&date_to=2026-10-15", nil)

	f, ok := h.listFilter(c)
	require.True(t, ok)

	assert.Equal(t, "an", f.Keyword)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 5, f.Size)
	assert.Equal(t, "created_at", f.SortBy)
	assert.Equal(t, "asc", f.SortDirection)
	require.NotNil(t, f.EmployeeID)
	assert.Equal(t, uint(10), *f.EmployeeID)
	require.NotNil(t, f.BranchID)
	assert.Nil(t, f.CustomerID)
	assert.Equal(t, "confirmed", f.Status)

	require.NotNil(t, f.DateFrom)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, hcm).Unix(), f.DateFrom.Unix())
	// date_to is inclusive, so the exclusive bound is the next midnight.
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, hcm).Unix(), f.DateTo.Unix())
}

func TestBookingHandler_ListFilterCamelCaseNames(t *testing.T) {
	h := NewBookingHandler(BookingUseCases{}, hcm)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/bookings?sortBy=appointmentDate&sortDirection=asc&employeeId=10&branchId=1&customerId=20"+
			"&dateFrom=2026-10-01&dateTo=2026-10-15", nil)

	f, ok := h.listFilter(c)
	require.True(t, ok)

	assert.Equal(t, "appointmentDate", f.SortBy)
	assert.Equal(t, "asc", f.SortDirection)
	require.NotNil(t, f.EmployeeID)
	assert.Equal(t, uint(10), *f.EmployeeID)
	require.NotNil(t, f.BranchID)
	assert.Equal(t, uint(1), *f.BranchID)
	require.NotNil(t, f.CustomerID)
	assert.Equal(t, uint(20), *f.CustomerID)
	require.NotNil(t, f.DateFrom)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, hcm).Unix(), f.DateFrom.Unix())
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, hcm).Unix(), f.DateTo.Unix())
}

func TestBookingHandler_ListFilterBadAliasUsesCanonicalCode(t *testing.T) {
	h := NewBookingHandler(BookingUseCases{}, hcm)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/bookings?employeeId=abc", nil)

	_, ok := h.listFilter(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_employee_id")
}

func TestBookingHandler_ListFilterRejectsBadNumbers(t *testing.T) {
	h := NewBookingHandler(BookingUseCases{}, hcm)

	for _, q := range []string{"page=x", "employee_id=-1", "date_from=2026/10/01"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/bookings?"+q, nil)

		_, ok := h.listFilter(c)
		assert.False(t, ok, q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestReportHandler_RevenueFilter(t *testing.T) {
	h := NewReportHandler(nil, nil, nil, nil, hcm)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/monthly?year=2025&from=2025-03-01&branch_id=2", nil)

	f, ok := h.revenueFilter(c)
	require.True(t, ok)
	assert.Equal(t, 2025, f.Year)
	require.NotNil(t, f.From)
	assert.Equal(t, time.March, f.From.Month())
	assert.Nil(t, f.To)
	assert.Nil(t, f.EmployeeID)
	require.NotNil(t, f.BranchID)
	assert.Equal(t, uint(2), *f.BranchID)
}

func TestReportHandler_RejectsBadQuery(t *testing.T) {
	h := NewReportHandler(nil, nil, nil, nil, hcm)
	r := gin.New()
	r.GET("/monthly", h.Monthly)
	r.GET("/service", h.ByService)
	r.GET("/activities", h.Activities)

	for target, code := range map[string]string{
		"/monthly?year=abc":     "invalid_year",
		"/service?to=yesterday": "invalid_to",
		"/activities?limit=ten": "invalid_limit",
	} {
		w, e := serve(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, code, e.Code, target)
	}
}

func TestBuildSteps_NumbersInOrder(t *testing.T) {
	steps := buildSteps(4, []ServiceStepRequest{
		{Name: " Wash "},
		{Name: "Cut", Detail: "scissors"},
		{Name: "Dry"},
	})

	require.Len(t, steps, 3)
	for i, s := range steps {
		assert.Equal(t, uint(4), s.ServiceID)
		assert.Equal(t, i+1, s.StepOrder)
	}
	assert.Equal(t, "Wash", steps[0].Name)
	assert.Equal(t, "scissors", steps[1].Detail)
	assert.Empty(t, buildSteps(4, nil))
}

func TestUserHandler_AccessChecksBeforeLookup(t *testing.T) {
	h := NewUserHandler(nil)

	t.Run("customer cannot read another user", func(t *testing.T) {
		r := gin.New()
		r.GET("/users/:id", asUser(20, models.RoleCustomer), h.Get)

		w, e := serve(r, http.MethodGet, "/users/21", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "user_not_found", e.Code)
	})

	t.Run("barber cannot change another barber", func(t *testing.T) {
		r := gin.New()
		r.PATCH("/users/:id/availability", asUser(10, models.RoleBarber), h.UpdateAvailability)

		w, e := serve(r, http.MethodPatch, "/users/11/availability", `{"availability_status":"unavailable"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "forbidden", e.Code)
	})

	t.Run("admin cannot deactivate self", func(t *testing.T) {
		r := gin.New()
		r.PATCH("/users/:id/status", asUser(1, models.RoleAdmin), h.UpdateStatus)

		w, e := serve(r, http.MethodPatch, "/users/1/status", `{"status":"inactive"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "cannot_deactivate_self", e.Code)
	})

	t.Run("unknown availability value", func(t *testing.T) {
		r := gin.New()
		r.PATCH("/users/:id/availability", asUser(10, models.RoleBarber), h.UpdateAvailability)

		w, e := serve(r, http.MethodPatch, "/users/10/availability", `{"availability_status":"busy"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_request", e.Code)
	})
}

func TestAuthHandler_LoginNeedsIdentifier(t *testing.T) {
	h := NewAuthHandler(nil, nil)
	r := gin.New()
	r.POST("/login", h.Login)

	w, e := serve(r, http.MethodPost, "/login", `{"password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", e.Code)
}
