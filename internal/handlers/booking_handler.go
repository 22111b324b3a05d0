package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-manager/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	update       *ucBooking.UpdateBooking
	changeStatus *ucBooking.ChangeBookingStatus
	remove       *ucBooking.DeleteBooking
	get          *ucBooking.GetBooking
	list         *ucBooking.ListBookings
	rate         *ucBooking.RateBooking

	loc *time.Location
}

type BookingUseCases struct {
	Create       *ucBooking.CreateBooking
	Update       *ucBooking.UpdateBooking
	ChangeStatus *ucBooking.ChangeBookingStatus
	Delete       *ucBooking.DeleteBooking
	Get          *ucBooking.GetBooking
	List         *ucBooking.ListBookings
	Rate         *ucBooking.RateBooking
}

func NewBookingHandler(uc BookingUseCases, loc *time.Location) *BookingHandler {
	if loc == nil {
		loc = timezone.Location("")
	}
	return &BookingHandler{
		create:       uc.Create,
		update:       uc.Update,
		changeStatus: uc.ChangeStatus,
		remove:       uc.Delete,
		get:          uc.Get,
		list:         uc.List,
		rate:         uc.Rate,
		loc:          loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerID    *uint  `json:"customer_id"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name" binding:"max=100"`

	ServiceIDs      []uint `json:"service_ids" binding:"required,min=1,dive,gt=0"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	EmployeeID      *uint  `json:"employee_id"`
	BranchID        uint   `json:"branch_id" binding:"required,gt=0"`
	Notes           string `json:"notes" binding:"max=255"`
}

type UpdateBookingRequest struct {
	AppointmentDate *string `json:"appointment_date"`
	Notes           *string `json:"notes" binding:"omitempty,max=255"`
	EmployeeID      *uint   `json:"employee_id"`
	ServiceIDs      []uint  `json:"service_ids" binding:"omitempty,min=1,dive,gt=0"`
}

type ChangeBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RateBookingRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review" binding:"max=1000"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	at, err := timezone.ParseDateTime(strings.TrimSpace(req.AppointmentDate), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_date", "appointment_date must be RFC3339 or YYYY-MM-DD HH:mm.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Actor:           actorFrom(c),
		CustomerID:      req.CustomerID,
		CustomerPhone:   req.CustomerPhone,
		CustomerName:    req.CustomerName,
		ServiceIDs:      req.ServiceIDs,
		AppointmentDate: at,
		EmployeeID:      req.EmployeeID,
		BranchID:        req.BranchID,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	f, ok := h.listFilter(c)
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.NewBookingListDTOs(out.Bookings), out.Total, out.Page, out.Size)
}

func (h *BookingHandler) listFilter(c *gin.Context) (domain.ListFilter, bool) {
	f := domain.ListFilter{
		Keyword:       c.Query("keyword"),
		SortBy:        queryString(c, "sort_by", "sortBy"),
		SortDirection: queryString(c, "sort_direction", "sortDirection"),
		Status:        c.Query("status"),
	}

	var ok bool
	if f.Page, ok = queryInt(c, "page"); !ok {
		return f, false
	}
	if f.Size, ok = queryInt(c, "size"); !ok {
		return f, false
	}
	if f.EmployeeID, ok = queryUint(c, "employee_id", "employeeId"); !ok {
		return f, false
	}
	if f.BranchID, ok = queryUint(c, "branch_id", "branchId"); !ok {
		return f, false
	}
	if f.CustomerID, ok = queryUint(c, "customer_id", "customerId"); !ok {
		return f, false
	}
	if f.DateFrom, ok = queryDate(c, h.loc, "date_from", "dateFrom"); !ok {
		return f, false
	}
	if f.DateTo, ok = queryDate(c, h.loc, "date_to", "dateTo"); !ok {
		return f, false
	}
	// dateTo names a whole day.
	if f.DateTo != nil {
		end := f.DateTo.AddDate(0, 0, 1)
		f.DateTo = &end
	}

	return f, true
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// UPDATE / STATUS / DELETE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	in := ucBooking.UpdateBookingInput{
		Actor:      actorFrom(c),
		BookingID:  id,
		Notes:      req.Notes,
		EmployeeID: req.EmployeeID,
		ServiceIDs: req.ServiceIDs,
	}
	if req.AppointmentDate != nil {
		at, err := timezone.ParseDateTime(strings.TrimSpace(*req.AppointmentDate), h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_appointment_date", "appointment_date must be RFC3339 or YYYY-MM-DD HH:mm.")
			return
		}
		in.AppointmentDate = &at
	}

	b, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ChangeBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.changeStatus.Execute(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// REVIEW
// ======================================================

func (h *BookingHandler) Review(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Rating must be between 1 and 5.")
		return
	}

	b, err := h.rate.Execute(c.Request.Context(), actorFrom(c), id, req.Rating, strings.TrimSpace(req.Review))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}
