package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/report"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	ucReport "github.com/BruksfildServices01/salon-manager/internal/usecase/report"
)

type ReportHandler struct {
	monthly    *ucReport.GetMonthlyRevenue
	byService  *ucReport.GetRevenueByService
	dashboard  *ucReport.GetDashboardStats
	activities *ucReport.ListActivities

	loc *time.Location
}

func NewReportHandler(
	monthly *ucReport.GetMonthlyRevenue,
	byService *ucReport.GetRevenueByService,
	dashboard *ucReport.GetDashboardStats,
	activities *ucReport.ListActivities,
	loc *time.Location,
) *ReportHandler {
	return &ReportHandler{
		monthly:    monthly,
		byService:  byService,
		dashboard:  dashboard,
		activities: activities,
		loc:        loc,
	}
}

// revenueFilter reads year, from, to, employee_id and branch_id.
func (h *ReportHandler) revenueFilter(c *gin.Context) (domain.Filter, bool) {
	var f domain.Filter
	var ok bool

	if f.Year, ok = queryInt(c, "year"); !ok {
		return f, false
	}
	if f.From, ok = queryDate(c, h.loc, "from"); !ok {
		return f, false
	}
	if f.To, ok = queryDate(c, h.loc, "to"); !ok {
		return f, false
	}
	if f.EmployeeID, ok = queryUint(c, "employee_id", "employeeId"); !ok {
		return f, false
	}
	if f.BranchID, ok = queryUint(c, "branch_id", "branchId"); !ok {
		return f, false
	}
	return f, true
}

func (h *ReportHandler) Monthly(c *gin.Context) {
	f, ok := h.revenueFilter(c)
	if !ok {
		return
	}

	rows, err := h.monthly.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *ReportHandler) ByService(c *gin.Context) {
	f, ok := h.revenueFilter(c)
	if !ok {
		return
	}

	rows, err := h.byService.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, stats)
}

func (h *ReportHandler) Activities(c *gin.Context) {
	f := domain.ActivityFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	var ok bool
	if f.Page, ok = queryInt(c, "page"); !ok {
		return
	}
	if f.Limit, ok = queryInt(c, "limit"); !ok {
		return
	}

	out, err := h.activities.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, out.Items, out.Total, out.Page, out.Limit)
}
