package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	domainBooking "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	domainReport "github.com/BruksfildServices01/salon-manager/internal/domain/report"
	"github.com/BruksfildServices01/salon-manager/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-manager/internal/usecase/booking"
	ucReport "github.com/BruksfildServices01/salon-manager/internal/usecase/report"
)

// Deps are the long-lived collaborators built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Audit  *audit.Dispatcher
	Cache  domainReport.Cache
	// Revenue defaults to a no-op.
	Revenue domainBooking.RevenueHook
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	db, cfg := deps.DB, deps.Config
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	bookingRepo := infraRepo.NewBookingGormRepository(db)
	reportRepo := infraRepo.NewReportGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	bookingUC := handlers.BookingUseCases{
		Create:       ucBooking.NewCreateBooking(bookingRepo, deps.Audit, cfg.RejectOverlap),
		Update:       ucBooking.NewUpdateBooking(bookingRepo, deps.Audit, cfg.RejectOverlap),
		ChangeStatus: ucBooking.NewChangeBookingStatus(bookingRepo, deps.Audit, deps.Revenue),
		Delete:       ucBooking.NewDeleteBooking(bookingRepo, deps.Audit),
		Get:          ucBooking.NewGetBooking(bookingRepo),
		List:         ucBooking.NewListBookings(bookingRepo),
		Rate:         ucBooking.NewRateBooking(bookingRepo, deps.Audit),
	}

	reportOpts := ucReport.Options{
		Location: loc,
		Cache:    deps.Cache,
		CacheTTL: cfg.ReportCacheTTL,
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	bookingHandler := handlers.NewBookingHandler(bookingUC, loc)
	reportHandler := handlers.NewReportHandler(
		ucReport.NewGetMonthlyRevenue(reportRepo, reportOpts),
		ucReport.NewGetRevenueByService(reportRepo, reportOpts),
		ucReport.NewGetDashboardStats(reportRepo, reportOpts),
		ucReport.NewListActivities(reportRepo),
		loc,
	)
	serviceHandler := handlers.NewServiceHandler(db)
	branchHandler := handlers.NewBranchHandler(db, loc)
	userHandler := handlers.NewUserHandler(db)
	productHandler := handlers.NewProductHandler(db)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	frontDesk := middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist, models.RoleBarber)

	api := r.Group("/api")

	// ------------------------------
	// PUBLIC
	// ------------------------------
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/services", serviceHandler.List)
	api.GET("/services/:id", serviceHandler.Get)
	api.GET("/branches", branchHandler.List)
	api.GET("/branches/:id", branchHandler.Get)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	// ------------------------------
	// AUTHENTICATED
	// ------------------------------
	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	secured.GET("/me", meHandler.GetMe)

	bookings := secured.Group("/bookings")
	{
		bookings.GET("", bookingHandler.List)
		bookings.POST("", bookingHandler.Create)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.PUT("/:id", bookingHandler.Update)
		bookings.DELETE("/:id", frontDesk, bookingHandler.Delete)
		bookings.PATCH("/:id/status", bookingHandler.ChangeStatus)
		bookings.POST("/:id/review", bookingHandler.Review)
	}

	reports := secured.Group("/reports", frontDesk)
	{
		reports.GET("/monthly", reportHandler.Monthly)
		reports.GET("/service", reportHandler.ByService)
		reports.GET("/dashboard", reportHandler.Dashboard)
		reports.GET("/activities", reportHandler.Activities)
	}

	secured.POST("/services", adminOnly, serviceHandler.Create)
	secured.PUT("/services/:id", adminOnly, serviceHandler.Update)
	secured.DELETE("/services/:id", adminOnly, serviceHandler.Delete)

	secured.POST("/branches", adminOnly, branchHandler.Create)
	secured.PUT("/branches/:id", adminOnly, branchHandler.Update)
	secured.GET("/branches/:id/employees", adminOnly, branchHandler.ListEmployees)
	secured.POST("/branches/:id/employees", adminOnly, branchHandler.AddEmployee)
	secured.DELETE("/branches/:id/employees/:employee_id", adminOnly, branchHandler.RemoveEmployee)

	secured.POST("/products", adminOnly, productHandler.Create)
	secured.PUT("/products/:id", adminOnly, productHandler.Update)
	secured.DELETE("/products/:id", adminOnly, productHandler.Delete)

	secured.GET("/users", frontDesk, userHandler.List)
	secured.POST("/users", adminOnly, userHandler.CreateStaff)
	secured.GET("/users/:id", userHandler.Get)
	secured.PATCH("/users/:id/status", adminOnly, userHandler.UpdateStatus)
	secured.PATCH("/users/:id/availability", staff, userHandler.UpdateAvailability)
}
