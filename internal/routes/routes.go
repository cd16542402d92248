package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/handlers"
	"github.com/BruksfildServices01/salon-booking/internal/infra/idempotency"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
	ucDashboard "github.com/BruksfildServices01/salon-booking/internal/usecase/dashboard"
	ucMerchant "github.com/BruksfildServices01/salon-booking/internal/usecase/merchant"
	ucPayment "github.com/BruksfildServices01/salon-booking/internal/usecase/payment"
	ucSlot "github.com/BruksfildServices01/salon-booking/internal/usecase/slot"
)

// Deps is everything the HTTP surface is built from. main wires the gorm,
// redis, S3 and provider implementations; tests wire the in-memory ones.
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger

	Merchants domain.MerchantRepository
	Users     domain.UserRepository
	Workers   domain.WorkerRepository
	Slots     domain.SlotRepository
	Bookings  domain.BookingRepository
	Payments  payment.Repository

	// The first gateway is the primary one used for unknown payments.
	Gateways []payment.Gateway

	Idempotency idempotency.Store
	Objects     storage.ObjectStore

	Audit     *audit.Dispatcher
	AuditLogs handlers.AuditLister

	// Optional.
	DB         handlers.Pinger
	EmailCheck func(email string) bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	cfg := d.Config
	window := cfg.Schedule()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// ======================================================
	// USE CASES - SLOTS
	// ======================================================
	generateUC := ucSlot.NewGenerateSlots(d.Merchants, d.Workers, d.Slots, window, d.Log)
	availabilityUC := ucSlot.NewGetAvailability(generateUC, d.Slots)
	checkExtensionUC := ucSlot.NewCheckExtension(d.Slots, window)
	extendUC := ucSlot.NewExtendSlot(checkExtensionUC, d.Slots, d.Log)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(d.Slots, d.Bookings, d.Merchants, d.Payments, d.Audit, d.Log)
	listBookingsUC := ucBooking.NewListBookings(d.Bookings)
	transitionUC := ucBooking.NewTransitionBooking(d.Bookings, d.Audit, d.Log)

	// ======================================================
	// USE CASES - PAYMENTS
	// ======================================================
	primary, others := d.Gateways[0], d.Gateways[1:]
	reconcileUC := ucPayment.NewReconcile(d.Payments, primary, others, d.Audit, d.Log)
	coinsUC := ucPayment.NewPayWithCoins(d.Bookings, d.Payments, cfg.CoinValue, cfg.PaymentCurrency, d.Audit, d.Log)
	checkoutUC := ucPayment.NewCheckout(
		d.Bookings,
		d.Users,
		d.Payments,
		d.Gateways,
		reconcileUC,
		coinsUC,
		d.Idempotency,
		cfg.PaymentCurrency,
		d.Log,
	)
	notificationUC := ucPayment.NewHandleNotification(reconcileUC, d.Idempotency, d.Log)

	// ======================================================
	// USE CASES - MERCHANTS
	// ======================================================
	applyUC := ucMerchant.NewApply(d.Merchants, d.Log)
	reviewUC := ucMerchant.NewReview(d.Merchants, d.Audit, d.Log)
	catalogUC := ucMerchant.NewCatalog(d.Merchants, d.Workers)
	coverUC := ucMerchant.NewUploadCover(d.Merchants, d.Objects)
	directoryUC := ucMerchant.NewDirectory(d.Merchants, d.Workers, d.Objects, d.Log)
	dashboardUC := ucDashboard.NewDashboard(d.Merchants, d.Users, d.Slots, d.Bookings)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(d.Users, cfg.JWTSecret)
	if d.EmailCheck != nil {
		authHandler.WithEmailCheck(d.EmailCheck)
	}
	publicHandler := handlers.NewPublicHandler(directoryUC, availabilityUC)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, listBookingsUC, transitionUC, checkoutUC, coinsUC)
	paymentHandler := handlers.NewPaymentHandler(reconcileUC, notificationUC, d.Log)
	slotHandler := handlers.NewSlotHandler(generateUC, checkExtensionUC, extendUC)
	merchantHandler := handlers.NewMerchantHandler(applyUC, catalogUC, coverUC, d.Users, cfg.JWTSecret)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	adminHandler := handlers.NewAdminHandler(directoryUC, reviewUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		open := api.Group("/")
		open.Use(middleware.RateLimit(limiter))
		{
			open.POST("/auth/register", authHandler.Register)
			open.POST("/auth/login", authHandler.Login)

			open.GET("/public/salons", publicHandler.ListSalons)
			open.GET("/public/salons/:slug", publicHandler.GetSalon)
			open.GET("/public/salons/:slug/availability", publicHandler.Availability)
		}

		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/auth/me", authHandler.Me)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.ListMine)
			secured.POST("/bookings/:id/checkout", bookingHandler.Checkout)
			secured.POST("/bookings/:id/pay-with-coins", bookingHandler.PayWithCoins)

			secured.POST("/payments/:provider_id/reconcile", paymentHandler.Reconcile)

			secured.POST("/merchants/apply", merchantHandler.Apply)
		}

		// ------------------------------
		// MERCHANT
		// ------------------------------
		me := api.Group("/me")
		me.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireRole(domain.RoleMerchant))
		{
			me.GET("/bookings", bookingHandler.ListForMerchant)
			me.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

			me.POST("/slots/generate", slotHandler.Generate)
			me.GET("/slots/:id/extension", slotHandler.Extension)
			me.POST("/slots/:id/extend", slotHandler.Extend)

			me.GET("/workers", merchantHandler.ListWorkers)
			me.POST("/workers", merchantHandler.AddWorker)
			me.PATCH("/workers/:id", merchantHandler.SetWorkerActive)

			me.GET("/services", merchantHandler.ListServices)
			me.POST("/services", merchantHandler.AddService)
			me.PUT("/services/:id", merchantHandler.UpdateService)

			me.PUT("/cover", merchantHandler.UploadCover)
			me.GET("/dashboard", dashboardHandler.Merchant)
			me.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/merchants", adminHandler.ListMerchants)
			admin.PATCH("/merchants/:id/review", adminHandler.Review)
			admin.GET("/dashboard", dashboardHandler.Admin)
		}
	}
}
