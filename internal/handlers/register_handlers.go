package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/finbooks/erp_ledger_app/cmd/docs"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
	"github.com/finbooks/erp_ledger_app/internal/platform/cache"
	"github.com/finbooks/erp_ledger_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	listCache *cache.Memory,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, listCache)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	listCache *cache.Memory,
) {
	// Rate limit the whole API surface per client IP
	rate, _ := limiter.NewRateFromFormatted(cfg.RateLimit)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	// Apply rate limiting and AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter), middleware.AuthMiddleware(cfg.JWTSecret))

	registerJournalRoutes(v1, services.Journal, listCache)
	registerOrderRoutes(v1, services.Order, listCache)
	registerVoucherRoutes(v1, services.Voucher)
	registerSequenceRoutes(v1, services.Sequence)
}

func registerJournalRoutes(v1 *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade, listCache *cache.Memory) {
	h := newJournalHandler(journalSvc)

	journals := v1.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", cache.Page(listCache, "list:journals"), h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.PUT("/:journalID/status", h.updateJournalStatus)
		journals.POST("/:journalID/reverse", h.reverseJournal)
		journals.POST("/:journalID/submit", h.submitForApproval)
		journals.POST("/:journalID/decision", h.recordApprovalDecision)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, orderSvc portssvc.OrderSvcFacade, listCache *cache.Memory) {
	h := newOrderHandler(orderSvc)

	orders := v1.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", cache.Page(listCache, "list:orders"), h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.PUT("/:orderID", h.updateOrder)
		orders.PUT("/:orderID/status", h.updateOrderStatus)
		orders.POST("/:orderID/payments", h.recordPayment)
		orders.POST("/:orderID/payments/failed", h.markPaymentFailed)
		orders.POST("/:orderID/payments/retry", h.clearPaymentFailure)
	}
}

func registerVoucherRoutes(v1 *gin.RouterGroup, voucherSvc portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherSvc)

	vouchers := v1.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.PUT("/:voucherID/status", h.updateVoucherStatus)
	}
}

func registerSequenceRoutes(v1 *gin.RouterGroup, sequenceSvc portssvc.SequenceSvcFacade) {
	h := newSequenceHandler(sequenceSvc)

	sequences := v1.Group("/sequences")
	{
		sequences.POST("/reserve", h.reserveBlock)
		sequences.GET("/:scopeKey", h.getCounter)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
