package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/asxfolio/asx_portfolio_app/internal/core/domain"
	portssvc "github.com/asxfolio/asx_portfolio_app/internal/core/ports/services"
	"github.com/asxfolio/asx_portfolio_app/internal/middleware"
	"github.com/asxfolio/asx_portfolio_app/internal/platform/config"
)

func init() {
	registerCustomValidators()
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.Token)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerTransactionRoutes(v1, services.Ledger, services.CGT)
	registerPriceRoutes(v1, services.Price)
	RegisterCGTRoutes(v1, services.CGT)
}

// registerCustomValidators adds request validators beyond the built-in tags.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("lotmethod", func(fl validator.FieldLevel) bool {
			switch domain.LotMethod(fl.Field().String()) {
			case domain.MethodFIFO, domain.MethodLIFO, domain.MethodSpecific:
				return true
			}
			return false
		})
	}
}
