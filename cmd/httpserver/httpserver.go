// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bezell-bank/ledger-core/internal/accountdelivery"
	"github.com/bezell-bank/ledger-core/internal/accountrepo"
	"github.com/bezell-bank/ledger-core/internal/accountservice"
	"github.com/bezell-bank/ledger-core/internal/assetdelivery"
	"github.com/bezell-bank/ledger-core/internal/assetrepo"
	"github.com/bezell-bank/ledger-core/internal/customerdelivery"
	"github.com/bezell-bank/ledger-core/internal/customerrepo"
	"github.com/bezell-bank/ledger-core/internal/customerservice"
	"github.com/bezell-bank/ledger-core/internal/metricsdelivery"
	"github.com/bezell-bank/ledger-core/internal/metricsservice"
	"github.com/bezell-bank/ledger-core/internal/middleware"
	"github.com/bezell-bank/ledger-core/internal/notificationdelivery"
	"github.com/bezell-bank/ledger-core/internal/notificationrepo"
	"github.com/bezell-bank/ledger-core/internal/notificationservice"
	"github.com/bezell-bank/ledger-core/internal/transactiondelivery"
	"github.com/bezell-bank/ledger-core/internal/transactionrepo"
	"github.com/bezell-bank/ledger-core/internal/transactionservice"
	"github.com/bezell-bank/ledger-core/pkg/configpkg"
	"github.com/bezell-bank/ledger-core/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config, publisher transactionservice.Publisher) (*Server, error) {
	customerRepo := customerrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	assetRepo := assetrepo.NewRepoPGS(conn)
	notificationRepo := notificationrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	notificationService := notificationservice.New(notificationRepo)
	accountService := accountservice.New(accountRepo, customerRepo, notificationService)
	customerService := customerservice.New(customerRepo, accountService, notificationService)
	transactionService := transactionservice.New(transactionRepo, notificationService, publisher, customerRepo)
	metricsService := metricsservice.New(assetRepo, transactionRepo)

	customerHandler := customerdelivery.NewHandler(customerService, tokenMaker, config)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	assetHandler := assetdelivery.NewHandler(assetRepo)
	metricsHandler := metricsdelivery.NewHandler(metricsService)
	notificationHandler := notificationdelivery.NewHandler(notificationService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/auth/signup", customerHandler.Signup)
	engine.POST("/auth/signin", customerHandler.Signin)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.POST("/accounts/freeze", accountHandler.Freeze)
	authRoutes.POST("/accounts/unfreeze", accountHandler.Unfreeze)

	authRoutes.POST("/transactions/deposit", transactionHandler.Deposit)
	authRoutes.POST("/transactions/withdraw", transactionHandler.Withdraw)
	authRoutes.POST("/transactions/transfer", transactionHandler.Transfer)
	authRoutes.GET("/transactions", transactionHandler.List)

	authRoutes.POST("/assets", assetHandler.Create)
	authRoutes.GET("/assets", assetHandler.List)
	authRoutes.GET("/assets/:id", assetHandler.Get)
	authRoutes.DELETE("/assets/:id", assetHandler.Delete)

	authRoutes.GET("/basel/metrics", metricsHandler.CapitalMetrics)
	authRoutes.GET("/portfolio/allocation", metricsHandler.AssetAllocation)
	authRoutes.GET("/admin/basel-report", metricsHandler.BaselReport)
	authRoutes.GET("/admin/transactions", transactionHandler.ListAll)
	authRoutes.GET("/admin/inactive-accounts/:days", accountHandler.ListInactive)

	authRoutes.POST("/notifications", notificationHandler.Enqueue)
	authRoutes.GET("/notifications", notificationHandler.List)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
