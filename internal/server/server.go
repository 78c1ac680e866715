package server

import (
	"parcel-delivery-api/internal/handler"
	appmw "parcel-delivery-api/internal/middleware"
	"parcel-delivery-api/internal/model"
	"parcel-delivery-api/internal/repository"
	"parcel-delivery-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	echo           *echo.Echo
	jwtSecret      string
	userRepo       repository.UserRepository
	parcelHandler  *handler.ParcelHandler
	paymentHandler *handler.PaymentHandler
	userHandler    *handler.UserHandler
}

func NewServer(
	jwtSecret string,
	userRepo repository.UserRepository,
	parcelService service.ParcelService,
	paymentService service.PaymentService,
	userService service.UserService,
) *Server {
	e := echo.New()

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		jwtSecret:      jwtSecret,
		userRepo:       userRepo,
		parcelHandler:  handler.NewParcelHandler(parcelService, userService),
		paymentHandler: handler.NewPaymentHandler(paymentService, userService),
		userHandler:    handler.NewUserHandler(userService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	auth := appmw.VerifyToken(s.jwtSecret)
	adminOnly := appmw.RequireRole(s.userRepo, model.RoleAdmin)

	// -------- users --------
	api.POST("/users", s.userHandler.UpsertUser)
	api.GET("/users", s.userHandler.GetUsers, auth, adminOnly)
	api.GET("/users/me", s.userHandler.GetMe, auth)
	api.PATCH("/users/:id/role", s.userHandler.UpdateRole, auth, adminOnly)

	// -------- parcels --------
	parcels := api.Group("/parcels", auth)
	parcels.POST("", s.parcelHandler.CreateParcel)
	parcels.GET("", s.parcelHandler.GetParcels)
	parcels.GET("/:id", s.parcelHandler.GetParcel)
	parcels.PATCH("/:id", s.parcelHandler.UpdateParcel)
	parcels.DELETE("/:id", s.parcelHandler.DeleteParcel)
	parcels.POST("/:id/pay", s.paymentHandler.PayManually, adminOnly)

	// -------- payments --------
	payments := api.Group("/payments", auth)
	payments.POST("/create-checkout-session", s.paymentHandler.CreateCheckoutSession)
	payments.POST("/verify-payment", s.paymentHandler.VerifyPayment)
	payments.GET("", s.paymentHandler.GetPayments)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
