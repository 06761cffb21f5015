package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/popcrumbs-alex/silver2ctfunnel/internal/handler"
	"github.com/popcrumbs-alex/silver2ctfunnel/internal/service"
)

type Server struct {
	echo         *echo.Echo
	orderHandler *handler.OrderHandler
}

func NewServer(orderService service.OrderService) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	orderHandler := handler.NewOrderHandler(orderService)

	s := &Server{
		echo:         e,
		orderHandler: orderHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- order mutation gateway --------
	orders := api.Group("/orders")
	orders.POST("/find", s.orderHandler.FindOrder)
	orders.POST("/create", s.orderHandler.CreateOrder)
	orders.POST("/update", s.orderHandler.UpdateOrder)
	orders.POST("/close", s.orderHandler.CloseOrder)
}

// Echo exposes the underlying router for httptest-based integration tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
