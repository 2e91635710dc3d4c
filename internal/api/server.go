package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/loddgo/loddgo-api/docs"
	v1 "github.com/loddgo/loddgo-api/internal/api/handler/v1"
	"github.com/loddgo/loddgo-api/internal/api/middleware"
	"github.com/loddgo/loddgo-api/internal/config"
	"github.com/loddgo/loddgo-api/internal/metrics"
	"github.com/loddgo/loddgo-api/internal/repository"
	"github.com/loddgo/loddgo-api/internal/repository/dao"
	"github.com/loddgo/loddgo-api/internal/service"
)

// Dependencies are the optional collaborators started by the caller. Nil
// fields fall back to no-op implementations.
type Dependencies struct {
	Cache     repository.IdempotencyCache
	Publisher service.EventPublisher
	Admin     *middleware.AdminAuthenticator
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	// Live must be started with Run before viewers connect.
	Live *v1.LiveHub
}

type handlers struct {
	events *v1.EventHandler
	orders *v1.OrderHandler
	draws  *v1.DrawHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, deps Dependencies) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	metrics.Register()
	s.MountMiddlewares()

	h := s.initHandlers(db, deps)

	admin := deps.Admin
	if admin == nil {
		admin = middleware.NewAdminAuthenticator(conf.Admin)
	}
	s.MountHandlers(h, admin)

	return s
}

func (s *Server) initHandlers(db *gorm.DB, deps Dependencies) handlers {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db), deps.Cache)
	drawRepo := repository.NewDrawRepository(dao.NewDrawDAO(db))

	eventSvc := service.NewEventService(eventRepo, orderRepo, drawRepo)
	orderSvc := service.NewOrderService(eventRepo, orderRepo, drawRepo, deps.Publisher, s.Config.Raffle)
	drawSvc := service.NewDrawService(eventRepo, drawRepo, deps.Publisher)

	s.Live = v1.NewLiveHub(eventSvc)

	return handlers{
		events: v1.NewEventHandler(eventSvc),
		orders: v1.NewOrderHandler(orderSvc),
		draws:  v1.NewDrawHandler(drawSvc, s.Live),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.RecordMetrics())
}

func (s *Server) MountHandlers(h handlers, admin *middleware.AdminAuthenticator) {
	const basePath = "/api/v1"

	orders := s.Router.Group(basePath)
	{
		orders.POST("/orders", h.orders.HandleCreateOrder)
		orders.GET("/orders/:id", h.orders.HandleGetOrder)
		orders.GET("/orders/:id/purchases", h.orders.HandleGetOrderPurchases)
	}

	events := s.Router.Group(basePath)
	{
		events.POST("/events", h.events.HandleCreateEvent)
		events.GET("/events/:code", h.events.HandleGetEvent)
		events.GET("/events/:code/stats", h.events.HandleGetEventStats)
		events.GET("/events/:code/result", h.events.HandleGetEventResult)
		events.POST("/events/:code/draw", h.draws.HandleDrawNext)
		// Live draws
		events.GET("/events/:code/live", s.Live.HandleLive)
	}

	admins := s.Router.Group(basePath+"/admin", admin.VerifyAdminKey())
	{
		admins.POST("/draws", h.draws.HandleCreateDraw)
		admins.POST("/events", h.events.HandleAdminCreateEvent)
		admins.PATCH("/events/:code", h.events.HandleUpdateEvent)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "loddgo API"
	docs.SwaggerInfo.Description = "Raffle ticket sales and draws."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
