package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/entrada-events/checkin-api/docs"
	v1 "github.com/entrada-events/checkin-api/internal/api/handler/v1"
	"github.com/entrada-events/checkin-api/internal/api/middleware"
	"github.com/entrada-events/checkin-api/internal/config"
	"github.com/entrada-events/checkin-api/internal/repository"
	"github.com/entrada-events/checkin-api/internal/repository/dao"
	"github.com/entrada-events/checkin-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	entryHandler := s.initEntryHandler(db)
	cardHandler := s.initCardHandler(db)
	s.MountHandlers(userHandler, eventHandler, entryHandler, cardHandler)

	return s
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initEntryHandler(db *gorm.DB) *v1.EntryHandler {
	repo := repository.NewEntryRepository(dao.NewEntryDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewEntryService(repo, userRepo, eventRepo)
	handler := v1.NewEntryHandler(svc)

	return handler
}

func (s *Server) initCardHandler(db *gorm.DB) *v1.CardHandler {
	cardDAO := dao.NewCardDAO(db)
	repo := repository.NewCardRepository(cardDAO)
	svc := service.NewCardService(repo)
	handler := v1.NewCardHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(userHandler *v1.UserHandler, eventHandler *v1.EventHandler, entryHandler *v1.EntryHandler, cardHandler *v1.CardHandler) {
	const basePath = "/api/v1"

	api := s.Router.Group(basePath)
	{
		api.POST("/entries", entryHandler.HandleCreateEntry)
		api.GET("/entries", entryHandler.HandleListEntries)
		api.POST("/check-in", entryHandler.HandleCheckInByCode)

		api.GET("/events", eventHandler.HandleListEvents)
		api.POST("/events", eventHandler.HandleCreateEvent)
		api.GET("/events-active", eventHandler.HandleGetActiveEvent)
		api.GET("/events/:eventID", eventHandler.HandleGetEvent)
		api.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		api.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		api.GET("/events/:eventID/entries", entryHandler.HandleListEventEntries)

		api.GET("/users", userHandler.HandleListUsers)
		api.POST("/users", userHandler.HandleCreateUser)
		api.GET("/users/:userID", userHandler.HandleGetUser)
		api.PUT("/users/:userID", userHandler.HandleUpdateUser)
		api.DELETE("/users/:userID", userHandler.HandleDeleteUser)
		api.POST("/users/:userID/check-in", userHandler.HandleLegacyCheckIn)

		api.GET("/cards", cardHandler.HandleListCards)
		api.POST("/cards", cardHandler.HandleCreateCard)
		api.GET("/cards/:cardID", cardHandler.HandleGetCard)
		api.PUT("/cards/:cardID", cardHandler.HandleUpdateCard)
		api.DELETE("/cards/:cardID", cardHandler.HandleDeleteCard)
		api.POST("/verify-nfc", cardHandler.HandleVerifyNfc)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Check-in API"
	docs.SwaggerInfo.Description = "API for event check-in via NFC tag, QR code or entry code."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
