package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/digsafe/internal/logging"
	"github.com/annel0/digsafe/internal/middleware"
	"github.com/annel0/digsafe/internal/safety"
)

// RestServer — административный REST API контроллера безопасности
type RestServer struct {
	router     *gin.Engine
	controller *safety.Controller
	port       string
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port       string // порт для запуска сервера (":8090")
	Controller *safety.Controller
}

// GenericResponse — универсальный ответ API
type GenericResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8090"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("admin_api"))

	promMw := middleware.NewPrometheusMiddleware("admin_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:     router,
		controller: config.Controller,
		port:       config.Port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api/safety")
	{
		api.POST("/enable", rs.handleEnable)
		api.POST("/disable", rs.handleDisable)
		api.POST("/rebuild", rs.handleRebuild)
		api.GET("/status", rs.handleStatus)
		api.GET("/components", rs.handleComponents)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// handleEnable включает автоматику безопасности
func (rs *RestServer) handleEnable(c *gin.Context) {
	rs.controller.Enable(c.Request.Context())
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "контроллер включён"})
}

// handleDisable выключает автоматику и сбрасывает производное состояние
func (rs *RestServer) handleDisable(c *gin.Context) {
	rs.controller.Disable()
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "контроллер выключен"})
}

// handleRebuild запускает немедленный полный цикл переоценки
func (rs *RestServer) handleRebuild(c *gin.Context) {
	rs.controller.ForceEvaluate(c.Request.Context())
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "полный цикл выполнен"})
}

// handleStatus возвращает сводку состояния контроллера
func (rs *RestServer) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, rs.controller.Status())
}

// handleComponents возвращает снимок компонентов для диагностики
func (rs *RestServer) handleComponents(c *gin.Context) {
	infos := rs.controller.DumpComponents()
	c.JSON(http.StatusOK, gin.H{
		"count":      len(infos),
		"components": infos,
	})
}

// handleHealth обрабатывает проверку здоровья сервиса
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"enabled": rs.controller.Enabled(),
	})
}

// Start запускает REST сервер (блокирующий вызов)
func (rs *RestServer) Start() error {
	logging.Info("🚀 REST API сервер запускается на порту %s", rs.port)
	return rs.router.Run(rs.port)
}

// StartAsync запускает REST сервер в отдельной горутине
func (rs *RestServer) StartAsync() {
	go func() {
		if err := rs.Start(); err != nil {
			logging.Error("❌ REST API сервер завершился с ошибкой: %v", err)
		}
	}()
}

// Addr возвращает адрес, на котором слушает сервер
func (rs *RestServer) Addr() string {
	return fmt.Sprintf("http://localhost%s", rs.port)
}
