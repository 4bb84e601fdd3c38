package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	_ "github.com/engineer-english/eigo_api/docs"
	"github.com/engineer-english/eigo_api/middleware"
	"github.com/engineer-english/eigo_api/services/handlers"
	"github.com/engineer-english/eigo_api/shared"
)

// HttpService wires the fiber app: routing, middleware, and the central
// error handler that translates AppError into the response envelope.
type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	contentSvc    *ContentService
	progressSvc   *ProgressService
	seederSvc     *SeederService
	monitoringSvc *MonitoringService
	rateLimitSvc  *middleware.RateLimitMiddleware

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.seederSvc = svc.Service(SEEDER_SVC).(*SeederService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.rateLimitSvc = svc.Service(middleware.RATE_LIMIT_MIDDLEWARE_SVC).(*middleware.RateLimitMiddleware)

	app := fiber.New(fiber.Config{
		JSONEncoder:  shared.JSONAPI.Marshal,
		JSONDecoder:  shared.JSONAPI.Unmarshal,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	// Public content reads
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	v1.Get("/scenes", contentHandler.ListScenes)
	v1.Get("/scenes/:sceneId", contentHandler.GetScene)
	v1.Get("/scenes/:sceneId/lessons", contentHandler.ListSceneLessons)
	v1.Get("/lessons", contentHandler.ListLessons)
	v1.Get("/lessons/:lessonId", contentHandler.GetLesson)
	v1.Get("/phrases", contentHandler.ListPhrases)
	v1.Get("/dialogues", contentHandler.ListDialogues)
	v1.Get("/content/stats", contentHandler.GetStats)

	// Auth
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	v1.Post("/register", svc.rateLimitSvc.AuthRateLimit(), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.AuthRateLimit(), authHandler.Login)

	// Progress: completion works with or without a token
	progressHandler := handlers.NewProgressHandler(svc.progressSvc)
	v1.Post("/progress/complete",
		svc.authSvc.OptionalAuth(),
		svc.rateLimitSvc.LessonCompletionRateLimit(),
		svc.recordCompletionMetric,
		progressHandler.CompleteLesson)
	v1.Get("/progress/me", svc.authSvc.OptionalAuth(), progressHandler.GetMyProgress)

	// Admin
	adminHandler := handlers.NewAdminHandler(svc.contentSvc, svc.seederSvc)
	admin := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireAdmin())
	admin.Post("/seed", svc.rateLimitSvc.SeedRateLimit(), adminHandler.Seed)
	admin.Post("/scenes", adminHandler.CreateScene)
	admin.Delete("/scenes/:sceneId", adminHandler.DeleteScene)
	admin.Post("/lessons", adminHandler.CreateLesson)
	admin.Delete("/lessons/:lessonId", adminHandler.DeleteLesson)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app

	log.Printf("HTTP server listening on :%d", svc.port)
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) recordCompletionMetric(c *fiber.Ctx) error {
	userID, _ := c.Locals(shared.UserID).(string)
	svc.monitoringSvc.RecordLessonCompletion(userID != "")
	return c.Next()
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c, err)
}
