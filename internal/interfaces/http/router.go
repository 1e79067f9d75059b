package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/customers-api/docs"
	"github.com/jhoicas/customers-api/internal/application/dto"
	"github.com/jhoicas/customers-api/internal/application/usecase"
	"github.com/jhoicas/customers-api/pkg/config"
	"github.com/jhoicas/customers-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *usecase.CustomerUseCase
	Logger     *logger.Logger
	CORS       config.CORSConfig
	AppName    string
}

// Router registra middlewares y rutas de la API. La app debe crearse con ErrorHandler.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(AccessLog(log))
	app.Use(CORSMiddleware(deps.CORS))

	app.Get("/health", Health(deps.AppName))
	app.Get("/openapi.json", OpenAPI)

	customers := app.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id<int>", customerHandler.GetByID)
	customers.Put("/:id<int>", customerHandler.Update)
	customers.Delete("/:id<int>", customerHandler.Delete)
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func Health(appName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: appName})
	}
}

// OpenAPI godoc
// @Summary      Documento OpenAPI
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /openapi.json [get]
func OpenAPI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(docs.SwaggerInfo.ReadDoc())
}
