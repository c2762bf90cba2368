package indexes

import (
	"context"
	"errors"
	"time"

	"index-manager/core/database"
	"index-manager/core/ddl"
	"index-manager/core/logger"
	"index-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for index reconciliation.
type Handler struct {
	service *Service
	timeout time.Duration
}

// NewHandler creates a new HTTP handler. A zero timeout leaves runs unbounded.
func NewHandler(service *Service, timeout time.Duration) *Handler {
	return &Handler{service: service, timeout: timeout}
}

// RegisterRoutes registers the index routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/indexes")
	group.Get("/", h.HandleList)
	group.Get("/plan", h.HandlePlan)
	group.Post("/apply", h.HandleApply)
	group.Get("/reports", h.HandleReports)
	group.Get("/reports/*", h.HandleReport)
}

func (h *Handler) context(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// HandleList lists the managed indexes present in the database.
// @Summary List Managed Indexes
// @Description Lists the managed indexes found in pg_indexes with their parsed definitions.
// @Tags indexes
// @Produce json
// @Success 200 {array} ListedIndex "Managed Indexes"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Database Unavailable"
// @Router /indexes [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx, cancel := h.context(c)
	defer cancel()

	list, err := h.service.List(ctx)
	if err != nil {
		l.Error("Listing indexes failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// HandlePlan returns the pending actions.
// @Summary Plan Index Changes
// @Description Compares declared and existing indexes and returns the drops and creates with their SQL. Nothing is executed.
// @Tags indexes
// @Produce json
// @Success 200 {object} reconcile.Plan "Plan"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Database Unavailable"
// @Router /indexes/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx, cancel := h.context(c)
	defer cancel()

	plan, err := h.service.Plan(ctx)
	if err != nil {
		l.Error("Planning indexes failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(plan)
}

// HandleApply reconciles the database.
// @Summary Apply Index Changes
// @Description Drops obsolete and creates missing managed indexes. With dry_run=true the SQL is returned instead of executed.
// @Tags indexes
// @Produce json
// @Param dry_run query boolean false "Render SQL only"
// @Success 200 {object} Outcome "Run Outcome"
// @Failure 500 {object} map[string]interface{} "Run Failed"
// @Failure 503 {object} map[string]string "Database Unavailable"
// @Router /indexes/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx, cancel := h.context(c)
	defer cancel()

	dryRun := c.QueryBool("dry_run", false)
	l.Info("Applying indexes", zap.Bool("dry_run", dryRun))

	out, err := h.service.Apply(ctx, dryRun)
	if err != nil {
		l.Error("Applying indexes failed", zap.Error(err))
		body := fiber.Map{"error": err.Error()}
		if out != nil {
			body["outcome"] = out
		}
		return c.Status(statusFor(err)).JSON(body)
	}
	return c.JSON(out)
}

// HandleReports lists archived run reports.
// @Summary List Run Reports
// @Tags indexes
// @Produce json
// @Success 200 {array} storage.Report "Reports"
// @Failure 404 {object} map[string]string "Archive Disabled"
// @Router /indexes/reports [get]
func (h *Handler) HandleReports(c *fiber.Ctx) error {
	reports, err := h.service.Reports(c.UserContext())
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleReport returns one archived run report as text.
// @Summary Get Run Report
// @Tags indexes
// @Produce plain
// @Param key path string true "Report key"
// @Success 200 {string} string "Report"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /indexes/reports/{key} [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	body, err := h.service.Report(c.UserContext(), c.Params("*"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNoDatabase):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ErrArchiveDisabled), errors.Is(err, storage.ErrReportNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ddl.ErrUnsupportedPlatform), errors.Is(err, database.ErrCurrentSchemaNotFound):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
