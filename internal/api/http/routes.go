package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/C-dan93/oil-price-analysis-uk/internal/store"
)

var validate = validator.New()

// Runner triggers a pipeline run on demand.
type Runner interface {
	Run(ctx context.Context) (store.Run, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, runner Runner, st *store.RunStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/dataset/latest", func(c *fiber.Ctx) error {
		run, err := st.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNoRuns) {
				return fiber.NewError(fiber.StatusNotFound, "no integrated dataset available yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load latest dataset")
		}
		return c.JSON(run)
	})

	v1.Get("/runs", func(c *fiber.Ctx) error {
		var req runsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		runs := st.Recent(req.Limit)
		return c.JSON(fiber.Map{
			"count": len(runs),
			"runs":  runs,
		})
	})

	v1.Post("/pipeline/run", func(c *fiber.Ctx) error {
		run, err := runner.Run(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{
			"completedAt": run.CompletedAt,
			"blobName":    run.BlobName,
			"rows":        run.Rows,
		})
	})
}

// runsQuery holds query parameters for the run history endpoint.
type runsQuery struct {
	Limit int `validate:"min=1,max=100"`
}

func (q *runsQuery) bind(c *fiber.Ctx) error {
	limitStr := c.Query("limit")
	if limitStr == "" {
		q.Limit = 10
		return nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return errors.New("limit must be an integer")
	}
	q.Limit = limit
	return nil
}
