package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/resumeguard/backend/internal/config"
	"github.com/resumeguard/backend/pkg/index"
	"github.com/resumeguard/backend/pkg/screening"
)

// App carries the request-independent dependencies of the HTTP server.
type App struct {
	DBConn    *pgxpool.Pool
	Queue     *amqp091.Channel
	S3        *s3.Client
	Store     index.Store
	Screening *screening.Service
	Cfg       *config.Config
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
