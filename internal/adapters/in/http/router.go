package http

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// NewEcho builds the echo instance with every route registered. limiter may
// be nil to disable rate limiting. metricsHandler serves /metrics.
// trustedProxies lists the ranges whose X-Forwarded-For entries are believed
// when identifying a client; see ClientIPExtractor.
func NewEcho(
	s *Server,
	limiter RateLimiter,
	metricsHandler http.Handler,
	level slog.Level,
	trustedProxies []*net.IPNet,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = ClientIPExtractor(trustedProxies)
	e.Logger.SetLevel(EchoLogLevel(level))
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(RequestDuration())
	if limiter != nil {
		e.Use(RateLimit(limiter, nil))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	e.POST("/users", s.RegisterUser)
	e.POST("/restaurants", s.CreateRestaurant)
	e.GET("/restaurants/:id", s.GetRestaurant)

	e.POST("/place-order", s.PlaceOrder)
	e.GET("/orders", s.ListOrders)
	e.GET("/orders/:id", s.GetOrder)
	e.POST("/accept-order", s.AcceptOrder)
	e.POST("/pick-up-order", s.PickUpOrder)
	e.POST("/mark-delivered", s.MarkDelivered)
	e.GET("/order-history/:user_id", s.GetOrderHistory)

	e.GET("/agents", s.ListAgents)
	e.GET("/agents/:id", s.GetAgent)
	e.PATCH("/agents/:id", s.UpdateAgent)

	return e
}

// ClientIPExtractor decides what c.RealIP returns. Without trusted proxies
// it is the TCP peer and forwarding headers are ignored. Otherwise the
// nearest X-Forwarded-For hop outside the trusted ranges is used. Loopback
// and private networks are trusted only when listed.
func ClientIPExtractor(trustedProxies []*net.IPNet) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipRange := range trustedProxies {
		options = append(options, echo.TrustIPRange(ipRange))
	}
	return echo.ExtractIPFromXFFHeader(options...)
}

// EchoLogLevel maps a slog level onto echo's gommon logger.
func EchoLogLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
