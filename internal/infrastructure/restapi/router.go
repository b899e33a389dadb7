package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wallet_gateway/internal/pkg/metrics"
)

// SetupRouter configures and returns the gin engine.
func SetupRouter(h *Handler, allowOrigins []string) *gin.Engine {
	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowOrigins
	}
	router.Use(cors.New(corsCfg))
	router.Use(requestDuration())

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", h.ListNetworks)
		v1.GET("/networks/:network/decimals", h.GetDecimals)
		v1.POST("/amounts/base-unit", h.ConvertToBaseUnit)

		v1.POST("/prices/refresh", h.RefreshPrices)
		v1.GET("/prices/:asset", h.GetExchangeRate)
		v1.GET("/prices/:asset/fiat", h.GetFiatValue)

		v1.GET("/wallet", h.GetWallet)
		v1.POST("/wallet", h.CreateWallet)
		v1.POST("/wallet/refresh", h.RefreshWallet)
		v1.GET("/wallet/portfolio", h.GetPortfolio)

		v1.GET("/accounts/:network", h.GetNetworkAddresses)
		v1.GET("/accounts/:network/:index/address", h.GetAddress)
		v1.POST("/accounts/:network/:index/send", h.Send)
		v1.POST("/accounts/:network/:index/sign", h.Sign)
		v1.POST("/accounts/:network/verify", h.Verify)
	}

	return router
}

func requestDuration() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
