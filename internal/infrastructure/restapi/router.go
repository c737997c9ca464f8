package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the HTTP surface: health, metrics and the v1 API group.
func SetupRouter(h *Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/positions/:address", h.GetPositions)
		v1.GET("/staking/exchange-rate", h.GetExchangeRate)
		v1.GET("/bridge/info", h.GetBridgeInfo)
		v1.GET("/transactions/:hash/status", h.GetTransactionStatus)
		v1.GET("/contracts/:address/abi", h.GetContractABI)
		v1.POST("/swap", h.PostSwap)
		v1.POST("/ingestion/documents", h.PostDocument)
	}

	debug := router.Group("/debug/pprof")
	{
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	return router
}
