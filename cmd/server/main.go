// Command server exposes the backtest engine over HTTP for the charting
// frontend: POST /api/backtest runs one simulation, /metrics serves
// prometheus collectors.
package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evdnx/gobt/config"
	"github.com/evdnx/gobt/engine"
	"github.com/evdnx/gobt/logger"
	"github.com/evdnx/gobt/marketdata"
	"github.com/evdnx/gobt/text"
	"github.com/evdnx/gobt/types"
)

type backtestRequest struct {
	Series         []types.Bar           `json:"series" binding:"required,min=1"`
	InitialCapital float64               `json:"initialCapital" binding:"required,gt=0"`
	Config         config.StrategyConfig `json:"config" binding:"required"`
	StartDate      string                `json:"startDate"`
	Lang           string                `json:"lang"`
}

type server struct {
	log logger.Logger
}

func (s *server) backtest(c *gin.Context) {
	var req backtestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := marketdata.Validate(req.Series); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eng, err := engine.New(req.Config, s.log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	runID := uuid.NewString()
	res, err := eng.Run(req.Series, req.InitialCapital, req.StartDate, text.ForLang(req.Lang))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "runId": runID})
		return
	}
	s.log.Info("backtest_served",
		logger.String("run_id", runID),
		logger.String("strategy", string(req.Config.Type)),
		logger.Int("bars", len(req.Series)),
	)
	c.JSON(http.StatusOK, gin.H{"runId": runID, "result": res})
}

func main() {
	_ = godotenv.Load()

	log, err := logger.NewZapLogger()
	if err != nil {
		os.Exit(1)
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	s := &server{log: log}
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/api/backtest", s.backtest)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("server_listening", logger.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Error("server_exit", logger.Err(err))
		os.Exit(1)
	}
}
