package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"options-observer/src/analysis"
	"options-observer/src/helpers"
	"options-observer/src/interfaces"
	"options-observer/src/logger"
	"options-observer/src/models"
	"options-observer/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// OptionsServer
// -----------------------------------------------------------------------------

type OptionsServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Source   interfaces.IQuoteSource
	Analyzer *analysis.AnalysisFacade
	DB       interfaces.IDatabase
	Calendar *utils.MarketCalendar
	engine   *gin.Engine

	// WebSocket clients
	clients     map[*Client]struct{}
	clientCount atomic.Int64
	broadcast   chan *models.MAnalysisSnapshot
	register    chan *Client
	unregister  chan *Client

	// Local cache of the last completed analysis, served to newly
	// connected websocket clients.
	latestSnapshot *models.MAnalysisSnapshot
	lastRequestAt  int64
	stateMutex     sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewOptionsServer(cfg *models.MConfig, log *logger.Logger, source interfaces.IQuoteSource, analyzer *analysis.AnalysisFacade, db interfaces.IDatabase) *OptionsServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &OptionsServer{
		Config:   cfg,
		Logger:   log,
		Source:   source,
		Analyzer: analyzer,
		DB:       db,
		Calendar: utils.NewMarketCalendar(),
		engine:   gin.Default(),
		clients:  make(map[*Client]struct{}),
		// Buffered so a burst of completed analyses never blocks handlers
		broadcast:  make(chan *models.MAnalysisSnapshot, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *OptionsServer) setupRoutes() {
	// Static front page
	s.engine.StaticFile("/", "./static/index.html")

	// REST API endpoints
	s.engine.POST("/get_options", s.getOptions)
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *OptionsServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *OptionsServer) Stop() error {
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

type optionsRequest struct {
	Symbol string `json:"symbol"`
}

// getOptions walks the request through its states: validate, fetch price,
// fetch expirations, select the two nearest, fetch and analyze each
// chain, assemble. The first failure short-circuits everything after it.
func (s *OptionsServer) getOptions(c *gin.Context) {
	started := time.Now()

	var req optionsRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Symbol) == "" {
		s.finish(c, started, "", http.StatusBadRequest, gin.H{"error": "No symbol provided"}, 0)
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	currentPrice, err := s.Source.GetPrice(symbol)
	if err != nil {
		s.fail(c, started, symbol, err)
		return
	}

	allExpirations, err := s.Source.GetExpirations(symbol)
	if err != nil {
		s.fail(c, started, symbol, err)
		return
	}
	if len(allExpirations) == 0 {
		s.finish(c, started, symbol, http.StatusNotFound, gin.H{"error": "No expirations available for this symbol"}, 0)
		return
	}

	today := time.Now()
	selected, err := s.Analyzer.SelectExpirations(allExpirations, today)
	if err != nil {
		s.finish(c, started, symbol, http.StatusBadRequest, gin.H{"error": "Not enough future expirations available"}, 0)
		return
	}

	// The per-expiration chain fetches are independent; run them
	// concurrently and assemble in expiration order. Either one failing
	// fails the whole request. An empty chain is not a failure.
	type chainResult struct {
		chain []models.MOptionContract
		err   error
	}
	results := make([]chainResult, len(selected))

	var wg sync.WaitGroup
	for i, expiration := range selected {
		wg.Add(1)
		go func(i int, expiration string) {
			defer wg.Done()
			chain, err := s.Source.GetChain(symbol, expiration)
			results[i] = chainResult{chain: chain, err: err}
		}(i, expiration)
	}
	wg.Wait()

	response := &models.MOptionsResponse{
		CurrentPrice: currentPrice,
		Expirations:  make(map[string]models.MExpirationResult, len(selected)),
	}

	for i, expiration := range selected {
		if results[i].err != nil {
			s.fail(c, started, symbol, results[i].err)
			return
		}
		result, err := s.Analyzer.AnalyzeExpiration(results[i].chain, currentPrice, expiration, today)
		if err != nil {
			s.fail(c, started, symbol, err)
			return
		}
		response.Expirations[expiration] = result
	}

	s.Broadcast(&models.MAnalysisSnapshot{
		Type:      "UPDATE",
		Symbol:    symbol,
		Response:  response,
		Timestamp: time.Now().Unix(),
	})

	s.finish(c, started, symbol, http.StatusOK, response, len(selected))
}

// -----------------------------------------------------------------------------

// fail maps an error to its HTTP status. Uncategorized errors surface as
// a generic message; the detail goes to the log only.
func (s *OptionsServer) fail(c *gin.Context, started time.Time, symbol string, err error) {
	status := http.StatusInternalServerError
	msg := "An unexpected error occurred"

	switch {
	case helpers.IsValidationError(err):
		status = http.StatusBadRequest
		msg = err.Error()
	case helpers.IsAuthError(err):
		status = http.StatusUnauthorized
		msg = err.Error()
	case helpers.IsInsufficientDataError(err):
		status = http.StatusNotFound
		msg = err.Error()
	case helpers.IsTransportError(err):
		status = http.StatusBadGateway
		msg = "Upstream market data request failed"
	}

	s.Logger.Error("Request for %q failed: %v", symbol, err)
	s.finish(c, started, symbol, status, gin.H{"error": msg}, 0)
}

// -----------------------------------------------------------------------------

// finish writes the response and journals the request outcome. Journal
// failures are logged, never surfaced.
func (s *OptionsServer) finish(c *gin.Context, started time.Time, symbol string, status int, payload interface{}, expirations int) {
	c.JSON(status, payload)

	s.stateMutex.Lock()
	s.lastRequestAt = time.Now().Unix()
	s.stateMutex.Unlock()

	if s.DB == nil {
		return
	}
	rec := models.MRequestRecord{
		Symbol:      symbol,
		RequestedAt: started,
		Status:      status,
		DurationMs:  float64(time.Since(started).Microseconds()) / 1000.0,
		Expirations: expirations,
	}
	if err := s.DB.SaveRequestRecord(rec); err != nil {
		s.Logger.Warning("Request journal write failed: %v", err)
	}
}

// -----------------------------------------------------------------------------

func (s *OptionsServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	lastRequest := s.lastRequestAt
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":          "ok",
		"connections":     s.clientCount.Load(),
		"market_open":     s.Calendar.IsOpen(time.Now()),
		"last_request_at": lastRequest,
	})
}

// -----------------------------------------------------------------------------

func (s *OptionsServer) getConfig(c *gin.Context) {
	// Return the active screening thresholds
	c.JSON(200, s.Config.Filter)
}
