// Package server exposes the dashboard over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/julianstephens/beastmode/internal/calendar"
	"github.com/julianstephens/beastmode/internal/config"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/dashboard"
	"github.com/julianstephens/beastmode/internal/logger"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/notify"
	"github.com/julianstephens/beastmode/internal/progress"
	"github.com/julianstephens/beastmode/internal/storage"
)

// DispatcherFunc builds a dispatcher for the current settings. Settings can
// change between requests, so one is built per notification.
type DispatcherFunc func(models.Settings) *notify.Dispatcher

type Server struct {
	echo       *echo.Echo
	dash       *dashboard.Dashboard
	dispatcher DispatcherFunc
	limiter    *rate.Limiter
	config     *config.Config
	now        func() time.Time
}

type Options struct {
	Dashboard  *dashboard.Dashboard
	Dispatcher DispatcherFunc
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
	Config   *config.Config
	Now      func() time.Time
}

func NewServer(opts Options) (*Server, error) {
	if opts.Dashboard == nil {
		return nil, fmt.Errorf("dashboard cannot be nil")
	}
	if opts.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	// Zero disables throttling.
	limit := rate.Inf
	burst := 1
	if n := opts.Config.Notify.RatePerMinute; n > 0 {
		limit = rate.Limit(float64(n) / 60)
		burst = n
	}

	s := &Server{
		echo:       e,
		dash:       opts.Dashboard,
		dispatcher: opts.Dispatcher,
		limiter:    rate.NewLimiter(limit, burst),
		config:     opts.Config,
		now:        opts.Now,
	}
	s.registerRoutes(opts.Gatherer)
	return s, nil
}

func (s *Server) registerRoutes(g prometheus.Gatherer) {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))

	v1 := s.echo.Group("/api/v1")
	v1.GET("/today", s.handleToday)
	v1.GET("/entries", s.handleListEntries)
	v1.PATCH("/entries/:date", s.handlePatchEntry)
	v1.GET("/progress", s.handleProgress)
	v1.GET("/goals", s.handleListGoals)
	v1.POST("/goals", s.handleCreateGoal)
	v1.PATCH("/goals/:id", s.handlePatchGoal)
	v1.POST("/notify/:type", s.handleNotify)
	v1.GET("/calendar.ics", s.handleCalendar)
}

type HealthResponse struct {
	Status string `json:"status"`
	Demo   bool   `json:"demo"`
}

type TodayResponse struct {
	Entry       models.DailyEntry `json:"entry"`
	StatusLabel string            `json:"status_label"`
}

type ProgressResponse struct {
	progress.Report
	Demo bool `json:"demo"`
}

type NotifyRequest struct {
	Achievement string `json:"achievement"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Demo: s.dash.Demo()})
}

// refresh reloads dashboard state for the current day.
func (s *Server) refresh(c echo.Context) error {
	if err := s.dash.Load(c.Request().Context(), s.now()); err != nil {
		logger.Error("Failed to load dashboard", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load data")
	}
	return nil
}

func (s *Server) handleToday(c echo.Context) error {
	if err := s.refresh(c); err != nil {
		return err
	}
	today := s.dash.Today()
	return c.JSON(http.StatusOK, TodayResponse{Entry: today, StatusLabel: today.DailyStatus.Label()})
}

func (s *Server) handleListEntries(c echo.Context) error {
	limit := constants.DefaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, constants.MaxHistoryLimit)
	}
	entries, err := s.dash.Store().ListRecentEntries(c.Request().Context(), limit)
	if err != nil {
		logger.Error("Failed to list entries", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list entries")
	}
	if entries == nil {
		entries = []models.DailyEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handlePatchEntry(c echo.Context) error {
	ctx := c.Request().Context()
	date := c.Param("date")
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	var patch models.EntryPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := patch.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.refresh(c); err != nil {
		return err
	}
	if date > s.dash.Today().Date {
		return echo.NewHTTPError(http.StatusBadRequest, "date must not be in the future")
	}
	if date == s.dash.Today().Date {
		updated, err := s.dash.Update(ctx, patch)
		if err != nil {
			logger.Error("Failed to update today's entry", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update entry")
		}
		return c.JSON(http.StatusOK, updated)
	}

	store := s.dash.Store()
	entry, err := storage.EntryOrCreate(ctx, store, date)
	if err == nil {
		entry, err = store.UpdateEntry(ctx, entry.ID, patch)
	}
	if err != nil {
		logger.Error("Failed to update entry", "date", date, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update entry")
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) handleProgress(c echo.Context) error {
	if err := s.refresh(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProgressResponse{Report: s.dash.Progress(s.now()), Demo: s.dash.Demo()})
}

func (s *Server) handleListGoals(c echo.Context) error {
	goals, err := s.dash.Store().ListGoals(c.Request().Context())
	if err != nil {
		logger.Error("Failed to list goals", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list goals")
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return c.JSON(http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(c echo.Context) error {
	var g models.Goal
	if err := c.Bind(&g); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := g.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	g.ID = uuid.NewString()

	ctx := c.Request().Context()
	store := s.dash.Store()
	if err := store.AddGoal(ctx, g); err != nil {
		logger.Error("Failed to add goal", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add goal")
	}
	created, err := store.GetGoal(ctx, g.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load goal")
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handlePatchGoal(c echo.Context) error {
	ctx := c.Request().Context()
	store := s.dash.Store()

	g, err := store.GetGoal(ctx, c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "goal not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load goal")
	}

	var patch models.GoalPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := patch.Apply(&g); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := store.UpdateGoal(ctx, g); err != nil {
		logger.Error("Failed to update goal", "id", g.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update goal")
	}
	return c.JSON(http.StatusOK, g)
}

// handleNotify dispatches one message to every enabled channel. Individual
// channel failures are reported in the body; the request itself succeeds.
func (s *Server) handleNotify(c echo.Context) error {
	if !s.limiter.Allow() {
		return echo.NewHTTPError(http.StatusTooManyRequests, "notification rate limit exceeded")
	}
	t, err := notify.ParseMessageType(c.Param("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var req NotifyRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
	}

	if err := s.refresh(c); err != nil {
		return err
	}
	if s.dash.Demo() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable; notifications are not sent from demo data")
	}
	p := s.dash.Progress(s.now()).Progress
	report := s.dispatcher(s.dash.Settings()).Dispatch(c.Request().Context(), p, t, req.Achievement)
	logger.Info("Notification dispatched", "type", t, "suppressed", report.Suppressed, "succeeded", report.Succeeded(), "channels", len(report.Results))
	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleCalendar(c echo.Context) error {
	if err := s.refresh(c); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="beastmode.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.Build(s.dash.Settings(), s.dash.Goals(), s.now())))
}

// Start blocks serving on the configured address.
func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	logger.Info("starting http server", "addr", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
