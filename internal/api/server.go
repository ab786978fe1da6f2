// Package api exposes the dashboard over HTTP with fasthttp.
package api

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/rewired-gh/riskwatch/internal/dashboard"
	"github.com/rewired-gh/riskwatch/internal/logger"
	"github.com/rewired-gh/riskwatch/internal/query"
	"github.com/rewired-gh/riskwatch/internal/report"
	"github.com/rewired-gh/riskwatch/internal/staff"
	"github.com/rewired-gh/riskwatch/internal/storage"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type assignRequest struct {
	Analyst string `json:"analyst"`
}

type moveRequest struct {
	TeamID string `json:"teamId"`
}

// MaxPageSize bounds the pageSize query parameter.
const MaxPageSize = 100

// Server routes requests to a dashboard service.
type Server struct {
	svc *dashboard.Service
	now func() time.Time
	srv *fasthttp.Server
}

// Options configure the underlying fasthttp server.
type Options struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewServer(svc *dashboard.Service, opts Options) *Server {
	s := &Server{svc: svc, now: time.Now}
	s.srv = &fasthttp.Server{
		Handler:      s.Handle,
		Name:         opts.Name,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", addr)
		errCh <- s.srv.ListenAndServe(addr)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down HTTP API")
		return s.srv.Shutdown()
	}
}

// Handle is the fasthttp request handler.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	reqID := uuid.NewString()
	ctx.Response.Header.Set("X-Request-ID", reqID)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic serving %s %s [%s]: %v", ctx.Method(), ctx.Path(), reqID, r)
			writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
		}
	}()

	s.route(ctx)

	logger.Debug("%s %s -> %d in %v [%s]", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start), reqID)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := strings.Trim(string(ctx.Path()), "/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "api" {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	get, post := ctx.IsGet(), ctx.IsPost()
	parts = parts[1:]

	switch {
	case len(parts) == 1 && parts[0] == "health" && get:
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case len(parts) == 1 && parts[0] == "summary" && get:
		s.summary(ctx)
	case len(parts) == 1 && parts[0] == "customers" && get:
		s.customers(ctx)
	case len(parts) == 2 && parts[0] == "customers" && get:
		s.customer(ctx, parts[1])
	case len(parts) == 3 && parts[0] == "customers" && parts[2] == "report" && get:
		s.report(ctx, parts[1])
	case len(parts) == 3 && parts[0] == "customers" && parts[2] == "assign" && post:
		s.assign(ctx, parts[1])
	case len(parts) == 1 && parts[0] == "alerts" && get:
		s.alerts(ctx)
	case len(parts) == 3 && parts[0] == "alerts" && parts[2] == "read" && post:
		s.alertAction(ctx, parts[1], s.svc.MarkAlertRead)
	case len(parts) == 3 && parts[0] == "alerts" && parts[2] == "resolve" && post:
		s.alertAction(ctx, parts[1], s.svc.ResolveAlert)
	case len(parts) == 1 && parts[0] == "interventions" && get:
		s.interventions(ctx)
	case len(parts) == 1 && parts[0] == "reports" && get:
		writeJSON(ctx, fasthttp.StatusOK, s.svc.Reports())
	case len(parts) == 2 && parts[0] == "reports" && parts[1] == "bulk-generate" && post:
		s.bulkReport(ctx)
	case len(parts) == 3 && parts[0] == "reports" && parts[1] == "download" && get:
		stored, err := s.svc.StoredReport(parts[2])
		s.writeReport(ctx, stored, err)
	case len(parts) == 1 && parts[0] == "staff" && get:
		w, err := s.svc.Workload(ctx)
		respond(ctx, w, err)
	case len(parts) == 3 && parts[0] == "staff" && parts[2] == "team" && post:
		s.moveEmployee(ctx, parts[1])
	case len(parts) == 1 && parts[0] == "teams" && get:
		teams, err := s.svc.Teams()
		respond(ctx, teams, err)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func pageArgs(ctx *fasthttp.RequestCtx) (page, size int, ok bool) {
	args := ctx.QueryArgs()
	parse := func(key string) (int, bool) {
		raw := args.Peek(key)
		if len(raw) == 0 {
			return 0, true
		}
		n, err := strconv.Atoi(string(raw))
		if err != nil || n < 1 {
			writeError(ctx, fasthttp.StatusBadRequest, key+" must be a positive integer")
			return 0, false
		}
		return n, true
	}
	if page, ok = parse("page"); !ok {
		return 0, 0, false
	}
	if size, ok = parse("pageSize"); !ok {
		return 0, 0, false
	}
	if size > MaxPageSize {
		writeError(ctx, fasthttp.StatusBadRequest, "pageSize must be at most "+strconv.Itoa(MaxPageSize))
		return 0, 0, false
	}
	return page, size, true
}

func arg(ctx *fasthttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func (s *Server) customers(ctx *fasthttp.RequestCtx) {
	page, size, ok := pageArgs(ctx)
	if !ok {
		return
	}
	p, err := s.svc.Customers(ctx, dashboard.DashboardQuery{
		DashboardFilter: query.DashboardFilter{Search: arg(ctx, "search"), Status: arg(ctx, "status")},
		Page:            page,
		PageSize:        size,
	})
	respond(ctx, p, err)
}

func (s *Server) alerts(ctx *fasthttp.RequestCtx) {
	page, size, ok := pageArgs(ctx)
	if !ok {
		return
	}
	p, err := s.svc.Alerts(ctx, dashboard.AlertQuery{
		AlertFilter: query.AlertFilter{
			Search:   arg(ctx, "search"),
			Severity: arg(ctx, "severity"),
			Status:   arg(ctx, "status"),
		},
		Page:     page,
		PageSize: size,
	})
	respond(ctx, p, err)
}

func (s *Server) interventions(ctx *fasthttp.RequestCtx) {
	page, size, ok := pageArgs(ctx)
	if !ok {
		return
	}
	p, err := s.svc.Interventions(ctx, dashboard.InterventionQuery{
		InterventionFilter: query.InterventionFilter{
			Search:  arg(ctx, "search"),
			Outcome: arg(ctx, "outcome"),
			Analyst: arg(ctx, "analyst"),
		},
		Page:     page,
		PageSize: size,
	})
	respond(ctx, p, err)
}

func (s *Server) summary(ctx *fasthttp.RequestCtx) {
	sum, err := s.svc.Summary(ctx)
	respond(ctx, sum, err)
}

func (s *Server) customer(ctx *fasthttp.RequestCtx, id string) {
	rec, err := s.svc.Customer(ctx, id)
	respond(ctx, rec, err)
}

func (s *Server) report(ctx *fasthttp.RequestCtx, id string) {
	stored, err := s.svc.CustomerReport(ctx, id, s.now())
	s.writeReport(ctx, stored, err)
}

func (s *Server) bulkReport(ctx *fasthttp.RequestCtx) {
	var req report.BulkRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	stored, err := s.svc.BulkReport(ctx, req, s.now())
	s.writeReport(ctx, stored, err)
}

// writeReport sends a rendered report as a plain-text attachment.
func (s *Server) writeReport(ctx *fasthttp.RequestCtx, stored report.Stored, err error) {
	if err != nil {
		respond(ctx, nil, err)
		return
	}
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.Response.Header.Set("X-Report-ID", stored.ID)
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="report-`+stored.ID+`.txt"`)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(stored.Body)
}

func (s *Server) moveEmployee(ctx *fasthttp.RequestCtx, id string) {
	var req moveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.TeamID == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "teamId is required")
		return
	}
	e, err := s.svc.MoveEmployee(id, req.TeamID)
	respond(ctx, e, err)
}

func (s *Server) assign(ctx *fasthttp.RequestCtx, id string) {
	var req assignRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Analyst) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "analyst is required")
		return
	}
	err := s.svc.AssignCustomer(ctx, id, req.Analyst)
	respond(ctx, map[string]string{"id": id, "assignedTo": req.Analyst}, err)
}

func (s *Server) alertAction(ctx *fasthttp.RequestCtx, id string, action func(context.Context, string) error) {
	err := action(ctx, id)
	respond(ctx, map[string]string{"id": id}, err)
}

// respond writes v as JSON, or maps err to a status code.
func respond(ctx *fasthttp.RequestCtx, v any, err error) {
	switch {
	case err == nil:
		writeJSON(ctx, fasthttp.StatusOK, v)
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, dashboard.ErrUnknownRow),
		errors.Is(err, report.ErrReportNotFound), errors.Is(err, dashboard.ErrNoStaff),
		errors.Is(err, staff.ErrUnknownEmployee), errors.Is(err, staff.ErrUnknownTeam):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.Is(err, report.ErrNoCustomers):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, staff.ErrUnavailable):
		writeError(ctx, fasthttp.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(ctx, fasthttp.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("Request %s failed: %v", ctx.Path(), err)
		writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
