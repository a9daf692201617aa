package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/harvestcover/seasonworker/internal/audit"
	auditdomain "github.com/harvestcover/seasonworker/internal/audit/domain"
	"github.com/harvestcover/seasonworker/internal/auth"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
	"github.com/harvestcover/seasonworker/internal/authorization"
	"github.com/harvestcover/seasonworker/internal/cancellation"
	cancellationdomain "github.com/harvestcover/seasonworker/internal/cancellation/domain"
	"github.com/harvestcover/seasonworker/internal/config"
	"github.com/harvestcover/seasonworker/internal/employer"
	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
	"github.com/harvestcover/seasonworker/internal/manager"
	managerdomain "github.com/harvestcover/seasonworker/internal/manager/domain"
	"github.com/harvestcover/seasonworker/internal/observability"
	obsmiddleware "github.com/harvestcover/seasonworker/internal/observability/logger"
	obsmetrics "github.com/harvestcover/seasonworker/internal/observability/metrics"
	obstracing "github.com/harvestcover/seasonworker/internal/observability/tracing"
	"github.com/harvestcover/seasonworker/internal/ratelimit"
	"github.com/harvestcover/seasonworker/internal/region"
	regiondomain "github.com/harvestcover/seasonworker/internal/region/domain"
	"github.com/harvestcover/seasonworker/internal/stats"
	statsdomain "github.com/harvestcover/seasonworker/internal/stats/domain"
	"github.com/harvestcover/seasonworker/internal/worker"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	audit.Module,
	auth.Module,
	ratelimit.Module,
	region.Module,
	manager.Module,
	employer.Module,
	worker.Module,
	cancellation.Module,
	stats.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	authsvc         authdomain.Service
	authzSvc        authorization.Service
	auditSvc        auditdomain.Service
	regionSvc       regiondomain.Service
	managerSvc      managerdomain.Service
	employerSvc     employerdomain.Service
	workerSvc       workerdomain.Service
	cancellationSvc cancellationdomain.Service
	statsSvc        statsdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Authsvc         authdomain.Service
	AuthzSvc        authorization.Service
	AuditSvc        auditdomain.Service
	RegionSvc       regiondomain.Service
	ManagerSvc      managerdomain.Service
	EmployerSvc     employerdomain.Service
	WorkerSvc       workerdomain.Service
	CancellationSvc cancellationdomain.Service
	StatsSvc        statsdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		authsvc:         p.Authsvc,
		authzSvc:        p.AuthzSvc,
		auditSvc:        p.AuditSvc,
		regionSvc:       p.RegionSvc,
		managerSvc:      p.ManagerSvc,
		employerSvc:     p.EmployerSvc,
		workerSvc:       p.WorkerSvc,
		cancellationSvc: p.CancellationSvc,
		statsSvc:        p.StatsSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/auth/login", s.Login)
	api.GET("/region", s.ListRegionLocalGov)

	// -------- Season workers --------
	api.GET("/season-worker",
		s.AuthRequired(authdomain.RoleAdmin, authdomain.RolePublic, authdomain.RoleGeneral),
		s.authorizeAction(authorization.ObjectWorker, authorization.ActionWorkerView),
		s.ListWorkers,
	)
	api.POST("/season-worker",
		s.AuthRequired(authdomain.RoleAdmin, authdomain.RoleEmployer, authdomain.RoleSeasonWorker),
		s.authorizeAction(authorization.ObjectWorker, authorization.ActionWorkerRegister),
		s.RegisterWorker,
	)
	api.GET("/season-worker/:worker_id",
		s.AuthRequired(authdomain.RoleAdmin, authdomain.RolePublic, authdomain.RoleGeneral),
		s.authorizeAction(authorization.ObjectWorker, authorization.ActionWorkerView),
		s.GetWorkerByID,
	)
	api.GET("/season-worker/:worker_id/insurance",
		s.AuthRequired(authdomain.RoleAdmin, authdomain.RolePublic, authdomain.RoleGeneral),
		s.authorizeAction(authorization.ObjectWorker, authorization.ActionWorkerView),
		s.ListWorkerInsurances,
	)

	// -------- Cancellations --------
	api.POST("/season-worker/:worker_id/cancellation",
		s.AuthRequired(authdomain.RoleSeasonWorker, authdomain.RoleAdmin),
		s.authorizeAction(authorization.ObjectCancellation, authorization.ActionCancellationRequest),
		s.RequestWorkerCancellation,
	)
	api.POST("/season-worker/:worker_id/insurance/:insurance_id/cancellation",
		s.AuthRequired(authdomain.RoleSeasonWorker, authdomain.RoleAdmin),
		s.authorizeAction(authorization.ObjectCancellation, authorization.ActionCancellationRequest),
		s.RequestInsuranceCancellation,
	)
	api.GET("/cancellation",
		s.AuthRequired(authdomain.RoleAdmin, authdomain.RolePublic, authdomain.RoleGeneral),
		s.authorizeAction(authorization.ObjectCancellation, authorization.ActionCancellationView),
		s.ListCancellations,
	)
	api.PATCH("/cancellation/:insurance_id/approve",
		s.AuthRequired(authdomain.RoleAdmin),
		s.authorizeAction(authorization.ObjectCancellation, authorization.ActionCancellationApprove),
		s.ApproveCancellation,
	)
	api.PATCH("/cancellation/:insurance_id/reject",
		s.AuthRequired(authdomain.RoleAdmin),
		s.authorizeAction(authorization.ObjectCancellation, authorization.ActionCancellationReject),
		s.RejectCancellation,
	)

	// -------- Employers --------
	api.GET("/employer",
		s.AuthRequired(authdomain.RoleAdmin, authdomain.RoleGeneral),
		s.authorizeAction(authorization.ObjectEmployer, authorization.ActionEmployerView),
		s.ListEmployers,
	)
	api.POST("/employer",
		s.AuthRequired(authdomain.RoleAdmin),
		s.authorizeAction(authorization.ObjectEmployer, authorization.ActionEmployerCreate),
		s.CreateEmployer,
	)
	api.GET("/employer/:employer_id",
		s.AuthRequired(authdomain.RoleAdmin, authdomain.RoleGeneral),
		s.authorizeAction(authorization.ObjectEmployer, authorization.ActionEmployerView),
		s.GetEmployerByID,
	)

	// -------- Managers --------
	managers := api.Group("/manager",
		s.AuthRequired(authdomain.RoleAdmin),
	)
	managers.GET("/:kind", s.authorizeAction(authorization.ObjectManager, authorization.ActionManagerView), s.ListManagers)
	managers.POST("/:kind", s.authorizeAction(authorization.ObjectManager, authorization.ActionManagerCreate), s.CreateManager)
	managers.GET("/:kind/:manager_id", s.authorizeAction(authorization.ObjectManager, authorization.ActionManagerView), s.GetManagerByID)
	managers.PATCH("/:kind/:manager_id", s.authorizeAction(authorization.ObjectManager, authorization.ActionManagerUpdate), s.UpdateManager)

	// -------- Admin views --------
	api.GET("/stats",
		s.AuthRequired(authdomain.RoleAdmin),
		s.authorizeAction(authorization.ObjectStats, authorization.ActionStatsView),
		s.GetStats,
	)
	api.GET("/audit-logs",
		s.AuthRequired(authdomain.RoleAdmin),
		s.authorizeAction(authorization.ObjectAuditLog, authorization.ActionAuditLogView),
		s.ListAuditLogs,
	)
}
