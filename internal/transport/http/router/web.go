package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-admin-console/internal/core/bootstrap"
	"go-admin-console/internal/core/config"
	"go-admin-console/internal/core/session"
	"go-admin-console/internal/feature/analysis"
	"go-admin-console/internal/feature/product"
	"go-admin-console/internal/feature/user"
	"go-admin-console/internal/transport/http/handler"
	mdw "go-admin-console/internal/transport/http/middleware"
)

// NewWebEngine wires middleware, templates and routes. Protected routes
// sit behind the bootstrap guard and the session check; /healthz and
// /metrics stay outside both.
func NewWebEngine(cfg *config.Config, l *zap.Logger, db *gorm.DB, sessions *session.Manager, guard *bootstrap.Guard) *gin.Engine {
	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.LoadHTMLGlob(cfg.App.TemplatesGlob)

	dev := cfg.App.Env == "development"
	users := user.NewModule(db, l)
	products := product.NewModule(db, l)
	analyses := analysis.NewModule(db, l)

	authH := handler.NewAuthHandler(users, sessions, l)
	dashH := handler.NewDashboardHandler(products, analyses, l)
	prodH := handler.NewProductHandler(products, l, dev)
	analH := handler.NewAnalysisHandler(analyses, l)
	healthH := &handler.HealthHandler{App: cfg.App.Name, Env: cfg.App.Env}

	// liveness + metrics, independent of storage
	r.GET("/healthz", healthH.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// public, but login needs a reachable user table
	public := r.Group("")
	public.Use(mdw.EnsureReady(guard, l, dev), mdw.RedirectIfAuthed(sessions))
	public.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/login") })
	public.GET("/login", authH.ShowLogin)
	public.POST("/login", authH.Login)

	r.POST("/logout", authH.Logout)

	// session-gated application routes
	app := r.Group("")
	app.Use(mdw.EnsureReady(guard, l, dev), mdw.RequireLogin(sessions))

	app.GET("/dashboard", dashH.Index)

	app.GET("/products", prodH.Index)
	app.GET("/products/search", prodH.Index)
	app.GET("/products/new", prodH.New)
	app.POST("/products", prodH.Create)
	app.GET("/products/:id/edit", prodH.Edit)
	app.POST("/products/:id", prodH.Update)
	app.POST("/products/:id/delete", prodH.Delete)

	app.GET("/analysis", analH.Index)
	app.GET("/analysis/new", analH.New)
	app.POST("/analysis", analH.Analyze)

	return r
}
