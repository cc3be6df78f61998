package router

import (
	"net/http"
	"time"

	_ "pet-adoption-platform/docs"
	"pet-adoption-platform/internal/adapters/storage"
	"pet-adoption-platform/internal/adapters/storage/memory"
	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/checkout"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/middleware"
	"pet-adoption-platform/internal/platform/logger"
	"pet-adoption-platform/internal/platform/metrics"
	"pet-adoption-platform/internal/platform/notify"
	"pet-adoption-platform/internal/seed"
	"pet-adoption-platform/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	Logger logger.Logger // nil: sin logs

	// Opcional: si no viene, todo vive en memoria.
	Repos *storage.Repositories

	// Registry nil deja /metrics sin publicar.
	Registry *prometheus.Registry

	BcryptCost   int           // 0: bcrypt.DefaultCost
	GatewayDelay time.Duration // demora simulada del checkout
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	repos := opts.Repos
	if repos == nil {
		repos = storage.FromMemory(memory.New())
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	sessions := session.NewManager(repos.Sessions)
	notifier := notify.NewLogNotifier(log)

	var httpMetrics *metrics.HTTPMetrics
	if opts.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(opts.Registry)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.Notices)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	r.Use(middleware.AuthContext(sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	usersSvc := users.NewService(repos.Users, sessions, notifier, cost)
	petsSvc := pets.NewService(repos.Pets, notifier)
	adoptionsSvc := adoptions.NewService(repos.Adoptions, repos.Pets, notifier)
	shopSvc := shop.NewService(repos.Products, repos.Carts, notifier)
	apptSvc := appointments.NewService(repos.Appointments, appointments.NewCatalog(seed.Services()...), notifier)
	checkoutSvc := checkout.NewService(shopSvc, notifier, opts.GatewayDelay)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, sessions, log)
	pets.RegisterRoutes(r, petsSvc, log)
	adoptions.RegisterRoutes(r, adoptionsSvc, petsSvc, log)
	shop.RegisterRoutes(r, shopSvc, sessions, log)
	appointments.RegisterRoutes(r, apptSvc, log)
	checkout.RegisterRoutes(r, checkoutSvc, log)

	return r
}
