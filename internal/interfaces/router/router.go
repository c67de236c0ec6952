package router

import (
	bizsvc "github.com/cdy-agency/api-sky-solutions/internal/application/businesses"
	empsvc "github.com/cdy-agency/api-sky-solutions/internal/application/employees"
	expsvc "github.com/cdy-agency/api-sky-solutions/internal/application/expenses"
	invsvc "github.com/cdy-agency/api-sky-solutions/internal/application/invoices"
	notifsvc "github.com/cdy-agency/api-sky-solutions/internal/application/notifications"
	paysvc "github.com/cdy-agency/api-sky-solutions/internal/application/payroll"
	sharesvc "github.com/cdy-agency/api-sky-solutions/internal/application/shares"
	"github.com/cdy-agency/api-sky-solutions/internal/config"
	"github.com/cdy-agency/api-sky-solutions/internal/infrastructure/database"
	bizhandler "github.com/cdy-agency/api-sky-solutions/internal/interfaces/handlers/businesses"
	emphandler "github.com/cdy-agency/api-sky-solutions/internal/interfaces/handlers/employees"
	exphandler "github.com/cdy-agency/api-sky-solutions/internal/interfaces/handlers/expenses"
	healthhandler "github.com/cdy-agency/api-sky-solutions/internal/interfaces/handlers/health"
	invhandler "github.com/cdy-agency/api-sky-solutions/internal/interfaces/handlers/invoices"
	notifhandler "github.com/cdy-agency/api-sky-solutions/internal/interfaces/handlers/notifications"
	payhandler "github.com/cdy-agency/api-sky-solutions/internal/interfaces/handlers/payroll"
	sharehandler "github.com/cdy-agency/api-sky-solutions/internal/interfaces/handlers/shares"
	"github.com/cdy-agency/api-sky-solutions/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with global middleware and route
// registration. The returned DB and Redis client are shared with the caller
// so the scheduler and startup checks reuse the same connections.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	hh := &healthhandler.Handlers{Rdb: rdb}
	if db != nil {
		hh.DB = &gormDBPinger{db: db}
	}
	app.Get("/health/json", hh.JSON)

	if db == nil {
		return app, db, rdb, nil
	}

	notifier := &notifsvc.Service{DB: db, Rdb: rdb}

	// Businesses
	bs := &bizsvc.Service{DB: db, Notifier: notifier}
	bh := &bizhandler.Handlers{Service: bs}
	bg := app.Group("/api/v1/businesses")
	bg.Post("/submissions", bh.Submit)
	bg.Put("/submissions/:id/review", bh.StartReview)
	bg.Put("/submissions/:id/approve", bh.ApproveSubmission)
	bg.Put("/submissions/:id/reject", bh.RejectSubmission)
	bg.Post("/", bh.Create)
	bg.Get("/", bh.List)
	bg.Put("/:id", bh.Update)
	bg.Get("/:id", bh.Get)

	// Shares (allocation engine)
	ss := &sharesvc.Service{DB: db, Notifier: notifier}
	sh := &sharehandler.Handlers{
		Service:       ss,
		StripeCreator: &sharehandler.RealStripeCreator{SecretKey: cfg.StripeSecretKey},
	}
	sg := app.Group("/api/v1/shares")
	sg.Post("/request", sh.RequestShares)
	sg.Get("/requests", sh.ListRequests)
	sg.Get("/investments", sh.ListInvestments)
	sg.Put("/:id/approve", sh.ApproveShareRequest)
	sg.Put("/:id/reject", sh.RejectShareRequest)
	sg.Post("/:id/pay", sh.Pay)

	// Expenses (recurrence engine)
	es := &expsvc.Service{DB: db}
	eh := &exphandler.Handlers{Service: es}
	eg := app.Group("/api/v1/expenses")
	eg.Post("/", eh.Create)
	eg.Get("/", eh.List)
	eg.Put("/:id", eh.Update)
	eg.Patch("/:id/paid", eh.MarkPaid)
	eg.Patch("/:id/active", eh.ToggleActive)
	eg.Get("/:id", eh.Get)

	// Invoices
	is := &invsvc.Service{DB: db}
	ih := &invhandler.Handlers{Service: is}
	ig := app.Group("/api/v1/invoices")
	ig.Post("/", ih.Create)
	ig.Get("/", ih.List)
	ig.Put("/:id", ih.Update)
	ig.Patch("/:id/paid", ih.MarkPaid)

	// Employees + payroll
	ems := &empsvc.Service{DB: db}
	emh := &emphandler.Handlers{Service: ems}
	emg := app.Group("/api/v1/employees")
	emg.Post("/", emh.Create)
	emg.Get("/", emh.List)
	emg.Put("/:id", emh.Update)
	emg.Get("/:id", emh.Get)

	ps := &paysvc.Service{DB: db}
	ph := &payhandler.Handlers{Service: ps}
	pg := app.Group("/api/v1/payrolls")
	pg.Post("/", ph.Create)
	pg.Get("/", ph.List)
	pg.Put("/:id", ph.Update)
	pg.Patch("/:id/paid", ph.MarkPaid)

	// Notifications
	nh := &notifhandler.Handlers{Service: notifier}
	ng := app.Group("/api/v1/notifications")
	ng.Get("/", nh.List)
	ng.Patch("/:id/read", nh.MarkRead)

	return app, db, rdb, nil
}
