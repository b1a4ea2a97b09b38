package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/di"
)

// Application is the top-level kernel: it loads configuration, collects
// binding providers, opens the root dependency scope, and serves HTTP.
type Application struct {
	Config *config.Config
	Router chi.Router
	Log    *slog.Logger

	providers []di.Provider
	scope     *di.Scope
}

// New loads configuration and prepares the router. Register providers,
// then call Boot before serving or resolving.
//
//	application := app.New() // loads .env automatically
//	application.Register(&GreeterProvider{})
//	if err := application.Boot(); err != nil { ... }
//	defer application.Shutdown()
func New(envFiles ...string) *Application {
	cfg := config.Load(envFiles...)

	level := slog.LevelInfo
	if cfg.App.Debug || cfg.DI.Trace {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	return &Application{
		Config: cfg,
		Router: r,
		Log:    logger,
	}
}

// Register adds a binding provider. Providers contribute bindings in
// registration order; later providers shadow earlier ones per interface.
func (a *Application) Register(p di.Provider) {
	a.providers = append(a.providers, p)
}

// Boot collects bindings from all providers, opens the root scope, and
// runs the providers' Boot phase. Idempotent.
func (a *Application) Boot() error {
	if a.scope != nil {
		return nil
	}

	a.scope = di.NewScope(di.CollectBindings(a.providers...))

	if err := a.scope.Validate(); err != nil {
		closeErr := a.scope.Close()
		a.scope = nil
		if closeErr != nil {
			return fmt.Errorf("%w (scope close: %v)", err, closeErr)
		}
		return err
	}

	if a.Config.DI.Trace {
		a.scope.AfterResolve(func(iface string, tag di.Tag, instance any) {
			a.Log.Debug("service constructed",
				"interface", iface,
				"tag", string(tag),
				"implementation", fmt.Sprintf("%T", instance),
			)
		})
	}

	if err := di.BootAll(a.scope, a.providers...); err != nil {
		if closeErr := a.scope.Close(); closeErr != nil {
			err = fmt.Errorf("%w (scope close: %v)", err, closeErr)
		}
		a.scope = nil
		return err
	}

	return nil
}

// Scope returns the root scope. Nil before Boot.
func (a *Application) Scope() *di.Scope {
	return a.scope
}

// Shutdown closes the root scope. Any scope opened after Boot must be
// closed first, or Shutdown fails with di.ErrScopeMismatch.
func (a *Application) Shutdown() error {
	if a.scope == nil {
		return nil
	}
	if err := a.scope.Close(); err != nil {
		return err
	}
	a.scope = nil
	return nil
}

// Run boots the application (if needed) and starts the HTTP server on
// APP_PORT.
func (a *Application) Run() error {
	if a.scope == nil {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	addr := ":" + a.Config.App.Port
	a.Log.Info("listening",
		"app", a.Config.App.Name,
		"addr", addr,
		"env", a.Config.App.Env,
	)
	return http.ListenAndServe(addr, a.Router)
}
