package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"sashambhu/docs" //this is required to generate swagger docs
	"sashambhu/internal/auth"
	"sashambhu/internal/domain/bookings"
	"sashambhu/internal/domain/storage"
	"sashambhu/internal/domain/users"
	"sashambhu/internal/mailer"
	"sashambhu/internal/nepcal"
	"sashambhu/internal/notifications"
	"sashambhu/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	mailer        mailer.Client
	push          notifications.PushSender
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	refs          *bookings.ReferenceCodec
	calendar      *nepcal.Converter
	location      *time.Location
	now           func() time.Time
	wg            sync.WaitGroup
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
	report      reportConfig
	hashidsSalt string
	expoToken   string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	iss    string
	aud    string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type reportConfig struct {
	hour int
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	r.Use(app.RateLimiterMiddleware)

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Everything below needs a staff token
		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", app.getMeHandler)
				r.Post("/push-tokens", app.savePushTokenHandler)
				r.Delete("/push-tokens", app.removePushTokenHandler)
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Post("/quote", app.quoteBookingHandler)
				r.Get("/receipt/{reference}", app.getReceiptHandler)
			})

			r.Route("/counter", func(r chi.Router) {
				r.Use(app.RequireRole(users.RoleCounter))

				r.Get("/stats/today", app.todayStatsHandler)
				r.Get("/customers/history", app.customerHistoryHandler)

				r.Route("/bookings", func(r chi.Router) {
					r.Post("/", app.createBookingHandler)
					r.Get("/today", app.listTodayBookingsHandler)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", app.getBookingHandler)
						r.Post("/confirm", app.confirmBookingHandler)
						r.Post("/complete", app.completeBookingHandler)
					})
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(app.RequireRole(users.RoleAdmin))

				r.Get("/overview", app.overviewHandler)
				r.Get("/revenue", app.revenueHandler)
				r.Get("/prices", app.getPricesHandler)
				r.Put("/prices", app.updatePricesHandler)

				r.Route("/bookings", func(r chi.Router) {
					r.Get("/", app.adminListBookingsHandler)
					r.Post("/auto-approve", app.autoApproveHandler)
					r.Patch("/{id}/status", app.adminUpdateStatusHandler)
					r.Delete("/{id}", app.adminDeleteBookingHandler)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", app.listStaffHandler)
					r.Post("/", app.createStaffHandler)
					r.Patch("/{id}", app.updateStaffHandler)
					r.Delete("/{id}", app.deleteStaffHandler)
				})
			})
		})
	})
	return r
}

// background runs fn in a goroutine tracked for graceful shutdown.
func (app *application) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background task panicked", "panic", fmt.Sprint(err))
			}
		}()
		fn()
	}()
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)
		app.logger.Infow("waiting for background tasks")
		app.wg.Wait()
		shutdown <- err
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
