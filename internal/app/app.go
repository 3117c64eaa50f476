package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/twmb/franz-go/pkg/sr"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/schema"
)

type kvStore interface {
	port.KVStore
	Close()
}

type eventsProducer interface {
	port.ClientEventProducer
	Close()
}

type coreServices struct {
	catalog  *service.CatalogService
	cart     service.CartService
	wishlist service.WishlistService
	compare  service.CompareService
	orders   service.OrdersService
	prefs    service.PrefsService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	store      kvStore
	events     eventsProducer
	services   coreServices
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initEventsProducer()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	switch app.cfg.Storage.Driver {
	case "postgres":
		s, err := storage.NewPostgresKV(app.ctx, app.cfg.Storage.PostgresDSN)
		if err != nil {
			app.fallDown(op, err)
		}
		app.store = s
	default:
		s, err := storage.NewSQLiteKV(app.ctx, app.cfg.Storage.SQLitePath)
		if err != nil {
			app.fallDown(op, err)
		}
		app.store = s
	}
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	if !app.cfg.Events.Enabled {
		app.events = kafka.NoopProducer{}
		return
	}

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Events.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)
	subject := app.cfg.Events.Topic + "-value"

	// the registry may still be starting up alongside the service
	serde, err := retry.DoWithResult(app.ctx,
		retry.Config{MaxAttempts: 5},
		func() (schema.Serde, error) {
			return schema.NewSerdeClientEventV1(
				app.ctx,
				schema.SubjectOpt(subject),
				schema.SchemaIdentifierOpt(schemaCreater),
			)
		},
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx, app.cfg.Events.SeedBrokers, app.cfg.Events.Topic,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.events = producer
}

func (app *App) initCoreServices() {
	source := catalog.NewClient(
		app.cfg.Catalog.BaseURL,
		app.cfg.Catalog.RequestTimeout,
		app.cfg.Catalog.CurrencyRate,
	)

	catalogSvc := service.NewCatalogService(
		source,
		catalog.LocalProducts(),
		app.events,
		service.CatalogConfig{
			ExternalLimit:         app.cfg.Catalog.ExternalLimit,
			SuggestFetchLimit:     app.cfg.Catalog.SuggestFetchLimit,
			SuggestLimit:          app.cfg.Catalog.SuggestLimit,
			PageSize:              app.cfg.Catalog.PageSize,
			PopularRatingWeight:   app.cfg.Catalog.PopularRatingW,
			PopularDiscountWeight: app.cfg.Catalog.PopularDiscountW,
		},
	)

	cartSvc := service.NewCartService(app.store, catalogSvc, app.events)

	app.services = coreServices{
		catalog:  catalogSvc,
		cart:     cartSvc,
		wishlist: service.NewWishlistService(app.store, catalogSvc),
		compare: service.NewCompareService(
			app.store, catalogSvc, app.cfg.Checkout.CompareLimit,
		),
		orders: service.NewOrdersService(
			app.store, cartSvc, app.events, app.cfg.Checkout.PaymentDelay,
		),
		prefs: service.NewPrefsService(app.store),
	}
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(
		mux, app.services.catalog, app.services.catalog, app.services.catalog,
	)
	httphandler.RegisterCart(mux, app.services.cart)
	httphandler.RegisterWishlist(mux, app.services.wishlist)
	httphandler.RegisterCompare(mux, app.services.compare)
	httphandler.RegisterOrders(mux, app.services.orders)
	httphandler.RegisterPrefs(mux, app.services.prefs)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.events.Close()
	app.store.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
