package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"orderbot/internal/config"
	"orderbot/internal/db"
	"orderbot/internal/dialog"
	"orderbot/internal/events"
	"orderbot/internal/httpserver"
	"orderbot/internal/notify"
	cartrepo "orderbot/internal/repository/cart"
	categoryrepo "orderbot/internal/repository/category"
	counterrepo "orderbot/internal/repository/counter"
	orderrepo "orderbot/internal/repository/order"
	productrepo "orderbot/internal/repository/product"
	rosterrepo "orderbot/internal/repository/roster"
	sessionrepo "orderbot/internal/repository/session"
	userrepo "orderbot/internal/repository/user"
	cartsvc "orderbot/internal/service/cart"
	catalogsvc "orderbot/internal/service/catalog"
	checkoutsvc "orderbot/internal/service/checkout"
	"orderbot/internal/transport"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	counterRepo := counterrepo.NewPostgres(dbpool)
	sessionRepo := sessionrepo.NewPostgres(dbpool)
	adminsRepo := rosterrepo.NewAdmins(dbpool)
	receiversRepo := rosterrepo.NewReceivers(dbpool)

	sender := transport.NewWebhookSender(cfg.OutboundWebhookURL, logger)
	orderNotifier := notify.NewOrderNotifier(receiversRepo, sender, logger)

	notifier := notify.Combined(orderNotifier)
	kafkaClient := events.NewClient(cfg.KafkaBrokers)
	if kafkaClient.Enabled() {
		publisher := events.NewOrderPublisher(kafkaClient.NewWriter(events.OrderTopic), logger)
		defer publisher.Close()
		notifier = notify.Combined(orderNotifier, publisher)
		logger.Printf("kafka publishing enabled, brokers=%v", kafkaClient.Brokers)
	}

	cartService := cartsvc.New(cartRepo, productRepo)
	catalogService := catalogsvc.New(categoryRepo, productRepo)
	checkoutService := checkoutsvc.New(orderRepo, cartRepo, counterRepo, notifier, logger)

	engine := dialog.New(dialog.Deps{
		Sessions:          sessionRepo,
		Users:             userRepo,
		Carts:             cartService,
		Catalog:           catalogService,
		Checkout:          checkoutService,
		Admins:            adminsRepo,
		Receivers:         receiversRepo,
		Broadcast:         notify.NewBroadcaster(sender, logger),
		DeliveryCostCents: cfg.DeliveryCostCents,
		PickupAddress:     cfg.PickupAddress,
		Logger:            logger,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Engine:        engine,
		Orders:        checkoutService,
		OpsAPIKeyHash: cfg.OpsAPIKeyHash,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
