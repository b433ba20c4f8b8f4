package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YelzhanWeb/tableside/internal/adapter/backend"
	"github.com/YelzhanWeb/tableside/internal/adapter/console"
	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/adapter/memory"
	"github.com/YelzhanWeb/tableside/internal/adapter/postgres"
	"github.com/YelzhanWeb/tableside/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/tableside/internal/app/admin"
	"github.com/YelzhanWeb/tableside/internal/app/devserver"
	"github.com/YelzhanWeb/tableside/internal/app/kitchen"
	"github.com/YelzhanWeb/tableside/internal/app/recorder"
	"github.com/YelzhanWeb/tableside/internal/app/session"
	"github.com/YelzhanWeb/tableside/internal/app/tracking"
	"github.com/YelzhanWeb/tableside/internal/app/view"
	"github.com/YelzhanWeb/tableside/internal/config"
	"github.com/YelzhanWeb/tableside/internal/interfaces"

	amqpAdapter "github.com/YelzhanWeb/tableside/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/tableside/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Mode: admin, kitchen, menu, history, trail, recorder, notification-subscriber, dev-server")
	configPath := flag.String("config", "", "Path to config.yaml (defaults apply when empty)")
	baseURL := flag.String("base-url", "", "Backend base URL, overrides backend.base_url")
	date := flag.String("date", "", "Date for history mode (YYYY-MM-DD)")
	orderID := flag.Int("order", 0, "Order id for trail mode")
	noClear := flag.Bool("no-clear", false, "Append screens instead of clearing the terminal")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *baseURL != "" {
		cfg.Backend.BaseURL = *baseURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "admin":
		// logs go to stderr so they do not mix with the redrawn screen
		lgr := logger.NewWithWriter(*mode, os.Stderr)
		runAdmin(ctx, cfg, lgr, !*noClear)

	case "kitchen":
		lgr := logger.NewWithWriter(*mode, os.Stderr)
		runKitchen(ctx, cfg, lgr, !*noClear)

	case "menu":
		lgr := logger.NewWithWriter(*mode, os.Stderr)
		runMenu(ctx, cfg, lgr, flag.Args())

	case "history":
		lgr := logger.NewWithWriter(*mode, os.Stderr)
		runHistory(ctx, cfg, lgr, *date)

	case "trail":
		lgr := logger.NewWithWriter(*mode, os.Stderr)
		runTrail(ctx, cfg, lgr, *orderID)

	case "recorder":
		runRecorder(ctx, cfg, logger.New(*mode))

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, logger.New(*mode))

	case "dev-server":
		runDevServer(ctx, cfg, logger.New(*mode))

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func newClient(cfg *config.Config, lgr logger.Logger) *backend.Client {
	return backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, lgr)
}

func runAdmin(ctx context.Context, cfg *config.Config, lgr logger.Logger, clear bool) {
	client := newClient(cfg, lgr)
	sess := session.New(client, console.NewAdminRenderer(os.Stdout, clear), console.NewAlerter(os.Stderr), lgr)
	svc := admin.NewService(sess, client, client, console.NewAlerter(os.Stderr), lgr,
		session.NewSnapshotSource(client, cfg.Backend.ReconnectDelay, lgr))

	lgr.Info("service_started", "Admin console connecting to "+cfg.Backend.BaseURL, "startup", nil)
	runConsole(ctx, lgr, svc.Start, console.NewShell(os.Stdin, os.Stdout, lgr, console.AdminCommands(svc, os.Stdout)...))
}

func runKitchen(ctx context.Context, cfg *config.Config, lgr logger.Logger, clear bool) {
	client := newClient(cfg, lgr)
	sess := session.New(client, console.NewKitchenRenderer(os.Stdout, clear), console.NewAlerter(os.Stderr), lgr)
	svc := kitchen.NewService(sess, client, client, cfg.Backend.ReconnectDelay, cfg.Backend.PollInterval, lgr)

	lgr.Info("service_started", "Kitchen console connecting to "+cfg.Backend.BaseURL, "startup", map[string]interface{}{
		"poll_interval": cfg.Backend.PollInterval.String(),
	})
	runConsole(ctx, lgr, svc.Start, console.NewShell(os.Stdin, os.Stdout, lgr, console.KitchenCommands(svc)...))
}

// runConsole keeps the live feed and the command shell running side by side;
// either one finishing stops the other.
func runConsole(ctx context.Context, lgr logger.Logger, start func(context.Context) error, shell *console.Shell) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- start(ctx)
		cancel()
	}()

	if err := shell.Run(ctx); err != nil {
		lgr.Error("shell_error", "Command input failed", "runtime", nil, err)
	}
	cancel()

	if err := <-done; err != nil {
		lgr.Error("session_error", "Live feed stopped", "shutdown", nil, err)
		os.Exit(1)
	}
	lgr.Info("shutdown_initiated", "Console closed", "shutdown", nil)
}

// runMenu executes the command given after the flags, or reads commands
// from stdin when none is given.
func runMenu(ctx context.Context, cfg *config.Config, lgr logger.Logger, args []string) {
	client := newClient(cfg, lgr)
	shell := console.NewShell(os.Stdin, os.Stdout, lgr, console.MenuCommands(client, os.Stdout)...)

	if len(args) == 0 {
		if err := shell.Run(ctx); err != nil {
			log.Fatalf("Menu shell failed: %v", err)
		}
		return
	}
	if err := shell.Exec(ctx, args); err != nil {
		log.Fatalf("Menu command failed: %v", err)
	}
}

func runHistory(ctx context.Context, cfg *config.Config, lgr logger.Logger, date string) {
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	h, err := newClient(cfg, lgr).OrdersByDate(ctx, date)
	if err != nil {
		log.Fatalf("Failed to load history: %v", err)
	}
	console.WriteHistory(os.Stdout, view.History(date, *h))
}

func runTrail(ctx context.Context, cfg *config.Config, lgr logger.Logger, orderID int) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	svc := tracking.NewService(postgres.NewTransitionRepository(db), lgr)
	trail, err := svc.GetOrderHistory(ctx, orderID)
	if err != nil {
		log.Fatalf("Failed to load order trail: %v", err)
	}
	for _, t := range trail {
		fmt.Printf("%s  %s  by %s\n", t.ObservedAt.Format(time.DateTime), amqpAdapter.Describe(t), t.ObservedBy)
	}
}

func runRecorder(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	client := newClient(cfg, lgr)

	var publisher interfaces.MessagePublisher
	if cfg.Recorder.Publish {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQ, "tableside-"+cfg.Recorder.Name)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer mqConn.Close()

		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
		publisher = rabbitmq.NewPublisher(mqConn)
	}

	var journal interfaces.TransitionRepository
	if cfg.Recorder.Journal {
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}
		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})
		journal = postgres.NewTransitionRepository(db)
	}

	source := session.NewSnapshotSource(client, cfg.Backend.ReconnectDelay, lgr)
	svc := recorder.NewService(cfg.Recorder.Name, source, publisher, journal, lgr)

	if err := svc.Start(ctx); err != nil {
		lgr.Error("recorder_error", "Recorder stopped", "runtime", nil, err)
		return
	}
	lgr.Info("shutdown_initiated", "Shutting down recorder", "shutdown", nil)
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ, "tableside-notification-subscriber")
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn, lgr)
	handler := amqpAdapter.NewNotificationHandler(os.Stdout, lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	if err := consumer.ConsumeTransitions(ctx, handler.HandleNotification); err != nil && !errors.Is(err, context.Canceled) {
		lgr.Error("consumer_error", "Error consuming notifications", "runtime", nil, err)
	}

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}

func runDevServer(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	var (
		orders interfaces.OrderStore
		menu   interfaces.MenuStore
	)
	switch cfg.DevServer.Store {
	case config.StorePostgres:
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}
		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})
		orders = postgres.NewOrderRepository(db)
		menu = postgres.NewMenuRepository(db)
	default:
		store := memory.NewStore(time.Now)
		orders, menu = store, store
	}

	svc := devserver.NewService(orders, menu, lgr, time.Now)
	if cfg.DevServer.Seed {
		if err := svc.Seed(ctx); err != nil {
			log.Fatalf("Failed to seed dev data: %v", err)
		}
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.DevServer.Port),
		Handler:      httpAdapter.NewRouter(svc, svc, cfg.DevServer.StreamInterval, lgr,
			httpAdapter.WithRateLimit(cfg.DevServer.RateLimit, cfg.DevServer.RateBurst)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Dev server started on port %d", cfg.DevServer.Port), "startup", map[string]interface{}{
		"port":  cfg.DevServer.Port,
		"store": cfg.DevServer.Store,
	})

	go func() {
		<-ctx.Done()

		lgr.Info("shutdown_initiated", "Shutting down dev server", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}
