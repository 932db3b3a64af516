package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/MarcGrol/userarea/lib/myasync"
	"github.com/MarcGrol/userarea/lib/myauth"
	"github.com/MarcGrol/userarea/lib/myconfig"
	"github.com/MarcGrol/userarea/lib/myevents"
	"github.com/MarcGrol/userarea/lib/myhttpclient"
	"github.com/MarcGrol/userarea/lib/mylease"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mymetrics"
	"github.com/MarcGrol/userarea/lib/mypublisher"
	"github.com/MarcGrol/userarea/lib/mypubsub"
	"github.com/MarcGrol/userarea/lib/myqueue"
	"github.com/MarcGrol/userarea/lib/myscheduler"
	"github.com/MarcGrol/userarea/lib/mystore"
	"github.com/MarcGrol/userarea/lib/mytime"
	"github.com/MarcGrol/userarea/lib/myuuid"
	"github.com/MarcGrol/userarea/services/account"
	"github.com/MarcGrol/userarea/services/application"
	"github.com/MarcGrol/userarea/services/fakeplatform"
	"github.com/MarcGrol/userarea/services/locksweeper"
	"github.com/MarcGrol/userarea/services/payment"
	"github.com/MarcGrol/userarea/services/payment/paymentevents"
	"github.com/MarcGrol/userarea/services/shoppingcart"
	"github.com/MarcGrol/userarea/services/signature"
	"github.com/MarcGrol/userarea/services/warmup"
)

func main() {
	c := context.Background()

	cfg, err := myconfig.Load(os.Getenv("USERAREA_CONFIG"))
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}
	if !mylog.SetMinimumSeverity(cfg.Log.Level) {
		log.Printf("Unknown log level %q: logging everything", cfg.Log.Level)
	}

	router := mux.NewRouter()

	a, err := createApp(c, cfg, router)
	if err != nil {
		log.Fatalf("Error creating services: %s", err)
	}
	defer a.cleanup()

	a.scheduler.Start()
	defer a.scheduler.Stop()

	startWebServerBlocking(c, cfg.Server.Port, router)
}

type app struct {
	scheduler *myscheduler.Scheduler
	executor  *myasync.BoundedExecutor
	cleanups  []func()
}

// cleanup waits for background work before closing the infrastructure
func (a *app) cleanup() {
	a.executor.Wait()
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
}

func createApp(c context.Context, cfg myconfig.Config, router *mux.Router) (*app, error) {
	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	metrics := mymetrics.New()
	executor := myasync.New(cfg.Async.MaxConcurrent)
	a := &app{executor: executor}

	db, appStore, lease, cleanup, err := createDatabase(c, cfg, nower, uuider)
	if err != nil {
		return nil, err
	}
	a.cleanups = append(a.cleanups, cleanup)

	accountStore, cleanup, err := mystore.New[account.Account](c, cfg.GCloud.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("error creating account store: %s", err)
	}
	a.cleanups = append(a.cleanups, cleanup)

	cartStore, cleanup, err := mystore.New[shoppingcart.Cart](c, cfg.GCloud.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("error creating cart store: %s", err)
	}
	a.cleanups = append(a.cleanups, cleanup)

	cartItemStore, cleanup, err := mystore.New[shoppingcart.CartApplication](c, cfg.GCloud.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("error creating cart item store: %s", err)
	}
	a.cleanups = append(a.cleanups, cleanup)

	paymentStore, cleanup, err := mystore.New[payment.Payment](c, cfg.GCloud.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("error creating payment store: %s", err)
	}
	a.cleanups = append(a.cleanups, cleanup)

	paymentApplicationStore, cleanup, err := mystore.New[payment.PaymentApplication](c, cfg.GCloud.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("error creating payment application store: %s", err)
	}
	a.cleanups = append(a.cleanups, cleanup)

	publisher, cleanup, err := createPublisher(c, cfg, nower, executor)
	if err != nil {
		return nil, err
	}
	a.cleanups = append(a.cleanups, cleanup)
	publisher.RegisterEndpoints(c, router)

	sender := myhttpclient.New(myhttpclient.Config{
		ConnectTimeout: cfg.HTTPClient.ConnectTimeout,
		ReadTimeout:    cfg.HTTPClient.ReadTimeout,
		RetryCount:     cfg.HTTPClient.RetryCount,
		RetryWaitTime:  time.Second,
	})

	accounts := account.NewService(accountStore, mylog.New("account"))
	applications := application.NewService(appStore, nower, mylog.New("application"))

	signatures := signature.NewService(sender, signature.Config{
		URL:                     cfg.Signature.URL,
		ModifyEndpoint:          cfg.Signature.ModifyEndpoint,
		DeleteEndpoint:          cfg.Signature.DeleteEndpoint,
		ListEndpoint:            cfg.Signature.ListEndpoint,
		FrontOfficeURL:          cfg.FrontOffice.URL,
		SignatureDeleteEndpoint: cfg.FrontOffice.SignatureDeleteEndpoint,
	}, executor, metrics, mylog.New("signature"))

	carts := shoppingcart.NewService(cartStore, cartItemStore, accounts, applications, signatures, nower, uuider,
		mylog.New("shoppingcart"), cfg.Cart.AwaitingPaymentStatus)

	var paymentClient payment.PaymentClient = payment.NewPaymentClient(sender, payment.ClientConfig{
		PlatformURL:    cfg.Payment.PlatformURL,
		CreateEndpoint: cfg.Payment.CreateEndpoint,
		CallbackURL:    cfg.Payment.CallbackURL,
	})
	var fakePlatform *fakeplatform.FakePaymentPlatform
	if cfg.Payment.UseFakePlatform {
		log.Printf("Using in-memory payment platform")
		fakePlatform = fakeplatform.NewFakePaymentPlatform(cfg.Payment.CallbackURL)
		paymentClient = fakePlatform
	}

	payments := payment.NewService(payment.Config{
		PlatformURL:       cfg.Payment.PlatformURL,
		SearchableColumns: cfg.Payment.SearchableColumns,
	}, paymentStore, paymentApplicationStore, applications, carts, accounts,
		paymentClient,
		payment.NewFrontOfficeNotifier(sender, payment.FrontOfficeConfig{
			URL:                   cfg.FrontOffice.URL,
			PaymentUpdateEndpoint: cfg.FrontOffice.PaymentUpdateEndpoint,
		}),
		publisher, executor, metrics, nower, mylog.New("payment"))

	for _, ws := range []interface {
		RegisterEndpoints(c context.Context, router *mux.Router) error
	}{
		signature.NewWebService(signatures),
		shoppingcart.NewWebService(carts),
		payment.NewWebService(payments),
		warmup.NewWebService(readinessChecks(db, accountStore)...),
	} {
		err = ws.RegisterEndpoints(c, router)
		if err != nil {
			return nil, fmt.Errorf("error registering endpoints: %s", err)
		}
	}

	// every lockable table is registered here; lock.tables selects which ones are swept
	sweeper := locksweeper.New(cfg.Lock.Tables, cfg.Lock.Timeout(), nower, metrics, mylog.New("locksweeper"), applications)
	a.scheduler = myscheduler.New(lease, cfg.Lock.LeaseMinHold, cfg.Lock.LeaseMaxHold)
	err = a.scheduler.Register(c, locksweeper.JobName, cfg.Lock.SweepCron, sweeper.Run)
	if err != nil {
		return nil, err
	}

	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	unauthenticated := []string{"/payments/callback", "/pubsub/", "/metrics", "/_ah/"}
	if fakePlatform != nil {
		// the fake never calls back by itself
		fakePlatform.RegisterSettleEndpoint(router, payments.Confirm)
		unauthenticated = append(unauthenticated, "/fake/")
	}

	authenticator := myauth.NewAuthenticator(cfg.Auth.JWTSecret, unauthenticated...)
	router.Use(metrics.Middleware, authenticator.Middleware)

	return a, nil
}

// createDatabase uses postgres when database.url is set and keeps everything in memory otherwise; db is nil then
func createDatabase(c context.Context, cfg myconfig.Config, nower mytime.Nower, uuider myuuid.UUIDer) (*sql.DB, application.Store, mylease.Lease, func(), error) {
	if cfg.Database.URL == "" {
		return nil, application.NewInMemoryStore(), mylease.NewInMemoryLease(nower), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error opening database: %s", err)
	}
	err = db.PingContext(c)
	if err != nil {
		db.Close()
		return nil, nil, nil, nil, fmt.Errorf("error connecting to database: %s", err)
	}

	appStore := application.NewSQLStore(db)
	err = appStore.EnsureSchema(c)
	if err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}

	hostname, _ := os.Hostname()
	lease := mylease.NewSQLLease(db, nower, hostname+"-"+uuider.Create())
	err = lease.EnsureSchema(c)
	if err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}

	return db, appStore, lease, func() { db.Close() }, nil
}

func readinessChecks(db *sql.DB, accountStore mystore.Store[account.Account]) []warmup.Check {
	checks := []warmup.Check{{
		Name: "datastore",
		Ping: func(c context.Context) error {
			_, _, err := accountStore.Get(c, "warmup")
			return err
		},
	}}
	if db != nil {
		checks = append(checks, warmup.Check{Name: "database", Ping: db.PingContext})
	}
	return checks
}

func createPublisher(c context.Context, cfg myconfig.Config, nower mytime.Nower, executor myasync.Executor) (*mypublisher.TransactionalPublisher, func(), error) {
	outbox, outboxCleanup, err := mystore.New[myevents.EventEnvelope](c, cfg.GCloud.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating outbox store: %s", err)
	}

	pubsub, pubsubCleanup, err := mypubsub.New(c, cfg.GCloud.ProjectID)
	if err != nil {
		outboxCleanup()
		return nil, nil, fmt.Errorf("error creating pubsub: %s", err)
	}

	queue, queueCleanup, err := myqueue.New(c, myqueue.Config{
		ProjectID:  cfg.GCloud.ProjectID,
		LocationID: cfg.GCloud.LocationID,
		QueueName:  cfg.GCloud.QueueName,
	})
	if err != nil {
		pubsubCleanup()
		outboxCleanup()
		return nil, nil, fmt.Errorf("error creating task queue: %s", err)
	}

	publisher := mypublisher.New(outbox, pubsub, queue, nower)

	// without cloud tasks the outbox is flushed in-process
	if fake, ok := queue.(*myqueue.FakeTaskQueue); ok {
		logger := mylog.New("outbox")
		fake.OnEnqueue(func(c context.Context, task myqueue.Task) {
			executor.Go(c, "outbox", func(c context.Context) {
				err := publisher.ProcessPending(c)
				if err != nil {
					logger.Log(c, task.UID, mylog.SeverityError, "Error flushing outbox: %s", err)
				}
			})
		})
	}

	err = publisher.CreateTopic(c, paymentevents.TopicName)
	if err != nil {
		queueCleanup()
		pubsubCleanup()
		outboxCleanup()
		return nil, nil, fmt.Errorf("error creating topic %s: %s", paymentevents.TopicName, err)
	}

	return publisher, func() {
		queueCleanup()
		pubsubCleanup()
		outboxCleanup()
	}, nil
}

func startWebServerBlocking(c context.Context, port int, router *mux.Router) {
	if envPort := os.Getenv("PORT"); envPort != "" {
		if p, err := strconv.Atoi(envPort); err == nil {
			port = p
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop

		shutdownCtx, cancel := context.WithTimeout(c, 20*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			log.Printf("Error shutting down webserver: %s", err)
		}
	}()

	log.Printf("Starting webserver on port %d (try http://localhost:%d)", port, port)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Error starting webserver on port %d: %s", port, err)
	}
}
