package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/dovewell/wellness-server/affiliations"
	"github.com/dovewell/wellness-server/auth"
	"github.com/dovewell/wellness-server/clients"
	"github.com/dovewell/wellness-server/contacts"
	"github.com/dovewell/wellness-server/internal/config"
	"github.com/dovewell/wellness-server/mail"
	"github.com/dovewell/wellness-server/policies"
	"github.com/dovewell/wellness-server/prices"
	"github.com/dovewell/wellness-server/server"
	"github.com/dovewell/wellness-server/settings"
	"github.com/dovewell/wellness-server/storage"
	"github.com/dovewell/wellness-server/therapies"
	"github.com/dovewell/wellness-server/users"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	ctx := context.Background()

	db, err := storage.Open(ctx, c.GetDatabaseDSN())
	if err != nil {
		return fmt.Errorf("storage.Open: %w", err)
	}
	defer db.Close()

	repos := server.Repos{
		Users:        users.NewPostgresRepo(db),
		Therapies:    therapies.NewPostgresRepo(db),
		Prices:       prices.NewPostgresRepo(db),
		Contacts:     contacts.NewPostgresRepo(db),
		Affiliations: affiliations.NewPostgresRepo(db),
		Policies:     policies.NewPostgresRepo(db),
		Clients:      clients.NewPostgresRepo(db),
		Settings:     settings.NewPostgresRepo(db),
	}

	options := []server.Option{
		server.WithMailer(mail.NewSMTPSender(c)),
	}
	if c.GetRedisAddr() != "" {
		rdb := redis.NewClient(&redis.Options{Addr: c.GetRedisAddr(), Password: c.GetRedisPassword()})
		defer rdb.Close()
		options = append(options, server.WithLoginLimiter(auth.NewRedisLoginLimiter(rdb, c)))
	}
	if c.GetS3AccessKey() != "" {
		options = append(options, server.WithUploads(storage.NewUploads(c)))
	}

	handler, err := server.New(c, repos, options...)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	srv := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(srv)
	waitForStopSignal()
	returnError = shutdown(srv)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
