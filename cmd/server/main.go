package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nhle/assessment-calendar/internal/server"
)

func main() {
	if loaded := server.LoadDotEnv(); len(loaded) > 0 {
		log.Printf("loaded env files: %v", loaded)
	}
	cfg := server.LoadConfig()

	db, err := server.OpenDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := server.Migrate(db); err != nil {
		log.Fatalf("migration: %v", err)
	}

	repo := server.NewGormRepository(db)
	app := server.NewApp(repo)

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
