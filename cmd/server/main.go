package main

import (
	"context"
	"fmt"

	"camphub-backend/internal/app"
	"camphub-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}

	fiberApp, db, rdb, err := app.New(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}

	// Verify connections before printing the banner.
	sqlDB, err := db.DB()
	if err != nil {
		panic("database: get DB: " + err.Error())
	}
	if err := sqlDB.Ping(); err != nil {
		panic("database connection failed: " + err.Error())
	}
	fmt.Println("Database connected")

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		panic("Redis connection failed: " + err.Error())
	}
	fmt.Println("Redis connected")

	fmt.Printf("Serving on port %s\n", cfg.Port)
	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		panic(err)
	}
}
