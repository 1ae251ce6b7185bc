// Package main library front API.
//
// @title           Library Front API
// @version         1.0
// @description     Catalog, rentals and profile views over the library REST service.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"log/slog"
	"os"

	"libraryfront/app/echoServer"
	"libraryfront/config"
	_ "libraryfront/docs"
	"libraryfront/repository/libraryapi"
	"libraryfront/util/httpx"
)

func main() {

	cfg := config.Load()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// library service client
	api := libraryapi.New(cfg.LibraryAPIURL, httpx.New(cfg.HTTPTimeout))

	e := echoServer.New(cfg, api, log, nil)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port, "library_api", cfg.LibraryAPIURL, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
