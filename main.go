package main

import (
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/alexedwards/scs"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	zero "github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goreads/internal/client"
	"github.com/sidereusnuntius/goreads/internal/config"
	db "github.com/sidereusnuntius/goreads/internal/db/impl"
	"github.com/sidereusnuntius/goreads/internal/gateway"
	"github.com/sidereusnuntius/goreads/internal/initialization"
	"github.com/sidereusnuntius/goreads/internal/resolve"
	service "github.com/sidereusnuntius/goreads/internal/service/impl"
	"github.com/sidereusnuntius/goreads/internal/state"
	"github.com/sidereusnuntius/goreads/internal/web"
	"github.com/sidereusnuntius/goreads/internal/wellknown"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	zero.Logger = zero.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	config, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	d, err := initialization.OpenDB(config.DbUrl)
	if err != nil {
		log.Fatal(err)
	}
	zero.Info().Msg("database connection established")

	q, err := initialization.InitQueue(&config)
	if err != nil {
		zero.Fatal().Err(err).Msg("unable to connect with backlite database")
		os.Exit(1)
	}

	if os.Getenv("SETUP") != "" {
		err = initialization.SetupDB(&config, d, config.MigrationsFolder, config.DbUrl)
		if err != nil {
			log.Fatal(err)
		}
	}

	gob.Register(web.Session{})
	manager := scs.NewCookieManager(os.Getenv("SESSION_KEY"))

	err = initialization.EnsureInstance(d, &config)
	if err != nil {
		log.Fatal(err)
	}

	dd := db.New(config, d)
	key, err := dd.GetUserPrivateKeyByURI(context.Background(), config.Url)
	if err != nil {
		zero.Fatal().Err(err).Send()
		os.Exit(1)
	}

	fragment, _ := url.Parse("#main-key")
	keyId := config.Url.ResolveReference(fragment)
	httpClient, err := client.New(dd, &http.Client{}, key, keyId)
	if err != nil {
		zero.Fatal().Err(err).Send()
		os.Exit(1)
	}

	gw := gateway.New(context.Background(), dd, httpClient, &config, q)
	resolver := resolve.New(dd, httpClient, config.Domain, gw)

	appState := state.State{
		DB:     dd,
		Config: config,
	}

	svc := service.New(&appState, gw, resolver)

	handler := web.New(&config, svc, manager)
	router := chi.NewRouter()
	handler.Mount(router)
	wellknown.Mount(&appState, router)

	s := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: router,
	}

	zero.Info().Uint16("port", config.Port).Msg("started server")
	err = s.ListenAndServe()
	if err != nil {
		log.Fatal(err)
	}
}
