package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

const Markdown = "text/markdown"

// Software is the name this server reports for itself. Peers running the same
// software receive full-fidelity activities; everyone else gets the plain
// ActivityStreams shape.
const Software = "goreads"

type Configuration struct {
	// Name of the instance, shown in webfinger and actor documents.
	Name string
	// Domain is the name of the host running the application, without scheme.
	Domain string
	Https  bool
	Port   uint16
	// Url is the instance's base url, derived from Https and Domain.
	Url *url.URL
	// DbUrl is the path to the database file.
	DbUrl string
	// QueueDbUrl is the path to the database file backing the delivery queue.
	// It defaults to DbUrl when unset.
	QueueDbUrl string
	// MigrationsFolder holds the SQL migration files applied on setup.
	MigrationsFolder string
	// RsaKeySize specifies the size of the RSA keys used to sign outgoing activities.
	RsaKeySize int
	// ResolverWorkers bounds how many mention lookups run at once while a
	// status is being posted.
	ResolverWorkers int
	// Debug, if true, will make the application log all HTTP requests and other events.
	Debug bool
}

func ReadConfig() (Configuration, error) {
	v := viper.New()
	v.SetConfigName("goreads")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/goreads/")

	v.SetDefault("name", "goreads")
	v.SetDefault("https", true)
	v.SetDefault("port", 8080)
	v.SetDefault("dburl", "goreads.db")
	v.SetDefault("migrationsfolder", "migrations")
	v.SetDefault("rsakeysize", 2048)
	v.SetDefault("resolverworkers", 4)

	v.SetEnvPrefix("goreads")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Configuration{}, err
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return Configuration{}, err
	}

	if cfg.Domain == "" {
		return Configuration{}, fmt.Errorf("config: domain is required")
	}

	if cfg.QueueDbUrl == "" {
		cfg.QueueDbUrl = cfg.DbUrl
	}

	scheme := "https"
	if !cfg.Https {
		scheme = "http"
	}

	u, err := url.Parse(scheme + "://" + strings.TrimSuffix(cfg.Domain, "/"))
	if err != nil {
		return Configuration{}, fmt.Errorf("config: invalid domain: %w", err)
	}
	cfg.Url = u

	return cfg, nil
}
