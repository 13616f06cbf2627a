package core

import (
	"github.com/sidereusnuntius/goreads/internal/config"
	"github.com/sidereusnuntius/goreads/internal/db"
	"github.com/sidereusnuntius/goreads/internal/gateway"
	"github.com/sidereusnuntius/goreads/internal/notify"
	"github.com/sidereusnuntius/goreads/internal/render"
	"github.com/sidereusnuntius/goreads/internal/resolve"
	"github.com/sidereusnuntius/goreads/internal/service"
	"github.com/sidereusnuntius/goreads/internal/state"
)

const (
	BcryptCost = 10
)

type AppService struct {
	Config   config.Configuration
	DB       db.DB
	Gateway  gateway.FedGateway
	Resolver *resolve.Resolver
	Renderer *render.Renderer
	Notifier *notify.Dispatcher
}

func New(state *state.State, gw gateway.FedGateway, resolver *resolve.Resolver) service.Service {
	return &AppService{
		Config:   state.Config,
		DB:       state.DB,
		Gateway:  gw,
		Resolver: resolver,
		Renderer: render.New(),
		Notifier: notify.New(state.DB),
	}
}
