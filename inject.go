package main

import (
	"context"

	"github.com/Kotlang/eventsGo/config"
	"github.com/Kotlang/eventsGo/db"
	"github.com/Kotlang/eventsGo/extensions"
	"github.com/Kotlang/eventsGo/service"
	"github.com/Kotlang/eventsGo/web"
)

type Inject struct {
	EventsDb db.EventsDbInterface

	EventService *service.EventService
	UserService  *service.UserService
	AuthClient   *extensions.AuthClient

	Server *web.Server
}

func NewInject(ctx context.Context, cfg *config.Config) (*Inject, error) {
	inj := &Inject{}

	eventsDb, err := connectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	inj.EventsDb = eventsDb

	inj.EventService = service.NewEventService(inj.EventsDb)
	inj.UserService = service.NewUserService(inj.EventsDb)
	inj.AuthClient = extensions.NewAuthClient(cfg.JwtSecret, cfg.SessionTTL)

	inj.Server = web.NewServer(inj.EventService, inj.UserService, inj.AuthClient, web.RoutePolicy{
		OwnerOnly: cfg.OwnerOnlyMutations,
	})
	return inj, nil
}

func connectStore(ctx context.Context, cfg *config.Config) (db.EventsDbInterface, error) {
	if cfg.StoreDriver == config.StoreSqlite {
		return db.ConnectSqlite(cfg.SqlitePath)
	}
	return db.ConnectMongo(ctx, cfg.MongoUri, cfg.MongoDb)
}
