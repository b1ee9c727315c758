//go:build wireinject
// +build wireinject

package di

import (
	"gostitut/config"
	"gostitut/infras/otel"
	"gostitut/infras/postgres"
	"gostitut/infras/redis"
	"gostitut/shared/cache"
	"gostitut/transport/http"
	"gostitut/transport/http/middleware"
	"gostitut/transport/http/router"

	"github.com/google/wire"

	adminRepository "gostitut/internal/domains/admin/repository"
	adminService "gostitut/internal/domains/admin/service"
	bookingRepository "gostitut/internal/domains/booking/repository"
	bookingService "gostitut/internal/domains/booking/service"
	guestRepository "gostitut/internal/domains/guest/repository"
	guestService "gostitut/internal/domains/guest/service"
	roomRepository "gostitut/internal/domains/room/repository"
	roomService "gostitut/internal/domains/room/service"
	roomTypeRepository "gostitut/internal/domains/roomtype/repository"
	roomTypeService "gostitut/internal/domains/roomtype/service"

	authHandler "gostitut/internal/handlers/auth"
	bookingHandler "gostitut/internal/handlers/booking"
	guestHandler "gostitut/internal/handlers/guest"
	roomHandler "gostitut/internal/handlers/room"
	roomTypeHandler "gostitut/internal/handlers/roomtype"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTxer,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	provideCipher,
)

var authDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var roomTypeDomain = wire.NewSet(
	roomTypeRepository.New,
	roomTypeService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewStatusLedger,
	roomService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	roomTypeDomain,
	roomDomain,
	guestDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomTypeHandler.New,
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
