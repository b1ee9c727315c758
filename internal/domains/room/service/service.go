package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"gostitut/config"
	"gostitut/infras/otel"
	"gostitut/infras/postgres"
	"gostitut/internal/domains/room/model"
	"gostitut/internal/domains/room/model/dto"
	"gostitut/internal/domains/room/repository"
	roomTypeRepository "gostitut/internal/domains/roomtype/repository"
	"gostitut/shared"
	"gostitut/shared/cache"
	"gostitut/shared/constant"
	gDto "gostitut/shared/dto"
	"gostitut/shared/failure"
)

const (
	CacheKeyRoom     = "room:get"
	CacheKeyRoomList = "room:gets"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetRoomsResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string, dropOrphanType bool) error
	OverrideStatus(ctx context.Context, id string, req dto.OverrideStatusRequest) error
	History(ctx context.Context, id string) (dto.GetStatusHistoryResponse, error)
}

type serviceImpl struct {
	repo         repository.Room
	ledger       repository.StatusLedger
	roomTypeRepo roomTypeRepository.RoomType
	txer         postgres.Txer
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Room,
	ledger repository.StatusLedger,
	roomTypeRepo roomTypeRepository.RoomType,
	txer postgres.Txer,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:         repo,
		ledger:       ledger,
		roomTypeRepo: roomTypeRepo,
		txer:         txer,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomType, err := s.roomTypeRepo.GetByID(ctx, req.TypeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound("room type") //nolint:wrapcheck
	}

	room := req.ToModel()

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(model.RoomWithType{
		Room:      room,
		TypeName:  roomType.Name,
		BasePrice: roomType.BasePrice,
	})

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheKeyRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room") //nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheKeyRoomList, params)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room") //nolint:wrapcheck
	}

	roomType, err := s.roomTypeRepo.GetByID(ctx, req.TypeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return failure.NotFound("room type") //nolint:wrapcheck
	}

	room.Number = req.Number
	room.TypeID = req.TypeID
	room.Floor = req.Floor
	room.MaxGuests = req.MaxGuests

	if err = s.repo.Update(ctx, room.Room); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Delete removes the room; its bookings go with it through the schema
// cascade. With dropOrphanType set, the room's rate category is pruned in
// the same transaction when no other room references it.
func (s *serviceImpl) Delete(ctx context.Context, id string, dropOrphanType bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.txer.WithinTx(ctx, func(tx *sqlx.Tx) error {
		room, err := s.repo.LockTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room") //nolint:wrapcheck
		}

		if err := s.repo.DeleteTx(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		if !dropOrphanType {
			return nil
		}

		remaining, err := s.repo.CountByTypeTx(ctx, tx, room.TypeID)
		if err != nil {
			return fmt.Errorf("failed to count rooms by type: %w", err)
		}

		if remaining == 0 {
			if err := s.roomTypeRepo.DeleteTx(ctx, tx, room.TypeID); err != nil {
				return fmt.Errorf("failed to delete orphan room type: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return err
	}

	s.invalidate(ctx)

	return nil
}

// OverrideStatus is the administrative escape hatch. It may move the room to
// any status at any time; the change is still audited through the ledger and
// never consulted by allocation conflict checks.
func (s *serviceImpl) OverrideStatus(ctx context.Context, id string, req dto.OverrideStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.OverrideStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !model.ValidStatus(req.Status) {
		return failure.BadRequestFromString("unknown room status") //nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyActorID).(string)

	err = s.txer.WithinTx(ctx, func(tx *sqlx.Tx) error {
		room, err := s.repo.LockTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room") //nolint:wrapcheck
		}

		if err := s.ledger.TransitionTx(ctx, tx, id, room.Status, req.Status, actor); err != nil {
			return fmt.Errorf("failed to transition room status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to override room status")

		return err
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) History(ctx context.Context, id string) (res dto.GetStatusHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.History")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room") //nolint:wrapcheck
	}

	history, err := s.ledger.History(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room status history")

		return res, fmt.Errorf("failed to get room status history: %w", err)
	}

	res.FromModels(history)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, CacheKeyRoom)
		shared.InvalidateCaches(c, s.cache, CacheKeyRoomList)
	}()
}
