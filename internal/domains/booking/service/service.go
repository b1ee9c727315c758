package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"gostitut/infras/otel"
	"gostitut/infras/postgres"
	"gostitut/internal/domains/booking/model"
	"gostitut/internal/domains/booking/model/dto"
	"gostitut/internal/domains/booking/repository"
	guestRepository "gostitut/internal/domains/guest/repository"
	roomModel "gostitut/internal/domains/room/model"
	roomRepository "gostitut/internal/domains/room/repository"
	roomService "gostitut/internal/domains/room/service"
	"gostitut/shared"
	"gostitut/shared/cache"
	"gostitut/shared/constant"
	gDto "gostitut/shared/dto"
	"gostitut/shared/failure"
	"gostitut/shared/pricing"
)

// Booking allocates rooms. Every mutating operation runs in one transaction
// that locks the target room row before checking for conflicts, so two
// concurrent requests cannot both see a free interval and double-book it.
// Nothing here is retried automatically.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Modify(ctx context.Context, id string, req dto.ModifyBookingRequest) error
	Cancel(ctx context.Context, id string) error
	Checkout(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepository.Room
	guestRepo guestRepository.Guest
	ledger    roomRepository.StatusLedger
	txer      postgres.Txer
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepository.Room,
	guestRepo guestRepository.Guest,
	ledger roomRepository.StatusLedger,
	txer postgres.Txer,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		guestRepo: guestRepo,
		ledger:    ledger,
		txer:      txer,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := req.Dates()
	if err != nil {
		return res, err
	}

	actor, _ := ctx.Value(constant.ContextKeyActorID).(string)

	var withNames model.BookingWithNames

	err = s.txer.WithinTx(ctx, func(tx *sqlx.Tx) error {
		room, err := s.roomRepo.LockTx(ctx, tx, req.RoomID)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room") //nolint:wrapcheck
		}

		guest, err := s.guestRepo.GetByIDTx(ctx, tx, req.GuestID)
		if err != nil {
			return fmt.Errorf("failed to get guest: %w", err)
		}

		if guest.ID == constant.Empty {
			return failure.NotFound("guest") //nolint:wrapcheck
		}

		overlap, err := s.repo.HasOverlapTx(ctx, tx, room.ID, from, to, constant.Empty)
		if err != nil {
			return fmt.Errorf("failed to check overlap: %w", err)
		}

		if overlap {
			return failure.Conflict("room is already booked for the requested dates") //nolint:wrapcheck
		}

		booking := model.Booking{
			ID:         uuid.NewString(),
			RoomID:     room.ID,
			GuestID:    guest.ID,
			CreatedBy:  actor,
			DateFrom:   from,
			DateTo:     to,
			Status:     model.StatusActive,
			TotalPrice: pricing.Total(room.BasePrice, from, to, guest.DiscountPercent),
			CreatedAt:  time.Now().UTC(),
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if room.Status != roomModel.StatusBooked {
			if err := s.ledger.TransitionTx(ctx, tx, room.ID, room.Status, roomModel.StatusBooked, actor); err != nil {
				return fmt.Errorf("failed to transition room status: %w", err)
			}
		}

		withNames = model.BookingWithNames{
			Booking:        booking,
			RoomNumber:     room.Number,
			GuestFirstName: guest.FirstName,
			GuestLastName:  guest.LastName,
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	s.invalidateRooms(ctx)

	res.FromModel(withNames)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") //nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}

// Modify edits room, dates, or status of a booking. Whenever the resulting
// status is active the overlap check is re-run excluding the booking's own
// row, including explicit re-activation of a cancelled or completed booking.
// The price is always recomputed with the guest's current discount.
func (s *serviceImpl) Modify(ctx context.Context, id string, req dto.ModifyBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Modify")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyActorID).(string)

	err = s.txer.WithinTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.repo.LockTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking") //nolint:wrapcheck
		}

		target := booking

		if req.Status != nil {
			if !model.ValidStatus(*req.Status) {
				return failure.BadRequestFromString("unknown booking status") //nolint:wrapcheck
			}

			target.Status = *req.Status
		}

		if req.DateFrom != nil {
			target.DateFrom, err = dto.ParseDate(*req.DateFrom, "date_from")
			if err != nil {
				return err
			}
		}

		if req.DateTo != nil {
			target.DateTo, err = dto.ParseDate(*req.DateTo, "date_to")
			if err != nil {
				return err
			}
		}

		if !target.DateFrom.Before(target.DateTo) {
			return failure.BadRequestFromString("date_from must be before date_to") //nolint:wrapcheck
		}

		if req.RoomID != nil {
			target.RoomID = *req.RoomID
		}

		roomChanged := target.RoomID != booking.RoomID

		// Rooms are locked in id order so two edits swapping a pair of
		// rooms cannot deadlock.
		rooms, err := s.lockRooms(ctx, tx, booking.RoomID, target.RoomID)
		if err != nil {
			return err
		}

		targetRoom := rooms[target.RoomID]

		guest, err := s.guestRepo.GetByIDTx(ctx, tx, booking.GuestID)
		if err != nil {
			return fmt.Errorf("failed to get guest: %w", err)
		}

		if guest.ID == constant.Empty {
			return failure.NotFound("guest") //nolint:wrapcheck
		}

		if target.Status == model.StatusActive {
			overlap, err := s.repo.HasOverlapTx(ctx, tx, target.RoomID, target.DateFrom, target.DateTo, booking.ID)
			if err != nil {
				return fmt.Errorf("failed to check overlap: %w", err)
			}

			if overlap {
				return failure.Conflict("room is already booked for the requested dates") //nolint:wrapcheck
			}
		}

		target.TotalPrice = pricing.Total(targetRoom.BasePrice, target.DateFrom, target.DateTo, guest.DiscountPercent)

		if err := s.repo.UpdateTx(ctx, tx, target); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if roomChanged {
			oldRoom := rooms[booking.RoomID]
			if oldRoom.Status != roomModel.StatusFree {
				if err := s.ledger.TransitionTx(ctx, tx, oldRoom.ID, oldRoom.Status, roomModel.StatusFree, actor); err != nil {
					return fmt.Errorf("failed to free old room: %w", err)
				}
			}
		}

		desired := roomModel.StatusFree
		if target.Status == model.StatusActive {
			desired = roomModel.StatusBooked
		}

		if targetRoom.Status != desired {
			if err := s.ledger.TransitionTx(ctx, tx, targetRoom.ID, targetRoom.Status, desired, actor); err != nil {
				return fmt.Errorf("failed to transition room status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to modify booking")

		return err
	}

	s.invalidateRooms(ctx)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.close(ctx, id, model.StatusCancelled, roomModel.StatusFree)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return err
	}

	s.invalidateRooms(ctx)

	return nil
}

// Checkout completes an active booking and sends the room to cleaning. A
// repeated checkout fails with a state error rather than silently
// succeeding.
func (s *serviceImpl) Checkout(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.close(ctx, id, model.StatusCompleted, roomModel.StatusCleaning)
	if err != nil {
		log.Error().Err(err).Msg("failed to check out booking")

		return err
	}

	s.invalidateRooms(ctx)

	return nil
}

func (s *serviceImpl) close(ctx context.Context, id, bookingStatus, roomStatus string) error {
	actor, _ := ctx.Value(constant.ContextKeyActorID).(string)

	return s.txer.WithinTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.repo.LockTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking") //nolint:wrapcheck
		}

		if !booking.IsActive() {
			return failure.InvalidState("booking is not active") //nolint:wrapcheck
		}

		booking.Status = bookingStatus

		if err := s.repo.UpdateTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		room, err := s.roomRepo.LockTx(ctx, tx, booking.RoomID)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID != constant.Empty && room.Status != roomStatus {
			if err := s.ledger.TransitionTx(ctx, tx, room.ID, room.Status, roomStatus, actor); err != nil {
				return fmt.Errorf("failed to transition room status: %w", err)
			}
		}

		return nil
	})
}

func (s *serviceImpl) lockRooms(ctx context.Context, tx *sqlx.Tx, oldID, newID string) (map[string]roomModel.RoomWithType, error) {
	ids := []string{oldID}
	if newID != oldID {
		ids = append(ids, newID)
		if ids[1] < ids[0] {
			ids[0], ids[1] = ids[1], ids[0]
		}
	}

	rooms := make(map[string]roomModel.RoomWithType, len(ids))

	for _, roomID := range ids {
		room, err := s.roomRepo.LockTx(ctx, tx, roomID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return nil, failure.NotFound("room") //nolint:wrapcheck
		}

		rooms[roomID] = room
	}

	return rooms, nil
}

func (s *serviceImpl) invalidateRooms(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, roomService.CacheKeyRoom)
		shared.InvalidateCaches(c, s.cache, roomService.CacheKeyRoomList)
	}()
}
