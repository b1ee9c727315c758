package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gostitut/config"
	otelMocks "gostitut/infras/otel/mocks"
	pgMocks "gostitut/infras/postgres/mocks"
	roomMocks "gostitut/internal/domains/room/mocks"
	"gostitut/internal/domains/room/model"
	"gostitut/internal/domains/room/model/dto"
	"gostitut/internal/domains/room/service"
	roomTypeModel "gostitut/internal/domains/roomtype/model"
	roomTypeMocks "gostitut/internal/domains/roomtype/mocks"
	cacheMocks "gostitut/shared/cache/mocks"
	"gostitut/shared/constant"
	"gostitut/shared/failure"
)

type roomServiceFixture struct {
	repo     *roomMocks.MockRoom
	ledger   *roomMocks.MockStatusLedger
	typeRepo *roomTypeMocks.MockRoomType
	txer     *pgMocks.MockTxer
	cache    *cacheMocks.MockRedisCache
	svc      service.Room
}

func newRoomServiceFixture(t *testing.T) *roomServiceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &roomServiceFixture{
		repo:     roomMocks.NewMockRoom(ctrl),
		ledger:   roomMocks.NewMockStatusLedger(ctrl),
		typeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		txer:     pgMocks.NewMockTxer(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.ledger, f.typeRepo, f.txer, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func (f *roomServiceFixture) passThroughTx() {
	f.txer.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(f *roomServiceFixture)
		wantErr   bool
	}{
		{
			name: "successful creation starts free",
			req: dto.CreateRoomRequest{
				Number:    "101",
				TypeID:    "type-id",
				Floor:     1,
				MaxGuests: 2,
			},
			setupMock: func(f *roomServiceFixture) {
				f.typeRepo.EXPECT().
					GetByID(gomock.Any(), "type-id").
					Return(roomTypeModel.RoomType{ID: "type-id", Name: "Standard", BasePrice: 100}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, model.StatusFree, room.Status)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "unknown room type",
			req: dto.CreateRoomRequest{
				Number:    "101",
				TypeID:    "missing-type",
				Floor:     1,
				MaxGuests: 2,
			},
			setupMock: func(f *roomServiceFixture) {
				f.typeRepo.EXPECT().
					GetByID(gomock.Any(), "missing-type").
					Return(roomTypeModel.RoomType{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req: dto.CreateRoomRequest{
				Number:    "101",
				TypeID:    "type-id",
				Floor:     1,
				MaxGuests: 2,
			},
			setupMock: func(f *roomServiceFixture) {
				f.typeRepo.EXPECT().
					GetByID(gomock.Any(), "type-id").
					Return(roomTypeModel.RoomType{ID: "type-id"}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomServiceFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.Number, res.Number)
				assert.Equal(t, model.StatusFree, res.Status)
			}
		})
	}
}

func TestRoomService_OverrideStatus(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		req       dto.OverrideStatusRequest
		setupMock func(f *roomServiceFixture)
		wantErr   func(t *testing.T, err error)
	}{
		{
			name: "override to any status is recorded with the actor",
			id:   "room-id",
			req:  dto.OverrideStatusRequest{Status: model.StatusCleaning},
			setupMock: func(f *roomServiceFixture) {
				f.passThroughTx()

				f.repo.EXPECT().
					LockTx(gomock.Any(), gomock.Any(), "room-id").
					Return(model.RoomWithType{
						Room: model.Room{ID: "room-id", Status: model.StatusBooked},
					}, nil)

				f.ledger.EXPECT().
					TransitionTx(gomock.Any(), gomock.Any(), "room-id", model.StatusBooked, model.StatusCleaning, "admin-id").
					Return(nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "unknown status rejected before locking",
			id:   "room-id",
			req:  dto.OverrideStatusRequest{Status: "demolished"},
			setupMock: func(f *roomServiceFixture) {},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, failure.IsBadRequest(err))
			},
		},
		{
			name: "room not found",
			id:   "missing-id",
			req:  dto.OverrideStatusRequest{Status: model.StatusFree},
			setupMock: func(f *roomServiceFixture) {
				f.passThroughTx()

				f.repo.EXPECT().
					LockTx(gomock.Any(), gomock.Any(), "missing-id").
					Return(model.RoomWithType{}, nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, failure.IsNotFound(err))
			},
		},
		{
			name: "ledger error rolls up",
			id:   "room-id",
			req:  dto.OverrideStatusRequest{Status: model.StatusFree},
			setupMock: func(f *roomServiceFixture) {
				f.passThroughTx()

				f.repo.EXPECT().
					LockTx(gomock.Any(), gomock.Any(), "room-id").
					Return(model.RoomWithType{
						Room: model.Room{ID: "room-id", Status: model.StatusBooked},
					}, nil)

				f.ledger.EXPECT().
					TransitionTx(gomock.Any(), gomock.Any(), "room-id", model.StatusBooked, model.StatusFree, "admin-id").
					Return(errors.New("database error"))
			},
			wantErr: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.False(t, failure.IsNotFound(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomServiceFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, "admin-id")
			err := f.svc.OverrideStatus(ctx, tt.id, tt.req)

			tt.wantErr(t, err)
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name           string
		dropOrphanType bool
		setupMock      func(f *roomServiceFixture)
		wantErr        bool
	}{
		{
			name:           "plain delete leaves the type alone",
			dropOrphanType: false,
			setupMock: func(f *roomServiceFixture) {
				f.passThroughTx()

				f.repo.EXPECT().
					LockTx(gomock.Any(), gomock.Any(), "room-id").
					Return(model.RoomWithType{
						Room: model.Room{ID: "room-id", TypeID: "type-id"},
					}, nil)

				f.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), "room-id").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:           "orphaned type is pruned",
			dropOrphanType: true,
			setupMock: func(f *roomServiceFixture) {
				f.passThroughTx()

				f.repo.EXPECT().
					LockTx(gomock.Any(), gomock.Any(), "room-id").
					Return(model.RoomWithType{
						Room: model.Room{ID: "room-id", TypeID: "type-id"},
					}, nil)

				f.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), "room-id").
					Return(nil)

				f.repo.EXPECT().
					CountByTypeTx(gomock.Any(), gomock.Any(), "type-id").
					Return(0, nil)

				f.typeRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), "type-id").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:           "type with remaining rooms survives",
			dropOrphanType: true,
			setupMock: func(f *roomServiceFixture) {
				f.passThroughTx()

				f.repo.EXPECT().
					LockTx(gomock.Any(), gomock.Any(), "room-id").
					Return(model.RoomWithType{
						Room: model.Room{ID: "room-id", TypeID: "type-id"},
					}, nil)

				f.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), "room-id").
					Return(nil)

				f.repo.EXPECT().
					CountByTypeTx(gomock.Any(), gomock.Any(), "type-id").
					Return(2, nil)
			},
			wantErr: false,
		},
		{
			name:           "room not found",
			dropOrphanType: false,
			setupMock: func(f *roomServiceFixture) {
				f.passThroughTx()

				f.repo.EXPECT().
					LockTx(gomock.Any(), gomock.Any(), "room-id").
					Return(model.RoomWithType{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomServiceFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "room-id", tt.dropOrphanType)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_History(t *testing.T) {
	f := newRoomServiceFixture(t)

	f.repo.EXPECT().
		GetByID(gomock.Any(), "room-id").
		Return(model.RoomWithType{Room: model.Room{ID: "room-id"}}, nil)

	f.ledger.EXPECT().
		History(gomock.Any(), "room-id").
		Return([]model.StatusHistory{
			{ID: "h2", RoomID: "room-id", OldStatus: model.StatusBooked, NewStatus: model.StatusCleaning},
			{ID: "h1", RoomID: "room-id", OldStatus: model.StatusFree, NewStatus: model.StatusBooked},
		}, nil)

	res, err := f.svc.History(context.Background(), "room-id")

	assert.NoError(t, err)
	assert.Len(t, res.History, 2)
	assert.Equal(t, model.StatusCleaning, res.History[0].NewStatus)
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(f *roomServiceFixture)
		wantErr   bool
	}{
		{
			name: "cache miss, found in db",
			id:   "room-id",
			setupMock: func(f *roomServiceFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetByID(gomock.Any(), "room-id").
					Return(model.RoomWithType{
						Room:     model.Room{ID: "room-id", Number: "101"},
						TypeName: "Standard",
					}, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMock: func(f *roomServiceFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetByID(gomock.Any(), "missing-id").
					Return(model.RoomWithType{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomServiceFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
