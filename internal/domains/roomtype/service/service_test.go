package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gostitut/config"
	"gostitut/infras/otel/mocks"
	roomTypeMocks "gostitut/internal/domains/roomtype/mocks"
	"gostitut/internal/domains/roomtype/model"
	"gostitut/internal/domains/roomtype/model/dto"
	"gostitut/internal/domains/roomtype/service"
	cacheMocks "gostitut/shared/cache/mocks"
	gDto "gostitut/shared/dto"
	"gostitut/shared/failure"
)

func TestRoomTypeService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomTypeMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateRoomTypeRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateRoomTypeRequest{
				Name:      "Deluxe",
				BasePrice: 150,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateRoomTypeRequest{
				Name:      "Deluxe",
				BasePrice: 150,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, tt.req.Name, res.Name)
			}
		})
	}
}

func TestRoomTypeService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomTypeMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	roomType := model.RoomType{
		ID:        "test-id",
		Name:      "Standard",
		BasePrice: 100,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "test-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			wantID:  "",
		},
		{
			name: "cache miss, successful get from db",
			id:   "test-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetByID(gomock.Any(), "test-id").
					Return(roomType, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "test-id",
		},
		{
			name: "cache miss, not found",
			id:   "missing-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetByID(gomock.Any(), "missing-id").
					Return(model.RoomType{}, nil)
			},
			wantErr: true,
		},
		{
			name: "cache miss, repository error",
			id:   "test-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					GetByID(gomock.Any(), "test-id").
					Return(model.RoomType{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, res.ID)
			}
		})
	}
}

func TestRoomTypeService_GetNotFoundCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomTypeMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		GetByID(gomock.Any(), "missing-id").
		Return(model.RoomType{}, nil)

	_, err := svc.Get(context.Background(), "missing-id")

	assert.True(t, failure.IsNotFound(err))
}

func TestRoomTypeService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomTypeMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name       string
		params     gDto.QueryParams
		setupMock  func()
		wantErr    bool
		wantResult dto.GetRoomTypesResponse
	}{
		{
			name: "successful get all",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any()).
					Return(1, nil)

				roomTypes := []model.RoomType{
					{
						ID:        "test-id",
						Name:      "Standard",
						BasePrice: 100,
					},
				}

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any()).
					Return(roomTypes, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantResult: dto.GetRoomTypesResponse{
				TotalData: 1,
				TotalPage: 1,
			},
		},
		{
			name: "count error",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
		{
			name: "get all error",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("get all error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult.TotalData, result.TotalData)
				assert.Equal(t, tt.wantResult.TotalPage, result.TotalPage)
			}
		})
	}
}

func TestRoomTypeService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomTypeMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	newPrice := 175.0

	tests := []struct {
		name      string
		req       dto.UpdateRoomTypeRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful update",
			req: dto.UpdateRoomTypeRequest{
				Name:      "Deluxe",
				BasePrice: &newPrice,
			},
			id: "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "test-id").
					Return(model.RoomType{ID: "test-id", Name: "Standard", BasePrice: 100}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rt model.RoomType) error {
						assert.Equal(t, "Deluxe", rt.Name)
						assert.Equal(t, newPrice, rt.BasePrice)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "price left unchanged when omitted",
			req: dto.UpdateRoomTypeRequest{
				Name: "Standard Plus",
			},
			id: "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "test-id").
					Return(model.RoomType{ID: "test-id", Name: "Standard", BasePrice: 100}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rt model.RoomType) error {
						assert.Equal(t, 100.0, rt.BasePrice)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "not found",
			req: dto.UpdateRoomTypeRequest{
				Name: "Deluxe",
			},
			id: "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "missing-id").
					Return(model.RoomType{}, nil)
			},
			wantErr: true,
		},
		{
			name: "update error",
			req: dto.UpdateRoomTypeRequest{
				Name: "Deluxe",
			},
			id: "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "test-id").
					Return(model.RoomType{ID: "test-id"}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(context.Background(), tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomTypeService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomTypeMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful delete",
			id:   "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "test-id").
					Return(model.RoomType{ID: "test-id"}, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), "test-id").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "missing-id").
					Return(model.RoomType{}, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			id:   "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "test-id").
					Return(model.RoomType{ID: "test-id"}, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), "test-id").
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
