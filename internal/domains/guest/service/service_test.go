package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "gostitut/infras/otel/mocks"
	guestMocks "gostitut/internal/domains/guest/mocks"
	"gostitut/internal/domains/guest/model"
	"gostitut/internal/domains/guest/model/dto"
	"gostitut/internal/domains/guest/service"
	"gostitut/shared/envelope"
	"gostitut/shared/failure"
)

func newTestCipher(t *testing.T) *envelope.Cipher {
	t.Helper()

	key := bytes.Repeat([]byte{0x42}, envelope.KeySize)

	cipher, err := envelope.NewCipher(key)
	require.NoError(t, err)

	return cipher
}

func encryptedGuest(t *testing.T, cipher *envelope.Cipher, passport string) model.Guest {
	t.Helper()

	nonce, ciphertext, err := cipher.Encrypt([]byte(passport))
	require.NoError(t, err)

	return model.Guest{
		ID:                 "guest-id",
		FirstName:          "Ivan",
		LastName:           "Petrov",
		PassportCiphertext: ciphertext,
		PassportNonce:      nonce,
		DiscountPercent:    10,
	}
}

func TestGuestService_CreateStoresEnvelope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	cipher := newTestCipher(t)

	svc := service.New(mockRepo, cipher, otelMocks.NewOtel())

	var stored model.Guest

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, guest model.Guest) error {
			stored = guest
			return nil
		})

	res, err := svc.Create(context.Background(), dto.CreateGuestRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Passport:  "AB1234567",
	})

	assert.NoError(t, err)
	assert.Equal(t, "AB1234567", res.Passport)

	assert.True(t, stored.HasPassport())
	assert.NotContains(t, string(stored.PassportCiphertext), "AB1234567")

	plaintext, err := cipher.Decrypt(stored.PassportNonce, stored.PassportCiphertext)
	assert.NoError(t, err)
	assert.Equal(t, "AB1234567", string(plaintext))
}

func TestGuestService_CreateWithoutPassport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)

	svc := service.New(mockRepo, newTestCipher(t), otelMocks.NewOtel())

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, guest model.Guest) error {
			assert.False(t, guest.HasPassport())
			return nil
		})

	_, err := svc.Create(context.Background(), dto.CreateGuestRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
	})

	assert.NoError(t, err)
}

func TestGuestService_GetDegradesOnTamper(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	cipher := newTestCipher(t)

	svc := service.New(mockRepo, cipher, otelMocks.NewOtel())

	guest := encryptedGuest(t, cipher, "AB1234567")
	guest.PassportCiphertext[0] ^= 0x01

	mockRepo.EXPECT().
		GetByID(gomock.Any(), "guest-id").
		Return(guest, nil)

	res, err := svc.Get(context.Background(), "guest-id")

	assert.NoError(t, err)
	assert.Equal(t, model.PassportUnavailable, res.Passport)
}

func TestGuestService_PassportPropagatesCryptoFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	cipher := newTestCipher(t)

	svc := service.New(mockRepo, cipher, otelMocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		want      string
		wantErr   error
	}{
		{
			name: "intact envelope decrypts",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "guest-id").
					Return(encryptedGuest(t, cipher, "AB1234567"), nil)
			},
			want: "AB1234567",
		},
		{
			name: "tampered envelope fails closed",
			setupMock: func() {
				guest := encryptedGuest(t, cipher, "AB1234567")
				guest.PassportNonce[0] ^= 0x01

				mockRepo.EXPECT().
					GetByID(gomock.Any(), "guest-id").
					Return(guest, nil)
			},
			wantErr: envelope.ErrAuthentication,
		},
		{
			name: "no passport stored",
			setupMock: func() {
				mockRepo.EXPECT().
					GetByID(gomock.Any(), "guest-id").
					Return(model.Guest{ID: "guest-id"}, nil)
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			passport, err := svc.Passport(context.Background(), "guest-id")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, passport)
			}
		})
	}
}

func TestGuestService_UpdateClearsPassport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	cipher := newTestCipher(t)

	svc := service.New(mockRepo, cipher, otelMocks.NewOtel())

	mockRepo.EXPECT().
		GetByID(gomock.Any(), "guest-id").
		Return(encryptedGuest(t, cipher, "AB1234567"), nil)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, guest model.Guest) error {
			assert.Nil(t, guest.PassportCiphertext)
			assert.Nil(t, guest.PassportNonce)
			return nil
		})

	err := svc.Update(context.Background(), dto.UpdateGuestRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
	}, "guest-id")

	assert.NoError(t, err)
}

func TestGuestService_UpdateRotatesNonce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	cipher := newTestCipher(t)

	svc := service.New(mockRepo, cipher, otelMocks.NewOtel())

	existing := encryptedGuest(t, cipher, "AB1234567")
	oldNonce := append([]byte(nil), existing.PassportNonce...)

	mockRepo.EXPECT().
		GetByID(gomock.Any(), "guest-id").
		Return(existing, nil)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, guest model.Guest) error {
			assert.NotEqual(t, oldNonce, guest.PassportNonce)

			plaintext, err := cipher.Decrypt(guest.PassportNonce, guest.PassportCiphertext)
			assert.NoError(t, err)
			assert.Equal(t, "AB1234567", string(plaintext))
			return nil
		})

	err := svc.Update(context.Background(), dto.UpdateGuestRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Passport:  "AB1234567",
	}, "guest-id")

	assert.NoError(t, err)
}

func TestGuestService_Report(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	cipher := newTestCipher(t)

	svc := service.New(mockRepo, cipher, otelMocks.NewOtel())

	history := []model.ReportBooking{
		{BookingID: "booking-id", RoomNumber: "101", Status: "completed", TotalPrice: 180},
	}

	t.Run("intact passport", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByID(gomock.Any(), "guest-id").
			Return(encryptedGuest(t, cipher, "AB1234567"), nil)

		mockRepo.EXPECT().
			BookingHistory(gomock.Any(), "guest-id").
			Return(history, nil)

		res, err := svc.Report(context.Background(), "guest-id")

		assert.NoError(t, err)
		assert.True(t, res.PassportOK)
		assert.Equal(t, "AB1234567", res.Guest.Passport)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, "101", res.Bookings[0].RoomNumber)
	})

	t.Run("tampered passport flagged, report still produced", func(t *testing.T) {
		guest := encryptedGuest(t, cipher, "AB1234567")
		guest.PassportCiphertext[3] ^= 0x01

		mockRepo.EXPECT().
			GetByID(gomock.Any(), "guest-id").
			Return(guest, nil)

		mockRepo.EXPECT().
			BookingHistory(gomock.Any(), "guest-id").
			Return(history, nil)

		res, err := svc.Report(context.Background(), "guest-id")

		assert.NoError(t, err)
		assert.False(t, res.PassportOK)
		assert.Equal(t, model.PassportUnavailable, res.Guest.Passport)
	})

	t.Run("guest not found", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByID(gomock.Any(), "missing-id").
			Return(model.Guest{}, nil)

		_, err := svc.Report(context.Background(), "missing-id")

		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("history error", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByID(gomock.Any(), "guest-id").
			Return(encryptedGuest(t, cipher, "AB1234567"), nil)

		mockRepo.EXPECT().
			BookingHistory(gomock.Any(), "guest-id").
			Return(nil, errors.New("database error"))

		_, err := svc.Report(context.Background(), "guest-id")

		assert.Error(t, err)
	})
}
