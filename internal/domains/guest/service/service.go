package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"gostitut/infras/otel"
	"gostitut/internal/domains/guest/model"
	"gostitut/internal/domains/guest/model/dto"
	"gostitut/internal/domains/guest/repository"
	"gostitut/shared/constant"
	gDto "gostitut/shared/dto"
	"gostitut/shared/envelope"
	"gostitut/shared/failure"
)

// Guest manages guest records. Passports are held encrypted; display reads
// degrade to a placeholder when decryption fails, Passport propagates the
// failure so callers that need the real value can tell the difference.
type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (dto.GuestResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetGuestsResponse, error)
	Update(ctx context.Context, req dto.UpdateGuestRequest, id string) error
	Delete(ctx context.Context, id string) error
	Passport(ctx context.Context, id string) (string, error)
	Report(ctx context.Context, id string) (dto.GuestReportResponse, error)
}

type serviceImpl struct {
	repo   repository.Guest
	cipher *envelope.Cipher
	otel   otel.Otel
}

func New(repo repository.Guest, cipher *envelope.Cipher, otel otel.Otel) Guest {
	return &serviceImpl{
		repo:   repo,
		cipher: cipher,
		otel:   otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest := req.ToModel()

	if req.Passport != constant.Empty {
		nonce, ciphertext, err := s.cipher.Encrypt([]byte(req.Passport))
		if err != nil {
			log.Error().Err(err).Msg("failed to encrypt passport")

			return res, fmt.Errorf("failed to encrypt passport: %w", err)
		}

		guest.PassportNonce = nonce
		guest.PassportCiphertext = ciphertext
	}

	if err = s.repo.Insert(ctx, guest); err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return res, fmt.Errorf("failed to create guest: %w", err)
	}

	res.FromModel(guest, req.Passport)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound("guest") //nolint:wrapcheck
	}

	res.FromModel(guest, s.displayPassport(guest))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	guests, err := s.repo.GetAll(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	passports := make([]string, len(guests))
	for i, guest := range guests {
		passports[i] = s.displayPassport(guest)
	}

	res.FromModels(guests, passports, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGuestRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return failure.NotFound("guest") //nolint:wrapcheck
	}

	guest.FirstName = req.FirstName
	guest.LastName = req.LastName
	guest.Phone = req.Phone
	guest.Email = req.Email
	guest.DiscountPercent = req.DiscountPercent

	// An empty passport clears the envelope, a non-empty one replaces it
	// under a fresh nonce.
	if req.Passport == constant.Empty {
		guest.PassportNonce = nil
		guest.PassportCiphertext = nil
	} else {
		nonce, ciphertext, err := s.cipher.Encrypt([]byte(req.Passport))
		if err != nil {
			log.Error().Err(err).Msg("failed to encrypt passport")

			return fmt.Errorf("failed to encrypt passport: %w", err)
		}

		guest.PassportNonce = nonce
		guest.PassportCiphertext = ciphertext
	}

	if err = s.repo.Update(ctx, guest); err != nil {
		log.Error().Err(err).Msg("failed to update guest")

		return fmt.Errorf("failed to update guest: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return failure.NotFound("guest") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete guest")

		return fmt.Errorf("failed to delete guest: %w", err)
	}

	return nil
}

// Passport returns the authoritative plaintext. Unlike display reads it does
// not substitute a placeholder on failure.
func (s *serviceImpl) Passport(ctx context.Context, id string) (passport string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Passport")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return constant.Empty, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return constant.Empty, failure.NotFound("guest") //nolint:wrapcheck
	}

	if !guest.HasPassport() {
		return constant.Empty, nil
	}

	plaintext, err := s.cipher.Decrypt(guest.PassportNonce, guest.PassportCiphertext)
	if err != nil {
		log.Error().Err(err).Str("guest_id", id).Msg("failed to decrypt passport")

		return constant.Empty, fmt.Errorf("failed to decrypt passport: %w", err)
	}

	return string(plaintext), nil
}

// Report assembles the raw projection a document generator renders from:
// identity, passport state, and the stay history with room numbers.
func (s *serviceImpl) Report(ctx context.Context, id string) (res dto.GuestReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Report")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound("guest") //nolint:wrapcheck
	}

	passport := constant.Empty
	passportOK := true

	if guest.HasPassport() {
		plaintext, err := s.cipher.Decrypt(guest.PassportNonce, guest.PassportCiphertext)
		if err != nil {
			log.Error().Err(err).Str("guest_id", id).Msg("failed to decrypt passport for report")

			passport = model.PassportUnavailable
			passportOK = false
		} else {
			passport = string(plaintext)
		}
	}

	bookings, err := s.repo.BookingHistory(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking history")

		return res, fmt.Errorf("failed to get booking history: %w", err)
	}

	res.FromModels(guest, passport, passportOK, bookings)

	return res, nil
}

func (s *serviceImpl) displayPassport(guest model.Guest) string {
	if !guest.HasPassport() {
		return constant.Empty
	}

	plaintext, err := s.cipher.Decrypt(guest.PassportNonce, guest.PassportCiphertext)
	if err != nil {
		log.Error().Err(err).Str("guest_id", guest.ID).Msg("failed to decrypt passport for display")

		return model.PassportUnavailable
	}

	return string(plaintext)
}
