package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"gostitut/infras/otel"
	"gostitut/internal/domains/admin/model/dto"
	"gostitut/internal/domains/admin/repository"
	"gostitut/shared/constant"
	"gostitut/shared/credential"
	"gostitut/shared/failure"
)

type Admin interface {
	Verify(ctx context.Context, req dto.LoginRequest) (dto.AdminResponse, error)
}

type serviceImpl struct {
	repo repository.Admin
	otel otel.Otel
}

func New(repo repository.Admin, otel otel.Otel) Admin {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Verify checks the credentials against the stored hash. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *serviceImpl) Verify(ctx context.Context, req dto.LoginRequest) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return res, failure.Unauthorized("invalid credentials") //nolint:wrapcheck
	}

	if err = credential.Verify(req.Password, admin.PasswordHash); err != nil {
		return res, failure.Unauthorized("invalid credentials") //nolint:wrapcheck
	}

	res.FromModel(admin)

	return res, nil
}
