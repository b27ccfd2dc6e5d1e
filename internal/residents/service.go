package residents

import (
	"context"
	"fmt"
	"strings"

	"github.com/condostore/pos-backend/internal/storeapi"
	"github.com/condostore/pos-backend/pkg/enums"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

type residentAPI interface {
	ListResidents(ctx context.Context) ([]storeapi.ResidentDTO, error)
	CreateResident(ctx context.Context, input storeapi.CreateResidentInput) (*storeapi.ResidentDTO, error)
	ResidentHistory(ctx context.Context, residentID string) ([]storeapi.HistoryEntryDTO, error)
}

// CreateInput is the payload for registering a resident.
type CreateInput struct {
	Name      string `json:"name" validate:"required"`
	CPF       string `json:"cpf" validate:"required,numeric,len=11"`
	Apartment string `json:"apartment" validate:"required"`
	Block     string `json:"block" validate:"required"`
	Phone     string `json:"phone"`
}

// Service proxies the resident directory owned by the settlement backend.
type Service interface {
	List(ctx context.Context, query string) ([]storeapi.ResidentDTO, error)
	Create(ctx context.Context, input CreateInput) (*storeapi.ResidentDTO, error)
	History(ctx context.Context, residentID string) ([]storeapi.HistoryEntryDTO, error)
	CheckCreditEligible(ctx context.Context, residentID string) error
}

type service struct {
	upstream residentAPI
	logg     *logger.Logger
}

// NewService builds the residents service.
func NewService(upstream residentAPI, logg *logger.Logger) (Service, error) {
	if upstream == nil {
		return nil, fmt.Errorf("resident api required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{upstream: upstream, logg: logg}, nil
}

// List returns residents, filtered by a case-insensitive substring on name
// or apartment when a query is given.
func (s *service) List(ctx context.Context, query string) ([]storeapi.ResidentDTO, error) {
	residents, err := s.upstream.ListResidents(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return residents, nil
	}

	filtered := make([]storeapi.ResidentDTO, 0, len(residents))
	for _, resident := range residents {
		if strings.Contains(strings.ToLower(resident.Name), needle) ||
			strings.Contains(strings.ToLower(resident.Apartment), needle) {
			filtered = append(filtered, resident)
		}
	}
	return filtered, nil
}

// Create registers a resident upstream.
func (s *service) Create(ctx context.Context, input CreateInput) (*storeapi.ResidentDTO, error) {
	resident, err := s.upstream.CreateResident(ctx, storeapi.CreateResidentInput{
		Name:      strings.TrimSpace(input.Name),
		CPF:       strings.TrimSpace(input.CPF),
		Apartment: strings.TrimSpace(input.Apartment),
		Block:     strings.TrimSpace(input.Block),
		Phone:     strings.TrimSpace(input.Phone),
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "resident_id", resident.ID), "resident registered")
	return resident, nil
}

// History returns the resident's account statement.
func (s *service) History(ctx context.Context, residentID string) ([]storeapi.HistoryEntryDTO, error) {
	return s.upstream.ResidentHistory(ctx, residentID)
}

// CheckCreditEligible verifies a resident can be billed on credit: they must
// exist and their account must not be blocked.
func (s *service) CheckCreditEligible(ctx context.Context, residentID string) error {
	residentID = strings.TrimSpace(residentID)
	if residentID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "resident id is required")
	}

	residents, err := s.upstream.ListResidents(ctx)
	if err != nil {
		return err
	}
	for _, resident := range residents {
		if resident.ID != residentID {
			continue
		}
		if resident.Account == nil {
			return pkgerrors.New(pkgerrors.CodeForbidden, "resident has no store account")
		}
		if resident.Account.Status == enums.AccountStatusBlocked {
			return pkgerrors.New(pkgerrors.CodeForbidden, "resident account is blocked")
		}
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "resident not found")
}
