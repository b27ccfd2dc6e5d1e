package residents

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/condostore/pos-backend/internal/storeapi"
	"github.com/condostore/pos-backend/pkg/enums"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

type fakeAPI struct {
	residents []storeapi.ResidentDTO
	listErr   error
	created   *storeapi.CreateResidentInput
	history   []storeapi.HistoryEntryDTO
}

func (f *fakeAPI) ListResidents(ctx context.Context) ([]storeapi.ResidentDTO, error) {
	return f.residents, f.listErr
}

func (f *fakeAPI) CreateResident(ctx context.Context, input storeapi.CreateResidentInput) (*storeapi.ResidentDTO, error) {
	f.created = &input
	return &storeapi.ResidentDTO{ID: "r-new", Name: input.Name, Apartment: input.Apartment}, nil
}

func (f *fakeAPI) ResidentHistory(ctx context.Context, residentID string) ([]storeapi.HistoryEntryDTO, error) {
	return f.history, nil
}

func newService(t *testing.T, api *fakeAPI) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(api, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func sampleResidents() []storeapi.ResidentDTO {
	return []storeapi.ResidentDTO{
		{ID: "r-1", Name: "Maria Silva", Apartment: "101", Block: "A",
			Account: &storeapi.AccountDTO{ID: "a-1", Balance: "-42.00", Status: enums.AccountStatusActive}},
		{ID: "r-2", Name: "Joao Souza", Apartment: "202", Block: "B",
			Account: &storeapi.AccountDTO{ID: "a-2", Balance: "0.00", Status: enums.AccountStatusBlocked}},
		{ID: "r-3", Name: "Ana Pereira", Apartment: "303", Block: "A"},
	}
}

func TestListFiltersByNameOrApartment(t *testing.T) {
	svc := newService(t, &fakeAPI{residents: sampleResidents()})
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("blank query must list all: %v %d", err, len(all))
	}

	byName, err := svc.List(ctx, "silva")
	if err != nil || len(byName) != 1 || byName[0].ID != "r-1" {
		t.Fatalf("name filter failed: %v %+v", err, byName)
	}

	byApartment, err := svc.List(ctx, "202")
	if err != nil || len(byApartment) != 1 || byApartment[0].ID != "r-2" {
		t.Fatalf("apartment filter failed: %v %+v", err, byApartment)
	}
}

func TestCreateTrimsInput(t *testing.T) {
	api := &fakeAPI{}
	svc := newService(t, api)

	created, err := svc.Create(context.Background(), CreateInput{
		Name: "  Maria Silva ", CPF: " 12345678900 ", Apartment: " 101", Block: "A ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "r-new" {
		t.Fatalf("unexpected resident: %+v", created)
	}
	if api.created.Name != "Maria Silva" || api.created.CPF != "12345678900" {
		t.Fatalf("input not trimmed: %+v", api.created)
	}
}

func TestCheckCreditEligible(t *testing.T) {
	svc := newService(t, &fakeAPI{residents: sampleResidents()})
	ctx := context.Background()

	if err := svc.CheckCreditEligible(ctx, "r-1"); err != nil {
		t.Fatalf("active account must be eligible: %v", err)
	}
	if err := svc.CheckCreditEligible(ctx, "r-2"); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("blocked account must be forbidden, got %v", err)
	}
	if err := svc.CheckCreditEligible(ctx, "r-3"); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("missing account must be forbidden, got %v", err)
	}
	if err := svc.CheckCreditEligible(ctx, "ghost"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("unknown resident must be not-found, got %v", err)
	}
	if err := svc.CheckCreditEligible(ctx, "  "); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("blank id must be a validation error, got %v", err)
	}
}
