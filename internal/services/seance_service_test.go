package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

func TestSeanceService_Create(t *testing.T) {
	logger := newTestLogger()
	ctx := context.Background()

	setup := func() (*mockRepository, SeanceService) {
		repo := newMockRepository()
		service := NewSeanceService(repo, nil, logger, validator.New())
		return repo, service
	}

	request := func(seanceType models.SeanceType, patientID, medecinID string) *validator.SeanceCreateRequest {
		return &validator.SeanceCreateRequest{
			Type:      seanceType,
			Date:      time.Now(),
			PatientID: patientID,
			MedecinID: medecinID,
		}
	}

	t.Run("Accepts_Matching_Profession", func(t *testing.T) {
		repo, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)
		paro := seedMedecin(repo, models.ProfessionParodontaire, "user-paro")

		seance, err := service.Create(ctx, request(models.SeanceDetartrage, patient.ID, paro.ID))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seance.Type != models.SeanceDetartrage {
			t.Errorf("Expected type DETARTRAGE, got %s", seance.Type)
		}
	})

	t.Run("Rejects_Wrong_Profession", func(t *testing.T) {
		repo, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)
		ortho := seedMedecin(repo, models.ProfessionOrthodontaire, "user-ortho")

		_, err := service.Create(ctx, request(models.SeanceDetartrage, patient.ID, ortho.ID))

		var profErr *SeanceProfessionError
		if !errors.As(err, &profErr) {
			t.Fatalf("Expected SeanceProfessionError, got %v", err)
		}
		if profErr.Required != models.ProfessionParodontaire {
			t.Errorf("Expected required profession PARODONTAIRE, got %s", profErr.Required)
		}
		// The message names the required profession.
		if !strings.Contains(err.Error(), string(models.ProfessionParodontaire)) {
			t.Errorf("Error message must name the required profession: %q", err.Error())
		}
	})

	t.Run("Unrestricted_Type_Accepts_Any_Profession", func(t *testing.T) {
		repo, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)
		ortho := seedMedecin(repo, models.ProfessionOrthodontaire, "user-ortho")

		if _, err := service.Create(ctx, request(models.SeanceAutre, patient.ID, ortho.ID)); err != nil {
			t.Fatalf("AUTRE must be open to both professions: %v", err)
		}
	})
}

func TestSeanceService_Update(t *testing.T) {
	logger := newTestLogger()
	ctx := context.Background()

	repo := newMockRepository()
	service := NewSeanceService(repo, nil, logger, validator.New())
	patient := seedPatient(repo, models.ProfessionParodontaire)
	paro := seedMedecin(repo, models.ProfessionParodontaire, "user-paro")
	ortho := seedMedecin(repo, models.ProfessionOrthodontaire, "user-ortho")

	seance, err := service.Create(ctx, &validator.SeanceCreateRequest{
		Type:      models.SeanceDetartrage,
		Date:      time.Now(),
		PatientID: patient.ID,
		MedecinID: paro.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Reassigning a periodontal seance to an orthodontist must fail the same
	// profession check as creation.
	_, err = service.Update(ctx, seance.ID, &validator.SeanceUpdateRequest{MedecinID: &ortho.ID})
	if !IsSeanceProfessionError(err) {
		t.Fatalf("Expected SeanceProfessionError, got %v", err)
	}

	// Switching the type to an orthodontic one alongside the doctor is fine.
	activation := models.SeanceActivation
	updated, err := service.Update(ctx, seance.ID, &validator.SeanceUpdateRequest{
		Type:      &activation,
		MedecinID: &ortho.ID,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.MedecinID != ortho.ID || updated.Type != models.SeanceActivation {
		t.Error("Expected the seance to carry the new type and doctor")
	}
}
