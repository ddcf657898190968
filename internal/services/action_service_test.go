package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/codinghaytam/medical-registry-api/internal/events"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func seedPatient(repo *mockRepository, state models.Profession) *models.Patient {
	patient := &models.Patient{
		Nom:                  "Alaoui",
		Prenom:               "Sara",
		NumeroDeDossier:      "D-" + string(state),
		MotifConsultation:    models.MotifEsthetique,
		HygieneBuccoDentaire: models.HygieneMoyenne,
		TypeMastication:      models.MasticationBilaterale,
		State:                state,
	}
	_ = repo.Patient().Create(context.Background(), nil, patient)
	return patient
}

func seedMedecin(repo *mockRepository, profession models.Profession, userID string) *models.Medecin {
	medecin := &models.Medecin{
		UserID:     userID,
		Profession: profession,
	}
	_ = repo.Medecin().Create(context.Background(), nil, medecin)
	return medecin
}

func TestActionService_RequestTransfer(t *testing.T) {
	logger := newTestLogger()
	ctx := context.Background()

	setup := func() (*mockRepository, *events.MockEventPublisher, ActionService) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		notifier := NewNotificationService(repo, nil, logger, publisher)
		service := NewActionService(repo, nil, logger, validator.New(), notifier)
		return repo, publisher, service
	}

	t.Run("Creates_Pending_Action_And_Moves_Patient", func(t *testing.T) {
		repo, publisher, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)
		requester := seedMedecin(repo, models.ProfessionParodontaire, "user-paro")
		seedMedecin(repo, models.ProfessionOrthodontaire, "user-ortho-1")
		seedMedecin(repo, models.ProfessionOrthodontaire, "user-ortho-2")

		action, err := service.RequestTransfer(ctx, patient.ID, requester.ID, models.ActionTransferOrtho)
		if err != nil {
			t.Fatalf("RequestTransfer failed: %v", err)
		}

		if action.IsValid {
			t.Error("A freshly requested transfer must be pending, got IsValid=true")
		}
		if action.Type != models.ActionTransferOrtho {
			t.Errorf("Expected type TRANSFER_ORTHO, got %s", action.Type)
		}

		stored, err := repo.Patient().GetByID(ctx, nil, patient.ID)
		if err != nil {
			t.Fatalf("Failed to reload patient: %v", err)
		}
		if stored.State != models.ProfessionOrthodontaire {
			t.Errorf("Expected patient state ORTHODONTAIRE, got %s", stored.State)
		}

		// Both orthodontists get notified, the requester does not.
		published := publisher.GetPublishedEvents()
		if len(published) != 2 {
			t.Fatalf("Expected 2 notification events, got %d", len(published))
		}
		for _, event := range published {
			if event.EventType != models.NotificationPatientTransferred {
				t.Errorf("Expected PATIENT_TRANSFERRED event, got %s", event.EventType)
			}
			if event.UserID == "user-paro" {
				t.Error("The requesting department must not be notified")
			}
		}

		count, err := repo.Notification().CountUnread(ctx, nil, "user-ortho-1")
		if err != nil {
			t.Fatalf("CountUnread failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 persisted notification for user-ortho-1, got %d", count)
		}
	})

	t.Run("Publish_Failure_Does_Not_Fail_Transfer", func(t *testing.T) {
		repo, publisher, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)
		requester := seedMedecin(repo, models.ProfessionParodontaire, "user-paro")
		seedMedecin(repo, models.ProfessionOrthodontaire, "user-ortho")

		publisher.FailWith(errors.New("broker down"))

		action, err := service.RequestTransfer(ctx, patient.ID, requester.ID, models.ActionTransferOrtho)
		if err != nil {
			t.Fatalf("RequestTransfer must survive a publish failure: %v", err)
		}
		if action == nil {
			t.Fatal("Expected an action despite the publish failure")
		}

		// The notification row is still persisted.
		count, err := repo.Notification().CountUnread(ctx, nil, "user-ortho")
		if err != nil {
			t.Fatalf("CountUnread failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected the notification row to be persisted, got %d rows", count)
		}
	})

	t.Run("Patient_Not_Found", func(t *testing.T) {
		repo, _, service := setup()
		requester := seedMedecin(repo, models.ProfessionParodontaire, "user-paro")

		_, err := service.RequestTransfer(ctx, "missing", requester.ID, models.ActionTransferOrtho)
		if !errors.Is(err, ErrPatientNotFound) {
			t.Errorf("Expected ErrPatientNotFound, got %v", err)
		}
	})

	t.Run("Medecin_Not_Found", func(t *testing.T) {
		repo, _, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)

		_, err := service.RequestTransfer(ctx, patient.ID, "missing", models.ActionTransferOrtho)
		if !errors.Is(err, ErrMedecinNotFound) {
			t.Errorf("Expected ErrMedecinNotFound, got %v", err)
		}
	})
}

func TestActionService_ValidateTransfer(t *testing.T) {
	logger := newTestLogger()
	ctx := context.Background()

	setup := func() (*mockRepository, ActionService) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		notifier := NewNotificationService(repo, nil, logger, publisher)
		service := NewActionService(repo, nil, logger, validator.New(), notifier)
		return repo, service
	}

	t.Run("Validates_Pending_Transfer", func(t *testing.T) {
		repo, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)
		requester := seedMedecin(repo, models.ProfessionParodontaire, "user-paro")
		seedMedecin(repo, models.ProfessionOrthodontaire, "user-ortho")

		pending, err := service.RequestTransfer(ctx, patient.ID, requester.ID, models.ActionTransferOrtho)
		if err != nil {
			t.Fatalf("RequestTransfer failed: %v", err)
		}

		validated, err := service.ValidateTransfer(ctx, pending.ID, models.ActionTransferOrtho)
		if err != nil {
			t.Fatalf("ValidateTransfer failed: %v", err)
		}
		if !validated.IsValid {
			t.Error("Expected the action to be valid after validation")
		}

		stored, err := repo.Patient().GetByID(ctx, nil, patient.ID)
		if err != nil {
			t.Fatalf("Failed to reload patient: %v", err)
		}
		if stored.State != models.ProfessionOrthodontaire {
			t.Errorf("Expected patient state ORTHODONTAIRE, got %s", stored.State)
		}
	})

	t.Run("Type_Mismatch", func(t *testing.T) {
		repo, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)
		requester := seedMedecin(repo, models.ProfessionParodontaire, "user-paro")

		pending, err := service.RequestTransfer(ctx, patient.ID, requester.ID, models.ActionTransferOrtho)
		if err != nil {
			t.Fatalf("RequestTransfer failed: %v", err)
		}

		_, err = service.ValidateTransfer(ctx, pending.ID, models.ActionTransferParo)
		if !errors.Is(err, ErrActionTypeMismatch) {
			t.Errorf("Expected ErrActionTypeMismatch, got %v", err)
		}

		stored, _ := repo.Action().GetByID(ctx, nil, pending.ID)
		if stored.IsValid {
			t.Error("A mismatched validation must leave the action pending")
		}
	})

	t.Run("Already_Validated", func(t *testing.T) {
		repo, service := setup()
		patient := seedPatient(repo, models.ProfessionParodontaire)
		requester := seedMedecin(repo, models.ProfessionParodontaire, "user-paro")

		pending, err := service.RequestTransfer(ctx, patient.ID, requester.ID, models.ActionTransferOrtho)
		if err != nil {
			t.Fatalf("RequestTransfer failed: %v", err)
		}

		if _, err := service.ValidateTransfer(ctx, pending.ID, models.ActionTransferOrtho); err != nil {
			t.Fatalf("First validation failed: %v", err)
		}
		_, err = service.ValidateTransfer(ctx, pending.ID, models.ActionTransferOrtho)
		if !errors.Is(err, ErrActionAlreadyValidated) {
			t.Errorf("Expected ErrActionAlreadyValidated, got %v", err)
		}
	})

	t.Run("Action_Not_Found", func(t *testing.T) {
		_, service := setup()

		_, err := service.ValidateTransfer(ctx, "missing", models.ActionTransferOrtho)
		if !errors.Is(err, ErrActionNotFound) {
			t.Errorf("Expected ErrActionNotFound, got %v", err)
		}
	})
}
