package services

import (
	"errors"
	"fmt"

	"github.com/codinghaytam/medical-registry-api/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrMedecinNotFound      = errors.New("medecin not found")
	ErrEtudiantNotFound     = errors.New("etudiant not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPatientExists        = errors.New("patient with this dossier number already exists")
	ErrActionNotFound       = errors.New("action not found")
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrDiagnosticNotFound   = errors.New("diagnostic not found")
	ErrSeanceNotFound       = errors.New("seance not found")
	ErrReevaluationNotFound = errors.New("reevaluation not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// Transfer workflow
	ErrActionTypeMismatch     = errors.New("action type does not match the expected transfer direction")
	ErrActionAlreadyValidated = errors.New("transfer has already been validated")

	// Consultation diagnosis rules
	ErrDiagnosticLimitReached    = errors.New("consultation already has two diagnostics")
	ErrDiagnosticProfessionTaken = errors.New("consultation already has a diagnostic from this profession")

	// Reevaluation uploads
	ErrInvalidPhotoType = errors.New("photo must be a JPEG or PNG image")
	ErrPhotoTooLarge    = errors.New("photo exceeds the maximum upload size")
)

// SeanceProfessionError reports a department-specific seance type assigned to
// a doctor of the wrong profession. The message names the required
// profession.
type SeanceProfessionError struct {
	SeanceType models.SeanceType
	Required   models.Profession
	Actual     models.Profession
}

func (e *SeanceProfessionError) Error() string {
	return fmt.Sprintf("seance type %s requires a %s doctor, got %s", e.SeanceType, e.Required, e.Actual)
}

// IsSeanceProfessionError reports whether err is a profession mismatch.
func IsSeanceProfessionError(err error) bool {
	var target *SeanceProfessionError
	return errors.As(err, &target)
}
