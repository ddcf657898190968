package models

// Role is the single authoritative role stored on a local user record.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleMedecin  Role = "MEDECIN"
	RoleEtudiant Role = "ETUDIANT"
)

func Roles() []Role {
	return []Role{RoleAdmin, RoleMedecin, RoleEtudiant}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMedecin, RoleEtudiant:
		return true
	}
	return false
}

// Profession is a doctor's clinical specialty. It doubles as the tag for
// which department currently owns a patient (Patient.State).
type Profession string

const (
	ProfessionParodontaire  Profession = "PARODONTAIRE"
	ProfessionOrthodontaire Profession = "ORTHODONTAIRE"
)

func Professions() []Profession {
	return []Profession{ProfessionParodontaire, ProfessionOrthodontaire}
}

func (p Profession) Valid() bool {
	return p == ProfessionParodontaire || p == ProfessionOrthodontaire
}

// ActionType tags a transfer audit record with its direction.
type ActionType string

const (
	ActionTransferOrtho ActionType = "TRANSFER_ORTHO"
	ActionTransferParo  ActionType = "TRANSFER_PARO"
)

func (a ActionType) Valid() bool {
	return a == ActionTransferOrtho || a == ActionTransferParo
}

// TargetState returns the department a transfer of this type moves the
// patient into.
func (a ActionType) TargetState() Profession {
	if a == ActionTransferOrtho {
		return ProfessionOrthodontaire
	}
	return ProfessionParodontaire
}

type SeanceType string

const (
	SeanceDetartrage        SeanceType = "DETARTRAGE"
	SeanceSurfacage         SeanceType = "SURFACAGE"
	SeanceReevaluation      SeanceType = "REEVALUATION"
	SeanceActivation        SeanceType = "ACTIVATION"
	SeanceDebutDeTraitement SeanceType = "DEBUT_DE_TRAITEMENT"
	SeanceFinDeTraitement   SeanceType = "FIN_DE_TRAITEMENT"
	SeanceSuiviPostTrait    SeanceType = "SUIVI_POST_TRAITEMENT"
	SeanceAutre             SeanceType = "AUTRE"
)

func SeanceTypes() []SeanceType {
	return []SeanceType{
		SeanceDetartrage,
		SeanceSurfacage,
		SeanceReevaluation,
		SeanceActivation,
		SeanceDebutDeTraitement,
		SeanceFinDeTraitement,
		SeanceSuiviPostTrait,
		SeanceAutre,
	}
}

func (s SeanceType) Valid() bool {
	for _, t := range SeanceTypes() {
		if s == t {
			return true
		}
	}
	return false
}

// RequiredProfession returns the profession a department-specific seance
// type is restricted to. Shared types (AUTRE) return false.
func (s SeanceType) RequiredProfession() (Profession, bool) {
	switch s {
	case SeanceDetartrage, SeanceSurfacage, SeanceReevaluation:
		return ProfessionParodontaire, true
	case SeanceActivation, SeanceDebutDeTraitement, SeanceFinDeTraitement, SeanceSuiviPostTrait:
		return ProfessionOrthodontaire, true
	}
	return "", false
}

type MotifConsultation string

const (
	MotifEsthetique    MotifConsultation = "ESTHETIQUE"
	MotifFonctionnelle MotifConsultation = "FONCTIONNELLE"
	MotifAutre         MotifConsultation = "AUTRE"
)

func MotifsConsultation() []MotifConsultation {
	return []MotifConsultation{MotifEsthetique, MotifFonctionnelle, MotifAutre}
}

func (m MotifConsultation) Valid() bool {
	return m == MotifEsthetique || m == MotifFonctionnelle || m == MotifAutre
}

type HygieneBuccoDentaire string

const (
	HygieneBonne    HygieneBuccoDentaire = "BONNE"
	HygieneMoyenne  HygieneBuccoDentaire = "MOYENNE"
	HygieneMauvaise HygieneBuccoDentaire = "MAUVAISE"
)

func HygieneLevels() []HygieneBuccoDentaire {
	return []HygieneBuccoDentaire{HygieneBonne, HygieneMoyenne, HygieneMauvaise}
}

func (h HygieneBuccoDentaire) Valid() bool {
	return h == HygieneBonne || h == HygieneMoyenne || h == HygieneMauvaise
}

type TypeMastication string

const (
	MasticationUnilaterale TypeMastication = "UNILATERALE"
	MasticationBilaterale  TypeMastication = "BILATERALE"
)

func MasticationTypes() []TypeMastication {
	return []TypeMastication{MasticationUnilaterale, MasticationBilaterale}
}

func (t TypeMastication) Valid() bool {
	return t == MasticationUnilaterale || t == MasticationBilaterale
}

type NotificationEventType string

const (
	NotificationPatientAssigned    NotificationEventType = "PATIENT_ASSIGNED"
	NotificationPatientTransferred NotificationEventType = "PATIENT_TRANSFERRED"
	NotificationPatientReevaluated NotificationEventType = "PATIENT_REEVALUATED"
)
