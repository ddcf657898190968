package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests. WithTransaction
// runs the callback against the same store without rollback; transactional
// semantics are covered by the sqlite repository tests.
type mockRepository struct {
	mu sync.Mutex

	users         map[string]*models.User
	medecins      map[string]*models.Medecin
	etudiants     map[string]*models.Etudiant
	patients      map[string]*models.Patient
	actions       map[string]*models.Action
	consultations map[string]*models.Consultation
	diagnostics   map[string]*models.Diagnostic
	seances       map[string]*models.Seance
	reevaluations map[string]*models.Reevaluation
	notifications map[string]*models.Notification

	// Error injection points
	failSeanceCreate       error
	failReevaluationCreate error
	failNotificationCreate error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:         make(map[string]*models.User),
		medecins:      make(map[string]*models.Medecin),
		etudiants:     make(map[string]*models.Etudiant),
		patients:      make(map[string]*models.Patient),
		actions:       make(map[string]*models.Action),
		consultations: make(map[string]*models.Consultation),
		diagnostics:   make(map[string]*models.Diagnostic),
		seances:       make(map[string]*models.Seance),
		reevaluations: make(map[string]*models.Reevaluation),
		notifications: make(map[string]*models.Notification),
	}
}

func (m *mockRepository) User() repositories.UserRepository                 { return &mockUserRepo{m} }
func (m *mockRepository) Medecin() repositories.MedecinRepository           { return &mockMedecinRepo{m} }
func (m *mockRepository) Etudiant() repositories.EtudiantRepository         { return &mockEtudiantRepo{m} }
func (m *mockRepository) Patient() repositories.PatientRepository           { return &mockPatientRepo{m} }
func (m *mockRepository) Action() repositories.ActionRepository             { return &mockActionRepo{m} }
func (m *mockRepository) Consultation() repositories.ConsultationRepository { return &mockConsultationRepo{m} }
func (m *mockRepository) Diagnostic() repositories.DiagnosticRepository     { return &mockDiagnosticRepo{m} }
func (m *mockRepository) Seance() repositories.SeanceRepository             { return &mockSeanceRepo{m} }
func (m *mockRepository) Reevaluation() repositories.ReevaluationRepository {
	return &mockReevaluationRepo{m}
}
func (m *mockRepository) Notification() repositories.NotificationRepository {
	return &mockNotificationRepo{m}
}

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USERS =====

type mockUserRepo struct{ m *mockRepository }

func (r *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	for _, existing := range r.m.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	user, ok := r.m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, user := range r.m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockUserRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, user := range r.m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockUserRepo) GetByRole(ctx context.Context, tx *gorm.DB, role models.Role) ([]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.User
	for _, user := range r.m.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *mockUserRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.User
	for _, user := range r.m.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (r *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.users, id)
	return nil
}

// ===== MEDECINS =====

type mockMedecinRepo struct{ m *mockRepository }

func (r *mockMedecinRepo) Create(ctx context.Context, tx *gorm.DB, medecin *models.Medecin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if medecin.ID == "" {
		medecin.ID = uuid.NewString()
	}
	r.m.medecins[medecin.ID] = medecin
	return nil
}

func (r *mockMedecinRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Medecin, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	medecin, ok := r.m.medecins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return medecin, nil
}

func (r *mockMedecinRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Medecin, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, medecin := range r.m.medecins {
		if medecin.UserID == userID {
			return medecin, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockMedecinRepo) GetByProfession(ctx context.Context, tx *gorm.DB, profession models.Profession) ([]*models.Medecin, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Medecin
	for _, medecin := range r.m.medecins {
		if medecin.Profession == profession {
			out = append(out, medecin)
		}
	}
	return out, nil
}

func (r *mockMedecinRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.MedecinFilters) ([]*models.Medecin, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Medecin
	for _, medecin := range r.m.medecins {
		if filters.Profession != nil && medecin.Profession != *filters.Profession {
			continue
		}
		out = append(out, medecin)
	}
	return out, int64(len(out)), nil
}

func (r *mockMedecinRepo) Update(ctx context.Context, tx *gorm.DB, medecin *models.Medecin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.medecins[medecin.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.medecins[medecin.ID] = medecin
	return nil
}

func (r *mockMedecinRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.medecins[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.medecins, id)
	return nil
}

// ===== ETUDIANTS =====

type mockEtudiantRepo struct{ m *mockRepository }

func (r *mockEtudiantRepo) Create(ctx context.Context, tx *gorm.DB, etudiant *models.Etudiant) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if etudiant.ID == "" {
		etudiant.ID = uuid.NewString()
	}
	r.m.etudiants[etudiant.ID] = etudiant
	return nil
}

func (r *mockEtudiantRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Etudiant, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	etudiant, ok := r.m.etudiants[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return etudiant, nil
}

func (r *mockEtudiantRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Etudiant, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, etudiant := range r.m.etudiants {
		if etudiant.UserID == userID {
			return etudiant, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockEtudiantRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Etudiant, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Etudiant
	for _, etudiant := range r.m.etudiants {
		out = append(out, etudiant)
	}
	return out, int64(len(out)), nil
}

func (r *mockEtudiantRepo) Update(ctx context.Context, tx *gorm.DB, etudiant *models.Etudiant) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.etudiants[etudiant.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.etudiants[etudiant.ID] = etudiant
	return nil
}

func (r *mockEtudiantRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.etudiants[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.etudiants, id)
	return nil
}

// ===== PATIENTS =====

type mockPatientRepo struct{ m *mockRepository }

func (r *mockPatientRepo) Create(ctx context.Context, tx *gorm.DB, patient *models.Patient) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if patient.ID == "" {
		patient.ID = uuid.NewString()
	}
	for _, existing := range r.m.patients {
		if existing.NumeroDeDossier == patient.NumeroDeDossier {
			return repositories.ErrDuplicate
		}
	}
	r.m.patients[patient.ID] = patient
	return nil
}

func (r *mockPatientRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Patient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	patient, ok := r.m.patients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return patient, nil
}

func (r *mockPatientRepo) GetByNumeroDeDossier(ctx context.Context, tx *gorm.DB, numero string) (*models.Patient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, patient := range r.m.patients {
		if patient.NumeroDeDossier == numero {
			return patient, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockPatientRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.PatientFilters) ([]*models.Patient, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Patient
	for _, patient := range r.m.patients {
		if filters.State != nil && patient.State != *filters.State {
			continue
		}
		out = append(out, patient)
	}
	return out, int64(len(out)), nil
}

func (r *mockPatientRepo) Update(ctx context.Context, tx *gorm.DB, patient *models.Patient) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.patients[patient.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.patients[patient.ID] = patient
	return nil
}

func (r *mockPatientRepo) UpdateState(ctx context.Context, tx *gorm.DB, id string, state models.Profession) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	patient, ok := r.m.patients[id]
	if !ok {
		return repositories.ErrNotFound
	}
	patient.State = state
	return nil
}

func (r *mockPatientRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.patients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.patients, id)
	return nil
}

// ===== ACTIONS =====

type mockActionRepo struct{ m *mockRepository }

func (r *mockActionRepo) Create(ctx context.Context, tx *gorm.DB, action *models.Action) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	r.m.actions[action.ID] = action
	return nil
}

func (r *mockActionRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Action, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	action, ok := r.m.actions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return action, nil
}

func (r *mockActionRepo) GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) ([]*models.Action, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Action
	for _, action := range r.m.actions {
		if action.PatientID == patientID {
			out = append(out, action)
		}
	}
	return out, nil
}

func (r *mockActionRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Action, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Action
	for _, action := range r.m.actions {
		out = append(out, action)
	}
	return out, int64(len(out)), nil
}

func (r *mockActionRepo) Update(ctx context.Context, tx *gorm.DB, action *models.Action) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.actions[action.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.actions[action.ID] = action
	return nil
}

func (r *mockActionRepo) SetValidity(ctx context.Context, tx *gorm.DB, id string, isValid bool) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	action, ok := r.m.actions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	action.IsValid = isValid
	return nil
}

func (r *mockActionRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.actions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.actions, id)
	return nil
}

// ===== CONSULTATIONS =====

type mockConsultationRepo struct{ m *mockRepository }

func (r *mockConsultationRepo) Create(ctx context.Context, tx *gorm.DB, consultation *models.Consultation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if consultation.ID == "" {
		consultation.ID = uuid.NewString()
	}
	if consultation.IdConsultation == "" {
		consultation.IdConsultation = uuid.NewString()
	}
	for _, existing := range r.m.consultations {
		if existing.PatientID == consultation.PatientID {
			return repositories.ErrDuplicate
		}
	}
	r.m.consultations[consultation.ID] = consultation
	return nil
}

func (r *mockConsultationRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Consultation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	consultation, ok := r.m.consultations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return consultation, nil
}

func (r *mockConsultationRepo) GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) (*models.Consultation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, consultation := range r.m.consultations {
		if consultation.PatientID == patientID {
			return consultation, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockConsultationRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Consultation, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Consultation
	for _, consultation := range r.m.consultations {
		out = append(out, consultation)
	}
	return out, int64(len(out)), nil
}

func (r *mockConsultationRepo) Update(ctx context.Context, tx *gorm.DB, consultation *models.Consultation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.consultations[consultation.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.consultations[consultation.ID] = consultation
	return nil
}

func (r *mockConsultationRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.consultations[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.consultations, id)
	return nil
}

// ===== DIAGNOSTICS =====

type mockDiagnosticRepo struct{ m *mockRepository }

func (r *mockDiagnosticRepo) Create(ctx context.Context, tx *gorm.DB, diagnostic *models.Diagnostic) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if diagnostic.ID == "" {
		diagnostic.ID = uuid.NewString()
	}
	r.m.diagnostics[diagnostic.ID] = diagnostic
	return nil
}

func (r *mockDiagnosticRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Diagnostic, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	diagnostic, ok := r.m.diagnostics[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return diagnostic, nil
}

func (r *mockDiagnosticRepo) GetByConsultation(ctx context.Context, tx *gorm.DB, consultationID string) ([]*models.Diagnostic, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Diagnostic
	for _, diagnostic := range r.m.diagnostics {
		if diagnostic.ConsultationID == consultationID {
			out = append(out, diagnostic)
		}
	}
	return out, nil
}

func (r *mockDiagnosticRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Diagnostic, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Diagnostic
	for _, diagnostic := range r.m.diagnostics {
		out = append(out, diagnostic)
	}
	return out, int64(len(out)), nil
}

func (r *mockDiagnosticRepo) Update(ctx context.Context, tx *gorm.DB, diagnostic *models.Diagnostic) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.diagnostics[diagnostic.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.diagnostics[diagnostic.ID] = diagnostic
	return nil
}

func (r *mockDiagnosticRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.diagnostics[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.diagnostics, id)
	return nil
}

func (r *mockDiagnosticRepo) DeleteByConsultation(ctx context.Context, tx *gorm.DB, consultationID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, diagnostic := range r.m.diagnostics {
		if diagnostic.ConsultationID == consultationID {
			delete(r.m.diagnostics, id)
		}
	}
	return nil
}

// ===== SEANCES =====

type mockSeanceRepo struct{ m *mockRepository }

func (r *mockSeanceRepo) Create(ctx context.Context, tx *gorm.DB, seance *models.Seance) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failSeanceCreate != nil {
		return r.m.failSeanceCreate
	}
	if seance.ID == "" {
		seance.ID = uuid.NewString()
	}
	r.m.seances[seance.ID] = seance
	return nil
}

func (r *mockSeanceRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Seance, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	seance, ok := r.m.seances[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return seance, nil
}

func (r *mockSeanceRepo) GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) ([]*models.Seance, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Seance
	for _, seance := range r.m.seances {
		if seance.PatientID == patientID {
			out = append(out, seance)
		}
	}
	return out, nil
}

func (r *mockSeanceRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.SeanceFilters) ([]*models.Seance, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Seance
	for _, seance := range r.m.seances {
		if filters.Type != nil && seance.Type != *filters.Type {
			continue
		}
		out = append(out, seance)
	}
	return out, int64(len(out)), nil
}

func (r *mockSeanceRepo) Update(ctx context.Context, tx *gorm.DB, seance *models.Seance) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.seances[seance.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.seances[seance.ID] = seance
	return nil
}

func (r *mockSeanceRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.seances[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.seances, id)
	return nil
}

// ===== REEVALUATIONS =====

type mockReevaluationRepo struct{ m *mockRepository }

func (r *mockReevaluationRepo) Create(ctx context.Context, tx *gorm.DB, reevaluation *models.Reevaluation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failReevaluationCreate != nil {
		return r.m.failReevaluationCreate
	}
	if reevaluation.ID == "" {
		reevaluation.ID = uuid.NewString()
	}
	r.m.reevaluations[reevaluation.ID] = reevaluation
	return nil
}

func (r *mockReevaluationRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Reevaluation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	reevaluation, ok := r.m.reevaluations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return reevaluation, nil
}

func (r *mockReevaluationRepo) GetBySeance(ctx context.Context, tx *gorm.DB, seanceID string) (*models.Reevaluation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, reevaluation := range r.m.reevaluations {
		if reevaluation.SeanceID == seanceID {
			return reevaluation, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockReevaluationRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Reevaluation, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Reevaluation
	for _, reevaluation := range r.m.reevaluations {
		out = append(out, reevaluation)
	}
	return out, int64(len(out)), nil
}

func (r *mockReevaluationRepo) Update(ctx context.Context, tx *gorm.DB, reevaluation *models.Reevaluation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.reevaluations[reevaluation.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.reevaluations[reevaluation.ID] = reevaluation
	return nil
}

func (r *mockReevaluationRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.reevaluations[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.reevaluations, id)
	return nil
}

// ===== NOTIFICATIONS =====

type mockNotificationRepo struct{ m *mockRepository }

func (r *mockNotificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failNotificationCreate != nil {
		return r.m.failNotificationCreate
	}
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	r.m.notifications[notification.ID] = notification
	return nil
}

func (r *mockNotificationRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Notification, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	notification, ok := r.m.notifications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return notification, nil
}

func (r *mockNotificationRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID string, filters repositories.NotificationFilters) ([]*models.Notification, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Notification
	for _, notification := range r.m.notifications {
		if notification.UserID != userID {
			continue
		}
		if filters.UnreadOnly && notification.IsRead {
			continue
		}
		out = append(out, notification)
	}
	return out, int64(len(out)), nil
}

func (r *mockNotificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var count int64
	for _, notification := range r.m.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *mockNotificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	notification, ok := r.m.notifications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	notification.IsRead = true
	return nil
}

func (r *mockNotificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, userID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, notification := range r.m.notifications {
		if notification.UserID == userID {
			notification.IsRead = true
		}
	}
	return nil
}

func (r *mockNotificationRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.notifications[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.notifications, id)
	return nil
}
