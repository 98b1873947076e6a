package store

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

// Seed populates demo data on first start. It runs only when BOTH the
// patient and user collections are empty; it does not reconcile a
// partially-seeded store.
func (s *Store) Seed() error {
	patients, err := s.backend.List(prefixPatients)
	if err != nil {
		return types.NewStorageError(types.ErrCodeStorageFailed, "failed to check patients before seeding", err)
	}
	users, err := s.backend.List(prefixUsers)
	if err != nil {
		return types.NewStorageError(types.ErrCodeStorageFailed, "failed to check users before seeding", err)
	}
	if len(patients) > 0 || len(users) > 0 {
		s.logger.Debug("seed skipped: store already has data")
		return nil
	}

	s.logger.Info("seeding demo data")

	admin, err := s.seedUser("Ana Robles", "admin@clinica.test", "admin123", types.RoleAdmin, "")
	if err != nil {
		return err
	}
	doctor, err := s.seedUser("Dr. Carlos Mendoza", "cmendoza@clinica.test", "doctor123", types.RoleDoctor, "Medicina General")
	if err != nil {
		return err
	}
	if _, err := s.seedUser("Dra. Lucía Paredes", "lparedes@clinica.test", "doctor123", types.RoleDoctor, "Pediatría"); err != nil {
		return err
	}
	patientUser, err := s.seedUser("María González", "mgonzalez@clinica.test", "patient123", types.RolePatient, "")
	if err != nil {
		return err
	}

	maria, err := s.AddPatient(&types.Patient{
		Name:      "María González",
		Cedula:    "1310456789",
		Email:     "mgonzalez@clinica.test",
		Phone:     "0991234567",
		BirthDate: "1988-04-12",
		Gender:    "female",
		BloodType: "O+",
		Allergies: "penicilina",
	})
	if err != nil {
		return err
	}
	pedro, err := s.AddPatient(&types.Patient{
		Name:            "Pedro Zambrano",
		Cedula:          "1309887123",
		Phone:           "0987654321",
		BirthDate:       "1975-11-02",
		Gender:          "male",
		BloodType:       "A-",
		ChronicDiseases: "hipertensión",
	})
	if err != nil {
		return err
	}

	if _, err := s.AddLaboratoryExam(&types.LaboratoryExam{
		PatientID: maria.ID,
		DoctorID:  doctor.ID,
		ExamType:  "hematología",
		ExamName:  "Biometría hemática completa",
		Date:      "2025-01-06",
		Results:   "Dentro de rangos normales",
	}); err != nil {
		return err
	}
	if _, err := s.AddLaboratoryExam(&types.LaboratoryExam{
		PatientID: pedro.ID,
		DoctorID:  doctor.ID,
		ExamType:  "química sanguínea",
		ExamName:  "Perfil lipídico",
		Date:      "2025-01-07",
	}); err != nil {
		return err
	}

	if _, err := s.AddNotification(&types.Notification{
		UserID:  patientUser.ID,
		Type:    types.NotificationSystem,
		Title:   "Bienvenida",
		Message: "Su cuenta de paciente ha sido creada.",
	}); err != nil {
		return err
	}
	if _, err := s.AddNotification(&types.Notification{
		UserID:  admin.ID,
		Type:    types.NotificationSystem,
		Title:   "Sistema inicializado",
		Message: "Los datos de demostración fueron cargados.",
	}); err != nil {
		return err
	}

	s.logger.Info("demo data seeded")
	return nil
}

func (s *Store) seedUser(name, email, password string, role types.UserRole, specialty string) (*types.SystemUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, types.NewStorageError(types.ErrCodeStorageFailed, "failed to hash seed password", err)
	}

	return s.AddUser(&types.SystemUser{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Specialty:    specialty,
		IsActive:     true,
	})
}
