package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/storage"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

func newTestStore(t *testing.T) (*Store, storage.Backend) {
	t.Helper()
	backend := storage.NewMemory()
	t.Cleanup(func() { backend.Close() })
	return New(backend, logger.New("error")), backend
}

func TestAddPatientAssignsIDAndTimestamps(t *testing.T) {
	s, _ := newTestStore(t)

	before := time.Now().UTC()
	created, err := s.AddPatient(&types.Patient{Name: "María González", Cedula: "1310456789"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	createdAt, err := time.Parse(time.RFC3339Nano, created.CreatedAt)
	require.NoError(t, err)
	assert.False(t, createdAt.Before(before.Truncate(time.Millisecond)))
}

func TestAddPatientDoesNotMutateInput(t *testing.T) {
	s, _ := newTestStore(t)

	input := &types.Patient{Name: "Pedro Zambrano"}
	created, err := s.AddPatient(input)
	require.NoError(t, err)

	assert.Empty(t, input.ID)
	assert.NotEmpty(t, created.ID)
}

func TestGetPatientsGrowsByOne(t *testing.T) {
	s, _ := newTestStore(t)

	patients, err := s.GetPatients()
	require.NoError(t, err)
	assert.Empty(t, patients)

	_, err = s.AddPatient(&types.Patient{Name: "María González"})
	require.NoError(t, err)

	patients, err = s.GetPatients()
	require.NoError(t, err)
	assert.Len(t, patients, 1)
}

func TestGetPatientByIDNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.GetPatientByID("nope")
	assert.True(t, types.IsNotFound(err))
}

func TestGetPatientByCedula(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.AddPatient(&types.Patient{Name: "María González", Cedula: "1310456789"})
	require.NoError(t, err)

	found, err := s.GetPatientByCedula("1310456789")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = s.GetPatientByCedula("0000000000")
	assert.True(t, types.IsNotFound(err))
}

func TestUpdatePatientMergesAndRestamps(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.AddPatient(&types.Patient{Name: "María González", Phone: "0991234567"})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	newPhone := "0987654321"
	updated, err := s.UpdatePatient(created.ID, &types.PatientUpdates{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "María González", updated.Name)
	assert.Equal(t, newPhone, updated.Phone)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Greater(t, updated.UpdatedAt, created.UpdatedAt)
}

func TestUpdatePatientMissing(t *testing.T) {
	s, _ := newTestStore(t)

	name := "X"
	_, err := s.UpdatePatient("nope", &types.PatientUpdates{Name: &name})
	assert.True(t, types.IsNotFound(err))
}

func TestDeletePatient(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.AddPatient(&types.Patient{Name: "María González"})
	require.NoError(t, err)

	existed, err := s.DeletePatient(created.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.DeletePatient(created.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

// Deleting a patient must not touch their records: references are weak and
// there is no cascade.
func TestDeletePatientLeavesRecords(t *testing.T) {
	s, _ := newTestStore(t)

	patient, err := s.AddPatient(&types.Patient{Name: "María González"})
	require.NoError(t, err)

	rec, err := s.AddMedicalRecord(&types.MedicalRecord{PatientID: patient.ID, Reason: "control"})
	require.NoError(t, err)

	_, err = s.DeletePatient(patient.ID)
	require.NoError(t, err)

	kept, err := s.GetMedicalRecordByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, kept.PatientID)
}

func TestDataSurvivesStoreRestart(t *testing.T) {
	backend := storage.NewMemory()
	defer backend.Close()

	s1 := New(backend, logger.New("error"))
	created, err := s1.AddPatient(&types.Patient{Name: "María González"})
	require.NoError(t, err)

	// A fresh store over the same backend sees the same data
	s2 := New(backend, logger.New("error"))
	found, err := s2.GetPatientByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, found.Name)
}

func TestListSkipsCorruptRecords(t *testing.T) {
	s, backend := newTestStore(t)

	created, err := s.AddPatient(&types.Patient{Name: "María González"})
	require.NoError(t, err)

	require.NoError(t, backend.Put("patients/corrupt", []byte("{not json")))

	patients, err := s.GetPatients()
	assert.True(t, types.IsDecode(err))
	require.Len(t, patients, 1)
	assert.Equal(t, created.ID, patients[0].ID)
}

func TestGetCorruptRecordReturnsDecodeError(t *testing.T) {
	s, backend := newTestStore(t)

	require.NoError(t, backend.Put("patients/corrupt", []byte("{not json")))

	_, err := s.GetPatientByID("corrupt")
	assert.True(t, types.IsDecode(err))
}

func TestResetClearsEverything(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddPatient(&types.Patient{Name: "María González"})
	require.NoError(t, err)
	_, err = s.AddUser(&types.SystemUser{Name: "Ana", Email: "ana@clinica.test", PasswordHash: "x", Role: types.RoleAdmin})
	require.NoError(t, err)
	_, err = s.AddNotification(&types.Notification{UserID: "u1", Type: types.NotificationSystem, Title: "t", Message: "m"})
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	patients, err := s.GetPatients()
	require.NoError(t, err)
	assert.Empty(t, patients)

	users, err := s.GetUsers()
	require.NoError(t, err)
	assert.Empty(t, users)

	notifications, err := s.GetNotifications()
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestNewIDsAreUnique(t *testing.T) {
	s, _ := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := s.newID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
