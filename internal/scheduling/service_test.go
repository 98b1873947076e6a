package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrissP24/clinica-joya-sub000/internal/notification"
	"github.com/CrissP24/clinica-joya-sub000/internal/store"
	"github.com/CrissP24/clinica-joya-sub000/pkg/config"
	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/storage"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

func setupTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	backend := storage.NewMemory()
	t.Cleanup(func() { backend.Close() })

	log := logger.New("error")
	st := store.New(backend, log)
	notifier := notification.NewManager(st, log)
	clinic := config.ClinicConfig{OpeningTime: "08:00", ClosingTime: "19:30", SlotMinutes: 30}

	return New(st, notifier, clinic, log), st
}

func TestAvailableSlotsFullGrid(t *testing.T) {
	svc, _ := setupTestService(t)

	slots, err := svc.AvailableSlots("d1", "2025-01-10")
	require.NoError(t, err)
	assert.Len(t, slots, 24)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "19:30", slots[len(slots)-1])
}

func TestAvailableSlotsExcludesBooked(t *testing.T) {
	svc, st := setupTestService(t)

	_, err := st.AddAppointment(&types.Appointment{PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "10:00"})
	require.NoError(t, err)

	confirmed := &types.Appointment{PatientID: "p2", DoctorID: "d1", Date: "2025-01-10", Time: "11:30", Status: types.StatusConfirmed}
	_, err = st.AddAppointment(confirmed)
	require.NoError(t, err)

	slots, err := svc.AvailableSlots("d1", "2025-01-10")
	require.NoError(t, err)
	assert.Len(t, slots, 22)
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "11:30")
}

func TestAvailableSlotsIgnoresOtherDoctorsAndDays(t *testing.T) {
	svc, st := setupTestService(t)

	_, err := st.AddAppointment(&types.Appointment{PatientID: "p1", DoctorID: "d2", Date: "2025-01-10", Time: "10:00"})
	require.NoError(t, err)
	_, err = st.AddAppointment(&types.Appointment{PatientID: "p1", DoctorID: "d1", Date: "2025-01-11", Time: "10:00"})
	require.NoError(t, err)

	slots, err := svc.AvailableSlots("d1", "2025-01-10")
	require.NoError(t, err)
	assert.Len(t, slots, 24)
}

func TestAvailableSlotsRejectsBadInput(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.AvailableSlots("", "2025-01-10")
	assert.Equal(t, types.ErrorKindValidation, types.KindOf(err))

	_, err = svc.AvailableSlots("d1", "10/01/2025")
	assert.Equal(t, types.ErrorKindValidation, types.KindOf(err))
}

func TestBookAppointment(t *testing.T) {
	svc, st := setupTestService(t)

	created, err := svc.Book(&types.Appointment{
		PatientID: "p1",
		DoctorID:  "d1",
		Date:      "2025-01-10",
		Time:      "10:00",
		Reason:    "control general",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, types.StatusPending, created.Status)

	// Booking notifies both patient and doctor
	forPatient, err := st.GetNotificationsByUser("p1")
	require.NoError(t, err)
	assert.Len(t, forPatient, 1)

	forDoctor, err := st.GetNotificationsByUser("d1")
	require.NoError(t, err)
	assert.Len(t, forDoctor, 1)
}

func TestBookTakenSlotConflicts(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Book(&types.Appointment{PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "10:00"})
	require.NoError(t, err)

	_, err = svc.Book(&types.Appointment{PatientID: "p2", DoctorID: "d1", Date: "2025-01-10", Time: "10:00"})
	assert.True(t, types.IsConflict(err))

	// Same time with another doctor is fine
	_, err = svc.Book(&types.Appointment{PatientID: "p2", DoctorID: "d2", Date: "2025-01-10", Time: "10:00"})
	assert.NoError(t, err)
}

func TestBookValidation(t *testing.T) {
	svc, _ := setupTestService(t)

	cases := []*types.Appointment{
		{DoctorID: "d1", Date: "2025-01-10", Time: "10:00"},
		{PatientID: "p1", Date: "2025-01-10", Time: "10:00"},
		{PatientID: "p1", DoctorID: "d1", Date: "bad", Time: "10:00"},
		{PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "bad"},
		{PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "10:00", Status: types.StatusCompleted},
	}
	for _, apt := range cases {
		_, err := svc.Book(apt)
		assert.Equal(t, types.ErrorKindValidation, types.KindOf(err))
	}
}

func TestCancelFreesSlot(t *testing.T) {
	svc, _ := setupTestService(t)

	created, err := svc.Book(&types.Appointment{PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "10:00"})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCancelled, cancelled.Status)

	ok, err := svc.IsSlotAvailable("d1", "2025-01-10", "10:00")
	require.NoError(t, err)
	assert.True(t, ok)

	// The freed slot can be booked again
	_, err = svc.Book(&types.Appointment{PatientID: "p2", DoctorID: "d1", Date: "2025-01-10", Time: "10:00"})
	assert.NoError(t, err)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, _ := setupTestService(t)

	created, err := svc.Book(&types.Appointment{PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "10:00"})
	require.NoError(t, err)

	confirmed, err := svc.UpdateStatus(created.ID, types.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, types.StatusConfirmed, confirmed.Status)

	completed, err := svc.UpdateStatus(created.ID, types.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, completed.Status)

	// Completed is terminal
	_, err = svc.UpdateStatus(created.ID, types.StatusPending)
	assert.Equal(t, types.ErrorKindValidation, types.KindOf(err))
}

func TestCancelledAppointmentCanBeReactivated(t *testing.T) {
	svc, _ := setupTestService(t)

	created, err := svc.Book(&types.Appointment{PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "10:00"})
	require.NoError(t, err)

	_, err = svc.Cancel(created.ID)
	require.NoError(t, err)

	reactivated, err := svc.UpdateStatus(created.ID, types.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, reactivated.Status)
}

func TestUpdateStatusMissingAppointment(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.UpdateStatus("nope", types.StatusConfirmed)
	assert.True(t, types.IsNotFound(err))
}

// Full demo flow: María González books the 10:00 slot with Dr. Mendoza on
// 2025-01-10, the slot disappears from availability and both parties are
// notified.
func TestSeededBookingScenario(t *testing.T) {
	svc, st := setupTestService(t)

	require.NoError(t, st.Seed())

	maria, err := st.GetPatientByCedula("1310456789")
	require.NoError(t, err)
	doctor, err := st.GetUserByEmail("cmendoza@clinica.test")
	require.NoError(t, err)

	created, err := svc.Book(&types.Appointment{
		PatientID: maria.ID,
		DoctorID:  doctor.ID,
		Date:      "2025-01-10",
		Time:      "10:00",
		Reason:    "control general",
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, created.Status)

	slots, err := svc.AvailableSlots(doctor.ID, "2025-01-10")
	require.NoError(t, err)
	assert.Len(t, slots, 23)
	assert.NotContains(t, slots, "10:00")

	forDoctor, err := st.GetNotificationsByUser(doctor.ID)
	require.NoError(t, err)
	assert.Len(t, forDoctor, 1)
}

func TestCustomSlotGrid(t *testing.T) {
	backend := storage.NewMemory()
	t.Cleanup(func() { backend.Close() })

	log := logger.New("error")
	st := store.New(backend, log)
	notifier := notification.NewManager(st, log)
	clinic := config.ClinicConfig{OpeningTime: "09:00", ClosingTime: "12:00", SlotMinutes: 60}

	svc := New(st, notifier, clinic, log)

	slots, err := svc.AvailableSlots("d1", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, slots)
}
