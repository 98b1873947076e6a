package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrissP24/clinica-joya-sub000/internal/iam"
	"github.com/CrissP24/clinica-joya-sub000/internal/notification"
	"github.com/CrissP24/clinica-joya-sub000/internal/scheduling"
	"github.com/CrissP24/clinica-joya-sub000/internal/store"
	"github.com/CrissP24/clinica-joya-sub000/pkg/config"
	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/storage"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

func setupTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	backend := storage.NewMemory()
	t.Cleanup(func() { backend.Close() })

	cfg := &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Clinic:   config.ClinicConfig{OpeningTime: "08:00", ClosingTime: "19:30", SlotMinutes: 30},
		JWT:      config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 3600, Issuer: "clinica-joya"},
		LogLevel: "error",
	}

	log := logger.New(cfg.LogLevel)
	st := store.New(backend, log)
	notifier := notification.NewManager(st, log)
	scheduler := scheduling.New(st, notifier, cfg.Clinic, log)
	auth := iam.NewService(st, cfg.JWT, log)

	return New(cfg, st, scheduler, auth, notifier, log), st
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPatientCRUD(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "POST", "/api/v1/patients", types.Patient{Name: "María González", Cedula: "1310456789"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[types.Patient](t, rec)
	assert.NotEmpty(t, created.ID)

	rec = doJSON(t, srv, "GET", "/api/v1/patients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, "GET", "/api/v1/patients?cedula=1310456789", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	byCedula := decodeBody[types.Patient](t, rec)
	assert.Equal(t, created.ID, byCedula.ID)

	rec = doJSON(t, srv, "PUT", "/api/v1/patients/"+created.ID, map[string]string{"phone": "0991234567"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[types.Patient](t, rec)
	assert.Equal(t, "0991234567", updated.Phone)
	assert.Equal(t, "María González", updated.Name)

	rec = doJSON(t, srv, "DELETE", "/api/v1/patients/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, "GET", "/api/v1/patients/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatientsListIsAlwaysArray(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "GET", "/api/v1/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestBookingFlow(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "POST", "/api/v1/appointments", types.Appointment{
		PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "10:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[types.Appointment](t, rec)
	assert.Equal(t, types.StatusPending, created.Status)

	// The booked slot disappears from availability
	rec = doJSON(t, srv, "GET", "/api/v1/doctors/d1/available-slots?date=2025-01-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	slotsResp := decodeBody[map[string]interface{}](t, rec)
	slots := slotsResp["slots"].([]interface{})
	assert.Len(t, slots, 23)
	assert.NotContains(t, slots, "10:00")

	// Double-booking conflicts
	rec = doJSON(t, srv, "POST", "/api/v1/appointments", types.Appointment{
		PatientID: "p2", DoctorID: "d1", Date: "2025-01-10", Time: "10:00",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Confirm through the status endpoint
	rec = doJSON(t, srv, "PUT", fmt.Sprintf("/api/v1/appointments/%s/status", created.ID), map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Invalid transition is rejected
	rec = doJSON(t, srv, "PUT", fmt.Sprintf("/api/v1/appointments/%s/status", created.ID), map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// DELETE cancels rather than removing
	rec = doJSON(t, srv, "DELETE", "/api/v1/appointments/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cancelled := decodeBody[types.Appointment](t, rec)
	assert.Equal(t, types.StatusCancelled, cancelled.Status)
}

func TestBookingNotifiesParties(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "POST", "/api/v1/appointments", types.Appointment{
		PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Time: "10:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, "GET", "/api/v1/notifications?userId=p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notifications := decodeBody[[]types.Notification](t, rec)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)

	rec = doJSON(t, srv, "PUT", "/api/v1/notifications/"+notifications[0].ID+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	read := decodeBody[types.Notification](t, rec)
	assert.True(t, read.IsRead)

	rec = doJSON(t, srv, "PUT", "/api/v1/users/d1/notifications/read-all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	marked := decodeBody[map[string]int](t, rec)
	assert.Equal(t, 1, marked["marked"])
}

func TestLoginFlow(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "POST", "/api/v1/users", map[string]interface{}{
		"name":     "Ana Robles",
		"email":    "admin@clinica.test",
		"role":     "admin",
		"isActive": true,
		"password": "admin123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[types.SystemUser](t, rec)
	assert.Empty(t, created.PasswordHash)

	rec = doJSON(t, srv, "POST", "/api/v1/auth/login", types.Credentials{Email: "admin@clinica.test", Password: "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  types.SystemUser `json:"user"`
		Token types.AuthToken  `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.User.PasswordHash)
	assert.NotEmpty(t, resp.Token.AccessToken)

	rec = doJSON(t, srv, "POST", "/api/v1/auth/login", types.Credentials{Email: "admin@clinica.test", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMedicalRecordWithDiagnosisNotifiesPatient(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "POST", "/api/v1/medical-records", types.MedicalRecord{
		PatientID: "p1", DoctorID: "d1", Date: "2025-01-10", Reason: "control", Diagnosis: "faringitis",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, "GET", "/api/v1/notifications?userId=p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notifications := decodeBody[[]types.Notification](t, rec)
	assert.Len(t, notifications, 1)
}

func TestQueriesByPatientAndDoctor(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "POST", "/api/v1/certificates", types.MedicalCertificate{
		PatientID: "p1", DoctorID: "d1", Type: types.CertificateReposo, StartDate: "2025-01-10", Days: 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, "POST", "/api/v1/laboratory-exams", types.LaboratoryExam{
		PatientID: "p1", DoctorID: "d1", ExamType: "hematología", ExamName: "Biometría", Date: "2025-01-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, "GET", "/api/v1/patients/p1/certificates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]types.MedicalCertificate](t, rec), 1)

	rec = doJSON(t, srv, "GET", "/api/v1/doctors/d1/laboratory-exams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]types.LaboratoryExam](t, rec), 1)

	rec = doJSON(t, srv, "GET", "/api/v1/patients/p2/certificates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]types.MedicalCertificate](t, rec))
}

func TestAdminReset(t *testing.T) {
	srv, st := setupTestServer(t)

	_, err := st.AddPatient(&types.Patient{Name: "María González"})
	require.NoError(t, err)

	rec := doJSON(t, srv, "POST", "/api/v1/admin/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	patients, err := st.GetPatients()
	require.NoError(t, err)
	assert.Empty(t, patients)
}

func TestErrorStatusMapping(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, "GET", "/api/v1/patients/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, "POST", "/api/v1/appointments", types.Appointment{DoctorID: "d1", Date: "2025-01-10", Time: "10:00"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[map[string]interface{}](t, rec)
	assert.Equal(t, types.ErrCodeInvalidInput, body["code"])
}
