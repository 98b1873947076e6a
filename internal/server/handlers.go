package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CrissP24/clinica-joya-sub000/pkg/metrics"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.corsMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")
	if s.config.Monitoring.Enabled {
		s.router.Handle(s.config.Monitoring.MetricsPath, metrics.Handler()).Methods("GET")
	}

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Authentication
	api.HandleFunc("/auth/login", s.loginHandler).Methods("POST")

	// Patients
	api.HandleFunc("/patients", s.createPatientHandler).Methods("POST")
	api.HandleFunc("/patients", s.getPatientsHandler).Methods("GET")
	api.HandleFunc("/patients/{id}", s.getPatientHandler).Methods("GET")
	api.HandleFunc("/patients/{id}", s.updatePatientHandler).Methods("PUT")
	api.HandleFunc("/patients/{id}", s.deletePatientHandler).Methods("DELETE")

	// Medical records
	api.HandleFunc("/medical-records", s.createMedicalRecordHandler).Methods("POST")
	api.HandleFunc("/medical-records", s.getMedicalRecordsHandler).Methods("GET")
	api.HandleFunc("/medical-records/{id}", s.getMedicalRecordHandler).Methods("GET")
	api.HandleFunc("/medical-records/{id}", s.updateMedicalRecordHandler).Methods("PUT")
	api.HandleFunc("/patients/{patientId}/medical-records", s.getPatientMedicalRecordsHandler).Methods("GET")
	api.HandleFunc("/doctors/{doctorId}/medical-records", s.getDoctorMedicalRecordsHandler).Methods("GET")

	// Appointments
	api.HandleFunc("/appointments", s.createAppointmentHandler).Methods("POST")
	api.HandleFunc("/appointments", s.getAppointmentsHandler).Methods("GET")
	api.HandleFunc("/appointments/{id}", s.getAppointmentHandler).Methods("GET")
	api.HandleFunc("/appointments/{id}", s.updateAppointmentHandler).Methods("PUT")
	api.HandleFunc("/appointments/{id}", s.cancelAppointmentHandler).Methods("DELETE")
	api.HandleFunc("/appointments/{id}/status", s.updateAppointmentStatusHandler).Methods("PUT")
	api.HandleFunc("/patients/{patientId}/appointments", s.getPatientAppointmentsHandler).Methods("GET")
	api.HandleFunc("/doctors/{doctorId}/appointments", s.getDoctorAppointmentsHandler).Methods("GET")
	api.HandleFunc("/doctors/{doctorId}/available-slots", s.getAvailableSlotsHandler).Methods("GET")

	// Certificates
	api.HandleFunc("/certificates", s.createCertificateHandler).Methods("POST")
	api.HandleFunc("/certificates", s.getCertificatesHandler).Methods("GET")
	api.HandleFunc("/certificates/{id}", s.getCertificateHandler).Methods("GET")
	api.HandleFunc("/certificates/{id}", s.updateCertificateHandler).Methods("PUT")
	api.HandleFunc("/patients/{patientId}/certificates", s.getPatientCertificatesHandler).Methods("GET")
	api.HandleFunc("/doctors/{doctorId}/certificates", s.getDoctorCertificatesHandler).Methods("GET")

	// Laboratory exams
	api.HandleFunc("/laboratory-exams", s.createExamHandler).Methods("POST")
	api.HandleFunc("/laboratory-exams", s.getExamsHandler).Methods("GET")
	api.HandleFunc("/laboratory-exams/{id}", s.getExamHandler).Methods("GET")
	api.HandleFunc("/laboratory-exams/{id}", s.updateExamHandler).Methods("PUT")
	api.HandleFunc("/patients/{patientId}/laboratory-exams", s.getPatientExamsHandler).Methods("GET")
	api.HandleFunc("/doctors/{doctorId}/laboratory-exams", s.getDoctorExamsHandler).Methods("GET")

	// Users
	api.HandleFunc("/users", s.createUserHandler).Methods("POST")
	api.HandleFunc("/users", s.getUsersHandler).Methods("GET")
	api.HandleFunc("/users/{id}", s.getUserHandler).Methods("GET")
	api.HandleFunc("/users/{id}", s.updateUserHandler).Methods("PUT")
	api.HandleFunc("/users/{id}", s.deleteUserHandler).Methods("DELETE")

	// Notifications
	api.HandleFunc("/notifications", s.getNotificationsHandler).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", s.markNotificationReadHandler).Methods("PUT")
	api.HandleFunc("/users/{userId}/notifications/read-all", s.markAllNotificationsReadHandler).Methods("PUT")

	// Administration
	api.HandleFunc("/admin/reset", s.resetHandler).Methods("POST")

	s.logger.Info("routes configured")
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// loginHandler authenticates a user and issues an access token
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var creds types.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	user, token, err := s.auth.Authenticate(&creds)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	user.PasswordHash = ""
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// --- Patients ---

func (s *Server) createPatientHandler(w http.ResponseWriter, r *http.Request) {
	var p types.Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	created, err := s.store.AddPatient(&p)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, created)
}

// getPatientsHandler lists patients; with ?cedula= it resolves one patient
// by national id instead.
func (s *Server) getPatientsHandler(w http.ResponseWriter, r *http.Request) {
	if cedula := r.URL.Query().Get("cedula"); cedula != "" {
		patient, err := s.store.GetPatientByCedula(cedula)
		if err != nil {
			s.writeErrorResponse(w, err)
			return
		}
		s.writeJSONResponse(w, http.StatusOK, patient)
		return
	}

	patients, err := s.store.GetPatients()
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(patients))
}

func (s *Server) getPatientHandler(w http.ResponseWriter, r *http.Request) {
	patient, err := s.store.GetPatientByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, patient)
}

func (s *Server) updatePatientHandler(w http.ResponseWriter, r *http.Request) {
	var updates types.PatientUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	updated, err := s.store.UpdatePatient(mux.Vars(r)["id"], &updates)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) deletePatientHandler(w http.ResponseWriter, r *http.Request) {
	existed, err := s.store.DeletePatient(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	if !existed {
		s.writeErrorResponse(w, types.NewNotFoundError(types.ErrCodeNotFound, "patient not found"))
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "patient deleted"})
}

// --- Medical records ---

func (s *Server) createMedicalRecordHandler(w http.ResponseWriter, r *http.Request) {
	var rec types.MedicalRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	created, err := s.store.AddMedicalRecord(&rec)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	s.notifier.DiagnosisAdded(created)
	s.writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Server) getMedicalRecordsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.GetMedicalRecords()
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(records))
}

func (s *Server) getMedicalRecordHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetMedicalRecordByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, rec)
}

func (s *Server) updateMedicalRecordHandler(w http.ResponseWriter, r *http.Request) {
	var updates types.MedicalRecordUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	updated, err := s.store.UpdateMedicalRecord(mux.Vars(r)["id"], &updates)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	if updates.Diagnosis != nil {
		s.notifier.DiagnosisAdded(updated)
	}
	s.writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) getPatientMedicalRecordsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.GetMedicalRecordsByPatient(mux.Vars(r)["patientId"])
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(records))
}

func (s *Server) getDoctorMedicalRecordsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.GetMedicalRecordsByDoctor(mux.Vars(r)["doctorId"])
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(records))
}

// --- Appointments ---

func (s *Server) createAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	var apt types.Appointment
	if err := json.NewDecoder(r.Body).Decode(&apt); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	created, err := s.scheduler.Book(&apt)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Server) getAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.store.GetAppointments()
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(appointments))
}

func (s *Server) getAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	apt, err := s.store.GetAppointmentByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, apt)
}

// updateAppointmentHandler applies a raw partial update. Status changes that
// must respect the lifecycle go through the status endpoint instead.
func (s *Server) updateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	var updates types.AppointmentUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	updated, err := s.store.UpdateAppointment(mux.Vars(r)["id"], &updates)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) updateAppointmentStatusHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status types.AppointmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	updated, err := s.scheduler.UpdateStatus(mux.Vars(r)["id"], body.Status)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) cancelAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	cancelled, err := s.scheduler.Cancel(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, cancelled)
}

func (s *Server) getPatientAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.store.GetAppointmentsByPatient(mux.Vars(r)["patientId"])
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(appointments))
}

// getDoctorAppointmentsHandler lists a doctor's appointments, optionally
// filtered to one day with ?date=YYYY-MM-DD
func (s *Server) getDoctorAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctorId"]

	var appointments []*types.Appointment
	var err error
	if date := r.URL.Query().Get("date"); date != "" {
		appointments, err = s.store.GetAppointmentsByDoctorAndDate(doctorID, date)
	} else {
		appointments, err = s.store.GetAppointmentsByDoctor(doctorID)
	}
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(appointments))
}

func (s *Server) getAvailableSlotsHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctorId"]
	date := r.URL.Query().Get("date")

	slots, err := s.scheduler.AvailableSlots(doctorID, date)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"doctorId": doctorID,
		"date":     date,
		"slots":    slots,
	})
}

// --- Certificates ---

func (s *Server) createCertificateHandler(w http.ResponseWriter, r *http.Request) {
	var cert types.MedicalCertificate
	if err := json.NewDecoder(r.Body).Decode(&cert); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	created, err := s.store.AddCertificate(&cert)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	s.notifier.CertificateIssued(created)
	s.writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Server) getCertificatesHandler(w http.ResponseWriter, r *http.Request) {
	certs, err := s.store.GetCertificates()
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(certs))
}

func (s *Server) getCertificateHandler(w http.ResponseWriter, r *http.Request) {
	cert, err := s.store.GetCertificateByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, cert)
}

func (s *Server) updateCertificateHandler(w http.ResponseWriter, r *http.Request) {
	var updates types.MedicalCertificateUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	updated, err := s.store.UpdateCertificate(mux.Vars(r)["id"], &updates)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) getPatientCertificatesHandler(w http.ResponseWriter, r *http.Request) {
	certs, err := s.store.GetCertificatesByPatient(mux.Vars(r)["patientId"])
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(certs))
}

func (s *Server) getDoctorCertificatesHandler(w http.ResponseWriter, r *http.Request) {
	certs, err := s.store.GetCertificatesByDoctor(mux.Vars(r)["doctorId"])
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(certs))
}

// --- Laboratory exams ---

func (s *Server) createExamHandler(w http.ResponseWriter, r *http.Request) {
	var exam types.LaboratoryExam
	if err := json.NewDecoder(r.Body).Decode(&exam); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	created, err := s.store.AddLaboratoryExam(&exam)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	s.notifier.ExamResultRecorded(created)
	s.writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Server) getExamsHandler(w http.ResponseWriter, r *http.Request) {
	exams, err := s.store.GetLaboratoryExams()
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(exams))
}

func (s *Server) getExamHandler(w http.ResponseWriter, r *http.Request) {
	exam, err := s.store.GetLaboratoryExamByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, exam)
}

func (s *Server) updateExamHandler(w http.ResponseWriter, r *http.Request) {
	var updates types.LaboratoryExamUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	updated, err := s.store.UpdateLaboratoryExam(mux.Vars(r)["id"], &updates)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	if updates.Results != nil {
		s.notifier.ExamResultRecorded(updated)
	}
	s.writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) getPatientExamsHandler(w http.ResponseWriter, r *http.Request) {
	exams, err := s.store.GetLaboratoryExamsByPatient(mux.Vars(r)["patientId"])
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(exams))
}

func (s *Server) getDoctorExamsHandler(w http.ResponseWriter, r *http.Request) {
	exams, err := s.store.GetLaboratoryExamsByDoctor(mux.Vars(r)["doctorId"])
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(exams))
}

// --- Users ---

// createUserRequest carries the plaintext password alongside the profile.
// The password is hashed before anything reaches the store.
type createUserRequest struct {
	types.SystemUser
	Password string `json:"password"`
}

func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	created, err := s.auth.CreateUser(&req.SystemUser, req.Password)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	created.PasswordHash = ""
	s.writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Server) getUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.GetUsers()
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(users))
}

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUserByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	user.PasswordHash = ""
	s.writeJSONResponse(w, http.StatusOK, user)
}

// updateUserHandler applies profile updates; a non-empty "password" field
// additionally re-hashes and replaces the stored password.
func (s *Server) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		types.SystemUserUpdates
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	if req.Password != "" {
		if err := s.auth.ChangePassword(id, req.Password); err != nil {
			s.writeErrorResponse(w, err)
			return
		}
	}

	updated, err := s.store.UpdateUser(id, &req.SystemUserUpdates)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	updated.PasswordHash = ""
	s.writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	existed, err := s.store.DeleteUser(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	if !existed {
		s.writeErrorResponse(w, types.NewNotFoundError(types.ErrCodeNotFound, "user not found"))
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// --- Notifications ---

// getNotificationsHandler lists notifications, scoped to one user with
// ?userId=
func (s *Server) getNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	var notifications []*types.Notification
	var err error
	if userID := r.URL.Query().Get("userId"); userID != "" {
		notifications, err = s.store.GetNotificationsByUser(userID)
	} else {
		notifications, err = s.store.GetNotifications()
	}
	if err != nil && !types.IsDecode(err) {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, emptyIfNil(notifications))
}

func (s *Server) markNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.MarkNotificationRead(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) markAllNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.MarkAllNotificationsRead(mux.Vars(r)["userId"])
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]int{"marked": count})
}

// --- Administration ---

// resetHandler wipes every collection. Destructive and not undoable; demo
// data is reseeded only on the next start when seeding is enabled.
func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(); err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "all data cleared"})
}

// emptyIfNil keeps list responses as JSON arrays even when empty
func emptyIfNil[T any](in []*T) []*T {
	if in == nil {
		return []*T{}
	}
	return in
}
