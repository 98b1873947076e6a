// Package notification implements the fire-and-forget notification
// side-channel: feature code reports domain events and the manager writes
// the corresponding rows to the notification collection. Failures are
// logged, never propagated, so a lost notification can not fail the
// operation that triggered it.
package notification

import (
	"fmt"

	"github.com/CrissP24/clinica-joya-sub000/internal/store"
	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

// Manager writes event notifications to the store
type Manager struct {
	store  *store.Store
	logger *logger.Logger
}

// NewManager creates a new notification manager
func NewManager(st *store.Store, log *logger.Logger) *Manager {
	return &Manager{
		store:  st,
		logger: log,
	}
}

// AppointmentScheduled notifies the patient and the doctor about a new
// appointment
func (m *Manager) AppointmentScheduled(apt *types.Appointment) {
	message := fmt.Sprintf("Cita agendada para el %s a las %s.", apt.Date, apt.Time)
	m.notify(apt.PatientID, types.NotificationAppointment, "Cita agendada", message)
	m.notify(apt.DoctorID, types.NotificationAppointment, "Nueva cita", message)
}

// AppointmentCancelled notifies the patient and the doctor about a
// cancellation
func (m *Manager) AppointmentCancelled(apt *types.Appointment) {
	message := fmt.Sprintf("La cita del %s a las %s fue cancelada.", apt.Date, apt.Time)
	m.notify(apt.PatientID, types.NotificationAppointment, "Cita cancelada", message)
	m.notify(apt.DoctorID, types.NotificationAppointment, "Cita cancelada", message)
}

// DiagnosisAdded notifies the patient that a consultation entry with a
// diagnosis was recorded
func (m *Manager) DiagnosisAdded(rec *types.MedicalRecord) {
	if rec.Diagnosis == "" {
		return
	}
	message := fmt.Sprintf("Se registró un diagnóstico en su consulta del %s.", rec.Date)
	m.notify(rec.PatientID, types.NotificationSystem, "Nuevo diagnóstico", message)
}

// ExamResultRecorded notifies the patient that exam results are available
func (m *Manager) ExamResultRecorded(exam *types.LaboratoryExam) {
	if exam.Results == "" {
		return
	}
	message := fmt.Sprintf("Los resultados de %s ya están disponibles.", exam.ExamName)
	m.notify(exam.PatientID, types.NotificationExam, "Resultados de examen", message)
}

// CertificateIssued notifies the patient that a certificate was issued
func (m *Manager) CertificateIssued(cert *types.MedicalCertificate) {
	message := fmt.Sprintf("Se emitió un certificado (%s) a su nombre.", cert.Type)
	m.notify(cert.PatientID, types.NotificationCertificate, "Certificado emitido", message)
}

// notify performs the fire-and-forget write. UserID is a weak reference:
// the target user is not looked up first.
func (m *Manager) notify(userID string, kind types.NotificationType, title, message string) {
	if userID == "" {
		return
	}

	_, err := m.store.AddNotification(&types.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		m.logger.WithError(err).WithField("user_id", userID).Error("failed to write notification")
	}
}
