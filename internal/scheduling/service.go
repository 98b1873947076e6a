// Package scheduling derives appointment slot availability from the store
// and owns the booking workflow. Availability is advisory: the check is made
// at booking time but is not atomic with the write, so two near-simultaneous
// bookings can both pass it. The clinic is single-operator by construction,
// which keeps that window acceptable.
package scheduling

import (
	"fmt"
	"time"

	"github.com/CrissP24/clinica-joya-sub000/internal/notification"
	"github.com/CrissP24/clinica-joya-sub000/internal/store"
	"github.com/CrissP24/clinica-joya-sub000/pkg/config"
	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Service implements slot derivation and the booking workflow
type Service struct {
	store    *store.Store
	notifier *notification.Manager
	clinic   config.ClinicConfig
	logger   *logger.Logger
}

// New creates a new scheduling service
func New(st *store.Store, notifier *notification.Manager, clinic config.ClinicConfig, log *logger.Logger) *Service {
	return &Service{
		store:    st,
		notifier: notifier,
		clinic:   clinic,
		logger:   log,
	}
}

// slotGrid returns the clinic's slot labels for one day, from opening
// through closing inclusive. With the default configuration that is 08:00
// through 19:30 in half-hour steps, 24 slots.
func (s *Service) slotGrid() ([]string, error) {
	opening, err := time.Parse(timeLayout, s.clinic.OpeningTime)
	if err != nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, fmt.Sprintf("invalid opening time: %v", err))
	}
	closing, err := time.Parse(timeLayout, s.clinic.ClosingTime)
	if err != nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, fmt.Sprintf("invalid closing time: %v", err))
	}

	step := time.Duration(s.clinic.SlotMinutes) * time.Minute
	var grid []string
	for t := opening; !t.After(closing); t = t.Add(step) {
		grid = append(grid, t.Format(timeLayout))
	}
	return grid, nil
}

// AvailableSlots returns the slot labels still free for a doctor on one day:
// the configured grid minus the times already booked with status pending or
// confirmed. Cancelled and completed appointments do not occupy a slot.
func (s *Service) AvailableSlots(doctorID, date string) ([]string, error) {
	if doctorID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "doctor id is required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "date must be in YYYY-MM-DD format")
	}

	appointments, err := s.store.GetAppointmentsByDoctorAndDate(doctorID, date)
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	booked := make(map[string]bool)
	for _, apt := range appointments {
		if apt.Status == types.StatusPending || apt.Status == types.StatusConfirmed {
			booked[apt.Time] = true
		}
	}

	grid, err := s.slotGrid()
	if err != nil {
		return nil, err
	}

	var available []string
	for _, slot := range grid {
		if !booked[slot] {
			available = append(available, slot)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"doctor_id": doctorID,
		"date":      date,
		"available": len(available),
	}).Debug("computed available slots")
	return available, nil
}

// IsSlotAvailable is the point-query form of AvailableSlots. It is used as a
// pre-write guard but is not enforced transactionally.
func (s *Service) IsSlotAvailable(doctorID, date, slot string) (bool, error) {
	available, err := s.AvailableSlots(doctorID, date)
	if err != nil {
		return false, err
	}
	for _, t := range available {
		if t == slot {
			return true, nil
		}
	}
	return false, nil
}

// Book validates the request, checks slot availability and creates the
// appointment. New appointments default to pending. The patient and doctor
// are notified; notification failures never fail the booking.
func (s *Service) Book(apt *types.Appointment) (*types.Appointment, error) {
	if err := s.validate(apt); err != nil {
		return nil, err
	}

	available, err := s.IsSlotAvailable(apt.DoctorID, apt.Date, apt.Time)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, types.NewConflictError(types.ErrCodeSlotTaken,
			fmt.Sprintf("slot %s on %s is not available for this doctor", apt.Time, apt.Date))
	}

	created, err := s.store.AddAppointment(apt)
	if err != nil {
		return nil, err
	}

	s.notifier.AppointmentScheduled(created)

	s.logger.WithField("appointment_id", created.ID).Info("appointment booked")
	return created, nil
}

// UpdateStatus applies a lifecycle transition. The transition rules are
// advisory and only enforced here; callers that go through the raw store
// update bypass them.
func (s *Service) UpdateStatus(id string, next types.AppointmentStatus) (*types.Appointment, error) {
	existing, err := s.store.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}

	if !existing.Status.CanTransitionTo(next) {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("cannot transition appointment from %s to %s", existing.Status, next))
	}

	updated, err := s.store.UpdateAppointment(id, &types.AppointmentUpdates{Status: &next})
	if err != nil {
		return nil, err
	}

	if next == types.StatusCancelled {
		s.notifier.AppointmentCancelled(updated)
	}
	return updated, nil
}

// Cancel moves an appointment to cancelled
func (s *Service) Cancel(id string) (*types.Appointment, error) {
	return s.UpdateStatus(id, types.StatusCancelled)
}

// validate checks the booking request
func (s *Service) validate(apt *types.Appointment) error {
	if apt.PatientID == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "patient id is required")
	}
	if apt.DoctorID == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "doctor id is required")
	}
	if _, err := time.Parse(dateLayout, apt.Date); err != nil {
		return types.NewValidationError(types.ErrCodeInvalidInput, "date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(timeLayout, apt.Time); err != nil {
		return types.NewValidationError(types.ErrCodeInvalidInput, "time must be in HH:MM format")
	}
	if apt.Status != "" && apt.Status != types.StatusPending {
		return types.NewValidationError(types.ErrCodeInvalidInput, "new appointments must start as pending")
	}
	return nil
}
