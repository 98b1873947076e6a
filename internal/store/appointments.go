package store

import "github.com/CrissP24/clinica-joya-sub000/pkg/types"

func appointmentKey(id string) string { return prefixAppointments + id }

// AddAppointment assigns an id and timestamps, persists the appointment and
// returns the stored copy. Status defaults to pending when unset. No
// uniqueness of (doctorId, date, time) is enforced here: the advisory slot
// check lives in the scheduling service and is not atomic with this write.
func (s *Store) AddAppointment(a *types.Appointment) (*types.Appointment, error) {
	now := timestamp()
	created := *a
	created.ID = s.newID()
	created.CreatedAt = now
	created.UpdatedAt = now
	if created.Status == "" {
		created.Status = types.StatusPending
	}

	if err := s.putJSON(appointmentKey(created.ID), &created); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"appointment_id": created.ID,
		"doctor_id":      created.DoctorID,
		"date":           created.Date,
		"time":           created.Time,
	}).Info("appointment created")
	return &created, nil
}

// GetAppointments returns every appointment in the collection
func (s *Store) GetAppointments() ([]*types.Appointment, error) {
	return listJSON[types.Appointment](s, prefixAppointments)
}

// GetAppointmentByID returns one appointment or a not found error
func (s *Store) GetAppointmentByID(id string) (*types.Appointment, error) {
	return getJSON[types.Appointment](s, appointmentKey(id))
}

// GetAppointmentsByPatient returns all appointments for one patient
func (s *Store) GetAppointmentsByPatient(patientID string) ([]*types.Appointment, error) {
	appointments, err := s.GetAppointments()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.Appointment
	for _, a := range appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, err
}

// GetAppointmentsByDoctor returns all appointments for one doctor
func (s *Store) GetAppointmentsByDoctor(doctorID string) ([]*types.Appointment, error) {
	appointments, err := s.GetAppointments()
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.Appointment
	for _, a := range appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, err
}

// GetAppointmentsByDoctorAndDate returns a doctor's appointments on one
// calendar day (date in 2006-01-02 form)
func (s *Store) GetAppointmentsByDoctorAndDate(doctorID, date string) ([]*types.Appointment, error) {
	appointments, err := s.GetAppointmentsByDoctor(doctorID)
	if err != nil && !types.IsDecode(err) {
		return nil, err
	}

	var out []*types.Appointment
	for _, a := range appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, err
}

// UpdateAppointment shallow-merges the provided fields and re-stamps
// updatedAt. Status is applied as given; lifecycle transitions are checked
// only by the scheduling service. Returns a not found error if the
// appointment does not exist.
func (s *Store) UpdateAppointment(id string, updates *types.AppointmentUpdates) (*types.Appointment, error) {
	existing, err := s.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}

	if updates.Date != nil {
		existing.Date = *updates.Date
	}
	if updates.Time != nil {
		existing.Time = *updates.Time
	}
	if updates.Status != nil {
		existing.Status = *updates.Status
	}
	if updates.Reason != nil {
		existing.Reason = *updates.Reason
	}
	existing.UpdatedAt = timestamp()

	if err := s.putJSON(appointmentKey(id), existing); err != nil {
		return nil, err
	}

	s.logger.WithField("appointment_id", id).Info("appointment updated")
	return existing, nil
}

// DeleteAppointment hard-deletes an appointment and reports whether a row
// was removed
func (s *Store) DeleteAppointment(id string) (bool, error) {
	existed, err := s.deleteKey(appointmentKey(id))
	if err != nil {
		return false, err
	}
	if existed {
		s.logger.WithField("appointment_id", id).Info("appointment deleted")
	}
	return existed, nil
}
