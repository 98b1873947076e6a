package types

// AppointmentStatus represents appointment status values
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// CanTransitionTo reports whether the status change is part of the normal
// appointment lifecycle. The check is advisory: the store applies whatever
// status a caller writes, and only the scheduling service consults it.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCancelled:
		// Reactivation is allowed.
		return next == StatusPending
	case StatusCompleted:
		return false
	}
	return false
}

// Appointment represents a booked consultation slot.
//
// Date is a calendar day (2006-01-02) and Time a half-hour slot label
// (15:04). Uniqueness of (doctorId, date, time) is not enforced by the
// store; slot availability is an advisory check made before booking.
type Appointment struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patientId"`
	DoctorID  string            `json:"doctorId"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Status    AppointmentStatus `json:"status"`
	Reason    string            `json:"reason,omitempty"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}

// AppointmentUpdates represents a partial update to an appointment
type AppointmentUpdates struct {
	Date   *string            `json:"date,omitempty"`
	Time   *string            `json:"time,omitempty"`
	Status *AppointmentStatus `json:"status,omitempty"`
	Reason *string            `json:"reason,omitempty"`
}
