package entity

// DoctorFilter is a domain-level filter for listing doctors.
// Used by repository layer to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	Status         DoctorStatus // empty means any status
	Name           string       // Filter by fullname (ILIKE)
	Specialization string       // Filter by specialization (ILIKE)
}
