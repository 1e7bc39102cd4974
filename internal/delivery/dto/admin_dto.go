package dto

type StatsResponse struct {
	Patients        int64 `json:"patients"`
	ApprovedDoctors int64 `json:"approved_doctors"`
	PendingDoctors  int64 `json:"pending_doctors"`
	Appointments    int64 `json:"appointments"`
}
