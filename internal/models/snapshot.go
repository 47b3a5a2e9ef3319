package models

// Snapshot is the JSON-serializable aggregate of every collection the store
// owns. It is what persistence drivers load and save, and what the seed
// dataset produces.
type Snapshot struct {
	Users             []User                       `json:"users"`
	Profiles          []EmployeeProfile            `json:"profiles"`
	PendingUpdates    []ProfileUpdateEntry         `json:"pending_updates"`
	Projects          []Project                    `json:"projects"`
	Inquiries         []Inquiry                    `json:"inquiries"`
	StaffRelay        []InternalMessage            `json:"staff_relay"`
	DirectAdminRelays map[string][]InternalMessage `json:"direct_admin_relays"`
}
