package models

// The store hands out defensive copies so callers can never alias its
// internal state. Entities with slice or nested fields get explicit Clone
// methods; plain-value entities are safe to copy by assignment.

// Clone returns a deep copy of the profile.
func (p EmployeeProfile) Clone() EmployeeProfile {
	out := p
	out.Skills = append([]string(nil), p.Skills...)
	out.Projects = append([]string(nil), p.Projects...)
	return out
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	out := p
	out.TechStack = append([]string(nil), p.TechStack...)
	out.TeamIDs = append([]string(nil), p.TeamIDs...)
	if p.Milestones != nil {
		out.Milestones = append([]Milestone(nil), p.Milestones...)
	}
	out.ChatMessages = append([]ProjectChatMessage(nil), p.ChatMessages...)
	return out
}

// Clone returns a deep copy of the change set, including the slices behind
// its pointer fields.
func (c ProfileChanges) Clone() ProfileChanges {
	return ProfileChanges{
		Username:     clonePtr(c.Username),
		FullName:     clonePtr(c.FullName),
		RoleTitle:    clonePtr(c.RoleTitle),
		Bio:          clonePtr(c.Bio),
		Skills:       cloneSlicePtr(c.Skills),
		ResumeURL:    clonePtr(c.ResumeURL),
		PortfolioURL: clonePtr(c.PortfolioURL),
		GithubURL:    clonePtr(c.GithubURL),
		LinkedinURL:  clonePtr(c.LinkedinURL),
		Image:        clonePtr(c.Image),
		ChatEnabled:  clonePtr(c.ChatEnabled),
		Projects:     cloneSlicePtr(c.Projects),
	}
}

// Clone returns a deep copy of the pending update entry.
func (e ProfileUpdateEntry) Clone() ProfileUpdateEntry {
	out := e
	out.Changes = e.Changes.Clone()
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlicePtr(p *[]string) *[]string {
	if p == nil {
		return nil
	}
	s := append([]string(nil), (*p)...)
	return &s
}

// Clone returns a deep copy of the inquiry.
func (i Inquiry) Clone() Inquiry {
	out := i
	if i.Thread != nil {
		out.Thread = append([]InquiryMessage(nil), i.Thread...)
	}
	return out
}

// Clone returns a deep copy of the message.
func (m InternalMessage) Clone() InternalMessage {
	out := m
	out.ReadBy = append([]string(nil), m.ReadBy...)
	return out
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Users:          append([]User(nil), s.Users...),
		Profiles:       make([]EmployeeProfile, len(s.Profiles)),
		PendingUpdates: make([]ProfileUpdateEntry, len(s.PendingUpdates)),
		Projects:       make([]Project, len(s.Projects)),
		Inquiries:      make([]Inquiry, len(s.Inquiries)),
		StaffRelay:     make([]InternalMessage, len(s.StaffRelay)),
	}
	for i, p := range s.Profiles {
		out.Profiles[i] = p.Clone()
	}
	for i, e := range s.PendingUpdates {
		out.PendingUpdates[i] = e.Clone()
	}
	for i, p := range s.Projects {
		out.Projects[i] = p.Clone()
	}
	for i, q := range s.Inquiries {
		out.Inquiries[i] = q.Clone()
	}
	for i, m := range s.StaffRelay {
		out.StaffRelay[i] = m.Clone()
	}
	if s.DirectAdminRelays != nil {
		out.DirectAdminRelays = make(map[string][]InternalMessage, len(s.DirectAdminRelays))
		for engineerID, relay := range s.DirectAdminRelays {
			msgs := make([]InternalMessage, len(relay))
			for i, m := range relay {
				msgs[i] = m.Clone()
			}
			out.DirectAdminRelays[engineerID] = msgs
		}
	}
	return out
}
