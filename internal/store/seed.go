package store

import (
	"time"

	"github.com/raziqtech/portal-api/internal/models"
)

// DemoSnapshot returns the demo dataset the marketing site ships with.
// Ids are fixed so the seeded accounts are addressable in docs and tests.
func DemoSnapshot() models.Snapshot {
	seededAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	return models.Snapshot{
		Users: []models.User{
			{ID: "1", Email: "admin@raziqtech.com", Name: "Alex Rivera", Role: models.RoleAdmin, Avatar: "https://picsum.photos/seed/admin/200", CreatedAt: seededAt},
			{ID: "2", Email: "jane@raziqtech.com", Name: "Jane Doe", Role: models.RoleEmployee, Avatar: "https://picsum.photos/seed/jane/200", CreatedAt: seededAt},
			{ID: "3", Email: "sam@raziqtech.com", Name: "Sam Smith", Role: models.RoleEmployee, Avatar: "https://picsum.photos/seed/sam/200", CreatedAt: seededAt},
		},
		Profiles: []models.EmployeeProfile{
			{
				ID:           "p1",
				UserID:       "2",
				Username:     "janedoe",
				FullName:     "Jane Doe",
				RoleTitle:    "Senior AI Engineer",
				Bio:          "Pioneer in neural network optimization and computer vision.",
				Skills:       []string{"Python", "PyTorch", "Next.js", "TensorFlow"},
				ResumeURL:    "#",
				PortfolioURL: "https://github.com/janedoe",
				GithubURL:    "https://github.com/janedoe",
				Image:        "https://picsum.photos/seed/jane/400",
				ChatEnabled:  true,
				Projects:     []string{"proj1"},
				Status:       models.ProfileStatusApproved,
			},
			{
				ID:           "p2",
				UserID:       "3",
				Username:     "samsmith",
				FullName:     "Sam Smith",
				RoleTitle:    "Full Stack Architect",
				Bio:          "Expert in building scalable distributed systems and mobile ecosystems.",
				Skills:       []string{"React Native", "Node.js", "AWS", "PostgreSQL"},
				ResumeURL:    "#",
				PortfolioURL: "https://samsmith.dev",
				Image:        "https://picsum.photos/seed/sam/400",
				ChatEnabled:  true,
				Projects:     []string{"proj2"},
				Status:       models.ProfileStatusApproved,
			},
		},
		Projects: []models.Project{
			{
				ID:          "proj1",
				Title:       "EchoVision AI",
				Category:    models.CategoryAI,
				Description: "A real-time sentiment analysis engine for retail audio.",
				Problem:     "Retailers lacked insights into customer satisfaction in physical stores.",
				Solution:    "We deployed an edge-computing AI solution using localized sensors.",
				Outcome:     "Reduced customer dissatisfaction by 40% through real-time staff alerts.",
				TechStack:   []string{"Python", "FastAPI", "Azure IoT", "D3.js"},
				ImageURL:    "https://picsum.photos/seed/tech1/800/600",
				TeamIDs:     []string{"2"},
				Progress:    50,
				Status:      models.ProjectStatusInDevelopment,
				Milestones: []models.Milestone{
					{ID: "m1", Title: "Sensor network deployment", IsCompleted: true, AssignedEngineerID: "2"},
					{ID: "m2", Title: "Sentiment model training", IsCompleted: false, AssignedEngineerID: "2"},
				},
				ClientChatEnabled: true,
				ChatMessages:      []models.ProjectChatMessage{},
			},
			{
				ID:                "proj2",
				Title:             "PaySwift Mobile",
				Category:          models.CategoryMobile,
				Description:       "Cross-border payment platform for emerging markets.",
				Problem:           "High fees and slow processing for international remittances.",
				Solution:          "Blockchain-backed mobile app with instant settlement.",
				Outcome:           "Processing $5M+ in monthly volume with sub-3 second latency.",
				TechStack:         []string{"React Native", "Solidity", "Go", "Firebase"},
				ImageURL:          "https://picsum.photos/seed/tech2/800/600",
				TeamIDs:           []string{"3"},
				Progress:          100,
				Status:            models.ProjectStatusCompleted,
				ClientChatEnabled: false,
				ChatMessages:      []models.ProjectChatMessage{},
			},
		},
		Inquiries: []models.Inquiry{
			{
				ID:          "inq1",
				Name:        "Sarah Jenkins",
				Email:       "sarah@fintech-inc.com",
				ProjectType: "Mobile Development",
				Budget:      "$50,000 - $100,000",
				Message:     "Looking to build a neo-bank app for youth.",
				Status:      models.InquiryStatusNew,
				CreatedAt:   seededAt,
				Thread:      []models.InquiryMessage{},
			},
		},
		StaffRelay:        []models.InternalMessage{},
		DirectAdminRelays: map[string][]models.InternalMessage{},
	}
}

// SeedDemoData loads the demo dataset when the store is still empty, i.e.
// no persisted snapshot existed at startup.
func (s *Store) SeedDemoData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return
	}
	s.restore(DemoSnapshot())
}
