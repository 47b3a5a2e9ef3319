package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/raziqtech/portal-api/internal/bus"
	apperrors "github.com/raziqtech/portal-api/internal/errors"
	"github.com/raziqtech/portal-api/internal/models"
	"github.com/raziqtech/portal-api/internal/persistence"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	b := bus.New()
	t.Cleanup(b.Shutdown)

	s, err := New(b, persistence.NewMemorySnapshotter())
	require.NoError(t, err)
	s.SeedDemoData()
	return s
}

func strPtr(s string) *string { return &s }

func TestSeedDemoData(t *testing.T) {
	s := newTestStore(t)

	require.Len(t, s.ListUsers(), 3)
	require.Len(t, s.ListProfiles(), 2)
	require.Len(t, s.ListProjects(), 2)
	require.Len(t, s.ListInquiries(), 1)
	require.Empty(t, s.ListPendingUpdates())

	// Seeding is a no-op once data exists.
	s.SeedDemoData()
	require.Len(t, s.ListUsers(), 3)
}

func TestFindUserByEmail(t *testing.T) {
	s := newTestStore(t)

	user, err := s.FindUserByEmail("Jane@RaziqTech.com")
	require.NoError(t, err)
	require.Equal(t, "2", user.ID)

	_, err = s.FindUserByEmail("nobody@raziqtech.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListReturnsDefensiveCopies(t *testing.T) {
	s := newTestStore(t)

	projects := s.ListProjects()
	projects[0].Title = "mutated"
	projects[0].TechStack[0] = "mutated"

	fresh, err := s.GetProject(projects[0].ID)
	require.NoError(t, err)
	require.NotEqual(t, "mutated", fresh.Title)
	require.NotEqual(t, "mutated", fresh.TechStack[0])

	// Pending updates must not alias store state through their pointer fields.
	_, err = s.RequestProfileUpdate("p1", models.ProfileChanges{Bio: strPtr("original bio")})
	require.NoError(t, err)

	pending := s.ListPendingUpdates()
	require.Len(t, pending, 1)
	*pending[0].Changes.Bio = "tampered"

	entry, err := s.GetPendingUpdate(pending[0].ID)
	require.NoError(t, err)
	require.Equal(t, "original bio", *entry.Changes.Bio)
	*entry.Changes.Bio = "tampered"

	again := s.ListPendingUpdates()
	require.Equal(t, "original bio", *again[0].Changes.Bio)
}

func TestAddEmployee(t *testing.T) {
	s := newTestStore(t)

	user, profile, err := s.AddEmployee(
		NewUserInput{Email: "lin@raziqtech.com", Name: "Lin Park"},
		NewProfileInput{Username: "linpark", FullName: "Lin Park", RoleTitle: "Platform Engineer", Skills: []string{"Go"}},
	)
	require.NoError(t, err)
	require.Equal(t, models.RoleEmployee, user.Role)
	require.Equal(t, user.ID, profile.UserID)
	require.Equal(t, models.ProfileStatusApproved, profile.Status)
	require.Len(t, s.ListUsers(), 4)
	require.Len(t, s.ListProfiles(), 3)
}

func TestAddEmployeeDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.AddEmployee(
		NewUserInput{Email: "jane@raziqtech.com", Name: "Other Jane"},
		NewProfileInput{Username: "otherjane"},
	)
	require.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	require.Len(t, s.ListUsers(), 3)
}

func TestAddEmployeeDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.AddEmployee(
		NewUserInput{Email: "fresh@raziqtech.com", Name: "Fresh"},
		NewProfileInput{Username: "janedoe"},
	)
	require.ErrorIs(t, err, apperrors.ErrDuplicateUsername)
}

func TestUpdateEmployeeRecasedOwnEmail(t *testing.T) {
	s := newTestStore(t)

	// Changing only the casing of the linked user's own address is not a
	// duplicate.
	profile, err := s.UpdateEmployee("p1", models.ProfileChanges{}, models.UserChanges{Email: strPtr("Jane@RaziqTech.com")})
	require.NoError(t, err)
	require.Equal(t, "p1", profile.ID)

	user, err := s.GetUser("2")
	require.NoError(t, err)
	require.Equal(t, "Jane@RaziqTech.com", user.Email)

	// A different user's address is still rejected regardless of case.
	_, err = s.UpdateEmployee("p1", models.ProfileChanges{}, models.UserChanges{Email: strPtr("Admin@RaziqTech.com")})
	require.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestDeleteEmployeeCascadesToLinkedUserOnly(t *testing.T) {
	s := newTestStore(t)

	usersBefore := len(s.ListUsers())
	profilesBefore := len(s.ListProfiles())
	projectsBefore := len(s.ListProjects())
	inquiriesBefore := len(s.ListInquiries())

	require.NoError(t, s.DeleteEmployee("p1"))

	require.Len(t, s.ListProfiles(), profilesBefore-1)
	require.Len(t, s.ListUsers(), usersBefore-1)
	_, err := s.GetUser("2")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	// Nothing else changes.
	require.Len(t, s.ListProjects(), projectsBefore)
	require.Len(t, s.ListInquiries(), inquiriesBefore)
}

func TestDeleteEmployeeNotFound(t *testing.T) {
	s := newTestStore(t)
	require.ErrorIs(t, s.DeleteEmployee("missing"), apperrors.ErrNotFound)
}

func TestProfileUpdateApprovalFlow(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.RequestProfileUpdate("p1", models.ProfileChanges{Bio: strPtr("new bio")})
	require.NoError(t, err)

	profile, err := s.GetProfile("p1")
	require.NoError(t, err)
	require.Equal(t, models.ProfileStatusPendingApproval, profile.Status)
	require.Len(t, s.ListPendingUpdates(), 1)

	updated, err := s.ApproveProfileUpdate(entry.ID)
	require.NoError(t, err)
	require.Equal(t, "new bio", updated.Bio)
	require.Equal(t, models.ProfileStatusApproved, updated.Status)
	require.Empty(t, s.ListPendingUpdates())
}

func TestProfileUpdateRejectDiscardsChanges(t *testing.T) {
	s := newTestStore(t)

	before, err := s.GetProfile("p1")
	require.NoError(t, err)

	entry, err := s.RequestProfileUpdate("p1", models.ProfileChanges{Bio: strPtr("rejected bio")})
	require.NoError(t, err)

	after, err := s.RejectProfileUpdate(entry.ID)
	require.NoError(t, err)
	require.Equal(t, before.Bio, after.Bio)
	require.Equal(t, models.ProfileStatusApproved, after.Status)
	require.Empty(t, s.ListPendingUpdates())
}

func TestProfileStatusMatchesPendingEntries(t *testing.T) {
	s := newTestStore(t)

	assertInvariant := func() {
		pending := map[string]bool{}
		for _, e := range s.ListPendingUpdates() {
			pending[e.EmployeeID] = true
		}
		for _, p := range s.ListProfiles() {
			require.Equal(t, pending[p.ID], p.Status == models.ProfileStatusPendingApproval,
				"profile %s status out of sync with pending entries", p.ID)
		}
	}

	assertInvariant()
	entry, err := s.RequestProfileUpdate("p2", models.ProfileChanges{RoleTitle: strPtr("Principal Architect")})
	require.NoError(t, err)
	assertInvariant()
	_, err = s.ApproveProfileUpdate(entry.ID)
	require.NoError(t, err)
	assertInvariant()
}

func TestSecondPendingRequestRejected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RequestProfileUpdate("p1", models.ProfileChanges{Bio: strPtr("first")})
	require.NoError(t, err)

	_, err = s.RequestProfileUpdate("p1", models.ProfileChanges{Bio: strPtr("second")})
	require.ErrorIs(t, err, apperrors.ErrInvalidApprovalState)
	require.Len(t, s.ListPendingUpdates(), 1)
}

func TestRequestProfileUpdateNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RequestProfileUpdate("missing", models.ProfileChanges{})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolveUnknownUpdate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ApproveProfileUpdate("missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.RejectProfileUpdate("missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSignupClient(t *testing.T) {
	s := newTestStore(t)

	user, err := s.SignupClient("Sarah Jenkins", "x@y.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleClient, user.Role)
	require.Len(t, s.ListUsers(), 4)

	_, err = s.SignupClient("Sarah Again", "x@y.com")
	require.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	require.Len(t, s.ListUsers(), 4)
}

func TestAddProjectDerivesProgressFromMilestones(t *testing.T) {
	s := newTestStore(t)

	project, err := s.AddProject(NewProjectInput{
		Title:    "Atlas CRM",
		Category: models.CategoryWeb,
		Progress: 90,
		Milestones: []models.Milestone{
			{Title: "A", IsCompleted: false},
			{Title: "B", IsCompleted: true},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 50, project.Progress)
	require.NotEmpty(t, project.Milestones[0].ID)
	require.Empty(t, project.ChatMessages)
}

func TestAddProjectWithoutMilestonesKeepsManualProgress(t *testing.T) {
	s := newTestStore(t)

	project, err := s.AddProject(NewProjectInput{Title: "Atlas CRM", Category: models.CategoryWeb, Progress: 35})
	require.NoError(t, err)
	require.Equal(t, 35, project.Progress)
	require.Equal(t, models.ProjectStatusInPlanning, project.Status)
}

func TestUpdateProjectRecomputesProgressOnMilestoneReplacement(t *testing.T) {
	s := newTestStore(t)

	milestones := []models.Milestone{
		{Title: "A", IsCompleted: true},
		{Title: "B", IsCompleted: true},
		{Title: "C", IsCompleted: false},
	}
	project, err := s.UpdateProject("proj2", models.ProjectChanges{Milestones: &milestones})
	require.NoError(t, err)
	require.Equal(t, 67, project.Progress)
}

func TestMilestoneMutationsRecomputeProgress(t *testing.T) {
	s := newTestStore(t)

	// proj1 seeds with 1 of 2 milestones complete.
	project, err := s.GetProject("proj1")
	require.NoError(t, err)
	require.Equal(t, 50, project.Progress)

	added, err := s.AddMilestone("proj1", models.Milestone{Title: "Pilot rollout"})
	require.NoError(t, err)
	project, err = s.GetProject("proj1")
	require.NoError(t, err)
	require.Equal(t, 33, project.Progress)

	project, err = s.SetMilestoneCompletion("proj1", added.ID, true)
	require.NoError(t, err)
	require.Equal(t, 67, project.Progress)

	require.NoError(t, s.DeleteMilestone("proj1", added.ID))
	project, err = s.GetProject("proj1")
	require.NoError(t, err)
	require.Equal(t, 50, project.Progress)
}

func TestUpdateMilestone(t *testing.T) {
	s := newTestStore(t)

	completed := true
	milestone, err := s.UpdateMilestone("proj1", "m2", MilestoneChanges{IsCompleted: &completed})
	require.NoError(t, err)
	require.True(t, milestone.IsCompleted)

	project, err := s.GetProject("proj1")
	require.NoError(t, err)
	require.Equal(t, 100, project.Progress)

	_, err = s.UpdateMilestone("proj1", "missing", MilestoneChanges{})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteProjectNoCascade(t *testing.T) {
	s := newTestStore(t)

	inquiriesBefore := len(s.ListInquiries())
	require.NoError(t, s.DeleteProject("proj1"))
	require.Len(t, s.ListProjects(), 1)
	require.Len(t, s.ListInquiries(), inquiriesBefore)

	require.ErrorIs(t, s.DeleteProject("proj1"), apperrors.ErrNotFound)
}

func TestAddProjectChatMessage(t *testing.T) {
	s := newTestStore(t)

	admin, err := s.GetUser("1")
	require.NoError(t, err)

	first, err := s.AddProjectChatMessage("proj1", *admin, "Kickoff today", true)
	require.NoError(t, err)
	second, err := s.AddProjectChatMessage("proj1", *admin, "Internal note", false)
	require.NoError(t, err)

	project, err := s.GetProject("proj1")
	require.NoError(t, err)
	require.Len(t, project.ChatMessages, 2)
	require.Equal(t, first.ID, project.ChatMessages[0].ID)
	require.Equal(t, second.ID, project.ChatMessages[1].ID)
	require.False(t, project.ChatMessages[0].Timestamp.After(project.ChatMessages[1].Timestamp))
	require.Equal(t, models.RoleAdmin, project.ChatMessages[0].SenderRole)
}

func TestStaffRelayReadTracking(t *testing.T) {
	s := newTestStore(t)

	admin, err := s.GetUser("1")
	require.NoError(t, err)

	message, err := s.AddStaffMessage(*admin, "Standup moved to 10am")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, message.ReadBy)

	s.MarkStaffRead("2")
	relay := s.ListStaffRelay()
	require.Equal(t, []string{"1", "2"}, relay[0].ReadBy)

	// Idempotent: a second mark changes nothing.
	s.MarkStaffRead("2")
	relay = s.ListStaffRelay()
	require.Equal(t, []string{"1", "2"}, relay[0].ReadBy)
}

func TestDirectRelay(t *testing.T) {
	s := newTestStore(t)

	admin, err := s.GetUser("1")
	require.NoError(t, err)

	message, err := s.AddDirectMessage("2", *admin, "Your access is provisioned")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, message.ReadBy)

	require.Len(t, s.ListDirectRelay("2"), 1)
	require.Empty(t, s.ListDirectRelay("3"))

	s.MarkDirectRead("2", "2")
	s.MarkDirectRead("2", "2")
	relay := s.ListDirectRelay("2")
	require.Equal(t, []string{"1", "2"}, relay[0].ReadBy)

	// Direct relays are keyed by engineer; the admin is not a valid key.
	_, err = s.AddDirectMessage("1", *admin, "no-op")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddInquiry(t *testing.T) {
	s := newTestStore(t)

	inquiry, err := s.AddInquiry(NewInquiryInput{
		Name:        "Marco Silva",
		Email:       "marco@logistics.co",
		ProjectType: "Web Development",
		Message:     "We need a fleet dashboard.",
	})
	require.NoError(t, err)
	require.Equal(t, models.InquiryStatusNew, inquiry.Status)
	require.Empty(t, inquiry.Thread)

	// Newest first.
	inquiries := s.ListInquiries()
	require.Equal(t, inquiry.ID, inquiries[0].ID)
}

func TestInquiryReplyForcesRepliedStatus(t *testing.T) {
	s := newTestStore(t)

	admin, err := s.GetUser("1")
	require.NoError(t, err)

	inquiry, err := s.AddInquiryReply("inq1", *admin, "Thanks for reaching out!")
	require.NoError(t, err)
	require.Equal(t, models.InquiryStatusReplied, inquiry.Status)
	require.Len(t, inquiry.Thread, 1)
	require.Equal(t, "1", inquiry.Thread[0].SenderID)

	_, err = s.AddInquiryReply("missing", *admin, "hello?")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateInquiryStatus(t *testing.T) {
	s := newTestStore(t)

	inquiry, err := s.UpdateInquiryStatus("inq1", models.InquiryStatusArchived)
	require.NoError(t, err)
	require.Equal(t, models.InquiryStatusArchived, inquiry.Status)

	_, err = s.UpdateInquiryStatus("missing", models.InquiryStatusRead)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMutationsBroadcastOnBus(t *testing.T) {
	b := bus.New()
	t.Cleanup(b.Shutdown)

	s, err := New(b, persistence.NewMemorySnapshotter())
	require.NoError(t, err)
	s.SeedDemoData()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := b.Subscribe(ctx)

	_, err = s.UpdateInquiryStatus("inq1", models.InquiryStatusRead)
	require.NoError(t, err)

	select {
	case event := <-events:
		require.Equal(t, bus.EntityInquiry, event.Entity)
		require.Equal(t, bus.ActionUpdated, event.Action)
		require.Equal(t, "inq1", event.ID)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestStorePersistsSnapshotAcrossRestarts(t *testing.T) {
	b := bus.New()
	t.Cleanup(b.Shutdown)

	snapshotter := persistence.NewFileSnapshotter(t.TempDir() + "/snapshot.json")

	s, err := New(b, snapshotter)
	require.NoError(t, err)
	s.SeedDemoData()
	_, err = s.SignupClient("Sarah", "sarah@client.com")
	require.NoError(t, err)

	// A second store over the same backend sees the persisted state.
	restarted, err := New(b, snapshotter)
	require.NoError(t, err)
	user, err := restarted.FindUserByEmail("sarah@client.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleClient, user.Role)
}
