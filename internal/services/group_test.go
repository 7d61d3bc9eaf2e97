package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGroup_CreateMakesAdminMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "hank")
	course := env.createCourse(t, "Databases", false)

	group, err := env.groupService().CreateGroup(ctx, admin.ID, "db club", []uuid.UUID{course.ID})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if group.AdminID != admin.ID {
		t.Fatalf("expected admin %s, got %s", admin.ID, group.AdminID)
	}

	membership, err := env.membershipRepo.Get(ctx, nil, group.ID, admin.ID)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if membership == nil || !membership.IsGroupAdmin {
		t.Fatal("creator must be a group admin member")
	}

	courseIDs, err := env.groupRepo.CourseIDsByGroupID(ctx, nil, group.ID)
	if err != nil {
		t.Fatalf("group course ids: %v", err)
	}
	if len(courseIDs) != 1 || courseIDs[0] != course.ID {
		t.Fatalf("expected the course attached, got %v", courseIDs)
	}
}

func TestGroup_CreateRejectsUnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.createUser(t, "iris")

	_, err := env.groupService().CreateGroup(ctx, admin.ID, "ghost courses", []uuid.UUID{uuid.New()})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestGroup_JoinIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "jack")
	member := env.createUser(t, "kate")
	groups := env.groupService()

	group, err := groups.CreateGroup(ctx, admin.ID, "joiners", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	first, err := groups.JoinGroup(ctx, member.ID, group.ID)
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	second, err := groups.JoinGroup(ctx, member.ID, group.ID)
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat join must return the existing membership, got %s and %s", first.ID, second.ID)
	}

	count, err := env.membershipRepo.CountByGroupID(ctx, nil, group.ID)
	if err != nil {
		t.Fatalf("count members: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 members, got %d", count)
	}
}

func TestGroup_SoleAdminCannotLeaveWithMembersRemaining(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "liam")
	member := env.createUser(t, "mona")
	groups := env.groupService()

	group, err := groups.CreateGroup(ctx, admin.ID, "stuck admin", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := groups.JoinGroup(ctx, member.ID, group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := groups.LeaveGroup(ctx, admin.ID, group.ID); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for sole admin leaving, got %v", err)
	}

	// After promoting the other member the admin can leave.
	if err := groups.PromoteMember(ctx, admin.ID, group.ID, member.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if err := groups.LeaveGroup(ctx, admin.ID, group.ID); err != nil {
		t.Fatalf("leave after promotion: %v", err)
	}

	count, err := env.membershipRepo.CountByGroupID(ctx, nil, group.ID)
	if err != nil {
		t.Fatalf("count members: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 remaining member, got %d", count)
	}
}

func TestGroup_LastMemberLeavingDeletesGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "nina")
	groups := env.groupService()

	group, err := groups.CreateGroup(ctx, admin.ID, "short lived", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if err := groups.LeaveGroup(ctx, admin.ID, group.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}

	remaining, err := env.groupRepo.GetByIDs(ctx, nil, []uuid.UUID{group.ID})
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatal("group should be deleted when the last member leaves")
	}
}

func TestGroup_LeaveWithoutMembershipIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "nora")
	outsider := env.createUser(t, "owen")
	groups := env.groupService()

	group, err := groups.CreateGroup(ctx, admin.ID, "no outsiders", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	if err := groups.LeaveGroup(ctx, outsider.ID, group.ID); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for non-member leave, got %v", err)
	}
	if err := groups.LeaveGroup(ctx, outsider.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown group, got %v", err)
	}
}

func TestGroup_OwningAdminRejoinsAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "pam")
	member := env.createUser(t, "reed")
	groups := env.groupService()

	group, err := groups.CreateGroup(ctx, admin.ID, "revolving door", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := groups.JoinGroup(ctx, member.ID, group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := groups.PromoteMember(ctx, admin.ID, group.ID, member.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if err := groups.LeaveGroup(ctx, admin.ID, group.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}

	rejoined, err := groups.JoinGroup(ctx, admin.ID, group.ID)
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if !rejoined.IsGroupAdmin {
		t.Fatal("the group's owning admin must rejoin with the admin flag set")
	}

	// A regular member cycling through keeps no special role.
	if err := groups.LeaveGroup(ctx, member.ID, group.ID); err != nil {
		t.Fatalf("member leave: %v", err)
	}
	back, err := groups.JoinGroup(ctx, member.ID, group.ID)
	if err != nil {
		t.Fatalf("member rejoin: %v", err)
	}
	if back.IsGroupAdmin {
		t.Fatal("a non-owning member must rejoin without the admin flag")
	}
}

func TestGroup_GetGroupIsMembersOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "omar")
	outsider := env.createUser(t, "pia")
	groups := env.groupService()

	group, err := groups.CreateGroup(ctx, admin.ID, "members only", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	if _, err := groups.GetGroup(ctx, outsider.ID, group.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}

	detail, err := groups.GetGroup(ctx, admin.ID, group.ID)
	if err != nil {
		t.Fatalf("GetGroup as member: %v", err)
	}
	if len(detail.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(detail.Members))
	}
}

func TestGroup_UpdateCoursesRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "quinn")
	member := env.createUser(t, "rosa")
	course := env.createCourse(t, "Security", false)
	groups := env.groupService()

	group, err := groups.CreateGroup(ctx, admin.ID, "curriculum", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := groups.JoinGroup(ctx, member.ID, group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if _, err := groups.UpdateGroupCourses(ctx, member.ID, group.ID, []uuid.UUID{course.ID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	updated, err := groups.UpdateGroupCourses(ctx, admin.ID, group.ID, []uuid.UUID{course.ID})
	if err != nil {
		t.Fatalf("UpdateGroupCourses as admin: %v", err)
	}
	if len(updated.Courses) != 1 || updated.Courses[0].ID != course.ID {
		t.Fatal("expected the course set replaced")
	}
}

func TestGroup_PromoteRequiresAdminAndMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "sara")
	member := env.createUser(t, "tony")
	outsider := env.createUser(t, "uma")
	groups := env.groupService()

	group, err := groups.CreateGroup(ctx, admin.ID, "promotions", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := groups.JoinGroup(ctx, member.ID, group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := groups.PromoteMember(ctx, member.ID, group.ID, member.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden when a non-admin promotes, got %v", err)
	}
	if err := groups.PromoteMember(ctx, admin.ID, group.ID, outsider.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when promoting a non-member, got %v", err)
	}

	if err := groups.PromoteMember(ctx, admin.ID, group.ID, member.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	promoted, err := env.membershipRepo.Get(ctx, nil, group.ID, member.ID)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if promoted == nil || !promoted.IsGroupAdmin {
		t.Fatal("member should be a group admin after promotion")
	}
}
