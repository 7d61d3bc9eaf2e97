package services

import (
  "context"
  "errors"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/clients/redis"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/normalization"
  "github.com/easylearn/easylearn-backend/internal/repos"
  "github.com/easylearn/easylearn-backend/internal/types"
)

// GroupDetail is a group with its member roster.
type GroupDetail struct {
  Group   *types.LearningGroup     `json:"group"`
  Members []*types.GroupMembership `json:"members"`
}

type GroupService interface {
  CreateGroup(ctx context.Context, userID uuid.UUID, title string, courseIDs []uuid.UUID) (*types.LearningGroup, error)
  JoinGroup(ctx context.Context, userID, groupID uuid.UUID) (*types.GroupMembership, error)
  LeaveGroup(ctx context.Context, userID, groupID uuid.UUID) error
  ListMyGroups(ctx context.Context, userID uuid.UUID) ([]*types.LearningGroup, error)
  GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*GroupDetail, error)
  UpdateGroupCourses(ctx context.Context, userID, groupID uuid.UUID, courseIDs []uuid.UUID) (*types.LearningGroup, error)
  PromoteMember(ctx context.Context, userID, groupID, targetUserID uuid.UUID) error
}

type groupService struct {
  db             *gorm.DB
  log            *logger.Logger
  groupRepo      repos.GroupRepo
  membershipRepo repos.MembershipRepo
  courseRepo     repos.CourseRepo
  cache          redis.LeaderboardCache
}

func NewGroupService(
  db *gorm.DB,
  baseLog *logger.Logger,
  groupRepo repos.GroupRepo,
  membershipRepo repos.MembershipRepo,
  courseRepo repos.CourseRepo,
  cache redis.LeaderboardCache,
) GroupService {
  return &groupService{
    db:             db,
    log:            baseLog.With("service", "GroupService"),
    groupRepo:      groupRepo,
    membershipRepo: membershipRepo,
    courseRepo:     courseRepo,
    cache:          cache,
  }
}

// CreateGroup creates the group, its course list and the creator's admin
// membership in one transaction. A group never exists without an admin member.
func (s *groupService) CreateGroup(ctx context.Context, userID uuid.UUID, title string, courseIDs []uuid.UUID) (*types.LearningGroup, error) {
  title = normalization.TrimInputString(title)
  if title == "" {
    return nil, fmt.Errorf("%w: group title is required", ErrBadRequest)
  }

  courses, err := s.resolveCourses(ctx, courseIDs)
  if err != nil {
    return nil, err
  }

  group := &types.LearningGroup{
    ID:      uuid.New(),
    Title:   title,
    AdminID: userID,
  }
  err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := s.groupRepo.Create(ctx, tx, []*types.LearningGroup{group}); cErr != nil {
      return fmt.Errorf("create group: %w", cErr)
    }
    if len(courses) > 0 {
      if rErr := s.groupRepo.ReplaceCourses(ctx, tx, group, courses); rErr != nil {
        return fmt.Errorf("attach courses: %w", rErr)
      }
    }
    membership := &types.GroupMembership{
      ID:           uuid.New(),
      GroupID:      group.ID,
      UserID:       userID,
      IsGroupAdmin: true,
      JoinedAt:     time.Now(),
    }
    if _, mErr := s.membershipRepo.Create(ctx, tx, []*types.GroupMembership{membership}); mErr != nil {
      return fmt.Errorf("create admin membership: %w", mErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  group.Courses = courses
  return group, nil
}

// JoinGroup is idempotent: joining a group you already belong to returns the
// existing membership unchanged. The group's owning admin joins with the admin
// flag set, so an admin who left and comes back keeps the role.
func (s *groupService) JoinGroup(ctx context.Context, userID, groupID uuid.UUID) (*types.GroupMembership, error) {
  group, err := s.requireGroup(ctx, groupID)
  if err != nil {
    return nil, err
  }

  membership := &types.GroupMembership{
    ID:           uuid.New(),
    GroupID:      groupID,
    UserID:       userID,
    IsGroupAdmin: userID == group.AdminID,
    JoinedAt:     time.Now(),
  }
  if _, err := s.membershipRepo.Create(ctx, nil, []*types.GroupMembership{membership}); err != nil {
    if errors.Is(err, gorm.ErrDuplicatedKey) {
      existing, gErr := s.membershipRepo.Get(ctx, nil, groupID, userID)
      if gErr != nil {
        return nil, fmt.Errorf("retrieve existing membership: %w", gErr)
      }
      return existing, nil
    }
    return nil, fmt.Errorf("create membership: %w", err)
  }
  return membership, nil
}

// LeaveGroup enforces the admin invariants: the last member leaving deletes
// the group, and a sole admin with members remaining must promote someone
// first.
func (s *groupService) LeaveGroup(ctx context.Context, userID, groupID uuid.UUID) error {
  if _, err := s.requireGroup(ctx, groupID); err != nil {
    return err
  }

  membership, err := s.membershipRepo.Get(ctx, nil, groupID, userID)
  if err != nil {
    return fmt.Errorf("retrieve membership: %w", err)
  }
  if membership == nil {
    return fmt.Errorf("%w: not a member of this group", ErrBadRequest)
  }

  return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    memberCount, cErr := s.membershipRepo.CountByGroupID(ctx, tx, groupID)
    if cErr != nil {
      return fmt.Errorf("count members: %w", cErr)
    }
    if memberCount <= 1 {
      // Last member out turns off the lights.
      if dErr := s.groupRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{groupID}); dErr != nil {
        return fmt.Errorf("delete empty group: %w", dErr)
      }
      s.invalidateStandings(ctx, groupID)
      return nil
    }

    if membership.IsGroupAdmin {
      adminCount, aErr := s.membershipRepo.CountAdminsByGroupID(ctx, tx, groupID)
      if aErr != nil {
        return fmt.Errorf("count admins: %w", aErr)
      }
      if adminCount <= 1 {
        return fmt.Errorf("%w: promote another member to admin before leaving", ErrBadRequest)
      }
    }

    if dErr := s.membershipRepo.FullDelete(ctx, tx, groupID, userID); dErr != nil {
      return fmt.Errorf("delete membership: %w", dErr)
    }
    s.invalidateStandings(ctx, groupID)
    return nil
  })
}

func (s *groupService) ListMyGroups(ctx context.Context, userID uuid.UUID) ([]*types.LearningGroup, error) {
  groups, err := s.groupRepo.ListByMemberUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("list my groups: %w", err)
  }
  return groups, nil
}

// GetGroup is members-only.
func (s *groupService) GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*GroupDetail, error) {
  group, err := s.requireGroup(ctx, groupID)
  if err != nil {
    return nil, err
  }
  if _, err := s.requireMembership(ctx, groupID, userID); err != nil {
    return nil, err
  }

  members, err := s.membershipRepo.ListByGroupID(ctx, nil, groupID)
  if err != nil {
    return nil, fmt.Errorf("list members: %w", err)
  }
  return &GroupDetail{Group: group, Members: members}, nil
}

// UpdateGroupCourses replaces the group's curriculum. Admin only; the cached
// leaderboard is dropped because the quiz scope just changed.
func (s *groupService) UpdateGroupCourses(ctx context.Context, userID, groupID uuid.UUID, courseIDs []uuid.UUID) (*types.LearningGroup, error) {
  group, err := s.requireGroup(ctx, groupID)
  if err != nil {
    return nil, err
  }
  if err := s.requireAdmin(ctx, groupID, userID); err != nil {
    return nil, err
  }

  courses, err := s.resolveCourses(ctx, courseIDs)
  if err != nil {
    return nil, err
  }
  if err := s.groupRepo.ReplaceCourses(ctx, nil, group, courses); err != nil {
    return nil, fmt.Errorf("replace courses: %w", err)
  }
  s.invalidateStandings(ctx, groupID)

  group.Courses = courses
  return group, nil
}

// PromoteMember grants group admin to another member. Admin only.
func (s *groupService) PromoteMember(ctx context.Context, userID, groupID, targetUserID uuid.UUID) error {
  if _, err := s.requireGroup(ctx, groupID); err != nil {
    return err
  }
  if err := s.requireAdmin(ctx, groupID, userID); err != nil {
    return err
  }

  target, err := s.membershipRepo.Get(ctx, nil, groupID, targetUserID)
  if err != nil {
    return fmt.Errorf("retrieve target membership: %w", err)
  }
  if target == nil {
    return fmt.Errorf("%w: user is not a member of this group", ErrNotFound)
  }
  if target.IsGroupAdmin {
    return nil
  }
  if err := s.membershipRepo.SetGroupAdmin(ctx, nil, groupID, targetUserID, true); err != nil {
    return fmt.Errorf("promote member: %w", err)
  }
  return nil
}

func (s *groupService) requireGroup(ctx context.Context, groupID uuid.UUID) (*types.LearningGroup, error) {
  groups, err := s.groupRepo.GetByIDs(ctx, nil, []uuid.UUID{groupID})
  if err != nil {
    return nil, fmt.Errorf("retrieve group: %w", err)
  }
  if len(groups) == 0 {
    return nil, fmt.Errorf("%w: group %s", ErrNotFound, groupID)
  }
  return groups[0], nil
}

func (s *groupService) requireMembership(ctx context.Context, groupID, userID uuid.UUID) (*types.GroupMembership, error) {
  membership, err := s.membershipRepo.Get(ctx, nil, groupID, userID)
  if err != nil {
    return nil, fmt.Errorf("retrieve membership: %w", err)
  }
  if membership == nil {
    return nil, fmt.Errorf("%w: not a member of this group", ErrForbidden)
  }
  return membership, nil
}

func (s *groupService) requireAdmin(ctx context.Context, groupID, userID uuid.UUID) error {
  membership, err := s.requireMembership(ctx, groupID, userID)
  if err != nil {
    return err
  }
  if !membership.IsGroupAdmin {
    return fmt.Errorf("%w: requires group admin", ErrForbidden)
  }
  return nil
}

func (s *groupService) resolveCourses(ctx context.Context, courseIDs []uuid.UUID) ([]*types.Course, error) {
  if len(courseIDs) == 0 {
    return []*types.Course{}, nil
  }
  courses, err := s.courseRepo.GetByIDs(ctx, nil, courseIDs)
  if err != nil {
    return nil, fmt.Errorf("retrieve courses: %w", err)
  }
  if len(courses) != len(courseIDs) {
    return nil, fmt.Errorf("%w: one or more courses do not exist", ErrBadRequest)
  }
  return courses, nil
}

func (s *groupService) invalidateStandings(ctx context.Context, groupID uuid.UUID) {
  if s.cache == nil {
    return
  }
  if err := s.cache.Invalidate(ctx, []uuid.UUID{groupID}); err != nil {
    s.log.Warn("leaderboard cache invalidation failed", "group_id", groupID, "error", err)
  }
}
