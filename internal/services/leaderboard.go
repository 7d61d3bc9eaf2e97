package services

import (
  "context"
  "fmt"
  "sort"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/easylearn/easylearn-backend/internal/clients/redis"
  "github.com/easylearn/easylearn-backend/internal/logger"
  "github.com/easylearn/easylearn-backend/internal/repos"
)

// Standing is one leaderboard row. Rank uses standard competition ranking:
// tied scores share a rank and the next distinct score skips past the tie, so
// scores 50, 50, 30, 0 rank 1, 1, 3, 4.
type Standing struct {
  Rank       int       `json:"rank"`
  UserID     uuid.UUID `json:"user_id"`
  Username   string    `json:"username"`
  TotalScore int       `json:"total_score"`
}

type LeaderboardService interface {
  Standings(ctx context.Context, userID, groupID uuid.UUID) ([]*Standing, error)
}

type leaderboardService struct {
  db             *gorm.DB
  log            *logger.Logger
  groupRepo      repos.GroupRepo
  membershipRepo repos.MembershipRepo
  quizRepo       repos.QuizRepo
  attemptRepo    repos.QuizAttemptRepo
  cache          redis.LeaderboardCache
}

// NewLeaderboardService takes an optional cache; pass nil to compute standings
// fresh on every call.
func NewLeaderboardService(
  db *gorm.DB,
  baseLog *logger.Logger,
  groupRepo repos.GroupRepo,
  membershipRepo repos.MembershipRepo,
  quizRepo repos.QuizRepo,
  attemptRepo repos.QuizAttemptRepo,
  cache redis.LeaderboardCache,
) LeaderboardService {
  return &leaderboardService{
    db:             db,
    log:            baseLog.With("service", "LeaderboardService"),
    groupRepo:      groupRepo,
    membershipRepo: membershipRepo,
    quizRepo:       quizRepo,
    attemptRepo:    attemptRepo,
    cache:          cache,
  }
}

// Standings computes the group leaderboard over the group's course set.
// Members-only. Every member appears, including those with no attempts yet.
func (s *leaderboardService) Standings(ctx context.Context, userID, groupID uuid.UUID) ([]*Standing, error) {
  groups, err := s.groupRepo.GetByIDs(ctx, nil, []uuid.UUID{groupID})
  if err != nil {
    return nil, fmt.Errorf("retrieve group: %w", err)
  }
  if len(groups) == 0 {
    return nil, fmt.Errorf("%w: group %s", ErrNotFound, groupID)
  }

  membership, err := s.membershipRepo.Get(ctx, nil, groupID, userID)
  if err != nil {
    return nil, fmt.Errorf("retrieve membership: %w", err)
  }
  if membership == nil {
    return nil, fmt.Errorf("%w: not a member of this group", ErrForbidden)
  }

  if s.cache != nil {
    var cached []*Standing
    hit, cErr := s.cache.Get(ctx, groupID, &cached)
    if cErr != nil {
      s.log.Warn("leaderboard cache read failed", "group_id", groupID, "error", cErr)
    } else if hit {
      return cached, nil
    }
  }

  standings, err := s.compute(ctx, groupID)
  if err != nil {
    return nil, err
  }

  if s.cache != nil {
    if cErr := s.cache.Set(ctx, groupID, standings); cErr != nil {
      s.log.Warn("leaderboard cache write failed", "group_id", groupID, "error", cErr)
    }
  }
  return standings, nil
}

func (s *leaderboardService) compute(ctx context.Context, groupID uuid.UUID) ([]*Standing, error) {
  members, err := s.membershipRepo.ListByGroupID(ctx, nil, groupID)
  if err != nil {
    return nil, fmt.Errorf("list members: %w", err)
  }

  courseIDs, err := s.groupRepo.CourseIDsByGroupID(ctx, nil, groupID)
  if err != nil {
    return nil, fmt.Errorf("list group courses: %w", err)
  }
  // A group without courses has nothing to score against.
  if len(courseIDs) == 0 {
    return []*Standing{}, nil
  }

  quizIDs, err := s.quizRepo.InScopeIDsByCourseIDs(ctx, nil, courseIDs)
  if err != nil {
    return nil, fmt.Errorf("resolve quiz scope: %w", err)
  }

  memberIDs := make([]uuid.UUID, 0, len(members))
  for _, m := range members {
    memberIDs = append(memberIDs, m.UserID)
  }

  // One grouped query for everyone; members missing from the result simply
  // have not attempted anything in scope.
  scores := make(map[uuid.UUID]int, len(members))
  if len(quizIDs) > 0 {
    rows, sErr := s.attemptRepo.SumScoresByUserIDs(ctx, nil, memberIDs, quizIDs)
    if sErr != nil {
      return nil, fmt.Errorf("sum member scores: %w", sErr)
    }
    for _, row := range rows {
      scores[row.UserID] = row.TotalScore
    }
  }

  standings := make([]*Standing, 0, len(members))
  for _, m := range members {
    username := ""
    if m.User != nil {
      username = m.User.Username
    }
    standings = append(standings, &Standing{
      UserID:     m.UserID,
      Username:   username,
      TotalScore: scores[m.UserID],
    })
  }

  sort.SliceStable(standings, func(i, j int) bool {
    if standings[i].TotalScore != standings[j].TotalScore {
      return standings[i].TotalScore > standings[j].TotalScore
    }
    return standings[i].Username < standings[j].Username
  })
  RankStandings(standings)
  return standings, nil
}

// RankStandings assigns competition ranks to an already sorted slice.
func RankStandings(standings []*Standing) {
  for i, st := range standings {
    if i > 0 && st.TotalScore == standings[i-1].TotalScore {
      st.Rank = standings[i-1].Rank
      continue
    }
    st.Rank = i + 1
  }
}
