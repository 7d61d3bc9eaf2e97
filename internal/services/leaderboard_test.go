package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestLeaderboard_CompetitionRanking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.createCourse(t, "Algorithms", false)
	unit := env.createUnit(t, course, "Sorting", 1)
	quiz, _ := env.createQuiz(t, mustUnitScope(t, unit.ID), "sorting quiz", []int{50})

	admin := env.createUser(t, "zoe")
	second := env.createUser(t, "adam")
	third := env.createUser(t, "mia")
	fourth := env.createUser(t, "noah")

	groups := env.groupService()
	group, err := groups.CreateGroup(ctx, admin.ID, "study crew", []uuid.UUID{course.ID})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	for _, u := range []uuid.UUID{second.ID, third.ID, fourth.ID} {
		if _, err := groups.JoinGroup(ctx, u, group.ID); err != nil {
			t.Fatalf("JoinGroup: %v", err)
		}
	}

	env.createAttempt(t, admin.ID, quiz.ID, 50, 50)
	env.createAttempt(t, second.ID, quiz.ID, 50, 50)
	env.createAttempt(t, third.ID, quiz.ID, 30, 50)
	// fourth never attempts anything and must still appear, at rank 4.

	standings, err := env.leaderboardService().Standings(ctx, admin.ID, group.ID)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(standings) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(standings))
	}

	wantRanks := []int{1, 1, 3, 4}
	wantScores := []int{50, 50, 30, 0}
	for i, st := range standings {
		if st.Rank != wantRanks[i] {
			t.Fatalf("row %d: expected rank %d, got %d", i, wantRanks[i], st.Rank)
		}
		if st.TotalScore != wantScores[i] {
			t.Fatalf("row %d: expected score %d, got %d", i, wantScores[i], st.TotalScore)
		}
	}
	// Tied users order alphabetically.
	if standings[0].Username != "adam" || standings[1].Username != "zoe" {
		t.Fatalf("expected tie broken by username, got %s then %s", standings[0].Username, standings[1].Username)
	}
}

func TestLeaderboard_NoCoursesMeansEmptyStandings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "erin")
	group, err := env.groupService().CreateGroup(ctx, admin.ID, "idle group", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	standings, err := env.leaderboardService().Standings(ctx, admin.ID, group.ID)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(standings) != 0 {
		t.Fatalf("expected empty standings for a group without courses, got %d rows", len(standings))
	}
}

func TestLeaderboard_MembersOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "frank")
	outsider := env.createUser(t, "grace")
	group, err := env.groupService().CreateGroup(ctx, admin.ID, "private group", nil)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	lb := env.leaderboardService()
	if _, err := lb.Standings(ctx, outsider.ID, group.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-member, got %v", err)
	}
	if _, err := lb.Standings(ctx, admin.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown group, got %v", err)
	}
}

func TestRankStandings(t *testing.T) {
	cases := []struct {
		name   string
		scores []int
		want   []int
	}{
		{"distinct", []int{30, 20, 10}, []int{1, 2, 3}},
		{"leading tie", []int{50, 50, 30, 0}, []int{1, 1, 3, 4}},
		{"all tied", []int{10, 10, 10}, []int{1, 1, 1}},
		{"tie in the middle", []int{40, 20, 20, 5}, []int{1, 2, 2, 4}},
		{"empty", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			standings := make([]*Standing, 0, len(tc.scores))
			for _, s := range tc.scores {
				standings = append(standings, &Standing{TotalScore: s})
			}
			RankStandings(standings)
			for i, st := range standings {
				if st.Rank != tc.want[i] {
					t.Fatalf("row %d: expected rank %d, got %d", i, tc.want[i], st.Rank)
				}
			}
		})
	}
}
