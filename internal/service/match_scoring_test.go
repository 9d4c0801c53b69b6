package service

import (
	"testing"

	"matchchat-be/internal/entity"
)

func TestScoreCandidate(t *testing.T) {
	me := &entity.Profile{
		Email:  "me@x.com",
		Gender: entity.GenderMale,
		Mbti:   "INFP",
		Tags:   []string{"coffee", "hiking", "film"},
	}

	tests := []struct {
		name      string
		candidate *entity.Profile
		wantNil   bool
		wantScore int
	}{
		{
			name:      "self is skipped",
			candidate: &entity.Profile{Email: "me@x.com", Gender: entity.GenderFemale, Mbti: "ENFJ"},
			wantNil:   true,
		},
		{
			name:      "same gender is skipped",
			candidate: &entity.Profile{Email: "other@x.com", Gender: entity.GenderMale, Mbti: "ENFJ"},
			wantNil:   true,
		},
		{
			name:      "best mbti pair no tags",
			candidate: &entity.Profile{Email: "a@x.com", Gender: entity.GenderFemale, Mbti: "ENFJ"},
			wantScore: 5,
		},
		{
			name: "mbti plus common tags",
			candidate: &entity.Profile{
				Email: "b@x.com", Gender: entity.GenderFemale, Mbti: "ENFJ",
				Tags: []string{"coffee", "film", "opera"},
			},
			wantScore: 7,
		},
		{
			name:      "unknown mbti scores tags only",
			candidate: &entity.Profile{Email: "c@x.com", Gender: entity.GenderFemale, Mbti: "XXXX", Tags: []string{"coffee"}},
			wantScore: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := scoreCandidate(me, tt.candidate)
			if tt.wantNil {
				if rec != nil {
					t.Fatalf("expected nil recommendation, got %+v", rec)
				}
				return
			}
			if rec == nil {
				t.Fatal("expected a recommendation, got nil")
			}
			if rec.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", rec.Score, tt.wantScore)
			}
		})
	}
}

func TestRankCandidatesDescending(t *testing.T) {
	me := &entity.Profile{Email: "me@x.com", Gender: entity.GenderMale, Mbti: "INFP"}
	candidates := []*entity.Profile{
		{Email: "low@x.com", Gender: entity.GenderFemale, Mbti: "ISTJ"},  // 1
		{Email: "high@x.com", Gender: entity.GenderFemale, Mbti: "ENFJ"}, // 5
		{Email: "mid@x.com", Gender: entity.GenderFemale, Mbti: "INFJ"},  // 4
	}

	ranked := rankCandidates(me, candidates)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked candidates, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Errorf("ranking not descending at %d: %d < %d", i, ranked[i-1].Score, ranked[i].Score)
		}
	}
	if ranked[0].Email != "high@x.com" {
		t.Errorf("top candidate = %s, want high@x.com", ranked[0].Email)
	}
}
