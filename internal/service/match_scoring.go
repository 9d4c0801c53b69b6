package service

import (
	"sort"

	"matchchat-be/internal/dto"
	"matchchat-be/internal/entity"
)

// mbtiCompatibility maps the caller's MBTI type to per-candidate base scores.
// Unknown pairs score 0.
var mbtiCompatibility = map[string]map[string]int{
	"INFP": {
		"INFP": 4, "ENFP": 4, "INFJ": 4, "ENFJ": 5,
		"INTJ": 4, "ENTJ": 5, "INTP": 4, "ENTP": 4,
		"ISFP": 1, "ESFP": 1, "ISTP": 1, "ESTP": 1,
		"ISFJ": 1, "ESFJ": 1, "ISTJ": 1, "ESTJ": 1,
	},
	"ENFP": {
		"INFP": 4, "ENFP": 4, "INFJ": 5, "ENFJ": 4,
		"INTJ": 5, "ENTJ": 4, "INTP": 4, "ENTP": 4,
		"ISFP": 1, "ESFP": 1, "ISTP": 1, "ESTP": 1,
		"ISFJ": 1, "ESFJ": 1, "ISTJ": 1, "ESTJ": 1,
	},
	"INFJ": {
		"INFP": 4, "ENFP": 5, "INFJ": 4, "ENFJ": 4,
		"INTJ": 4, "ENTJ": 4, "INTP": 4, "ENTP": 5,
		"ISFP": 1, "ESFP": 1, "ISTP": 1, "ESTP": 1,
		"ISFJ": 1, "ESFJ": 1, "ISTJ": 1, "ESTJ": 1,
	},
	"ENFJ": {
		"INFP": 5, "ENFP": 4, "INFJ": 4, "ENFJ": 4,
		"INTJ": 4, "ENTJ": 4, "INTP": 4, "ENTP": 4,
		"ISFP": 5, "ESFP": 1, "ISTP": 1, "ESTP": 1,
		"ISFJ": 1, "ESFJ": 1, "ISTJ": 1, "ESTJ": 1,
	},
	"INTJ": {
		"INFP": 4, "ENFP": 5, "INFJ": 4, "ENFJ": 4,
		"INTJ": 4, "ENTJ": 4, "INTP": 4, "ENTP": 5,
		"ISFP": 3, "ESFP": 3, "ISTP": 3, "ESTP": 3,
		"ISFJ": 2, "ESFJ": 2, "ISTJ": 2, "ESTJ": 2,
	},
	"ENTJ": {
		"INFP": 5, "ENFP": 4, "INFJ": 4, "ENFJ": 4,
		"INTJ": 4, "ENTJ": 4, "INTP": 5, "ENTP": 4,
		"ISFP": 3, "ESFP": 3, "ISTP": 3, "ESTP": 3,
		"ISFJ": 3, "ESFJ": 3, "ISTJ": 3, "ESTJ": 3,
	},
	"INTP": {
		"INFP": 4, "ENFP": 4, "INFJ": 4, "ENFJ": 4,
		"INTJ": 4, "ENTJ": 5, "INTP": 4, "ENTP": 4,
		"ISFP": 3, "ESFP": 3, "ISTP": 3, "ESTP": 3,
		"ISFJ": 2, "ESFJ": 2, "ISTJ": 2, "ESTJ": 5,
	},
	"ENTP": {
		"INFP": 4, "ENFP": 4, "INFJ": 5, "ENFJ": 4,
		"INTJ": 5, "ENTJ": 4, "INTP": 4, "ENTP": 4,
		"ISFP": 3, "ESFP": 3, "ISTP": 3, "ESTP": 3,
		"ISFJ": 2, "ESFJ": 2, "ISTJ": 2, "ESTJ": 2,
	},
	"ISFP": {
		"INFP": 1, "ENFP": 1, "INFJ": 1, "ENFJ": 5,
		"INTJ": 3, "ENTJ": 3, "INTP": 3, "ENTP": 3,
		"ISFP": 2, "ESFP": 2, "ISTP": 2, "ESTP": 2,
		"ISFJ": 3, "ESFJ": 5, "ISTJ": 3, "ESTJ": 5,
	},
	"ESFP": {
		"INFP": 1, "ENFP": 1, "INFJ": 1, "ENFJ": 5,
		"INTJ": 3, "ENTJ": 3, "INTP": 3, "ENTP": 3,
		"ISFP": 2, "ESFP": 2, "ISTP": 2, "ESTP": 2,
		"ISFJ": 5, "ESFJ": 3, "ISTJ": 5, "ESTJ": 3,
	},
	"ISTP": {
		"INFP": 1, "ENFP": 1, "INFJ": 1, "ENFJ": 1,
		"INTJ": 3, "ENTJ": 3, "INTP": 3, "ENTP": 3,
		"ISFP": 2, "ESFP": 2, "ISTP": 2, "ESTP": 2,
		"ISFJ": 3, "ESFJ": 5, "ISTJ": 3, "ESTJ": 5,
	},
	"ESTP": {
		"INFP": 1, "ENFP": 1, "INFJ": 1, "ENFJ": 1,
		"INTJ": 3, "ENTJ": 3, "INTP": 3, "ENTP": 3,
		"ISFP": 2, "ESFP": 2, "ISTP": 2, "ESTP": 2,
		"ISFJ": 5, "ESFJ": 3, "ISTJ": 5, "ESTJ": 3,
	},
	"ISFJ": {
		"INFP": 1, "ENFP": 1, "INFJ": 1, "ENFJ": 1,
		"INTJ": 2, "ENTJ": 3, "INTP": 2, "ENTP": 2,
		"ISFP": 3, "ESFP": 5, "ISTP": 3, "ESTP": 5,
		"ISFJ": 4, "ESFJ": 4, "ISTJ": 4, "ESTJ": 4,
	},
	"ESFJ": {
		"INFP": 1, "ENFP": 1, "INFJ": 1, "ENFJ": 1,
		"INTJ": 2, "ENTJ": 3, "INTP": 2, "ENTP": 2,
		"ISFP": 5, "ESFP": 3, "ISTP": 5, "ESTP": 3,
		"ISFJ": 4, "ESFJ": 4, "ISTJ": 4, "ESTJ": 4,
	},
	"ISTJ": {
		"INFP": 1, "ENFP": 1, "INFJ": 1, "ENFJ": 1,
		"INTJ": 2, "ENTJ": 3, "INTP": 2, "ENTP": 2,
		"ISFP": 3, "ESFP": 5, "ISTP": 3, "ESTP": 5,
		"ISFJ": 4, "ESFJ": 4, "ISTJ": 4, "ESTJ": 4,
	},
	"ESTJ": {
		"INFP": 1, "ENFP": 1, "INFJ": 1, "ENFJ": 1,
		"INTJ": 2, "ENTJ": 3, "INTP": 5, "ENTP": 2,
		"ISFP": 5, "ESFP": 3, "ISTP": 5, "ESTP": 3,
		"ISFJ": 4, "ESFJ": 4, "ISTJ": 4, "ESTJ": 4,
	},
}

// scoreCandidate returns nil when the candidate is the caller themselves or
// shares the caller's gender.
func scoreCandidate(me *entity.Profile, candidate *entity.Profile) *dto.MatchRecommendation {
	if me.Email == candidate.Email {
		return nil
	}
	if me.Gender == candidate.Gender {
		return nil
	}

	score := 0
	if row, ok := mbtiCompatibility[me.Mbti]; ok {
		score += row[candidate.Mbti]
	}

	var commonTags []string
	theirTags := make(map[string]bool, len(candidate.Tags))
	for _, t := range candidate.Tags {
		theirTags[t] = true
	}
	for _, t := range me.Tags {
		if theirTags[t] {
			commonTags = append(commonTags, t)
		}
	}
	score += len(commonTags)

	return &dto.MatchRecommendation{
		Email:      candidate.Email,
		Name:       candidate.Name,
		Mbti:       candidate.Mbti,
		CommonTags: commonTags,
		Score:      score,
	}
}

// rankCandidates scores every candidate and sorts by score descending.
// The sort is stable so equal scores keep their fetch order.
func rankCandidates(me *entity.Profile, candidates []*entity.Profile) []dto.MatchRecommendation {
	ranked := make([]dto.MatchRecommendation, 0, len(candidates))
	for _, candidate := range candidates {
		if rec := scoreCandidate(me, candidate); rec != nil {
			ranked = append(ranked, *rec)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
