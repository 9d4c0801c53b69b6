package service

import (
	"context"
	"testing"
	"time"

	"matchchat-be/internal/entity"
	"matchchat-be/internal/repository/memory"
	"matchchat-be/pkg/roomkey"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfile(store *fakeStore, email, gender, mbti string, tags ...string) {
	store.profiles[email] = &entity.Profile{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Email:     email,
		Name:      email,
		Gender:    entity.Gender(gender),
		Birthdate: "1995-01-01",
		Mbti:      mbti,
		Tags:      tags,
		LikeTags:  []string{},
	}
}

func newMatchFixture(t *testing.T) (*fakeStore, IMatchService, *memory.MatchSessionRepository) {
	t.Helper()
	store := newFakeStore()
	sessions := memory.NewMatchSessionRepository(5 * time.Minute)
	svc := NewMatchService(&fakeFactory{store: store}, sessions, nil)
	return store, svc, sessions
}

func TestRecommendationsExcludeSelfAndSameGender(t *testing.T) {
	store, svc, _ := newMatchFixture(t)
	seedProfile(store, "me@x.com", "male", "INFP")
	seedProfile(store, "bro@x.com", "male", "ENFJ")
	seedProfile(store, "her@x.com", "female", "ENFJ")

	recs, err := svc.Recommendations(context.Background(), "me@x.com")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "her@x.com", recs[0].Email)
}

func TestRecommendationsScoredAndSorted(t *testing.T) {
	store, svc, _ := newMatchFixture(t)
	seedProfile(store, "me@x.com", "male", "INFP", "coffee", "hiking")
	// INFP->ENFJ base 5, plus two common tags = 7.
	seedProfile(store, "best@x.com", "female", "ENFJ", "coffee", "hiking")
	// INFP->ISTJ base 1, no common tags.
	seedProfile(store, "worst@x.com", "female", "ISTJ", "opera")

	recs, err := svc.Recommendations(context.Background(), "me@x.com")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "best@x.com", recs[0].Email)
	assert.Equal(t, 7, recs[0].Score)
	assert.ElementsMatch(t, []string{"coffee", "hiking"}, recs[0].CommonTags)
	assert.Equal(t, "worst@x.com", recs[1].Email)
	assert.Equal(t, 1, recs[1].Score)
}

func TestRecommendationsExcludeExistingPeersPreservingOrder(t *testing.T) {
	store, svc, _ := newMatchFixture(t)
	seedProfile(store, "me@x.com", "male", "INFP", "coffee")
	seedProfile(store, "p1@x.com", "female", "ENFJ", "coffee") // 5 + 1 common tag
	seedProfile(store, "p2@x.com", "female", "ENTJ")           // 5
	seedProfile(store, "p3@x.com", "female", "INFJ")           // 4

	// p2 is already a chat peer.
	roomId := roomkey.Derive("me@x.com", "p2@x.com")
	store.summaries[summaryKey("me@x.com", roomId)] = &entity.ConversationSummary{
		Id: uuid.New(), OwnerEmail: "me@x.com", RoomId: roomId, PeerEmail: "p2@x.com",
	}

	recs, err := svc.Recommendations(context.Background(), "me@x.com")
	require.NoError(t, err)

	// [p1, p2, p3] minus p2 leaves [p1, p3] in rank order.
	require.Len(t, recs, 2)
	assert.Equal(t, "p1@x.com", recs[0].Email)
	assert.Equal(t, "p3@x.com", recs[1].Email)
}

func TestRecommendationsRequireCompleteProfile(t *testing.T) {
	store, svc, _ := newMatchFixture(t)
	store.profiles["me@x.com"] = &entity.Profile{
		Id: uuid.New(), UserId: uuid.New(), Email: "me@x.com",
	}

	_, err := svc.Recommendations(context.Background(), "me@x.com")
	assert.Error(t, err)
}

func TestRecommendationsCachedPerSession(t *testing.T) {
	store, svc, sessions := newMatchFixture(t)
	seedProfile(store, "me@x.com", "male", "INFP")
	seedProfile(store, "her@x.com", "female", "ENFJ")

	first, err := svc.Recommendations(context.Background(), "me@x.com")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A candidate arriving mid-session does not appear until the session
	// cache is invalidated.
	seedProfile(store, "new@x.com", "female", "ENTJ")
	second, err := svc.Recommendations(context.Background(), "me@x.com")
	require.NoError(t, err)
	assert.Len(t, second, 1)

	sessions.Flush()
	third, err := svc.Recommendations(context.Background(), "me@x.com")
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestCreateRoomWritesBothSummaries(t *testing.T) {
	store, svc, _ := newMatchFixture(t)
	seedProfile(store, "me@x.com", "male", "INFP")
	seedProfile(store, "her@x.com", "female", "ENFJ")

	res, err := svc.CreateRoom(context.Background(), "me@x.com", "her@x.com")
	require.NoError(t, err)
	assert.Equal(t, roomkey.Derive("me@x.com", "her@x.com"), res.RoomId)

	mine := store.summaries[summaryKey("me@x.com", res.RoomId)]
	theirs := store.summaries[summaryKey("her@x.com", res.RoomId)]
	require.NotNil(t, mine)
	require.NotNil(t, theirs)
	assert.Equal(t, "her@x.com", mine.PeerEmail)
	assert.Equal(t, "me@x.com", theirs.PeerEmail)
	assert.Equal(t, 0, mine.UnreadCount)
	assert.Equal(t, 0, theirs.UnreadCount)
	assert.Empty(t, mine.LastMessage)
}

func TestCreateRoomRejectsSelfAndUnknownTarget(t *testing.T) {
	store, svc, _ := newMatchFixture(t)
	seedProfile(store, "me@x.com", "male", "INFP")

	_, err := svc.CreateRoom(context.Background(), "me@x.com", "me@x.com")
	assert.Error(t, err)

	_, err = svc.CreateRoom(context.Background(), "me@x.com", "ghost@x.com")
	assert.Error(t, err)
}
