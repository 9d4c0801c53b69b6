package service

import (
	"context"
	"testing"

	"matchchat-be/internal/entity"
	"matchchat-be/pkg/roomkey"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoom(store *fakeStore, a, b string) string {
	roomId := roomkey.Derive(a, b)
	store.summaries[summaryKey(a, roomId)] = &entity.ConversationSummary{
		Id: uuid.New(), OwnerEmail: a, RoomId: roomId, PeerEmail: b,
	}
	store.summaries[summaryKey(b, roomId)] = &entity.ConversationSummary{
		Id: uuid.New(), OwnerEmail: b, RoomId: roomId, PeerEmail: a,
	}
	return roomId
}

func TestSendMessageUpdatesBothSummaries(t *testing.T) {
	store := newFakeStore()
	roomId := seedRoom(store, "alice@x.com", "bob@x.com")
	svc := NewChatService(&fakeFactory{store: store}, nil)

	res, err := svc.SendMessage(context.Background(), "alice@x.com", roomId, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Text)
	assert.False(t, res.Read)

	require.Len(t, store.messages, 1)
	assert.Equal(t, "alice@x.com", store.messages[0].Sender)
	assert.False(t, store.messages[0].Read)

	sender := store.summaries[summaryKey("alice@x.com", roomId)]
	recipient := store.summaries[summaryKey("bob@x.com", roomId)]
	assert.Equal(t, 0, sender.UnreadCount)
	assert.Equal(t, 1, recipient.UnreadCount)
	assert.Equal(t, "hello", sender.LastMessage)
	assert.Equal(t, "hello", recipient.LastMessage)
	assert.Equal(t, res.Timestamp, sender.LastTimestamp)
	assert.Equal(t, res.Timestamp, recipient.LastTimestamp)

	// A second send increments the recipient exactly once more.
	_, err = svc.SendMessage(context.Background(), "alice@x.com", roomId, "again")
	require.NoError(t, err)
	assert.Equal(t, 2, recipientUnread(store, "bob@x.com", roomId))
	assert.Equal(t, 0, recipientUnread(store, "alice@x.com", roomId))
}

func recipientUnread(store *fakeStore, owner, roomId string) int {
	return store.summaries[summaryKey(owner, roomId)].UnreadCount
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	store := newFakeStore()
	roomId := seedRoom(store, "alice@x.com", "bob@x.com")
	svc := NewChatService(&fakeFactory{store: store}, nil)

	_, err := svc.SendMessage(context.Background(), "mallory@x.com", roomId, "hi")
	assert.Error(t, err)
	assert.Empty(t, store.messages)
}

func TestListConversationsSortedByTimestampDesc(t *testing.T) {
	store := newFakeStore()
	for i, ts := range []int64{100, 300, 200} {
		peer := []string{"a@x.com", "b@x.com", "c@x.com"}[i]
		roomId := roomkey.Derive("me@x.com", peer)
		store.summaries[summaryKey("me@x.com", roomId)] = &entity.ConversationSummary{
			Id: uuid.New(), OwnerEmail: "me@x.com", RoomId: roomId,
			PeerEmail: peer, LastTimestamp: ts,
		}
	}
	svc := NewChatService(&fakeFactory{store: store}, nil)

	list, err := svc.ListConversations(context.Background(), "me@x.com")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{300, 200, 100}, []int64{list[0].Timestamp, list[1].Timestamp, list[2].Timestamp})
}

func TestMarkReadIdempotent(t *testing.T) {
	store := newFakeStore()
	roomId := seedRoom(store, "alice@x.com", "bob@x.com")
	store.summaries[summaryKey("bob@x.com", roomId)].UnreadCount = 5
	svc := NewChatService(&fakeFactory{store: store}, nil)

	require.NoError(t, svc.MarkRead(context.Background(), "bob@x.com", roomId))
	assert.Equal(t, 0, recipientUnread(store, "bob@x.com", roomId))

	// Marking again never goes negative.
	require.NoError(t, svc.MarkRead(context.Background(), "bob@x.com", roomId))
	require.NoError(t, svc.MarkRead(context.Background(), "bob@x.com", roomId))
	assert.Equal(t, 0, recipientUnread(store, "bob@x.com", roomId))
}

func TestListMessagesInAppendOrder(t *testing.T) {
	store := newFakeStore()
	roomId := seedRoom(store, "alice@x.com", "bob@x.com")
	svc := NewChatService(&fakeFactory{store: store}, nil)

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.SendMessage(context.Background(), "alice@x.com", roomId, text)
		require.NoError(t, err)
	}

	msgs, err := svc.ListMessages(context.Background(), "bob@x.com", roomId, 0, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Text)
	assert.Equal(t, "two", msgs[1].Text)
	assert.Equal(t, "three", msgs[2].Text)
}

func TestListMessagesPaginatesBySeq(t *testing.T) {
	store := newFakeStore()
	roomId := seedRoom(store, "alice@x.com", "bob@x.com")
	svc := NewChatService(&fakeFactory{store: store}, nil)

	for _, text := range []string{"one", "two", "three", "four"} {
		_, err := svc.SendMessage(context.Background(), "alice@x.com", roomId, text)
		require.NoError(t, err)
	}

	// Resume after the first message, capped to two.
	msgs, err := svc.ListMessages(context.Background(), "bob@x.com", roomId, 1, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "two", msgs[0].Text)
	assert.Equal(t, "three", msgs[1].Text)
	assert.Equal(t, int64(2), msgs[0].Seq)
	assert.Equal(t, int64(3), msgs[1].Seq)

	// after_seq past the end yields an empty page, not an error.
	msgs, err = svc.ListMessages(context.Background(), "bob@x.com", roomId, 4, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
