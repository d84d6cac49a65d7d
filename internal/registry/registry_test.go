package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinCreatesRoomAndDedups(t *testing.T) {
	r := New(nil)

	users := r.Join("room1", &Participant{ID: "c1", Username: "alice"})
	require.Len(t, users, 1)
	assert.Equal(t, 1, r.RoomCount())

	// 同一连接重复加入不产生重复成员
	users = r.Join("room1", &Participant{ID: "c1", Username: "alice"})
	assert.Len(t, users, 1)

	// 同名用户的另一个连接是独立成员
	users = r.Join("room1", &Participant{ID: "c2", Username: "alice"})
	assert.Len(t, users, 2)
	assert.Equal(t, 2, r.ParticipantCount())
}

func TestLeaveRemovesFromAllRooms(t *testing.T) {
	r := New(nil)

	r.Join("room1", &Participant{ID: "c1", Username: "alice"})
	r.Join("room2", &Participant{ID: "c1", Username: "alice"})
	r.Join("room1", &Participant{ID: "c2", Username: "bob"})

	departures := r.Leave("c1")
	require.Len(t, departures, 2)

	byRoom := make(map[string]*Departure)
	for _, d := range departures {
		byRoom[d.RoomID] = d
	}

	require.Contains(t, byRoom, "room1")
	require.Contains(t, byRoom, "room2")
	assert.Equal(t, "alice", byRoom["room1"].Username)
	assert.Len(t, byRoom["room1"].Participants, 1)
	assert.Empty(t, byRoom["room2"].Participants)

	// room2 清空后被销毁
	assert.Equal(t, 1, r.RoomCount())
}

func TestLeaveUnknownConnection(t *testing.T) {
	r := New(nil)
	r.Join("room1", &Participant{ID: "c1", Username: "alice"})

	departures := r.Leave("missing")
	assert.Empty(t, departures)
	assert.Equal(t, 1, r.ParticipantCount())
}

func TestParticipantsUnknownRoom(t *testing.T) {
	r := New(nil)
	assert.Empty(t, r.Participants("nope"))
	assert.Empty(t, r.Clients("nope"))
}

func TestConcurrentJoinLeave(t *testing.T) {
	r := New(nil)
	done := make(chan struct{})

	for i := 0; i < 20; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			id := fmt.Sprintf("c%d", i)
			r.Join("room1", &Participant{ID: id, Username: "user"})
			r.Participants("room1")
			r.Leave(id)
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}

	assert.Equal(t, 0, r.ParticipantCount())
	assert.Equal(t, 0, r.RoomCount())
}
