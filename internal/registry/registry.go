// Package registry 维护房间成员的内存注册表
// 成员身份以连接句柄去重，同名用户的多个连接互不影响
package registry

import (
	"sync"

	pkgapp "github.com/collabpad/collab-notepad-service/pkg/app"
	"github.com/collabpad/collab-notepad-service/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	roomsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notepad_rooms",
		Help: "Current number of rooms with at least one participant.",
	})
	participantsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notepad_room_participants",
		Help: "Current number of room participants across all rooms.",
	})
)

// Participant 房间内的一个成员
type Participant struct {
	ID       string // 连接句柄
	Username string
	Client   *pkgapp.WebsocketClient
}

// Departure 连接断开后受影响的房间
type Departure struct {
	RoomID       string
	Username     string
	Participants []*Participant // 离开后的剩余成员
}

// Registry 房间成员注册表
// 所有访问都通过方法进行，内部用读写锁保护
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]*Participant // roomID -> connID -> participant
	logger *zap.Logger
}

func New(lg *zap.Logger) *Registry {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Registry{
		rooms:  make(map[string]map[string]*Participant),
		logger: lg,
	}
}

// Join 将成员加入房间，按连接句柄去重，返回加入后的完整成员列表
// 房间不存在时自动创建
func (r *Registry) Join(roomID string, p *Participant) []*Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		room = make(map[string]*Participant)
		r.rooms[roomID] = room
		r.logger.Info("room created", zap.String(logger.FieldRoom, roomID))
	}
	room[p.ID] = p

	r.updateMetricsLocked()
	return r.participantsLocked(roomID)
}

// Leave 将连接从其所有房间移除，返回每个受影响房间的剩余成员
// 空房间随之销毁
func (r *Registry) Leave(connID string) []*Departure {
	r.mu.Lock()
	defer r.mu.Unlock()

	var departures []*Departure
	for roomID, room := range r.rooms {
		p, ok := room[connID]
		if !ok {
			continue
		}
		delete(room, connID)
		if len(room) == 0 {
			delete(r.rooms, roomID)
			r.logger.Info("room removed", zap.String(logger.FieldRoom, roomID))
		}
		departures = append(departures, &Departure{
			RoomID:       roomID,
			Username:     p.Username,
			Participants: r.participantsLocked(roomID),
		})
	}

	r.updateMetricsLocked()
	return departures
}

// Participants 返回房间当前成员列表，房间不存在时返回空列表
func (r *Registry) Participants(roomID string) []*Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.participantsLocked(roomID)
}

// Clients 返回房间当前成员的连接客户端，用于广播
func (r *Registry) Clients(roomID string) []*pkgapp.WebsocketClient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.rooms[roomID]
	clients := make([]*pkgapp.WebsocketClient, 0, len(room))
	for _, p := range room {
		clients = append(clients, p.Client)
	}
	return clients
}

// RoomCount 当前房间数
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// ParticipantCount 当前所有房间的成员总数
func (r *Registry) ParticipantCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, room := range r.rooms {
		total += len(room)
	}
	return total
}

func (r *Registry) participantsLocked(roomID string) []*Participant {
	room := r.rooms[roomID]
	participants := make([]*Participant, 0, len(room))
	for _, p := range room {
		participants = append(participants, p)
	}
	return participants
}

func (r *Registry) updateMetricsLocked() {
	roomsGauge.Set(float64(len(r.rooms)))
	total := 0
	for _, room := range r.rooms {
		total += len(room)
	}
	participantsGauge.Set(float64(total))
}
