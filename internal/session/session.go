// Package session keeps the signed-in users of the process. Each session owns
// its dashboard container and the liveness timer perturbing it.
package session

import (
	"sync"
	"time"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

// Session is one signed-in user.
type Session struct {
	ID        string
	User      models.User
	Board     dashboard.Board
	CreatedAt time.Time

	timer *liveness.Timer

	mu       sync.Mutex
	lastSeen time.Time
	version  uint64
}

// Role is the role the session was opened with.
func (s *Session) Role() models.Role {
	return s.User.Role
}

// View is always the dashboard for an open session.
func (s *Session) View() View {
	return ViewDashboard
}

// Menu lists the navigation entries for the session role.
func (s *Session) Menu() []MenuItem {
	return Menu(s.User.Role)
}

// Admin returns the admin container when the session belongs to an admin.
func (s *Session) Admin() (*dashboard.Admin, bool) {
	board, ok := s.Board.(*dashboard.Admin)
	return board, ok
}

// Teacher returns the teacher container when the session belongs to a teacher.
func (s *Session) Teacher() (*dashboard.Teacher, bool) {
	board, ok := s.Board.(*dashboard.Teacher)
	return board, ok
}

// Student returns the student container when the session belongs to a student.
func (s *Session) Student() (*dashboard.Student, bool) {
	board, ok := s.Board.(*dashboard.Student)
	return board, ok
}

// LastSeen is the time of the most recent request on the session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Version grows every time the dashboard changes. Stream consumers compare it
// to skip redundant pushes.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// MarkChanged bumps the version after an action or tick altered the dashboard.
func (s *Session) MarkChanged() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	return s.version
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) stop() {
	s.timer.Stop()
}
