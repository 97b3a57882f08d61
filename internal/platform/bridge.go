// Package platform abstracts the optional distribution-platform
// integration (achievement sync, user identity). The process default is
// a stub that succeeds at everything and reports nothing, so game code
// never branches on platform availability.
package platform

import (
	"log/slog"
	"sync"
)

// Bridge is the surface the game uses to talk to a distribution
// platform.
type Bridge interface {
	// Available reports whether a real platform backend is connected.
	Available() bool
	// Initialize connects to the platform for the given app id.
	Initialize(appID uint32) bool
	// SyncAchievement pushes an unlocked achievement.
	SyncAchievement(id string) bool
	// ClearAchievement relocks an achievement, used by full resets.
	ClearAchievement(id string) bool
	// StoreStats flushes pending stat and achievement changes.
	StoreStats() bool
	// UserName returns the platform display name, empty when offline.
	UserName() string
	// UserID returns the platform account id, 0 when offline.
	UserID() uint64
	// RunCallbacks pumps platform callbacks; call once per frame or
	// tick.
	RunCallbacks()
	// Shutdown disconnects from the platform.
	Shutdown()
}

// Stub is the graceful fallback used when no platform is linked in.
// Every operation succeeds without doing anything.
type Stub struct{}

func (Stub) Available() bool               { return false }
func (Stub) Initialize(appID uint32) bool  { slog.Debug("platform stub initialized", "app_id", appID); return true }
func (Stub) SyncAchievement(string) bool   { return true }
func (Stub) ClearAchievement(string) bool  { return true }
func (Stub) StoreStats() bool              { return true }
func (Stub) UserName() string              { return "" }
func (Stub) UserID() uint64                { return 0 }
func (Stub) RunCallbacks()                 {}
func (Stub) Shutdown()                     {}

var (
	mu      sync.Mutex
	current Bridge = Stub{}
)

// Default returns the process-wide bridge.
func Default() Bridge {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// SetDefault swaps the process-wide bridge, returning to the stub when
// given nil.
func SetDefault(b Bridge) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		b = Stub{}
	}
	current = b
}
