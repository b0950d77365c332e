// Package operator implements the connection-information directory: a
// well-known catalogue service mapping name -> ConnectionDetails, plus
// a Requestor client.
package operator

import (
	"sync"
	"time"

	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/task"
)

// entry pairs a catalogued ConnectionDetails with the last time it was
// (re-)registered, driving heartbeat-based eviction.
type entry struct {
	details  message.ConnectionDetails
	lastSeen time.Time
}

// Directory holds the mapping name -> ConnectionDetails for every
// registered broadcast and service. It is not a consensus system: a
// single well-known catalogue, not etcd/Raft.
type Directory struct {
	mu             sync.RWMutex
	entries        map[string]*entry
	staleThreshold time.Duration
	now            func() time.Time
}

// NewDirectory returns an empty Directory that evicts entries not
// refreshed within staleThreshold.
func NewDirectory(staleThreshold time.Duration) *Directory {
	return &Directory{entries: make(map[string]*entry), staleThreshold: staleThreshold, now: time.Now}
}

// Register inserts or refreshes name's catalogue entry and stamps its
// last-seen time.
func (d *Directory) Register(details message.ConnectionDetails) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[details.Name] = &entry{details: details, lastSeen: d.now()}
}

// Deregister removes name's catalogue entry, per a clean shutdown.
func (d *Directory) Deregister(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, name)
}

// Available returns the full catalogue.
func (d *Directory) Available() []message.ConnectionDetails {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]message.ConnectionDetails, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e.details)
	}
	return out
}

// sweepStale evicts entries whose lastSeen predates staleThreshold.
func (d *Directory) sweepStale() {
	if d.staleThreshold <= 0 {
		return
	}
	cutoff := d.now().Add(-d.staleThreshold)
	d.mu.Lock()
	defer d.mu.Unlock()
	for name, e := range d.entries {
		if e.lastSeen.Before(cutoff) {
			delete(d.entries, name)
		}
	}
}

// StartSweeper launches a background task that evicts stale entries on
// interval, until ctx is cancelled.
func (d *Directory) StartSweeper(group *task.Group, interval time.Duration) {
	group.Queue("directory-sweep", func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-group.Context().Done():
				return nil
			case <-ticker.C:
				d.sweepStale()
			}
		}
	})
}

// Callback builds the Reply/Router handler for AvailableConnectionsRequest.
func (d *Directory) Callback() func(typeName string, payload []byte) message.Message {
	return func(typeName string, payload []byte) message.Message {
		var request message.AvailableConnectionsRequest
		if typeName != "" && request.TypeName() != typeName {
			return &message.AvailableConnectionsResponse{ReturnCode: message.InvalidMessage}
		}
		if err := request.FromWire(payload); err != nil {
			return &message.AvailableConnectionsResponse{ReturnCode: message.InvalidMessage}
		}
		return &message.AvailableConnectionsResponse{Details: d.Available(), ReturnCode: message.Success}
	}
}
