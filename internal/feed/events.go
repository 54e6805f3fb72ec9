package feed

import (
	"time"

	"github.com/google/uuid"

	"storefront/internal/storefront"
)

const (
	TypeWelcome       = "welcome"
	TypeCatalogReload = "catalog.reloaded"
)

// Event is one line of the change feed.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Version   uint64    `json:"version"`
	Products  int       `json:"products"`
	Transport string    `json:"transport,omitempty"`
	Clients   int       `json:"clients,omitempty"`
	At        time.Time `json:"at"`
}

func ReloadEvent(s *storefront.Snapshot) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     TypeCatalogReload,
		Version:  s.Version,
		Products: len(s.Products),
		At:       s.LoadedAt,
	}
}
