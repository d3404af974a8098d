package api

import "time"

// Metadata is the read-only platform metadata bag for one turn. Transport
// adapters populate it from their wire format; flow code only reads it.
type Metadata struct {
	values map[string]any
}

// Well-known metadata keys set by transport adapters.
const (
	MetaCallerID    = "caller_id"
	MetaTimestamp   = "timestamp"
	MetaMessageID   = "message_id"
	MetaContactName = "contact_name"
	MetaLocation    = "location"
	MetaMedia       = "media"
)

// NewMetadata copies values into a read-only bag. A nil map is allowed.
func NewMetadata(values map[string]any) Metadata {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Metadata{values: copied}
}

// Get returns the raw value for key, or nil if absent.
func (m Metadata) Get(key string) any {
	return m.values[key]
}

func (m Metadata) stringValue(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

// CallerID returns the originating address (MSISDN, account id, ...).
func (m Metadata) CallerID() string { return m.stringValue(MetaCallerID) }

// MessageID returns the platform message id for this turn, if any.
func (m Metadata) MessageID() string { return m.stringValue(MetaMessageID) }

// ContactName returns the sender's display name, if the platform shares it.
func (m Metadata) ContactName() string { return m.stringValue(MetaContactName) }

// Location returns a platform location string, if any.
func (m Metadata) Location() string { return m.stringValue(MetaLocation) }

// Timestamp returns the platform timestamp of the inbound message.
// The zero time is returned when the platform did not provide one.
func (m Metadata) Timestamp() time.Time {
	if t, ok := m.values[MetaTimestamp].(time.Time); ok {
		return t
	}
	return time.Time{}
}

// Media returns the inbound media attachment descriptor, if any.
func (m Metadata) Media() *Media {
	if md, ok := m.values[MetaMedia].(*Media); ok {
		return md
	}
	return nil
}
