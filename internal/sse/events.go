// Package sse implements Server-Sent Events for pushing export and
// enrichment updates to the dashboard.
package sse

import (
	"time"

	"github.com/screendapp/screend-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventExportUploaded represents a processed export upload.
	EventExportUploaded EventType = "export.uploaded"

	// EventEnrichmentStarted represents an enrichment run starting.
	EventEnrichmentStarted EventType = "enrichment.started"
	// EventEnrichmentProgress represents an enrichment progress update.
	EventEnrichmentProgress EventType = "enrichment.progress"
	// EventEnrichmentCompleted represents an enrichment run finishing.
	EventEnrichmentCompleted EventType = "enrichment.completed"
	// EventEnrichmentFailed represents an enrichment run failure.
	EventEnrichmentFailed EventType = "enrichment.failed"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // Event-specific data as JSON object
	Type      EventType `json:"type"`
}

// ExportUploadedEventData is the data payload for export upload events.
type ExportUploadedEventData struct {
	UploadedAt   time.Time `json:"uploaded_at"`
	DiaryEntries int       `json:"diary_entries"`
	WatchedFilms int       `json:"watched_films"`
}

// EnrichmentStartedEventData is the data payload for enrichment start events.
type EnrichmentStartedEventData struct {
	StartedAt time.Time `json:"started_at"`
	Films     int       `json:"films"`
}

// EnrichmentProgressEventData is the data payload for enrichment progress events.
type EnrichmentProgressEventData struct {
	Progress int `json:"progress"`
}

// EnrichmentCompletedEventData is the data payload for enrichment completion events.
type EnrichmentCompletedEventData struct {
	CompletedAt time.Time               `json:"completed_at"`
	Status      domain.EnrichmentStatus `json:"status"`
	Matched     int                     `json:"matched"`
	Total       int                     `json:"total"`
}

// EnrichmentFailedEventData is the data payload for enrichment failure events.
type EnrichmentFailedEventData struct {
	FailedAt time.Time `json:"failed_at"`
	Error    string    `json:"error"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewExportUploadedEvent creates an export.uploaded event.
func NewExportUploadedEvent(diaryEntries, watchedFilms int) Event {
	return Event{
		Type: EventExportUploaded,
		Data: ExportUploadedEventData{
			UploadedAt:   time.Now(),
			DiaryEntries: diaryEntries,
			WatchedFilms: watchedFilms,
		},
		Timestamp: time.Now(),
	}
}

// NewEnrichmentStartedEvent creates an enrichment.started event.
func NewEnrichmentStartedEvent(films int) Event {
	return Event{
		Type: EventEnrichmentStarted,
		Data: EnrichmentStartedEventData{
			StartedAt: time.Now(),
			Films:     films,
		},
		Timestamp: time.Now(),
	}
}

// NewEnrichmentProgressEvent creates an enrichment.progress event.
func NewEnrichmentProgressEvent(progress int) Event {
	return Event{
		Type:      EventEnrichmentProgress,
		Data:      EnrichmentProgressEventData{Progress: progress},
		Timestamp: time.Now(),
	}
}

// NewEnrichmentCompletedEvent creates an enrichment.completed event.
func NewEnrichmentCompletedEvent(matched, total int) Event {
	return Event{
		Type: EventEnrichmentCompleted,
		Data: EnrichmentCompletedEventData{
			CompletedAt: time.Now(),
			Status:      domain.EnrichmentSuccess,
			Matched:     matched,
			Total:       total,
		},
		Timestamp: time.Now(),
	}
}

// NewEnrichmentFailedEvent creates an enrichment.failed event.
func NewEnrichmentFailedEvent(errMsg string) Event {
	return Event{
		Type: EventEnrichmentFailed,
		Data: EnrichmentFailedEventData{
			FailedAt: time.Now(),
			Error:    errMsg,
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
