package broker

// Event is one engagement action (a comment posted or a like toggled) fanned
// out to live feed subscribers.
type Event struct {
	EventID   string `json:"event_id"`
	Kind      string `json:"kind"` // "comment" or "like"
	VideoID   uint64 `json:"video_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Comment   string `json:"comment,omitempty"`
	Rating    int    `json:"rating,omitempty"`
	Liked     bool   `json:"liked,omitempty"`
	LikeCount int64  `json:"like_count,omitempty"`
	Timestamp string `json:"timestamp"`
}

const (
	EventKindComment = "comment"
	EventKindLike    = "like"
)

// EventBroker distributes engagement events between the services that produce
// them and the live feed that pushes them to clients.
type EventBroker interface {
	Publish(event Event) error
	Subscribe() (<-chan Event, error)
	Close() error
}
