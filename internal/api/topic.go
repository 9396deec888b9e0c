package api

import (
	"errors"
	"strings"
)

// Collection names a record set kind on the backend.
type Collection string

const (
	Users         Collection = "users"
	Medicines     Collection = "medicines"
	Doctors       Collection = "doctors"
	CartItems     Collection = "cart_items"
	Reminders     Collection = "reminders"
	LabTests      Collection = "lab_tests"
	ClinicalDocs  Collection = "clinical_docs"
	Conversations Collection = "conversations"
	Appointments  Collection = "appointments"
	Orders        Collection = "orders"
)

var knownCollections = map[Collection]struct{}{
	Users: {}, Medicines: {}, Doctors: {}, CartItems: {}, Reminders: {},
	LabTests: {}, ClinicalDocs: {}, Conversations: {}, Appointments: {}, Orders: {},
}

func (c Collection) Valid() bool {
	_, ok := knownCollections[c]
	return ok
}

var ErrInvalidTopic = errors.New("invalid topic")

// Topic is the unit of change notification: a collection, optionally
// narrowed to the records of one user. Catalog topics have no user.
type Topic struct {
	Collection Collection `json:"collection"`
	UserID     string     `json:"userId,omitempty"`
}

func CatalogTopic(c Collection) Topic {
	return Topic{Collection: c}
}

func UserTopic(c Collection, userID string) Topic {
	return Topic{Collection: c, UserID: userID}
}

// String renders the topic as "collection" or "collection:user".
func (t Topic) String() string {
	if t.UserID == "" {
		return string(t.Collection)
	}
	return string(t.Collection) + ":" + t.UserID
}

// ParseTopic is the inverse of Topic.String.
func ParseTopic(s string) (Topic, error) {
	c, user, _ := strings.Cut(s, ":")
	t := Topic{Collection: Collection(c), UserID: user}
	if !t.Collection.Valid() {
		return Topic{}, ErrInvalidTopic
	}
	return t, nil
}

// Event reports that the records behind Topic changed at At (Unix ms).
type Event struct {
	Topic Topic `json:"topic"`
	At    int64 `json:"at"`
}

// Subscription is a live change feed. Events is closed once the feed ends;
// Close releases it and is safe to call more than once.
type Subscription interface {
	Events() <-chan Event
	Close() error
}
