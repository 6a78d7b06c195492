// Package document stores the opaque JSON blobs the durable store's
// relational rows only hold a reference to: an offer's description,
// snapshotted onto the proof at commit. A payer_note is a plain column
// on the order and proof rows; no repository uses CollectionPayerNote.
// Mirrors the teacher's metadata-as-Mongo-document pattern.
package document

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names, one per entity kind that carries an opaque document.
const (
	CollectionOfferDescription = "offer_description"
	CollectionPayerNote        = "payer_note"
)

// JSON is an opaque document stored verbatim.
type JSON map[string]any

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("document: type assertion to []byte failed")
	}

	return json.Unmarshal(b, j)
}

// MongoDBModel is the row shape of a document in Mongo.
type MongoDBModel struct {
	ID        primitive.ObjectID `bson:"_id"`
	EntityID  string             `bson:"entity_id"`
	Data      JSON               `bson:"data"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Document is the in-memory representation of a stored opaque blob.
type Document struct {
	ID        primitive.ObjectID
	EntityID  string
	Data      JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *MongoDBModel) ToEntity() *Document {
	return &Document{
		ID:        m.ID,
		EntityID:  m.EntityID,
		Data:      m.Data,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *MongoDBModel) FromEntity(d *Document) {
	m.ID = d.ID
	m.EntityID = d.EntityID
	m.Data = d.Data
	m.CreatedAt = d.CreatedAt
	m.UpdatedAt = d.UpdatedAt
}
