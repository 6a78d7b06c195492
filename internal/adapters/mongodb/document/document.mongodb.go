// Package document is the MongoDB-backed implementation of the
// document.Repository interface.
package document

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/epandurski/swpt-payments/internal/adapters/mongodb"
	domaindoc "github.com/epandurski/swpt-payments/internal/domain/document"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// MongoDBRepository is the MongoDB-specific implementation of
// document.Repository.
type MongoDBRepository struct {
	connection *mongodb.Connection
	Database   string
}

func NewMongoDBRepository(conn *mongodb.Connection) *MongoDBRepository {
	r := &MongoDBRepository{connection: conn, Database: conn.Database}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("document: failed to connect mongodb: " + err.Error())
	}

	return r
}

func (r *MongoDBRepository) collection(db *mongo.Client, name string) *mongo.Collection {
	return db.Database(strings.ToLower(r.Database)).Collection(strings.ToLower(name))
}

func (r *MongoDBRepository) Create(ctx context.Context, collection string, d *domaindoc.Document) error {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "mongodb.document.create")
	defer span.End()

	db, err := r.connection.GetDB(ctx)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get mongodb connection", err)
		return err
	}

	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}

	now := d.CreatedAt
	if now.IsZero() {
		now = timeNow()
	}

	d.CreatedAt = now
	d.UpdatedAt = now

	record := &domaindoc.MongoDBModel{}
	record.FromEntity(d)

	if _, err := r.collection(db, collection).InsertOne(ctx, record); err != nil {
		telemetry.HandleSpanError(&span, "failed to insert document", err)
		return err
	}

	return nil
}

func (r *MongoDBRepository) FindByEntity(ctx context.Context, collection, entityID string) (*domaindoc.Document, error) {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "mongodb.document.find_by_entity")
	defer span.End()

	db, err := r.connection.GetDB(ctx)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get mongodb connection", err)
		return nil, err
	}

	var record domaindoc.MongoDBModel

	err = r.collection(db, collection).FindOne(ctx, bson.M{"entity_id": entityID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		telemetry.HandleSpanError(&span, "failed to find document", err)
		return nil, err
	}

	return record.ToEntity(), nil
}

func (r *MongoDBRepository) Delete(ctx context.Context, collection, entityID string) error {
	tracer := telemetry.TracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "mongodb.document.delete")
	defer span.End()

	db, err := r.connection.GetDB(ctx)
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to get mongodb connection", err)
		return err
	}

	if _, err := r.collection(db, collection).DeleteOne(ctx, bson.M{"entity_id": entityID}); err != nil {
		telemetry.HandleSpanError(&span, "failed to delete document", err)
		return err
	}

	return nil
}

// timeNow returns the current UTC time, used to stamp documents that
// arrive without a creation time.
func timeNow() time.Time { return time.Now().UTC() }
