package document

import "context"

//go:generate mockgen --destination=../../../internal/gen/mock/document/document_mock.go --package=mock . Repository
type Repository interface {
	Create(ctx context.Context, collection string, d *Document) error
	FindByEntity(ctx context.Context, collection, entityID string) (*Document, error)
	Delete(ctx context.Context, collection, entityID string) error
}
