package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/convoai/convo-be/types"
)

type DocumentRepo interface {
	CreateDocument(ctx context.Context, doc *types.Document) error
	GetDocument(ctx context.Context, id int64) (*types.Document, error)
	ListDocuments(ctx context.Context) ([]*types.Document, error)
	MarkProcessed(ctx context.Context, id int64) error
	CreatePage(ctx context.Context, page *types.DocumentPage) error
	ListPages(ctx context.Context, documentID int64) ([]*types.DocumentPage, error)
}

type documentRepo struct {
	documents *mongo.Collection
	pages     *mongo.Collection
	counters  *mongo.Collection
}

func NewDocumentRepo(db *mongo.Database) DocumentRepo {
	return &documentRepo{
		documents: db.Collection("documents"),
		pages:     db.Collection("document_pages"),
		counters:  db.Collection("counters"),
	}
}

func (r *documentRepo) CreateDocument(ctx context.Context, doc *types.Document) error {
	id, err := nextSequence(ctx, r.counters, "documents")
	if err != nil {
		return err
	}
	doc.ID = id
	doc.CreatedAt = time.Now().Unix()
	_, err = r.documents.InsertOne(ctx, doc)
	return err
}

func (r *documentRepo) GetDocument(ctx context.Context, id int64) (*types.Document, error) {
	var doc types.Document
	err := r.documents.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) ListDocuments(ctx context.Context) ([]*types.Document, error) {
	cursor, err := r.documents.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*types.Document
	for cursor.Next(ctx) {
		var doc types.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	return docs, cursor.Err()
}

func (r *documentRepo) MarkProcessed(ctx context.Context, id int64) error {
	_, err := r.documents.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_processed": true}},
	)
	return err
}

func (r *documentRepo) CreatePage(ctx context.Context, page *types.DocumentPage) error {
	id, err := nextSequence(ctx, r.counters, "document_pages")
	if err != nil {
		return err
	}
	page.ID = id
	_, err = r.pages.InsertOne(ctx, page)
	return err
}

func (r *documentRepo) ListPages(ctx context.Context, documentID int64) ([]*types.DocumentPage, error) {
	cursor, err := r.pages.Find(ctx,
		bson.M{"document_id": documentID},
		options.Find().SetSort(bson.D{{Key: "page_number", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pages []*types.DocumentPage
	for cursor.Next(ctx) {
		var page types.DocumentPage
		if err := cursor.Decode(&page); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	return pages, cursor.Err()
}
