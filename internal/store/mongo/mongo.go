// Package mongo persists the wallet in MongoDB. Transactions live in a
// single collection indexed by owner and date; preferences are one document
// per owner.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HeitorVic/my-wallet/internal/core"
	"github.com/HeitorVic/my-wallet/internal/store"
)

type Store struct {
	client *mongo.Client
	txs    *mongo.Collection
	prefs  *mongo.Collection
	hub    *store.Hub
}

type transactionDoc struct {
	ID          string    `bson:"_id"`
	Owner       string    `bson:"owner"`
	Description string    `bson:"description"`
	Amount      float64   `bson:"amount"`
	Type        string    `bson:"type"`
	Category    string    `bson:"category"`
	Method      string    `bson:"method"`
	Date        string    `bson:"date"` // YYYY-MM-DD, sorts chronologically
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

type preferencesDoc struct {
	Owner       string `bson:"_id"`
	Theme       string `bson:"theme"`
	PrivacyMode bool   `bson:"privacy_mode"`
}

// New connects to MongoDB and prepares the wallet collections
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	txs := db.Collection("transactions")

	_, err = txs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("create transactions index: %w", err)
	}

	return &Store{
		client: client,
		txs:    txs,
		prefs:  db.Collection("preferences"),
		hub:    store.NewHub(),
	}, nil
}

func (s *Store) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})
	cursor, err := s.txs.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	out := []core.Transaction{}
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		tx, err := doc.toTransaction()
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, owner string, draft core.Draft) (core.Transaction, error) {
	created, err := s.CreateMany(ctx, owner, []core.Draft{draft})
	if err != nil {
		return core.Transaction{}, err
	}
	return created[0], nil
}

func (s *Store) CreateMany(ctx context.Context, owner string, drafts []core.Draft) ([]core.Transaction, error) {
	for _, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(drafts))
	created := make([]core.Transaction, 0, len(drafts))
	for _, d := range drafts {
		tx := core.Transaction{
			ID:          uuid.NewString(),
			Description: d.Description,
			Amount:      d.Amount,
			Type:        d.Type,
			Category:    d.Category,
			Method:      d.Method,
			Date:        d.Date,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		docs = append(docs, fromTransaction(owner, tx))
		created = append(created, tx)
	}

	if err := s.insertAll(ctx, docs); err != nil {
		return nil, err
	}

	s.publish(ctx, owner)
	return created, nil
}

// insertAll inserts every document or none. Multi-document transactions
// need a replica set; on standalone servers the inserted prefix is
// compensated with a delete.
func (s *Store) insertAll(ctx context.Context, docs []interface{}) error {
	session, err := s.client.StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return s.txs.InsertMany(sc, docs)
		})
		if err == nil {
			return nil
		}
	}

	res, err := s.txs.InsertMany(ctx, docs)
	if err != nil {
		if res != nil && len(res.InsertedIDs) > 0 {
			s.txs.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": res.InsertedIDs}})
		}
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, owner, id string, draft core.Draft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"description": draft.Description,
		"amount":      draft.Amount,
		"type":        string(draft.Type),
		"category":    draft.Category,
		"method":      draft.Method,
		"date":        draft.Date.ISO(),
		"updated_at":  now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc transactionDoc
	err := s.txs.FindOneAndUpdate(ctx, bson.M{"_id": id, "owner": owner}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	tx, err := doc.toTransaction()
	if err != nil {
		return core.Transaction{}, err
	}

	s.publish(ctx, owner)
	return tx, nil
}

func (s *Store) Delete(ctx context.Context, owner, id string) error {
	res, err := s.txs.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}

	s.publish(ctx, owner)
	return nil
}

func (s *Store) Subscribe(ctx context.Context, owner string) (store.Subscription, error) {
	return s.hub.Subscribe(owner, func() ([]core.Transaction, error) {
		return s.List(ctx, owner)
	})
}

func (s *Store) Preferences(ctx context.Context, owner string) (store.Preferences, error) {
	var doc preferencesDoc
	err := s.prefs.FindOne(ctx, bson.M{"_id": owner}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.DefaultPreferences(), nil
	}
	if err != nil {
		return store.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return store.Preferences{Theme: doc.Theme, PrivacyMode: doc.PrivacyMode}, nil
}

func (s *Store) SavePreferences(ctx context.Context, owner string, prefs store.Preferences) error {
	doc := preferencesDoc{Owner: owner, Theme: prefs.Theme, PrivacyMode: prefs.PrivacyMode}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.prefs.ReplaceOne(ctx, bson.M{"_id": owner}, doc, opts); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.hub.Close()
	return s.client.Disconnect(ctx)
}

func (s *Store) publish(ctx context.Context, owner string) {
	snapshot, err := s.List(ctx, owner)
	if err != nil {
		return
	}
	s.hub.Publish(owner, snapshot)
}

func fromTransaction(owner string, tx core.Transaction) transactionDoc {
	return transactionDoc{
		ID:          tx.ID,
		Owner:       owner,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        string(tx.Type),
		Category:    tx.Category,
		Method:      tx.Method,
		Date:        tx.Date.ISO(),
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

func (d transactionDoc) toTransaction() (core.Transaction, error) {
	date, err := core.ParseISODate(d.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", d.Date, err)
	}
	return core.Transaction{
		ID:          d.ID,
		Description: d.Description,
		Amount:      d.Amount,
		Type:        core.TransactionType(d.Type),
		Category:    d.Category,
		Method:      d.Method,
		Date:        date,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}
