package docstore

import (
  "context"
  "encoding/json"
  "errors"
  "time"

  "gorm.io/datatypes"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/shyftcut/shyftcut-backend/internal/logger"
)

type Store interface {
  Get(ctx context.Context, path string) (*Document, error)
  Set(ctx context.Context, path string, data any) error
  Delete(ctx context.Context, path string) error
  // List pages through a collection ordered by document id. afterDocID is
  // an exclusive cursor; empty means start from the beginning.
  List(ctx context.Context, collection string, limit int, afterDocID string) ([]*Document, error)
  // QueryEqual returns documents in a collection whose payload field equals
  // value, newest first.
  QueryEqual(ctx context.Context, collection, field, value string, limit int) ([]*Document, error)
  // Subcollections lists the direct child collections of a document.
  Subcollections(ctx context.Context, docPath string) ([]string, error)
  NewBatch() *WriteBatch
  // Commit applies every queued write in a single transaction.
  Commit(ctx context.Context, batch *WriteBatch) error
  // DeleteTree removes every document in the collection and, depth-first,
  // every subcollection those documents own, batchSize documents at a time.
  // It is idempotent and returns the number of documents deleted.
  DeleteTree(ctx context.Context, collection string, batchSize int) (int, error)
}

type store struct {
  db  *gorm.DB
  log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) Store {
  return &store{db: db, log: baseLog.With("component", "docstore")}
}

func (s *store) Get(ctx context.Context, path string) (*Document, error) {
  var doc Document
  err := s.db.WithContext(ctx).
    Where("path = ?", path).
    First(&doc).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrNotFound
    }
    return nil, err
  }
  return &doc, nil
}

func (s *store) Set(ctx context.Context, path string, data any) error {
  doc, err := buildDocument(path, data)
  if err != nil {
    return err
  }
  return upsert(s.db.WithContext(ctx), doc)
}

func (s *store) Delete(ctx context.Context, path string) error {
  return s.db.WithContext(ctx).
    Where("path = ?", path).
    Delete(&Document{}).Error
}

func (s *store) List(ctx context.Context, collection string, limit int, afterDocID string) ([]*Document, error) {
  q := s.db.WithContext(ctx).
    Where("collection = ?", collection)
  if afterDocID != "" {
    q = q.Where("doc_id > ?", afterDocID)
  }
  var results []*Document
  if err := q.Order("doc_id ASC").Limit(limit).Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (s *store) QueryEqual(ctx context.Context, collection, field, value string, limit int) ([]*Document, error) {
  var results []*Document
  err := s.db.WithContext(ctx).
    Where("collection = ?", collection).
    Where(datatypes.JSONQuery("data").Equals(value, field)).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error
  if err != nil {
    return nil, err
  }
  return results, nil
}

func (s *store) Subcollections(ctx context.Context, docPath string) ([]string, error) {
  // Direct children only: "{docPath}/<name>" with no further slashes.
  var collections []string
  err := s.db.WithContext(ctx).
    Model(&Document{}).
    Distinct("collection").
    Where("collection LIKE ?", docPath+"/%").
    Where("collection NOT LIKE ?", docPath+"/%/%").
    Order("collection ASC").
    Pluck("collection", &collections).Error
  if err != nil {
    return nil, err
  }
  return collections, nil
}

func buildDocument(path string, data any) (*Document, error) {
  collection, docID, err := SplitDocPath(path)
  if err != nil {
    return nil, err
  }
  raw, err := json.Marshal(data)
  if err != nil {
    return nil, err
  }
  now := time.Now()
  return &Document{
    Path:       path,
    Collection: collection,
    DocID:      docID,
    Data:       datatypes.JSON(raw),
    CreatedAt:  now,
    UpdatedAt:  now,
  }, nil
}

func upsert(tx *gorm.DB, doc *Document) error {
  return tx.Clauses(clause.OnConflict{
    Columns:   []clause.Column{{Name: "path"}},
    DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
  }).Create(doc).Error
}
