package docstore

import (
  "context"

  "gorm.io/gorm"
)

type opKind int

const (
  opSet opKind = iota
  opDelete
)

type batchOp struct {
  kind opKind
  path string
  data any
}

// WriteBatch queues writes that Commit applies atomically. Readers never
// observe a partially applied batch.
type WriteBatch struct {
  ops []batchOp
}

func (b *WriteBatch) Set(path string, data any) *WriteBatch {
  b.ops = append(b.ops, batchOp{kind: opSet, path: path, data: data})
  return b
}

func (b *WriteBatch) Delete(path string) *WriteBatch {
  b.ops = append(b.ops, batchOp{kind: opDelete, path: path})
  return b
}

func (b *WriteBatch) Len() int { return len(b.ops) }

func (s *store) NewBatch() *WriteBatch {
  return &WriteBatch{}
}

func (s *store) Commit(ctx context.Context, batch *WriteBatch) error {
  if batch == nil || len(batch.ops) == 0 {
    return nil
  }
  return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    for _, op := range batch.ops {
      switch op.kind {
      case opSet:
        doc, err := buildDocument(op.path, op.data)
        if err != nil {
          return err
        }
        if err := upsert(tx, doc); err != nil {
          return err
        }
      case opDelete:
        if err := tx.Where("path = ?", op.path).Delete(&Document{}).Error; err != nil {
          return err
        }
      }
    }
    return nil
  })
}
