package docstore

import (
  "context"
  "sync/atomic"

  "golang.org/x/sync/errgroup"
)

const (
  // DefaultDeleteBatchSize bounds the working set of a tree deletion.
  DefaultDeleteBatchSize = 100

  // deleteTreeParallelism caps concurrent sibling subcollection walks.
  // Sibling subcollections are independent, so deleting them concurrently
  // is safe.
  deleteTreeParallelism = 4
)

func (s *store) DeleteTree(ctx context.Context, collection string, batchSize int) (int, error) {
  if batchSize <= 0 {
    batchSize = DefaultDeleteBatchSize
  }
  var deleted atomic.Int64
  if err := s.deleteTree(ctx, collection, batchSize, &deleted); err != nil {
    return int(deleted.Load()), err
  }
  return int(deleted.Load()), nil
}

// deleteTree pages through the collection, clearing each document's
// subcollections before the document itself. Pages always start from the
// beginning because each pass deletes what it read; the loop ends when a
// page comes back empty, which makes re-invocation on a partially deleted
// tree safe.
func (s *store) deleteTree(ctx context.Context, collection string, batchSize int, deleted *atomic.Int64) error {
  for {
    if err := ctx.Err(); err != nil {
      return err
    }
    page, err := s.List(ctx, collection, batchSize, "")
    if err != nil {
      return err
    }
    if len(page) == 0 {
      return nil
    }

    g, gctx := errgroup.WithContext(ctx)
    g.SetLimit(deleteTreeParallelism)
    for _, doc := range page {
      subs, err := s.Subcollections(ctx, doc.Path)
      if err != nil {
        return err
      }
      for _, sub := range subs {
        sub := sub
        g.Go(func() error {
          return s.deleteTree(gctx, sub, batchSize, deleted)
        })
      }
    }
    if err := g.Wait(); err != nil {
      return err
    }

    paths := make([]string, 0, len(page))
    for _, doc := range page {
      paths = append(paths, doc.Path)
    }
    if err := s.db.WithContext(ctx).
      Where("path IN ?", paths).
      Delete(&Document{}).Error; err != nil {
      return err
    }
    deleted.Add(int64(len(page)))
  }
}
