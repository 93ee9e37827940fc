package docstore

import (
  "context"
  "testing"

  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/shyftcut/shyftcut-backend/internal/logger"
)

func newTestStore(t *testing.T) Store {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  sqlDB, err := db.DB()
  if err != nil {
    t.Fatalf("underlying db: %v", err)
  }
  sqlDB.SetMaxOpenConns(1)
  if err := db.AutoMigrate(&Document{}); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return New(db, logger.NewNop())
}

type payload struct {
  Name  string `json:"name"`
  Count int    `json:"count"`
}

func TestSplitDocPath(t *testing.T) {
  cases := []struct {
    name           string
    path           string
    wantCollection string
    wantDocID      string
    wantErr        bool
  }{
    {
      name:           "top_level_document",
      path:           "users/u1",
      wantCollection: "users",
      wantDocID:      "u1",
    },
    {
      name:           "nested_document",
      path:           "tracks/u1/roadmaps/r1",
      wantCollection: "tracks/u1/roadmaps",
      wantDocID:      "r1",
    },
    {
      name:    "collection_path",
      path:    "tracks/u1/roadmaps",
      wantErr: true,
    },
    {
      name:    "single_segment",
      path:    "users",
      wantErr: true,
    },
    {
      name:    "empty_segment",
      path:    "users//u1/roadmaps",
      wantErr: true,
    },
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      collection, docID, err := SplitDocPath(tc.path)
      if tc.wantErr {
        if err == nil {
          t.Fatalf("SplitDocPath(%q) expected error, got %q/%q", tc.path, collection, docID)
        }
        return
      }
      if err != nil {
        t.Fatalf("SplitDocPath(%q): %v", tc.path, err)
      }
      if collection != tc.wantCollection || docID != tc.wantDocID {
        t.Fatalf("SplitDocPath(%q)=%q/%q, want %q/%q", tc.path, collection, docID, tc.wantCollection, tc.wantDocID)
      }
    })
  }
}

func TestSetGetRoundtrip(t *testing.T) {
  s := newTestStore(t)
  ctx := context.Background()

  if err := s.Set(ctx, "users/u1", payload{Name: "ada", Count: 1}); err != nil {
    t.Fatalf("set: %v", err)
  }
  doc, err := s.Get(ctx, "users/u1")
  if err != nil {
    t.Fatalf("get: %v", err)
  }
  var got payload
  if err := doc.DataTo(&got); err != nil {
    t.Fatalf("data to: %v", err)
  }
  if got.Name != "ada" || got.Count != 1 {
    t.Fatalf("got %+v, want name=ada count=1", got)
  }

  // Set on the same path overwrites the payload.
  if err := s.Set(ctx, "users/u1", payload{Name: "ada", Count: 2}); err != nil {
    t.Fatalf("second set: %v", err)
  }
  doc, err = s.Get(ctx, "users/u1")
  if err != nil {
    t.Fatalf("get after overwrite: %v", err)
  }
  if err := doc.DataTo(&got); err != nil {
    t.Fatalf("data to: %v", err)
  }
  if got.Count != 2 {
    t.Fatalf("count=%d after overwrite, want 2", got.Count)
  }
}

func TestGetMissingReturnsNotFound(t *testing.T) {
  s := newTestStore(t)
  if _, err := s.Get(context.Background(), "users/missing"); err != ErrNotFound {
    t.Fatalf("got %v, want ErrNotFound", err)
  }
}

func TestListOrderAndCursor(t *testing.T) {
  s := newTestStore(t)
  ctx := context.Background()

  for _, id := range []string{"c", "a", "d", "b"} {
    if err := s.Set(ctx, "users/"+id, payload{Name: id}); err != nil {
      t.Fatalf("set %s: %v", id, err)
    }
  }

  page, err := s.List(ctx, "users", 3, "")
  if err != nil {
    t.Fatalf("list: %v", err)
  }
  wantIDs := []string{"a", "b", "c"}
  if len(page) != len(wantIDs) {
    t.Fatalf("got %d docs, want %d", len(page), len(wantIDs))
  }
  for i, doc := range page {
    if doc.DocID != wantIDs[i] {
      t.Fatalf("page[%d]=%s, want %s", i, doc.DocID, wantIDs[i])
    }
  }

  // Cursor is exclusive.
  page, err = s.List(ctx, "users", 3, "c")
  if err != nil {
    t.Fatalf("list after cursor: %v", err)
  }
  if len(page) != 1 || page[0].DocID != "d" {
    t.Fatalf("cursor page=%v, want single doc d", page)
  }
}

func TestSubcollectionsDirectChildrenOnly(t *testing.T) {
  s := newTestStore(t)
  ctx := context.Background()

  seed := []string{
    "tracks/u1/roadmaps/r1",
    "tracks/u1/roadmaps/r1/milestones/m1",
    "tracks/u1/roadmaps/r1/quizResults/q1",
    "tracks/u1/roadmaps/r1/milestones/m1/notes/n1",
    "tracks/u1/roadmaps/r2",
  }
  for _, p := range seed {
    if err := s.Set(ctx, p, payload{Name: p}); err != nil {
      t.Fatalf("set %s: %v", p, err)
    }
  }

  subs, err := s.Subcollections(ctx, "tracks/u1/roadmaps/r1")
  if err != nil {
    t.Fatalf("subcollections: %v", err)
  }
  want := []string{
    "tracks/u1/roadmaps/r1/milestones",
    "tracks/u1/roadmaps/r1/quizResults",
  }
  if len(subs) != len(want) {
    t.Fatalf("got %v, want %v", subs, want)
  }
  for i := range want {
    if subs[i] != want[i] {
      t.Fatalf("subs[%d]=%s, want %s", i, subs[i], want[i])
    }
  }
}

func TestQueryEqual(t *testing.T) {
  s := newTestStore(t)
  ctx := context.Background()

  if err := s.Set(ctx, "users/u1", payload{Name: "ada"}); err != nil {
    t.Fatalf("set: %v", err)
  }
  if err := s.Set(ctx, "users/u2", payload{Name: "grace"}); err != nil {
    t.Fatalf("set: %v", err)
  }

  docs, err := s.QueryEqual(ctx, "users", "name", "grace", 10)
  if err != nil {
    t.Fatalf("query: %v", err)
  }
  if len(docs) != 1 || docs[0].DocID != "u2" {
    t.Fatalf("got %d docs, want the single doc u2", len(docs))
  }

  docs, err = s.QueryEqual(ctx, "users", "name", "nobody", 10)
  if err != nil {
    t.Fatalf("query no match: %v", err)
  }
  if len(docs) != 0 {
    t.Fatalf("got %d docs, want none", len(docs))
  }
}

func TestBatchCommitIsAtomic(t *testing.T) {
  s := newTestStore(t)
  ctx := context.Background()

  batch := s.NewBatch()
  batch.Set("users/u1", payload{Name: "ada"})
  batch.Set("not-a-doc-path", payload{Name: "broken"})
  if err := s.Commit(ctx, batch); err == nil {
    t.Fatal("commit with invalid path should fail")
  }

  // The valid write in the failed batch must not be visible.
  if _, err := s.Get(ctx, "users/u1"); err != ErrNotFound {
    t.Fatalf("got %v, want ErrNotFound after rollback", err)
  }

  batch = s.NewBatch()
  batch.Set("users/u1", payload{Name: "ada"})
  batch.Set("users/u2", payload{Name: "grace"})
  batch.Delete("users/u2")
  if err := s.Commit(ctx, batch); err != nil {
    t.Fatalf("commit: %v", err)
  }
  if _, err := s.Get(ctx, "users/u1"); err != nil {
    t.Fatalf("u1 after commit: %v", err)
  }
  if _, err := s.Get(ctx, "users/u2"); err != ErrNotFound {
    t.Fatalf("u2 got %v, want ErrNotFound", err)
  }
}

func TestDeleteTree(t *testing.T) {
  s := newTestStore(t)
  ctx := context.Background()

  seed := []string{
    "tracks/u1/roadmaps/r1",
    "tracks/u1/roadmaps/r1/milestones/m1",
    "tracks/u1/roadmaps/r1/milestones/m2",
    "tracks/u1/roadmaps/r1/milestones/m1/quizResults/q1",
    "tracks/u1/roadmaps/r2",
    "tracks/u2/roadmaps/r3",
  }
  for _, p := range seed {
    if err := s.Set(ctx, p, payload{Name: p}); err != nil {
      t.Fatalf("set %s: %v", p, err)
    }
  }

  // batchSize smaller than the collection forces multiple pages.
  deleted, err := s.DeleteTree(ctx, "tracks/u1/roadmaps", 1)
  if err != nil {
    t.Fatalf("delete tree: %v", err)
  }
  if deleted != 5 {
    t.Fatalf("deleted %d docs, want 5", deleted)
  }

  for _, p := range seed[:5] {
    if _, err := s.Get(ctx, p); err != ErrNotFound {
      t.Fatalf("%s still present after delete tree", p)
    }
  }
  // Another user's tree is untouched.
  if _, err := s.Get(ctx, "tracks/u2/roadmaps/r3"); err != nil {
    t.Fatalf("unrelated doc: %v", err)
  }

  // Idempotent: a second run deletes nothing and does not fail.
  deleted, err = s.DeleteTree(ctx, "tracks/u1/roadmaps", 1)
  if err != nil {
    t.Fatalf("second delete tree: %v", err)
  }
  if deleted != 0 {
    t.Fatalf("second run deleted %d docs, want 0", deleted)
  }
}
