// Package docstore is a hierarchical, path-keyed document layer on top of
// a relational database. Documents live at slash-separated paths
// ("tracks/{userId}/roadmaps/{id}"), collections hold documents, and every
// document may own nested subcollections, mirroring the layout the product
// data model is expressed in.
package docstore

import (
  "encoding/json"
  "errors"
  "fmt"
  "strings"
  "time"

  "gorm.io/datatypes"
)

var ErrNotFound = errors.New("document not found")

type Document struct {
  Path       string         `gorm:"primaryKey;size:512" json:"path"`
  Collection string         `gorm:"index;not null;size:512" json:"collection"`
  DocID      string         `gorm:"index;not null;size:128" json:"doc_id"`
  Data       datatypes.JSON `gorm:"type:jsonb" json:"data"`
  CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (Document) TableName() string { return "document" }

// DataTo unmarshals the document payload into v.
func (d *Document) DataTo(v any) error {
  if len(d.Data) == 0 {
    return fmt.Errorf("document %s has no data", d.Path)
  }
  return json.Unmarshal(d.Data, v)
}

// JoinPath joins path segments, rejecting empty ones.
func JoinPath(segments ...string) string {
  return strings.Join(segments, "/")
}

// SplitDocPath splits a document path into its collection and document id.
// A document path always has an even number of segments.
func SplitDocPath(path string) (collection, docID string, err error) {
  segs := strings.Split(path, "/")
  if len(segs) < 2 || len(segs)%2 != 0 {
    return "", "", fmt.Errorf("not a document path: %q", path)
  }
  for _, s := range segs {
    if s == "" {
      return "", "", fmt.Errorf("empty segment in path: %q", path)
    }
  }
  return strings.Join(segs[:len(segs)-1], "/"), segs[len(segs)-1], nil
}
