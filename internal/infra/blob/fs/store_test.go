package fs

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"plancore/internal/blob/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "exports/job-1/plan.json", strings.NewReader(`{"name":"casita"}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"plan_id": "p1"},
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if info.Size != 17 || info.ContentType != "application/json" || info.ETag == "" {
		t.Fatalf("unexpected put info: %+v", info)
	}

	got, rc, err := s.Get(ctx, "exports/job-1/plan.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != `{"name":"casita"}` {
		t.Fatalf("body = %q", body)
	}
	if got.ETag != info.ETag || got.Metadata["plan_id"] != "p1" {
		t.Fatalf("get info mismatch: %+v", got)
	}

	head, err := s.Head(ctx, "exports/job-1/plan.json")
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if head.Size != info.Size {
		t.Fatalf("head size = %d, want %d", head.Size, info.Size)
	}
}

func TestPutRejectsExistingKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, "a.svg", strings.NewReader("one"), core.PutOptions{}); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if _, err := s.Put(ctx, "a.svg", strings.NewReader("two"), core.PutOptions{}); err == nil {
		t.Fatal("second Put should fail")
	}
}

func TestSanitizeRejectsTraversal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"", "  ", "/abs/path", "../escape", "a/../../b"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, "gone.csv", strings.NewReader("a,b"), core.PutOptions{}); err != nil {
		t.Fatal(err)
	}
	existed, err := s.Delete(ctx, "gone.csv")
	if err != nil || !existed {
		t.Fatalf("Delete = %v, %v", existed, err)
	}
	existed, err = s.Delete(ctx, "gone.csv")
	if err != nil || existed {
		t.Fatalf("second Delete = %v, %v", existed, err)
	}
	if _, _, err := s.Get(ctx, "gone.csv"); err == nil {
		t.Fatal("Get after delete should fail")
	}
}

func TestListFiltersByPrefixAndSorts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"exports/b.json", "exports/a.json", "other/c.json"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatal(err)
		}
	}
	infos, err := s.List(ctx, "exports/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "exports/a.json" || infos[1].Key != "exports/b.json" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestPresignURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u, err := s.PresignURL(ctx, "exports/a.json", core.SignedURLOptions{})
	if err != nil {
		t.Fatalf("PresignURL: %v", err)
	}
	if !strings.Contains(u, "exports/a.json") {
		t.Fatalf("url = %q", u)
	}
	if _, err := s.PresignURL(ctx, "exports/a.json", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("PUT presign err = %v, want ErrUnsupported", err)
	}
}
