package store

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type scanRow struct {
	blob []byte
	err  error
}

func (r scanRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*[]byte); ok {
		*p = r.blob
	}
	return nil
}

// stubExecutor records the statements a PGStore issues.
type stubExecutor struct {
	row      scanRow
	execSQL  []string
	execArgs [][]any
	queryRow string
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.execSQL = append(s.execSQL, query)
	s.execArgs = append(s.execArgs, args)
	return pgconn.CommandTag{}, nil
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.queryRow = query
	return s.row
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func TestPGStoreGet(t *testing.T) {
	exec := &stubExecutor{row: scanRow{blob: []byte(`{"id":"u-1"}`)}}
	pg := NewPGStore(exec)

	blob, ok, err := pg.Get(context.Background(), KeyUsers)
	if err != nil || !ok {
		t.Fatalf("get = %v/%v", ok, err)
	}
	if string(blob) != `{"id":"u-1"}` {
		t.Fatalf("blob = %q", blob)
	}
	if exec.queryRow != qSelectBlob {
		t.Fatal("unexpected select statement")
	}
}

func TestPGStoreGetAbsent(t *testing.T) {
	exec := &stubExecutor{row: scanRow{err: pgx.ErrNoRows}}
	pg := NewPGStore(exec)

	blob, ok, err := pg.Get(context.Background(), KeyUsers)
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if ok || blob != nil {
		t.Fatalf("get = %q/%v, want absent", blob, ok)
	}
}

func TestPGStoreSetAndRemove(t *testing.T) {
	exec := &stubExecutor{}
	pg := NewPGStore(exec)
	ctx := context.Background()

	if err := pg.Set(ctx, KeyCampaigns, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := pg.Remove(ctx, KeyCampaigns); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(exec.execSQL) != 2 || exec.execSQL[0] != qUpsertBlob || exec.execSQL[1] != qDeleteBlob {
		t.Fatalf("statements = %v", exec.execSQL)
	}
	if got := exec.execArgs[0]; len(got) != 2 || got[0] != KeyCampaigns {
		t.Fatalf("upsert args = %v", got)
	}
}

func TestInlineQueriesCarryMarkers(t *testing.T) {
	for _, q := range []string{qUpsertBlob, qSelectBlob, qDeleteBlob} {
		first := strings.SplitN(strings.TrimSpace(q), "\n", 2)[0]
		if !strings.HasPrefix(first, "--sql ") {
			t.Errorf("query missing marker line: %q", first)
		}
	}
}
