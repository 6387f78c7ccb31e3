package store

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"emobots/emocheck/profile"
	"emobots/emocheck/session"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE chat_history (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		chat_id    INTEGER NOT NULL,
		role       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE user_records (
		user_id    INTEGER PRIMARY KEY,
		record     TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func TestRecordsLazyCreate(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(testDB(t))

	rec, err := records.Load(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.History) != 0 || rec.Streak != 0 || rec.Session.Kind != session.Home {
		t.Fatalf("default record = %+v", rec)
	}

	// Lazy creation does not persist until the first save.
	n, err := records.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("count = %d before first save", n)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(testDB(t))

	intensity := 3
	rec := profile.NewRecord()
	rec.History = append(rec.History, profile.Entry{
		Emotions:  []string{"Joy"},
		Intensity: &intensity,
		Text:      "feeling great",
		CreatedAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	rec.Streak = 1
	rec.Unlock("FirstEntry")
	rec.Session = session.State{Kind: session.SelectMultiple, Multi: &session.MultiFlow{Selected: []string{"Fear"}}}

	if err := records.Save(ctx, 42, rec); err != nil {
		t.Fatal(err)
	}

	got, err := records.Load(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.History) != 1 || got.History[0].Text != "feeling great" {
		t.Fatalf("history = %+v", got.History)
	}
	if got.History[0].Intensity == nil || *got.History[0].Intensity != 3 {
		t.Fatalf("intensity = %v", got.History[0].Intensity)
	}
	if !got.HasUnlocked("FirstEntry") || got.Streak != 1 {
		t.Fatalf("record = %+v", got)
	}
	if got.Session.Kind != session.SelectMultiple || got.Session.Multi == nil {
		t.Fatalf("session = %+v", got.Session)
	}

	// Save is a full overwrite.
	got.Streak = 5
	if err := records.Save(ctx, 42, got); err != nil {
		t.Fatal(err)
	}
	again, err := records.Load(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if again.Streak != 5 {
		t.Fatalf("streak after overwrite = %d", again.Streak)
	}
}

func TestRecordsCorruptDocumentFallsBack(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	records := NewRecords(db)

	if _, err := db.Exec(
		`INSERT INTO user_records (user_id, record, updated_at) VALUES (1, 'not json', ?)`,
		time.Now().UTC()); err != nil {
		t.Fatal(err)
	}

	rec, err := records.Load(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Session.Kind != session.Home || len(rec.History) != 0 {
		t.Fatalf("fallback record = %+v", rec)
	}
}

func TestRecordsReset(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(testDB(t))

	rec := profile.NewRecord()
	rec.Streak = 3
	if err := records.Save(ctx, 9, rec); err != nil {
		t.Fatal(err)
	}
	if err := records.Reset(ctx, 9); err != nil {
		t.Fatal(err)
	}
	got, err := records.Load(ctx, 9)
	if err != nil {
		t.Fatal(err)
	}
	if got.Streak != 0 {
		t.Fatalf("streak after reset = %d", got.Streak)
	}
}

func TestRecordsEntryCount(t *testing.T) {
	ctx := context.Background()
	records := NewRecords(testDB(t))

	if n, err := records.EntryCount(ctx); err != nil || n != 0 {
		t.Fatalf("EntryCount empty = %d, %v", n, err)
	}

	a := profile.NewRecord()
	a.History = append(a.History, profile.Entry{Emotions: []string{"Joy"}}, profile.Entry{Emotions: []string{"Calm"}})
	b := profile.NewRecord()
	b.History = append(b.History, profile.Entry{Emotions: []string{"Fear"}})
	if err := records.Save(ctx, 1, a); err != nil {
		t.Fatal(err)
	}
	if err := records.Save(ctx, 2, b); err != nil {
		t.Fatal(err)
	}

	n, err := records.EntryCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("EntryCount = %d, want 3", n)
	}
}

func TestTurnsRecentWindow(t *testing.T) {
	ctx := context.Background()
	turns := NewTurns(testDB(t))

	for i := 0; i < 5; i++ {
		role := "user"
		if i%2 == 1 {
			role = "model"
		}
		if err := turns.Append(ctx, 100, role, "msg"); err != nil {
			t.Fatal(err)
		}
	}

	got, err := turns.Recent(ctx, 100, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Last three turns in chronological order: user, model, user.
	want := []string{"user", "model", "user"}
	for i, turn := range got {
		if turn.Role != want[i] {
			t.Errorf("turn %d role = %s, want %s", i, turn.Role, want[i])
		}
	}

	if empty, err := turns.Recent(ctx, 100, 0); err != nil || empty != nil {
		t.Fatalf("Recent(0) = %v, %v", empty, err)
	}
}

func TestTurnsScopedPerChat(t *testing.T) {
	ctx := context.Background()
	turns := NewTurns(testDB(t))

	if err := turns.Append(ctx, 1, "user", "a"); err != nil {
		t.Fatal(err)
	}
	if err := turns.Append(ctx, 2, "user", "b"); err != nil {
		t.Fatal(err)
	}

	got, err := turns.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Content != "a" {
		t.Fatalf("chat 1 turns = %+v", got)
	}

	if err := turns.Purge(ctx, 1); err != nil {
		t.Fatal(err)
	}
	got, err = turns.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("turns after purge = %+v", got)
	}

	// Purge is per chat.
	other, err := turns.Recent(ctx, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 1 {
		t.Fatalf("chat 2 turns = %+v", other)
	}
}
