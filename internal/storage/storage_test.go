package storage

import (
	"bytes"
	"testing"

	"github.com/pable/go-mlb-splits/internal/model"
)

const testBatter int64 = 660271

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func pitch(game int64, ab, num int, date string) model.PitchEvent {
	return model.PitchEvent{
		GamePK: game, GameDate: date, AtBat: ab, PitchNum: num,
		Batter: testBatter, Pitcher: 657277, PitcherName: "Webb, Logan",
		Stand: "R", PThrows: "R",
		Inning: 1, HalfInning: "Top",
		PostBatScore: -1,
		Description:  "ball",
		HomeTeam:     "SF", AwayTeam: "SEA",
	}
}

func batch(id, start, end, fetchedAt string, n int) model.FetchBatch {
	return model.FetchBatch{
		ID: id, Batter: testBatter, PlayerName: "Trout, Mike",
		StartDate: start, EndDate: end, Pitches: n, FetchedAt: fetchedAt,
	}
}

func TestPlayerUpsertAndGet(t *testing.T) {
	db := openMemDB(t)

	p := model.Player{
		ID: testBatter, FullName: "Mike Trout", Age: 33,
		Height: `6' 2"`, Weight: 235,
		BatSide: "R", PitchHand: "R", Position: "CF", Team: "LAA", Number: "27",
	}
	if err := db.UpsertPlayer(p, "2025-06-01T10:00:00Z"); err != nil {
		t.Fatalf("UpsertPlayer: %v", err)
	}

	got, err := db.GetPlayer(testBatter)
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if got == nil {
		t.Fatal("expected player after upsert")
	}
	if got.FullName != "Mike Trout" || got.Weight != 235 || got.BatSide != "R" {
		t.Errorf("player mismatch: %+v", got)
	}

	missing, err := db.GetPlayer(999999)
	if err != nil {
		t.Fatalf("GetPlayer unknown: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown player")
	}

	// Refresh must replace, not duplicate.
	p.Team = "FA"
	if err := db.UpsertPlayer(p, "2025-07-01T10:00:00Z"); err != nil {
		t.Fatalf("second UpsertPlayer: %v", err)
	}
	got, _ = db.GetPlayer(testBatter)
	if got.Team != "FA" {
		t.Errorf("expected refreshed team FA, got %s", got.Team)
	}
}

func TestFindPlayerByName(t *testing.T) {
	db := openMemDB(t)

	db.UpsertPlayer(model.Player{ID: testBatter, FullName: "Mike Trout"}, "2025-06-01T10:00:00Z")

	got, err := db.FindPlayerByName("trout")
	if err != nil {
		t.Fatalf("FindPlayerByName: %v", err)
	}
	if got == nil || got.ID != testBatter {
		t.Fatalf("expected Trout for fragment 'trout', got %+v", got)
	}

	none, err := db.FindPlayerByName("ruth")
	if err != nil {
		t.Fatalf("FindPlayerByName no-match: %v", err)
	}
	if none != nil {
		t.Error("expected nil for unknown name")
	}
}

func TestBatchInsertAndList(t *testing.T) {
	db := openMemDB(t)

	events := []model.PitchEvent{
		pitch(717465, 12, 1, "2025-06-01"),
		pitch(717465, 12, 2, "2025-06-01"),
	}
	if err := db.InsertBatch(batch("aaaa1111", "2025-06-01", "2025-06-15", "2025-06-16T08:00:00Z", 2), events, []byte("raw-a")); err != nil {
		t.Fatalf("InsertBatch a: %v", err)
	}
	if err := db.InsertBatch(batch("bbbb2222", "2025-06-16", "2025-06-30", "2025-07-01T08:00:00Z", 0), nil, []byte("raw-b")); err != nil {
		t.Fatalf("InsertBatch b: %v", err)
	}

	list, err := db.ListBatches()
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(list))
	}
	// Ordered by fetched_at DESC, so bbbb2222 comes first.
	if list[0].ID != "bbbb2222" {
		t.Errorf("expected bbbb2222 first (newest), got %s", list[0].ID)
	}
	if list[1].Pitches != 2 || list[1].PlayerName != "Trout, Mike" {
		t.Errorf("batch metadata mismatch: %+v", list[1])
	}
}

func TestGetBatchByPrefix(t *testing.T) {
	db := openMemDB(t)

	db.InsertBatch(batch("deadbeef-1234", "2025-06-01", "2025-06-15", "2025-06-16T08:00:00Z", 0), nil, []byte("x"))

	b, err := db.GetBatchByPrefix("deadb")
	if err != nil {
		t.Fatalf("GetBatchByPrefix: %v", err)
	}
	if b == nil {
		t.Fatal("expected match for prefix 'deadb'")
	}
	if b.ID != "deadbeef-1234" {
		t.Errorf("unexpected id %s", b.ID)
	}

	b2, err := db.GetBatchByPrefix("ffffffff")
	if err != nil {
		t.Fatalf("GetBatchByPrefix no-match: %v", err)
	}
	if b2 != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestLoadBatchEventsRoundTrip(t *testing.T) {
	db := openMemDB(t)

	e1 := pitch(717465, 12, 2, "2025-06-01")
	e1.Balls, e1.Strikes = 1, 0
	e1.BatScore, e1.FldScore, e1.PostBatScore = 3, 2, 4
	e1.On1B, e1.On3B = true, true
	e1.Description, e1.Event = "hit_into_play", "single"
	e1.Des = "Mike Trout singles on a line drive."
	e1.PitchType, e1.PitchName, e1.ReleaseSpeed = "SL", "Slider", 86.4
	e1.PlateX, e1.PlateZ, e1.HasLocation = -0.42, 2.15, true
	e1.XWOBA, e1.HasXWOBA = 0.712, true
	e1.WOBAValue, e1.WOBADenom = 0.9, 1

	// Inserted out of order; the loader sorts by game keys.
	events := []model.PitchEvent{e1, pitch(717465, 12, 1, "2025-06-01")}
	if err := db.InsertBatch(batch("rt-1", "2025-06-01", "2025-06-15", "2025-06-16T08:00:00Z", 2), events, []byte("raw")); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}

	got, err := db.LoadBatchEvents("rt-1")
	if err != nil {
		t.Fatalf("LoadBatchEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].PitchNum != 1 || got[1].PitchNum != 2 {
		t.Errorf("expected pitch order 1,2; got %d,%d", got[0].PitchNum, got[1].PitchNum)
	}

	r := got[1]
	if r.Event != "single" || r.Description != "hit_into_play" {
		t.Errorf("tags mismatch: event=%q description=%q", r.Event, r.Description)
	}
	if !r.On1B || r.On2B || !r.On3B {
		t.Errorf("base state mismatch: %v %v %v", r.On1B, r.On2B, r.On3B)
	}
	if r.PostBatScore != 4 {
		t.Errorf("PostBatScore: want 4, got %d", r.PostBatScore)
	}
	if !r.HasLocation || r.PlateX != -0.42 || r.PlateZ != 2.15 {
		t.Errorf("location mismatch: %v %f %f", r.HasLocation, r.PlateX, r.PlateZ)
	}
	if !r.HasXWOBA || r.XWOBA != 0.712 || r.WOBADenom != 1 {
		t.Errorf("xwOBA mismatch: %v %f %d", r.HasXWOBA, r.XWOBA, r.WOBADenom)
	}
	if got[0].PostBatScore != -1 {
		t.Errorf("missing post score should stay -1, got %d", got[0].PostBatScore)
	}
}

func TestLoadPlayerEventsDedup(t *testing.T) {
	db := openMemDB(t)

	// Two batches with overlapping date ranges share the middle pitch.
	a := []model.PitchEvent{
		pitch(717465, 12, 1, "2025-06-01"),
		pitch(717465, 12, 2, "2025-06-01"),
	}
	b := []model.PitchEvent{
		pitch(717465, 12, 2, "2025-06-01"),
		pitch(717502, 7, 1, "2025-06-02"),
	}
	db.InsertBatch(batch("a", "2025-06-01", "2025-06-01", "2025-06-02T08:00:00Z", 2), a, []byte("a"))
	db.InsertBatch(batch("b", "2025-06-01", "2025-06-02", "2025-06-03T08:00:00Z", 2), b, []byte("b"))

	got, err := db.LoadPlayerEvents(testBatter, "", "")
	if err != nil {
		t.Fatalf("LoadPlayerEvents: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 deduplicated events, got %d", len(got))
	}
}

func TestLoadPlayerEventsDateBounds(t *testing.T) {
	db := openMemDB(t)

	events := []model.PitchEvent{
		pitch(717465, 12, 1, "2025-06-01"),
		pitch(717502, 7, 1, "2025-06-10"),
		pitch(717533, 4, 1, "2025-06-20"),
	}
	db.InsertBatch(batch("a", "2025-06-01", "2025-06-30", "2025-07-01T08:00:00Z", 3), events, []byte("a"))

	got, err := db.LoadPlayerEvents(testBatter, "2025-06-05", "2025-06-15")
	if err != nil {
		t.Fatalf("LoadPlayerEvents: %v", err)
	}
	if len(got) != 1 || got[0].GamePK != 717502 {
		t.Fatalf("expected only the 2025-06-10 game, got %d events", len(got))
	}

	all, _ := db.LoadPlayerEvents(testBatter, "", "")
	if len(all) != 3 {
		t.Errorf("unbounded load: expected 3 events, got %d", len(all))
	}

	none, _ := db.LoadPlayerEvents(999999, "", "")
	if len(none) != 0 {
		t.Errorf("unknown batter: expected no events, got %d", len(none))
	}
}

func TestDeleteBatch(t *testing.T) {
	db := openMemDB(t)

	db.InsertBatch(batch("gone", "2025-06-01", "2025-06-01", "2025-06-02T08:00:00Z", 1),
		[]model.PitchEvent{pitch(717465, 12, 1, "2025-06-01")}, []byte("x"))

	if err := db.DeleteBatch("gone"); err != nil {
		t.Fatalf("DeleteBatch: %v", err)
	}

	b, _ := db.GetBatchByPrefix("gone")
	if b != nil {
		t.Error("batch still listed after delete")
	}
	left, _ := db.LoadPlayerEvents(testBatter, "", "")
	if len(left) != 0 {
		t.Errorf("expected no pitches after delete, got %d", len(left))
	}
}

func TestBatchPayloadRoundTrip(t *testing.T) {
	db := openMemDB(t)

	raw := []byte("game_pk,at_bat_number,pitch_number\n717465,12,1\n717465,12,2\n")
	db.InsertBatch(batch("pay", "2025-06-01", "2025-06-01", "2025-06-02T08:00:00Z", 2), nil, raw)

	got, err := db.GetBatchPayload("pay")
	if err != nil {
		t.Fatalf("GetBatchPayload: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("payload round-trip mismatch: got %q", got)
	}

	if _, err := db.GetBatchPayload("missing"); err == nil {
		t.Error("expected error for unknown batch id")
	}
}

func TestInsertBatchIdempotency(t *testing.T) {
	db := openMemDB(t)

	events := []model.PitchEvent{pitch(717465, 12, 1, "2025-06-01")}
	b := batch("idem", "2025-06-01", "2025-06-01", "2025-06-02T08:00:00Z", 1)
	db.InsertBatch(b, events, []byte("x"))
	// Second insert should not error (INSERT OR REPLACE).
	if err := db.InsertBatch(b, events, []byte("x")); err != nil {
		t.Errorf("second InsertBatch should succeed (idempotent): %v", err)
	}

	got, _ := db.LoadBatchEvents("idem")
	if len(got) != 1 {
		t.Errorf("expected 1 event after reinsert, got %d", len(got))
	}
}

func TestCoverageByPlayer(t *testing.T) {
	db := openMemDB(t)

	a := []model.PitchEvent{
		pitch(717465, 12, 1, "2025-06-01"),
		pitch(717465, 12, 2, "2025-06-01"),
	}
	b := []model.PitchEvent{
		pitch(717465, 12, 2, "2025-06-01"), // duplicate of a's second pitch
		pitch(717502, 7, 1, "2025-06-10"),
	}
	db.InsertBatch(batch("a", "2025-06-01", "2025-06-01", "2025-06-02T08:00:00Z", 2), a, []byte("a"))
	db.InsertBatch(batch("b", "2025-06-01", "2025-06-10", "2025-06-11T08:00:00Z", 2), b, []byte("b"))

	cov, err := db.CoverageByPlayer()
	if err != nil {
		t.Fatalf("CoverageByPlayer: %v", err)
	}
	if len(cov) != 1 {
		t.Fatalf("expected 1 batter, got %d", len(cov))
	}
	c := cov[0]
	if c.Batter != testBatter || c.Batches != 2 {
		t.Errorf("coverage identity mismatch: %+v", c)
	}
	if c.Pitches != 3 {
		t.Errorf("expected 3 deduplicated pitches, got %d", c.Pitches)
	}
	if c.Games != 2 {
		t.Errorf("expected 2 games, got %d", c.Games)
	}
	if c.FirstDate != "2025-06-01" || c.LastDate != "2025-06-10" {
		t.Errorf("date range mismatch: %s..%s", c.FirstDate, c.LastDate)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)

	db.InsertBatch(batch("q1", "2025-06-01", "2025-06-01", "2025-06-02T08:00:00Z", 1),
		[]model.PitchEvent{pitch(717465, 12, 1, "2025-06-01")}, []byte("x"))

	cols, rows, err := db.QueryRaw("SELECT id, pitches FROM batches")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "id" || cols[1] != "pitches" {
		t.Errorf("unexpected columns: %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "q1" || rows[0][1] != "1" {
		t.Errorf("unexpected rows: %v", rows)
	}
}
