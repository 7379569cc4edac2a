package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenJournal()
	if err != nil {
		t.Fatalf("OpenJournal() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func mustStart(t *testing.T, j *Journal, player string) string {
	t.Helper()
	id, err := j.StartRun(player)
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	return id
}

func mustRecord(t *testing.T, j *Journal, id string, r LevelResult) {
	t.Helper()
	if err := j.RecordLevel(id, r); err != nil {
		t.Fatalf("RecordLevel() failed: %v", err)
	}
}

func TestJournalStartRun(t *testing.T) {
	j := openTestJournal(t)

	a := mustStart(t, j, "local")
	b := mustStart(t, j, "local")

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("run ID %q is not a uuid: %v", a, err)
	}
	if a == b {
		t.Error("run IDs should be unique")
	}

	s, err := j.RunSummary(a)
	if err != nil {
		t.Fatalf("RunSummary() failed: %v", err)
	}
	if s.Player != "local" || s.Levels != 0 || s.Score != 0 || s.Over {
		t.Errorf("fresh run summary = %+v", s)
	}
}

func TestJournalRunSummary(t *testing.T) {
	j := openTestJournal(t)
	id := mustStart(t, j, "alice")

	mustRecord(t, j, id, LevelResult{Level: 1, Outcome: OutcomeCleared, Score: 500, Lives: 3, Kills: 3, Ticks: 900})
	mustRecord(t, j, id, LevelResult{Level: 2, Outcome: OutcomeCleared, Score: 1100, Lives: 2, Kills: 4, Ticks: 1200})
	mustRecord(t, j, id, LevelResult{Level: 3, Outcome: OutcomeLost, Score: 1300, Lives: 0, Kills: 2, Ticks: 700})

	s, err := j.RunSummary(id)
	if err != nil {
		t.Fatalf("RunSummary() failed: %v", err)
	}

	want := RunSummary{RunID: id, Player: "alice", Levels: 3, MaxLevel: 3, Score: 1300, Kills: 9, Ticks: 2800, Over: true}
	s.StartedAt = time.Time{}
	if s != want {
		t.Errorf("RunSummary() = %+v, expected %+v", s, want)
	}

	levels, err := j.Levels(id)
	if err != nil {
		t.Fatalf("Levels() failed: %v", err)
	}
	if len(levels) != 3 || levels[0].Level != 1 || levels[2].Outcome != OutcomeLost {
		t.Errorf("Levels() = %+v", levels)
	}
}

func TestJournalUnknownRun(t *testing.T) {
	j := openTestJournal(t)

	err := j.RecordLevel("no-such-run", LevelResult{Level: 1, Outcome: OutcomeCleared})
	if !errors.Is(err, ErrUnknownRun) {
		t.Errorf("RecordLevel() error = %v, expected ErrUnknownRun", err)
	}

	if _, err := j.RunSummary("no-such-run"); !errors.Is(err, ErrUnknownRun) {
		t.Errorf("RunSummary() error = %v, expected ErrUnknownRun", err)
	}
}

func TestJournalInvalidOutcome(t *testing.T) {
	j := openTestJournal(t)
	id := mustStart(t, j, "local")

	if err := j.RecordLevel(id, LevelResult{Level: 1, Outcome: "draw"}); err == nil {
		t.Error("expected error for invalid outcome")
	}
}

func TestJournalRunsNewestFirst(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 4; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		j.now = func() time.Time { return at }
		ids = append(ids, mustStart(t, j, "p"))
	}

	runs, err := j.Runs(3)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Runs(3) returned %d runs", len(runs))
	}
	for i, want := range []string{ids[3], ids[2], ids[1]} {
		if runs[i].RunID != want {
			t.Errorf("runs[%d] = %s, expected %s", i, runs[i].RunID, want)
		}
	}
	if !runs[0].StartedAt.Equal(base.Add(3 * time.Minute)) {
		t.Errorf("StartedAt = %v", runs[0].StartedAt)
	}

	all, err := j.Runs(0)
	if err != nil {
		t.Fatalf("Runs(0) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Runs(0) returned %d runs, expected 4", len(all))
	}
}

func TestJournalBestScore(t *testing.T) {
	j := openTestJournal(t)

	best, err := j.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("empty journal BestScore() = %d, expected 0", best)
	}

	a := mustStart(t, j, "a")
	b := mustStart(t, j, "b")
	mustRecord(t, j, a, LevelResult{Level: 1, Outcome: OutcomeLost, Score: 300})
	mustRecord(t, j, b, LevelResult{Level: 1, Outcome: OutcomeCleared, Score: 700})
	mustRecord(t, j, b, LevelResult{Level: 2, Outcome: OutcomeLost, Score: 900})

	best, err = j.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 900 {
		t.Errorf("BestScore() = %d, expected 900", best)
	}
}

func TestJournalSeparateInstances(t *testing.T) {
	a := openTestJournal(t)
	b := openTestJournal(t)

	mustStart(t, a, "x")
	runs, err := b.Runs(0)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("journals should not share data, got %d runs", len(runs))
	}
}

func TestJournalConcurrentSessions(t *testing.T) {
	j := openTestJournal(t)

	const sessions = 8
	var wg sync.WaitGroup
	errs := make(chan error, sessions)
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id, err := j.StartRun("ssh")
			if err != nil {
				errs <- err
				return
			}
			errs <- j.RecordLevel(id, LevelResult{Level: 1, Outcome: OutcomeLost, Score: n * 100})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent write failed: %v", err)
		}
	}

	runs, err := j.Runs(0)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != sessions {
		t.Errorf("Runs() returned %d, expected %d", len(runs), sessions)
	}
}
