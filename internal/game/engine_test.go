package game

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ardra-p/Sustainability-Board-Game/internal/store"
	"github.com/ardra-p/Sustainability-Board-Game/internal/uploads"
)

type stubArtifacts struct {
	err   error
	saved []string
}

func (s *stubArtifacts) SaveProofPhoto(ctx context.Context, photo io.Reader, username string, taskID int, day time.Time) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	key := fmt.Sprintf("%s_%d_%s", username, taskID, day.Format("2006-01-02"))
	s.saved = append(s.saved, key)
	return "stub://" + key, nil
}

func newTestEngine(t *testing.T, artifacts uploads.Artifacts) (*Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	eng := NewEngine(mem, artifacts)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	eng.now = func() time.Time { return base }
	return eng, mem
}

func register(t *testing.T, mem *store.Memory, username string) {
	t.Helper()
	if _, err := mem.CreateAccount(context.Background(), username, "hash"); err != nil {
		t.Fatalf("create account %s: %v", username, err)
	}
}

func TestSubmitTaskScenario(t *testing.T) {
	eng, mem := newTestEngine(t, nil)
	register(t, mem, "alice")
	ctx := context.Background()

	out, err := eng.SubmitTask(ctx, "alice", 1, "recycled three cans", nil)
	if err != nil {
		t.Fatalf("submit task 1: %v", err)
	}
	if !out.Accepted || out.Points != 20 {
		t.Fatalf("task 1: accepted=%v points=%d, want accepted 20 points", out.Accepted, out.Points)
	}
	if len(out.SubmittedToday) != 1 || out.SubmittedToday[0] != 1 {
		t.Fatalf("task 1: submitted today = %v, want [1]", out.SubmittedToday)
	}

	out, err = eng.SubmitTask(ctx, "alice", 2, "planted a sapling", nil)
	if err != nil {
		t.Fatalf("submit task 2: %v", err)
	}
	if !out.Accepted || out.Points != 40 || len(out.SubmittedToday) != 2 {
		t.Fatalf("task 2: accepted=%v points=%d today=%v", out.Accepted, out.Points, out.SubmittedToday)
	}

	// Troisième soumission le même jour : plafond atteint.
	out, err = eng.SubmitTask(ctx, "alice", 3, "no plastic today", nil)
	if err != nil {
		t.Fatalf("submit task 3: %v", err)
	}
	if out.Accepted || out.Reason != ReasonDailyLimitOrDuplicate {
		t.Fatalf("task 3: accepted=%v reason=%q, want daily-limit rejection", out.Accepted, out.Reason)
	}
	if out.Points != 40 {
		t.Fatalf("task 3: points changed on rejection: %d", out.Points)
	}

	account, err := mem.GetAccount(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if account.Points%TaskAward != 0 {
		t.Fatalf("points %d is not a multiple of the award", account.Points)
	}
	subs, _ := mem.ListSubmissions(ctx, "alice")
	if len(subs) != 2 {
		t.Fatalf("expected 2 submission records, got %d", len(subs))
	}
}

func TestSubmitTaskDuplicateSameDay(t *testing.T) {
	eng, mem := newTestEngine(t, nil)
	register(t, mem, "bob")
	ctx := context.Background()

	if _, err := eng.SubmitTask(ctx, "bob", 4, "taps off", nil); err != nil {
		t.Fatal(err)
	}
	out, err := eng.SubmitTask(ctx, "bob", 4, "taps off again", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Accepted || out.Reason != ReasonDailyLimitOrDuplicate {
		t.Fatalf("duplicate accepted: %+v", out)
	}
	if out.Points != 20 {
		t.Fatalf("points changed on duplicate: %d", out.Points)
	}
	subs, _ := mem.ListSubmissions(ctx, "bob")
	if len(subs) != 1 {
		t.Fatalf("duplicate created a record: %d records", len(subs))
	}
}

func TestSubmitTaskSameTaskNextDay(t *testing.T) {
	eng, mem := newTestEngine(t, nil)
	register(t, mem, "carol")
	ctx := context.Background()

	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	eng.now = func() time.Time { return day }
	if _, err := eng.SubmitTask(ctx, "carol", 1, "", nil); err != nil {
		t.Fatal(err)
	}

	// Le lendemain, la même tâche redevient soumissible.
	day = day.AddDate(0, 0, 1)
	out, err := eng.SubmitTask(ctx, "carol", 1, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Accepted || out.Points != 40 {
		t.Fatalf("next-day resubmission: %+v", out)
	}
}

func TestSubmitTaskLockedLevel(t *testing.T) {
	eng, mem := newTestEngine(t, nil)
	register(t, mem, "dave")
	ctx := context.Background()

	out, err := eng.SubmitTask(ctx, "dave", 6, "lights off", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Accepted || out.Reason != ReasonUnknownOrLockedTask {
		t.Fatalf("level-2 task below 100 points: %+v", out)
	}

	out, err = eng.SubmitTask(ctx, "dave", 999, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Accepted || out.Reason != ReasonUnknownOrLockedTask {
		t.Fatalf("unknown task id: %+v", out)
	}
}

func TestSubmitTaskUnlocksLevelTwo(t *testing.T) {
	eng, mem := newTestEngine(t, nil)
	register(t, mem, "erin")
	ctx := context.Background()

	// 100 points en cinq jours, une tâche de niveau 1 par jour.
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		current := day.AddDate(0, 0, i)
		eng.now = func() time.Time { return current }
		out, err := eng.SubmitTask(ctx, "erin", i+1, "", nil)
		if err != nil {
			t.Fatal(err)
		}
		if !out.Accepted {
			t.Fatalf("day %d: rejected with %q", i, out.Reason)
		}
	}

	account, _ := mem.GetAccount(ctx, "erin")
	if account.Points != 100 {
		t.Fatalf("expected 100 points, got %d", account.Points)
	}

	next := day.AddDate(0, 0, 5)
	eng.now = func() time.Time { return next }
	out, err := eng.SubmitTask(ctx, "erin", 6, "lights off", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Accepted || out.Points != 120 || out.UnlockedLevel != 2 {
		t.Fatalf("level-2 task at 100 points: %+v", out)
	}
}

func TestSubmitTaskUnknownAccount(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	if _, err := eng.SubmitTask(context.Background(), "ghost", 1, "", nil); !errors.Is(err, store.ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount, got %v", err)
	}
}

func TestSubmitTaskPhotoFailureIsNotFatal(t *testing.T) {
	artifacts := &stubArtifacts{err: errors.New("upload target unavailable")}
	eng, mem := newTestEngine(t, artifacts)
	register(t, mem, "frank")

	out, err := eng.SubmitTask(context.Background(), "frank", 2, "", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("photo failure must not fail the submission: %v", err)
	}
	if !out.Accepted || out.Points != 20 {
		t.Fatalf("submission not applied: %+v", out)
	}
	if out.PhotoError == "" {
		t.Fatal("photo failure not reported in outcome")
	}
	subs, _ := mem.ListSubmissions(context.Background(), "frank")
	if len(subs) != 1 {
		t.Fatalf("submission record missing: %d", len(subs))
	}
}

func TestSubmitTaskStoresPhotoUnderDeterministicKey(t *testing.T) {
	artifacts := &stubArtifacts{}
	eng, mem := newTestEngine(t, artifacts)
	register(t, mem, "grace")

	out, err := eng.SubmitTask(context.Background(), "grace", 3, "", bytes.NewReader([]byte{0xff, 0xd8}))
	if err != nil {
		t.Fatal(err)
	}
	want := "grace_3_2025-03-10"
	if out.PhotoURL != "stub://"+want {
		t.Fatalf("photo url = %q, want key %q", out.PhotoURL, want)
	}
	if len(artifacts.saved) != 1 || artifacts.saved[0] != want {
		t.Fatalf("saved keys = %v", artifacts.saved)
	}
}

func TestSubmitTaskConcurrentSameUser(t *testing.T) {
	eng, mem := newTestEngine(t, nil)
	register(t, mem, "heidi")
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 8; i++ {
		taskID := i%5 + 1
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := eng.SubmitTask(ctx, "heidi", taskID, "", nil)
			if err != nil {
				t.Errorf("submit task %d: %v", taskID, err)
				return
			}
			if out.Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != DailyCap {
		t.Fatalf("accepted %d concurrent submissions, cap is %d", accepted, DailyCap)
	}
	account, _ := mem.GetAccount(ctx, "heidi")
	if account.Points != DailyCap*TaskAward {
		t.Fatalf("points = %d, want %d", account.Points, DailyCap*TaskAward)
	}
	subs, _ := mem.ListSubmissions(ctx, "heidi")
	if len(subs) != DailyCap {
		t.Fatalf("records = %d, want %d", len(subs), DailyCap)
	}
}

func TestGameView(t *testing.T) {
	eng, mem := newTestEngine(t, nil)
	register(t, mem, "ivan")
	ctx := context.Background()

	view, err := eng.GameView(ctx, "ivan", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Tasks) != 5 || view.UnlockedLevel != 1 || view.MaxSubmit != DailyCap {
		t.Fatalf("level-1 view: %+v", view)
	}

	// Niveau 2 verrouillé : liste vide, pas d'erreur.
	view, err = eng.GameView(ctx, "ivan", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Tasks) != 0 {
		t.Fatalf("locked level exposed %d tasks", len(view.Tasks))
	}

	if _, err := eng.SubmitTask(ctx, "ivan", 1, "", nil); err != nil {
		t.Fatal(err)
	}
	view, err = eng.GameView(ctx, "ivan", 1)
	if err != nil {
		t.Fatal(err)
	}
	if view.Points != 20 || len(view.SubmittedToday) != 1 {
		t.Fatalf("view after submission: %+v", view)
	}
}
