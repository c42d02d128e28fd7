package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/questions/catalog"
	"examgpt_backend/internals/features/questions/model"
	"examgpt_backend/internals/helpers/gemini"
)

/* =======================================================================
   Fakes
======================================================================= */

type fakeStore struct {
	mu        sync.Mutex
	questions map[string][]model.Question // key subject|chapter|class
	leases    map[string]bool
	insertErr error
	inserts   int
	deletes   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions: map[string][]model.Question{},
		leases:    map[string]bool{},
	}
}

func key(subject, chapter, classLevel string) string {
	return subject + "|" + chapter + "|" + classLevel
}

func (f *fakeStore) CountByDifficulty(_ context.Context, subject, chapter, classLevel string) (CompletionCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out CompletionCount
	for _, q := range f.questions[key(subject, chapter, classLevel)] {
		switch q.Difficulty {
		case "easy":
			out.Easy++
		case "medium":
			out.Medium++
		case "hard":
			out.Hard++
		}
	}
	return out, nil
}

func (f *fakeStore) TotalCount(_ context.Context, subject, chapter, classLevel string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.questions[key(subject, chapter, classLevel)])), nil
}

func (f *fakeStore) InsertBatch(_ context.Context, qs []model.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts++
	for _, q := range qs {
		k := key(q.Subject, q.Chapter, q.ClassLevel)
		f.questions[k] = append(f.questions[k], q)
	}
	return nil
}

func (f *fakeStore) DeleteChapter(_ context.Context, subject, chapter, classLevel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(subject, chapter, classLevel)
	f.deletes = append(f.deletes, k)
	delete(f.questions, k)
	return nil
}

func (f *fakeStore) FetchChapter(_ context.Context, subject, chapter, classLevel, difficulty string, limit int) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Question
	for _, q := range f.questions[key(subject, chapter, classLevel)] {
		if difficulty == "" || q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) AcquireLease(_ context.Context, subject, chapter, classLevel string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(subject, chapter, classLevel)
	if f.leases[k] {
		return false, nil
	}
	f.leases[k] = true
	return true, nil
}

func (f *fakeStore) ReleaseLease(_ context.Context, subject, chapter, classLevel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.leases, key(subject, chapter, classLevel))
	return nil
}

type fakeStorage struct {
	pdfs map[string][]byte // key chapterID
}

func (f *fakeStorage) Exists(_ context.Context, _, _, chapter string) (bool, error) {
	_, ok := f.pdfs[chapter]
	return ok, nil
}

func (f *fakeStorage) GetBytes(_ context.Context, _, _, chapter string) ([]byte, error) {
	pdf, ok := f.pdfs[chapter]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return pdf, nil
}

type fakeAI struct {
	mu           sync.Mutex
	extractCalls int
	mcqCalls     int
	failMCQ      bool
	// kalau != 0, kembalikan sejumlah ini alih-alih `count` yang diminta
	overrideCount int
}

func (f *fakeAI) ExtractPDFText(_ context.Context, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extractCalls++
	return strings.Repeat("NCERT chapter content. ", 50), nil
}

func (f *fakeAI) GenerateMCQs(_ context.Context, _, _, chapter, _, difficulty string, count int) ([]gemini.MCQ, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mcqCalls++
	if f.failMCQ {
		return nil, fmt.Errorf("model overloaded")
	}
	if f.overrideCount != 0 {
		count = f.overrideCount
	}
	out := make([]gemini.MCQ, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, gemini.MCQ{
			Question:      fmt.Sprintf("%s %s q%d", chapter, difficulty, i),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "B",
			Explanation:   "because",
			Topic:         "topic",
		})
	}
	return out, nil
}

func newTestService(store *fakeStore, storage *fakeStorage, ai *fakeAI) (*GenerationService, *[]time.Duration) {
	svc := NewGenerationService(store, storage, ai)
	var sleeps []time.Duration
	svc.Sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	svc.Now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc, &sleeps
}

func physicsRef(chapterID string) catalog.ChapterRef {
	ref, ok := catalog.Find("physics", "class11", chapterID)
	if !ok {
		panic("unknown chapter: " + chapterID)
	}
	return ref
}

func seedComplete(store *fakeStore, ref catalog.ChapterRef) {
	k := key(ref.Subject, ref.ChapterID, ref.ClassLevel)
	for _, d := range []string{"easy", "medium", "hard"} {
		for i := 0; i < configs.QuestionsPerDifficulty; i++ {
			store.questions[k] = append(store.questions[k], model.Question{
				ID: fmt.Sprintf("%s-%s-%d", ref.ChapterID, d, i), Subject: ref.Subject,
				Chapter: ref.ChapterID, ClassLevel: ref.ClassLevel, Difficulty: d,
			})
		}
	}
}

/* =======================================================================
   Tests
======================================================================= */

func TestGenerateChapterProducesFullSet(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{}
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, ai)

	ref := physicsRef("chapter-1-physical-world")
	res, err := svc.GenerateChapter(context.Background(), ref, false)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, configs.TotalPerChapter, res.QuestionsGenerated)
	assert.Equal(t, "fallback", res.ContentSource)
	assert.Equal(t, 1, store.inserts, "harus satu bulk insert per bab")

	counts, _ := store.CountByDifficulty(context.Background(), ref.Subject, ref.ChapterID, ref.ClassLevel)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Easy)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Medium)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Hard)
}

func TestGenerateChapterUsesOSSWhenPDFExists(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{}
	storage := &fakeStorage{pdfs: map[string][]byte{"chapter-2-units-and-measurements": []byte("%PDF-1.4")}}
	svc, _ := newTestService(store, storage, ai)

	res, err := svc.GenerateChapter(context.Background(), physicsRef("chapter-2-units-and-measurements"), false)
	require.NoError(t, err)
	assert.Equal(t, "oss", res.ContentSource)
	assert.Equal(t, 1, ai.extractCalls)
}

func TestGenerateChapterIdempotentWhenComplete(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{}
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, ai)

	ref := physicsRef("chapter-1-physical-world")
	seedComplete(store, ref)

	res, err := svc.GenerateChapter(context.Background(), ref, false)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.True(t, res.Cached)
	assert.Equal(t, 0, res.QuestionsGenerated)
	assert.Equal(t, 0, ai.mcqCalls, "bab lengkap tidak boleh panggil AI")
	assert.Equal(t, 0, store.inserts)
}

func TestGenerateChapterTopsUpOnlyMissing(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{}
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, ai)

	ref := physicsRef("chapter-1-physical-world")
	// easy sudah penuh, medium setengah, hard kosong
	k := key(ref.Subject, ref.ChapterID, ref.ClassLevel)
	for i := 0; i < configs.QuestionsPerDifficulty; i++ {
		store.questions[k] = append(store.questions[k], model.Question{ID: fmt.Sprintf("e%d", i), Subject: ref.Subject, Chapter: ref.ChapterID, ClassLevel: ref.ClassLevel, Difficulty: "easy"})
	}
	for i := 0; i < 30; i++ {
		store.questions[k] = append(store.questions[k], model.Question{ID: fmt.Sprintf("m%d", i), Subject: ref.Subject, Chapter: ref.ChapterID, ClassLevel: ref.ClassLevel, Difficulty: "medium"})
	}

	res, err := svc.GenerateChapter(context.Background(), ref, false)
	require.NoError(t, err)
	assert.Equal(t, 30+configs.QuestionsPerDifficulty, res.QuestionsGenerated)

	counts, _ := store.CountByDifficulty(context.Background(), ref.Subject, ref.ChapterID, ref.ClassLevel)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Easy)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Medium)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Hard)
}

func TestGenerateChapterForceDeletesOnlyThatChapter(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{}
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, ai)

	target := physicsRef("chapter-1-physical-world")
	other := physicsRef("chapter-2-units-and-measurements")
	seedComplete(store, target)
	seedComplete(store, other)

	res, err := svc.GenerateChapter(context.Background(), target, true)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, configs.TotalPerChapter, res.QuestionsGenerated)

	// bab lain tidak tersentuh
	require.Len(t, store.deletes, 1)
	assert.Equal(t, key(target.Subject, target.ChapterID, target.ClassLevel), store.deletes[0])
	otherTotal, _ := store.TotalCount(context.Background(), other.Subject, other.ChapterID, other.ClassLevel)
	assert.Equal(t, int64(configs.TotalPerChapter), otherTotal)
}

func TestGenerateChapterFallsBackToSamplesOnAIFailure(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{failMCQ: true}
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, ai)

	ref := physicsRef("chapter-1-physical-world")
	res, err := svc.GenerateChapter(context.Background(), ref, false)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, configs.TotalPerChapter, res.QuestionsGenerated)

	qs, _ := store.FetchChapter(context.Background(), ref.Subject, ref.ChapterID, ref.ClassLevel, "easy", 1)
	require.NotEmpty(t, qs)
	assert.Contains(t, qs[0].Question, "Sample easy question")
	assert.Contains(t, qs[0].Question, ref.ChapterName)
}

func TestSynthesizeEnforcesExactCount(t *testing.T) {
	ref := physicsRef("chapter-1-physical-world")

	// AI mengembalikan lebih sedikit dari yang diminta → dipad soal sampel.
	short := &fakeAI{overrideCount: 7}
	svc, _ := newTestService(newFakeStore(), &fakeStorage{pdfs: map[string][]byte{}}, short)
	out := svc.Synthesize(context.Background(), ref, "content", "easy", configs.QuestionsPerDifficulty)
	assert.Len(t, out, configs.QuestionsPerDifficulty)

	// AI mengembalikan lebih banyak → dipotong.
	long := &fakeAI{overrideCount: configs.QuestionsPerDifficulty + 25}
	svc, _ = newTestService(newFakeStore(), &fakeStorage{pdfs: map[string][]byte{}}, long)
	out = svc.Synthesize(context.Background(), ref, "content", "hard", configs.QuestionsPerDifficulty)
	assert.Len(t, out, configs.QuestionsPerDifficulty)
}

func TestGenerateChapterFullSetDespiteShortAIBatches(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{overrideCount: 13}
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, ai)

	ref := physicsRef("chapter-1-physical-world")
	res, err := svc.GenerateChapter(context.Background(), ref, false)
	require.NoError(t, err)
	assert.Equal(t, configs.TotalPerChapter, res.QuestionsGenerated)

	counts, _ := store.CountByDifficulty(context.Background(), ref.Subject, ref.ChapterID, ref.ClassLevel)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Easy)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Medium)
	assert.Equal(t, configs.QuestionsPerDifficulty, counts.Hard)
}

func TestGenerateChapterStrictPersistError(t *testing.T) {
	store := newFakeStore()
	store.insertErr = fmt.Errorf("disk full")
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, &fakeAI{})

	_, err := svc.GenerateChapter(context.Background(), physicsRef("chapter-1-physical-world"), false)
	assert.Error(t, err)
}

func TestGenerateChapterLeaseBlocksConcurrentRun(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, &fakeAI{})

	ref := physicsRef("chapter-1-physical-world")
	// proses lain sedang pegang lease
	store.leases[key(ref.Subject, ref.ChapterID, ref.ClassLevel)] = true

	res, err := svc.GenerateChapter(context.Background(), ref, false)
	assert.Error(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "another process")
}

func TestRunBatchNeverAborts(t *testing.T) {
	store := newFakeStore()
	store.insertErr = fmt.Errorf("db down")
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, &fakeAI{})

	report, err := svc.RunBatch(context.Background(), "physics", "class11", 3, false)
	require.NoError(t, err)

	// semua bab dicoba, semua gagal persist, tidak ada yang menghentikan batch
	require.Len(t, report.Results, 3)
	for _, r := range report.Results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "persist error")
	}
	assert.Equal(t, 0, report.Processed)
}

func TestRunBatchSkipsCompleteChapters(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, &fakeAI{})

	first := physicsRef("chapter-1-physical-world")
	seedComplete(store, first)

	report, err := svc.RunBatch(context.Background(), "physics", "class11", 2, false)
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	for _, r := range report.Results {
		assert.NotEqual(t, first.ChapterID, r.Chapter, "bab lengkap tidak boleh ikut batch")
		assert.True(t, r.Success)
	}
	assert.Equal(t, 2, report.Processed)
}

func TestRunBatchInvalidSubject(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, &fakeAI{})

	_, err := svc.RunBatch(context.Background(), "history", "class11", 5, false)
	assert.Error(t, err)
}

func TestProcessChaptersDelaySchedule(t *testing.T) {
	store := newFakeStore()
	svc, sleeps := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, &fakeAI{})

	refs := []catalog.ChapterRef{
		physicsRef("chapter-1-physical-world"),
		physicsRef("chapter-2-units-and-measurements"),
		physicsRef("chapter-3-motion-in-a-straight-line"),
	}

	// batchSize 2: bab ke-3 melewati batas sub-batch
	results := svc.processChapters(context.Background(), refs, 2, false)
	require.Len(t, results, 3)

	var chapterDelays, batchDelays int
	for _, d := range *sleeps {
		switch d {
		case configs.ChapterDelay:
			chapterDelays++
		case configs.BatchDelay:
			batchDelays++
		}
	}
	assert.Equal(t, 2, chapterDelays, "3 bab berurutan = 2 jeda antar bab")
	assert.Equal(t, 1, batchDelays, "melewati satu batas sub-batch = 1 jeda batch")
}

func TestProcessChaptersNoDelayForSingleChapter(t *testing.T) {
	store := newFakeStore()
	svc, sleeps := newTestService(store, &fakeStorage{pdfs: map[string][]byte{}}, &fakeAI{})

	results := svc.processChapters(context.Background(), []catalog.ChapterRef{physicsRef("chapter-1-physical-world")}, 5, false)
	require.Len(t, results, 1)
	assert.Empty(t, *sleeps)
}

func TestQuestionIDShape(t *testing.T) {
	ref := physicsRef("chapter-1-physical-world")
	now := time.UnixMilli(1700000000123)

	id := questionID(ref, "easy", now, 7)
	assert.True(t, strings.HasPrefix(id, "physics_chapter-1-physical-world_class11_easy_1700000000123_7_"), id)
	parts := strings.Split(id, "_")
	assert.Len(t, parts[len(parts)-1], 8, "suffix acak 4 byte hex")
}
