package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/qna-service/internal/apperror"
	"github.com/sakif/qna-service/internal/model"
	"github.com/sakif/qna-service/internal/moderation"
	"github.com/sakif/qna-service/internal/pagination"
	"github.com/sakif/qna-service/internal/repository"
)

// fakeModerator censors the word "darn" and records every text it screened.
type fakeModerator struct {
	screened []string
	err      error
}

func (f *fakeModerator) Check(ctx context.Context, text string) (moderation.Result, error) {
	f.screened = append(f.screened, text)
	if f.err != nil {
		return moderation.Result{}, f.err
	}
	if strings.Contains(text, "darn") {
		return moderation.Result{
			Original: text,
			Censored: strings.ReplaceAll(text, "darn", "****"),
			Verdict:  moderation.VerdictContainsProfanity,
		}, nil
	}
	return moderation.Result{Original: text, Verdict: moderation.VerdictClean}, nil
}

// fakeQuestionRepo is an in-memory QuestionRepository.
type fakeQuestionRepo struct {
	questions map[int]*model.Question
	nextID    int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[int]*model.Question), nextID: 1}
}

func (f *fakeQuestionRepo) CreateQuestion(ctx context.Context, q *model.Question, accountID int) error {
	q.ID = f.nextID
	f.nextID++
	copied := *q
	f.questions[q.ID] = &copied
	return nil
}

func (f *fakeQuestionRepo) ListQuestions(ctx context.Context, opts repository.ListOptions) ([]model.Question, error) {
	out := []model.Question{}
	for id := 1; id < f.nextID && len(out) < opts.Limit; id++ {
		if id <= opts.Offset {
			continue
		}
		if q, ok := f.questions[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) UpdateQuestion(ctx context.Context, q *model.Question) error {
	if _, ok := f.questions[q.ID]; !ok {
		return apperror.NotFound("question", q.ID)
	}
	copied := *q
	f.questions[q.ID] = &copied
	return nil
}

func (f *fakeQuestionRepo) DeleteQuestion(ctx context.Context, id int) error {
	if _, ok := f.questions[id]; !ok {
		return apperror.NotFound("question", id)
	}
	delete(f.questions, id)
	return nil
}

func TestQuestionCreate_CleanTextStoredVerbatim(t *testing.T) {
	repo := newFakeQuestionRepo()
	mod := &fakeModerator{}
	svc := NewQuestionService(repo, mod, testLogger())

	q, err := svc.Create(context.Background(), 1, model.NewQuestion{
		Title:   "how do I test",
		Content: "plain content",
		Tags:    []string{"testing"},
	})
	require.NoError(t, err)

	assert.Equal(t, "how do I test", q.Title)
	assert.Equal(t, "plain content", q.Content)
	assert.Equal(t, []string{"testing"}, q.Tags)
	// Both text fields went through the classifier.
	assert.Equal(t, []string{"how do I test", "plain content"}, mod.screened)
}

func TestQuestionCreate_ProfanityStoredCensored(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, &fakeModerator{}, testLogger())

	q, err := svc.Create(context.Background(), 1, model.NewQuestion{
		Title:   "hello darn world",
		Content: "fine content",
	})
	require.NoError(t, err)

	// The write succeeds with sanitized content — not rejected.
	assert.Equal(t, "hello **** world", q.Title)
	assert.Equal(t, "hello **** world", repo.questions[q.ID].Title)
	assert.Equal(t, "fine content", q.Content)
}

func TestQuestionCreate_ClassifierFailureAbortsWrite(t *testing.T) {
	repo := newFakeQuestionRepo()
	mod := &fakeModerator{err: apperror.ThirdParty(assert.AnError)}
	svc := NewQuestionService(repo, mod, testLogger())

	_, err := svc.Create(context.Background(), 1, model.NewQuestion{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrThirdParty)
	// Nothing was persisted: no partial writes on moderation failure.
	assert.Empty(t, repo.questions)
}

func TestQuestionList_WindowPassThrough(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, &fakeModerator{}, testLogger())

	for i := 0; i < 4; i++ {
		_, err := svc.Create(context.Background(), 1, model.NewQuestion{Title: "t", Content: "c"})
		require.NoError(t, err)
	}

	got, err := svc.List(context.Background(), pagination.Pagination{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// limit=0 reaches the repository unmodified and yields an empty page.
	got, err = svc.List(context.Background(), pagination.Pagination{Limit: 0, Offset: 0})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuestionUpdate_ModeratesReplacementText(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, &fakeModerator{}, testLogger())

	q, err := svc.Create(context.Background(), 1, model.NewQuestion{Title: "old", Content: "old"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), q.ID, model.NewQuestion{
		Title:   "darn title",
		Content: "new content",
	})
	require.NoError(t, err)
	assert.Equal(t, "**** title", updated.Title)
	assert.Equal(t, "**** title", repo.questions[q.ID].Title)
}

func TestQuestionUpdate_NotFound(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionRepo(), &fakeModerator{}, testLogger())

	_, err := svc.Update(context.Background(), 99, model.NewQuestion{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestQuestionDelete(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, &fakeModerator{}, testLogger())

	q, err := svc.Create(context.Background(), 1, model.NewQuestion{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), q.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), q.ID), apperror.ErrNotFound)
}
