package sentence

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"

	postgres "github.com/heartmarshall/wordbook/internal/adapter/postgres"
)

func newMockRepo(t *testing.T, policy postgres.Policy) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return New(mock, policy, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func ptr(s string) *string { return &s }

var sentenceColumns = []string{"id", "word_id", "example", "meaning"}

func TestRecord_DuplicateExampleReusesRow(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t, postgres.CheckThenInsert)

	mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
		WithArgs(int64(1), "He runs daily.").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(insertSQL)).
		WithArgs(int64(1), "He runs daily.", ptr("habit")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_sentence_word_example"})
	mock.ExpectQuery(regexp.QuoteMeta(findSQL)).
		WithArgs(int64(1), "He runs daily.").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(30)))

	id, err := repo.Record(context.Background(), 1, "He runs daily.", ptr("habit"))
	if err != nil {
		t.Fatalf("Record: unexpected error: %v", err)
	}
	if id != 30 {
		t.Errorf("id = %d, want 30", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListByWordID(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t, postgres.CheckThenInsert)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE word_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(sentenceColumns).
			AddRow(int64(1), int64(1), "He runs daily.", ptr("habit")).
			AddRow(int64(2), int64(1), "Run!", ptr("command")))

	got, err := repo.ListByWordID(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByWordID: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Meaning == nil || *got[0].Meaning != "habit" {
		t.Errorf("first meaning = %v, want habit", got[0].Meaning)
	}
}

func TestListByWordID_NoneIsEmptyNotNil(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t, postgres.CheckThenInsert)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE word_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(sentenceColumns))

	got, err := repo.ListByWordID(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListByWordID: unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListByWordID = %#v, want empty slice", got)
	}
}

func TestListByWordIDs_SingleQuery(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t, postgres.CheckThenInsert)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sentence WHERE word_id IN ($1,$2,$3) ORDER BY word_id, id")).
		WillReturnRows(pgxmock.NewRows(sentenceColumns).
			AddRow(int64(1), int64(1), "a", ptr("x")).
			AddRow(int64(2), int64(3), "b", ptr("y")))

	got, err := repo.ListByWordIDs(context.Background(), []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("ListByWordIDs: unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].WordID != 1 || got[1].WordID != 3 {
		t.Errorf("ListByWordIDs = %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListByWordIDs_EmptySetSkipsQuery(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t, postgres.CheckThenInsert)

	got, err := repo.ListByWordIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListByWordIDs: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
