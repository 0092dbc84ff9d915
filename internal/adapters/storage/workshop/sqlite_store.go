package workshop

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"workshops/internal/adapters/storage"
	domain "workshops/internal/domain/workshop"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// FetchWorkshop loads the stored detail for base.ID and merges it with base.
// PRE: base.ID identifies a listed workshop
// POST: Returns domain.ErrNotFound when no detail row exists
func (s *SQLiteStore) FetchWorkshop(ctx context.Context, base domain.BaseWorkshop) (domain.Workshop[domain.Content], error) {
	var visibility, kind string
	err := s.db.QueryRowContext(ctx,
		`SELECT visibility, content_kind FROM workshop_detail WHERE workshop_id = ?`, base.ID).
		Scan(&visibility, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Workshop[domain.Content]{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Workshop[domain.Content]{}, err
	}
	if kind != domain.ContentKindProblemStatements {
		return domain.Workshop[domain.Content]{}, fmt.Errorf("workshop %d: unsupported content kind %q", base.ID, kind)
	}

	facilitators, err := s.listFacilitators(ctx, base.ID)
	if err != nil {
		return domain.Workshop[domain.Content]{}, err
	}
	statements, err := s.listProblemStatements(ctx, base.ID)
	if err != nil {
		return domain.Workshop[domain.Content]{}, err
	}

	return domain.Workshop[domain.Content]{
		BaseWorkshop: base,
		Facilitators: facilitators,
		Visibility:   domain.Visibility(visibility),
		Content:      domain.ProblemStatementContent{ProblemStatements: statements},
	}, nil
}

func (s *SQLiteStore) listFacilitators(ctx context.Context, id int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM workshop_facilitator WHERE workshop_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) listProblemStatements(ctx context.Context, id int) ([]domain.ProblemStatement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, owner_role, title_phrase, counter_phrase, reason_phrase, emotion_phrase, related_items
		 FROM problem_statement WHERE workshop_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statements := []domain.ProblemStatement{}
	for rows.Next() {
		var ps domain.ProblemStatement
		var related string
		if err := rows.Scan(&ps.ID, &ps.OwnerID, &ps.OwnerRole, &ps.TitlePhrase,
			&ps.CounterPhrase, &ps.ReasonPhrase, &ps.EmotionPhrase, &related); err != nil {
			return nil, err
		}
		ps.RelatedItems = parseRelated(related, id, ps.ID)
		statements = append(statements, ps)
	}
	return statements, rows.Err()
}

// parseRelated decodes the JSON id list, logging a warning on failure.
func parseRelated(raw string, workshopID, statementID int) []int {
	related := []int{}
	if err := json.Unmarshal([]byte(raw), &related); err != nil {
		slog.Warn("workshop: failed to parse related items",
			"workshop_id", workshopID, "statement_id", statementID, "raw", raw, "error", err)
		return []int{}
	}
	return related
}

// SaveWorkshop replaces the stored detail for w.ID.
// PRE: w.Visibility is valid
// POST: Detail, facilitators and problem statements are persisted atomically
func (s *SQLiteStore) SaveWorkshop(ctx context.Context, w domain.Workshop[domain.ProblemStatementContent]) error {
	if !w.Visibility.Valid() {
		return domain.ErrInvalidVisibility
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO workshop_detail (workshop_id, visibility, content_kind, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(workshop_id) DO UPDATE SET
		   visibility=excluded.visibility, content_kind=excluded.content_kind, updated_at=excluded.updated_at`,
		w.ID, string(w.Visibility), w.Content.ContentKind(), time.Now().UTC().Format(timeLayout)); err != nil {
		return fmt.Errorf("save workshop %d: %w", w.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM workshop_facilitator WHERE workshop_id = ?`, w.ID); err != nil {
		return err
	}
	for i, name := range w.Facilitators {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workshop_facilitator (workshop_id, position, name) VALUES (?, ?, ?)`,
			w.ID, i, name); err != nil {
			return fmt.Errorf("save facilitator %q: %w", name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM problem_statement WHERE workshop_id = ?`, w.ID); err != nil {
		return err
	}
	for i, ps := range w.Content.ProblemStatements {
		related := ps.RelatedItems
		if related == nil {
			related = []int{}
		}
		relatedJSON, err := json.Marshal(related)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO problem_statement (workshop_id, position, id, owner_id, owner_role,
			   title_phrase, counter_phrase, reason_phrase, emotion_phrase, related_items)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.ID, i, ps.ID, ps.OwnerID, ps.OwnerRole, ps.TitlePhrase,
			ps.CounterPhrase, ps.ReasonPhrase, ps.EmotionPhrase, string(relatedJSON)); err != nil {
			return fmt.Errorf("save problem statement %d: %w", ps.ID, err)
		}
	}

	return tx.Commit()
}

// Exists reports whether a detail row exists for id.
func (s *SQLiteStore) Exists(ctx context.Context, id int) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workshop_detail WHERE workshop_id = ?`, id).Scan(&n)
	return n > 0, err
}
