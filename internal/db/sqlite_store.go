package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/surveyforge/surveyforge/internal/log"
	"github.com/surveyforge/surveyforge/internal/models"
	"github.com/surveyforge/surveyforge/internal/store"
)

// SQLiteStore implements the persistence gateway over a local sqlite file.
// Records are whole-object JSON blobs replaced on every write, so a survey
// update is last-writer-wins at survey granularity.
type SQLiteStore struct {
	db      *sql.DB
	baseURL string
}

var _ store.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(d *sql.DB, baseURL string) (*SQLiteStore, error) {
	if d == nil {
		return nil, errors.New("nil db")
	}
	return &SQLiteStore{db: d, baseURL: baseURL}, nil
}

func (s *SQLiteStore) ListSurveys(ctx context.Context) ([]*models.Survey, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM surveys ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()
	out := []*models.Survey{}
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("list surveys: %w", err)
		}
		sv, err := decodeSurvey(blob)
		if err != nil {
			// a corrupt record fails the whole read; the caller renders a
			// storage failure rather than a silently truncated list
			return nil, err
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetSurvey(ctx context.Context, id string) (*models.Survey, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM surveys WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get survey %s: %w", id, err)
	}
	return decodeSurvey(blob)
}

func (s *SQLiteStore) PutSurvey(ctx context.Context, sv *models.Survey) error {
	blob, err := json.Marshal(sv)
	if err != nil {
		return fmt.Errorf("encode survey %s: %w", sv.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO surveys (id, status, created_at, data) VALUES (?, ?, ?, ?)
      ON CONFLICT(id) DO UPDATE SET status = excluded.status, data = excluded.data`,
		sv.ID, string(sv.Status), sv.CreatedAt.UTC().Format(time.RFC3339Nano), string(blob))
	if err != nil {
		return fmt.Errorf("put survey %s: %w", sv.ID, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteSurvey(ctx context.Context, id string) error {
	// responses cascade via the foreign key
	if _, err := s.db.ExecContext(ctx, `DELETE FROM surveys WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete survey %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) ListResponses(ctx context.Context, surveyID string) ([]*models.SurveyResponse, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM responses WHERE survey_id = ? ORDER BY submitted_at, id`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()
	out := []*models.SurveyResponse{}
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("list responses: %w", err)
		}
		var r models.SurveyResponse
		if err := json.Unmarshal([]byte(blob), &r); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// PutResponse appends the response and increments the owning survey's
// completion count in one transaction.
func (s *SQLiteStore) PutResponse(ctx context.Context, r *models.SurveyResponse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put response: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Warnf("sqlite store: rollback: %v", err)
		}
	}()

	sv, err := lockSurvey(ctx, tx, r.SurveyID)
	if err != nil {
		return err
	}
	sv.CompletionCount++
	if err := updateSurveyBlob(ctx, tx, sv); err != nil {
		return err
	}

	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode response %s: %w", r.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO responses (id, survey_id, submitted_at, data) VALUES (?, ?, ?, ?)`,
		r.ID, r.SurveyID, r.SubmittedAt.UTC().Format(time.RFC3339Nano), string(blob)); err != nil {
		return fmt.Errorf("put response %s: %w", r.ID, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) GenerateShareLink(ctx context.Context, surveyID string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("share link: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Warnf("sqlite store: rollback: %v", err)
		}
	}()

	sv, err := lockSurvey(ctx, tx, surveyID)
	if err != nil {
		return "", err
	}
	if sv.ShareableLink != "" {
		return sv.ShareableLink, tx.Commit()
	}
	sv.ShareableLink = store.ShareLink(s.baseURL, surveyID)
	if err := updateSurveyBlob(ctx, tx, sv); err != nil {
		return "", err
	}
	return sv.ShareableLink, tx.Commit()
}

// ClearAll drops every stored record; test helper.
func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM responses`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM surveys`)
	return err
}

func lockSurvey(ctx context.Context, tx *sql.Tx, id string) (*models.Survey, error) {
	var blob string
	err := tx.QueryRowContext(ctx, `SELECT data FROM surveys WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUnknownSurvey
	}
	if err != nil {
		return nil, fmt.Errorf("get survey %s: %w", id, err)
	}
	return decodeSurvey(blob)
}

func updateSurveyBlob(ctx context.Context, tx *sql.Tx, sv *models.Survey) error {
	blob, err := json.Marshal(sv)
	if err != nil {
		return fmt.Errorf("encode survey %s: %w", sv.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE surveys SET data = ?, status = ? WHERE id = ?`,
		string(blob), string(sv.Status), sv.ID); err != nil {
		return fmt.Errorf("update survey %s: %w", sv.ID, err)
	}
	return nil
}

func decodeSurvey(blob string) (*models.Survey, error) {
	var sv models.Survey
	if err := json.Unmarshal([]byte(blob), &sv); err != nil {
		return nil, fmt.Errorf("decode survey: %w", err)
	}
	return &sv, nil
}
