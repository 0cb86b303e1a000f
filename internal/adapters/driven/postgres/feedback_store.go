package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.FeedbackStore = (*FeedbackStore)(nil)

const feedbackColumns = "id, session_id, route, indicator_name, drg_short_code, feedback_type, message, " +
	"assistant_message, consent, device, viewport_w, created_at"

// FeedbackStore implements driven.FeedbackStore using PostgreSQL
type FeedbackStore struct {
	db *DB
}

// NewFeedbackStore creates a new FeedbackStore
func NewFeedbackStore(db *DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Save stores a feedback entry
func (s *FeedbackStore) Save(ctx context.Context, fb *domain.Feedback) error {
	query := `INSERT INTO feedback (` + feedbackColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(ctx, query,
		fb.ID,
		fb.SessionID,
		fb.Route,
		NullString(fb.IndicatorName),
		NullString(fb.Category),
		fb.FeedbackType,
		fb.Message,
		NullString(fb.AssistantMessage),
		fb.Consent,
		NullString(fb.Device),
		NullInt(fb.ViewportWidth),
		fb.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}

// List returns entries newest first, narrowed by the filter
func (s *FeedbackStore) List(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, error) {
	query, args := buildFeedbackQuery(filter.Normalize())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	entries := []*domain.Feedback{}
	for rows.Next() {
		var fb domain.Feedback
		var indicator, category, assistant, device sql.NullString
		var viewport sql.NullInt64

		if err := rows.Scan(
			&fb.ID,
			&fb.SessionID,
			&fb.Route,
			&indicator,
			&category,
			&fb.FeedbackType,
			&fb.Message,
			&assistant,
			&fb.Consent,
			&device,
			&viewport,
			&fb.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}

		fb.IndicatorName = StringPtr(indicator)
		fb.Category = StringPtr(category)
		fb.AssistantMessage = StringPtr(assistant)
		fb.Device = StringPtr(device)
		fb.ViewportWidth = IntPtr(viewport)
		entries = append(entries, &fb)
	}
	return entries, rows.Err()
}

// buildFeedbackQuery renders the filtered listing query with positional args
func buildFeedbackQuery(filter domain.FeedbackFilter) (string, []any) {
	var where []string
	var args []any

	if filter.Route != "" {
		args = append(args, filter.Route)
		where = append(where, fmt.Sprintf("route = $%d", len(args)))
	}
	if filter.IndicatorName != "" {
		args = append(args, filter.IndicatorName)
		where = append(where, fmt.Sprintf("indicator_name = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + feedbackColumns + " FROM feedback")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	args = append(args, filter.Limit)
	fmt.Fprintf(&b, " ORDER BY created_at DESC, id LIMIT $%d", len(args))

	return b.String(), args
}
