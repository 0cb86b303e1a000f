package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CompanyStore = (*CompanyStore)(nil)

const companyColumns = "id, name, description, website, scores, evaluations, per_category, overall_score, last_updated"

// CompanyStore implements driven.CompanyStore using PostgreSQL.
// Scores, evaluations and per-category results are JSONB columns.
type CompanyStore struct {
	db *DB
}

// NewCompanyStore creates a new CompanyStore
func NewCompanyStore(db *DB) *CompanyStore {
	return &CompanyStore{db: db}
}

// companyJSON holds the encoded JSONB columns of one company
type companyJSON struct {
	scores      []byte
	evaluations []byte
	perCategory []byte
}

func encodeCompany(c *domain.Company) (companyJSON, error) {
	var out companyJSON
	var err error

	scores := c.Scores
	if scores == nil {
		scores = domain.RawScores{}
	}
	if out.scores, err = json.Marshal(scores); err != nil {
		return out, fmt.Errorf("encode scores: %w", err)
	}

	evaluations := c.Evaluations
	if evaluations == nil {
		evaluations = []domain.Evaluation{}
	}
	if out.evaluations, err = json.Marshal(evaluations); err != nil {
		return out, fmt.Errorf("encode evaluations: %w", err)
	}

	perCategory := c.PerCategory
	if perCategory == nil {
		perCategory = map[domain.Category]float64{}
	}
	if out.perCategory, err = json.Marshal(perCategory); err != nil {
		return out, fmt.Errorf("encode category scores: %w", err)
	}
	return out, nil
}

// Create inserts a company and assigns its ID
func (s *CompanyStore) Create(ctx context.Context, company *domain.Company) error {
	enc, err := encodeCompany(company)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO companies (name, description, website, scores, evaluations, per_category, overall_score, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = s.db.QueryRowContext(ctx, query,
		company.Name,
		company.Description,
		company.Website,
		enc.scores,
		enc.evaluations,
		enc.perCategory,
		company.Overall,
		company.LastUpdated,
	).Scan(&company.ID)
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// Get retrieves a company by ID
func (s *CompanyStore) Get(ctx context.Context, id int64) (*domain.Company, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+companyColumns+" FROM companies WHERE id = $1", id)
	return scanCompany(row)
}

// List retrieves all companies ordered by ID
func (s *CompanyStore) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+companyColumns+" FROM companies ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := []*domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// Update replaces a stored company
func (s *CompanyStore) Update(ctx context.Context, company *domain.Company) error {
	enc, err := encodeCompany(company)
	if err != nil {
		return err
	}

	query := `
		UPDATE companies SET
			name = $2,
			description = $3,
			website = $4,
			scores = $5,
			evaluations = $6,
			per_category = $7,
			overall_score = $8,
			last_updated = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Description,
		company.Website,
		enc.scores,
		enc.evaluations,
		enc.perCategory,
		company.Overall,
		company.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a company
func (s *CompanyStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return requireAffected(res)
}

func scanCompany(row rowScanner) (*domain.Company, error) {
	var c domain.Company
	var enc companyJSON

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Website,
		&enc.scores,
		&enc.evaluations,
		&enc.perCategory,
		&c.Overall,
		&c.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan company: %w", err)
	}

	if err := decodeCompany(&c, enc); err != nil {
		return nil, fmt.Errorf("company %d: %w", c.ID, err)
	}
	return &c, nil
}

func decodeCompany(c *domain.Company, enc companyJSON) error {
	c.Scores = domain.RawScores{}
	if len(enc.scores) > 0 {
		if err := json.Unmarshal(enc.scores, &c.Scores); err != nil {
			return fmt.Errorf("decode scores: %w", err)
		}
	}
	c.Evaluations = []domain.Evaluation{}
	if len(enc.evaluations) > 0 {
		if err := json.Unmarshal(enc.evaluations, &c.Evaluations); err != nil {
			return fmt.Errorf("decode evaluations: %w", err)
		}
	}
	c.PerCategory = map[domain.Category]float64{}
	if len(enc.perCategory) > 0 {
		if err := json.Unmarshal(enc.perCategory, &c.PerCategory); err != nil {
			return fmt.Errorf("decode category scores: %w", err)
		}
	}
	return nil
}
