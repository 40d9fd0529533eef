package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-wellness-backend/internal/domain"
)

type submissionRepo struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Store(ctx context.Context, sub *domain.StoredSubmission) error {
	query := `INSERT INTO contact_submissions (id, firstname, lastname, email, message, language, client_ip, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		sub.ID, sub.Firstname, sub.Lastname, sub.Email, sub.Message,
		sub.Language, sub.ClientIP, sub.CreatedAt,
	)
	return err
}

func (r *submissionRepo) List(ctx context.Context, limit int) ([]domain.StoredSubmission, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `SELECT id, firstname, lastname, email, message, language, client_ip, created_at
              FROM contact_submissions ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.StoredSubmission
	for rows.Next() {
		var s domain.StoredSubmission
		if err := rows.Scan(&s.ID, &s.Firstname, &s.Lastname, &s.Email,
			&s.Message, &s.Language, &s.ClientIP, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
