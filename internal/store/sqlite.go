package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/checker"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

// SQLiteStore persists job postings, campaigns, and rankings in a SQLite
// database. Set-valued fields (skills, preference lists, explain maps) are
// stored as JSON text and converted back to typed structs at this boundary.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS job_postings (
	job_id             TEXT PRIMARY KEY,
	title              TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	employer           TEXT NOT NULL DEFAULT '',
	employer_size      TEXT NOT NULL DEFAULT '',
	location           TEXT NOT NULL DEFAULT '',
	employment_type    TEXT NOT NULL DEFAULT '',
	remote_type        TEXT NOT NULL DEFAULT 'unknown',
	salary_min         REAL,
	salary_max         REAL,
	salary_currency    TEXT,
	salary_period      TEXT,
	skills             TEXT NOT NULL DEFAULT '[]',
	seniority          TEXT NOT NULL DEFAULT 'unknown',
	posted_at          TEXT,
	ingested_at        TEXT NOT NULL,
	listing_available  INTEGER,
	listing_checked_at TEXT
);

CREATE TABLE IF NOT EXISTS campaigns (
	campaign_id      TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	query            TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	salary_min       REAL,
	salary_max       REAL,
	salary_currency  TEXT,
	salary_period    TEXT,
	remote_types     TEXT NOT NULL DEFAULT '[]',
	seniorities      TEXT NOT NULL DEFAULT '[]',
	employer_sizes   TEXT NOT NULL DEFAULT '[]',
	employment_types TEXT NOT NULL DEFAULT '[]',
	skills           TEXT NOT NULL DEFAULT '[]',
	weights          TEXT
);

CREATE TABLE IF NOT EXISTS rankings (
	job_id      TEXT NOT NULL REFERENCES job_postings(job_id) ON DELETE CASCADE,
	campaign_id TEXT NOT NULL REFERENCES campaigns(campaign_id) ON DELETE CASCADE,
	score       REAL NOT NULL,
	explain     TEXT NOT NULL DEFAULT '{}',
	ranked_at   TEXT NOT NULL,
	PRIMARY KEY (job_id, campaign_id)
);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists. Foreign keys are enabled through the DSN because the
// pragma is per-connection: database/sql pools connections, and campaign
// deletion must cascade to rankings on every one of them.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Interface checks.
var (
	_ model.JobSource    = (*SQLiteStore)(nil)
	_ model.RankingStore = (*SQLiteStore)(nil)
	_ checker.Store      = (*SQLiteStore)(nil)
)

// UpsertJob inserts or replaces a posting. The listing-availability mark is
// preserved across re-ingestion; only the availability checker updates it.
func (s *SQLiteStore) UpsertJob(ctx context.Context, job model.JobPosting) error {
	skills, err := json.Marshal(job.Skills)
	if err != nil {
		return fmt.Errorf("upserting job %s: encoding skills: %w", job.ID, err)
	}

	var salaryMin, salaryMax sql.NullFloat64
	var salaryCurrency, salaryPeriod sql.NullString
	if job.Salary != nil {
		salaryMin = sql.NullFloat64{Float64: job.Salary.Min, Valid: true}
		salaryMax = sql.NullFloat64{Float64: job.Salary.Max, Valid: true}
		salaryCurrency = sql.NullString{String: job.Salary.Currency, Valid: true}
		salaryPeriod = sql.NullString{String: job.Salary.Period, Valid: true}
	}

	ingestedAt := job.IngestedAt
	if ingestedAt.IsZero() {
		ingestedAt = time.Now()
	}

	query := `INSERT INTO job_postings (
		job_id, title, description, employer, employer_size, location,
		employment_type, remote_type, salary_min, salary_max,
		salary_currency, salary_period, skills, seniority, posted_at, ingested_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (job_id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		employer = excluded.employer,
		employer_size = excluded.employer_size,
		location = excluded.location,
		employment_type = excluded.employment_type,
		remote_type = excluded.remote_type,
		salary_min = excluded.salary_min,
		salary_max = excluded.salary_max,
		salary_currency = excluded.salary_currency,
		salary_period = excluded.salary_period,
		skills = excluded.skills,
		seniority = excluded.seniority,
		posted_at = excluded.posted_at`

	_, err = s.db.ExecContext(ctx, query,
		job.ID, job.Title, job.Description, job.Employer, job.EmployerSize,
		job.Location, job.EmploymentType, string(job.RemoteType),
		salaryMin, salaryMax, salaryCurrency, salaryPeriod,
		string(skills), string(job.Seniority),
		encodeTimePtr(job.PostedAt), encodeTime(ingestedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting job %s: %w", job.ID, err)
	}
	return nil
}

const jobColumns = `job_id, title, description, employer, employer_size,
	location, employment_type, remote_type, salary_min, salary_max,
	salary_currency, salary_period, skills, seniority, posted_at,
	ingested_at, listing_available, listing_checked_at`

// ListJobs returns all stored postings ordered by job ID for stable output.
func (s *SQLiteStore) ListJobs(ctx context.Context) ([]model.JobPosting, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+jobColumns+" FROM job_postings ORDER BY job_id")
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("listing jobs: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

// GetJob fetches a single posting by ID.
func (s *SQLiteStore) GetJob(ctx context.Context, jobID string) (model.JobPosting, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+jobColumns+" FROM job_postings WHERE job_id = ?", jobID)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return model.JobPosting{}, fmt.Errorf("job %s not found", jobID)
	}
	if err != nil {
		return model.JobPosting{}, fmt.Errorf("getting job %s: %w", jobID, err)
	}
	return job, nil
}

// ListForAvailabilityCheck returns up to limit postings in the requested
// stable order: never-checked and stalest marks first, or most recently
// ingested first.
func (s *SQLiteStore) ListForAvailabilityCheck(ctx context.Context, order checker.Order, limit int) ([]model.JobPosting, error) {
	builder := sq.Select(jobColumns).From("job_postings")

	switch order {
	case checker.OrderNewestIngested:
		builder = builder.OrderBy("ingested_at DESC", "job_id")
	default:
		builder = builder.OrderBy("listing_checked_at IS NULL DESC", "listing_checked_at ASC", "job_id")
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("listing jobs for availability check: building query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs for availability check: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("listing jobs for availability check: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing jobs for availability check: %w", err)
	}
	return jobs, nil
}

// MarkAvailability records a definitive availability check outcome. The
// posting row itself is never deleted.
func (s *SQLiteStore) MarkAvailability(ctx context.Context, jobID string, available bool, checkedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE job_postings SET listing_available = ?, listing_checked_at = ? WHERE job_id = ?",
		available, encodeTime(checkedAt), jobID,
	)
	if err != nil {
		return fmt.Errorf("marking availability for job %s: %w", jobID, err)
	}
	return nil
}

// UpsertCampaign inserts or replaces a campaign.
func (s *SQLiteStore) UpsertCampaign(ctx context.Context, c model.Campaign) error {
	remoteTypes, err := json.Marshal(c.RemoteTypes)
	if err != nil {
		return fmt.Errorf("upserting campaign %s: encoding remote types: %w", c.ID, err)
	}
	seniorities, err := json.Marshal(c.Seniorities)
	if err != nil {
		return fmt.Errorf("upserting campaign %s: encoding seniorities: %w", c.ID, err)
	}
	employerSizes, err := json.Marshal(c.EmployerSizes)
	if err != nil {
		return fmt.Errorf("upserting campaign %s: encoding employer sizes: %w", c.ID, err)
	}
	employmentTypes, err := json.Marshal(c.EmploymentTypes)
	if err != nil {
		return fmt.Errorf("upserting campaign %s: encoding employment types: %w", c.ID, err)
	}
	skills, err := json.Marshal(c.Skills)
	if err != nil {
		return fmt.Errorf("upserting campaign %s: encoding skills: %w", c.ID, err)
	}

	var weights sql.NullString
	if c.Weights != nil {
		encoded, err := json.Marshal(c.Weights)
		if err != nil {
			return fmt.Errorf("upserting campaign %s: encoding weights: %w", c.ID, err)
		}
		weights = sql.NullString{String: string(encoded), Valid: true}
	}

	var salaryMin, salaryMax sql.NullFloat64
	var salaryCurrency, salaryPeriod sql.NullString
	if c.Salary != nil {
		salaryMin = sql.NullFloat64{Float64: c.Salary.Min, Valid: true}
		salaryMax = sql.NullFloat64{Float64: c.Salary.Max, Valid: true}
		salaryCurrency = sql.NullString{String: c.Salary.Currency, Valid: true}
		salaryPeriod = sql.NullString{String: c.Salary.Period, Valid: true}
	}

	query := `INSERT INTO campaigns (
		campaign_id, name, query, location, salary_min, salary_max,
		salary_currency, salary_period, remote_types, seniorities,
		employer_sizes, employment_types, skills, weights
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (campaign_id) DO UPDATE SET
		name = excluded.name,
		query = excluded.query,
		location = excluded.location,
		salary_min = excluded.salary_min,
		salary_max = excluded.salary_max,
		salary_currency = excluded.salary_currency,
		salary_period = excluded.salary_period,
		remote_types = excluded.remote_types,
		seniorities = excluded.seniorities,
		employer_sizes = excluded.employer_sizes,
		employment_types = excluded.employment_types,
		skills = excluded.skills,
		weights = excluded.weights`

	_, err = s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Query, c.Location,
		salaryMin, salaryMax, salaryCurrency, salaryPeriod,
		string(remoteTypes), string(seniorities), string(employerSizes),
		string(employmentTypes), string(skills), weights,
	)
	if err != nil {
		return fmt.Errorf("upserting campaign %s: %w", c.ID, err)
	}
	return nil
}

const campaignColumns = `campaign_id, name, query, location, salary_min,
	salary_max, salary_currency, salary_period, remote_types, seniorities,
	employer_sizes, employment_types, skills, weights`

// ListCampaigns returns all campaigns ordered by ID.
func (s *SQLiteStore) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+campaignColumns+" FROM campaigns ORDER BY campaign_id")
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("listing campaigns: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaign fetches a single campaign by ID.
func (s *SQLiteStore) GetCampaign(ctx context.Context, campaignID string) (model.Campaign, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+campaignColumns+" FROM campaigns WHERE campaign_id = ?", campaignID)
	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return model.Campaign{}, fmt.Errorf("campaign %s not found", campaignID)
	}
	if err != nil {
		return model.Campaign{}, fmt.Errorf("getting campaign %s: %w", campaignID, err)
	}
	return c, nil
}

// DeleteCampaign removes a campaign; dependent rankings cascade.
func (s *SQLiteStore) DeleteCampaign(ctx context.Context, campaignID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM campaigns WHERE campaign_id = ?", campaignID)
	if err != nil {
		return fmt.Errorf("deleting campaign %s: %w", campaignID, err)
	}
	return nil
}

// UpsertRanking writes one ranking row keyed by (job, campaign). The insert
// is an atomic conditional write: a conflicting row is overwritten in place,
// so concurrent runs for the same campaign stay idempotent without locking.
func (s *SQLiteStore) UpsertRanking(ctx context.Context, r model.Ranking) error {
	explain, err := json.Marshal(r.Explain)
	if err != nil {
		return fmt.Errorf("upserting ranking (%s, %s): encoding explain: %w", r.JobID, r.CampaignID, err)
	}

	query := `INSERT INTO rankings (job_id, campaign_id, score, explain, ranked_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (job_id, campaign_id) DO UPDATE SET
		score = excluded.score,
		explain = excluded.explain,
		ranked_at = excluded.ranked_at`

	_, err = s.db.ExecContext(ctx, query,
		r.JobID, r.CampaignID, r.Score, string(explain), encodeTime(r.RankedAt))
	if err != nil {
		return fmt.Errorf("upserting ranking (%s, %s): %w", r.JobID, r.CampaignID, err)
	}
	return nil
}

// GetRanking fetches the ranking for one (job, campaign) pair.
func (s *SQLiteStore) GetRanking(ctx context.Context, jobID, campaignID string) (model.Ranking, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT job_id, campaign_id, score, explain, ranked_at FROM rankings WHERE job_id = ? AND campaign_id = ?",
		jobID, campaignID)
	r, err := scanRanking(row)
	if err == sql.ErrNoRows {
		return model.Ranking{}, fmt.Errorf("ranking (%s, %s) not found", jobID, campaignID)
	}
	if err != nil {
		return model.Ranking{}, fmt.Errorf("getting ranking (%s, %s): %w", jobID, campaignID, err)
	}
	return r, nil
}

// ListRankings returns a campaign's rankings ordered by score descending,
// job ID as the stable tiebreak.
func (s *SQLiteStore) ListRankings(ctx context.Context, campaignID string) ([]model.Ranking, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT job_id, campaign_id, score, explain, ranked_at FROM rankings WHERE campaign_id = ? ORDER BY score DESC, job_id",
		campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing rankings for campaign %s: %w", campaignID, err)
	}
	defer rows.Close()

	var rankings []model.Ranking
	for rows.Next() {
		r, err := scanRanking(rows)
		if err != nil {
			return nil, fmt.Errorf("listing rankings for campaign %s: %w", campaignID, err)
		}
		rankings = append(rankings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing rankings for campaign %s: %w", campaignID, err)
	}
	return rankings, nil
}

// CountRankings returns the number of ranking rows for a campaign.
func (s *SQLiteStore) CountRankings(ctx context.Context, campaignID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rankings WHERE campaign_id = ?", campaignID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting rankings for campaign %s: %w", campaignID, err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(sc scanner) (model.JobPosting, error) {
	var (
		job                          model.JobPosting
		remoteType, seniority        string
		salaryMin, salaryMax         sql.NullFloat64
		salaryCurrency, salaryPeriod sql.NullString
		skills                       string
		postedAt, checkedAt          sql.NullString
		ingestedAt                   string
		available                    sql.NullBool
	)

	err := sc.Scan(
		&job.ID, &job.Title, &job.Description, &job.Employer, &job.EmployerSize,
		&job.Location, &job.EmploymentType, &remoteType,
		&salaryMin, &salaryMax, &salaryCurrency, &salaryPeriod,
		&skills, &seniority, &postedAt, &ingestedAt, &available, &checkedAt,
	)
	if err != nil {
		return model.JobPosting{}, err
	}

	job.RemoteType = model.RemoteType(remoteType)
	job.Seniority = model.SeniorityLevel(seniority)

	if salaryMin.Valid || salaryMax.Valid {
		job.Salary = &model.SalaryRange{
			Min:      salaryMin.Float64,
			Max:      salaryMax.Float64,
			Currency: salaryCurrency.String,
			Period:   salaryPeriod.String,
		}
	}

	if err := json.Unmarshal([]byte(skills), &job.Skills); err != nil {
		return model.JobPosting{}, fmt.Errorf("decoding skills for job %s: %w", job.ID, err)
	}

	if job.PostedAt, err = decodeTimePtr(postedAt); err != nil {
		return model.JobPosting{}, fmt.Errorf("decoding posted_at for job %s: %w", job.ID, err)
	}
	if job.IngestedAt, err = decodeTime(ingestedAt); err != nil {
		return model.JobPosting{}, fmt.Errorf("decoding ingested_at for job %s: %w", job.ID, err)
	}
	if job.ListingCheckedAt, err = decodeTimePtr(checkedAt); err != nil {
		return model.JobPosting{}, fmt.Errorf("decoding listing_checked_at for job %s: %w", job.ID, err)
	}
	if available.Valid {
		job.ListingAvailable = &available.Bool
	}

	return job, nil
}

func scanCampaign(sc scanner) (model.Campaign, error) {
	var (
		c                                                 model.Campaign
		salaryMin, salaryMax                              sql.NullFloat64
		salaryCurrency, salaryPeriod, weights             sql.NullString
		remoteTypes, seniorities, sizes, empTypes, skills string
	)

	err := sc.Scan(
		&c.ID, &c.Name, &c.Query, &c.Location,
		&salaryMin, &salaryMax, &salaryCurrency, &salaryPeriod,
		&remoteTypes, &seniorities, &sizes, &empTypes, &skills, &weights,
	)
	if err != nil {
		return model.Campaign{}, err
	}

	if salaryMin.Valid || salaryMax.Valid {
		c.Salary = &model.SalaryRange{
			Min:      salaryMin.Float64,
			Max:      salaryMax.Float64,
			Currency: salaryCurrency.String,
			Period:   salaryPeriod.String,
		}
	}

	for _, field := range []struct {
		raw  string
		dest any
	}{
		{remoteTypes, &c.RemoteTypes},
		{seniorities, &c.Seniorities},
		{sizes, &c.EmployerSizes},
		{empTypes, &c.EmploymentTypes},
		{skills, &c.Skills},
	} {
		if err := json.Unmarshal([]byte(field.raw), field.dest); err != nil {
			return model.Campaign{}, fmt.Errorf("decoding campaign %s: %w", c.ID, err)
		}
	}

	if weights.Valid {
		if err := json.Unmarshal([]byte(weights.String), &c.Weights); err != nil {
			return model.Campaign{}, fmt.Errorf("decoding weights for campaign %s: %w", c.ID, err)
		}
	}

	return c, nil
}

func scanRanking(sc scanner) (model.Ranking, error) {
	var (
		r        model.Ranking
		explain  string
		rankedAt string
	)

	if err := sc.Scan(&r.JobID, &r.CampaignID, &r.Score, &explain, &rankedAt); err != nil {
		return model.Ranking{}, err
	}

	if err := json.Unmarshal([]byte(explain), &r.Explain); err != nil {
		return model.Ranking{}, fmt.Errorf("decoding explain for (%s, %s): %w", r.JobID, r.CampaignID, err)
	}

	var err error
	if r.RankedAt, err = decodeTime(rankedAt); err != nil {
		return model.Ranking{}, fmt.Errorf("decoding ranked_at for (%s, %s): %w", r.JobID, r.CampaignID, err)
	}

	return r, nil
}

// Timestamps are stored as RFC 3339 strings so they sort lexicographically
// in ORDER BY clauses.
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(*t), Valid: true}
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func decodeTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := decodeTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
