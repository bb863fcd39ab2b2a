package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrDuplicateName    = errors.New("scenario name already taken")
)

// Scenario is one stored generation: the inputs that produced it and the
// encoded world.
type Scenario struct {
	ID         int64
	Name       string
	Seed       int64
	Players    int
	Skills     int
	Difficulty int
	Length     int
	Width      int
	Height     int
	Treasures  int
	Data       []byte
	CreatedAt  time.Time
}

const scenarioColumns = "id, name, seed, players, skills, difficulty, length, width, height, treasures, created_at"

// SaveScenario inserts s and returns its new id. s.ID is set, and so is
// s.CreatedAt when it is zero.
func (d *Database) SaveScenario(s *Scenario) (int64, error) {
	if s.Name == "" {
		return 0, fmt.Errorf("scenario name is required")
	}
	if len(s.Data) == 0 {
		return 0, fmt.Errorf("scenario %q has no data", s.Name)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	query := d.qb.BuildWithReturning(`INSERT INTO scenarios
		(name, seed, players, skills, difficulty, length, width, height, treasures, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, "id")
	args := []any{s.Name, s.Seed, s.Players, s.Skills, s.Difficulty, s.Length,
		s.Width, s.Height, s.Treasures, s.Data, s.CreatedAt}

	var id int64
	if d.dialect.SupportsLastInsertID() {
		result, err := d.db.Exec(query, args...)
		if err != nil {
			return 0, d.insertError(s.Name, err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return 0, err
		}
	} else if err := d.db.QueryRow(query, args...).Scan(&id); err != nil {
		return 0, d.insertError(s.Name, err)
	}

	s.ID = id
	return id, nil
}

func (d *Database) insertError(name string, err error) error {
	if d.dialect.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	return fmt.Errorf("failed to save scenario: %w", err)
}

// GetScenario loads a scenario including its data.
func (d *Database) GetScenario(id int64) (*Scenario, error) {
	return d.getScenario("id = ?", id)
}

// GetScenarioByName loads a scenario including its data.
func (d *Database) GetScenarioByName(name string) (*Scenario, error) {
	return d.getScenario("name = ?", name)
}

func (d *Database) getScenario(where string, arg any) (*Scenario, error) {
	s := &Scenario{}
	err := d.db.QueryRow(
		d.qb.Build("SELECT "+scenarioColumns+", data FROM scenarios WHERE "+where),
		arg,
	).Scan(&s.ID, &s.Name, &s.Seed, &s.Players, &s.Skills, &s.Difficulty, &s.Length,
		&s.Width, &s.Height, &s.Treasures, &s.CreatedAt, &s.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScenarioNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListScenarios returns every stored scenario ordered by id, without data.
func (d *Database) ListScenarios() ([]*Scenario, error) {
	rows, err := d.db.Query("SELECT " + scenarioColumns + " FROM scenarios ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Scenario
	for rows.Next() {
		s := &Scenario{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Seed, &s.Players, &s.Skills, &s.Difficulty,
			&s.Length, &s.Width, &s.Height, &s.Treasures, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteScenario removes a scenario by id.
func (d *Database) DeleteScenario(id int64) error {
	result, err := d.db.Exec(d.qb.Build("DELETE FROM scenarios WHERE id = ?"), id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrScenarioNotFound
	}
	return nil
}

// CountScenarios returns the number of stored scenarios.
func (d *Database) CountScenarios() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM scenarios").Scan(&n)
	return n, err
}
