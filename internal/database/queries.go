package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func (db *PgSprintbotRepository) ListSprints() ([]Sprint, error) {
	rows, err := db.conn.Query("SELECT id, sprint_code, name FROM sprints")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sprints = make([]Sprint, 0)
	for rows.Next() {
		var s Sprint
		if err := rows.Scan(&s.Id, &s.SprintCode, &s.Name); err != nil {
			return nil, err
		}

		sprints = append(sprints, s)
	}

	return sprints, rows.Err()
}

func (db *PgSprintbotRepository) GetSprintById(id int) (Sprint, error) {
	row := db.conn.QueryRow(
		"SELECT id, sprint_code, name FROM sprints WHERE id = $1 LIMIT 1",
		id,
	)

	var s Sprint
	err := row.Scan(&s.Id, &s.SprintCode, &s.Name)

	return s, err
}

func (db *PgSprintbotRepository) GetSprintByCode(code string) (Sprint, error) {
	row := db.conn.QueryRow(
		"SELECT id, sprint_code, name FROM sprints WHERE sprint_code = $1 LIMIT 1",
		code,
	)

	var s Sprint
	err := row.Scan(&s.Id, &s.SprintCode, &s.Name)

	return s, err
}

func (db *PgSprintbotRepository) CreateSprint(params CreateSprintParams) (Sprint, error) {
	row := db.conn.QueryRow(
		"INSERT INTO sprints (sprint_code, name) VALUES ($1, $2) RETURNING id, sprint_code, name",
		params.SprintCode,
		params.Name,
	)

	var s Sprint
	err := row.Scan(&s.Id, &s.SprintCode, &s.Name)

	return s, err
}

func (db *PgSprintbotRepository) UpdateSprint(params UpdateSprintParams) (Sprint, error) {
	row := db.conn.QueryRow(
		"UPDATE sprints SET sprint_code = COALESCE($2, sprint_code), name = COALESCE($3, name) "+
			"WHERE id = $1 RETURNING id, sprint_code, name",
		params.Id,
		params.SprintCode,
		params.Name,
	)

	var s Sprint
	err := row.Scan(&s.Id, &s.SprintCode, &s.Name)

	return s, err
}

func (db *PgSprintbotRepository) DeleteSprint(id int) (Sprint, error) {
	row := db.conn.QueryRow(
		"DELETE FROM sprints WHERE id = $1 RETURNING id, sprint_code, name",
		id,
	)

	var s Sprint
	err := row.Scan(&s.Id, &s.SprintCode, &s.Name)

	return s, err
}

func (db *PgSprintbotRepository) ListTemplates() ([]Template, error) {
	rows, err := db.conn.Query("SELECT id, message FROM templates")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates = make([]Template, 0)
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.Id, &t.Message); err != nil {
			return nil, err
		}

		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func (db *PgSprintbotRepository) GetTemplateById(id int) (Template, error) {
	row := db.conn.QueryRow(
		"SELECT id, message FROM templates WHERE id = $1 LIMIT 1",
		id,
	)

	var t Template
	err := row.Scan(&t.Id, &t.Message)

	return t, err
}

func (db *PgSprintbotRepository) GetTemplateByMessage(message string) (Template, error) {
	row := db.conn.QueryRow(
		"SELECT id, message FROM templates WHERE message = $1 LIMIT 1",
		message,
	)

	var t Template
	err := row.Scan(&t.Id, &t.Message)

	return t, err
}

func (db *PgSprintbotRepository) CreateTemplate(params CreateTemplateParams) (Template, error) {
	row := db.conn.QueryRow(
		"INSERT INTO templates (message) VALUES ($1) RETURNING id, message",
		params.Message,
	)

	var t Template
	err := row.Scan(&t.Id, &t.Message)

	return t, err
}

func (db *PgSprintbotRepository) UpdateTemplate(params UpdateTemplateParams) (Template, error) {
	row := db.conn.QueryRow(
		"UPDATE templates SET message = COALESCE($2, message) WHERE id = $1 RETURNING id, message",
		params.Id,
		params.Message,
	)

	var t Template
	err := row.Scan(&t.Id, &t.Message)

	return t, err
}

func (db *PgSprintbotRepository) DeleteTemplate(id int) (Template, error) {
	row := db.conn.QueryRow(
		"DELETE FROM templates WHERE id = $1 RETURNING id, message",
		id,
	)

	var t Template
	err := row.Scan(&t.Id, &t.Message)

	return t, err
}

// ListMessages returns completion records joined against their sprint,
// optionally filtered by sprint code and/or username. Empty filters match
// all rows.
func (db *PgSprintbotRepository) ListMessages(sprintCode, username string) ([]MessageListing, error) {
	query := "SELECT m.username, s.sprint_code, m.template_id FROM messages m " +
		"JOIN sprints s ON m.sprint_id = s.id"

	var (
		conds []string
		args  []any
	)
	if sprintCode != "" {
		args = append(args, sprintCode)
		conds = append(conds, fmt.Sprintf("s.sprint_code = $%d", len(args)))
	}
	if username != "" {
		args = append(args, username)
		conds = append(conds, fmt.Sprintf("m.username = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]MessageListing, 0)
	for rows.Next() {
		var m MessageListing
		if err := rows.Scan(&m.Username, &m.SprintCode, &m.TemplateId); err != nil {
			return nil, err
		}

		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (db *PgSprintbotRepository) GetMessageBySprintAndUsername(sprintId int, username string) (Message, error) {
	row := db.conn.QueryRow(
		"SELECT sprint_id, template_id, username FROM messages "+
			"WHERE sprint_id = $1 AND username = $2 LIMIT 1",
		sprintId,
		username,
	)

	var m Message
	err := row.Scan(&m.SprintId, &m.TemplateId, &m.Username)

	return m, err
}

// GetRandomTemplateId picks one existing template id uniformly at random.
// Returns sql.ErrNoRows when no templates exist.
func (db *PgSprintbotRepository) GetRandomTemplateId() (int, error) {
	row := db.conn.QueryRow("SELECT id FROM templates ORDER BY random() LIMIT 1")

	var id int
	err := row.Scan(&id)

	return id, err
}

func (db *PgSprintbotRepository) CreateMessage(msg Message) (Message, error) {
	row := db.conn.QueryRow(
		"INSERT INTO messages (username, sprint_id, template_id) "+
			"VALUES ($1, $2, $3) RETURNING sprint_id, template_id, username",
		msg.Username,
		msg.SprintId,
		msg.TemplateId,
	)

	var created Message
	err := row.Scan(&created.SprintId, &created.TemplateId, &created.Username)

	return created, err
}
