package session

const (
	InsertSession = `
		INSERT INTO sessions (id, person_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`
	SelectSessionByID = `
		SELECT id, person_id, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > now()`
	DeleteSessionByID = `DELETE FROM sessions WHERE id = $1`
	DeleteExpired     = `DELETE FROM sessions WHERE expires_at <= $1`
)
