package role

const (
	SelectRoles = `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		ORDER BY id
	`
	SelectRoleByID = `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE id = $1
	`
	SelectRoleByName = `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE name = $1
	`
	// UpsertRole inserts the role when missing and returns the stored row. It
	// comes back empty when a concurrent insert of the same name commits
	// after the statement snapshot was taken.
	UpsertRole = `
		WITH inserted AS (
		  INSERT INTO roles (name, description)
		  VALUES ($1, $2)
		  ON CONFLICT (name) DO NOTHING
		  RETURNING id, name, description, created_at, updated_at
		)
		SELECT id, name, description, created_at, updated_at FROM inserted
		UNION ALL
		SELECT id, name, description, created_at, updated_at FROM roles WHERE name = $1
		LIMIT 1
	`
	DeleteRoleByID = `DELETE FROM roles WHERE id = $1`
)
