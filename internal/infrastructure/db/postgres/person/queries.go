package person

const (
	personColumns = `
		p.id, p.username, p.password_hash, p.first_name, p.last_name, p.email,
		p.phone_number, p.date_of_birth, p.age, p.is_active, p.is_staff, p.is_superuser,
		p.last_login, p.date_joined, p.created_at, p.updated_at,
		r.id, r.name, r.description, r.created_at, r.updated_at`

	SelectPeople = `SELECT` + personColumns + `
		FROM people p
		LEFT JOIN roles r ON r.id = p.role_id`
	CountPeople = `SELECT count(*) FROM people p`

	SelectPersonByID       = SelectPeople + ` WHERE p.id = $1`
	SelectPersonByUsername = SelectPeople + ` WHERE p.username = $1`

	InsertPerson = `
		WITH p AS (
		  INSERT INTO people (
		    username, password_hash, first_name, last_name, email, phone_number,
		    date_of_birth, age, is_active, is_staff, is_superuser, role_id
		  )
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		  RETURNING *
		)
		SELECT` + personColumns + `
		FROM p
		LEFT JOIN roles r ON r.id = p.role_id`
	UpdatePersonByID = `
		WITH p AS (
		  UPDATE people
		  SET username = $1,
		      password_hash = $2,
		      first_name = $3,
		      last_name = $4,
		      email = $5,
		      phone_number = $6,
		      date_of_birth = $7,
		      age = $8,
		      is_active = $9,
		      is_staff = $10,
		      is_superuser = $11,
		      role_id = $12,
		      updated_at = now()
		  WHERE id = $13
		  RETURNING *
		)
		SELECT` + personColumns + `
		FROM p
		LEFT JOIN roles r ON r.id = p.role_id`
	UpdateLastLogin  = `UPDATE people SET last_login = $1 WHERE id = $2`
	DeletePersonByID = `DELETE FROM people WHERE id = $1`
)
