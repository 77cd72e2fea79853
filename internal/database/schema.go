package database

// Ids are never reused after a delete: postgres identity columns never hand
// out a value twice, and sqlite needs AUTOINCREMENT for the same guarantee.
const postgresSchema = `
	CREATE TABLE IF NOT EXISTS events (
		idevents       INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		event_name     VARCHAR(20)  NOT NULL,
		starting_time  TIMESTAMP    NOT NULL,
		ending_time    TIMESTAMP    NOT NULL,
		image          VARCHAR(100) NOT NULL,
		discount_rate  INTEGER      NOT NULL,
		discount_rules INTEGER      NOT NULL,
		price          INTEGER      NOT NULL
	)
`

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS events (
		idevents       INTEGER PRIMARY KEY AUTOINCREMENT,
		event_name     VARCHAR(20)  NOT NULL,
		starting_time  DATETIME     NOT NULL,
		ending_time    DATETIME     NOT NULL,
		image          VARCHAR(100) NOT NULL,
		discount_rate  INTEGER      NOT NULL,
		discount_rules INTEGER      NOT NULL,
		price          INTEGER      NOT NULL
	)
`
