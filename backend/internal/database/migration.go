package database

type migration struct {
	id          MigrationId
	description string
	query       string
}

var migrations = []migration{
	{
		id:          0,
		description: "Item catalog",
		query: `
			CREATE TABLE item (
			    id TEXT PRIMARY KEY,
			    directory TEXT,
			    file_name TEXT,
			    media_kind INT,
			    byte_size INT,
			    created_timestamp INT,
			    modified_timestamp INT,

			    UNIQUE (directory, file_name)
			);

			CREATE INDEX item_created_timestamp_idx ON item (created_timestamp);
			CREATE INDEX item_directory_idx ON item (directory);

			CREATE TABLE status (
			    key TEXT PRIMARY KEY,
			    timestamp INT
			);
		`,
	},
	{
		id:          1,
		description: "Identifier lists",
		query: `
			CREATE TABLE identifier_list (
			    list_key TEXT PRIMARY KEY
			);

			CREATE TABLE identifier (
			    list_key TEXT,
			    position INTEGER,
			    value TEXT,

			    FOREIGN KEY(list_key) REFERENCES identifier_list(list_key) ON DELETE CASCADE,
			    UNIQUE (list_key, position)
			);
		`,
	},
}
