package database

type MigrationId int64

type Migration struct {
	Id MigrationId `db:"id"`
}

type Item struct {
	Id                string `db:"id"`
	Directory         string `db:"directory"`
	FileName          string `db:"file_name"`
	MediaKind         int64  `db:"media_kind"`
	ByteSize          int64  `db:"byte_size"`
	CreatedTimestamp  int64  `db:"created_timestamp"`
	ModifiedTimestamp int64  `db:"modified_timestamp"`
}

type DirectoryCount struct {
	Directory string `db:"directory"`
	Count     int    `db:"item_count"`
}

type Status struct {
	Key       StatusKey `db:"key"`
	Timestamp int64     `db:"timestamp"`
}

type identifierValue struct {
	Value string `db:"value"`
}
