// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines users, health records, goals, personalization profiles, and the content catalog.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		nickname TEXT,
		height REAL,
		gender TEXT,
		birthday TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS health_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		record_type TEXT NOT NULL,
		value REAL NOT NULL CHECK (value >= 0),
		note TEXT,
		record_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS user_goals (
		user_id TEXT PRIMARY KEY,
		steps_goal INTEGER,
		water_goal INTEGER,
		sleep_goal REAL,
		calories_goal INTEGER,
		weight_goal REAL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS user_health_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		age_group TEXT NOT NULL,
		activity_level TEXT NOT NULL,
		health_condition TEXT NOT NULL,
		has_cardiovascular_issues INTEGER NOT NULL DEFAULT 0,
		has_diabetes INTEGER NOT NULL DEFAULT 0,
		has_joint_issues INTEGER NOT NULL DEFAULT 0,
		is_pregnant INTEGER NOT NULL DEFAULT 0,
		is_recovering INTEGER NOT NULL DEFAULT 0,
		personalized_steps_goal INTEGER,
		personalized_heart_rate_min INTEGER,
		personalized_heart_rate_max INTEGER,
		personalized_sleep_goal REAL,
		personalized_water_goal INTEGER,
		doctor_notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS health_tips (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		image_url TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercise_advice (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		weather TEXT NOT NULL DEFAULT 'all',
		time_slot TEXT NOT NULL DEFAULT 'all',
		intensity TEXT NOT NULL DEFAULT 'medium',
		duration INTEGER NOT NULL DEFAULT 30,
		calories_burned INTEGER NOT NULL DEFAULT 0,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_user_type_date ON health_records(user_id, record_type, record_date DESC);
	CREATE INDEX IF NOT EXISTS idx_records_user_date ON health_records(user_id, record_date DESC, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_tips_category ON health_tips(category, sort_order);
	CREATE INDEX IF NOT EXISTS idx_exercise_conditions ON exercise_advice(weather, time_slot, sort_order);
	`

	_, err := d.db.Exec(schema)
	return err
}
