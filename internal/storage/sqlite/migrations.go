package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Every child table cascades from rides, so deleting a ride removes it completely.
// Position columns keep participant, stop and passenger order.
const schema = `
CREATE TABLE IF NOT EXISTS rides (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ride_participants (
    ride_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    participant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (ride_id, participant_id),
    FOREIGN KEY (ride_id) REFERENCES rides(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS trips (
    ride_id TEXT NOT NULL,
    direction TEXT NOT NULL CHECK (direction IN ('outbound', 'return')),
    total_cost REAL NOT NULL,
    paid_by_id TEXT,
    PRIMARY KEY (ride_id, direction),
    FOREIGN KEY (ride_id) REFERENCES rides(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS stops (
    ride_id TEXT NOT NULL,
    direction TEXT NOT NULL,
    position INTEGER NOT NULL,
    stop_id TEXT NOT NULL,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    PRIMARY KEY (ride_id, direction, position),
    FOREIGN KEY (ride_id) REFERENCES rides(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS stop_passengers (
    ride_id TEXT NOT NULL,
    direction TEXT NOT NULL,
    stop_position INTEGER NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('entering', 'exiting')),
    position INTEGER NOT NULL,
    participant_id TEXT NOT NULL,
    PRIMARY KEY (ride_id, direction, stop_position, kind, position),
    FOREIGN KEY (ride_id) REFERENCES rides(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS trip_legs (
    ride_id TEXT NOT NULL,
    direction TEXT NOT NULL,
    position INTEGER NOT NULL,
    distance REAL NOT NULL,
    PRIMARY KEY (ride_id, direction, position),
    FOREIGN KEY (ride_id) REFERENCES rides(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_ride_participants_ride_id ON ride_participants(ride_id);
CREATE INDEX IF NOT EXISTS idx_trips_ride_id ON trips(ride_id);
CREATE INDEX IF NOT EXISTS idx_stops_ride_id ON stops(ride_id, direction);
CREATE INDEX IF NOT EXISTS idx_stop_passengers_ride_id ON stop_passengers(ride_id, direction);
CREATE INDEX IF NOT EXISTS idx_trip_legs_ride_id ON trip_legs(ride_id, direction);
CREATE INDEX IF NOT EXISTS idx_rides_created_at ON rides(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
