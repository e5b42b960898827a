package larhits

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// ConnectToDatabase opens the conditions database. For sqlite the database
// name is the path of the database file.
func ConnectToDatabase(driver string, user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite:
		return sqlx.Connect(DriverSQLite, dbname)
	case DriverMySQL, "":
		port := "3306"
		dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
		return sqlx.Connect(DriverMySQL, dbURI)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

const geometryQuery = `SELECT CenterX, CenterY, CenterZ, WidthX, WidthY, WidthZ,
	WireAngleU, WireAngleV, WireAngleW, WirePitchU, WirePitchV, WirePitchW
	FROM WireGeometry WHERE MinRun <= ? and MaxRun >= ? ORDER BY MinRun DESC LIMIT 1`

// LoadGeometryFromDB reads the wire geometry valid for a run.
func LoadGeometryFromDB(db *sqlx.DB, runNumber int) (Geometry, error) {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading wire geometry for run %d from database", runNumber)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", geometryQuery)
		logger.Info(message, "database")
	}

	var geometry Geometry
	err := db.Get(&geometry, geometryQuery, runNumber, runNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return Geometry{}, &ErrGeometry{Parameter: fmt.Sprintf("WireGeometry for run %d", runNumber)}
	}
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return Geometry{}, &ErrGeometry{Parameter: "WireGeometry", Err: errMessage}
	}
	return geometry, nil
}
