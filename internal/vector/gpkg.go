package vector

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/unitremix/internal/units"
	"github.com/peterstace/simplefeatures/geom"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// gpkgApplicationID is "GPKG" as a big-endian int32.
const (
	gpkgApplicationID = 1196444487
	gpkgUserVersion   = 10300

	// customSRSBase numbers spatial reference systems outside EPSG.
	customSRSBase = 100000
)

//go:embed gpkg_schema.sql
var gpkgSchema string

// openGPKG opens an existing GeoPackage. database/sql would silently create
// a missing file, so existence is checked first.
func openGPKG(ctx context.Context, path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var n int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('gpkg_contents', 'gpkg_geometry_columns')`,
	).Scan(&n)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n != 2 {
		_ = db.Close()
		return nil, fmt.Errorf("%s is not a GeoPackage", path)
	}
	return db, nil
}

func listGPKGLayers(ctx context.Context, path string) ([]string, error) {
	db, err := openGPKG(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx,
		`SELECT table_name FROM gpkg_contents WHERE data_type = 'features' ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layers of %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readGPKGLayer(ctx context.Context, path, name string) (*units.Layer, error) {
	db, err := openGPKG(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	var (
		geomCol string
		srsID   int64
	)
	err = db.QueryRowContext(ctx, `
		SELECT g.column_name, g.srs_id
		FROM gpkg_geometry_columns g
		JOIN gpkg_contents c ON c.table_name = g.table_name
		WHERE c.data_type = 'features' AND g.table_name = ?
	`, name).Scan(&geomCol, &srsID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("layer %q not found in %s", name, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to describe layer %q of %s: %w", name, path, err)
	}

	crs, err := lookupSRS(ctx, db, srsID)
	if err != nil {
		return nil, fmt.Errorf("layer %q of %s: %w", name, path, err)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(name)+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to read layer %q of %s: %w", name, path, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	layer := &units.Layer{Name: name, CRS: crs}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for row := 0; rows.Next(); row++ {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to read layer %q of %s: %w", name, path, err)
		}

		attrs := make(map[string]any, len(cols))
		var blob []byte
		for i, col := range cols {
			if col == geomCol {
				blob, _ = values[i].([]byte)
				continue
			}
			attrs[col] = values[i]
		}

		f, err := featureFromRow(name, row, attrs, blob)
		if err != nil {
			return nil, err
		}
		layer.Features = append(layer.Features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read layer %q of %s: %w", name, path, err)
	}
	return layer, nil
}

func featureFromRow(layer string, row int, attrs map[string]any, blob []byte) (units.Feature, error) {
	if len(blob) == 0 {
		return toFeature(layer, row, attrs, geom.Geometry{}, false)
	}
	g, _, err := decodeGPKGGeometry(blob)
	if err != nil {
		return units.Feature{}, recordError(layer, row, "%v", err)
	}
	return toFeature(layer, row, attrs, g, true)
}

// lookupSRS maps a gpkg_spatial_ref_sys row back to a CRS identifier. The
// two undefined systems map to the empty CRS.
func lookupSRS(ctx context.Context, db *sql.DB, srsID int64) (units.CRS, error) {
	var (
		org        string
		code       int64
		definition string
	)
	err := db.QueryRowContext(ctx,
		`SELECT organization, organization_coordsys_id, definition FROM gpkg_spatial_ref_sys WHERE srs_id = ?`,
		srsID,
	).Scan(&org, &code, &definition)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("unknown srs_id %d", srsID)
	}
	if err != nil {
		return "", err
	}

	if strings.EqualFold(org, "NONE") || org == "" {
		if definition == "" || strings.EqualFold(definition, "undefined") {
			return "", nil
		}
		return units.ParseCRS(definition), nil
	}
	return units.NewCRS(org, int(code)), nil
}

// WriteGPKG writes layers into a new GeoPackage at path, one feature table
// per layer, in order. The file must not exist.
func WriteGPKG(ctx context.Context, path string, layers ...*units.Layer) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return writeGPKG(ctx, path, layers...)
}

func writeGPKG(ctx context.Context, path string, layers ...*units.Layer) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()
	// One connection so that the pragmas and the transaction share it.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA application_id = %d", gpkgApplicationID)); err != nil {
		return fmt.Errorf("failed to initialize GeoPackage: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", gpkgUserVersion)); err != nil {
		return fmt.Errorf("failed to initialize GeoPackage: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, gpkgSchema); err != nil {
		return fmt.Errorf("failed to create GeoPackage tables: %w", err)
	}

	srsIDs := map[units.CRS]int64{"": -1, units.WGS84: 4326}
	for _, layer := range layers {
		srsID, err := ensureSRS(ctx, tx, srsIDs, layer.CRS)
		if err != nil {
			return err
		}
		if err := writeFeatureTable(ctx, tx, layer, srsID); err != nil {
			return fmt.Errorf("failed to write layer %q: %w", layer.Name, err)
		}
	}

	return tx.Commit()
}

// ensureSRS returns the srs_id of crs, inserting a row when it is new.
func ensureSRS(ctx context.Context, tx *sql.Tx, known map[units.CRS]int64, crs units.CRS) (int64, error) {
	if id, ok := known[crs]; ok {
		return id, nil
	}

	org, code := "NONE", int64(0)
	var id int64
	if epsg, ok := crs.EPSG(); ok {
		org, code, id = "EPSG", int64(epsg), int64(epsg)
	} else {
		id = customSRSBase + int64(len(known))
		if auth, c, ok := strings.Cut(string(crs), ":"); ok {
			if n, err := strconv.ParseInt(c, 10, 64); err == nil {
				org, code = auth, n
			}
		}
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO gpkg_spatial_ref_sys (srs_name, srs_id, organization, organization_coordsys_id, definition) VALUES (?, ?, ?, ?, ?)`,
		string(crs), id, org, code, string(crs),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to register CRS %s: %w", crs, err)
	}
	known[crs] = id
	return id, nil
}

func writeFeatureTable(ctx context.Context, tx *sql.Tx, layer *units.Layer, srsID int64) error {
	table := quoteIdent(layer.Name)
	ddl := fmt.Sprintf(`CREATE TABLE %s (
    fid INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    geom GEOMETRY,
    %s TEXT NOT NULL,
    %s TEXT NOT NULL,
    %s TEXT,
    %s TEXT,
    %s INTEGER NOT NULL
)`, table, ColID, ColCountryCode, ColName, ColType, ColProper)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO gpkg_contents (table_name, data_type, identifier, srs_id) VALUES (?, 'features', ?, ?)`,
		layer.Name, layer.Name, srsID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO gpkg_geometry_columns (table_name, column_name, geometry_type_name, srs_id, z, m) VALUES (?, 'geom', ?, ?, 0, 0)`,
		layer.Name, geometryTypeName(layer), srsID,
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (geom, %s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?, ?)",
		table, ColID, ColCountryCode, ColName, ColType, ColProper,
	))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, f := range layer.Features {
		args := append([]any{encodeGPKGGeometry(f.Geometry, int32(srsID))}, attributes(f)...) //nolint:gosec // G115: srs ids fit in int32
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("feature %s: %w", f.ID, err)
		}
	}
	return nil
}

// geometryTypeName is the gpkg_geometry_columns type covering every feature
// of layer: POLYGON or MULTIPOLYGON when all share it, GEOMETRY otherwise.
func geometryTypeName(layer *units.Layer) string {
	var typ geom.GeometryType
	for i, f := range layer.Features {
		switch {
		case i == 0:
			typ = f.Geometry.Type()
		case f.Geometry.Type() != typ:
			return "GEOMETRY"
		}
	}
	switch {
	case layer.Len() == 0:
		return "GEOMETRY"
	case typ == geom.TypePolygon:
		return "POLYGON"
	case typ == geom.TypeMultiPolygon:
		return "MULTIPOLYGON"
	}
	return "GEOMETRY"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
