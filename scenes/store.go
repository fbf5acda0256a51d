// Scene metadata store backed by PostgreSQL. Registers downloaded
// acquisitions and answers the date range / cloud cover queries used to
// assemble composites.
package scenes

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

type Scene struct {
	ID         string
	Product    string
	Path       string
	Acquired   time.Time
	CloudCover float64
	MinX       float64
	MinY       float64
	MaxX       float64
	MaxY       float64
}

type Store struct {
	db *sql.DB
}

func NewStore(dsn string, pool, limit int) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene store: %v", err)
	}
	if pool > 0 {
		db.SetMaxIdleConns(pool)
	}
	if limit > 0 {
		db.SetMaxOpenConns(limit)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
create table if not exists scenes (
	id text primary key,
	product text not null,
	path text not null,
	acquired timestamptz not null,
	cloud_cover numeric not null default 0,
	min_x numeric, min_y numeric, max_x numeric, max_y numeric
);
create index if not exists scenes_product_acquired on scenes (product, acquired);
`

func (s *Store) Init() error {
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Register(scene *Scene) error {
	_, err := s.db.Exec(
		`insert into scenes (id, product, path, acquired, cloud_cover, min_x, min_y, max_x, max_y)
		 values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 on conflict (id) do update set
		 	path = excluded.path,
		 	acquired = excluded.acquired,
		 	cloud_cover = excluded.cloud_cover,
		 	min_x = excluded.min_x, min_y = excluded.min_y,
		 	max_x = excluded.max_x, max_y = excluded.max_y`,
		scene.ID, scene.Product, scene.Path, scene.Acquired, scene.CloudCover,
		scene.MinX, scene.MinY, scene.MaxX, scene.MaxY,
	)
	return err
}

// The nullif() noise coerces Go's zero values for missing parameters
// into proper null arguments so unset filters match everything.
const searchQuery = `
select id, product, path, acquired, cloud_cover, min_x, min_y, max_x, max_y
from scenes
where product = $1
	and (nullif($2,'')::timestamptz is null or acquired >= nullif($2,'')::timestamptz)
	and (nullif($3,'')::timestamptz is null or acquired < nullif($3,'')::timestamptz)
	and (nullif($4,'')::numeric is null or cloud_cover <= nullif($4,'')::numeric)
order by acquired
`

func searchArgs(product string, from, until time.Time, maxCloud float64) []interface{} {
	fromArg := ""
	if !from.IsZero() {
		fromArg = from.UTC().Format(time.RFC3339)
	}
	untilArg := ""
	if !until.IsZero() {
		untilArg = until.UTC().Format(time.RFC3339)
	}
	cloudArg := ""
	if maxCloud > 0 {
		cloudArg = strconv.FormatFloat(maxCloud, 'f', -1, 64)
	}
	return []interface{}{product, fromArg, untilArg, cloudArg}
}

// Search returns the scenes of a product matching the time range and
// cloud cover cap, ordered by acquisition time. Zero-valued filters are
// ignored.
func (s *Store) Search(product string, from, until time.Time, maxCloud float64) ([]*Scene, error) {
	rows, err := s.db.Query(searchQuery, searchArgs(product, from, until, maxCloud)...)
	if err != nil {
		return nil, fmt.Errorf("scene search failed: %v", err)
	}
	defer rows.Close()

	var scenes []*Scene
	for rows.Next() {
		scene := &Scene{}
		err := rows.Scan(&scene.ID, &scene.Product, &scene.Path, &scene.Acquired,
			&scene.CloudCover, &scene.MinX, &scene.MinY, &scene.MaxX, &scene.MaxY)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}
