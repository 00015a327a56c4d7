package beats

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores detected onsets in sqlite, keyed by the content of the track,
// so a song is only analysed once.
type Cache struct {
	db     *sql.DB
	Logger *slog.Logger
}

func OpenCache(path string, logger *slog.Logger) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	initStatement := `
	create table if not exists onsets
	  (
		  sum text not null,
		  detector text not null,
		  created integer,
		  times blob,
		  primary key (sum, detector)
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create onset cache %v: %w", path, err)
	}

	if nil == logger {
		logger = slog.Default()
	}
	return &Cache{db: db, Logger: logger}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Sum identifies a track by the sha256 of its contents
func Sum(path string) (string, error) {
	f, err := os.Open(path)
	if nil != err {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); nil != err {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

func (c *Cache) Load(sum, detector string) ([]time.Duration, bool) {
	var data []byte
	err := c.db.QueryRow("select times from onsets where sum = ? and detector = ?", sum, detector).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if nil != err {
		c.Logger.Warn("unable to load onsets", "err", err)
		return nil, false
	}
	var times []time.Duration
	if err := json.Unmarshal(data, &times); nil != err {
		c.Logger.Warn("unable to unmarshal onsets", "err", err)
		return nil, false
	}
	return times, true
}

func (c *Cache) Save(sum, detector string, times []time.Duration) {
	data, err := json.Marshal(times)
	if nil != err {
		c.Logger.Warn("unable to marshal onsets", "err", err)
		return
	}
	_, err = c.db.Exec(
		"insert or replace into onsets(sum, detector, created, times) values(?, ?, ?, ?)",
		sum, detector, time.Now().Unix(), data,
	)
	if nil != err {
		c.Logger.Warn("unable to save onsets", "err", err)
	}
}

// Wrap returns a Detector that consults the cache before d. The name keeps
// results of different detectors for the same file apart.
func (c *Cache) Wrap(name string, d Detector) Detector {
	return &cachedDetector{cache: c, name: name, detector: d}
}

type cachedDetector struct {
	cache    *Cache
	name     string
	detector Detector
}

func (cd *cachedDetector) Detect(path string) ([]time.Duration, error) {
	sum, err := Sum(path)
	if nil != err {
		return nil, err
	}
	if times, ok := cd.cache.Load(sum, cd.name); ok {
		cd.cache.Logger.Debug("onsets cached", "path", path, "count", len(times))
		return times, nil
	}

	times, err := cd.detector.Detect(path)
	if nil != err {
		return nil, err
	}
	if len(times) > 0 {
		cd.cache.Save(sum, cd.name, times)
	}
	return times, nil
}
