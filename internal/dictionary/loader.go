package dictionary

import (
	"bufio"
	"database/sql"
	"os"
	"strings"

	// sqlite3 driver for lexicon databases.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// LoadTextFile reads a word list with one word per line. Anything after the
// first whitespace-separated field (definitions, usage labels) is ignored.
func LoadTextFile(filename string) (Set, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	words := Set{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			words.Add(fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Info().Str("filename", filename).Int("words", len(words)).Msg("loaded word list")
	return words, nil
}

// LoadSqlite reads every word out of a lexicon database. The whole set is
// pulled into memory up front; per-candidate queries would never keep up
// with the solver.
func LoadSqlite(dbPath string) (Set, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT word FROM words")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := Set{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words.Add(w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Info().Str("db", dbPath).Int("words", len(words)).Msg("loaded lexicon db")
	return words, nil
}
