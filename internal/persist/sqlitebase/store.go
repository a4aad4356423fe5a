// Package sqlitebase is an alternative MaterialBase store backed by
// modernc.org/sqlite, for servers that want concurrent readers instead of
// a single flat JSON file. Grounded on server/dao/sqlite/sqlite.go's
// table-per-concern layout and its use of rezi to pack composite values
// into blob columns.
package sqlitebase

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"

	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists a MaterialBase across three tables: language,
// consequences, and schemas.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path and ensures
// its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite base store: %w", err)
	}
	st := &Store{db: db}
	if err := st.init(); err != nil {
		return nil, err
	}
	return st, nil
}

func (st *Store) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS language (atom TEXT NOT NULL PRIMARY KEY);`,
		`CREATE TABLE IF NOT EXISTS consequences (
			id TEXT NOT NULL PRIMARY KEY,
			antecedent TEXT NOT NULL,
			consequent TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS schemas (
			id TEXT NOT NULL PRIMARY KEY,
			kind TEXT NOT NULL,
			role TEXT NOT NULL,
			individual TEXT NOT NULL,
			concept TEXT NOT NULL,
			consequent TEXT
		);`,
	}
	for _, stmt := range stmts {
		if _, err := st.db.Exec(stmt); err != nil {
			return fmt.Errorf("init sqlite base store: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (st *Store) Close() error {
	return st.db.Close()
}

// encodeAtoms rezi-encodes the canonical string form of set's members and
// base64-encodes the result for storage in a TEXT column.
func encodeAtoms(set util.Set[sentence.Sentence]) string {
	strs := make([]string, 0, set.Len())
	for _, a := range sentence.Sorted(set) {
		strs = append(strs, a.String())
	}
	return base64.StdEncoding.EncodeToString(rezi.EncBinary(strs))
}

func decodeAtoms(enc string, mode sentence.Mode) (util.Set[sentence.Sentence], error) {
	data, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("decode atom blob: %w", err)
	}
	var strs []string
	if _, err := rezi.DecBinary(data, &strs); err != nil {
		return nil, fmt.Errorf("decode atom blob: %w", err)
	}
	out := util.NewKeySet[sentence.Sentence]()
	for _, str := range strs {
		a, err := sentence.Parse(str, mode)
		if err != nil {
			return nil, fmt.Errorf("parse atom %q: %w", str, err)
		}
		out.Add(a)
	}
	return out, nil
}

// Save replaces the store's contents with a snapshot of mb, inside a
// single transaction.
func (st *Store) Save(ctx context.Context, mb *materialbase.MaterialBase) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"language", "consequences", "schemas"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, a := range sentence.Sorted(mb.Language()) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO language (atom) VALUES (?)`, a.String()); err != nil {
			return fmt.Errorf("insert language atom: %w", err)
		}
	}

	for _, pair := range mb.Consequences() {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate consequence id: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO consequences (id, antecedent, consequent) VALUES (?, ?, ?)`,
			id.String(), encodeAtoms(pair[0]), encodeAtoms(pair[1]))
		if err != nil {
			return fmt.Errorf("insert consequence: %w", err)
		}
	}

	for _, rec := range mb.Schemas() {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate schema id: %w", err)
		}
		var consequentBlob sql.NullString
		if rec.Consequent != nil {
			consequentBlob = sql.NullString{String: encodeAtoms(rec.Consequent), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO schemas (id, kind, role, individual, concept, consequent) VALUES (?, ?, ?, ?, ?, ?)`,
			id.String(), rec.Kind, rec.Role, rec.Individual, rec.Concept, consequentBlob)
		if err != nil {
			return fmt.Errorf("insert schema: %w", err)
		}
	}

	return tx.Commit()
}

// Load reconstructs a MaterialBase from the store's current contents.
// mode selects how stored atom strings are re-parsed.
func (st *Store) Load(ctx context.Context, mode sentence.Mode) (*materialbase.MaterialBase, error) {
	mb := materialbase.New()

	langRows, err := st.db.QueryContext(ctx, `SELECT atom FROM language;`)
	if err != nil {
		return nil, fmt.Errorf("query language: %w", err)
	}
	for langRows.Next() {
		var atomStr string
		if err := langRows.Scan(&atomStr); err != nil {
			langRows.Close()
			return nil, fmt.Errorf("scan atom: %w", err)
		}
		a, err := sentence.Parse(atomStr, mode)
		if err != nil {
			langRows.Close()
			return nil, fmt.Errorf("parse atom %q: %w", atomStr, err)
		}
		if err := mb.AddAtom(a); err != nil {
			langRows.Close()
			return nil, fmt.Errorf("add atom: %w", err)
		}
	}
	langRows.Close()

	consRows, err := st.db.QueryContext(ctx, `SELECT antecedent, consequent FROM consequences;`)
	if err != nil {
		return nil, fmt.Errorf("query consequences: %w", err)
	}
	for consRows.Next() {
		var ante, cons string
		if err := consRows.Scan(&ante, &cons); err != nil {
			consRows.Close()
			return nil, fmt.Errorf("scan consequence: %w", err)
		}
		anteSet, err := decodeAtoms(ante, mode)
		if err != nil {
			consRows.Close()
			return nil, err
		}
		consSet, err := decodeAtoms(cons, mode)
		if err != nil {
			consRows.Close()
			return nil, err
		}
		if err := mb.AddConsequence(anteSet, consSet); err != nil {
			consRows.Close()
			return nil, fmt.Errorf("add consequence: %w", err)
		}
	}
	consRows.Close()

	schemaRows, err := st.db.QueryContext(ctx, `SELECT kind, role, individual, concept, consequent FROM schemas;`)
	if err != nil {
		return nil, fmt.Errorf("query schemas: %w", err)
	}
	for schemaRows.Next() {
		var kind, role, individual, concept string
		var consequent sql.NullString
		if err := schemaRows.Scan(&kind, &role, &individual, &concept, &consequent); err != nil {
			schemaRows.Close()
			return nil, fmt.Errorf("scan schema: %w", err)
		}
		switch kind {
		case "concept":
			if err := mb.AddConceptSchema(role, individual, concept); err != nil {
				schemaRows.Close()
				return nil, fmt.Errorf("add concept schema: %w", err)
			}
		case "inference":
			if !consequent.Valid {
				schemaRows.Close()
				return nil, fmt.Errorf("inference schema missing consequent blob")
			}
			consSet, err := decodeAtoms(consequent.String, mode)
			if err != nil {
				schemaRows.Close()
				return nil, err
			}
			if err := mb.AddInferenceSchema(role, individual, concept, consSet); err != nil {
				schemaRows.Close()
				return nil, fmt.Errorf("add inference schema: %w", err)
			}
		default:
			schemaRows.Close()
			return nil, fmt.Errorf("unknown schema kind %q", kind)
		}
	}
	schemaRows.Close()

	return mb, nil
}
