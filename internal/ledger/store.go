package ledger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"CoinArena/internal/model"
)

// LoadTable reads the full account table from a JSON file. A missing file is
// first-run behavior and yields an empty table; a corrupt file is logged and
// also yields an empty table rather than failing startup.
func LoadTable(filePath string) (map[int64]*model.Account, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[int64]*model.Account), nil
		}
		return nil, fmt.Errorf("read account table: %w", err)
	}
	table := make(map[int64]*model.Account)
	if err := json.Unmarshal(data, &table); err != nil {
		log.Printf("[WARN] account table %s is corrupt, starting empty: %v", filePath, err)
		return make(map[int64]*model.Account), nil
	}
	return table, nil
}

// SaveTable serializes the whole account table and replaces the file via a
// temp-file rename, so a crash mid-write never leaves a half-written table.
func SaveTable(filePath string, table map[int64]*model.Account) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal account table: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".accounts-*.json")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp table: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace account table: %w", err)
	}
	return nil
}
