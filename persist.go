package mapedit

import (
	"encoding/json"
	"fmt"
	"os"
)

// MapRecord is the on-disk form of a map. Only the name and size are
// persisted; offset, layers and placed textures are not.
type MapRecord struct {
	Name string  `json:"name"`
	Size Vector2 `json:"size"`
}

// Serialize returns the persisted form of the map.
func (m *Map) Serialize() MapRecord {
	return MapRecord{Name: m.name, Size: m.size}
}

// Parse applies a persisted record to the map. Only the size is taken over;
// the returned record holds the record's name and the resulting size.
func (m *Map) Parse(rec MapRecord) (MapRecord, error) {
	if err := m.SetSize(rec.Size); err != nil {
		return MapRecord{}, err
	}
	return MapRecord{Name: rec.Name, Size: m.size}, nil
}

// Sync writes the map record to its path, replacing the file. A successful
// write clears the dirty flag.
func (m *Map) Sync() error {
	data, err := json.Marshal(m.Serialize())
	if err != nil {
		return fmt.Errorf("mapedit: encode map %q: %w", m.name, err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		ioErr := &IOError{Op: "write", Path: m.path, Err: err}
		Logger().Error("sync map", "map", m.name, "error", ioErr)
		return ioErr
	}
	if m.dirty {
		m.dirty = false
		m.changed()
	}
	Logger().Info("synced map", "map", m.name, "path", m.path)
	return nil
}

// Reload re-reads the record at the map's path and applies it.
func (m *Map) Reload() error {
	rec, err := readMapRecord(m.path)
	if err != nil {
		return err
	}
	_, err = m.Parse(rec)
	return err
}

// LoadMap reads the record at path into a new, closed map of project.
func LoadMap(project Project, path string) (*Map, error) {
	rec, err := readMapRecord(path)
	if err != nil {
		return nil, err
	}
	m := NewMap(project, rec.Name, path)
	if _, err := m.Parse(rec); err != nil {
		return nil, err
	}
	return m, nil
}

func readMapRecord(path string) (MapRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MapRecord{}, &IOError{Op: "read", Path: path, Err: err}
	}
	var rec MapRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return MapRecord{}, &IOError{Op: "decode", Path: path, Err: err}
	}
	return rec, nil
}
