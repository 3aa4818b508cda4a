package mirror

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// File зеркало в одном JSON-файле: вся карта переписывается на каждой
// мутации, до возврата управления вызывающему
type File struct {
	mu   sync.Mutex
	path string
	m    map[string]string
}

var _ Mirror = (*File)(nil)

// OpenFile загружает зеркало с диска. Отсутствующий или повреждённый файл
// даёт пустое зеркало — запуск не падает.
func OpenFile(path string) *File {
	f := &File{path: path, m: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("mirror: read %s: %v", path, err)
		}
		return f
	}
	if err := json.Unmarshal(data, &f.m); err != nil {
		log.Printf("mirror: malformed state file %s, starting empty: %v", path, err)
		f.m = make(map[string]string)
	}
	return f
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.m[key]
	return v, ok
}

func (f *File) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = value
	f.flush()
}

func (f *File) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, key)
	f.flush()
}

func (f *File) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m = make(map[string]string)
	f.flush()
}

// flush пишет файл атомарно через временный файл и rename.
// Вызывается только под мьютексом.
func (f *File) flush() {
	data, err := json.MarshalIndent(f.m, "", "  ")
	if err != nil {
		log.Printf("mirror: encode state: %v", err)
		return
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		log.Printf("mirror: mkdir for %s: %v", f.path, err)
		return
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Printf("mirror: write %s: %v", tmp, err)
		return
	}
	if err := os.Rename(tmp, f.path); err != nil {
		log.Printf("mirror: rename %s: %v", tmp, err)
	}
}
