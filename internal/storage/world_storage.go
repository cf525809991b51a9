package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/annel0/spawnlight/internal/logging"
	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

// ErrNotFound возвращается, если запись отсутствует в хранилище
var ErrNotFound = errors.New("запись не найдена")

const chunkKeyPrefix = "chunk:"

// WorldStorage хранит секции мира в BadgerDB.
// Значение JSON снимка секции, сжатый zstd.
type WorldStorage struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewWorldStorage открывает (или создаёт) хранилище в каталоге dataPath/world
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	return openWorldStorage(opts, dbPath)
}

// NewInMemoryWorldStorage создаёт хранилище без файлов на диске (для тестов и CLI)
func NewInMemoryWorldStorage() (*WorldStorage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return openWorldStorage(opts, "")
}

func openWorldStorage(opts badger.Options, dbPath string) (*WorldStorage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	return &WorldStorage{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Close закрывает хранилище данных
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	ws.encoder.Close()
	ws.decoder.Close()
	return ws.db.Close()
}

func chunkKey(coords vec.Vec3) []byte {
	return []byte(fmt.Sprintf("%s%d:%d:%d", chunkKeyPrefix, coords.X, coords.Y, coords.Z))
}

// SaveChunk сохраняет секцию целиком. Секции без изменений пропускаются.
func (ws *WorldStorage) SaveChunk(chunk *world.Chunk) error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	if !chunk.HasChanges() {
		return nil
	}

	data, err := json.Marshal(chunk.Export())
	if err != nil {
		return fmt.Errorf("ошибка сериализации секции: %w", err)
	}
	compressed := ws.encoder.EncodeAll(data, nil)

	err = ws.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(chunk.Coords), compressed)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	chunk.ClearChanges()
	return nil
}

// SaveWorld сохраняет все изменённые секции мира и возвращает число записанных
func (ws *WorldStorage) SaveWorld(w *world.WorldManager) (int, error) {
	saved := 0
	for _, chunk := range w.Chunks() {
		if !chunk.HasChanges() {
			continue
		}
		if err := ws.SaveChunk(chunk); err != nil {
			return saved, fmt.Errorf("секция %v: %w", chunk.Coords, err)
		}
		saved++
	}
	return saved, nil
}

// LoadChunk загружает секцию; ErrNotFound, если секция не сохранялась
func (ws *WorldStorage) LoadChunk(coords vec.Vec3) (*world.Chunk, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var raw []byte
	err := ws.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(coords))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	return ws.decodeChunk(raw)
}

// LoadAll загружает все сохранённые секции
func (ws *WorldStorage) LoadAll() ([]*world.Chunk, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var chunks []*world.Chunk
	prefix := []byte(chunkKeyPrefix)
	err := ws.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			chunk, err := ws.decodeChunk(raw)
			if err != nil {
				// Повреждённую секцию пропускаем, остальные загружаем
				logging.GetStorageLogger().Warn("Пропуск секции %s: %v", bytes.TrimPrefix(item.Key(), prefix), err)
				continue
			}
			chunks = append(chunks, chunk)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}
	return chunks, nil
}

// LoadWorld загружает все секции в мир и пересчитывает освещение.
// Возвращает число загруженных секций.
func (ws *WorldStorage) LoadWorld(w *world.WorldManager) (int, error) {
	chunks, err := ws.LoadAll()
	if err != nil {
		return 0, err
	}
	for _, c := range chunks {
		w.AddChunk(c)
	}
	if len(chunks) > 0 {
		w.RecalculateLight()
	}
	return len(chunks), nil
}

func (ws *WorldStorage) decodeChunk(raw []byte) (*world.Chunk, error) {
	data, err := ws.decoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки секции: %w", err)
	}

	var snapshot world.ChunkData
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("ошибка десериализации секции: %w", err)
	}
	return world.ChunkFromData(snapshot)
}
