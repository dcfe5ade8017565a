package feed

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	jsoniter "github.com/json-iterator/go"

	"tg_giftwatch/internal/domain/entity"
)

// Фид пишется как есть: слэши и юникод без экранирования.
var json = jsoniter.Config{EscapeHTML: false}.Froze() //nolint:gochecknoglobals

// Writer дописывает события в jsonl-фид. Файл никогда не переписывается,
// каждая запись — одна строка. Эксклюзивная advisory-блокировка держится
// только на время записи и защищает от чужих процессов-писателей;
// внутри процесса писатель один.
type Writer struct {
	path string
	lock *flock.Flock
}

func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create feed dir: %w", err)
	}

	return &Writer{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Append сериализует конверт и атомарно дописывает его одной строкой.
// Ошибка сериализации молча игнорируется: форма конверта фиксированная,
// сломать её нечем.
func (w *Writer) Append(event entity.FeedEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return nil
	}

	if err := w.lock.Lock(); err != nil {
		return fmt.Errorf("acquire feed lock: %w", err)
	}
	defer w.lock.Unlock() //nolint:errcheck

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append feed line: %w", err)
	}

	return nil
}

// Path возвращает путь к файлу фида.
func (w *Writer) Path() string {
	return w.path
}
