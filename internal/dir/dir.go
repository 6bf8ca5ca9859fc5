package dir

import (
	"os"
	"path/filepath"

	"github.com/sirkon/errors"
)

// New подготовка директории: создаётся при отсутствии.
func New(p string) (res *Dir, err error) {
	res = &Dir{
		path: p,
	}

	stat, err := os.Stat(p)
	if err == nil {
		if !stat.IsDir() {
			return nil, errors.Newf("'%s' exists and it is not a directory", p)
		}

		return res, nil
	}

	if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "check path")
	}

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, errors.Wrap(err, "create directory")
	}

	return res, nil
}

// Dir представление директории.
type Dir struct {
	path string
}

// Path путь к директории.
func (d *Dir) Path() string {
	return d.path
}

// Create создание в директории нового файла на чтение и запись.
func (d *Dir) Create(name string) (*os.File, error) {
	res, err := os.Create(filepath.Join(d.path, name))
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Remove удаление директории со всем содержимым.
func (d *Dir) Remove() error {
	if err := os.RemoveAll(d.path); err != nil {
		return errors.Wrapf(err, "remove directory '%s'", d.path)
	}

	return nil
}
