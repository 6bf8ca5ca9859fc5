package greenzone

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirkon/errors"
	"gopkg.in/yaml.v3"
)

// ByteSize размер в байтах, в YAML задаётся как число или строка вида "512 MiB".
type ByteSize uint64

func (s ByteSize) String() string {
	return humanize.IBytes(uint64(s))
}

// UnmarshalYAML для реализации yaml.Unmarshaler
func (s *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return errors.Wrap(err, "decode byte size")
	}

	v, err := humanize.ParseBytes(raw)
	if err != nil {
		return errors.Wrap(err, "parse byte size").Str("byte-size", raw)
	}

	*s = ByteSize(v)
	return nil
}

// MarshalYAML для реализации yaml.Marshaler
func (s ByteSize) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Settings ограничения кэша.
type Settings struct {
	// MemoryCap целевой объём слепков в памяти, превышение вызывает вытеснение во вторичное хранилище.
	MemoryCap ByteSize `yaml:"memory_cap"`
	// DiskCap объём вторичного хранилища.
	DiskCap ByteSize `yaml:"disk_cap"`
	// DiskSaveCap ограничение объёма слепков сохраняемых в файл проекта.
	DiskSaveCap ByteSize `yaml:"disk_save_cap"`
	// DeveloperBuild удваивает минимальный интервал захвата.
	DeveloperBuild bool `yaml:"developer_build"`
}

const (
	defaultMemoryCap   = 512 * humanize.MiByte
	defaultDiskCap     = 512 * humanize.MiByte
	defaultDiskSaveCap = 512 * humanize.MiByte
)

// DefaultSettings ограничения по-умолчанию.
func DefaultSettings() Settings {
	return Settings{
		MemoryCap:   defaultMemoryCap,
		DiskCap:     defaultDiskCap,
		DiskSaveCap: defaultDiskSaveCap,
	}
}

// TotalCap общее ограничение на объём слепков в памяти и во вторичном хранилище.
func (s Settings) TotalCap() uint64 {
	return uint64(s.MemoryCap) + uint64(s.DiskCap)
}

// LoadSettings чтение ограничений из YAML-файла. Отсутствующие в файле
// значения берутся из DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "read settings file").Str("settings-path", path)
	}

	res := DefaultSettings()
	if err := yaml.Unmarshal(data, &res); err != nil {
		return Settings{}, errors.Wrap(err, "decode settings").Str("settings-path", path)
	}

	return res, nil
}
