package main

import (
	"bytes"
	"os"

	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
)

type sectionState struct {
	frame int
	data  []byte
}

// section содержимое раздела слепков, одновременно служит эмулятором
// и журналом для кэша: лагов и меток нет, сессия начинается с включения.
type section struct {
	states  []sectionState
	largest int
}

func readSection(path string) (*section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read section file").Str("section-path", path)
	}

	var res section
	err = greenzone.ScanSection(bytes.NewReader(data), func(frame int, data []byte) error {
		res.states = append(res.states, sectionState{frame: frame, data: data})
		res.largest = max(res.largest, len(data))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan section").Str("section-path", path)
	}

	return &res, nil
}

func (s *section) load(c *greenzone.Cache) error {
	for _, st := range s.states {
		if err := c.SetState(st.frame, st.data); err != nil {
			return errors.Wrap(err, "set state").Int("frame", st.frame)
		}
	}

	return nil
}

// SaveState слепок наибольшего размера задаёт ожидаемый размер.
func (s *section) SaveState() []byte {
	return make([]byte, s.largest)
}

func (s *section) Frame() int {
	if len(s.states) == 0 {
		return 0
	}

	return s.states[len(s.states)-1].frame + 1
}

func (s *section) IsLagged() bool            { return false }
func (s *section) IsLagFrame(int) bool       { return false }
func (s *section) IsMarker(int) bool         { return false }
func (s *section) StartsFromSavestate() bool { return false }
func (s *section) AnchorState() []byte       { return nil }

var (
	_ greenzone.Emulator = &section{}
	_ greenzone.Movie    = &section{}
)
